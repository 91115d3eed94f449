// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// NotAvailable replaces build metadata that was not injected at link time.
const NotAvailable = "N/A"

// AppBuildInfo is the build metadata injected with -ldflags -X. It is
// reported by GET /api/version, the client's version command and the
// monitor's info screen.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo trims the values; empty ones are reported as missing.
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: strings.TrimSpace(buildVersion),
		buildDate:    strings.TrimSpace(buildDate),
		buildCommit:  strings.TrimSpace(buildCommit),
	}
}

func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}

// String formats the metadata as "version (commit, date)" with N/A for
// missing parts.
func (a AppBuildInfo) String() string {
	return orNotAvailable(a.buildVersion) + " (" + orNotAvailable(a.buildCommit) + ", " + orNotAvailable(a.buildDate) + ")"
}

func orNotAvailable(v string) string {
	if v == "" {
		return NotAvailable
	}
	return v
}
