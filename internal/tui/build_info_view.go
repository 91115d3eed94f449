// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-state-sync/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	rows := []struct{ label, value string }{
		{"Приложение", "state-sync"},
		{"Версия", info.BuildVersion()},
		{"Дата сборки", info.BuildDate()},
		{"Коммит", info.BuildCommit()},
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%-12s %s", row.label+":", valueOrNA(row.value)))
	}

	return renderPage("ИНФОРМАЦИЯ О ПРОГРАММЕ", strings.Join(lines, "\n"), "esc: назад")
}

func valueOrNA(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return models.NotAvailable
	}
	return v
}
