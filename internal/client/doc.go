// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the state-sync client application runtime.
//
// It wires local storage, the remote provider, the sync engine and the
// background workers into a single process and dispatches the command line
// subcommands (put, get, delete, list, status, sync, resolve, run, watch).
package client
