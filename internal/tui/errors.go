// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-state-sync/internal/service"
)

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if errors.Is(err, service.ErrProviderUnavailable) ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или Сервер недоступен"
	}

	return err.Error()
}

func syncErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg := humanizeServerUnavailableError(err); msg != err.Error() {
		return "синхронизация не выполнена. " + msg
	}
	return fmt.Sprintf("Ошибка синхронизации: %v", err)
}
