package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps resty.Client so transport adapters share one way of
// configuring outbound requests.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client bound to baseURL with the given request
// timeout. A non-positive timeout leaves resty's default (none).
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
