package n3rgy

import (
	"bytes"
	"io"
	"net/http"
	"time"
)

// MockRoundTripper is a mock implementation of http.RoundTripper.
type MockRoundTripper struct {
	Handler func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.Handler(req)
}

// cannedResponse answers every request with body and records the last request.
func cannedResponse(status int, body string, last **http.Request) *MockRoundTripper {
	return &MockRoundTripper{
		Handler: func(req *http.Request) (*http.Response, error) {
			if last != nil {
				*last = req
			}
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(bytes.NewReader([]byte(body))),
				Header:     make(http.Header),
			}, nil
		},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
