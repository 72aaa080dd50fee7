// Package gateway contains the HTTP clients for the zenith backend: the
// auth/token service and the summarization history service. Every call is
// a single request/response mapping with no retries; callers decide how a
// failure maps onto UI state.
package gateway

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// BackendError is a non-success response from the backend. Detail carries
// the backend's own message when one was provided.
type BackendError struct {
	Status int
	Detail string
}

func (e *BackendError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if text := http.StatusText(e.Status); text != "" {
		return text
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// detailPayload is the backend's error envelope.
type detailPayload struct {
	Detail string `json:"detail"`
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 60 * time.Second,
	}
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}

func setBearer(req *http.Request, token string) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
}
