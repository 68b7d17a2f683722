//go:build integration

package mock

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// ReceivedRequest is one request seen by the API mock.
type ReceivedRequest struct {
	Method  string
	Path    string
	Headers http.Header
	Body    []byte
}

type cannedResponse struct {
	status int
	body   string
}

// ApiMock is a programmable upstream HTTP API. Responses are keyed by method
// and path; unknown routes answer 404.
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	responses map[string]cannedResponse
	received  []ReceivedRequest
}

// NewApiServer creates an unstarted API mock.
func NewApiServer() *ApiMock {
	return &ApiMock{
		responses: map[string]cannedResponse{},
	}
}

// Start begins serving on a loopback port.
func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		a.mu.Lock()
		a.received = append(a.received, ReceivedRequest{
			Method:  r.Method,
			Path:    r.URL.Path,
			Headers: r.Header.Clone(),
			Body:    body,
		})
		resp, ok := a.responses[r.Method+" "+r.URL.Path]
		a.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		_, _ = io.WriteString(w, resp.body)
	}))
}

// GetUrl returns the base URL of the running mock.
func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

// SetResponse programs the answer for method and path.
func (a *ApiMock) SetResponse(method, path string, status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[method+" "+path] = cannedResponse{status: status, body: body}
}

// Requests returns the requests received for method and path.
func (a *ApiMock) Requests(method, path string) []ReceivedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []ReceivedRequest
	for _, r := range a.received {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Reset forgets programmed responses and received requests.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses = map[string]cannedResponse{}
	a.received = nil
}
