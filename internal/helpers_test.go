package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// fakeSettings is an in-memory ChatSettings for tests.
type fakeSettings struct {
	token      string
	llmEnabled bool
}

func (f *fakeSettings) Token() (string, bool) {
	if f.token == "" {
		return "", false
	}
	return f.token, true
}

func (f *fakeSettings) LLMEnabled() bool {
	return f.llmEnabled
}

// newTestClient points a Client at an httptest handler. The server is
// shut down with the test.
func newTestClient(t *testing.T, settings TokenSource, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg := &Config{APIURL: server.URL, Timeout: 5 * time.Second}
	return NewClient(cfg, settings)
}
