package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/libreria-aurora/aurora-cli/internal"
)

// AgentBackend is a scripted stand-in for the Aurora backend. Handlers
// are keyed by "METHOD path"; unhandled routes return 404.
type AgentBackend struct {
	Server   *httptest.Server
	Handlers map[string]http.HandlerFunc
	Requests []RecordedRequest
}

// RecordedRequest captures what the client sent.
type RecordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

// NewAgentBackend starts a scripted backend, shut down with the test.
func NewAgentBackend(t *testing.T) *AgentBackend {
	t.Helper()
	b := &AgentBackend{Handlers: map[string]http.HandlerFunc{}}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Auth:   r.Header.Get("Authorization"),
		}
		if r.Body != nil {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
				rec.Body = body
			}
		}
		b.Requests = append(b.Requests, rec)

		if h, ok := b.Handlers[r.Method+" "+r.URL.Path]; ok {
			h(w, r)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(b.Server.Close)
	return b
}

// Client builds an internal.Client pointed at this backend.
func (b *AgentBackend) Client(tokens internal.TokenSource) *internal.Client {
	cfg := &internal.Config{APIURL: b.Server.URL, Timeout: 5 * time.Second}
	return internal.NewClient(cfg, tokens)
}

// Handle registers a JSON response for "METHOD path".
func (b *AgentBackend) Handle(method, path string, status int, body any) {
	b.Handlers[method+" "+path] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	}
}

// RequestsTo returns the recorded requests for a path.
func (b *AgentBackend) RequestsTo(path string) []RecordedRequest {
	var out []RecordedRequest
	for _, r := range b.Requests {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}
