package internal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestClient_ExtractErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"sin stock"}`, "sin stock"},
		{"mensaje field", `{"mensaje":"estado inválido"}`, "estado inválido"},
		{"error field", `{"error":"prohibido"}`, "prohibido"},
		{"detail field", `{"detail":"no encontrado"}`, "no encontrado"},
		{"message wins over detail", `{"detail":"b","message":"a"}`, "a"},
		{"non-string value ignored", `{"message":42,"detail":"fallback"}`, "fallback"},
		{"unparseable body", `<html>boom</html>`, ""},
		{"empty object", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractErrorMessage([]byte(tt.body)); got != tt.want {
				t.Errorf("extractErrorMessage(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}

func TestClient_APIErrorStatus(t *testing.T) {
	client := newTestClient(t, &fakeSettings{token: "tok"}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"token expirado"}`))
	})

	_, err := client.AgentHistory(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("AgentHistory() error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "token expirado" {
		t.Errorf("APIError = %+v", apiErr)
	}
}

func TestClient_BearerHeaderOnlyWithToken(t *testing.T) {
	tests := []struct {
		name     string
		settings TokenSource
		want     string
	}{
		{"with token", &fakeSettings{token: "tok"}, "Bearer tok"},
		{"without token", &fakeSettings{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAuth string
			client := newTestClient(t, tt.settings, func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				_ = json.NewEncoder(w).Encode(map[string]any{})
			})

			if _, err := client.QueryAgent(context.Background(), QueryRequest{Message: "hola", K: 5}); err != nil {
				t.Fatalf("QueryAgent() error = %v", err)
			}
			if gotAuth != tt.want {
				t.Errorf("Authorization = %q, want %q", gotAuth, tt.want)
			}
		})
	}
}

func TestClient_ResolveDevolucion_NoAuthHeader(t *testing.T) {
	var gotAuth, gotPath string
	client := newTestClient(t, &fakeSettings{token: "tok"}, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 1, "estado": "Solicitada"})
	})

	devolucion, err := client.ResolveDevolucion(context.Background(), "tok-abc")
	if err != nil {
		t.Fatalf("ResolveDevolucion() error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("ResolveDevolucion() sent Authorization %q, want none", gotAuth)
	}
	if gotPath != "/api/compras/devoluciones/resolve/tok-abc/" {
		t.Errorf("ResolveDevolucion() path = %q", gotPath)
	}
	if devolucion.Estado != DevolucionSolicitada {
		t.Errorf("ResolveDevolucion() estado = %q", devolucion.Estado)
	}
}

func TestClient_CambiarEstadoPedido(t *testing.T) {
	var gotBody map[string]any
	var gotPath, gotMethod string
	client := newTestClient(t, &fakeSettings{token: "tok"}, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})

	if err := client.CambiarEstadoPedido(context.Background(), 12, "Entregado"); err != nil {
		t.Fatalf("CambiarEstadoPedido() error = %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/compras/pedidos/admin_cambiar_estado/" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if gotBody["pedido_id"] != float64(12) || gotBody["nuevo_estado"] != "Entregado" {
		t.Errorf("body = %+v", gotBody)
	}
}

func TestClient_PatchUsuario_StripsEmptyFields(t *testing.T) {
	var gotBody map[string]any
	var gotMethod, gotPath string
	client := newTestClient(t, &fakeSettings{token: "tok"}, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})

	fields := map[string]any{
		"email":      "nuevo@example.com",
		"first_name": "",
		"last_name":  nil,
		"is_active":  false,
	}
	if err := client.PatchUsuario(context.Background(), 3, fields); err != nil {
		t.Fatalf("PatchUsuario() error = %v", err)
	}

	if gotMethod != http.MethodPatch || gotPath != "/api/usuarios/usuarios/3/" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if gotBody["email"] != "nuevo@example.com" {
		t.Errorf("body email = %v", gotBody["email"])
	}
	if _, ok := gotBody["first_name"]; ok {
		t.Error("empty first_name was not stripped")
	}
	if _, ok := gotBody["last_name"]; ok {
		t.Error("nil last_name was not stripped")
	}
	if gotBody["is_active"] != false {
		t.Errorf("boolean false is a real value and must be kept, body = %+v", gotBody)
	}
}

func TestClient_StatusParsing(t *testing.T) {
	client := newTestClient(t, &fakeSettings{token: "tok"}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"llm": {"provider":"openai","model":"gpt-4o-mini","available":true,"mode":"server","timeout_sec":20,"max_tokens":512},
			"retrieval": {"vector_ready":true,"collection":"libros","embedding_model":"all-MiniLM","normalize_embeddings":true},
			"tools": {"read_only":["search_books"],"actions":["add_to_cart","reserve_book"],"actions_requires_auth":true},
			"limits": {"rate_limits":{"agent_query":"30/min","agent_actions":10}}
		}`))
	})

	status, err := client.Status(context.Background())
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.LLM.Provider != "openai" || !status.LLM.Available || status.LLM.MaxTokens != 512 {
		t.Errorf("LLM = %+v", status.LLM)
	}
	if !status.Retrieval.VectorReady || status.Retrieval.Collection != "libros" {
		t.Errorf("Retrieval = %+v", status.Retrieval)
	}
	if len(status.Tools.Actions) != 2 || !status.Tools.ActionsRequiresAuth {
		t.Errorf("Tools = %+v", status.Tools)
	}
	if status.Limits.RateLimits["agent_query"] != "30/min" {
		t.Errorf("RateLimits = %+v", status.Limits.RateLimits)
	}
	if status.Limits.RateLimits["agent_actions"] != "10" {
		t.Errorf("numeric rate limit = %q, want \"10\"", status.Limits.RateLimits["agent_actions"])
	}
}

func TestClient_UsuarioFlexibleDecoding(t *testing.T) {
	client := newTestClient(t, &fakeSettings{token: "tok"}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":1,"estado":"Pendiente","usuario":{"id":5,"username":"ana"}},
			{"id":2,"estado":"Entregado","usuario":"benito"}
		]`))
	})

	pedidos, err := client.AdminPedidos(context.Background())
	if err != nil {
		t.Fatalf("AdminPedidos() error = %v", err)
	}
	if len(pedidos) != 2 {
		t.Fatalf("AdminPedidos() returned %d rows, want 2", len(pedidos))
	}
	if pedidos[0].Usuario.Username != "ana" || pedidos[0].Usuario.ID != 5 {
		t.Errorf("object usuario = %+v", pedidos[0].Usuario)
	}
	if pedidos[1].Usuario.Username != "benito" {
		t.Errorf("string usuario = %+v", pedidos[1].Usuario)
	}
}
