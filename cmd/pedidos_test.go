package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/libreria-aurora/aurora-cli/internal"
	"github.com/libreria-aurora/aurora-cli/testutil"
)

// seedHome points the command helpers at a throwaway home directory with
// a stored token, so commands run against the scripted backend.
func seedHome(t *testing.T, backend *testutil.AgentBackend) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("AURORA_API_URL", backend.Server.URL)

	store, err := internal.OpenSettings(filepath.Join(home, ".aurora", "settings.db"))
	if err != nil {
		t.Fatalf("Failed to open settings: %v", err)
	}
	if err := store.SetToken("test-token"); err != nil {
		t.Fatalf("Failed to store token: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Failed to close settings: %v", err)
	}
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	err := rootCmd.Execute()
	return stdout.String(), err
}

func TestPedidosList_ActivosFilter(t *testing.T) {
	backend := testutil.NewAgentBackend(t)
	backend.Handle("GET", "/api/compras/pedidos/admin_list/", 200, []map[string]any{
		{"id": 1, "estado": "Pendiente", "usuario": map[string]any{"username": "ana"}, "fecha": "2026-08-01T10:00:00Z",
			"pedidolibro_set": []map[string]any{
				{"cantidad": 2, "libro": map[string]any{"id": 7, "titulo": "El Hobbit", "precio": "15.50"}},
			}},
		{"id": 2, "estado": "Entregado", "usuario": map[string]any{"username": "benito"}, "fecha": "2026-08-02T10:00:00Z"},
		{"id": 3, "estado": "Cancelado", "usuario": map[string]any{"username": "carla"}, "fecha": "2026-08-03T10:00:00Z"},
	})
	seedHome(t, backend)

	out, err := runCommand(t, "admin", "pedidos", "list", "--activos")
	if err != nil {
		t.Fatalf("pedidos list error = %v", err)
	}
	t.Cleanup(func() { pedidosActivos = false })

	if !strings.Contains(out, "#1") || !strings.Contains(out, "ana") {
		t.Errorf("output missing active order: %q", out)
	}
	if !strings.Contains(out, "2026-08-01T10:00:00Z") {
		t.Errorf("output missing order date: %q", out)
	}
	if !strings.Contains(out, "$31.00") {
		t.Errorf("output missing line-computed total: %q", out)
	}
	for _, hidden := range []string{"#2", "#3"} {
		if strings.Contains(out, hidden) {
			t.Errorf("output shows filtered order %s: %q", hidden, out)
		}
	}

	reqs := backend.RequestsTo("/api/compras/pedidos/admin_list/")
	if len(reqs) != 1 {
		t.Fatalf("backend saw %d requests, want 1", len(reqs))
	}
	if reqs[0].Auth != "Bearer test-token" {
		t.Errorf("Authorization = %q", reqs[0].Auth)
	}
}

func TestPedidosHistorial_NestedPedidoRows(t *testing.T) {
	backend := testutil.NewAgentBackend(t)
	backend.Handle("GET", "/api/compras/historial-compras/admin_list/", 200, []map[string]any{
		{"id": 11, "pedido": map[string]any{
			"id": 5, "estado": "Entregado", "usuario": "ana", "fecha": "2026-07-01T09:00:00Z",
			"pedidolibro_set": []map[string]any{
				{"cantidad": 1, "libro": map[string]any{"titulo": "Rayuela", "precio": "19.90"}},
			},
		}},
	})
	seedHome(t, backend)

	out, err := runCommand(t, "admin", "pedidos", "historial")
	if err != nil {
		t.Fatalf("historial error = %v", err)
	}
	for _, want := range []string{"#11", "#5", "ana", "2026-07-01T09:00:00Z", "Entregado", "$19.90"} {
		if !strings.Contains(out, want) {
			t.Errorf("historial output missing %q: %q", want, out)
		}
	}
}

func TestPedidosSetEstado(t *testing.T) {
	backend := testutil.NewAgentBackend(t)
	backend.Handle("POST", "/api/compras/pedidos/admin_cambiar_estado/", 200, map[string]any{"ok": true})
	seedHome(t, backend)

	out, err := runCommand(t, "admin", "pedidos", "set-estado", "7", "En Proceso")
	if err != nil {
		t.Fatalf("set-estado error = %v", err)
	}
	if !strings.Contains(out, "Pedido #7 → En Proceso") {
		t.Errorf("output = %q", out)
	}

	reqs := backend.RequestsTo("/api/compras/pedidos/admin_cambiar_estado/")
	if len(reqs) != 1 {
		t.Fatalf("backend saw %d requests, want 1", len(reqs))
	}
	if reqs[0].Body["pedido_id"] != float64(7) || reqs[0].Body["nuevo_estado"] != "En Proceso" {
		t.Errorf("body = %+v", reqs[0].Body)
	}
}

func TestPedidosSetEstado_RejectsUnknownState(t *testing.T) {
	backend := testutil.NewAgentBackend(t)
	seedHome(t, backend)

	_, err := runCommand(t, "admin", "pedidos", "set-estado", "7", "Perdido")
	if err == nil || !strings.Contains(err.Error(), "unknown state") {
		t.Fatalf("set-estado error = %v, want unknown state", err)
	}
	if len(backend.Requests) != 0 {
		t.Errorf("invalid state reached the backend: %+v", backend.Requests)
	}
}
