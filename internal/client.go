package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// TokenSource supplies the bearer token for authenticated requests.
// SettingsStore implements it.
type TokenSource interface {
	Token() (string, bool)
}

// APIError is a non-2xx response with the backend's message extracted
// from the body (message/mensaje/error/detail, best effort).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// Client talks to the Libreria Aurora backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates a backend client using the configured base URL and
// timeout.
func NewClient(cfg *Config, tokens TokenSource) *Client {
	return &Client{
		baseURL:    cfg.APIURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tokens:     tokens,
	}
}

// QueryRequest is the body for POST /api/agent/.
type QueryRequest struct {
	Message      string `json:"message"`
	K            int    `json:"k"`
	PreferVector bool   `json:"prefer_vector"`
	UseLLM       bool   `json:"use_llm"`
	Trace        bool   `json:"trace"`
	SaveHistory  bool   `json:"save_history"`
}

// QueryAgent sends a conversational query. Auth is optional: the bearer
// header is attached only when a token is stored.
func (c *Client) QueryAgent(ctx context.Context, req QueryRequest) (*AgentResponse, error) {
	var resp AgentResponse
	if err := c.do(ctx, http.MethodPost, "/api/agent/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AgentHistory fetches the stored conversation for the authenticated user.
func (c *Client) AgentHistory(ctx context.Context) ([]HistoryMessage, error) {
	var resp struct {
		Messages []HistoryMessage `json:"messages"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/agent/history/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// AgentAction executes a backend-mutating action (cart add, reservation,
// order-status query).
func (c *Client) AgentAction(ctx context.Context, action string, payload map[string]any) (*AgentResponse, error) {
	body := map[string]any{
		"action":  action,
		"payload": payload,
		"trace":   false,
	}
	var resp AgentResponse
	if err := c.do(ctx, http.MethodPost, "/api/agent/actions/", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status fetches the agent's operational status.
func (c *Client) Status(ctx context.Context) (*AgentStatus, error) {
	var resp AgentStatus
	if err := c.do(ctx, http.MethodGet, "/api/agent/status/", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdminPedidos lists all orders.
func (c *Client) AdminPedidos(ctx context.Context) ([]Pedido, error) {
	var pedidos []Pedido
	if err := c.do(ctx, http.MethodGet, "/api/compras/pedidos/admin_list/", nil, &pedidos); err != nil {
		return nil, err
	}
	return pedidos, nil
}

// CambiarEstadoPedido applies an order state change.
func (c *Client) CambiarEstadoPedido(ctx context.Context, pedidoID int64, nuevoEstado string) error {
	body := map[string]any{
		"pedido_id":    pedidoID,
		"nuevo_estado": nuevoEstado,
	}
	return c.do(ctx, http.MethodPost, "/api/compras/pedidos/admin_cambiar_estado/", body, nil)
}

// AdminHistorialCompras lists the purchase history.
func (c *Client) AdminHistorialCompras(ctx context.Context) ([]CompraHistorial, error) {
	var compras []CompraHistorial
	if err := c.do(ctx, http.MethodGet, "/api/compras/historial-compras/admin_list/", nil, &compras); err != nil {
		return nil, err
	}
	return compras, nil
}

// AdminDevoluciones lists all returns.
func (c *Client) AdminDevoluciones(ctx context.Context) ([]Devolucion, error) {
	var devoluciones []Devolucion
	if err := c.do(ctx, http.MethodGet, "/api/compras/devoluciones/admin_list/", nil, &devoluciones); err != nil {
		return nil, err
	}
	return devoluciones, nil
}

// UpdateEstadoDevolucion applies a return state change.
func (c *Client) UpdateEstadoDevolucion(ctx context.Context, devolucionID int64, estado string) error {
	path := fmt.Sprintf("/api/compras/devoluciones/%d/admin_update_estado/", devolucionID)
	return c.do(ctx, http.MethodPost, path, map[string]any{"estado": estado}, nil)
}

// ResolveDevolucion resolves a return request by its confirmation token.
// The resolve endpoint is public; the token itself is the credential.
func (c *Client) ResolveDevolucion(ctx context.Context, token string) (*Devolucion, error) {
	var devolucion Devolucion
	path := fmt.Sprintf("/api/compras/devoluciones/resolve/%s/", token)
	if err := c.doUnauthenticated(ctx, http.MethodGet, path, nil, &devolucion); err != nil {
		return nil, err
	}
	return &devolucion, nil
}

// ConfirmItem is one confirmed return line.
type ConfirmItem struct {
	LibroID  int64 `json:"libro_id"`
	Cantidad int64 `json:"cantidad"`
}

// ConfirmarDevolucion confirms a return request with the selected items.
func (c *Client) ConfirmarDevolucion(ctx context.Context, token string, items []ConfirmItem) error {
	path := fmt.Sprintf("/api/compras/devoluciones/confirmar/%s/", token)
	return c.do(ctx, http.MethodPost, path, map[string]any{"items": items}, nil)
}

// Usuarios lists all users.
func (c *Client) Usuarios(ctx context.Context) ([]Usuario, error) {
	var usuarios []Usuario
	if err := c.do(ctx, http.MethodGet, "/api/usuarios/usuarios/", nil, &usuarios); err != nil {
		return nil, err
	}
	return usuarios, nil
}

// PatchUsuario applies a partial user update. Empty values are stripped
// before sending.
func (c *Client) PatchUsuario(ctx context.Context, usuarioID int64, fields map[string]any) error {
	clean := make(map[string]any, len(fields))
	for k, v := range fields {
		if v == nil || v == "" {
			continue
		}
		clean[k] = v
	}
	path := fmt.Sprintf("/api/usuarios/usuarios/%d/", usuarioID)
	return c.do(ctx, http.MethodPatch, path, clean, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.request(ctx, method, path, body, out, true)
}

func (c *Client) doUnauthenticated(ctx context.Context, method, path string, body, out any) error {
	return c.request(ctx, method, path, body, out, false)
}

func (c *Client) request(ctx context.Context, method, path string, body, out any, withAuth bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if withAuth && c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	LogDebug("%s %s", method, path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: extractErrorMessage(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

func (c *Client) endpoint(path string) string {
	base := c.baseURL
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return base + path
}

// extractErrorMessage pulls a human-readable message out of an error
// body. The backend is inconsistent about the field name.
func extractErrorMessage(data []byte) string {
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	for _, key := range []string{"message", "mensaje", "error", "detail"} {
		if s, ok := body[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
