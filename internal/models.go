package internal

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Message roles used by the agent API.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one entry in the conversation transcript.
type ChatMessage struct {
	ID          string           `json:"id"`
	Role        string           `json:"role"`
	Content     string           `json:"content"`
	Meta        map[string]any   `json:"meta,omitempty"`
	Results     []map[string]any `json:"results,omitempty"`
	Actions     []map[string]any `json:"actions,omitempty"`
	FromHistory bool             `json:"from_history,omitempty"`
	Pending     bool             `json:"pending,omitempty"`
}

// BookResult is the normalized view over the heterogeneous result shapes
// the agent returns (top-level fields, nested metadata, vector-store docs).
type BookResult struct {
	LibroID   *int64           `json:"libro_id"`
	Titulo    string           `json:"titulo"`
	Autor     string           `json:"autor"`
	Precio    *decimal.Decimal `json:"precio"`
	Stock     *int64           `json:"stock"`
	ISBN      string           `json:"isbn"`
	Editorial string           `json:"editorial"`
}

// AgentResponse is the body returned by the query and action endpoints.
type AgentResponse struct {
	Message string           `json:"message"`
	Results []map[string]any `json:"results"`
	Actions []map[string]any `json:"actions"`
}

// HistoryMessage is one entry from /api/agent/history/.
type HistoryMessage struct {
	Role    string         `json:"role"`
	Content string         `json:"content"`
	Meta    map[string]any `json:"meta"`
}

// AgentStatus mirrors the backend operational status document. It is
// read-only on this side and never mutated locally.
type AgentStatus struct {
	LLM       LLMStatus       `json:"llm"`
	Retrieval RetrievalStatus `json:"retrieval"`
	Tools     ToolsStatus     `json:"tools"`
	Limits    LimitsStatus    `json:"limits"`
}

// LLMStatus describes the backend LLM provider configuration.
type LLMStatus struct {
	Provider            string  `json:"provider"`
	Model               string  `json:"model"`
	BaseURL             string  `json:"base_url"`
	Available           bool    `json:"available"`
	Mode                string  `json:"mode"`
	RequiresBYOKey      bool    `json:"requires_byo_key"`
	BYOKeyAllowed       bool    `json:"byo_key_allowed"`
	ServerKeyConfigured bool    `json:"server_key_configured"`
	TimeoutSec          float64 `json:"timeout_sec"`
	MaxTokens           int     `json:"max_tokens"`
}

// RetrievalStatus describes the backend vector-retrieval configuration.
type RetrievalStatus struct {
	VectorReady         bool   `json:"vector_ready"`
	Collection          string `json:"collection"`
	EmbeddingModel      string `json:"embedding_model"`
	NormalizeEmbeddings bool   `json:"normalize_embeddings"`
}

// ToolsStatus lists the tools the agent exposes.
type ToolsStatus struct {
	ReadOnly            []string `json:"read_only"`
	Actions             []string `json:"actions"`
	ActionsRequiresAuth bool     `json:"actions_requires_auth"`
}

// LimitsStatus carries the backend rate-limit table.
type LimitsStatus struct {
	RateLimits map[string]string `json:"rate_limits"`
}

// UnmarshalJSON accepts numeric or string rate-limit values.
func (l *LimitsStatus) UnmarshalJSON(data []byte) error {
	var raw struct {
		RateLimits map[string]json.RawMessage `json:"rate_limits"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.RateLimits == nil {
		return nil
	}
	l.RateLimits = make(map[string]string, len(raw.RateLimits))
	for k, v := range raw.RateLimits {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			l.RateLimits[k] = s
			continue
		}
		l.RateLimits[k] = string(v)
	}
	return nil
}

// Pedido is an order row from the admin listing. The API sends no
// precomputed total; it is derived from the lines.
type Pedido struct {
	ID      int64        `json:"id"`
	Estado  string       `json:"estado"`
	Usuario Usuario      `json:"usuario"`
	Fecha   string       `json:"fecha"`
	Items   []PedidoItem `json:"pedidolibro_set"`
}

// Total sums cantidad × precio over the order lines. Lines without a
// price contribute nothing.
func (p *Pedido) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		if item.Libro.Precio == nil {
			continue
		}
		total = total.Add(item.Libro.Precio.Mul(decimal.NewFromInt(item.Cantidad)))
	}
	return total
}

// PedidoItem is one line of an order, with the book nested under libro.
type PedidoItem struct {
	Cantidad int64 `json:"cantidad"`
	Libro    Libro `json:"libro"`
}

// Libro is the reduced book record nested inside order lines.
type Libro struct {
	ID     int64            `json:"id"`
	Titulo string           `json:"titulo"`
	Autor  string           `json:"autor"`
	Precio *decimal.Decimal `json:"precio"`
}

// CompraHistorial is a purchase-history row from the admin listing; the
// row nests the full order it archives.
type CompraHistorial struct {
	ID     int64  `json:"id"`
	Pedido Pedido `json:"pedido"`
}

// Devolucion is a return record.
type Devolucion struct {
	ID             int64            `json:"id"`
	Pedido         *Pedido          `json:"pedido"`
	Estado         string           `json:"estado"`
	FechaSolicitud string           `json:"fecha_solicitud"`
	Items          []DevolucionItem `json:"items"`
}

// DevolucionItem is one returnable line. The wire nests the book under
// "libro" and its cantidad is the maximum returnable quantity.
type DevolucionItem struct {
	LibroID  int64
	Titulo   string
	Cantidad int64
	Max      int64
}

// UnmarshalJSON flattens the nested libro and derives Max from the
// line's cantidad.
func (d *DevolucionItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Libro struct {
			ID     int64  `json:"id"`
			Titulo string `json:"titulo"`
		} `json:"libro"`
		Cantidad int64 `json:"cantidad"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.LibroID = raw.Libro.ID
	d.Titulo = raw.Libro.Titulo
	d.Cantidad = raw.Cantidad
	d.Max = raw.Cantidad
	return nil
}

// Usuario is a user record. The compras API also nests a reduced form of
// it inside pedidos, sometimes as a bare username string.
type Usuario struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Rol       string `json:"rol"`
	IsActive  *bool  `json:"is_active"`
}

// UnmarshalJSON tolerates "usuario" arriving as a bare username string
// instead of an object.
func (u *Usuario) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		u.Username = s
		return nil
	}
	type alias Usuario
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*u = Usuario(a)
	return nil
}
