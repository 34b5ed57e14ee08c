package internal

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// User-facing strings, kept identical to the web assistant.
const (
	GreetingMessage = "Hola 👋 Soy tu asistente del catálogo. ¿Qué libro buscas?"

	defaultReply       = "Listo."
	defaultActionReply = "Acción completada."

	msgQueryFailed    = "Ocurrió un error al consultar el agente."
	msgAgentUnreached = "No pude contactar el agente. Intenta de nuevo."
	msgActionFailed   = "No se pudo ejecutar la acción."
	msgActionRetry    = "No se pudo ejecutar la acción. Intenta nuevamente."
	msgLoginRequired  = "Necesitas iniciar sesión para ejecutar acciones."

	msgHistoryExpired     = "Tu sesión expiró. Inicia sesión para ver tu historial."
	msgHistoryFailed      = "No se pudo cargar el historial."
	msgHistoryUnreachable = "No pude cargar tu historial. Intenta más tarde."
)

const defaultK = 5

// ChatSettings is the slice of the settings store the chat engine reads
// at send time.
type ChatSettings interface {
	TokenSource
	LLMEnabled() bool
}

// ActionListener is notified after an action completes successfully. A
// chat has zero or one listener.
type ActionListener func(action string, resp *AgentResponse)

// Chat owns the conversational transcript and the send/receive cycle
// against the agent API. The transcript is append-only for the lifetime
// of the chat, except for the one-time replacement when a non-empty
// history loads. Every failure path resolves back to an idle, interactive
// state; no method returns an error to the caller.
type Chat struct {
	client   *Client
	settings ChatSettings
	onAction ActionListener

	mu             sync.Mutex
	messages       []ChatMessage
	busy           bool
	historyLoading bool
	historyNotice  string
}

// NewChat creates a chat seeded with the assistant greeting.
func NewChat(client *Client, settings ChatSettings, onAction ActionListener) *Chat {
	return &Chat{
		client:   client,
		settings: settings,
		onAction: onAction,
		messages: []ChatMessage{{
			ID:      uuid.NewString(),
			Role:    RoleAssistant,
			Content: GreetingMessage,
		}},
	}
}

// Messages returns a snapshot of the transcript.
func (c *Chat) Messages() []ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Authenticated reports whether a bearer token is currently stored.
func (c *Chat) Authenticated() bool {
	_, ok := c.settings.Token()
	return ok
}

// HistoryNotice returns the current history error notice, empty when the
// last load succeeded or none ran.
func (c *Chat) HistoryNotice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.historyNotice
}

// HistoryLoading reports whether a history load is in flight.
func (c *Chat) HistoryLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.historyLoading
}

func (c *Chat) append(msg ChatMessage) {
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()
}

func (c *Chat) appendAssistant(content string, resp *AgentResponse) {
	msg := ChatMessage{
		ID:      uuid.NewString(),
		Role:    RoleAssistant,
		Content: content,
	}
	if resp != nil {
		msg.Results = resp.Results
		msg.Actions = resp.Actions
	}
	c.append(msg)
}

// Send submits a query to the agent. Empty input and re-entrant sends are
// dropped silently. The user message is appended optimistically before
// the request and never rolled back; exactly one assistant message
// (answer or error text) follows.
func (c *Chat) Send(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	userID := uuid.NewString()
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return
	}
	c.busy = true
	c.messages = append(c.messages, ChatMessage{
		ID:      userID,
		Role:    RoleUser,
		Content: text,
		Pending: true,
	})
	c.mu.Unlock()

	_, hasToken := c.settings.Token()
	resp, err := c.client.QueryAgent(ctx, QueryRequest{
		Message:      text,
		K:            defaultK,
		PreferVector: true,
		UseLLM:       c.settings.LLMEnabled(),
		Trace:        false,
		SaveHistory:  hasToken,
	})

	c.mu.Lock()
	c.busy = false
	c.finalizeLocked(userID)
	c.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	switch {
	case err == nil:
		content := resp.Message
		if content == "" {
			content = defaultReply
		}
		c.appendAssistant(content, resp)
	default:
		c.appendAssistant(sendErrorText(err), nil)
	}
}

func (c *Chat) finalizeLocked(id string) {
	for i := range c.messages {
		if c.messages[i].ID == id {
			c.messages[i].Pending = false
			return
		}
	}
}

func sendErrorText(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return msgQueryFailed
	}
	return msgAgentUnreached
}

// LoadHistory hydrates the transcript from the stored conversation. It is
// a no-op without a token. A cancelled context discards the result
// without touching any state. The transcript is replaced only when the
// mapped, filtered history is non-empty, so an empty history never
// clobbers the greeting.
func (c *Chat) LoadHistory(ctx context.Context) {
	if _, ok := c.settings.Token(); !ok {
		return
	}

	c.mu.Lock()
	c.historyLoading = true
	c.historyNotice = ""
	c.mu.Unlock()

	history, err := c.client.AgentHistory(ctx)
	if ctx.Err() != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.historyLoading = false

	if err != nil {
		c.historyNotice = historyErrorText(err)
		return
	}

	mapped := make([]ChatMessage, 0, len(history))
	for _, msg := range history {
		if msg.Content == "" {
			continue
		}
		meta := msg.Meta
		if meta == nil {
			meta = map[string]any{}
		}
		mapped = append(mapped, ChatMessage{
			ID:          uuid.NewString(),
			Role:        msg.Role,
			Content:     msg.Content,
			Meta:        meta,
			Results:     metaMaps(meta, "results"),
			Actions:     metaMaps(meta, "actions"),
			FromHistory: true,
		})
	}

	if len(mapped) > 0 {
		c.messages = mapped
	}
}

func historyErrorText(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusUnauthorized {
			return msgHistoryExpired
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return msgHistoryFailed
	}
	return msgHistoryUnreachable
}

func metaMaps(meta map[string]any, key string) []map[string]any {
	items, ok := meta[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// DispatchAction executes a backend action. Without a token it
// short-circuits into a local "login required" assistant message and
// sends nothing. On success the action listener, if any, is notified
// exactly once with the response.
func (c *Chat) DispatchAction(ctx context.Context, action string, payload map[string]any) {
	if _, ok := c.settings.Token(); !ok {
		c.appendAssistant(msgLoginRequired, nil)
		return
	}

	resp, err := c.client.AgentAction(ctx, action, payload)
	if ctx.Err() != nil {
		return
	}

	if err != nil {
		c.appendAssistant(actionErrorText(err), nil)
		return
	}

	content := resp.Message
	if content == "" {
		content = defaultActionReply
	}
	c.appendAssistant(content, resp)

	if c.onAction != nil {
		c.onAction(action, resp)
	}
}

func actionErrorText(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return msgActionFailed
	}
	return msgActionRetry
}

// AddToCart dispatches an add_to_cart action for one copy of a book.
func (c *Chat) AddToCart(ctx context.Context, bookID, cantidad int64) {
	c.DispatchAction(ctx, "add_to_cart", map[string]any{"book_id": bookID, "cantidad": cantidad})
}

// ReserveBook dispatches a reserve_book action.
func (c *Chat) ReserveBook(ctx context.Context, bookID, cantidad int64) {
	c.DispatchAction(ctx, "reserve_book", map[string]any{"book_id": bookID, "cantidad": cantidad})
}

// OrderStatus dispatches an order_status query for a numeric order id.
func (c *Chat) OrderStatus(ctx context.Context, orderID int64) {
	c.DispatchAction(ctx, "order_status", map[string]any{"order_id": orderID})
}
