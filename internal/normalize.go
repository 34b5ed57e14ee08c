package internal

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeResult flattens a raw agent result into a BookResult. For each
// field the top-level key wins, then the nested metadata key, then a
// secondary alias ("id" for libro_id, "document" for titulo). Fields that
// resolve to nothing stay empty/nil.
func NormalizeResult(raw map[string]any) BookResult {
	if raw == nil {
		return BookResult{}
	}
	meta, _ := raw["metadata"].(map[string]any)

	return BookResult{
		LibroID:   pickInt(raw, meta, "libro_id", "id"),
		Titulo:    pickString(raw, meta, "titulo", "document"),
		Autor:     pickString(raw, meta, "autor", ""),
		Precio:    pickDecimal(raw, meta, "precio"),
		Stock:     pickInt(raw, meta, "stock", ""),
		ISBN:      pickString(raw, meta, "isbn", ""),
		Editorial: pickString(raw, meta, "editorial", ""),
	}
}

// NormalizeResults normalizes every raw result and drops entries whose
// title could not be resolved.
func NormalizeResults(raws []map[string]any) []BookResult {
	out := make([]BookResult, 0, len(raws))
	for _, raw := range raws {
		book := NormalizeResult(raw)
		if strings.TrimSpace(book.Titulo) == "" {
			continue
		}
		out = append(out, book)
	}
	return out
}

func pickString(raw, meta map[string]any, key, alias string) string {
	if s, ok := asString(raw[key]); ok {
		return s
	}
	if meta != nil {
		if s, ok := asString(meta[key]); ok {
			return s
		}
	}
	if alias != "" {
		if s, ok := asString(raw[alias]); ok {
			return s
		}
	}
	return ""
}

func pickInt(raw, meta map[string]any, key, alias string) *int64 {
	if n, ok := asInt(raw[key]); ok {
		return &n
	}
	if meta != nil {
		if n, ok := asInt(meta[key]); ok {
			return &n
		}
	}
	if alias != "" {
		if n, ok := asInt(raw[alias]); ok {
			return &n
		}
	}
	return nil
}

func pickDecimal(raw, meta map[string]any, key string) *decimal.Decimal {
	if d, ok := asDecimal(raw[key]); ok {
		return &d
	}
	if meta != nil {
		if d, ok := asDecimal(meta[key]); ok {
			return &d
		}
	}
	return nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// asInt accepts the numeric shapes JSON decoding can produce. String ids
// are not coerced; the backend sends numbers for ids and stock.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func asDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	case string:
		if n == "" {
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	default:
		return decimal.Decimal{}, false
	}
}

// AsRaw converts a normalized result back into the map shape the agent
// uses, with only top-level keys. Normalizing it again yields the same
// BookResult.
func (b BookResult) AsRaw() map[string]any {
	raw := map[string]any{
		"titulo":    b.Titulo,
		"autor":     b.Autor,
		"isbn":      b.ISBN,
		"editorial": b.Editorial,
	}
	if b.LibroID != nil {
		raw["libro_id"] = *b.LibroID
	}
	if b.Precio != nil {
		raw["precio"] = b.Precio.String()
	}
	if b.Stock != nil {
		raw["stock"] = *b.Stock
	}
	return raw
}
