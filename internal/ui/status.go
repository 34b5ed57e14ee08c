package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/libreria-aurora/aurora-cli/internal"
)

// FormatValue renders a status value the way the panel does: booleans
// become Sí/No, empty values become an em dash placeholder.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "—"
	case bool:
		if val {
			return "Sí"
		}
		return "No"
	case string:
		if val == "" {
			return "—"
		}
		return val
	default:
		return fmt.Sprint(val)
	}
}

// RenderStatus renders the full agent status panel.
func RenderStatus(status *internal.AgentStatus, llmEnabled bool, updatedAt time.Time) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Estado operativo"))
	b.WriteString("\n")
	b.WriteString(noticeStyle.Render("Actualizado: " + updatedAt.Format("15:04:05")))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("LLM"))
	b.WriteString("\n")
	pref := "No"
	if llmEnabled {
		pref = "Sí"
	}
	writeRow(&b, "Usar LLM en respuestas (local)", pref)
	writeRow(&b, "Proveedor", FormatValue(status.LLM.Provider))
	writeRow(&b, "Modelo", FormatValue(status.LLM.Model))
	writeRow(&b, "Base URL", FormatValue(status.LLM.BaseURL))
	writeRow(&b, "Disponible", FormatValue(status.LLM.Available))
	writeRow(&b, "Modo", FormatValue(status.LLM.Mode))
	writeRow(&b, "BYO requerido", FormatValue(status.LLM.RequiresBYOKey))
	writeRow(&b, "BYO permitido", FormatValue(status.LLM.BYOKeyAllowed))
	writeRow(&b, "Key servidor", FormatValue(status.LLM.ServerKeyConfigured))
	writeRow(&b, "Timeout (s)", FormatValue(status.LLM.TimeoutSec))
	writeRow(&b, "Max tokens", FormatValue(status.LLM.MaxTokens))

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Retrieval"))
	b.WriteString("\n")
	writeRow(&b, "Vector listo", FormatValue(status.Retrieval.VectorReady))
	writeRow(&b, "Colección", FormatValue(status.Retrieval.Collection))
	writeRow(&b, "Embeddings", FormatValue(status.Retrieval.EmbeddingModel))
	writeRow(&b, "Normaliza", FormatValue(status.Retrieval.NormalizeEmbeddings))

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Tools"))
	b.WriteString("\n")
	writeRow(&b, "Read-only", renderTags(status.Tools.ReadOnly))
	writeRow(&b, "Acciones", renderTags(status.Tools.Actions))
	writeRow(&b, "Requiere auth", FormatValue(status.Tools.ActionsRequiresAuth))

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Límites"))
	b.WriteString("\n")
	if len(status.Limits.RateLimits) == 0 {
		b.WriteString(noticeStyle.Render("  Sin límites configurados."))
		b.WriteString("\n")
	} else {
		for key, value := range status.Limits.RateLimits {
			writeRow(&b, key, value)
		}
	}

	return b.String()
}

func writeRow(b *strings.Builder, label, value string) {
	b.WriteString(fmt.Sprintf("  %s %s\n",
		labelStyle.Render(fmt.Sprintf("%-30s", label)),
		valueStyle.Render(value)))
}

func renderTags(tags []string) string {
	if len(tags) == 0 {
		return "—"
	}
	styled := make([]string, 0, len(tags))
	for _, tag := range tags {
		styled = append(styled, tagStyle.Render(tag))
	}
	return strings.Join(styled, ", ")
}
