package ui

import (
	"fmt"
	"strings"

	"github.com/libreria-aurora/aurora-cli/internal"
)

const wrapWidth = 80

// RenderMessage renders one transcript entry, including the result cards
// that belong to it. History-hydrated messages use the compact result
// list; live messages use full cards with action hints.
func RenderMessage(msg internal.ChatMessage) string {
	var b strings.Builder

	switch msg.Role {
	case internal.RoleUser:
		b.WriteString(userStyle.Render("Tú"))
	default:
		b.WriteString(assistantStyle.Render("Asistente"))
	}
	if msg.Pending {
		b.WriteString(" " + noticeStyle.Render("(enviando...)"))
	}
	b.WriteString("\n")
	b.WriteString(contentStyle.Render(wrapText(msg.Content, wrapWidth)))

	results := internal.NormalizeResults(msg.Results)
	if len(results) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	if msg.FromHistory {
		b.WriteString(renderHistoryResults(results))
	} else {
		b.WriteString(renderResultCards(results))
	}
	return b.String()
}

// renderHistoryResults shows the compact "Libros consultados" list used
// for hydrated messages.
func renderHistoryResults(results []internal.BookResult) string {
	var b strings.Builder
	b.WriteString(cardMetaStyle.Render("  Libros consultados"))
	for _, item := range results {
		b.WriteString("\n  • " + cardTitleStyle.Render(item.Titulo))
		if item.Autor != "" {
			b.WriteString(cardMetaStyle.Render(" — " + item.Autor))
		}
	}
	return b.String()
}

func renderResultCards(results []internal.BookResult) string {
	cards := make([]string, 0, len(results))
	for _, item := range results {
		cards = append(cards, renderCard(item))
	}
	return strings.Join(cards, "\n")
}

func renderCard(item internal.BookResult) string {
	var lines []string
	lines = append(lines, cardTitleStyle.Render(item.Titulo))

	autor := item.Autor
	if autor == "" {
		autor = "Autor no disponible"
	}
	lines = append(lines, cardMetaStyle.Render(autor))

	var details []string
	if item.Precio != nil {
		details = append(details, "Precio: $"+item.Precio.String())
	}
	if item.Stock != nil {
		details = append(details, fmt.Sprintf("Stock: %d", *item.Stock))
	}
	if item.ISBN != "" {
		details = append(details, "ISBN: "+item.ISBN)
	}
	if len(details) > 0 {
		lines = append(lines, cardMetaStyle.Render(strings.Join(details, "  ")))
	}

	if item.LibroID != nil {
		lines = append(lines, hintStyle.Render(fmt.Sprintf(
			"/carrito %d para agregar  ·  /reservar %d para reservar", *item.LibroID, *item.LibroID)))
	}

	return cardStyle.Render(strings.Join(lines, "\n"))
}

// RenderNotice renders an informational banner.
func RenderNotice(text string) string {
	return noticeStyle.Render(text)
}

// RenderError renders an error banner.
func RenderError(text string) string {
	return errorStyle.Render(text)
}

func wrapText(text string, width int) string {
	var wrapped []string
	for _, line := range strings.Split(text, "\n") {
		if len(line) <= width {
			wrapped = append(wrapped, line)
			continue
		}
		current := ""
		for _, word := range strings.Fields(line) {
			switch {
			case current == "":
				current = word
			case len(current)+len(word)+1 > width:
				wrapped = append(wrapped, current)
				current = word
			default:
				current += " " + word
			}
		}
		if current != "" {
			wrapped = append(wrapped, current)
		}
	}
	return strings.Join(wrapped, "\n")
}
