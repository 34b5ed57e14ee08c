package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/libreria-aurora/aurora-cli/internal"
	"github.com/libreria-aurora/aurora-cli/internal/ui"
	"github.com/spf13/cobra"
)

var chatWindow int

var (
	chatHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	chatSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the catalog assistant",
	Long: `Interactive session with the Aurora catalog assistant.

Type a query to search the catalog. Result cards list the commands to
act on each book. Available commands:

  /carrito <libro-id> [cantidad]   Add a book to the cart
  /reservar <libro-id> [cantidad]  Reserve a book
  /pedido <pedido-id>              Check an order's status
  /arriba, /abajo, /fin            Move through the transcript
  /salir                           Leave the chat`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, settings, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = settings.Close() }()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		onAction := func(action string, resp *internal.AgentResponse) {
			internal.LogDebug("Action %s completed", action)
		}
		chat := internal.NewChat(client, settings, onAction)

		fmt.Fprintln(out, chatHeaderStyle.Render("Asistente Aurora"))
		fmt.Fprintln(out, chatSubtitleStyle.Render("Catálogo y acciones rápidas · /ayuda para ver los comandos"))

		if !chat.Authenticated() {
			fmt.Fprintln(out, ui.RenderNotice("Inicia sesión para guardar tu historial de conversación."))
		} else {
			fmt.Fprintln(out, ui.RenderNotice("Cargando historial..."))
			chat.LoadHistory(ctx)
			if notice := chat.HistoryNotice(); notice != "" {
				fmt.Fprintln(out, ui.RenderError(notice))
			}
		}

		window := ui.NewTailWindow(chatWindow)
		rendered := 0
		sync := func() {
			msgs := chat.Messages()
			appended := len(msgs) - rendered
			if appended <= 0 {
				return
			}
			window.Follow(appended)
			if window.AtBottom() {
				for _, msg := range msgs[rendered:] {
					fmt.Fprintln(out, ui.RenderMessage(msg))
				}
			} else {
				fmt.Fprintln(out, ui.RenderNotice(
					fmt.Sprintf("%d mensaje(s) nuevos abajo — /fin para saltar", appended)))
			}
			rendered = len(msgs)
		}
		redraw := func() {
			msgs := chat.Messages()
			start, end := window.Visible(len(msgs))
			fmt.Fprintln(out, ui.RenderNotice(fmt.Sprintf("— mensajes %d a %d de %d —", start+1, end, len(msgs))))
			for _, msg := range msgs[start:end] {
				fmt.Fprintln(out, ui.RenderMessage(msg))
			}
			if window.ShowJumpHint() {
				fmt.Fprintln(out, ui.RenderNotice("Estás arriba en la conversación — /fin para ir al final"))
			}
		}
		sync()

		scanner := bufio.NewScanner(os.Stdin)
		fmt.Fprint(out, "> ")
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			switch {
			case line == "":
				// Whitespace-only input is dropped without a request.
			case line == "/salir" || line == "/exit":
				return nil
			case line == "/ayuda":
				fmt.Fprintln(out, cmd.Long)
			case line == "/arriba":
				window.ScrollUp(1, len(chat.Messages()))
				redraw()
			case line == "/abajo":
				window.ScrollDown(1)
				redraw()
			case line == "/fin":
				window.JumpToBottom()
				redraw()
			case strings.HasPrefix(line, "/pedido"):
				handleOrderStatus(cmd, chat, line)
				sync()
			case strings.HasPrefix(line, "/carrito"):
				if id, n, ok := parseBookCommand(cmd, line); ok {
					chat.AddToCart(ctx, id, n)
				}
				sync()
			case strings.HasPrefix(line, "/reservar"):
				if id, n, ok := parseBookCommand(cmd, line); ok {
					chat.ReserveBook(ctx, id, n)
				}
				sync()
			case strings.HasPrefix(line, "/"):
				fmt.Fprintln(out, ui.RenderError("Comando desconocido. /ayuda para ver los comandos."))
			default:
				chat.Send(ctx, line)
				sync()
			}
			fmt.Fprint(out, "> ")
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		return nil
	},
}

// handleOrderStatus gates the order_status action on a numeric id and a
// stored token before dispatching.
func handleOrderStatus(cmd *cobra.Command, chat *internal.Chat, line string) {
	out := cmd.OutOrStdout()
	fields := strings.Fields(line)
	if len(fields) != 2 {
		fmt.Fprintln(out, ui.RenderError("Uso: /pedido <id>"))
		return
	}
	orderID, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		fmt.Fprintln(out, ui.RenderError("El ID de pedido debe ser numérico."))
		return
	}
	if !chat.Authenticated() {
		fmt.Fprintln(out, ui.RenderError("Necesitas iniciar sesión para consultar pedidos."))
		return
	}
	chat.OrderStatus(cmd.Context(), orderID)
}

func parseBookCommand(cmd *cobra.Command, line string) (int64, int64, bool) {
	out := cmd.OutOrStdout()
	fields := strings.Fields(line)
	if len(fields) < 2 || len(fields) > 3 {
		fmt.Fprintln(out, ui.RenderError(fmt.Sprintf("Uso: %s <libro-id> [cantidad]", fields[0])))
		return 0, 0, false
	}
	bookID, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		fmt.Fprintln(out, ui.RenderError("El ID de libro debe ser numérico."))
		return 0, 0, false
	}
	cantidad := int64(1)
	if len(fields) == 3 {
		cantidad, err = strconv.ParseInt(fields[2], 10, 64)
		if err != nil || cantidad < 1 {
			fmt.Fprintln(out, ui.RenderError("La cantidad debe ser un número positivo."))
			return 0, 0, false
		}
	}
	return bookID, cantidad, true
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().IntVarP(&chatWindow, "window", "n", 8, "Messages visible per page of the transcript")
}
