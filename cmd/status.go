package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/libreria-aurora/aurora-cli/internal"
	"github.com/libreria-aurora/aurora-cli/internal/ui"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the agent's operational status",
	Long: `Fetch and display the agent's operational status: LLM provider,
retrieval configuration, exposed tools and rate limits. Re-run the
command to refresh.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, settings, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = settings.Close() }()

		out := cmd.OutOrStdout()
		if _, ok := settings.Token(); !ok {
			fmt.Fprintln(out, ui.RenderError("Necesitas iniciar sesión para ver el estado del agente."))
			return nil
		}

		status, err := client.Status(cmd.Context())
		if err != nil {
			fmt.Fprintln(out, ui.RenderError(statusErrorText(err)))
			return nil
		}

		fmt.Fprint(out, ui.RenderStatus(status, settings.LLMEnabled(), time.Now()))
		return nil
	},
}

func statusErrorText(err error) string {
	var apiErr *internal.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusUnauthorized {
			return "Tu sesión expiró. Inicia sesión nuevamente."
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return "No se pudo obtener el estado del agente."
	}
	return "No se pudo contactar el servidor."
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
