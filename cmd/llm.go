package cmd

import (
	"fmt"

	"github.com/libreria-aurora/aurora-cli/internal/ui"
	"github.com/spf13/cobra"
)

// llmCmd manages the local LLM preference read by the chat at send time.
// It is a client-side preference only; the backend decides what the
// degraded mode looks like.
var llmCmd = &cobra.Command{
	Use:   "llm [on|off|show]",
	Short: "Toggle LLM-generated responses",
	Long: `Control whether chat queries ask for LLM-generated responses.
When disabled the agent answers in degraded (retrieval-only) mode.
The preference persists across sessions.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off", "show"},
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := openSettings()
		if err != nil {
			return err
		}
		defer func() { _ = settings.Close() }()

		out := cmd.OutOrStdout()
		switch args[0] {
		case "on":
			if err := settings.SetLLMEnabled(true); err != nil {
				return err
			}
			fmt.Fprintln(out, "LLM activado.")
		case "off":
			if err := settings.SetLLMEnabled(false); err != nil {
				return err
			}
			fmt.Fprintln(out, ui.RenderNotice("LLM desactivado: el agente responde en modo degradado."))
		case "show":
			if settings.LLMEnabled() {
				fmt.Fprintln(out, "LLM: activado")
			} else {
				fmt.Fprintln(out, "LLM: desactivado")
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(llmCmd)
}
