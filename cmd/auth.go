package cmd

import (
	"fmt"

	"github.com/libreria-aurora/aurora-cli/internal/ui"
	"github.com/spf13/cobra"
)

// authCmd manages the stored bearer token. Token issuance happens on the
// website; this only persists the credential the other commands read.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored session token",
}

var authSetTokenCmd = &cobra.Command{
	Use:   "set-token <token>",
	Short: "Store the bearer token for authenticated requests",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := openSettings()
		if err != nil {
			return err
		}
		defer func() { _ = settings.Close() }()

		if err := settings.SetToken(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Token guardado.")
		return nil
	},
}

var authShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show whether a token is stored",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := openSettings()
		if err != nil {
			return err
		}
		defer func() { _ = settings.Close() }()

		out := cmd.OutOrStdout()
		if token, ok := settings.Token(); ok {
			fmt.Fprintf(out, "Token guardado (%d caracteres).\n", len(token))
		} else {
			fmt.Fprintln(out, ui.RenderNotice("Sin token. Usa 'aurora auth set-token <token>'."))
		}
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := openSettings()
		if err != nil {
			return err
		}
		defer func() { _ = settings.Close() }()

		if err := settings.ClearToken(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Sesión cerrada.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetTokenCmd)
	authCmd.AddCommand(authShowCmd)
	authCmd.AddCommand(authLogoutCmd)
}
