package cmd

import (
	"fmt"

	"github.com/libreria-aurora/aurora-cli/internal"
	"github.com/spf13/cobra"
)

// adminCmd groups the staff consoles. Every subcommand needs a stored
// token; the backend enforces the actual staff permission.
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Staff consoles for orders, returns and users",
}

// requireToken fails fast before any request when no token is stored.
func requireToken(settings *internal.SettingsStore) error {
	if _, ok := settings.Token(); !ok {
		return fmt.Errorf("no token stored; run 'aurora auth set-token <token>' first")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(adminCmd)
}
