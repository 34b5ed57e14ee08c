package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	userEmail     string
	userFirstName string
	userLastName  string
	userRol       string
	userActivo    bool
	userInactivo  bool
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Users console",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, settings, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = settings.Close() }()
		if err := requireToken(settings); err != nil {
			return err
		}

		usuarios, err := client.Usuarios(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load users: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(usuarios) == 0 {
			fmt.Fprintln(out, "No hay usuarios registrados.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSUARIO\tEMAIL\tNOMBRE\tROL\tACTIVO")
		for _, u := range usuarios {
			activo := "-"
			if u.IsActive != nil {
				if *u.IsActive {
					activo = "Sí"
				} else {
					activo = "No"
				}
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s %s\t%s\t%s\n",
				u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.Rol, activo)
		}
		return w.Flush()
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <user-id>",
	Short: "Update user fields",
	Long: `Apply a partial update to a user. Only the flags you pass are
sent; empty values are stripped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		usuarioID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}
		if userActivo && userInactivo {
			return fmt.Errorf("--activo and --inactivo are mutually exclusive")
		}

		fields := map[string]any{
			"email":      userEmail,
			"first_name": userFirstName,
			"last_name":  userLastName,
			"rol":        userRol,
		}
		if userActivo {
			fields["is_active"] = true
		}
		if userInactivo {
			fields["is_active"] = false
		}

		client, settings, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = settings.Close() }()
		if err := requireToken(settings); err != nil {
			return err
		}

		if err := client.PatchUsuario(cmd.Context(), usuarioID, fields); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Usuario %d actualizado.\n", usuarioID)
		return nil
	},
}

func init() {
	adminCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersUpdateCmd)

	usersUpdateCmd.Flags().StringVar(&userEmail, "email", "", "New email")
	usersUpdateCmd.Flags().StringVar(&userFirstName, "first-name", "", "New first name")
	usersUpdateCmd.Flags().StringVar(&userLastName, "last-name", "", "New last name")
	usersUpdateCmd.Flags().StringVar(&userRol, "rol", "", "New role")
	usersUpdateCmd.Flags().BoolVar(&userActivo, "activo", false, "Activate the account")
	usersUpdateCmd.Flags().BoolVar(&userInactivo, "inactivo", false, "Deactivate the account")
}
