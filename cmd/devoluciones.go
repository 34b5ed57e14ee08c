package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/libreria-aurora/aurora-cli/internal"
	"github.com/spf13/cobra"
)

var devolucionesCmd = &cobra.Command{
	Use:   "devoluciones",
	Short: "Returns console",
}

var devolucionesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List return requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, settings, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = settings.Close() }()
		if err := requireToken(settings); err != nil {
			return err
		}

		devoluciones, err := client.AdminDevoluciones(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load returns: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(devoluciones) == 0 {
			fmt.Fprintln(out, "No hay devoluciones registradas.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPEDIDO\tUSUARIO\tESTADO\tSOLICITUD\tSIGUIENTES")
		for _, d := range devoluciones {
			pedido, usuario := "-", "-"
			if d.Pedido != nil {
				pedido = fmt.Sprintf("#%d", d.Pedido.ID)
				if d.Pedido.Usuario.Username != "" {
					usuario = d.Pedido.Usuario.Username
				}
			}
			next := internal.AllowedDevolucionEstados(d.Estado)
			siguientes := "-"
			if len(next) > 0 {
				siguientes = strings.Join(next, "/")
			}
			fmt.Fprintf(w, "#%d\t%s\t%s\t%s\t%s\t%s\n",
				d.ID, pedido, usuario, d.Estado, d.FechaSolicitud, siguientes)
		}
		return w.Flush()
	},
}

var devolucionesSetEstadoCmd = &cobra.Command{
	Use:   "set-estado <devolucion-id> <estado>",
	Short: "Advance a return through its pipeline",
	Long: `Move a return to its next state. Transitions are restricted:
Solicitada → En Proceso, En Proceso → Devuelta or Rechazada. Terminal
states cannot change. Illegal targets are rejected before any request.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		devolucionID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid return id %q", args[0])
		}
		estado := args[1]

		client, settings, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = settings.Close() }()
		if err := requireToken(settings); err != nil {
			return err
		}

		devoluciones, err := client.AdminDevoluciones(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load returns: %w", err)
		}
		var actual string
		found := false
		for _, d := range devoluciones {
			if d.ID == devolucionID {
				actual = d.Estado
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("return #%d not found", devolucionID)
		}

		if !internal.AllowedDevolucionTransition(actual, estado) {
			allowed := internal.AllowedDevolucionEstados(actual)
			if len(allowed) == 0 {
				return fmt.Errorf("return #%d is in terminal state %q", devolucionID, actual)
			}
			return fmt.Errorf("cannot move return #%d from %q to %q (allowed: %s)",
				devolucionID, actual, estado, strings.Join(allowed, ", "))
		}

		if err := client.UpdateEstadoDevolucion(cmd.Context(), devolucionID, estado); err != nil {
			return fmt.Errorf("failed to update return: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Devolución #%d → %s\n", devolucionID, estado)
		return nil
	},
}

func init() {
	adminCmd.AddCommand(devolucionesCmd)
	devolucionesCmd.AddCommand(devolucionesListCmd)
	devolucionesCmd.AddCommand(devolucionesSetEstadoCmd)
}
