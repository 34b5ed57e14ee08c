package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/libreria-aurora/aurora-cli/internal"
	"github.com/spf13/cobra"
)

var (
	pedidosEstado  string
	pedidosActivos bool
)

var pedidosCmd = &cobra.Command{
	Use:   "pedidos",
	Short: "Orders console",
}

var pedidosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	Long: `List all orders. Filtering is local: --estado keeps a single state,
--activos hides delivered and cancelled orders.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, settings, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = settings.Close() }()
		if err := requireToken(settings); err != nil {
			return err
		}

		pedidos, err := client.AdminPedidos(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load orders: %w", err)
		}

		filtered := pedidos[:0:0]
		for _, p := range pedidos {
			if pedidosEstado != "" && p.Estado != pedidosEstado {
				continue
			}
			if pedidosActivos && (p.Estado == "Entregado" || p.Estado == "Cancelado") {
				continue
			}
			filtered = append(filtered, p)
		}

		out := cmd.OutOrStdout()
		if len(filtered) == 0 {
			fmt.Fprintln(out, "No hay pedidos que mostrar.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tESTADO\tUSUARIO\tFECHA\tTOTAL")
		for _, p := range filtered {
			fmt.Fprintf(w, "#%d\t%s\t%s\t%s\t$%s\n",
				p.ID, p.Estado, p.Usuario.Username, p.Fecha, p.Total().StringFixed(2))
		}
		return w.Flush()
	},
}

var pedidosSetEstadoCmd = &cobra.Command{
	Use:   "set-estado <pedido-id> <estado>",
	Short: "Change an order's state",
	Long: fmt.Sprintf(`Move an order to any state of the fixed enum: %s.`,
		strings.Join(internal.PedidoEstados, ", ")),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pedidoID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}
		estado := args[1]
		if !internal.ValidPedidoEstado(estado) {
			return fmt.Errorf("unknown state %q (valid: %s)", estado, strings.Join(internal.PedidoEstados, ", "))
		}

		client, settings, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = settings.Close() }()
		if err := requireToken(settings); err != nil {
			return err
		}

		if err := client.CambiarEstadoPedido(cmd.Context(), pedidoID, estado); err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pedido #%d → %s\n", pedidoID, estado)
		return nil
	},
}

var pedidosHistorialCmd = &cobra.Command{
	Use:   "historial",
	Short: "List the purchase history",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, settings, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = settings.Close() }()
		if err := requireToken(settings); err != nil {
			return err
		}

		compras, err := client.AdminHistorialCompras(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load purchase history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(compras) == 0 {
			fmt.Fprintln(out, "Sin compras registradas.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPEDIDO\tUSUARIO\tFECHA\tESTADO\tTOTAL")
		for _, c := range compras {
			p := c.Pedido
			fmt.Fprintf(w, "#%d\t#%d\t%s\t%s\t%s\t$%s\n",
				c.ID, p.ID, p.Usuario.Username, p.Fecha, p.Estado, p.Total().StringFixed(2))
		}
		return w.Flush()
	},
}

func init() {
	adminCmd.AddCommand(pedidosCmd)
	pedidosCmd.AddCommand(pedidosListCmd)
	pedidosCmd.AddCommand(pedidosSetEstadoCmd)
	pedidosCmd.AddCommand(pedidosHistorialCmd)

	pedidosListCmd.Flags().StringVar(&pedidosEstado, "estado", "", "Show only orders in this state")
	pedidosListCmd.Flags().BoolVar(&pedidosActivos, "activos", false, "Hide delivered and cancelled orders")
}
