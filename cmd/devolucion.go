package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/libreria-aurora/aurora-cli/internal"
	"github.com/libreria-aurora/aurora-cli/internal/ui"
	"github.com/spf13/cobra"
)

var devolucionItems []string

// devolucionCmd is the customer-side return confirmation flow, driven by
// the one-time token from the return request email.
var devolucionCmd = &cobra.Command{
	Use:   "devolucion",
	Short: "Confirm a return request by token",
}

var devolucionResolveCmd = &cobra.Command{
	Use:   "resolve <token>",
	Short: "Look up a return request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, settings, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = settings.Close() }()

		devolucion, err := client.ResolveDevolucion(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve return request: %w", err)
		}

		out := cmd.OutOrStdout()
		pedido := "-"
		if devolucion.Pedido != nil {
			pedido = fmt.Sprintf("#%d", devolucion.Pedido.ID)
		}
		fmt.Fprintf(out, "Devolución #%d · Pedido %s · Estado actual: %s\n",
			devolucion.ID, pedido, devolucion.Estado)
		if devolucion.Estado != internal.DevolucionSolicitada {
			fmt.Fprintln(out, ui.RenderNotice("La devolución ya fue procesada o está en revisión."))
		}

		if len(devolucion.Items) == 0 {
			return nil
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "LIBRO\tTITULO\tMAX")
		for _, item := range devolucion.Items {
			fmt.Fprintf(w, "%d\t%s\t%d\n", item.LibroID, item.Titulo, item.Max)
		}
		return w.Flush()
	},
}

var devolucionConfirmarCmd = &cobra.Command{
	Use:   "confirmar <token>",
	Short: "Confirm which books to return",
	Long: `Confirm a return request, selecting books with repeated --item
flags (libro_id=cantidad). Quantities are clamped to each line's maximum
and at least one must be positive. Only requests still in "Solicitada"
can be confirmed, and a stored token is required.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, settings, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = settings.Close() }()
		if err := requireToken(settings); err != nil {
			return err
		}

		devolucion, err := client.ResolveDevolucion(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve return request: %w", err)
		}
		if devolucion.Estado != internal.DevolucionSolicitada {
			return fmt.Errorf("return already processed or under review (state %q)", devolucion.Estado)
		}

		items, err := buildConfirmItems(devolucion.Items, devolucionItems)
		if err != nil {
			return err
		}

		if err := client.ConfirmarDevolucion(cmd.Context(), args[0], items); err != nil {
			return fmt.Errorf("failed to confirm return: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Devolución confirmada. Un staff la revisará pronto.")
		return nil
	},
}

// buildConfirmItems parses --item libro_id=cantidad pairs, clamps each
// quantity to [0, max] and requires at least one positive line.
func buildConfirmItems(lines []internal.DevolucionItem, specs []string) ([]internal.ConfirmItem, error) {
	maxByLibro := make(map[int64]int64, len(lines))
	for _, line := range lines {
		maxByLibro[line.LibroID] = line.Max
	}

	items := make([]internal.ConfirmItem, 0, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(spec, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid --item %q (expected libro_id=cantidad)", spec)
		}
		libroID, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid libro_id in --item %q", spec)
		}
		cantidad, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid cantidad in --item %q", spec)
		}
		max, ok := maxByLibro[libroID]
		if !ok {
			return nil, fmt.Errorf("libro %d is not part of this return", libroID)
		}
		if cantidad < 0 {
			cantidad = 0
		}
		if cantidad > max {
			cantidad = max
		}
		if cantidad == 0 {
			continue
		}
		items = append(items, internal.ConfirmItem{LibroID: libroID, Cantidad: cantidad})
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("selecciona al menos un libro para devolver")
	}
	return items, nil
}

func init() {
	rootCmd.AddCommand(devolucionCmd)
	devolucionCmd.AddCommand(devolucionResolveCmd)
	devolucionCmd.AddCommand(devolucionConfirmarCmd)

	devolucionConfirmarCmd.Flags().StringArrayVar(&devolucionItems, "item", nil,
		"Book to return as libro_id=cantidad (repeatable)")
}
