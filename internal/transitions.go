package internal

// Order states form a flat enum: staff may move an order to any member.
var PedidoEstados = []string{"Pendiente", "En Proceso", "Entregado", "Cancelado"}

// Return states move through a fixed pipeline; Devuelta and Rechazada are
// terminal.
const (
	DevolucionSolicitada = "Solicitada"
	DevolucionEnProceso  = "En Proceso"
	DevolucionDevuelta   = "Devuelta"
	DevolucionRechazada  = "Rechazada"
)

var devolucionNext = map[string][]string{
	DevolucionSolicitada: {DevolucionEnProceso},
	DevolucionEnProceso:  {DevolucionDevuelta, DevolucionRechazada},
	DevolucionDevuelta:   {},
	DevolucionRechazada:  {},
}

// ValidPedidoEstado reports whether estado is a member of the order enum.
func ValidPedidoEstado(estado string) bool {
	for _, e := range PedidoEstados {
		if e == estado {
			return true
		}
	}
	return false
}

// AllowedDevolucionEstados returns the legal next states for a return in
// the given state. Unknown states have no transitions.
func AllowedDevolucionEstados(actual string) []string {
	next, ok := devolucionNext[actual]
	if !ok {
		return nil
	}
	return next
}

// AllowedDevolucionTransition reports whether a return may move from one
// state to another. Checked before any request is sent.
func AllowedDevolucionTransition(from, to string) bool {
	for _, e := range AllowedDevolucionEstados(from) {
		if e == to {
			return true
		}
	}
	return false
}
