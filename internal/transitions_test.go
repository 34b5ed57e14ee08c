package internal

import "testing"

func TestValidPedidoEstado(t *testing.T) {
	for _, estado := range PedidoEstados {
		if !ValidPedidoEstado(estado) {
			t.Errorf("ValidPedidoEstado(%q) = false, want true", estado)
		}
	}
	for _, estado := range []string{"", "Enviado", "pendiente", "Devuelta"} {
		if ValidPedidoEstado(estado) {
			t.Errorf("ValidPedidoEstado(%q) = true, want false", estado)
		}
	}
}

func TestAllowedDevolucionTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{DevolucionSolicitada, DevolucionEnProceso, true},
		{DevolucionSolicitada, DevolucionDevuelta, false},
		{DevolucionSolicitada, DevolucionRechazada, false},
		{DevolucionSolicitada, DevolucionSolicitada, false},
		{DevolucionEnProceso, DevolucionDevuelta, true},
		{DevolucionEnProceso, DevolucionRechazada, true},
		{DevolucionEnProceso, DevolucionSolicitada, false},
		{DevolucionDevuelta, DevolucionEnProceso, false},
		{DevolucionRechazada, DevolucionEnProceso, false},
		{"Desconocido", DevolucionEnProceso, false},
	}

	for _, tt := range tests {
		if got := AllowedDevolucionTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("AllowedDevolucionTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestAllowedDevolucionEstados_TerminalStates(t *testing.T) {
	for _, estado := range []string{DevolucionDevuelta, DevolucionRechazada} {
		if next := AllowedDevolucionEstados(estado); len(next) != 0 {
			t.Errorf("AllowedDevolucionEstados(%q) = %v, want none", estado, next)
		}
	}
}
