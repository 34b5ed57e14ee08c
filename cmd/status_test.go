package cmd

import (
	"errors"
	"net/http"
	"testing"

	"github.com/libreria-aurora/aurora-cli/internal"
)

func TestStatusErrorText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "expired session",
			err:  &internal.APIError{Status: http.StatusUnauthorized},
			want: "Tu sesión expiró. Inicia sesión nuevamente.",
		},
		{
			name: "server message passed through",
			err:  &internal.APIError{Status: http.StatusServiceUnavailable, Message: "mantenimiento programado"},
			want: "mantenimiento programado",
		},
		{
			name: "api error without message",
			err:  &internal.APIError{Status: http.StatusInternalServerError},
			want: "No se pudo obtener el estado del agente.",
		},
		{
			name: "transport failure",
			err:  errors.New("dial tcp: connection refused"),
			want: "No se pudo contactar el servidor.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusErrorText(tt.err); got != tt.want {
				t.Errorf("statusErrorText() = %q, want %q", got, tt.want)
			}
		})
	}
}
