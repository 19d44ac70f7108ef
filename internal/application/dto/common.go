package dto

import "time"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// IDsRequest lista de IDs para operaciones masivas.
type IDsRequest struct {
	IDs []string `json:"ids"`
}

// BulkResult resultado de una operación masiva.
type BulkResult struct {
	Affected int `json:"affected"`
}

// Millis convierte un instante a milisegundos epoch (formato de fechas de la API).
// El instante cero se serializa como 0.
func Millis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// FromMillis convierte milisegundos epoch a time.Time en UTC. 0 = instante cero.
func FromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
