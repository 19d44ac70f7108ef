package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valores por defecto cuando el usuario aún no guardó su configuración.
const (
	DefaultInvoicePrefix      = "INV"
	DefaultInvoiceNumberStart = 1
	DefaultDueDateDays        = 14
)

// Settings configuración de facturación de un usuario (a lo sumo una por usuario).
type Settings struct {
	ID                  string
	UserID              string
	InvoicePrefix       string
	InvoiceNumberStart  int
	DueDateDays         int
	TaxRate             decimal.Decimal // fracción decimal, ej. 0.09
	PaymentInstructions string
	RoundingEnabled     bool
	RoundingIncrement   decimal.Decimal // ej. 0.05; solo aplica si RoundingEnabled
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DefaultSettings devuelve la configuración implícita de un usuario sin registro.
func DefaultSettings(userID string) *Settings {
	return &Settings{
		UserID:             userID,
		InvoicePrefix:      DefaultInvoicePrefix,
		InvoiceNumberStart: DefaultInvoiceNumberStart,
		DueDateDays:        DefaultDueDateDays,
		TaxRate:            decimal.Zero,
	}
}

// Rounding devuelve el incremento de redondeo vigente, o nil si está desactivado.
func (s *Settings) Rounding() *decimal.Decimal {
	if s == nil || !s.RoundingEnabled || !s.RoundingIncrement.IsPositive() {
		return nil
	}
	inc := s.RoundingIncrement
	return &inc
}
