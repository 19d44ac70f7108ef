package entity

import "github.com/shopspring/decimal"

// LineItem línea facturable. Total = Quantity * UnitPrice al momento de escribir.
type LineItem struct {
	ID          string
	InvoiceID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	Order       int
}
