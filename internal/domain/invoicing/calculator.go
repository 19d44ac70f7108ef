// Package invoicing contiene la lógica pura de facturación: cálculo de totales,
// sugerencia de numeración y agregados del dashboard. No accede a persistencia.
package invoicing

import (
	"fmt"
	"time"

	"github.com/jhoicas/invoicething/internal/domain"
	"github.com/shopspring/decimal"
)

// LineItemInput línea tal como la envía el cliente.
type LineItemInput struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// ClaimInput gasto reembolsable tal como lo envía el cliente.
type ClaimInput struct {
	Description  string
	Amount       decimal.Decimal
	Date         time.Time
	AttachmentID string
}

// Input entrada del calculador. RoundingIncrement nil = sin redondeo.
type Input struct {
	LineItems         []LineItemInput
	Claims            []ClaimInput
	TaxRate           decimal.Decimal
	RoundingIncrement *decimal.Decimal
}

// LineItemResult línea con total y posición calculados.
type LineItemResult struct {
	LineItemInput
	Total decimal.Decimal
	Order int
}

// ClaimResult gasto con su posición.
type ClaimResult struct {
	ClaimInput
	Order int
}

// Result campos monetarios derivados que se guardan en la factura.
type Result struct {
	LineItems          []LineItemResult
	Claims             []ClaimResult
	LineItemSubtotal   decimal.Decimal
	ClaimsTotal        decimal.Decimal
	Subtotal           decimal.Decimal
	Tax                decimal.Decimal
	Total              decimal.Decimal
	RoundingAdjustment decimal.Decimal // cero si no hay redondeo
	Rounded            bool
}

// AmountScale decimales con los que se guardan montos, cantidades y tasas
// (columnas NUMERIC(_, 6)). Entradas más finas se rechazan y los derivados se
// redondean a esta escala para que lo respondido coincida con lo guardado.
const AmountScale int32 = 6

var one = decimal.NewFromInt(1)

// Validate rechaza entradas que el calculador aceptaría pero que no tienen
// sentido de negocio: montos negativos, tasa fuera de [0, 1], incremento <= 0
// y valores con más decimales que AmountScale.
func Validate(in Input) error {
	for i, li := range in.LineItems {
		if li.Quantity.IsNegative() {
			return fmt.Errorf("%w: line_items[%d].quantity negativa", domain.ErrInvalidInput, i)
		}
		if li.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: line_items[%d].unit_price negativo", domain.ErrInvalidInput, i)
		}
		if err := ValidateScale(fmt.Sprintf("line_items[%d].quantity", i), li.Quantity); err != nil {
			return err
		}
		if err := ValidateScale(fmt.Sprintf("line_items[%d].unit_price", i), li.UnitPrice); err != nil {
			return err
		}
	}
	for i, c := range in.Claims {
		if c.Amount.IsNegative() {
			return fmt.Errorf("%w: claims[%d].amount negativo", domain.ErrInvalidInput, i)
		}
		if err := ValidateScale(fmt.Sprintf("claims[%d].amount", i), c.Amount); err != nil {
			return err
		}
	}
	if err := ValidateTaxRate(in.TaxRate); err != nil {
		return err
	}
	if in.RoundingIncrement != nil {
		if !in.RoundingIncrement.IsPositive() {
			return fmt.Errorf("%w: rounding_increment debe ser mayor que cero", domain.ErrInvalidInput)
		}
		if err := ValidateScale("rounding_increment", *in.RoundingIncrement); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTaxRate verifica que la tasa sea una fracción en [0, 1].
func ValidateTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(one) {
		return fmt.Errorf("%w: tax_rate debe estar entre 0 y 1", domain.ErrInvalidInput)
	}
	return ValidateScale("tax_rate", rate)
}

// ValidateScale rechaza valores con más de AmountScale decimales significativos.
// Ceros a la derecha no cuentan: 1.50000000 es válido.
func ValidateScale(field string, v decimal.Decimal) error {
	if !v.Equal(v.Truncate(AmountScale)) {
		return fmt.Errorf("%w: %s admite como máximo %d decimales", domain.ErrInvalidInput, field, AmountScale)
	}
	return nil
}

// Calculate deriva subtotal, impuesto, total y ajuste de redondeo.
//
//	subtotal = Σ(quantity * unitPrice) + Σ(claim.amount)
//	tax      = subtotal * taxRate
//
// quantity * unitPrice y tax se redondean a AmountScale decimales.
//	total    = subtotal + tax, o round(total/inc)*inc si hay redondeo
//
// Es total sobre su dominio: un incremento no positivo se ignora (Validate lo rechaza antes).
func Calculate(in Input) Result {
	res := Result{
		LineItems: make([]LineItemResult, 0, len(in.LineItems)),
		Claims:    make([]ClaimResult, 0, len(in.Claims)),
	}
	for i, li := range in.LineItems {
		total := li.Quantity.Mul(li.UnitPrice).Round(AmountScale)
		res.LineItemSubtotal = res.LineItemSubtotal.Add(total)
		res.LineItems = append(res.LineItems, LineItemResult{LineItemInput: li, Total: total, Order: i})
	}
	for i, c := range in.Claims {
		res.ClaimsTotal = res.ClaimsTotal.Add(c.Amount)
		res.Claims = append(res.Claims, ClaimResult{ClaimInput: c, Order: i})
	}

	res.Subtotal = res.LineItemSubtotal.Add(res.ClaimsTotal)
	res.Tax = res.Subtotal.Mul(in.TaxRate).Round(AmountScale)
	raw := res.Subtotal.Add(res.Tax)
	res.Total = raw

	if in.RoundingIncrement != nil && in.RoundingIncrement.IsPositive() {
		rounded := RoundToIncrement(raw, *in.RoundingIncrement)
		res.RoundingAdjustment = rounded.Sub(raw)
		res.Total = rounded
		res.Rounded = true
	}
	return res
}

// RoundToIncrement ajusta v al múltiplo más cercano de inc (mitades se alejan de cero).
func RoundToIncrement(v, inc decimal.Decimal) decimal.Decimal {
	// Div trunca a DivisionPrecision decimales; con la escala de montos reales es exacto.
	return v.Div(inc).Round(0).Mul(inc)
}
