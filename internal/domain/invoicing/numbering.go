package invoicing

import (
	"fmt"
	"strings"

	"github.com/jhoicas/invoicething/internal/domain/entity"
)

// numberWidth ancho mínimo del consecutivo (relleno con ceros).
const numberWidth = 4

// NextInvoiceNumber sugiere el siguiente número de factura a partir de la
// configuración y la última factura emitida (nil si no hay ninguna).
//
// Se toma el último segmento tras "-" del número anterior y se incrementa.
// Si ese segmento no es numérico se reinicia desde el número inicial configurado.
// Es solo una sugerencia: no se reserva ni se garantiza unicidad.
func NextInvoiceNumber(settings *entity.Settings, last *entity.Invoice) string {
	prefix := entity.DefaultInvoicePrefix
	start := entity.DefaultInvoiceNumberStart
	if settings != nil {
		prefix = settings.InvoicePrefix
		start = settings.InvoiceNumberStart
	}
	if last == nil {
		return FormatInvoiceNumber(prefix, start)
	}
	n, ok := ParseInvoiceSequence(last.InvoiceNumber)
	if !ok {
		return FormatInvoiceNumber(prefix, start)
	}
	return FormatInvoiceNumber(prefix, n+1)
}

// FormatInvoiceNumber arma "{prefix}-{n con 4 dígitos}".
func FormatInvoiceNumber(prefix string, n int) string {
	return fmt.Sprintf("%s-%0*d", prefix, numberWidth, n)
}

// ParseInvoiceSequence extrae el consecutivo del último segmento de un número
// de factura. Un segmento vacío cuenta como 0; se aceptan dígitos iniciales
// seguidos de texto ("0007b" -> 7).
func ParseInvoiceSequence(invoiceNumber string) (int, bool) {
	parts := strings.Split(invoiceNumber, "-")
	last := parts[len(parts)-1]
	if last == "" {
		last = "0"
	}
	return parseLeadingInt(last)
}

func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
		if digits > 15 {
			return 0, false
		}
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
