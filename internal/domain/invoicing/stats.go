package invoicing

import (
	"time"

	"github.com/jhoicas/invoicething/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RevenueWeeks semanas que cubre la serie de ingresos del dashboard.
const RevenueWeeks = 8

// Stats agregados de la colección completa de facturas de un usuario.
type Stats struct {
	TotalEarnings    decimal.Decimal // Σ total de facturas paid
	TotalOutstanding decimal.Decimal // Σ total de facturas sent u overdue
	TotalInvoices    int
	PaidInvoices     int
	ActiveClients    int
	StatusCounts     map[entity.InvoiceStatus]int
}

// WeeklyRevenue ingresos de una semana (domingo a sábado).
type WeeklyRevenue struct {
	WeekStart time.Time
	Paid      decimal.Decimal
	Total     decimal.Decimal // excluye borradores
}

// Aggregate pliega las facturas y clientes de un usuario en estadísticas.
// Los borradores no cuentan ni como ingreso ni como pendiente.
func Aggregate(invoices []*entity.Invoice, clients []*entity.Client) Stats {
	st := Stats{
		TotalInvoices: len(invoices),
		ActiveClients: len(clients),
		StatusCounts:  make(map[entity.InvoiceStatus]int, len(entity.InvoiceStatuses)),
	}
	for _, inv := range invoices {
		st.StatusCounts[inv.Status]++
		switch {
		case inv.Status == entity.InvoiceStatusPaid:
			st.TotalEarnings = st.TotalEarnings.Add(inv.Total)
			st.PaidInvoices++
		case inv.Status.Outstanding():
			st.TotalOutstanding = st.TotalOutstanding.Add(inv.Total)
		}
	}
	return st
}

// WeeklyRevenueSeries construye la serie de las últimas RevenueWeeks semanas
// (la última es la semana en curso), agrupando por fecha de emisión.
func WeeklyRevenueSeries(invoices []*entity.Invoice, now time.Time) []WeeklyRevenue {
	current := startOfWeek(now)
	series := make([]WeeklyRevenue, RevenueWeeks)
	for i := range series {
		series[i].WeekStart = current.AddDate(0, 0, -7*(RevenueWeeks-1-i))
	}
	for _, inv := range invoices {
		if inv.Status == entity.InvoiceStatusDraft {
			continue
		}
		for i := range series {
			start := series[i].WeekStart
			end := start.AddDate(0, 0, 7)
			if inv.IssueDate.Before(start) || !inv.IssueDate.Before(end) {
				continue
			}
			series[i].Total = series[i].Total.Add(inv.Total)
			if inv.Status == entity.InvoiceStatusPaid {
				series[i].Paid = series[i].Paid.Add(inv.Total)
			}
			break
		}
	}
	return series
}

func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}
