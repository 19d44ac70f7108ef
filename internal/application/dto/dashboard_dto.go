package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse respuesta de GET /api/dashboard/stats.
// Los borradores no cuentan en ganancias ni en pendientes.
type DashboardStatsResponse struct {
	TotalEarnings    decimal.Decimal    `json:"total_earnings"`    // Σ facturas paid
	TotalOutstanding decimal.Decimal    `json:"total_outstanding"` // Σ facturas sent + overdue
	TotalInvoices    int                `json:"total_invoices"`
	PaidInvoices     int                `json:"paid_invoices"`
	ActiveClients    int                `json:"active_clients"`
	StatusCounts     map[string]int     `json:"status_counts"`
	WeeklyRevenue    []WeeklyRevenueDTO `json:"weekly_revenue"`
}

// WeeklyRevenueDTO punto de la serie semanal de ingresos.
type WeeklyRevenueDTO struct {
	WeekStart int64           `json:"week_start"`
	Label     string          `json:"label"` // ej: "Jan 02"
	Paid      decimal.Decimal `json:"paid"`
	Total     decimal.Decimal `json:"total"`
}
