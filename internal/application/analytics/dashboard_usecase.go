// Package analytics contiene el caso de uso del dashboard: estadísticas de
// facturación del usuario y la serie semanal de ingresos.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/invoicething/internal/application/dto"
	"github.com/jhoicas/invoicething/internal/domain/entity"
	"github.com/jhoicas/invoicething/internal/domain/invoicing"
	"github.com/jhoicas/invoicething/internal/domain/repository"
)

const weekLabelLayout = "Jan 02"

// DashboardUseCase genera las estadísticas del dashboard.
//
// Lee todas las facturas y clientes del usuario en paralelo y delega el
// cálculo en invoicing.Aggregate y invoicing.WeeklyRevenueSeries.
type DashboardUseCase struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	now         func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(invoiceRepo repository.InvoiceRepository, clientRepo repository.ClientRepository) *DashboardUseCase {
	return &DashboardUseCase{invoiceRepo: invoiceRepo, clientRepo: clientRepo, now: time.Now}
}

// GetStats construye el DashboardStatsResponse del usuario.
func (uc *DashboardUseCase) GetStats(ctx context.Context, userID string) (*dto.DashboardStatsResponse, error) {
	var (
		invoices []*entity.Invoice
		clients  []*entity.Client
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		invoices, err = uc.invoiceRepo.ListByUser(gctx, userID, repository.InvoiceFilter{})
		if err != nil {
			return fmt.Errorf("dashboard: facturas: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		clients, err = uc.clientRepo.ListByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("dashboard: clientes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	st := invoicing.Aggregate(invoices, clients)
	out := &dto.DashboardStatsResponse{
		TotalEarnings:    st.TotalEarnings,
		TotalOutstanding: st.TotalOutstanding,
		TotalInvoices:    st.TotalInvoices,
		PaidInvoices:     st.PaidInvoices,
		ActiveClients:    st.ActiveClients,
		StatusCounts:     make(map[string]int, len(entity.InvoiceStatuses)),
	}
	// Todos los estados aparecen, aunque sea con cero.
	for _, s := range entity.InvoiceStatuses {
		out.StatusCounts[string(s)] = st.StatusCounts[s]
	}

	for _, w := range invoicing.WeeklyRevenueSeries(invoices, uc.now().UTC()) {
		out.WeeklyRevenue = append(out.WeeklyRevenue, dto.WeeklyRevenueDTO{
			WeekStart: dto.Millis(w.WeekStart),
			Label:     w.WeekStart.Format(weekLabelLayout),
			Paid:      w.Paid,
			Total:     w.Total,
		})
	}
	return out, nil
}
