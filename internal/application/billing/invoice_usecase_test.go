package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoicething/internal/application/billing"
	"github.com/jhoicas/invoicething/internal/application/dto"
	"github.com/jhoicas/invoicething/internal/domain"
	"github.com/jhoicas/invoicething/internal/domain/entity"
	"github.com/jhoicas/invoicething/internal/domain/repository"
	"github.com/jhoicas/invoicething/internal/infrastructure/memory"
	"github.com/jhoicas/invoicething/pkg/logger"
)

var ctx = context.Background()

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

type fixture struct {
	store *memory.Store
	uc    *billing.InvoiceUseCase
}

func newFixture() *fixture {
	s := memory.NewStore()
	return &fixture{
		store: s,
		uc:    billing.NewInvoiceUseCase(s.Invoices(), s.Clients(), s.Settings(), s, logger.Nop()),
	}
}

func (f *fixture) client(t *testing.T, userID, name string) *entity.Client {
	t.Helper()
	c := &entity.Client{UserID: userID, Name: name}
	require.NoError(t, f.store.Clients().Create(ctx, c))
	return c
}

func request(clientID, number string) dto.InvoiceRequest {
	issue := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return dto.InvoiceRequest{
		ClientID:      clientID,
		InvoiceNumber: number,
		IssueDate:     dto.Millis(issue),
		TaxRate:       dp("0.1"),
		LineItems: []dto.LineItemRequest{
			{Description: "Diseño", Quantity: d("2"), UnitPrice: d("100")},
			{Description: "Soporte", Quantity: d("1"), UnitPrice: d("50")},
		},
		Claims: []dto.ClaimRequest{
			{Description: "Taxi", Amount: d("25")},
		},
	}
}

func TestCreate_CalculaTotalesYDefaults(t *testing.T) {
	f := newFixture()
	c := f.client(t, "u1", "Acme")

	out, err := f.uc.Create(ctx, "u1", request(c.ID, "INV-0001"))
	require.NoError(t, err)

	assert.Equal(t, string(entity.InvoiceStatusDraft), out.Status)
	assert.True(t, d("275").Equal(out.Subtotal), "subtotal %s", out.Subtotal)
	assert.True(t, d("27.5").Equal(out.Tax), "tax %s", out.Tax)
	assert.True(t, d("302.5").Equal(out.Total), "total %s", out.Total)
	assert.Nil(t, out.RoundingAdjustment)

	issue := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, dto.Millis(issue.AddDate(0, 0, entity.DefaultDueDateDays)), out.DueDate)

	require.Len(t, out.LineItems, 2)
	assert.Equal(t, "Diseño", out.LineItems[0].Description)
	assert.True(t, d("200").Equal(out.LineItems[0].Total))
	assert.Equal(t, 0, out.LineItems[0].Order)
	assert.Equal(t, 1, out.LineItems[1].Order)
	require.Len(t, out.Claims, 1)
	assert.Equal(t, dto.Millis(issue), out.Claims[0].Date)
	require.NotNil(t, out.Client)
	assert.Equal(t, "Acme", out.Client.Name)
}

func TestCreate_AplicaRedondeoDeSettings(t *testing.T) {
	f := newFixture()
	c := f.client(t, "u1", "Acme")
	require.NoError(t, f.store.Settings().Create(ctx, &entity.Settings{
		UserID: "u1", InvoicePrefix: "INV", InvoiceNumberStart: 1, DueDateDays: 30,
		RoundingEnabled: true, RoundingIncrement: d("0.05"),
	}))

	req := dto.InvoiceRequest{
		ClientID:      c.ID,
		InvoiceNumber: "INV-0001",
		LineItems:     []dto.LineItemRequest{{Description: "x", Quantity: d("1"), UnitPrice: d("10.07")}},
	}
	out, err := f.uc.Create(ctx, "u1", req)
	require.NoError(t, err)
	assert.True(t, d("10.05").Equal(out.Total), "total %s", out.Total)
	require.NotNil(t, out.RoundingAdjustment)
	assert.True(t, d("-0.02").Equal(*out.RoundingAdjustment))
	assert.Equal(t, out.IssueDate+int64(30*24*time.Hour/time.Millisecond), out.DueDate)
}

func TestCreate_DesactivaRedondeoDeSettings(t *testing.T) {
	f := newFixture()
	c := f.client(t, "u1", "Acme")
	require.NoError(t, f.store.Settings().Create(ctx, &entity.Settings{
		UserID: "u1", InvoicePrefix: "INV", InvoiceNumberStart: 1, DueDateDays: 14,
		RoundingEnabled: true, RoundingIncrement: d("0.05"),
	}))

	off := false
	req := dto.InvoiceRequest{
		ClientID:        c.ID,
		InvoiceNumber:   "INV-0001",
		RoundingEnabled: &off,
		LineItems:       []dto.LineItemRequest{{Description: "x", Quantity: d("1"), UnitPrice: d("10.07")}},
	}
	out, err := f.uc.Create(ctx, "u1", req)
	require.NoError(t, err)
	assert.True(t, d("10.07").Equal(out.Total), "total %s", out.Total)
	assert.Nil(t, out.RoundingAdjustment)

	// Desactivado también ignora un incremento explícito.
	req.InvoiceNumber = "INV-0002"
	req.RoundingIncrement = dp("1")
	out, err = f.uc.Create(ctx, "u1", req)
	require.NoError(t, err)
	assert.True(t, d("10.07").Equal(out.Total), "total %s", out.Total)
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture()
	mine := f.client(t, "u1", "Acme")
	other := f.client(t, "u2", "Otro")

	cases := []struct {
		name string
		mut  func(r *dto.InvoiceRequest)
		want error
	}{
		{"sin cliente", func(r *dto.InvoiceRequest) { r.ClientID = "" }, domain.ErrInvalidInput},
		{"cliente inexistente", func(r *dto.InvoiceRequest) { r.ClientID = "nope" }, domain.ErrInvalidInput},
		{"cliente ajeno", func(r *dto.InvoiceRequest) { r.ClientID = other.ID }, domain.ErrForbidden},
		{"sin número", func(r *dto.InvoiceRequest) { r.InvoiceNumber = " " }, domain.ErrInvalidInput},
		{"estado desconocido", func(r *dto.InvoiceRequest) { r.Status = "void" }, domain.ErrInvalidInput},
		{"sin líneas ni gastos", func(r *dto.InvoiceRequest) { r.LineItems, r.Claims = nil, nil }, domain.ErrInvalidInput},
		{"cantidad negativa", func(r *dto.InvoiceRequest) { r.LineItems[0].Quantity = d("-1") }, domain.ErrInvalidInput},
		{"tasa fuera de rango", func(r *dto.InvoiceRequest) { r.TaxRate = dp("1.5") }, domain.ErrInvalidInput},
		{"incremento cero", func(r *dto.InvoiceRequest) { r.RoundingIncrement = dp("0") }, domain.ErrInvalidInput},
		{"adjunto ajeno", func(r *dto.InvoiceRequest) { r.Claims[0].AttachmentID = "users/u2/abc" }, domain.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := request(mine.ID, "INV-0001")
			tc.mut(&req)
			_, err := f.uc.Create(ctx, "u1", req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	list, err := f.store.Invoices().ListByUser(ctx, "u1", repository.InvoiceFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_AdjuntoPropio(t *testing.T) {
	f := newFixture()
	c := f.client(t, "u1", "Acme")
	req := request(c.ID, "INV-0001")
	req.Claims[0].AttachmentID = billing.AttachmentKeyPrefix("u1") + "recibo"

	out, err := f.uc.Create(ctx, "u1", req)
	require.NoError(t, err)
	assert.Equal(t, "users/u1/recibo", out.Claims[0].AttachmentID)
}

func TestGet_Propiedad(t *testing.T) {
	f := newFixture()
	c := f.client(t, "u1", "Acme")
	created, err := f.uc.Create(ctx, "u1", request(c.ID, "INV-0001"))
	require.NoError(t, err)

	_, err = f.uc.Get(ctx, "u2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Get(ctx, "u1", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := f.uc.Get(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Len(t, got.LineItems, 2)
	assert.Len(t, got.Claims, 1)
}

func TestUpdate_ReemplazaHijos(t *testing.T) {
	f := newFixture()
	c := f.client(t, "u1", "Acme")
	req := request(c.ID, "INV-0001")
	req.LineItems = append(req.LineItems, dto.LineItemRequest{Description: "Extra", Quantity: d("1"), UnitPrice: d("1")})
	created, err := f.uc.Create(ctx, "u1", req)
	require.NoError(t, err)
	require.Len(t, created.LineItems, 3)

	_, err = f.uc.UpdateStatus(ctx, "u1", created.ID, "sent")
	require.NoError(t, err)

	upd := request(c.ID, "INV-0001")
	upd.LineItems = []dto.LineItemRequest{{Description: "Único", Quantity: d("3"), UnitPrice: d("10")}}
	upd.Claims = nil
	out, err := f.uc.Update(ctx, "u1", created.ID, upd)
	require.NoError(t, err)

	require.Len(t, out.LineItems, 1)
	assert.Equal(t, "Único", out.LineItems[0].Description)
	assert.Empty(t, out.Claims)
	assert.True(t, d("33").Equal(out.Total), "total %s", out.Total)
	assert.Equal(t, "sent", out.Status)
	assert.Equal(t, 1, f.store.CountLineItems(created.ID))
	assert.Equal(t, 0, f.store.CountClaims(created.ID))
}

func TestUpdate_ErrorNoDejaCambios(t *testing.T) {
	f := newFixture()
	c := f.client(t, "u1", "Acme")
	created, err := f.uc.Create(ctx, "u1", request(c.ID, "INV-0001"))
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, "u2", created.ID, request(c.ID, "INV-0002"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := f.uc.Get(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", got.InvoiceNumber)
	assert.Len(t, got.LineItems, 2)
}

func TestDelete_Cascada(t *testing.T) {
	f := newFixture()
	c := f.client(t, "u1", "Acme")
	created, err := f.uc.Create(ctx, "u1", request(c.ID, "INV-0001"))
	require.NoError(t, err)
	require.Equal(t, 2, f.store.CountLineItems(created.ID))
	require.Equal(t, 1, f.store.CountClaims(created.ID))

	assert.ErrorIs(t, f.uc.Delete(ctx, "u2", created.ID), domain.ErrForbidden)
	require.NoError(t, f.uc.Delete(ctx, "u1", created.ID))

	assert.Equal(t, 0, f.store.CountLineItems(created.ID))
	assert.Equal(t, 0, f.store.CountClaims(created.ID))
	_, err = f.uc.Get(ctx, "u1", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.uc.Delete(ctx, "u1", created.ID), domain.ErrNotFound)
}

func TestBulk_StatusYDelete(t *testing.T) {
	f := newFixture()
	c := f.client(t, "u1", "Acme")
	a, err := f.uc.Create(ctx, "u1", request(c.ID, "INV-0001"))
	require.NoError(t, err)
	b, err := f.uc.Create(ctx, "u1", request(c.ID, "INV-0002"))
	require.NoError(t, err)

	res, err := f.uc.UpdateStatusBulk(ctx, "u1", []string{a.ID, b.ID, "missing", a.ID}, "paid")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Affected)

	list, err := f.uc.List(ctx, "u1", repository.InvoiceFilter{Status: entity.InvoiceStatusPaid})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	res, err = f.uc.DeleteMany(ctx, "u1", []string{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Affected)
	assert.Equal(t, 0, f.store.CountLineItems(a.ID))
	assert.Equal(t, 0, f.store.CountClaims(b.ID))
}

func TestBulk_IDAjenoAbortaTodo(t *testing.T) {
	f := newFixture()
	mine := f.client(t, "u1", "Acme")
	theirs := f.client(t, "u2", "Otro")
	a, err := f.uc.Create(ctx, "u1", request(mine.ID, "INV-0001"))
	require.NoError(t, err)
	x, err := f.uc.Create(ctx, "u2", request(theirs.ID, "INV-0001"))
	require.NoError(t, err)

	_, err = f.uc.UpdateStatusBulk(ctx, "u1", []string{a.ID, x.ID}, "paid")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	got, err := f.uc.Get(ctx, "u1", a.ID)
	require.NoError(t, err)
	assert.Equal(t, "draft", got.Status)

	_, err = f.uc.DeleteMany(ctx, "u1", []string{a.ID, x.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 2, f.store.CountLineItems(a.ID))
}

func TestUpdateStatus_EstadoInvalido(t *testing.T) {
	f := newFixture()
	c := f.client(t, "u1", "Acme")
	a, err := f.uc.Create(ctx, "u1", request(c.ID, "INV-0001"))
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(ctx, "u1", a.ID, "cancelled")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Sin grafo de transiciones: paid puede volver a draft.
	_, err = f.uc.UpdateStatus(ctx, "u1", a.ID, "paid")
	require.NoError(t, err)
	out, err := f.uc.UpdateStatus(ctx, "u1", a.ID, "DRAFT")
	require.NoError(t, err)
	assert.Equal(t, "draft", out.Status)
}

func TestList_FiltroPorClienteAjeno(t *testing.T) {
	f := newFixture()
	mine := f.client(t, "u1", "Acme")
	theirs := f.client(t, "u2", "Otro")
	_, err := f.uc.Create(ctx, "u1", request(mine.ID, "INV-0001"))
	require.NoError(t, err)

	_, err = f.uc.ListByClient(ctx, "u1", theirs.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := f.uc.ListByClient(ctx, "u1", mine.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Client)
	assert.Equal(t, "Acme", list[0].Client.Name)
	assert.Empty(t, list[0].LineItems)
}

func TestNextInvoiceNumber(t *testing.T) {
	f := newFixture()
	c := f.client(t, "u1", "Acme")

	next, err := f.uc.NextInvoiceNumber(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", next.InvoiceNumber)
	assert.Equal(t, next.IssueDate+int64(14*24*time.Hour/time.Millisecond), next.DueDate)
	assert.Nil(t, next.RoundingIncrement)

	_, err = f.uc.Create(ctx, "u1", request(c.ID, "INV-0007"))
	require.NoError(t, err)
	next, err = f.uc.NextInvoiceNumber(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "INV-0008", next.InvoiceNumber)

	require.NoError(t, f.store.Settings().Create(ctx, &entity.Settings{
		UserID: "u1", InvoicePrefix: "ACME", InvoiceNumberStart: 42, DueDateDays: 7,
		TaxRate: d("0.09"), PaymentInstructions: "PayNow",
	}))
	next, err = f.uc.NextInvoiceNumber(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "ACME-0008", next.InvoiceNumber)
	assert.True(t, d("0.09").Equal(next.TaxRate))
	assert.Equal(t, "PayNow", next.PaymentInstructions)

	// Otro usuario no ve las facturas de u1.
	next, err = f.uc.NextInvoiceNumber(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", next.InvoiceNumber)
}
