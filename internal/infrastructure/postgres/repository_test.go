package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoicething/internal/application/billing"
	"github.com/jhoicas/invoicething/internal/domain"
	"github.com/jhoicas/invoicething/internal/domain/entity"
	"github.com/jhoicas/invoicething/internal/domain/repository"
	"github.com/jhoicas/invoicething/internal/infrastructure/postgres"
	"github.com/jhoicas/invoicething/pkg/logger"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

const missingID = "6f1c2a9e-0d4b-4c55-9a51-2f0e8c7b1d23"

var (
	ctx = context.Background()
	ts  = time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
)

func TestUserRepo_CreateSubjectDuplicado(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewUserRepository(mock)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), "sub_1", "a@b.c", "Ana", "", ts).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(ctx, &entity.User{Subject: "sub_1", Email: "a@b.c", Name: "Ana", CreatedAt: ts})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserRepo_GetBySubject(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewUserRepository(mock)

	rows := pgxmock.NewRows([]string{"id", "subject", "email", "name", "image_url", "created_at"}).
		AddRow("u1", "sub_1", "a@b.c", "Ana", "", ts)
	mock.ExpectQuery("FROM users WHERE subject = \\$1").WithArgs("sub_1").WillReturnRows(rows)

	u, err := repo.GetBySubject(ctx, "sub_1")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Ana", u.Name)
}

func TestUserRepo_GetByIDNoExiste(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewUserRepository(mock)

	mock.ExpectQuery("FROM users WHERE id = \\$1").WithArgs(missingID).WillReturnError(pgx.ErrNoRows)

	u, err := repo.GetByID(ctx, missingID)
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestGetByID_IDMalformadoEsInexistente(t *testing.T) {
	mock := newMock(t)

	// Sin expectativas: un ID que no es UUID no llega a la base.
	u, err := postgres.NewUserRepository(mock).GetByID(ctx, "abc")
	assert.NoError(t, err)
	assert.Nil(t, u)

	c, err := postgres.NewClientRepository(mock).GetByID(ctx, "abc")
	assert.NoError(t, err)
	assert.Nil(t, c)

	inv, err := postgres.NewInvoiceRepository(mock).GetByID(ctx, "abc")
	assert.NoError(t, err)
	assert.Nil(t, inv)
}

func TestInvoiceRepo_GetByIDSintaxisInvalida(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewInvoiceRepository(mock)

	mock.ExpectQuery("FROM invoices WHERE id = \\$1").WithArgs(missingID).
		WillReturnError(&pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"})

	inv, err := repo.GetByID(ctx, missingID)
	assert.NoError(t, err)
	assert.Nil(t, inv)
}

func TestClientRepo_DeleteConFacturas(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewClientRepository(mock)

	mock.ExpectExec("DELETE FROM clients").WithArgs("c1").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.Delete(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestClientRepo_ListByUser(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewClientRepository(mock)

	cols := []string{"id", "user_id", "name", "email", "street_name", "building_name", "unit_number",
		"postal_code", "contact_person", "created_at", "updated_at"}
	rows := pgxmock.NewRows(cols).
		AddRow("c1", "u1", "Acme", "", "1 Main St", "Tower", "12", "12345", "Bob", ts, ts).
		AddRow("c2", "u1", "Zeta", "z@z.z", "", "", "", "", "", ts, ts)
	mock.ExpectQuery("FROM clients WHERE user_id = \\$1").WithArgs("u1").WillReturnRows(rows)

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []string{"1 Main St", "Tower, Unit 12", "Postal Code 12345"}, list[0].Address.Lines())
	assert.True(t, list[1].Address.IsEmpty())
}

func TestSettingsRepo_GetByUser(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewSettingsRepository(mock)

	cols := []string{"id", "user_id", "invoice_prefix", "invoice_number_start", "due_date_days", "tax_rate",
		"payment_instructions", "rounding_enabled", "rounding_increment", "created_at", "updated_at"}
	rows := pgxmock.NewRows(cols).
		AddRow("s1", "u1", "ACME", 5, 30, decimal.RequireFromString("0.09"), "PayNow", true,
			decimal.RequireFromString("0.05"), ts, ts)
	mock.ExpectQuery("FROM settings WHERE user_id = \\$1").WithArgs("u1").WillReturnRows(rows)

	s, err := repo.GetByUser(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "ACME", s.InvoicePrefix)
	assert.Equal(t, 5, s.InvoiceNumberStart)
	require.NotNil(t, s.Rounding())
	assert.Equal(t, "0.05", s.Rounding().String())
}

func TestSettingsRepo_CreateDuplicado(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewSettingsRepository(mock)

	mock.ExpectExec("INSERT INTO settings").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(ctx, entity.DefaultSettings("u1"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

var invoiceCols = []string{"id", "user_id", "client_id", "invoice_number", "issue_date", "due_date", "status",
	"tax_rate", "subtotal", "tax", "total", "rounding_adjustment", "notes", "created_at", "updated_at"}

func invoiceRow(rows *pgxmock.Rows, id, number, status string) *pgxmock.Rows {
	zero := decimal.Zero
	return rows.AddRow(id, "u1", "c1", number, ts, ts.AddDate(0, 0, 14), status,
		zero, decimal.NewFromInt(100), zero, decimal.NewFromInt(100), zero, "", ts, ts)
}

func TestInvoiceRepo_ListByUserConFiltros(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewInvoiceRepository(mock)

	rows := invoiceRow(pgxmock.NewRows(invoiceCols), "i1", "INV-0002", "sent")
	mock.ExpectQuery("WHERE user_id = \\$1 AND client_id = \\$2 AND status = \\$3 ORDER BY issue_date DESC, created_at DESC").
		WithArgs("u1", "c1", "sent").
		WillReturnRows(rows)

	list, err := repo.ListByUser(ctx, "u1", repository.InvoiceFilter{ClientID: "c1", Status: entity.InvoiceStatusSent})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.InvoiceStatusSent, list[0].Status)
	assert.True(t, list[0].Total.Equal(decimal.NewFromInt(100)))
}

func TestInvoiceRepo_GetLatestByUser(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewInvoiceRepository(mock)

	mock.ExpectQuery("ORDER BY issue_date DESC, created_at DESC LIMIT 1").WithArgs("u1").
		WillReturnRows(invoiceRow(pgxmock.NewRows(invoiceCols), "i9", "INV-0009", "paid"))
	inv, err := repo.GetLatestByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "INV-0009", inv.InvoiceNumber)

	mock.ExpectQuery("LIMIT 1").WithArgs("u2").WillReturnError(pgx.ErrNoRows)
	inv, err = repo.GetLatestByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, inv)
}

func TestInvoiceRepo_GetLineItems(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewInvoiceRepository(mock)

	rows := pgxmock.NewRows([]string{"id", "invoice_id", "description", "quantity", "unit_price", "total", "sort_order"}).
		AddRow("l1", "i1", "Diseño", "2", "50.5", "101", 0).
		AddRow("l2", "i1", "Hosting", "1", "10", "10", 1)
	mock.ExpectQuery("FROM line_items WHERE invoice_id = \\$1 ORDER BY sort_order").WithArgs("i1").WillReturnRows(rows)

	items, err := repo.GetLineItems(ctx, "i1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[1].Order)
	assert.True(t, items[0].Total.Equal(decimal.NewFromInt(101)))
}

func TestTxRunner_CommitYRollback(t *testing.T) {
	mock := newMock(t)
	runner := postgres.NewTxRunner(mock)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM line_items").WithArgs("i1").WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec("DELETE FROM claims").WithArgs("i1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM invoices").WithArgs("i1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	err := runner.RunInvoices(ctx, func(invoices repository.InvoiceRepository, _ repository.ClientRepository) error {
		if err := invoices.DeleteLineItems(ctx, "i1"); err != nil {
			return err
		}
		if err := invoices.DeleteClaims(ctx, "i1"); err != nil {
			return err
		}
		return invoices.Delete(ctx, "i1")
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()
	err = runner.RunInvoices(ctx, func(repository.InvoiceRepository, repository.ClientRepository) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestInvoiceUseCase_DeleteManyIgnoraIDMalformado(t *testing.T) {
	mock := newMock(t)
	const id = "0b8e5c1a-7f3d-4e2b-8c6a-1d9f4a2b3c4e"
	uc := billing.NewInvoiceUseCase(
		postgres.NewInvoiceRepository(mock),
		postgres.NewClientRepository(mock),
		postgres.NewSettingsRepository(mock),
		postgres.NewTxRunner(mock),
		logger.Nop(),
	)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM invoices WHERE id = \\$1").WithArgs(id).
		WillReturnRows(invoiceRow(pgxmock.NewRows(invoiceCols), id, "INV-0001", "draft"))
	mock.ExpectExec("DELETE FROM line_items").WithArgs(id).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM claims").WithArgs(id).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM invoices").WithArgs(id).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	res, err := uc.DeleteMany(ctx, "u1", []string{"abc", id})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Affected)
}
