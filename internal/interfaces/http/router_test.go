package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/invoicething/internal/application/analytics"
	"github.com/jhoicas/invoicething/internal/application/auth"
	"github.com/jhoicas/invoicething/internal/application/billing"
	"github.com/jhoicas/invoicething/internal/application/dto"
	"github.com/jhoicas/invoicething/internal/application/usecase"
	"github.com/jhoicas/invoicething/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/invoicething/internal/infrastructure/pdf"
	"github.com/jhoicas/invoicething/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/invoicething/internal/interfaces/http"
	"github.com/jhoicas/invoicething/pkg/logger"
)

// newTestServer arma la API completa sobre el almacén en memoria.
func newTestServer() *fiber.App {
	log := logger.Nop()
	s := memory.NewStore()
	invoiceUC := billing.NewInvoiceUseCase(s.Invoices(), s.Clients(), s.Settings(), s, log)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(s.Users(), log),
		ClientUC:     usecase.NewClientUseCase(s.Clients(), log),
		SettingsUC:   usecase.NewSettingsUseCase(s.Settings(), log),
		InvoiceUC:    invoiceUC,
		InvoicePDF:   billing.NewPDFUseCase(s.Invoices(), s.Clients(), s.Users(), s.Settings(), infrapdf.NewMarotoPDFGenerator()),
		AttachmentUC: billing.NewAttachmentUseCase(storage.NewMemoryStore("http://files.test"), log),
		DashboardUC:  appanalytics.NewDashboardUseCase(s.Invoices(), s.Clients()),
		Auth:         testAuth,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createClient(t *testing.T, app *fiber.App, token, name string) dto.ClientResponse {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/clients", token, dto.CreateClientRequest{Name: name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ClientResponse](t, resp)
}

func invoiceBody(clientID, number string) dto.InvoiceRequest {
	rate := decimal.RequireFromString("0.09")
	return dto.InvoiceRequest{
		ClientID:      clientID,
		InvoiceNumber: number,
		IssueDate:     1740787200000, // 2025-03-01
		TaxRate:       &rate,
		LineItems: []dto.LineItemRequest{
			{Description: "Diseño", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(100)},
		},
	}
}

func TestRouter_UsuarioSincronizado(t *testing.T) {
	app := newTestServer()
	tok := bearer(t, "sub-1")

	name := "Ana"
	resp := call(t, app, http.MethodPost, "/api/users/sync", tok, dto.SyncUserRequest{Name: &name})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	synced := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "sub-1", synced.Subject)
	assert.Equal(t, "Ana", synced.Name)

	me := decode[dto.UserResponse](t, call(t, app, http.MethodGet, "/api/users/me", tok, nil))
	assert.Equal(t, synced.ID, me.ID)

	other := decode[dto.UserResponse](t, call(t, app, http.MethodGet, "/api/users/me", bearer(t, "sub-2"), nil))
	resp = call(t, app, http.MethodGet, "/api/users/"+other.ID, tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_SinToken(t *testing.T) {
	app := newTestServer()
	resp := call(t, app, http.MethodGet, "/api/invoices", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_CicloDeFactura(t *testing.T) {
	app := newTestServer()
	tok := bearer(t, "sub-1")
	client := createClient(t, app, tok, "Acme")

	next := decode[dto.NextInvoiceResponse](t, call(t, app, http.MethodGet, "/api/invoices/next-number", tok, nil))
	assert.Equal(t, "INV-0001", next.InvoiceNumber)

	resp := call(t, app, http.MethodPost, "/api/invoices", tok, invoiceBody(client.ID, next.InvoiceNumber))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.InvoiceResponse](t, resp)
	assert.True(t, decimal.RequireFromString("1090").Equal(created.Total), "total %s", created.Total)
	assert.Equal(t, "draft", created.Status)

	resp = call(t, app, http.MethodPatch, "/api/invoices/"+created.ID+"/status", tok, dto.UpdateStatusRequest{Status: "paid"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	list := decode[[]dto.InvoiceResponse](t, call(t, app, http.MethodGet, "/api/invoices?status=paid", tok, nil))
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Client)
	assert.Equal(t, "Acme", list[0].Client.Name)

	byClient := decode[[]dto.InvoiceResponse](t, call(t, app, http.MethodGet, "/api/clients/"+client.ID+"/invoices", tok, nil))
	assert.Len(t, byClient, 1)

	stats := decode[dto.DashboardStatsResponse](t, call(t, app, http.MethodGet, "/api/dashboard/stats", tok, nil))
	assert.True(t, decimal.RequireFromString("1090").Equal(stats.TotalEarnings))
	assert.Equal(t, 1, stats.PaidInvoices)
	assert.Equal(t, 1, stats.ActiveClients)
	assert.Equal(t, 1, stats.StatusCounts["paid"])
	assert.Len(t, stats.WeeklyRevenue, 8)

	next = decode[dto.NextInvoiceResponse](t, call(t, app, http.MethodGet, "/api/invoices/next-number", tok, nil))
	assert.Equal(t, "INV-0002", next.InvoiceNumber)

	resp = call(t, app, http.MethodGet, "/api/invoices/"+created.ID+"/pdf", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "INV-0001.pdf")
	resp.Body.Close()

	// El cliente con facturas no se puede borrar.
	resp = call(t, app, http.MethodDelete, "/api/clients/"+client.ID, tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = call(t, app, http.MethodDelete, "/api/invoices/"+created.ID, tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/invoices/"+created.ID, tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodDelete, "/api/clients/"+client.ID, tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRouter_Propiedad(t *testing.T) {
	app := newTestServer()
	owner := bearer(t, "owner")
	intruder := bearer(t, "intruder")
	client := createClient(t, app, owner, "Acme")

	resp := call(t, app, http.MethodPost, "/api/invoices", owner, invoiceBody(client.ID, "INV-0001"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.InvoiceResponse](t, resp)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/invoices/" + created.ID},
		{http.MethodDelete, "/api/invoices/" + created.ID},
		{http.MethodGet, "/api/invoices/" + created.ID + "/pdf"},
		{http.MethodGet, "/api/clients/" + client.ID},
	} {
		resp := call(t, app, tc.method, tc.path, intruder, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "%s %s", tc.method, tc.path)
	}

	// Crear una factura con el cliente de otro usuario.
	resp = call(t, app, http.MethodPost, "/api/invoices", intruder, invoiceBody(client.ID, "INV-0001"))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPatch, "/api/invoices/status", intruder, dto.BulkStatusRequest{IDs: []string{created.ID}, Status: "paid"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_Validaciones(t *testing.T) {
	app := newTestServer()
	tok := bearer(t, "sub-1")
	client := createClient(t, app, tok, "Acme")

	req := httptest.NewRequest(http.MethodPost, "/api/invoices", bytes.NewBufferString("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", body.Code)

	bad := invoiceBody(client.ID, "INV-0001")
	bad.LineItems[0].Quantity = decimal.NewFromInt(-1)
	resp = call(t, app, http.MethodPost, "/api/invoices", tok, bad)
	body = decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)

	resp = call(t, app, http.MethodGet, "/api/invoices?status=void", tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/clients", tok, dto.CreateClientRequest{Name: " "})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_BulkDelete(t *testing.T) {
	app := newTestServer()
	tok := bearer(t, "sub-1")
	client := createClient(t, app, tok, "Acme")

	var ids []string
	for _, n := range []string{"INV-0001", "INV-0002"} {
		resp := call(t, app, http.MethodPost, "/api/invoices", tok, invoiceBody(client.ID, n))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		ids = append(ids, decode[dto.InvoiceResponse](t, resp).ID)
	}

	res := decode[dto.BulkResult](t, call(t, app, http.MethodPost, "/api/invoices/bulk-delete", tok, dto.IDsRequest{IDs: append(ids, "missing")}))
	assert.Equal(t, 2, res.Affected)

	list := decode[[]dto.InvoiceResponse](t, call(t, app, http.MethodGet, "/api/invoices", tok, nil))
	assert.Empty(t, list)
}

func TestRouter_SettingsYArchivos(t *testing.T) {
	app := newTestServer()
	tok := bearer(t, "sub-1")

	defaults := decode[dto.SettingsResponse](t, call(t, app, http.MethodGet, "/api/settings", tok, nil))
	assert.Equal(t, "INV", defaults.InvoicePrefix)

	prefix := "ACME"
	saved := decode[dto.SettingsResponse](t, call(t, app, http.MethodPut, "/api/settings", tok, dto.UpsertSettingsRequest{InvoicePrefix: &prefix}))
	assert.Equal(t, "ACME", saved.InvoicePrefix)
	assert.NotEmpty(t, saved.ID)

	next := decode[dto.NextInvoiceResponse](t, call(t, app, http.MethodGet, "/api/invoices/next-number", tok, nil))
	assert.Equal(t, "ACME-0001", next.InvoiceNumber)

	up := decode[dto.UploadURLResponse](t, call(t, app, http.MethodPost, "/api/files/upload-url", tok, nil))
	require.NotEmpty(t, up.StorageID)

	got := decode[dto.FileURLResponse](t, call(t, app, http.MethodGet, "/api/files/url?id="+up.StorageID, tok, nil))
	require.NotNil(t, got.URL)

	resp := call(t, app, http.MethodDelete, "/api/files?id="+up.StorageID, tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	got = decode[dto.FileURLResponse](t, call(t, app, http.MethodGet, "/api/files/url?id="+up.StorageID, tok, nil))
	assert.Nil(t, got.URL)

	resp = call(t, app, http.MethodGet, "/api/files/url?id="+up.StorageID, bearer(t, "sub-2"), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
