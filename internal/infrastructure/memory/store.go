// Package memory implementa los puertos de persistencia en memoria. Se usa con
// STORAGE_DRIVER=memory (demos locales) y en los tests de casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/invoicething/internal/application/billing"
	"github.com/jhoicas/invoicething/internal/domain/entity"
	"github.com/jhoicas/invoicething/internal/domain/repository"
)

var _ billing.InvoiceTxRunner = (*Store)(nil)

type tables struct {
	users     map[string]entity.User
	clients   map[string]entity.Client
	settings  map[string]entity.Settings // por user_id
	invoices  map[string]entity.Invoice
	lineItems map[string]entity.LineItem
	claims    map[string]entity.Claim
}

func newTables() *tables {
	return &tables{
		users:     map[string]entity.User{},
		clients:   map[string]entity.Client{},
		settings:  map[string]entity.Settings{},
		invoices:  map[string]entity.Invoice{},
		lineItems: map[string]entity.LineItem{},
		claims:    map[string]entity.Claim{},
	}
}

func (t *tables) clone() *tables {
	c := newTables()
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.clients {
		c.clients[k] = v
	}
	for k, v := range t.settings {
		c.settings[k] = v
	}
	for k, v := range t.invoices {
		c.invoices[k] = v
	}
	for k, v := range t.lineItems {
		c.lineItems[k] = v
	}
	for k, v := range t.claims {
		c.claims[k] = v
	}
	return c
}

// access abstrae cómo un repo llega a las tablas: con lock (Store) o sobre
// la copia privada de una transacción.
type access interface {
	read(fn func(t *tables) error) error
	write(fn func(t *tables) error) error
}

// Store base de datos en memoria. Los escritores se serializan con un mutex;
// las transacciones trabajan sobre una copia que se publica solo en commit.
type Store struct {
	mu sync.RWMutex
	t  *tables
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{t: newTables()}
}

func (s *Store) read(fn func(t *tables) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.t)
}

func (s *Store) write(fn func(t *tables) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.t)
}

// Users repo de usuarios sobre el almacén.
func (s *Store) Users() *UserRepo { return &UserRepo{a: s} }

// Clients repo de clientes sobre el almacén.
func (s *Store) Clients() *ClientRepo { return &ClientRepo{a: s} }

// Settings repo de configuración sobre el almacén.
func (s *Store) Settings() *SettingsRepo { return &SettingsRepo{a: s} }

// Invoices repo de facturas sobre el almacén.
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{a: s} }

// RunInvoices ejecuta fn sobre una copia de las tablas y la publica si fn no falla.
// Mantiene el lock de escritura durante toda la transacción.
func (s *Store) RunInvoices(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txView{t: s.t.clone()}
	if err := fn(&InvoiceRepo{a: tx}, &ClientRepo{a: tx}); err != nil {
		return err
	}
	s.t = tx.t
	return nil
}

type txView struct {
	t *tables
}

func (v *txView) read(fn func(t *tables) error) error  { return fn(v.t) }
func (v *txView) write(fn func(t *tables) error) error { return fn(v.t) }
