package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/invoicething/internal/domain"
	"github.com/jhoicas/invoicething/internal/domain/entity"
	"github.com/jhoicas/invoicething/internal/domain/repository"
)

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.ClientRepository   = (*ClientRepo)(nil)
	_ repository.SettingsRepository = (*SettingsRepo)(nil)
	_ repository.InvoiceRepository  = (*InvoiceRepo)(nil)
)

// UserRepo usuarios en memoria.
type UserRepo struct{ a access }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.a.write(func(t *tables) error {
		for _, u := range t.users {
			if u.Subject == user.Subject {
				return domain.ErrDuplicate
			}
		}
		if user.ID == "" {
			user.ID = uuid.New().String()
		}
		t.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.a.read(func(t *tables) error {
		if u, ok := t.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetBySubject(_ context.Context, subject string) (*entity.User, error) {
	var out *entity.User
	err := r.a.read(func(t *tables) error {
		for _, u := range t.users {
			if u.Subject == subject {
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	return r.a.write(func(t *tables) error {
		cur, ok := t.users[user.ID]
		if !ok {
			return nil
		}
		cur.Email, cur.Name, cur.ImageURL = user.Email, user.Name, user.ImageURL
		t.users[user.ID] = cur
		return nil
	})
}

// ClientRepo clientes en memoria.
type ClientRepo struct{ a access }

func (r *ClientRepo) Create(_ context.Context, client *entity.Client) error {
	return r.a.write(func(t *tables) error {
		if client.ID == "" {
			client.ID = uuid.New().String()
		}
		t.clients[client.ID] = *client
		return nil
	})
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	err := r.a.read(func(t *tables) error {
		if c, ok := t.clients[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ClientRepo) ListByUser(_ context.Context, userID string) ([]*entity.Client, error) {
	var list []*entity.Client
	err := r.a.read(func(t *tables) error {
		for _, c := range t.clients {
			if c.UserID == userID {
				list = append(list, &c)
			}
		}
		return nil
	})
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, err
}

func (r *ClientRepo) Update(_ context.Context, client *entity.Client) error {
	return r.a.write(func(t *tables) error {
		if _, ok := t.clients[client.ID]; ok {
			t.clients[client.ID] = *client
		}
		return nil
	})
}

func (r *ClientRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(t *tables) error {
		for _, inv := range t.invoices {
			if inv.ClientID == id {
				return fmt.Errorf("%w: el cliente tiene facturas", domain.ErrConflict)
			}
		}
		delete(t.clients, id)
		return nil
	})
}

// SettingsRepo configuración en memoria (indexada por usuario).
type SettingsRepo struct{ a access }

func (r *SettingsRepo) GetByUser(_ context.Context, userID string) (*entity.Settings, error) {
	var out *entity.Settings
	err := r.a.read(func(t *tables) error {
		if s, ok := t.settings[userID]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SettingsRepo) Create(_ context.Context, s *entity.Settings) error {
	return r.a.write(func(t *tables) error {
		if _, ok := t.settings[s.UserID]; ok {
			return domain.ErrDuplicate
		}
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		t.settings[s.UserID] = *s
		return nil
	})
}

func (r *SettingsRepo) Update(_ context.Context, s *entity.Settings) error {
	return r.a.write(func(t *tables) error {
		if _, ok := t.settings[s.UserID]; ok {
			t.settings[s.UserID] = *s
		}
		return nil
	})
}

// InvoiceRepo facturas, líneas y gastos en memoria.
type InvoiceRepo struct{ a access }

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	return r.a.write(func(t *tables) error {
		if _, ok := t.clients[inv.ClientID]; !ok {
			return fmt.Errorf("%w: cliente inexistente", domain.ErrInvalidInput)
		}
		if inv.ID == "" {
			inv.ID = uuid.New().String()
		}
		t.invoices[inv.ID] = *inv
		return nil
	})
}

func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.a.read(func(t *tables) error {
		if inv, ok := t.invoices[id]; ok {
			out = &inv
		}
		return nil
	})
	return out, err
}

func (r *InvoiceRepo) ListByUser(_ context.Context, userID string, filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var list []*entity.Invoice
	err := r.a.read(func(t *tables) error {
		for _, inv := range t.invoices {
			if inv.UserID != userID {
				continue
			}
			if filter.ClientID != "" && inv.ClientID != filter.ClientID {
				continue
			}
			if filter.Status != "" && inv.Status != filter.Status {
				continue
			}
			list = append(list, &inv)
		}
		return nil
	})
	sortNewestFirst(list)
	return list, err
}

func (r *InvoiceRepo) GetLatestByUser(ctx context.Context, userID string) (*entity.Invoice, error) {
	list, err := r.ListByUser(ctx, userID, repository.InvoiceFilter{})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func sortNewestFirst(list []*entity.Invoice) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.IssueDate.Equal(b.IssueDate) {
			return a.IssueDate.After(b.IssueDate)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func (r *InvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	return r.a.write(func(t *tables) error {
		if _, ok := t.invoices[inv.ID]; !ok {
			return nil
		}
		if _, ok := t.clients[inv.ClientID]; !ok {
			return fmt.Errorf("%w: cliente inexistente", domain.ErrInvalidInput)
		}
		t.invoices[inv.ID] = *inv
		return nil
	})
}

func (r *InvoiceRepo) UpdateStatus(_ context.Context, id string, status entity.InvoiceStatus, updatedAt time.Time) error {
	return r.a.write(func(t *tables) error {
		if inv, ok := t.invoices[id]; ok {
			inv.Status = status
			inv.UpdatedAt = updatedAt
			t.invoices[id] = inv
		}
		return nil
	})
}

func (r *InvoiceRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(t *tables) error {
		delete(t.invoices, id)
		return nil
	})
}

func (r *InvoiceRepo) CreateLineItem(_ context.Context, li *entity.LineItem) error {
	return r.a.write(func(t *tables) error {
		if li.ID == "" {
			li.ID = uuid.New().String()
		}
		t.lineItems[li.ID] = *li
		return nil
	})
}

func (r *InvoiceRepo) GetLineItems(_ context.Context, invoiceID string) ([]*entity.LineItem, error) {
	var list []*entity.LineItem
	err := r.a.read(func(t *tables) error {
		for _, li := range t.lineItems {
			if li.InvoiceID == invoiceID {
				list = append(list, &li)
			}
		}
		return nil
	})
	sort.SliceStable(list, func(i, j int) bool { return list[i].Order < list[j].Order })
	return list, err
}

func (r *InvoiceRepo) DeleteLineItems(_ context.Context, invoiceID string) error {
	return r.a.write(func(t *tables) error {
		for id, li := range t.lineItems {
			if li.InvoiceID == invoiceID {
				delete(t.lineItems, id)
			}
		}
		return nil
	})
}

func (r *InvoiceRepo) CreateClaim(_ context.Context, c *entity.Claim) error {
	return r.a.write(func(t *tables) error {
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		t.claims[c.ID] = *c
		return nil
	})
}

func (r *InvoiceRepo) GetClaims(_ context.Context, invoiceID string) ([]*entity.Claim, error) {
	var list []*entity.Claim
	err := r.a.read(func(t *tables) error {
		for _, c := range t.claims {
			if c.InvoiceID == invoiceID {
				list = append(list, &c)
			}
		}
		return nil
	})
	sort.SliceStable(list, func(i, j int) bool { return list[i].Order < list[j].Order })
	return list, err
}

func (r *InvoiceRepo) DeleteClaims(_ context.Context, invoiceID string) error {
	return r.a.write(func(t *tables) error {
		for id, c := range t.claims {
			if c.InvoiceID == invoiceID {
				delete(t.claims, id)
			}
		}
		return nil
	})
}

// CountLineItems y CountClaims cuentan hijos de una factura (útiles para verificar cascadas).
func (s *Store) CountLineItems(invoiceID string) int {
	n := 0
	_ = s.read(func(t *tables) error {
		for _, li := range t.lineItems {
			if li.InvoiceID == invoiceID {
				n++
			}
		}
		return nil
	})
	return n
}

func (s *Store) CountClaims(invoiceID string) int {
	n := 0
	_ = s.read(func(t *tables) error {
		for _, c := range t.claims {
			if c.InvoiceID == invoiceID {
				n++
			}
		}
		return nil
	})
	return n
}
