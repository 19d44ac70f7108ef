package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/invoicething/internal/domain"
	"github.com/jhoicas/invoicething/internal/domain/entity"
	"github.com/jhoicas/invoicething/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación de SettingsRepository.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// GetByUser obtiene la configuración del usuario; (nil, nil) si nunca la guardó.
func (r *SettingsRepo) GetByUser(ctx context.Context, userID string) (*entity.Settings, error) {
	query := `
		SELECT id, user_id, invoice_prefix, invoice_number_start, due_date_days, tax_rate,
		       payment_instructions, rounding_enabled, rounding_increment, created_at, updated_at
		FROM settings WHERE user_id = $1`
	var s entity.Settings
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&s.ID, &s.UserID, &s.InvoicePrefix, &s.InvoiceNumberStart, &s.DueDateDays, &s.TaxRate,
		&s.PaymentInstructions, &s.RoundingEnabled, &s.RoundingIncrement, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Create persiste la configuración. La restricción única sobre user_id
// garantiza un registro por usuario.
func (r *SettingsRepo) Create(ctx context.Context, s *entity.Settings) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO settings (id, user_id, invoice_prefix, invoice_number_start, due_date_days, tax_rate,
		                      payment_instructions, rounding_enabled, rounding_increment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.UserID, s.InvoicePrefix, s.InvoiceNumberStart, s.DueDateDays, s.TaxRate,
		s.PaymentInstructions, s.RoundingEnabled, s.RoundingIncrement, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert settings: %w", err)
	}
	return nil
}

// Update reescribe la configuración completa del usuario.
func (r *SettingsRepo) Update(ctx context.Context, s *entity.Settings) error {
	query := `
		UPDATE settings
		SET invoice_prefix = $2, invoice_number_start = $3, due_date_days = $4, tax_rate = $5,
		    payment_instructions = $6, rounding_enabled = $7, rounding_increment = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.InvoicePrefix, s.InvoiceNumberStart, s.DueDateDays, s.TaxRate,
		s.PaymentInstructions, s.RoundingEnabled, s.RoundingIncrement, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
