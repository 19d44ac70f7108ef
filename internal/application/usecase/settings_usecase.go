package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/invoicething/internal/application/dto"
	"github.com/jhoicas/invoicething/internal/domain"
	"github.com/jhoicas/invoicething/internal/domain/entity"
	"github.com/jhoicas/invoicething/internal/domain/invoicing"
	"github.com/jhoicas/invoicething/internal/domain/repository"
	"github.com/jhoicas/invoicething/pkg/logger"
)

// SettingsUseCase lectura y upsert de la configuración de facturación.
type SettingsUseCase struct {
	repo repository.SettingsRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository, log *logger.Logger) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, log: log.Component("settings"), now: time.Now}
}

// Get devuelve la configuración del usuario o los valores por defecto si nunca la guardó.
func (uc *SettingsUseCase) Get(ctx context.Context, userID string) (*dto.SettingsResponse, error) {
	s, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = entity.DefaultSettings(userID)
	}
	return dto.NewSettingsResponse(s), nil
}

// Upsert crea la configuración en el primer guardado y la parchea después.
// Nunca existe más de un registro por usuario.
func (uc *SettingsUseCase) Upsert(ctx context.Context, userID string, in dto.UpsertSettingsRequest) (*dto.SettingsResponse, error) {
	current, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	exists := current != nil
	if !exists {
		current = entity.DefaultSettings(userID)
	}

	if err := applySettingsPatch(current, in); err != nil {
		return nil, err
	}

	now := uc.now()
	current.UpdatedAt = now
	if !exists {
		current.CreatedAt = now
		err = uc.repo.Create(ctx, current)
	} else {
		err = uc.repo.Update(ctx, current)
	}
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", userID).Bool("created", !exists).Msg("configuración guardada")
	return dto.NewSettingsResponse(current), nil
}

func applySettingsPatch(s *entity.Settings, in dto.UpsertSettingsRequest) error {
	if in.InvoicePrefix != nil {
		prefix := strings.TrimSpace(*in.InvoicePrefix)
		if prefix == "" {
			return fmt.Errorf("%w: invoice_prefix no puede estar vacío", domain.ErrInvalidInput)
		}
		s.InvoicePrefix = prefix
	}
	if in.InvoiceNumberStart != nil {
		if *in.InvoiceNumberStart < 0 {
			return fmt.Errorf("%w: invoice_number_start no puede ser negativo", domain.ErrInvalidInput)
		}
		s.InvoiceNumberStart = *in.InvoiceNumberStart
	}
	if in.DueDateDays != nil {
		if *in.DueDateDays < 0 {
			return fmt.Errorf("%w: due_date_days no puede ser negativo", domain.ErrInvalidInput)
		}
		s.DueDateDays = *in.DueDateDays
	}
	if in.TaxRate != nil {
		if err := invoicing.ValidateTaxRate(*in.TaxRate); err != nil {
			return err
		}
		s.TaxRate = *in.TaxRate
	}
	if in.PaymentInstructions != nil {
		s.PaymentInstructions = strings.TrimSpace(*in.PaymentInstructions)
	}
	if in.RoundingEnabled != nil {
		s.RoundingEnabled = *in.RoundingEnabled
	}
	if in.RoundingIncrement != nil {
		if in.RoundingIncrement.IsNegative() {
			return fmt.Errorf("%w: rounding_increment no puede ser negativo", domain.ErrInvalidInput)
		}
		if err := invoicing.ValidateScale("rounding_increment", *in.RoundingIncrement); err != nil {
			return err
		}
		s.RoundingIncrement = *in.RoundingIncrement
	}
	if s.RoundingEnabled && !s.RoundingIncrement.IsPositive() {
		return fmt.Errorf("%w: rounding_increment debe ser mayor que cero con el redondeo activo", domain.ErrInvalidInput)
	}
	return nil
}
