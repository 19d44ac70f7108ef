package repository

import (
	"context"

	"github.com/jhoicas/invoicething/internal/domain/entity"
)

// SettingsRepository define el puerto de persistencia para Settings (uno por usuario).
type SettingsRepository interface {
	GetByUser(ctx context.Context, userID string) (*entity.Settings, error)
	// Create devuelve domain.ErrDuplicate si el usuario ya tiene configuración.
	Create(ctx context.Context, settings *entity.Settings) error
	Update(ctx context.Context, settings *entity.Settings) error
}
