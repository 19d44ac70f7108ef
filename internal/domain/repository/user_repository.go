package repository

import (
	"context"

	"github.com/jhoicas/invoicething/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetBySubject busca por el sub del proveedor de identidad; (nil, nil) si no existe.
	GetBySubject(ctx context.Context, subject string) (*entity.User, error)
	// Update reescribe email, nombre e imagen. El subject es inmutable.
	Update(ctx context.Context, user *entity.User) error
}
