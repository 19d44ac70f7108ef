package repository

import (
	"context"

	"github.com/jhoicas/invoicething/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	// ListByUser devuelve los clientes del usuario ordenados por nombre.
	ListByUser(ctx context.Context, userID string) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	// Delete devuelve domain.ErrConflict si el cliente aún tiene facturas.
	Delete(ctx context.Context, id string) error
}
