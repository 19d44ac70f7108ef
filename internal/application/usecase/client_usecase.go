package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/invoicething/internal/application/dto"
	"github.com/jhoicas/invoicething/internal/domain"
	"github.com/jhoicas/invoicething/internal/domain/entity"
	"github.com/jhoicas/invoicething/internal/domain/repository"
	"github.com/jhoicas/invoicething/pkg/logger"
)

// ClientUseCase casos de uso CRUD para clientes. Toda operación se limita al
// usuario autenticado: un cliente ajeno devuelve domain.ErrForbidden.
type ClientUseCase struct {
	repo repository.ClientRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, log *logger.Logger) *ClientUseCase {
	return &ClientUseCase{repo: repo, log: log.Component("clients"), now: time.Now}
}

// Create crea un cliente del usuario.
func (uc *ClientUseCase) Create(ctx context.Context, userID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre del cliente es obligatorio", domain.ErrInvalidInput)
	}
	now := uc.now()
	client := &entity.Client{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          name,
		Email:         strings.TrimSpace(in.Email),
		Address:       in.Address.ToAddress(),
		ContactPerson: strings.TrimSpace(in.ContactPerson),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", userID).Str("client_id", client.ID).Msg("cliente creado")
	return dto.NewClientResponse(client), nil
}

// List devuelve los clientes del usuario.
func (uc *ClientUseCase) List(ctx context.Context, userID string) ([]*dto.ClientResponse, error) {
	clients, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, dto.NewClientResponse(c))
	}
	return out, nil
}

// Get obtiene un cliente del usuario.
func (uc *ClientUseCase) Get(ctx context.Context, userID, id string) (*dto.ClientResponse, error) {
	client, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return dto.NewClientResponse(client), nil
}

// Update aplica un patch: solo cambian los campos presentes.
func (uc *ClientUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre del cliente es obligatorio", domain.ErrInvalidInput)
		}
		client.Name = name
	}
	if in.Email != nil {
		client.Email = strings.TrimSpace(*in.Email)
	}
	if in.Address != nil {
		client.Address = in.Address.ToAddress()
	}
	if in.ContactPerson != nil {
		client.ContactPerson = strings.TrimSpace(*in.ContactPerson)
	}
	client.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return dto.NewClientResponse(client), nil
}

// Delete elimina un cliente. Falla con domain.ErrConflict si aún tiene facturas.
func (uc *ClientUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", userID).Str("client_id", id).Msg("cliente eliminado")
	return nil
}

func (uc *ClientUseCase) owned(ctx context.Context, userID, id string) (*entity.Client, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if client.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return client, nil
}
