package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/invoicething/internal/application/dto"
	"github.com/jhoicas/invoicething/internal/domain"
	"github.com/jhoicas/invoicething/internal/domain/entity"
	"github.com/jhoicas/invoicething/internal/domain/repository"
	"github.com/jhoicas/invoicething/pkg/jwt"
	"github.com/jhoicas/invoicething/pkg/logger"
)

// AuthUseCase sincroniza los usuarios del proveedor de identidad con la base local.
// El usuario se identifica siempre por el sub del token, nunca por un ID enviado por el cliente.
type AuthUseCase struct {
	userRepo repository.UserRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, log: log.Component("auth"), now: time.Now}
}

// Resolve devuelve el usuario local del token, creándolo en la primera visita.
func (uc *AuthUseCase) Resolve(ctx context.Context, id jwt.Identity) (*entity.User, error) {
	user, err := uc.userRepo.GetBySubject(ctx, id.Subject)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	return uc.create(ctx, id)
}

// Sync hace upsert del usuario: lo crea si no existe y si existe actualiza
// email, nombre e imagen con los del token (o los del body si vienen).
func (uc *AuthUseCase) Sync(ctx context.Context, id jwt.Identity, in dto.SyncUserRequest) (*dto.UserResponse, error) {
	if in.Email != nil {
		id.Email = strings.TrimSpace(*in.Email)
	}
	if in.Name != nil {
		id.Name = strings.TrimSpace(*in.Name)
	}
	if in.ImageURL != nil {
		id.ImageURL = strings.TrimSpace(*in.ImageURL)
	}

	user, err := uc.userRepo.GetBySubject(ctx, id.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = uc.create(ctx, id)
		if err != nil {
			return nil, err
		}
		return dto.NewUserResponse(user), nil
	}

	if user.Email == id.Email && user.Name == id.Name && user.ImageURL == id.ImageURL {
		return dto.NewUserResponse(user), nil
	}
	user.Email, user.Name, user.ImageURL = id.Email, id.Name, id.ImageURL
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("perfil sincronizado")
	return dto.NewUserResponse(user), nil
}

// GetCurrentUser devuelve el usuario autenticado.
func (uc *AuthUseCase) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.NewUserResponse(user), nil
}

// GetUser devuelve un usuario por ID. Solo se permite consultar el propio.
func (uc *AuthUseCase) GetUser(ctx context.Context, actingUserID, id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if user.ID != actingUserID {
		return nil, domain.ErrForbidden
	}
	return dto.NewUserResponse(user), nil
}

func (uc *AuthUseCase) create(ctx context.Context, id jwt.Identity) (*entity.User, error) {
	if id.Subject == "" {
		return nil, fmt.Errorf("%w: token sin subject", domain.ErrUnauthorized)
	}
	user := &entity.User{
		ID:        uuid.New().String(),
		Subject:   id.Subject,
		Email:     id.Email,
		Name:      id.Name,
		ImageURL:  id.ImageURL,
		CreatedAt: uc.now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		// Dos primeras peticiones concurrentes: la otra ganó la carrera.
		if errors.Is(err, domain.ErrDuplicate) {
			return uc.userRepo.GetBySubject(ctx, id.Subject)
		}
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("usuario creado")
	return user, nil
}
