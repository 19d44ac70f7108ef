package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoicething/internal/application/auth"
	"github.com/jhoicas/invoicething/internal/application/dto"
	"github.com/jhoicas/invoicething/internal/domain"
	"github.com/jhoicas/invoicething/internal/infrastructure/memory"
	"github.com/jhoicas/invoicething/pkg/jwt"
	"github.com/jhoicas/invoicething/pkg/logger"
)

var ctx = context.Background()

func TestResolve_CreaUnaSolaVez(t *testing.T) {
	uc := auth.NewAuthUseCase(memory.NewStore().Users(), logger.Nop())
	id := jwt.Identity{Subject: "sub-1", Email: "ana@example.com", Name: "Ana"}

	first, err := uc.Resolve(ctx, id)
	require.NoError(t, err)
	second, err := uc.Resolve(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "ana@example.com", second.Email)
}

func TestResolve_SinSubject(t *testing.T) {
	uc := auth.NewAuthUseCase(memory.NewStore().Users(), logger.Nop())
	_, err := uc.Resolve(ctx, jwt.Identity{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSync_ActualizaPerfil(t *testing.T) {
	uc := auth.NewAuthUseCase(memory.NewStore().Users(), logger.Nop())
	id := jwt.Identity{Subject: "sub-1", Email: "ana@example.com", Name: "Ana"}

	created, err := uc.Sync(ctx, id, dto.SyncUserRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Ana", created.Name)

	name := "Ana María"
	updated, err := uc.Sync(ctx, id, dto.SyncUserRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Ana María", updated.Name)
	assert.Equal(t, "sub-1", updated.Subject)

	me, err := uc.GetCurrentUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", me.Name)
}

func TestGetUser_SoloElPropio(t *testing.T) {
	uc := auth.NewAuthUseCase(memory.NewStore().Users(), logger.Nop())
	a, err := uc.Resolve(ctx, jwt.Identity{Subject: "a"})
	require.NoError(t, err)
	b, err := uc.Resolve(ctx, jwt.Identity{Subject: "b"})
	require.NoError(t, err)

	got, err := uc.GetUser(ctx, a.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Subject)

	_, err = uc.GetUser(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.GetUser(ctx, a.ID, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetCurrentUser(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
