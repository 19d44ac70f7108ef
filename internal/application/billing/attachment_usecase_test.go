package billing_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoicething/internal/application/billing"
	"github.com/jhoicas/invoicething/internal/domain"
	"github.com/jhoicas/invoicething/internal/infrastructure/storage"
	"github.com/jhoicas/invoicething/pkg/logger"
)

func TestAttachments_Ciclo(t *testing.T) {
	uc := billing.NewAttachmentUseCase(storage.NewMemoryStore("http://files.local"), logger.Nop())

	up, err := uc.GenerateUploadURL(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(up.StorageID, "users/u1/"))
	assert.NotEmpty(t, up.UploadURL)

	got, err := uc.GetURL(ctx, "u1", up.StorageID)
	require.NoError(t, err)
	require.NotNil(t, got.URL)

	require.NoError(t, uc.Delete(ctx, "u1", up.StorageID))
	got, err = uc.GetURL(ctx, "u1", up.StorageID)
	require.NoError(t, err)
	assert.Nil(t, got.URL)
}

func TestAttachments_Propiedad(t *testing.T) {
	uc := billing.NewAttachmentUseCase(storage.NewMemoryStore("http://files.local"), logger.Nop())
	up, err := uc.GenerateUploadURL(ctx, "u1")
	require.NoError(t, err)

	_, err = uc.GetURL(ctx, "u2", up.StorageID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(ctx, "u2", up.StorageID), domain.ErrForbidden)

	_, err = uc.GetURL(ctx, "u1", "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
