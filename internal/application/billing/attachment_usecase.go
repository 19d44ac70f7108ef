package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/invoicething/internal/application/dto"
	"github.com/jhoicas/invoicething/internal/domain"
	"github.com/jhoicas/invoicething/pkg/logger"
)

// AttachmentKeyPrefix prefijo de las claves emitidas a un usuario.
func AttachmentKeyPrefix(userID string) string {
	return "users/" + userID + "/"
}

// AttachmentUseCase emite URLs de subida y lectura para los recibos de gastos.
type AttachmentUseCase struct {
	store AttachmentStore
	log   *logger.Logger
}

func NewAttachmentUseCase(store AttachmentStore, log *logger.Logger) *AttachmentUseCase {
	return &AttachmentUseCase{store: store, log: log.Component("files")}
}

// GenerateUploadURL reserva una clave nueva bajo el prefijo del usuario.
func (uc *AttachmentUseCase) GenerateUploadURL(ctx context.Context, userID string) (*dto.UploadURLResponse, error) {
	key := AttachmentKeyPrefix(userID) + uuid.New().String()
	url, err := uc.store.UploadURL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("archivos: url de subida: %w", err)
	}
	return &dto.UploadURLResponse{StorageID: key, UploadURL: url}, nil
}

// GetURL devuelve la URL de lectura, o URL nil si el objeto no existe.
func (uc *AttachmentUseCase) GetURL(ctx context.Context, userID, key string) (*dto.FileURLResponse, error) {
	key, err := checkKey(userID, key)
	if err != nil {
		return nil, err
	}
	url, err := uc.store.URL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("archivos: url de lectura: %w", err)
	}
	if url == "" {
		return &dto.FileURLResponse{}, nil
	}
	return &dto.FileURLResponse{URL: &url}, nil
}

// Delete borra el objeto. Borrar una clave inexistente no es error.
func (uc *AttachmentUseCase) Delete(ctx context.Context, userID, key string) error {
	key, err := checkKey(userID, key)
	if err != nil {
		return err
	}
	if err := uc.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("archivos: borrar: %w", err)
	}
	uc.log.Info().Str("user_id", userID).Str("storage_id", key).Msg("archivo eliminado")
	return nil
}

func checkKey(userID, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("%w: id es obligatorio", domain.ErrInvalidInput)
	}
	if !strings.HasPrefix(key, AttachmentKeyPrefix(userID)) {
		return "", domain.ErrForbidden
	}
	return key, nil
}
