package storage

import (
	"context"
	"net/url"
	"sync"

	"github.com/jhoicas/invoicething/internal/application/billing"
)

var _ billing.AttachmentStore = (*MemoryStore)(nil)

// MemoryStore almacén de adjuntos en memoria. No guarda contenido: una clave
// existe desde que se emitió su URL de subida hasta que se borra.
type MemoryStore struct {
	mu      sync.RWMutex
	baseURL string
	keys    map[string]struct{}
}

// NewMemoryStore crea el almacén; baseURL se usa para armar URLs ficticias.
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{baseURL: baseURL, keys: map[string]struct{}{}}
}

func (m *MemoryStore) UploadURL(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	m.keys[key] = struct{}{}
	m.mu.Unlock()
	return m.urlFor(key) + "?upload=1", nil
}

func (m *MemoryStore) URL(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	_, ok := m.keys[key]
	m.mu.RUnlock()
	if !ok {
		return "", nil
	}
	return m.urlFor(key), nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.keys, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) urlFor(key string) string {
	return m.baseURL + "/" + url.PathEscape(key)
}
