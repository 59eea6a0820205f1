package cart

import (
	"context"

	"github.com/dfquintero/sportstore-gateway/internal/models"
)

// Store persists full cart snapshots keyed by session. Implementations must
// treat a missing or unreadable snapshot as an empty cart, never as an
// error the caller has to handle.
type Store interface {
	Load(ctx context.Context, sessionKey string) ([]models.CartEntry, error)
	Save(ctx context.Context, sessionKey string, entries []models.CartEntry) error
	Delete(ctx context.Context, sessionKey string) error
}

// MemoryStore keeps snapshots in process memory. Used in tests and as the
// store for single-instance development runs.
type MemoryStore struct {
	carts map[string][]models.CartEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]models.CartEntry)}
}

func (s *MemoryStore) Load(_ context.Context, sessionKey string) ([]models.CartEntry, error) {
	entries, ok := s.carts[sessionKey]
	if !ok {
		return nil, nil
	}

	out := make([]models.CartEntry, len(entries))
	copy(out, entries)

	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionKey string, entries []models.CartEntry) error {
	snapshot := make([]models.CartEntry, len(entries))
	copy(snapshot, entries)
	s.carts[sessionKey] = snapshot

	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionKey string) error {
	delete(s.carts, sessionKey)

	return nil
}
