package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dfquintero/sportstore-gateway/internal/models"
	"github.com/dfquintero/sportstore-gateway/internal/utils"
)

// PostgresStore keeps one row per session with the entries as a JSON column.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) Load(ctx context.Context, sessionKey string) ([]models.CartEntry, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT items
		FROM carts
		WHERE session_key = $1
	`

	var itemsJSON []byte

	err := s.DB.QueryRowContext(dbCtx, query, sessionKey).Scan(&itemsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("querying cart snapshot: %w", err)
	}

	var entries []models.CartEntry
	if err := json.Unmarshal(itemsJSON, &entries); err != nil {
		// A corrupt snapshot resets the cart instead of blocking the session.
		slog.Warn("discarding unreadable cart snapshot",
			slog.String("session", sessionKey),
			slog.String("error", err.Error()))

		return nil, nil
	}

	return entries, nil
}

func (s *PostgresStore) Save(ctx context.Context, sessionKey string, entries []models.CartEntry) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if entries == nil {
		entries = []models.CartEntry{}
	}

	itemsJSON, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal cart entries: %w", err)
	}

	query := `
		INSERT INTO carts (session_key, items, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_key)
		DO UPDATE SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at
	`

	if _, err := s.DB.ExecContext(dbCtx, query, sessionKey, itemsJSON, time.Now()); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}

	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, sessionKey string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		DELETE FROM carts
		WHERE session_key = $1
	`

	if _, err := s.DB.ExecContext(dbCtx, query, sessionKey); err != nil {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}

	return nil
}
