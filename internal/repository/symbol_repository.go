// Package repository provides data access for the symbol-validation cache.
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/model"
)

// SymbolRepository provides data access methods for the symbol_cache table.
// The cache records symbols that a provider probe has confirmed to exist so
// that repeat searches do not spend provider quota.
type SymbolRepository struct {
	db *sql.DB
}

// NewSymbolRepository creates a new SymbolRepository with the provided database connection.
func NewSymbolRepository(db *sql.DB) *SymbolRepository {
	return &SymbolRepository{db: db}
}

// GetFresh retrieves a cached search result for a symbol if it was validated
// within maxAge. Returns nil without error when the symbol is absent or the
// entry has gone stale.
func (r *SymbolRepository) GetFresh(symbol string, maxAge time.Duration) (*model.SearchResult, error) {
	query := `
        SELECT symbol, description, type
        FROM symbol_cache
        WHERE symbol = ? AND validated_at >= ?
    `
	cutoff := time.Now().UTC().Add(-maxAge)

	var result model.SearchResult
	err := r.db.QueryRow(query, symbol, cutoff).Scan(&result.Symbol, &result.Description, &result.Type)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query symbol cache: %w", err)
	}

	return &result, nil
}

// Upsert records a validated symbol, refreshing the validation time if the
// symbol is already cached.
func (r *SymbolRepository) Upsert(result model.SearchResult) error {
	query := `
        INSERT INTO symbol_cache (id, symbol, description, type, validated_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(symbol) DO UPDATE SET
            description = excluded.description,
            type = excluded.type,
            validated_at = excluded.validated_at
    `
	_, err := r.db.Exec(query, uuid.NewString(), result.Symbol, result.Description, result.Type, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert symbol cache entry: %w", err)
	}
	return nil
}

// Purge removes cache entries validated before the cutoff. Used by tests and
// by operators clearing stale state; the read path already ignores stale rows.
func (r *SymbolRepository) Purge(before time.Time) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM symbol_cache WHERE validated_at < ?`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge symbol cache: %w", err)
	}
	return res.RowsAffected()
}
