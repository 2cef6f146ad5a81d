package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/itzfew/eduhub-bot/internal/infra/postgres"
)

var ErrKeyNotFound = errors.New("content key not found")

// ContentKeyRepository maps short lookup keys to channel message ids.
// Keys are registered per batch/subject/chapter by the admin ingestion
// flow; lookup only needs the batch and the key itself.
type ContentKeyRepository struct {
	db postgres.DBTX
}

// NewContentKeyRepository creates a new ContentKeyRepository with the provided database pool.
func NewContentKeyRepository(db postgres.DBTX) *ContentKeyRepository {
	return &ContentKeyRepository{db: db}
}

// LookupMessageID returns the channel message id stored for a key,
// searching every subject and chapter within the batch.
func (r *ContentKeyRepository) LookupMessageID(ctx context.Context, batch, key string) (int, error) {
	query := `
		SELECT message_id
		FROM content_keys
		WHERE batch = $1 AND lower(key) = lower($2)
		LIMIT 1
	`

	var messageID int
	err := r.db.QueryRow(ctx, query, batch, key).Scan(&messageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrKeyNotFound
		}
		return 0, fmt.Errorf("lookup content key: %w", err)
	}

	return messageID, nil
}
