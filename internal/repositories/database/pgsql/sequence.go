package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// nextNumber bumps the per-day sequence inside tx and formats the human-readable number.
// A rolled back claim also rolls back its sequence value.
func nextNumber(ctx context.Context, tx pgx.Tx, prefix string, at time.Time) (string, error) {
	day := domain.SequenceDay(at)
	var seq int64
	err := tx.QueryRow(ctx, `
		INSERT INTO number_sequences (prefix, day, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, day) DO UPDATE SET last_value = number_sequences.last_value + 1
		RETURNING last_value`, prefix, day).Scan(&seq)
	if err != nil {
		return "", translateError(err, "failed to allocate "+prefix+" number")
	}
	return domain.FormatNumber(prefix, day, seq), nil
}
