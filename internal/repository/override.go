package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OverrideRepository loads pinned source-name corrections
type OverrideRepository struct {
	pool *pgxpool.Pool
}

// NewOverrideRepository creates a new override repository
func NewOverrideRepository(pool *pgxpool.Pool) *OverrideRepository {
	return &OverrideRepository{pool: pool}
}

// Map returns the raw override rows for one source as source-name-key →
// target-catalog-name. Keys are stored as entered; the engine normalizes
// them and skips malformed entries on its side.
func (r *OverrideRepository) Map(ctx context.Context, sourceName string) (map[string]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT source_name_key, target_name
		FROM match_overrides
		WHERE source_name = $1`, sourceName)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, target string
		if err := rows.Scan(&key, &target); err != nil {
			return nil, fmt.Errorf("scan override: %w", err)
		}
		out[key] = target
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate overrides: %w", err)
	}
	return out, nil
}
