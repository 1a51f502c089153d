package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Evidence is one accepted match persisted as provenance: which source
// claimed what about a catalog entity, with what confidence.
type Evidence struct {
	RestaurantID    uuid.UUID `json:"restaurant_id"`
	SourceName      string    `json:"source_name"`
	SourceURL       *string   `json:"source_url,omitempty"`
	Status          string    `json:"status"`
	EvidenceSnippet *string   `json:"evidence_snippet,omitempty"`
	Confidence      float64   `json:"confidence"`
	ScrapedAt       time.Time `json:"scraped_at"`
}

// EvidenceRepository handles provenance rows for accepted matches
type EvidenceRepository struct {
	pool *pgxpool.Pool
}

// NewEvidenceRepository creates a new evidence repository
func NewEvidenceRepository(pool *pgxpool.Pool) *EvidenceRepository {
	return &EvidenceRepository{pool: pool}
}

// UpsertBatch stores accepted matches idempotently, keyed by
// (restaurant_id, source_name): re-running a source refreshes its rows
// instead of duplicating them.
func (r *EvidenceRepository) UpsertBatch(ctx context.Context, rows []Evidence) error {
	if len(rows) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(`
			INSERT INTO halal_sources
				(restaurant_id, source_name, source_url, status, evidence_snippet, confidence, scraped_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (restaurant_id, source_name) DO UPDATE SET
				source_url = EXCLUDED.source_url,
				status = EXCLUDED.status,
				evidence_snippet = EXCLUDED.evidence_snippet,
				confidence = EXCLUDED.confidence,
				scraped_at = EXCLUDED.scraped_at`,
			row.RestaurantID, row.SourceName, row.SourceURL, row.Status,
			row.EvidenceSnippet, row.Confidence, row.ScrapedAt)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("upsert evidence: %w", err)
		}
	}
	return nil
}

// DeleteBySource removes all evidence rows for one source, for reset runs.
func (r *EvidenceRepository) DeleteBySource(ctx context.Context, sourceName string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM halal_sources WHERE source_name = $1`, sourceName); err != nil {
		return fmt.Errorf("delete evidence for source %q: %w", sourceName, err)
	}
	return nil
}

// ListByRestaurant returns all evidence attached to one catalog entity
func (r *EvidenceRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]Evidence, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT restaurant_id, source_name, source_url, status, evidence_snippet, confidence, scraped_at
		FROM halal_sources
		WHERE restaurant_id = $1
		ORDER BY source_name`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list evidence: %w", err)
	}
	defer rows.Close()

	var out []Evidence
	for rows.Next() {
		var e Evidence
		if err := rows.Scan(&e.RestaurantID, &e.SourceName, &e.SourceURL, &e.Status,
			&e.EvidenceSnippet, &e.Confidence, &e.ScrapedAt); err != nil {
			return nil, fmt.Errorf("scan evidence: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evidence: %w", err)
	}
	return out, nil
}
