// Package repository contains the Postgres persistence layer. Repositories
// own their SQL and translate pgx errors into the package's sentinel errors.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"halal-atlas/backend/internal/db"
	"halal-atlas/backend/internal/matching"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Restaurant is one authoritative catalog entity. The matching engine never
// mutates it; ingestion only attaches evidence rows.
type Restaurant struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	DineoutURL *string   `json:"dineout_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AsCandidate converts a catalog row into an engine candidate.
func (r Restaurant) AsCandidate() matching.Candidate {
	return matching.Candidate{ID: r.ID.String(), Name: r.Name}
}

// RestaurantRepository handles catalog reads
type RestaurantRepository struct {
	pool *pgxpool.Pool
}

// NewRestaurantRepository creates a new restaurant repository
func NewRestaurantRepository(pool *pgxpool.Pool) *RestaurantRepository {
	return &RestaurantRepository{pool: pool}
}

// List returns one page of the catalog in stable id order.
func (r *RestaurantRepository) List(ctx context.Context, limit, offset int32) ([]Restaurant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, slug, dineout_url, created_at
		FROM restaurants
		ORDER BY id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	return scanRestaurants(rows)
}

// ListAll pages through the whole catalog and returns it in stable id
// order. Batch runs call this once and hold the result immutable, so a
// reordering of retrieval can never change match outcomes mid-run.
func (r *RestaurantRepository) ListAll(ctx context.Context) ([]Restaurant, error) {
	const pageSize = 500

	var all []Restaurant
	for offset := int32(0); ; offset += pageSize {
		page, err := r.List(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}

// GetByID fetches a single catalog entity
func (r *RestaurantRepository) GetByID(ctx context.Context, id uuid.UUID) (*Restaurant, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, slug, dineout_url, created_at
		FROM restaurants
		WHERE id = $1`, id)

	var rest Restaurant
	err := row.Scan(&rest.ID, &rest.Name, &rest.Slug, &rest.DineoutURL, &rest.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	return &rest, nil
}

// Count returns the catalog size
func (r *RestaurantRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count restaurants: %w", err)
	}
	return count, nil
}

func scanRestaurants(rows pgx.Rows) ([]Restaurant, error) {
	var out []Restaurant
	for rows.Next() {
		var rest Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Slug, &rest.DineoutURL, &rest.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		out = append(out, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate restaurants: %w", err)
	}
	return out, nil
}
