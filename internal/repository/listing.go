package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Listing is one row of the Google Maps listings table, kept separately
// from the curated catalog and synced by exact normalized key.
type Listing struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Slug              string     `json:"slug"`
	CategoryName      *string    `json:"category_name,omitempty"`
	Price             *string    `json:"price,omitempty"`
	Rating            *float64   `json:"rating,omitempty"`
	ReviewsCount      *int32     `json:"reviews_count,omitempty"`
	ImageURL          *string    `json:"image_url,omitempty"`
	PermanentlyClosed bool       `json:"permanently_closed"`
	Source            *string    `json:"source,omitempty"`
	ScrapedAt         *time.Time `json:"scraped_at,omitempty"`
}

// ListingUpdate carries the refreshable fields of a matched listing.
type ListingUpdate struct {
	CategoryName      *string
	Price             *string
	Rating            *float64
	ReviewsCount      *int32
	ImageURL          *string
	PermanentlyClosed bool
}

// ListingRepository handles the Google Maps listings table
type ListingRepository struct {
	pool *pgxpool.Pool
}

// NewListingRepository creates a new listing repository
func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

// ListAll returns every listing in stable id order
func (r *ListingRepository) ListAll(ctx context.Context) ([]Listing, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, slug, category_name, price, rating, reviews_count,
		       image_url, permanently_closed, source, scraped_at
		FROM halal_restaurants
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var out []Listing
	for rows.Next() {
		var l Listing
		if err := rows.Scan(&l.ID, &l.Name, &l.Slug, &l.CategoryName, &l.Price, &l.Rating,
			&l.ReviewsCount, &l.ImageURL, &l.PermanentlyClosed, &l.Source, &l.ScrapedAt); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return out, nil
}

// Update refreshes the scraped fields of one matched listing
func (r *ListingRepository) Update(ctx context.Context, id uuid.UUID, update ListingUpdate) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE halal_restaurants SET
			category_name = $2,
			price = $3,
			rating = $4,
			reviews_count = $5,
			image_url = $6,
			permanently_closed = $7
		WHERE id = $1`,
		id, update.CategoryName, update.Price, update.Rating,
		update.ReviewsCount, update.ImageURL, update.PermanentlyClosed)
	if err != nil {
		return fmt.Errorf("update listing: %w", err)
	}
	return nil
}

// UpsertBatch inserts new listings keyed by slug
func (r *ListingRepository) UpsertBatch(ctx context.Context, listings []Listing) error {
	if len(listings) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, l := range listings {
		batch.Queue(`
			INSERT INTO halal_restaurants
				(id, name, slug, category_name, price, rating, reviews_count,
				 image_url, permanently_closed, source, scraped_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (slug) DO UPDATE SET
				category_name = EXCLUDED.category_name,
				price = EXCLUDED.price,
				rating = EXCLUDED.rating,
				reviews_count = EXCLUDED.reviews_count,
				image_url = EXCLUDED.image_url,
				permanently_closed = EXCLUDED.permanently_closed,
				source = EXCLUDED.source,
				scraped_at = EXCLUDED.scraped_at`,
			l.ID, l.Name, l.Slug, l.CategoryName, l.Price, l.Rating, l.ReviewsCount,
			l.ImageURL, l.PermanentlyClosed, l.Source, l.ScrapedAt)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range listings {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("upsert listing: %w", err)
		}
	}
	return nil
}
