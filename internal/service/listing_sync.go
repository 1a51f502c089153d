package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"halal-atlas/backend/internal/logger"
	"halal-atlas/backend/internal/matching"
	"halal-atlas/backend/internal/repository"
	"halal-atlas/backend/internal/scrape"

	"github.com/google/uuid"
)

const listingSource = "google_maps_list_html"

type listingStore interface {
	ListAll(ctx context.Context) ([]repository.Listing, error)
	Update(ctx context.Context, id uuid.UUID, update repository.ListingUpdate) error
	UpsertBatch(ctx context.Context, listings []repository.Listing) error
}

// SyncOptions control one listings sync run.
type SyncOptions struct {
	// DryRun classifies entries without writing anything.
	DryRun bool
	// UpdateOnly refreshes matched rows but inserts no new ones.
	UpdateOnly bool
}

// AmbiguousEntry is a scraped entry whose normalized name collides with
// more than one stored listing. These need a data fix, not a threshold
// change, so they are reported rather than guessed at.
type AmbiguousEntry struct {
	Name    string   `json:"name"`
	Matches []string `json:"matches"`
}

// SyncReport summarizes one listings sync run.
type SyncReport struct {
	Source        string           `json:"source"`
	StartedAt     time.Time        `json:"started_at"`
	EntriesParsed int              `json:"entries_parsed"`
	Updated       int              `json:"updated"`
	Inserted      int              `json:"inserted"`
	Skipped       int              `json:"skipped"`
	Ambiguous     []AmbiguousEntry `json:"ambiguous"`
	DryRun        bool             `json:"dry_run"`
}

// ListingSyncService refreshes the Google Maps listings table from a saved
// list export. Unlike evidence ingestion this is keyed sync: an entry only
// updates a row whose name normalizes to exactly the same string, and
// everything else becomes a new row.
type ListingSyncService struct {
	listings listingStore
	htmlPath string
}

// NewListingSyncService creates a new listing sync service
func NewListingSyncService(listings listingStore, htmlPath string) *ListingSyncService {
	return &ListingSyncService{listings: listings, htmlPath: htmlPath}
}

// Sync parses the export, consolidates duplicate entries, and applies them
// to the listings table.
func (s *ListingSyncService) Sync(ctx context.Context, opts SyncOptions) (*SyncReport, error) {
	report := &SyncReport{Source: listingSource, StartedAt: time.Now().UTC(), DryRun: opts.DryRun}

	html, err := os.ReadFile(s.htmlPath)
	if err != nil {
		return nil, fmt.Errorf("read maps list export: %w", err)
	}
	entries, err := scrape.ParseMapsList(string(html))
	if err != nil {
		return nil, err
	}
	entries = scrape.ConsolidateEntries(entries)
	report.EntriesParsed = len(entries)

	existing, err := s.listings.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load listings: %w", err)
	}

	candidates := make([]matching.Candidate, len(existing))
	byID := make(map[string]repository.Listing, len(existing))
	takenSlugs := make(map[string]struct{}, len(existing))
	for i, l := range existing {
		id := l.ID.String()
		candidates[i] = matching.Candidate{ID: id, Name: l.Name}
		byID[id] = l
		takenSlugs[l.Slug] = struct{}{}
	}
	index := matching.BuildIndex(candidates)

	source := listingSource
	now := time.Now().UTC()
	var inserts []repository.Listing

	for _, entry := range entries {
		decision := matching.ResolveKeyed(entry.Name, index)
		switch decision.Outcome {
		case matching.OutcomeAmbiguous:
			conflict := AmbiguousEntry{Name: entry.Name}
			for _, c := range decision.Conflicts {
				conflict.Matches = append(conflict.Matches, c.Name)
			}
			report.Ambiguous = append(report.Ambiguous, conflict)

		case matching.OutcomeAccepted:
			listing := byID[decision.Result.Candidate.ID]
			update := repository.ListingUpdate{
				CategoryName:      entry.CategoryName,
				Price:             entry.Price,
				Rating:            entry.Rating,
				ReviewsCount:      entry.ReviewsCount,
				ImageURL:          entry.ImageURL,
				PermanentlyClosed: entry.PermanentlyClosed,
			}
			if !opts.DryRun {
				if err := s.listings.Update(ctx, listing.ID, update); err != nil {
					return nil, err
				}
			}
			report.Updated++

		default:
			if opts.UpdateOnly {
				report.Skipped++
				continue
			}
			scrapedAt := now
			inserts = append(inserts, repository.Listing{
				ID:                uuid.New(),
				Name:              entry.Name,
				Slug:              uniqueSlug(slugify(entry.Name), takenSlugs),
				CategoryName:      entry.CategoryName,
				Price:             entry.Price,
				Rating:            entry.Rating,
				ReviewsCount:      entry.ReviewsCount,
				ImageURL:          entry.ImageURL,
				PermanentlyClosed: entry.PermanentlyClosed,
				Source:            &source,
				ScrapedAt:         &scrapedAt,
			})
			report.Inserted++
		}
	}

	if !opts.DryRun && len(inserts) > 0 {
		if err := s.listings.UpsertBatch(ctx, inserts); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Str("source", report.Source).
		Int("parsed", report.EntriesParsed).
		Int("updated", report.Updated).
		Int("inserted", report.Inserted).
		Int("ambiguous", len(report.Ambiguous)).
		Bool("dry_run", report.DryRun).
		Msg("listing sync finished")
	return report, nil
}
