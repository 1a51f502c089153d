// Package service orchestrates batch ingest runs: scrape a source, resolve
// its names through the matching engine, persist accepted evidence, and
// report everything that needs a human.
package service

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"halal-atlas/backend/internal/logger"
	"halal-atlas/backend/internal/matching"
	"halal-atlas/backend/internal/repository"
	"halal-atlas/backend/internal/scrape"

	"github.com/google/uuid"
)

type catalogReader interface {
	ListAll(ctx context.Context) ([]repository.Restaurant, error)
}

type overrideReader interface {
	Map(ctx context.Context, sourceName string) (map[string]string, error)
}

type evidenceWriter interface {
	UpsertBatch(ctx context.Context, rows []repository.Evidence) error
	DeleteBySource(ctx context.Context, sourceName string) error
}

type foodiesFetcher interface {
	FetchAll(ctx context.Context) ([]scrape.FoodiesListing, error)
}

// RunOptions control one batch ingest run.
type RunOptions struct {
	// Reset deletes the source's existing evidence rows before inserting.
	Reset bool
	// DryRun resolves and reports without touching the database.
	DryRun bool
}

// UnmatchedName is one name below threshold, surfaced for manual review
// with triage hints. It is never silently dropped.
type UnmatchedName struct {
	Name          string   `json:"name"`
	Score         float64  `json:"score"`
	BestCandidate string   `json:"best_candidate,omitempty"`
	Suggestions   []string `json:"suggestions,omitempty"`
}

// SourceReport summarizes one batch ingest run.
type SourceReport struct {
	Source            string          `json:"source"`
	StartedAt         time.Time       `json:"started_at"`
	CandidatesScraped int             `json:"candidates_scraped"`
	TargetsResolved   int             `json:"targets_resolved"`
	Matched           int             `json:"matched"`
	Unmatched         []UnmatchedName `json:"unmatched"`
	OverridesSkipped  int             `json:"overrides_skipped,omitempty"`
	DryRun            bool            `json:"dry_run"`
}

// IngestService runs per-source batch ingestion
type IngestService struct {
	restaurants catalogReader
	overrides   overrideReader
	evidence    evidenceWriter
	foodies     foodiesFetcher
	suggest     *SuggestService

	foodiesConfig matching.SourceConfig
	mapsConfig    matching.SourceConfig
	mapsHTMLPath  string
}

// NewIngestService creates a new ingest service
func NewIngestService(
	restaurants catalogReader,
	overrides overrideReader,
	evidence evidenceWriter,
	foodies foodiesFetcher,
	foodiesConfig matching.SourceConfig,
	mapsConfig matching.SourceConfig,
	mapsHTMLPath string,
) *IngestService {
	return &IngestService{
		restaurants:   restaurants,
		overrides:     overrides,
		evidence:      evidence,
		foodies:       foodies,
		suggest:       NewSuggestService(),
		foodiesConfig: foodiesConfig,
		mapsConfig:    mapsConfig,
		mapsHTMLPath:  mapsHTMLPath,
	}
}

// IngestVancouverFoodies cross-references the live directory against the
// catalog. Every catalog entity is resolved against the scraped listings;
// accepted matches become evidence rows carrying the listing's URL and
// badges.
func (s *IngestService) IngestVancouverFoodies(ctx context.Context, opts RunOptions) (*SourceReport, error) {
	cfg := s.foodiesConfig
	report := &SourceReport{Source: cfg.Source, StartedAt: time.Now().UTC(), DryRun: opts.DryRun}

	listings, err := s.foodies.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch listings: %w", err)
	}
	report.CandidatesScraped = len(listings)

	// The candidate set is fetched once and held immutable for the run.
	restaurants, err := s.restaurants.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	overrides, err := s.loadOverrides(ctx, cfg.Source, report)
	if err != nil {
		return nil, err
	}

	candidates := make([]matching.Candidate, len(listings))
	for i, l := range listings {
		candidates[i] = matching.Candidate{ID: strconv.Itoa(i), Name: l.Name}
	}
	resolver := matching.NewResolver(candidates, overrides)

	var rows []repository.Evidence
	now := time.Now().UTC()
	for _, restaurant := range restaurants {
		report.TargetsResolved++
		decision := cfg.Decide(resolver.Resolve(restaurant.Name))
		if decision.Outcome != matching.OutcomeAccepted {
			report.Unmatched = append(report.Unmatched, s.unmatched(restaurant.Name, decision.Result, candidates))
			continue
		}

		idx, err := candidateIndex(decision.Result.Candidate, len(listings))
		if err != nil {
			return nil, err
		}
		listing := listings[idx]
		status := "halal_listed"
		if listing.HalalCertified {
			status = "halal_certified"
		}
		snippet := "Vancouver Foodies listing"
		for i, badge := range listing.Badges {
			if i == 0 {
				snippet += ": " + badge
			} else {
				snippet += "; " + badge
			}
		}
		url := listing.URL

		rows = append(rows, repository.Evidence{
			RestaurantID:    restaurant.ID,
			SourceName:      cfg.Source,
			SourceURL:       &url,
			Status:          status,
			EvidenceSnippet: &snippet,
			Confidence:      roundConfidence(decision.Result.Score),
			ScrapedAt:       now,
		})
		report.Matched++
	}

	if err := s.persist(ctx, cfg.Source, rows, opts); err != nil {
		return nil, err
	}

	s.logReport(report)
	return report, nil
}

// IngestGoogleMapsList resolves the names of a saved Google Maps list
// export against the catalog and records them as evidence.
func (s *IngestService) IngestGoogleMapsList(ctx context.Context, opts RunOptions) (*SourceReport, error) {
	cfg := s.mapsConfig
	report := &SourceReport{Source: cfg.Source, StartedAt: time.Now().UTC(), DryRun: opts.DryRun}

	html, err := os.ReadFile(s.mapsHTMLPath)
	if err != nil {
		return nil, fmt.Errorf("read maps list export: %w", err)
	}
	names, err := scrape.ParseListNames(string(html))
	if err != nil {
		return nil, err
	}
	report.CandidatesScraped = len(names)

	restaurants, err := s.restaurants.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	overrides, err := s.loadOverrides(ctx, cfg.Source, report)
	if err != nil {
		return nil, err
	}

	candidates := make([]matching.Candidate, len(restaurants))
	for i, r := range restaurants {
		candidates[i] = r.AsCandidate()
	}
	resolver := matching.NewResolver(candidates, overrides)

	// A list can mention the same restaurant under several spellings; keep
	// one evidence row per catalog entity.
	byRestaurant := make(map[uuid.UUID]repository.Evidence)
	var order []uuid.UUID
	now := time.Now().UTC()

	for _, name := range names {
		report.TargetsResolved++
		decision := cfg.Decide(resolver.Resolve(name))
		if decision.Outcome != matching.OutcomeAccepted {
			report.Unmatched = append(report.Unmatched, s.unmatched(name, decision.Result, candidates))
			continue
		}

		restaurantID, err := uuid.Parse(decision.Result.Candidate.ID)
		if err != nil {
			return nil, fmt.Errorf("candidate id %q is not a UUID: %w", decision.Result.Candidate.ID, err)
		}

		snippet := "Google Maps list import"
		if _, seen := byRestaurant[restaurantID]; !seen {
			order = append(order, restaurantID)
		}
		byRestaurant[restaurantID] = repository.Evidence{
			RestaurantID:    restaurantID,
			SourceName:      cfg.Source,
			Status:          "halal_listed",
			EvidenceSnippet: &snippet,
			Confidence:      roundConfidence(decision.Result.Score),
			ScrapedAt:       now,
		}
		report.Matched++
	}

	rows := make([]repository.Evidence, 0, len(order))
	for _, id := range order {
		rows = append(rows, byRestaurant[id])
	}

	if err := s.persist(ctx, cfg.Source, rows, opts); err != nil {
		return nil, err
	}

	s.logReport(report)
	return report, nil
}

func (s *IngestService) loadOverrides(ctx context.Context, source string, report *SourceReport) (matching.Overrides, error) {
	raw, err := s.overrides.Map(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("load overrides: %w", err)
	}
	overrides, skipped := matching.NewOverrides(raw)
	report.OverridesSkipped = skipped
	if skipped > 0 {
		logger.Warn().
			Str("source", source).
			Int("skipped", skipped).
			Msg("skipped malformed override entries")
	}
	return overrides, nil
}

func (s *IngestService) unmatched(name string, result matching.MatchResult, candidates []matching.Candidate) UnmatchedName {
	u := UnmatchedName{
		Name:        name,
		Score:       result.Score,
		Suggestions: s.suggest.Nearest(name, candidates),
	}
	if result.Candidate != nil {
		u.BestCandidate = result.Candidate.Name
	}
	return u
}

func (s *IngestService) persist(ctx context.Context, source string, rows []repository.Evidence, opts RunOptions) error {
	if opts.DryRun {
		return nil
	}
	if opts.Reset {
		if err := s.evidence.DeleteBySource(ctx, source); err != nil {
			return err
		}
	}
	return s.evidence.UpsertBatch(ctx, rows)
}

func (s *IngestService) logReport(report *SourceReport) {
	logger.Info().
		Str("source", report.Source).
		Int("candidates", report.CandidatesScraped).
		Int("targets", report.TargetsResolved).
		Int("matched", report.Matched).
		Int("unmatched", len(report.Unmatched)).
		Bool("dry_run", report.DryRun).
		Msg("ingest run finished")
}

// candidateIndex recovers the listing index a candidate was built from.
// The IDs are self-generated, but a malformed one must fail the run rather
// than silently attach evidence to listing 0.
func candidateIndex(c *matching.Candidate, n int) (int, error) {
	i, err := strconv.Atoi(c.ID)
	if err != nil || i < 0 || i >= n {
		return 0, fmt.Errorf("candidate id %q is not a listing index", c.ID)
	}
	return i, nil
}

// roundConfidence keeps stored confidences at three decimals, matching the
// precision prior runs were recorded with.
func roundConfidence(score float64) float64 {
	return math.Round(score*1000) / 1000
}
