// Package handlers contains the HTTP handlers for the atlas API.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"halal-atlas/backend/internal/api"
	"halal-atlas/backend/internal/db"
	"halal-atlas/backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RestaurantHandler handles catalog-related HTTP requests
type RestaurantHandler struct {
	restaurants *repository.RestaurantRepository
	evidence    *repository.EvidenceRepository
	validator   *validator.Validate
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(restaurants *repository.RestaurantRepository, evidence *repository.EvidenceRepository) *RestaurantHandler {
	return &RestaurantHandler{
		restaurants: restaurants,
		evidence:    evidence,
		validator:   validator.New(),
	}
}

// RestaurantResponse is the catalog entity in API responses
type RestaurantResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	DineoutURL *string   `json:"dineout_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// EvidenceResponse is one source's verdict for a restaurant
type EvidenceResponse struct {
	SourceName      string    `json:"source_name"`
	SourceURL       *string   `json:"source_url,omitempty"`
	Status          string    `json:"status"`
	EvidenceSnippet *string   `json:"evidence_snippet,omitempty"`
	Confidence      float64   `json:"confidence"`
	ScrapedAt       time.Time `json:"scraped_at"`
}

// ListRestaurantsQuery represents query parameters for listing restaurants
type ListRestaurantsQuery struct {
	Page  int `form:"page" validate:"omitempty,min=1"`
	Limit int `form:"limit" validate:"omitempty,min=1,max=500"`
}

func restaurantToResponse(r repository.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:         r.ID.String(),
		Name:       r.Name,
		Slug:       r.Slug,
		DineoutURL: r.DineoutURL,
		CreatedAt:  r.CreatedAt,
	}
}

func evidenceToResponse(e repository.Evidence) EvidenceResponse {
	return EvidenceResponse{
		SourceName:      e.SourceName,
		SourceURL:       e.SourceURL,
		Status:          e.Status,
		EvidenceSnippet: e.EvidenceSnippet,
		Confidence:      e.Confidence,
		ScrapedAt:       e.ScrapedAt,
	}
}

// ListRestaurants returns a page of the catalog
func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	var query ListRestaurantsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		api.SendValidationError(c, "Invalid query parameters", err.Error())
		return
	}
	if err := h.validator.Struct(query); err != nil {
		api.SendValidationError(c, "Validation failed", err.Error())
		return
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 50
	}
	offset := (query.Page - 1) * query.Limit

	restaurants, err := h.restaurants.List(c.Request.Context(), int32(query.Limit), int32(offset))
	if err != nil {
		api.SendInternalError(c, err.Error())
		return
	}
	total, err := h.restaurants.Count(c.Request.Context())
	if err != nil {
		api.SendInternalError(c, err.Error())
		return
	}

	responses := make([]RestaurantResponse, len(restaurants))
	for i, r := range restaurants {
		responses[i] = restaurantToResponse(r)
	}

	pages := int((total + int64(query.Limit) - 1) / int64(query.Limit))
	api.SendSuccess(c, http.StatusOK, responses, &api.Meta{
		Pagination: &api.PaginationMeta{
			Page:  query.Page,
			Limit: query.Limit,
			Total: total,
			Pages: pages,
		},
	})
}

// GetRestaurant returns one catalog entity by id
func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.SendValidationError(c, "Invalid restaurant ID", "must be a valid UUID")
		return
	}

	restaurant, err := h.restaurants.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			api.SendNotFound(c, "Restaurant")
			return
		}
		api.SendInternalError(c, err.Error())
		return
	}

	api.SendSuccess(c, http.StatusOK, restaurantToResponse(*restaurant), nil)
}

// ListEvidence returns all source evidence recorded for a restaurant
func (h *RestaurantHandler) ListEvidence(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.SendValidationError(c, "Invalid restaurant ID", "must be a valid UUID")
		return
	}

	if _, err := h.restaurants.GetByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			api.SendNotFound(c, "Restaurant")
			return
		}
		api.SendInternalError(c, err.Error())
		return
	}

	rows, err := h.evidence.ListByRestaurant(c.Request.Context(), id)
	if err != nil {
		api.SendInternalError(c, err.Error())
		return
	}

	responses := make([]EvidenceResponse, len(rows))
	for i, e := range rows {
		responses[i] = evidenceToResponse(e)
	}
	api.SendSuccess(c, http.StatusOK, responses, nil)
}
