package handlers

import (
	"errors"
	"net/http"

	"halal-atlas/backend/internal/api"
	"halal-atlas/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// MatchHandler handles non-persisting match previews
type MatchHandler struct {
	preview   *service.PreviewService
	validator *validator.Validate
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(preview *service.PreviewService) *MatchHandler {
	return &MatchHandler{preview: preview, validator: validator.New()}
}

// PreviewMatchRequest resolves one name against the catalog without writing
// anything. Threshold, when set, replaces the source's configured one for
// this call only.
type PreviewMatchRequest struct {
	Name      string   `json:"name" validate:"required,min=1,max=255"`
	Source    string   `json:"source" validate:"omitempty,max=100"`
	Threshold *float64 `json:"threshold" validate:"omitempty,gt=0,lte=1"`
}

// PreviewMatch runs the matching engine for a single name
func (h *MatchHandler) PreviewMatch(c *gin.Context) {
	var req PreviewMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		api.SendValidationError(c, "Validation failed", err.Error())
		return
	}

	result, err := h.preview.Preview(c.Request.Context(), req.Name, req.Source, req.Threshold)
	if err != nil {
		if errors.Is(err, service.ErrUnknownSource) {
			api.SendBadRequest(c, err.Error())
			return
		}
		api.SendInternalError(c, err.Error())
		return
	}

	api.SendSuccess(c, http.StatusOK, result, nil)
}
