package handlers

import (
	"net/http"

	"halal-atlas/backend/internal/api"
	"halal-atlas/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Source slugs accepted by the trigger route.
const (
	SourceVancouverFoodies = "vancouver-foodies"
	SourceGoogleMapsList   = "google-maps-list"
	SourceListingSync      = "google-maps-listings"
)

// IngestHandler triggers batch runs and serves recent run reports
type IngestHandler struct {
	ingest *service.IngestService
	sync   *service.ListingSyncService
	runLog *service.RunLog
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(ingest *service.IngestService, sync *service.ListingSyncService, runLog *service.RunLog) *IngestHandler {
	return &IngestHandler{
		ingest: ingest,
		sync:   sync,
		runLog: runLog,
	}
}

// TriggerIngestRequest carries optional run flags. An empty body runs with
// defaults.
type TriggerIngestRequest struct {
	Reset      bool `json:"reset"`
	DryRun     bool `json:"dry_run"`
	UpdateOnly bool `json:"update_only"`
}

// TriggerIngest runs one source's batch ingest synchronously and returns
// its report. Runs are operator-initiated and infrequent, so blocking the
// request is acceptable.
func (h *IngestHandler) TriggerIngest(c *gin.Context) {
	var req TriggerIngestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			api.SendValidationError(c, "Invalid request body", err.Error())
			return
		}
	}

	ctx := c.Request.Context()
	opts := service.RunOptions{Reset: req.Reset, DryRun: req.DryRun}

	switch c.Param("source") {
	case SourceVancouverFoodies:
		report, err := h.ingest.IngestVancouverFoodies(ctx, opts)
		if err != nil {
			api.SendInternalError(c, err.Error())
			return
		}
		h.runLog.Add(report)
		api.SendSuccess(c, http.StatusOK, report, nil)

	case SourceGoogleMapsList:
		report, err := h.ingest.IngestGoogleMapsList(ctx, opts)
		if err != nil {
			api.SendInternalError(c, err.Error())
			return
		}
		h.runLog.Add(report)
		api.SendSuccess(c, http.StatusOK, report, nil)

	case SourceListingSync:
		report, err := h.sync.Sync(ctx, service.SyncOptions{DryRun: req.DryRun, UpdateOnly: req.UpdateOnly})
		if err != nil {
			api.SendInternalError(c, err.Error())
			return
		}
		api.SendSuccess(c, http.StatusOK, report, nil)

	default:
		api.SendBadRequest(c, "unknown source: "+c.Param("source"))
	}
}

// ListRuns returns the most recent in-memory run reports, newest first
func (h *IngestHandler) ListRuns(c *gin.Context) {
	api.SendSuccess(c, http.StatusOK, h.runLog.Recent(), nil)
}
