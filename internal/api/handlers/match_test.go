package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"halal-atlas/backend/internal/matching"
	"halal-atlas/backend/internal/repository"
	"halal-atlas/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	restaurants []repository.Restaurant
}

func (s *stubCatalog) ListAll(ctx context.Context) ([]repository.Restaurant, error) {
	return s.restaurants, nil
}

type stubOverrides struct{}

func (s *stubOverrides) Map(ctx context.Context, sourceName string) (map[string]string, error) {
	return nil, nil
}

func newMatchRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := &stubCatalog{restaurants: []repository.Restaurant{
		{ID: uuid.New(), Name: "Zarak by Afghan Kitchen"},
		{ID: uuid.New(), Name: "Tandoori Kona"},
	}}
	preview := service.NewPreviewService(catalog, &stubOverrides{},
		[]matching.SourceConfig{matching.VancouverFoodiesConfig, matching.GoogleMapsListConfig})

	router := gin.New()
	router.POST("/api/v1/match/preview", NewMatchHandler(preview).PreviewMatch)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPreviewMatch(t *testing.T) {
	router := newMatchRouter(t)

	t.Run("accepted match", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/match/preview", `{"name": "Tandoori Kona"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool                  `json:"success"`
			Data    service.PreviewResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, matching.OutcomeAccepted, resp.Data.Outcome)
		assert.Equal(t, matching.MethodExact, resp.Data.Method)
		require.NotNil(t, resp.Data.Match)
		assert.Equal(t, "Tandoori Kona", resp.Data.Match.Name)
	})

	t.Run("per-request threshold", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/match/preview",
			`{"name": "Tandoori Kona", "threshold": 0.99}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data service.PreviewResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, matching.OutcomeUnmatched, resp.Data.Outcome)
		assert.NotEmpty(t, resp.Data.Suggestions)
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/match/preview", `{"source": "Vancouver Foodies"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("out of range threshold is rejected", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/match/preview", `{"name": "x", "threshold": 1.5}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown source", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/match/preview", `{"name": "x", "source": "Yelp"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "unknown source")
	})
}
