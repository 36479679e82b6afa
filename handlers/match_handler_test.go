package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lexmatch-backend/models"
	"lexmatch-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLawyerSource struct {
	pool []models.Lawyer
}

func (s *stubLawyerSource) ListActive(ctx context.Context) ([]models.Lawyer, error) {
	return s.pool, nil
}

func newTestRouter(pool []models.Lawyer) *gin.Engine {
	gin.SetMode(gin.TestMode)

	analyzer := service.NewAnalyzerService()
	matcher := service.NewMatchService(service.MatchWithLawyerSource(&stubLawyerSource{pool: pool}))
	handler := NewMatchHandler(analyzer, matcher, service.NewCaseService())

	router := gin.New()
	api := router.Group("/api")
	api.POST("/analyze", handler.AnalyzeCase)
	api.POST("/matches", handler.MatchLawyers)
	api.GET("/cases/:id/matches", handler.MatchCase)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return w, payload
}

func TestAnalyzeCaseEndpoint(t *testing.T) {
	router := newTestRouter(nil)

	w, payload := doJSON(t, router, http.MethodPost, "/api/analyze",
		`{"description": "Someone hacked my Instagram account and changed my password"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, payload["success"])

	data := payload["data"].(map[string]any)
	analysis := data["analysis"].(map[string]any)
	assert.Equal(t, "Cyber Crime", analysis["category"])
	assert.NotEmpty(t, analysis["sections"])
	assert.NotEmpty(t, data["suggested_areas"])
}

func TestAnalyzeCaseEndpointMissingDescription(t *testing.T) {
	router := newTestRouter(nil)

	w, payload := doJSON(t, router, http.MethodPost, "/api/analyze", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, payload["success"])
	errObj := payload["error"].(map[string]any)
	assert.Equal(t, "INVALID_REQUEST", errObj["code"])
}

func TestAnalyzeCaseEndpointShortDescription(t *testing.T) {
	router := newTestRouter(nil)

	w, payload := doJSON(t, router, http.MethodPost, "/api/analyze", `{"description": "ab"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errObj := payload["error"].(map[string]any)
	assert.Equal(t, "INVALID_DESCRIPTION", errObj["code"])
}

func TestMatchLawyersEndpoint(t *testing.T) {
	router := newTestRouter([]models.Lawyer{
		{
			Name:          "Cyber Expert",
			Active:        true,
			PracticeAreas: []string{"Cyber Crime"},
		},
		{
			Name:          "Tax Specialist",
			Active:        true,
			PracticeAreas: []string{"Tax Law"},
		},
	})

	w, payload := doJSON(t, router, http.MethodPost, "/api/matches",
		`{"sections": [{"code": "IT Act 66C", "is_primary": true}]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, payload["success"])

	lawyers := payload["data"].([]any)
	require.Len(t, lawyers, 1)
	first := lawyers[0].(map[string]any)
	assert.Equal(t, "Cyber Expert", first["name"])
	assert.Equal(t, float64(60), first["match_score"])
	assert.Equal(t, float64(40), first["match_percent"])
	assert.Contains(t, first["match_reason"], "Specializes in Cyber Crime")
}

func TestMatchLawyersEndpointMissingSections(t *testing.T) {
	router := newTestRouter(nil)

	w, payload := doJSON(t, router, http.MethodPost, "/api/matches", `{"case_type": "cyber"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errObj := payload["error"].(map[string]any)
	assert.Equal(t, "INVALID_REQUEST", errObj["code"])
}

func TestMatchCaseEndpointInvalidID(t *testing.T) {
	router := newTestRouter(nil)

	w, payload := doJSON(t, router, http.MethodGet, "/api/cases/not-a-uuid/matches", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errObj := payload["error"].(map[string]any)
	assert.Equal(t, "INVALID_ID", errObj["code"])
}
