package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/facturis/facturis-api/internal/application/service"
	"github.com/facturis/facturis-api/internal/domain/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatsRepo struct {
	monthlyYear     int
	statusYear      *int
	statusYearSeen  bool
	monthlyYearSeen bool
}

func (r *fakeStatsRepo) GetStatusTotals(_ context.Context, _ uuid.UUID, year *int) ([]repository.StatusTotalRow, error) {
	r.statusYear = year
	r.statusYearSeen = true
	return nil, nil
}

func (r *fakeStatsRepo) GetMonthlyStatusTotals(_ context.Context, _ uuid.UUID, year int) ([]repository.MonthlyStatusRow, error) {
	r.monthlyYear = year
	r.monthlyYearSeen = true
	return nil, nil
}

func (r *fakeStatsRepo) GetClientSummaries(_ context.Context, _ uuid.UUID, year *int) ([]repository.ClientSummaryRow, error) {
	return nil, nil
}

func (r *fakeStatsRepo) GetClientMonthlyTotals(_ context.Context, _ uuid.UUID, year int) ([]repository.ClientMonthlyRow, error) {
	return nil, nil
}

func statsTestRouter(repo *fakeStatsRepo, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewInvoiceHandler(nil, service.NewStatsService(repo), nil)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	router.GET("/invoices/stats", h.Stats)
	router.GET("/invoices/stats/filtered", h.FilteredStats)
	return router
}

func TestStatsPassesOptionalYear(t *testing.T) {
	repo := &fakeStatsRepo{}
	router := statsTestRouter(repo, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices/stats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, repo.statusYearSeen)
	assert.Nil(t, repo.statusYear)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/invoices/stats?year=2024", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, repo.statusYear)
	assert.Equal(t, 2024, *repo.statusYear)
}

func TestFilteredStatsDefaultsToCurrentYear(t *testing.T) {
	repo := &fakeStatsRepo{}
	router := statsTestRouter(repo, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices/stats/filtered", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, repo.monthlyYearSeen)
	assert.Equal(t, time.Now().Year(), repo.monthlyYear)
}

func TestFilteredStatsZeroFilledEnvelope(t *testing.T) {
	repo := &fakeStatsRepo{}
	router := statsTestRouter(repo, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices/stats/filtered?year=2025", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool                         `json:"success"`
		Data    map[string][]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 3)
	for status, series := range body.Data {
		assert.Len(t, series, 12, status)
	}
}

func TestStatsRequiresAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewInvoiceHandler(nil, service.NewStatsService(&fakeStatsRepo{}), nil)

	router := gin.New()
	router.GET("/invoices/stats", h.Stats)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices/stats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
