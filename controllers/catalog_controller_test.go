package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/models"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCatalog struct {
	plan    *models.FeePlan
	batches []models.Batch
	notices []models.Notice
}

func (f *fakeCatalog) FeePlanFor(ctx context.Context, class models.ClassLevel, medium models.Medium) (*models.FeePlan, error) {
	if f.plan == nil {
		return nil, repository.ErrFeePlanNotFound
	}
	return f.plan, nil
}

func (f *fakeCatalog) BatchesFor(ctx context.Context, class models.ClassLevel, medium models.Medium) ([]models.Batch, error) {
	return f.batches, nil
}

func (f *fakeCatalog) BatchByID(ctx context.Context, id uint) (*models.Batch, error) {
	return nil, repository.ErrBatchNotFound
}

func (f *fakeCatalog) ActiveNotices(ctx context.Context, today time.Time) ([]models.Notice, error) {
	return f.notices, nil
}

func newCatalogRouter(t *testing.T, catalog *fakeCatalog) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cc := NewCatalogController(catalog, zap.NewNop())
	r := gin.New()
	r.GET("/catalog", cc.GetCatalog)
	r.GET("/notices", cc.ListNotices)
	return r
}

func TestGetCatalog(t *testing.T) {
	catalog := &fakeCatalog{
		plan: &models.FeePlan{
			OriginalFee:  2000,
			OfferFee:     1500,
			OfferEndDate: time.Now().AddDate(0, 1, 0),
		},
		batches: []models.Batch{
			{Name: "Morning", TotalSeats: 30, FilledSeats: 25},
			{Name: "Evening", TotalSeats: 30, FilledSeats: 30},
		},
		notices: []models.Notice{{Title: "Admissions open"}},
	}
	r := newCatalogRouter(t, catalog)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog?class=12&medium=Hindi", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	fee, ok := resp["fee"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1500), fee["current_fee"])
	assert.Equal(t, true, fee["offer_applied"])
	assert.Equal(t, float64(5), resp["total_remaining_seats"])
}

func TestGetCatalogDefaultsAndMissingPlan(t *testing.T) {
	r := newCatalogRouter(t, &fakeCatalog{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog?class=13&medium=French", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "12", resp["class"])
	assert.Equal(t, "Hindi", resp["medium"])
	assert.Nil(t, resp["fee"])
}

func TestListNotices(t *testing.T) {
	r := newCatalogRouter(t, &fakeCatalog{notices: []models.Notice{{Title: "Holiday"}}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notices", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Holiday")
}
