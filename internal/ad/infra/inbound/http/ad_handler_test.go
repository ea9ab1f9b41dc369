package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/storefront/internal/ad/application"
	adDomain "github.com/davicafu/storefront/internal/ad/domain"
	"github.com/davicafu/storefront/internal/shared/infra/http/middleware"
	"github.com/davicafu/storefront/tests/mocks"
)

type adBody struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	AdCount int64          `json:"adCount"`
	Ads     []*adDomain.Ad `json:"ads"`
	Ad      *adDomain.Ad   `json:"ad"`
	Message string         `json:"message"`
}

func setupRouter(t *testing.T, ads ...*adDomain.Ad) (*gin.Engine, *mocks.InMemoryAdRepo, *mocks.TestAuth) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := mocks.NewInMemoryAdRepo(ads...)
	testAuth := mocks.NewTestAuth()

	r := gin.New()
	r.Use(middleware.ErrorHandler(zap.NewNop(), false))
	RegisterAdRoutes(r.Group("/v1"), NewAdHandler(application.NewAdService(repo, zap.NewNop())), testAuth.Auth)
	return r, repo, testAuth
}

func serve(r http.Handler, req *http.Request) (*httptest.ResponseRecorder, adBody) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body adBody
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestGetAds_Envelope(t *testing.T) {
	a := adDomain.NewAd(uuid.New(), "a.png", "Camel meat")
	b := adDomain.NewAd(uuid.New(), "b.png", "Chicken wings")
	r, _, _ := setupRouter(t, a, b)

	w, body := serve(r, httptest.NewRequest(http.MethodGet, "/v1/ads?keyword=camel", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, int64(2), body.AdCount)
	require.Len(t, body.Ads, 1)
	assert.Equal(t, a.ID, body.Ads[0].ID)
}

func TestCreateAd_AnyAuthenticatedUser(t *testing.T) {
	r, repo, testAuth := setupRouter(t)
	payload := []byte(`{"image":"upload/images/ads/files_1.png","description":"Weekend offer"}`)

	w, _ := serve(r, httptest.NewRequest(http.MethodPost, "/v1/ad/new", bytes.NewReader(payload)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/ad/new", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	testAuth.AuthorizeAs(t, req, testAuth.User)
	w, body := serve(r, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, testAuth.User.ID, body.Ad.User)
	assert.Equal(t, int64(1), repo.Len())
}

func TestCreateAd_Validation(t *testing.T) {
	r, _, testAuth := setupRouter(t)

	testCases := []struct {
		name    string
		payload string
		message string
	}{
		{"sin imagen", `{"description":"x"}`, "Please enter ad image"},
		{"sin descripción", `{"image":"x.png"}`, "Please enter ad description"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/ad/new", bytes.NewReader([]byte(tc.payload)))
			req.Header.Set("Content-Type", "application/json")
			testAuth.AuthorizeAs(t, req, testAuth.User)

			w, body := serve(r, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.message, body.Message)
		})
	}
}

func TestAllAdsAd_RequiresAdmin(t *testing.T) {
	r, _, testAuth := setupRouter(t, adDomain.NewAd(uuid.New(), "a.png", "x"))

	req := httptest.NewRequest(http.MethodGet, "/v1/alladsad", nil)
	testAuth.AuthorizeAs(t, req, testAuth.User)
	w, _ := serve(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/alladsad", nil)
	testAuth.AuthorizeAs(t, req, testAuth.Admin)
	w, body := serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, body.Count)

	w, body = serve(r, httptest.NewRequest(http.MethodGet, "/v1/allads", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), body.AdCount)
}

func TestUpdateAndDeleteAd(t *testing.T) {
	a := adDomain.NewAd(uuid.New(), "a.png", "old")
	a.CreatedAt = time.Now().UTC().Add(-time.Hour)
	r, repo, testAuth := setupRouter(t, a)

	req := httptest.NewRequest(http.MethodPut, "/v1/admin/ad/"+a.ID.String(), bytes.NewReader([]byte(`{"description":"new"}`)))
	req.Header.Set("Content-Type", "application/json")
	testAuth.AuthorizeAs(t, req, testAuth.Admin)
	w, body := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "new", body.Ad.Description)
	assert.Equal(t, "a.png", body.Ad.Image)

	req = httptest.NewRequest(http.MethodDelete, "/v1/admin/ad/"+a.ID.String(), nil)
	testAuth.AuthorizeAs(t, req, testAuth.Admin)
	w, body = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ad deleted successfully", body.Message)
	assert.False(t, repo.Has(a.ID))

	w, body = serve(r, httptest.NewRequest(http.MethodGet, "/v1/ad/"+a.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Ad not found", body.Message)
}
