package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/addispot/addispot-backend/internal/app/model"
	"github.com/addispot/addispot-backend/internal/app/repository"
	"github.com/addispot/addispot-backend/internal/app/service"
	"github.com/addispot/addispot-backend/internal/db"
	"github.com/addispot/addispot-backend/internal/middleware"
	"github.com/addispot/addispot-backend/pkg/util"
)

const testJWTSecret = "test-secret"

func setupRequestControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	requestRepo := repository.NewRequestRepository(testDB)
	placeRepo := repository.NewPlaceRepository(testDB)
	requestService := service.NewRequestService(testDB, requestRepo, placeRepo)

	ctrl := NewRequestController(requestService)
	authMiddleware := middleware.NewAuthMiddleware(testJWTSecret, userRepo)

	router := gin.New()
	submissions := router.Group("/api/requests")
	submissions.Use(authMiddleware.Authenticate())
	{
		submissions.POST("/place-add", ctrl.SubmitPlaceAdd)
	}
	requests := router.Group("/api/requests")
	requests.Use(authMiddleware.Authenticate(), authMiddleware.RequireAdmin())
	{
		requests.GET("/place-add", ctrl.ListPlaceAdd)
		requests.PATCH("/place-add", ctrl.ReviewPlaceAdd)
	}

	return router, testDB
}

func createTestUser(t *testing.T, testDB *gorm.DB, email string, isAdmin bool) (*model.User, string) {
	user := &model.User{
		Email:        email,
		PasswordHash: "irrelevant",
		FullName:     "Test User",
		Username:     email,
		IsAdmin:      isAdmin,
	}
	require.NoError(t, testDB.Create(user).Error)

	tokens, err := util.GenerateTokenPair(user.ID, user.Email, user.IsAdmin, testJWTSecret, 15*time.Minute, time.Hour)
	require.NoError(t, err)

	return user, tokens.AccessToken
}

func patchReview(router *gin.Engine, id, token string, body map[string]interface{}) *httptest.ResponseRecorder {
	body["id"] = id
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest("PATCH", "/api/requests/place-add", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequestController_ReviewRequiresAuth(t *testing.T) {
	router, testDB := setupRequestControllerTest(t)

	request := &model.PlaceAddRequest{
		ProposedPlace: model.JSONMap{"name": "Tomoca"},
		Status:        model.RequestStatusPending,
	}
	require.NoError(t, testDB.Create(request).Error)

	w := patchReview(router, request.ID, "", map[string]interface{}{"action": "approve"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var untouched model.PlaceAddRequest
	require.NoError(t, testDB.First(&untouched, "id = ?", request.ID).Error)
	assert.Equal(t, model.RequestStatusPending, untouched.Status, "an unauthenticated call must not write")
}

func TestRequestController_ReviewRequiresAdmin(t *testing.T) {
	router, testDB := setupRequestControllerTest(t)

	_, token := createTestUser(t, testDB, "user@example.com", false)
	request := &model.PlaceAddRequest{
		ProposedPlace: model.JSONMap{"name": "Tomoca"},
		Status:        model.RequestStatusPending,
	}
	require.NoError(t, testDB.Create(request).Error)

	w := patchReview(router, request.ID, token, map[string]interface{}{"action": "approve"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var untouched model.PlaceAddRequest
	require.NoError(t, testDB.First(&untouched, "id = ?", request.ID).Error)
	assert.Equal(t, model.RequestStatusPending, untouched.Status)

	var placeCount int64
	require.NoError(t, testDB.Model(&model.Place{}).Count(&placeCount).Error)
	assert.Zero(t, placeCount, "a forbidden call must not materialize rows")
}

func TestRequestController_ReviewValidation(t *testing.T) {
	router, testDB := setupRequestControllerTest(t)

	_, token := createTestUser(t, testDB, "admin@example.com", true)
	request := &model.PlaceAddRequest{
		ProposedPlace: model.JSONMap{"name": "Tomoca"},
		Status:        model.RequestStatusPending,
	}
	require.NoError(t, testDB.Create(request).Error)

	t.Run("Invalid id", func(t *testing.T) {
		w := patchReview(router, "not-a-uuid", token, map[string]interface{}{"action": "approve"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid action", func(t *testing.T) {
		w := patchReview(router, request.ID, token, map[string]interface{}{"action": "escalate"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var untouched model.PlaceAddRequest
		require.NoError(t, testDB.First(&untouched, "id = ?", request.ID).Error)
		assert.Equal(t, model.RequestStatusPending, untouched.Status)
	})

	t.Run("Missing action", func(t *testing.T) {
		w := patchReview(router, request.ID, token, map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRequestController_ApproveAndConflict(t *testing.T) {
	router, testDB := setupRequestControllerTest(t)

	_, token := createTestUser(t, testDB, "admin@example.com", true)
	request := &model.PlaceAddRequest{
		ProposedPlace:  model.JSONMap{"name": "Tomoca"},
		ProposedBranch: model.JSONMap{"city": "Addis Ababa"},
		Status:         model.RequestStatusPending,
	}
	require.NoError(t, testDB.Create(request).Error)

	w := patchReview(router, request.ID, token, map[string]interface{}{"action": "approve"})
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response["place_id"])
	assert.NotEmpty(t, response["branch_id"])

	// A second decision on the same request is a conflict
	w = patchReview(router, request.ID, token, map[string]interface{}{"action": "reject", "reason": "no"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResponse map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResponse))
	assert.Equal(t, "REQUEST_ALREADY_REVIEWED", errResponse["error"])
}

func TestRequestController_SubmitAllowsNonAdmin(t *testing.T) {
	router, testDB := setupRequestControllerTest(t)

	user, token := createTestUser(t, testDB, "user@example.com", false)

	payload, _ := json.Marshal(map[string]interface{}{
		"proposed_place":  map[string]interface{}{"name": "Kategna"},
		"proposed_branch": map[string]interface{}{"city": "Addis Ababa"},
	})
	req := httptest.NewRequest("POST", "/api/requests/place-add", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created model.PlaceAddRequest
	require.NoError(t, testDB.First(&created, "author_id = ?", user.ID).Error)
	assert.Equal(t, model.RequestStatusPending, created.Status)
	assert.Equal(t, "Kategna", created.ProposedPlace.String("name", ""))

	t.Run("Unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/requests/place-add", bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequestController_ListDefaultsToPending(t *testing.T) {
	router, testDB := setupRequestControllerTest(t)

	_, token := createTestUser(t, testDB, "admin@example.com", true)
	reviewedAt := time.Now()
	adminID := "reviewer"
	require.NoError(t, testDB.Create(&model.PlaceAddRequest{
		ProposedPlace: model.JSONMap{"name": "Pending One"},
		Status:        model.RequestStatusPending,
	}).Error)
	require.NoError(t, testDB.Create(&model.PlaceAddRequest{
		ProposedPlace: model.JSONMap{"name": "Rejected One"},
		Status:        model.RequestStatusRejected,
		ReviewedBy:    &adminID,
		ReviewedAt:    &reviewedAt,
	}).Error)

	req := httptest.NewRequest("GET", "/api/requests/place-add", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Requests []model.PlaceAddRequest `json:"requests"`
		Total    int64                   `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.EqualValues(t, 1, response.Total)
	require.Len(t, response.Requests, 1)
	assert.Equal(t, model.RequestStatusPending, response.Requests[0].Status)

	t.Run("Invalid status filter", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/requests/place-add?status=bogus", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
