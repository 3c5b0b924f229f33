package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cadencehq/cadence-api/internal/models"
	"github.com/cadencehq/cadence-api/internal/services"
	"github.com/cadencehq/cadence-api/pkg/dto"
	"github.com/cadencehq/cadence-api/tests/testutil"
)

func setupBuildingTest(t *testing.T) (*testutil.MockBuildingService, *drift.Engine) {
	t.Helper()
	mockService := new(testutil.MockBuildingService)
	handler := NewBuildingHandler(mockService)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Get("/buildings/", handler.List)
	app.Post("/buildings/", handler.Create)
	app.Get("/buildings/:id", handler.Get)
	app.Patch("/buildings/:id", handler.Update)
	app.Delete("/buildings/:id", handler.Delete)

	return mockService, app
}

func testBuilding(code, name string) models.Building {
	now := time.Now()
	return models.Building{
		ID:        uuid.New(),
		Code:      code,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestBuildingHandler_List_BareArray(t *testing.T) {
	mockService, app := setupBuildingTest(t)

	buildings := []models.Building{
		testBuilding("ENG", "Engineering Block"),
		testBuilding("SCI", "Science Block"),
	}
	mockService.On("List", mock.Anything, services.ListOptions{}).Return(buildings, 2, nil)

	req := httptest.NewRequest(http.MethodGet, "/buildings/", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	// No page param means a bare JSON array, not an envelope
	var results []dto.BuildingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	assert.Len(t, results, 2)
}

func TestBuildingHandler_List_PagedEnvelope(t *testing.T) {
	mockService, app := setupBuildingTest(t)

	buildings := []models.Building{testBuilding("ENG", "Engineering Block")}
	mockService.On("List", mock.Anything, services.ListOptions{Page: 1, PageSize: 1}).
		Return(buildings, 3, nil)

	req := httptest.NewRequest(http.MethodGet, "/buildings/?page=1&page_size=1", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope dto.Envelope[dto.BuildingResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 3, envelope.Count)
	assert.Len(t, envelope.Results, 1)
	require.NotNil(t, envelope.Next)
	// The cursor must target the registered route, trailing slash
	// included, so following it cannot 404.
	assert.Contains(t, *envelope.Next, "/api/v1/buildings/?")
	assert.Contains(t, *envelope.Next, "page=2")
}

func TestBuildingHandler_List_LastPageHasNoNext(t *testing.T) {
	mockService, app := setupBuildingTest(t)

	buildings := []models.Building{testBuilding("SCI", "Science Block")}
	mockService.On("List", mock.Anything, services.ListOptions{Page: 3, PageSize: 1}).
		Return(buildings, 3, nil)

	req := httptest.NewRequest(http.MethodGet, "/buildings/?page=3&page_size=1", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	var envelope dto.Envelope[dto.BuildingResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Nil(t, envelope.Next)
}

func TestBuildingHandler_List_EmptyIsArrayNotNull(t *testing.T) {
	mockService, app := setupBuildingTest(t)

	mockService.On("List", mock.Anything, services.ListOptions{}).
		Return([]models.Building(nil), 0, nil)

	req := httptest.NewRequest(http.MethodGet, "/buildings/", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestBuildingHandler_List_InvalidPage(t *testing.T) {
	_, app := setupBuildingTest(t)

	req := httptest.NewRequest(http.MethodGet, "/buildings/?page=zero", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBuildingHandler_Create(t *testing.T) {
	mockService, app := setupBuildingTest(t)

	building := testBuilding("LIB", "Library")
	mockService.On("Create", mock.Anything, "LIB", "Library").Return(&building, nil)

	rec := postJSON(t, app, "/buildings/", dto.CreateBuildingRequest{Code: "LIB", Name: "Library"})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response dto.BuildingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "LIB", response.Code)
	mockService.AssertExpectations(t)
}

func TestBuildingHandler_Create_DuplicateCode(t *testing.T) {
	mockService, app := setupBuildingTest(t)

	mockService.On("Create", mock.Anything, "LIB", "Library").
		Return(nil, services.ErrBuildingCodeTaken)

	rec := postJSON(t, app, "/buildings/", dto.CreateBuildingRequest{Code: "LIB", Name: "Library"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already in use")
}

func TestBuildingHandler_Get_InvalidID(t *testing.T) {
	_, app := setupBuildingTest(t)

	req := httptest.NewRequest(http.MethodGet, "/buildings/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBuildingHandler_Get_NotFound(t *testing.T) {
	mockService, app := setupBuildingTest(t)

	buildingID := uuid.New()
	mockService.On("GetByID", mock.Anything, buildingID).
		Return(nil, services.ErrBuildingNotFound)

	req := httptest.NewRequest(http.MethodGet, "/buildings/"+buildingID.String(), nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBuildingHandler_Delete(t *testing.T) {
	mockService, app := setupBuildingTest(t)

	buildingID := uuid.New()
	mockService.On("Delete", mock.Anything, buildingID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/buildings/"+buildingID.String(), nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}
