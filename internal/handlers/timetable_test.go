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

	"github.com/cadencehq/cadence-api/internal/middleware"
	"github.com/cadencehq/cadence-api/internal/models"
	"github.com/cadencehq/cadence-api/internal/scheduler"
	"github.com/cadencehq/cadence-api/internal/services"
	"github.com/cadencehq/cadence-api/pkg/dto"
	"github.com/cadencehq/cadence-api/tests/testutil"
)

type timetableTestMocks struct {
	timetables *testutil.MockTimetableService
	batches    *testutil.MockBatchService
	users      *testutil.MockUserService
	engine     *testutil.MockSchedulerClient
	email      *testutil.MockEmailService
	hub        *testutil.MockHub
}

func setupTimetableTest(t *testing.T, userID uuid.UUID) (timetableTestMocks, *drift.Engine) {
	t.Helper()
	m := timetableTestMocks{
		timetables: new(testutil.MockTimetableService),
		batches:    new(testutil.MockBatchService),
		users:      new(testutil.MockUserService),
		engine:     new(testutil.MockSchedulerClient),
		email:      new(testutil.MockEmailService),
		hub:        new(testutil.MockHub),
	}

	handler := NewTimetableHandler(
		m.timetables, m.batches, m.users, m.engine, m.email, m.hub,
		"http://localhost:8080",
	)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	// Stand-in for the auth middleware: inject the caller's identity
	app.Use(func(c *drift.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	})
	app.Post("/timetables/", handler.Generate)
	app.Get("/timetables/", handler.List)
	app.Get("/timetables/:id", handler.Get)
	app.Post("/timetables/:id/review", handler.Review)
	app.Delete("/timetables/:id", handler.Delete)
	app.Post("/internal/engine/result", handler.EngineResult)

	return m, app
}

func pendingTimetable(batchID, requestedBy uuid.UUID) *models.Timetable {
	now := time.Now()
	return &models.Timetable{
		ID:          uuid.New(),
		BatchID:     batchID,
		Status:      models.TimetableStatusPending,
		Entries:     json.RawMessage(`[]`),
		RequestedBy: &requestedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestTimetableHandler_Generate(t *testing.T) {
	staffID := uuid.New()
	m, app := setupTimetableTest(t, staffID)

	batchID := uuid.New()
	batch := &models.Batch{ID: batchID, Name: "CS 2024", Section: "A"}
	timetable := pendingTimetable(batchID, staffID)

	m.batches.On("GetByID", mock.Anything, batchID).Return(batch, nil)
	m.timetables.On("Create", mock.Anything, batchID, staffID).Return(timetable, nil)
	m.engine.On("SubmitJob", mock.Anything, mock.MatchedBy(func(req scheduler.GenerateRequest) bool {
		return req.TimetableID == timetable.ID &&
			req.BatchID == batchID &&
			req.CallbackURL == "http://localhost:8080/api/v1/internal/engine/result"
	})).Return("job-123", nil)
	m.timetables.On("AttachEngineJob", mock.Anything, timetable.ID, "job-123").Return(nil)
	m.hub.On("BroadcastTimetableStatus", batchID, timetable.ID, models.TimetableStatusPending).Return()

	rec := postJSON(t, app, "/timetables/", dto.GenerateTimetableRequest{BatchID: batchID})

	assert.Equal(t, http.StatusAccepted, rec.Code)

	var response dto.TimetableResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, models.TimetableStatusPending, response.Status)
	require.NotNil(t, response.EngineJobID)
	assert.Equal(t, "job-123", *response.EngineJobID)

	m.timetables.AssertExpectations(t)
	m.engine.AssertExpectations(t)
	m.hub.AssertExpectations(t)
}

func TestTimetableHandler_Generate_UnknownBatch(t *testing.T) {
	m, app := setupTimetableTest(t, uuid.New())

	batchID := uuid.New()
	m.batches.On("GetByID", mock.Anything, batchID).Return(nil, services.ErrBatchNotFound)

	rec := postJSON(t, app, "/timetables/", dto.GenerateTimetableRequest{BatchID: batchID})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "batch not found")
}

func TestTimetableHandler_Generate_EngineDown(t *testing.T) {
	staffID := uuid.New()
	m, app := setupTimetableTest(t, staffID)

	batchID := uuid.New()
	batch := &models.Batch{ID: batchID}
	timetable := pendingTimetable(batchID, staffID)

	m.batches.On("GetByID", mock.Anything, batchID).Return(batch, nil)
	m.timetables.On("Create", mock.Anything, batchID, staffID).Return(timetable, nil)
	m.engine.On("SubmitJob", mock.Anything, mock.Anything).Return("", assert.AnError)
	m.timetables.On("MarkFailed", mock.Anything, timetable.ID, assert.AnError.Error()).Return(nil)

	rec := postJSON(t, app, "/timetables/", dto.GenerateTimetableRequest{BatchID: batchID})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	m.timetables.AssertCalled(t, "MarkFailed", mock.Anything, timetable.ID, assert.AnError.Error())
}

func TestTimetableHandler_Review_Reject(t *testing.T) {
	adminID := uuid.New()
	m, app := setupTimetableTest(t, adminID)

	timetable := pendingTimetable(uuid.New(), uuid.New())
	timetable.Status = models.TimetableStatusRejected
	comment := "clashes on monday"

	m.timetables.On("Review", mock.Anything, timetable.ID, adminID, false, &comment).
		Return(timetable, nil)
	m.hub.On("BroadcastTimetableStatus", timetable.BatchID, timetable.ID, models.TimetableStatusRejected).Return()

	rec := postJSON(t, app, "/timetables/"+timetable.ID.String()+"/review", dto.ReviewTimetableRequest{
		Decision: "reject",
		Comment:  &comment,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	m.timetables.AssertExpectations(t)
	m.hub.AssertExpectations(t)
	// Rejection never sends faculty email
	m.email.AssertNotCalled(t, "IsConfigured")
}

func TestTimetableHandler_Review_Approve_NoEmailWhenUnconfigured(t *testing.T) {
	adminID := uuid.New()
	m, app := setupTimetableTest(t, adminID)

	timetable := pendingTimetable(uuid.New(), uuid.New())
	timetable.Status = models.TimetableStatusApproved

	m.timetables.On("Review", mock.Anything, timetable.ID, adminID, true, (*string)(nil)).
		Return(timetable, nil)
	m.hub.On("BroadcastTimetableStatus", timetable.BatchID, timetable.ID, models.TimetableStatusApproved).Return()
	m.email.On("IsConfigured").Return(false)

	rec := postJSON(t, app, "/timetables/"+timetable.ID.String()+"/review", dto.ReviewTimetableRequest{
		Decision: "approve",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	m.email.AssertExpectations(t)
	m.batches.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestTimetableHandler_Review_InvalidDecision(t *testing.T) {
	_, app := setupTimetableTest(t, uuid.New())

	rec := postJSON(t, app, "/timetables/"+uuid.New().String()+"/review", map[string]string{
		"decision": "maybe",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimetableHandler_Review_NotReviewable(t *testing.T) {
	adminID := uuid.New()
	m, app := setupTimetableTest(t, adminID)

	id := uuid.New()
	m.timetables.On("Review", mock.Anything, id, adminID, true, (*string)(nil)).
		Return(nil, services.ErrTimetableNotReviewable)

	rec := postJSON(t, app, "/timetables/"+id.String()+"/review", dto.ReviewTimetableRequest{
		Decision: "approve",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not awaiting review")
}

func TestTimetableHandler_EngineResult(t *testing.T) {
	m, app := setupTimetableTest(t, uuid.Nil)

	jobID := "job-77"
	entries := json.RawMessage(`[{"day":"monday","slot":1}]`)
	timetable := pendingTimetable(uuid.New(), uuid.New())
	timetable.Status = models.TimetableStatusCompleted
	timetable.Entries = entries

	m.timetables.On("ApplyEngineResult", mock.Anything, jobID, models.TimetableStatusCompleted, entries, "").
		Return(timetable, nil)
	m.hub.On("BroadcastTimetableStatus", timetable.BatchID, timetable.ID, models.TimetableStatusCompleted).Return()

	rec := postJSON(t, app, "/internal/engine/result", dto.EngineResultRequest{
		JobID:   jobID,
		Status:  models.TimetableStatusCompleted,
		Entries: entries,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "result recorded")
	m.timetables.AssertExpectations(t)
	m.hub.AssertExpectations(t)
}

func TestTimetableHandler_EngineResult_UnknownJob(t *testing.T) {
	m, app := setupTimetableTest(t, uuid.Nil)

	m.timetables.On("ApplyEngineResult", mock.Anything, "job-missing", models.TimetableStatusFailed, json.RawMessage(nil), "no solution").
		Return(nil, services.ErrTimetableNotFound)

	rec := postJSON(t, app, "/internal/engine/result", dto.EngineResultRequest{
		JobID:   "job-missing",
		Status:  models.TimetableStatusFailed,
		Message: "no solution",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no pending timetable")
}

func TestTimetableHandler_List_FiltersByBatchAndStatus(t *testing.T) {
	m, app := setupTimetableTest(t, uuid.New())

	batchID := uuid.New()
	timetables := []models.Timetable{*pendingTimetable(batchID, uuid.New())}
	timetables[0].Status = models.TimetableStatusCompleted

	m.timetables.On("List", mock.Anything, &batchID, models.TimetableStatusCompleted, services.ListOptions{}).
		Return(timetables, 1, nil)

	req := httptest.NewRequest(http.MethodGet, "/timetables/?batch_id="+batchID.String()+"&status=completed", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	m.timetables.AssertExpectations(t)
}

func TestTimetableHandler_List_InvalidBatchID(t *testing.T) {
	_, app := setupTimetableTest(t, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/timetables/?batch_id=nope", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimetableHandler_Delete_CancelsPendingEngineJob(t *testing.T) {
	m, app := setupTimetableTest(t, uuid.New())

	timetable := pendingTimetable(uuid.New(), uuid.New())
	jobID := "job-123"
	timetable.EngineJobID = &jobID

	m.timetables.On("GetByID", mock.Anything, timetable.ID).Return(timetable, nil)
	m.engine.On("CancelJob", mock.Anything, jobID).Return(nil)
	m.timetables.On("Delete", mock.Anything, timetable.ID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/timetables/"+timetable.ID.String(), nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	m.engine.AssertCalled(t, "CancelJob", mock.Anything, jobID)
	m.timetables.AssertExpectations(t)
}

func TestTimetableHandler_Delete_CompletedJobNotCancelled(t *testing.T) {
	m, app := setupTimetableTest(t, uuid.New())

	timetable := pendingTimetable(uuid.New(), uuid.New())
	jobID := "job-123"
	timetable.EngineJobID = &jobID
	timetable.Status = models.TimetableStatusCompleted

	m.timetables.On("GetByID", mock.Anything, timetable.ID).Return(timetable, nil)
	m.timetables.On("Delete", mock.Anything, timetable.ID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/timetables/"+timetable.ID.String(), nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	m.engine.AssertNotCalled(t, "CancelJob", mock.Anything, mock.Anything)
}
