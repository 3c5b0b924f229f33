package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/cadencehq/cadence-api/internal/middleware"
	"github.com/cadencehq/cadence-api/internal/models"
	"github.com/cadencehq/cadence-api/internal/scheduler"
	"github.com/cadencehq/cadence-api/internal/services"
	"github.com/cadencehq/cadence-api/pkg/dto"
)

type TimetableHandler struct {
	timetableService TimetableServiceInterface
	batchService     BatchServiceInterface
	userService      UserServiceInterface
	engine           SchedulerClientInterface
	emailService     EmailServiceInterface
	hub              HubInterface
	baseURL          string
}

func NewTimetableHandler(
	timetableService TimetableServiceInterface,
	batchService BatchServiceInterface,
	userService UserServiceInterface,
	engine SchedulerClientInterface,
	emailService EmailServiceInterface,
	hub HubInterface,
	baseURL string,
) *TimetableHandler {
	return &TimetableHandler{
		timetableService: timetableService,
		batchService:     batchService,
		userService:      userService,
		engine:           engine,
		emailService:     emailService,
		hub:              hub,
		baseURL:          baseURL,
	}
}

// Generate creates a pending timetable and submits a generation job to
// the scheduling engine. The engine reports back asynchronously on the
// internal callback route.
func (h *TimetableHandler) Generate(c *drift.Context) {
	var req dto.GenerateTimetableRequest
	if !bindAndValidate(c, &req) {
		return
	}

	ctx := context.Background()

	if _, err := h.batchService.GetByID(ctx, req.BatchID); err != nil {
		c.NotFound("batch not found")
		return
	}

	timetable, err := h.timetableService.Create(ctx, req.BatchID, middleware.GetUserID(c))
	if err != nil {
		c.InternalServerError("failed to create timetable")
		return
	}

	jobID, err := h.engine.SubmitJob(ctx, scheduler.GenerateRequest{
		TimetableID: timetable.ID,
		BatchID:     timetable.BatchID,
		CallbackURL: h.baseURL + "/api/v1/internal/engine/result",
	})
	if err != nil {
		_ = h.timetableService.MarkFailed(ctx, timetable.ID, err.Error())
		c.InternalServerError(err.Error())
		return
	}

	if err := h.timetableService.AttachEngineJob(ctx, timetable.ID, jobID); err != nil {
		c.InternalServerError("failed to record engine job")
		return
	}
	timetable.EngineJobID = &jobID

	h.hub.BroadcastTimetableStatus(timetable.BatchID, timetable.ID, timetable.Status)

	_ = c.JSON(202, timetableResponse(timetable))
}

func (h *TimetableHandler) List(c *drift.Context) {
	opts, err := listOptions(c)
	if err != nil {
		c.BadRequest(err.Error())
		return
	}

	var batchID *uuid.UUID
	if raw := c.QueryParam("batch_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.BadRequest("invalid batch_id parameter")
			return
		}
		batchID = &id
	}
	status := c.QueryParam("status")

	timetables, count, err := h.timetableService.List(context.Background(), batchID, status, opts)
	if err != nil {
		c.InternalServerError("failed to list timetables")
		return
	}

	results := make([]dto.TimetableResponse, len(timetables))
	for i, timetable := range timetables {
		results[i] = timetableResponse(&timetable)
	}

	respondList(c, "/api/v1/timetables", opts, results, count)
}

func (h *TimetableHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid timetable id")
		return
	}

	timetable, err := h.timetableService.GetByID(context.Background(), id)
	if err != nil {
		c.NotFound("timetable not found")
		return
	}

	_ = c.JSON(200, timetableResponse(timetable))
}

// Review approves or rejects a completed timetable. Approval notifies
// faculty in the batch's department by email and pushes a status event
// to connected dashboards.
func (h *TimetableHandler) Review(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid timetable id")
		return
	}

	var req dto.ReviewTimetableRequest
	if !bindAndValidate(c, &req) {
		return
	}

	ctx := context.Background()
	approve := req.Decision == "approve"

	timetable, err := h.timetableService.Review(ctx, id, middleware.GetUserID(c), approve, req.Comment)
	if err != nil {
		if errors.Is(err, services.ErrTimetableNotFound) {
			c.NotFound("timetable not found")
			return
		}
		if errors.Is(err, services.ErrTimetableNotReviewable) {
			c.BadRequest(err.Error())
			return
		}
		c.InternalServerError("failed to review timetable")
		return
	}

	h.hub.BroadcastTimetableStatus(timetable.BatchID, timetable.ID, timetable.Status)

	if approve {
		h.notifyFaculty(ctx, timetable)
	}

	_ = c.JSON(200, timetableResponse(timetable))
}

func (h *TimetableHandler) notifyFaculty(ctx context.Context, timetable *models.Timetable) {
	if !h.emailService.IsConfigured() {
		return
	}

	batch, err := h.batchService.GetByID(ctx, timetable.BatchID)
	if err != nil {
		return
	}
	emails, err := h.userService.FacultyEmails(ctx, batch.DepartmentID)
	if err != nil {
		return
	}

	batchName := fmt.Sprintf("%s %s", batch.Name, batch.Section)
	dashboardURL := fmt.Sprintf("%s/timetables/%s", h.baseURL, timetable.ID)

	go func() {
		for _, email := range emails {
			_ = h.emailService.SendTimetablePublished(email, batchName, dashboardURL)
		}
	}()
}

func (h *TimetableHandler) Delete(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid timetable id")
		return
	}

	ctx := context.Background()

	// A pending timetable still has a job running on the engine; tell
	// the engine to abandon it before the row disappears. A failed
	// cancel is not fatal, the callback will find no pending row.
	if timetable, err := h.timetableService.GetByID(ctx, id); err == nil {
		if timetable.Status == models.TimetableStatusPending && timetable.EngineJobID != nil {
			_ = h.engine.CancelJob(ctx, *timetable.EngineJobID)
		}
	}

	if err := h.timetableService.Delete(ctx, id); err != nil {
		if errors.Is(err, services.ErrTimetableNotFound) {
			c.NotFound("timetable not found")
			return
		}
		c.InternalServerError("failed to delete timetable")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "timetable deleted"})
}

// EngineResult is the callback route the scheduling engine posts to
// when a generation job finishes. It is authenticated with the shared
// callback key, not a user token.
func (h *TimetableHandler) EngineResult(c *drift.Context) {
	var req dto.EngineResultRequest
	if !bindAndValidate(c, &req) {
		return
	}

	timetable, err := h.timetableService.ApplyEngineResult(context.Background(), req.JobID, req.Status, req.Entries, req.Message)
	if err != nil {
		if errors.Is(err, services.ErrTimetableNotFound) {
			c.NotFound("no pending timetable for this job")
			return
		}
		c.InternalServerError("failed to apply engine result")
		return
	}

	h.hub.BroadcastTimetableStatus(timetable.BatchID, timetable.ID, timetable.Status)

	_ = c.JSON(200, map[string]string{"message": "result recorded"})
}

func timetableResponse(t *models.Timetable) dto.TimetableResponse {
	return dto.TimetableResponse{
		ID:          t.ID,
		BatchID:     t.BatchID,
		Status:      t.Status,
		Entries:     t.Entries,
		EngineJobID: t.EngineJobID,
		Message:     t.Message,
		RequestedBy: t.RequestedBy,
		ReviewedBy:  t.ReviewedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
