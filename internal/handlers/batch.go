package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/cadencehq/cadence-api/internal/models"
	"github.com/cadencehq/cadence-api/internal/services"
	"github.com/cadencehq/cadence-api/pkg/dto"
)

type BatchHandler struct {
	batchService BatchServiceInterface
}

func NewBatchHandler(batchService BatchServiceInterface) *BatchHandler {
	return &BatchHandler{batchService: batchService}
}

func (h *BatchHandler) Create(c *drift.Context) {
	var req dto.CreateBatchRequest
	if !bindAndValidate(c, &req) {
		return
	}

	batch, err := h.batchService.Create(context.Background(), req.DepartmentID, req.Name, req.Year, req.Section, req.Strength)
	if err != nil {
		if errors.Is(err, services.ErrDepartmentNotFound) {
			c.NotFound("department not found")
			return
		}
		if errors.Is(err, services.ErrBatchExists) {
			c.BadRequest(err.Error())
			return
		}
		c.InternalServerError("failed to create batch")
		return
	}

	_ = c.JSON(201, batchResponse(batch))
}

func (h *BatchHandler) List(c *drift.Context) {
	opts, err := listOptions(c)
	if err != nil {
		c.BadRequest(err.Error())
		return
	}

	var departmentID *uuid.UUID
	if raw := c.QueryParam("department_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.BadRequest("invalid department_id parameter")
			return
		}
		departmentID = &id
	}

	batches, count, err := h.batchService.List(context.Background(), departmentID, opts)
	if err != nil {
		c.InternalServerError("failed to list batches")
		return
	}

	results := make([]dto.BatchResponse, len(batches))
	for i, batch := range batches {
		results[i] = batchResponse(&batch)
	}

	respondList(c, "/api/v1/batches", opts, results, count)
}

func (h *BatchHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid batch id")
		return
	}

	batch, err := h.batchService.GetByID(context.Background(), id)
	if err != nil {
		c.NotFound("batch not found")
		return
	}

	_ = c.JSON(200, batchResponse(batch))
}

func (h *BatchHandler) Update(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid batch id")
		return
	}

	var req dto.UpdateBatchRequest
	if !bindAndValidate(c, &req) {
		return
	}

	batch, err := h.batchService.Update(context.Background(), id, req.Name, req.Year, req.Section, req.Strength)
	if err != nil {
		if errors.Is(err, services.ErrBatchNotFound) {
			c.NotFound("batch not found")
			return
		}
		if errors.Is(err, services.ErrBatchExists) {
			c.BadRequest(err.Error())
			return
		}
		c.InternalServerError("failed to update batch")
		return
	}

	_ = c.JSON(200, batchResponse(batch))
}

func (h *BatchHandler) Delete(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid batch id")
		return
	}

	if err := h.batchService.Delete(context.Background(), id); err != nil {
		if errors.Is(err, services.ErrBatchNotFound) {
			c.NotFound("batch not found")
			return
		}
		c.InternalServerError("failed to delete batch")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "batch deleted"})
}

func batchResponse(batch *models.Batch) dto.BatchResponse {
	return dto.BatchResponse{
		ID:           batch.ID,
		DepartmentID: batch.DepartmentID,
		Name:         batch.Name,
		Year:         batch.Year,
		Section:      batch.Section,
		Strength:     batch.Strength,
		CreatedAt:    batch.CreatedAt,
		UpdatedAt:    batch.UpdatedAt,
	}
}
