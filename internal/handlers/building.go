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

type BuildingHandler struct {
	buildingService BuildingServiceInterface
}

func NewBuildingHandler(buildingService BuildingServiceInterface) *BuildingHandler {
	return &BuildingHandler{buildingService: buildingService}
}

func (h *BuildingHandler) Create(c *drift.Context) {
	var req dto.CreateBuildingRequest
	if !bindAndValidate(c, &req) {
		return
	}

	building, err := h.buildingService.Create(context.Background(), req.Code, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrBuildingCodeTaken) {
			c.BadRequest(err.Error())
			return
		}
		c.InternalServerError("failed to create building")
		return
	}

	_ = c.JSON(201, buildingResponse(building))
}

func (h *BuildingHandler) List(c *drift.Context) {
	opts, err := listOptions(c)
	if err != nil {
		c.BadRequest(err.Error())
		return
	}

	buildings, count, err := h.buildingService.List(context.Background(), opts)
	if err != nil {
		c.InternalServerError("failed to list buildings")
		return
	}

	results := make([]dto.BuildingResponse, len(buildings))
	for i, b := range buildings {
		results[i] = buildingResponse(&b)
	}

	respondList(c, "/api/v1/buildings", opts, results, count)
}

func (h *BuildingHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid building id")
		return
	}

	building, err := h.buildingService.GetByID(context.Background(), id)
	if err != nil {
		c.NotFound("building not found")
		return
	}

	_ = c.JSON(200, buildingResponse(building))
}

func (h *BuildingHandler) Update(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid building id")
		return
	}

	var req dto.UpdateBuildingRequest
	if !bindAndValidate(c, &req) {
		return
	}

	building, err := h.buildingService.Update(context.Background(), id, req.Code, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrBuildingNotFound) {
			c.NotFound("building not found")
			return
		}
		if errors.Is(err, services.ErrBuildingCodeTaken) {
			c.BadRequest(err.Error())
			return
		}
		c.InternalServerError("failed to update building")
		return
	}

	_ = c.JSON(200, buildingResponse(building))
}

func (h *BuildingHandler) Delete(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid building id")
		return
	}

	if err := h.buildingService.Delete(context.Background(), id); err != nil {
		if errors.Is(err, services.ErrBuildingNotFound) {
			c.NotFound("building not found")
			return
		}
		c.InternalServerError("failed to delete building")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "building deleted"})
}

func buildingResponse(b *models.Building) dto.BuildingResponse {
	return dto.BuildingResponse{
		ID:        b.ID,
		Code:      b.Code,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
