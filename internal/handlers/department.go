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

type DepartmentHandler struct {
	departmentService DepartmentServiceInterface
}

func NewDepartmentHandler(departmentService DepartmentServiceInterface) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

func (h *DepartmentHandler) Create(c *drift.Context) {
	var req dto.CreateDepartmentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	department, err := h.departmentService.Create(context.Background(), req.Code, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrDepartmentCodeTaken) {
			c.BadRequest(err.Error())
			return
		}
		c.InternalServerError("failed to create department")
		return
	}

	_ = c.JSON(201, departmentResponse(department))
}

func (h *DepartmentHandler) List(c *drift.Context) {
	opts, err := listOptions(c)
	if err != nil {
		c.BadRequest(err.Error())
		return
	}

	departments, count, err := h.departmentService.List(context.Background(), opts)
	if err != nil {
		c.InternalServerError("failed to list departments")
		return
	}

	results := make([]dto.DepartmentResponse, len(departments))
	for i, d := range departments {
		results[i] = departmentResponse(&d)
	}

	respondList(c, "/api/v1/departments", opts, results, count)
}

func (h *DepartmentHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid department id")
		return
	}

	department, err := h.departmentService.GetByID(context.Background(), id)
	if err != nil {
		c.NotFound("department not found")
		return
	}

	_ = c.JSON(200, departmentResponse(department))
}

func (h *DepartmentHandler) Update(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid department id")
		return
	}

	var req dto.UpdateDepartmentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	department, err := h.departmentService.Update(context.Background(), id, req.Code, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrDepartmentNotFound) {
			c.NotFound("department not found")
			return
		}
		if errors.Is(err, services.ErrDepartmentCodeTaken) {
			c.BadRequest(err.Error())
			return
		}
		c.InternalServerError("failed to update department")
		return
	}

	_ = c.JSON(200, departmentResponse(department))
}

func (h *DepartmentHandler) Delete(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid department id")
		return
	}

	if err := h.departmentService.Delete(context.Background(), id); err != nil {
		if errors.Is(err, services.ErrDepartmentNotFound) {
			c.NotFound("department not found")
			return
		}
		c.InternalServerError("failed to delete department")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "department deleted"})
}

func departmentResponse(d *models.Department) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		ID:        d.ID,
		Code:      d.Code,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
