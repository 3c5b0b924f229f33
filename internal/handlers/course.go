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

type CourseHandler struct {
	courseService CourseServiceInterface
}

func NewCourseHandler(courseService CourseServiceInterface) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

func (h *CourseHandler) Create(c *drift.Context) {
	var req dto.CreateCourseRequest
	if !bindAndValidate(c, &req) {
		return
	}

	course, err := h.courseService.Create(context.Background(), req.DepartmentID, req.Code, req.Name, req.Credits, req.Semester)
	if err != nil {
		if errors.Is(err, services.ErrDepartmentNotFound) {
			c.NotFound("department not found")
			return
		}
		if errors.Is(err, services.ErrCourseCodeTaken) {
			c.BadRequest(err.Error())
			return
		}
		c.InternalServerError("failed to create course")
		return
	}

	_ = c.JSON(201, courseResponse(course))
}

func (h *CourseHandler) List(c *drift.Context) {
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

	courses, count, err := h.courseService.List(context.Background(), departmentID, opts)
	if err != nil {
		c.InternalServerError("failed to list courses")
		return
	}

	results := make([]dto.CourseResponse, len(courses))
	for i, course := range courses {
		results[i] = courseResponse(&course)
	}

	respondList(c, "/api/v1/courses", opts, results, count)
}

func (h *CourseHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid course id")
		return
	}

	course, err := h.courseService.GetByID(context.Background(), id)
	if err != nil {
		c.NotFound("course not found")
		return
	}

	_ = c.JSON(200, courseResponse(course))
}

func (h *CourseHandler) Update(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid course id")
		return
	}

	var req dto.UpdateCourseRequest
	if !bindAndValidate(c, &req) {
		return
	}

	course, err := h.courseService.Update(context.Background(), id, req.Code, req.Name, req.Credits, req.Semester)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			c.NotFound("course not found")
			return
		}
		if errors.Is(err, services.ErrCourseCodeTaken) {
			c.BadRequest(err.Error())
			return
		}
		c.InternalServerError("failed to update course")
		return
	}

	_ = c.JSON(200, courseResponse(course))
}

func (h *CourseHandler) Delete(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid course id")
		return
	}

	if err := h.courseService.Delete(context.Background(), id); err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			c.NotFound("course not found")
			return
		}
		c.InternalServerError("failed to delete course")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "course deleted"})
}

func courseResponse(course *models.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:           course.ID,
		DepartmentID: course.DepartmentID,
		Code:         course.Code,
		Name:         course.Name,
		Credits:      course.Credits,
		Semester:     course.Semester,
		CreatedAt:    course.CreatedAt,
		UpdatedAt:    course.UpdatedAt,
	}
}
