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

type RoomHandler struct {
	roomService RoomServiceInterface
}

func NewRoomHandler(roomService RoomServiceInterface) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

func (h *RoomHandler) Create(c *drift.Context) {
	var req dto.CreateRoomRequest
	if !bindAndValidate(c, &req) {
		return
	}

	room, err := h.roomService.Create(context.Background(), req.BuildingID, req.Name, req.RoomType, req.Capacity)
	if err != nil {
		if errors.Is(err, services.ErrBuildingNotFound) {
			c.NotFound("building not found")
			return
		}
		if errors.Is(err, services.ErrRoomNameTaken) {
			c.BadRequest(err.Error())
			return
		}
		c.InternalServerError("failed to create room")
		return
	}

	_ = c.JSON(201, roomResponse(room))
}

func (h *RoomHandler) List(c *drift.Context) {
	opts, err := listOptions(c)
	if err != nil {
		c.BadRequest(err.Error())
		return
	}

	var buildingID *uuid.UUID
	if raw := c.QueryParam("building_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.BadRequest("invalid building_id parameter")
			return
		}
		buildingID = &id
	}

	rooms, count, err := h.roomService.List(context.Background(), buildingID, opts)
	if err != nil {
		c.InternalServerError("failed to list rooms")
		return
	}

	results := make([]dto.RoomResponse, len(rooms))
	for i, r := range rooms {
		results[i] = roomResponse(&r)
	}

	respondList(c, "/api/v1/rooms", opts, results, count)
}

func (h *RoomHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid room id")
		return
	}

	room, err := h.roomService.GetByID(context.Background(), id)
	if err != nil {
		c.NotFound("room not found")
		return
	}

	_ = c.JSON(200, roomResponse(room))
}

func (h *RoomHandler) Update(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid room id")
		return
	}

	var req dto.UpdateRoomRequest
	if !bindAndValidate(c, &req) {
		return
	}

	room, err := h.roomService.Update(context.Background(), id, req.Name, req.RoomType, req.Capacity)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			c.NotFound("room not found")
			return
		}
		if errors.Is(err, services.ErrRoomNameTaken) {
			c.BadRequest(err.Error())
			return
		}
		c.InternalServerError("failed to update room")
		return
	}

	_ = c.JSON(200, roomResponse(room))
}

func (h *RoomHandler) Delete(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid room id")
		return
	}

	if err := h.roomService.Delete(context.Background(), id); err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			c.NotFound("room not found")
			return
		}
		c.InternalServerError("failed to delete room")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "room deleted"})
}

func roomResponse(r *models.Room) dto.RoomResponse {
	return dto.RoomResponse{
		ID:         r.ID,
		BuildingID: r.BuildingID,
		Name:       r.Name,
		RoomType:   r.RoomType,
		Capacity:   r.Capacity,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
