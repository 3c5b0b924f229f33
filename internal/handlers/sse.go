package handlers

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/cadencehq/cadence-api/internal/middleware"
	"github.com/cadencehq/cadence-api/internal/sse"
)

type SSEHandler struct {
	hub HubInterface
}

func NewSSEHandler(hub HubInterface) *SSEHandler {
	return &SSEHandler{hub: hub}
}

// Connect opens an event stream for timetable status updates. A client
// starts with no batch subscriptions and adds them via Subscribe.
func (h *SSEHandler) Connect(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	sseCtx := c.SSE()

	clientID := uuid.New().String()
	client := &sse.Client{
		ID:      clientID,
		UserID:  userID,
		Batches: make(map[uuid.UUID]bool),
		Send:    make(chan []byte, 256),
	}

	h.hub.Register(client)
	defer h.hub.Unregister(client)

	if err := sseCtx.SendJSON(map[string]string{
		"type":      "connected",
		"client_id": clientID,
	}, "system", ""); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		<-c.Request.Context().Done()
		close(done)
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				return
			}
			if err := sseCtx.Send(string(msg), "message", ""); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (h *SSEHandler) Subscribe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	clientID := c.Param("clientId")
	if clientID == "" {
		c.BadRequest("client_id is required")
		return
	}

	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		c.BadRequest("invalid batch id")
		return
	}

	h.hub.SubscribeToBatch(clientID, batchID)

	_ = c.JSON(200, map[string]string{
		"message": fmt.Sprintf("subscribed to batch %s", batchID),
	})
}

func (h *SSEHandler) Unsubscribe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	clientID := c.Param("clientId")
	if clientID == "" {
		c.BadRequest("client_id is required")
		return
	}

	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		c.BadRequest("invalid batch id")
		return
	}

	h.hub.UnsubscribeFromBatch(clientID, batchID)

	_ = c.JSON(200, map[string]string{
		"message": fmt.Sprintf("unsubscribed from batch %s", batchID),
	})
}
