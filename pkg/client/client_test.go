package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadencehq/cadence-api/pkg/dto"
	"github.com/cadencehq/cadence-api/pkg/listview"
)

func TestClient_LoginStoresSession(t *testing.T) {
	userID := uuid.New()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)
		assert.Equal(t, "s3cret", req.Password)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(dto.TokenResponse{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			ExpiresIn:    900,
			User:         dto.UserResponse{ID: userID, Username: "alice", Role: "Admin"},
		})
	})
	mux.HandleFunc("/api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(dto.UserResponse{ID: userID, Username: "alice"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := New(server.URL)

	session, err := c.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "access-token", session.AccessToken)
	assert.Equal(t, "alice", session.User.Username)
	assert.True(t, session.HasRole("admin"), "role comparison is case-insensitive")
	assert.False(t, session.HasRole("student"))

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, userID, me.ID)
}

func TestClient_LoginErrorSurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"invalid credentials"}`)
	}))
	defer server.Close()

	c := New(server.URL)

	_, err := c.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)

	var apiErr *listview.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid credentials", apiErr.Error())
	assert.Empty(t, c.Session().AccessToken)
}

func TestClient_RefreshRotatesTokens(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(dto.TokenResponse{AccessToken: "access-1", RefreshToken: "refresh-1"})
	})
	mux.HandleFunc("/api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		var req dto.RefreshTokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "refresh-1", req.RefreshToken)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(dto.TokenResponse{AccessToken: "access-2", RefreshToken: "refresh-2"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := New(server.URL)
	_, err := c.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, "access-2", c.Session().AccessToken)
	assert.Equal(t, "refresh-2", c.Session().RefreshToken)
}

func TestClient_RefreshWithoutSession(t *testing.T) {
	c := New("http://localhost:0")
	assert.Error(t, c.Refresh(context.Background()))
}

func TestClient_LogoutClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(dto.TokenResponse{AccessToken: "access", RefreshToken: "refresh"})
	})
	mux.HandleFunc("/api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"message":"logged out"}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := New(server.URL)
	_, err := c.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, c.Session().AccessToken)
	assert.Empty(t, c.Session().RefreshToken)
}

func TestResource_CRUD(t *testing.T) {
	roomID := uuid.New()
	buildingID := uuid.New()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/rooms/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(dto.RoomResponse{ID: roomID, BuildingID: buildingID, Name: "R-101"})
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/rooms/":
			_ = json.NewEncoder(w).Encode([]dto.RoomResponse{{ID: roomID, Name: "R-101"}})
		case r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(dto.RoomResponse{ID: roomID, Name: "R-101"})
		case r.Method == http.MethodPatch:
			_ = json.NewEncoder(w).Encode(dto.RoomResponse{ID: roomID, Name: "R-101b"})
		case r.Method == http.MethodDelete:
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "room deleted"})
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := New(server.URL)
	rooms := c.Rooms()
	ctx := context.Background()

	created, err := rooms.Create(ctx, dto.CreateRoomRequest{BuildingID: buildingID, Name: "R-101", RoomType: "Laboratory", Capacity: 40})
	require.NoError(t, err)
	assert.Equal(t, roomID, created.ID)

	all, err := rooms.ListAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	got, err := rooms.Get(ctx, roomID)
	require.NoError(t, err)
	assert.Equal(t, "R-101", got.Name)

	name := "R-101b"
	updated, err := rooms.Update(ctx, roomID, dto.UpdateRoomRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "R-101b", updated.Name)

	require.NoError(t, rooms.Delete(ctx, roomID))
}

func TestClient_GenerateAndReviewTimetable(t *testing.T) {
	timetableID := uuid.New()
	batchID := uuid.New()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/timetables/", func(w http.ResponseWriter, r *http.Request) {
		var req dto.GenerateTimetableRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, batchID, req.BatchID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(dto.TimetableResponse{ID: timetableID, BatchID: batchID, Status: "pending"})
	})
	mux.HandleFunc(fmt.Sprintf("/api/v1/timetables/%s/review", timetableID), func(w http.ResponseWriter, r *http.Request) {
		var req dto.ReviewTimetableRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "approve", req.Decision)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(dto.TimetableResponse{ID: timetableID, BatchID: batchID, Status: "approved"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := New(server.URL)
	ctx := context.Background()

	created, err := c.GenerateTimetable(ctx, batchID)
	require.NoError(t, err)
	assert.Equal(t, "pending", created.Status)

	reviewed, err := c.ReviewTimetable(ctx, timetableID, "approve", nil)
	require.NoError(t, err)
	assert.Equal(t, "approved", reviewed.Status)
}
