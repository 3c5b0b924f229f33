package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cadencehq/cadence-api/pkg/dto"
	"github.com/cadencehq/cadence-api/pkg/listview"
)

// Resource is the typed CRUD surface of one REST collection.
type Resource[T any] struct {
	client  *Client
	fetcher *listview.Fetcher[T]
	path    string
}

func newResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{
		client:  c,
		fetcher: listview.NewFetcher[T](c.http, path),
		path:    path,
	}
}

// List fetches one page, or the bare collection when no page is set.
func (r *Resource[T]) List(ctx context.Context, p listview.Params) (*listview.Page[T], error) {
	return r.fetcher.Fetch(ctx, p)
}

// ListAll assembles the full collection in fetch-all mode.
func (r *Resource[T]) ListAll(ctx context.Context, search string) ([]T, error) {
	return r.fetcher.FetchAll(ctx, search)
}

func (r *Resource[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var out T
	resp, err := r.client.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("%s/%s", r.path, id))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return &out, nil
}

func (r *Resource[T]) Create(ctx context.Context, body any) (*T, error) {
	var out T
	resp, err := r.client.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post(r.path + "/")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return &out, nil
}

func (r *Resource[T]) Update(ctx context.Context, id uuid.UUID, body any) (*T, error) {
	var out T
	resp, err := r.client.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Patch(fmt.Sprintf("%s/%s", r.path, id))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return &out, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id uuid.UUID) error {
	resp, err := r.client.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("%s/%s", r.path, id))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

func (c *Client) Buildings() *Resource[dto.BuildingResponse] {
	return newResource[dto.BuildingResponse](c, "buildings")
}

func (c *Client) Rooms() *Resource[dto.RoomResponse] {
	return newResource[dto.RoomResponse](c, "rooms")
}

func (c *Client) Departments() *Resource[dto.DepartmentResponse] {
	return newResource[dto.DepartmentResponse](c, "departments")
}

func (c *Client) Courses() *Resource[dto.CourseResponse] {
	return newResource[dto.CourseResponse](c, "courses")
}

func (c *Client) Batches() *Resource[dto.BatchResponse] {
	return newResource[dto.BatchResponse](c, "batches")
}

func (c *Client) Timetables() *Resource[dto.TimetableResponse] {
	return newResource[dto.TimetableResponse](c, "timetables")
}

// GenerateTimetable submits an asynchronous generation job for a batch.
func (c *Client) GenerateTimetable(ctx context.Context, batchID uuid.UUID) (*dto.TimetableResponse, error) {
	var out dto.TimetableResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(dto.GenerateTimetableRequest{BatchID: batchID}).
		SetResult(&out).
		Post("/timetables/")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return &out, nil
}

// ReviewTimetable approves or rejects a completed timetable. Decision
// is "approve" or "reject".
func (c *Client) ReviewTimetable(ctx context.Context, id uuid.UUID, decision string, comment *string) (*dto.TimetableResponse, error) {
	var out dto.TimetableResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(dto.ReviewTimetableRequest{Decision: decision, Comment: comment}).
		SetResult(&out).
		Post(fmt.Sprintf("/timetables/%s/review", id))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return &out, nil
}
