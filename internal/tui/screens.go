package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/cadencehq/cadence-api/pkg/client"
	"github.com/cadencehq/cadence-api/pkg/dto"
	"github.com/cadencehq/cadence-api/pkg/listview"
)

// Options configures a resource screen.
type Options struct {
	// Store backs the fetch-all cache. Nil disables caching.
	Store listview.Store
	// ServerMode pages and searches on the server instead of locally.
	ServerMode bool
	PageSize   int
}

func (o Options) mode() listview.Mode {
	if o.ServerMode {
		return listview.ModePaged
	}
	return listview.ModeFetchAll
}

func newController[T any](api *client.Client, resource string, schema listview.Schema[T], o Options) *listview.Controller[T] {
	return listview.NewController(listview.Config[T]{
		Client:   api.HTTP(),
		Resource: resource,
		Schema:   schema,
		Mode:     o.mode(),
		PageSize: o.PageSize,
		Store:    o.Store,
	})
}

func Buildings(ctx context.Context, api *client.Client, o Options) *Browser[dto.BuildingResponse] {
	schema := listview.Schema[dto.BuildingResponse]{
		SearchFields: func(b dto.BuildingResponse) []string { return []string{b.Code, b.Name} },
		Compare: func(a, b dto.BuildingResponse, column string) int {
			switch column {
			case "name":
				return strings.Compare(a.Name, b.Name)
			default:
				return strings.Compare(a.Code, b.Code)
			}
		},
	}
	columns := []Column[dto.BuildingResponse]{
		{Title: "Code", Width: 10, Key: "code", Cell: func(b dto.BuildingResponse) string { return b.Code }},
		{Title: "Name", Width: 40, Key: "name", Cell: func(b dto.BuildingResponse) string { return b.Name }},
	}
	return NewBrowser(ctx, "Buildings", "buildings", newController(api, "buildings", schema, o), columns, o.ServerMode)
}

func Rooms(ctx context.Context, api *client.Client, o Options) *Browser[dto.RoomResponse] {
	schema := listview.Schema[dto.RoomResponse]{
		SearchFields: func(r dto.RoomResponse) []string { return []string{r.Name, r.RoomType} },
		Compare: func(a, b dto.RoomResponse, column string) int {
			switch column {
			case "type":
				return strings.Compare(a.RoomType, b.RoomType)
			case "capacity":
				return a.Capacity - b.Capacity
			default:
				return strings.Compare(a.Name, b.Name)
			}
		},
	}
	columns := []Column[dto.RoomResponse]{
		{Title: "Name", Width: 20, Key: "name", Cell: func(r dto.RoomResponse) string { return r.Name }},
		{Title: "Type", Width: 15, Key: "type", Cell: func(r dto.RoomResponse) string { return r.RoomType }},
		{Title: "Capacity", Width: 10, Key: "capacity", Cell: func(r dto.RoomResponse) string { return strconv.Itoa(r.Capacity) }},
	}
	return NewBrowser(ctx, "Rooms", "rooms", newController(api, "rooms", schema, o), columns, o.ServerMode)
}

func Departments(ctx context.Context, api *client.Client, o Options) *Browser[dto.DepartmentResponse] {
	schema := listview.Schema[dto.DepartmentResponse]{
		SearchFields: func(d dto.DepartmentResponse) []string { return []string{d.Code, d.Name} },
		Compare: func(a, b dto.DepartmentResponse, column string) int {
			switch column {
			case "name":
				return strings.Compare(a.Name, b.Name)
			default:
				return strings.Compare(a.Code, b.Code)
			}
		},
	}
	columns := []Column[dto.DepartmentResponse]{
		{Title: "Code", Width: 10, Key: "code", Cell: func(d dto.DepartmentResponse) string { return d.Code }},
		{Title: "Name", Width: 40, Key: "name", Cell: func(d dto.DepartmentResponse) string { return d.Name }},
	}
	return NewBrowser(ctx, "Departments", "departments", newController(api, "departments", schema, o), columns, o.ServerMode)
}

func Courses(ctx context.Context, api *client.Client, o Options) *Browser[dto.CourseResponse] {
	schema := listview.Schema[dto.CourseResponse]{
		SearchFields: func(c dto.CourseResponse) []string { return []string{c.Code, c.Name} },
		Compare: func(a, b dto.CourseResponse, column string) int {
			switch column {
			case "name":
				return strings.Compare(a.Name, b.Name)
			case "credits":
				return a.Credits - b.Credits
			case "semester":
				return a.Semester - b.Semester
			default:
				return strings.Compare(a.Code, b.Code)
			}
		},
	}
	columns := []Column[dto.CourseResponse]{
		{Title: "Code", Width: 10, Key: "code", Cell: func(c dto.CourseResponse) string { return c.Code }},
		{Title: "Name", Width: 32, Key: "name", Cell: func(c dto.CourseResponse) string { return c.Name }},
		{Title: "Credits", Width: 8, Key: "credits", Cell: func(c dto.CourseResponse) string { return strconv.Itoa(c.Credits) }},
		{Title: "Semester", Width: 9, Key: "semester", Cell: func(c dto.CourseResponse) string { return strconv.Itoa(c.Semester) }},
	}
	return NewBrowser(ctx, "Courses", "courses", newController(api, "courses", schema, o), columns, o.ServerMode)
}

func Batches(ctx context.Context, api *client.Client, o Options) *Browser[dto.BatchResponse] {
	schema := listview.Schema[dto.BatchResponse]{
		SearchFields: func(b dto.BatchResponse) []string { return []string{b.Name, b.Section} },
		Compare: func(a, b dto.BatchResponse, column string) int {
			switch column {
			case "year":
				return a.Year - b.Year
			case "section":
				return strings.Compare(a.Section, b.Section)
			case "strength":
				return a.Strength - b.Strength
			default:
				return strings.Compare(a.Name, b.Name)
			}
		},
	}
	columns := []Column[dto.BatchResponse]{
		{Title: "Name", Width: 20, Key: "name", Cell: func(b dto.BatchResponse) string { return b.Name }},
		{Title: "Year", Width: 6, Key: "year", Cell: func(b dto.BatchResponse) string { return strconv.Itoa(b.Year) }},
		{Title: "Section", Width: 8, Key: "section", Cell: func(b dto.BatchResponse) string { return b.Section }},
		{Title: "Strength", Width: 9, Key: "strength", Cell: func(b dto.BatchResponse) string { return strconv.Itoa(b.Strength) }},
	}
	return NewBrowser(ctx, "Batches", "batches", newController(api, "batches", schema, o), columns, o.ServerMode)
}

func Timetables(ctx context.Context, api *client.Client, o Options) *Browser[dto.TimetableResponse] {
	schema := listview.Schema[dto.TimetableResponse]{
		SearchFields: func(t dto.TimetableResponse) []string { return []string{t.Status} },
		Compare: func(a, b dto.TimetableResponse, column string) int {
			switch column {
			case "created":
				return a.CreatedAt.Compare(b.CreatedAt)
			default:
				return strings.Compare(a.Status, b.Status)
			}
		},
	}
	columns := []Column[dto.TimetableResponse]{
		{Title: "ID", Width: 36, Key: "id", Cell: func(t dto.TimetableResponse) string { return t.ID.String() }},
		{Title: "Status", Width: 10, Key: "status", Cell: func(t dto.TimetableResponse) string { return t.Status }},
		{Title: "Created", Width: 17, Key: "created", Cell: func(t dto.TimetableResponse) string {
			return t.CreatedAt.Format("2006-01-02 15:04")
		}},
	}
	return NewBrowser(ctx, "Timetables", "timetables", newController(api, "timetables", schema, o), columns, o.ServerMode)
}
