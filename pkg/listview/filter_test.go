package listview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type room struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	RoomType string `json:"room_type"`
	Capacity int    `json:"capacity"`
}

func roomFields(r room) []string {
	return []string{r.Name, r.RoomType}
}

func roomCompare(a, b room, column string) int {
	switch column {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "capacity":
		return a.Capacity - b.Capacity
	default:
		return 0
	}
}

func sampleRooms() []room {
	return []room{
		{ID: 1, Name: "R-101", RoomType: "Lecture Hall", Capacity: 120},
		{ID: 2, Name: "R-102", RoomType: "Laboratory", Capacity: 40},
		{ID: 3, Name: "Chem Annex", RoomType: "Laboratory", Capacity: 30},
		{ID: 4, Name: "Auditorium", RoomType: "Seminar Hall", Capacity: 300},
	}
}

func TestFilter_EmptyQueryReturnsInput(t *testing.T) {
	rooms := sampleRooms()
	out := Filter(rooms, "", roomFields)
	assert.Equal(t, rooms, out)
}

func TestFilter_CaseInsensitive(t *testing.T) {
	rooms := sampleRooms()

	lower := Filter(rooms, "lab", roomFields)
	upper := Filter(rooms, "LAB", roomFields)
	mixed := Filter(rooms, "LaB", roomFields)

	assert.Equal(t, lower, upper)
	assert.Equal(t, lower, mixed)
	assert.Len(t, lower, 2)
}

func TestFilter_LabMatchesLaboratoryNotLectureHall(t *testing.T) {
	rooms := []room{
		{ID: 1, RoomType: "Laboratory"},
		{ID: 2, RoomType: "Lecture Hall"},
	}

	out := Filter(rooms, "lab", roomFields)

	assert.Len(t, out, 1)
	assert.Equal(t, 1, out[0].ID)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	rooms := sampleRooms()
	original := sampleRooms()

	Filter(rooms, "lab", roomFields)

	assert.Equal(t, original, rooms)
}

func TestSort_NoColumnKeepsInsertionOrder(t *testing.T) {
	rooms := sampleRooms()
	out := Sort(rooms, SortState{}, roomCompare)
	assert.Equal(t, rooms, out)
}

func TestSort_Ascending(t *testing.T) {
	out := Sort(sampleRooms(), SortState{Column: "capacity", Direction: Asc}, roomCompare)

	capacities := make([]int, len(out))
	for i, r := range out {
		capacities[i] = r.Capacity
	}
	assert.Equal(t, []int{30, 40, 120, 300}, capacities)
}

func TestSort_Descending(t *testing.T) {
	out := Sort(sampleRooms(), SortState{Column: "capacity", Direction: Desc}, roomCompare)

	capacities := make([]int, len(out))
	for i, r := range out {
		capacities[i] = r.Capacity
	}
	assert.Equal(t, []int{300, 120, 40, 30}, capacities)
}

func TestSort_Idempotent(t *testing.T) {
	state := SortState{Column: "name", Direction: Asc}
	once := Sort(sampleRooms(), state, roomCompare)
	twice := Sort(once, state, roomCompare)
	assert.Equal(t, once, twice)
}

func TestSort_Stable(t *testing.T) {
	rooms := []room{
		{ID: 1, Name: "b", Capacity: 10},
		{ID: 2, Name: "a", Capacity: 10},
		{ID: 3, Name: "c", Capacity: 10},
	}

	out := Sort(rooms, SortState{Column: "capacity", Direction: Asc}, roomCompare)

	// Equal keys keep their relative order.
	assert.Equal(t, []int{1, 2, 3}, []int{out[0].ID, out[1].ID, out[2].ID})
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	rooms := sampleRooms()
	original := sampleRooms()

	Sort(rooms, SortState{Column: "capacity", Direction: Desc}, roomCompare)

	assert.Equal(t, original, rooms)
}

func TestPaginate_PageSizeInvariant(t *testing.T) {
	rooms := sampleRooms()

	for page := 1; page <= 2; page++ {
		out := Paginate(rooms, page, 3)
		remaining := len(rooms) - (page-1)*3
		assert.Equal(t, min(3, remaining), len(out))
	}
}

func TestPaginate_OutOfRange(t *testing.T) {
	rooms := sampleRooms()

	assert.Empty(t, Paginate(rooms, 3, 3))
	assert.Empty(t, Paginate(rooms, 0, 3))
	assert.Empty(t, Paginate(rooms, 1, 0))
}
