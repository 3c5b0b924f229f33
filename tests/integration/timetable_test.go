package integration

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadencehq/cadence-api/internal/models"
	"github.com/cadencehq/cadence-api/internal/services"
	"github.com/cadencehq/cadence-api/tests/testutil"
)

func TestTimetableService_Integration_GenerationLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTimetableService(tdb.DB)
	ctx := context.Background()

	dept := fixtures.CreateDepartment(t)
	batch := fixtures.CreateBatch(t, dept)
	staff := fixtures.CreateUser(t, testutil.WithRole(models.RoleStaff))

	// Generation starts pending
	tt, err := svc.Create(ctx, batch.ID, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TimetableStatusPending, tt.Status)
	assert.Nil(t, tt.EngineJobID)

	err = svc.AttachEngineJob(ctx, tt.ID, "job-abc-123")
	require.NoError(t, err)

	// Engine callback resolves the job
	entries := json.RawMessage(`[{"day":"monday","slot":1,"course":"CS101"}]`)
	resolved, err := svc.ApplyEngineResult(ctx, "job-abc-123", models.TimetableStatusCompleted, entries, "")
	require.NoError(t, err)
	assert.Equal(t, models.TimetableStatusCompleted, resolved.Status)
	assert.JSONEq(t, string(entries), string(resolved.Entries))
}

func TestTimetableService_Integration_ApplyEngineResult_DuplicateCallback(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTimetableService(tdb.DB)
	ctx := context.Background()

	dept := fixtures.CreateDepartment(t)
	batch := fixtures.CreateBatch(t, dept)
	staff := fixtures.CreateUser(t, testutil.WithRole(models.RoleStaff))

	tt, err := svc.Create(ctx, batch.ID, staff.ID)
	require.NoError(t, err)
	require.NoError(t, svc.AttachEngineJob(ctx, tt.ID, "job-dup"))

	_, err = svc.ApplyEngineResult(ctx, "job-dup", models.TimetableStatusCompleted, nil, "")
	require.NoError(t, err)

	// Second callback for the same job is rejected
	_, err = svc.ApplyEngineResult(ctx, "job-dup", models.TimetableStatusFailed, nil, "late")
	assert.ErrorIs(t, err, services.ErrTimetableNotFound)
}

func TestTimetableService_Integration_Review_Approve(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTimetableService(tdb.DB)
	ctx := context.Background()

	dept := fixtures.CreateDepartment(t)
	batch := fixtures.CreateBatch(t, dept)
	staff := fixtures.CreateUser(t, testutil.WithRole(models.RoleStaff))
	admin := fixtures.CreateUser(t, testutil.WithRole(models.RoleAdmin))

	tt := fixtures.CreateTimetable(t, batch, staff, models.TimetableStatusCompleted)

	comment := "looks good"
	reviewed, err := svc.Review(ctx, tt.ID, admin.ID, true, &comment)
	require.NoError(t, err)
	assert.Equal(t, models.TimetableStatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, admin.ID, *reviewed.ReviewedBy)
	require.NotNil(t, reviewed.Message)
	assert.Equal(t, comment, *reviewed.Message)
}

func TestTimetableService_Integration_Review_NotReviewable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTimetableService(tdb.DB)
	ctx := context.Background()

	dept := fixtures.CreateDepartment(t)
	batch := fixtures.CreateBatch(t, dept)
	staff := fixtures.CreateUser(t, testutil.WithRole(models.RoleStaff))
	admin := fixtures.CreateUser(t, testutil.WithRole(models.RoleAdmin))

	tt := fixtures.CreateTimetable(t, batch, staff, models.TimetableStatusPending)

	_, err := svc.Review(ctx, tt.ID, admin.ID, false, nil)
	assert.ErrorIs(t, err, services.ErrTimetableNotReviewable)
}

func TestTimetableService_Integration_List_FilterByStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTimetableService(tdb.DB)
	ctx := context.Background()

	dept := fixtures.CreateDepartment(t)
	batch := fixtures.CreateBatch(t, dept)
	otherBatch := fixtures.CreateBatch(t, dept)
	staff := fixtures.CreateUser(t, testutil.WithRole(models.RoleStaff))

	fixtures.CreateTimetable(t, batch, staff, models.TimetableStatusPending)
	fixtures.CreateTimetable(t, batch, staff, models.TimetableStatusCompleted)
	fixtures.CreateTimetable(t, otherBatch, staff, models.TimetableStatusCompleted)

	completed, count, err := svc.List(ctx, nil, models.TimetableStatusCompleted, services.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, completed, 2)

	forBatch, count, err := svc.List(ctx, &batch.ID, models.TimetableStatusCompleted, services.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, forBatch, 1)
	assert.Equal(t, batch.ID, forBatch[0].BatchID)
}
