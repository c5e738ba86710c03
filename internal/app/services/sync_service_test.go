package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aosora/coursehub/internal/app/catalog"
	"github.com/aosora/coursehub/internal/app/models"
	"github.com/aosora/coursehub/internal/pkg/apperrors"
)

func newSyncService(store *fakeStore) *SyncService {
	return NewSyncService(store, zerolog.Nop())
}

func TestSyncInsertsUnseenCourses(t *testing.T) {
	store := newFakeStore()
	svc := newSyncService(store)

	result, err := svc.Sync(context.Background(), 2026, []catalog.CourseRecord{catalogRecord()}, false)
	require.NoError(t, err)

	require.Len(t, result.InsertedCourses, 1)
	assert.Empty(t, result.UpdatedCourses)
	assert.Equal(t, "GB10001", result.InsertedCourses[0].Code)
	assert.NotEmpty(t, result.InsertedCourses[0].ID)

	saved, err := store.GetByYearCode(context.Background(), 2026, "GB10001")
	require.NoError(t, err)
	assert.Equal(t, result.InsertedCourses[0].ID, saved.ID)
	assert.Len(t, saved.Schedules, 1)
}

func TestSyncSkipsCurrentCourses(t *testing.T) {
	store := newFakeStore()
	rec := catalogRecord()
	store.seed(&models.Course{
		ID:         "existing-id",
		Year:       2026,
		Code:       rec.Code,
		Name:       rec.Name,
		LastUpdate: rec.LastUpdate, // same timestamp, not older
	})
	svc := newSyncService(store)

	result, err := svc.Sync(context.Background(), 2026, []catalog.CourseRecord{rec}, false)
	require.NoError(t, err)

	assert.Empty(t, result.InsertedCourses)
	assert.Empty(t, result.UpdatedCourses)
	assert.Zero(t, store.saveCalls)
}

func TestSyncUpdatesStaleCourses(t *testing.T) {
	store := newFakeStore()
	rec := catalogRecord()
	store.seed(&models.Course{
		ID:         "existing-id",
		Year:       2026,
		Code:       rec.Code,
		Name:       "old name",
		LastUpdate: rec.LastUpdate.Add(-24 * time.Hour),
	})
	svc := newSyncService(store)

	result, err := svc.Sync(context.Background(), 2026, []catalog.CourseRecord{rec}, false)
	require.NoError(t, err)

	assert.Empty(t, result.InsertedCourses)
	require.Len(t, result.UpdatedCourses, 1)
	// The surrogate key survives the update.
	assert.Equal(t, "existing-id", result.UpdatedCourses[0].ID)

	saved, err := store.GetByYearCode(context.Background(), 2026, rec.Code)
	require.NoError(t, err)
	assert.Equal(t, rec.Name, saved.Name)
}

func TestSyncForceUpdatesCurrentCourses(t *testing.T) {
	store := newFakeStore()
	rec := catalogRecord()
	store.seed(&models.Course{
		ID:         "existing-id",
		Year:       2026,
		Code:       rec.Code,
		Name:       "old name",
		LastUpdate: rec.LastUpdate.Add(24 * time.Hour), // newer than incoming
	})
	svc := newSyncService(store)

	result, err := svc.Sync(context.Background(), 2026, []catalog.CourseRecord{rec}, true)
	require.NoError(t, err)

	require.Len(t, result.UpdatedCourses, 1)
	assert.Equal(t, "existing-id", result.UpdatedCourses[0].ID)
}

func TestSyncRollsBackWholeBatchOnBadRecord(t *testing.T) {
	store := newFakeStore()
	svc := newSyncService(store)

	good := catalogRecord()
	bad := catalogRecord()
	bad.Code = "GB10002"
	bad.Name = "" // fails validation

	_, err := svc.Sync(context.Background(), 2026, []catalog.CourseRecord{good, bad}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// The good record's insert must not survive the failed batch.
	_, err = store.GetByYearCode(context.Background(), 2026, good.Code)
	assert.Error(t, err)
}

func TestSyncEmptyBatch(t *testing.T) {
	store := newFakeStore()
	svc := newSyncService(store)

	result, err := svc.Sync(context.Background(), 2026, nil, false)
	require.NoError(t, err)

	assert.NotNil(t, result.InsertedCourses)
	assert.NotNil(t, result.UpdatedCourses)
	assert.Empty(t, result.InsertedCourses)
	assert.Empty(t, result.UpdatedCourses)
}
