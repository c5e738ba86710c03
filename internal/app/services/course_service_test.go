package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aosora/coursehub/internal/app/models"
	"github.com/aosora/coursehub/internal/app/repositories"
	"github.com/aosora/coursehub/internal/pkg/apperrors"
)

func TestGetCourses(t *testing.T) {
	store := newFakeStore()
	store.seed(&models.Course{ID: "a", Year: 2026, Code: "GB10001"})
	store.seed(&models.Course{ID: "b", Year: 2026, Code: "GB10002"})
	svc := NewCourseService(store)

	t.Run("returns courses in input order", func(t *testing.T) {
		courses, err := svc.GetCourses(context.Background(), []string{"b", "a"})
		require.NoError(t, err)
		require.Len(t, courses, 2)
		assert.Equal(t, "b", courses[0].ID)
		assert.Equal(t, "a", courses[1].ID)
	})

	t.Run("duplicate ids are rejected before storage access", func(t *testing.T) {
		_, err := svc.GetCourses(context.Background(), []string{"a", "a"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})

	t.Run("missing ids fail with the full missing list", func(t *testing.T) {
		_, err := svc.GetCourses(context.Background(), []string{"a", "nope", "also-nope"})
		require.ErrorIs(t, err, apperrors.ErrCourseNotFound)
		details := apperrors.Details(err)
		require.NotNil(t, details)
		assert.Equal(t, []string{"nope", "also-nope"}, details["missing"])
	})
}

func TestGetCoursesByCode(t *testing.T) {
	store := newFakeStore()
	svc := NewCourseService(store)

	t.Run("duplicate conditions are rejected", func(t *testing.T) {
		conds := []repositories.YearCode{
			{Year: 2026, Code: "GB10001"},
			{Year: 2026, Code: "GB10001"},
		}
		_, err := svc.GetCoursesByCode(context.Background(), conds, false)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})

	t.Run("empty conditions yield an empty result", func(t *testing.T) {
		courses, err := svc.GetCoursesByCode(context.Background(), nil, false)
		require.NoError(t, err)
		assert.Empty(t, courses)
	})

	t.Run("passes conditions through the filter", func(t *testing.T) {
		store.findResult = []*models.Course{
			{ID: "a", Year: 2026, Code: "GB10001"},
		}
		conds := []repositories.YearCode{{Year: 2026, Code: "GB10001"}}

		courses, err := svc.GetCoursesByCode(context.Background(), conds, false)
		require.NoError(t, err)
		require.Len(t, courses, 1)
		assert.Equal(t, conds, store.lastFilter.YearCodes)
	})

	t.Run("missing conditions fail with year:code keys", func(t *testing.T) {
		store.findResult = []*models.Course{
			{ID: "a", Year: 2026, Code: "GB10001"},
		}
		conds := []repositories.YearCode{
			{Year: 2026, Code: "GB10001"},
			{Year: 2025, Code: "GB10009"},
		}

		_, err := svc.GetCoursesByCode(context.Background(), conds, false)
		require.ErrorIs(t, err, apperrors.ErrCourseNotFound)
		details := apperrors.Details(err)
		require.NotNil(t, details)
		assert.Equal(t, []string{"2025:GB10009"}, details["missing"])
	})

	t.Run("suppression returns the partial result", func(t *testing.T) {
		store.findResult = []*models.Course{
			{ID: "a", Year: 2026, Code: "GB10001"},
		}
		conds := []repositories.YearCode{
			{Year: 2026, Code: "GB10001"},
			{Year: 2025, Code: "GB10009"},
		}

		courses, err := svc.GetCoursesByCode(context.Background(), conds, true)
		require.NoError(t, err)
		require.Len(t, courses, 1)
		assert.Equal(t, "a", courses[0].ID)
	})
}

func TestListAllCourses(t *testing.T) {
	store := newFakeStore()
	svc := NewCourseService(store)

	t.Run("empty store yields empty non-nil slice", func(t *testing.T) {
		courses, err := svc.ListAllCourses(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, courses)
		assert.Empty(t, courses)
	})

	t.Run("uses an unconstrained filter", func(t *testing.T) {
		store.findResult = []*models.Course{{ID: "a"}}
		courses, err := svc.ListAllCourses(context.Background())
		require.NoError(t, err)
		require.Len(t, courses, 1)
		assert.Equal(t, repositories.FindFilter{}, store.lastFilter)
	})
}
