package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aosora/coursehub/internal/app/models"
	"github.com/aosora/coursehub/internal/app/repositories"
	"github.com/aosora/coursehub/internal/app/search"
	"github.com/aosora/coursehub/internal/pkg/apperrors"
)

func TestSearchRejectsBadPaging(t *testing.T) {
	svc := NewSearchService(newFakeStore())

	_, err := svc.Search(context.Background(), SearchInput{Year: 2026, Offset: -1, Limit: 10})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = svc.Search(context.Background(), SearchInput{Year: 2026, Offset: 0, Limit: 0})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestSearchWithoutTimetableUsesPlainFilter(t *testing.T) {
	store := newFakeStore()
	store.findResult = []*models.Course{{ID: "a"}}
	svc := NewSearchService(store)

	courses, err := svc.Search(context.Background(), SearchInput{
		Year:         2026,
		Keywords:     []string{"algebra"},
		CodePrefixes: []string{"GB1"},
		Offset:       10,
		Limit:        20,
	})
	require.NoError(t, err)
	require.Len(t, courses, 1)

	// No timetable means no set query; the store filter does it all.
	assert.Empty(t, store.lastSearchSQL)
	assert.Equal(t, repositories.FindFilter{
		Year:        2026,
		NamePattern: "^(?=.*algebra)",
		CodePattern: "^(GB1)",
		Offset:      10,
		Limit:       20,
	}, store.lastFilter)
}

func TestSearchAllFalseTimetableDegeneratesToPlainFilter(t *testing.T) {
	store := newFakeStore()
	svc := NewSearchService(store)

	_, err := svc.Search(context.Background(), SearchInput{
		Year:  2026,
		Limit: 10,
		Timetable: map[models.Module]map[models.Day][]bool{
			models.ModuleSpringA: {models.DayMon: {false, false}},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, store.lastSearchSQL)
	assert.Equal(t, 1, store.findCalls)
}

func TestSearchWithTimetableExecutesSetQuery(t *testing.T) {
	store := newFakeStore()
	store.searchIDsResult = []string{"a", "b"}
	store.findResult = []*models.Course{{ID: "a"}, {ID: "b"}}
	svc := NewSearchService(store)

	courses, err := svc.Search(context.Background(), SearchInput{
		Year:  2026,
		Mode:  search.ModeCover,
		Limit: 50,
		Timetable: map[models.Module]map[models.Day][]bool{
			models.ModuleSpringA: {models.DayMon: {false, true}},
		},
	})
	require.NoError(t, err)
	require.Len(t, courses, 2)

	assert.Contains(t, store.lastSearchSQL, "course_schedules")
	assert.Equal(t, repositories.FindFilter{
		IDs:   []string{"a", "b"},
		Limit: 50,
	}, store.lastFilter)
}

func TestSearchShortCircuitsOnEmptyIDSet(t *testing.T) {
	store := newFakeStore()
	store.searchIDsResult = nil
	svc := NewSearchService(store)

	courses, err := svc.Search(context.Background(), SearchInput{
		Year:  2026,
		Mode:  search.ModeContain,
		Limit: 10,
		Timetable: map[models.Module]map[models.Day][]bool{
			models.ModuleFallA: {models.DayFri: {true}},
		},
	})
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
	// The hydration query never runs for an empty id set.
	assert.Zero(t, store.findCalls)
}
