package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aosora/coursehub/internal/app/models"
)

func TestClausesFromTimetable(t *testing.T) {
	t.Run("empty timetable yields no clauses", func(t *testing.T) {
		assert.Empty(t, ClausesFromTimetable(nil))
		assert.Empty(t, ClausesFromTimetable(map[models.Module]map[models.Day][]bool{}))
	})

	t.Run("all-false cells are dropped", func(t *testing.T) {
		timetable := map[models.Module]map[models.Day][]bool{
			models.ModuleSpringA: {
				models.DayMon: {false, false, false},
			},
		}
		assert.Empty(t, ClausesFromTimetable(timetable))
	})

	t.Run("true slots become period indices", func(t *testing.T) {
		timetable := map[models.Module]map[models.Day][]bool{
			models.ModuleSpringA: {
				models.DayMon: {false, true, false, true},
			},
		}
		clauses := ClausesFromTimetable(timetable)
		require.Len(t, clauses, 1)
		assert.Equal(t, models.ModuleSpringA, clauses[0].Module)
		assert.Equal(t, models.DayMon, clauses[0].Day)
		assert.Equal(t, []int{1, 3}, clauses[0].Periods)
	})

	t.Run("output order is deterministic across cells", func(t *testing.T) {
		timetable := map[models.Module]map[models.Day][]bool{
			models.ModuleSpringB: {
				models.DayTue: {true},
				models.DayMon: {true},
			},
			models.ModuleFallA: {
				models.DayWed: {true},
			},
		}
		first := ClausesFromTimetable(timetable)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, ClausesFromTimetable(timetable))
		}
		require.Len(t, first, 3)
	})
}

func TestPlanHasClauses(t *testing.T) {
	p := &Plan{Year: 2026}
	assert.False(t, p.HasClauses())

	p.Clauses = []Clause{{Module: models.ModuleSpringA, Day: models.DayMon, Periods: []int{0}}}
	assert.True(t, p.HasClauses())
}

func TestPlanBuildCover(t *testing.T) {
	p := &Plan{
		Year:     2026,
		Keywords: []string{"algebra"},
		Mode:     ModeCover,
		Clauses: []Clause{
			{Module: models.ModuleSpringA, Day: models.DayMon, Periods: []int{1, 2}},
		},
	}

	sql, args := p.Build()

	assert.Contains(t, sql, "JOIN course_schedules s ON s.course_id = c.id")
	assert.Contains(t, sql, "c.year = $")
	assert.Contains(t, sql, "c.name ~ $")
	assert.NotContains(t, sql, "EXCEPT")
	// Every literal arrives through a placeholder.
	assert.NotContains(t, sql, "SpringA")
	assert.NotContains(t, sql, "algebra")
	assert.Equal(t, []any{"SpringA", "Mon", 1, 2, 2026, "^(?=.*algebra)"}, args)
}

func TestPlanBuildContain(t *testing.T) {
	p := &Plan{
		Year:         2026,
		CodePrefixes: []string{"GB1"},
		Mode:         ModeContain,
		Clauses: []Clause{
			{Module: models.ModuleFallA, Day: models.DayFri, Periods: []int{0}},
		},
	}

	sql, args := p.Build()

	require.Equal(t, 1, strings.Count(sql, "EXCEPT"), "contain queries subtract exactly once")

	// Minuend carries no schedule join: a course with no schedule
	// entries must survive the subtraction.
	minuend, subtrahend, _ := strings.Cut(sql, "EXCEPT")
	assert.NotContains(t, minuend, "JOIN")
	assert.Contains(t, subtrahend, "s.module <> $")
	assert.Contains(t, subtrahend, "s.day <> $")
	assert.Contains(t, subtrahend, "s.period NOT IN ($")

	assert.Equal(t, []any{2026, "^(GB1)", "FallA", "Fri", 0, 2026, "^(GB1)"}, args)
}

func TestPlanBuildCoverAnyPeriod(t *testing.T) {
	p := &Plan{
		Year: 2026,
		Mode: ModeCover,
		Clauses: []Clause{
			{Module: models.ModuleSpringC, Day: models.DayThu},
		},
	}

	sql, _ := p.Build()
	assert.NotContains(t, sql, "s.period IN")
}
