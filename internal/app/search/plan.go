// Package search compiles structured course-search requests into one
// parameterized set query over the courses and course_schedules tables.
// The query yields matching course ids only; hydration, ordering and
// pagination happen afterwards against the id set.
package search

import (
	"sort"
	"strconv"
	"strings"

	"github.com/aosora/coursehub/internal/app/models"
)

// Mode selects the timetable matching semantics.
type Mode int

const (
	// ModeCover matches a course when at least one of its schedule
	// entries falls inside the requested occupancy set.
	ModeCover Mode = iota
	// ModeContain matches a course only when every schedule entry falls
	// inside the requested occupancy set. A course with no schedule
	// entries vacuously matches.
	ModeContain
)

// Clause is one requested occupancy cell: a (module, day) pair and the
// periods asked about within it. Empty Periods means any period.
type Clause struct {
	Module  models.Module
	Day     models.Day
	Periods []int
}

// Plan is a compiled search request.
type Plan struct {
	Year         int
	Keywords     []string
	CodePrefixes []string
	Mode         Mode
	Clauses      []Clause
}

// ClausesFromTimetable flattens an occupancy specification into
// clauses. Cells that are absent, empty or all-false carry no
// constraint and are dropped. Output order is deterministic.
func ClausesFromTimetable(timetable map[models.Module]map[models.Day][]bool) []Clause {
	var clauses []Clause
	for _, module := range sortedKeys(timetable) {
		days := timetable[module]
		for _, day := range sortedKeys(days) {
			var periods []int
			for p, wanted := range days[day] {
				if wanted {
					periods = append(periods, p)
				}
			}
			if len(periods) == 0 {
				continue
			}
			clauses = append(clauses, Clause{Module: module, Day: day, Periods: periods})
		}
	}
	return clauses
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// HasClauses reports whether the plan carries an effective timetable
// constraint. Without one, search degenerates to the plain keyword and
// code filter.
func (p *Plan) HasClauses() bool {
	return len(p.Clauses) > 0
}

// builder accumulates bound query parameters and hands out positional
// placeholders. All literal values go through here, never into the SQL
// text itself.
type builder struct {
	args []any
}

func (b *builder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// Build compiles the plan into a single id-set query with positional
// placeholders and the matching argument list.
func (p *Plan) Build() (string, []any) {
	b := &builder{}

	var sql strings.Builder
	if p.Mode == ModeContain {
		// Candidates are all filter matches; courses with any schedule
		// entry outside the requested set are subtracted below. Zero
		// schedule entries means zero offending entries.
		sql.WriteString("SELECT c.id FROM courses c\nWHERE ")
		sql.WriteString(p.filterSQL(b))
	} else {
		sql.WriteString(p.overlapQuery(b))
	}

	if p.Mode == ModeContain {
		sql.WriteString("\nEXCEPT\n")
		sql.WriteString(p.offendingQuery(b))
	}

	return sql.String(), b.args
}

// filterSQL renders the year, keyword and code-prefix conditions.
func (p *Plan) filterSQL(b *builder) string {
	conds := []string{"c.year = " + b.bind(p.Year)}
	if pattern := NameRegexp(p.Keywords); pattern != "" {
		conds = append(conds, "c.name ~ "+b.bind(pattern))
	}
	if pattern := CodeRegexp(p.CodePrefixes); pattern != "" {
		conds = append(conds, "c.code ~ "+b.bind(pattern))
	}
	return strings.Join(conds, " AND ")
}

// overlapQuery selects courses with at least one schedule entry inside
// the requested occupancy set.
func (p *Plan) overlapQuery(b *builder) string {
	cells := make([]string, len(p.Clauses))
	for i, cl := range p.Clauses {
		cell := "(s.module = " + b.bind(string(cl.Module)) +
			" AND s.day = " + b.bind(string(cl.Day))
		if len(cl.Periods) > 0 {
			cell += " AND s.period IN (" + b.bindAll(cl.Periods) + ")"
		}
		cells[i] = cell + ")"
	}

	return "SELECT DISTINCT c.id FROM courses c\n" +
		"JOIN course_schedules s ON s.course_id = c.id\n" +
		"WHERE " + p.filterSQL(b) + " AND (" + strings.Join(cells, " OR ") + ")"
}

// offendingQuery selects courses with at least one schedule entry that
// matches none of the requested cells.
func (p *Plan) offendingQuery(b *builder) string {
	cells := make([]string, len(p.Clauses))
	for i, cl := range p.Clauses {
		cell := "(s.module <> " + b.bind(string(cl.Module)) +
			" OR s.day <> " + b.bind(string(cl.Day))
		if len(cl.Periods) > 0 {
			cell += " OR s.period NOT IN (" + b.bindAll(cl.Periods) + ")"
		}
		cells[i] = cell + ")"
	}

	return "SELECT DISTINCT c.id FROM courses c\n" +
		"JOIN course_schedules s ON s.course_id = c.id\n" +
		"WHERE " + p.filterSQL(b) + " AND (" + strings.Join(cells, " AND ") + ")"
}

func (b *builder) bindAll(vs []int) string {
	placeholders := make([]string, len(vs))
	for i, v := range vs {
		placeholders[i] = b.bind(v)
	}
	return strings.Join(placeholders, ",")
}
