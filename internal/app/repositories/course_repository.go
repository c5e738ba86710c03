package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/sync/errgroup"

	"github.com/aosora/coursehub/internal/app/models"
	"github.com/aosora/coursehub/internal/pkg/dberrors"
)

// Course error types
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseAlreadyExists = errors.New("course with this year and code already exists")
)

// DBTX is the subset of pgx operations the repository needs. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so the same repository code runs
// against the pool or inside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CourseRepository handles database operations for course aggregates
type CourseRepository struct {
	db DBTX
	// serial disables concurrent child loads; a transaction owns a
	// single connection that must not be shared between goroutines.
	serial bool
}

// NewCourseRepository creates a new course repository over a pool
func NewCourseRepository(db DBTX) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// WithTx returns a repository bound to the given transaction
func (r *CourseRepository) WithTx(tx pgx.Tx) *CourseRepository {
	return &CourseRepository{db: tx, serial: true}
}

const courseColumns = "id, year, code, name, instructor, credit, overview, remarks, last_update, has_parse_error"

func scanCourse(row pgx.Row, course *models.Course) error {
	return row.Scan(
		&course.ID,
		&course.Year,
		&course.Code,
		&course.Name,
		&course.Instructor,
		&course.Credit,
		&course.Overview,
		&course.Remarks,
		&course.LastUpdate,
		&course.HasParseError,
	)
}

// GetByYearCode retrieves one course by its natural key, fully hydrated.
// Returns ErrCourseNotFound when no row exists.
func (r *CourseRepository) GetByYearCode(ctx context.Context, year int, code string) (*models.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE year = $1 AND code = $2
	`

	var course models.Course
	err := scanCourse(r.db.QueryRow(ctx, query, year, code), &course)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	if err := r.hydrate(ctx, []*models.Course{&course}); err != nil {
		return nil, err
	}

	return &course, nil
}

// GetByIDs retrieves courses by id, fully hydrated. Missing ids yield
// no row; result order is not guaranteed to follow input order.
func (r *CourseRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}

	courses, err := collectCourses(rows)
	if err != nil {
		return nil, err
	}

	if err := r.hydrate(ctx, courses); err != nil {
		return nil, err
	}

	return courses, nil
}

// YearCode is a natural-key lookup condition.
type YearCode struct {
	Year int
	Code string
}

// FindFilter narrows a Find query. Zero values mean "no constraint".
type FindFilter struct {
	Year        int
	NamePattern string // POSIX regexp applied to name
	CodePattern string // POSIX regexp applied to code
	IDs         []string
	YearCodes   []YearCode
	Offset      int
	Limit       int // 0 means no limit
}

// Find retrieves courses matching the filter, fully hydrated, ordered
// by (year ASC, code ASC). Offset and limit apply after ordering.
func (r *CourseRepository) Find(ctx context.Context, filter FindFilter) ([]*models.Course, error) {
	var (
		conds []string
		args  []any
	)
	bind := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Year != 0 {
		conds = append(conds, "year = "+bind(filter.Year))
	}
	if filter.NamePattern != "" {
		conds = append(conds, "name ~ "+bind(filter.NamePattern))
	}
	if filter.CodePattern != "" {
		conds = append(conds, "code ~ "+bind(filter.CodePattern))
	}
	if filter.IDs != nil {
		conds = append(conds, "id = ANY("+bind(filter.IDs)+")")
	}
	if len(filter.YearCodes) > 0 {
		pairs := make([]string, len(filter.YearCodes))
		for i, yc := range filter.YearCodes {
			pairs[i] = "(" + bind(yc.Year) + ", " + bind(yc.Code) + ")"
		}
		conds = append(conds, "(year, code) IN ("+strings.Join(pairs, ", ")+")")
	}

	query := "SELECT " + courseColumns + " FROM courses"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY year ASC, code ASC"
	if filter.Offset > 0 {
		query += " OFFSET " + bind(filter.Offset)
	}
	if filter.Limit > 0 {
		query += " LIMIT " + bind(filter.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	courses, err := collectCourses(rows)
	if err != nil {
		return nil, err
	}

	if err := r.hydrate(ctx, courses); err != nil {
		return nil, err
	}

	return courses, nil
}

// SearchIDs executes a caller-built parameterized set query returning
// course ids only. Used by the search compiler for its Cover/Contain
// candidate sets; values must already be bound as parameters.
func (r *CourseRepository) SearchIDs(ctx context.Context, sql string, args []any) ([]string, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing search query: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Save upserts one course aggregate. All three child collections are
// replaced wholesale: previously stored rows absent from the new set
// are removed, never left behind. Callers wanting batch atomicity run
// Save inside a transaction-bound repository.
func (r *CourseRepository) Save(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (` + courseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			year = EXCLUDED.year,
			code = EXCLUDED.code,
			name = EXCLUDED.name,
			instructor = EXCLUDED.instructor,
			credit = EXCLUDED.credit,
			overview = EXCLUDED.overview,
			remarks = EXCLUDED.remarks,
			last_update = EXCLUDED.last_update,
			has_parse_error = EXCLUDED.has_parse_error
	`

	_, err := r.db.Exec(ctx, query,
		course.ID,
		course.Year,
		course.Code,
		course.Name,
		course.Instructor,
		course.Credit,
		course.Overview,
		course.Remarks,
		course.LastUpdate,
		course.HasParseError,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_year_code_key") {
			return ErrCourseAlreadyExists
		}
		return fmt.Errorf("error saving course: %w", err)
	}

	if err := r.replaceChildren(ctx, course); err != nil {
		return err
	}

	return nil
}

// replaceChildren deletes and reinserts the three child collections.
func (r *CourseRepository) replaceChildren(ctx context.Context, course *models.Course) error {
	for _, table := range []string{"course_schedules", "course_methods", "course_recommended_grades"} {
		if _, err := r.db.Exec(ctx, "DELETE FROM "+table+" WHERE course_id = $1", course.ID); err != nil {
			return fmt.Errorf("error clearing %s: %w", table, err)
		}
	}

	for _, s := range course.Schedules {
		_, err := r.db.Exec(ctx, `
			INSERT INTO course_schedules (course_id, module, day, period, room)
			VALUES ($1, $2, $3, $4, $5)`,
			course.ID, string(s.Module), string(s.Day), s.Period, s.Room,
		)
		if err != nil {
			return fmt.Errorf("error saving course schedule: %w", err)
		}
	}

	for _, m := range course.Methods {
		_, err := r.db.Exec(ctx, `
			INSERT INTO course_methods (course_id, method)
			VALUES ($1, $2)`,
			course.ID, string(m.Method),
		)
		if err != nil {
			return fmt.Errorf("error saving course method: %w", err)
		}
	}

	for _, g := range course.RecommendedGrades {
		_, err := r.db.Exec(ctx, `
			INSERT INTO course_recommended_grades (course_id, grade)
			VALUES ($1, $2)`,
			course.ID, g.Grade,
		)
		if err != nil {
			return fmt.Errorf("error saving recommended grade: %w", err)
		}
	}

	return nil
}

func collectCourses(rows pgx.Rows) ([]*models.Course, error) {
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := scanCourse(rows, &course); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// hydrate loads the three child collections for the given courses. The
// collections are independent, so they are fetched concurrently.
func (r *CourseRepository) hydrate(ctx context.Context, courses []*models.Course) error {
	if len(courses) == 0 {
		return nil
	}

	byID := make(map[string]*models.Course, len(courses))
	ids := make([]string, len(courses))
	for i, c := range courses {
		byID[c.ID] = c
		ids[i] = c.ID
		c.Schedules = []models.CourseSchedule{}
		c.Methods = []models.CourseMethod{}
		c.RecommendedGrades = []models.CourseRecommendedGrade{}
	}

	g, ctx := errgroup.WithContext(ctx)
	if r.serial {
		g.SetLimit(1)
	}

	var (
		schedules []models.CourseSchedule
		methods   []models.CourseMethod
		grades    []models.CourseRecommendedGrade
	)

	g.Go(func() error {
		rows, err := r.db.Query(ctx, `
			SELECT course_id, module, day, period, room
			FROM course_schedules
			WHERE course_id = ANY($1)
			ORDER BY id`, ids)
		if err != nil {
			return fmt.Errorf("error loading schedules: %w", err)
		}
		schedules, err = pgx.CollectRows(rows, pgx.RowToStructByPos[models.CourseSchedule])
		return err
	})

	g.Go(func() error {
		rows, err := r.db.Query(ctx, `
			SELECT course_id, method
			FROM course_methods
			WHERE course_id = ANY($1)
			ORDER BY id`, ids)
		if err != nil {
			return fmt.Errorf("error loading methods: %w", err)
		}
		methods, err = pgx.CollectRows(rows, pgx.RowToStructByPos[models.CourseMethod])
		return err
	})

	g.Go(func() error {
		rows, err := r.db.Query(ctx, `
			SELECT course_id, grade
			FROM course_recommended_grades
			WHERE course_id = ANY($1)
			ORDER BY id`, ids)
		if err != nil {
			return fmt.Errorf("error loading recommended grades: %w", err)
		}
		grades, err = pgx.CollectRows(rows, pgx.RowToStructByPos[models.CourseRecommendedGrade])
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	for _, s := range schedules {
		if c, ok := byID[s.CourseID]; ok {
			c.Schedules = append(c.Schedules, s)
		}
	}
	for _, m := range methods {
		if c, ok := byID[m.CourseID]; ok {
			c.Methods = append(c.Methods, m)
		}
	}
	for _, g := range grades {
		if c, ok := byID[g.CourseID]; ok {
			c.RecommendedGrades = append(c.RecommendedGrades, g)
		}
	}

	return nil
}
