package services

import (
	"context"
	"fmt"

	"github.com/aosora/coursehub/internal/app/models"
	"github.com/aosora/coursehub/internal/app/repositories"
	"github.com/aosora/coursehub/internal/app/search"
	"github.com/aosora/coursehub/internal/pkg/apperrors"
)

// SearchInput is one structured search request.
type SearchInput struct {
	Year         int
	Keywords     []string
	CodePrefixes []string
	// Timetable is the optional occupancy specification, keyed by
	// module then day; each slice is indexed by period with index 0
	// the "no specific period" slot. nil means no constraint.
	Timetable map[models.Module]map[models.Day][]bool
	Mode      search.Mode
	Offset    int
	Limit     int
}

// SearchService compiles and executes course searches.
type SearchService struct {
	store repositories.CourseStore
}

// NewSearchService creates a new search service instance
func NewSearchService(store repositories.CourseStore) *SearchService {
	return &SearchService{
		store: store,
	}
}

// Search returns the page of courses matching the request, fully
// hydrated, ordered by (year ASC, code ASC).
func (s *SearchService) Search(ctx context.Context, input SearchInput) ([]*models.Course, error) {
	if input.Offset < 0 {
		return nil, apperrors.NewInvalidArgumentError("offset must not be negative")
	}
	if input.Limit < 1 {
		return nil, apperrors.NewInvalidArgumentError("limit must be at least 1")
	}

	plan := &search.Plan{
		Year:         input.Year,
		Keywords:     input.Keywords,
		CodePrefixes: input.CodePrefixes,
		Mode:         input.Mode,
		Clauses:      search.ClausesFromTimetable(input.Timetable),
	}

	// A timetable without any effective cell carries no constraint, so
	// the plain filter path applies.
	if !plan.HasClauses() {
		courses, err := s.store.Find(ctx, repositories.FindFilter{
			Year:        input.Year,
			NamePattern: search.NameRegexp(input.Keywords),
			CodePattern: search.CodeRegexp(input.CodePrefixes),
			Offset:      input.Offset,
			Limit:       input.Limit,
		})
		if err != nil {
			return nil, fmt.Errorf("error searching courses: %w", err)
		}
		return emptyIfNil(courses), nil
	}

	sql, args := plan.Build()
	ids, err := s.store.SearchIDs(ctx, sql, args)
	if err != nil {
		return nil, fmt.Errorf("error executing search plan: %w", err)
	}
	if len(ids) == 0 {
		return []*models.Course{}, nil
	}

	courses, err := s.store.Find(ctx, repositories.FindFilter{
		IDs:    ids,
		Offset: input.Offset,
		Limit:  input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("error hydrating search results: %w", err)
	}
	return emptyIfNil(courses), nil
}

func emptyIfNil(courses []*models.Course) []*models.Course {
	if courses == nil {
		return []*models.Course{}
	}
	return courses
}
