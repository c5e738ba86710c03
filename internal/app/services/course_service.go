package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aosora/coursehub/internal/app/models"
	"github.com/aosora/coursehub/internal/app/repositories"
	"github.com/aosora/coursehub/internal/pkg/apperrors"
)

// CourseService handles course lookup operations
type CourseService struct {
	store repositories.CourseStore
}

// NewCourseService creates a new course service instance
func NewCourseService(store repositories.CourseStore) *CourseService {
	return &CourseService{
		store: store,
	}
}

// GetCourses retrieves the courses with the given ids, one per id, in
// input order. Duplicate ids fail with an invalid-argument error before
// any storage access; any absent id fails with a not-found error that
// lists the missing ids.
func (s *CourseService) GetCourses(ctx context.Context, ids []string) ([]*models.Course, error) {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, apperrors.NewInvalidArgumentError("duplicate ids in request")
		}
		seen[id] = struct{}{}
	}

	courses, err := s.store.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}

	if len(courses) != len(ids) {
		byID := make(map[string]struct{}, len(courses))
		for _, c := range courses {
			byID[c.ID] = struct{}{}
		}
		var missing []string
		for _, id := range ids {
			if _, ok := byID[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, apperrors.NewNotFoundError("courses not found for some of the requested ids", missing)
	}

	// The store does not guarantee id order; callers expect results
	// corresponding to their input.
	byID := make(map[string]*models.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	ordered := make([]*models.Course, len(ids))
	for i, id := range ids {
		ordered[i] = byID[id]
	}

	return ordered, nil
}

// GetCoursesByCode retrieves courses by (year, code) conditions.
// Duplicate conditions fail with an invalid-argument error. When some
// conditions match nothing, the call fails with a not-found error
// listing the missing year:code keys, unless suppressNotFoundError is
// set, in which case the partial result is returned.
func (s *CourseService) GetCoursesByCode(ctx context.Context, conditions []repositories.YearCode, suppressNotFoundError bool) ([]*models.Course, error) {
	key := func(yc repositories.YearCode) string {
		return strconv.Itoa(yc.Year) + ":" + yc.Code
	}

	seen := make(map[string]struct{}, len(conditions))
	for _, cond := range conditions {
		if _, dup := seen[key(cond)]; dup {
			return nil, apperrors.NewInvalidArgumentError("duplicate conditions in request")
		}
		seen[key(cond)] = struct{}{}
	}

	if len(conditions) == 0 {
		return []*models.Course{}, nil
	}

	courses, err := s.store.Find(ctx, repositories.FindFilter{YearCodes: conditions})
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}

	if len(courses) != len(conditions) && !suppressNotFoundError {
		found := make(map[string]struct{}, len(courses))
		for _, c := range courses {
			found[key(repositories.YearCode{Year: c.Year, Code: c.Code})] = struct{}{}
		}
		var missing []string
		for _, cond := range conditions {
			if _, ok := found[key(cond)]; !ok {
				missing = append(missing, key(cond))
			}
		}
		return nil, apperrors.NewNotFoundError("courses not found for some of the requested conditions", missing)
	}

	return courses, nil
}

// ListAllCourses retrieves every stored course, fully hydrated.
func (s *CourseService) ListAllCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.store.Find(ctx, repositories.FindFilter{})
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	if courses == nil {
		courses = []*models.Course{}
	}
	return courses, nil
}
