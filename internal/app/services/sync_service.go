package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aosora/coursehub/internal/app/catalog"
	"github.com/aosora/coursehub/internal/app/repositories"
)

// ReportCourseData identifies one course touched by a sync run.
type ReportCourseData struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// SyncResult reports what a sync run changed. The two lists are
// disjoint; unchanged courses appear in neither.
type SyncResult struct {
	InsertedCourses []ReportCourseData `json:"insertedCourses"`
	UpdatedCourses  []ReportCourseData `json:"updatedCourses"`
}

// SyncService reconciles a fetched catalog snapshot against stored
// state, computing a minimal insert/update delta.
type SyncService struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewSyncService creates a new synchronization service instance
func NewSyncService(store repositories.Store, logger zerolog.Logger) *SyncService {
	return &SyncService{
		store:  store,
		logger: logger,
	}
}

// Sync processes the incoming records in order inside one transaction
// spanning the whole batch. A failure on any record rolls back every
// change; there is no partial commit.
//
// Per record: unseen (year, code) keys are inserted under a fresh id.
// Known keys are skipped when the stored lastUpdate is not older than
// the incoming one, unless forceUpdate is set; otherwise the aggregate
// is rebuilt under its existing id with all child collections replaced.
func (s *SyncService) Sync(ctx context.Context, year int, records []catalog.CourseRecord, forceUpdate bool) (*SyncResult, error) {
	result := &SyncResult{
		InsertedCourses: []ReportCourseData{},
		UpdatedCourses:  []ReportCourseData{},
	}

	err := s.store.InTransaction(ctx, func(store repositories.CourseStore) error {
		for _, rec := range records {
			stored, err := store.GetByYearCode(ctx, year, rec.Code)
			switch {
			case errors.Is(err, repositories.ErrCourseNotFound):
				stored = nil
			case err != nil:
				return fmt.Errorf("error looking up course %s: %w", rec.Code, err)
			}

			if stored == nil {
				course, err := buildCourse(rec, year, uuid.NewString())
				if err != nil {
					return err
				}
				if err := store.Save(ctx, course); err != nil {
					return err
				}
				result.InsertedCourses = append(result.InsertedCourses, ReportCourseData{
					ID:   course.ID,
					Code: course.Code,
					Name: course.Name,
				})
				continue
			}

			// Already current; nothing to report.
			if !forceUpdate && !stored.LastUpdate.Before(rec.LastUpdate) {
				continue
			}

			course, err := buildCourse(rec, year, stored.ID)
			if err != nil {
				return err
			}
			if err := store.Save(ctx, course); err != nil {
				return err
			}
			result.UpdatedCourses = append(result.UpdatedCourses, ReportCourseData{
				ID:   course.ID,
				Code: course.Code,
				Name: course.Name,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("year", year).
		Int("records", len(records)).
		Int("inserted", len(result.InsertedCourses)).
		Int("updated", len(result.UpdatedCourses)).
		Msg("Course database synchronized")

	return result, nil
}
