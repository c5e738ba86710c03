package services

import (
	"context"
	"strconv"

	"github.com/aosora/coursehub/internal/app/models"
	"github.com/aosora/coursehub/internal/app/repositories"
)

// fakeStore is an in-memory Store used by the service tests. Saves go
// into both indexes; InTransaction snapshots state and restores it when
// the callback fails, mirroring a rollback.
type fakeStore struct {
	byYearCode map[string]*models.Course
	byID       map[string]*models.Course

	findResult []*models.Course
	findErr    error
	lastFilter repositories.FindFilter
	findCalls  int

	searchIDsResult []string
	searchIDsErr    error
	lastSearchSQL   string
	lastSearchArgs  []any

	getByIDsErr error

	saveErr   error
	saveCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byYearCode: make(map[string]*models.Course),
		byID:       make(map[string]*models.Course),
	}
}

func yearCodeKey(year int, code string) string {
	return strconv.Itoa(year) + ":" + code
}

func (f *fakeStore) seed(course *models.Course) {
	f.byYearCode[yearCodeKey(course.Year, course.Code)] = course
	f.byID[course.ID] = course
}

func (f *fakeStore) GetByYearCode(_ context.Context, year int, code string) (*models.Course, error) {
	course, ok := f.byYearCode[yearCodeKey(year, code)]
	if !ok {
		return nil, repositories.ErrCourseNotFound
	}
	return course, nil
}

func (f *fakeStore) GetByIDs(_ context.Context, ids []string) ([]*models.Course, error) {
	if f.getByIDsErr != nil {
		return nil, f.getByIDsErr
	}
	var res []*models.Course
	for _, id := range ids {
		if c, ok := f.byID[id]; ok {
			res = append(res, c)
		}
	}
	return res, nil
}

func (f *fakeStore) Find(_ context.Context, filter repositories.FindFilter) ([]*models.Course, error) {
	f.findCalls++
	f.lastFilter = filter
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findResult, nil
}

func (f *fakeStore) SearchIDs(_ context.Context, sql string, args []any) ([]string, error) {
	f.lastSearchSQL = sql
	f.lastSearchArgs = args
	if f.searchIDsErr != nil {
		return nil, f.searchIDsErr
	}
	return f.searchIDsResult, nil
}

func (f *fakeStore) Save(_ context.Context, course *models.Course) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.seed(course)
	return nil
}

func (f *fakeStore) InTransaction(ctx context.Context, fn func(repositories.CourseStore) error) error {
	snapYearCode := make(map[string]*models.Course, len(f.byYearCode))
	for k, v := range f.byYearCode {
		snapYearCode[k] = v
	}
	snapID := make(map[string]*models.Course, len(f.byID))
	for k, v := range f.byID {
		snapID[k] = v
	}

	if err := fn(f); err != nil {
		f.byYearCode = snapYearCode
		f.byID = snapID
		return err
	}
	return nil
}
