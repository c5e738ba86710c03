package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aosora/coursehub/internal/app/models"
	"github.com/aosora/coursehub/internal/db"
)

// CourseStore is the storage gateway contract consumed by the services.
type CourseStore interface {
	GetByYearCode(ctx context.Context, year int, code string) (*models.Course, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Course, error)
	Find(ctx context.Context, filter FindFilter) ([]*models.Course, error)
	SearchIDs(ctx context.Context, sql string, args []any) ([]string, error)
	Save(ctx context.Context, course *models.Course) error
}

// Store extends CourseStore with scoped transactional execution. Any
// error returned from fn rolls back everything fn did through the store
// it was handed.
type Store interface {
	CourseStore
	InTransaction(ctx context.Context, fn func(CourseStore) error) error
}

// CourseStoreImpl is the pgx-backed Store.
type CourseStoreImpl struct {
	*CourseRepository
	pool *pgxpool.Pool
}

// NewStore creates a Store over the given connection pool.
func NewStore(pool *pgxpool.Pool) *CourseStoreImpl {
	return &CourseStoreImpl{
		CourseRepository: NewCourseRepository(pool),
		pool:             pool,
	}
}

// InTransaction runs fn against a transaction-bound repository.
func (s *CourseStoreImpl) InTransaction(ctx context.Context, fn func(CourseStore) error) error {
	return db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		return fn(s.CourseRepository.WithTx(tx))
	})
}
