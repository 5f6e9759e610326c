package teamstore

import (
	"context"
	"sync"

	"github.com/preston-bernstein/vmhl-standings/internal/domain/teams"
)

// Repository persists teams. Implementations honour a transaction carried on
// ctx when one is active.
type Repository interface {
	List(ctx context.Context) ([]teams.Team, error)
	Get(ctx context.Context, id int) (teams.Team, error)
	NextPosition(ctx context.Context) (int, error)
	Insert(ctx context.Context, draft teams.Draft, position int) (teams.Team, error)
	Update(ctx context.Context, id int, patch Patch) (teams.Team, error)
	Delete(ctx context.Context, id int) error
	Ping(ctx context.Context) error
}

// TransactionManager runs fn inside a transaction.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// LockManager serializes "transactions" for repositories without real ones.
// It gives isolation between transactional calls but no rollback.
type LockManager struct {
	mu sync.Mutex
}

func (m *LockManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}
