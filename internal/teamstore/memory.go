package teamstore

import (
	"context"
	"sort"
	"sync"

	"github.com/preston-bernstein/vmhl-standings/internal/domain/teams"
)

// MemoryRepository keeps teams in process. It backs the server when no
// database is configured and is used throughout the handler tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	teams  map[int]teams.Team
	nextID int
}

// NewMemoryRepository builds an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		teams:  make(map[int]teams.Team),
		nextID: 1,
	}
}

// NewSeededMemoryRepository builds a repository holding the sample standings.
func NewSeededMemoryRepository() *MemoryRepository {
	r := NewMemoryRepository()
	for _, t := range SeedTeams() {
		r.put(t)
	}
	return r
}

func (r *MemoryRepository) put(t teams.Team) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams[t.ID] = t
	if t.ID >= r.nextID {
		r.nextID = t.ID + 1
	}
}

// List returns teams ordered by position, then id.
func (r *MemoryRepository) List(ctx context.Context) ([]teams.Team, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]teams.Team, 0, len(r.teams))
	for _, t := range r.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id int) (teams.Team, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.teams[id]
	if !ok {
		return teams.Team{}, ErrNotFound
	}
	return t, nil
}

func (r *MemoryRepository) NextPosition(ctx context.Context) (int, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	highest := 0
	for _, t := range r.teams {
		highest = max(highest, t.Position)
	}
	return highest + 1, nil
}

func (r *MemoryRepository) Insert(ctx context.Context, draft teams.Draft, position int) (teams.Team, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	t := teams.Team{
		ID:       r.nextID,
		Name:     draft.Name,
		LogoURL:  draft.LogoURL,
		Position: position,
	}
	r.teams[t.ID] = t
	r.nextID++
	return t, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id int, patch Patch) (teams.Team, error) {
	_ = ctx
	if patch.IsEmpty() {
		return teams.Team{}, ErrNoFields
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok {
		return teams.Team{}, ErrNotFound
	}
	patch.Apply(&t)
	r.teams[id] = t
	return t, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[id]; !ok {
		return ErrNotFound
	}
	delete(r.teams, id)
	return nil
}

// Ping always succeeds.
func (r *MemoryRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
