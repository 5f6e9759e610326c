package store

import (
	"sync"
	"time"

	"github.com/preston-bernstein/vmhl-standings/internal/domain/teams"
)

// MemoryStore keeps a thread-safe snapshot of the standings in server order.
// It is only ever replaced wholesale; there is no incremental patching.
type MemoryStore struct {
	mu          sync.RWMutex
	teams       []teams.Team
	index       map[int]int
	refreshedAt time.Time
	now         func() time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		index: make(map[int]int),
		now:   time.Now,
	}
}

// ListTeams returns a copy of the current snapshot.
func (s *MemoryStore) ListTeams() []teams.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]teams.Team, len(s.teams))
	copy(result, s.teams)
	return result
}

// GetTeam retrieves a team by ID.
func (s *MemoryStore) GetTeam(id int) (teams.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return teams.Team{}, false
	}
	return s.teams[i], true
}

// Neighbor returns the adjacent row in the given direction.
// ok is false when id is unknown or already at that edge of the table.
func (s *MemoryStore) Neighbor(id int, dir teams.Direction) (teams.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, found := s.index[id]
	if !found {
		return teams.Team{}, false
	}
	j := i + dir.Offset()
	if j < 0 || j >= len(s.teams) {
		return teams.Team{}, false
	}
	return s.teams[j], true
}

// RefreshedAt reports when the snapshot was last replaced.
func (s *MemoryStore) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

// SetTeams replaces the existing snapshot, keeping the given order.
func (s *MemoryStore) SetTeams(items []teams.Team) {
	snapshot := make([]teams.Team, len(items))
	copy(snapshot, items)
	index := make(map[int]int, len(items))
	for i, t := range snapshot {
		index[t.ID] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams = snapshot
	s.index = index
	s.refreshedAt = s.now()
}
