package teststubs

import (
	"context"
	"sort"
	"sync"

	"github.com/preston-bernstein/vmhl-standings/internal/domain/teams"
)

// RemoteCall records one request made against StubRemote.
type RemoteCall struct {
	Op     string
	Draft  teams.Draft
	Update teams.Update
	ID     int
	Swap   teams.Swap
}

// StubRemote is an in-memory stand-in for the remote store. Successful
// mutations are applied to Teams so a following list reflects them.
type StubRemote struct {
	mu    sync.Mutex
	Teams []teams.Team
	Calls []RemoteCall

	ListErr   error
	CreateErr error
	DeleteErr error
	SwapErr   error
	// UpdateErrs is consumed one entry per UpdateTeam call; nil entries succeed.
	UpdateErrs []error

	// Hold, when set, blocks mutations until it is closed. Started receives one
	// value per blocked call so tests can wait for the request to be in flight.
	Hold    chan struct{}
	Started chan struct{}
}

// ListTeams returns a copy of Teams ordered by position.
func (s *StubRemote) ListTeams(ctx context.Context) ([]teams.Team, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, RemoteCall{Op: "list"})
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	out := make([]teams.Team, len(s.Teams))
	copy(out, s.Teams)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// CreateTeam appends a team at the next position.
func (s *StubRemote) CreateTeam(ctx context.Context, draft teams.Draft) error {
	s.wait(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, RemoteCall{Op: "create", Draft: draft})
	if s.CreateErr != nil {
		return s.CreateErr
	}
	maxID, maxPos := 0, 0
	for _, t := range s.Teams {
		maxID = max(maxID, t.ID)
		maxPos = max(maxPos, t.Position)
	}
	s.Teams = append(s.Teams, teams.Team{
		ID:       maxID + 1,
		Name:     draft.Name,
		LogoURL:  draft.LogoURL,
		Position: maxPos + 1,
	})
	return nil
}

// UpdateTeam applies a full update or a reposition.
func (s *StubRemote) UpdateTeam(ctx context.Context, update teams.Update) error {
	s.wait(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, RemoteCall{Op: "update", Update: update, ID: update.TeamID()})
	if len(s.UpdateErrs) > 0 {
		err := s.UpdateErrs[0]
		s.UpdateErrs = s.UpdateErrs[1:]
		if err != nil {
			return err
		}
	}
	for i := range s.Teams {
		if s.Teams[i].ID != update.TeamID() {
			continue
		}
		switch u := update.(type) {
		case teams.FullUpdate:
			s.Teams[i] = u.Team
		case teams.Reposition:
			s.Teams[i].Position = u.Position
		}
	}
	return nil
}

// DeleteTeam removes a team by id.
func (s *StubRemote) DeleteTeam(ctx context.Context, id int) error {
	s.wait(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, RemoteCall{Op: "delete", ID: id})
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	kept := s.Teams[:0]
	for _, t := range s.Teams {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.Teams = kept
	return nil
}

// SwapPositions exchanges the positions of two teams.
func (s *StubRemote) SwapPositions(ctx context.Context, swap teams.Swap) error {
	s.wait(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, RemoteCall{Op: "swap", Swap: swap})
	if s.SwapErr != nil {
		return s.SwapErr
	}
	first, second := -1, -1
	for i, t := range s.Teams {
		switch t.ID {
		case swap.FirstID:
			first = i
		case swap.SecondID:
			second = i
		}
	}
	if first >= 0 && second >= 0 {
		s.Teams[first].Position, s.Teams[second].Position = s.Teams[second].Position, s.Teams[first].Position
	}
	return nil
}

// CallsFor returns recorded calls with the given op.
func (s *StubRemote) CallsFor(op string) []RemoteCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []RemoteCall
	for _, c := range s.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// MutationCount counts every non-list call.
func (s *StubRemote) MutationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.Calls {
		if c.Op != "list" {
			n++
		}
	}
	return n
}

func (s *StubRemote) wait(ctx context.Context) {
	if s.Hold == nil {
		return
	}
	if s.Started != nil {
		s.Started <- struct{}{}
	}
	select {
	case <-s.Hold:
	case <-ctx.Done():
	}
}
