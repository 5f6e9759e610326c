package teamstore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/vmhl-standings/internal/domain/teams"
	"github.com/preston-bernstein/vmhl-standings/internal/logging"
	"github.com/preston-bernstein/vmhl-standings/internal/metrics"
)

const (
	opList   = "list"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
	opSwap   = "swap"
	opPing   = "ping"
)

// Service implements the store's verbs on top of a Repository.
type Service struct {
	repo    Repository
	trm     TransactionManager
	metrics *metrics.Recorder
	logger  *slog.Logger
}

// NewService builds a Service. recorder and logger may be nil.
func NewService(trm TransactionManager, repo Repository, recorder *metrics.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, trm: trm, metrics: recorder, logger: logger}
}

// List returns every team ordered by position.
func (s *Service) List(ctx context.Context) (out []teams.Team, err error) {
	defer s.observe(opList, time.Now(), &err)
	return s.repo.List(ctx)
}

// Create appends a team after the current last position.
func (s *Service) Create(ctx context.Context, draft teams.Draft) (created teams.Team, err error) {
	defer s.observe(opCreate, time.Now(), &err)

	err = s.trm.Do(ctx, func(ctx context.Context) error {
		position, err := s.repo.NextPosition(ctx)
		if err != nil {
			return err
		}
		created, err = s.repo.Insert(ctx, draft, position)
		return err
	})
	if err != nil {
		return teams.Team{}, err
	}
	return created, nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id int, patch Patch) (updated teams.Team, err error) {
	defer s.observe(opUpdate, time.Now(), &err)
	if patch.IsEmpty() {
		return teams.Team{}, ErrNoFields
	}
	return s.repo.Update(ctx, id, patch)
}

// Delete removes a team.
func (s *Service) Delete(ctx context.Context, id int) (err error) {
	defer s.observe(opDelete, time.Now(), &err)
	return s.repo.Delete(ctx, id)
}

// Swap exchanges the positions of two teams in one transaction and returns
// both in their new state, first then second.
func (s *Service) Swap(ctx context.Context, firstID, secondID int) (pair [2]teams.Team, err error) {
	defer s.observe(opSwap, time.Now(), &err)

	err = s.trm.Do(ctx, func(ctx context.Context) error {
		first, err := s.repo.Get(ctx, firstID)
		if err != nil {
			return err
		}
		second, err := s.repo.Get(ctx, secondID)
		if err != nil {
			return err
		}
		if pair[0], err = s.repo.Update(ctx, first.ID, PositionPatch(second.Position)); err != nil {
			return err
		}
		pair[1], err = s.repo.Update(ctx, second.ID, PositionPatch(first.Position))
		return err
	})
	if err != nil {
		return [2]teams.Team{}, err
	}
	return pair, nil
}

// Ready reports whether the backing store is reachable.
func (s *Service) Ready(ctx context.Context) (err error) {
	defer s.observe(opPing, time.Now(), &err)
	return s.repo.Ping(ctx)
}

func (s *Service) observe(op string, start time.Time, errp *error) {
	err := *errp
	s.metrics.RecordRepositoryOp(op, time.Since(start), err)
	if err != nil && !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrNoFields) {
		logging.Error(s.logger, "repository op failed", err, slog.String(logging.FieldOp, op))
	}
}
