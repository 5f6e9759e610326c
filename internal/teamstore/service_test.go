package teamstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/preston-bernstein/vmhl-standings/internal/domain/teams"
	"github.com/preston-bernstein/vmhl-standings/internal/metrics"
)

type mockManager struct {
	mock.Mock
}

func (m *mockManager) Do(ctx context.Context, fn func(context.Context) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) List(ctx context.Context) ([]teams.Team, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]teams.Team)
	return out, args.Error(1)
}

func (m *mockRepository) Get(ctx context.Context, id int) (teams.Team, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(teams.Team), args.Error(1)
}

func (m *mockRepository) NextPosition(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockRepository) Insert(ctx context.Context, draft teams.Draft, position int) (teams.Team, error) {
	args := m.Called(ctx, draft, position)
	return args.Get(0).(teams.Team), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, id int, patch Patch) (teams.Team, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(teams.Team), args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func positionIs(want int) any {
	return mock.MatchedBy(func(p Patch) bool {
		return p.Position != nil && *p.Position == want && p.Points == nil
	})
}

func TestService_Create_AppendsAtNextPosition(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	trm := &mockManager{}
	repo.Test(t)
	trm.Test(t)
	t.Cleanup(func() { repo.AssertExpectations(t); trm.AssertExpectations(t) })

	draft := teams.Draft{Name: "Lake Hawks", LogoURL: "data:image/png;base64,AA"}
	trm.On("Do", ctx, mock.AnythingOfType("func(context.Context) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(1).(func(context.Context) error)
			assert.NoError(t, fn(ctx))
		}).
		Return(nil).Once()
	repo.On("NextPosition", ctx).Return(5, nil).Once()
	repo.On("Insert", ctx, draft, 5).Return(teams.Team{ID: 11, Name: draft.Name, Position: 5}, nil).Once()

	svc := NewService(trm, repo, metrics.NewRecorder(), nil)
	created, err := svc.Create(ctx, draft)

	assert.NoError(t, err)
	assert.Equal(t, 11, created.ID)
	assert.Equal(t, 5, created.Position)
}

func TestService_Create_PropagatesRepositoryError(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	trm := &mockManager{}
	boom := errors.New("boom")

	trm.On("Do", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			fn := args.Get(1).(func(context.Context) error)
			assert.ErrorIs(t, fn(ctx), boom)
		}).
		Return(boom).Once()
	repo.On("NextPosition", ctx).Return(0, boom).Once()

	_, err := NewService(trm, repo, nil, nil).Create(ctx, teams.Draft{Name: "x"})

	assert.ErrorIs(t, err, boom)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Swap_ExchangesPositions(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	trm := &mockManager{}
	repo.Test(t)
	t.Cleanup(func() { repo.AssertExpectations(t) })

	trm.On("Do", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			fn := args.Get(1).(func(context.Context) error)
			assert.NoError(t, fn(ctx))
		}).
		Return(nil).Once()
	repo.On("Get", ctx, 1).Return(teams.Team{ID: 1, Name: "A", Position: 4}, nil).Once()
	repo.On("Get", ctx, 2).Return(teams.Team{ID: 2, Name: "B", Position: 5}, nil).Once()
	repo.On("Update", ctx, 1, positionIs(5)).Return(teams.Team{ID: 1, Name: "A", Position: 5}, nil).Once()
	repo.On("Update", ctx, 2, positionIs(4)).Return(teams.Team{ID: 2, Name: "B", Position: 4}, nil).Once()

	pair, err := NewService(trm, repo, nil, nil).Swap(ctx, 1, 2)

	assert.NoError(t, err)
	assert.Equal(t, 5, pair[0].Position)
	assert.Equal(t, 4, pair[1].Position)
}

func TestService_Swap_UnknownTeam(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	trm := &mockManager{}
	trm.On("Do", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			fn := args.Get(1).(func(context.Context) error)
			assert.ErrorIs(t, fn(ctx), ErrNotFound)
		}).
		Return(ErrNotFound).Once()
	repo.On("Get", ctx, 1).Return(teams.Team{}, ErrNotFound).Once()

	_, err := NewService(trm, repo, nil, nil).Swap(ctx, 1, 2)

	assert.ErrorIs(t, err, ErrNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Update_RejectsEmptyPatch(t *testing.T) {
	repo := &mockRepository{}

	_, err := NewService(&mockManager{}, repo, nil, nil).Update(context.Background(), 1, Patch{})

	assert.ErrorIs(t, err, ErrNoFields)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_PassThroughs(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	repo.Test(t)
	t.Cleanup(func() { repo.AssertExpectations(t) })
	points := 3

	repo.On("List", ctx).Return([]teams.Team{{ID: 1}}, nil).Once()
	repo.On("Update", ctx, 1, mock.AnythingOfType("teamstore.Patch")).Return(teams.Team{ID: 1, Points: 3}, nil).Once()
	repo.On("Delete", ctx, 1).Return(ErrNotFound).Once()
	repo.On("Ping", ctx).Return(nil).Once()

	svc := NewService(&mockManager{}, repo, nil, nil)

	list, err := svc.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 1)

	updated, err := svc.Update(ctx, 1, Patch{Points: &points})
	assert.NoError(t, err)
	assert.Equal(t, 3, updated.Points)

	assert.ErrorIs(t, svc.Delete(ctx, 1), ErrNotFound)
	assert.NoError(t, svc.Ready(ctx))
}
