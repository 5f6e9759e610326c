package standings

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/vmhl-standings/internal/domain/teams"
	"github.com/preston-bernstein/vmhl-standings/internal/logging"
)

// RemoteStore is the subset of the remote client the controller needs.
type RemoteStore interface {
	ListTeams(ctx context.Context) ([]teams.Team, error)
	CreateTeam(ctx context.Context, draft teams.Draft) error
	UpdateTeam(ctx context.Context, update teams.Update) error
	DeleteTeam(ctx context.Context, id int) error
	SwapPositions(ctx context.Context, swap teams.Swap) error
}

// Cache holds the last standings snapshot fetched from the remote store.
type Cache interface {
	ListTeams() []teams.Team
	GetTeam(id int) (teams.Team, bool)
	Neighbor(id int, dir teams.Direction) (teams.Team, bool)
	SetTeams(items []teams.Team)
	RefreshedAt() time.Time
}

// Session is the admin mode flag.
type Session interface {
	SubmitPassword(candidate string) bool
	Logout()
	IsAdmin() bool
}

// Options wires the controller's collaborators.
type Options struct {
	Remote    RemoteStore
	Cache     Cache
	Session   Session
	Notifier  Notifier
	Confirmer Confirmer
	Logger    *slog.Logger
	// AtomicSwap reorders with one PATCH swap instead of two PUTs.
	AtomicSwap bool
}

// Controller coordinates every user-initiated mutation against the remote
// store and keeps the cached standings in sync afterwards.
type Controller struct {
	remote     RemoteStore
	cache      Cache
	session    Session
	notifier   Notifier
	confirmer  Confirmer
	logger     *slog.Logger
	atomicSwap bool

	mu         sync.Mutex
	login      dialog
	create     dialog
	edit       dialog
	draft      teams.Draft
	selection  *teams.Team
	reordering bool
}

// State is a point-in-time view of the controller for rendering.
type State struct {
	Admin     bool
	Login     DialogState
	Create    DialogState
	Edit      DialogState
	Draft     teams.Draft
	Selection *teams.Team
}

// NewController builds a Controller. Remote, Cache and Session are required.
func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = logNotifier{logger: logger}
	}
	confirmer := opts.Confirmer
	if confirmer == nil {
		confirmer = denyAll{}
	}
	return &Controller{
		remote:     opts.Remote,
		cache:      opts.Cache,
		session:    opts.Session,
		notifier:   notifier,
		confirmer:  confirmer,
		logger:     logger,
		atomicSwap: opts.AtomicSwap,
	}
}

// Teams returns the cached standings in display order.
func (c *Controller) Teams() []teams.Team {
	return c.cache.ListTeams()
}

// RefreshedAt reports when the cache last took a snapshot; zero before the first one.
func (c *Controller) RefreshedAt() time.Time {
	return c.cache.RefreshedAt()
}

// IsAdmin reports whether admin affordances are enabled.
func (c *Controller) IsAdmin() bool {
	return c.session.IsAdmin()
}

// State snapshots dialog and session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{
		Admin:  c.session.IsAdmin(),
		Login:  c.login.state,
		Create: c.create.state,
		Edit:   c.edit.state,
		Draft:  c.draft,
	}
	if c.selection != nil {
		sel := *c.selection
		st.Selection = &sel
	}
	return st
}

// Refresh replaces the cache with the remote list. On failure the cache keeps
// its previous contents and a notification is raised.
func (c *Controller) Refresh(ctx context.Context) error {
	logger := c.loggerFor(ctx)
	items, err := c.remote.ListTeams(ctx)
	if err != nil {
		logging.Error(logger, "refresh failed", err)
		c.notifier.Notify(ctx, failure(msgLoadFailed, err))
		return err
	}
	c.cache.SetTeams(items)
	logging.Info(logger, "standings refreshed", slog.Int(logging.FieldCount, len(items)))
	return nil
}

// Load performs the initial refresh when the front-end mounts.
func (c *Controller) Load(ctx context.Context) error {
	logging.Debug(c.loggerFor(ctx), "loading standings")
	return c.Refresh(ctx)
}

// afterMutation refreshes the cache. A failed refresh is already reported by
// Refresh and does not undo the mutation.
func (c *Controller) afterMutation(ctx context.Context) {
	_ = c.Refresh(ctx)
}

func (c *Controller) loggerFor(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, c.logger)
}
