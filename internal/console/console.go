package console

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/preston-bernstein/vmhl-standings/internal/app/standings"
	"github.com/preston-bernstein/vmhl-standings/internal/domain/teams"
	"github.com/preston-bernstein/vmhl-standings/internal/logging"
)

const promptText = "vmhl> "

// Coordinator is the slice of standings.Controller the console drives.
type Coordinator interface {
	Load(ctx context.Context) error
	Refresh(ctx context.Context) error
	Teams() []teams.Team
	RefreshedAt() time.Time
	IsAdmin() bool
	State() standings.State

	OpenLogin()
	CancelLogin() error
	SubmitPassword(ctx context.Context, candidate string) bool
	Logout(ctx context.Context)

	SetDraftName(name string)
	SubmitCreate(ctx context.Context) error
	CancelCreate() error

	BeginEdit(id int) error
	EditSelection(fn func(*teams.Team)) error
	CancelEdit() error
	Update(ctx context.Context) error

	Delete(ctx context.Context, id int) error
	Reorder(ctx context.Context, id int, dir teams.Direction) error
	UploadLogo(ctx context.Context, name string, r io.Reader) error
}

// Console is the interactive command loop.
type Console struct {
	ctrl   Coordinator
	io     *Prompter
	logger *slog.Logger
	open   func(name string) (io.ReadCloser, error)
}

// New builds a Console.
func New(ctrl Coordinator, prompter *Prompter, logger *slog.Logger) *Console {
	return &Console{
		ctrl:   ctrl,
		io:     prompter,
		logger: logger,
		open:   openFile,
	}
}

// Run loads the standings, renders them and processes commands until input
// ends, the user quits, or ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	if err := c.ctrl.Load(ctx); err == nil {
		c.render()
	}
	c.io.Printf("Type \"help\" for commands.\n")

	for {
		line, err := c.io.ReadLine(ctx, promptText)
		if err != nil {
			if errors.Is(err, io.EOF) {
				c.io.Printf("\n")
				return nil
			}
			return err
		}
		if line == "" {
			continue
		}
		quit, err := c.Execute(ctx, line)
		if err != nil {
			c.report(err)
		}
		if quit {
			return nil
		}
	}
}

func (c *Console) render() {
	if err := RenderTable(c.io.Writer(), c.ctrl.Teams(), c.ctrl.IsAdmin()); err != nil {
		logging.Warn(c.logger, "render failed", "error", err)
	}
	if at := c.ctrl.RefreshedAt(); !at.IsZero() {
		c.io.Printf("updated %s\n", at.Format(time.TimeOnly))
	}
}

// report prints local validation errors. Remote failures were already raised
// as notifications by the controller.
func (c *Console) report(err error) {
	if isLocal(err) {
		c.io.Printf("error: %v\n", err)
		return
	}
	logging.Warn(c.logger, "command failed", "error", err)
}

func isLocal(err error) bool {
	var usage *usageError
	return errors.As(err, &usage) ||
		errors.Is(err, standings.ErrNotAdmin) ||
		errors.Is(err, standings.ErrEmptyName) ||
		errors.Is(err, standings.ErrNoSelection) ||
		errors.Is(err, standings.ErrSubmitInFlight) ||
		errors.Is(err, standings.ErrUnknownTeam) ||
		errors.Is(err, standings.ErrNotImage)
}
