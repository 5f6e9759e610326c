package standings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/vmhl-standings/internal/domain/teams"
	"github.com/preston-bernstein/vmhl-standings/internal/logging"
)

// OpenCreate shows the create dialog.
func (c *Controller) OpenCreate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.session.IsAdmin() {
		return ErrNotAdmin
	}
	c.create.open()
	return nil
}

// CancelCreate closes the create dialog and keeps the draft for next time.
func (c *Controller) CancelCreate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.create.cancel()
}

// SetDraft replaces the create form contents.
func (c *Controller) SetDraft(name, logo string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = teams.Draft{Name: name, LogoURL: logo}
}

// SetDraftName changes the draft name and keeps any uploaded logo.
func (c *Controller) SetDraftName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Name = name
}

// Create fills the draft with name and logo and submits it.
func (c *Controller) Create(ctx context.Context, name, logo string) error {
	c.SetDraft(name, logo)
	return c.SubmitCreate(ctx)
}

// SubmitCreate posts the current draft. An empty name is rejected locally.
func (c *Controller) SubmitCreate(ctx context.Context) error {
	c.mu.Lock()
	if !c.session.IsAdmin() {
		c.mu.Unlock()
		return ErrNotAdmin
	}
	c.create.open()
	if c.create.state == DialogSubmitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	if c.draft.Name == "" {
		c.mu.Unlock()
		return ErrEmptyName
	}
	_ = c.create.begin()
	draft := c.draft
	c.mu.Unlock()

	logger := c.loggerFor(ctx)
	if err := c.remote.CreateTeam(ctx, draft); err != nil {
		c.mu.Lock()
		c.create.settle(false)
		c.mu.Unlock()
		logging.Error(logger, "create team failed", err)
		c.notifier.Notify(ctx, failure(msgCreateFailed, err))
		return err
	}

	c.mu.Lock()
	c.create.settle(true)
	c.draft = teams.Draft{}
	c.mu.Unlock()

	logging.Info(logger, "team created", slog.String("name", draft.Name))
	c.notifier.Notify(ctx, success(msgCreated))
	c.afterMutation(ctx)
	return nil
}

// BeginEdit selects a cached team and opens the edit dialog on a copy of it.
func (c *Controller) BeginEdit(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.session.IsAdmin() {
		return ErrNotAdmin
	}
	if c.edit.state == DialogSubmitting {
		return ErrSubmitInFlight
	}
	team, ok := c.cache.GetTeam(id)
	if !ok {
		return ErrUnknownTeam
	}
	c.selection = &team
	c.edit.open()
	return nil
}

// EditSelection applies fn to the team being edited.
func (c *Controller) EditSelection(fn func(*teams.Team)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selection == nil {
		return ErrNoSelection
	}
	if c.edit.state == DialogSubmitting {
		return ErrSubmitInFlight
	}
	id := c.selection.ID
	fn(c.selection)
	c.selection.ID = id
	return nil
}

// CancelEdit drops the selection and closes the edit dialog.
func (c *Controller) CancelEdit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.edit.cancel(); err != nil {
		return err
	}
	c.selection = nil
	return nil
}

// Update sends the edited team as a full replacement. Without a selection it
// sends nothing and returns ErrNoSelection.
func (c *Controller) Update(ctx context.Context) error {
	c.mu.Lock()
	if !c.session.IsAdmin() {
		c.mu.Unlock()
		return ErrNotAdmin
	}
	if c.selection == nil {
		c.mu.Unlock()
		return ErrNoSelection
	}
	if err := c.edit.begin(); err != nil {
		c.mu.Unlock()
		return err
	}
	update := teams.FullUpdate{Team: *c.selection}
	c.mu.Unlock()

	logger := c.loggerFor(ctx).With(slog.Int(logging.FieldTeamID, update.TeamID()))
	if err := c.remote.UpdateTeam(ctx, update); err != nil {
		c.mu.Lock()
		c.edit.settle(false)
		c.mu.Unlock()
		logging.Error(logger, "update team failed", err)
		c.notifier.Notify(ctx, failure(msgUpdateFailed, err))
		return err
	}

	c.mu.Lock()
	c.edit.settle(true)
	c.selection = nil
	c.mu.Unlock()

	logging.Info(logger, "team updated")
	c.notifier.Notify(ctx, success(msgUpdated))
	c.afterMutation(ctx)
	return nil
}

// Delete removes a team after the user confirms. Declining is silent.
func (c *Controller) Delete(ctx context.Context, id int) error {
	if !c.session.IsAdmin() {
		return ErrNotAdmin
	}
	prompt := "Delete this team?"
	if team, ok := c.cache.GetTeam(id); ok {
		prompt = fmt.Sprintf("Delete %s?", team.Name)
	}
	if !c.confirmer.Confirm(ctx, prompt) {
		return nil
	}

	logger := c.loggerFor(ctx).With(slog.Int(logging.FieldTeamID, id))
	if err := c.remote.DeleteTeam(ctx, id); err != nil {
		logging.Error(logger, "delete team failed", err)
		c.notifier.Notify(ctx, failure(msgDeleteFailed, err))
		return err
	}

	logging.Info(logger, "team deleted")
	c.notifier.Notify(ctx, success(msgDeleted))
	c.afterMutation(ctx)
	return nil
}

// Reorder swaps a team with its neighbour in the rendered order. Moving the
// first row up or the last row down does nothing.
func (c *Controller) Reorder(ctx context.Context, id int, dir teams.Direction) error {
	if !c.session.IsAdmin() {
		return ErrNotAdmin
	}
	if dir != teams.Up && dir != teams.Down {
		return ErrBadDirection
	}
	team, ok := c.cache.GetTeam(id)
	if !ok {
		return ErrUnknownTeam
	}
	neighbor, ok := c.cache.Neighbor(id, dir)
	if !ok {
		return nil
	}

	c.mu.Lock()
	if c.reordering {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.reordering = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.reordering = false
		c.mu.Unlock()
	}()

	logger := c.loggerFor(ctx).With(
		slog.Int(logging.FieldTeamID, id),
		slog.String(logging.FieldDirection, string(dir)),
	)
	if err := c.swap(ctx, team, neighbor); err != nil {
		logging.Error(logger, "reorder failed", err)
		c.notifier.Notify(ctx, failure(msgMoveFailed, err))
		return err
	}

	logging.Info(logger, "team moved")
	c.afterMutation(ctx)
	return nil
}

// swap exchanges the positions of a and b. The two-step form is not atomic:
// if the second request fails the first one stays applied.
func (c *Controller) swap(ctx context.Context, a, b teams.Team) error {
	if c.atomicSwap {
		return c.remote.SwapPositions(ctx, teams.Swap{FirstID: a.ID, SecondID: b.ID})
	}
	if err := c.remote.UpdateTeam(ctx, teams.Reposition{ID: a.ID, Position: b.Position}); err != nil {
		return err
	}
	return c.remote.UpdateTeam(ctx, teams.Reposition{ID: b.ID, Position: a.Position})
}
