package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/preston-bernstein/vmhl-standings/internal/app/standings"
	"github.com/preston-bernstein/vmhl-standings/internal/domain/teams"
)

const helpText = `Commands:
  list                     show the standings
  refresh                  reload the standings from the store
  login [password]         enter admin mode
  logout                   leave admin mode
  add <name>               create a team (uses a logo loaded with "logo")
  logo <file>              attach an image to the team being added or edited
  edit <id> [field=value]  edit a team; without fields, opens it for set/save
  set field=value ...      change fields of the team being edited
  save                     send the team being edited
  cancel                   close the login, add or edit dialog
  delete <id>              delete a team after confirmation
  up <id> | down <id>      move a team one row
  quit                     exit
Fields: name, logo_url, gp, w, l, otl, gf, ga, pts, position`

type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// Execute runs one command line. quit reports whether the loop should stop.
func (c *Console) Execute(ctx context.Context, line string) (quit bool, err error) {
	args, err := splitArgs(line)
	if err != nil {
		return false, err
	}
	if len(args) == 0 {
		return false, nil
	}
	cmd, rest := strings.ToLower(args[0]), args[1:]

	switch cmd {
	case "help", "?":
		c.io.Printf("%s\n", helpText)
	case "quit", "exit":
		return true, nil
	case "list", "ls":
		c.render()
	case "refresh":
		if err := c.ctrl.Refresh(ctx); err != nil {
			return false, err
		}
		c.render()
	case "login":
		return false, c.login(ctx, rest)
	case "logout":
		c.ctrl.Logout(ctx)
		c.render()
	case "add":
		c.ctrl.SetDraftName(strings.Join(rest, " "))
		return false, c.mutated(c.ctrl.SubmitCreate(ctx))
	case "logo":
		return false, c.logo(ctx, rest)
	case "edit":
		return false, c.edit(ctx, rest)
	case "set":
		return false, c.set(rest)
	case "save":
		return false, c.mutated(c.ctrl.Update(ctx))
	case "cancel":
		return false, c.cancel()
	case "delete", "rm":
		id, err := parseID(cmd, rest)
		if err != nil {
			return false, err
		}
		return false, c.mutated(c.ctrl.Delete(ctx, id))
	case "up", "down":
		id, err := parseID(cmd, rest)
		if err != nil {
			return false, err
		}
		dir, err := teams.ParseDirection(cmd)
		if err != nil {
			return false, usagef("%v", err)
		}
		return false, c.mutated(c.ctrl.Reorder(ctx, id, dir))
	default:
		return false, usagef("unknown command %q, try help", cmd)
	}
	return false, nil
}

// mutated re-renders the table after a successful mutation.
func (c *Console) mutated(err error) error {
	if err != nil {
		return err
	}
	c.render()
	return nil
}

func (c *Console) login(ctx context.Context, args []string) error {
	c.ctrl.OpenLogin()
	password := strings.Join(args, " ")
	if password == "" {
		line, err := c.io.ReadLine(ctx, "Password: ")
		if err != nil {
			return err
		}
		password = line
	}
	if c.ctrl.SubmitPassword(ctx, password) {
		c.render()
	}
	return nil
}

func (c *Console) logo(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usagef("usage: logo <file>")
	}
	f, err := c.open(args[0])
	if err != nil {
		return usagef("open logo: %v", err)
	}
	defer f.Close()

	if err := c.ctrl.UploadLogo(ctx, args[0], f); err != nil {
		return err
	}
	c.io.Printf("Logo attached.\n")
	return nil
}

func (c *Console) edit(ctx context.Context, args []string) error {
	id, err := parseID("edit", args)
	if err != nil {
		return err
	}
	changes, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}
	if err := c.ctrl.BeginEdit(id); err != nil {
		return err
	}
	if len(changes) == 0 {
		if sel := c.ctrl.State().Selection; sel != nil {
			c.io.Printf("Editing %s (id %d). Use set, logo, save or cancel.\n", sel.Name, sel.ID)
		}
		return nil
	}
	if err := c.ctrl.EditSelection(applyAll(changes)); err != nil {
		return err
	}
	return c.mutated(c.ctrl.Update(ctx))
}

func (c *Console) set(args []string) error {
	if len(args) == 0 {
		return usagef("usage: set field=value ...")
	}
	changes, err := parseAssignments(args)
	if err != nil {
		return err
	}
	return c.ctrl.EditSelection(applyAll(changes))
}

func (c *Console) cancel() error {
	st := c.ctrl.State()
	if st.Login != standings.DialogClosed {
		if err := c.ctrl.CancelLogin(); err != nil {
			return err
		}
	}
	if st.Edit != standings.DialogClosed {
		if err := c.ctrl.CancelEdit(); err != nil {
			return err
		}
	}
	if st.Create != standings.DialogClosed {
		return c.ctrl.CancelCreate()
	}
	return nil
}

func parseID(cmd string, args []string) (int, error) {
	if len(args) == 0 {
		return 0, usagef("usage: %s <id>", cmd)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, usagef("invalid team id %q", args[0])
	}
	return id, nil
}

type assignment func(*teams.Team)

func applyAll(changes []assignment) func(*teams.Team) {
	return func(t *teams.Team) {
		for _, change := range changes {
			change(t)
		}
	}
}

var intFields = map[string]func(*teams.Team) *int{
	"gp":            func(t *teams.Team) *int { return &t.GamesPlayed },
	"games_played":  func(t *teams.Team) *int { return &t.GamesPlayed },
	"w":             func(t *teams.Team) *int { return &t.Wins },
	"wins":          func(t *teams.Team) *int { return &t.Wins },
	"l":             func(t *teams.Team) *int { return &t.Losses },
	"losses":        func(t *teams.Team) *int { return &t.Losses },
	"otl":           func(t *teams.Team) *int { return &t.OTLosses },
	"ot_losses":     func(t *teams.Team) *int { return &t.OTLosses },
	"gf":            func(t *teams.Team) *int { return &t.GoalsFor },
	"goals_for":     func(t *teams.Team) *int { return &t.GoalsFor },
	"ga":            func(t *teams.Team) *int { return &t.GoalsAgainst },
	"goals_against": func(t *teams.Team) *int { return &t.GoalsAgainst },
	"pts":           func(t *teams.Team) *int { return &t.Points },
	"points":        func(t *teams.Team) *int { return &t.Points },
	"position":      func(t *teams.Team) *int { return &t.Position },
}

// signedFields may go below zero; every other counter is non-negative.
var signedFields = map[string]bool{"pts": true, "points": true}

func parseAssignments(args []string) ([]assignment, error) {
	changes := make([]assignment, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, usagef("expected field=value, got %q", arg)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		switch key {
		case "name":
			changes = append(changes, func(t *teams.Team) { t.Name = value })
			continue
		case "logo", "logo_url":
			changes = append(changes, func(t *teams.Team) { t.LogoURL = value })
			continue
		}
		field, ok := intFields[key]
		if !ok {
			return nil, usagef("unknown field %q", key)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, usagef("%s must be a number, got %q", key, value)
		}
		if n < 0 && !signedFields[key] {
			return nil, usagef("%s cannot be negative", key)
		}
		changes = append(changes, func(t *teams.Team) { *field(t) = n })
	}
	return changes, nil
}

// splitArgs splits on whitespace and keeps double-quoted runs together, so
// name="Red Wings" is one argument.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case !quoted && (r == ' ' || r == '\t'):
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if quoted {
		return nil, usagef("unterminated quote")
	}
	if started {
		args = append(args, current.String())
	}
	return args, nil
}

func openFile(name string) (io.ReadCloser, error) {
	return os.Open(name)
}
