package teams

import (
	"fmt"
	"strings"
)

// Update is a PUT body sent to the remote store. The concrete variants make the
// wire shape explicit instead of inferring it from which fields happen to be set.
type Update interface {
	// TeamID identifies the record being changed.
	TeamID() int
	// Body is the JSON payload for the request.
	Body() any
	// Kind names the variant for logs and metrics.
	Kind() string
}

// FullUpdate replaces every editable field of a team.
type FullUpdate struct {
	Team Team
}

func (u FullUpdate) TeamID() int  { return u.Team.ID }
func (u FullUpdate) Body() any    { return u.Team }
func (u FullUpdate) Kind() string { return "full" }

// Reposition moves a team to a new position and touches nothing else.
type Reposition struct {
	ID       int `json:"id"`
	Position int `json:"position"`
}

func (u Reposition) TeamID() int  { return u.ID }
func (u Reposition) Body() any    { return u }
func (u Reposition) Kind() string { return "reposition" }

// Direction is a reorder direction relative to the rendered table.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection accepts "up" or "down" in any case.
func ParseDirection(raw string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(raw))) {
	case Up:
		return Up, nil
	case Down:
		return Down, nil
	default:
		return "", fmt.Errorf("unknown direction %q", raw)
	}
}

// Offset is the index delta for moving one row in this direction.
func (d Direction) Offset() int {
	if d == Up {
		return -1
	}
	return 1
}
