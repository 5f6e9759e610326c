package standings

import "errors"

// Local validation failures. None of them send a request or raise a notification.
var (
	ErrNotAdmin       = errors.New("admin mode required")
	ErrEmptyName      = errors.New("team name is required")
	ErrNoSelection    = errors.New("no team selected for editing")
	ErrSubmitInFlight = errors.New("a request for this dialog is still in flight")
	ErrUnknownTeam    = errors.New("team not found in current standings")
	ErrBadDirection   = errors.New("direction must be up or down")
	ErrNotImage       = errors.New("logo file is not an image")
)
