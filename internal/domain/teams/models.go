package teams

// Team is one row of the standings table as the remote store returns it.
// Position is the explicit sort key; the store returns rows already ordered by it.
type Team struct {
	ID           int    `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	LogoURL      string `json:"logo_url" db:"logo_url"`
	GamesPlayed  int    `json:"games_played" db:"games_played"`
	Wins         int    `json:"wins" db:"wins"`
	Losses       int    `json:"losses" db:"losses"`
	OTLosses     int    `json:"ot_losses" db:"ot_losses"`
	GoalsFor     int    `json:"goals_for" db:"goals_for"`
	GoalsAgainst int    `json:"goals_against" db:"goals_against"`
	Points       int    `json:"points" db:"points"`
	Position     int    `json:"position" db:"position"`
}

// GoalDifference is goals for minus goals against.
func (t Team) GoalDifference() int {
	return t.GoalsFor - t.GoalsAgainst
}

// Draft carries the fields a client supplies when creating a team.
// Counters and position are assigned by the store.
type Draft struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
}

// Swap asks the store to exchange the positions of two teams in one step.
type Swap struct {
	FirstID  int `json:"first_id"`
	SecondID int `json:"second_id"`
}
