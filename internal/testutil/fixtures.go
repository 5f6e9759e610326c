package testutil

import "github.com/preston-bernstein/vmhl-standings/internal/domain/teams"

// SampleTeam returns a team fixture with a plausible record.
func SampleTeam(id int, name string, position int) teams.Team {
	return teams.Team{
		ID:           id,
		Name:         name,
		GamesPlayed:  10,
		Wins:         5,
		Losses:       3,
		OTLosses:     2,
		GoalsFor:     31,
		GoalsAgainst: 27,
		Points:       12,
		Position:     position,
	}
}

// SampleStandings returns three teams in position order.
func SampleStandings() []teams.Team {
	return []teams.Team{
		SampleTeam(1, "Ice Wolves", 1),
		SampleTeam(2, "Harbor Kings", 2),
		SampleTeam(3, "North Star", 3),
	}
}
