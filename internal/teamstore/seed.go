package teamstore

import "github.com/preston-bernstein/vmhl-standings/internal/domain/teams"

// SeedTeams returns a deterministic set of teams useful for local runs.
func SeedTeams() []teams.Team {
	return []teams.Team{
		{ID: 1, Name: "Ice Wolves", GamesPlayed: 12, Wins: 8, Losses: 3, OTLosses: 1, GoalsFor: 41, GoalsAgainst: 27, Points: 17, Position: 1},
		{ID: 2, Name: "Harbor Kings", GamesPlayed: 12, Wins: 7, Losses: 4, OTLosses: 1, GoalsFor: 38, GoalsAgainst: 30, Points: 15, Position: 2},
		{ID: 3, Name: "North Star", GamesPlayed: 12, Wins: 5, Losses: 5, OTLosses: 2, GoalsFor: 33, GoalsAgainst: 35, Points: 12, Position: 3},
		{ID: 4, Name: "Steel Foxes", GamesPlayed: 12, Wins: 2, Losses: 9, OTLosses: 1, GoalsFor: 22, GoalsAgainst: 42, Points: 5, Position: 4},
	}
}
