package teamstore

import "github.com/preston-bernstein/vmhl-standings/internal/domain/teams"

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Name         *string `json:"name" validate:"omitempty,max=120"`
	LogoURL      *string `json:"logo_url"`
	GamesPlayed  *int    `json:"games_played" validate:"omitempty,gte=0"`
	Wins         *int    `json:"wins" validate:"omitempty,gte=0"`
	Losses       *int    `json:"losses" validate:"omitempty,gte=0"`
	OTLosses     *int    `json:"ot_losses" validate:"omitempty,gte=0"`
	GoalsFor     *int    `json:"goals_for" validate:"omitempty,gte=0"`
	GoalsAgainst *int    `json:"goals_against" validate:"omitempty,gte=0"`
	Points       *int    `json:"points"`
	Position     *int    `json:"position"`
}

// column is one SET assignment in column order.
type column struct {
	name  string
	value any
}

// columns lists the present fields in a fixed order.
func (p Patch) columns() []column {
	var cols []column
	if p.Name != nil {
		cols = append(cols, column{"name", *p.Name})
	}
	if p.LogoURL != nil {
		cols = append(cols, column{"logo_url", *p.LogoURL})
	}
	ints := []struct {
		name string
		v    *int
	}{
		{"games_played", p.GamesPlayed},
		{"wins", p.Wins},
		{"losses", p.Losses},
		{"ot_losses", p.OTLosses},
		{"goals_for", p.GoalsFor},
		{"goals_against", p.GoalsAgainst},
		{"points", p.Points},
		{"position", p.Position},
	}
	for _, f := range ints {
		if f.v != nil {
			cols = append(cols, column{f.name, *f.v})
		}
	}
	return cols
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return len(p.columns()) == 0
}

// Apply copies the present fields onto t.
func (p Patch) Apply(t *teams.Team) {
	set := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.LogoURL != nil {
		t.LogoURL = *p.LogoURL
	}
	set(&t.GamesPlayed, p.GamesPlayed)
	set(&t.Wins, p.Wins)
	set(&t.Losses, p.Losses)
	set(&t.OTLosses, p.OTLosses)
	set(&t.GoalsFor, p.GoalsFor)
	set(&t.GoalsAgainst, p.GoalsAgainst)
	set(&t.Points, p.Points)
	set(&t.Position, p.Position)
}

// PositionPatch changes only the position.
func PositionPatch(position int) Patch {
	return Patch{Position: &position}
}
