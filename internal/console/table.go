package console

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/preston-bernstein/vmhl-standings/internal/domain/teams"
)

const (
	emptyTable      = "The table is empty."
	emptyTableAdmin = " Add the first team."
)

// RenderTable writes the standings in the order given. Rank is the row index
// plus one; admin mode adds the team id used by edit, delete and move commands.
// The +/- column is goal difference.
func RenderTable(w io.Writer, items []teams.Team, admin bool) error {
	if len(items) == 0 {
		msg := emptyTable
		if admin {
			msg += emptyTableAdmin
		}
		_, err := fmt.Fprintln(w, msg)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if admin {
		fmt.Fprint(tw, "ID\t")
	}
	fmt.Fprintln(tw, "#\tTeam\tGP\tW\tL\tOTL\tGF\tGA\t+/-\tPts\t")
	for i, t := range items {
		if admin {
			fmt.Fprintf(tw, "%d\t", t.ID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%+d\t%d\t\n",
			i+1, displayName(t), t.GamesPlayed, t.Wins, t.Losses, t.OTLosses,
			t.GoalsFor, t.GoalsAgainst, t.GoalDifference(), t.Points)
	}
	return tw.Flush()
}

// displayName marks teams that carry a logo.
func displayName(t teams.Team) string {
	if t.LogoURL != "" {
		return t.Name + " *"
	}
	return t.Name
}
