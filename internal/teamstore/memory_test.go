package teamstore

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/vmhl-standings/internal/domain/teams"
)

func TestSeededRepositoryListsByPosition(t *testing.T) {
	r := NewSeededMemoryRepository()
	got, err := r.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != len(SeedTeams()) {
		t.Fatalf("expected %d teams, got %d", len(SeedTeams()), len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Position > got[i].Position {
			t.Fatalf("teams not ordered by position: %+v", got)
		}
	}
}

func TestMemoryInsertAssignsIDAndPosition(t *testing.T) {
	r := NewSeededMemoryRepository()
	ctx := context.Background()

	pos, _ := r.NextPosition(ctx)
	created, err := r.Insert(ctx, teams.Draft{Name: "Lake Hawks"}, pos)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if created.ID != 5 || created.Position != 5 {
		t.Fatalf("unexpected created team %+v", created)
	}
	got, _ := r.List(ctx)
	if got[len(got)-1].ID != created.ID {
		t.Fatalf("expected new team last, got %+v", got)
	}
}

func TestMemoryUpdateAppliesOnlyPresentFields(t *testing.T) {
	r := NewSeededMemoryRepository()
	ctx := context.Background()
	points := 99

	updated, err := r.Update(ctx, 2, Patch{Points: &points})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Points != 99 || updated.Name != "Harbor Kings" || updated.Wins != 7 {
		t.Fatalf("unexpected update result %+v", updated)
	}
	if _, err := r.Update(ctx, 2, Patch{}); !errors.Is(err, ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}
	if _, err := r.Update(ctx, 42, Patch{Points: &points}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryDelete(t *testing.T) {
	r := NewSeededMemoryRepository()
	ctx := context.Background()

	if err := r.Delete(ctx, 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := r.Get(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted team to be gone, got %v", err)
	}
	if err := r.Delete(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMemoryEmptyNextPosition(t *testing.T) {
	r := NewMemoryRepository()
	if pos, _ := r.NextPosition(context.Background()); pos != 1 {
		t.Fatalf("expected first position 1, got %d", pos)
	}
	if err := r.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}

func TestPatchColumnsAndApply(t *testing.T) {
	name, wins, pos := "Renamed", 3, 7
	p := Patch{Name: &name, Wins: &wins, Position: &pos}

	cols := p.columns()
	if len(cols) != 3 || cols[0].name != "name" || cols[1].name != "wins" || cols[2].name != "position" {
		t.Fatalf("unexpected columns %+v", cols)
	}
	team := teams.Team{ID: 1, Name: "Old", Wins: 1, Losses: 4, Position: 2}
	p.Apply(&team)
	if team.Name != "Renamed" || team.Wins != 3 || team.Losses != 4 || team.Position != 7 {
		t.Fatalf("unexpected patched team %+v", team)
	}
	if !(Patch{}).IsEmpty() || p.IsEmpty() {
		t.Fatalf("unexpected IsEmpty results")
	}
}

func TestLockManagerRunsFn(t *testing.T) {
	var m LockManager
	called := false
	err := m.Do(context.Background(), func(context.Context) error {
		called = true
		return errors.New("boom")
	})
	if !called || err == nil {
		t.Fatalf("expected fn to run and its error returned")
	}
}
