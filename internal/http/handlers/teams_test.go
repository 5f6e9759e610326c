package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/preston-bernstein/vmhl-standings/internal/domain/teams"
	"github.com/preston-bernstein/vmhl-standings/internal/teamstore"
	"github.com/preston-bernstein/vmhl-standings/internal/testutil"
)

func newTeamsHandler(t *testing.T) (*TeamsHandler, *teamstore.MemoryRepository) {
	t.Helper()
	repo := teamstore.NewSeededMemoryRepository()
	svc := teamstore.NewService(&teamstore.LockManager{}, repo, nil, nil)
	logger, _ := testutil.NewBufferLogger()
	return NewTeamsHandler(svc, logger), repo
}

func TestTeamsListOrdersByPosition(t *testing.T) {
	h, _ := newTeamsHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.List), http.MethodGet, "/teams", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var got []teams.Team
	testutil.DecodeJSON(t, rr, &got)
	if len(got) != 4 {
		t.Fatalf("expected 4 seeded teams, got %d", len(got))
	}
	for i, team := range got {
		if team.Position != i+1 {
			t.Fatalf("expected position %d at index %d, got %d", i+1, i, team.Position)
		}
	}
}

func TestTeamsListEmptyIsArray(t *testing.T) {
	svc := teamstore.NewService(&teamstore.LockManager{}, teamstore.NewMemoryRepository(), nil, nil)
	h := NewTeamsHandler(svc, nil)

	rr := testutil.Serve(http.HandlerFunc(h.List), http.MethodGet, "/teams", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if body := strings.TrimSpace(rr.Body.String()); body != "[]" {
		t.Fatalf("expected empty array, got %s", body)
	}
}

func TestTeamsCreateAppendsAtBottom(t *testing.T) {
	h, _ := newTeamsHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.Create), http.MethodPost, "/teams",
		strings.NewReader(`{"name":"Polar Bears","logo_url":""}`))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	var created teams.Team
	testutil.DecodeJSON(t, rr, &created)
	if created.Name != "Polar Bears" || created.Position != 5 || created.ID == 0 {
		t.Fatalf("unexpected created team %+v", created)
	}
	if created.Points != 0 || created.GamesPlayed != 0 {
		t.Fatalf("expected zeroed counters, got %+v", created)
	}
}

func TestTeamsCreateRejectsInvalidBodies(t *testing.T) {
	h, _ := newTeamsHandler(t)

	cases := map[string]string{
		"malformed":    `{"name":`,
		"missing name": `{"logo_url":"x"}`,
		"too long":     `{"name":"` + strings.Repeat("a", 121) + `"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rr := testutil.Serve(http.HandlerFunc(h.Create), http.MethodPost, "/teams", strings.NewReader(body))
			testutil.AssertStatus(t, rr, http.StatusBadRequest)
		})
	}
}

func TestTeamsUpdateTouchesOnlyPresentFields(t *testing.T) {
	h, repo := newTeamsHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.Update), http.MethodPut, "/teams",
		strings.NewReader(`{"id":2,"position":9}`))
	testutil.AssertStatus(t, rr, http.StatusOK)

	got, err := repo.Get(context.Background(), 2)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Position != 9 || got.Name != "Harbor Kings" || got.Points != 15 {
		t.Fatalf("expected only position changed, got %+v", got)
	}
}

func TestTeamsUpdateFullTeam(t *testing.T) {
	h, _ := newTeamsHandler(t)

	body := `{"id":1,"name":"Alpha","logo_url":"","games_played":5,"wins":5,"losses":0,` +
		`"ot_losses":0,"goals_for":20,"goals_against":5,"points":10,"position":1}`
	rr := testutil.Serve(http.HandlerFunc(h.Update), http.MethodPut, "/teams", strings.NewReader(body))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var updated teams.Team
	testutil.DecodeJSON(t, rr, &updated)
	if updated.Name != "Alpha" || updated.Points != 10 || updated.GoalsFor != 20 {
		t.Fatalf("unexpected updated team %+v", updated)
	}
}

func TestTeamsUpdateErrors(t *testing.T) {
	h, _ := newTeamsHandler(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"no fields", `{"id":1}`, http.StatusBadRequest},
		{"missing id", `{"points":3}`, http.StatusBadRequest},
		{"negative wins", `{"id":1,"wins":-1}`, http.StatusBadRequest},
		{"unknown id", `{"id":99,"points":3}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := testutil.Serve(http.HandlerFunc(h.Update), http.MethodPut, "/teams", strings.NewReader(tc.body))
			testutil.AssertStatus(t, rr, tc.want)
		})
	}
}

func TestTeamsDelete(t *testing.T) {
	h, repo := newTeamsHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.Delete), http.MethodDelete, "/teams", strings.NewReader(`{"id":3}`))
	testutil.AssertStatus(t, rr, http.StatusOK)
	var body map[string]bool
	testutil.DecodeJSON(t, rr, &body)
	if !body["success"] {
		t.Fatalf("expected success true, got %v", body)
	}
	if _, err := repo.Get(context.Background(), 3); !errors.Is(err, teamstore.ErrNotFound) {
		t.Fatalf("expected team removed, got %v", err)
	}

	rr = testutil.Serve(http.HandlerFunc(h.Delete), http.MethodDelete, "/teams", strings.NewReader(`{"id":3}`))
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestTeamsSwap(t *testing.T) {
	h, repo := newTeamsHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.Swap), http.MethodPatch, "/teams",
		strings.NewReader(`{"first_id":1,"second_id":2}`))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var pair []teams.Team
	testutil.DecodeJSON(t, rr, &pair)
	if len(pair) != 2 || pair[0].ID != 1 || pair[0].Position != 2 || pair[1].ID != 2 || pair[1].Position != 1 {
		t.Fatalf("unexpected swap result %+v", pair)
	}
	list, _ := repo.List(context.Background())
	if list[0].ID != 2 || list[1].ID != 1 {
		t.Fatalf("expected swapped order, got %+v", list[:2])
	}

	rr = testutil.Serve(http.HandlerFunc(h.Swap), http.MethodPatch, "/teams",
		strings.NewReader(`{"first_id":1,"second_id":1}`))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

type failingService struct{ teamService }

func (failingService) List(context.Context) ([]teams.Team, error) {
	return nil, errors.New("connection reset")
}

func TestTeamsInternalErrorIsLogged(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	h := NewTeamsHandler(failingService{}, logger)

	rr := testutil.Serve(http.HandlerFunc(h.List), http.MethodGet, "/teams", nil)
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
	if !strings.Contains(buf.String(), "connection reset") {
		t.Fatalf("expected error logged, got %s", buf.String())
	}
}
