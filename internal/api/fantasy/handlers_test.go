package fantasy

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/codr1/touchline/internal/config"
	appdb "github.com/codr1/touchline/internal/db"
	dbgen "github.com/codr1/touchline/internal/db/generated"
	"github.com/codr1/touchline/internal/leagues"
	"github.com/codr1/touchline/internal/testutil"
)

func setupFantasyTest(t *testing.T) *appdb.DB {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	prevQueries, prevDB, prevBudget, prevSize := queries, database, budget, squadSize
	t.Cleanup(func() {
		queries, database, budget, squadSize = prevQueries, prevDB, prevBudget, prevSize
	})

	cfg := &config.Config{}
	cfg.Fantasy.Budget = 20
	cfg.Fantasy.SquadSize = 2
	InitHandlers(testDB, cfg)
	return testDB
}

func createPlayer(t *testing.T, q *dbgen.Queries, teamID int64, name, position string, price float64) dbgen.Player {
	t.Helper()
	player, err := q.CreatePlayer(context.Background(), dbgen.CreatePlayerParams{
		TeamID:       teamID,
		Name:         name,
		Position:     position,
		FantasyPrice: sql.NullFloat64{Float64: price, Valid: price > 0},
	})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	return player
}

func TestFantasyPoints(t *testing.T) {
	testDB := setupFantasyTest(t)
	ctx := context.Background()
	q := testDB.Queries

	home, _ := q.CreateTeam(ctx, dbgen.CreateTeamParams{Name: "Rovers", Competition: "league"})
	away, _ := q.CreateTeam(ctx, dbgen.CreateTeamParams{Name: "Athletic", Competition: "league"})
	keeper := createPlayer(t, q, home.ID, "Keeper", "GK", 5)
	striker := createPlayer(t, q, home.ID, "Striker", "ATT", 10)
	defender := createPlayer(t, q, away.ID, "Defender", "DF", 6)

	match, err := q.CreateMatch(ctx, dbgen.CreateMatchParams{
		Competition: leagues.CompetitionLeague,
		Stage:       leagues.StageRegular,
		Matchweek:   sql.NullInt64{Int64: 1, Valid: true},
		HomeTeamID:  home.ID,
		AwayTeamID:  away.ID,
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if _, err := q.UpdateMatchResult(ctx, dbgen.UpdateMatchResultParams{
		HomeScore: sql.NullInt64{Int64: 1, Valid: true},
		AwayScore: sql.NullInt64{Int64: 0, Valid: true},
		ID:        match.ID,
	}); err != nil {
		t.Fatalf("update result: %v", err)
	}
	lineup := fmt.Sprintf(`{"home":{"GK":[%d],"ATT":[%d]},"away":{"DF":[%d]}}`, keeper.ID, striker.ID, defender.ID)
	if _, err := q.UpdateMatchLineup(ctx, dbgen.UpdateMatchLineupParams{StartingLineup: sql.NullString{String: lineup, Valid: true}, ID: match.ID}); err != nil {
		t.Fatalf("update lineup: %v", err)
	}
	events := []dbgen.CreateMatchEventParams{
		{MatchID: match.ID, Sequence: 0, EventType: leagues.EventGoal, Side: "home", PlayerID: striker.ID},
		{MatchID: match.ID, Sequence: 1, EventType: leagues.EventCleanSheet, Side: "home", PlayerID: keeper.ID},
		{MatchID: match.ID, Sequence: 2, EventType: leagues.EventYellowCard, Side: "away", PlayerID: defender.ID},
	}
	for _, e := range events {
		if _, err := q.CreateMatchEvent(ctx, e); err != nil {
			t.Fatalf("create event: %v", err)
		}
	}

	tests := []struct {
		name   string
		target string
		want   int
		points map[int64]int
	}{
		{"matchweek one", "/api/v1/fantasy/points?matchweek=1", http.StatusOK, map[int64]int{keeper.ID: 6, striker.ID: 6, defender.ID: 1}},
		{"empty matchweek", "/api/v1/fantasy/points?matchweek=2", http.StatusOK, map[int64]int{keeper.ID: 0, striker.ID: 0, defender.ID: 0}},
		{"missing matchweek", "/api/v1/fantasy/points", http.StatusBadRequest, nil},
		{"invalid matchweek", "/api/v1/fantasy/points?matchweek=zero", http.StatusBadRequest, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleFantasyPoints(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
			if tt.points == nil {
				return
			}
			var points []leagues.FantasyPoints
			if err := json.Unmarshal(rec.Body.Bytes(), &points); err != nil {
				t.Fatalf("decode: %v", err)
			}
			for _, p := range points {
				if p.Points != tt.points[p.PlayerID] {
					t.Errorf("player %s: expected %d points, got %d", p.PlayerName, tt.points[p.PlayerID], p.Points)
				}
			}
		})
	}
}

func TestCreateAndGetFantasyUser(t *testing.T) {
	testDB := setupFantasyTest(t)
	ctx := context.Background()
	q := testDB.Queries

	team, _ := q.CreateTeam(ctx, dbgen.CreateTeamParams{Name: "Rovers", Competition: "league"})
	cheap := createPlayer(t, q, team.ID, "Cheap", "DF", 5)
	mid := createPlayer(t, q, team.ID, "Mid", "MF", 9)
	pricey := createPlayer(t, q, team.ID, "Pricey", "ATT", 15)
	unpriced := createPlayer(t, q, team.ID, "Unpriced", "GK", 0)

	body := func(email string, ids ...int64) string {
		raw, _ := json.Marshal(createUserRequest{Name: "Manager", Email: email, PlayerIDs: ids})
		return string(raw)
	}

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid squad", body("Fan@Example.com", cheap.ID, mid.ID), http.StatusCreated},
		{"duplicate email", body("fan@example.com", cheap.ID, mid.ID), http.StatusConflict},
		{"over budget", body("b@example.com", mid.ID, pricey.ID), http.StatusBadRequest},
		{"wrong size", body("c@example.com", cheap.ID), http.StatusBadRequest},
		{"repeated pick", body("d@example.com", cheap.ID, cheap.ID), http.StatusBadRequest},
		{"unpriced player", body("e@example.com", cheap.ID, unpriced.ID), http.StatusBadRequest},
		{"unknown player", body("f@example.com", cheap.ID, 999), http.StatusBadRequest},
		{"bad email", body("nope", cheap.ID, mid.ID), http.StatusBadRequest},
		{"missing name", `{"email":"g@example.com","playerIds":[1,2]}`, http.StatusBadRequest},
	}
	var createdID int64
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleCreateUser(rec, httptest.NewRequest(http.MethodPost, "/api/v1/fantasy/users", strings.NewReader(tt.body)))
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
			if rec.Code == http.StatusCreated {
				var resp userResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if resp.Email != "fan@example.com" || resp.SquadCost != 14 || len(resp.Squad) != 2 {
					t.Fatalf("unexpected user %+v", resp)
				}
				createdID = resp.ID
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/fantasy/users/"+strconv.FormatInt(createdID, 10), nil)
	req.SetPathValue("id", strconv.FormatInt(createdID, 10))
	rec := httptest.NewRecorder()
	HandleGetUser(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get user: %d %s", rec.Code, rec.Body.String())
	}
	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Squad) != 2 || resp.Budget != 20 {
		t.Fatalf("unexpected stored squad %+v", resp)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/fantasy/users/404", nil)
	req.SetPathValue("id", "404")
	rec = httptest.NewRecorder()
	HandleGetUser(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
