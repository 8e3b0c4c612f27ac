package players

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	appdb "github.com/codr1/touchline/internal/db"
	dbgen "github.com/codr1/touchline/internal/db/generated"
	"github.com/codr1/touchline/internal/testutil"
)

func setupPlayersTest(t *testing.T) (*appdb.DB, context.Context, []int64) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	prevQueries, prevDB := queries, database
	t.Cleanup(func() {
		queries, database = prevQueries, prevDB
	})
	InitHandlers(testDB)

	var teams []int64
	for _, name := range []string{"Rovers", "Athletic"} {
		team, err := testDB.Queries.CreateTeam(context.Background(), dbgen.CreateTeamParams{Name: name, Competition: "league"})
		if err != nil {
			t.Fatalf("create team: %v", err)
		}
		teams = append(teams, team.ID)
	}
	return testDB, testutil.AdminContext(t, testDB), teams
}

func call(t *testing.T, handler http.HandlerFunc, ctx context.Context, method, body string, id int64) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/api/v1/players", strings.NewReader(body)).WithContext(ctx)
	if id > 0 {
		req.SetPathValue("id", strconv.FormatInt(id, 10))
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodePlayer(t *testing.T, rec *httptest.ResponseRecorder) playerResponse {
	t.Helper()
	var resp playerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v: %s", err, rec.Body.String())
	}
	return resp
}

func TestCreatePlayerValidation(t *testing.T) {
	_, adminCtx, teams := setupPlayersTest(t)
	team := strconv.FormatInt(teams[0], 10)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"teamId":` + team + `,"name":"Keeper","number":1,"position":"gk","fantasyPrice":4.5}`, http.StatusCreated},
		{"missing name", `{"teamId":` + team + `,"position":"GK"}`, http.StatusBadRequest},
		{"bad position", `{"teamId":` + team + `,"name":"X","position":"WINGER"}`, http.StatusBadRequest},
		{"both armbands", `{"teamId":` + team + `,"name":"X","position":"MF","isCaptain":true,"isViceCaptain":true}`, http.StatusBadRequest},
		{"negative price", `{"teamId":` + team + `,"name":"X","position":"MF","fantasyPrice":-1}`, http.StatusBadRequest},
		{"unknown team", `{"teamId":999,"name":"X","position":"MF"}`, http.StatusBadRequest},
		{"unknown field", `{"teamId":` + team + `,"name":"X","position":"MF","salary":1}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, HandleCreatePlayer, adminCtx, http.MethodPost, tt.body, 0)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}

	rec := call(t, HandleCreatePlayer, context.Background(), http.MethodPost, `{"teamId":`+team+`,"name":"X","position":"MF"}`, 0)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous caller, got %d", rec.Code)
	}
}

func TestCaptainSwapNeedsConfirmation(t *testing.T) {
	testDB, adminCtx, teams := setupPlayersTest(t)
	team := strconv.FormatInt(teams[0], 10)

	rec := call(t, HandleCreatePlayer, adminCtx, http.MethodPost, `{"teamId":`+team+`,"name":"First","position":"DF","isCaptain":true}`, 0)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create captain: %d %s", rec.Code, rec.Body.String())
	}
	first := decodePlayer(t, rec)

	rec = call(t, HandleCreatePlayer, adminCtx, http.MethodPost, `{"teamId":`+team+`,"name":"Second","position":"MF","isViceCaptain":true}`, 0)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create vice-captain: %d %s", rec.Code, rec.Body.String())
	}
	second := decodePlayer(t, rec)

	body := `{"teamId":` + team + `,"name":"Second","position":"MF","isCaptain":true}`
	rec = call(t, HandleUpdatePlayer, adminCtx, http.MethodPut, body, second.ID)
	if rec.Code != http.StatusConflict || !strings.Contains(rec.Body.String(), "First is already captain") {
		t.Fatalf("expected swap conflict, got %d %s", rec.Code, rec.Body.String())
	}

	body = `{"teamId":` + team + `,"name":"Second","position":"MF","isCaptain":true,"confirmSwap":true}`
	rec = call(t, HandleUpdatePlayer, adminCtx, http.MethodPut, body, second.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirmed swap: %d %s", rec.Code, rec.Body.String())
	}
	promoted := decodePlayer(t, rec)
	if !promoted.IsCaptain || promoted.IsViceCaptain {
		t.Fatalf("expected promoted captain without vice flag, got %+v", promoted)
	}

	previous, err := testDB.Queries.GetPlayer(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if previous.IsCaptain {
		t.Fatalf("expected the previous captain to be cleared")
	}

	// The other team's armband is independent.
	other := strconv.FormatInt(teams[1], 10)
	rec = call(t, HandleCreatePlayer, adminCtx, http.MethodPost, `{"teamId":`+other+`,"name":"Third","position":"ATT","isCaptain":true}`, 0)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected captain on another team without conflict, got %d", rec.Code)
	}
}

func TestTransferAndDelete(t *testing.T) {
	testDB, adminCtx, teams := setupPlayersTest(t)
	ctx := context.Background()
	player, err := testDB.Queries.CreatePlayer(ctx, dbgen.CreatePlayerParams{TeamID: teams[0], Name: "Mover", Position: "MF", IsCaptain: true})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	rec := call(t, HandleTransferPlayer, adminCtx, http.MethodPost, `{"teamId":`+strconv.FormatInt(teams[1], 10)+`}`, player.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("transfer: %d %s", rec.Code, rec.Body.String())
	}
	moved := decodePlayer(t, rec)
	if moved.TeamID != teams[1] || moved.IsCaptain {
		t.Fatalf("expected player moved without armband, got %+v", moved)
	}

	rec = call(t, HandleTransferPlayer, adminCtx, http.MethodPost, `{"teamId":`+strconv.FormatInt(teams[1], 10)+`}`, player.ID)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for same team, got %d", rec.Code)
	}

	// A player with recorded events cannot be removed.
	match, err := testDB.Queries.CreateMatch(ctx, dbgen.CreateMatchParams{Competition: "league", Stage: "regular", HomeTeamID: teams[1], AwayTeamID: teams[0]})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if _, err := testDB.Queries.CreateMatchEvent(ctx, dbgen.CreateMatchEventParams{MatchID: match.ID, EventType: "YELLOW_CARD", Side: "home", PlayerID: player.ID}); err != nil {
		t.Fatalf("create event: %v", err)
	}
	rec = call(t, HandleDeletePlayer, adminCtx, http.MethodDelete, "", player.ID)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for player with events, got %d %s", rec.Code, rec.Body.String())
	}

	if err := testDB.Queries.DeleteMatchEvents(ctx, match.ID); err != nil {
		t.Fatalf("delete events: %v", err)
	}
	rec = call(t, HandleDeletePlayer, adminCtx, http.MethodDelete, "", player.ID)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d %s", rec.Code, rec.Body.String())
	}
	rec = call(t, HandleDeletePlayer, adminCtx, http.MethodDelete, "", player.ID)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for deleted player, got %d", rec.Code)
	}
}

func TestAvailability(t *testing.T) {
	testDB, adminCtx, teams := setupPlayersTest(t)
	player, err := testDB.Queries.CreatePlayer(context.Background(), dbgen.CreatePlayerParams{TeamID: teams[0], Name: "Doubt", Position: "DF"})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"matchweek":3,"chanceOfPlaying":50,"injuryDetails":"hamstring"}`, http.StatusOK},
		{"update same week", `{"matchweek":3,"chanceOfPlaying":75,"injuryDetails":"hamstring"}`, http.StatusOK},
		{"chance too high", `{"matchweek":3,"chanceOfPlaying":101}`, http.StatusBadRequest},
		{"missing matchweek", `{"chanceOfPlaying":50}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, HandleUpdateAvailability, adminCtx, http.MethodPut, tt.body, player.ID)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}

	rec := call(t, HandleGetPlayer, context.Background(), http.MethodGet, "", player.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("get player: %d", rec.Code)
	}
	resp := decodePlayer(t, rec)
	if len(resp.Availability) != 1 || resp.Availability[0].ChanceOfPlaying != 75 {
		t.Fatalf("expected a single upserted availability row, got %+v", resp.Availability)
	}

	rec = call(t, HandleListPlayers, context.Background(), http.MethodGet, "", 0)
	var list []playerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Fatalf("expected one player listed, got %d %v", len(list), err)
	}
}
