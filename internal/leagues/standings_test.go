package leagues

import (
	"context"
	"database/sql"
	"reflect"
	"testing"

	dbgen "github.com/codr1/touchline/internal/db/generated"
	"github.com/codr1/touchline/internal/testutil"
)

func weekMatch(id, week, home, away int64) dbgen.Match {
	return dbgen.Match{
		ID:          id,
		Competition: CompetitionLeague,
		Stage:       StageRegular,
		Matchweek:   score(week),
		HomeTeamID:  home,
		AwayTeamID:  away,
	}
}

func sampleTeams() []dbgen.Team {
	return []dbgen.Team{
		{ID: 1, Name: "Rovers", Competition: CompetitionLeague},
		{ID: 2, Name: "Athletic", Competition: CompetitionLeague},
		{ID: 3, Name: "United", Competition: CompetitionLeague},
		{ID: 4, Name: "Wanderers", Competition: CompetitionLeague},
	}
}

func TestCalculateStandings(t *testing.T) {
	matches := []dbgen.Match{
		played(weekMatch(1, 1, 1, 2), 2, 0),
		played(weekMatch(2, 1, 3, 4), 1, 1),
		played(weekMatch(3, 2, 2, 3), 3, 1),
		played(weekMatch(4, 2, 4, 1), 0, 1),
		weekMatch(5, 3, 1, 3),
		played(dbgen.Match{ID: 6, Competition: CompetitionCup, Stage: StageFinal, HomeTeamID: 1, AwayTeamID: 2}, 0, 5),
	}

	standings := CalculateStandings(sampleTeams(), matches)
	if len(standings) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(standings))
	}

	top := standings[0]
	if top.TeamID != 1 || top.Points != 6 || top.Won != 2 || top.GoalsFor != 3 || top.GoalsAgainst != 0 {
		t.Fatalf("unexpected leader %+v", top)
	}
	if !reflect.DeepEqual(top.Form, []string{"W", "W"}) {
		t.Fatalf("unexpected leader form %v", top.Form)
	}

	athletic := standings[1]
	if athletic.TeamID != 2 || athletic.Points != 3 || athletic.GoalDifference != 0 {
		t.Fatalf("unexpected second place %+v", athletic)
	}
	if !reflect.DeepEqual(athletic.Form, []string{"W", "L"}) {
		t.Fatalf("expected most recent result first, got %v", athletic.Form)
	}

	for i, row := range standings {
		if row.Position != i+1 {
			t.Fatalf("row %d has position %d", i, row.Position)
		}
		if row.GoalDifference != row.GoalsFor-row.GoalsAgainst {
			t.Fatalf("goal difference mismatch for %s", row.TeamName)
		}
		if row.Points != 3*row.Won+row.Drawn {
			t.Fatalf("points mismatch for %s", row.TeamName)
		}
		if row.Played != row.Won+row.Drawn+row.Lost {
			t.Fatalf("played mismatch for %s", row.TeamName)
		}
	}
}

func TestCalculateStandingsTieBreakers(t *testing.T) {
	teams := []dbgen.Team{
		{ID: 1, Name: "Beta"},
		{ID: 2, Name: "Alpha"},
		{ID: 3, Name: "Gamma"},
		{ID: 4, Name: "Delta"},
	}
	matches := []dbgen.Match{
		played(weekMatch(1, 1, 1, 3), 3, 0),
		played(weekMatch(2, 1, 2, 4), 2, 0),
	}
	standings := CalculateStandings(teams, matches)
	if standings[0].TeamID != 1 || standings[1].TeamID != 2 {
		t.Fatalf("expected goal difference to break the tie, got %d then %d", standings[0].TeamID, standings[1].TeamID)
	}

	standings = CalculateStandings(teams, nil)
	names := []string{standings[0].TeamName, standings[1].TeamName, standings[2].TeamName, standings[3].TeamName}
	if !reflect.DeepEqual(names, []string{"Alpha", "Beta", "Delta", "Gamma"}) {
		t.Fatalf("expected alphabetical order without results, got %v", names)
	}
}

func TestCalculateStandingsFormIsBounded(t *testing.T) {
	var matches []dbgen.Match
	for week := int64(1); week <= 7; week++ {
		m := played(weekMatch(week, week, 1, 2), 1, 0)
		if week == 7 {
			m = played(weekMatch(week, week, 1, 2), 0, 0)
		}
		matches = append(matches, m)
	}
	standings := CalculateStandings(sampleTeams()[:2], matches)
	if len(standings[0].Form) != FormLength {
		t.Fatalf("expected form length %d, got %d", FormLength, len(standings[0].Form))
	}
	if standings[0].Form[0] != "D" {
		t.Fatalf("expected latest draw first, got %v", standings[0].Form)
	}
	if standings[0].Played != 7 {
		t.Fatalf("expected all matches counted, got %d", standings[0].Played)
	}
}

func TestReplayStandingsIsIdempotent(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	q := database.Queries

	var ids []int64
	for _, name := range []string{"Rovers", "Athletic"} {
		team, err := q.CreateTeam(ctx, dbgen.CreateTeamParams{Name: name, Competition: CompetitionLeague})
		if err != nil {
			t.Fatalf("create team: %v", err)
		}
		ids = append(ids, team.ID)
	}

	match, err := q.CreateMatch(ctx, dbgen.CreateMatchParams{
		Competition: CompetitionLeague,
		Stage:       StageRegular,
		Matchweek:   sql.NullInt64{Int64: 1, Valid: true},
		HomeTeamID:  ids[0],
		AwayTeamID:  ids[1],
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if _, err := q.UpdateMatchResult(ctx, dbgen.UpdateMatchResultParams{
		HomeScore: score(3),
		AwayScore: score(1),
		ID:        match.ID,
	}); err != nil {
		t.Fatalf("update result: %v", err)
	}

	first, err := ReplayStandings(ctx, q, CompetitionLeague)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	second, err := ReplayStandings(ctx, q, CompetitionLeague)
	if err != nil {
		t.Fatalf("second replay: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("replay is not idempotent:\n%+v\n%+v", first, second)
	}

	stored, err := q.GetTeam(ctx, ids[0])
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if stored.Points != 3 || stored.GoalsFor != 3 || stored.GoalDifference != 2 || stored.Form != "W" {
		t.Fatalf("unexpected stored aggregate %+v", stored)
	}

	// Correcting the score must re-derive rather than add.
	if _, err := q.UpdateMatchResult(ctx, dbgen.UpdateMatchResultParams{
		HomeScore: score(0),
		AwayScore: score(2),
		ID:        match.ID,
	}); err != nil {
		t.Fatalf("correct result: %v", err)
	}
	if _, err := ReplayStandings(ctx, q, CompetitionLeague); err != nil {
		t.Fatalf("replay after correction: %v", err)
	}
	stored, err = q.GetTeam(ctx, ids[0])
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if stored.Played != 1 || stored.Points != 0 || stored.Lost != 1 || stored.Form != "L" {
		t.Fatalf("expected corrected aggregate, got %+v", stored)
	}

	fromTeams, err := q.ListTeamsByCompetition(ctx, CompetitionLeague)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	table := StandingsFromTeams(fromTeams)
	if table[0].TeamID != ids[1] || table[0].Points != 3 {
		t.Fatalf("expected Athletic top from stored aggregates, got %+v", table[0])
	}
}
