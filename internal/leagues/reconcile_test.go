package leagues

import (
	"context"
	"testing"

	dbgen "github.com/codr1/touchline/internal/db/generated"
	"github.com/codr1/touchline/internal/testutil"
)

func TestApplyCupProgression(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	q := database.Queries

	var ids []int64
	for _, name := range []string{"Rovers", "Athletic", "United", "Wanderers"} {
		team, err := q.CreateTeam(ctx, dbgen.CreateTeamParams{Name: name, Competition: CompetitionLeague})
		if err != nil {
			t.Fatalf("create team: %v", err)
		}
		ids = append(ids, team.ID)
	}

	semis, err := GenerateCupSemiFinals(ids)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	created, err := CreateFixtures(ctx, q, semis)
	if err != nil {
		t.Fatalf("create fixtures: %v", err)
	}
	if created[0].IsPublished || created[0].Matchweek.Valid {
		t.Fatalf("expected unpublished cup fixture without matchweek, got %+v", created[0])
	}

	setResult := func(id, home, away int64) {
		t.Helper()
		if _, err := q.UpdateMatchResult(ctx, dbgen.UpdateMatchResultParams{HomeScore: score(home), AwayScore: score(away), ID: id}); err != nil {
			t.Fatalf("update result: %v", err)
		}
	}

	setResult(created[0].ID, 2, 0)
	setResult(created[1].ID, 0, 1)
	if err := Reconcile(ctx, q, CompetitionCup); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	matches, err := q.ListMatchesByCompetition(ctx, CompetitionCup)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("expected final to be created, got %d cup matches", len(matches))
	}
	final := matches[2]
	if final.Stage != StageFinal || final.HomeTeamID != ids[0] || final.AwayTeamID != ids[3] {
		t.Fatalf("unexpected final %+v", final)
	}

	// Running again leaves the final alone.
	if err := Reconcile(ctx, q, CompetitionCup); err != nil {
		t.Fatalf("second reconcile: %v", err)
	}
	if matches, _ = q.ListMatchesByCompetition(ctx, CompetitionCup); len(matches) != 3 {
		t.Fatalf("expected a single final, got %d cup matches", len(matches))
	}

	if _, err := q.ClearMatchResult(ctx, created[1].ID); err != nil {
		t.Fatalf("clear result: %v", err)
	}
	plan, err := ApplyCupProgression(ctx, q)
	if err != nil {
		t.Fatalf("progression: %v", err)
	}
	if plan.Action != FinalDelete {
		t.Fatalf("expected unplayed final to be removed, got %v", plan.Action)
	}
	if matches, _ = q.ListMatchesByCompetition(ctx, CompetitionCup); len(matches) != 2 {
		t.Fatalf("expected only semi-finals left, got %d", len(matches))
	}
}

func TestApplyCupProgressionKeepsScoredFinal(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	q := database.Queries

	var ids []int64
	for _, name := range []string{"Rovers", "Athletic", "United", "Wanderers"} {
		team, err := q.CreateTeam(ctx, dbgen.CreateTeamParams{Name: name, Competition: CompetitionLeague})
		if err != nil {
			t.Fatalf("create team: %v", err)
		}
		ids = append(ids, team.ID)
	}
	semis, err := GenerateCupSemiFinals(ids)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	created, err := CreateFixtures(ctx, q, semis)
	if err != nil {
		t.Fatalf("create fixtures: %v", err)
	}

	setResult := func(id, home, away int64) {
		t.Helper()
		if _, err := q.UpdateMatchResult(ctx, dbgen.UpdateMatchResultParams{HomeScore: score(home), AwayScore: score(away), ID: id}); err != nil {
			t.Fatalf("update result: %v", err)
		}
	}

	setResult(created[0].ID, 1, 0)
	setResult(created[1].ID, 0, 2)
	if err := Reconcile(ctx, q, CompetitionCup); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	matches, err := q.ListMatchesByCompetition(ctx, CompetitionCup)
	if err != nil || len(matches) != 3 {
		t.Fatalf("expected final to be created, got %d %v", len(matches), err)
	}
	finalID := matches[2].ID
	setResult(finalID, 1, 1)

	// The first semi now goes the other way; the tied final keeps its teams and score.
	setResult(created[0].ID, 0, 1)
	plan, err := ApplyCupProgression(ctx, q)
	if err != nil {
		t.Fatalf("progression: %v", err)
	}
	if plan.Action != FinalNoop || !plan.Stale {
		t.Fatalf("expected scored final to be flagged stale, got %+v", plan)
	}
	final, err := q.GetMatch(ctx, finalID)
	if err != nil {
		t.Fatalf("get final: %v", err)
	}
	if final.HomeTeamID != ids[0] || final.AwayTeamID != ids[3] {
		t.Fatalf("expected final teams to be kept, got %d v %d", final.HomeTeamID, final.AwayTeamID)
	}
	if final.HomeScore.Int64 != 1 || final.AwayScore.Int64 != 1 {
		t.Fatalf("expected final score to be kept, got %+v", final)
	}

	if _, err := q.ClearMatchResult(ctx, created[1].ID); err != nil {
		t.Fatalf("clear result: %v", err)
	}
	if _, err := ApplyCupProgression(ctx, q); err != nil {
		t.Fatalf("progression: %v", err)
	}
	if _, err := q.GetMatch(ctx, finalID); err != nil {
		t.Fatalf("expected scored final to survive a reopened semi: %v", err)
	}
}
