package leagues

import (
	"database/sql"
	"errors"
	"testing"

	dbgen "github.com/codr1/touchline/internal/db/generated"
)

func score(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: true}
}

func cupMatch(id int64, stage string, home, away int64) dbgen.Match {
	return dbgen.Match{ID: id, Competition: CompetitionCup, Stage: stage, HomeTeamID: home, AwayTeamID: away}
}

func played(m dbgen.Match, home, away int64) dbgen.Match {
	m.HomeScore = score(home)
	m.AwayScore = score(away)
	return m
}

func withPenalties(m dbgen.Match, home, away int64) dbgen.Match {
	m.HomePenalties = score(home)
	m.AwayPenalties = score(away)
	return m
}

func TestGenerateCupSemiFinalsUsesSelectionOrder(t *testing.T) {
	fixtures, err := GenerateCupSemiFinals([]int64{4, 3, 2, 1})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(fixtures) != 2 {
		t.Fatalf("expected 2 semi-finals, got %d", len(fixtures))
	}
	if fixtures[0].HomeTeamID != 4 || fixtures[0].AwayTeamID != 3 {
		t.Fatalf("unexpected first semi %+v", fixtures[0])
	}
	if fixtures[1].HomeTeamID != 2 || fixtures[1].AwayTeamID != 1 {
		t.Fatalf("unexpected second semi %+v", fixtures[1])
	}
	for _, f := range fixtures {
		if f.Stage != StageSemiFinal || f.Competition != CompetitionCup {
			t.Fatalf("unexpected tags %q/%q", f.Competition, f.Stage)
		}
	}

	var verr *ValidationError
	if _, err := GenerateCupSemiFinals([]int64{1, 2, 3}); !errors.As(err, &verr) {
		t.Fatalf("expected validation error for three teams, got %v", err)
	}
	if _, err := GenerateCupSemiFinals([]int64{1, 2, 3, 3}); !errors.As(err, &verr) {
		t.Fatalf("expected validation error for duplicate team, got %v", err)
	}
}

func TestKnockoutTieNeedsPenalties(t *testing.T) {
	m := played(cupMatch(1, StageSemiFinal, 1, 2), 1, 1)
	if IsPlayed(m) {
		t.Fatalf("tied knockout without penalties must not be played")
	}
	if _, ok := KnockoutWinner(m); ok {
		t.Fatalf("expected no winner without penalties")
	}

	m = withPenalties(m, 3, 4)
	if !IsPlayed(m) {
		t.Fatalf("expected tied knockout with penalties to be played")
	}
	if winner, ok := KnockoutWinner(m); !ok || winner != 2 {
		t.Fatalf("expected away side to win on penalties, got %d %v", winner, ok)
	}

	league := dbgen.Match{Competition: CompetitionLeague, Stage: StageRegular, HomeScore: score(0), AwayScore: score(0)}
	if !IsPlayed(league) {
		t.Fatalf("a drawn league match is played")
	}
}

func TestPlanCupFinal(t *testing.T) {
	semi1 := cupMatch(1, StageSemiFinal, 1, 2)
	semi2 := cupMatch(2, StageSemiFinal, 3, 4)

	plan := PlanCupFinal([]dbgen.Match{semi1, semi2})
	if plan.Action != FinalNoop {
		t.Fatalf("expected no final before semis are played, got %v", plan.Action)
	}

	plan = PlanCupFinal([]dbgen.Match{played(semi1, 2, 0), played(semi2, 0, 0)})
	if plan.Action != FinalNoop {
		t.Fatalf("expected no final while a semi is unresolved, got %v", plan.Action)
	}

	resolved := []dbgen.Match{played(semi1, 2, 0), withPenalties(played(semi2, 0, 0), 5, 4)}
	plan = PlanCupFinal(resolved)
	if plan.Action != FinalCreate {
		t.Fatalf("expected final creation, got %v", plan.Action)
	}
	if plan.Final.HomeTeamID != 1 || plan.Final.AwayTeamID != 3 || plan.Final.Stage != StageFinal {
		t.Fatalf("unexpected final %+v", plan.Final)
	}

	final := cupMatch(3, StageFinal, 1, 3)
	plan = PlanCupFinal(append(resolved, final))
	if plan.Action != FinalNoop || plan.Stale {
		t.Fatalf("expected matching final to be left alone, got %+v", plan)
	}

	corrected := []dbgen.Match{played(semi1, 0, 1), resolved[1], final}
	plan = PlanCupFinal(corrected)
	if plan.Action != FinalUpdateTeams || plan.FinalID != 3 || plan.Final.HomeTeamID != 2 {
		t.Fatalf("expected final teams to follow corrected semi, got %+v", plan)
	}

	reopened := []dbgen.Match{semi1, resolved[1], final}
	plan = PlanCupFinal(reopened)
	if plan.Action != FinalDelete || plan.FinalID != 3 {
		t.Fatalf("expected unplayed final to be removed, got %+v", plan)
	}

	playedFinal := played(final, 1, 0)
	plan = PlanCupFinal([]dbgen.Match{played(semi1, 0, 1), resolved[1], playedFinal})
	if plan.Action != FinalNoop || !plan.Stale {
		t.Fatalf("expected played final to be flagged stale, got %+v", plan)
	}

	// A tied final waiting for penalties already carries a result.
	pendingFinal := played(final, 1, 1)
	plan = PlanCupFinal([]dbgen.Match{played(semi1, 0, 1), resolved[1], pendingFinal})
	if plan.Action != FinalNoop || !plan.Stale {
		t.Fatalf("expected scored final to be kept when teams change, got %+v", plan)
	}
	plan = PlanCupFinal([]dbgen.Match{semi1, resolved[1], pendingFinal})
	if plan.Action != FinalNoop || !plan.Stale {
		t.Fatalf("expected scored final to be kept when a semi reopens, got %+v", plan)
	}
}

func TestCupProducesThreeFixtures(t *testing.T) {
	semis, err := GenerateCupSemiFinals([]int64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	matches := []dbgen.Match{
		played(cupMatch(1, semis[0].Stage, semis[0].HomeTeamID, semis[0].AwayTeamID), 1, 0),
		played(cupMatch(2, semis[1].Stage, semis[1].HomeTeamID, semis[1].AwayTeamID), 0, 2),
	}
	plan := PlanCupFinal(matches)
	if plan.Action != FinalCreate {
		t.Fatalf("expected final, got %v", plan.Action)
	}
	if total := len(semis) + 1; total != ExpectedFixtures(CompetitionCup, 4) {
		t.Fatalf("expected %d cup fixtures, got %d", ExpectedFixtures(CompetitionCup, 4), total)
	}
}

func TestResolveSuperCup(t *testing.T) {
	fixture, err := ResolveSuperCup(SuperCupRequest{LeagueWinnerID: 1, CupWinnerID: 2})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if fixture.HomeTeamID != 1 || fixture.AwayTeamID != 2 || fixture.OriginalDoubleWinnerID != 0 {
		t.Fatalf("unexpected fixture %+v", fixture)
	}
	if fixture.Competition != CompetitionSuperCup || fixture.Stage != StageFinal {
		t.Fatalf("unexpected tags %q/%q", fixture.Competition, fixture.Stage)
	}

	fixture, err = ResolveSuperCup(SuperCupRequest{LeagueWinnerID: 1, CupWinnerID: 1, RunnerUpID: 5})
	if err != nil {
		t.Fatalf("resolve double winner: %v", err)
	}
	if fixture.HomeTeamID != 1 || fixture.AwayTeamID != 5 || fixture.OriginalDoubleWinnerID != 1 {
		t.Fatalf("unexpected double winner fixture %+v", fixture)
	}

	fixture, err = ResolveSuperCup(SuperCupRequest{LeagueWinnerID: 1, CupWinnerID: 2, OriginalDoubleWinnerID: 1})
	if err != nil {
		t.Fatalf("resolve substituted runner up: %v", err)
	}
	if fixture.HomeTeamID != 1 || fixture.AwayTeamID != 2 || fixture.OriginalDoubleWinnerID != 1 {
		t.Fatalf("unexpected substituted runner up fixture %+v", fixture)
	}

	tests := []struct {
		name  string
		req   SuperCupRequest
		field string
	}{
		{"missing league winner", SuperCupRequest{CupWinnerID: 2}, "leagueWinnerId"},
		{"missing cup winner", SuperCupRequest{LeagueWinnerID: 2}, "cupWinnerId"},
		{"double winner without runner up", SuperCupRequest{LeagueWinnerID: 1, CupWinnerID: 1}, "runnerUpId"},
		{"runner up equals winner", SuperCupRequest{LeagueWinnerID: 1, CupWinnerID: 1, RunnerUpID: 1}, "runnerUpId"},
		{"marker mismatch", SuperCupRequest{LeagueWinnerID: 1, CupWinnerID: 1, RunnerUpID: 2, OriginalDoubleWinnerID: 3}, "originalDoubleWinnerId"},
		{"marker on away side", SuperCupRequest{LeagueWinnerID: 1, CupWinnerID: 2, OriginalDoubleWinnerID: 2}, "originalDoubleWinnerId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveSuperCup(tt.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Field != tt.field {
				t.Fatalf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}
}
