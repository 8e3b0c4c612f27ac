package leagues

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	dbgen "github.com/codr1/touchline/internal/db/generated"
)

// CreateFixtures stores generated fixtures as unplayed, unpublished matches.
func CreateFixtures(ctx context.Context, q *dbgen.Queries, fixtures []Fixture) ([]dbgen.Match, error) {
	created := make([]dbgen.Match, 0, len(fixtures))
	for _, f := range fixtures {
		params := dbgen.CreateMatchParams{
			Competition: f.Competition,
			Stage:       f.Stage,
			HomeTeamID:  f.HomeTeamID,
			AwayTeamID:  f.AwayTeamID,
		}
		if f.Matchweek > 0 {
			params.Matchweek = sql.NullInt64{Int64: int64(f.Matchweek), Valid: true}
		}
		if f.OriginalDoubleWinnerID > 0 {
			params.OriginalDoubleWinnerID = sql.NullInt64{Int64: f.OriginalDoubleWinnerID, Valid: true}
		}
		match, err := q.CreateMatch(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("create %s fixture %d v %d: %w", f.Competition, f.HomeTeamID, f.AwayTeamID, err)
		}
		created = append(created, match)
	}
	return created, nil
}

// ApplyCupProgression brings the cup final in line with the semi-final
// results. A newly created final is published when both semi-finals are.
func ApplyCupProgression(ctx context.Context, q *dbgen.Queries) (CupFinalPlan, error) {
	matches, err := q.ListMatchesByCompetition(ctx, CompetitionCup)
	if err != nil {
		return CupFinalPlan{}, fmt.Errorf("list cup matches: %w", err)
	}

	plan := PlanCupFinal(matches)
	switch plan.Action {
	case FinalCreate:
		published := true
		semis := 0
		for _, m := range matches {
			if m.Stage == StageSemiFinal {
				semis++
				published = published && m.IsPublished
			}
		}
		if _, err := q.CreateMatch(ctx, dbgen.CreateMatchParams{
			Competition: CompetitionCup,
			Stage:       StageFinal,
			HomeTeamID:  plan.Final.HomeTeamID,
			AwayTeamID:  plan.Final.AwayTeamID,
			IsPublished: published && semis > 0,
		}); err != nil {
			return plan, fmt.Errorf("create cup final: %w", err)
		}
	case FinalUpdateTeams:
		if _, err := q.UpdateMatchTeams(ctx, dbgen.UpdateMatchTeamsParams{
			HomeTeamID: plan.Final.HomeTeamID,
			AwayTeamID: plan.Final.AwayTeamID,
			ID:         plan.FinalID,
		}); err != nil {
			return plan, fmt.Errorf("update cup final: %w", err)
		}
	case FinalDelete:
		if _, err := q.DeleteMatch(ctx, plan.FinalID); err != nil {
			return plan, fmt.Errorf("delete cup final: %w", err)
		}
	}
	return plan, nil
}

// Reconcile re-derives everything that depends on a competition's results:
// the table for league and acwpl, the final for the cup.
func Reconcile(ctx context.Context, q *dbgen.Queries, competition string) error {
	if q == nil {
		return errors.New("queries are required")
	}
	switch {
	case HasStandings(competition):
		if _, err := ReplayStandings(ctx, q, competition); err != nil {
			return fmt.Errorf("replay %s standings: %w", competition, err)
		}
	case competition == CompetitionCup:
		if _, err := ApplyCupProgression(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
