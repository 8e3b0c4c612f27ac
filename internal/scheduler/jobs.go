package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/touchline/internal/config"
	"github.com/codr1/touchline/internal/db"
	"github.com/codr1/touchline/internal/leagues"
)

const (
	StandingsReconcileJob = "standings_reconcile"
	PruneCodesJob         = "prune_verification_codes"

	jobTimeout = 2 * time.Minute
)

// reconciledCompetitions are replayed by the nightly job. Super-cup has no
// derived state to repair.
var reconciledCompetitions = []string{
	leagues.CompetitionLeague,
	leagues.CompetitionACWPL,
	leagues.CompetitionCup,
}

// RegisterJobs adds the league maintenance jobs with the configured schedules.
func RegisterJobs(svc *Service, database *db.DB, cfg config.JobsConfig) error {
	if database == nil {
		return fmt.Errorf("scheduler jobs require database")
	}

	if _, err := svc.AddJob(StandingsReconcileJob, cfg.StandingsReconcile, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		return ReconcileAll(ctx, database)
	}); err != nil {
		return fmt.Errorf("register %s: %w", StandingsReconcileJob, err)
	}

	if _, err := svc.AddJob(PruneCodesJob, cfg.PruneCodes, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		_, err := PruneVerificationCodes(ctx, database, time.Now().UTC())
		return err
	}); err != nil {
		return fmt.Errorf("register %s: %w", PruneCodesJob, err)
	}
	return nil
}

// ReconcileAll replays standings and cup progression for every competition
// with derived state. Each competition commits on its own so one failure does
// not hold back the rest.
func ReconcileAll(ctx context.Context, database *db.DB) error {
	jobLogger := log.With().Str("component", "standings_reconcile_job").Logger()

	var errs []error
	for _, competition := range reconciledCompetitions {
		err := database.RunInTx(ctx, func(txdb *db.DB) error {
			return leagues.Reconcile(ctx, txdb.Queries, competition)
		})
		if err != nil {
			jobLogger.Error().Err(err).Str("competition", competition).Msg("Failed to reconcile competition")
			errs = append(errs, fmt.Errorf("reconcile %s: %w", competition, err))
			continue
		}
		jobLogger.Debug().Str("competition", competition).Msg("Competition reconciled")
	}
	return errors.Join(errs...)
}

// PruneVerificationCodes removes codes that expired before now.
func PruneVerificationCodes(ctx context.Context, database *db.DB, now time.Time) (int64, error) {
	deleted, err := database.Queries.DeleteExpiredVerificationCodes(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("prune verification codes: %w", err)
	}
	if deleted > 0 {
		log.Info().Str("component", "prune_codes_job").Int64("deleted", deleted).Msg("Pruned expired verification codes")
	}
	return deleted, nil
}
