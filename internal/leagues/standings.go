package leagues

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	dbgen "github.com/codr1/touchline/internal/db/generated"
)

const (
	PointsForWin  = 3
	PointsForDraw = 1
	// FormLength bounds the recent-results sequence.
	FormLength = 5
)

type TeamStanding struct {
	Position       int      `json:"position"`
	TeamID         int64    `json:"teamId"`
	TeamName       string   `json:"teamName"`
	Logo           string   `json:"logo"`
	Played         int64    `json:"played"`
	Won            int64    `json:"won"`
	Drawn          int64    `json:"drawn"`
	Lost           int64    `json:"lost"`
	GoalsFor       int64    `json:"goalsFor"`
	GoalsAgainst   int64    `json:"goalsAgainst"`
	GoalDifference int64    `json:"goalDifference"`
	Points         int64    `json:"points"`
	Form           []string `json:"form"`
}

// CountsTowardStandings reports whether a match feeds the league table.
func CountsTowardStandings(m dbgen.Match) bool {
	if !HasStandings(m.Competition) {
		return false
	}
	if m.Stage != StageRegular && m.Stage != StageGroup {
		return false
	}
	return IsPlayed(m)
}

// CalculateStandings derives the table from the match log alone. Matches that
// involve a team outside the given set are ignored.
func CalculateStandings(teams []dbgen.Team, matches []dbgen.Match) []TeamStanding {
	byID := make(map[int64]*TeamStanding, len(teams))
	ordered := make([]*TeamStanding, 0, len(teams))
	for _, team := range teams {
		entry := &TeamStanding{
			TeamID:   team.ID,
			TeamName: team.Name,
			Logo:     team.Logo,
			Form:     []string{},
		}
		byID[team.ID] = entry
		ordered = append(ordered, entry)
	}

	played := make([]dbgen.Match, 0, len(matches))
	for _, m := range matches {
		if CountsTowardStandings(m) {
			played = append(played, m)
		}
	}
	sortChronologically(played)

	// Walk newest first so form fills in display order.
	for i := len(played) - 1; i >= 0; i-- {
		m := played[i]
		home, okHome := byID[m.HomeTeamID]
		away, okAway := byID[m.AwayTeamID]
		if !okHome || !okAway {
			continue
		}
		applyResult(home, m.HomeScore.Int64, m.AwayScore.Int64)
		applyResult(away, m.AwayScore.Int64, m.HomeScore.Int64)
	}

	standings := make([]TeamStanding, 0, len(ordered))
	for _, entry := range ordered {
		standings = append(standings, *entry)
	}
	rankStandings(standings)
	return standings
}

func applyResult(entry *TeamStanding, scored, conceded int64) {
	entry.Played++
	entry.GoalsFor += scored
	entry.GoalsAgainst += conceded
	entry.GoalDifference = entry.GoalsFor - entry.GoalsAgainst

	var result string
	switch {
	case scored > conceded:
		entry.Won++
		result = "W"
	case scored < conceded:
		entry.Lost++
		result = "L"
	default:
		entry.Drawn++
		result = "D"
	}
	entry.Points = PointsForWin*entry.Won + PointsForDraw*entry.Drawn
	if len(entry.Form) < FormLength {
		entry.Form = append(entry.Form, result)
	}
}

// sortChronologically orders matches by matchweek, then date, time and id.
func sortChronologically(matches []dbgen.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Matchweek.Int64 != b.Matchweek.Int64 {
			return a.Matchweek.Int64 < b.Matchweek.Int64
		}
		if a.MatchDate != b.MatchDate {
			return a.MatchDate < b.MatchDate
		}
		if a.MatchTime != b.MatchTime {
			return a.MatchTime < b.MatchTime
		}
		return a.ID < b.ID
	})
}

// ReplayStandings recomputes the table for a competition from its matches and
// overwrites every team aggregate. Running it twice on the same match log
// writes the same numbers. Competitions without a table are a no-op.
func ReplayStandings(ctx context.Context, q *dbgen.Queries, competition string) ([]TeamStanding, error) {
	if q == nil {
		return nil, errors.New("queries are required")
	}
	if !HasStandings(competition) {
		return nil, nil
	}

	teams, err := q.ListTeamsByCompetition(ctx, competition)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	matches, err := q.ListMatchesByCompetition(ctx, competition)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	standings := CalculateStandings(teams, matches)
	for _, entry := range standings {
		if err := q.UpdateTeamStats(ctx, dbgen.UpdateTeamStatsParams{
			Played:         entry.Played,
			Won:            entry.Won,
			Drawn:          entry.Drawn,
			Lost:           entry.Lost,
			GoalsFor:       entry.GoalsFor,
			GoalsAgainst:   entry.GoalsAgainst,
			GoalDifference: entry.GoalDifference,
			Points:         entry.Points,
			Form:           strings.Join(entry.Form, ""),
			ID:             entry.TeamID,
		}); err != nil {
			return nil, fmt.Errorf("update team %d: %w", entry.TeamID, err)
		}
	}
	return standings, nil
}

// StandingsFromTeams rebuilds the table from stored aggregates, using the
// same ordering as CalculateStandings.
func StandingsFromTeams(teams []dbgen.Team) []TeamStanding {
	standings := make([]TeamStanding, 0, len(teams))
	for _, team := range teams {
		form := []string{}
		for _, r := range team.Form {
			form = append(form, string(r))
		}
		standings = append(standings, TeamStanding{
			TeamID:         team.ID,
			TeamName:       team.Name,
			Logo:           team.Logo,
			Played:         team.Played,
			Won:            team.Won,
			Drawn:          team.Drawn,
			Lost:           team.Lost,
			GoalsFor:       team.GoalsFor,
			GoalsAgainst:   team.GoalsAgainst,
			GoalDifference: team.GoalDifference,
			Points:         team.Points,
			Form:           form,
		})
	}
	rankStandings(standings)
	return standings
}

// rankStandings orders by points, goal difference, goals scored and name, and
// assigns positions.
func rankStandings(standings []TeamStanding) {
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamName < b.TeamName
	})
	for i := range standings {
		standings[i].Position = i + 1
	}
}
