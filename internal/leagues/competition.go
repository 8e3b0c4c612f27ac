package leagues

import (
	dbgen "github.com/codr1/touchline/internal/db/generated"
)

const (
	CompetitionLeague   = "league"
	CompetitionCup      = "cup"
	CompetitionSuperCup = "super-cup"
	CompetitionACWPL    = "acwpl"
)

const (
	StageRegular   = "regular"
	StageGroup     = "group"
	StageSemiFinal = "semi-final"
	StageFinal     = "final"
)

// Competitions lists every competition in display order.
var Competitions = []string{CompetitionLeague, CompetitionCup, CompetitionSuperCup, CompetitionACWPL}

func ValidCompetition(competition string) bool {
	for _, c := range Competitions {
		if c == competition {
			return true
		}
	}
	return false
}

// HasStandings reports whether the competition keeps a table.
func HasStandings(competition string) bool {
	return competition == CompetitionLeague || competition == CompetitionACWPL
}

func IsKnockoutStage(stage string) bool {
	return stage == StageSemiFinal || stage == StageFinal
}

// IsPlayed reports whether a match has a final result. A tied knockout match
// only counts once both penalty scores are recorded.
func IsPlayed(m dbgen.Match) bool {
	if !m.HomeScore.Valid || !m.AwayScore.Valid {
		return false
	}
	if IsKnockoutStage(m.Stage) && m.HomeScore.Int64 == m.AwayScore.Int64 {
		return m.HomePenalties.Valid && m.AwayPenalties.Valid
	}
	return true
}

// KnockoutWinner returns the advancing team of a knockout match, or false while
// the match is unresolved.
func KnockoutWinner(m dbgen.Match) (int64, bool) {
	if !IsPlayed(m) {
		return 0, false
	}
	home, away := m.HomeScore.Int64, m.AwayScore.Int64
	if home == away {
		home, away = m.HomePenalties.Int64, m.AwayPenalties.Int64
	}
	switch {
	case home > away:
		return m.HomeTeamID, true
	case away > home:
		return m.AwayTeamID, true
	default:
		return 0, false
	}
}

// ExpectedFixtures is the full fixture count for a competition once every
// round has been scheduled.
func ExpectedFixtures(competition string, teamCount int) int {
	switch competition {
	case CompetitionLeague:
		if teamCount < 2 {
			return 0
		}
		return teamCount * (teamCount - 1)
	case CompetitionCup:
		return 3
	case CompetitionSuperCup:
		return 1
	case CompetitionACWPL:
		return ACWPLFixtureCount
	default:
		return 0
	}
}
