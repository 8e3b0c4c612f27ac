package leagues

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ACWPLFixtureCount is the length of the two-team ACWPL series.
const ACWPLFixtureCount = 5

var ErrOddTeamCount = errors.New("an even number of teams is required")

// Fixture is an unplayed match produced by one of the generators.
type Fixture struct {
	Competition            string
	Stage                  string
	Matchweek              int // 0 when the competition has no matchweeks
	HomeTeamID             int64
	AwayTeamID             int64
	OriginalDoubleWinnerID int64
}

// Shuffler reorders matches inside a matchweek. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// GenerateLeagueSchedule builds a double round robin with the circle method.
// The first half covers matchweeks 1..N-1 and the second half repeats it with
// home and away swapped. Only the order of matches inside a week is shuffled.
func GenerateLeagueSchedule(teamIDs []int64, shuffler Shuffler) ([]Fixture, error) {
	if len(teamIDs) < 2 {
		return nil, errors.New("at least two teams are required")
	}
	if len(teamIDs)%2 == 1 {
		return nil, fmt.Errorf("%w: got %d", ErrOddTeamCount, len(teamIDs))
	}
	if err := ensureDistinct(teamIDs); err != nil {
		return nil, err
	}
	if shuffler == nil {
		shuffler = globalShuffler{}
	}

	rounds := buildRoundRobinPairs(teamIDs)
	halfLength := len(rounds)

	fixtures := make([]Fixture, 0, 2*halfLength*len(teamIDs)/2)
	for idx, round := range rounds {
		first := make([]Fixture, 0, len(round))
		second := make([]Fixture, 0, len(round))
		for _, pair := range round {
			first = append(first, Fixture{
				Competition: CompetitionLeague,
				Stage:       StageRegular,
				Matchweek:   idx + 1,
				HomeTeamID:  pair.home,
				AwayTeamID:  pair.away,
			})
			second = append(second, Fixture{
				Competition: CompetitionLeague,
				Stage:       StageRegular,
				Matchweek:   idx + 1 + halfLength,
				HomeTeamID:  pair.away,
				AwayTeamID:  pair.home,
			})
		}
		shuffler.Shuffle(len(first), func(i, j int) { first[i], first[j] = first[j], first[i] })
		shuffler.Shuffle(len(second), func(i, j int) { second[i], second[j] = second[j], second[i] })
		fixtures = append(fixtures, first...)
		fixtures = append(fixtures, second...)
	}

	sortFixturesByMatchweek(fixtures)
	return fixtures, nil
}

type pairing struct {
	home int64
	away int64
}

// buildRoundRobinPairs returns N-1 rounds of N/2 pairings. The first team stays
// fixed while the others rotate one seat per round.
func buildRoundRobinPairs(teamIDs []int64) [][]pairing {
	working := append([]int64(nil), teamIDs...)
	n := len(working)
	rounds := make([][]pairing, 0, n-1)

	for round := 0; round < n-1; round++ {
		pairs := make([]pairing, 0, n/2)
		for i := 0; i < n/2; i++ {
			home := working[i]
			away := working[n-1-i]
			// Alternate the fixed team's venue so it is not at home all half.
			if i == 0 && round%2 == 1 {
				home, away = away, home
			}
			pairs = append(pairs, pairing{home: home, away: away})
		}
		rounds = append(rounds, pairs)
		rotateTeams(working)
	}
	return rounds
}

func rotateTeams(teams []int64) {
	if len(teams) <= 2 {
		return
	}
	last := teams[len(teams)-1]
	copy(teams[2:], teams[1:len(teams)-1])
	teams[1] = last
}

// sortFixturesByMatchweek is a stable insertion sort so the shuffled order
// inside each week survives.
func sortFixturesByMatchweek(fixtures []Fixture) {
	for i := 1; i < len(fixtures); i++ {
		for j := i; j > 0 && fixtures[j-1].Matchweek > fixtures[j].Matchweek; j-- {
			fixtures[j-1], fixtures[j] = fixtures[j], fixtures[j-1]
		}
	}
}

// GenerateACWPLSeries schedules the five-match series between the two ACWPL
// teams. The first team hosts the odd matchweeks.
func GenerateACWPLSeries(teamIDs []int64) ([]Fixture, error) {
	if len(teamIDs) != 2 {
		return nil, fmt.Errorf("exactly 2 ACWPL teams are required, got %d", len(teamIDs))
	}
	if err := ensureDistinct(teamIDs); err != nil {
		return nil, err
	}

	fixtures := make([]Fixture, 0, ACWPLFixtureCount)
	for week := 1; week <= ACWPLFixtureCount; week++ {
		home, away := teamIDs[0], teamIDs[1]
		if week%2 == 0 {
			home, away = away, home
		}
		fixtures = append(fixtures, Fixture{
			Competition: CompetitionACWPL,
			Stage:       StageRegular,
			Matchweek:   week,
			HomeTeamID:  home,
			AwayTeamID:  away,
		})
	}
	return fixtures, nil
}

func ensureDistinct(teamIDs []int64) error {
	seen := make(map[int64]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		if id <= 0 {
			return fmt.Errorf("invalid team id %d", id)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("team %d is listed more than once", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
