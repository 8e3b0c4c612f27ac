package leagues

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func teamIDs(n int) []int64 {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	return ids
}

func TestGenerateLeagueScheduleCoversEveryPairing(t *testing.T) {
	for _, n := range []int{2, 4, 6, 8, 10} {
		fixtures, err := GenerateLeagueSchedule(teamIDs(n), rand.New(rand.NewPCG(1, uint64(n))))
		if err != nil {
			t.Fatalf("n=%d: generate: %v", n, err)
		}

		if len(fixtures) != n*(n-1) {
			t.Fatalf("n=%d: expected %d fixtures, got %d", n, n*(n-1), len(fixtures))
		}

		weeks := 2 * (n - 1)
		perWeek := make(map[int]map[int64]int)
		ordered := make(map[[2]int64]int)
		for _, f := range fixtures {
			if f.Competition != CompetitionLeague || f.Stage != StageRegular {
				t.Fatalf("n=%d: unexpected tags %q/%q", n, f.Competition, f.Stage)
			}
			if f.Matchweek < 1 || f.Matchweek > weeks {
				t.Fatalf("n=%d: matchweek %d out of range", n, f.Matchweek)
			}
			if perWeek[f.Matchweek] == nil {
				perWeek[f.Matchweek] = make(map[int64]int)
			}
			perWeek[f.Matchweek][f.HomeTeamID]++
			perWeek[f.Matchweek][f.AwayTeamID]++
			ordered[[2]int64{f.HomeTeamID, f.AwayTeamID}]++
		}

		if len(perWeek) != weeks {
			t.Fatalf("n=%d: expected %d matchweeks, got %d", n, weeks, len(perWeek))
		}
		for week, appearances := range perWeek {
			if len(appearances) != n {
				t.Fatalf("n=%d week %d: expected every team to play, got %d teams", n, week, len(appearances))
			}
			for team, count := range appearances {
				if count != 1 {
					t.Fatalf("n=%d week %d: team %d plays %d times", n, week, team, count)
				}
			}
		}

		for _, home := range teamIDs(n) {
			for _, away := range teamIDs(n) {
				if home == away {
					continue
				}
				if ordered[[2]int64{home, away}] != 1 {
					t.Fatalf("n=%d: pairing %d v %d occurs %d times", n, home, away, ordered[[2]int64{home, away}])
				}
			}
		}
	}
}

func TestGenerateLeagueScheduleSixTeams(t *testing.T) {
	fixtures, err := GenerateLeagueSchedule(teamIDs(6), nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(fixtures) != 30 {
		t.Fatalf("expected 30 fixtures, got %d", len(fixtures))
	}

	weekCounts := make(map[int]int)
	home, away := 0, 0
	for _, f := range fixtures {
		weekCounts[f.Matchweek]++
		if f.HomeTeamID == 1 {
			home++
		}
		if f.AwayTeamID == 1 {
			away++
		}
	}
	for week := 1; week <= 10; week++ {
		if weekCounts[week] != 3 {
			t.Fatalf("expected 3 matches in week %d, got %d", week, weekCounts[week])
		}
	}
	if home != 5 || away != 5 {
		t.Fatalf("expected team 1 to play 5 home and 5 away, got %d/%d", home, away)
	}
}

func TestGenerateLeagueScheduleSecondHalfMirrorsFirst(t *testing.T) {
	fixtures, err := GenerateLeagueSchedule(teamIDs(4), nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	firstHalf := make(map[[2]int64]int)
	for _, f := range fixtures {
		if f.Matchweek <= 3 {
			firstHalf[[2]int64{f.HomeTeamID, f.AwayTeamID}] = f.Matchweek
		}
	}
	for _, f := range fixtures {
		if f.Matchweek <= 3 {
			continue
		}
		week, ok := firstHalf[[2]int64{f.AwayTeamID, f.HomeTeamID}]
		if !ok {
			t.Fatalf("second-half fixture %d v %d has no first-half mirror", f.HomeTeamID, f.AwayTeamID)
		}
		if f.Matchweek != week+3 {
			t.Fatalf("expected mirror of week %d in week %d, got %d", week, week+3, f.Matchweek)
		}
	}
}

func TestGenerateLeagueScheduleShuffleKeepsWeeks(t *testing.T) {
	base, err := GenerateLeagueSchedule(teamIDs(8), rand.New(rand.NewPCG(7, 7)))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	other, err := GenerateLeagueSchedule(teamIDs(8), rand.New(rand.NewPCG(99, 3)))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	weekOf := func(fixtures []Fixture) map[[2]int64]int {
		out := make(map[[2]int64]int)
		for _, f := range fixtures {
			out[[2]int64{f.HomeTeamID, f.AwayTeamID}] = f.Matchweek
		}
		return out
	}
	a, b := weekOf(base), weekOf(other)
	for pair, week := range a {
		if b[pair] != week {
			t.Fatalf("pairing %v moved from week %d to %d", pair, week, b[pair])
		}
	}
	for i := 1; i < len(base); i++ {
		if base[i].Matchweek < base[i-1].Matchweek {
			t.Fatalf("fixtures not grouped by matchweek at index %d", i)
		}
	}
}

func TestGenerateLeagueScheduleRejectsBadInput(t *testing.T) {
	if _, err := GenerateLeagueSchedule(teamIDs(5), nil); !errors.Is(err, ErrOddTeamCount) {
		t.Fatalf("expected ErrOddTeamCount, got %v", err)
	}
	if _, err := GenerateLeagueSchedule(teamIDs(1), nil); err == nil {
		t.Fatalf("expected error for a single team")
	}
	if _, err := GenerateLeagueSchedule([]int64{1, 2, 2, 3}, nil); err == nil {
		t.Fatalf("expected error for duplicate team")
	}
}

func TestGenerateACWPLSeries(t *testing.T) {
	fixtures, err := GenerateACWPLSeries([]int64{10, 20})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(fixtures) != ACWPLFixtureCount {
		t.Fatalf("expected %d fixtures, got %d", ACWPLFixtureCount, len(fixtures))
	}
	for i, f := range fixtures {
		week := i + 1
		if f.Matchweek != week || f.Competition != CompetitionACWPL {
			t.Fatalf("fixture %d: unexpected week %d competition %q", i, f.Matchweek, f.Competition)
		}
		wantHome := int64(10)
		if week%2 == 0 {
			wantHome = 20
		}
		if f.HomeTeamID != wantHome {
			t.Fatalf("week %d: expected home %d, got %d", week, wantHome, f.HomeTeamID)
		}
	}

	if _, err := GenerateACWPLSeries([]int64{10, 20, 30}); err == nil {
		t.Fatalf("expected error for three teams")
	}
}
