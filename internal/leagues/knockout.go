package leagues

import (
	"fmt"
	"sort"

	dbgen "github.com/codr1/touchline/internal/db/generated"
)

// CupTeamCount is the number of teams entering the cup.
const CupTeamCount = 4

// GenerateCupSemiFinals pairs the cup teams in selection order: the first two
// meet in one semi-final and the last two in the other.
func GenerateCupSemiFinals(teamIDs []int64) ([]Fixture, error) {
	if len(teamIDs) != CupTeamCount {
		return nil, &ValidationError{Field: "teamIds", Reason: fmt.Sprintf("exactly %d teams are required", CupTeamCount)}
	}
	if err := ensureDistinct(teamIDs); err != nil {
		return nil, &ValidationError{Field: "teamIds", Reason: err.Error()}
	}
	return []Fixture{
		{Competition: CompetitionCup, Stage: StageSemiFinal, HomeTeamID: teamIDs[0], AwayTeamID: teamIDs[1]},
		{Competition: CompetitionCup, Stage: StageSemiFinal, HomeTeamID: teamIDs[2], AwayTeamID: teamIDs[3]},
	}, nil
}

type FinalAction int

const (
	FinalNoop FinalAction = iota
	FinalCreate
	FinalUpdateTeams
	FinalDelete
)

func (a FinalAction) String() string {
	switch a {
	case FinalCreate:
		return "create"
	case FinalUpdateTeams:
		return "update"
	case FinalDelete:
		return "delete"
	default:
		return "noop"
	}
}

// CupFinalPlan is the change needed to keep the cup final in line with the
// semi-final results.
type CupFinalPlan struct {
	Action  FinalAction
	FinalID int64
	Final   Fixture
	// Stale is set when a final with a recorded result no longer matches the
	// semi-final winners. The final is left alone.
	Stale bool
}

// PlanCupFinal inspects the cup matches and decides what should happen to the
// final. A final without a recorded score follows the current semi-final
// winners and is removed while either semi-final is unresolved.
func PlanCupFinal(matches []dbgen.Match) CupFinalPlan {
	var semis []dbgen.Match
	var final *dbgen.Match
	for i := range matches {
		m := matches[i]
		if m.Competition != CompetitionCup {
			continue
		}
		switch m.Stage {
		case StageSemiFinal:
			semis = append(semis, m)
		case StageFinal:
			if final == nil {
				final = &matches[i]
			}
		}
	}
	if len(semis) != 2 {
		return CupFinalPlan{}
	}
	sort.Slice(semis, func(i, j int) bool { return semis[i].ID < semis[j].ID })

	first, firstOK := KnockoutWinner(semis[0])
	second, secondOK := KnockoutWinner(semis[1])

	if !firstOK || !secondOK {
		if final == nil {
			return CupFinalPlan{}
		}
		if hasResult(*final) {
			return CupFinalPlan{FinalID: final.ID, Stale: true}
		}
		return CupFinalPlan{Action: FinalDelete, FinalID: final.ID}
	}

	want := Fixture{
		Competition: CompetitionCup,
		Stage:       StageFinal,
		HomeTeamID:  first,
		AwayTeamID:  second,
	}
	if final == nil {
		return CupFinalPlan{Action: FinalCreate, Final: want}
	}
	if final.HomeTeamID == first && final.AwayTeamID == second {
		return CupFinalPlan{FinalID: final.ID}
	}
	if hasResult(*final) {
		return CupFinalPlan{FinalID: final.ID, Stale: true}
	}
	return CupFinalPlan{Action: FinalUpdateTeams, FinalID: final.ID, Final: want}
}

// hasResult reports whether any score has been entered, including a tied
// knockout still waiting for penalties.
func hasResult(m dbgen.Match) bool {
	return m.HomeScore.Valid || m.AwayScore.Valid
}

// FinalWinner returns the winner of the competition's final, if decided.
func FinalWinner(matches []dbgen.Match, competition string) (int64, bool) {
	for _, m := range matches {
		if m.Competition == competition && m.Stage == StageFinal {
			return KnockoutWinner(m)
		}
	}
	return 0, false
}
