package leagues

// SuperCupRequest names the two trophy winners. When a single team won both,
// either RunnerUpID is set or CupWinnerID already holds the runner-up and
// OriginalDoubleWinnerID marks the double winner.
type SuperCupRequest struct {
	LeagueWinnerID         int64 `json:"leagueWinnerId"`
	CupWinnerID            int64 `json:"cupWinnerId"`
	RunnerUpID             int64 `json:"runnerUpId,omitempty"`
	OriginalDoubleWinnerID int64 `json:"originalDoubleWinnerId,omitempty"`
}

// ResolveSuperCup returns the single super-cup fixture. The league winner is
// at home. A double winner plays the league runner-up and the match keeps a
// marker naming the double winner.
func ResolveSuperCup(req SuperCupRequest) (Fixture, error) {
	if req.LeagueWinnerID <= 0 {
		return Fixture{}, &ValidationError{Field: "leagueWinnerId", Reason: "is required"}
	}
	if req.CupWinnerID <= 0 {
		return Fixture{}, &ValidationError{Field: "cupWinnerId", Reason: "is required"}
	}

	fixture := Fixture{
		Competition: CompetitionSuperCup,
		Stage:       StageFinal,
		HomeTeamID:  req.LeagueWinnerID,
		AwayTeamID:  req.CupWinnerID,
	}
	if req.LeagueWinnerID != req.CupWinnerID {
		// The runner-up may already stand in as cupWinnerId; the marker then
		// names the double winner at home.
		if req.OriginalDoubleWinnerID != 0 && req.OriginalDoubleWinnerID != req.LeagueWinnerID {
			return Fixture{}, &ValidationError{Field: "originalDoubleWinnerId", Reason: "must name the league winner"}
		}
		fixture.OriginalDoubleWinnerID = req.OriginalDoubleWinnerID
		return fixture, nil
	}

	if req.RunnerUpID <= 0 {
		return Fixture{}, &ValidationError{Field: "runnerUpId", Reason: "is required when the league and cup winner are the same team"}
	}
	if req.RunnerUpID == req.LeagueWinnerID {
		return Fixture{}, &ValidationError{Field: "runnerUpId", Reason: "must differ from the double winner"}
	}
	if req.OriginalDoubleWinnerID != 0 && req.OriginalDoubleWinnerID != req.LeagueWinnerID {
		return Fixture{}, &ValidationError{Field: "originalDoubleWinnerId", Reason: "must match the double winner"}
	}

	fixture.AwayTeamID = req.RunnerUpID
	fixture.OriginalDoubleWinnerID = req.LeagueWinnerID
	return fixture, nil
}
