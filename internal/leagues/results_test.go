package leagues

import (
	"database/sql"
	"errors"
	"strings"
	"testing"

	dbgen "github.com/codr1/touchline/internal/db/generated"
)

func ptr[T any](v T) *T {
	return &v
}

func leagueMatch(home, away int64) dbgen.Match {
	return dbgen.Match{
		ID:          1,
		Competition: CompetitionLeague,
		Stage:       StageRegular,
		Matchweek:   score(1),
		HomeTeamID:  1,
		AwayTeamID:  2,
		HomeScore:   score(home),
		AwayScore:   score(away),
	}
}

func TestValidateEventsAcceptsMatchingGoals(t *testing.T) {
	m := leagueMatch(2, 1)
	events := []EventInput{
		{Type: EventGoal, Side: SideHome, PlayerID: 10, AssistPlayerID: ptr(int64(11)), Minute: ptr(int64(12))},
		{Type: EventGoal, Side: SideHome, PlayerID: 12},
		{Type: EventGoal, Side: SideAway, PlayerID: 20},
		{Type: EventYellowCard, Side: SideAway, PlayerID: 21},
	}
	if err := ValidateEvents(m, events); err != nil {
		t.Fatalf("expected events to validate, got %v", err)
	}
}

func TestValidateEventsRejectsGoalscorerMismatch(t *testing.T) {
	m := leagueMatch(2, 1)
	events := []EventInput{
		{Type: EventGoal, Side: SideHome, PlayerID: 10, AssistPlayerID: ptr(int64(11))},
		{Type: EventGoal, Side: SideAway, PlayerID: 20},
	}
	err := ValidateEvents(m, events)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(verr.Error(), "goalscorers") {
		t.Fatalf("expected goalscorer count error, got %q", verr.Error())
	}
}

func TestValidateEventsRules(t *testing.T) {
	tests := []struct {
		name   string
		match  dbgen.Match
		events []EventInput
		want   string
	}{
		{
			name:   "unscored match",
			match:  dbgen.Match{Competition: CompetitionLeague, Stage: StageRegular},
			events: nil,
			want:   "once the score is set",
		},
		{
			name:   "missing type",
			match:  leagueMatch(0, 0),
			events: []EventInput{{Side: SideHome, PlayerID: 1}},
			want:   "type is required",
		},
		{
			name:   "unknown type",
			match:  leagueMatch(0, 0),
			events: []EventInput{{Type: "PENALTY_MISS", Side: SideHome, PlayerID: 1}},
			want:   "unknown type",
		},
		{
			name:   "bad side",
			match:  leagueMatch(0, 0),
			events: []EventInput{{Type: EventYellowCard, Side: "neutral", PlayerID: 1}},
			want:   "side must be",
		},
		{
			name:   "goal without scorer",
			match:  leagueMatch(1, 0),
			events: []EventInput{{Type: EventGoal, Side: SideHome}},
			want:   "missing a scorer",
		},
		{
			name:   "card without player",
			match:  leagueMatch(0, 0),
			events: []EventInput{{Type: EventRedCard, Side: SideHome}},
			want:   "player is required",
		},
		{
			name:   "own goal with assist",
			match:  leagueMatch(1, 0),
			events: []EventInput{{Type: EventGoal, Side: SideHome, PlayerID: 20, OwnGoal: true, AssistPlayerID: ptr(int64(10))}},
			want:   "own goal cannot have an assist",
		},
		{
			name:   "self assist",
			match:  leagueMatch(1, 0),
			events: []EventInput{{Type: EventGoal, Side: SideHome, PlayerID: 10, AssistPlayerID: ptr(int64(10))}},
			want:   "assist their own goal",
		},
		{
			name:   "assist on card",
			match:  leagueMatch(0, 0),
			events: []EventInput{{Type: EventYellowCard, Side: SideHome, PlayerID: 10, AssistPlayerID: ptr(int64(11))}},
			want:   "assist only applies",
		},
		{
			name:   "clean sheet after conceding",
			match:  leagueMatch(0, 1),
			events: []EventInput{{Type: EventGoal, Side: SideAway, PlayerID: 20}, {Type: EventCleanSheet, Side: SideHome, PlayerID: 1}},
			want:   "clean sheet requires",
		},
		{
			name:   "minute out of range",
			match:  leagueMatch(0, 0),
			events: []EventInput{{Type: EventYellowCard, Side: SideHome, PlayerID: 1, Minute: ptr(int64(121))}},
			want:   "minute must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEvents(tt.match, tt.events)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !strings.Contains(verr.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %q", tt.want, verr.Error())
			}
		})
	}
}

func TestValidateEventsAllowsCleanSheetAndOwnGoal(t *testing.T) {
	m := leagueMatch(1, 0)
	events := []EventInput{
		{Type: EventGoal, Side: SideHome, PlayerID: 20, OwnGoal: true},
		{Type: EventCleanSheet, Side: SideHome, PlayerID: 1},
	}
	if err := ValidateEvents(m, events); err != nil {
		t.Fatalf("expected events to validate, got %v", err)
	}
}

func TestApplyScoreUpdate(t *testing.T) {
	unplayed := dbgen.Match{ID: 7, Competition: CompetitionLeague, Stage: StageRegular, MatchDate: "2024-09-01"}

	params, err := ApplyScoreUpdate(unplayed, ScoreUpdate{HomeScore: ptr(int64(2)), AwayScore: ptr(int64(1)), Time: ptr("19:30")}, nil)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if params.HomeScore.Int64 != 2 || params.AwayScore.Int64 != 1 || !params.HomeScore.Valid {
		t.Fatalf("unexpected scores %+v", params)
	}
	if params.MatchDate != "2024-09-01" || params.MatchTime != "19:30" || params.ID != 7 {
		t.Fatalf("expected date kept and time set, got %+v", params)
	}

	tests := []struct {
		name   string
		match  dbgen.Match
		update ScoreUpdate
		events []dbgen.MatchEvent
		want   string
	}{
		{"negative", unplayed, ScoreUpdate{HomeScore: ptr(int64(-1)), AwayScore: ptr(int64(0))}, nil, "must not be negative"},
		{"one side only", unplayed, ScoreUpdate{HomeScore: ptr(int64(1))}, nil, "set together"},
		{"penalties in league", leagueMatch(1, 1), ScoreUpdate{HomePenalties: ptr(int64(4)), AwayPenalties: ptr(int64(3))}, nil, "drawn knockout"},
		{"penalties without tie", played(cupMatch(1, StageSemiFinal, 1, 2), 2, 1), ScoreUpdate{HomePenalties: ptr(int64(4)), AwayPenalties: ptr(int64(3))}, nil, "drawn knockout"},
		{"level shootout", played(cupMatch(1, StageFinal, 1, 2), 1, 1), ScoreUpdate{HomePenalties: ptr(int64(4)), AwayPenalties: ptr(int64(4))}, nil, "must have a winner"},
		{"bad date", unplayed, ScoreUpdate{Date: ptr("01/09/2024")}, nil, "YYYY-MM-DD"},
		{"bad time", unplayed, ScoreUpdate{Time: ptr("7pm")}, nil, "HH:MM"},
		{
			"below recorded goals",
			leagueMatch(2, 0),
			ScoreUpdate{HomeScore: ptr(int64(1)), AwayScore: ptr(int64(0))},
			[]dbgen.MatchEvent{{EventType: EventGoal, Side: SideHome}, {EventType: EventGoal, Side: SideHome}},
			"lower than",
		},
		{
			"breaks clean sheet",
			leagueMatch(1, 0),
			ScoreUpdate{HomeScore: ptr(int64(1)), AwayScore: ptr(int64(1))},
			[]dbgen.MatchEvent{{EventType: EventGoal, Side: SideHome}, {EventType: EventCleanSheet, Side: SideHome}},
			"clean sheet",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyScoreUpdate(tt.match, tt.update, tt.events)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !strings.Contains(verr.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %q", tt.want, verr.Error())
			}
		})
	}
}

func TestApplyScoreUpdateClearsStalePenalties(t *testing.T) {
	m := withPenalties(played(cupMatch(3, StageFinal, 1, 2), 1, 1), 5, 4)

	params, err := ApplyScoreUpdate(m, ScoreUpdate{HomeScore: ptr(int64(2)), AwayScore: ptr(int64(1))}, nil)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if params.HomePenalties.Valid || params.AwayPenalties.Valid {
		t.Fatalf("expected penalties cleared once the score is no longer level, got %+v", params)
	}

	params, err = ApplyScoreUpdate(played(cupMatch(3, StageFinal, 1, 2), 0, 0), ScoreUpdate{HomePenalties: ptr(int64(3)), AwayPenalties: ptr(int64(1))}, nil)
	if err != nil {
		t.Fatalf("apply penalties: %v", err)
	}
	after := m
	after.HomeScore, after.AwayScore = params.HomeScore, params.AwayScore
	after.HomePenalties, after.AwayPenalties = params.HomePenalties, params.AwayPenalties
	if !IsPlayed(after) {
		t.Fatalf("expected the final to be played once penalties are set")
	}
	if after.HomePenalties != (sql.NullInt64{Int64: 3, Valid: true}) {
		t.Fatalf("unexpected home penalties %+v", after.HomePenalties)
	}
}

func TestEventPlayerIDs(t *testing.T) {
	ids := EventPlayerIDs([]EventInput{
		{PlayerID: 1, AssistPlayerID: ptr(int64(2))},
		{PlayerID: 2},
		{PlayerID: 3},
	})
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Fatalf("unexpected ids %v", ids)
	}
}
