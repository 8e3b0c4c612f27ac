package leagues

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	dbgen "github.com/codr1/touchline/internal/db/generated"
)

const (
	EventGoal       = "GOAL"
	EventYellowCard = "YELLOW_CARD"
	EventRedCard    = "RED_CARD"
	EventCleanSheet = "CLEAN_SHEET"

	SideHome = "home"
	SideAway = "away"

	MaxEventMinute = 120
)

// ValidationError describes input that was rejected before anything was
// written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ScoreUpdate is a partial result edit. Nil fields keep their stored value.
type ScoreUpdate struct {
	HomeScore     *int64  `json:"homeScore"`
	AwayScore     *int64  `json:"awayScore"`
	HomePenalties *int64  `json:"homePenalties"`
	AwayPenalties *int64  `json:"awayPenalties"`
	Date          *string `json:"date"`
	Time          *string `json:"time"`
}

// ApplyScoreUpdate merges the update into the match and checks the result is
// still consistent with the recorded events.
func ApplyScoreUpdate(m dbgen.Match, update ScoreUpdate, events []dbgen.MatchEvent) (dbgen.UpdateMatchResultParams, error) {
	params := dbgen.UpdateMatchResultParams{
		HomeScore:     m.HomeScore,
		AwayScore:     m.AwayScore,
		HomePenalties: m.HomePenalties,
		AwayPenalties: m.AwayPenalties,
		MatchDate:     m.MatchDate,
		MatchTime:     m.MatchTime,
		ID:            m.ID,
	}

	if update.HomeScore != nil {
		if *update.HomeScore < 0 {
			return params, &ValidationError{Field: "homeScore", Reason: "must not be negative"}
		}
		params.HomeScore = sql.NullInt64{Int64: *update.HomeScore, Valid: true}
	}
	if update.AwayScore != nil {
		if *update.AwayScore < 0 {
			return params, &ValidationError{Field: "awayScore", Reason: "must not be negative"}
		}
		params.AwayScore = sql.NullInt64{Int64: *update.AwayScore, Valid: true}
	}
	if params.HomeScore.Valid != params.AwayScore.Valid {
		return params, &ValidationError{Field: "score", Reason: "home and away scores must be set together"}
	}

	tied := params.HomeScore.Valid && params.HomeScore.Int64 == params.AwayScore.Int64
	penaltiesAllowed := IsKnockoutStage(m.Stage) && tied

	if update.HomePenalties != nil || update.AwayPenalties != nil {
		if !penaltiesAllowed {
			return params, &ValidationError{Field: "penalties", Reason: "only apply to a drawn knockout match"}
		}
		if update.HomePenalties != nil {
			if *update.HomePenalties < 0 {
				return params, &ValidationError{Field: "homePenalties", Reason: "must not be negative"}
			}
			params.HomePenalties = sql.NullInt64{Int64: *update.HomePenalties, Valid: true}
		}
		if update.AwayPenalties != nil {
			if *update.AwayPenalties < 0 {
				return params, &ValidationError{Field: "awayPenalties", Reason: "must not be negative"}
			}
			params.AwayPenalties = sql.NullInt64{Int64: *update.AwayPenalties, Valid: true}
		}
	}
	if !penaltiesAllowed {
		params.HomePenalties = sql.NullInt64{}
		params.AwayPenalties = sql.NullInt64{}
	}
	if params.HomePenalties.Valid && params.AwayPenalties.Valid && params.HomePenalties.Int64 == params.AwayPenalties.Int64 {
		return params, &ValidationError{Field: "penalties", Reason: "a shootout must have a winner"}
	}

	if update.Date != nil {
		date := strings.TrimSpace(*update.Date)
		if date != "" {
			if _, err := time.Parse(time.DateOnly, date); err != nil {
				return params, &ValidationError{Field: "date", Reason: "must be in YYYY-MM-DD format"}
			}
		}
		params.MatchDate = date
	}
	if update.Time != nil {
		clock := strings.TrimSpace(*update.Time)
		if clock != "" {
			if _, err := time.Parse("15:04", clock); err != nil {
				return params, &ValidationError{Field: "time", Reason: "must be in HH:MM format"}
			}
		}
		params.MatchTime = clock
	}

	if len(events) > 0 {
		if !params.HomeScore.Valid {
			return params, &ValidationError{Field: "score", Reason: "cannot be cleared while events are recorded; reset the score instead"}
		}
		homeGoals, awayGoals := countGoals(events)
		if homeGoals > params.HomeScore.Int64 || awayGoals > params.AwayScore.Int64 {
			return params, &ValidationError{Field: "score", Reason: fmt.Sprintf("is lower than the %d-%d goals already recorded", homeGoals, awayGoals)}
		}
		for _, event := range events {
			if event.EventType == EventCleanSheet && opponentScore(event.Side, params.HomeScore.Int64, params.AwayScore.Int64) != 0 {
				return params, &ValidationError{Field: "score", Reason: "would invalidate a recorded clean sheet"}
			}
		}
	}

	return params, nil
}

// EventInput is one entry of a submitted event log.
type EventInput struct {
	Type           string `json:"type"`
	Side           string `json:"side"`
	PlayerID       int64  `json:"playerId"`
	AssistPlayerID *int64 `json:"assistPlayerId,omitempty"`
	OwnGoal        bool   `json:"ownGoal,omitempty"`
	Minute         *int64 `json:"minute,omitempty"`
}

// ValidateEvents checks a replacement event log against the match score. The
// goal count for each side must equal that side's score exactly.
func ValidateEvents(m dbgen.Match, events []EventInput) error {
	if !m.HomeScore.Valid || !m.AwayScore.Valid {
		return &ValidationError{Field: "events", Reason: "can only be recorded once the score is set"}
	}

	var homeGoals, awayGoals int64
	for i, event := range events {
		field := fmt.Sprintf("events[%d]", i)
		switch event.Type {
		case EventGoal, EventYellowCard, EventRedCard, EventCleanSheet:
		case "":
			return &ValidationError{Field: field, Reason: "type is required"}
		default:
			return &ValidationError{Field: field, Reason: fmt.Sprintf("has unknown type %q", event.Type)}
		}
		if event.Side != SideHome && event.Side != SideAway {
			return &ValidationError{Field: field, Reason: "side must be home or away"}
		}
		if event.PlayerID <= 0 {
			if event.Type == EventGoal {
				return &ValidationError{Field: field, Reason: "goal is missing a scorer"}
			}
			return &ValidationError{Field: field, Reason: "player is required"}
		}
		if event.Minute != nil && (*event.Minute < 0 || *event.Minute > MaxEventMinute) {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("minute must be between 0 and %d", MaxEventMinute)}
		}
		if event.Type != EventGoal {
			if event.OwnGoal {
				return &ValidationError{Field: field, Reason: "own goal only applies to goals"}
			}
			if event.AssistPlayerID != nil {
				return &ValidationError{Field: field, Reason: "assist only applies to goals"}
			}
		}

		switch event.Type {
		case EventGoal:
			if event.AssistPlayerID != nil {
				if event.OwnGoal {
					return &ValidationError{Field: field, Reason: "own goal cannot have an assist"}
				}
				if *event.AssistPlayerID == event.PlayerID {
					return &ValidationError{Field: field, Reason: "scorer cannot assist their own goal"}
				}
				if *event.AssistPlayerID <= 0 {
					return &ValidationError{Field: field, Reason: "assist player is invalid"}
				}
			}
			if event.Side == SideHome {
				homeGoals++
			} else {
				awayGoals++
			}
		case EventCleanSheet:
			if opponentScore(event.Side, m.HomeScore.Int64, m.AwayScore.Int64) != 0 {
				return &ValidationError{Field: field, Reason: "clean sheet requires the opponent to have scored 0"}
			}
		}
	}

	if homeGoals != m.HomeScore.Int64 {
		return &ValidationError{Field: "events", Reason: fmt.Sprintf("home goalscorers (%d) must match the home score (%d)", homeGoals, m.HomeScore.Int64)}
	}
	if awayGoals != m.AwayScore.Int64 {
		return &ValidationError{Field: "events", Reason: fmt.Sprintf("away goalscorers (%d) must match the away score (%d)", awayGoals, m.AwayScore.Int64)}
	}
	return nil
}

// EventPlayerIDs returns every player referenced by the events, deduplicated.
func EventPlayerIDs(events []EventInput) []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	add := func(id int64) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, event := range events {
		add(event.PlayerID)
		if event.AssistPlayerID != nil {
			add(*event.AssistPlayerID)
		}
	}
	return ids
}

func countGoals(events []dbgen.MatchEvent) (home, away int64) {
	for _, event := range events {
		if event.EventType != EventGoal {
			continue
		}
		if event.Side == SideHome {
			home++
		} else {
			away++
		}
	}
	return home, away
}

func opponentScore(side string, home, away int64) int64 {
	if side == SideHome {
		return away
	}
	return home
}
