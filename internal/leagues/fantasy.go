package leagues

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	dbgen "github.com/codr1/touchline/internal/db/generated"
)

var Positions = []string{"GK", "DF", "MF", "ATT"}

func ValidPosition(position string) bool {
	for _, p := range Positions {
		if p == position {
			return true
		}
	}
	return false
}

// PositionBuckets is one side's starting eleven grouped by position.
type PositionBuckets struct {
	GK  []int64 `json:"GK"`
	DF  []int64 `json:"DF"`
	MF  []int64 `json:"MF"`
	ATT []int64 `json:"ATT"`
}

func (b PositionBuckets) playerIDs() []int64 {
	ids := make([]int64, 0, len(b.GK)+len(b.DF)+len(b.MF)+len(b.ATT))
	ids = append(ids, b.GK...)
	ids = append(ids, b.DF...)
	ids = append(ids, b.MF...)
	return append(ids, b.ATT...)
}

type Lineup struct {
	Home PositionBuckets `json:"home"`
	Away PositionBuckets `json:"away"`
}

// PlayerIDs returns every player named in either lineup.
func (l Lineup) PlayerIDs() []int64 {
	return append(l.Home.playerIDs(), l.Away.playerIDs()...)
}

// Validate rejects a lineup that names a player twice.
func (l Lineup) Validate() error {
	seen := make(map[int64]struct{})
	for _, id := range l.PlayerIDs() {
		if id <= 0 {
			return &ValidationError{Field: "lineup", Reason: fmt.Sprintf("has invalid player id %d", id)}
		}
		if _, ok := seen[id]; ok {
			return &ValidationError{Field: "lineup", Reason: fmt.Sprintf("lists player %d more than once", id)}
		}
		seen[id] = struct{}{}
	}
	return nil
}

// ParseLineup decodes a stored lineup. An empty column is an empty lineup.
func ParseLineup(raw sql.NullString) (Lineup, error) {
	var lineup Lineup
	if !raw.Valid || raw.String == "" {
		return lineup, nil
	}
	if err := json.Unmarshal([]byte(raw.String), &lineup); err != nil {
		return lineup, fmt.Errorf("decode lineup: %w", err)
	}
	return lineup, nil
}

const (
	FantasyAppearance = 2
	FantasyAssist     = 3
	FantasyYellowCard = -1
	FantasyRedCard    = -3
	FantasyOwnGoal    = -2
)

func fantasyGoalPoints(position string) int {
	switch position {
	case "GK", "DF":
		return 6
	case "MF":
		return 5
	case "ATT":
		return 4
	default:
		return 0
	}
}

func fantasyCleanSheetPoints(position string) int {
	switch position {
	case "GK", "DF":
		return 4
	case "MF":
		return 1
	default:
		return 0
	}
}

type FantasyPoints struct {
	PlayerID   int64  `json:"playerId"`
	PlayerName string `json:"playerName"`
	TeamID     int64  `json:"teamId"`
	Position   string `json:"position"`
	Matchweek  int64  `json:"matchweek"`
	Points     int    `json:"points"`
}

// CalculateFantasyPoints scores every player for the league matches of one
// matchweek. Starting earns the appearance points; minutes are not tracked.
func CalculateFantasyPoints(players []dbgen.Player, matches []dbgen.Match, events []dbgen.MatchEvent, matchweek int64) ([]FantasyPoints, error) {
	byPlayer := make(map[int64]*FantasyPoints, len(players))
	ordered := make([]*FantasyPoints, 0, len(players))
	for _, p := range players {
		entry := &FantasyPoints{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			TeamID:     p.TeamID,
			Position:   p.Position,
			Matchweek:  matchweek,
		}
		byPlayer[p.ID] = entry
		ordered = append(ordered, entry)
	}

	inWeek := make(map[int64]struct{})
	for _, m := range matches {
		if m.Competition != CompetitionLeague || !m.Matchweek.Valid || m.Matchweek.Int64 != matchweek || !IsPlayed(m) {
			continue
		}
		inWeek[m.ID] = struct{}{}

		lineup, err := ParseLineup(m.StartingLineup)
		if err != nil {
			return nil, fmt.Errorf("match %d: %w", m.ID, err)
		}
		for _, id := range lineup.PlayerIDs() {
			if entry, ok := byPlayer[id]; ok {
				entry.Points += FantasyAppearance
			}
		}
	}

	for _, event := range events {
		if _, ok := inWeek[event.MatchID]; !ok {
			continue
		}
		entry, ok := byPlayer[event.PlayerID]
		if !ok {
			continue
		}
		switch event.EventType {
		case EventGoal:
			if event.OwnGoal {
				entry.Points += FantasyOwnGoal
				continue
			}
			entry.Points += fantasyGoalPoints(entry.Position)
			if event.AssistPlayerID.Valid {
				if assister, ok := byPlayer[event.AssistPlayerID.Int64]; ok {
					assister.Points += FantasyAssist
				}
			}
		case EventCleanSheet:
			entry.Points += fantasyCleanSheetPoints(entry.Position)
		case EventYellowCard:
			entry.Points += FantasyYellowCard
		case EventRedCard:
			entry.Points += FantasyRedCard
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Points != ordered[j].Points {
			return ordered[i].Points > ordered[j].Points
		}
		return ordered[i].PlayerName < ordered[j].PlayerName
	})

	result := make([]FantasyPoints, 0, len(ordered))
	for _, entry := range ordered {
		result = append(result, *entry)
	}
	return result, nil
}

// ValidateSquad checks a fantasy squad against the budget and squad size.
// Every pick needs a price.
func ValidateSquad(picks []dbgen.Player, budget float64, squadSize int) error {
	if len(picks) != squadSize {
		return &ValidationError{Field: "playerIds", Reason: fmt.Sprintf("must contain exactly %d players", squadSize)}
	}
	seen := make(map[int64]struct{}, len(picks))
	var total float64
	for _, p := range picks {
		if _, ok := seen[p.ID]; ok {
			return &ValidationError{Field: "playerIds", Reason: fmt.Sprintf("lists player %d more than once", p.ID)}
		}
		seen[p.ID] = struct{}{}
		if !p.FantasyPrice.Valid {
			return &ValidationError{Field: "playerIds", Reason: fmt.Sprintf("player %d has no fantasy price", p.ID)}
		}
		total += p.FantasyPrice.Float64
	}
	if total > budget {
		return &ValidationError{Field: "playerIds", Reason: fmt.Sprintf("squad costs %.1f, over the %.1f budget", total, budget)}
	}
	return nil
}
