package leagues

import (
	"sort"

	dbgen "github.com/codr1/touchline/internal/db/generated"
)

type PlayerStats struct {
	PlayerID    int64  `json:"playerId"`
	PlayerName  string `json:"playerName"`
	TeamID      int64  `json:"teamId"`
	Position    string `json:"position"`
	Goals       int    `json:"goals"`
	OwnGoals    int    `json:"ownGoals"`
	Assists     int    `json:"assists"`
	YellowCards int    `json:"yellowCards"`
	RedCards    int    `json:"redCards"`
	CleanSheets int    `json:"cleanSheets"`
}

// AggregatePlayerStats tallies events from played matches. Own goals are
// counted separately and never as goals for the scorer.
func AggregatePlayerStats(players []dbgen.Player, matches []dbgen.Match, events []dbgen.MatchEvent) []PlayerStats {
	playedMatches := make(map[int64]struct{}, len(matches))
	for _, m := range matches {
		if IsPlayed(m) {
			playedMatches[m.ID] = struct{}{}
		}
	}

	stats := make(map[int64]*PlayerStats, len(players))
	ordered := make([]*PlayerStats, 0, len(players))
	for _, p := range players {
		entry := &PlayerStats{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			TeamID:     p.TeamID,
			Position:   p.Position,
		}
		stats[p.ID] = entry
		ordered = append(ordered, entry)
	}

	for _, event := range events {
		if _, ok := playedMatches[event.MatchID]; !ok {
			continue
		}
		entry, ok := stats[event.PlayerID]
		if !ok {
			continue
		}
		switch event.EventType {
		case EventGoal:
			if event.OwnGoal {
				entry.OwnGoals++
			} else {
				entry.Goals++
			}
			if event.AssistPlayerID.Valid {
				if assister, ok := stats[event.AssistPlayerID.Int64]; ok {
					assister.Assists++
				}
			}
		case EventYellowCard:
			entry.YellowCards++
		case EventRedCard:
			entry.RedCards++
		case EventCleanSheet:
			entry.CleanSheets++
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Goals != b.Goals {
			return a.Goals > b.Goals
		}
		if a.Assists != b.Assists {
			return a.Assists > b.Assists
		}
		return a.PlayerName < b.PlayerName
	})

	result := make([]PlayerStats, 0, len(ordered))
	for _, entry := range ordered {
		result = append(result, *entry)
	}
	return result
}
