package matches

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/codr1/touchline/internal/api/apiutil"
	dbgen "github.com/codr1/touchline/internal/db/generated"
	"github.com/codr1/touchline/internal/leagues"
)

type TeamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

type EventView struct {
	ID             int64  `json:"id"`
	Type           string `json:"type"`
	Side           string `json:"side"`
	PlayerID       int64  `json:"playerId"`
	AssistPlayerID *int64 `json:"assistPlayerId,omitempty"`
	OwnGoal        bool   `json:"ownGoal"`
	Minute         *int64 `json:"minute,omitempty"`
}

// MatchView is the JSON shape of a match, shared with season snapshots.
type MatchView struct {
	ID                     int64           `json:"id"`
	Competition            string          `json:"competition"`
	Stage                  string          `json:"stage"`
	Matchweek              *int64          `json:"matchweek"`
	HomeTeam               TeamRef         `json:"homeTeam"`
	AwayTeam               TeamRef         `json:"awayTeam"`
	Date                   string          `json:"date"`
	Time                   string          `json:"time"`
	HomeScore              *int64          `json:"homeScore"`
	AwayScore              *int64          `json:"awayScore"`
	HomePenalties          *int64          `json:"homePenalties"`
	AwayPenalties          *int64          `json:"awayPenalties"`
	IsPlayed               bool            `json:"isPlayed"`
	IsPublished            bool            `json:"isPublished"`
	OriginalDoubleWinnerID *int64          `json:"originalDoubleWinnerId"`
	Events                 []EventView     `json:"events"`
	StartingLineup         *leagues.Lineup `json:"startingLineup,omitempty"`
}

func newEventView(e dbgen.MatchEvent) EventView {
	return EventView{
		ID:             e.ID,
		Type:           e.EventType,
		Side:           e.Side,
		PlayerID:       e.PlayerID,
		AssistPlayerID: apiutil.NullInt64Ptr(e.AssistPlayerID),
		OwnGoal:        e.OwnGoal,
		Minute:         apiutil.NullInt64Ptr(e.Minute),
	}
}

func teamRef(teams map[int64]dbgen.Team, id int64) TeamRef {
	team, ok := teams[id]
	if !ok {
		return TeamRef{ID: id}
	}
	return TeamRef{ID: team.ID, Name: team.Name, Logo: team.Logo}
}

func newMatchView(ctx context.Context, m dbgen.Match, teams map[int64]dbgen.Team, events []dbgen.MatchEvent) MatchView {
	view := MatchView{
		ID:                     m.ID,
		Competition:            m.Competition,
		Stage:                  m.Stage,
		Matchweek:              apiutil.NullInt64Ptr(m.Matchweek),
		HomeTeam:               teamRef(teams, m.HomeTeamID),
		AwayTeam:               teamRef(teams, m.AwayTeamID),
		Date:                   m.MatchDate,
		Time:                   m.MatchTime,
		HomeScore:              apiutil.NullInt64Ptr(m.HomeScore),
		AwayScore:              apiutil.NullInt64Ptr(m.AwayScore),
		HomePenalties:          apiutil.NullInt64Ptr(m.HomePenalties),
		AwayPenalties:          apiutil.NullInt64Ptr(m.AwayPenalties),
		IsPlayed:               leagues.IsPlayed(m),
		IsPublished:            m.IsPublished,
		OriginalDoubleWinnerID: apiutil.NullInt64Ptr(m.OriginalDoubleWinnerID),
		Events:                 make([]EventView, 0, len(events)),
	}
	for _, e := range events {
		view.Events = append(view.Events, newEventView(e))
	}
	if m.StartingLineup.Valid {
		lineup, err := leagues.ParseLineup(m.StartingLineup)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Int64("match_id", m.ID).Msg("Ignoring unreadable starting lineup")
		} else {
			view.StartingLineup = &lineup
		}
	}
	return view
}

// LoadMatchViews resolves team names and event logs for the given matches.
func LoadMatchViews(ctx context.Context, q *dbgen.Queries, matches []dbgen.Match) ([]MatchView, error) {
	teamList, err := q.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	teams := make(map[int64]dbgen.Team, len(teamList))
	for _, team := range teamList {
		teams[team.ID] = team
	}

	allEvents, err := q.ListAllMatchEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list match events: %w", err)
	}
	byMatch := make(map[int64][]dbgen.MatchEvent)
	for _, e := range allEvents {
		byMatch[e.MatchID] = append(byMatch[e.MatchID], e)
	}

	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, newMatchView(ctx, m, teams, byMatch[m.ID]))
	}
	return views, nil
}

func loadMatchView(ctx context.Context, q *dbgen.Queries, m dbgen.Match) (MatchView, error) {
	events, err := q.ListMatchEvents(ctx, m.ID)
	if err != nil {
		return MatchView{}, fmt.Errorf("list events for match %d: %w", m.ID, err)
	}
	teams := make(map[int64]dbgen.Team, 2)
	for _, id := range []int64{m.HomeTeamID, m.AwayTeamID} {
		team, err := q.GetTeam(ctx, id)
		if err != nil {
			return MatchView{}, fmt.Errorf("get team %d: %w", id, err)
		}
		teams[id] = team
	}
	return newMatchView(ctx, m, teams, events), nil
}
