package teams

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/touchline/internal/leagues"
)

func tablePageComponent(competition string, standings []leagues.TeamStanding) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := html.EscapeString(strings.ToUpper(competition)) + " table"
		if _, err := io.WriteString(w, fmt.Sprintf(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s</title>`+
			`<script src="https://unpkg.com/htmx.org@1.9.12"></script></head><body>`, title)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, fmt.Sprintf(`<h1>%s</h1>`, title)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, fmt.Sprintf(
			`<div id="standings" hx-get="/api/v1/table?competition=%s" hx-trigger="every 60s" hx-swap="innerHTML">`,
			html.EscapeString(competition),
		)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, buildTableHTML(standings)); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></body></html>`)
		return err
	})
}

func tableComponent(competition string, standings []leagues.TeamStanding) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildTableHTML(standings))
		return err
	})
}

func buildTableHTML(standings []leagues.TeamStanding) string {
	if len(standings) == 0 {
		return `<p class="empty">No teams yet.</p>`
	}

	var builder strings.Builder
	builder.WriteString(`<table class="standings"><thead><tr>`)
	for _, heading := range []string{"#", "Team", "P", "W", "D", "L", "GF", "GA", "GD", "Pts", "Form"} {
		builder.WriteString("<th>" + heading + "</th>")
	}
	builder.WriteString(`</tr></thead><tbody>`)
	for _, row := range standings {
		builder.WriteString(fmt.Sprintf(
			`<tr data-team-id="%d"><td>%d</td><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%+d</td><td>%d</td><td>%s</td></tr>`,
			row.TeamID,
			row.Position,
			html.EscapeString(row.TeamName),
			row.Played,
			row.Won,
			row.Drawn,
			row.Lost,
			row.GoalsFor,
			row.GoalsAgainst,
			row.GoalDifference,
			row.Points,
			html.EscapeString(strings.Join(row.Form, " ")),
		))
	}
	builder.WriteString(`</tbody></table>`)
	return builder.String()
}
