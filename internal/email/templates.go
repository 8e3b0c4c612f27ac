package email

import (
	"fmt"
	"strings"
	"time"
)

type Message struct {
	Subject string
	Body    string
}

// SeasonSummary is the part of an archived season worth telling admins about.
type SeasonSummary struct {
	SeasonNumber   int64
	StartDate      time.Time
	EndDate        time.Time
	LeagueWinner   string
	CupWinner      string
	SuperCupWinner string
	MatchCount     int
}

func BuildVerificationCode(appName, code string, ttl time.Duration) Message {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "Touchline"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your %s verification code is %s.\n\n", name, code)
	fmt.Fprintf(&b, "It expires in %d minutes. Use it to set your admin password.\n", int(ttl.Minutes()))
	b.WriteString("If you did not request this code you can ignore this email.\n")

	return Message{
		Subject: fmt.Sprintf("%s verification code", name),
		Body:    b.String(),
	}
}

func BuildSeasonArchived(summary SeasonSummary) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Season %d has been archived.\n\n", summary.SeasonNumber)
	fmt.Fprintf(&b, "Dates: %s to %s\n", summary.StartDate.Format("Jan 2, 2006"), summary.EndDate.Format("Jan 2, 2006"))
	fmt.Fprintf(&b, "Matches archived: %d\n", summary.MatchCount)
	fmt.Fprintf(&b, "League winner: %s\n", orNone(summary.LeagueWinner))
	fmt.Fprintf(&b, "Cup winner: %s\n", orNone(summary.CupWinner))
	fmt.Fprintf(&b, "Super cup winner: %s\n", orNone(summary.SuperCupWinner))

	return Message{
		Subject: fmt.Sprintf("Season %d archived", summary.SeasonNumber),
		Body:    b.String(),
	}
}

func orNone(value string) string {
	if strings.TrimSpace(value) == "" {
		return "none"
	}
	return value
}
