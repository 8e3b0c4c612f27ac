package email

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const sendTimeout = 5 * time.Second

// SendAsync delivers message to every recipient in the background. The send
// outlives the request that triggered it.
func SendAsync(ctx context.Context, client EmailSender, recipients []string, message Message, logger *zerolog.Logger) {
	if client == nil {
		return
	}
	if message.Subject == "" || message.Body == "" {
		return
	}

	var to []string
	for _, recipient := range recipients {
		if r := strings.TrimSpace(recipient); r != "" {
			to = append(to, r)
		}
	}
	if len(to) == 0 {
		return
	}

	sendCtx, cancel := newEmailContext(ctx, sendTimeout)
	go func() {
		defer cancel()
		for _, recipient := range to {
			if err := client.Send(sendCtx, recipient, message.Subject, message.Body); err != nil {
				if logger != nil {
					logger.Error().Err(err).Str("recipient", recipient).Str("subject", message.Subject).Msg("Failed to send email")
				}
				continue
			}
			if logger != nil {
				logger.Info().Str("recipient", recipient).Str("subject", message.Subject).Msg("Email sent")
			}
		}
	}()
}
