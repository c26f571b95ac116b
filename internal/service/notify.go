package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/client"
)

// notifier fans mail out in the background. Sends are best-effort: a dead SMTP
// server shows up in the logs, never in a request's outcome.
type notifier struct {
	mailer client.Mailer
	logger *slog.Logger
}

func (n *notifier) send(kind client.TemplateKind, recipient string, data map[string]string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := n.mailer.Send(ctx, kind, recipient, data); err != nil {
			n.logger.Error("send notification", "kind", string(kind),
				"recipient", recipient, "error", err)
		}
	}()
}
