package queue

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lverg/accountkit/internal/application/ports"
	"github.com/lverg/accountkit/internal/domain"
)

// LogNotifier logs the link instead of delivering it, for development when
// Redis/Asynq is not configured.
type LogNotifier struct {
	confirmBaseURL string
	resetBaseURL   string
	log            zerolog.Logger
}

func NewLogNotifier(confirmBaseURL, resetBaseURL string, log zerolog.Logger) *LogNotifier {
	return &LogNotifier{confirmBaseURL: confirmBaseURL, resetBaseURL: resetBaseURL, log: log}
}

func (n *LogNotifier) SendConfirmation(ctx context.Context, identity *domain.Identity, rawToken string) error {
	n.log.Info().Str("email", identity.Email).
		Str("link_url", fmt.Sprintf("%s/%s", n.confirmBaseURL, rawToken)).
		Msg("confirmation link")
	return nil
}

func (n *LogNotifier) SendResetInstructions(ctx context.Context, identity *domain.Identity, rawToken string) error {
	n.log.Info().Str("email", identity.Email).
		Str("link_url", fmt.Sprintf("%s/%s", n.resetBaseURL, rawToken)).
		Msg("password reset link")
	return nil
}

var _ ports.Notifier = (*LogNotifier)(nil)
