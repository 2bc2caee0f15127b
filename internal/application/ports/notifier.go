package ports

import (
	"context"

	"github.com/lverg/accountkit/internal/domain"
)

// Notifier delivers raw tokens out of band (email). Delivery may fail
// independently of the credential state change; InitiateReset compensates
// on failure, Register does not.
type Notifier interface {
	SendConfirmation(ctx context.Context, identity *domain.Identity, rawToken string) error
	SendResetInstructions(ctx context.Context, identity *domain.Identity, rawToken string) error
}
