package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/lverg/accountkit/internal/application/ports"
	"github.com/lverg/accountkit/internal/domain"
)

const (
	TypeSendConfirmation  = "email:confirmation"
	TypeSendPasswordReset = "email:password_reset"
)

// mailPayload is the JSON enqueued for both mail task types.
type mailPayload struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LinkURL   string `json:"link_url"`
}

// AsynqNotifier implements ports.Notifier by enqueuing mail tasks. The
// enqueue is the delivery attempt the lifecycle reacts to: an enqueue error
// is a delivery failure, and InitiateReset compensates on it.
type AsynqNotifier struct {
	client         *asynq.Client
	confirmBaseURL string
	resetBaseURL   string
	log            zerolog.Logger
}

func NewAsynqNotifier(redisOpt asynq.RedisClientOpt, confirmBaseURL, resetBaseURL string, log zerolog.Logger) *AsynqNotifier {
	return &AsynqNotifier{
		client:         asynq.NewClient(redisOpt),
		confirmBaseURL: confirmBaseURL,
		resetBaseURL:   resetBaseURL,
		log:            log,
	}
}

func (n *AsynqNotifier) Close() error {
	return n.client.Close()
}

func (n *AsynqNotifier) SendConfirmation(ctx context.Context, identity *domain.Identity, rawToken string) error {
	return n.enqueue(ctx, TypeSendConfirmation, identity, fmt.Sprintf("%s/%s", n.confirmBaseURL, rawToken))
}

func (n *AsynqNotifier) SendResetInstructions(ctx context.Context, identity *domain.Identity, rawToken string) error {
	return n.enqueue(ctx, TypeSendPasswordReset, identity, fmt.Sprintf("%s/%s", n.resetBaseURL, rawToken))
}

func (n *AsynqNotifier) enqueue(ctx context.Context, taskType string, identity *domain.Identity, linkURL string) error {
	payload, _ := json.Marshal(mailPayload{
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LinkURL:   linkURL,
	})
	if _, err := n.client.EnqueueContext(ctx, asynq.NewTask(taskType, payload)); err != nil {
		n.log.Warn().Err(err).Str("email", identity.Email).Str("task", taskType).Msg("enqueue mail failed")
		return err
	}
	return nil
}

var _ ports.Notifier = (*AsynqNotifier)(nil)
