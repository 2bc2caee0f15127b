package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/lverg/accountkit/internal/infrastructure/mailer"
)

// Worker runs Asynq task handlers for the mail tasks the notifier enqueues.
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	mailer *mailer.SMTPMailer
	log    zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. A nil mailer
// degrades to logging the link (dev mode). Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, m *mailer.SMTPMailer, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	w := &Worker{srv: srv, mux: asynq.NewServeMux(), mailer: m, log: log}
	w.mux.HandleFunc(TypeSendConfirmation, w.handleConfirmation)
	w.mux.HandleFunc(TypeSendPasswordReset, w.handlePasswordReset)
	return w
}

func (w *Worker) handleConfirmation(ctx context.Context, t *asynq.Task) error {
	var p mailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("confirmation task payload invalid")
		return err
	}
	if w.mailer == nil {
		w.log.Info().Str("email", p.Email).Str("link_url", p.LinkURL).
			Msg("confirmation email (log only; configure SMTP for real email)")
		return nil
	}
	return w.mailer.SendConfirmation(p.Email, p.FirstName, p.LinkURL)
}

func (w *Worker) handlePasswordReset(ctx context.Context, t *asynq.Task) error {
	var p mailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("password reset task payload invalid")
		return err
	}
	if w.mailer == nil {
		w.log.Info().Str("email", p.Email).Str("link_url", p.LinkURL).
			Msg("password reset email (log only; configure SMTP for real email)")
		return nil
	}
	return w.mailer.SendPasswordReset(p.Email, p.FirstName, p.LinkURL)
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
