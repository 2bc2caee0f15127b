package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lverg/accountkit/internal/application/account"
	"github.com/lverg/accountkit/internal/application/ports"
	"github.com/lverg/accountkit/internal/config"
	"github.com/lverg/accountkit/internal/infrastructure/auth"
	httpinfra "github.com/lverg/accountkit/internal/infrastructure/http"
	"github.com/lverg/accountkit/internal/infrastructure/http/handlers"
	"github.com/lverg/accountkit/internal/infrastructure/http/middleware"
	"github.com/lverg/accountkit/internal/infrastructure/mailer"
	"github.com/lverg/accountkit/internal/infrastructure/persistence/postgres"
	"github.com/lverg/accountkit/internal/infrastructure/queue"
	"github.com/lverg/accountkit/internal/infrastructure/security"
	"github.com/lverg/accountkit/internal/infrastructure/webhook"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	store := postgres.NewIdentityRepository(pool)

	hasher := security.NewHasher(security.Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	keyPEM, err := cfg.LoadJWTPrivateKey()
	if err != nil {
		log.Fatal().Err(err).Msg("load jwt private key")
	}
	privateKey, err := auth.LoadRSAPrivateKeyFromPEM(keyPEM)
	if err != nil {
		log.Fatal().Err(err).Msg("parse jwt private key")
	}
	issuer := auth.NewSessionIssuer(privateKey, cfg.JWT.Issuer, cfg.JWT.Audience,
		time.Duration(cfg.JWT.ExpirySecs)*time.Second)

	// Mail delivery: Asynq-backed when Redis is configured, log-only otherwise.
	var (
		notifier    ports.Notifier
		worker      *queue.Worker
		redisClient *redis.Client
	)
	if cfg.Redis.URL != "" {
		redisOpts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse redis url")
		}
		redisClient = redis.NewClient(redisOpts)
		asynqOpt := asynq.RedisClientOpt{
			Addr:     redisOpts.Addr,
			Password: redisOpts.Password,
			DB:       redisOpts.DB,
		}
		asynqNotifier := queue.NewAsynqNotifier(asynqOpt, cfg.Tokens.ConfirmBaseURL, cfg.Tokens.ResetBaseURL, log)
		defer asynqNotifier.Close()
		notifier = asynqNotifier

		var smtpMailer *mailer.SMTPMailer
		if cfg.SMTP.Host != "" {
			smtpMailer = mailer.NewSMTPMailer(mailer.SMTPConfig{
				Host:     cfg.SMTP.Host,
				Port:     cfg.SMTP.Port,
				From:     cfg.SMTP.From,
				Username: cfg.SMTP.Username,
				Password: cfg.SMTP.Password,
			})
		}
		worker = queue.NewWorker(asynqOpt, smtpMailer, log)
		go func() {
			if err := worker.Run(); err != nil {
				log.Error().Err(err).Msg("mail worker stopped")
			}
		}()
	} else {
		log.Warn().Msg("REDIS_URL not set; emails will be logged, not delivered")
		notifier = queue.NewLogNotifier(cfg.Tokens.ConfirmBaseURL, cfg.Tokens.ResetBaseURL, log)
	}

	var emitter ports.WebhookEmitter
	if cfg.Webhook.URL != "" {
		opts := []webhook.HTTPEmitterOption{}
		if cfg.Webhook.Secret != "" {
			opts = append(opts, webhook.WithHeader("Authorization", "Bearer "+cfg.Webhook.Secret))
		}
		emitter = webhook.NewHTTPEmitter(cfg.Webhook.URL, opts...)
	} else {
		emitter = webhook.NewNoopEmitter()
	}

	confirmTTL := time.Duration(cfg.Tokens.ConfirmTTLSecs) * time.Second
	resetTTL := time.Duration(cfg.Tokens.ResetTTLSecs) * time.Second

	accountHandler := handlers.NewAccountHandler(
		account.NewRegister(store, hasher, notifier, confirmTTL),
		account.NewConfirm(store),
		account.NewLogin(store, hasher, issuer),
		account.NewInitiateReset(store, notifier, resetTTL),
		account.NewCompleteReset(store, hasher),
		account.NewCheckResetToken(store),
		emitter,
		log,
	)

	handlers.InitOAuthProviders(cfg.OAuth.CallbackBaseURL, cfg.OAuth.SessionSecret,
		cfg.OAuth.Google.ClientID, cfg.OAuth.Google.ClientSecret)
	externalLogin := account.NewExternalLogin(store, issuer)

	sessionValidator := middleware.NewSessionValidator(issuer)

	router := httpinfra.NewRouter(httpinfra.RouterConfig{
		AccountHandler: accountHandler,
		HealthHandler:  handlers.NewHealthHandler(pool, redisClient),
		UsersHandler:   handlers.NewUsersHandler(),
		RequireSession: sessionValidator.Handler,
		OAuthBegin:     handlers.OAuthBegin(),
		OAuthCallback:  handlers.OAuthCallback(externalLogin, cfg.OAuth.RedirectURL),
		Log:            log,
		Secure:         middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment)),
		Metrics:        true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if worker != nil {
		worker.Shutdown()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	log.Info().Msg("stopped")
}
