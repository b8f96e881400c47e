package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"smart-email-sender/internal/compose"
	"smart-email-sender/internal/extract"
	"smart-email-sender/internal/generation"
	"smart-email-sender/internal/llm/ollama"
	"smart-email-sender/internal/mailer"
	"smart-email-sender/internal/outreach"
	"smart-email-sender/internal/services/health"
	"smart-email-sender/internal/shared/config"
	"smart-email-sender/internal/shared/server"
	"smart-email-sender/internal/shared/storage/object"
	localstore "smart-email-sender/internal/shared/storage/object/local"
	s3store "smart-email-sender/internal/shared/storage/object/s3"
	"smart-email-sender/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config            config.Config
	Router            *gin.Engine
	Archive           object.Archive
	Model             *ollama.Client
	Sender            mailer.Sender
	GenerationService *generation.Service
	OutreachService   *outreach.Service
	Health            *health.Service
}

// Build wires every dependency and the router from cfg.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	archive, err := BuildArchive(ctx, cfg)
	if err != nil {
		return nil, err
	}
	sender, err := BuildSender(cfg)
	if err != nil {
		return nil, err
	}
	model := BuildModel(cfg)

	app := &App{
		Config:  cfg,
		Archive: archive,
		Model:   model,
		Sender:  sender,
		GenerationService: &generation.Service{
			Extractor: extract.New(),
			Generator: model,
			Archive:   archive,
			Model:     model.ModelName(),
			Timeout:   cfg.ModelTimeout,
		},
		OutreachService: &outreach.Service{
			Composer: compose.New(),
			Sender:   sender,
		},
		Health: health.NewService(model, model.ModelName()),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            cfg,
		Health:            app.Health,
		GenerationHandler: generation.NewHandler(app.GenerationService),
		OutreachHandler:   outreach.NewHandler(app.OutreachService),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":            cfg.Env,
		"upload_store":   cfg.UploadStore,
		"mail_transport": cfg.MailTransport,
		"model":          model.ModelName(),
		"model_base_url": cfg.ModelBaseURL,
	})
	return app, nil
}

// BuildModel returns the Ollama client described by cfg.
func BuildModel(cfg config.Config) *ollama.Client {
	return ollama.NewClient(ollama.Config{
		BaseURL: cfg.ModelBaseURL,
		Model:   cfg.ModelName,
		Timeout: cfg.ModelTimeout,
	})
}

// BuildArchive selects the upload archive backend.
func BuildArchive(ctx context.Context, cfg config.Config) (object.Archive, error) {
	switch cfg.UploadStore {
	case "none":
		return object.Nop{}, nil
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, errors.New("UPLOAD_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		dir := cfg.UploadDir
		if strings.TrimSpace(dir) == "" {
			dir = "uploads"
		}
		return localstore.New(dir), nil
	}
}

// BuildSender selects the mail transport.
func BuildSender(cfg config.Config) (mailer.Sender, error) {
	switch cfg.MailTransport {
	case "smtp":
		if strings.TrimSpace(cfg.SMTPHost) == "" {
			return nil, errors.New("MAIL_TRANSPORT=smtp requires SMTP_HOST")
		}
		if strings.TrimSpace(cfg.MailFrom) == "" {
			return nil, errors.New("MAIL_TRANSPORT=smtp requires MAIL_FROM")
		}
		sender, err := mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
		if err != nil {
			return nil, fmt.Errorf("build smtp sender: %w", err)
		}
		return sender, nil
	case "resend":
		if strings.TrimSpace(cfg.ResendAPIKey) == "" {
			return nil, errors.New("MAIL_TRANSPORT=resend requires RESEND_API_KEY")
		}
		if strings.TrimSpace(cfg.MailFrom) == "" {
			return nil, errors.New("MAIL_TRANSPORT=resend requires MAIL_FROM")
		}
		return mailer.NewResendSender(cfg.ResendAPIKey, cfg.MailFrom), nil
	default:
		return mailer.NewLogSender(cfg.MailFrom), nil
	}
}
