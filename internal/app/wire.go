package app

import (
	"context"
	"fmt"
	"log/slog"

	s3blob "github.com/ykravets/promoaudit/internal/blob/s3"
	"github.com/ykravets/promoaudit/internal/config"
	"github.com/ykravets/promoaudit/internal/notify"
	"github.com/ykravets/promoaudit/internal/platform/promo"
	"github.com/ykravets/promoaudit/internal/report"
	"github.com/ykravets/promoaudit/internal/scenario"
)

// Dependencies bundles everything a validation run needs. It is constructed
// by Wire and torn down by the returned cleanup function.
type Dependencies struct {
	Engine    *promo.Client
	Generator *scenario.Generator
	Report    *report.Writer

	// Archiver is nil unless an S3 bucket is configured.
	Archiver *s3blob.Client

	// Notifier is nil unless at least one channel is configured.
	Notifier *notify.Notifier
}

// Wire constructs the concrete dependency implementations from the given
// configuration and returns them together with a cleanup function to call on
// shutdown.
func Wire(ctx context.Context, cfg *config.Config) (*Dependencies, func(), error) {
	logger := slog.Default()

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	engine, err := promo.NewClient(promo.Config{
		BaseURL:            cfg.Engine.BaseURL,
		Username:           cfg.Engine.Username,
		Password:           cfg.Engine.Password,
		UserAgent:          cfg.Engine.UserAgent,
		TerminalID:         cfg.Engine.TerminalID,
		PageSize:           cfg.Run.PageSize,
		InsecureSkipVerify: cfg.Engine.InsecureSkipVerify,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("wire: engine client: %w", err)
	}
	closers = append(closers, engine.Close)

	deps := &Dependencies{
		Engine:    engine,
		Generator: scenario.New(nil),
		Report:    report.NewWriter(logger),
	}

	// --- S3 (only when report archiving is configured) ---
	if cfg.S3.Bucket != "" {
		archiver, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			UseSSL:         cfg.S3.UseSSL,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: s3: %w", err)
		}
		deps.Archiver = archiver
	}

	// --- Notifications ---
	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	if len(senders) > 0 {
		deps.Notifier = notify.NewNotifier(senders, logger)
	}

	return deps, cleanup, nil
}
