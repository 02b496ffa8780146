package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/nagampere/MLIT-Summary-Bot/internal/config"
	"github.com/nagampere/MLIT-Summary-Bot/internal/deliver"
	"github.com/nagampere/MLIT-Summary-Bot/internal/infrastructure/llm"
	"github.com/nagampere/MLIT-Summary-Bot/internal/infrastructure/mail"
	"github.com/nagampere/MLIT-Summary-Bot/internal/infrastructure/scheduler"
	"github.com/nagampere/MLIT-Summary-Bot/internal/infrastructure/slackbot"
	"github.com/nagampere/MLIT-Summary-Bot/internal/infrastructure/source"
	"github.com/nagampere/MLIT-Summary-Bot/internal/logging"
	"github.com/nagampere/MLIT-Summary-Bot/internal/normalize"
	"github.com/nagampere/MLIT-Summary-Bot/internal/ports"
	"github.com/nagampere/MLIT-Summary-Bot/internal/summary"
	"github.com/nagampere/MLIT-Summary-Bot/internal/usecase"
)

// Application wires configuration to the pipeline and lifecycle.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	httpClient := &http.Client{Timeout: 20 * time.Second}

	// RSS first: its records win first-seen deduplication over the listing.
	sources := []ports.PressSource{
		source.NewRSSSource(cfg.Sources, httpClient, baseLogger.With("component", "source.rss")),
		source.NewInterviewSource(cfg.Sources, httpClient, baseLogger.With("component", "source.interviews")),
	}

	summarizer, err := llm.New(cfg.Provider)
	if err != nil {
		return nil, err
	}
	gateway := summary.NewGateway(summarizer, baseLogger.With("component", "summarizer"))

	var messenger ports.Messenger
	if cfg.Slack.BotToken != "" {
		messenger = slackbot.New(cfg.Slack.BotToken)
	}
	var mailer ports.Mailer
	if cfg.SMTP.Enabled() {
		mailer = mail.NewSender(cfg.SMTP)
	}
	router := deliver.NewRouter(cfg.Delivery, cfg.Slack, messenger, mailer,
		baseLogger.With("component", "router"))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Sources:      sources,
		Normalizer:   normalize.New(cfg.Window, baseLogger.With("component", "normalizer")),
		Gateway:      gateway,
		Router:       router,
		ArtifactPath: cfg.Artifact,
		Logger:       baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, pipeline: pipeline}, nil
}

// Run executes a single pipeline run, or keeps running on the configured
// cron schedule until the context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}

	spec := a.cfg.Scheduler.CronExpression
	if spec == "" {
		return a.pipeline.Run(ctx, time.Now().In(a.cfg.Window.Location()))
	}

	driver := scheduler.NewCronScheduler(spec, a.cfg.Window.Location())
	sched := usecase.NewScheduler(driver, a.pipeline)
	if err := sched.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return sched.Stop(stopCtx)
}
