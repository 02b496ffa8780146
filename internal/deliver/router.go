package deliver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nagampere/MLIT-Summary-Bot/internal/config"
	"github.com/nagampere/MLIT-Summary-Bot/internal/domain"
	"github.com/nagampere/MLIT-Summary-Bot/internal/mrkdwn"
	"github.com/nagampere/MLIT-Summary-Bot/internal/ports"
)

// Router resolves the Slack destination for the run and dispatches the digest
// across the enabled branches. Slack and email are independent: failure of
// one never suppresses the other.
type Router struct {
	mode      string
	slackCfg  config.SlackConfig
	messenger ports.Messenger
	mailer    ports.Mailer
	logger    *slog.Logger

	resolved *domain.DeliveryTarget
}

// NewRouter wires delivery settings and the outbound adapters. Either adapter
// may be nil when its branch is unconfigured.
func NewRouter(mode string, slackCfg config.SlackConfig, messenger ports.Messenger, mailer ports.Mailer, log *slog.Logger) *Router {
	if mode == "" {
		mode = config.DeliverySlack
	}
	return &Router{
		mode:      mode,
		slackCfg:  slackCfg,
		messenger: messenger,
		mailer:    mailer,
		logger:    log,
	}
}

// ResolveTarget picks the Slack destination. Normal mode posts to the primary
// channel. Debug mode prefers the debug channel and otherwise opens a direct
// message with the debug user; debug mode with neither configured is a
// configuration error, reported before any send is attempted. The resolved
// target is cached for the rest of the run.
func (r *Router) ResolveTarget(ctx context.Context) (domain.DeliveryTarget, error) {
	if r.resolved != nil {
		return *r.resolved, nil
	}

	target, err := r.resolveTarget(ctx)
	if err != nil {
		return domain.DeliveryTarget{}, err
	}
	r.resolved = &target
	return target, nil
}

func (r *Router) resolveTarget(ctx context.Context) (domain.DeliveryTarget, error) {
	if !r.slackCfg.DebugMode {
		if r.slackCfg.ChannelID == "" {
			return domain.DeliveryTarget{}, fmt.Errorf("slack channel id is not configured")
		}
		return domain.DeliveryTarget{ChannelID: r.slackCfg.ChannelID}, nil
	}

	if r.slackCfg.DebugChannelID != "" {
		return domain.DeliveryTarget{ChannelID: r.slackCfg.DebugChannelID}, nil
	}
	if r.slackCfg.DebugUserID != "" {
		conversationID, err := r.messenger.OpenDirectMessage(ctx, r.slackCfg.DebugUserID)
		if err != nil {
			return domain.DeliveryTarget{}, fmt.Errorf("resolve debug dm: %w", err)
		}
		return domain.DeliveryTarget{ChannelID: conversationID, DirectMessage: true}, nil
	}

	return domain.DeliveryTarget{}, domain.ErrDebugTargetMissing
}

// Deliver runs the enabled branches and returns all branch errors joined.
func (r *Router) Deliver(ctx context.Context, doc domain.SummaryDocument) error {
	var errs []error

	if r.slackWanted() {
		if r.messenger == nil {
			r.logger.Info("slack token not configured, skipping slack branch")
		} else if err := r.deliverSlack(ctx, doc); err != nil {
			r.logger.Warn("slack delivery failed", "error", err)
			errs = append(errs, &domain.DeliveryError{Branch: "slack", Err: err})
		}
	}

	if r.emailWanted() {
		if r.mailer == nil {
			r.logger.Info("smtp not configured, skipping email branch")
		} else if err := r.deliverEmail(ctx, doc); err != nil {
			r.logger.Warn("email delivery failed", "error", err)
			errs = append(errs, &domain.DeliveryError{Branch: "email", Err: err})
		}
	}

	return errors.Join(errs...)
}

func (r *Router) deliverSlack(ctx context.Context, doc domain.SummaryDocument) error {
	target, err := r.ResolveTarget(ctx)
	if err != nil {
		return err
	}

	blocks, fallback := mrkdwn.Convert(doc.Markdown)
	if len(blocks) == 0 {
		r.logger.Info("nothing to post to slack")
		return nil
	}

	r.logger.Info("posting to slack", "channel", target.ChannelID, "dm", target.DirectMessage, "blocks", len(blocks))
	return r.messenger.PostBlocks(ctx, target.ChannelID, blocks, fallback)
}

func (r *Router) deliverEmail(ctx context.Context, doc domain.SummaryDocument) error {
	subject := fmt.Sprintf("国交省 大臣会見・報道発表サマリー %s", doc.GeneratedAt.Format("2006-01-02"))
	r.logger.Info("sending digest email", "subject", subject)
	return r.mailer.Send(ctx, subject, doc.Markdown)
}

func (r *Router) slackWanted() bool {
	return r.mode == config.DeliverySlack || r.mode == config.DeliveryBoth
}

func (r *Router) emailWanted() bool {
	return r.mode == config.DeliveryEmail || r.mode == config.DeliveryBoth
}
