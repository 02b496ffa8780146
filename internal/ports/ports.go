package ports

import (
	"context"
	"time"

	"github.com/slack-go/slack"

	"github.com/nagampere/MLIT-Summary-Bot/internal/domain"
)

// PressSource pulls raw records from one upstream source (RSS feed or
// scraped listing). Records come back in source-document order.
type PressSource interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.RawRecord, error)
}

// Summarizer generates a natural-language summary for one item's body text.
type Summarizer interface {
	Provider() string
	SummarizeText(ctx context.Context, text string) (string, error)
}

// Messenger posts block messages to Slack and resolves direct-message
// conversations for debug delivery.
type Messenger interface {
	PostBlocks(ctx context.Context, channelID string, blocks []slack.Block, fallback string) error
	OpenDirectMessage(ctx context.Context, userID string) (string, error)
}

// Mailer sends the digest as plain text over SMTP.
type Mailer interface {
	Send(ctx context.Context, subject, body string) error
}

// Scheduler controls when pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
