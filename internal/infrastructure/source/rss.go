package source

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/nagampere/MLIT-Summary-Bot/internal/config"
	"github.com/nagampere/MLIT-Summary-Bot/internal/domain"
	"github.com/nagampere/MLIT-Summary-Bot/internal/ports"
)

// RSSSource reads the MLIT press-release feed and pulls each linked detail
// page for body text.
type RSSSource struct {
	feedURL string
	limit   int
	parser  *gofeed.Parser
	client  *http.Client
	logger  *slog.Logger
}

var _ ports.PressSource = (*RSSSource)(nil)

// NewRSSSource wires the feed parser; limit defaults to 20 entries.
func NewRSSSource(cfg config.SourceConfig, client *http.Client, log *slog.Logger) *RSSSource {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	limit := cfg.FeedLimit
	if limit <= 0 {
		limit = 20
	}
	parser := gofeed.NewParser()
	parser.Client = client
	return &RSSSource{
		feedURL: cfg.PressRSSURL,
		limit:   limit,
		parser:  parser,
		client:  client,
		logger:  log,
	}
}

// Name identifies the source; duplicates from the listing scrape lose to it.
func (s *RSSSource) Name() string {
	return domain.SourcePressRelease
}

// Fetch returns raw records in feed order, capped at the configured limit.
func (s *RSSSource) Fetch(ctx context.Context) ([]domain.RawRecord, error) {
	feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return nil, &domain.FetchError{Source: s.Name(), Err: err}
	}

	records := make([]domain.RawRecord, 0, s.limit)
	for _, entry := range feed.Items {
		if len(records) >= s.limit {
			break
		}
		if entry.Link == "" {
			continue
		}

		rec := domain.RawRecord{
			Source: s.Name(),
			Title:  entry.Title,
			URL:    entry.Link,
			Body:   entry.Description,
		}
		if entry.PublishedParsed != nil {
			rec.PublishedAt = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			rec.PublishedAt = *entry.UpdatedParsed
		}

		if body := s.fetchBody(ctx, entry.Link); body != "" {
			rec.Body = body
		}

		records = append(records, rec)
	}

	s.logger.Debug("rss fetch done", "url", s.feedURL, "records", len(records))
	return records, nil
}

func (s *RSSSource) fetchBody(ctx context.Context, link string) string {
	doc, err := fetchDocument(ctx, s.client, link)
	if err != nil {
		s.logger.Warn("detail page fetch failed, keeping feed description", "url", link, "error", err)
		return ""
	}
	return pageText(doc)
}
