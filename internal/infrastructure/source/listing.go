package source

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/nagampere/MLIT-Summary-Bot/internal/config"
	"github.com/nagampere/MLIT-Summary-Bot/internal/domain"
	"github.com/nagampere/MLIT-Summary-Bot/internal/normalize"
	"github.com/nagampere/MLIT-Summary-Bot/internal/ports"
)

// InterviewSource scrapes the minister press-conference listing page and
// follows each daijinYYMMDD.html link for the transcript text.
type InterviewSource struct {
	listURL string
	limit   int
	client  *http.Client
	logger  *slog.Logger
}

var _ ports.PressSource = (*InterviewSource)(nil)

// NewInterviewSource wires the scraper; limit defaults to 5 interviews.
func NewInterviewSource(cfg config.SourceConfig, client *http.Client, log *slog.Logger) *InterviewSource {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	limit := cfg.InterviewLimit
	if limit <= 0 {
		limit = 5
	}
	return &InterviewSource{
		listURL: cfg.InterviewURL,
		limit:   limit,
		client:  client,
		logger:  log,
	}
}

// Name identifies the source.
func (s *InterviewSource) Name() string {
	return domain.SourceInterview
}

// Fetch walks the listing top to bottom and returns raw records in page
// order. The transcript date (2025年11月18日 near the top of the page) is
// carried as DateText for the normalizer to parse.
func (s *InterviewSource) Fetch(ctx context.Context) ([]domain.RawRecord, error) {
	doc, err := fetchDocument(ctx, s.client, s.listURL)
	if err != nil {
		return nil, &domain.FetchError{Source: s.Name(), Err: err}
	}

	base, err := url.Parse(s.listURL)
	if err != nil {
		return nil, &domain.FetchError{Source: s.Name(), Err: err}
	}

	var records []domain.RawRecord
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		detailURL, ok := s.resolveDetailURL(base, href)
		if !ok {
			return true
		}

		detail, err := fetchDocument(ctx, s.client, detailURL)
		if err != nil {
			s.logger.Warn("interview detail fetch failed", "url", detailURL, "error", err)
			return true
		}
		text := pageText(detail)

		records = append(records, domain.RawRecord{
			Source:   s.Name(),
			Title:    strings.TrimSpace(a.Text()),
			URL:      detailURL,
			DateText: normalize.JapaneseDateExpr.FindString(text),
			Body:     text,
		})
		return len(records) < s.limit
	})

	s.logger.Debug("listing fetch done", "url", s.listURL, "records", len(records))
	return records, nil
}

// resolveDetailURL accepts daijin... transcript links, relative or absolute,
// and rejects the listing page itself.
func (s *InterviewSource) resolveDetailURL(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	name := path.Base(ref.Path)
	if !strings.HasPrefix(name, "daijin") || !strings.HasSuffix(name, ".html") {
		return "", false
	}

	resolved := base.ResolveReference(ref).String()
	if resolved == s.listURL {
		return "", false
	}
	return resolved, true
}
