package normalize

import (
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"github.com/nagampere/MLIT-Summary-Bot/internal/config"
	"github.com/nagampere/MLIT-Summary-Bot/internal/domain"
)

// JapaneseDateExpr matches dates written as 2025年11月18日.
var JapaneseDateExpr = regexp.MustCompile(`(\d{4})年\s*(\d{1,2})月\s*(\d{1,2})日`)

// Normalizer converts raw records into Items, applying the days-back window
// and first-seen URL deduplication.
type Normalizer struct {
	daysBack        int
	location        *time.Location
	weekendRollback bool
	logger          *slog.Logger
}

// New builds a normalizer from the window configuration.
func New(cfg config.WindowConfig, log *slog.Logger) *Normalizer {
	daysBack := cfg.DaysBack
	if daysBack < 0 {
		daysBack = 1
	}
	return &Normalizer{
		daysBack:        daysBack,
		location:        cfg.Location(),
		weekendRollback: cfg.WeekendRollback,
		logger:          log,
	}
}

// Normalize filters and deduplicates records, preserving first-appearance
// order. Records whose date cannot be resolved are dropped, never defaulted
// into the window.
func (n *Normalizer) Normalize(records []domain.RawRecord, now time.Time) []domain.Item {
	today := dayOf(now.In(n.location))
	floor := n.windowFloor(today)

	seen := map[string]struct{}{}
	items := make([]domain.Item, 0, len(records))
	for _, rec := range records {
		if rec.URL == "" {
			continue
		}
		if _, dup := seen[rec.URL]; dup {
			continue
		}
		seen[rec.URL] = struct{}{}

		published, err := n.resolveDate(rec)
		if err != nil {
			n.warn("dropping record with unparseable date", "source", rec.Source, "url", rec.URL)
			continue
		}

		day := dayOf(published.In(n.location))
		if day.Before(floor) {
			continue
		}

		items = append(items, domain.Item{
			Source:      rec.Source,
			Title:       rec.Title,
			URL:         rec.URL,
			PublishedAt: published.In(n.location),
			Body:        rec.Body,
		})
	}

	return items
}

func (n *Normalizer) resolveDate(rec domain.RawRecord) (time.Time, error) {
	if !rec.PublishedAt.IsZero() {
		return rec.PublishedAt, nil
	}
	return parseJapaneseDate(rec.DateText, n.location)
}

// windowFloor is the oldest calendar day still inside the window. With
// weekend rollback enabled, a floor landing on Saturday or Sunday moves back
// to Friday so Monday runs still cover Friday's releases.
func (n *Normalizer) windowFloor(today time.Time) time.Time {
	floor := today.AddDate(0, 0, -n.daysBack)
	if n.weekendRollback {
		switch floor.Weekday() {
		case time.Saturday:
			floor = floor.AddDate(0, 0, -1)
		case time.Sunday:
			floor = floor.AddDate(0, 0, -2)
		}
	}
	return floor
}

func (n *Normalizer) warn(msg string, args ...any) {
	if n.logger != nil {
		n.logger.Warn(msg, args...)
	}
}

func parseJapaneseDate(text string, loc *time.Location) (time.Time, error) {
	m := JapaneseDateExpr.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, domain.ErrUnparseableDate
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, domain.ErrUnparseableDate
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
