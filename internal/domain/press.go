package domain

import "time"

// Source labels carried through to the rendered digest.
const (
	SourcePressRelease = "報道発表"
	SourceInterview    = "大臣会見"
)

// RawRecord is the transient per-source shape produced by fetchers.
// Either PublishedAt (RSS) or DateText (scraped listing) carries the date;
// normalization resolves the two and discards the record.
type RawRecord struct {
	Source      string
	Title       string
	URL         string
	PublishedAt time.Time
	DateText    string
	Body        string
}

// Item is a normalized press item. URL is the absolute, unique identifier
// within a run; Items are immutable once created.
type Item struct {
	Source      string
	Title       string
	URL         string
	PublishedAt time.Time
	Body        string
}

// SummaryEntry pairs an item with its generated summary. Summary always ends
// with the item URL as a trailing reference line.
type SummaryEntry struct {
	Item    Item
	Summary string
}

// SummaryDocument is the ordered digest for one run, serialized as Markdown.
// Never mutated after assembly.
type SummaryDocument struct {
	GeneratedAt time.Time
	Provider    string
	Entries     []SummaryEntry
	Markdown    string
}

// DeliveryTarget is the resolved Slack destination for a run.
type DeliveryTarget struct {
	ChannelID     string
	DirectMessage bool
}
