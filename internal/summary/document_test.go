package summary

import (
	"strings"
	"testing"
	"time"

	"github.com/nagampere/MLIT-Summary-Bot/internal/domain"
)

func TestAssembleOrderAndSections(t *testing.T) {
	t.Parallel()

	entries := []domain.SummaryEntry{
		{
			Item:    domain.Item{Source: domain.SourceInterview, Title: "会見A", URL: "https://example.org/u1"},
			Summary: "要約A\n\nhttps://example.org/u1",
		},
		{
			Item:    domain.Item{Source: domain.SourcePressRelease, Title: "発表B", URL: "https://example.org/u2"},
			Summary: "要約B\n\nhttps://example.org/u2",
		},
	}

	doc := Assemble(entries, "Claude (test)", time.Date(2025, time.November, 19, 9, 0, 0, 0, time.UTC))

	if !strings.HasPrefix(doc.Markdown, "# 本日の国土交通省") {
		t.Fatalf("expected document heading, got %q", doc.Markdown[:40])
	}
	if !strings.Contains(doc.Markdown, "2025-11-19") {
		t.Fatalf("expected dated heading")
	}

	posA := strings.Index(doc.Markdown, "## [大臣会見] 会見A")
	posB := strings.Index(doc.Markdown, "## [報道発表] 発表B")
	if posA < 0 || posB < 0 {
		t.Fatalf("expected one section per entry:\n%s", doc.Markdown)
	}
	if posA > posB {
		t.Fatalf("expected input order preserved")
	}

	if !strings.Contains(doc.Markdown, "Claude (test)") {
		t.Fatalf("expected provider footer")
	}
}

func TestAssembleSingleEntryTraceability(t *testing.T) {
	t.Parallel()

	entries := []domain.SummaryEntry{
		{
			Item:    domain.Item{Source: domain.SourcePressRelease, Title: "A", URL: "u1"},
			Summary: "summary\n\nu1",
		},
	}

	doc := Assemble(entries, "", time.Now())

	if got := strings.Count(doc.Markdown, "## "); got != 1 {
		t.Fatalf("expected exactly one section, got %d", got)
	}
	if !strings.Contains(doc.Markdown, "u1") {
		t.Fatalf("expected section to reference u1")
	}
	if len(doc.Entries) != 1 {
		t.Fatalf("expected entries carried on the document")
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	t.Parallel()

	entries := []domain.SummaryEntry{
		{Item: domain.Item{Source: domain.SourcePressRelease, Title: "A", URL: "u1"}, Summary: "s\n\nu1"},
	}
	at := time.Date(2025, time.November, 19, 0, 0, 0, 0, time.UTC)

	if Assemble(entries, "p", at).Markdown != Assemble(entries, "p", at).Markdown {
		t.Fatalf("expected identical output for identical input")
	}
}
