package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/nagampere/MLIT-Summary-Bot/internal/domain"
)

// Assemble concatenates per-item summaries into the run's Markdown digest.
// Pure and deterministic: section order follows the entry order, no merging.
func Assemble(entries []domain.SummaryEntry, provider string, generatedAt time.Time) domain.SummaryDocument {
	var b strings.Builder

	fmt.Fprintf(&b, "# 本日の国土交通省 大臣会見・報道発表サマリー（%s時点）\n",
		generatedAt.Format("2006-01-02"))

	for _, entry := range entries {
		b.WriteString("\n---\n\n")
		fmt.Fprintf(&b, "## [%s] %s\n\n", entry.Item.Source, entry.Item.Title)
		b.WriteString(entry.Summary)
		b.WriteString("\n")
	}

	if provider != "" {
		fmt.Fprintf(&b, "\n---\n_この要約は **%s** を用いて自動生成されました。_\n", provider)
	}

	return domain.SummaryDocument{
		GeneratedAt: generatedAt,
		Provider:    provider,
		Entries:     entries,
		Markdown:    b.String(),
	}
}
