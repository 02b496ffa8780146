package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nagampere/MLIT-Summary-Bot/internal/domain"
	"github.com/nagampere/MLIT-Summary-Bot/internal/ports"
)

// Gateway dispatches item text to the configured provider and applies the
// provider-independent post-processing: trim, then append the source URL so
// every summary is traceable regardless of backend.
type Gateway struct {
	summarizer ports.Summarizer
	logger     *slog.Logger
}

// NewGateway wires the selected provider.
func NewGateway(summarizer ports.Summarizer, log *slog.Logger) *Gateway {
	return &Gateway{summarizer: summarizer, logger: log}
}

// ProviderName reports the backend label for the digest footer.
func (g *Gateway) ProviderName() string {
	if g.summarizer == nil {
		return ""
	}
	return g.summarizer.Provider()
}

// SummarizeItem generates one entry. The returned summary always ends with
// the item URL as a trailing reference line.
func (g *Gateway) SummarizeItem(ctx context.Context, item domain.Item) (domain.SummaryEntry, error) {
	if g.summarizer == nil {
		return domain.SummaryEntry{}, fmt.Errorf("no summarizer configured")
	}

	text, err := g.summarizer.SummarizeText(ctx, buildPrompt(item))
	if err != nil {
		return domain.SummaryEntry{}, &domain.SummarizationError{
			Provider: g.summarizer.Provider(),
			URL:      item.URL,
			Err:      err,
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return domain.SummaryEntry{}, &domain.SummarizationError{
			Provider: g.summarizer.Provider(),
			URL:      item.URL,
			Err:      domain.ErrEmptySummary,
		}
	}

	g.logger.Debug("item summarized", "url", item.URL, "chars", len(text))
	return domain.SummaryEntry{
		Item:    item,
		Summary: text + "\n\n" + item.URL,
	}, nil
}

func buildPrompt(item domain.Item) string {
	return fmt.Sprintf(`あなたは日本の行政情報に詳しいアシスタントです。
以下は国土交通省の%sです。内容を日本語のMarkdownで簡潔に要約してください。

- 箇条書きで3〜5行程度
- 政策的に重要なポイントは**太字**で強調
- 出力は完全なMarkdownのみ（余計な説明文は不要）

タイトル: %s
日付: %s

===== 本文 =====
%s`, item.Source, item.Title, item.PublishedAt.Format("2006-01-02"), item.Body)
}
