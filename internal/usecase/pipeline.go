package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/nagampere/MLIT-Summary-Bot/internal/deliver"
	"github.com/nagampere/MLIT-Summary-Bot/internal/domain"
	"github.com/nagampere/MLIT-Summary-Bot/internal/normalize"
	"github.com/nagampere/MLIT-Summary-Bot/internal/ports"
	"github.com/nagampere/MLIT-Summary-Bot/internal/summary"
)

// PipelineDeps wires all collaborators into the orchestration pipeline.
type PipelineDeps struct {
	Sources      []ports.PressSource
	Normalizer   *normalize.Normalizer
	Gateway      *summary.Gateway
	Router       *deliver.Router
	ArtifactPath string
	Logger       *slog.Logger
}

// Pipeline implements the fetch → normalize → summarize → assemble → deliver
// workflow for one run.
type Pipeline struct {
	sources      []ports.PressSource
	normalizer   *normalize.Normalizer
	gateway      *summary.Gateway
	router       *deliver.Router
	artifactPath string
	logger       *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		sources:      deps.Sources,
		normalizer:   deps.Normalizer,
		gateway:      deps.Gateway,
		router:       deps.Router,
		artifactPath: deps.ArtifactPath,
		logger:       logger,
	}
}

// Run executes one ingestion-to-delivery cycle anchored at now. The artifact
// file is written before any delivery so a transport failure loses no work.
func (p *Pipeline) Run(ctx context.Context, now time.Time) error {
	records, err := p.fetchAll(ctx)
	if err != nil {
		return err
	}

	items := p.normalizer.Normalize(records, now)
	if len(items) == 0 {
		p.logger.Info("no items within the window, nothing to summarize")
		return nil
	}
	p.logger.Info("items normalized", "count", len(items))

	entries := p.summarizeAll(ctx, items)
	if len(entries) == 0 {
		return fmt.Errorf("all %d items failed to summarize", len(items))
	}

	doc := summary.Assemble(entries, p.gateway.ProviderName(), now)

	if err := p.writeArtifact(doc); err != nil {
		p.logger.Warn("artifact write failed", "path", p.artifactPath, "error", err)
	}

	if p.router == nil {
		return nil
	}
	return p.router.Deliver(ctx, doc)
}

// fetchAll queries sources in their configured order; a failed source
// degrades the run to partial data unless every source fails. Order matters:
// duplicates are resolved first-seen-wins downstream.
func (p *Pipeline) fetchAll(ctx context.Context) ([]domain.RawRecord, error) {
	var records []domain.RawRecord
	failures := 0
	for _, src := range p.sources {
		recs, err := src.Fetch(ctx)
		if err != nil {
			p.logger.Warn("source fetch failed, continuing with remaining sources",
				"source", src.Name(), "error", err)
			failures++
			continue
		}
		p.logger.Debug("source fetched", "source", src.Name(), "records", len(recs))
		records = append(records, recs...)
	}

	if len(p.sources) > 0 && failures == len(p.sources) {
		return nil, fmt.Errorf("all %d sources failed to fetch", len(p.sources))
	}
	return records, nil
}

// summarizeAll processes items sequentially; a failed item is skipped with a
// warning and the run continues with the survivors.
func (p *Pipeline) summarizeAll(ctx context.Context, items []domain.Item) []domain.SummaryEntry {
	entries := make([]domain.SummaryEntry, 0, len(items))
	for _, item := range items {
		entry, err := p.gateway.SummarizeItem(ctx, item)
		if err != nil {
			p.logger.Warn("skipping item after summarization failure", "url", item.URL, "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func (p *Pipeline) writeArtifact(doc domain.SummaryDocument) error {
	if p.artifactPath == "" {
		return nil
	}
	if err := os.WriteFile(p.artifactPath, []byte(doc.Markdown), 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	p.logger.Info("artifact written", "path", p.artifactPath)
	return nil
}
