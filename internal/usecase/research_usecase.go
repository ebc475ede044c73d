package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"company-researcher/internal/domain"
)

// ResearchOutput carries the aggregated research for one company.
type ResearchOutput struct {
	// Chunks are the deduplicated "{title}. {snippet}" strings, in
	// canonical category order.
	Chunks []string
	// SourcesFound counts raw hits across all categories before
	// deduplication.
	SourcesFound int
}

// ResearchCompanyUsecase fans out the category searches for a company
// and aggregates their hits into embeddable text chunks.
type ResearchCompanyUsecase interface {
	Execute(ctx context.Context, company string) (*ResearchOutput, error)
}

type researchCompanyUsecase struct {
	searchers []domain.CategorySearcher
	logger    *slog.Logger
}

// NewResearchCompanyUsecase wires the orchestrator over the given
// category searchers. Searcher order defines aggregation order.
func NewResearchCompanyUsecase(searchers []domain.CategorySearcher, logger *slog.Logger) ResearchCompanyUsecase {
	return &researchCompanyUsecase{searchers: searchers, logger: logger}
}

// Execute runs every category search concurrently. A failing category
// degrades to an empty result set and is logged, never fatal; the
// combined hit list keeps searcher order regardless of completion
// order. An all-empty aggregate is a valid (not erroneous) outcome.
func (u *researchCompanyUsecase) Execute(ctx context.Context, company string) (*ResearchOutput, error) {
	if len(u.searchers) == 0 {
		return nil, &domain.ResearchError{Err: fmt.Errorf("no category searchers configured")}
	}

	perCategory := make([][]domain.SearchHit, len(u.searchers))
	g, gctx := errgroup.WithContext(ctx)
	for i, searcher := range u.searchers {
		g.Go(func() error {
			start := time.Now()
			hits, err := searcher.Search(gctx, company)
			if err != nil {
				u.logger.Warn("category_search_failed",
					slog.String("category", string(searcher.Category())),
					slog.String("company", company),
					slog.String("error", err.Error()))
				return nil // non-fatal
			}
			if len(hits) == 0 {
				u.logger.Warn("category_search_empty",
					slog.String("category", string(searcher.Category())),
					slog.String("company", company))
			} else {
				u.logger.Info("category_search_completed",
					slog.String("category", string(searcher.Category())),
					slog.String("company", company),
					slog.Int("hits", len(hits)),
					slog.Duration("elapsed", time.Since(start)))
			}
			perCategory[i] = hits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &domain.ResearchError{Err: err}
	}

	var combined []domain.SearchHit
	for _, hits := range perCategory {
		combined = append(combined, hits...)
	}
	chunks := domain.AggregateHits(combined)

	u.logger.Info("research_aggregated",
		slog.String("company", company),
		slog.Int("raw_hits", len(combined)),
		slog.Int("unique_chunks", len(chunks)))

	return &ResearchOutput{Chunks: chunks, SourcesFound: len(combined)}, nil
}
