package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"company-researcher/internal/domain"
)

// ResearchRequest is the input to the full research pipeline.
type ResearchRequest struct {
	Company string
	Query   string
}

// ResearchResult is the success bundle returned to the API layer.
type ResearchResult struct {
	Company        string
	Query          string
	Answer         string
	SourcesFound   int
	ChunksEmbedded int
	ExecutionTime  time.Duration
}

// CompanyResearchUsecase runs the staged pipeline:
// clear, research, ingest, retrieve, synthesize. Each stage is gated on
// the previous stage's success; the first fatal error aborts the run.
type CompanyResearchUsecase interface {
	Execute(ctx context.Context, req ResearchRequest) (*ResearchResult, error)
}

type companyResearchUsecase struct {
	repo     domain.CompanyDocumentRepository
	research ResearchCompanyUsecase
	ingest   IngestResearchUsecase
	retrieve RetrieveContextUsecase
	answer   AnswerUsecase
	topK     int
	cache    *expirable.LRU[string, ResearchResult]
	logger   *slog.Logger
}

// CompanyResearchOption customizes the pipeline usecase.
type CompanyResearchOption func(*companyResearchUsecase)

// WithAnswerCache enables an expirable LRU cache of completed results
// keyed by company and query. Size <= 0 leaves caching off.
func WithAnswerCache(size int, ttl time.Duration) CompanyResearchOption {
	return func(u *companyResearchUsecase) {
		if size > 0 {
			u.cache = expirable.NewLRU[string, ResearchResult](size, nil, ttl)
		}
	}
}

func NewCompanyResearchUsecase(
	repo domain.CompanyDocumentRepository,
	research ResearchCompanyUsecase,
	ingest IngestResearchUsecase,
	retrieve RetrieveContextUsecase,
	answer AnswerUsecase,
	topK int,
	logger *slog.Logger,
	opts ...CompanyResearchOption,
) CompanyResearchUsecase {
	u := &companyResearchUsecase{
		repo:     repo,
		research: research,
		ingest:   ingest,
		retrieve: retrieve,
		answer:   answer,
		topK:     topK,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *companyResearchUsecase) Execute(ctx context.Context, req ResearchRequest) (*ResearchResult, error) {
	start := time.Now()
	log := u.logger.With(
		slog.String("run_id", uuid.NewString()),
		slog.String("company", req.Company))

	cacheKey := companyKey(req.Company) + "\x00" + req.Query
	if u.cache != nil {
		if cached, ok := u.cache.Get(cacheKey); ok {
			log.Info("research_cache_hit", slog.String("query", req.Query))
			return &cached, nil
		}
	}

	// Stage 1: clear the company's previous documents before any
	// search traffic goes out.
	if err := u.repo.DeleteByCompany(ctx, req.Company); err != nil {
		return nil, &domain.StoreError{Op: "clear", Err: err}
	}
	log.Info("stage_completed", slog.String("stage", "clear"))

	// Stage 2: research. An empty aggregate is a not-found condition,
	// not a failure, and stops the pipeline before ingestion.
	research, err := u.research.Execute(ctx, req.Company)
	if err != nil {
		return nil, err
	}
	if len(research.Chunks) == 0 {
		return nil, fmt.Errorf("research for %q: %w", req.Company, domain.ErrNoSearchResults)
	}
	log.Info("stage_completed",
		slog.String("stage", "research"),
		slog.Int("sources_found", research.SourcesFound),
		slog.Int("chunks", len(research.Chunks)))

	// Stage 3: ingest.
	embedded, err := u.ingest.Execute(ctx, req.Company, research.Chunks)
	if err != nil {
		return nil, err
	}
	log.Info("stage_completed",
		slog.String("stage", "ingest"),
		slog.Int("chunks_embedded", embedded))

	// Stage 4: retrieve.
	contextChunks, err := u.retrieve.Execute(ctx, req.Company, req.Query, u.topK)
	if err != nil {
		return nil, err
	}
	if len(contextChunks) == 0 {
		return nil, fmt.Errorf("retrieval for %q: %w", req.Company, domain.ErrNoRelevantContext)
	}
	log.Info("stage_completed",
		slog.String("stage", "retrieve"),
		slog.Int("context_chunks", len(contextChunks)))

	// Stage 5: synthesize.
	answer, err := u.answer.Execute(ctx, req.Query, contextChunks)
	if err != nil {
		return nil, err
	}

	result := &ResearchResult{
		Company:        req.Company,
		Query:          req.Query,
		Answer:         answer,
		SourcesFound:   research.SourcesFound,
		ChunksEmbedded: embedded,
		ExecutionTime:  time.Since(start),
	}
	if u.cache != nil {
		u.cache.Add(cacheKey, *result)
	}

	log.Info("research_completed",
		slog.Int("sources_found", result.SourcesFound),
		slog.Int("chunks_embedded", result.ChunksEmbedded),
		slog.Duration("elapsed", result.ExecutionTime))
	return result, nil
}
