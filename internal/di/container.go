package di

import (
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"company-researcher/internal/adapter/ollama"
	"company-researcher/internal/adapter/repository"
	"company-researcher/internal/adapter/websearch"
	"company-researcher/internal/domain"
	"company-researcher/internal/infra/config"
	"company-researcher/internal/infra/httpclient"
	"company-researcher/internal/usecase"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	DocRepo domain.CompanyDocumentRepository

	ResearchUsecase usecase.ResearchCompanyUsecase
	IngestUsecase   usecase.IngestResearchUsecase
	RetrieveUsecase usecase.RetrieveContextUsecase
	AnswerUsecase   usecase.AnswerUsecase
	Pipeline        usecase.CompanyResearchUsecase
}

// NewApplicationComponents wires all dependencies from config and database pool.
func NewApplicationComponents(cfg *config.Config, pool *pgxpool.Pool, log *slog.Logger) *ApplicationComponents {
	docRepo := repository.NewCompanyDocumentRepository(pool)

	// Shared HTTP clients with connection pooling
	searchHTTP := httpclient.NewPooledClient(cfg.SearchTimeout)
	embedderHTTP := httpclient.NewPooledClient(cfg.OllamaTimeout)
	generatorHTTP := httpclient.NewPooledClient(cfg.GenerationTimeout)

	// External clients
	searchClient := websearch.NewDuckDuckGoClient(
		cfg.SearchBaseURL, searchHTTP,
		time.Duration(cfg.SearchPaceSeconds)*time.Second, log)
	searchers := websearch.NewCategorySearchers(searchClient, cfg.SearchMaxResults)
	embedder := ollama.NewEmbedder(cfg.OllamaURL, cfg.EmbeddingModel, embedderHTTP, log)
	generator := ollama.NewGenerator(cfg.GenerationURL, cfg.GenerationModel, cfg.GenerationAPIKey, generatorHTTP, log)

	// Domain services
	chunker := domain.NewWordChunker(cfg.ChunkMaxWords)

	// Usecases
	researchUsecase := usecase.NewResearchCompanyUsecase(searchers, log)
	ingestUsecase := usecase.NewIngestResearchUsecase(docRepo, chunker, embedder, log)
	retrieveUsecase := usecase.NewRetrieveContextUsecase(docRepo, embedder, log)
	promptBuilder := usecase.NewContextPromptBuilder()
	answerUsecase := usecase.NewAnswerUsecase(promptBuilder, generator, cfg.AnswerMaxTokens, log)

	var opts []usecase.CompanyResearchOption
	if cfg.CacheSize > 0 {
		opts = append(opts, usecase.WithAnswerCache(
			cfg.CacheSize, time.Duration(cfg.CacheTTLMinutes)*time.Minute))
		log.Info("answer_cache_enabled",
			slog.Int("size", cfg.CacheSize),
			slog.Int("ttl_minutes", cfg.CacheTTLMinutes))
	}

	pipeline := usecase.NewCompanyResearchUsecase(
		docRepo, researchUsecase, ingestUsecase, retrieveUsecase, answerUsecase,
		cfg.TopK, log, opts...,
	)

	return &ApplicationComponents{
		DocRepo:         docRepo,
		ResearchUsecase: researchUsecase,
		IngestUsecase:   ingestUsecase,
		RetrieveUsecase: retrieveUsecase,
		AnswerUsecase:   answerUsecase,
		Pipeline:        pipeline,
	}
}
