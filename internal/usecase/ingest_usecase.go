package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pgvector/pgvector-go"

	"company-researcher/internal/domain"
)

// IngestResearchUsecase embeds aggregated research chunks into the
// document store.
type IngestResearchUsecase interface {
	// Execute sub-chunks, embeds and upserts the chunks for a company,
	// returning the total number of embedded sub-chunks. Zero is valid
	// and means there was nothing to embed.
	Execute(ctx context.Context, company string, chunks []string) (int, error)
}

type ingestResearchUsecase struct {
	repo    domain.CompanyDocumentRepository
	chunker domain.WordChunker
	encoder domain.VectorEncoder
	logger  *slog.Logger
}

func NewIngestResearchUsecase(
	repo domain.CompanyDocumentRepository,
	chunker domain.WordChunker,
	encoder domain.VectorEncoder,
	logger *slog.Logger,
) IngestResearchUsecase {
	return &ingestResearchUsecase{
		repo:    repo,
		chunker: chunker,
		encoder: encoder,
		logger:  logger,
	}
}

// companyKey normalizes a company name for document IDs and cache keys:
// lower-cased, spaces replaced with underscores.
func companyKey(company string) string {
	return strings.ReplaceAll(strings.ToLower(company), " ", "_")
}

func (u *ingestResearchUsecase) Execute(ctx context.Context, company string, chunks []string) (int, error) {
	key := companyKey(company)

	// The sub-chunk index spans the whole ingestion call, so IDs stay
	// deterministic across re-ingestion of identical input.
	var contents []string
	var ids []string
	index := 0
	for _, chunk := range chunks {
		for _, sub := range u.chunker.Chunk(chunk) {
			contents = append(contents, sub)
			ids = append(ids, fmt.Sprintf("%s_chunk_%d", key, index))
			index++
		}
	}
	if len(contents) == 0 {
		u.logger.Info("ingest_skipped_empty", slog.String("company", company))
		return 0, nil
	}

	embeddings, err := u.encoder.Encode(ctx, contents)
	if err != nil {
		return 0, &domain.StoreError{Op: "embed", Err: err}
	}
	if len(embeddings) != len(contents) {
		return 0, &domain.StoreError{Op: "embed", Err: fmt.Errorf("embedding count mismatch: got %d for %d chunks", len(embeddings), len(contents))}
	}

	docs := make([]domain.CompanyDocument, len(contents))
	for i := range contents {
		docs[i] = domain.CompanyDocument{
			ID:        ids[i],
			Company:   company,
			Source:    domain.SourceWebSearch,
			Content:   contents[i],
			Embedding: pgvector.NewVector(embeddings[i]),
		}
	}

	if err := u.repo.UpsertDocuments(ctx, docs); err != nil {
		return 0, &domain.StoreError{Op: "upsert", Err: err}
	}

	u.logger.Info("ingest_completed",
		slog.String("company", company),
		slog.Int("source_chunks", len(chunks)),
		slog.Int("embedded_chunks", len(docs)))
	return len(docs), nil
}
