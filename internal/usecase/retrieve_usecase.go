package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"company-researcher/internal/domain"
)

// DefaultTopK is the number of context chunks retrieved per question
// when no explicit k is configured.
const DefaultTopK = 3

// RetrieveContextUsecase returns the stored chunks most relevant to a
// question, scoped to one company.
type RetrieveContextUsecase interface {
	// Execute returns up to k chunk texts in relevance order. An empty
	// store yields an empty result without issuing a vector query.
	Execute(ctx context.Context, company, query string, k int) ([]string, error)
}

type retrieveContextUsecase struct {
	repo    domain.CompanyDocumentRepository
	encoder domain.VectorEncoder
	logger  *slog.Logger
}

func NewRetrieveContextUsecase(
	repo domain.CompanyDocumentRepository,
	encoder domain.VectorEncoder,
	logger *slog.Logger,
) RetrieveContextUsecase {
	return &retrieveContextUsecase{repo: repo, encoder: encoder, logger: logger}
}

func (u *retrieveContextUsecase) Execute(ctx context.Context, company, query string, k int) ([]string, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	count, err := u.repo.CountByCompany(ctx, company)
	if err != nil {
		return nil, &domain.StoreError{Op: "count", Err: err}
	}
	if count == 0 {
		u.logger.Info("retrieve_skipped_empty_store", slog.String("company", company))
		return nil, nil
	}

	limit := k
	if count < limit {
		limit = count
	}

	embeddings, err := u.encoder.Encode(ctx, []string{query})
	if err != nil {
		return nil, &domain.StoreError{Op: "embed", Err: err}
	}
	if len(embeddings) == 0 {
		return nil, &domain.StoreError{Op: "embed", Err: fmt.Errorf("no embedding returned for query")}
	}

	docs, err := u.repo.SearchByCompany(ctx, company, embeddings[0], limit)
	if err != nil {
		return nil, &domain.StoreError{Op: "retrieve", Err: err}
	}

	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		texts = append(texts, doc.Content)
	}

	u.logger.Info("retrieve_completed",
		slog.String("company", company),
		slog.Int("requested", limit),
		slog.Int("returned", len(texts)))
	return texts, nil
}
