package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"company-researcher/internal/domain"
)

// companyDocumentRepository stores embedded research documents in the
// company_documents table:
//
//	CREATE TABLE company_documents (
//	    id        TEXT PRIMARY KEY,
//	    company   TEXT NOT NULL,
//	    source    TEXT NOT NULL,
//	    content   TEXT NOT NULL,
//	    embedding VECTOR NOT NULL
//	);
//	CREATE INDEX ON company_documents (company);
type companyDocumentRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyDocumentRepository creates a pgvector-backed document
// repository.
func NewCompanyDocumentRepository(pool *pgxpool.Pool) domain.CompanyDocumentRepository {
	return &companyDocumentRepository{pool: pool}
}

func (r *companyDocumentRepository) UpsertDocuments(ctx context.Context, docs []domain.CompanyDocument) error {
	if len(docs) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, doc := range docs {
		batch.Queue(`
			INSERT INTO company_documents (id, company, source, content, embedding)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE
			SET company   = EXCLUDED.company,
			    source    = EXCLUDED.source,
			    content   = EXCLUDED.content,
			    embedding = EXCLUDED.embedding
		`, doc.ID, doc.Company, doc.Source, doc.Content, doc.Embedding)
	}

	results := tx.SendBatch(ctx, batch)
	for range docs {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("failed to upsert document: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *companyDocumentRepository) DeleteByCompany(ctx context.Context, company string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM company_documents WHERE company = $1`, company)
	if err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}

func (r *companyDocumentRepository) CountByCompany(ctx context.Context, company string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM company_documents WHERE company = $1`, company).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}

func (r *companyDocumentRepository) SearchByCompany(ctx context.Context, company string, queryVector []float32, limit int) ([]domain.CompanyDocument, error) {
	query := `
		SELECT id, company, source, content, embedding
		FROM company_documents
		WHERE company = $1
		ORDER BY embedding <=> $2
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, company, pgvector.NewVector(queryVector), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.CompanyDocument
	for rows.Next() {
		var d domain.CompanyDocument
		if err := rows.Scan(&d.ID, &d.Company, &d.Source, &d.Content, &d.Embedding); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return docs, nil
}
