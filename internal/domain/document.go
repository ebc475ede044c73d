package domain

import (
	"context"

	"github.com/pgvector/pgvector-go"
)

// SourceWebSearch tags documents produced by the research pipeline.
const SourceWebSearch = "web_search"

// CompanyDocument is one embedded sub-chunk of research text.
type CompanyDocument struct {
	ID        string
	Company   string
	Source    string
	Content   string
	Embedding pgvector.Vector
}

// CompanyDocumentRepository persists embedded research documents.
// Every operation is scoped to a company name so concurrent runs for
// different companies never touch each other's documents.
type CompanyDocumentRepository interface {
	// UpsertDocuments inserts or overwrites documents by ID in one batch.
	UpsertDocuments(ctx context.Context, docs []CompanyDocument) error

	// DeleteByCompany removes every document belonging to the company.
	DeleteByCompany(ctx context.Context, company string) error

	// CountByCompany reports how many documents the company has.
	CountByCompany(ctx context.Context, company string) (int, error)

	// SearchByCompany returns up to limit of the company's documents
	// nearest to the query vector, most similar first.
	SearchByCompany(ctx context.Context, company string, queryVector []float32, limit int) ([]CompanyDocument, error)
}
