package websearch_test

import (
	"context"
	"testing"

	"company-researcher/internal/adapter/websearch"
	"company-researcher/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSearcher struct {
	queries []string
	caps    []int
}

func (r *recordingSearcher) Search(ctx context.Context, query string, maxResults int) ([]domain.SearchHit, error) {
	r.queries = append(r.queries, query)
	r.caps = append(r.caps, maxResults)
	return []domain.SearchHit{{Title: query, URL: "https://example.com/" + query}}, nil
}

func TestNewCategorySearchers_OrderAndTemplates(t *testing.T) {
	rec := &recordingSearcher{}
	searchers := websearch.NewCategorySearchers(rec, 5)
	require.Len(t, searchers, 4)

	assert.Equal(t, domain.CategoryNews, searchers[0].Category())
	assert.Equal(t, domain.CategoryCulture, searchers[1].Category())
	assert.Equal(t, domain.CategoryTech, searchers[2].Category())
	assert.Equal(t, domain.CategoryInterviews, searchers[3].Category())

	for _, s := range searchers {
		_, err := s.Search(context.Background(), "Acme Corp")
		require.NoError(t, err)
	}

	assert.Equal(t, []string{
		"Acme Corp latest news 2026",
		"Acme Corp company culture values employees",
		"Acme Corp tech stack engineering technology",
		"Acme Corp interview process tips questions",
	}, rec.queries)
	assert.Equal(t, []int{5, 5, 5, 5}, rec.caps)
}
