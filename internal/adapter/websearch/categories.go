package websearch

import (
	"context"
	"fmt"

	"company-researcher/internal/domain"
)

// queryTemplates maps each research category to its provider query.
// The %s verb receives the company name.
var queryTemplates = map[domain.SearchCategory]string{
	domain.CategoryNews:       "%s latest news 2026",
	domain.CategoryCulture:    "%s company culture values employees",
	domain.CategoryTech:       "%s tech stack engineering technology",
	domain.CategoryInterviews: "%s interview process tips questions",
}

type categorySearcher struct {
	category   domain.SearchCategory
	template   string
	searcher   domain.WebSearcher
	maxResults int
}

// NewCategorySearchers builds one searcher per research category, in
// canonical category order, each capped at maxResults hits.
func NewCategorySearchers(searcher domain.WebSearcher, maxResults int) []domain.CategorySearcher {
	searchers := make([]domain.CategorySearcher, 0, len(domain.Categories))
	for _, category := range domain.Categories {
		searchers = append(searchers, &categorySearcher{
			category:   category,
			template:   queryTemplates[category],
			searcher:   searcher,
			maxResults: maxResults,
		})
	}
	return searchers
}

func (s *categorySearcher) Category() domain.SearchCategory {
	return s.category
}

func (s *categorySearcher) Search(ctx context.Context, company string) ([]domain.SearchHit, error) {
	return s.searcher.Search(ctx, fmt.Sprintf(s.template, company), s.maxResults)
}

var _ domain.CategorySearcher = (*categorySearcher)(nil)
