package domain

import "context"

// SearchCategory identifies one research topic.
type SearchCategory string

const (
	CategoryNews       SearchCategory = "news"
	CategoryCulture    SearchCategory = "culture"
	CategoryTech       SearchCategory = "tech"
	CategoryInterviews SearchCategory = "interviews"
)

// Categories lists the research categories in canonical order. The
// orchestrator concatenates per-category results in this order, so the
// aggregated output is stable regardless of completion order.
var Categories = []SearchCategory{CategoryNews, CategoryCulture, CategoryTech, CategoryInterviews}

// SearchHit is a single raw result from the web search provider.
type SearchHit struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// WebSearcher issues one query against the web search provider and
// returns at most maxResults hits.
type WebSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchHit, error)
}

// CategorySearcher runs the topic-specific query for one category.
type CategorySearcher interface {
	Category() SearchCategory
	Search(ctx context.Context, company string) ([]SearchHit, error)
}
