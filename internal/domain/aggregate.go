package domain

import "strings"

// AggregateHits deduplicates hits by trimmed source URL and renders each
// survivor as a flat text chunk ready for embedding.
//
// The first occurrence of a URL wins and first-seen order is preserved.
// An empty URL is a real dedup key, so at most one empty-URL hit
// survives. Each surviving hit renders as "{title}. {snippet}" with both
// fields trimmed; hits whose rendered text is empty or a bare period are
// dropped.
func AggregateHits(hits []SearchHit) []string {
	seen := make(map[string]struct{}, len(hits))
	chunks := make([]string, 0, len(hits))
	for _, h := range hits {
		url := strings.TrimSpace(h.URL)
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}

		title := strings.TrimSpace(h.Title)
		snippet := strings.TrimSpace(h.Snippet)
		text := strings.TrimSpace(title + ". " + snippet)
		if text == "" || text == "." {
			continue
		}
		chunks = append(chunks, text)
	}
	return chunks
}
