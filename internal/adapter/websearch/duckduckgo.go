package websearch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"company-researcher/internal/domain"
)

// DefaultBaseURL is DuckDuckGo's JavaScript-free results endpoint.
const DefaultBaseURL = "https://html.duckduckgo.com/html/"

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) company-researcher/1.0"

// DuckDuckGoClient queries DuckDuckGo's HTML endpoint and parses the
// result list into search hits. Outbound calls are paced by a limiter so
// a burst of category searches does not trip the provider.
type DuckDuckGoClient struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewDuckDuckGoClient constructs a client against baseURL. minInterval
// is the minimum spacing between provider calls; zero disables pacing.
func NewDuckDuckGoClient(baseURL string, client *http.Client, minInterval time.Duration, logger *slog.Logger) *DuckDuckGoClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &DuckDuckGoClient{
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// Search issues one query and returns at most maxResults hits in result
// order. Provider failures surface as errors; callers decide whether to
// absorb them.
func (c *DuckDuckGoClient) Search(ctx context.Context, query string, maxResults int) ([]domain.SearchHit, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	start := time.Now()
	reqURL := c.baseURL + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call search provider: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search provider returned status: %d", resp.StatusCode)
	}

	hits, err := parseResults(resp.Body, maxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}

	c.logger.Debug("web_search_completed",
		slog.String("query", query),
		slog.Int("hits", len(hits)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return hits, nil
}

// parseResults walks the result page and extracts title, snippet and
// resolved target URL for each result block.
func parseResults(r io.Reader, maxResults int) ([]domain.SearchHit, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var hits []domain.SearchHit
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if maxResults > 0 && len(hits) >= maxResults {
			return
		}
		if n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "result") {
			hit := parseResult(n)
			if hit.Title != "" || hit.Snippet != "" {
				hits = append(hits, hit)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return hits, nil
}

func parseResult(result *html.Node) domain.SearchHit {
	var hit domain.SearchHit
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "a" && hasClass(n, "result__a"):
				if hit.Title == "" {
					hit.Title = strings.TrimSpace(textContent(n))
					hit.URL = resolveRedirect(attr(n, "href"))
				}
			case hasClass(n, "result__snippet"):
				if hit.Snippet == "" {
					hit.Snippet = strings.TrimSpace(textContent(n))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(result)
	return hit
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg=<target> redirect links
// to the real destination URL.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	return href
}

func hasClass(n *html.Node, class string) bool {
	for _, token := range strings.Fields(attr(n, "class")) {
		if token == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

var _ domain.WebSearcher = (*DuckDuckGoClient)(nil)
