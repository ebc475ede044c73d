package websearch_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"company-researcher/internal/adapter/websearch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<!DOCTYPE html>
<html><body>
<div id="links" class="results">
  <div class="result results_links results_links_deep web-result">
    <div class="links_main links_deep result__body">
      <h2 class="result__title">
        <a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fnews&amp;rut=abc123">Example News</a>
      </h2>
      <a class="result__snippet" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fnews">Latest <b>Example</b> headlines.</a>
    </div>
  </div>
  <div class="result results_links results_links_deep web-result">
    <div class="links_main links_deep result__body">
      <h2 class="result__title">
        <a rel="nofollow" class="result__a" href="https://example.org/culture">Example Culture</a>
      </h2>
      <a class="result__snippet" href="https://example.org/culture">Values and employees.</a>
    </div>
  </div>
  <div class="result results_links results_links_deep web-result">
    <div class="links_main links_deep result__body">
      <h2 class="result__title">
        <a rel="nofollow" class="result__a" href="https://example.org/third">Third</a>
      </h2>
      <a class="result__snippet" href="https://example.org/third">Third snippet.</a>
    </div>
  </div>
</div>
</body></html>`

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestDuckDuckGoClient_Search(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	client := websearch.NewDuckDuckGoClient(srv.URL, srv.Client(), 0, newTestLogger())
	hits, err := client.Search(context.Background(), "Stripe latest news 2026", 10)
	require.NoError(t, err)

	assert.Equal(t, "Stripe latest news 2026", gotQuery)
	require.Len(t, hits, 3)

	assert.Equal(t, "Example News", hits[0].Title)
	assert.Equal(t, "https://example.com/news", hits[0].URL)
	assert.Equal(t, "Latest Example headlines.", hits[0].Snippet)

	assert.Equal(t, "Example Culture", hits[1].Title)
	assert.Equal(t, "https://example.org/culture", hits[1].URL)
	assert.Equal(t, "Values and employees.", hits[1].Snippet)
}

func TestDuckDuckGoClient_Search_CapsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	client := websearch.NewDuckDuckGoClient(srv.URL, srv.Client(), 0, newTestLogger())
	hits, err := client.Search(context.Background(), "query", 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestDuckDuckGoClient_Search_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := websearch.NewDuckDuckGoClient(srv.URL, srv.Client(), 0, newTestLogger())
	hits, err := client.Search(context.Background(), "query", 5)
	assert.Error(t, err)
	assert.Nil(t, hits)
}

func TestDuckDuckGoClient_Search_EmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div class="no-results">No results.</div></body></html>`))
	}))
	defer srv.Close()

	client := websearch.NewDuckDuckGoClient(srv.URL, srv.Client(), 0, newTestLogger())
	hits, err := client.Search(context.Background(), "query", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
