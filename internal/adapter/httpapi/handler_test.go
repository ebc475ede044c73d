package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"company-researcher/internal/adapter/httpapi"
	"company-researcher/internal/domain"
	"company-researcher/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPipeline struct {
	result  *usecase.ResearchResult
	err     error
	lastReq usecase.ResearchRequest
	calls   int
}

func (s *stubPipeline) Execute(ctx context.Context, req usecase.ResearchRequest) (*usecase.ResearchResult, error) {
	s.calls++
	s.lastReq = req
	return s.result, s.err
}

func newTestHandler(pipeline *stubPipeline) (*echo.Echo, *httpapi.Handler) {
	e := echo.New()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	h := httpapi.NewHandler(pipeline, logger)
	h.Register(e)
	return e, h
}

func postResearch(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/research", bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func TestHandler_Research_Success(t *testing.T) {
	pipeline := &stubPipeline{
		result: &usecase.ResearchResult{
			Company:        "Acme",
			Query:          "What does Acme do?",
			Answer:         "Acme ships rockets.",
			SourcesFound:   7,
			ChunksEmbedded: 3,
			ExecutionTime:  1500 * time.Millisecond,
		},
	}
	e, _ := newTestHandler(pipeline)

	rec := postResearch(e, `{"company_name":"Acme","query":"What does Acme do?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body httpapi.ResearchResponseBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "Acme", body.Company)
	assert.Equal(t, "Acme ships rockets.", body.Answer)
	assert.Equal(t, 7, body.SourcesFound)
	assert.Equal(t, 3, body.ChunksEmbedded)
	assert.InDelta(t, 1.5, body.ExecutionTimeS, 0.001)
}

func TestHandler_Research_TrimsInput(t *testing.T) {
	pipeline := &stubPipeline{result: &usecase.ResearchResult{Company: "Acme"}}
	e, _ := newTestHandler(pipeline)

	rec := postResearch(e, `{"company_name":"  Acme  ","query":"  q  "}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Acme", pipeline.lastReq.Company)
	assert.Equal(t, "q", pipeline.lastReq.Query)
}

func TestHandler_Research_BlankInputIsBadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing company", `{"query":"q"}`},
		{"whitespace company", `{"company_name":"   ","query":"q"}`},
		{"missing query", `{"company_name":"Acme"}`},
		{"malformed json", `{"company_name":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := &stubPipeline{}
			e, _ := newTestHandler(pipeline)

			rec := postResearch(e, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, pipeline.calls)
		})
	}
}

func TestHandler_Research_NoResultsIs404(t *testing.T) {
	pipeline := &stubPipeline{
		err: fmt.Errorf("research for %q: %w", "XYZ123FAKE", domain.ErrNoSearchResults),
	}
	e, _ := newTestHandler(pipeline)

	rec := postResearch(e, `{"company_name":"XYZ123FAKE","query":"q"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeDetail(t, rec), "XYZ123FAKE")
}

func TestHandler_Research_NoContextIs404(t *testing.T) {
	pipeline := &stubPipeline{err: domain.ErrNoRelevantContext}
	e, _ := newTestHandler(pipeline)

	rec := postResearch(e, `{"company_name":"Acme","query":"unrelated"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeDetail(t, rec), "Acme")
}

func TestHandler_Research_StoreErrorIs500(t *testing.T) {
	pipeline := &stubPipeline{
		err: &domain.StoreError{Op: "clear", Err: errors.New("connection refused")},
	}
	e, _ := newTestHandler(pipeline)

	rec := postResearch(e, `{"company_name":"Acme","query":"q"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeDetail(t, rec), "connection refused")
}

func TestHandler_Research_UpstreamErrorsAre503(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"generation", &domain.GenerationError{Err: errors.New("model offline")}},
		{"research", &domain.ResearchError{Err: errors.New("search provider down")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := &stubPipeline{err: tt.err}
			e, _ := newTestHandler(pipeline)

			rec := postResearch(e, `{"company_name":"Acme","query":"q"}`)

			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		})
	}
}

func TestHandler_RootAndHealth(t *testing.T) {
	e, _ := newTestHandler(&stubPipeline{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Company Research Assistant")

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
