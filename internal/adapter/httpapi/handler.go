package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"company-researcher/internal/domain"
	"company-researcher/internal/usecase"
)

// ResearchRequestBody is the POST /research payload.
type ResearchRequestBody struct {
	CompanyName string `json:"company_name"`
	Query       string `json:"query"`
}

// ResearchResponseBody is the success envelope for POST /research.
type ResearchResponseBody struct {
	Status         string  `json:"status"`
	Company        string  `json:"company"`
	Query          string  `json:"query"`
	Answer         string  `json:"answer"`
	SourcesFound   int     `json:"sources_found"`
	ChunksEmbedded int     `json:"chunks_embedded"`
	ExecutionTimeS float64 `json:"execution_time_s"`
}

type errorBody struct {
	Detail string `json:"detail"`
}

type Handler struct {
	pipeline usecase.CompanyResearchUsecase
	logger   *slog.Logger
}

func NewHandler(pipeline usecase.CompanyResearchUsecase, logger *slog.Logger) *Handler {
	return &Handler{pipeline: pipeline, logger: logger}
}

// Register mounts the API routes on the echo instance.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)
	e.POST("/research", h.Research)
}

// (GET /)
func (h *Handler) Root(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"message": "Hello from Company Research Assistant!"})
}

// (GET /health)
func (h *Handler) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Research runs the full pipeline for one company and query.
// (POST /research)
func (h *Handler) Research(ctx echo.Context) error {
	var req ResearchRequestBody
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody{Detail: "invalid request body"})
	}

	company := strings.TrimSpace(req.CompanyName)
	query := strings.TrimSpace(req.Query)
	if company == "" {
		return ctx.JSON(http.StatusBadRequest, errorBody{Detail: "company_name must not be empty"})
	}
	if query == "" {
		return ctx.JSON(http.StatusBadRequest, errorBody{Detail: "query must not be empty"})
	}

	result, err := h.pipeline.Execute(ctx.Request().Context(), usecase.ResearchRequest{
		Company: company,
		Query:   query,
	})
	if err != nil {
		return h.mapError(ctx, company, err)
	}

	return ctx.JSON(http.StatusOK, ResearchResponseBody{
		Status:         "ok",
		Company:        result.Company,
		Query:          result.Query,
		Answer:         result.Answer,
		SourcesFound:   result.SourcesFound,
		ChunksEmbedded: result.ChunksEmbedded,
		ExecutionTimeS: result.ExecutionTime.Seconds(),
	})
}

func (h *Handler) mapError(ctx echo.Context, company string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNoSearchResults):
		return ctx.JSON(http.StatusNotFound, errorBody{
			Detail: fmt.Sprintf("no search results found for company %q", company),
		})
	case errors.Is(err, domain.ErrNoRelevantContext):
		return ctx.JSON(http.StatusNotFound, errorBody{
			Detail: fmt.Sprintf("no relevant context found for company %q", company),
		})
	}

	var storeErr *domain.StoreError
	if errors.As(err, &storeErr) {
		h.logger.Error("store_error",
			slog.String("company", company),
			slog.String("op", storeErr.Op),
			slog.String("error", storeErr.Error()))
		return ctx.JSON(http.StatusInternalServerError, errorBody{Detail: storeErr.Error()})
	}

	var genErr *domain.GenerationError
	if errors.As(err, &genErr) {
		h.logger.Error("generation_error",
			slog.String("company", company),
			slog.String("error", genErr.Error()))
		return ctx.JSON(http.StatusServiceUnavailable, errorBody{Detail: genErr.Error()})
	}

	var researchErr *domain.ResearchError
	if errors.As(err, &researchErr) {
		h.logger.Error("research_error",
			slog.String("company", company),
			slog.String("error", researchErr.Error()))
		return ctx.JSON(http.StatusServiceUnavailable, errorBody{Detail: researchErr.Error()})
	}

	h.logger.Error("unhandled_error",
		slog.String("company", company),
		slog.String("error", err.Error()))
	return ctx.JSON(http.StatusInternalServerError, errorBody{Detail: err.Error()})
}
