package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"company-researcher/internal/domain"
)

// AnswerUsecase synthesizes an answer to a question from retrieved
// context chunks with a single generation call.
type AnswerUsecase interface {
	Execute(ctx context.Context, query string, context []string) (string, error)
}

type answerUsecase struct {
	promptBuilder PromptBuilder
	llmClient     domain.LLMClient
	maxTokens     int
	logger        *slog.Logger
}

func NewAnswerUsecase(
	promptBuilder PromptBuilder,
	llmClient domain.LLMClient,
	maxTokens int,
	logger *slog.Logger,
) AnswerUsecase {
	return &answerUsecase{
		promptBuilder: promptBuilder,
		llmClient:     llmClient,
		maxTokens:     maxTokens,
		logger:        logger,
	}
}

// Execute issues one generation call and returns the model text
// verbatim. Generation failures propagate as GenerationError; there is
// no retry.
func (u *answerUsecase) Execute(ctx context.Context, query string, context []string) (string, error) {
	prompt := u.promptBuilder.Build(query, context)
	start := time.Now()

	resp, err := u.llmClient.Generate(ctx, prompt, u.maxTokens)
	if err != nil {
		return "", &domain.GenerationError{Err: err}
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return "", &domain.GenerationError{Err: fmt.Errorf("empty llm response")}
	}

	u.logger.Info("answer_generated",
		slog.String("model", u.llmClient.Version()),
		slog.Int("context_chunks", len(context)),
		slog.Duration("elapsed", time.Since(start)))
	return resp.Text, nil
}
