package usecase_test

import (
	"context"
	"errors"
	"testing"

	"company-researcher/internal/domain"
	"company-researcher/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLLMClient struct {
	mock.Mock
}

func (m *mockLLMClient) Generate(ctx context.Context, prompt string, maxTokens int) (*domain.LLMResponse, error) {
	args := m.Called(ctx, prompt, maxTokens)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LLMResponse), args.Error(1)
}

func (m *mockLLMClient) Version() string { return "mock" }

func TestContextPromptBuilder_Build(t *testing.T) {
	builder := usecase.NewContextPromptBuilder()

	prompt := builder.Build("What does Acme do?", []string{"Acme ships rockets.", "Acme was founded in 2001."})

	assert.Equal(t,
		"Context:\nAcme ships rockets.\n\nAcme was founded in 2001.\n\n"+
			"Question: What does Acme do?\n\n"+
			"Answer based only on the context provided above.",
		prompt)
}

func TestAnswerUsecase_ReturnsGeneratedText(t *testing.T) {
	llm := new(mockLLMClient)
	uc := usecase.NewAnswerUsecase(usecase.NewContextPromptBuilder(), llm, 512, newTestLogger())

	llm.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return len(prompt) > 0
	}), 512).Return(&domain.LLMResponse{Text: "Acme ships rockets.", Done: true}, nil)

	answer, err := uc.Execute(context.Background(), "What does Acme do?", []string{"Acme ships rockets."})
	require.NoError(t, err)
	assert.Equal(t, "Acme ships rockets.", answer)
}

func TestAnswerUsecase_GenerationFailure(t *testing.T) {
	llm := new(mockLLMClient)
	uc := usecase.NewAnswerUsecase(usecase.NewContextPromptBuilder(), llm, 512, newTestLogger())

	llm.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("model offline"))

	_, err := uc.Execute(context.Background(), "q", []string{"ctx"})
	var genErr *domain.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.ErrorContains(t, err, "model offline")
}

func TestAnswerUsecase_EmptyResponseIsError(t *testing.T) {
	llm := new(mockLLMClient)
	uc := usecase.NewAnswerUsecase(usecase.NewContextPromptBuilder(), llm, 512, newTestLogger())

	llm.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(&domain.LLMResponse{Text: "   "}, nil)

	_, err := uc.Execute(context.Background(), "q", []string{"ctx"})
	var genErr *domain.GenerationError
	assert.ErrorAs(t, err, &genErr)
}
