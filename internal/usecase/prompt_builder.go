package usecase

import "strings"

// PromptBuilder renders the generation prompt from retrieved context.
type PromptBuilder interface {
	Build(query string, context []string) string
}

type contextPromptBuilder struct{}

// NewContextPromptBuilder returns the fixed answer-from-context-only
// prompt template.
func NewContextPromptBuilder() PromptBuilder {
	return &contextPromptBuilder{}
}

// Build joins the context chunks with blank lines and appends the
// question and the grounding instruction.
func (b *contextPromptBuilder) Build(query string, context []string) string {
	var sb strings.Builder
	sb.WriteString("Context:\n")
	sb.WriteString(strings.Join(context, "\n\n"))
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(query)
	sb.WriteString("\n\nAnswer based only on the context provided above.")
	return sb.String()
}
