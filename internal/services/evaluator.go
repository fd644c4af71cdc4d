package services

import (
	"context"
	"encoding/json"
	"fmt"
)

// CandidateEvaluator sends one resume to the model and returns the raw
// response text. It never returns a hard failure: a provider error is
// converted into a synthesized FAIL payload so downstream parsing always
// has a string to work with.
type CandidateEvaluator interface {
	Evaluate(ctx context.Context, role, resumeText string) string
}

type candidateEvaluator struct {
	gemini         GeminiService
	promptBuilder  *PromptBuilder
	maxResumeChars int
}

func NewCandidateEvaluator(gemini GeminiService, maxResumeChars int) CandidateEvaluator {
	if maxResumeChars <= 0 {
		maxResumeChars = 8000
	}

	return &candidateEvaluator{
		gemini:         gemini,
		promptBuilder:  NewPromptBuilder(),
		maxResumeChars: maxResumeChars,
	}
}

// Evaluate implements CandidateEvaluator.
func (e *candidateEvaluator) Evaluate(ctx context.Context, role, resumeText string) string {
	// Bound request size
	if len(resumeText) > e.maxResumeChars {
		resumeText = resumeText[:e.maxResumeChars]
	}

	prompt := e.promptBuilder.BuildScreeningPrompt(role, resumeText)

	raw, err := e.gemini.GenerateJSON(ctx, prompt, 0.2)
	if err != nil {
		fallback, _ := json.Marshal(map[string]interface{}{
			"weighted_average": 0,
			"verdict":          VerdictFail,
			"reasoning":        fmt.Sprintf("Error: %v", err),
		})
		return string(fallback)
	}

	return raw
}
