package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_ReturnsModelResponse(t *testing.T) {
	gemini := &stubGemini{responses: []string{`{"weighted_average": 6.0, "verdict": "PASS", "reasoning": "ok"}`}}
	evaluator := NewCandidateEvaluator(gemini, 8000)

	raw := evaluator.Evaluate(context.Background(), "Backend Engineer", "Go, Postgres, Docker")

	v, err := ParseVerdict(raw)
	require.NoError(t, err)
	assert.Equal(t, VerdictPass, v.Verdict)
}

func TestEvaluate_ProviderErrorSynthesizesFailPayload(t *testing.T) {
	gemini := &stubGemini{err: errors.New("quota exceeded")}
	evaluator := NewCandidateEvaluator(gemini, 8000)

	raw := evaluator.Evaluate(context.Background(), "Backend Engineer", "some resume")

	v, err := ParseVerdict(raw)
	require.NoError(t, err, "error payload must still parse as a verdict")
	assert.Equal(t, VerdictFail, v.Verdict)
	assert.Equal(t, float64(0), v.WeightedAverage)
	assert.Contains(t, v.Reasoning, "quota exceeded")
}

func TestEvaluate_TruncatesLongResumes(t *testing.T) {
	gemini := &stubGemini{responses: []string{`{"weighted_average": 1, "verdict": "FAIL", "reasoning": "ok"}`}}
	evaluator := NewCandidateEvaluator(gemini, 8000)

	long := strings.Repeat("x", 20000)
	evaluator.Evaluate(context.Background(), "Backend Engineer", long)

	require.Len(t, gemini.prompts, 1)
	assert.NotContains(t, gemini.prompts[0], strings.Repeat("x", 8001))
	assert.Contains(t, gemini.prompts[0], strings.Repeat("x", 8000))
}
