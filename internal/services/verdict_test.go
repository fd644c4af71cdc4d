package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerdict_Valid(t *testing.T) {
	raw := `{"weighted_average": 7.5, "verdict": "PASS", "reasoning": "Strong backend skills."}`

	v, err := ParseVerdict(raw)
	require.NoError(t, err)
	assert.Equal(t, 7.5, v.WeightedAverage)
	assert.Equal(t, VerdictPass, v.Verdict)
	assert.Equal(t, "Strong backend skills.", v.Reasoning)
}

func TestParseVerdict_MarkdownFences(t *testing.T) {
	raw := "Here is the evaluation:\n```json\n{\"weighted_average\": 4.0, \"verdict\": \"FAIL\", \"reasoning\": \"Missing required skills.\"}\n```"

	v, err := ParseVerdict(raw)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v.WeightedAverage)
	assert.Equal(t, VerdictFail, v.Verdict)
}

func TestParseVerdict_NormalizesCase(t *testing.T) {
	raw := `{"weighted_average": 8.1, "verdict": "pass", "reasoning": "ok"}`

	v, err := ParseVerdict(raw)
	require.NoError(t, err)
	assert.Equal(t, VerdictPass, v.Verdict)
}

func TestParseVerdict_Malformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "the candidate looks great"},
		{"missing weighted_average", `{"verdict": "PASS", "reasoning": "ok"}`},
		{"missing verdict", `{"weighted_average": 5.0, "reasoning": "ok"}`},
		{"missing reasoning", `{"weighted_average": 5.0, "verdict": "PASS"}`},
		{"score above range", `{"weighted_average": 11, "verdict": "PASS", "reasoning": "ok"}`},
		{"score below range", `{"weighted_average": -1, "verdict": "FAIL", "reasoning": "ok"}`},
		{"bad verdict value", `{"weighted_average": 5.0, "verdict": "MAYBE", "reasoning": "ok"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseVerdict(tc.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedResponse), "expected ErrMalformedResponse, got %v", err)
		})
	}
}

func TestParseVerdict_BoundaryScores(t *testing.T) {
	for _, raw := range []string{
		`{"weighted_average": 0, "verdict": "FAIL", "reasoning": "empty"}`,
		`{"weighted_average": 10, "verdict": "PASS", "reasoning": "perfect"}`,
	} {
		_, err := ParseVerdict(raw)
		assert.NoError(t, err)
	}
}

func TestExtractJSON_WrappedInProse(t *testing.T) {
	raw := "Sure! ```json {\"verdict\": \"PASS\"} ``` hope that helps"
	assert.Equal(t, `{"verdict": "PASS"}`, extractJSON(raw))
}
