package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	VerdictPass = "PASS"
	VerdictFail = "FAIL"
)

// ErrMalformedResponse marks model output that could not be turned into a
// valid Verdict (bad JSON, missing fields, or out-of-range values).
var ErrMalformedResponse = errors.New("malformed model response")

// Verdict is the structured outcome of evaluating one resume against one role.
type Verdict struct {
	Filename        string  `json:"filename"`
	WeightedAverage float64 `json:"weighted_average"`
	Verdict         string  `json:"verdict"`
	Reasoning       string  `json:"reasoning"`
}

// ParseVerdict strictly deserializes a raw model response into a Verdict.
// All three fields must be present, weighted_average must be in [0,10], and
// verdict must be PASS or FAIL (case-insensitive, normalized to upper).
func ParseVerdict(raw string) (*Verdict, error) {
	jsonStr := extractJSON(raw)

	var probe struct {
		WeightedAverage *float64 `json:"weighted_average"`
		Verdict         *string  `json:"verdict"`
		Reasoning       *string  `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if probe.WeightedAverage == nil {
		return nil, fmt.Errorf("%w: missing weighted_average", ErrMalformedResponse)
	}
	if *probe.WeightedAverage < 0 || *probe.WeightedAverage > 10 {
		return nil, fmt.Errorf("%w: weighted_average %.2f out of range [0,10]", ErrMalformedResponse, *probe.WeightedAverage)
	}

	if probe.Verdict == nil {
		return nil, fmt.Errorf("%w: missing verdict", ErrMalformedResponse)
	}
	verdict := strings.ToUpper(strings.TrimSpace(*probe.Verdict))
	if verdict != VerdictPass && verdict != VerdictFail {
		return nil, fmt.Errorf("%w: verdict must be PASS or FAIL, got %q", ErrMalformedResponse, *probe.Verdict)
	}

	if probe.Reasoning == nil {
		return nil, fmt.Errorf("%w: missing reasoning", ErrMalformedResponse)
	}

	return &Verdict{
		WeightedAverage: *probe.WeightedAverage,
		Verdict:         verdict,
		Reasoning:       *probe.Reasoning,
	}, nil
}

// extractJSON pulls the JSON object out of text that might wrap it in
// markdown fences or prose.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}
