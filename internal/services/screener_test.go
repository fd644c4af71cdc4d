package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	goodVerdict  = `{"weighted_average": 8.0, "verdict": "PASS", "reasoning": "solid"}`
	weakVerdict  = `{"weighted_average": 3.0, "verdict": "FAIL", "reasoning": "junior"}`
	brokenOutput = "I am unable to evaluate this resume"
)

func TestScreen_OneVerdictPerItem(t *testing.T) {
	extractor := &stubExtractor{texts: map[string]string{
		"a.pdf": "alice resume",
		"b.pdf": "bob resume",
	}}
	evaluator := &stubEvaluator{byText: map[string][]string{
		"alice resume": {goodVerdict},
		"bob resume":   {weakVerdict},
	}}
	pipeline := NewScreeningPipeline(extractor, evaluator, 2)

	verdicts := pipeline.Screen(context.Background(), "Backend Engineer", []ScreeningItem{
		{Filename: "a.pdf", Path: "a.pdf"},
		{Filename: "b.pdf", Path: "b.pdf"},
	}, nil)

	require.Len(t, verdicts, 2)
	assert.Equal(t, "a.pdf", verdicts[0].Filename)
	assert.Equal(t, VerdictPass, verdicts[0].Verdict)
	assert.Equal(t, "b.pdf", verdicts[1].Filename)
	assert.Equal(t, VerdictFail, verdicts[1].Verdict)
}

func TestScreen_UnreadableResumeFailsWithZeroScore(t *testing.T) {
	extractor := &stubExtractor{texts: map[string]string{
		"blank.pdf": "   \n ",
	}}
	pipeline := NewScreeningPipeline(extractor, &stubEvaluator{}, 2)

	verdicts := pipeline.Screen(context.Background(), "Backend Engineer", []ScreeningItem{
		{Filename: "blank.pdf", Path: "blank.pdf"},
	}, nil)

	require.Len(t, verdicts, 1)
	assert.Equal(t, VerdictFail, verdicts[0].Verdict)
	assert.Equal(t, float64(0), verdicts[0].WeightedAverage)
	assert.Contains(t, verdicts[0].Reasoning, "Unreadable or empty")
}

func TestScreen_MalformedTwiceGetsTerminalFail(t *testing.T) {
	extractor := &stubExtractor{texts: map[string]string{
		"odd.pdf": "odd resume",
	}}
	evaluator := &stubEvaluator{byText: map[string][]string{
		"odd resume": {brokenOutput, brokenOutput},
	}}
	pipeline := NewScreeningPipeline(extractor, evaluator, 2)

	verdicts := pipeline.Screen(context.Background(), "Backend Engineer", []ScreeningItem{
		{Filename: "odd.pdf", Path: "odd.pdf"},
	}, nil)

	require.Len(t, verdicts, 1)
	assert.Equal(t, VerdictFail, verdicts[0].Verdict)
	assert.Contains(t, verdicts[0].Reasoning, "two attempts")
}

func TestScreen_RetrySucceedsAndOrdersAfterFirstRound(t *testing.T) {
	extractor := &stubExtractor{texts: map[string]string{
		"flaky.pdf":  "flaky resume",
		"steady.pdf": "steady resume",
	}}
	evaluator := &stubEvaluator{byText: map[string][]string{
		"flaky resume":  {brokenOutput, goodVerdict},
		"steady resume": {weakVerdict},
	}}
	pipeline := NewScreeningPipeline(extractor, evaluator, 2)

	verdicts := pipeline.Screen(context.Background(), "Backend Engineer", []ScreeningItem{
		{Filename: "flaky.pdf", Path: "flaky.pdf"},
		{Filename: "steady.pdf", Path: "steady.pdf"},
	}, nil)

	require.Len(t, verdicts, 2)
	// steady resolved first round; flaky resolved on retry comes after
	assert.Equal(t, "steady.pdf", verdicts[0].Filename)
	assert.Equal(t, "flaky.pdf", verdicts[1].Filename)
	assert.Equal(t, VerdictPass, verdicts[1].Verdict)
}

func TestScreen_ProgressReportsTerminalStates(t *testing.T) {
	extractor := &stubExtractor{texts: map[string]string{
		"a.pdf": "alice resume",
		"b.pdf": "bob resume",
		"c.pdf": "carol resume",
	}}
	evaluator := &stubEvaluator{byText: map[string][]string{
		"alice resume": {goodVerdict},
		"bob resume":   {brokenOutput, goodVerdict},
		"carol resume": {weakVerdict},
	}}
	pipeline := NewScreeningPipeline(extractor, evaluator, 2)

	var progress [][2]int
	pipeline.Screen(context.Background(), "Backend Engineer", []ScreeningItem{
		{Filename: "a.pdf", Path: "a.pdf"},
		{Filename: "b.pdf", Path: "b.pdf"},
		{Filename: "c.pdf", Path: "c.pdf"},
	}, func(done, total int) {
		progress = append(progress, [2]int{done, total})
	})

	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, progress)
}
