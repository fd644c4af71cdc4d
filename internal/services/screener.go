package services

import (
	"context"
	"log"
	"strings"
)

// ScreeningItem is one uploaded resume. Extraction runs per attempt, so only
// the source location is carried, not the text.
type ScreeningItem struct {
	Filename string
	Path     string
}

// ProgressFunc reports items that reached a terminal state.
type ProgressFunc func(done, total int)

// ScreeningPipeline drives the evaluator over a batch of resumes with a
// bounded number of rounds. Items whose text is unreadable or whose model
// response fails strict parsing carry into the next round; after the final
// round they get synthesized FAIL verdicts. Items are processed strictly one
// at a time.
type ScreeningPipeline interface {
	Screen(ctx context.Context, role string, items []ScreeningItem, progress ProgressFunc) []Verdict
}

type screeningPipeline struct {
	extractor   TextExtractor
	evaluator   CandidateEvaluator
	maxAttempts int
}

func NewScreeningPipeline(extractor TextExtractor, evaluator CandidateEvaluator, maxAttempts int) ScreeningPipeline {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &screeningPipeline{
		extractor:   extractor,
		evaluator:   evaluator,
		maxAttempts: maxAttempts,
	}
}

type attemptFailure int

const (
	failureNone attemptFailure = iota
	failureUnreadable
	failureMalformed
)

// Screen implements ScreeningPipeline. The returned slice holds exactly one
// Verdict per input item, ordered by the moment each item reached a terminal
// state: first-round successes first, then later resolutions.
func (p *screeningPipeline) Screen(ctx context.Context, role string, items []ScreeningItem, progress ProgressFunc) []Verdict {
	results := make([]Verdict, 0, len(items))
	total := len(items)
	done := 0

	record := func(v Verdict) {
		results = append(results, v)
		done++
		if progress != nil {
			progress(done, total)
		}
	}

	pending := items
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		final := attempt == p.maxAttempts
		var retry []ScreeningItem

		for _, item := range pending {
			verdict, failure := p.attempt(ctx, role, item)

			switch {
			case failure == failureNone:
				record(*verdict)
			case !final:
				log.Printf("⚠️ %s failed on attempt %d, queued for retry\n", item.Filename, attempt)
				retry = append(retry, item)
			default:
				log.Printf("❌ %s could not be resolved after %d attempts\n", item.Filename, attempt)
				record(terminalFailVerdict(item.Filename, failure))
			}
		}

		if len(retry) == 0 {
			break
		}
		log.Printf("🔁 Retrying %d failed resumes...\n", len(retry))
		pending = retry
	}

	return results
}

// attempt runs one extract-evaluate-parse cycle for a single item.
func (p *screeningPipeline) attempt(ctx context.Context, role string, item ScreeningItem) (*Verdict, attemptFailure) {
	text, err := p.extractor.ExtractText(item.Path)
	if err != nil || strings.TrimSpace(text) == "" {
		return nil, failureUnreadable
	}

	raw := p.evaluator.Evaluate(ctx, role, text)

	verdict, err := ParseVerdict(raw)
	if err != nil {
		return nil, failureMalformed
	}

	verdict.Filename = item.Filename
	return verdict, failureNone
}

func terminalFailVerdict(filename string, failure attemptFailure) Verdict {
	reasoning := "Resume could not be parsed after two attempts."
	if failure == failureUnreadable {
		reasoning = "Unreadable or empty resume text (after retry)."
	}

	return Verdict{
		Filename:        filename,
		WeightedAverage: 0,
		Verdict:         VerdictFail,
		Reasoning:       reasoning,
	}
}
