package services

import (
	"context"
	"errors"
)

// stubGemini returns canned responses in order, or a fixed error.
type stubGemini struct {
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (s *stubGemini) next(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if s.calls >= len(s.responses) {
		return "", errors.New("stubGemini: no more responses")
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

func (s *stubGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	return s.next(prompt)
}

func (s *stubGemini) GenerateJSON(ctx context.Context, prompt string, temperature float32) (string, error) {
	return s.next(prompt)
}

func (s *stubGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return make([]float32, 768), nil
}

// stubMailer records sends and optionally fails per recipient.
type stubMailer struct {
	sent    []sentMail
	failFor map[string]error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (m *stubMailer) Send(ctx context.Context, to, subject, body string) error {
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

// stubExtractor serves text by path; missing paths error.
type stubExtractor struct {
	texts map[string]string
	errs  map[string]error
}

func (e *stubExtractor) ExtractText(path string) (string, error) {
	if err, ok := e.errs[path]; ok {
		return "", err
	}
	if text, ok := e.texts[path]; ok {
		return text, nil
	}
	return "", errors.New("stubExtractor: unknown path " + path)
}

// stubEvaluator returns raw responses keyed by resume text, with optional
// per-text sequences so retries can observe different output.
type stubEvaluator struct {
	byText map[string][]string
	seen   map[string]int
}

func (e *stubEvaluator) Evaluate(ctx context.Context, role, resumeText string) string {
	if e.seen == nil {
		e.seen = make(map[string]int)
	}
	responses := e.byText[resumeText]
	if len(responses) == 0 {
		return ""
	}
	idx := e.seen[resumeText]
	if idx >= len(responses) {
		idx = len(responses) - 1
	}
	e.seen[resumeText]++
	return responses[idx]
}
