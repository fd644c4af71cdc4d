package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

// PolicyAgent answers HR policy questions against the company policy
// document. A missing policy file is a blocking error.
type PolicyAgent interface {
	Answer(ctx context.Context, question string) (string, error)
}

type policyAgent struct {
	gemini        GeminiService
	store         PolicyStore // optional; nil means no retrieval
	promptBuilder *PromptBuilder
	policyPath    string
}

func NewPolicyAgent(gemini GeminiService, store PolicyStore, policyPath string) PolicyAgent {
	return &policyAgent{
		gemini:        gemini,
		store:         store,
		promptBuilder: NewPromptBuilder(),
		policyPath:    policyPath,
	}
}

// Answer implements PolicyAgent.
func (a *policyAgent) Answer(ctx context.Context, question string) (string, error) {
	policyText, err := a.policyContext(ctx, question)
	if err != nil {
		return "", err
	}

	prompt := a.promptBuilder.BuildPolicyPrompt(policyText, question)

	answer, err := a.gemini.GenerateText(ctx, prompt, 0.2)
	if err != nil {
		return "", fmt.Errorf("failed to answer policy question: %w", err)
	}

	return strings.TrimSpace(answer), nil
}

// policyContext returns the most relevant policy sections when a vector
// store is configured, otherwise the full policy document.
func (a *policyAgent) policyContext(ctx context.Context, question string) (string, error) {
	if a.store != nil {
		sections, err := a.retrieveSections(ctx, question)
		if err != nil {
			log.Printf("⚠️ Policy retrieval failed, falling back to full document: %v\n", err)
		} else if len(sections) > 0 {
			return FormatPolicySections(sections), nil
		}
	}

	data, err := os.ReadFile(a.policyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("policy file not found: %s", a.policyPath)
		}
		return "", fmt.Errorf("failed to read policy file: %w", err)
	}

	return string(data), nil
}

func (a *policyAgent) retrieveSections(ctx context.Context, question string) ([]PolicySection, error) {
	embedding, err := a.gemini.GenerateEmbedding(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	return a.store.SearchSections(ctx, embedding, 5)
}
