package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildScreeningPrompt creates the resume screening prompt. The scoring
// weights are fixed: skills 40%, projects 30%, education 20%, certifications 10%.
func (pb *PromptBuilder) BuildScreeningPrompt(role, resumeText string) string {
	return fmt.Sprintf(`You are an expert HR recruiter assistant.
Candidate is applying for %s.
Below is their resume text.

1. Extract: Age, Education, Skills, Projects, Certifications.
2. Score each (0-10) for relevance to %s.
3. Compute weighted average: Skills 40%% + Projects 30%% + Education 20%% + Certifications 10%%.
4. Return JSON only:
{"weighted_average": float, "verdict": "PASS"/"FAIL", "reasoning": "string"}

Resume:
%s`, role, role, resumeText)
}

// BuildPolicyPrompt creates the policy Q&A prompt from the policy context
// (either the full policy text or retrieved sections).
func (pb *PromptBuilder) BuildPolicyPrompt(policyText, question string) string {
	return fmt.Sprintf(`You are an HR policy assistant.
Refer only to this company policy text and answer truthfully.

Policy:
"""%s"""

Question: %s

If the answer isn't covered, reply "Not covered in current policy."`, policyText, question)
}

// BuildOnboardingPlanPrompt creates the 7-day onboarding plan prompt.
func (pb *PromptBuilder) BuildOnboardingPlanPrompt(name, role, startDate string) string {
	if startDate == "" {
		startDate = "Not provided"
	}

	return fmt.Sprintf(`You are an HR Onboarding Assistant. Create a concise 7-day onboarding plan for a new hire.

Name: %s
Role: %s
Start date (if known): %s

Instructions:
- Provide a short welcome note.
- Provide Day 1 through Day 7 bullets with times or time windows where appropriate.
- Include tasks, meetings, documents to read, and one manager/buddy check-in per day.
- Keep it actionable and concise (use bullets).
Return plain text only.`, name, role, startDate)
}

// FormatPolicySections joins retrieved policy sections into prompt context.
func FormatPolicySections(sections []PolicySection) string {
	if len(sections) == 0 {
		return "No relevant policy sections found."
	}

	var parts []string
	for i, section := range sections {
		parts = append(parts, fmt.Sprintf("--- Section %d (Score: %.2f) ---\n%s",
			i+1, section.Score, strings.TrimSpace(section.Text)))
	}

	return strings.Join(parts, "\n\n")
}
