package services

import (
	"errors"
	"strings"
)

// Mode is the assistant behavior a free-text query routes to.
type Mode string

const (
	ModeResume     Mode = "resume"
	ModePolicy     Mode = "policy"
	ModeOnboarding Mode = "onboarding"
	ModeUnknown    Mode = "unknown"
)

// ErrUnsafeInput rejects queries containing disallowed content.
var ErrUnsafeInput = errors.New("unsafe or disallowed input detected")

var bannedInputs = []string{"delete", "drop", "sudo", "hack", "rm -rf", "password", "api_key"}

var modeKeywords = map[Mode][]string{
	ModeResume:     {"resume", "screen", "candidate", "cv"},
	ModePolicy:     {"policy", "leave", "vacation", "rules", "payroll", "salary"},
	ModeOnboarding: {"onboard", "joining", "orientation", "welcome"},
}

// SanitizeQuery is a basic guardrail against malicious or irrelevant input.
func SanitizeQuery(query string) (string, error) {
	lowered := strings.ToLower(query)
	for _, word := range bannedInputs {
		if strings.Contains(lowered, word) {
			return "", ErrUnsafeInput
		}
	}

	return strings.TrimSpace(query), nil
}

// ClassifyQuery routes a sanitized query to an assistant mode by keyword.
// Resume keywords win over policy, policy over onboarding.
func ClassifyQuery(query string) Mode {
	lowered := strings.ToLower(query)

	for _, mode := range []Mode{ModeResume, ModePolicy, ModeOnboarding} {
		for _, keyword := range modeKeywords[mode] {
			if strings.Contains(lowered, keyword) {
				return mode
			}
		}
	}

	return ModeUnknown
}
