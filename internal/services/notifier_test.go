package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTemplate(t *testing.T) {
	body, err := FormatTemplate("Dear {candidate}, join on {date} at {time}", map[string]string{
		"candidate": "Asha",
		"date":      "October 10, 2025",
		"time":      "10:00 AM",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dear Asha, join on October 10, 2025 at 10:00 AM", body)
}

func TestFormatTemplate_UnresolvedPlaceholder(t *testing.T) {
	_, err := FormatTemplate("Dear {candidate}, your manager is {manager}", map[string]string{
		"candidate": "Asha",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "{manager}")
}

func TestExtractEmail(t *testing.T) {
	assert.Equal(t, "jane.doe@corp.io", ExtractEmail("Contact: jane.doe@corp.io (preferred)"))
	assert.Equal(t, "", ExtractEmail("no address here"))
}

func TestGuessEmailFromFilename(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"jane_doe.pdf", "jane_doe@example.com"},
		{"Bob Smith.docx", "bobsmith@example.com"},
		{"", "candidate@example.com"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, GuessEmailFromFilename(tc.filename, "example.com"))
	}
}

func newTestNotifier(t *testing.T, mailer Mailer) (OnboardingNotifier, *OnboardingLog) {
	t.Helper()
	logbook := NewOnboardingLog(filepath.Join(t.TempDir(), "onboarding_log.csv"))
	return NewOnboardingNotifier(mailer, nil, logbook, "example.com"), logbook
}

func TestNotify_SendsAndLogs(t *testing.T) {
	mailer := &stubMailer{}
	notifier, logbook := newTestNotifier(t, mailer)

	entry, err := notifier.Notify(context.Background(), NotifyRequest{
		Candidate: "Asha",
		Email:     "asha@corp.io",
		Date:      "October 10, 2025",
		Time:      "10:00 AM",
	}, "Manual")
	require.NoError(t, err)

	assert.Equal(t, "Sent", entry.Status)
	assert.Equal(t, "asha@corp.io", entry.Email)
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].body, "Dear Asha")
	assert.Contains(t, mailer.sent[0].body, "October 10, 2025")

	entries, err := logbook.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Manual", entries[0].Mode)
	assert.Equal(t, "Sent", entries[0].Status)
}

func TestNotify_SendFailureIsLogged(t *testing.T) {
	mailer := &stubMailer{failFor: map[string]error{
		"down@corp.io": errors.New("connection refused"),
	}}
	notifier, logbook := newTestNotifier(t, mailer)

	entry, err := notifier.Notify(context.Background(), NotifyRequest{
		Candidate: "Dev",
		Email:     "down@corp.io",
		Date:      "Nov 1, 2025",
		Time:      "9:00 AM",
	}, "Bulk")
	require.Error(t, err)
	assert.Contains(t, entry.Status, "Failed")

	entries, err := logbook.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Status, "connection refused")
}

func TestNotify_EmailResolutionChain(t *testing.T) {
	mailer := &stubMailer{}
	notifier, _ := newTestNotifier(t, mailer)

	// free text wins over filename guess
	entry, err := notifier.Notify(context.Background(), NotifyRequest{
		Candidate: "Jane",
		FreeText:  "resume mentions jane@corp.io somewhere",
		Filename:  "jane_doe.pdf",
		Date:      "Nov 1, 2025",
		Time:      "9:00 AM",
	}, "Bulk")
	require.NoError(t, err)
	assert.Equal(t, "jane@corp.io", entry.Email)

	// no email anywhere falls back to the filename slug
	entry, err = notifier.Notify(context.Background(), NotifyRequest{
		Candidate: "Jane",
		Filename:  "jane_doe.pdf",
		Date:      "Nov 1, 2025",
		Time:      "9:00 AM",
	}, "Bulk")
	require.NoError(t, err)
	assert.Equal(t, "jane_doe@example.com", entry.Email)
}

func TestNotify_MailerNotConfigured(t *testing.T) {
	notifier, _ := newTestNotifier(t, nil)

	assert.False(t, notifier.Configured())

	_, err := notifier.Notify(context.Background(), NotifyRequest{
		Candidate: "Asha",
		Email:     "asha@corp.io",
	}, "Manual")
	assert.True(t, errors.Is(err, ErrMailerNotConfigured))
}

func TestNotify_FallbackPlanWhenModelUnavailable(t *testing.T) {
	mailer := &stubMailer{}
	notifier, _ := newTestNotifier(t, mailer)

	_, err := notifier.Notify(context.Background(), NotifyRequest{
		Candidate:    "Asha",
		Email:        "asha@corp.io",
		Role:         "Backend Engineer",
		Date:         "Nov 1, 2025",
		Time:         "9:00 AM",
		Template:     "Welcome {candidate}!\n\n{plan}",
		GeneratePlan: true,
	}, "Manual")
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].body, "Day 1")
	assert.Contains(t, mailer.sent[0].body, "Day 7")
	assert.Contains(t, mailer.sent[0].body, "Backend Engineer")
}

func TestNotify_PlanFromModel(t *testing.T) {
	mailer := &stubMailer{}
	gemini := &stubGemini{responses: []string{"Day 1: Kickoff with the platform team."}}
	logbook := NewOnboardingLog(filepath.Join(t.TempDir(), "onboarding_log.csv"))
	notifier := NewOnboardingNotifier(mailer, gemini, logbook, "example.com")

	_, err := notifier.Notify(context.Background(), NotifyRequest{
		Candidate:    "Asha",
		Email:        "asha@corp.io",
		Role:         "Backend Engineer",
		Date:         "Nov 1, 2025",
		Time:         "9:00 AM",
		Template:     "{plan}",
		GeneratePlan: true,
	}, "Manual")
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Day 1: Kickoff with the platform team.", mailer.sent[0].body)
}
