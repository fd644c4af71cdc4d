package services

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboardingLog_AppendCreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onboarding_log.csv")
	logbook := NewOnboardingLog(path)

	err := logbook.Append(OnboardingLogEntry{
		Name:   "Asha",
		Email:  "asha@corp.io",
		Date:   "October 10, 2025",
		Time:   "10:00 AM",
		Status: "Sent",
		Mode:   "Manual",
	})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Name", "Email", "Date", "Time", "Status", "Mode", "Timestamp"}, rows[0])
	assert.Equal(t, "Asha", rows[1][0])
	assert.NotEmpty(t, rows[1][6], "timestamp should be generated")
}

func TestOnboardingLog_AppendPreservesExistingRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onboarding_log.csv")
	logbook := NewOnboardingLog(path)

	require.NoError(t, logbook.Append(OnboardingLogEntry{Name: "Asha", Status: "Sent", Mode: "Manual"}))
	require.NoError(t, logbook.Append(OnboardingLogEntry{Name: "Dev", Status: "Failed: timeout", Mode: "Bulk"}))

	entries, err := logbook.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Asha", entries[0].Name)
	assert.Equal(t, "Dev", entries[1].Name)
	assert.Equal(t, "Failed: timeout", entries[1].Status)
}

func TestOnboardingLog_EntriesOnMissingFile(t *testing.T) {
	logbook := NewOnboardingLog(filepath.Join(t.TempDir(), "missing.csv"))

	entries, err := logbook.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
