package services

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"
	"time"
)

var logHeader = []string{"Name", "Email", "Date", "Time", "Status", "Mode", "Timestamp"}

// OnboardingLogEntry is one row of the durable onboarding log. Entries
// outlive any single run.
type OnboardingLogEntry struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Status    string `json:"status"`
	Mode      string `json:"mode"`
	Timestamp string `json:"timestamp"`
}

func (e OnboardingLogEntry) record() []string {
	return []string{e.Name, e.Email, e.Date, e.Time, e.Status, e.Mode, e.Timestamp}
}

// OnboardingLog is an append-only CSV log. The file is read and rewritten
// whole on each append.
type OnboardingLog struct {
	path string
	mu   sync.Mutex
}

func NewOnboardingLog(path string) *OnboardingLog {
	return &OnboardingLog{path: path}
}

// Append adds one entry. A missing Timestamp is filled with the current time.
func (l *OnboardingLog) Append(entry OnboardingLogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().Format("2006-01-02 15:04:05")
	}

	records, err := l.readRecords()
	if err != nil {
		return err
	}
	records = append(records, entry.record())

	f, err := os.Create(l.path)
	if err != nil {
		return fmt.Errorf("failed to rewrite onboarding log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(logHeader); err != nil {
		return fmt.Errorf("failed to write log header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write log rows: %w", err)
	}

	return nil
}

// Entries returns every logged row.
func (l *OnboardingLog) Entries() ([]OnboardingLogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.readRecords()
	if err != nil {
		return nil, err
	}

	entries := make([]OnboardingLogEntry, 0, len(records))
	for _, record := range records {
		if len(record) < len(logHeader) {
			continue
		}
		entries = append(entries, OnboardingLogEntry{
			Name:      record[0],
			Email:     record[1],
			Date:      record[2],
			Time:      record[3],
			Status:    record[4],
			Mode:      record[5],
			Timestamp: record[6],
		})
	}

	return entries, nil
}

// readRecords returns all data rows, without the header. A missing file
// means zero rows.
func (l *OnboardingLog) readRecords() ([][]string, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open onboarding log: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read onboarding log: %w", err)
	}

	if len(rows) <= 1 {
		return nil, nil
	}

	return rows[1:], nil
}
