package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrMissingVerdictColumn marks uploaded result files without a verdict column.
var ErrMissingVerdictColumn = errors.New("results file must include a 'verdict' column")

var exportHeader = []string{"filename", "weighted_average", "verdict", "reasoning"}

// CandidateRow is one PASS row selected from an uploaded results file.
type CandidateRow struct {
	Filename string
	Email    string
	// RowText joins every cell of the row so an email can be regex-scavenged
	// from free text when no email column is present.
	RowText string
}

type ResultExporter interface {
	ExportCSV(verdicts []Verdict) ([]byte, error)
	ExportXLSX(verdicts []Verdict) ([]byte, error)
	ParsePassedRows(filename string, r io.Reader) ([]CandidateRow, error)
}

type resultExporter struct{}

func NewResultExporter() ResultExporter {
	return &resultExporter{}
}

// SortByScore returns the verdicts sorted by weighted_average descending.
// The input slice is not modified.
func SortByScore(verdicts []Verdict) []Verdict {
	sorted := make([]Verdict, len(verdicts))
	copy(sorted, verdicts)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WeightedAverage > sorted[j].WeightedAverage
	})

	return sorted
}

// ExportCSV implements ResultExporter.
func (e *resultExporter) ExportCSV(verdicts []Verdict) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, v := range verdicts {
		record := []string{
			v.Filename,
			strconv.FormatFloat(v.WeightedAverage, 'f', 2, 64),
			v.Verdict,
			v.Reasoning,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportXLSX implements ResultExporter.
func (e *resultExporter) ExportXLSX(verdicts []Verdict) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(exportHeader))
	for i, col := range exportHeader {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write xlsx header: %w", err)
	}

	for i, v := range verdicts {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{v.Filename, v.WeightedAverage, v.Verdict, v.Reasoning}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write xlsx row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode xlsx: %w", err)
	}

	return buf.Bytes(), nil
}

// ParsePassedRows implements ResultExporter. It reads a CSV or XLSX results
// file and returns the rows whose verdict is PASS (case-insensitive). A
// missing verdict column is a hard error.
func (e *resultExporter) ParsePassedRows(filename string, r io.Reader) ([]CandidateRow, error) {
	var rows [][]string
	var err error

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		rows, err = readCSVRows(r)
	case ".xlsx":
		rows, err = readXLSXRows(r)
	default:
		return nil, fmt.Errorf("unsupported results file type: %s", ext)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrMissingVerdictColumn
	}

	header := rows[0]
	verdictCol, filenameCol, emailCol := -1, -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "verdict":
			verdictCol = i
		case "filename":
			filenameCol = i
		case "email":
			emailCol = i
		}
	}
	if verdictCol == -1 {
		return nil, ErrMissingVerdictColumn
	}

	var passed []CandidateRow
	for _, row := range rows[1:] {
		if verdictCol >= len(row) {
			continue
		}
		if strings.ToUpper(strings.TrimSpace(row[verdictCol])) != VerdictPass {
			continue
		}

		candidate := CandidateRow{RowText: strings.Join(row, " ")}
		if filenameCol != -1 && filenameCol < len(row) {
			candidate.Filename = strings.TrimSpace(row[filenameCol])
		}
		if emailCol != -1 && emailCol < len(row) {
			candidate.Email = strings.TrimSpace(row[emailCol])
		}

		passed = append(passed, candidate)
	}

	return passed, nil
}

func readCSVRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	return rows, nil
}

func readXLSXRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read xlsx rows: %w", err)
	}

	return rows, nil
}
