// Package dataset loads loan applications from CSV files. It tolerates
// the column naming of raw LendingClub exports by normalizing known
// aliases and fuzzy-matching slightly misspelled headers, and it can
// write a small built-in sample for demos.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/fairlens/fairlens/internal/domain"
)

// headerAliases maps raw LendingClub column names to the canonical
// field names used throughout the engine.
var headerAliases = map[string]string{
	"loan_amnt":  "loan_amount",
	"int_rate":   "interest_rate",
	"emp_length": "employment_length",
	"annual_inc": "annual_income",
}

// numericFields lists the canonical fields parsed as float64; all other
// fields stay strings.
var numericFields = map[string]bool{
	"loan_amount":       true,
	"interest_rate":     true,
	"employment_length": true,
	"annual_income":     true,
	"dti":               true,
	"delinq_2yrs":       true,
}

// maxHeaderDistance is the largest edit distance at which an unknown
// header is treated as a misspelling of a canonical field.
const maxHeaderDistance = 2

// Loader reads loan applications from one CSV file. It holds no open
// file handles between calls; every read re-opens the file.
type Loader struct {
	path string
}

// NewLoader creates a loader for the given CSV path. When the file does
// not exist, the built-in sample dataset is written there first, so a
// fresh checkout works without any data setup.
func NewLoader(path string) (*Loader, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := WriteSample(path); err != nil {
			return nil, fmt.Errorf("creating sample dataset: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("checking dataset %s: %w", path, err)
	}
	return &Loader{path: path}, nil
}

// Path returns the CSV path this loader reads from.
func (l *Loader) Path() string { return l.path }

// Load returns up to count applications from the top of the file. A
// non-positive count returns every row.
func (l *Loader) Load(count int) ([]domain.Record, error) {
	records, err := l.readAll()
	if err != nil {
		return nil, err
	}
	if count > 0 && len(records) > count {
		records = records[:count]
	}
	return records, nil
}

// ByID returns the application with the given ID, or
// domain.ErrUnknownApplication when no row matches.
func (l *Loader) ByID(applicationID string) (domain.Record, error) {
	records, err := l.readAll()
	if err != nil {
		return domain.Record{}, err
	}
	for _, rec := range records {
		if id, _ := domain.Get(rec, domain.KeyApplicationID); id == applicationID {
			return rec, nil
		}
	}
	return domain.Record{}, fmt.Errorf("%w: %s", domain.ErrUnknownApplication, applicationID)
}

// readAll parses the whole CSV file into records.
func (l *Loader) readAll() ([]domain.Record, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", l.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}

	fields := make([]string, len(header))
	for i, name := range header {
		fields[i] = canonicalField(name)
	}

	var records []domain.Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dataset row %d: %w", line, err)
		}

		values := make(map[string]any, len(fields))
		for i, field := range fields {
			if field == "" || i >= len(row) {
				continue
			}
			raw := strings.TrimSpace(row[i])
			if raw == "" {
				continue
			}
			if numericFields[field] {
				value, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, fmt.Errorf("dataset row %d: field %s: %w", line, field, err)
				}
				values[field] = value
			} else {
				values[field] = raw
			}
		}
		records = append(records, domain.RecordFromMap(values))
	}
	return records, nil
}

// canonicalField normalizes a CSV header to a canonical field name.
// Exact matches and known aliases resolve directly; anything else is
// fuzzy-matched against the canonical fields, and headers too far from
// every field map to "" and are skipped.
func canonicalField(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	for _, field := range domain.RequiredFields {
		if name == field {
			return field
		}
	}
	if field, ok := headerAliases[name]; ok {
		return field
	}

	best, bestDistance := "", maxHeaderDistance+1
	for _, field := range domain.RequiredFields {
		if d := levenshtein.ComputeDistance(name, field); d < bestDistance {
			best, bestDistance = field, d
		}
	}
	return best
}

// sampleRows is the built-in demo dataset, a small LendingClub-shaped
// sample spanning the grade spectrum.
var sampleRows = [][]string{
	{"LC_1001", "10000", "5.32", "A", "10", "RENT", "60000", "debt_consolidation", "15.2", "0"},
	{"LC_1002", "20000", "10.99", "C", "3", "OWN", "75000", "home_improvement", "28.5", "1"},
	{"LC_1003", "15000", "7.89", "B", "5", "MORTGAGE", "90000", "major_purchase", "18.7", "0"},
	{"LC_1004", "30000", "15.23", "E", "1", "RENT", "45000", "debt_consolidation", "35.2", "3"},
	{"LC_1005", "8000", "6.08", "A", "8", "OWN", "120000", "credit_card", "10.1", "0"},
}

// WriteSample writes the built-in sample dataset to the given path,
// creating parent directories as needed.
func WriteSample(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating dataset directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dataset %s: %w", path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(domain.RequiredFields); err != nil {
		return fmt.Errorf("writing dataset header: %w", err)
	}
	for _, row := range sampleRows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing dataset row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
