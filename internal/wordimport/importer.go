// Package wordimport converts spreadsheet word lists into the bot's JSON
// vocabulary files.
package wordimport

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"babble-bot/internal/storage"
	"babble-bot/pkg/util"

	"github.com/xuri/excelize/v2"
)

// Kind selects which vocabulary file an import writes.
type Kind string

const (
	KindLearned Kind = "learned"
	KindForeign Kind = "foreign"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindLearned, KindForeign:
		return k, nil
	}
	return "", fmt.Errorf("unknown word list kind %q (want learned or foreign)", s)
}

// ImportConfig defines the import configuration
type ImportConfig struct {
	Files      []string // .xlsx or .csv inputs, read concurrently
	OutputPath string // JSON file to write
	Kind       Kind
	SheetName  string // xlsx only
	WordColumn string // column letter holding the word
	StartRow   int    // 1-based first data row
	Merge      bool   // keep words already in OutputPath
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		Kind:       KindLearned,
		SheetName:  "Sheet1",
		WordColumn: "A",
		StartRow:   2,
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Added          int
	Kept           int
	Skipped        int
	Errors         []string
}

// ImportWords reads the input file and writes the vocabulary file.
func ImportWords(config ImportConfig) (*ImportResult, error) {
	if config.OutputPath == "" {
		return nil, errors.New("output path is required")
	}

	words, result, err := ReadWords(config)
	if err != nil {
		return nil, err
	}

	var existing []string
	if config.Merge {
		existing, err = loadExisting(config.Kind, config.OutputPath)
		if err != nil {
			return nil, err
		}
	}
	result.Kept = len(existing)

	merged := append([]string(nil), existing...)
	seen := make(map[string]bool, len(existing)+len(words))
	for _, w := range existing {
		seen[w] = true
	}
	for _, w := range words {
		if seen[w] {
			result.Skipped++
			continue
		}
		seen[w] = true
		merged = append(merged, w)
		result.Added++
	}

	if err := save(config.Kind, config.OutputPath, merged); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", config.OutputPath, err)
	}
	return result, nil
}

const readWorkers = 4

// ReadWords extracts the word column from every input file. Words keep the
// order of Files, then of rows within each file.
func ReadWords(config ImportConfig) ([]string, *ImportResult, error) {
	if len(config.Files) == 0 {
		return nil, nil, errors.New("no input files")
	}
	col, err := excelize.ColumnNameToNumber(config.WordColumn)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid word column %q: %w", config.WordColumn, err)
	}

	files, err := util.ParallelMap(config.Files, readWorkers, func(_ context.Context, path string) ([][]string, error) {
		if strings.ToLower(filepath.Ext(path)) == ".csv" {
			return csvRows(path)
		}
		return excelRows(path, config.SheetName)
	})
	if err != nil {
		return nil, nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	var words []string
	for f, rows := range files {
		for i, row := range rows {
			if i < config.StartRow-1 {
				continue
			}
			result.TotalProcessed++

			var word string
			if col-1 < len(row) {
				word = cleanWord(row[col-1])
			}
			if word == "" {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("%s row %d: word cannot be empty", filepath.Base(config.Files[f]), i+1))
				continue
			}
			words = append(words, word)
		}
	}
	return words, result, nil
}

func excelRows(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from %s: %w", path, err)
	}
	return rows, nil
}

func csvRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// cleanWord drops trailing parentheticals such as "go (went, gone)".
func cleanWord(word string) string {
	if i := strings.Index(word, "("); i > 0 {
		word = word[:i]
	}
	return strings.TrimSpace(word)
}

func loadExisting(kind Kind, path string) ([]string, error) {
	switch kind {
	case KindLearned:
		learned, err := storage.LoadLearnedWords(path)
		if err != nil && !storage.IsMissing(err) {
			return nil, fmt.Errorf("failed to read existing %s: %w", path, err)
		}
		out := make([]string, 0, len(learned))
		for _, w := range learned {
			out = append(out, w.Word)
		}
		return out, nil
	case KindForeign:
		foreign, err := storage.LoadForeignWords(path)
		if err != nil && !storage.IsMissing(err) {
			return nil, fmt.Errorf("failed to read existing %s: %w", path, err)
		}
		return foreign, nil
	}
	return nil, fmt.Errorf("unknown word list kind %q", kind)
}

func save(kind Kind, path string, words []string) error {
	switch kind {
	case KindLearned:
		learned := make([]storage.LearnedWord, 0, len(words))
		for _, w := range words {
			learned = append(learned, storage.LearnedWord{Word: w})
		}
		return storage.SaveLearnedWords(path, learned)
	case KindForeign:
		return storage.SaveForeignWords(path, words)
	}
	return fmt.Errorf("unknown word list kind %q", kind)
}
