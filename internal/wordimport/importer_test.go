package wordimport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"babble-bot/internal/storage"

	"github.com/xuri/excelize/v2"
)

func writeXLSX(t *testing.T, path string, col int, column []string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, v := range column {
		cell, err := excelize.CoordinatesToCellName(col, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
}

func TestImportLearnedFromExcel(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "words.xlsx")
	out := filepath.Join(dir, "learned_words.json")
	writeXLSX(t, in, 2, []string{"Word", "sunrise", "go (went, gone)", "", "sunrise", "harbor"})

	cfg := DefaultImportConfig()
	cfg.Files = []string{in}
	cfg.OutputPath = out
	cfg.WordColumn = "B"

	res, err := ImportWords(cfg)
	if err != nil {
		t.Fatalf("ImportWords() error = %v", err)
	}
	if res.TotalProcessed != 5 || res.Added != 3 || res.Skipped != 2 {
		t.Fatalf("result = %+v", res)
	}

	got, err := storage.LoadLearnedWords(out)
	if err != nil {
		t.Fatalf("LoadLearnedWords() error = %v", err)
	}
	var words []string
	for _, w := range got {
		words = append(words, w.Word)
	}
	if strings.Join(words, ",") != "sunrise,go,harbor" {
		t.Fatalf("words = %v", words)
	}
}

func TestImportForeignFromCSVMerge(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "german.csv")
	out := filepath.Join(dir, "german_words.json")
	if err := os.WriteFile(in, []byte("word,meaning\nHaus,house\nBaum,tree\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := storage.SaveForeignWords(out, []string{"Baum", "Katze"}); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultImportConfig()
	cfg.Kind = KindForeign
	cfg.Files = []string{in}
	cfg.OutputPath = out
	cfg.Merge = true

	res, err := ImportWords(cfg)
	if err != nil {
		t.Fatalf("ImportWords() error = %v", err)
	}
	if res.Kept != 2 || res.Added != 1 || res.Skipped != 1 {
		t.Fatalf("result = %+v", res)
	}

	got, err := storage.LoadForeignWords(out)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, ",") != "Baum,Katze,Haus" {
		t.Fatalf("words = %v", got)
	}
}

func TestImportReplacesWithoutMerge(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "list.csv")
	out := filepath.Join(dir, "german_words.json")
	if err := os.WriteFile(in, []byte("Hund\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := storage.SaveForeignWords(out, []string{"Katze"}); err != nil {
		t.Fatal(err)
	}

	cfg := ImportConfig{Kind: KindForeign, Files: []string{in}, OutputPath: out, WordColumn: "A", StartRow: 1}
	if _, err := ImportWords(cfg); err != nil {
		t.Fatalf("ImportWords() error = %v", err)
	}

	got, _ := storage.LoadForeignWords(out)
	if len(got) != 1 || got[0] != "Hund" {
		t.Fatalf("words = %v, want [Hund]", got)
	}
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultImportConfig()
	cfg.Files = []string{filepath.Join(dir, "missing.xlsx")}
	cfg.OutputPath = filepath.Join(dir, "out.json")
	if _, err := ImportWords(cfg); err == nil {
		t.Fatal("ImportWords() error = nil for missing input")
	}

	cfg.WordColumn = "1"
	if _, _, err := ReadWords(cfg); err == nil {
		t.Fatal("ReadWords() error = nil for invalid column")
	}

	if _, err := ParseKind("spanish"); err == nil {
		t.Fatal("ParseKind() error = nil for unknown kind")
	}
}

func TestImportSeveralFilesKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.xlsx")
	out := filepath.Join(dir, "learned_words.json")
	if err := os.WriteFile(a, []byte("header\nfirst\nsecond\n"), 0644); err != nil {
		t.Fatal(err)
	}
	writeXLSX(t, b, 1, []string{"header", "third", "first"})

	cfg := DefaultImportConfig()
	cfg.Files = []string{a, b}
	cfg.OutputPath = out

	res, err := ImportWords(cfg)
	if err != nil {
		t.Fatalf("ImportWords() error = %v", err)
	}
	if res.TotalProcessed != 4 || res.Added != 3 || res.Skipped != 1 {
		t.Fatalf("result = %+v", res)
	}
	got, _ := storage.LoadLearnedWords(out)
	if len(got) != 3 || got[0].Word != "first" || got[1].Word != "second" || got[2].Word != "third" {
		t.Fatalf("words = %+v", got)
	}
}
