// cmd/cli/main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"babble-bot/internal/storage"
	v "babble-bot/internal/version"
	"babble-bot/internal/wordimport"
	"babble-bot/pkg/util"
)

const dateFormat = "YYYY-MM-DD hh:mm:ss"

func usage() {
	fmt.Fprintf(os.Stderr, `%s maintenance tool (%s)
%s

Usage:
  cli import -kind learned|foreign -in <file.xlsx,file.csv,...> [-sheet Sheet1] [-column A] [-start 2] [-out path] [-merge]
  cli stats -user <id> [-history messageHistory.json]
`, v.AppName, v.BuildInfo(), v.AppDescription)
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "import":
		err = runImport(os.Args[2:])
	case "stats":
		err = runStats(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal("[ERR] ", err)
	}
}

func runImport(args []string) error {
	def := wordimport.DefaultImportConfig()
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	kind := fs.String("kind", string(def.Kind), "word list kind: learned or foreign")
	in := fs.String("in", "", "input .xlsx or .csv files, comma-separated")
	sheet := fs.String("sheet", def.SheetName, "sheet name (xlsx only)")
	column := fs.String("column", def.WordColumn, "column holding the words")
	start := fs.Int("start", def.StartRow, "first data row, 1-based")
	out := fs.String("out", "", "output JSON file (default depends on -kind)")
	merge := fs.Bool("merge", false, "keep words already present in the output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("-in is required")
	}

	k, err := wordimport.ParseKind(*kind)
	if err != nil {
		return err
	}
	if *out == "" {
		*out = "learned_words.json"
		if k == wordimport.KindForeign {
			*out = "german_words.json"
		}
	}

	res, err := wordimport.ImportWords(wordimport.ImportConfig{
		Files:      splitList(*in),
		OutputPath: *out,
		Kind:       k,
		SheetName:  *sheet,
		WordColumn: *column,
		StartRow:   *start,
		Merge:      *merge,
	})
	if err != nil {
		return err
	}

	for _, e := range res.Errors {
		log.Println("[WARN]", e)
	}
	log.Printf("[DONE] %s: %d rows, %d added, %d kept, %d skipped", *out, res.TotalProcessed, res.Added, res.Kept, res.Skipped)
	return nil
}

func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	user := fs.String("user", "", "user ID")
	history := fs.String("history", "messageHistory.json", "history file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" {
		return fmt.Errorf("-user is required")
	}

	h, err := storage.LoadHistory(*history)
	if err != nil {
		return fmt.Errorf("load %s: %w", *history, err)
	}
	records := h[*user]
	if len(records) == 0 {
		fmt.Printf("No history for %s\n", *user)
		return nil
	}

	most, least := storage.WordUsage(records)

	fmt.Printf("User:            %s\n", *user)
	fmt.Printf("Messages:        %d\n", len(records))
	fmt.Printf("First message:   %s\n", util.FormatDateTpl(records[0].Timestamp, dateFormat))
	fmt.Printf("Last message:    %s\n", util.FormatDateTpl(records[len(records)-1].Timestamp, dateFormat))
	fmt.Printf("Most used word:  %s\n", most)
	fmt.Printf("Least used word: %s\n", least)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
