// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/statute-parser/internal/batch"
	"github.com/pdiddy/statute-parser/internal/convert"
	"github.com/pdiddy/statute-parser/internal/parse"
	"github.com/pdiddy/statute-parser/internal/statute"
)

var parseCmd = &cobra.Command{
	Use:   "parse [texts...|-]",
	Short: "Segment normalized statute text into records",
	Long: `Parse splits normalized statute text into sections (ČASŤ), articles (Čl.)
and paragraphs (§), producing one record per non-empty paragraph. Records
are written to statutes/records/<id>-records.yaml.

With "-" the text is read from stdin and the records are written to stdout
in --format instead. --print N shows a readable preview of the first N
records of each document.

A text without any section heading fails unless --allow-empty is given.`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("statutes-dir", "statutes", "base directory for statutes (contains text/, records/)")
	parseCmd.Flags().Int("workers", batch.DefaultWorkers, "number of texts parsed at once")
	parseCmd.Flags().Bool("allow-empty", false, "write an empty record file for texts without section headings")
	parseCmd.Flags().Bool("batch", false, "parse all texts in statutes-dir/text")
	parseCmd.Flags().Int("print", 0, "print the first N records of each document")
	parseCmd.Flags().String("format", "yaml", "stdout format when reading stdin: yaml or json")

	bindFlag(parseCmd, "parse.statutes_dir", "statutes-dir")
	bindFlag(parseCmd, "parse.workers", "workers")
	bindFlag(parseCmd, "parse.allow_empty", "allow-empty")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := parseConfig()
	batchMode, _ := cmd.Flags().GetBool("batch")
	printN, _ := cmd.Flags().GetInt("print")
	format, _ := cmd.Flags().GetString("format")

	p := statute.NewParser(statute.DefaultPatterns())

	if len(args) == 1 && args[0] == "-" {
		return parseStdin(p, cfg.AllowEmpty, printN, format)
	}

	paths := args
	if batchMode {
		var err error
		paths, err = parse.PendingTexts(cfg.StatutesDir)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Println("No texts to parse.")
			return nil
		}
	} else if len(paths) == 0 {
		return fmt.Errorf("provide text paths, - for stdin, or use --batch")
	}

	result, err := parse.ParseBatch(context.Background(), p, paths, cfg, os.Stdout)
	if err != nil {
		return err
	}

	if printN > 0 {
		for _, path := range paths {
			law, _, err := parse.ReadRecords(parse.RecordsPath(cfg.StatutesDir, convert.DocumentID(path)))
			if err != nil {
				continue
			}
			fmt.Printf("\n== %s ==\n\n", law.ID)
			parse.Preview(os.Stdout, law.Records, printN)
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d text(s) failed to parse", result.Failed)
	}
	return nil
}

// parseStdin segments text read from stdin and writes the records to stdout.
func parseStdin(p *statute.Parser, allowEmpty bool, printN int, format string) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	law, err := parse.Document(p, "stdin", "-", convert.Normalize(string(data)), allowEmpty)
	if err != nil {
		return err
	}

	if printN > 0 {
		parse.Preview(os.Stdout, law.Records, printN)
		return nil
	}
	return parse.Encode(os.Stdout, law.Records, format)
}
