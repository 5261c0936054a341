// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/statute-parser/internal/records"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage the record database (store, retrieve, export, laws)",
	Long: `Records manages a local SQLite database built from parsed statute
records. Use subcommands to index record files, query them, or export.`,
}

// --- store subcommand ---

var recordsStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Ingest parsed record files into the database",
	Long: `Store reads statutes/records/*-records.yaml, loads them into a SQLite
database with FTS5 indexing, and writes statutes/index/export.yaml.
Unchanged files are skipped on subsequent runs; laws whose record file was
removed are dropped from the database.`,
	RunE: runRecordsStore,
}

func runRecordsStore(cmd *cobra.Command, args []string) error {
	store, err := records.NewStore(recordStoreConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d record file(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- retrieve subcommand ---

var recordsRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query records with full-text search and filters",
	Long: `Retrieve searches paragraph titles and content with FTS5 full-text
search (diacritics are ignored), filters by law number, section or article,
or combines both. Filter-only queries list records in document order.`,
	RunE: runRecordsRetrieve,
}

func runRecordsRetrieve(cmd *cobra.Command, args []string) error {
	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --law, --section, or --article")
	}

	store, err := records.NewStore(recordStoreConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

func formatRetrieveOutput(results []records.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-10s  %-12s  %-10s  %-24s  %s\n",
		"Rank", "Law", "Section", "Article", "Paragraph", "Content")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for i, r := range results {
		fmt.Fprintf(os.Stdout, "%-4d  %-10s  %-12s  %-10s  %-24s  %s\n",
			i+1, r.LawNumber, clip(r.SectionTitle, 12), clip(r.ArticleTitle, 10),
			clip(r.ParagraphTitle, 24), clip(r.Content, 40))
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// clip shortens s to n runes, marking the cut with "...".
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// --- export subcommand ---

var recordsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export records to YAML, JSON, or CSV",
	Long: `Export writes all records (or a filtered subset) to
statutes/index/export.yaml, export.json, or export.csv. Supports the same
filter flags as retrieve for partial exports.`,
	RunE: runRecordsExport,
}

func runRecordsExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := records.NewStore(recordStoreConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	path, err := store.Export(context.Background(), format, queryOptsFromFlags(cmd, args))
	if err != nil {
		return err
	}
	fmt.Println("Exported to", path)
	return nil
}

// --- laws subcommand ---

var recordsLawsCmd = &cobra.Command{
	Use:   "laws",
	Short: "List indexed laws with their record counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := records.NewStore(recordStoreConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		laws, err := store.Laws(context.Background())
		if err != nil {
			return err
		}
		if len(laws) == 0 {
			fmt.Println("No laws indexed.")
			return nil
		}
		for _, l := range laws {
			fmt.Printf("%-24s  %-10s  %-20s  %d records\n", l.ID, l.LawNumber, l.Date, l.Records)
		}
		return nil
	},
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command, args []string) records.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	law, _ := cmd.Flags().GetString("law")
	section, _ := cmd.Flags().GetString("section")
	article, _ := cmd.Flags().GetString("article")
	limit, _ := cmd.Flags().GetInt("limit")

	return records.QueryOptions{
		Query:      queryText,
		LawNumber:  law,
		Section:    section,
		Article:    article,
		MaxResults: limit,
	}
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("query", "", "full-text search query")
	cmd.Flags().String("law", "", "filter by law number, e.g. 595/2003")
	cmd.Flags().String("section", "", "filter by section title, e.g. Prvá")
	cmd.Flags().String("article", "", "filter by article title, e.g. \"Čl. 1\"")
	cmd.Flags().Int("limit", 0, "maximum results (0 = store default for retrieve, all for export)")
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	recordsCmd.PersistentFlags().String("statutes-dir", "statutes", "base directory for statutes (contains records/, index/)")
	recordsCmd.PersistentFlags().Int("max-results", 20, "default maximum number of query results")
	bindFlag(recordsCmd, "records.statutes_dir", "statutes-dir")
	bindFlag(recordsCmd, "records.max_results", "max-results")

	addFilterFlags(recordsRetrieveCmd)
	recordsRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	addFilterFlags(recordsExportCmd)
	recordsExportCmd.Flags().String("format", "yaml", "export format: yaml, json, or csv")

	recordsCmd.AddCommand(recordsStoreCmd)
	recordsCmd.AddCommand(recordsRetrieveCmd)
	recordsCmd.AddCommand(recordsExportCmd)
	recordsCmd.AddCommand(recordsLawsCmd)

	rootCmd.AddCommand(recordsCmd)
}
