// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/statute-parser/internal/batch"
	"github.com/pdiddy/statute-parser/internal/container"
	"github.com/pdiddy/statute-parser/internal/convert"
	"github.com/pdiddy/statute-parser/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [documents...]",
	Short: "Normalize source statute documents into text",
	Long: `Convert extracts the text of statute documents and normalizes it so that
every heading, article marker and paragraph marker starts its own line.
Results are written to statutes/text/<id>.txt.

Backends: docx reads Word files directly, html reads saved web pages, and
pandoc runs the pandoc/core image in docker or podman.

Use --batch to convert every source in statutes/raw/ that has no text yet.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("backend", string(types.BackendDocx), "conversion backend: docx, html, or pandoc")
	convertCmd.Flags().String("statutes-dir", "statutes", "base directory for statutes (contains raw/, text/)")
	convertCmd.Flags().Int("workers", batch.DefaultWorkers, "number of documents converted at once")
	convertCmd.Flags().String("runtime", "", "container runtime for the pandoc backend: docker or podman")
	convertCmd.Flags().Bool("batch", false, "convert all pending documents in statutes-dir/raw")

	bindFlag(convertCmd, "convert.backend", "backend")
	bindFlag(convertCmd, "convert.statutes_dir", "statutes-dir")
	bindFlag(convertCmd, "convert.workers", "workers")
	bindFlag(convertCmd, "convert.runtime", "runtime")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := conversionConfig()
	batchMode, _ := cmd.Flags().GetBool("batch")

	if !batchMode && len(args) == 0 {
		return fmt.Errorf("provide document paths or use --batch")
	}

	ctx := context.Background()
	c, err := newConverter(ctx, cfg)
	if err != nil {
		return err
	}

	paths := args
	if batchMode {
		paths, err = convert.PendingSources(cfg.StatutesDir, cfg.Backend)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Println("No documents to convert.")
			return nil
		}
	}

	result, err := convert.ConvertBatch(ctx, c, paths, cfg, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed to convert", result.Failed)
	}
	return nil
}

// newConverter builds the converter for cfg.Backend.
func newConverter(ctx context.Context, cfg types.ConversionConfig) (convert.Converter, error) {
	switch cfg.Backend {
	case types.BackendDocx, "":
		return convert.DocxConverter{}, nil
	case types.BackendHTML:
		return convert.HTMLConverter{}, nil
	case types.BackendPandoc:
		rt, err := container.Detect(ctx, cfg.Runtime)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "Using container runtime: %s\n", rt.Name())
		pc, err := convert.NewPandocConverter(ctx, rt)
		if err != nil {
			return nil, err
		}
		return pc, nil
	default:
		return nil, fmt.Errorf("unknown backend %q: use docx, html, or pandoc", cfg.Backend)
	}
}
