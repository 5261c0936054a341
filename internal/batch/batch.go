// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch runs a per-document stage function over many documents
// with bounded parallelism.
package batch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/statute-parser/pkg/types"
)

// DefaultWorkers is used when a stage is configured with zero workers.
const DefaultWorkers = 4

// Outcome classifies the result of processing one document.
type Outcome int

const (
	Done Outcome = iota
	Skipped
	Failed
)

// Func processes one document and reports progress lines to w.
type Func func(ctx context.Context, item string, w io.Writer) Outcome

// Run calls fn for every item with at most workers calls in flight. Each
// call gets its own buffer that is flushed to w when the call returns, so
// progress lines from concurrent documents never interleave. A failing
// item does not stop the batch; cancellation of ctx or a failed write to w
// does, in which case the items not yet started are left out of the result.
func Run(ctx context.Context, items []string, workers int, w io.Writer, fn Func) (types.BatchResult, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var (
		mu     sync.Mutex
		result types.BatchResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			var buf bytes.Buffer
			outcome := fn(gctx, item, &buf)

			mu.Lock()
			defer mu.Unlock()
			switch outcome {
			case Done:
				result.Done++
			case Skipped:
				result.Skipped++
			default:
				result.Failed++
			}
			if _, err := w.Write(buf.Bytes()); err != nil {
				return fmt.Errorf("writing progress for %s: %w", item, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, ctx.Err()
}
