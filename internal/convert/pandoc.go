// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pdiddy/statute-parser/internal/container"
)

// PandocImage is the container image used by PandocConverter.
const PandocImage = "pandoc/core:3.5"

// PandocConverter converts .docx files with pandoc running in a container.
// It handles documents whose layout defeats DocxConverter, e.g. numbered
// headings that Word generates from list definitions.
type PandocConverter struct {
	runtime container.Runtime
}

// NewPandocConverter returns a converter that runs PandocImage on rt. It
// fails when the image is not available locally.
func NewPandocConverter(ctx context.Context, rt container.Runtime) (*PandocConverter, error) {
	if err := rt.ImageExists(ctx, PandocImage); err != nil {
		return nil, fmt.Errorf("pandoc image not available in %s: %w", rt.Name(), err)
	}
	return &PandocConverter{runtime: rt}, nil
}

// Convert pipes the document through pandoc and returns its plain-text
// rendering with one paragraph per line.
func (p *PandocConverter) Convert(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	job := container.Job{
		Image: PandocImage,
		Args:  []string{"--from=docx", "--to=plain", "--wrap=none"},
	}
	var out bytes.Buffer
	if err := p.runtime.Run(ctx, job, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with pandoc: %w", path, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("pandoc produced empty output for %s", path)
	}
	return out.String(), nil
}
