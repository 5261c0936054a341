// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container runs conversion tools packaged as container images
// through whichever of docker or podman is installed.
package container

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Job describes one container invocation: the image and the arguments
// passed to its entrypoint. Input is streamed on stdin, output read from
// stdout; the container never sees the host filesystem or network.
type Job struct {
	Image string
	Args  []string
}

// Runtime runs jobs in a container engine.
type Runtime interface {
	// Name returns the engine binary name ("docker" or "podman").
	Name() string

	// ImageExists returns nil when image is present locally.
	ImageExists(ctx context.Context, image string) error

	// Run executes job, piping stdin into the container and its stdout
	// into stdout.
	Run(ctx context.Context, job Job, stdin io.Reader, stdout io.Writer) error
}

// executor abstracts process execution for tests.
type executor interface {
	LookPath(file string) (string, error)
	Exec(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Exec(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	return cmd.Run()
}

// engine implements Runtime for one binary. Docker and Podman accept the
// same run flags and differ only in how an image is probed.
type engine struct {
	bin        string
	imageProbe []string
	exec       executor
}

func (e *engine) Name() string { return e.bin }

func (e *engine) available(ctx context.Context) bool {
	if _, err := e.exec.LookPath(e.bin); err != nil {
		return false
	}
	return e.exec.Exec(ctx, e.bin, []string{"info"}, nil, io.Discard) == nil
}

func (e *engine) ImageExists(ctx context.Context, image string) error {
	args := append(append([]string{}, e.imageProbe...), image)
	if err := e.exec.Exec(ctx, e.bin, args, nil, io.Discard); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, e.bin, err)
	}
	return nil
}

func (e *engine) Run(ctx context.Context, job Job, stdin io.Reader, stdout io.Writer) error {
	args := append([]string{"run", "--rm", "-i", "--network=none", job.Image}, job.Args...)
	if err := e.exec.Exec(ctx, e.bin, args, stdin, stdout); err != nil {
		return fmt.Errorf("running %s in %s: %w", job.Image, e.bin, err)
	}
	return nil
}

func newEngine(bin string, exec executor) *engine {
	probe := []string{"image", "inspect"}
	if bin == binPodman {
		probe = []string{"image", "exists"}
	}
	return &engine{bin: bin, imageProbe: probe, exec: exec}
}

// Detect returns the runtime named by preferred ("docker" or "podman"), or
// when preferred is empty the first operational one, trying docker first.
func Detect(ctx context.Context, preferred string) (Runtime, error) {
	return detect(ctx, preferred, osExecutor{})
}

func detect(ctx context.Context, preferred string, exec executor) (Runtime, error) {
	candidates := []string{binDocker, binPodman}
	switch preferred {
	case "":
	case binDocker, binPodman:
		candidates = []string{preferred}
	default:
		return nil, fmt.Errorf("unsupported container runtime %q: use %s or %s", preferred, binDocker, binPodman)
	}

	for _, bin := range candidates {
		if e := newEngine(bin, exec); e.available(ctx) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("no container runtime available: tried %v", candidates)
}
