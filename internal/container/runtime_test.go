// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor succeeds for binaries on its path and for command lines
// listed in ok; piped runs are delegated to pipe.
type fakeExecutor struct {
	path  map[string]bool
	ok    map[string]bool
	pipe  func(name string, args []string, stdin io.Reader, stdout io.Writer) error
	calls []string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.path[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (f *fakeExecutor) Exec(_ context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error {
	line := name + " " + strings.Join(args, " ")
	f.calls = append(f.calls, line)
	if f.pipe != nil && len(args) > 0 && args[0] == "run" {
		return f.pipe(name, args, stdin, stdout)
	}
	if f.ok[line] {
		return nil
	}
	return errors.New("command failed: " + line)
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		preferred string
		exec      *fakeExecutor
		want      string
		errMsg    string
	}{
		{
			name: "docker first",
			exec: &fakeExecutor{
				path: map[string]bool{"docker": true, "podman": true},
				ok:   map[string]bool{"docker info": true, "podman info": true},
			},
			want: "docker",
		},
		{
			name: "podman when docker daemon is down",
			exec: &fakeExecutor{
				path: map[string]bool{"docker": true, "podman": true},
				ok:   map[string]bool{"podman info": true},
			},
			want: "podman",
		},
		{
			name:      "preferred runtime only",
			preferred: "podman",
			exec: &fakeExecutor{
				path: map[string]bool{"docker": true},
				ok:   map[string]bool{"docker info": true},
			},
			errMsg: "no container runtime available",
		},
		{
			name:      "unsupported preference",
			preferred: "lxc",
			exec:      &fakeExecutor{},
			errMsg:    "unsupported container runtime",
		},
		{
			name:   "nothing installed",
			exec:   &fakeExecutor{},
			errMsg: "no container runtime available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detect(context.Background(), tt.preferred, tt.exec)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rt.Name())
		})
	}
}

func TestImageExists(t *testing.T) {
	const image = "pandoc/core:3.5"

	docker := &fakeExecutor{ok: map[string]bool{"docker image inspect " + image: true}}
	require.NoError(t, newEngine(binDocker, docker).ImageExists(context.Background(), image))

	podman := &fakeExecutor{ok: map[string]bool{"podman image exists " + image: true}}
	require.NoError(t, newEngine(binPodman, podman).ImageExists(context.Background(), image))

	err := newEngine(binDocker, &fakeExecutor{}).ImageExists(context.Background(), image)
	require.Error(t, err)
	assert.Contains(t, err.Error(), image)
}

func TestRun(t *testing.T) {
	exec := &fakeExecutor{
		pipe: func(name string, args []string, stdin io.Reader, stdout io.Writer) error {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return err
			}
			_, err = stdout.Write(bytes.ToUpper(data))
			return err
		},
	}
	rt := newEngine(binPodman, exec)

	var out bytes.Buffer
	job := Job{Image: "pandoc/core:3.5", Args: []string{"-f", "docx", "-t", "plain"}}
	err := rt.Run(context.Background(), job, strings.NewReader("prvá časť"), &out)

	require.NoError(t, err)
	assert.Equal(t, "PRVÁ ČASŤ", out.String())
	require.Len(t, exec.calls, 1)
	assert.Equal(t, "podman run --rm -i --network=none pandoc/core:3.5 -f docx -t plain", exec.calls[0])
}

func TestRun_Failure(t *testing.T) {
	exec := &fakeExecutor{
		pipe: func(string, []string, io.Reader, io.Writer) error {
			return errors.New("exit status 64")
		},
	}

	err := newEngine(binDocker, exec).Run(context.Background(), Job{Image: "pandoc/core:3.5"}, strings.NewReader(""), io.Discard)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "running pandoc/core:3.5 in docker")
}
