// Package backend invokes the external settings utility and manages
// the scratch documents exchanged with it. The tool is the transaction
// boundary: a non-zero exit aborts the whole operation, with no retry
// and no rollback.
package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/gsbios/biosctl/pkg/engine"
)

// Tool is one external settings utility plus its fixed flags
// (e.g. "-x <hwdef>" for conrep, "-a" for hprcu). Per-operation flags
// are appended by Dump and Load.
type Tool struct {
	Path string
	Args []string
}

// Dump has the tool write its current settings into a scratch file and
// returns the file contents. The scratch file is removed on every
// return path.
func (t *Tool) Dump(ctx context.Context) (string, error) {
	scratch := scratchPath()
	defer os.Remove(scratch)

	if err := t.invoke(ctx, "-f", scratch, "-s"); err != nil {
		return "", err
	}
	data, err := os.ReadFile(scratch)
	if err != nil {
		return "", fmt.Errorf("reading settings dump: %w", err)
	}
	return string(data), nil
}

// Load writes doc to a scratch file and feeds it to the tool's apply
// operation. The scratch file is removed on every return path.
func (t *Tool) Load(ctx context.Context, doc string) error {
	scratch := scratchPath()
	defer os.Remove(scratch)

	if err := os.WriteFile(scratch, []byte(doc), 0o600); err != nil {
		return fmt.Errorf("writing settings document: %w", err)
	}
	return t.invoke(ctx, "-f", scratch, "-l")
}

func (t *Tool) invoke(ctx context.Context, extra ...string) error {
	args := append(append([]string{}, t.Args...), extra...)
	cmd := exec.CommandContext(ctx, t.Path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return fmt.Errorf("invoking %s: %w", t.Path, err)
		}
		return &engine.BackendInvocationError{
			Tool:     filepath.Base(t.Path),
			ExitCode: exitErr.ExitCode(),
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
		}
	}
	return nil
}

// scratchPath names a scratch file the tool can create itself; the
// name must not collide across concurrent invocations of biosctl.
func scratchPath() string {
	return filepath.Join(os.TempDir(), "biosctl-"+uuid.NewString()+".xml")
}
