package export

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"pkt.systems/pslog"
)

// Runner runs an external tool in dir. A tool that starts but exits non-zero
// is reported as a *ToolError.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ToolError carries the standard error output of a failed tool.
type ToolError struct {
	Tool     string
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.ExitCode)
}

// ExecRunner runs tools with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	log := pslog.Ctx(ctx).With("tool", name, "dir", dir, "args", strings.Join(args, " "))
	log.Debug("tool run start")

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		log.Debug("tool run ok")
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		toolErr := &ToolError{
			Tool:     name,
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr.String()),
		}
		log.Warn("tool run failed", "exit_code", toolErr.ExitCode, "stderr", preview(toolErr.Stderr))
		return toolErr
	}

	log.Warn("tool start failed", "err", err)
	return errors.Wrapf(err, "running %s", name)
}

func preview(s string) string {
	if len(s) > 200 {
		return s[:200]
	}
	return s
}
