package encoder

import (
	"bytes"
	"context"
	"os"
	"os/exec"

	"github.com/ytgrab/ytgrab/internal/logging"
	"github.com/ytgrab/ytgrab/internal/reply"
)

// ExecRunner runs the ffmpeg executable at a fixed path.
type ExecRunner struct {
	path   string
	logger logging.Logger
}

// NewExecRunner creates a runner for the executable at path.
func NewExecRunner(path string, logger logging.Logger) *ExecRunner {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &ExecRunner{path: path, logger: logger}
}

// Run spawns one encoder process and waits for it to finish. Both output
// streams are redirected into buffers to avoid pipe deadlock; no console
// window is opened. The executable path is checked before the spawn so a
// missing encoder surfaces as IoError rather than a start failure.
func (r *ExecRunner) Run(ctx context.Context, args []string) (string, string, error) {
	if _, err := os.Stat(r.path); err != nil {
		return "", "", reply.Wrap(reply.IoError, err, "encoder executable missing at %q", r.path)
	}

	cmd := exec.CommandContext(ctx, r.path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debugf("encoder: %s %v", r.path, args)

	if err := cmd.Start(); err != nil {
		return "", "", reply.Wrap(reply.ExternalError, err, "encoder failed to start")
	}

	err := cmd.Wait()

	// Wait reaps the process in every normal path; the kill below only
	// fires when Wait returned without the process having exited.
	if cmd.ProcessState == nil && cmd.Process != nil {
		if killErr := cmd.Process.Kill(); killErr == nil {
			r.logger.Infof("encoder process was killed manually")
		}
	}

	if err != nil {
		r.logger.Errorf("encoder exited abnormally: %v, stderr: %s", err, stderr.String())
		return stdout.String(), stderr.String(), reply.Wrap(reply.ExternalError, err, "encoder exited abnormally")
	}
	return stdout.String(), stderr.String(), nil
}
