package encode

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"time"

	"clipforge/internal/services"
)

var commandContext = exec.CommandContext

// Runner executes the encoder binary with a constructed argument vector.
type Runner interface {
	Run(ctx context.Context, binary string, args []string) error
}

// CLIRunner spawns the encoder as a subprocess, captures bounded stderr, and
// maps exit conditions onto the error taxonomy. Killing the process on
// context cancellation is handled by exec.CommandContext.
type CLIRunner struct {
	// StderrLimit bounds retained diagnostic output, in bytes.
	StderrLimit int
}

// Run executes the binary and waits for it to exit.
func (r CLIRunner) Run(ctx context.Context, binary string, args []string) error {
	cmd := commandContext(ctx, binary, args...) //nolint:gosec
	var stderr tailBuffer
	stderr.limit = r.StderrLimit
	if stderr.limit <= 0 {
		stderr.limit = 4096
	}
	cmd.Stderr = &stderr
	cmd.Stdout = io.Discard
	// A killed encoder can leave a child process holding the stderr pipe
	// open. WaitDelay keeps Wait from blocking on it after cancellation.
	cmd.WaitDelay = time.Second

	if err := cmd.Start(); err != nil {
		return services.Wrap(services.ErrEncodeFailed, "encode", "start encoder", stderr.String(), err)
	}
	err := cmd.Wait()
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return services.Wrap(services.ErrTimeout, "encode", "run encoder", stderr.String(), ctxErr)
	}
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
		return services.Wrap(services.ErrTransient, "encode", "run encoder", "canceled", ctxErr)
	}
	return services.Wrap(services.ErrEncodeFailed, "encode", "run encoder", stderr.String(), err)
}

// tailBuffer keeps only the most recent bytes written to it. Encoder error
// text accumulates at the end of stderr, so the tail is the useful part.
type tailBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	written := len(p)
	if len(p) > t.limit {
		p = p[len(p)-t.limit:]
	}
	t.buf.Write(p)
	if over := t.buf.Len() - t.limit; over > 0 {
		trimmed := append([]byte(nil), t.buf.Bytes()[over:]...)
		t.buf.Reset()
		t.buf.Write(trimmed)
	}
	return written, nil
}

func (t *tailBuffer) String() string {
	return t.buf.String()
}
