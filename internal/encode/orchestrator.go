package encode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"clipforge/internal/config"
	"clipforge/internal/deps"
	"clipforge/internal/fileutil"
	"clipforge/internal/logging"
	"clipforge/internal/services"
)

const outputExtension = ".mp4"

// Orchestrator runs encode jobs against the host encoder. It owns the
// concurrency limit, the per-attempt timeout, the fallback ladder, and the
// staging-then-rename output discipline: a partial file never reaches the
// output directory.
type Orchestrator struct {
	cfg     *config.Config
	checker *deps.Checker
	runner  Runner
	logger  *slog.Logger
	limit   *limiter
}

// NewOrchestrator wires an orchestrator from configuration. A nil runner
// selects the subprocess runner; a nil checker builds a fresh one.
func NewOrchestrator(cfg *config.Config, checker *deps.Checker, runner Runner, logger *slog.Logger) *Orchestrator {
	if checker == nil {
		checker = deps.NewChecker()
	}
	if runner == nil {
		runner = CLIRunner{StderrLimit: cfg.Encode.StderrLimitBytes}
	}
	return &Orchestrator{
		cfg:     cfg,
		checker: checker,
		runner:  runner,
		logger:  logging.NewComponentLogger(logger, "encode"),
		limit:   newLimiter(cfg.Encode.Concurrency),
	}
}

// Execute runs a job to completion and returns its Result. Failures are
// reported in the Result rather than as an error; the orchestrator has no
// outcome channel besides it.
func (o *Orchestrator) Execute(ctx context.Context, job Job) Result {
	ctx = services.WithJobID(ctx, job.ID)

	if err := o.limit.acquire(ctx); err != nil {
		return o.failure(job, 0, "", services.Wrap(services.ErrTransient, "encode", "acquire slot", "canceled while queued", err))
	}
	defer o.limit.release()

	ffmpegBin, err := o.checker.Resolve(o.cfg.FFmpegBinary())
	if err != nil {
		return o.failure(job, 0, "", services.Wrap(services.ErrEncoderUnavailable, "encode", "resolve encoder", "", err))
	}
	ffprobeBin, err := o.checker.Resolve(o.cfg.FFprobeBinary())
	if err != nil {
		return o.failure(job, 0, "", services.Wrap(services.ErrEncoderUnavailable, "encode", "resolve prober", "", err))
	}

	timeout := time.Duration(o.cfg.Encode.TimeoutSeconds) * time.Second
	strategies := defaultStrategies()
	current := primaryPlan(job.Graph)
	attempt := 0
	nextStrategy := 0

	for {
		attempt++
		o.logger.InfoContext(ctx, "starting encode attempt", logging.Args(
			logging.Int(logging.FieldAttempt, attempt),
			logging.String(logging.FieldStrategy, current.Name),
		)...)

		tempPath, err := o.runAttempt(ctx, ffmpegBin, current, job, timeout)
		if err == nil {
			var result Result
			result, err = o.finalize(ctx, ffprobeBin, job, current, attempt, tempPath)
			if err == nil {
				return result
			}
		}

		o.logger.WarnContext(ctx, "encode attempt failed", logging.Args(
			logging.Int(logging.FieldAttempt, attempt),
			logging.String(logging.FieldStrategy, current.Name),
			logging.Error(err),
		)...)

		if fatalAttemptError(ctx, err) {
			return o.failure(job, attempt, current.Name, err)
		}

		advanced := false
		for nextStrategy < len(strategies) {
			s := strategies[nextStrategy]
			nextStrategy++
			if next, changed := s.Apply(current); changed {
				next.Name = s.Name
				current = next
				advanced = true
				break
			}
		}
		if !advanced {
			return o.exhausted(job, attempt, current.Name, err)
		}
	}
}

// runAttempt encodes into a fresh staging path and leaves the artifact there
// on success. Any other outcome removes the staging file before returning.
func (o *Orchestrator) runAttempt(ctx context.Context, ffmpegBin string, p plan, job Job, timeout time.Duration) (string, error) {
	tempPath := o.stagingPath(job)
	args := buildArgs(p, job.Sources, tempPath)

	attemptCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := o.runner.Run(attemptCtx, ffmpegBin, args); err != nil {
		removeQuiet(tempPath)
		return "", err
	}
	return tempPath, nil
}

// finalize validates the staging artifact and promotes it into the output
// directory. The encoder exiting zero is not enough; the staging file still
// has to hold real media. A returned error sends the job back to the fallback
// ladder, with the staging file already removed.
func (o *Orchestrator) finalize(ctx context.Context, ffprobeBin string, job Job, p plan, attempt int, tempPath string) (Result, error) {
	width, height, duration, size, err := describeOutput(ctx, ffprobeBin, tempPath)
	if err != nil {
		removeQuiet(tempPath)
		return Result{}, err
	}

	finalPath := filepath.Join(o.cfg.Paths.OutputDir, job.OutputBase+outputExtension)
	if moveErr := fileutil.MoveFile(tempPath, finalPath); moveErr != nil {
		removeQuiet(tempPath)
		return Result{}, services.Wrap(services.ErrTransient, "encode", "finalize output", "", moveErr)
	}

	o.logger.InfoContext(ctx, "encode succeeded", logging.Args(
		logging.Int(logging.FieldAttempt, attempt),
		logging.String(logging.FieldStrategy, p.Name),
		logging.String("output", finalPath),
		logging.Int64("size_bytes", size),
	)...)

	return Result{
		Status:     StatusSucceeded,
		OutputPath: finalPath,
		FileSize:   size,
		Width:      width,
		Height:     height,
		Duration:   duration,
		Attempts:   attempt,
		Strategy:   p.Name,
	}, nil
}

// exhausted marks a job failed with no fallback strategies left. Resubmitting
// the same job would walk the same ladder, so the result is final regardless
// of what kind of error ended the last attempt.
func (o *Orchestrator) exhausted(job Job, attempts int, strategyName string, err error) Result {
	result := o.failure(job, attempts, strategyName, err)
	result.Retryable = false
	return result
}

func (o *Orchestrator) failure(job Job, attempts int, strategyName string, err error) Result {
	limit := o.cfg.Encode.StderrLimitBytes
	if limit <= 0 {
		limit = 4096
	}
	return Result{
		Status:       StatusFailed,
		Attempts:     attempts,
		Strategy:     strategyName,
		Retryable:    services.Retryable(err),
		ErrorMessage: truncateMessage(err.Error(), limit),
	}
}

func (o *Orchestrator) stagingPath(job Job) string {
	name := fmt.Sprintf("%s-%s%s", job.OutputBase, uuid.NewString(), outputExtension)
	return filepath.Join(o.cfg.Paths.StagingDir, name)
}

// fatalAttemptError reports whether the fallback ladder must stop. Bad inputs
// and a missing encoder are not fixed by a different argument vector, and a
// canceled context means the caller has moved on.
func fatalAttemptError(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return errors.Is(err, services.ErrValidation) ||
		errors.Is(err, services.ErrConfiguration) ||
		errors.Is(err, services.ErrEncoderUnavailable)
}

func removeQuiet(path string) {
	if path == "" {
		return
	}
	// Leftover staging files are cleaned up on the next run.
	_ = os.Remove(path)
}
