package encode

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"clipforge/internal/config"
	"clipforge/internal/logging"
	"clipforge/internal/services"
	"clipforge/internal/testsupport"
)

func orchestratorConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	binDir := filepath.Join(testsupport.BaseDir(cfg), "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatal(err)
	}
	return cfg, binDir
}

func writeSource(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("source"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected %s empty, found %v", dir, names)
	}
}

func TestOrchestratorSuccess(t *testing.T) {
	cfg, binDir := orchestratorConfig(t)
	cfg.Tools.FFmpegBinary = testsupport.FakeFFmpeg(t, binDir)
	cfg.Tools.FFprobeBinary = testsupport.FakeFFprobe(t, binDir, 1080, 1920, 12.5)

	source := writeSource(t, testsupport.BaseDir(cfg), "a.mp4")
	orch := NewOrchestrator(cfg, nil, nil, logging.NewNop())

	result := orch.Execute(context.Background(), Job{
		ID:         "job-1",
		Sources:    []string{source},
		Graph:      singleClipGraph(true),
		OutputBase: "render-1",
	})

	if !result.Succeeded() {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.Attempts != 1 || result.Strategy != "" {
		t.Errorf("expected primary attempt, got attempts=%d strategy=%q", result.Attempts, result.Strategy)
	}
	if result.Width != 1080 || result.Height != 1920 {
		t.Errorf("unexpected dimensions: %dx%d", result.Width, result.Height)
	}
	if result.Duration != 12.5 {
		t.Errorf("unexpected duration: %v", result.Duration)
	}
	if filepath.Dir(result.OutputPath) != cfg.Paths.OutputDir {
		t.Errorf("output outside output dir: %s", result.OutputPath)
	}
	if _, err := os.Stat(result.OutputPath); err != nil {
		t.Errorf("output file missing: %v", err)
	}
	assertDirEmpty(t, cfg.Paths.StagingDir)
}

func TestOrchestratorExhaustsFallbacks(t *testing.T) {
	cfg, binDir := orchestratorConfig(t)
	cfg.Tools.FFmpegBinary = testsupport.FakeFFmpegFailing(t, binDir, "conversion failed: boom")
	cfg.Tools.FFprobeBinary = testsupport.FakeFFprobe(t, binDir, 1080, 1920, 1)

	source := writeSource(t, testsupport.BaseDir(cfg), "a.mp4")
	orch := NewOrchestrator(cfg, nil, nil, logging.NewNop())

	result := orch.Execute(context.Background(), Job{
		ID:         "job-2",
		Sources:    []string{source, source},
		Graph:      multiClipGraph(true),
		OutputBase: "render-2",
	})

	if result.Status != StatusFailed {
		t.Fatalf("expected failure, got %+v", result)
	}
	// Primary, drop-audio, plain-concat. Multi-clip audio is already
	// re-encoded, so force-reencode is skipped without an attempt.
	if result.Attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", result.Attempts)
	}
	if result.Strategy != "plain-concat" {
		t.Errorf("expected last strategy plain-concat, got %q", result.Strategy)
	}
	if result.Retryable {
		t.Error("an exhausted fallback chain must not be retryable")
	}
	if !strings.Contains(result.ErrorMessage, "conversion failed: boom") {
		t.Errorf("error message missing encoder stderr: %q", result.ErrorMessage)
	}
	assertDirEmpty(t, cfg.Paths.StagingDir)
	assertDirEmpty(t, cfg.Paths.OutputDir)
}

// A single clip without audio leaves the fallback ladder with nothing to
// change, so an empty output exhausts the job on the first attempt.
func TestOrchestratorEmptyOutputNotRetryable(t *testing.T) {
	cfg, binDir := orchestratorConfig(t)
	cfg.Tools.FFmpegBinary = testsupport.FakeFFmpegEmpty(t, binDir)
	cfg.Tools.FFprobeBinary = testsupport.FakeFFprobe(t, binDir, 1080, 1920, 1)

	source := writeSource(t, testsupport.BaseDir(cfg), "a.mp4")
	orch := NewOrchestrator(cfg, nil, nil, logging.NewNop())

	result := orch.Execute(context.Background(), Job{
		ID:         "job-3",
		Sources:    []string{source},
		Graph:      singleClipGraph(false),
		OutputBase: "render-3",
	})

	if result.Status != StatusFailed {
		t.Fatalf("expected failure, got %+v", result)
	}
	if result.Retryable {
		t.Error("empty output must not be retryable")
	}
	if result.Attempts != 1 {
		t.Errorf("expected a single attempt, got %d", result.Attempts)
	}
	assertDirEmpty(t, cfg.Paths.StagingDir)
	assertDirEmpty(t, cfg.Paths.OutputDir)
}

func TestOrchestratorTimeoutCleansPartialOutput(t *testing.T) {
	cfg, binDir := orchestratorConfig(t)
	cfg.Encode.TimeoutSeconds = 1
	cfg.Tools.FFmpegBinary = testsupport.FakeFFmpegHanging(t, binDir)
	cfg.Tools.FFprobeBinary = testsupport.FakeFFprobe(t, binDir, 1080, 1920, 1)

	source := writeSource(t, testsupport.BaseDir(cfg), "a.mp4")
	orch := NewOrchestrator(cfg, nil, nil, logging.NewNop())

	result := orch.Execute(context.Background(), Job{
		ID:         "job-6",
		Sources:    []string{source},
		Graph:      singleClipGraph(false),
		OutputBase: "render-6",
	})

	if result.Status != StatusFailed {
		t.Fatalf("expected failure, got %+v", result)
	}
	if !result.Retryable {
		t.Error("timeouts should stay retryable")
	}
	assertDirEmpty(t, cfg.Paths.StagingDir)
	assertDirEmpty(t, cfg.Paths.OutputDir)
}

// gatedRunner tracks how many Run calls overlap while behaving like a
// well-behaved encoder that writes its output file.
type gatedRunner struct {
	active  atomic.Int32
	maxSeen atomic.Int32
}

func (r *gatedRunner) Run(_ context.Context, _ string, args []string) error {
	n := r.active.Add(1)
	defer r.active.Add(-1)
	for {
		seen := r.maxSeen.Load()
		if n <= seen || r.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	time.Sleep(50 * time.Millisecond)
	out := args[len(args)-1]
	return os.WriteFile(out, []byte("encoded"), 0o644)
}

func TestOrchestratorBoundsConcurrency(t *testing.T) {
	cfg, binDir := orchestratorConfig(t)
	cfg.Encode.Concurrency = 1
	cfg.Tools.FFmpegBinary = testsupport.FakeFFmpeg(t, binDir)
	cfg.Tools.FFprobeBinary = testsupport.FakeFFprobe(t, binDir, 1080, 1920, 5)

	runner := &gatedRunner{}
	source := writeSource(t, testsupport.BaseDir(cfg), "a.mp4")
	orch := NewOrchestrator(cfg, nil, runner, logging.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result := orch.Execute(context.Background(), Job{
				ID:         fmt.Sprintf("job-c%d", i),
				Sources:    []string{source},
				Graph:      singleClipGraph(false),
				OutputBase: fmt.Sprintf("render-c%d", i),
			})
			if !result.Succeeded() {
				t.Errorf("job %d failed: %+v", i, result)
			}
		}(i)
	}
	wg.Wait()

	if peak := runner.maxSeen.Load(); peak > 1 {
		t.Fatalf("expected at most one concurrent encode, saw %d", peak)
	}
	assertDirEmpty(t, cfg.Paths.StagingDir)
}

func TestOrchestratorCancelKillsAttempt(t *testing.T) {
	cfg, binDir := orchestratorConfig(t)
	cfg.Tools.FFmpegBinary = testsupport.FakeFFmpegHanging(t, binDir)
	cfg.Tools.FFprobeBinary = testsupport.FakeFFprobe(t, binDir, 1080, 1920, 1)

	source := writeSource(t, testsupport.BaseDir(cfg), "a.mp4")
	orch := NewOrchestrator(cfg, nil, nil, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	timer := time.AfterFunc(200*time.Millisecond, cancel)
	defer timer.Stop()

	result := orch.Execute(ctx, Job{
		ID:         "job-7",
		Sources:    []string{source},
		Graph:      singleClipGraph(false),
		OutputBase: "render-7",
	})

	if result.Status != StatusFailed {
		t.Fatalf("expected failure, got %+v", result)
	}
	if result.Attempts != 1 {
		t.Errorf("cancellation must stop the fallback ladder, got %d attempts", result.Attempts)
	}
	assertDirEmpty(t, cfg.Paths.StagingDir)
	assertDirEmpty(t, cfg.Paths.OutputDir)
}

func TestOrchestratorMissingEncoder(t *testing.T) {
	cfg, _ := orchestratorConfig(t)
	cfg.Tools.FFmpegBinary = filepath.Join(testsupport.BaseDir(cfg), "missing", "ffmpeg")

	orch := NewOrchestrator(cfg, nil, nil, logging.NewNop())
	result := orch.Execute(context.Background(), Job{
		ID:         "job-4",
		Sources:    []string{"a.mp4"},
		Graph:      singleClipGraph(false),
		OutputBase: "render-4",
	})

	if result.Status != StatusFailed {
		t.Fatalf("expected failure, got %+v", result)
	}
	if result.Retryable {
		t.Error("a missing encoder needs operator action, not a retry")
	}
	if result.Attempts != 0 {
		t.Errorf("no attempt should run without an encoder, got %d", result.Attempts)
	}
}

type scriptedRunner struct {
	accept func(args []string) bool
}

func (r scriptedRunner) Run(_ context.Context, _ string, args []string) error {
	if r.accept(args) {
		out := args[len(args)-1]
		return os.WriteFile(out, []byte("encoded"), 0o644)
	}
	return services.Wrap(services.ErrEncodeFailed, "encode", "run encoder", "synthetic failure", nil)
}

func TestOrchestratorRecoversViaDropAudio(t *testing.T) {
	cfg, binDir := orchestratorConfig(t)
	cfg.Tools.FFmpegBinary = testsupport.FakeFFmpeg(t, binDir)
	cfg.Tools.FFprobeBinary = testsupport.FakeFFprobe(t, binDir, 1080, 1920, 14)

	runner := scriptedRunner{accept: func(args []string) bool {
		for _, a := range args {
			if a == "-an" {
				return true
			}
		}
		return false
	}}

	source := writeSource(t, testsupport.BaseDir(cfg), "a.mp4")
	orch := NewOrchestrator(cfg, nil, runner, logging.NewNop())

	result := orch.Execute(context.Background(), Job{
		ID:         "job-5",
		Sources:    []string{source, source},
		Graph:      multiClipGraph(true),
		OutputBase: "render-5",
	})

	if !result.Succeeded() {
		t.Fatalf("expected recovery via drop-audio, got %+v", result)
	}
	if result.Strategy != "drop-audio" {
		t.Errorf("expected drop-audio, got %q", result.Strategy)
	}
	// force-reencode is skipped for re-encoded audio, so the winning
	// attempt is the second one.
	if result.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", result.Attempts)
	}
	assertDirEmpty(t, cfg.Paths.StagingDir)
}
