package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"clipforge/internal/testsupport"
)

func writeTestConfig(t *testing.T, duration float64) (string, string, string) {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	cfg.JobLog.Enabled = true
	base := testsupport.BaseDir(cfg)

	binDir := filepath.Join(base, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg.Tools.FFmpegBinary = testsupport.FakeFFmpeg(t, binDir)
	cfg.Tools.FFprobeBinary = testsupport.FakeFFprobe(t, binDir, 1920, 1080, duration)

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	configPath := filepath.Join(base, "config.toml")
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatal(err)
	}

	clipDir := filepath.Join(base, "clips")
	if err := os.MkdirAll(clipDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a.mp4", "b.mp4"} {
		if err := os.WriteFile(filepath.Join(clipDir, name), []byte("media"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return configPath, clipDir, cfg.Paths.OutputDir
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFormatsCommand(t *testing.T) {
	output, err := runCommand(t, "formats")
	if err != nil {
		t.Fatalf("formats: %v", err)
	}
	for _, key := range []string{"vertical", "square", "portrait", "landscape"} {
		if !strings.Contains(output, key) {
			t.Errorf("formats output missing %q:\n%s", key, output)
		}
	}
	if !strings.Contains(output, "1080x1920") {
		t.Errorf("formats output missing vertical dimensions:\n%s", output)
	}
}

func TestVersionCommand(t *testing.T) {
	output, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(output, "clipforge") {
		t.Errorf("unexpected version output: %q", output)
	}
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	if _, err := runCommand(t, "config", "init", "--path", target); err != nil {
		t.Fatalf("config init: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("sample config missing: %v", err)
	}
	if !strings.Contains(string(data), "staging_dir") {
		t.Errorf("sample config lacks expected keys:\n%s", data)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error for existing config without --overwrite")
	}
}

func TestRenderCommandEndToEnd(t *testing.T) {
	configPath, clipDir, outputDir := writeTestConfig(t, 20)

	output, err := runCommand(t,
		"--config", configPath,
		"render",
		"--format", "vertical",
		"--output", "cli-test",
		filepath.Join(clipDir, "a.mp4"),
	)
	if err != nil {
		t.Fatalf("render: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Succeeded") {
		t.Errorf("expected success in output:\n%s", output)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "cli-test.mp4")); err != nil {
		t.Errorf("artifact missing: %v", err)
	}
}

func TestRenderCommandWithPlan(t *testing.T) {
	configPath, clipDir, outputDir := writeTestConfig(t, 20)

	plan := `output = "plan-test"
format = "square"

[[clips]]
source = "a.mp4"
trim_end = 8.0

[[clips]]
source = "b.mp4"
trim_end = 6.0
transition = "fade"
transition_duration = 1.0
`
	planPath := filepath.Join(clipDir, "plan.toml")
	if err := os.WriteFile(planPath, []byte(plan), 0o644); err != nil {
		t.Fatal(err)
	}

	output, err := runCommand(t, "--config", configPath, "render", "--plan", planPath)
	if err != nil {
		t.Fatalf("render with plan: %v\n%s", err, output)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "plan-test.mp4")); err != nil {
		t.Errorf("artifact missing: %v", err)
	}
}

func TestJobsCommandAfterRender(t *testing.T) {
	configPath, clipDir, _ := writeTestConfig(t, 20)

	if out, err := runCommand(t, "--config", configPath, "render", filepath.Join(clipDir, "a.mp4")); err != nil {
		t.Fatalf("render: %v\n%s", err, out)
	}

	output, err := runCommand(t, "--config", configPath, "jobs")
	if err != nil {
		t.Fatalf("jobs: %v", err)
	}
	if !strings.Contains(output, "Succeeded") || !strings.Contains(output, "vertical") {
		t.Errorf("jobs output missing recorded render:\n%s", output)
	}
}

func TestRenderCommandRejectsBadQuality(t *testing.T) {
	configPath, clipDir, _ := writeTestConfig(t, 20)

	_, err := runCommand(t,
		"--config", configPath,
		"render", "--quality", "250",
		filepath.Join(clipDir, "a.mp4"),
	)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !strings.Contains(err.Error(), "quality") {
		t.Errorf("unexpected error: %v", err)
	}
}
