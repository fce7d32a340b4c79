package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomis52/fitstats/config"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Args
	}{
		{name: "no flags", argv: nil, want: Args{}},
		{name: "long config", argv: []string{"--config", "a.yaml"}, want: Args{ConfigPath: "a.yaml"}},
		{name: "short config", argv: []string{"-c", "b.yaml"}, want: Args{ConfigPath: "b.yaml"}},
		{name: "long wins over short", argv: []string{"-c", "b.yaml", "--config", "a.yaml"}, want: Args{ConfigPath: "a.yaml"}},
		{name: "version", argv: []string{"-v"}, want: Args{ShowVersion: true}},
		{name: "validate and fail fast", argv: []string{"--validate", "--fail-fast"}, want: Args{Validate: true, FailFast: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.argv, &bytes.Buffer{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArgs_UnknownFlag(t *testing.T) {
	var out bytes.Buffer
	_, err := parseArgs([]string{"--nope"}, &out)
	assert.Error(t, err)
	assert.Contains(t, out.String(), "Usage: fitstats")
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(Args{ShowVersion: true}, &out))
	assert.Contains(t, out.String(), "fitstats dev")
}

// writeConfig writes a config whose summaries and logs go to files in a temp dir.
func writeConfig(t *testing.T, packages string) (configPath, reportPath string) {
	t.Helper()
	dir := t.TempDir()
	reportPath = filepath.Join(dir, "summaries.txt")
	configPath = filepath.Join(dir, "fitstats.yaml")

	content := fmt.Sprintf(`logging:
  output: %s
output:
  destination: %s
%s`, filepath.Join(dir, "fitstats.log"), reportPath, packages)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath, reportPath
}

func TestRun_Validate(t *testing.T) {
	configPath, reportPath := writeConfig(t, "")

	var out bytes.Buffer
	require.NoError(t, run(Args{ConfigPath: configPath, Validate: true}, &out))
	assert.Contains(t, out.String(), "Configuration validation successful")
	assert.NoFileExists(t, reportPath)
}

func TestRun_ValidateDefaultConfig(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(Args{Validate: true}, &out))
	assert.Equal(t, "Configuration validation successful: default configuration\n", out.String())
}

func TestRunScheduled_RunsOnceAndStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Schedule = "0 2 * * *"

	ctx, cancel := context.WithCancel(context.Background())
	runs := 0
	runBatch := func(context.Context) error {
		runs++
		cancel()
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- runScheduled(ctx, cfg, runBatch, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled mode did not return after cancellation")
	}
	assert.Equal(t, 1, runs)
}

func TestRunScheduled_InvalidSchedule(t *testing.T) {
	cfg := config.Default()
	cfg.Schedule = "never"

	err := runScheduled(context.Background(), cfg, func(context.Context) error { return nil }, nil, slog.Default())
	assert.Error(t, err)
}

func TestRun_DefaultPackages(t *testing.T) {
	configPath, reportPath := writeConfig(t, "")

	require.NoError(t, run(Args{ConfigPath: configPath}, &bytes.Buffer{}))

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Equal(t,
		"Workout type: Swimming; Duration: 1.000 h; Distance: 0.994 km; Avg speed: 1.000 km/h; Calories burned: 336.000.\n"+
			"Workout type: Running; Duration: 1.000 h; Distance: 9.750 km; Avg speed: 9.750 km/h; Calories burned: 699.750.\n"+
			"Workout type: SportsWalking; Duration: 1.000 h; Distance: 5.850 km; Avg speed: 5.850 km/h; Calories burned: 157.500.\n",
		string(data))
}

func TestRun_BadPackage(t *testing.T) {
	configPath, reportPath := writeConfig(t, `packages:
  - code: XYZ
    values: [1, 2, 3]
  - code: RUN
    values: [15000, 1, 75]
`)

	err := run(Args{ConfigPath: configPath}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown activity code")

	data, readErr := os.ReadFile(reportPath)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "Workout type: Running")
}

func TestRun_FailFastFlag(t *testing.T) {
	configPath, reportPath := writeConfig(t, `packages:
  - code: XYZ
    values: [1, 2, 3]
  - code: RUN
    values: [15000, 1, 75]
`)

	err := run(Args{ConfigPath: configPath, FailFast: true}, &bytes.Buffer{})
	require.Error(t, err)

	data, readErr := os.ReadFile(reportPath)
	require.NoError(t, readErr)
	assert.Empty(t, string(data))
}

func TestRun_MissingConfig(t *testing.T) {
	err := run(Args{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
