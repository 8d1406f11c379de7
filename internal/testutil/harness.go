// Package testutil provides the harness shared by the integration tests.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/circuitgo/internal/app"
	"github.com/vk/circuitgo/internal/hcl_adapter"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Report    *app.Report
	Err       error
	App       *app.App
	Dir       string
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, cfg)
}

// RunIntegrationTestWithContext materialises files in a temporary directory,
// resolves the relative paths of cfg against it and runs the app. The report
// is captured when the run gets that far; Output holds the rendered form.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	if cfg.CircuitPath != "" && !filepath.IsAbs(cfg.CircuitPath) {
		cfg.CircuitPath = filepath.Join(tmpDir, cfg.CircuitPath)
	}
	if cfg.RunPath != "" && !filepath.IsAbs(cfg.RunPath) {
		cfg.RunPath = filepath.Join(tmpDir, cfg.RunPath)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	out, logs := &SafeBuffer{}, &SafeBuffer{}
	result := &HarnessResult{Dir: tmpDir}
	defer func() {
		result.Output = out.String()
		result.LogOutput = logs.String()
		if os.Getenv("CIRCUITGO_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
		}
	}()

	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		result.Err = err
		return result
	}

	testApp, err := app.NewApp(out, logs, appConfig, hcl_adapter.NewLoader())
	if err != nil {
		result.Err = err
		return result
	}
	result.App = testApp

	report, err := testApp.Evaluate(ctx)
	if err != nil {
		result.Err = err
		return result
	}
	result.Report = report
	result.Err = report.Render(out, appConfig.Format)
	return result
}
