// Package testutil holds the shared harness for end-to-end tests of the
// load and build pipeline.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/lootgraph/internal/app"
	"github.com/stretchr/testify/require"
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
	LogOutput string
	Err       error
	App       *app.App
	Dir       string
}

// RunIntegrationTest writes files into a temporary data directory and runs
// the app over it with a background context.
func RunIntegrationTest(t *testing.T, files map[string]string, mutate ...func(*app.Config)) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, mutate...)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller context.
// mutate hooks may adjust the config before the app is created.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, mutate ...func(*app.Config)) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")
	require.NoError(t, os.Mkdir(dataDir, 0o755))

	// Relative names such as "nested/a.hcl" create subdirectories.
	for name, content := range files {
		filePath := filepath.Join(dataDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	cfg := &app.Config{
		DataPaths:        []string{dataDir},
		LogLevel:         "debug",
		LogFormat:        "text",
		PublishNamespace: "/",
	}
	for _, m := range mutate {
		m(cfg)
	}

	logBuffer := &SafeBuffer{}
	testApp := app.NewApp(logBuffer, cfg)
	runErr := testApp.Run(ctx)

	t.Cleanup(func() {
		if os.Getenv("LOOTGRAPH_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		Dir:       tmpDir,
	}
}
