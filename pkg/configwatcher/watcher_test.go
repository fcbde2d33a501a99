package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"study_scholar_backend/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, path, model string) {
	t.Helper()
	content := "storage:\n  local_path: " + filepath.Join(filepath.Dir(path), "uploads") + "\nai:\n  model: " + model + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestWatchConfig_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, "first-model")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, path, 50*time.Millisecond, func(cfg *config.Config) {
			reloaded <- cfg
		})
	}()

	// 等待 watcher 注册完成
	time.Sleep(100 * time.Millisecond)
	writeConfig(t, path, "second-model")

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "second-model", cfg.AI.Model)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
