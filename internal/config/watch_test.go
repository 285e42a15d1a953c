package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatch_DeliversReload(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`email = "one@contoso.com"`), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reloads := make(chan Config, 1)
	go func() {
		_ = Watch(ctx, path, func(cfg Config) {
			select {
			case reloads <- cfg:
			default:
			}
		})
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`email = "two@contoso.com"`), 0o600))

	select {
	case cfg := <-reloads:
		require.Equal(t, "two@contoso.com", cfg.Email)
	case <-ctx.Done():
		t.Fatal("no reload delivered")
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`email = "one@contoso.com"`), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	reloads := make(chan Config, 1)
	go func() {
		_ = Watch(ctx, path, func(cfg Config) { reloads <- cfg })
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600))

	select {
	case <-reloads:
		t.Fatal("unrelated file change must not trigger a reload")
	case <-ctx.Done():
	}
}
