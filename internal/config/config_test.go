package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reportlink.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  listen: \":9000\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Server.Listen)
	require.Equal(t, "/browse", cfg.Server.LinkPrefix)
	require.Equal(t, "168h", cfg.Cache.TTL)
	require.Equal(t, "/healthz", cfg.Monitoring.Health.Path)
	require.Equal(t, "/metrics", cfg.Monitoring.Metrics.Path)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("REPORTLINK_TEST_ROOT", t.TempDir())
	path := filepath.Join(t.TempDir(), "reportlink.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: ${REPORTLINK_TEST_ROOT}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, os.Getenv("REPORTLINK_TEST_ROOT"), cfg.Root)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate_RejectsBadDurations(t *testing.T) {
	cfg := Default()
	cfg.Cache.TTL = "one week"
	require.Error(t, cfg.Validate())
}

func TestValidate_RejectsNonDirectoryRoot(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	cfg := Default()
	cfg.Root = file
	require.Error(t, cfg.Validate())
}

func TestValidate_EventsRequireURL(t *testing.T) {
	cfg := Default()
	cfg.Events.Enabled = true
	cfg.Normalize()
	require.Error(t, cfg.Validate())

	cfg.Events.URL = "nats://localhost:4222"
	require.NoError(t, cfg.Validate())
	require.Equal(t, "reportlink.dead_refs", cfg.Events.Subject)
}

func TestWriteStarter_RefusesOverwriteWithoutForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reportlink.yaml")
	require.NoError(t, WriteStarter(path, false))
	require.Error(t, WriteStarter(path, false))
	require.NoError(t, WriteStarter(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":7078", cfg.Server.Listen)
}

func TestDuration_Fallback(t *testing.T) {
	require.Equal(t, time.Minute, Duration("bogus", time.Minute))
	require.Equal(t, 2*time.Hour, Duration("2h", time.Minute))
}
