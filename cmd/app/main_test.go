package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/christophertwo/aella/internal/config"
	"github.com/christophertwo/aella/internal/database"
)

func TestParseFlags(t *testing.T) {
	var stderr bytes.Buffer
	o, err := parseFlags([]string{"--db", "/tmp/x.db", "--seed", "25", "--log-level", "debug", "-v"}, &stderr)
	require.NoError(t, err)
	require.Equal(t, "/tmp/x.db", o.dbPath)
	require.Equal(t, 25, o.seed)
	require.Equal(t, "debug", o.logLevel)
	require.True(t, o.version)
}

func TestParseFlagsRejectsNegativeSeed(t *testing.T) {
	_, err := parseFlags([]string{"--seed", "-1"}, &bytes.Buffer{})
	require.Error(t, err)
}

func TestApplyFlagsDataDirMovesDerivedPaths(t *testing.T) {
	base, err := config.DefaultSettings().Normalize()
	require.NoError(t, err)

	s, err := applyFlags(base, cliOptions{dataDir: "/srv/aella"})
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/srv/aella", config.DBFileName), s.DBPath)
	require.Equal(t, filepath.Join("/srv/aella", config.LogFileName), s.LogFile)

	s, err = applyFlags(base, cliOptions{dataDir: "/srv/aella", dbPath: "/data/a.db", pageSize: 25})
	require.NoError(t, err)
	require.Equal(t, "/data/a.db", s.DBPath)
	require.Equal(t, 25, s.PageSize)
}

func TestApplyFlagsValidates(t *testing.T) {
	base, err := config.DefaultSettings().Normalize()
	require.NoError(t, err)
	_, err = applyFlags(base, cliOptions{logLevel: "chatty"})
	require.Error(t, err)
	_, err = applyFlags(base, cliOptions{pageSize: -3})
	require.Error(t, err)
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--version"}, &stdout, &stderr)
	require.Equal(t, 0, code)
	require.True(t, strings.HasPrefix(stdout.String(), config.AppName+" "))
}

func TestRunBadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--no-such-flag"}, &stdout, &stderr)
	require.Equal(t, 2, code)
}

func TestRunSeedAndExportHeadless(t *testing.T) {
	dir := t.TempDir()
	exportPath := filepath.Join(dir, "out", "snapshot.yaml")
	args := []string{
		"--config", filepath.Join(dir, "missing.toml"),
		"--data-dir", dir,
		"--seed", "12",
		"--export", exportPath,
	}
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	require.Contains(t, stdout.String(), "Seeded 12 projects")

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	var snap database.Snapshot
	require.NoError(t, yaml.Unmarshal(data, &snap))
	require.Len(t, snap.Projects, 12)

	_, err = os.Stat(filepath.Join(dir, config.LogFileName))
	require.NoError(t, err, "expected log file under the data dir")
}

func TestRunImportThenExport(t *testing.T) {
	src := t.TempDir()
	exportPath := filepath.Join(src, "first.yaml")
	code := run(context.Background(), []string{
		"--config", filepath.Join(src, "none.toml"),
		"--data-dir", src,
		"--seed", "3",
		"--export", exportPath,
	}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Equal(t, 0, code)

	dst := t.TempDir()
	secondPath := filepath.Join(dst, "second.yaml")
	var stderr bytes.Buffer
	code = run(context.Background(), []string{
		"--config", filepath.Join(dst, "none.toml"),
		"--data-dir", dst,
		"--import", exportPath,
		"--export", secondPath,
	}, &bytes.Buffer{}, &stderr)
	require.Equal(t, 0, code, stderr.String())

	data, err := os.ReadFile(secondPath)
	require.NoError(t, err)
	var snap database.Snapshot
	require.NoError(t, yaml.Unmarshal(data, &snap))
	require.Len(t, snap.Projects, 3)
}

func TestRunWriteConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "conf", "config.toml")
	var stdout bytes.Buffer
	code := run(context.Background(), []string{"--config", cfg, "--data-dir", dir, "--page-size", "20", "--write-config"}, &stdout, &bytes.Buffer{})
	require.Equal(t, 0, code)

	s, err := config.LoadSettings(cfg)
	require.NoError(t, err)
	require.Equal(t, 20, s.PageSize)
	require.Equal(t, dir, s.DataDir)
}
