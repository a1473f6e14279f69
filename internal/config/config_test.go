package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".dsreport", "projects"), c.ProjectsDir)
	assert.Equal(t, "", c.OutputDir)
	assert.Equal(t, "md", c.DefaultFormat)
	assert.Equal(t, ",", c.Delimiter)
	assert.Equal(t, 5, c.PreviewRows)
	assert.Equal(t, 4, c.BatchJobs)
	assert.Equal(t, &LoggingConfig{Level: "info", Format: "text", Output: "stderr"}, c.Logging())
}

func TestLoad_FileAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	body := "default_format: html\npreview_rows: 10\nbatch_jobs: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("DSREPORT_BATCH_JOBS", "8")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "html", c.DefaultFormat)
	assert.Equal(t, 10, c.PreviewRows)
	assert.Equal(t, 8, c.BatchJobs, "env overrides the config file")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_format: pdf\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "default_format")
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c, err := Load("")
	require.NoError(t, err)
	require.NoError(t, c.Set("delimiter", "tab"))
	require.NoError(t, c.Set("log_level", "debug"))
	require.NoError(t, Save(c, ""))

	_, err = os.Stat(filepath.Join(home, ".dsreport", "config.yaml"))
	require.NoError(t, err)

	again, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "tab", again.Delimiter)
	assert.Equal(t, "debug", again.LogLevel)
}

func TestSet(t *testing.T) {
	c := &Global{DefaultFormat: "md", Delimiter: ",", BatchJobs: 1, LogFormat: "text"}

	assert.NoError(t, c.Set("preview_rows", "3"))
	assert.Equal(t, 3, c.PreviewRows)
	assert.Error(t, c.Set("preview_rows", "many"))
	assert.Error(t, c.Set("batch_jobs", "0"))
	assert.Error(t, c.Set("colour", "red"))
	assert.Error(t, c.Set("delimiter", "#"))
}

func TestParseDelimiter(t *testing.T) {
	tests := map[string]rune{",": ',', "": ',', ";": ';', "|": '|', "tab": '\t', "\t": '\t'}
	for in, want := range tests {
		got, err := ParseDelimiter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseDelimiter(":")
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "projects_dir")
	assert.Contains(t, keys, "log_output")
	assert.IsIncreasing(t, keys)
}
