package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/josephlewis42/gosh/core/config"
	"github.com/josephlewis42/gosh/core/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		cfgPath = ""
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestBuiltinsCommand(t *testing.T) {
	out, err := runRoot(t, "builtins")
	require.NoError(t, err)

	assert.Equal(t, "cd\nclear\necho\nquit\nhelp\nstart_monitor\nstop_monitor\nstatus_monitor\nsearchconfig\n", out)
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	_, err := runRoot(t, "init", dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, config.ConfigurationName))
	assert.NoError(t, err)
}

func TestTooManyArgs(t *testing.T) {
	_, err := runRoot(t, "a", "b")
	assert.Error(t, err)
}

func TestBatchFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	script := filepath.Join(dir, "script")
	require.NoError(t, os.WriteFile(script, []byte("# setup\necho batch > "+out+"\n"), 0644))

	_, err := runRoot(t, script)
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "batch\n", string(got))
}

func TestEventsReport(t *testing.T) {
	dir := t.TempDir()
	contents := []byte("event_log: events.log\nmonitor:\n  program: ./monitoring_project\n  pid_file: /tmp/monitor_pid\n  pipe_path: /tmp/monitor_pipe\nsearch_config:\n  default_extension: .config\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigurationName), contents, 0644))

	fd, err := os.Create(filepath.Join(dir, "events.log"))
	require.NoError(t, err)
	session := logger.NewJsonLinesLogRecorder(fd).NewSession()
	require.NoError(t, session.Record(&logger.RunCommand{Command: []string{"ls"}}))
	require.NoError(t, session.Record(&logger.JobStarted{JobID: 1, PID: 10}))
	require.NoError(t, fd.Close())

	out, err := runRoot(t, "--config", dir, "events", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "log_entries: 2")
}

func TestEventsReportWithoutLog(t *testing.T) {
	_, err := runRoot(t, "events", "report")
	assert.EqualError(t, err, "no event_log set in the configuration")
}
