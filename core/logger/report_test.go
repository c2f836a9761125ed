package logger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	var report Report
	session := &SessionLogger{
		Logger:    &Logger{Record: func(le *LogEntry) error { report.Update(le); return nil }},
		sessionID: "s1",
	}

	session.Record(&RunCommand{Command: []string{"ls", "-l"}})
	session.Record(&RunCommand{Command: []string{"echo", "hi"}, Builtin: true, Background: true})
	session.Record(&RunCommand{Command: []string{"ls"}})
	session.Record(&RunPipeline{Stages: []string{"a", "b", "c"}})
	session.Record(&JobStarted{JobID: 1, PID: 10})
	session.Record(&JobReaped{PID: 10, JobID: 1})
	session.Record(&JobReaped{PID: 11})
	session.Record(&ProcessExit{PID: 12, ExitCode: 1})
	session.Record(&ProcessExit{PID: 13, Signal: "interrupt"})
	session.Record(&ProcessExit{PID: 14, Stopped: true})
	session.Record(&CommandError{Command: []string{"nope"}, Error: "not found"})
	session.Record(&CommandError{Command: []string{"nope"}, Error: "not found"})
	session.Record(&MonitorAction{Action: "start", PID: 99})

	assert.Equal(t, 13, report.LogEntries)
	assert.Equal(t, 13, report.Sessions.Count("s1"))
	assert.Equal(t, 2, report.RunCommand.CommandNames.Count("ls"))
	assert.Equal(t, 1, report.RunCommand.Builtins)
	assert.Equal(t, 1, report.RunCommand.Background)
	assert.Equal(t, 1, report.Pipeline.Lengths.Count("3"))
	assert.Equal(t, JobReport{Started: 1, Reaped: 1, Untracked: 1}, report.Jobs)
	assert.Equal(t, 1, report.ProcessExit.ExitCodes.Count("1"))
	assert.Equal(t, 1, report.ProcessExit.Signals.Count("interrupt"))
	assert.Equal(t, 1, report.ProcessExit.Stopped)
	assert.Equal(t, 2, report.CommandError.Errors.Count("nope", "not found"))
	assert.Equal(t, 1, report.Monitor.Count("start"))

	_, err := json.Marshal(&report)
	require.NoError(t, err)
}

func TestReportInvalidEntry(t *testing.T) {
	var report Report
	report.Update(&LogEntry{})

	assert.Equal(t, 1, report.InvalidEntries.Count("<nil>"))
}

func TestPathCounterMarshal(t *testing.T) {
	ctr := NewPathCounter("command", "error")
	ctr.Increment("a", "x")
	ctr.Increment("b", "y")
	ctr.Increment("b", "y")

	out, err := json.Marshal(ctr)
	require.NoError(t, err)

	assert.JSONEq(t, `[
		{"count": 2, "event": {"command": "b", "error": "y"}},
		{"count": 1, "event": {"command": "a", "error": "x"}}
	]`, string(out))
}

func TestPathCounterWrongColumns(t *testing.T) {
	assert.Panics(t, func() {
		NewPathCounter("one").Increment("a", "b")
	})
}
