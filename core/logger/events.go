package logger

// LogEntry is a single line in the event log. Exactly one event field is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	RunCommand    *RunCommand    `json:"run_command,omitempty"`
	RunPipeline   *RunPipeline   `json:"run_pipeline,omitempty"`
	JobStarted    *JobStarted    `json:"job_started,omitempty"`
	JobReaped     *JobReaped     `json:"job_reaped,omitempty"`
	ProcessExit   *ProcessExit   `json:"process_exit,omitempty"`
	CommandError  *CommandError  `json:"command_error,omitempty"`
	MonitorAction *MonitorAction `json:"monitor,omitempty"`
}

// LogType is implemented by every event that can be recorded.
type LogType interface {
	setOn(le *LogEntry)
}

// GetLogType returns the event stored in the entry or nil.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.RunCommand != nil:
		return le.RunCommand
	case le.RunPipeline != nil:
		return le.RunPipeline
	case le.JobStarted != nil:
		return le.JobStarted
	case le.JobReaped != nil:
		return le.JobReaped
	case le.ProcessExit != nil:
		return le.ProcessExit
	case le.CommandError != nil:
		return le.CommandError
	case le.MonitorAction != nil:
		return le.MonitorAction
	default:
		return nil
	}
}

// RunCommand is logged when a single command is dispatched.
type RunCommand struct {
	Command    []string `json:"command"`
	Builtin    bool     `json:"builtin,omitempty"`
	Background bool     `json:"background,omitempty"`
}

func (e *RunCommand) setOn(le *LogEntry) { le.RunCommand = e }

// RunPipeline is logged when a multi-stage pipeline is launched.
type RunPipeline struct {
	Stages []string `json:"stages"`
}

func (e *RunPipeline) setOn(le *LogEntry) { le.RunPipeline = e }

// JobStarted is logged when a background job is registered.
type JobStarted struct {
	JobID   int    `json:"job_id"`
	PID     int    `json:"pid"`
	Command string `json:"command"`
}

func (e *JobStarted) setOn(le *LogEntry) { le.JobStarted = e }

// JobReaped is logged for every child collected after SIGCHLD.
type JobReaped struct {
	PID int `json:"pid"`
	// JobID is zero if the child wasn't a registered job.
	JobID int `json:"job_id,omitempty"`
}

func (e *JobReaped) setOn(le *LogEntry) { le.JobReaped = e }

// ProcessExit is logged when a waited-for child changes state.
type ProcessExit struct {
	PID      int    `json:"pid"`
	Command  string `json:"command"`
	ExitCode int    `json:"exit_code"`
	Signal   string `json:"signal,omitempty"`
	Stopped  bool   `json:"stopped,omitempty"`
}

func (e *ProcessExit) setOn(le *LogEntry) { le.ProcessExit = e }

// CommandError is logged when a command fails before or instead of running.
type CommandError struct {
	Command []string `json:"command"`
	Error   string   `json:"error"`
}

func (e *CommandError) setOn(le *LogEntry) { le.CommandError = e }

// MonitorAction is logged when the metrics monitor is started or stopped.
type MonitorAction struct {
	Action string `json:"action"`
	PID    int    `json:"pid"`
}

func (e *MonitorAction) setOn(le *LogEntry) { le.MonitorAction = e }
