package logger

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       StrCounter `json:"sessions"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	RunCommand   RunCommandReport   `json:"run_command_report"`
	Pipeline     PipelineReport     `json:"pipeline_report"`
	Jobs         JobReport          `json:"job_report"`
	ProcessExit  ProcessExitReport  `json:"process_exit_report"`
	CommandError CommandErrorReport `json:"command_error_report"`
	Monitor      StrCounter         `json:"monitor_actions"`
}

// Update adds a single entry to the report.
func (r *Report) Update(le *LogEntry) {
	r.LogEntries++
	if le.SessionID != "" {
		r.Sessions.Increment(le.SessionID)
	}

	switch event := le.GetLogType().(type) {
	case *RunCommand:
		r.RunCommand.update(event)
	case *RunPipeline:
		r.Pipeline.update(event)
	case *JobStarted:
		r.Jobs.Started++
	case *JobReaped:
		r.Jobs.updateReaped(event)
	case *ProcessExit:
		r.ProcessExit.update(event)
	case *CommandError:
		r.CommandError.update(event)
	case *MonitorAction:
		r.Monitor.Increment(event.Action)
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%T", event))
	}
}

type RunCommandReport struct {
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	Builtins     int        `json:"builtins"`
	Background   int        `json:"background"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	if len(rc.Command) > 0 {
		r.CommandNames.Increment(rc.Command[0])
	}
	if rc.Builtin {
		r.Builtins++
	}
	if rc.Background {
		r.Background++
	}
}

type PipelineReport struct {
	Count int `json:"count"`
	// Number of pipelines by stage count.
	Lengths StrCounter `json:"lengths"`
}

func (r *PipelineReport) update(p *RunPipeline) {
	r.Count++
	r.Lengths.Increment(fmt.Sprintf("%d", len(p.Stages)))
}

type JobReport struct {
	Started int `json:"started"`
	Reaped  int `json:"reaped"`
	// Children collected that were not registered jobs.
	Untracked int `json:"untracked"`
}

func (r *JobReport) updateReaped(jr *JobReaped) {
	if jr.JobID == 0 {
		r.Untracked++
		return
	}
	r.Reaped++
}

type ProcessExitReport struct {
	ExitCodes StrCounter `json:"exit_codes"`
	Signals   StrCounter `json:"signals"`
	Stopped   int        `json:"stopped"`
}

func (r *ProcessExitReport) update(pe *ProcessExit) {
	switch {
	case pe.Stopped:
		r.Stopped++
	case pe.Signal != "":
		r.Signals.Increment(pe.Signal)
	default:
		r.ExitCodes.Increment(fmt.Sprintf("%d", pe.ExitCode))
	}
}

type CommandErrorReport struct {
	Errors *PathCounter `json:"errors"`
}

func (r *CommandErrorReport) update(ce *CommandError) {
	if r.Errors == nil {
		r.Errors = NewPathCounter("command", "error")
	}
	name := ""
	if len(ce.Command) > 0 {
		name = ce.Command[0]
	}
	r.Errors.Increment(name, ce.Error)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns the number of times key was seen.
func (s *StrCounter) Count(key string) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts tuples of strings.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Count returns the number of times the tuple was seen.
func (ctr *PathCounter) Count(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	var out []Count
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
