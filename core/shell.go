package core

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/gosh/core/config"
	"github.com/josephlewis42/gosh/core/jobs"
	"github.com/josephlewis42/gosh/core/logger"
	"github.com/josephlewis42/gosh/core/proc"
	"github.com/josephlewis42/gosh/core/shell"
	"github.com/josephlewis42/gosh/core/signals"
)

// Status is the coarse result of running a line.
type Status int

const (
	// Continue reading input.
	Continue Status = iota
	// Stop the shell.
	Stop
)

func (s Status) String() string {
	if s == Stop {
		return "stop"
	}
	return "continue"
}

// Shell ties the parser, built-ins, launcher and job table together.
type Shell struct {
	Config   *config.Configuration
	Registry *jobs.Registry
	Signals  *signals.Coordinator
	Launcher *proc.Launcher
	Events   *logger.SessionLogger

	// Color enables colored prompts and headings.
	Color bool

	stdin  *os.File
	stdout *os.File
	stderr *os.File
}

// NewShell creates a shell on the process's standard streams. configPath is
// handed to background built-ins so they load the same configuration.
func NewShell(cfg *config.Configuration, configPath string, events *logger.SessionLogger) *Shell {
	if events == nil {
		events = logger.NewNopLogger().Sessionless()
	}

	// Children resolve the path after any cd the shell has run.
	if configPath != "" {
		if abs, err := filepath.Abs(configPath); err == nil {
			configPath = abs
		}
	}

	registry := jobs.NewRegistry()
	coordinator := signals.New()

	launcher := proc.NewLauncher(registry, coordinator)
	launcher.ConfigPath = configPath
	launcher.Events = events

	s := &Shell{
		Config:   cfg,
		Registry: registry,
		Signals:  coordinator,
		Launcher: launcher,
		Events:   events,
		Color:    cfg.Prompt.Color,
	}
	s.SetStreams(os.Stdin, os.Stdout, os.Stderr)
	return s
}

// SetStreams replaces the standard streams used by the shell and the
// programs it starts.
func (s *Shell) SetStreams(stdin, stdout, stderr *os.File) {
	s.stdin, s.stdout, s.stderr = stdin, stdout, stderr

	s.Launcher.Stdin = stdin
	s.Launcher.Stdout = stdout
	s.Launcher.Stderr = stderr
	s.Launcher.Out = stdout
	s.Launcher.ErrOut = stderr
}

func (s *Shell) record(event logger.LogType) {
	if err := s.Events.Record(event); err != nil {
		log.Printf("couldn't record event: %v", err)
	}
}

// reportError prints a command scoped error and keeps going.
func (s *Shell) reportError(argv []string, err error) {
	fmt.Fprintf(s.stderr, "gosh: %v\n", err)
	s.record(&logger.CommandError{Command: argv, Error: err.Error()})
}

// ExecuteLine runs a line that may be a pipeline. Only fatal errors are
// returned, everything else is reported to the user.
func (s *Shell) ExecuteLine(line string) (Status, error) {
	stages := shell.SplitPipeline(line)

	switch len(stages) {
	case 0:
		return Continue, nil
	case 1:
		return s.ExecuteSingle(stages[0])
	}

	s.record(&logger.RunPipeline{Stages: stages})
	if err := s.Launcher.LaunchPipeline(stages); err != nil {
		if proc.IsFatal(err) {
			return Stop, err
		}
		s.reportError(stages, err)
	}
	return Continue, nil
}

// ExecuteSingle runs a line without pipes.
func (s *Shell) ExecuteSingle(line string) (Status, error) {
	cmd := shell.Parse(line)
	if cmd.Empty() {
		return Continue, nil
	}

	s.record(&logger.RunCommand{
		Command:    cmd.Argv,
		Builtin:    cmd.Builtin.IsBuiltin(),
		Background: cmd.Background,
	})

	var err error
	switch {
	case cmd.Builtin.IsBuiltin() && cmd.Background:
		err = s.Launcher.LaunchBuiltin(cmd, line)
	case cmd.Builtin.IsBuiltin():
		return s.runBuiltin(cmd), nil
	default:
		err = s.Launcher.LaunchExternal(cmd, line)
	}

	if err != nil {
		if proc.IsFatal(err) {
			return Stop, err
		}
		s.reportError(cmd.Argv, err)
	}
	return Continue, nil
}

// runBuiltin runs a built-in in the shell process with its redirections
// applied for the duration of the call.
func (s *Shell) runBuiltin(cmd *shell.ParsedCommand) Status {
	redirects, err := proc.OpenRedirects(cmd.InputPath, cmd.OutputPath)
	if err != nil {
		s.reportError(cmd.Argv, err)
		return Continue
	}
	defer redirects.Close()

	env := s.builtinEnv(cmd.Argv, redirects.Stdin(s.stdin), redirects.Stdout(s.stdout), s.stderr)
	if redirects.Out != nil {
		env.Color = false
	}
	RunBuiltin(cmd.Builtin, env)

	if cmd.Builtin == shell.BuiltinQuit {
		return Stop
	}
	return Continue
}

// reap collects finished children if any were reported since the last call.
func (s *Shell) reap() {
	if !s.Signals.TakePendingReap() {
		return
	}

	for _, reaped := range s.Signals.Drain(s.Registry) {
		s.record(&logger.JobReaped{PID: reaped.PID, JobID: reaped.JobID})
	}
}

// Run reads and executes lines until the input ends, quit is called or a
// fatal error occurs.
//
// Interactive shells announce end of input, batch shells skip blank lines
// and lines starting with #.
func (s *Shell) Run(reader LineReader, interactive bool) error {
	s.Signals.Install()
	defer s.Signals.Stop()

	for {
		s.reap()

		line, err := reader.ReadLine(s.Prompt())
		switch {
		case errors.Is(err, io.EOF):
			if interactive {
				fmt.Fprintln(s.stdout, "\nGetting out of shell.")
			}
			return nil

		case errors.Is(err, readline.ErrInterrupt):
			continue // Ctrl-C at the prompt drops the line.

		case err != nil:
			return err
		}

		trimmed := strings.TrimSpace(line)
		if !interactive && (trimmed == "" || strings.HasPrefix(trimmed, "#")) {
			continue
		}

		status, err := s.ExecuteLine(line)
		if err != nil {
			return err
		}
		if status == Stop {
			return nil
		}
	}
}
