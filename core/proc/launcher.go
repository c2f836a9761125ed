package proc

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/josephlewis42/gosh/core/config"
	"github.com/josephlewis42/gosh/core/jobs"
	"github.com/josephlewis42/gosh/core/logger"
	"github.com/josephlewis42/gosh/core/shell"
	"golang.org/x/sys/unix"
)

const (
	// EnvBuiltinChild marks a re-executed shell that runs one built-in and
	// exits.
	EnvBuiltinChild = "GOSH_BUILTIN_CHILD"
)

// IsBuiltinChild reports whether this process was started by LaunchBuiltin.
func IsBuiltinChild() bool {
	return os.Getenv(EnvBuiltinChild) == "1"
}

// Foreground receives the pid the shell is blocked on so terminal signals
// can be forwarded to it.
type Foreground interface {
	SetForeground(pid int)
	ClearForeground()
}

// Launcher starts external commands, background built-ins and pipelines.
type Launcher struct {
	Registry   *jobs.Registry
	Foreground Foreground

	// Standard streams handed to children.
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File

	// Out receives job notices, ErrOut receives pipeline stage errors.
	Out    io.Writer
	ErrOut io.Writer

	// Self is the shell binary re-executed for background built-ins.
	Self string
	// ConfigPath is passed to built-in children.
	ConfigPath string

	Events *logger.SessionLogger
}

// NewLauncher creates a Launcher on the process's standard streams.
func NewLauncher(registry *jobs.Registry, fg Foreground) *Launcher {
	self, err := os.Executable()
	if err != nil {
		self = os.Args[0]
	}

	return &Launcher{
		Registry:   registry,
		Foreground: fg,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Out:        os.Stdout,
		ErrOut:     os.Stderr,
		Self:       self,
		Events:     logger.NewNopLogger().Sessionless(),
	}
}

func (l *Launcher) record(event logger.LogType) {
	if l.Events == nil {
		return
	}
	if err := l.Events.Record(event); err != nil {
		log.Printf("couldn't record event: %v", err)
	}
}

// LaunchExternal runs cmd as an external program. Background commands are
// registered as jobs, foreground commands are waited on.
func (l *Launcher) LaunchExternal(cmd *shell.ParsedCommand, displayLine string) error {
	path, err := Resolve(cmd.Name())
	if err != nil {
		return err
	}

	redirects, err := OpenRedirects(cmd.InputPath, cmd.OutputPath)
	if err != nil {
		return err
	}
	defer redirects.Close()

	pid, err := start(path, cmd.Argv, os.Environ(), redirects.Stdin(l.Stdin), redirects.Stdout(l.Stdout), l.Stderr)
	if err != nil {
		return err
	}

	if cmd.Background {
		return l.background(pid, displayLine)
	}
	return l.waitForeground(pid, displayLine)
}

// LaunchBuiltin runs a background built-in in a child shell and registers it
// as a job. The child gets the redirected streams as its own.
func (l *Launcher) LaunchBuiltin(cmd *shell.ParsedCommand, displayLine string) error {
	redirects, err := OpenRedirects(cmd.InputPath, cmd.OutputPath)
	if err != nil {
		return err
	}
	defer redirects.Close()

	env := append(os.Environ(),
		EnvBuiltinChild+"=1",
		config.EnvConfigPath+"="+l.ConfigPath,
	)
	argv := append([]string{l.Self}, cmd.Argv...)

	pid, err := start(l.Self, argv, env, redirects.Stdin(l.Stdin), redirects.Stdout(l.Stdout), l.Stderr)
	if err != nil {
		return err
	}

	return l.background(pid, displayLine)
}

func (l *Launcher) background(pid int, displayLine string) error {
	job, err := l.Registry.Insert(pid, displayLine)
	if err != nil {
		log.Printf("couldn't register job for pid %d, waiting instead: %v", pid, err)
		return l.waitForeground(pid, displayLine)
	}

	fmt.Fprintln(l.Out, job.String())
	l.record(&logger.JobStarted{JobID: job.ID, PID: pid, Command: displayLine})
	return nil
}

func (l *Launcher) waitForeground(pid int, displayLine string) error {
	if l.Foreground != nil {
		l.Foreground.SetForeground(pid)
		defer l.Foreground.ClearForeground()
	}

	status, err := wait(pid, unix.WUNTRACED)
	if err != nil {
		return fmt.Errorf("wait %d: %w", pid, err)
	}

	if status.Stopped() {
		fmt.Fprintf(l.Out, "Process %d stopped\n", pid)
	}
	l.recordExit(pid, displayLine, status)
	return nil
}

func (l *Launcher) recordExit(pid int, displayLine string, status unix.WaitStatus) {
	code, sig, stopped := Describe(status)
	l.record(&logger.ProcessExit{
		PID:      pid,
		Command:  displayLine,
		ExitCode: code,
		Signal:   sig,
		Stopped:  stopped,
	})
}
