package core

import (
	"fmt"
	"io"
	"os"

	"github.com/josephlewis42/gosh/commands"
	"github.com/josephlewis42/gosh/core/config"
	"github.com/josephlewis42/gosh/core/shell"
	"github.com/spf13/afero"
)

// RunBuiltin runs the body of a built-in and returns its exit code.
func RunBuiltin(kind shell.BuiltinKind, env *commands.Env) int {
	switch kind {
	case shell.BuiltinCd:
		return commands.Cd(env)
	case shell.BuiltinClear:
		return commands.Clear(env)
	case shell.BuiltinEcho:
		return commands.Echo(env)
	case shell.BuiltinQuit:
		return commands.Quit(env)
	case shell.BuiltinHelp:
		return commands.Help(env)
	case shell.BuiltinStartMonitor:
		return commands.StartMonitor(env)
	case shell.BuiltinStopMonitor:
		return commands.StopMonitor(env)
	case shell.BuiltinStatusMonitor:
		return commands.StatusMonitor(env)
	case shell.BuiltinSearchConfig:
		return commands.SearchConfig(env)
	case shell.NotBuiltin:
	}

	fmt.Fprintf(env.Stderr, "gosh: %s: not a built-in\n", env.Args[0])
	return 127
}

func (s *Shell) builtinEnv(args []string, stdin io.Reader, stdout, stderr io.Writer) *commands.Env {
	return &commands.Env{
		Args:   args,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		Config: s.Config,
		Fs:     afero.NewOsFs(),
		Color:  s.Color,
		Events: s.Events,
	}
}

// RunBuiltinChild runs a built-in inside a child started for a background
// built-in. The configuration is loaded from the environment.
func RunBuiltinChild(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "gosh: missing built-in name")
		return 2
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gosh: %v\n", err)
		return 1
	}

	kind, _ := shell.LookupBuiltin(args[0])
	return RunBuiltin(kind, &commands.Env{
		Args:   args,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: cfg,
		Fs:     afero.NewOsFs(),
	})
}
