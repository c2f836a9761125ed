package commands

import (
	"fmt"
	"io"
	"log"

	"github.com/fatih/color"
	"github.com/josephlewis42/gosh/core/config"
	"github.com/josephlewis42/gosh/core/logger"
	getopt "github.com/pborman/getopt/v2"
	"github.com/spf13/afero"
)

// Env holds everything a built-in runs with. The shell swaps in redirected
// streams before the call.
type Env struct {
	// Args holds the command name followed by its arguments.
	Args   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Config *config.Configuration
	// Fs is the filesystem built-ins read from, the host's if nil.
	Fs afero.Fs
	// Color enables colored headings.
	Color bool

	Events *logger.SessionLogger
}

// Builtin is the body of a built-in command. It returns the command's exit
// code.
type Builtin func(env *Env) int

func (e *Env) fs() afero.Fs {
	if e.Fs == nil {
		return afero.NewOsFs()
	}
	return e.Fs
}

func (e *Env) config() *config.Configuration {
	if e.Config == nil {
		e.Config = config.Default()
	}
	return e.Config
}

func (e *Env) record(event logger.LogType) {
	if e.Events == nil {
		return
	}
	if err := e.Events.Record(event); err != nil {
		log.Printf("couldn't record event: %v", err)
	}
}

// Errorf prints a diagnostic prefixed with the command name.
func (e *Env) Errorf(format string, a ...interface{}) {
	fmt.Fprintf(e.Stderr, "%s: ", e.Args[0])
	fmt.Fprintf(e.Stderr, format, a...)
	fmt.Fprintln(e.Stderr)
}

type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a one line description of the command.
	Short string
	// Help replaces the generated help text if set.
	Help func(w io.Writer)

	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	if s.Help != nil {
		s.Help(w)
		return
	}

	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run the command, if flag parsing was successful call the callback.
func (s *SimpleCommand) Run(env *Env, callback func() int) int {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	if err := opts.Getopt(env.Args, nil); err != nil {
		fmt.Fprintf(env.Stderr, "error: %s\n\n", err)

		s.PrintHelp(env.Stdout)
		return 1
	}

	if *s.ShowHelp {
		s.PrintHelp(env.Stdout)
		return 0
	}

	return callback()
}

var (
	ColorBoldCyan  = color.New(color.FgCyan, color.Bold)
	ColorBoldGreen = color.New(color.FgGreen, color.Bold)
)

// Sprintf formats with c when the environment allows color.
func (e *Env) Sprintf(c *color.Color, format string, a ...interface{}) string {
	if e.Color {
		return c.Sprintf(format, a...)
	}
	return fmt.Sprintf(format, a...)
}
