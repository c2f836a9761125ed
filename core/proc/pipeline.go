package proc

import (
	"errors"
	"fmt"
	"os"

	"github.com/josephlewis42/gosh/core/shell"
)

// LaunchPipeline runs two or more stages connected by pipes and waits for
// all of them. Stages are always external programs, a trailing & on a stage
// is ignored.
//
// A stage that can't be started is reported on ErrOut and skipped; its
// neighbours see end of file or a broken pipe. Failing to create a pipe or
// fork is fatal.
func (l *Launcher) LaunchPipeline(stages []string) error {
	pids := make([]int, len(stages))

	var prevRead *os.File
	for i, stage := range stages {
		var nextRead, write *os.File
		if i < len(stages)-1 {
			r, w, err := pipe()
			if err != nil {
				closeFile(prevRead)
				l.waitPipeline(stages, pids)
				return &FatalError{Op: "pipe", Err: err}
			}
			nextRead, write = r, w
		}

		stdin := l.Stdin
		if prevRead != nil {
			stdin = prevRead
		}
		stdout := l.Stdout
		if write != nil {
			stdout = write
		}

		pid, err := l.startStage(shell.Parse(stage), stdin, stdout)

		closeFile(prevRead)
		closeFile(write)
		prevRead = nextRead

		switch {
		case IsFatal(err):
			closeFile(prevRead)
			l.waitPipeline(stages, pids)
			return err
		case err != nil:
			fmt.Fprintf(l.ErrOut, "gosh: %v\n", err)
		default:
			pids[i] = pid
		}
	}

	l.waitPipeline(stages, pids)
	return nil
}

func (l *Launcher) startStage(cmd *shell.ParsedCommand, stdin, stdout *os.File) (int, error) {
	if cmd.Empty() {
		return 0, errors.New("empty command in pipeline")
	}

	path, err := Resolve(cmd.Name())
	if err != nil {
		return 0, err
	}

	redirects, err := OpenRedirects(cmd.InputPath, cmd.OutputPath)
	if err != nil {
		return 0, err
	}
	defer redirects.Close()

	return start(path, cmd.Argv, os.Environ(), redirects.Stdin(stdin), redirects.Stdout(stdout), l.Stderr)
}

// waitPipeline collects started stages in launch order.
func (l *Launcher) waitPipeline(stages []string, pids []int) {
	for i, pid := range pids {
		if pid == 0 {
			continue
		}

		status, err := wait(pid, 0)
		if err != nil {
			fmt.Fprintf(l.ErrOut, "gosh: wait %d: %v\n", pid, err)
			continue
		}
		l.recordExit(pid, stages[i], status)
	}
}

func closeFile(f *os.File) {
	if f != nil {
		f.Close()
	}
}
