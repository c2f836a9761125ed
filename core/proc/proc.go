// Package proc starts external programs for the shell: single commands in
// the foreground or background, helper processes and multi-stage pipelines.
package proc

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// FatalError is returned when the shell can no longer create processes or
// pipes. Callers should stop reading input.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err ends the shell.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}

// Resolve finds the program to run for name. Names containing a slash are
// used as is, everything else is searched for in PATH.
func Resolve(name string) (string, error) {
	if name == "" {
		return "", errors.New("empty command")
	}

	if strings.Contains(name, "/") {
		info, err := os.Stat(name)
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, unwrapPathError(err))
		}
		if info.IsDir() {
			return "", fmt.Errorf("%s: %w", name, unix.EISDIR)
		}
		return name, nil
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, exec.ErrNotFound)
	}
	return path, nil
}

// start forks and execs path with the given standard streams. Exec failures
// are reported synchronously by ForkExec.
func start(path string, argv, env []string, stdin, stdout, stderr *os.File) (int, error) {
	pid, err := syscall.ForkExec(path, argv, &syscall.ProcAttr{
		Env:   env,
		Files: []uintptr{stdin.Fd(), stdout.Fd(), stderr.Fd()},
	})
	switch {
	case err == nil:
		return pid, nil
	case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.ENOMEM):
		return 0, &FatalError{Op: "fork", Err: err}
	default:
		return 0, fmt.Errorf("%s: %w", argv[0], err)
	}
}

// Spawn starts argv without waiting for it. The child is collected by the
// shell's regular drain.
func Spawn(argv []string, stdin, stdout, stderr *os.File) (int, error) {
	if len(argv) == 0 {
		return 0, errors.New("empty command")
	}

	path, err := Resolve(argv[0])
	if err != nil {
		return 0, err
	}

	return start(path, argv, os.Environ(), stdin, stdout, stderr)
}

// wait blocks until pid changes state, retrying when interrupted.
func wait(pid int, options int) (unix.WaitStatus, error) {
	var status unix.WaitStatus
	for {
		_, err := unix.Wait4(pid, &status, options, nil)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return status, err
	}
}

// pipe creates a close-on-exec pipe.
func pipe() (r *os.File, w *os.File, err error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_CLOEXEC); err != nil {
		return nil, nil, err
	}
	return os.NewFile(uintptr(fds[0]), "|0"), os.NewFile(uintptr(fds[1]), "|1"), nil
}

func unwrapPathError(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

// Describe summarizes a wait status the way the event log stores it.
func Describe(status unix.WaitStatus) (exitCode int, signal string, stopped bool) {
	switch {
	case status.Exited():
		return status.ExitStatus(), "", false
	case status.Signaled():
		return -1, status.Signal().String(), false
	case status.Stopped():
		return -1, status.StopSignal().String(), true
	}
	return -1, "", false
}
