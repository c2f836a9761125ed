package commands

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/josephlewis42/gosh/core/logger"
	"github.com/josephlewis42/gosh/core/proc"
	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

// StartMonitor starts the configured monitoring program in the background,
// stopping a previous one recorded in the PID file first.
func StartMonitor(env *Env) int {
	cfg := env.config().Monitor

	if pid, err := readPIDFile(env.fs(), cfg.PIDFile); err == nil && processAlive(pid) {
		fmt.Fprintf(env.Stdout, "Stopping existing monitoring process (PID: %d)\n", pid)
		if err := unix.Kill(pid, unix.SIGTERM); err != nil {
			env.Errorf("couldn't stop %d: %v", pid, err)
		}
		env.record(&logger.MonitorAction{Action: "replace", PID: pid})
		time.Sleep(cfg.StopWait())
	}

	argv, err := cfg.Argv()
	if err != nil {
		env.Errorf("bad monitor arguments: %v", err)
		return 1
	}

	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		env.Errorf("%v", err)
		return 1
	}
	defer devNull.Close()

	pid, err := proc.Spawn(argv, devNull, devNull, devNull)
	if err != nil {
		env.Errorf("couldn't start the monitoring process: %v", err)
		return 1
	}

	if err := afero.WriteFile(env.fs(), cfg.PIDFile, []byte(fmt.Sprintf("%d\n", pid)), 0644); err != nil {
		env.Errorf("couldn't write PID file: %v", err)
	}

	fmt.Fprintf(env.Stdout, "Monitoring process started with PID: %d\n", pid)
	env.record(&logger.MonitorAction{Action: "start", PID: pid})
	return 0
}

// StopMonitor kills the monitor recorded in the PID file and removes the
// file.
func StopMonitor(env *Env) int {
	cfg := env.config().Monitor

	pid, err := readPIDFile(env.fs(), cfg.PIDFile)
	if err != nil {
		env.Errorf("couldn't read PID file, is the monitor running? %v", err)
		return 1
	}

	if err := unix.Kill(pid, unix.SIGKILL); err != nil {
		env.Errorf("couldn't kill %d: %v", pid, err)
		return 1
	}
	env.record(&logger.MonitorAction{Action: "stop", PID: pid})

	if err := env.fs().Remove(cfg.PIDFile); err != nil {
		env.Errorf("couldn't delete PID file: %v", err)
		return 0
	}

	fmt.Fprintln(env.Stdout, "Monitor: PID file deleted successfully.")
	return 0
}

func readPIDFile(fs afero.Fs, path string) (int, error) {
	contents, err := afero.ReadFile(fs, path)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(contents)))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	if pid <= 0 {
		return 0, fmt.Errorf("%s: invalid pid %d", path, pid)
	}
	return pid, nil
}

func processAlive(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}

var _ Builtin = StartMonitor
var _ Builtin = StopMonitor
