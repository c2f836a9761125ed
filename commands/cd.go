package commands

import (
	"errors"
	"os"
)

// Cd changes the shell's working directory, no argument means "..".
// OLDPWD and PWD are updated so children see the change.
func Cd(env *Env) int {
	target := ".."
	if len(env.Args) > 1 {
		target = env.Args[1]
	}

	old, err := os.Getwd()
	if err != nil {
		env.Errorf("getcwd: %v", err)
		return 1
	}

	if err := os.Chdir(target); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			err = pe.Err
		}
		env.Errorf("%s: %v", target, err)
		return 1
	}

	os.Setenv("OLDPWD", old)

	current, err := os.Getwd()
	if err != nil {
		env.Errorf("getcwd: %v", err)
		return 1
	}
	os.Setenv("PWD", current)

	return 0
}

var _ Builtin = Cd
