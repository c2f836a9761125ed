package commands

import "fmt"

// Quit says goodbye, the shell stops reading input afterwards.
func Quit(env *Env) int {
	fmt.Fprintln(env.Stdout, "Getting out from shell.")
	return 0
}

var _ Builtin = Quit
