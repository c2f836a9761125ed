package commands

import (
	"fmt"
)

// Clear moves the cursor home and clears the screen, assumes VT100
// compatibility.
func Clear(env *Env) int {
	fmt.Fprint(env.Stdout, "\033[H\033[J")
	return 0
}

var _ Builtin = Clear
