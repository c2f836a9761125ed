package main

import (
	"os"

	"github.com/josephlewis42/gosh/cmd"
	"github.com/josephlewis42/gosh/core"
	"github.com/josephlewis42/gosh/core/proc"
)

func main() {
	// Background built-ins re-execute the shell, run one command and exit.
	if proc.IsBuiltinChild() {
		os.Exit(core.RunBuiltinChild(os.Args[1:]))
	}

	cmd.Execute()
}
