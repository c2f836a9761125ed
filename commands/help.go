package commands

import (
	"fmt"
	"io"
)

var builtinUsage = []struct {
	use   string
	short string
}{
	{"cd [dir]", "Changes the current directory, .. if no directory is given."},
	{"clear", "Clears the screen."},
	{"echo [text]", "Displays text or environment variables."},
	{"quit", "Exits the shell."},
	{"start_monitor", "Starts the monitoring process."},
	{"stop_monitor", "Stops the monitoring process."},
	{"status_monitor", "Displays the system monitoring status."},
	{"searchconfig <dir> [ext]", "Searches for configuration files."},
	{"help", "Shows this list of internal commands."},
}

// Help lists the built-ins and the syntax the shell understands.
func Help(env *Env) int {
	w := env.Stdout

	heading := func(title string) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, env.Sprintf(ColorBoldCyan, "--- %s ---", title))
	}

	heading("Internal Commands")
	for _, b := range builtinUsage {
		fmt.Fprintf(w, "%s - %s\n", env.Sprintf(ColorBoldGreen, "%-26s", b.use), b.short)
	}

	heading("External Commands")
	fmt.Fprintln(w, "Any program on your PATH, such as 'ls', 'cat' or 'grep'.")
	fmt.Fprintln(w, "For more details on external commands, use 'man [command]'.")

	heading("Pipes")
	fmt.Fprintln(w, "Use '|' to send the output of one command to the input of the next.")
	fmt.Fprintln(w, "Example: ls | grep 'name'")

	heading("Redirection")
	fmt.Fprintln(w, "Use '>' to write a command's output to a file and '<' to read its input from one.")
	printExamples(w, []string{
		"echo 'Hello' > file.txt", "Writes 'Hello' to file.txt.",
		"cat < file.txt", "Displays the contents of file.txt.",
	})

	heading("Background Jobs")
	fmt.Fprintln(w, "End a command with '&' to run it without waiting, the shell prints [job] pid.")
	printExamples(w, []string{
		"sleep 10 &", "Runs sleep in the background.",
	})

	heading("Command Files")
	fmt.Fprintln(w, "Pass a file when starting the shell to run each of its lines:")
	fmt.Fprintln(w, "  gosh [command_file]")
	fmt.Fprintln(w)

	return 0
}

func printExamples(w io.Writer, pairs []string) {
	fmt.Fprintln(w, "Examples:")
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(w, "  %-26s - %s\n", pairs[i], pairs[i+1])
	}
}

var _ Builtin = Help
