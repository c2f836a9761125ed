package commands

import (
	"os"
	"strings"
)

// Echo prints its arguments separated by a space. Arguments starting with $
// are replaced by the environment variable they name, if it's set.
func Echo(env *Env) int {
	words := make([]string, 0, len(env.Args))
	for _, arg := range env.Args[1:] {
		words = append(words, expand(arg))
	}

	env.Stdout.Write([]byte(strings.Join(words, " ") + "\n"))
	return 0
}

func expand(word string) string {
	if !strings.HasPrefix(word, "$") {
		return word
	}

	if val, ok := os.LookupEnv(word[1:]); ok {
		return val
	}
	return word
}

var _ Builtin = Echo
