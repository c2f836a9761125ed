package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEcho(t *testing.T) {
	t.Setenv("GOSH_TEST_VAR", "value")

	cases := goldenTestSuite{
		"echo-words": {[]string{"echo", "hello", "world"}},
		"echo-empty": {[]string{"echo"}},
		"echo-vars":  {[]string{"echo", "$GOSH_TEST_VAR", "$GOSH_UNSET_TEST_VAR", "$"}},
	}

	cases.Run(t, Echo, nil)
}

func TestClear(t *testing.T) {
	cases := goldenTestSuite{
		"clear": {[]string{"clear"}},
	}

	cases.Run(t, Clear, nil)
}

func TestQuit(t *testing.T) {
	cases := goldenTestSuite{
		"quit": {[]string{"quit"}},
	}

	cases.Run(t, Quit, nil)
}

func TestHelp(t *testing.T) {
	cases := goldenTestSuite{
		"help": {[]string{"help"}},
	}

	cases.Run(t, Help, nil)
}

func TestHelpColor(t *testing.T) {
	env, out := testEnv("help")
	env.Color = true

	assert.Equal(t, 0, Help(env))
	assert.Contains(t, out.String(), "Internal Commands")
}
