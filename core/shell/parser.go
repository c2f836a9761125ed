// Package shell turns raw command lines into commands the executor can run.
//
// Grammar:
//
//	line      := pipeline
//	pipeline  := stage ('|' stage)*
//	stage     := token* (redirect token)* ['&']
//	redirect  := '<' path | '>' path
//	token     := bareword | "'" text "'" | '"' text '"'
//
// Parsing never fails. Unterminated quotes run to the end of the input and a
// redirect operator without a target is dropped.
package shell

import (
	"strings"
)

const (
	pipeOperator       = '|'
	inputRedirect      = '<'
	outputRedirect     = '>'
	backgroundOperator = "&"
)

// ParsedCommand is a single tokenized command.
type ParsedCommand struct {
	// Argv holds the command and its arguments, Argv[0] is the command name.
	Argv []string
	// InputPath replaces standard input if non-empty.
	InputPath string
	// OutputPath replaces standard output if non-empty.
	OutputPath string
	// Background is set if the command ended with a bare '&'.
	Background bool
	// Builtin is the shell builtin Argv[0] names, or NotBuiltin.
	Builtin BuiltinKind
}

// Empty returns true if there is no command to run.
func (p *ParsedCommand) Empty() bool {
	return len(p.Argv) == 0
}

// Name returns the command name or the empty string.
func (p *ParsedCommand) Name() string {
	if p.Empty() {
		return ""
	}
	return p.Argv[0]
}

// SplitPipeline splits a line into trimmed pipeline stages.
//
// Quotes are not considered, `echo "a|b"` is two stages. Stages that are
// blank after trimming are dropped.
func SplitPipeline(line string) []string {
	var stages []string
	for _, stage := range strings.Split(line, string(pipeOperator)) {
		stage = strings.Trim(stage, " \t")
		if stage == "" {
			continue
		}
		stages = append(stages, stage)
	}
	return stages
}

type token struct {
	value  string
	quoted bool
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func isWordEnd(c byte) bool {
	return isBlank(c) || c == inputRedirect || c == outputRedirect
}

// scan breaks a stage into tokens and pulls out the redirect targets.
func scan(stage string) (tokens []token, inputPath, outputPath string) {
	i := 0
	for i < len(stage) {
		for i < len(stage) && isBlank(stage[i]) {
			i++
		}
		if i >= len(stage) {
			break
		}

		switch c := stage[i]; {
		case c == inputRedirect || c == outputRedirect:
			i++
			for i < len(stage) && isBlank(stage[i]) {
				i++
			}
			start := i
			for i < len(stage) && !isWordEnd(stage[i]) {
				i++
			}
			target := stage[start:i]
			switch {
			case target == "":
				// Dangling operator, nothing to redirect to.
			case c == inputRedirect:
				inputPath = target
			default:
				outputPath = target
			}

		case c == '\'' || c == '"':
			i++
			start := i
			for i < len(stage) && stage[i] != c {
				i++
			}
			tokens = append(tokens, token{value: stage[start:i], quoted: true})
			if i < len(stage) {
				i++ // closing quote
			}

		default:
			start := i
			for i < len(stage) && !isWordEnd(stage[i]) {
				i++
			}
			tokens = append(tokens, token{value: stage[start:i]})
		}
	}

	return tokens, inputPath, outputPath
}

// Tokenize splits a stage into its arguments and redirect targets.
//
// Redirect operators and their targets never appear in argv. If the same
// direction is redirected more than once the last target wins.
func Tokenize(stage string) (argv []string, inputPath, outputPath string) {
	tokens, inputPath, outputPath := scan(stage)
	for _, tok := range tokens {
		argv = append(argv, tok.value)
	}
	return argv, inputPath, outputPath
}

// Parse tokenizes a stage, detects a trailing '&' and resolves builtins.
func Parse(stage string) *ParsedCommand {
	tokens, inputPath, outputPath := scan(stage)

	cmd := &ParsedCommand{
		InputPath:  inputPath,
		OutputPath: outputPath,
	}

	if n := len(tokens); n > 0 {
		if last := tokens[n-1]; !last.quoted && last.value == backgroundOperator {
			cmd.Background = true
			tokens = tokens[:n-1]
		}
	}

	for _, tok := range tokens {
		cmd.Argv = append(cmd.Argv, tok.value)
	}

	if !cmd.Empty() {
		cmd.Builtin, _ = LookupBuiltin(cmd.Argv[0])
	}

	return cmd
}
