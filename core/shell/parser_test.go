package shell

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleSplitPipeline() {
	fmt.Printf("%q\n", SplitPipeline("a | b |c"))
	fmt.Printf("%q\n", SplitPipeline("ls -l\t|  | wc -l  "))
	fmt.Printf("%q\n", SplitPipeline(""))

	// Output: ["a" "b" "c"]
	// ["ls -l" "wc -l"]
	// []
}

func ExampleTokenize() {
	argv, in, out := Tokenize(`cat < in.txt > out.txt`)
	fmt.Printf("%q %q %q\n", argv, in, out)

	// Output: ["cat"] "in.txt" "out.txt"
}

func TestTokenize(t *testing.T) {
	cases := map[string]struct {
		stage   string
		argv    []string
		inPath  string
		outPath string
	}{
		"empty":              {"", nil, "", ""},
		"blank":              {" \t ", nil, "", ""},
		"words":              {"ls -l /tmp", []string{"ls", "-l", "/tmp"}, "", ""},
		"tabs":               {"ls\t-l", []string{"ls", "-l"}, "", ""},
		"double-quoted":      {`echo "a b" c`, []string{"echo", "a b", "c"}, "", ""},
		"single-quoted":      {`echo 'a  b'`, []string{"echo", "a  b"}, "", ""},
		"quotes-verbatim":    {`echo "it's"`, []string{"echo", "it's"}, "", ""},
		"empty-quotes":       {`echo ""`, []string{"echo", ""}, "", ""},
		"unterminated":       {`echo "a b`, []string{"echo", "a b"}, "", ""},
		"unterminated-blank": {`echo '`, []string{"echo", ""}, "", ""},
		"quote-then-word":    {`echo "a"b`, []string{"echo", "a", "b"}, "", ""},
		"quote-mid-word":     {`echo a"b`, []string{"echo", `a"b`}, "", ""},
		"redirects":          {"cat < in.txt > out.txt", []string{"cat"}, "in.txt", "out.txt"},
		"redirects-no-space": {"cat<in.txt>out.txt", []string{"cat"}, "in.txt", "out.txt"},
		"redirect-first":     {"> out.txt echo hi", []string{"echo", "hi"}, "", "out.txt"},
		"last-wins":          {"cat <a <b >c >d", []string{"cat"}, "b", "d"},
		"dangling":           {"cat >", []string{"cat"}, "", ""},
		"dangling-chained":   {"cat > < in", []string{"cat"}, "in", ""},
		"quoted-operator":    {`echo ">"`, []string{"echo", ">"}, "", ""},
		"ampersand-kept":     {"sleep 1 &", []string{"sleep", "1", "&"}, "", ""},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			argv, inPath, outPath := Tokenize(tc.stage)

			assert.Equal(t, tc.argv, argv)
			assert.Equal(t, tc.inPath, inPath)
			assert.Equal(t, tc.outPath, outPath)
		})
	}
}

func TestTokenizeIgnoresRedirectsInArgv(t *testing.T) {
	withRedirects, _, _ := Tokenize("sort -r < in > out")
	without, _, _ := Tokenize("sort -r")

	assert.Equal(t, without, withRedirects)
}

func TestParse(t *testing.T) {
	cases := map[string]struct {
		stage      string
		argv       []string
		background bool
		builtin    BuiltinKind
	}{
		"external":            {"ls -l", []string{"ls", "-l"}, false, NotBuiltin},
		"background":          {"sleep 1 &", []string{"sleep", "1"}, true, NotBuiltin},
		"background-no-space": {"sleep 1&", []string{"sleep", "1&"}, false, NotBuiltin},
		"quoted-ampersand":    {`echo "&"`, []string{"echo", "&"}, false, BuiltinEcho},
		"ampersand-only":      {"&", nil, true, NotBuiltin},
		"inner-ampersand":     {"echo & done", []string{"echo", "&", "done"}, false, BuiltinEcho},
		"builtin":             {"cd /tmp", []string{"cd", "/tmp"}, false, BuiltinCd},
		"builtin-background":  {"echo hi &", []string{"echo", "hi"}, true, BuiltinEcho},
		"builtin-path":        {"/bin/echo hi", []string{"/bin/echo", "hi"}, false, NotBuiltin},
		"quoted-builtin-name": {`"quit"`, []string{"quit"}, false, BuiltinQuit},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cmd := Parse(tc.stage)

			assert.Equal(t, tc.argv, cmd.Argv)
			assert.Equal(t, tc.background, cmd.Background)
			assert.Equal(t, tc.builtin, cmd.Builtin)
		})
	}
}

func TestParseRedirectWithBackground(t *testing.T) {
	cmd := Parse("sort < in.txt > out.txt &")

	assert.Equal(t, []string{"sort"}, cmd.Argv)
	assert.Equal(t, "in.txt", cmd.InputPath)
	assert.Equal(t, "out.txt", cmd.OutputPath)
	assert.True(t, cmd.Background)
}

func TestParsedCommandEmpty(t *testing.T) {
	cmd := Parse("   ")
	assert.True(t, cmd.Empty())
	assert.Equal(t, "", cmd.Name())
	assert.Equal(t, NotBuiltin, cmd.Builtin)

	cmd = Parse("ls")
	assert.False(t, cmd.Empty())
	assert.Equal(t, "ls", cmd.Name())
}

func TestSplitPipeline(t *testing.T) {
	cases := map[string]struct {
		line   string
		stages []string
	}{
		"single":         {"ls -l", []string{"ls -l"}},
		"three":          {"a | b |c", []string{"a", "b", "c"}},
		"trailing-pipe":  {"ls |", []string{"ls"}},
		"double-pipe":    {"a || b", []string{"a", "b"}},
		"quotes-ignored": {`echo "a|b"`, []string{`echo "a`, `b"`}},
		"only-pipes":     {" | | ", nil},
		"tabs":           {"\ta\t|\tb\t", []string{"a", "b"}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.stages, SplitPipeline(tc.line))
		})
	}
}

func TestLookupBuiltin(t *testing.T) {
	for _, kind := range Builtins() {
		t.Run(kind.String(), func(t *testing.T) {
			got, ok := LookupBuiltin(kind.String())
			assert.True(t, ok)
			assert.Equal(t, kind, got)
			assert.True(t, kind.IsBuiltin())
		})
	}

	_, ok := LookupBuiltin("ls")
	assert.False(t, ok)
	assert.False(t, NotBuiltin.IsBuiltin())
	assert.Equal(t, "external", NotBuiltin.String())
	assert.Len(t, Builtins(), 9)
}
