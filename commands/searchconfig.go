package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// SearchConfig walks a directory tree and prints every regular file with
// the given extension along with its contents.
func SearchConfig(env *Env) int {
	cmd := &SimpleCommand{
		Use:   "searchconfig <directory> [extension]",
		Short: "Searches for configuration files.",
	}

	return cmd.Run(env, func() int {
		args := cmd.Flags().Args()
		if len(args) == 0 || len(args) > 2 {
			fmt.Fprintln(env.Stderr, "Usage: searchconfig <directory> [extension]")
			return 1
		}

		directory := args[0]
		extension := env.config().SearchConfig.DefaultExtension
		if len(args) > 1 {
			extension = args[1]
		}
		if !strings.HasPrefix(extension, ".") {
			extension = "." + extension
		}

		fmt.Fprintf(env.Stdout, "Exploring directory: %s for '%s' files\n", directory, extension)

		fs := env.fs()
		status := 0
		afero.Walk(fs, directory, func(filePath string, info os.FileInfo, err error) error {
			if err != nil {
				env.Errorf("%v", err)
				status = 1
				return nil
			}

			if !info.Mode().IsRegular() || !hasExtension(info.Name(), extension) {
				return nil
			}

			fmt.Fprintf(env.Stdout, "\nConfiguration file found: %s\n", filePath)
			fmt.Fprintf(env.Stdout, "Content of %s:\n", filePath)

			contents, err := afero.ReadFile(fs, filePath)
			if err != nil {
				env.Errorf("%v", err)
				status = 1
				return nil
			}
			env.Stdout.Write(contents)
			return nil
		})

		return status
	})
}

// hasExtension reports whether the text from the last dot of name equals
// ext. Names whose only dot is the first character have no extension.
func hasExtension(name, ext string) bool {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 {
		return false
	}
	return name[idx:] == ext
}

var _ Builtin = SearchConfig
