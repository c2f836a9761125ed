package proc

import (
	"fmt"
	"os"
)

// Redirects holds the files a command's standard streams are replaced with.
type Redirects struct {
	In  *os.File
	Out *os.File
}

// OpenRedirects opens the input target read only, then the output target
// truncated. Empty paths are skipped. On failure anything already opened is
// closed.
func OpenRedirects(inputPath, outputPath string) (*Redirects, error) {
	r := &Redirects{}

	if inputPath != "" {
		fd, err := os.Open(inputPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", inputPath, unwrapPathError(err))
		}
		r.In = fd
	}

	if outputPath != "" {
		fd, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("%s: %w", outputPath, unwrapPathError(err))
		}
		r.Out = fd
	}

	return r, nil
}

// Stdin returns the input redirect or def.
func (r *Redirects) Stdin(def *os.File) *os.File {
	if r == nil || r.In == nil {
		return def
	}
	return r.In
}

// Stdout returns the output redirect or def.
func (r *Redirects) Stdout(def *os.File) *os.File {
	if r == nil || r.Out == nil {
		return def
	}
	return r.Out
}

// Close releases the redirect files, it's safe to call more than once.
func (r *Redirects) Close() {
	if r == nil {
		return
	}
	if r.In != nil {
		r.In.Close()
		r.In = nil
	}
	if r.Out != nil {
		r.Out.Close()
		r.Out = nil
	}
}
