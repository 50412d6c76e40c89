// Package source loads the demo document the converters work from.
package source

import (
	stderrors "errors"
	"io/fs"
	"strings"

	"github.com/xnat/convertdemo/pkg/errors"
	"github.com/xnat/convertdemo/pkg/logging"
	"github.com/xnat/convertdemo/pkg/types"
)

// Document is the source file split into lines. Each line keeps its
// terminator; only the last line may lack one.
type Document struct {
	Path  string
	Lines []string
}

// Load reads path and splits it into lines.
func Load(fsys types.FS, path string) (*Document, error) {
	logger := logging.GetLogger("source")

	data, err := fsys.ReadFile(path)
	if err != nil {
		code := errors.ErrFileAccess
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.ErrFileNotFound
		}
		return nil, errors.Wrapf(err, code, "cannot read source %s", path).
			WithDetail("path", path)
	}

	doc := &Document{Path: path, Lines: SplitLines(string(data))}
	logger.Debug().Str("path", path).Int("lines", len(doc.Lines)).Msg("Source loaded")
	return doc, nil
}

// SplitLines splits s after every "\n", keeping the terminator on each line.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
