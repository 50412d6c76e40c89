package convert

import (
	"strings"

	"github.com/xnat/convertdemo/pkg/errors"
)

// Quoted is a word split around its first double-quoted value.
// For `src="img/a.png"/>` Prefix is `src=`, Value is `img/a.png` and
// Suffix is `/>`.
type Quoted struct {
	Prefix string
	Value  string
	Suffix string
}

// ParseQuoted splits word around its first two double quotes. A word with
// fewer than two double quotes is an ATTRIBUTE_UNQUOTED error.
func ParseQuoted(word string) (Quoted, error) {
	open := strings.IndexByte(word, '"')
	if open < 0 {
		return Quoted{}, unquoted(word)
	}
	closing := strings.IndexByte(word[open+1:], '"')
	if closing < 0 {
		return Quoted{}, unquoted(word)
	}
	closing += open + 1

	return Quoted{
		Prefix: word[:open],
		Value:  word[open+1 : closing],
		Suffix: word[closing+1:],
	}, nil
}

func unquoted(word string) error {
	return errors.Newf(errors.ErrAttributeUnquoted, "attribute %q needs a quoted value", strings.TrimSpace(word)).
		WithDetail("word", word)
}

// normalizeQuotes turns single quotes into double quotes.
func normalizeQuotes(word string) string {
	return strings.ReplaceAll(word, "'", `"`)
}
