package convert

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xnat/convertdemo/pkg/config"
	"github.com/xnat/convertdemo/pkg/errors"
	"github.com/xnat/convertdemo/pkg/logging"
	"github.com/xnat/convertdemo/pkg/types"
)

// Converter applies the configured rewrite rules.
type Converter struct {
	rules  config.Rules
	logger zerolog.Logger
}

// New creates a Converter for rules.
func New(rules config.Rules) *Converter {
	return &Converter{
		rules:  rules,
		logger: logging.GetLogger("convert"),
	}
}

// Convert dispatches to the converter for target.
func (c *Converter) Convert(target types.Target, lines []string) ([]string, error) {
	switch target {
	case types.TargetPopup:
		return c.Popup(lines), nil
	case types.TargetTemplate:
		return c.Template(lines)
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unknown target %q", target)
}

// Popup rewrites lines for the standalone popup page. The result has the
// same number of lines as the input.
func (c *Converter) Popup(lines []string) []string {
	out := make([]string, len(lines))
	flagged := 0

	for i, line := range lines {
		line = stripAll(line, c.rules.PopupPrefix)
		line = strings.TrimSpace(line)

		if c.isModeLine(line) {
			line = c.modeLine(c.rules.PopupMode)
			flagged++
		}
		out[i] = line
	}

	c.logger.Debug().Int("lines", len(out)).Int("modeLines", flagged).Msg("Popup converted")
	return out
}

// Template rewrites lines for the Velocity screen template. The first
// source line is replaced by the Velocity header, so the result holds
// len(TemplateHeader()) + len(lines) - 1 lines for a non-empty input.
func (c *Converter) Template(lines []string) ([]string, error) {
	out := TemplateHeader()
	if len(lines) == 0 {
		return out, nil
	}

	rewrites := 0
	for i := 1; i < len(lines); i++ {
		line, n, err := c.templateLine(lines[i], i+1)
		if err != nil {
			return nil, err
		}
		rewrites += n
		out = append(out, line)
	}

	c.logger.Debug().Int("lines", len(out)).Int("uriRewrites", rewrites).Msg("Template converted")
	return out, nil
}

// templateLine converts one line and reports how many attributes it rewrote.
// lineNo is the 1-based source line number used in errors.
func (c *Converter) templateLine(line string, lineNo int) (string, int, error) {
	for _, marker := range c.rules.Clearables {
		if marker != "" && strings.Contains(line, marker) {
			line = ""
		}
	}

	if c.isModeLine(line) && !c.mentionsDataPath(line) {
		line = c.modeLine(c.rules.LiveMode)
	}

	rewrites := 0
	for _, token := range c.rules.AttributeTokens {
		if token == "" || !strings.Contains(line, token) {
			continue
		}
		for _, word := range strings.Split(line, " ") {
			if !strings.Contains(word, token) {
				continue
			}
			q, err := ParseQuoted(normalizeQuotes(word))
			if err != nil {
				return "", 0, errors.Newf(errors.ErrAttributeUnquoted,
					"line %d: attribute %q needs a quoted value", lineNo, strings.TrimSpace(word)).
					WithDetail("line", lineNo).
					WithDetail("word", word)
			}
			line = strings.ReplaceAll(line, word, c.uriCall(q))
			rewrites++
		}
	}

	if c.rules.TemplatePrefix != "" {
		line = strings.ReplaceAll(line, c.rules.TemplatePrefix, "")
	}

	return strings.TrimSpace(line), rewrites, nil
}

// uriCall renders q as prefix"$content.getURI("value")"suffix.
func (c *Converter) uriCall(q Quoted) string {
	return fmt.Sprintf(`%s"%s("%s")"%s`, q.Prefix, c.rules.URIFunction, q.Value, q.Suffix)
}

// isModeLine reports whether line is the single assignment of the mode flag.
func (c *Converter) isModeLine(line string) bool {
	return strings.Count(line, "=") == 1 && strings.Contains(line, c.rules.ModeFlag)
}

// stripAll removes prefix until none is left, including occurrences that an
// earlier removal joined together.
func stripAll(line, prefix string) string {
	if prefix == "" {
		return line
	}
	for strings.Contains(line, prefix) {
		line = strings.ReplaceAll(line, prefix, "")
	}
	return line
}

func (c *Converter) mentionsDataPath(line string) bool {
	return c.rules.DataPathMarker != "" && strings.Contains(line, c.rules.DataPathMarker)
}

func (c *Converter) modeLine(mode string) string {
	return fmt.Sprintf("%s = '%s';", c.rules.ModeFlag, mode)
}
