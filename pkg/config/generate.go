package config

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

const generatedHeader = `# convertdemo configuration
#
# Generated from the effective configuration. Keys left out fall back to the
# built-in defaults; XNATIMAGEVIEWER_HOME and CATALINA_HOME override [roots].

`

// GenerateConfigContent serializes cfg as a TOML document.
func GenerateConfigContent(cfg *Config) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(generatedHeader)

	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to encode configuration: %w", err)
	}
	return buf.String(), nil
}
