package config

import (
	"strings"

	"github.com/xnat/convertdemo/pkg/errors"
	"github.com/xnat/convertdemo/pkg/utils"
)

// Root names used by Location.Root
const (
	RootImageViewer = "image_viewer_home"
	RootCatalina    = "catalina_home"
)

// Environment variables that supply the roots
const (
	EnvImageViewerHome = "XNATIMAGEVIEWER_HOME"
	EnvCatalinaHome    = "CATALINA_HOME"
)

// Roots holds the two installation directories everything else hangs off.
type Roots struct {
	ImageViewerHome string `koanf:"image_viewer_home" toml:"image_viewer_home"`
	CatalinaHome    string `koanf:"catalina_home" toml:"catalina_home"`
}

// Location is a path relative to one of the roots.
type Location struct {
	Root string `koanf:"root" toml:"root"`
	Path string `koanf:"path" toml:"path"`
}

// Layout holds the fixed relative paths of the source and destinations.
type Layout struct {
	Source          Location   `koanf:"source" toml:"source"`
	TemplateTargets []Location `koanf:"template_targets" toml:"template_targets"`
	PopupTargets    []Location `koanf:"popup_targets" toml:"popup_targets"`
}

// Rules holds the tokens the converters look for.
type Rules struct {
	PopupPrefix     string   `koanf:"popup_prefix" toml:"popup_prefix"`
	TemplatePrefix  string   `koanf:"template_prefix" toml:"template_prefix"`
	ModeFlag        string   `koanf:"mode_flag" toml:"mode_flag"`
	DataPathMarker  string   `koanf:"data_path_marker" toml:"data_path_marker"`
	Clearables      []string `koanf:"clearables" toml:"clearables"`
	AttributeTokens []string `koanf:"attribute_tokens" toml:"attribute_tokens"`
	URIFunction     string   `koanf:"uri_function" toml:"uri_function"`
	PopupMode       string   `koanf:"popup_mode" toml:"popup_mode"`
	LiveMode        string   `koanf:"live_mode" toml:"live_mode"`
}

// Output controls how destinations are written.
type Output struct {
	// Backup keeps the previous destination under its backup name.
	Backup       bool   `koanf:"backup" toml:"backup"`
	BackupSuffix string `koanf:"backup_suffix" toml:"backup_suffix"`
	// RequireExisting refuses to write a destination that does not exist yet.
	RequireExisting bool   `koanf:"require_existing" toml:"require_existing"`
	Generator       string `koanf:"generator" toml:"generator"`
}

// Config is the main configuration structure
type Config struct {
	Roots  Roots  `koanf:"roots" toml:"roots"`
	Layout Layout `koanf:"layout" toml:"layout"`
	Rules  Rules  `koanf:"rules" toml:"rules"`
	Output Output `koanf:"output" toml:"output"`
}

// RootDir returns the directory for a named root, with ~ and $VAR expanded.
func (c *Config) RootDir(name string) (string, error) {
	var dir, env string
	switch name {
	case RootImageViewer:
		dir, env = c.Roots.ImageViewerHome, EnvImageViewerHome
	case RootCatalina:
		dir, env = c.Roots.CatalinaHome, EnvCatalinaHome
	default:
		return "", errors.Newf(errors.ErrConfigValid, "unknown root %q", name).
			WithDetail("root", name)
	}
	if strings.TrimSpace(dir) == "" {
		return "", errors.Newf(errors.ErrConfigValid, "%s is not set", env).
			WithDetail("root", name).
			WithDetail("env", env)
	}
	return utils.ExpandPath(dir), nil
}

// Validate checks the rule and output sections. Roots are checked lazily by
// RootDir so that commands which never touch a root still work without them.
func (c *Config) Validate() error {
	required := map[string]string{
		"rules.popup_prefix":    c.Rules.PopupPrefix,
		"rules.template_prefix": c.Rules.TemplatePrefix,
		"rules.mode_flag":       c.Rules.ModeFlag,
		"rules.uri_function":    c.Rules.URIFunction,
		"rules.popup_mode":      c.Rules.PopupMode,
		"rules.live_mode":       c.Rules.LiveMode,
		"layout.source.path":    c.Layout.Source.Path,
	}
	for key, val := range required {
		if strings.TrimSpace(val) == "" {
			return errors.Newf(errors.ErrConfigValid, "%s must not be empty", key).
				WithDetail("key", key)
		}
	}

	if c.Output.Backup && c.Output.BackupSuffix == "" {
		return errors.New(errors.ErrConfigValid, "output.backup_suffix must be set when backups are enabled").
			WithDetail("key", "output.backup_suffix")
	}

	locations := append([]Location{c.Layout.Source}, c.Layout.TemplateTargets...)
	locations = append(locations, c.Layout.PopupTargets...)
	for _, loc := range locations {
		if loc.Root != RootImageViewer && loc.Root != RootCatalina {
			return errors.Newf(errors.ErrConfigValid, "location %q uses unknown root %q", loc.Path, loc.Root).
				WithDetail("root", loc.Root)
		}
	}

	return nil
}
