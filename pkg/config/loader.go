package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/xnat/convertdemo/pkg/errors"
	"github.com/xnat/convertdemo/pkg/logging"
)

// EnvPrefix prefixes environment variables that override config keys,
// e.g. CONVERTDEMO_OUTPUT_BACKUP=false sets output.backup.
const EnvPrefix = "CONVERTDEMO_"

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// ConfigFile is an explicit user config file. It must exist when set.
	ConfigFile string
	// Overrides are dotted keys applied last, typically from CLI flags.
	Overrides map[string]interface{}
}

// Load builds the effective configuration from all layers.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file
	path, explicit := opts.ConfigFile, opts.ConfigFile != ""
	if !explicit {
		path = UserConfigPath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded user config")
	} else if explicit {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", path).
			WithDetail("path", path)
	}

	// 3. Root environment variables; unset or empty ones leave the file value alone
	if roots := rootsFromEnv(); len(roots) > 0 {
		if err := k.Load(confmap.Provider(roots, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load root env vars")
		}
	}

	// 4. Prefixed overrides
	if err := k.Load(env.Provider(EnvPrefix, ".", prefixedEnvKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Flag overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("image_viewer_home", cfg.Roots.ImageViewerHome).
		Str("catalina_home", cfg.Roots.CatalinaHome).
		Msg("Configuration loaded")
	return cfg, nil
}

// Default returns the embedded defaults only, with no roots set.
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic("embedded defaults.toml is invalid: " + err.Error())
	}
	cfg, err := unmarshal(k)
	if err != nil {
		panic("embedded defaults.toml does not decode: " + err.Error())
	}
	return cfg
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// UserConfigPath is $XDG_CONFIG_HOME/convertdemo/config.toml.
func UserConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return filepath.Join(configHome, "convertdemo", "config.toml")
}

func rootsFromEnv() map[string]interface{} {
	roots := make(map[string]interface{})
	for envName, key := range map[string]string{
		EnvImageViewerHome: "roots." + RootImageViewer,
		EnvCatalinaHome:    "roots." + RootCatalina,
	} {
		if v := strings.TrimSpace(os.Getenv(envName)); v != "" {
			roots[key] = v
		}
	}
	return roots
}

// prefixedEnvKey maps CONVERTDEMO_SECTION_SOME_KEY to section.some_key.
func prefixedEnvKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok || rest == "" {
		return ""
	}
	return section + "." + rest
}
