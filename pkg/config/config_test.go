package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xnat/convertdemo/pkg/errors"
)

// isolate points every config source at a clean state.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvImageViewerHome, "")
	t.Setenv(EnvCatalinaHome, "")
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "src/main/scripts/viewer/", cfg.Rules.PopupPrefix)
	assert.Equal(t, "src/main/", cfg.Rules.TemplatePrefix)
	assert.Equal(t, "XNAT_IMAGE_VIEWER_MODE", cfg.Rules.ModeFlag)
	assert.Equal(t, "XNAT_DATA_PATH", cfg.Rules.DataPathMarker)
	assert.Equal(t, []string{"html>", "head>", "body>", "title>", "DEMO_DATA"}, cfg.Rules.Clearables)
	assert.Equal(t, []string{"href=", "src="}, cfg.Rules.AttributeTokens)
	assert.Equal(t, "$content.getURI", cfg.Rules.URIFunction)

	assert.Equal(t, Location{Root: RootImageViewer, Path: "Demo.html"}, cfg.Layout.Source)
	require.Len(t, cfg.Layout.TemplateTargets, 2)
	assert.Equal(t, RootCatalina, cfg.Layout.TemplateTargets[0].Root)
	assert.Equal(t, "webapps/xnat/templates/screens/XImgView.vm", cfg.Layout.TemplateTargets[0].Path)
	assert.Equal(t, "src/main/templates/screens/XImgView.vm", cfg.Layout.TemplateTargets[1].Path)
	require.Len(t, cfg.Layout.PopupTargets, 1)
	assert.Equal(t, "src/main/scripts/viewer/popup.html", cfg.Layout.PopupTargets[0].Path)

	assert.True(t, cfg.Output.Backup)
	assert.True(t, cfg.Output.RequireExisting)
	assert.Equal(t, ".BKP", cfg.Output.BackupSuffix)
	assert.NoError(t, cfg.Validate())
}

func TestLoadRootsFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv(EnvImageViewerHome, "/src/xiv")
	t.Setenv(EnvCatalinaHome, "/opt/tomcat")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "/src/xiv", cfg.Roots.ImageViewerHome)
	assert.Equal(t, "/opt/tomcat", cfg.Roots.CatalinaHome)

	dir, err := cfg.RootDir(RootCatalina)
	require.NoError(t, err)
	assert.Equal(t, "/opt/tomcat", dir)
}

func TestLoadPrefixedEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CONVERTDEMO_OUTPUT_BACKUP", "false")
	t.Setenv("CONVERTDEMO_OUTPUT_BACKUP_SUFFIX", ".old")
	t.Setenv("CONVERTDEMO_RULES_CLEARABLES", "html>,DEMO_DATA")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.False(t, cfg.Output.Backup)
	assert.Equal(t, ".old", cfg.Output.BackupSuffix)
	assert.Equal(t, []string{"html>", "DEMO_DATA"}, cfg.Rules.Clearables)
}

func TestLoadUserConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "convertdemo", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`
[roots]
image_viewer_home = "/from/file"

[output]
generator = "build.sh"
`), 0644))

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "/from/file", cfg.Roots.ImageViewerHome)
	assert.Equal(t, "build.sh", cfg.Output.Generator)
	// untouched keys keep their defaults
	assert.Equal(t, "src/main/", cfg.Rules.TemplatePrefix)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "explicit.toml")
	require.NoError(t, os.WriteFile(path, []byte("[roots]\nimage_viewer_home = \"/from/file\"\n"), 0644))
	t.Setenv(EnvImageViewerHome, "/from/env")

	cfg, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Roots.ImageViewerHome)
}

func TestLoadOverridesWin(t *testing.T) {
	isolate(t)
	t.Setenv("CONVERTDEMO_OUTPUT_BACKUP", "true")

	cfg, err := Load(LoadOptions{Overrides: map[string]interface{}{
		"output.backup":           false,
		"output.require_existing": false,
	}})
	require.NoError(t, err)
	assert.False(t, cfg.Output.Backup)
	assert.False(t, cfg.Output.RequireExisting)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(LoadOptions{ConfigFile: filepath.Join(dir, "nope.toml")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoadMalformedFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[roots\nimage_viewer_home = "), 0644))

	_, err := Load(LoadOptions{ConfigFile: path})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestRootDir(t *testing.T) {
	cfg := Default()

	_, err := cfg.RootDir(RootImageViewer)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	assert.Equal(t, EnvImageViewerHome, errors.GetErrorDetails(err)["env"])

	_, err = cfg.RootDir("webapps")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))

	cfg.Roots.ImageViewerHome = "/xiv"
	dir, err := cfg.RootDir(RootImageViewer)
	require.NoError(t, err)
	assert.Equal(t, "/xiv", dir)

	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg.Roots.CatalinaHome = "~/tomcat"
	dir, err = cfg.RootDir(RootCatalina)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "tomcat"), dir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty mode flag", func(c *Config) { c.Rules.ModeFlag = "" }},
		{"empty uri function", func(c *Config) { c.Rules.URIFunction = " " }},
		{"backup without suffix", func(c *Config) { c.Output.BackupSuffix = "" }},
		{"unknown root", func(c *Config) { c.Layout.PopupTargets[0].Root = "home" }},
		{"empty source", func(c *Config) { c.Layout.Source.Path = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
		})
	}

	t.Run("no suffix needed without backup", func(t *testing.T) {
		cfg := Default()
		cfg.Output.Backup = false
		cfg.Output.BackupSuffix = ""
		assert.NoError(t, cfg.Validate())
	})
}

func TestPrefixedEnvKey(t *testing.T) {
	assert.Equal(t, "output.require_existing", prefixedEnvKey("CONVERTDEMO_OUTPUT_REQUIRE_EXISTING"))
	assert.Equal(t, "rules.mode_flag", prefixedEnvKey("CONVERTDEMO_RULES_MODE_FLAG"))
	assert.Equal(t, "", prefixedEnvKey("CONVERTDEMO_OUTPUT"))
}

func TestRootsFromEnv(t *testing.T) {
	t.Setenv(EnvImageViewerHome, "")
	t.Setenv(EnvCatalinaHome, "/opt/tomcat")
	assert.Equal(t, map[string]interface{}{"roots.catalina_home": "/opt/tomcat"}, rootsFromEnv())
}
