package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xnat/convertdemo/pkg/config"
	"github.com/xnat/convertdemo/pkg/filesystem"
	"github.com/xnat/convertdemo/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment is a viewer checkout and a servlet container ready for a
// conversion run.
type TestEnvironment struct {
	// Roots
	ImageViewerHome string
	CatalinaHome    string

	// Resolved paths of the default layout
	Source           string
	TemplateCatalina string
	TemplateViewer   string
	Popup            string

	// XDG directories, set for both environment types
	ConfigHome string
	StateHome  string

	FS   types.FS
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates the directory layout and exports
// XNATIMAGEVIEWER_HOME, CATALINA_HOME, XDG_CONFIG_HOME and XDG_STATE_HOME.
// Neither the source page nor any destination exists yet.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	var base string
	switch envType {
	case EnvIsolated:
		base = t.TempDir()
		env.FS = filesystem.NewOS()
	default:
		base = filepath.FromSlash("/virtual")
		env.FS = filesystem.NewMemory()
	}

	env.ImageViewerHome = filepath.Join(base, "xiv")
	env.CatalinaHome = filepath.Join(base, "tomcat")
	env.ConfigHome = filepath.Join(base, "config")
	env.StateHome = filepath.Join(base, "state")

	env.Source = filepath.Join(env.ImageViewerHome, "Demo.html")
	env.TemplateCatalina = filepath.Join(env.CatalinaHome, "webapps", "xnat", "templates", "screens", "XImgView.vm")
	env.TemplateViewer = filepath.Join(env.ImageViewerHome, "src", "main", "templates", "screens", "XImgView.vm")
	env.Popup = filepath.Join(env.ImageViewerHome, "src", "main", "scripts", "viewer", "popup.html")

	for _, dest := range env.Destinations() {
		env.mkdirAll(filepath.Dir(dest))
	}

	t.Setenv(config.EnvImageViewerHome, env.ImageViewerHome)
	t.Setenv(config.EnvCatalinaHome, env.CatalinaHome)
	if envType == EnvIsolated {
		t.Setenv("XDG_CONFIG_HOME", env.ConfigHome)
		t.Setenv("XDG_STATE_HOME", env.StateHome)
	} else {
		// Real files still land on disk through logging and config lookup.
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "config"))
		t.Setenv("XDG_STATE_HOME", filepath.Join(t.TempDir(), "state"))
	}

	return env
}

// Config returns the default configuration with the environment's roots.
func (env *TestEnvironment) Config() *config.Config {
	cfg := config.Default()
	cfg.Roots.ImageViewerHome = env.ImageViewerHome
	cfg.Roots.CatalinaHome = env.CatalinaHome
	return cfg
}

// Destinations lists every destination of the default layout in write order.
func (env *TestEnvironment) Destinations() []string {
	return []string{env.TemplateCatalina, env.TemplateViewer, env.Popup}
}

// WithSource writes the demo page.
func (env *TestEnvironment) WithSource(content string) *TestEnvironment {
	env.t.Helper()
	env.write(env.Source, content)
	return env
}

// WithDestinations seeds every destination with content.
func (env *TestEnvironment) WithDestinations(content string) *TestEnvironment {
	env.t.Helper()
	for _, dest := range env.Destinations() {
		env.write(dest, content)
	}
	return env
}

// Read returns the content of path, failing the test if it is unreadable.
func (env *TestEnvironment) Read(path string) string {
	env.t.Helper()
	data, err := env.FS.ReadFile(path)
	if err != nil {
		env.t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(data)
}

// Exists reports whether path exists.
func (env *TestEnvironment) Exists(path string) bool {
	_, err := env.FS.Stat(path)
	return err == nil
}

// Remove deletes path, failing the test on error.
func (env *TestEnvironment) Remove(path string) {
	env.t.Helper()
	if err := env.FS.Remove(path); err != nil {
		env.t.Fatalf("Failed to remove %s: %v", path, err)
	}
}

func (env *TestEnvironment) write(path, content string) {
	env.t.Helper()
	env.mkdirAll(filepath.Dir(path))
	if err := env.FS.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

func (env *TestEnvironment) mkdirAll(dir string) {
	env.t.Helper()
	if err := env.FS.MkdirAll(dir, 0755); err != nil {
		env.t.Fatalf("Failed to create directory %s: %v", dir, err)
	}
}
