package convert

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xnat/convertdemo/pkg/config"
	"github.com/xnat/convertdemo/pkg/errors"
	"github.com/xnat/convertdemo/pkg/testutil"
	"github.com/xnat/convertdemo/pkg/types"
)

const demo = `<html>
  <head>
    <script src='src/main/scripts/viewer/xiv/xiv.js'></script>
    <script>XNAT_IMAGE_VIEWER_MODE = 'demo';</script>
  </head>
</html>
`

func fixedNow() time.Time {
	return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
}

// setup returns an in-memory demo tree, with destinations holding
// "previous\n" when seeded.
func setup(t *testing.T, seedDestinations bool) (*testutil.TestEnvironment, *config.Config) {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly).WithSource(demo)
	if seedDestinations {
		env.WithDestinations("previous\n")
	}
	return env, env.Config()
}

const banner = "\n\n\n<!-- THIS FILE WAS AUTOGENERATED BY ($XNATImageViewer)/utility-scripts/convertdemo at 2025-01-02 03:04:05 -->\n\n\n\n"

func TestConvertDemo(t *testing.T) {
	env, cfg := setup(t, true)

	result, err := ConvertDemo(ConvertDemoOptions{Config: cfg, FileSystem: env.FS, Now: fixedNow})
	require.NoError(t, err)

	assert.Equal(t, 6, result.SourceLines)
	assert.Equal(t, []string{env.TemplateCatalina, env.TemplateViewer, env.Popup}, result.FilesWritten())
	require.Len(t, result.Targets, 2)
	assert.Equal(t, types.TargetTemplate, result.Targets[0].Target)
	assert.Equal(t, 7+3+5, result.Targets[0].Lines)
	assert.Equal(t, types.TargetPopup, result.Targets[1].Target)
	assert.Equal(t, 7+6, result.Targets[1].Lines)

	wantVM := banner + strings.Join([]string{
		`#* @vtlvariable name="content" type="org.apache.turbine.services.pull.tools.ContentTool" *#`,
		`#* @vtlvariable name="displayManager" type="org.nrg.xdat.display.DisplayManager" *#`,
		`#* @vtlvariable name="om" type="org.nrg.xdat.om.XnatMrsessiondata" *#`,
		"",
		`<script src="$content.getURI("scripts/viewer/xiv/xiv.js")"></script>`,
		"XNAT_IMAGE_VIEWER_MODE = 'live';",
		"",
		"",
	}, "\n") + "\n"
	assert.Equal(t, wantVM, env.Read(env.TemplateCatalina))
	assert.Equal(t, wantVM, env.Read(env.TemplateViewer))

	wantPopup := banner + strings.Join([]string{
		"<html>",
		"<head>",
		"<script src='xiv/xiv.js'></script>",
		"XNAT_IMAGE_VIEWER_MODE = 'popup';",
		"</head>",
		"</html>",
	}, "\n") + "\n"
	assert.Equal(t, wantPopup, env.Read(env.Popup))

	for _, bkp := range []string{
		filepath.Join(filepath.Dir(env.TemplateCatalina), "XImgView.BKP"),
		filepath.Join(filepath.Dir(env.TemplateViewer), "XImgView.BKP"),
		filepath.Join(filepath.Dir(env.Popup), "popup.BKP"),
	} {
		assert.Equal(t, "previous\n", env.Read(bkp))
	}
}

func TestConvertDemoSingleTarget(t *testing.T) {
	env, cfg := setup(t, true)

	result, err := ConvertDemo(ConvertDemoOptions{
		Config:     cfg,
		FileSystem: env.FS,
		Targets:    []types.Target{types.TargetPopup, types.TargetPopup},
		Now:        fixedNow,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{env.Popup}, result.FilesWritten())
	assert.Equal(t, "previous\n", env.Read(env.TemplateCatalina))
}

func TestConvertDemoDryRun(t *testing.T) {
	env, cfg := setup(t, true)

	result, err := ConvertDemo(ConvertDemoOptions{Config: cfg, FileSystem: env.FS, DryRun: true, Now: fixedNow})
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Empty(t, result.FilesWritten())
	require.Len(t, result.Targets, 2)
	assert.Equal(t, []string{env.TemplateCatalina, env.TemplateViewer}, result.Targets[0].Destinations)

	for _, dest := range []string{env.TemplateCatalina, env.TemplateViewer, env.Popup} {
		assert.Equal(t, "previous\n", env.Read(dest))
	}
}

func TestConvertDemoMissingDestination(t *testing.T) {
	env, cfg := setup(t, false)

	_, err := ConvertDemo(ConvertDemoOptions{Config: cfg, FileSystem: env.FS, Now: fixedNow})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))

	assert.False(t, env.Exists(env.TemplateCatalina))
}

func TestConvertDemoChecksEveryDestinationFirst(t *testing.T) {
	env, cfg := setup(t, true)
	env.Remove(env.Popup)

	result, err := ConvertDemo(ConvertDemoOptions{Config: cfg, FileSystem: env.FS, Now: fixedNow})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
	assert.Empty(t, result.FilesWritten())

	assert.Equal(t, "previous\n", env.Read(env.TemplateCatalina), "template must not be replaced")
	assert.Equal(t, "previous\n", env.Read(env.TemplateViewer))
	assert.False(t, env.Exists(filepath.Join(filepath.Dir(env.TemplateCatalina), "XImgView.BKP")))
}

func TestConvertDemoSeedsWhenAllowed(t *testing.T) {
	env, cfg := setup(t, false)
	cfg.Output.RequireExisting = false

	result, err := ConvertDemo(ConvertDemoOptions{Config: cfg, FileSystem: env.FS, Now: fixedNow})
	require.NoError(t, err)
	for _, tr := range result.Targets {
		for _, w := range tr.Writes {
			assert.True(t, w.Created)
			assert.Empty(t, w.BackupPath)
		}
	}
	assert.True(t, strings.HasPrefix(env.Read(env.Popup), banner))
}

func TestConvertDemoMissingSource(t *testing.T) {
	env, cfg := setup(t, true)
	env.Remove(env.Source)

	_, err := ConvertDemo(ConvertDemoOptions{Config: cfg, FileSystem: env.FS})
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestConvertDemoMissingRoot(t *testing.T) {
	env, cfg := setup(t, true)
	cfg.Roots.ImageViewerHome = ""

	_, err := ConvertDemo(ConvertDemoOptions{Config: cfg, FileSystem: env.FS})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestConvertDemoUnquotedAttribute(t *testing.T) {
	env, cfg := setup(t, true)
	env.WithSource("<html>\n<img src=a.png>\n")

	_, err := ConvertDemo(ConvertDemoOptions{Config: cfg, FileSystem: env.FS})
	assert.True(t, errors.IsErrorCode(err, errors.ErrAttributeUnquoted))
	assert.Equal(t, "previous\n", env.Read(env.TemplateCatalina), "no destination is touched")
}

func TestConvertDemoValidation(t *testing.T) {
	_, err := ConvertDemo(ConvertDemoOptions{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))

	env, cfg := setup(t, true)
	_, err = ConvertDemo(ConvertDemoOptions{Config: cfg, FileSystem: env.FS, Targets: []types.Target{"pdf"}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
