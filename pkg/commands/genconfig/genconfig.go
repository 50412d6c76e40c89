package genconfig

import (
	"path/filepath"

	"github.com/xnat/convertdemo/pkg/config"
	"github.com/xnat/convertdemo/pkg/errors"
	"github.com/xnat/convertdemo/pkg/filesystem"
	"github.com/xnat/convertdemo/pkg/logging"
	"github.com/xnat/convertdemo/pkg/types"
)

// GenConfigOptions holds options for the gen-config command
type GenConfigOptions struct {
	// Config is rendered as the file content; nil renders the defaults.
	Config *config.Config
	// Write stores the content instead of only returning it.
	Write bool
	// Path overrides the user config location when writing.
	Path       string
	FileSystem types.FS
}

// GenConfig outputs or writes the configuration
func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	content, err := config.GenerateConfigContent(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}

	result := &types.GenConfigResult{
		ConfigContent: content,
		FilesWritten:  []string{},
	}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	target := opts.Path
	if target == "" {
		target = config.UserConfigPath()
	}

	dir := filepath.Dir(target)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to create directory %s", dir).
			WithDetail("path", dir)
	}

	if _, err := fsys.Stat(target); err == nil {
		logger.Warn().Str("path", target).Msg("Config file already exists, skipping")
		return result, nil
	}

	if err := fsys.WriteFile(target, []byte(content), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", target).
			WithDetail("path", target)
	}

	logger.Info().Str("path", target).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, target)
	return result, nil
}
