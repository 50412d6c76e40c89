package convert

import (
	"time"

	"github.com/xnat/convertdemo/pkg/config"
	conv "github.com/xnat/convertdemo/pkg/convert"
	"github.com/xnat/convertdemo/pkg/errors"
	"github.com/xnat/convertdemo/pkg/filesystem"
	"github.com/xnat/convertdemo/pkg/logging"
	"github.com/xnat/convertdemo/pkg/paths"
	"github.com/xnat/convertdemo/pkg/source"
	"github.com/xnat/convertdemo/pkg/types"
	"github.com/xnat/convertdemo/pkg/writer"
)

// ConvertDemoOptions defines the options for the ConvertDemo command.
type ConvertDemoOptions struct {
	// Config is the effective configuration. Required.
	Config *config.Config
	// Targets restricts the run to some targets. Empty means all of them.
	Targets []types.Target
	// DryRun converts and checks destinations without writing.
	DryRun bool
	// FileSystem defaults to the OS filesystem.
	FileSystem types.FS
	// Now stamps the generated banner; defaults to time.Now.
	Now func() time.Time
}

// ConvertDemo reads the demo page once, converts it for every requested
// target and writes each result to all of that target's destinations.
func ConvertDemo(opts ConvertDemoOptions) (*types.ConvertResult, error) {
	log := logging.GetLogger("core.commands")
	defer logging.LogOperationStart(log, "ConvertDemo")()

	if opts.Config == nil {
		return nil, errors.New(errors.ErrInternal, "ConvertDemo requires a configuration")
	}
	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	targets := opts.Targets
	if len(targets) == 0 {
		targets = types.AllTargets()
	}
	order, err := ordered(targets)
	if err != nil {
		return nil, err
	}

	plan, err := paths.Resolve(opts.Config)
	if err != nil {
		return nil, err
	}

	doc, err := source.Load(fsys, plan.Source)
	if err != nil {
		return nil, err
	}

	stamp := now()
	result := &types.ConvertResult{
		Source:      doc.Path,
		SourceLines: len(doc.Lines),
		DryRun:      opts.DryRun,
		Timestamp:   stamp,
	}

	converter := conv.New(opts.Config.Rules)
	w := writer.New(fsys, writer.Options{
		Backup:          opts.Config.Output.Backup,
		BackupSuffix:    opts.Config.Output.BackupSuffix,
		RequireExisting: opts.Config.Output.RequireExisting,
	})
	banner := conv.Banner(opts.Config.Output.Generator, stamp)

	outputs := make([][]string, 0, len(order))
	for _, target := range order {
		lines, err := converter.Convert(target, doc.Lines)
		if err != nil {
			return result, err
		}
		outputs = append(outputs, append(append([]string{}, banner...), lines...))
		result.Targets = append(result.Targets, types.TargetResult{
			Target:       target,
			Lines:        len(banner) + len(lines),
			Destinations: plan.Destinations(target),
		})
	}

	// Every destination is checked before the first one is replaced.
	for _, tr := range result.Targets {
		for _, dest := range tr.Destinations {
			if err := w.Check(dest); err != nil {
				return result, err
			}
		}
	}

	if opts.DryRun {
		for _, tr := range result.Targets {
			logger := logging.WithFields(map[string]interface{}{
				"target":       tr.Target,
				"destinations": tr.Destinations,
				"lines":        tr.Lines,
			})
			logger.Info().Msg("Dry run, not writing")
		}
		return result, nil
	}

	for i := range result.Targets {
		tr := &result.Targets[i]
		writes, err := w.Write(outputs[i], tr.Destinations)
		tr.Writes = writes
		if err != nil {
			return result, err
		}
	}

	log.Info().
		Str("command", "ConvertDemo").
		Int("filesWritten", len(result.FilesWritten())).
		Msg("Command finished")
	return result, nil
}

// ordered returns the requested targets in write order, without duplicates.
func ordered(requested []types.Target) ([]types.Target, error) {
	want := make(map[types.Target]bool, len(requested))
	for _, t := range requested {
		parsed, err := types.ParseTarget(string(t))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid target")
		}
		want[parsed] = true
	}
	var out []types.Target
	for _, t := range types.AllTargets() {
		if want[t] {
			out = append(out, t)
		}
	}
	return out, nil
}
