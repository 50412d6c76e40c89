package paths

import (
	"path/filepath"
	"strings"

	"github.com/xnat/convertdemo/pkg/config"
	"github.com/xnat/convertdemo/pkg/errors"
	"github.com/xnat/convertdemo/pkg/types"
)

// Plan holds every resolved path for one run.
type Plan struct {
	Source          string
	TemplateTargets []string
	PopupTargets    []string
}

// Resolve builds a Plan from cfg. A root that is referenced but not set is a
// CONFIG_INVALID error naming its environment variable.
func Resolve(cfg *config.Config) (*Plan, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrInternal, "nil configuration")
	}

	source, err := locate(cfg, cfg.Layout.Source)
	if err != nil {
		return nil, err
	}

	templates, err := locateAll(cfg, cfg.Layout.TemplateTargets)
	if err != nil {
		return nil, err
	}

	popups, err := locateAll(cfg, cfg.Layout.PopupTargets)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Source:          source,
		TemplateTargets: templates,
		PopupTargets:    popups,
	}, nil
}

// Destinations returns the destination list for a target.
func (p *Plan) Destinations(target types.Target) []string {
	switch target {
	case types.TargetTemplate:
		return p.TemplateTargets
	case types.TargetPopup:
		return p.PopupTargets
	}
	return nil
}

// ToResult converts the plan for display.
func (p *Plan) ToResult() *types.PlanResult {
	return &types.PlanResult{
		Source:          p.Source,
		TemplateTargets: append([]string{}, p.TemplateTargets...),
		PopupTargets:    append([]string{}, p.PopupTargets...),
	}
}

func locate(cfg *config.Config, loc config.Location) (string, error) {
	root, err := cfg.RootDir(loc.Root)
	if err != nil {
		return "", err
	}
	rel := filepath.FromSlash(loc.Path)
	if filepath.IsAbs(rel) {
		return "", errors.Newf(errors.ErrConfigValid, "layout path %q must be relative to %s", loc.Path, loc.Root).
			WithDetail("path", loc.Path)
	}
	return filepath.Join(root, rel), nil
}

func locateAll(cfg *config.Config, locs []config.Location) ([]string, error) {
	out := make([]string, 0, len(locs))
	for _, loc := range locs {
		p, err := locate(cfg, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// BackupPath returns where the previous version of target is kept.
func BackupPath(target, suffix string) string {
	base := filepath.Base(target)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	return filepath.Join(filepath.Dir(target), base+suffix)
}
