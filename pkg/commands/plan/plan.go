package plan

import (
	"github.com/xnat/convertdemo/pkg/config"
	"github.com/xnat/convertdemo/pkg/errors"
	"github.com/xnat/convertdemo/pkg/logging"
	"github.com/xnat/convertdemo/pkg/paths"
	"github.com/xnat/convertdemo/pkg/types"
)

// ShowPlanOptions holds options for the plan command
type ShowPlanOptions struct {
	Config *config.Config
}

// ShowPlan resolves the source and every destination without reading or
// writing any of them.
func ShowPlan(opts ShowPlanOptions) (*types.PlanResult, error) {
	logger := logging.GetLogger("commands.plan")

	if opts.Config == nil {
		return nil, errors.New(errors.ErrInternal, "ShowPlan requires a configuration")
	}

	p, err := paths.Resolve(opts.Config)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("source", p.Source).
		Int("templateTargets", len(p.TemplateTargets)).
		Int("popupTargets", len(p.PopupTargets)).
		Msg("Resolved plan")
	return p.ToResult(), nil
}
