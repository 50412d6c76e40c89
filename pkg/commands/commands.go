// Package commands provides high-level command implementations for convertdemo.
//
// This package contains the command orchestration layer that coordinates
// between the CLI interface and the conversion packages.
//
// Each command is implemented in its own subdirectory:
//   - convert/   - ConvertDemo command (the default action)
//   - plan/      - ShowPlan command
//   - genconfig/ - GenConfig command
//
// This file re-exports the command functions so the CLI has a single import.
package commands

import (
	"github.com/xnat/convertdemo/pkg/commands/convert"
	"github.com/xnat/convertdemo/pkg/commands/genconfig"
	"github.com/xnat/convertdemo/pkg/commands/plan"
	"github.com/xnat/convertdemo/pkg/types"
)

// ConvertDemo regenerates the template and popup files from Demo.html.
type ConvertDemoOptions = convert.ConvertDemoOptions

func ConvertDemo(opts ConvertDemoOptions) (*types.ConvertResult, error) {
	return convert.ConvertDemo(opts)
}

// ShowPlan resolves source and destination paths without touching them.
type ShowPlanOptions = plan.ShowPlanOptions

func ShowPlan(opts ShowPlanOptions) (*types.PlanResult, error) {
	return plan.ShowPlan(opts)
}

// GenConfig outputs or writes the effective configuration.
type GenConfigOptions = genconfig.GenConfigOptions

func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}
