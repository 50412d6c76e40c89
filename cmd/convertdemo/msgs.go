package convertdemo

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Regenerate the viewer's screen template and popup page from Demo.html"
	MsgPopupShort      = "Regenerate popup.html only"
	MsgTemplateShort   = "Regenerate XImgView.vm only"
	MsgPlanShort       = "Show the source and destination paths"
	MsgGenConfigShort  = "Print or write the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun       = "Convert and check destinations without writing them"
	MsgFlagConfig       = "Config file (default $XDG_CONFIG_HOME/convertdemo/config.toml)"
	MsgFlagNoBackup     = "Replace destinations without keeping a .BKP copy"
	MsgFlagAllowMissing = "Create destinations that do not exist yet"
	MsgFlagFormat       = "Output format: auto, term, text, json or yaml"
	MsgFlagWrite        = "Write the config to the user config path instead of stdout"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrConvert    = "failed to convert demo page: %w"
	MsgErrPlan       = "failed to resolve paths: %w"
	MsgErrGenConfig  = "failed to generate config: %w"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
