package convertdemo

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xnat/convertdemo/internal/version"
	"github.com/xnat/convertdemo/pkg/commands"
	"github.com/xnat/convertdemo/pkg/config"
	"github.com/xnat/convertdemo/pkg/errors"
	"github.com/xnat/convertdemo/pkg/logging"
	"github.com/xnat/convertdemo/pkg/types"
	"github.com/xnat/convertdemo/pkg/ui"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	verbosity    int
	dryRun       bool
	configFile   string
	noBackup     bool
	allowMissing bool
}

// overrides turns flags into dotted config keys.
func (g *globalOptions) overrides() map[string]interface{} {
	o := map[string]interface{}{}
	if g.noBackup {
		o["output.backup"] = false
	}
	if g.allowMissing {
		o["output.require_existing"] = false
	}
	return o
}

func (g *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: g.configFile,
		Overrides:  g.overrides(),
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "convertdemo",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE:          runConvert(g, nil),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().BoolVar(&g.noBackup, "no-backup", false, MsgFlagNoBackup)
	rootCmd.PersistentFlags().BoolVar(&g.allowMissing, "allow-missing", false, MsgFlagAllowMissing)

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newTargetCmd(g, types.TargetPopup, MsgPopupShort))
	rootCmd.AddCommand(newTargetCmd(g, types.TargetTemplate, MsgTemplateShort))
	rootCmd.AddCommand(newPlanCmd(g))
	rootCmd.AddCommand(newGenConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// runConvert converts targets (all of them when empty). Only a dry run
// prints anything on success.
func runConvert(g *globalOptions, targets []types.Target) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := g.loadConfig()
		if err != nil {
			return err
		}

		log.Info().
			Str("image_viewer_home", cfg.Roots.ImageViewerHome).
			Str("catalina_home", cfg.Roots.CatalinaHome).
			Bool("dry_run", g.dryRun).
			Msg("Converting demo page")

		result, err := commands.ConvertDemo(commands.ConvertDemoOptions{
			Config:  cfg,
			Targets: targets,
			DryRun:  g.dryRun,
		})
		if err != nil {
			return fmt.Errorf(MsgErrConvert, err)
		}

		if !g.dryRun {
			return nil
		}
		return render(cmd.OutOrStdout(), ui.FormatAuto, result)
	}
}

func render(w io.Writer, format ui.Format, result interface{}) error {
	renderer, err := ui.NewRenderer(format, w)
	if err != nil {
		return err
	}
	return renderer.RenderResult(result)
}

func newTargetCmd(g *globalOptions, target types.Target, short string) *cobra.Command {
	return &cobra.Command{
		Use:     string(target),
		Short:   short,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE:    runConvert(g, []types.Target{target}),
	}
}

func newPlanCmd(g *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "plan",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ui.ParseFormat(format)
			if err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, "invalid --format")
			}

			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}

			result, err := commands.ShowPlan(commands.ShowPlanOptions{Config: cfg})
			if err != nil {
				return fmt.Errorf(MsgErrPlan, err)
			}
			return render(cmd.OutOrStdout(), f, result)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "auto", MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "term", "text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func newGenConfigCmd(g *globalOptions) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}

			result, err := commands.GenConfig(commands.GenConfigOptions{
				Config: cfg,
				Write:  write,
			})
			if err != nil {
				return fmt.Errorf(MsgErrGenConfig, err)
			}
			return render(cmd.OutOrStdout(), ui.FormatAuto, result)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "convertdemo version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
