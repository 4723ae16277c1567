package cli

import (
	"fmt"

	"github.com/arthur-debert/dotlink/internal/version"
	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/reconcile"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/arthur-debert/dotlink/pkg/ui"
	"github.com/spf13/cobra"
)

func newInstallCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, opts, types.ActionInstall)
		},
	}
}

func newUninstallCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "uninstall",
		Short:   MsgUninstallShort,
		Long:    MsgUninstallLong,
		Example: MsgUninstallExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, opts, types.ActionUninstall)
		},
	}
}

// runAction reconciles the home directory and renders whatever outcomes were
// produced, including those gathered before a fatal error.
func runAction(cmd *cobra.Command, opts *globalOptions, action types.Action) error {
	logger := logging.GetLogger("cli." + string(action))

	settings, err := opts.resolve(cmd)
	if err != nil {
		return err
	}
	cfg := settings.cfg

	r, err := reconcile.New(reconcile.Options{
		RepoRoot: cfg.Repo,
		HomeRoot: cfg.Home,
		DryRun:   cfg.DryRun,
		Mapping:  &cfg.Mapping,
	})
	if err != nil {
		return err
	}

	var result *types.Result
	var runErr error
	if action == types.ActionInstall {
		result, runErr = r.Install()
	} else {
		result, runErr = r.Uninstall()
	}

	renderer, err := ui.NewRenderer(settings.format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if result != nil && (runErr == nil || len(result.Outcomes) > 0) {
		if err := renderer.RenderResult(result); err != nil {
			return errors.Wrap(err, errors.ErrInternal, MsgErrRender)
		}
	}
	if runErr != nil {
		return runErr
	}

	summary := result.Summary()
	logger.Info().
		Int("files", summary.Total).
		Int("changed", summary.Changed()).
		Bool("dryRun", result.DryRun).
		Msg("Run finished")
	return nil
}

func newMappingCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "mapping",
		Short:   MsgMappingShort,
		Long:    MsgMappingLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := config.DefaultMapping().MarshalTOML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
