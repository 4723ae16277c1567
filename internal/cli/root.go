// Package cli wires the dotlink commands together.
package cli

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dotlink/internal/version"
	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flag values.
type globalOptions struct {
	verbosity int
	dryRun    bool
	home      string
	repo      string
	format    string
}

// runSettings is the merged configuration for one install or uninstall.
type runSettings struct {
	cfg    *config.Config
	format ui.Format
}

// Execute runs dotlink with args and returns the process exit status. The
// error of a failed command is rendered to stderr in the selected format.
func Execute(args []string, stdout, stderr io.Writer) int {
	rootCmd, opts := newRootCmd()
	if args == nil {
		// nil would make cobra read os.Args
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	log.Debug().Err(err).Msg("Command failed")
	if rerr := renderError(opts, stderr, err); rerr != nil {
		fmt.Fprintf(stderr, MsgErrFallback, err)
	}
	return 1
}

// renderError uses the format the run settled on. A format that does not
// parse falls back to auto detection.
func renderError(opts *globalOptions, w io.Writer, err error) error {
	format, perr := ui.ParseFormat(opts.format)
	if perr != nil {
		format = ui.FormatAuto
	}
	renderer, rerr := ui.NewRenderer(format, w)
	if rerr != nil {
		return rerr
	}
	return renderer.RenderError(err)
}

func newRootCmd() (*cobra.Command, *globalOptions) {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "dotlink",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	flags.StringVar(&opts.home, "home", "", MsgFlagHome)
	flags.StringVar(&opts.repo, "repo", "", MsgFlagRepo)
	flags.StringVar(&opts.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "Misc:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(newInstallCmd(opts))
	rootCmd.AddCommand(newUninstallCmd(opts))
	rootCmd.AddCommand(newMappingCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd, opts
}

// resolve merges configuration sources: flags the user set beat DOTLINK_*
// variables, which beat the embedded defaults. An unset repository falls
// back to repository discovery. The merged format is written back to o so a
// later error is rendered the same way.
func (o *globalOptions) resolve(cmd *cobra.Command) (*runSettings, error) {
	logger := logging.GetLogger("cli")

	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, MsgErrLoadConfig)
	}

	flags := cmd.Flags()
	if flags.Changed("home") {
		cfg.Home = o.home
	}
	if flags.Changed("repo") {
		cfg.Repo = o.repo
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = o.dryRun
	}
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	o.format = cfg.Format

	if cfg.Repo == "" {
		root, usedFallback, err := paths.FindRepoRoot()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigInvalid, MsgErrFindRepo)
		}
		if usedFallback {
			fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning, root)
		}
		cfg.Repo = root
	}

	format, err := ui.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("repo", cfg.Repo).
		Str("home", cfg.Home).
		Bool("dryRun", cfg.DryRun).
		Str("format", format.String()).
		Msg("Configuration resolved")

	return &runSettings{cfg: cfg, format: format}, nil
}
