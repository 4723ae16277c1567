package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Link dotfiles from a repository into your home directory"
	MsgInstallShort    = "Link every mapped file, backing up what is in the way"
	MsgUninstallShort  = "Remove the links created by install"
	MsgMappingShort    = "Print the category to file mapping"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagHome    = "Home directory to link into (default $HOME)"
	MsgFlagRepo    = "Dotfiles repository (default $DOTFILES_ROOT, the git toplevel or the current directory)"
	MsgFlagFormat  = "Output format: auto, term, text or json"

	// Version output
	MsgVersionFormat = "dotlink version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoCommand  = "no command specified"
	MsgErrLoadConfig = "failed to load configuration"
	MsgErrFindRepo   = "failed to locate the dotfiles repository"
	MsgErrRender     = "failed to render output"
	MsgErrFallback   = "Error: %v\n"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/uninstall-long.txt
	msgUninstallLongRaw string
	MsgUninstallLong    = strings.TrimSpace(msgUninstallLongRaw)

	//go:embed msgs/uninstall-example.txt
	msgUninstallExampleRaw string
	MsgUninstallExample    = strings.TrimRight(msgUninstallExampleRaw, "\n")

	//go:embed msgs/mapping-long.txt
	msgMappingLongRaw string
	MsgMappingLong    = strings.TrimSpace(msgMappingLongRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw) + "\n\n"

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
