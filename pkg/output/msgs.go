package output

const (
	MsgInstalling          = "Installing dotfiles..."
	MsgUninstalling        = "Uninstalling dotfiles..."
	MsgRepository          = "Repository: %s"
	MsgHome                = "Home: %s"
	MsgDryRun              = "DRY RUN MODE - No changes will be made"
	MsgInstallCategory     = "Installing %s dotfiles:"
	MsgUninstallCategory   = "Removing %s dotfiles:"
	MsgSkipCategory        = "Skipping %s: directory not found"
	MsgAlreadyLinked       = "%s: already linked"
	MsgLinking             = "%s: linking"
	MsgBackingUp           = "%s: exists, backing up to %s"
	MsgSourceMissing       = "%s: source file not found"
	MsgRemoving            = "%s: removing symlink"
	MsgNotSymlink          = "%s: exists but is not a symlink (skipping)"
	MsgNotFound            = "%s: not found (skipping)"
	MsgInstallComplete     = "Installation complete!"
	MsgUninstallComplete   = "Uninstallation complete!"
	MsgInstallDryRunDone   = "Dry run complete, nothing was installed."
	MsgUninstallDryRunDone = "Dry run complete, nothing was removed."
	MsgInstallAborted      = "Installation aborted, some files were not processed."
	MsgUninstallAborted    = "Uninstallation aborted, some files were not processed."
	MsgError               = "Error: %v"
)

const (
	markerOK      = "✓"
	markerWarning = "⚠"
	markerAction  = "→"
)
