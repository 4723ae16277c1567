package types

// Action names the two things a run can do.
type Action string

const (
	ActionInstall   Action = "install"
	ActionUninstall Action = "uninstall"
)

// Status is the result of reconciling one managed file.
type Status string

const (
	StatusAlreadyLinked     Status = "already-linked"
	StatusLinked            Status = "linked"
	StatusBackedUpAndLinked Status = "backed-up-and-linked"
	StatusSourceMissing     Status = "source-missing"
	StatusCategoryMissing   Status = "category-missing"
	StatusRemoved           Status = "removed"
	StatusNotSymlinkSkipped Status = "not-a-symlink-skipped"
	StatusNotFoundSkipped   Status = "not-found-skipped"
)

// Kind groups statuses by how they are presented.
type Kind string

const (
	KindOK      Kind = "ok"
	KindWarning Kind = "warning"
	KindAction  Kind = "action"
)

// Kind reports whether the status is a no-op, a skip or a change.
func (s Status) Kind() Kind {
	switch s {
	case StatusAlreadyLinked:
		return KindOK
	case StatusLinked, StatusBackedUpAndLinked, StatusRemoved:
		return KindAction
	default:
		return KindWarning
	}
}

// Mutates reports whether a real run with this status changed the filesystem.
func (s Status) Mutates() bool {
	return s.Kind() == KindAction
}

// LinkSpec is the source/target pair derived for one filename.
type LinkSpec struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Source   string `json:"source"`
	Target   string `json:"target"`
}

// Outcome is what happened (or, on a dry run, would happen) to one file.
type Outcome struct {
	LinkSpec
	Status Status `json:"status"`
	// Backup is set when the previous target was, or would be, moved aside.
	Backup string `json:"backup,omitempty"`
	DryRun bool   `json:"dry_run"`
}
