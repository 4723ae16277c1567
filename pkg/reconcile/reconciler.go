package reconcile

import (
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures a Reconciler.
type Options struct {
	// RepoRoot is the dotfiles repository. Required.
	RepoRoot string
	// HomeRoot receives the links. Defaults to the user's home directory.
	HomeRoot string
	DryRun   bool
	// Mapping defaults to config.DefaultMapping().
	Mapping *config.Mapping
	// FS defaults to the OS filesystem.
	FS types.FS
}

// Reconciler installs and uninstalls the links described by its mapping.
type Reconciler struct {
	repoRoot string
	homeRoot string
	dryRun   bool
	mapping  config.Mapping
	fs       types.FS
	logger   zerolog.Logger
}

// New resolves both roots to canonical form and returns a Reconciler.
// Unresolvable roots are reported as ErrConfigInvalid.
func New(opts Options) (*Reconciler, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	if opts.RepoRoot == "" {
		return nil, errors.New(errors.ErrConfigInvalid, "repository root is required")
	}
	repoRoot, err := paths.Canonicalize(fsys, opts.RepoRoot)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "invalid repository root")
	}

	home := opts.HomeRoot
	if home == "" {
		home, err = paths.GetHomeDirectory()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigInvalid, "cannot determine home directory")
		}
	}
	homeRoot, err := paths.Canonicalize(fsys, home)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "invalid home root")
	}

	mapping := config.DefaultMapping()
	if opts.Mapping != nil {
		mapping = *opts.Mapping
	}

	r := &Reconciler{
		repoRoot: repoRoot,
		homeRoot: homeRoot,
		dryRun:   opts.DryRun,
		mapping:  mapping,
		fs:       fsys,
		logger:   logging.GetLogger("reconcile"),
	}

	r.logger.Debug().
		Str("repo", repoRoot).
		Str("home", homeRoot).
		Bool("dryRun", opts.DryRun).
		Int("files", mapping.Len()).
		Msg("Reconciler ready")

	return r, nil
}

// RepoRoot returns the canonical repository root.
func (r *Reconciler) RepoRoot() string { return r.repoRoot }

// HomeRoot returns the canonical home root.
func (r *Reconciler) HomeRoot() string { return r.homeRoot }

// DryRun reports whether mutations are suppressed.
func (r *Reconciler) DryRun() bool { return r.dryRun }

// Install links every mapped file. On a fatal error the outcomes gathered
// so far are returned along with it and the result is marked aborted.
func (r *Reconciler) Install() (*types.Result, error) {
	done := logging.LogOperationStart(r.logger, "install")
	defer done()

	result := r.newResult(types.ActionInstall)

	for _, category := range r.mapping.Categories() {
		present, err := r.categoryPresent(category.Name)
		if err != nil {
			return r.abort(result, err)
		}

		if !present {
			r.logger.Info().Str("category", category.Name).Msg("Category directory not found, skipping")
			for _, name := range category.Files {
				result.Add(r.outcome(r.spec(category.Name, name), types.StatusCategoryMissing))
			}
			continue
		}

		for _, name := range category.Files {
			outcome, err := r.link(r.spec(category.Name, name))
			if err != nil {
				return r.abort(result, err)
			}
			result.Add(outcome)
		}
	}

	return result, nil
}

// Uninstall removes every mapped target that is a symlink.
func (r *Reconciler) Uninstall() (*types.Result, error) {
	done := logging.LogOperationStart(r.logger, "uninstall")
	defer done()

	result := r.newResult(types.ActionUninstall)

	for _, category := range r.mapping.Categories() {
		for _, name := range category.Files {
			outcome, err := r.unlink(r.spec(category.Name, name))
			if err != nil {
				return r.abort(result, err)
			}
			result.Add(outcome)
		}
	}

	return result, nil
}

func (r *Reconciler) abort(result *types.Result, err error) (*types.Result, error) {
	result.Aborted = true
	r.logger.Error().Err(err).Int("processed", len(result.Outcomes)).Msg("Run aborted")
	return result, err
}

func (r *Reconciler) newResult(action types.Action) *types.Result {
	return &types.Result{
		Action:   action,
		RepoRoot: r.repoRoot,
		HomeRoot: r.homeRoot,
		DryRun:   r.dryRun,
	}
}

func (r *Reconciler) spec(category, name string) types.LinkSpec {
	return types.LinkSpec{
		Category: category,
		Name:     name,
		Source:   paths.SourcePath(r.repoRoot, category, name),
		Target:   paths.TargetPath(r.homeRoot, name),
	}
}

func (r *Reconciler) outcome(spec types.LinkSpec, status types.Status) types.Outcome {
	return types.Outcome{LinkSpec: spec, Status: status, DryRun: r.dryRun}
}

// categoryPresent reports whether repo/category is an existing directory.
func (r *Reconciler) categoryPresent(category string) (bool, error) {
	dir := paths.CategoryDir(r.repoRoot, category)
	info, err := r.fs.Stat(dir)
	if err != nil {
		if isNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", dir)
	}
	return info.IsDir(), nil
}

func isNotExist(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist)
}
