package reconcile

import (
	"io/fs"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// link brings one target in line with its source.
func (r *Reconciler) link(spec types.LinkSpec) (types.Outcome, error) {
	logger := r.logger.With().Str("source", spec.Source).Str("target", spec.Target).Logger()

	if _, err := r.fs.Stat(spec.Source); err != nil {
		if isNotExist(err) {
			logger.Info().Msg("Source file not found, skipping")
			return r.outcome(spec, types.StatusSourceMissing), nil
		}
		return types.Outcome{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", spec.Source)
	}

	info, err := r.fs.Lstat(spec.Target)
	switch {
	case err == nil:
		if info.Mode()&fs.ModeSymlink != 0 && r.resolvesTo(spec.Target, spec.Source) {
			logger.Debug().Msg("Already linked")
			return r.outcome(spec, types.StatusAlreadyLinked), nil
		}

		backup := paths.BackupPath(spec.Target)
		if err := r.moveAside(spec.Target, backup); err != nil {
			return types.Outcome{}, err
		}
		if err := r.createLink(spec); err != nil {
			return types.Outcome{}, err
		}
		outcome := r.outcome(spec, types.StatusBackedUpAndLinked)
		outcome.Backup = backup
		return outcome, nil

	case isNotExist(err):
		if err := r.createLink(spec); err != nil {
			return types.Outcome{}, err
		}
		return r.outcome(spec, types.StatusLinked), nil

	default:
		return types.Outcome{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", spec.Target)
	}
}

// resolvesTo compares fully resolved paths. A dangling link never matches.
func (r *Reconciler) resolvesTo(link, source string) bool {
	linkResolved, err := r.fs.EvalSymlinks(link)
	if err != nil {
		r.logger.Debug().Err(err).Str("target", link).Msg("Existing link does not resolve")
		return false
	}
	sourceResolved, err := r.fs.EvalSymlinks(source)
	if err != nil {
		return false
	}
	return linkResolved == sourceResolved
}

// moveAside renames target to backup, deleting any previous backup first.
// The previous backup cannot be recovered.
func (r *Reconciler) moveAside(target, backup string) error {
	logger := r.logger.With().Str("target", target).Str("backup", backup).Logger()

	if r.dryRun {
		logger.Info().Msg("Would back up existing target")
		return nil
	}

	if _, err := r.fs.Lstat(backup); err == nil {
		logger.Warn().Msg("Discarding previous backup")
		if err := r.fs.Remove(backup); err != nil {
			return errors.Wrapf(err, errors.ErrBackup, "cannot remove previous backup %s", backup).
				WithDetail("backup", backup)
		}
	} else if !isNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", backup)
	}

	if err := r.fs.Rename(target, backup); err != nil {
		return errors.Wrapf(err, errors.ErrBackup, "cannot move %s to %s", target, backup).
			WithDetail("target", target).
			WithDetail("backup", backup)
	}

	logger.Info().Msg("Backed up existing target")
	return nil
}

func (r *Reconciler) createLink(spec types.LinkSpec) error {
	logger := r.logger.With().Str("source", spec.Source).Str("target", spec.Target).Logger()

	if r.dryRun {
		logger.Info().Msg("Would create symlink")
		return nil
	}

	if err := r.fs.Symlink(spec.Source, spec.Target); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s", spec.Target).
			WithDetail("source", spec.Source).
			WithDetail("target", spec.Target)
	}

	logger.Info().Msg("Created symlink")
	return nil
}

// unlink removes target if, and only if, it is a symlink.
func (r *Reconciler) unlink(spec types.LinkSpec) (types.Outcome, error) {
	logger := r.logger.With().Str("target", spec.Target).Logger()

	info, err := r.fs.Lstat(spec.Target)
	if err != nil {
		if isNotExist(err) {
			logger.Debug().Msg("Target not found, skipping")
			return r.outcome(spec, types.StatusNotFoundSkipped), nil
		}
		return types.Outcome{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", spec.Target)
	}

	if info.Mode()&fs.ModeSymlink == 0 {
		logger.Info().Msg("Target is not a symlink, leaving it in place")
		return r.outcome(spec, types.StatusNotSymlinkSkipped), nil
	}

	if r.dryRun {
		logger.Info().Msg("Would remove symlink")
	} else {
		if err := r.fs.Remove(spec.Target); err != nil {
			return types.Outcome{}, errors.Wrapf(err, errors.ErrSymlinkRemove, "cannot remove %s", spec.Target).
				WithDetail("target", spec.Target)
		}
		logger.Info().Msg("Removed symlink")
	}

	return r.outcome(spec, types.StatusRemoved), nil
}
