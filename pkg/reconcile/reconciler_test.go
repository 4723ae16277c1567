package reconcile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/reconcile"
	"github.com/arthur-debert/dotlink/pkg/testutil"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullRepo = map[string]string{
	"bash/.bashrc":          "# bashrc",
	"bash/.bash_profile":    "# bash_profile",
	"git/.gitconfig":        "[user]\n\tname = me",
	"git/.gitignore_global": "*.swp",
	"vim/.vimrc":            "set nocompatible",
}

var allNames = []string{".bashrc", ".bash_profile", ".gitconfig", ".gitignore_global", ".vimrc"}

func newReconciler(t *testing.T, repo, home string, dryRun bool) *reconcile.Reconciler {
	t.Helper()

	r, err := reconcile.New(reconcile.Options{RepoRoot: repo, HomeRoot: home, DryRun: dryRun})
	require.NoError(t, err)
	return r
}

func statuses(result *types.Result) map[string]types.Status {
	out := make(map[string]types.Status)
	for _, o := range result.Outcomes {
		out[o.Name] = o.Status
	}
	return out
}

func names(result *types.Result) []string {
	var out []string
	for _, o := range result.Outcomes {
		out = append(out, o.Name)
	}
	return out
}

func TestNew_ResolvesRoots(t *testing.T) {
	repo := testutil.NewRepo(t, fullRepo)
	home := testutil.TempDir(t)

	alias := filepath.Join(testutil.TempDir(t), "dotfiles")
	testutil.CreateSymlink(t, repo, alias)

	r := newReconciler(t, alias, home+"/./", true)
	assert.Equal(t, repo, r.RepoRoot())
	assert.Equal(t, home, r.HomeRoot())
	assert.True(t, r.DryRun())
}

func TestNew_DefaultsHomeToUserHome(t *testing.T) {
	home := testutil.TempDir(t)
	t.Setenv("HOME", home)

	r, err := reconcile.New(reconcile.Options{RepoRoot: testutil.NewRepo(t, fullRepo)})
	require.NoError(t, err)
	assert.Equal(t, home, r.HomeRoot())
}

func TestNew_ConfigurationErrors(t *testing.T) {
	repo := testutil.NewRepo(t, fullRepo)
	home := testutil.TempDir(t)
	file := testutil.CreateFile(t, home, "plain", "x")

	tests := []struct {
		name string
		opts reconcile.Options
	}{
		{"missing_repo_path", reconcile.Options{HomeRoot: home}},
		{"repo_does_not_exist", reconcile.Options{RepoRoot: filepath.Join(repo, "nope"), HomeRoot: home}},
		{"home_does_not_exist", reconcile.Options{RepoRoot: repo, HomeRoot: filepath.Join(home, "nope")}},
		{"home_is_a_file", reconcile.Options{RepoRoot: repo, HomeRoot: file}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := reconcile.New(tt.opts)
			require.Error(t, err)
			assert.Nil(t, r)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid), "got %v", err)
		})
	}
}

func TestInstall_FreshHome(t *testing.T) {
	repo := testutil.NewRepo(t, fullRepo)
	home := testutil.TempDir(t)

	result, err := newReconciler(t, repo, home, false).Install()
	require.NoError(t, err)

	assert.Equal(t, types.ActionInstall, result.Action)
	assert.Equal(t, allNames, names(result))
	for _, o := range result.Outcomes {
		assert.Equal(t, types.StatusLinked, o.Status, o.Name)
		assert.Empty(t, o.Backup)
		assert.False(t, o.DryRun)
	}

	for rel := range fullRepo {
		source := filepath.Join(repo, rel)
		target := filepath.Join(home, filepath.Base(rel))
		testutil.AssertLinkedTo(t, target, source)

		// the link holds the literal source path
		raw, err := os.Readlink(target)
		require.NoError(t, err)
		assert.Equal(t, source, raw)
	}
}

func TestInstall_GitconfigScenario(t *testing.T) {
	repo := testutil.NewRepo(t, map[string]string{"git/.gitconfig": "[core]"})
	home := testutil.TempDir(t)

	result, err := newReconciler(t, repo, home, false).Install()
	require.NoError(t, err)

	got := statuses(result)
	assert.Equal(t, types.StatusLinked, got[".gitconfig"])
	assert.Equal(t, types.StatusSourceMissing, got[".gitignore_global"])
	assert.Equal(t, types.StatusCategoryMissing, got[".bashrc"])
	assert.Equal(t, types.StatusCategoryMissing, got[".vimrc"])
	testutil.AssertLinkedTo(t, filepath.Join(home, ".gitconfig"), filepath.Join(repo, "git", ".gitconfig"))
	testutil.AssertNoEntry(t, filepath.Join(home, ".gitignore_global"))
}

func TestInstall_IsIdempotent(t *testing.T) {
	repo := testutil.NewRepo(t, fullRepo)
	home := testutil.TempDir(t)
	r := newReconciler(t, repo, home, false)

	_, err := r.Install()
	require.NoError(t, err)
	before := testutil.Snapshot(t, home)

	second, err := r.Install()
	require.NoError(t, err)

	for _, o := range second.Outcomes {
		assert.Equal(t, types.StatusAlreadyLinked, o.Status, o.Name)
	}
	assert.Equal(t, 0, second.Summary().Changed())
	assert.Equal(t, before, testutil.Snapshot(t, home))
}

func TestInstall_BacksUpConflictingFile(t *testing.T) {
	repo := testutil.NewRepo(t, fullRepo)
	home := testutil.TempDir(t)
	testutil.CreateFile(t, home, ".vimrc", "old")

	result, err := newReconciler(t, repo, home, false).Install()
	require.NoError(t, err)

	vimrc := result.ForCategory("vim")[0]
	assert.Equal(t, types.StatusBackedUpAndLinked, vimrc.Status)
	assert.Equal(t, filepath.Join(home, ".vimrc.backup"), vimrc.Backup)

	testutil.AssertLinkedTo(t, filepath.Join(home, ".vimrc"), filepath.Join(repo, "vim", ".vimrc"))
	testutil.AssertFileContent(t, filepath.Join(home, ".vimrc.backup"), "old")
}

func TestInstall_OverwritesExistingBackup(t *testing.T) {
	repo := testutil.NewRepo(t, fullRepo)
	home := testutil.TempDir(t)
	testutil.CreateFile(t, home, ".vimrc", "current")
	testutil.CreateFile(t, home, ".vimrc.backup", "older")

	result, err := newReconciler(t, repo, home, false).Install()
	require.NoError(t, err)

	assert.Equal(t, types.StatusBackedUpAndLinked, statuses(result)[".vimrc"])
	testutil.AssertFileContent(t, filepath.Join(home, ".vimrc.backup"), "current")
}

func TestInstall_ReplacesForeignAndDanglingLinks(t *testing.T) {
	repo := testutil.NewRepo(t, fullRepo)
	home := testutil.TempDir(t)
	elsewhere := testutil.CreateFile(t, testutil.TempDir(t), "gitconfig", "other")

	testutil.CreateSymlink(t, elsewhere, filepath.Join(home, ".gitconfig"))
	testutil.CreateSymlink(t, filepath.Join(home, "gone"), filepath.Join(home, ".bashrc"))

	result, err := newReconciler(t, repo, home, false).Install()
	require.NoError(t, err)

	got := statuses(result)
	assert.Equal(t, types.StatusBackedUpAndLinked, got[".gitconfig"])
	assert.Equal(t, types.StatusBackedUpAndLinked, got[".bashrc"])

	// the old links themselves were moved aside
	assert.Equal(t, elsewhere, linkTarget(t, filepath.Join(home, ".gitconfig.backup")))
	assert.Equal(t, filepath.Join(home, "gone"), linkTarget(t, filepath.Join(home, ".bashrc.backup")))

	testutil.AssertLinkedTo(t, filepath.Join(home, ".gitconfig"), filepath.Join(repo, "git", ".gitconfig"))
	testutil.AssertLinkedTo(t, filepath.Join(home, ".bashrc"), filepath.Join(repo, "bash", ".bashrc"))
}

func linkTarget(t *testing.T, link string) string {
	t.Helper()
	target, err := os.Readlink(link)
	require.NoError(t, err)
	return target
}

func TestInstall_RecognisesEquivalentLinks(t *testing.T) {
	repo := testutil.NewRepo(t, fullRepo)
	home := testutil.TempDir(t)

	// relative target with ".." segments
	rel, err := filepath.Rel(home, filepath.Join(repo, "vim", ".vimrc"))
	require.NoError(t, err)
	testutil.CreateSymlink(t, rel, filepath.Join(home, ".vimrc"))

	// target through a symlinked alias of the repository
	alias := filepath.Join(testutil.TempDir(t), "alias")
	testutil.CreateSymlink(t, repo, alias)
	testutil.CreateSymlink(t, filepath.Join(alias, "git", ".gitconfig"), filepath.Join(home, ".gitconfig"))

	before := testutil.Snapshot(t, home)
	result, err := newReconciler(t, repo, home, false).Install()
	require.NoError(t, err)

	got := statuses(result)
	assert.Equal(t, types.StatusAlreadyLinked, got[".vimrc"])
	assert.Equal(t, types.StatusAlreadyLinked, got[".gitconfig"])
	assert.Equal(t, before[".vimrc"], testutil.Snapshot(t, home)[".vimrc"])
	testutil.AssertNoEntry(t, filepath.Join(home, ".vimrc.backup"))
}

func TestInstall_MissingCategoryIsNotFatal(t *testing.T) {
	files := map[string]string{}
	for k, v := range fullRepo {
		if filepath.Dir(k) != "bash" {
			files[k] = v
		}
	}
	repo := testutil.NewRepo(t, files)
	home := testutil.TempDir(t)

	result, err := newReconciler(t, repo, home, false).Install()
	require.NoError(t, err)

	bash := result.ForCategory("bash")
	require.Len(t, bash, 2)
	assert.Equal(t, ".bashrc", bash[0].Name)
	assert.Equal(t, ".bash_profile", bash[1].Name)
	for _, o := range bash {
		assert.Equal(t, types.StatusCategoryMissing, o.Status)
	}

	// later categories still processed
	assert.Equal(t, types.StatusLinked, statuses(result)[".vimrc"])
	testutil.AssertNoEntry(t, filepath.Join(home, ".bashrc"))
}

func TestInstall_CategoryThatIsAFile(t *testing.T) {
	repo := testutil.NewRepo(t, map[string]string{"vim/.vimrc": "x"})
	testutil.CreateFile(t, repo, "git", "not a directory")

	result, err := newReconciler(t, repo, testutil.TempDir(t), false).Install()
	require.NoError(t, err)
	assert.Equal(t, types.StatusCategoryMissing, statuses(result)[".gitconfig"])
}

func TestInstall_CustomMappingOrder(t *testing.T) {
	repo := testutil.NewRepo(t, map[string]string{
		"zsh/.zshrc":      "z",
		"tmux/.tmux.conf": "t",
	})
	home := testutil.TempDir(t)
	mapping, err := config.NewMapping(
		config.Category{Name: "tmux", Files: []string{".tmux.conf"}},
		config.Category{Name: "zsh", Files: []string{".zshrc", ".zshenv"}},
	)
	require.NoError(t, err)

	r, err := reconcile.New(reconcile.Options{RepoRoot: repo, HomeRoot: home, Mapping: &mapping})
	require.NoError(t, err)

	result, err := r.Install()
	require.NoError(t, err)
	assert.Equal(t, []string{".tmux.conf", ".zshrc", ".zshenv"}, names(result))
	assert.Equal(t, types.StatusSourceMissing, statuses(result)[".zshenv"])
}

func TestInstall_FatalFilesystemError(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	repo := testutil.NewRepo(t, fullRepo)
	home := testutil.TempDir(t)
	require.NoError(t, os.Chmod(home, 0555))
	t.Cleanup(func() { _ = os.Chmod(home, 0755) })

	result, err := newReconciler(t, repo, home, false).Install()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkCreate), "got %v", err)

	// the run stopped at the first file
	assert.Empty(t, result.Outcomes)
	assert.True(t, result.Aborted)
}

func TestInstall_UnremovableBackupAbortsRun(t *testing.T) {
	repo := testutil.NewRepo(t, fullRepo)
	home := testutil.TempDir(t)
	testutil.CreateFile(t, home, ".vimrc", "current")
	testutil.CreateFile(t, home, ".vimrc.backup/keep", "do not lose")

	result, err := newReconciler(t, repo, home, false).Install()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBackup), "got %v", err)

	assert.True(t, result.Aborted)
	assert.NotContains(t, names(result), ".vimrc")
	assert.Equal(t, types.StatusLinked, statuses(result)[".gitconfig"])

	testutil.AssertFileContent(t, filepath.Join(home, ".vimrc"), "current")
	testutil.AssertFileContent(t, filepath.Join(home, ".vimrc.backup", "keep"), "do not lose")
}

func TestInstall_CompletedRunIsNotAborted(t *testing.T) {
	repo := testutil.NewRepo(t, fullRepo)
	home := testutil.TempDir(t)

	result, err := newReconciler(t, repo, home, false).Install()
	require.NoError(t, err)
	assert.False(t, result.Aborted)
}

func TestUninstall_RemovesOnlySymlinks(t *testing.T) {
	repo := testutil.NewRepo(t, fullRepo)
	home := testutil.TempDir(t)
	r := newReconciler(t, repo, home, false)

	_, err := r.Install()
	require.NoError(t, err)

	// replace one managed link with user data and drop another
	require.NoError(t, os.Remove(filepath.Join(home, ".vimrc")))
	testutil.CreateFile(t, home, ".vimrc", "mine")
	require.NoError(t, os.Remove(filepath.Join(home, ".bash_profile")))

	result, err := r.Uninstall()
	require.NoError(t, err)

	got := statuses(result)
	assert.Equal(t, types.StatusRemoved, got[".bashrc"])
	assert.Equal(t, types.StatusNotFoundSkipped, got[".bash_profile"])
	assert.Equal(t, types.StatusRemoved, got[".gitconfig"])
	assert.Equal(t, types.StatusRemoved, got[".gitignore_global"])
	assert.Equal(t, types.StatusNotSymlinkSkipped, got[".vimrc"])

	testutil.AssertFileContent(t, filepath.Join(home, ".vimrc"), "mine")
	testutil.AssertNoEntry(t, filepath.Join(home, ".bashrc"))
	assert.FileExists(t, filepath.Join(repo, "bash", ".bashrc"))
}

func TestUninstall_NeverTouchesDirectoriesOrBackups(t *testing.T) {
	repo := testutil.NewRepo(t, fullRepo)
	home := testutil.TempDir(t)
	testutil.CreateDir(t, home, ".gitconfig")
	testutil.CreateFile(t, home, ".vimrc", "old")

	r := newReconciler(t, repo, home, false)
	_, err := r.Install()
	require.NoError(t, err)

	result, err := r.Uninstall()
	require.NoError(t, err)
	assert.Equal(t, types.StatusRemoved, statuses(result)[".vimrc"])

	// backups stay where install put them
	testutil.AssertFileContent(t, filepath.Join(home, ".vimrc.backup"), "old")
	assert.DirExists(t, filepath.Join(home, ".gitconfig.backup"))
	testutil.AssertNoEntry(t, filepath.Join(home, ".vimrc"))
}

func TestUninstall_RemovesForeignSymlinks(t *testing.T) {
	repo := testutil.NewRepo(t, fullRepo)
	home := testutil.TempDir(t)
	testutil.CreateSymlink(t, "/somewhere/else", filepath.Join(home, ".vimrc"))

	result, err := newReconciler(t, repo, home, false).Uninstall()
	require.NoError(t, err)
	assert.Equal(t, types.StatusRemoved, statuses(result)[".vimrc"])
	testutil.AssertNoEntry(t, filepath.Join(home, ".vimrc"))
}

func TestInstallUninstall_RoundTrip(t *testing.T) {
	repo := testutil.NewRepo(t, fullRepo)
	home := testutil.TempDir(t)
	testutil.CreateFile(t, home, ".profile", "unmanaged")
	testutil.CreateDir(t, home, ".config")

	before := testutil.Snapshot(t, home)
	r := newReconciler(t, repo, home, false)

	_, err := r.Install()
	require.NoError(t, err)
	assert.NotEqual(t, before, testutil.Snapshot(t, home))

	result, err := r.Uninstall()
	require.NoError(t, err)
	assert.Equal(t, len(allNames), result.Summary().Count(types.StatusRemoved))
	assert.Equal(t, before, testutil.Snapshot(t, home))
}
