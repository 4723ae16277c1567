package output

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/output/styles"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

// Renderer writes runs as grouped, marker-prefixed lines.
type Renderer struct {
	writer  io.Writer
	noColor bool
	styles  styles.Registry
}

// NewRenderer creates a Renderer writing to w. With noColor set, no escape
// sequences are ever written; otherwise color follows what w supports.
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	return newRenderer(w, noColor, lipgloss.NewRenderer(w))
}

func newRenderer(w io.Writer, noColor bool, lr *lipgloss.Renderer) *Renderer {
	logger := logging.GetLogger("output")
	logger.Debug().
		Bool("noColor", noColor).
		Str("colorProfile", fmt.Sprintf("%v", lr.ColorProfile())).
		Msg("Creating renderer")

	return &Renderer{
		writer:  w,
		noColor: noColor,
		styles:  styles.ForRenderer(lr),
	}
}

// RenderResult writes the header, one block per category, and the summary.
func (r *Renderer) RenderResult(result *types.Result) error {
	var b strings.Builder

	r.writeHeader(&b, result)
	for _, category := range result.Categories() {
		r.writeCategory(&b, result.Action, category, result.ForCategory(category))
	}
	r.writeFooter(&b, result)

	_, err := io.WriteString(r.writer, b.String())
	return err
}

// RenderError renders an error in the Error style
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.writer, r.style("Error", fmt.Sprintf(MsgError, err)))
	return werr
}

func (r *Renderer) writeHeader(b *strings.Builder, result *types.Result) {
	if result.Action == types.ActionInstall {
		r.line(b, r.style("Header", MsgInstalling))
		r.line(b, fmt.Sprintf(MsgRepository, result.RepoRoot))
	} else {
		r.line(b, r.style("Header", MsgUninstalling))
	}
	r.line(b, fmt.Sprintf(MsgHome, result.HomeRoot))
	r.line(b, "")

	if result.DryRun {
		r.line(b, r.style("DryRunBanner", MsgDryRun))
		r.line(b, "")
	}
}

func (r *Renderer) writeCategory(b *strings.Builder, action types.Action, category string, outcomes []types.Outcome) {
	if action == types.ActionInstall && allMissing(outcomes) {
		r.line(b, r.marker(types.KindWarning)+"  "+fmt.Sprintf(MsgSkipCategory, category))
		return
	}

	heading := MsgInstallCategory
	if action == types.ActionUninstall {
		heading = MsgUninstallCategory
	}
	r.line(b, r.style("Category", fmt.Sprintf(heading, category)))

	for _, o := range outcomes {
		r.writeOutcome(b, o)
	}
	r.line(b, "")
}

func (r *Renderer) writeOutcome(b *strings.Builder, o types.Outcome) {
	entry := func(kind types.Kind, format string, args ...interface{}) {
		r.line(b, "  "+r.marker(kind)+" "+fmt.Sprintf(format, args...))
	}

	switch o.Status {
	case types.StatusAlreadyLinked:
		entry(types.KindOK, MsgAlreadyLinked, o.Name)
	case types.StatusLinked:
		entry(types.KindAction, MsgLinking, o.Name)
	case types.StatusBackedUpAndLinked:
		entry(types.KindWarning, MsgBackingUp, o.Name, filepath.Base(o.Backup))
		entry(types.KindAction, MsgLinking, o.Name)
	case types.StatusSourceMissing:
		entry(types.KindWarning, MsgSourceMissing, o.Name)
	case types.StatusCategoryMissing:
		// writeCategory prints a single line for the whole category
	case types.StatusRemoved:
		entry(types.KindAction, MsgRemoving, o.Name)
	case types.StatusNotSymlinkSkipped:
		entry(types.KindWarning, MsgNotSymlink, o.Name)
	case types.StatusNotFoundSkipped:
		entry(types.KindWarning, MsgNotFound, o.Name)
	default:
		entry(types.KindWarning, "%s: %s", o.Name, o.Status)
	}
}

func (r *Renderer) writeFooter(b *strings.Builder, result *types.Result) {
	r.line(b, r.style("Muted", summaryLine(result.Action, result.Summary())))

	if result.Aborted {
		done := MsgInstallAborted
		if result.Action == types.ActionUninstall {
			done = MsgUninstallAborted
		}
		r.line(b, r.marker(types.KindWarning)+" "+r.style("Error", done))
		return
	}

	var done string
	switch {
	case result.DryRun && result.Action == types.ActionInstall:
		done = MsgInstallDryRunDone
	case result.DryRun:
		done = MsgUninstallDryRunDone
	case result.Action == types.ActionInstall:
		done = MsgInstallComplete
	default:
		done = MsgUninstallComplete
	}
	r.line(b, r.marker(types.KindOK)+" "+r.style("Success", done))
}

// summaryOrder lists statuses in the order the summary line mentions them.
var summaryOrder = []struct {
	status types.Status
	label  string
}{
	{types.StatusLinked, "linked"},
	{types.StatusBackedUpAndLinked, "backed up and linked"},
	{types.StatusAlreadyLinked, "already linked"},
	{types.StatusRemoved, "removed"},
	{types.StatusSourceMissing, "source missing"},
	{types.StatusCategoryMissing, "category missing"},
	{types.StatusNotSymlinkSkipped, "not a symlink"},
	{types.StatusNotFoundSkipped, "not found"},
}

func summaryLine(action types.Action, s types.Summary) string {
	var parts []string
	for _, entry := range summaryOrder {
		if n := s.Count(entry.status); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, entry.label))
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("Summary: no files to %s", action)
	}
	noun := "files"
	if s.Total == 1 {
		noun = "file"
	}
	return fmt.Sprintf("Summary: %d %s: %s", s.Total, noun, strings.Join(parts, ", "))
}

func allMissing(outcomes []types.Outcome) bool {
	for _, o := range outcomes {
		if o.Status != types.StatusCategoryMissing {
			return false
		}
	}
	return len(outcomes) > 0
}

func (r *Renderer) marker(kind types.Kind) string {
	switch kind {
	case types.KindOK:
		return r.style("Success", markerOK)
	case types.KindAction:
		return r.style("Action", markerAction)
	default:
		return r.style("Warning", markerWarning)
	}
}

func (r *Renderer) style(name, text string) string {
	if r.noColor {
		return text
	}
	return r.styles.Get(name).Render(text)
}

func (r *Renderer) line(b *strings.Builder, text string) {
	b.WriteString(text)
	b.WriteByte('\n')
}
