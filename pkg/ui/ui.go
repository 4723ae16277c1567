// Package ui picks the renderer for a run's output: styled terminal text,
// plain text or JSON.
package ui

import (
	"io"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/output"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/arthur-debert/dotlink/pkg/ui/json"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders the outcomes of an install or uninstall run.
	RenderResult(result *types.Result) error

	// RenderError renders a fatal error with appropriate formatting
	RenderError(err error) error
}

// NewRenderer creates a new renderer based on the specified format.
// FormatAuto is resolved against w first.
func NewRenderer(format Format, w io.Writer) (Renderer, error) {
	switch Resolve(format, w) {
	case FormatTerminal:
		return output.NewRenderer(w, false), nil
	case FormatText:
		return output.NewRenderer(w, true), nil
	case FormatJSON:
		return json.New(w), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
