// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

type document struct {
	*types.Result
	Summary types.Summary `json:"summary"`
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

// RenderResult writes the run and its summary as one JSON document.
func (r *Renderer) RenderResult(result *types.Result) error {
	doc := document{Result: result, Summary: result.Summary()}
	if doc.Outcomes == nil {
		doc.Result = withOutcomes(result)
	}
	return r.encoder.Encode(doc)
}

// withOutcomes copies result so an empty run encodes "outcomes": [].
func withOutcomes(result *types.Result) *types.Result {
	c := *result
	c.Outcomes = []types.Outcome{}
	return &c
}

type errorDocument struct {
	Error   string                 `json:"error"`
	Code    errors.ErrorCode       `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RenderError renders an error as JSON, with its code and any details.
// Errors that carry no code are reported as UNKNOWN.
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(errorDocument{
		Error:   err.Error(),
		Code:    errors.GetErrorCode(err),
		Details: errors.GetErrorDetails(err),
	})
}
