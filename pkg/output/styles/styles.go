// Package styles defines the visual styling for dotlink's terminal output.
//
// Styles use semantic names and adaptive colors that adjust to light and
// dark terminal themes. The definitions are compiled in from styles.yaml.
package styles

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Registry maps semantic names to lipgloss styles.
type Registry map[string]lipgloss.Style

var defaultConfig Config

func init() {
	cfg, err := Parse(defaultStyles)
	if err != nil {
		panic(fmt.Sprintf("failed to load styles: %v", err))
	}
	defaultConfig = cfg
}

// Parse decodes a styles configuration. Styles naming an undefined color are
// rejected.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse styles: %w", err)
	}

	for name, def := range cfg.Styles {
		for _, color := range []string{def.Foreground, def.Background} {
			if color == "" {
				continue
			}
			if _, ok := cfg.Colors[color]; !ok {
				return Config{}, fmt.Errorf("style %s uses undefined color %q", name, color)
			}
		}
	}
	return cfg, nil
}

// Build creates every style in cfg through the given renderer, so color
// detection follows that renderer's output.
func (cfg Config) Build(r *lipgloss.Renderer) Registry {
	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	registry := make(Registry, len(cfg.Styles))
	for name, def := range cfg.Styles {
		registry[name] = buildStyle(r.NewStyle(), def, colors)
	}
	return registry
}

// ForRenderer returns the compiled-in styles bound to r.
func ForRenderer(r *lipgloss.Renderer) Registry {
	return defaultConfig.Build(r)
}

func buildStyle(style lipgloss.Style, def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if def.Foreground != "" {
		style = style.Foreground(colors[def.Foreground])
	}
	if def.Background != "" {
		style = style.Background(colors[def.Background])
	}
	return style
}

// Get returns the named style, or a plain style if it is not defined.
func (r Registry) Get(name string) lipgloss.Style {
	if style, ok := r[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
