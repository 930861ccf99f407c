package styles

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour/v2/ansi"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Semantic color names for consistency
type Theme struct {
	Name   string
	IsDark bool

	// Brand colors
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color

	// Background colors
	BgBase   color.Color
	BgSubtle color.Color

	// Foreground colors
	FgBase     color.Color
	FgMuted    color.Color
	FgSubtle   color.Color
	FgInverted color.Color

	// Border colors
	Border      color.Color
	BorderFocus color.Color

	// Semantic colors
	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	styles *Styles
}

type Styles struct {
	Base   lipgloss.Style
	Title  lipgloss.Style
	Text   lipgloss.Style
	Muted  lipgloss.Style
	Subtle lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Component styles
	Border        lipgloss.Style
	BorderFocused lipgloss.Style
	Badge         lipgloss.Style
	Selected      lipgloss.Style

	Markdown ansi.StyleConfig
}

func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().
		Foreground(t.FgBase)

	return &Styles{
		Base: base,

		Title: base.
			Foreground(t.Accent).
			Bold(true),

		Text: base,

		Muted: base.Foreground(t.FgMuted),

		Subtle: base.Foreground(t.FgSubtle),

		Success: base.Foreground(t.Success),

		Error: base.Foreground(t.Error),

		Warning: base.Foreground(t.Warning),

		Info: base.Foreground(t.Info),

		Border: base.
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),

		BorderFocused: base.
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus),

		Badge: base.
			Background(t.BgSubtle).
			Foreground(t.FgBase).
			Padding(0, 1),

		Selected: base.
			Foreground(t.Primary).
			Bold(true),

		Markdown: t.buildMarkdownStyles(),
	}
}

// Helper functions for style pointers
func boolPtr(b bool) *bool       { return &b }
func stringPtr(s string) *string { return &s }
func uintPtr(u uint) *uint       { return &u }

func (t *Theme) buildMarkdownStyles() ansi.StyleConfig {
	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: stringPtr(colorToHex(t.FgBase)),
			},
		},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: stringPtr(colorToHex(t.FgMuted)),
			},
			Indent:      uintPtr(1),
			IndentToken: stringPtr("│ "),
		},
		List: ansi.StyleList{
			LevelIndent: 2,
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockSuffix: "\n",
				Color:       stringPtr(colorToHex(t.Secondary)),
				Bold:        boolPtr(true),
			},
		},
		H1: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix:          " ",
				Suffix:          " ",
				Color:           stringPtr(colorToHex(t.FgInverted)),
				BackgroundColor: stringPtr(colorToHex(t.Primary)),
				Bold:            boolPtr(true),
			},
		},
		H2: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix: "## ",
				Color:  stringPtr(colorToHex(t.Accent)),
				Bold:   boolPtr(true),
			},
		},
		Text: ansi.StylePrimitive{
			Color: stringPtr(colorToHex(t.FgBase)),
		},
		Paragraph: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockSuffix: "\n",
			},
		},
		Item: ansi.StylePrimitive{
			BlockPrefix: "• ",
		},
		Enumeration: ansi.StylePrimitive{
			BlockPrefix: ". ",
		},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color:           stringPtr(colorToHex(t.Accent)),
				BackgroundColor: stringPtr(colorToHex(t.BgSubtle)),
			},
		},
		Table: ansi.StyleTable{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{},
			},
			CenterSeparator: stringPtr("┼"),
			ColumnSeparator: stringPtr("│"),
			RowSeparator:    stringPtr("─"),
		},
	}
}

// Manager handles theme switching and registration
type Manager struct {
	themes  map[string]*Theme
	current *Theme
}

var defaultManager *Manager

func SetDefaultManager(m *Manager) {
	defaultManager = m
}

func CurrentTheme() *Theme {
	if defaultManager == nil {
		defaultManager = NewManager("dark")
	}
	return defaultManager.Current()
}

// NewManager registers the built-in themes and selects defaultTheme,
// falling back to dark for unknown names.
func NewManager(defaultTheme string) *Manager {
	m := &Manager{
		themes: make(map[string]*Theme),
	}

	m.Register(NewDarkTheme())
	m.Register(NewLightTheme())

	m.current = m.themes[defaultTheme]
	if m.current == nil {
		m.current = m.themes["dark"]
	}

	return m
}

func (m *Manager) Register(theme *Theme) {
	m.themes[theme.Name] = theme
}

func (m *Manager) Current() *Theme {
	return m.current
}

func (m *Manager) SetTheme(name string) error {
	if theme, ok := m.themes[name]; ok {
		m.current = theme
		return nil
	}
	return fmt.Errorf("theme %s not found", name)
}

func (m *Manager) List() []string {
	names := make([]string, 0, len(m.themes))
	for name := range m.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseHex converts hex string to color
func ParseHex(hex string) color.Color {
	var r, g, b uint8
	fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// ApplyGradient renders text with a horizontal gradient
func ApplyGradient(text string, color1, color2 color.Color) string {
	if text == "" {
		return ""
	}

	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	if len(clusters) == 1 {
		return lipgloss.NewStyle().Foreground(color1).Bold(true).Render(text)
	}

	var output strings.Builder
	colors := blendColors(len(clusters), color1, color2)
	for i, cluster := range clusters {
		output.WriteString(lipgloss.NewStyle().Foreground(colors[i]).Bold(true).Render(cluster))
	}
	return output.String()
}

// blendColors creates a gradient between colors
func blendColors(steps int, color1, color2 color.Color) []color.Color {
	if steps <= 0 {
		return nil
	}
	if steps == 1 {
		return []color.Color{color1}
	}

	colors := make([]color.Color, steps)

	c1, _ := colorful.MakeColor(color1)
	c2, _ := colorful.MakeColor(color2)

	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps-1)
		// HCL blends perceptually evenly
		colors[i] = c1.BlendHcl(c2, t).Clamped()
	}

	return colors
}

// colorToHex converts color to a #rrggbb string
func colorToHex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
