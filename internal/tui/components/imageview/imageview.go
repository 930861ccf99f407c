package imageview

import (
	"image"
	"image/color"
	"strings"

	"github.com/billie-coop/slides/internal/display"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"golang.org/x/image/draw"
)

// upperHalf is drawn with the foreground as the upper pixel and the
// background as the lower pixel, so each cell shows two pixel rows.
const upperHalf = "▀"

// Model is the image view. It is only touched from the UI loop.
type Model struct {
	width  int
	height int

	current *Decoded
	frame   display.Frame
	shown   int

	placeholder string
	rendered    string
	dirty       bool
}

// New creates an empty image view.
func New() *Model {
	return &Model{placeholder: "No image yet"}
}

// SetPlaceholder sets the text shown while no image is loaded.
func (m *Model) SetPlaceholder(text string) {
	m.placeholder = text
	m.dirty = true
}

// SetSize implements core.Sizeable
func (m *Model) SetSize(width, height int) tea.Cmd {
	if width != m.width || height != m.height {
		m.width = width
		m.height = height
		m.dirty = true
	}
	return nil
}

// Render decodes the frame's path and makes it the current image. On
// failure the current image stays as it was. Implements display.Renderer.
func (m *Model) Render(frame display.Frame) error {
	decoded, err := Decode(frame.Path)
	if err != nil {
		return err
	}
	m.current = &decoded
	m.frame = frame
	m.shown++
	m.dirty = true
	return nil
}

// Clear drops the current image.
func (m *Model) Clear() {
	m.current = nil
	m.frame = display.Frame{}
	m.dirty = true
}

// Current returns the frame on screen and whether there is one.
func (m *Model) Current() (display.Frame, *Decoded, bool) {
	if m.current == nil {
		return display.Frame{}, nil, false
	}
	return m.frame, m.current, true
}

// Shown returns how many images have been displayed since start.
func (m *Model) Shown() int {
	return m.shown
}

// View renders the image scaled to fit the view.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if !m.dirty {
		return m.rendered
	}
	m.dirty = false

	if m.current == nil {
		m.rendered = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.placeholder))
		return m.rendered
	}

	cells := HalfBlocks(m.current.Image, m.width, m.height)
	m.rendered = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, cells)
	return m.rendered
}

// HalfBlocks renders img into at most cols x rows terminal cells, keeping
// the aspect ratio.
func HalfBlocks(img image.Image, cols, rows int) string {
	w, h := Fit(img.Bounds().Dx(), img.Bounds().Dy(), cols, rows*2)
	if w == 0 || h == 0 {
		return ""
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	var b strings.Builder
	cell := lipgloss.NewStyle()
	for y := 0; y < h; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		// Neighbouring cells with the same colours share one styled run.
		var run struct {
			top, bottom color.RGBA
			n           int
		}
		flush := func() {
			if run.n == 0 {
				return
			}
			b.WriteString(cell.
				Foreground(opaque(run.top)).
				Background(opaque(run.bottom)).
				Render(strings.Repeat(upperHalf, run.n)))
			run.n = 0
		}
		for x := 0; x < w; x++ {
			top := dst.RGBAAt(x, y)
			bottom := color.RGBA{A: 0xff}
			if y+1 < h {
				bottom = dst.RGBAAt(x, y+1)
			}
			if run.n > 0 && (top != run.top || bottom != run.bottom) {
				flush()
			}
			run.top, run.bottom = top, bottom
			run.n++
		}
		flush()
	}
	return b.String()
}

// Fit scales srcW x srcH up or down to the largest size inside maxW x maxH
// that keeps the aspect ratio.
func Fit(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	var w, h int
	if srcW*maxH <= srcH*maxW {
		w, h = srcW*maxH/srcH, maxH
	} else {
		w, h = maxW, srcH*maxW/srcW
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func opaque(c color.RGBA) color.Color {
	c.A = 0xff
	return c
}
