package imageview

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/billie-coop/slides/internal/display"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 200, A: 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestDecode(t *testing.T) {
	dir := t.TempDir()
	good := writePNG(t, dir, "a.png", 4, 2)
	bad := filepath.Join(dir, "broken.jpg")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))

	d, err := Decode(good)
	require.NoError(t, err)
	require.Equal(t, "png", d.Format)
	require.Equal(t, 4, d.Image.Bounds().Dx())
	require.Positive(t, d.Bytes)

	_, err = Decode(bad)
	require.ErrorIs(t, err, ErrDecode)

	_, err = Decode(filepath.Join(dir, "missing.png"))
	require.ErrorIs(t, err, ErrDecode)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestModel_RenderKeepsPreviousOnFailure(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 8, 8)

	m := New()
	m.SetSize(20, 10)
	require.NoError(t, m.Render(display.Frame{Index: 0, Path: a}))

	err := m.Render(display.Frame{Index: 1, Path: filepath.Join(dir, "nope.png")})
	require.ErrorIs(t, err, ErrDecode)

	frame, decoded, ok := m.Current()
	require.True(t, ok)
	require.Equal(t, a, frame.Path)
	require.NotNil(t, decoded)
	require.Equal(t, 1, m.Shown())
}

func TestModel_View(t *testing.T) {
	m := New()
	require.Empty(t, m.View())

	m.SetSize(30, 6)
	require.Contains(t, m.View(), "No image yet")

	path := writePNG(t, t.TempDir(), "a.png", 6, 4)
	require.NoError(t, m.Render(display.Frame{Path: path}))
	require.Contains(t, m.View(), upperHalf)

	m.Clear()
	require.NotContains(t, m.View(), upperHalf)
}

func TestHalfBlocks_RowCount(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	out := HalfBlocks(img, 10, 5)
	require.Len(t, strings.Split(out, "\n"), 5)
	require.Equal(t, 50, strings.Count(out, upperHalf))
}

func TestHalfBlocks_UpscalesSmallImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	out := HalfBlocks(img, 8, 4)
	require.Len(t, strings.Split(out, "\n"), 4)
	require.Equal(t, 32, strings.Count(out, upperHalf))
}

func TestHalfBlocks_MergesSameColourRuns(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		img.Set(x, 0, color.RGBA{R: 0xff, A: 0xff})
		img.Set(x, 1, color.RGBA{B: 0xff, A: 0xff})
	}
	out := HalfBlocks(img, 4, 1)
	require.Equal(t, 4, strings.Count(out, upperHalf))
	require.Equal(t, 4, lipgloss.Width(out))
}

func TestFit(t *testing.T) {
	tests := []struct {
		name             string
		srcW, srcH       int
		maxW, maxH       int
		wantW, wantH     int
	}{
		{"exact", 20, 20, 20, 20, 20, 20},
		{"small square upscales", 10, 10, 20, 20, 20, 20},
		{"small wide upscales", 6, 4, 30, 12, 18, 12},
		{"too wide", 200, 100, 50, 50, 50, 25},
		{"too tall", 100, 400, 80, 40, 10, 40},
		{"both", 400, 400, 80, 40, 40, 40},
		{"tiny target", 1000, 10, 5, 5, 5, 1},
		{"empty", 0, 10, 5, 5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := Fit(tt.srcW, tt.srcH, tt.maxW, tt.maxH)
			require.Equal(t, tt.wantW, w)
			require.Equal(t, tt.wantH, h)
		})
	}
}
