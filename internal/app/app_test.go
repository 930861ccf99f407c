package app

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/billie-coop/slides/internal/config"
	"github.com/billie-coop/slides/internal/display"
	"github.com/billie-coop/slides/internal/permission"
	"github.com/billie-coop/slides/internal/tui/events"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 0xff, A: 0xff})
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func newTestApp(t *testing.T, sets map[string]string) (*App, string) {
	t.Helper()
	project := t.TempDir()
	pics := filepath.Join(project, "pics")

	mgr := config.NewManager(project)
	require.NoError(t, mgr.Load())
	require.NoError(t, mgr.Set("media_roots", pics))
	for k, v := range sets {
		require.NoError(t, mgr.Set(k, v))
	}

	a, err := New(mgr, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a, pics
}

func TestApp_RescanThenList(t *testing.T) {
	a, pics := newTestApp(t, nil)
	writePNG(t, filepath.Join(pics, "a.png"))
	writePNG(t, filepath.Join(pics, "b.png"))
	require.NoError(t, os.WriteFile(filepath.Join(pics, "notes.txt"), []byte("x"), 0o644))

	sub := a.EventBroker.Subscribe(events.IndexScannedEvent, events.IndexListedEvent)

	ctx := context.Background()
	require.Empty(t, a.Media.List(ctx))

	scanned, err := a.Media.Rescan(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, scanned.Added)
	require.Zero(t, scanned.Removed)

	paths := a.Media.List(ctx)
	require.Equal(t, []string{filepath.Join(pics, "a.png"), filepath.Join(pics, "b.png")}, paths)

	var got []events.EventType
	for len(got) < 3 {
		select {
		case ev := <-sub:
			got = append(got, ev.Type)
		case <-time.After(time.Second):
			t.Fatalf("missing events, got %v", got)
		}
	}
	require.Equal(t, []events.EventType{events.IndexListedEvent, events.IndexScannedEvent, events.IndexListedEvent}, got)
}

func TestApp_RescanPrunesDeletedFiles(t *testing.T) {
	a, pics := newTestApp(t, nil)
	gone := filepath.Join(pics, "gone.png")
	writePNG(t, gone)
	writePNG(t, filepath.Join(pics, "kept.png"))

	ctx := context.Background()
	_, err := a.Media.Rescan(ctx)
	require.NoError(t, err)

	require.NoError(t, os.Remove(gone))
	scanned, err := a.Media.Rescan(ctx)
	require.NoError(t, err)
	require.Zero(t, scanned.Added)
	require.Equal(t, 1, scanned.Removed)
	require.Equal(t, []string{filepath.Join(pics, "kept.png")}, a.Media.List(ctx))
}

func TestApp_DisplayOptionsFromConfig(t *testing.T) {
	a, _ := newTestApp(t, map[string]string{
		"delay":          "250ms",
		"decode_failure": "abort",
		"run_policy":     "reject",
	})

	opts := a.DisplayOptions()
	require.Equal(t, 250*time.Millisecond, opts.Delay)
	require.Equal(t, display.FailAbort, opts.FailurePolicy)
	require.Equal(t, display.RunReject, opts.RunPolicy)
	require.Same(t, a.EventBroker, opts.Broker)
}

func TestApp_AutoGrantSeedsPermissions(t *testing.T) {
	project := t.TempDir()
	mgr := config.NewManager(project)
	require.NoError(t, mgr.Load())
	require.NoError(t, mgr.Grant(string(permission.ReadImages)))

	a, err := New(mgr, zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()

	require.True(t, a.Permissions.Granted(permission.ReadImages))
}

func TestApp_CloseCancelsRuns(t *testing.T) {
	a, _ := newTestApp(t, map[string]string{"delay": "1h"})

	looper := display.NewSerialLooper()
	defer looper.Close()
	p := a.NewPipeline(looper, display.RendererFunc(func(display.Frame) error { return nil }))

	h, err := p.Start(context.Background(), []string{"/a.png"})
	require.NoError(t, err)
	require.Equal(t, 1, a.Registry.Len())

	require.NoError(t, a.Close())
	require.Equal(t, display.Cancelled, h.State())
	require.Zero(t, a.Registry.Len())
}
