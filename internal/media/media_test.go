package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func openIndex(t *testing.T) *SQLiteIndex {
	t.Helper()
	idx, err := OpenSQLiteIndex(filepath.Join(t.TempDir(), "media.db"))
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

type failingIndex struct{ err error }

func (f failingIndex) Paths(context.Context) ([]string, error) { return nil, f.err }

type nilIndex struct{}

func (nilIndex) Paths(context.Context) ([]string, error) { return nil, nil }

func TestLister_EmptyIndex(t *testing.T) {
	l := NewLister(openIndex(t), zerolog.Nop())

	paths := l.ListImagePaths(context.Background())
	require.NotNil(t, paths)
	require.Empty(t, paths)
}

func TestLister_PreservesIndexOrder(t *testing.T) {
	ctx := context.Background()
	idx := openIndex(t)
	added, err := idx.Insert(ctx, []Entry{{Path: "/z.jpg"}, {Path: "/a.jpg"}, {Path: "/m.png"}})
	require.NoError(t, err)
	require.Equal(t, 3, added)

	paths := NewLister(idx, zerolog.Nop()).ListImagePaths(ctx)
	require.Equal(t, []string{"/z.jpg", "/a.jpg", "/m.png"}, paths)
}

func TestLister_DegradesToEmpty(t *testing.T) {
	tests := []struct {
		name  string
		index Index
	}{
		{"nil index", nil},
		{"query failure", failingIndex{err: ErrIndexUnavailable}},
		{"other failure", failingIndex{err: errors.New("disk on fire")}},
		{"nil rows", nilIndex{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := NewLister(tt.index, zerolog.Nop()).ListImagePaths(context.Background())
			require.NotNil(t, paths)
			require.Empty(t, paths)
		})
	}
}

func TestLister_ListReportsUnavailable(t *testing.T) {
	idx := openIndex(t)
	require.NoError(t, idx.Close())

	paths, err := NewLister(idx, zerolog.Nop()).List(context.Background())
	require.ErrorIs(t, err, ErrIndexUnavailable)
	require.NotNil(t, paths)
}

func TestSQLiteIndex_InsertIgnoresDuplicates(t *testing.T) {
	ctx := context.Background()
	idx := openIndex(t)

	n, err := idx.Insert(ctx, []Entry{{Path: "/a.jpg", Size: 10}})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = idx.Insert(ctx, []Entry{{Path: "/a.jpg", Size: 99}, {Path: "/b.jpg"}})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	e, ok, err := idx.Lookup(ctx, "/a.jpg")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(10), e.Size)

	_, ok, err = idx.Lookup(ctx, "/nope.jpg")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestScanner_ScanAndPrune(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.jpg"))
	touch(t, filepath.Join(root, "a.PNG"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "trip", "c.webp"))
	touch(t, filepath.Join(root, ".thumbnails", "d.jpg"))

	idx := openIndex(t)
	s := NewScanner(idx, zerolog.Nop())

	missing := filepath.Join(root, "does-not-exist")
	res, err := s.Scan(ctx, root, missing)
	require.NoError(t, err)
	require.Equal(t, 3, res.Added)
	require.Equal(t, 3, res.Seen)
	require.Equal(t, []string{missing}, res.Skipped)

	paths, err := idx.Paths(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "a.PNG"),
		filepath.Join(root, "b.jpg"),
		filepath.Join(root, "trip", "c.webp"),
	}, paths)

	// Rescanning adds nothing new.
	res, err = s.Scan(ctx, root)
	require.NoError(t, err)
	require.Zero(t, res.Added)

	require.NoError(t, os.Remove(filepath.Join(root, "b.jpg")))
	removed, err := s.Prune(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	paths, err = idx.Paths(ctx)
	require.NoError(t, err)
	require.Len(t, paths, 2)
}

func TestScanner_FollowsSymlinkedRoot(t *testing.T) {
	ctx := context.Background()
	target := t.TempDir()
	touch(t, filepath.Join(target, "a.jpg"))
	touch(t, filepath.Join(target, "trip", "b.png"))

	link := filepath.Join(t.TempDir(), "Pictures")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	idx := openIndex(t)
	res, err := NewScanner(idx, zerolog.Nop()).Scan(ctx, link)
	require.NoError(t, err)
	require.Equal(t, 2, res.Seen)
	require.Equal(t, 2, res.Added)
	require.Empty(t, res.Skipped)

	paths, err := idx.Paths(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(link, "a.jpg"),
		filepath.Join(link, "trip", "b.png"),
	}, paths)
}

func TestScanner_PruneManyMissing(t *testing.T) {
	ctx := context.Background()
	idx := openIndex(t)
	root := t.TempDir()

	const missing = 40000
	entries := make([]Entry, 0, missing+1)
	for i := range missing {
		entries = append(entries, Entry{Path: filepath.Join(root, fmt.Sprintf("gone-%05d.jpg", i))})
	}
	kept := filepath.Join(root, "kept.jpg")
	touch(t, kept)
	entries = append(entries, Entry{Path: kept})

	added, err := idx.Insert(ctx, entries)
	require.NoError(t, err)
	require.Equal(t, missing+1, added)

	removed, err := NewScanner(idx, zerolog.Nop()).Prune(ctx)
	require.NoError(t, err)
	require.Equal(t, missing, removed)

	paths, err := idx.Paths(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{kept}, paths)
}

func TestSQLiteIndex_RemoveBatches(t *testing.T) {
	ctx := context.Background()
	idx := openIndex(t)

	tests := []int{1, removeBatch - 1, removeBatch, removeBatch + 1, 3*removeBatch + 7}
	for _, n := range tests {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			paths := make([]string, n)
			entries := make([]Entry, n)
			for i := range paths {
				paths[i] = fmt.Sprintf("/batch-%d/%d.jpg", n, i)
				entries[i] = Entry{Path: paths[i]}
			}
			_, err := idx.Insert(ctx, entries)
			require.NoError(t, err)

			removed, err := idx.Remove(ctx, append(paths, "/never-indexed.jpg"))
			require.NoError(t, err)
			require.Equal(t, n, removed)
		})
	}

	paths, err := idx.Paths(ctx)
	require.NoError(t, err)
	require.Empty(t, paths)
}

func TestIsImagePath(t *testing.T) {
	require.True(t, IsImagePath("/x/y.JPG"))
	require.True(t, IsImagePath("photo.tiff"))
	require.False(t, IsImagePath("doc.pdf"))
	require.False(t, IsImagePath("noext"))
}
