// Package media finds image files and answers "which images exist?".
//
// An Index is the read-only source the Lister queries: a SQLite database
// with one row per image, in the style of a device media store. The
// Scanner fills that database by walking media roots on disk.
//
//	idx, err := media.OpenSQLiteIndex(".slides/media.db")
//	if err != nil {
//		return err
//	}
//	defer idx.Close()
//
//	scanner := media.NewScanner(idx, logger)
//	scanner.Scan(ctx, "/home/me/Pictures")
//
//	paths := media.NewLister(idx, logger).ListImagePaths(ctx)
//
// ListImagePaths never fails: an unavailable index yields an empty list
// and a log line. Callers that need the reason use List.
package media
