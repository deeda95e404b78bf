package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var DefaultCopyFolders = []string{"Final", ImagesDirName, TextsDirName}

type CopyStats struct {
	Copied  []string
	Missing []string
}

// CopyLectures copies the given folders of "Lecture first".."Lecture last"
// from src into dst. Existing destination folders are replaced.
func (s *DatasetScanner) CopyLectures(ctx context.Context, src, dst string, first, last int, folders []string) (CopyStats, error) {
	var stats CopyStats

	if first > last {
		return stats, fmt.Errorf("invalid lecture range %d..%d", first, last)
	}
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return stats, fmt.Errorf("%w: %s", ErrDatasetNotFound, src)
		}
		return stats, fmt.Errorf("failed to stat source %s: %w", src, err)
	}
	if len(folders) == 0 {
		folders = DefaultCopyFolders
	}

	for i := first; i <= last; i++ {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		name := fmt.Sprintf("Lecture %d", i)
		lectureSrc := filepath.Join(src, name)
		lectureDst := filepath.Join(dst, name)

		if err := os.MkdirAll(lectureDst, 0755); err != nil {
			return stats, fmt.Errorf("failed to create %s: %w", lectureDst, err)
		}

		for _, folder := range folders {
			srcFolder := filepath.Join(lectureSrc, folder)
			dstFolder := filepath.Join(lectureDst, folder)

			if _, err := os.Stat(srcFolder); err != nil {
				s.logger.Warn("Folder %q not found in %s. Skipping...", folder, lectureSrc)
				stats.Missing = append(stats.Missing, srcFolder)
				continue
			}

			if err := os.RemoveAll(dstFolder); err != nil {
				return stats, fmt.Errorf("failed to remove %s: %w", dstFolder, err)
			}
			if err := os.CopyFS(dstFolder, os.DirFS(srcFolder)); err != nil {
				return stats, fmt.Errorf("failed to copy %s: %w", srcFolder, err)
			}

			s.logger.Info("Copied %s to %s", srcFolder, dstFolder)
			stats.Copied = append(stats.Copied, dstFolder)
		}
	}

	return stats, nil
}
