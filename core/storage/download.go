package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ObjectSource is the minimal contract a provider's client has to satisfy:
// enumerate the keys under a prefix and fetch the bytes of a single key.
type ObjectSource interface {
	// List returns the keys under prefix in the order the remote store
	// reports them. A prefix naming an exact object yields that single key.
	List(ctx context.Context, prefix string) ([]string, error)
	// Fetch opens the object's content. The caller closes the reader.
	Fetch(ctx context.Context, key string) (io.ReadCloser, error)
}

// DownloadAll lists every object under prefix and writes it below dest.
func DownloadAll(ctx context.Context, src ObjectSource, fsys afero.Fs, prefix, dest string, log *zap.Logger) error {
	keys, err := src.List(ctx, prefix)
	if err != nil {
		return err
	}
	return WriteObjects(ctx, src, fsys, prefix, dest, keys, log)
}

// WriteObjects materializes the given keys below dest, in order. Per object
// the parent directories are created first (idempotent), then the bytes are
// fetched, then the file is written (created or truncated). The first error
// aborts the whole pass; files already written remain on disk.
func WriteObjects(ctx context.Context, src ObjectSource, fsys afero.Fs, prefix, dest string, keys []string, log *zap.Logger) error {
	if len(keys) == 0 {
		log.Warn("No objects found under prefix", zap.String("prefix", prefix))
		return nil
	}

	multi := len(keys) > 1
	for _, key := range keys {
		rel := RelativePath(prefix, key, multi)
		target := filepath.Join(dest, filepath.FromSlash(rel))

		if err := fsys.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", key, err)
		}

		body, err := src.Fetch(ctx, key)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", key, err)
		}

		if err := writeFile(fsys, target, body); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}

		log.Debug("Wrote object",
			zap.String("key", key),
			zap.String("path", target),
		)
	}

	return nil
}

func writeFile(fsys afero.Fs, target string, body io.ReadCloser) error {
	defer body.Close()

	f, err := fsys.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
