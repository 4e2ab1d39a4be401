package local

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"model-fetcher/core/storage"
)

// Provider copies artifacts that are already on the local filesystem.
type Provider struct {
	fs  afero.Fs
	log *zap.Logger
}

// NewProvider creates a provider over the given filesystem.
func NewProvider(fsys afero.Fs, log *zap.Logger) *Provider {
	return &Provider{fs: fsys, log: log}
}

// Name identifies the provider in logs.
func (p *Provider) Name() string {
	return "local"
}

// CanHandle claims file:// URIs.
func (p *Provider) CanHandle(uri string) bool {
	u, err := url.Parse(uri)
	return err == nil && u.Scheme == "file"
}

// Download copies the file or directory tree behind the URI below dest.
func (p *Provider) Download(ctx context.Context, uri, dest string) error {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" || u.Path == "" {
		return fmt.Errorf("%w: not a file uri: %s", storage.ErrMalformedURI, uri)
	}
	src := filepath.FromSlash(u.Path)

	info, err := p.fs.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", storage.ErrObjectNotFound, src)
		}
		return err
	}

	if !info.IsDir() {
		if err := p.fs.MkdirAll(dest, 0o755); err != nil {
			return err
		}
		return p.copyFile(src, filepath.Join(dest, filepath.Base(src)))
	}

	return afero.Walk(p.fs, src, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		if fi.IsDir() {
			return p.fs.MkdirAll(target, 0o755)
		}
		return p.copyFile(path, target)
	})
}

func (p *Provider) copyFile(src, target string) error {
	in, err := p.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := p.fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	p.log.Debug("Copied file", zap.String("src", src), zap.String("dest", target))
	return out.Close()
}
