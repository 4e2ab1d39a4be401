package web

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// untar expands a gzip-compressed tar stream into dest.
func (p *Provider) untar(dest string, r io.Reader) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("read gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar stream: %w", err)
		}

		target, err := sanitizePath(dest, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := p.fs.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := p.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			if err := p.writeEntry(target, tr); err != nil {
				return err
			}
		}
		// Links and special files are skipped; model archives carry plain
		// files and directories only.
	}
}

// unzip expands a zip payload into dest. The zip format needs random access,
// so the body is buffered in memory first.
func (p *Provider) unzip(dest string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("read zip payload: %w", err)
	}

	for _, f := range zr.File {
		target, err := sanitizePath(dest, f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := p.fs.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}

		if err := p.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = p.writeEntry(target, rc)
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// writeEntry creates or truncates target and copies the content into it.
func (p *Provider) writeEntry(target string, r io.Reader) error {
	f, err := p.fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// sanitizePath joins an archive entry name below dest and rejects entries
// that would escape it. An entry that cleans to dest itself (the leading
// "./" directory of ./-rooted tarballs) is allowed.
func sanitizePath(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	if target != filepath.Clean(dest) && !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry escapes destination: %s", name)
	}
	return target, nil
}
