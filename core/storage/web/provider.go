package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"model-fetcher/core/storage"
)

// Provider downloads a single file over http(s).
type Provider struct {
	client *http.Client
	fs     afero.Fs
	log    *zap.Logger
}

// NewProvider creates a provider with a timeout-bounded HTTP client.
func NewProvider(cfg Config, fsys afero.Fs, log *zap.Logger) *Provider {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 120
	}
	return &Provider{
		client: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		fs:     fsys,
		log:    log,
	}
}

// Name identifies the provider in logs.
func (p *Provider) Name() string {
	return "web"
}

// CanHandle claims every http/https URI. Register this provider after the
// ones with narrower host patterns.
func (p *Provider) CanHandle(uri string) bool {
	u, err := url.Parse(uri)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// Download fetches the URL and writes it below dest. Archives are unpacked;
// everything else lands as dest/<last path segment>.
func (p *Provider) Download(ctx context.Context, uri, dest string) error {
	u, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("%w: %s", storage.ErrMalformedURI, uri)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return fmt.Errorf("%w: no file name in %s", storage.ErrMalformedURI, uri)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", storage.ErrObjectNotFound, uri)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s: %s", storage.ErrAuthentication, uri, resp.Status)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("fetch %s: %s", uri, resp.Status)
	}

	switch {
	case strings.HasSuffix(name, ".tar.gz") || strings.HasSuffix(name, ".tgz"):
		p.log.Debug("Unpacking tar archive", zap.String("name", name), zap.String("dest", dest))
		return p.untar(dest, resp.Body)
	case strings.HasSuffix(name, ".zip"):
		p.log.Debug("Unpacking zip archive", zap.String("name", name), zap.String("dest", dest))
		return p.unzip(dest, resp.Body)
	}

	if err := p.fs.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dest, err)
	}
	return p.writeEntry(path.Join(dest, name), resp.Body)
}
