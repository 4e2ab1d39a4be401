package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	gstorage "cloud.google.com/go/storage"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"model-fetcher/core/storage"
)

// Provider downloads from Google Cloud Storage.
type Provider struct {
	cfg Config
	fs  afero.Fs
	log *zap.Logger
}

// NewProvider creates a provider. The GCS client is built per download
// because credential resolution may depend on the ambient environment.
func NewProvider(cfg Config, fsys afero.Fs, log *zap.Logger) *Provider {
	return &Provider{cfg: cfg, fs: fsys, log: log}
}

// Name identifies the provider in logs.
func (p *Provider) Name() string {
	return "gcs"
}

// CanHandle claims gs:// URIs.
func (p *Provider) CanHandle(uri string) bool {
	u, err := url.Parse(uri)
	return err == nil && u.Scheme == "gs"
}

// Download lists the objects under gs://bucket/prefix and writes them below dest.
func (p *Provider) Download(ctx context.Context, uri, dest string) error {
	bucket, prefix, err := parseURI(uri)
	if err != nil {
		return err
	}

	client, err := p.newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	src := &bucketSource{bucket: client.Bucket(bucket)}
	return storage.DownloadAll(ctx, src, p.fs, prefix, dest, p.log)
}

// newClient builds a GCS client from the configured key file or application
// default credentials, falling back to an anonymous client when neither is
// available.
func (p *Provider) newClient(ctx context.Context) (*gstorage.Client, error) {
	if p.cfg.CredentialsFile != "" {
		return gstorage.NewClient(ctx, option.WithCredentialsFile(p.cfg.CredentialsFile))
	}

	client, err := gstorage.NewClient(ctx)
	if err == nil {
		return client, nil
	}

	p.log.Info("No default credentials, using anonymous GCS client", zap.Error(err))
	return gstorage.NewClient(ctx, option.WithoutAuthentication())
}

// parseURI splits gs://bucket/prefix. A URI without a bucket fails with
// storage.ErrMalformedURI.
func parseURI(uri string) (bucket, prefix string, err error) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "gs" {
		return "", "", fmt.Errorf("%w: not a gs uri: %s", storage.ErrMalformedURI, uri)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("%w: missing bucket: %s", storage.ErrMalformedURI, uri)
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}

// bucketSource adapts one bucket handle to storage.ObjectSource.
type bucketSource struct {
	bucket *gstorage.BucketHandle
}

func (s *bucketSource) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	it := s.bucket.Objects(ctx, &gstorage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classify(err)
		}
		keys = append(keys, attrs.Name)
	}
	return keys, nil
}

func (s *bucketSource) Fetch(ctx context.Context, key string) (io.ReadCloser, error) {
	r, err := s.bucket.Object(key).NewReader(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return r, nil
}

// classify maps GCS errors onto the shared sentinel errors.
func classify(err error) error {
	if errors.Is(err, gstorage.ErrObjectNotExist) || errors.Is(err, gstorage.ErrBucketNotExist) {
		return fmt.Errorf("%w: %v", storage.ErrObjectNotFound, err)
	}
	return err
}
