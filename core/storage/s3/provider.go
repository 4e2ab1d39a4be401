package s3

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"model-fetcher/core/storage"
)

// api is the subset of the MinIO client the provider needs.
type api interface {
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
}

// clientWrapper narrows *minio.Object to io.ReadCloser so the api interface
// stays fakeable in tests.
type clientWrapper struct {
	*minio.Client
}

func (c *clientWrapper) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	return c.Client.GetObject(ctx, bucketName, objectName, opts)
}

// Provider downloads from S3-compatible object storage.
type Provider struct {
	client api
	fs     afero.Fs
	log    *zap.Logger
}

// NewProvider creates a provider with a MinIO client built from cfg.
func NewProvider(cfg Config, fsys afero.Fs, log *zap.Logger) (*Provider, error) {
	// MinIO expects the endpoint without a scheme.
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Custom transport with strict timeouts so a dead endpoint fails fast
	// instead of hanging the whole download.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	return newProvider(&clientWrapper{Client: client}, fsys, log), nil
}

func newProvider(client api, fsys afero.Fs, log *zap.Logger) *Provider {
	return &Provider{client: client, fs: fsys, log: log}
}

// Name identifies the provider in logs.
func (p *Provider) Name() string {
	return "s3"
}

// CanHandle claims s3:// URIs.
func (p *Provider) CanHandle(uri string) bool {
	u, err := url.Parse(uri)
	return err == nil && u.Scheme == "s3"
}

// Download lists the objects under s3://bucket/prefix and writes them below dest.
func (p *Provider) Download(ctx context.Context, uri, dest string) error {
	bucket, prefix, err := parseURI(uri)
	if err != nil {
		return err
	}

	src := &bucketSource{client: p.client, bucket: bucket}
	return storage.DownloadAll(ctx, src, p.fs, prefix, dest, p.log)
}

// parseURI splits s3://bucket/prefix. A URI without a bucket fails with
// storage.ErrMalformedURI.
func parseURI(uri string) (bucket, prefix string, err error) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "s3" {
		return "", "", fmt.Errorf("%w: not an s3 uri: %s", storage.ErrMalformedURI, uri)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("%w: missing bucket: %s", storage.ErrMalformedURI, uri)
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}

// bucketSource adapts one bucket of the MinIO client to storage.ObjectSource.
type bucketSource struct {
	client api
	bucket string
}

func (s *bucketSource) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: true}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, classify(obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

func (s *bucketSource) Fetch(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, classify(err)
	}
	return obj, nil
}

// classify maps MinIO error responses onto the shared sentinel errors.
func classify(err error) error {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "AccessDenied":
		return fmt.Errorf("%w: %v", storage.ErrAuthentication, err)
	case "NoSuchKey":
		return fmt.Errorf("%w: %v", storage.ErrObjectNotFound, err)
	}
	return err
}
