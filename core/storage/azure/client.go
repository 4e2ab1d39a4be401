package azure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Azure/azure-storage-blob-go/azblob"

	"model-fetcher/core/storage"
)

// ClientFactory constructs an ObjectSource over one blob container. An empty
// token selects the anonymous pipeline.
type ClientFactory func(endpoint, container, token string) (storage.ObjectSource, error)

// NewContainerClient is the production ClientFactory backed by the Azure
// blob SDK.
func NewContainerClient(endpoint, container, token string) (storage.ObjectSource, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", storage.ErrMalformedURI, endpoint)
	}

	var cred azblob.Credential
	if token == "" {
		cred = azblob.NewAnonymousCredential()
	} else {
		cred = azblob.NewTokenCredential(token, nil)
	}

	pipeline := azblob.NewPipeline(cred, azblob.PipelineOptions{})
	return &containerClient{
		url: azblob.NewServiceURL(*u, pipeline).NewContainerURL(container),
	}, nil
}

// containerClient adapts an azblob ContainerURL to storage.ObjectSource.
type containerClient struct {
	url azblob.ContainerURL
}

func (c *containerClient) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	opt := azblob.ListBlobsSegmentOptions{Prefix: prefix}

	// ListBlobsFlatSegment returns the start of the next segment; the marker
	// must be carried forward to fetch the following page.
	for marker := (azblob.Marker{}); marker.NotDone(); {
		resp, err := c.url.ListBlobsFlatSegment(ctx, marker, opt)
		if err != nil {
			return nil, classify(err)
		}
		marker = resp.NextMarker

		for _, item := range resp.Segment.BlobItems {
			keys = append(keys, item.Name)
		}
	}

	return keys, nil
}

func (c *containerClient) Fetch(ctx context.Context, key string) (io.ReadCloser, error) {
	resp, err := c.url.NewBlockBlobURL(key).Download(
		ctx, 0, azblob.CountToEnd, azblob.BlobAccessConditions{}, false, azblob.ClientProvidedKeyOptions{})
	if err != nil {
		return nil, classify(err)
	}
	return resp.Body(azblob.RetryReaderOptions{}), nil
}

// classify maps azblob service errors onto the shared sentinel errors so the
// credential fallback and the caller can match on them with errors.Is.
func classify(err error) error {
	var serr azblob.StorageError
	if !errors.As(err, &serr) {
		return err
	}

	if resp := serr.Response(); resp != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", storage.ErrAuthentication, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", storage.ErrObjectNotFound, err)
		}
	}
	return err
}
