package azure

import (
	"fmt"
	"net/url"
	"strings"

	"model-fetcher/core/storage"
)

const blobHostSuffix = ".blob.core.windows.net"

// Location is the parsed form of an Azure blob URI.
type Location struct {
	// Account is the storage account name, the first label of the host.
	Account string
	// Container is the first path segment. Never empty on a parsed Location.
	Container string
	// Prefix is everything after the container. May be empty, may carry a
	// trailing slash, may name an exact blob.
	Prefix string

	endpoint string
}

// Endpoint returns the account endpoint, scheme and host only.
func (l Location) Endpoint() string {
	return l.endpoint
}

// isBlobURI reports whether the URI points at an Azure blob storage host.
func isBlobURI(uri string) bool {
	u, err := url.Parse(uri)
	return err == nil && strings.HasSuffix(u.Host, blobHostSuffix)
}

// ParseURI splits an Azure blob URI into account, container and prefix.
// A URI without a container segment fails with storage.ErrMalformedURI.
func ParseURI(uri string) (Location, error) {
	u, err := url.Parse(uri)
	if err != nil || !strings.HasSuffix(u.Host, blobHostSuffix) {
		return Location{}, fmt.Errorf("%w: not an azure blob uri: %s", storage.ErrMalformedURI, uri)
	}

	account, _, _ := strings.Cut(u.Host, ".")
	if account == "" {
		return Location{}, fmt.Errorf("%w: missing storage account: %s", storage.ErrMalformedURI, uri)
	}

	container, prefix, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	if container == "" {
		return Location{}, fmt.Errorf("%w: missing container: %s", storage.ErrMalformedURI, uri)
	}

	return Location{
		Account:   account,
		Container: container,
		Prefix:    prefix,
		endpoint:  u.Scheme + "://" + u.Host,
	}, nil
}
