package azure

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"model-fetcher/core/storage"
)

// Provider downloads from Azure blob storage.
type Provider struct {
	factory ClientFactory
	tokens  TokenProvider
	fs      afero.Fs
	log     *zap.Logger
}

// NewProvider creates a provider backed by the real blob SDK and a service
// principal token source built from cfg.
func NewProvider(cfg Config, fsys afero.Fs, log *zap.Logger) *Provider {
	return newProvider(NewContainerClient, &servicePrincipalTokens{cfg: cfg}, fsys, log)
}

func newProvider(factory ClientFactory, tokens TokenProvider, fsys afero.Fs, log *zap.Logger) *Provider {
	return &Provider{
		factory: factory,
		tokens:  tokens,
		fs:      fsys,
		log:     log,
	}
}

// Name identifies the provider in logs.
func (p *Provider) Name() string {
	return "azure"
}

// CanHandle claims every URI on a blob storage host, well-formed or not, so
// that a blob URL missing its container fails with a parse error instead of
// falling through to the generic https handler.
func (p *Provider) CanHandle(uri string) bool {
	return isBlobURI(uri)
}

// Download lists the blobs under the URI's prefix and writes them below dest.
//
// The listing is attempted with an anonymous pipeline first. If the service
// rejects it with an authentication failure a token is acquired, the client
// is rebuilt with a token credential and the listing is retried once. Any
// failure of the second attempt is terminal.
func (p *Provider) Download(ctx context.Context, uri, dest string) error {
	loc, err := ParseURI(uri)
	if err != nil {
		return err
	}

	client, err := p.factory(loc.Endpoint(), loc.Container, "")
	if err != nil {
		return err
	}

	keys, err := client.List(ctx, loc.Prefix)
	if storage.IsAuthentication(err) {
		p.log.Info("Anonymous access rejected, acquiring storage token",
			zap.String("account", loc.Account),
			zap.String("container", loc.Container),
		)

		token, terr := p.tokens.Token(ctx)
		if terr != nil {
			return fmt.Errorf("acquire storage token: %w", terr)
		}

		client, err = p.factory(loc.Endpoint(), loc.Container, token)
		if err != nil {
			return err
		}
		keys, err = client.List(ctx, loc.Prefix)
	}
	if err != nil {
		return err
	}

	return storage.WriteObjects(ctx, client, p.fs, loc.Prefix, dest, keys, p.log)
}
