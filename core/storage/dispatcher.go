package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Provider downloads the artifacts behind one family of storage URIs.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string
	// CanHandle reports whether this provider recognizes the URI.
	CanHandle(uri string) bool
	// Download materializes everything under uri below dest.
	Download(ctx context.Context, uri, dest string) error
}

// Dispatcher routes a download request to the first registered provider that
// recognizes the URI. Routing is stateless; the dispatcher holds no
// per-download state beyond the log entry it emits.
type Dispatcher struct {
	providers []Provider
	log       *zap.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(log *zap.Logger) *Dispatcher {
	return &Dispatcher{log: log}
}

// Register appends a provider. Order matters: providers with narrow host
// patterns (Azure blob) must be registered before catch-all scheme handlers
// (plain http/https).
func (d *Dispatcher) Register(p Provider) {
	d.providers = append(d.providers, p)
}

// Download resolves uri to a provider and runs the download. Errors from the
// provider are returned unchanged; a URI no provider claims fails with
// ErrUnsupportedScheme.
func (d *Dispatcher) Download(ctx context.Context, uri, dest string) error {
	for _, p := range d.providers {
		if !p.CanHandle(uri) {
			continue
		}

		log := d.log.With(
			zap.String("download_id", uuid.NewString()),
			zap.String("provider", p.Name()),
		)
		log.Info("Downloading artifacts",
			zap.String("uri", uri),
			zap.String("dest", dest),
		)

		if err := p.Download(ctx, uri, dest); err != nil {
			log.Error("Download failed", zap.Error(err))
			return err
		}

		log.Info("Download complete")
		return nil
	}

	return fmt.Errorf("%w: %s", ErrUnsupportedScheme, uri)
}
