// Package catalog exposes the high-level mutation and retrieval operations
// of the metadata catalog. A Catalog wraps a transport.Client with the
// fetch-trim-mutate-save protocol: convenience operations retrieve the
// current asset, reduce it to its required identity fields, apply the
// requested change, and send the minimal payload back.
package catalog

import (
	"log/slog"
	"time"

	"github.com/txn2/catalog-go/pkg/transport"
)

const (
	defaultRestoreRetries  = 5
	defaultRestoreInterval = 2 * time.Second
)

// Catalog is the entry point for all catalog operations. Construct one per
// tenant with New; it is safe for concurrent use if the underlying client is.
type Catalog struct {
	client transport.Client
	caches transport.Caches
	logger *slog.Logger

	maxRestoreRetries int
	restoreInterval   time.Duration
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCaches provides the role, group, and user identity caches used to
// validate connection admins before creation.
func WithCaches(caches transport.Caches) Option {
	return func(c *Catalog) { c.caches = caches }
}

// WithRestoreRetries bounds how many times Restore polls for the asset to
// leave the DELETED state.
func WithRestoreRetries(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.maxRestoreRetries = n
		}
	}
}

// WithRestoreInterval sets the base delay between restore polls.
func WithRestoreInterval(d time.Duration) Option {
	return func(c *Catalog) {
		if d > 0 {
			c.restoreInterval = d
		}
	}
}

// New builds a Catalog over the given transport client.
func New(client transport.Client, opts ...Option) *Catalog {
	c := &Catalog{
		client:            client,
		logger:            slog.Default(),
		maxRestoreRetries: defaultRestoreRetries,
		restoreInterval:   defaultRestoreInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
