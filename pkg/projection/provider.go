package projection

import (
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/driftloom/photofs/pkg/entry"
	"github.com/driftloom/photofs/pkg/errors"
	"github.com/driftloom/photofs/pkg/library"
)

// TypeTag namespaces the photo-album projection among the projection types
// the host engine may support.
const TypeTag = "photos"

// RootProvider is the single entry point the synchronization engine calls to
// obtain a projected filesystem root.
type RootProvider interface {
	// Root returns the root entry for the given opaque configuration
	// identifier.
	Root(configID string) (entry.Entry, error)
}

// Registry maps projection type tags to their providers. The host engine
// registers every projection type it supports here and looks providers up by
// tag when mounting a synthesized folder.
type Registry struct {
	mu        sync.Mutex
	providers map[string]RootProvider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: map[string]RootProvider{}}
}

// Register makes `provider` available under `typeTag`, replacing any
// previous registration for the tag.
func (r *Registry) Register(typeTag string, provider RootProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[typeTag] = provider
}

// Provider returns the provider registered under `typeTag`.
func (r *Registry) Provider(typeTag string) (RootProvider, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	provider, ok := r.providers[typeTag]
	return provider, ok
}

// AlbumRootProvider builds and caches album-projection roots. Roots are
// built at most once per distinct configuration identifier and never
// evicted; changes to album contents surface through the projectors' own
// staleness handling, and meaningful configuration changes arrive as a new
// identifier. Failed builds are not cached, so a later request retries.
type AlbumRootProvider struct {
	library library.Library
	counter *library.ChangeCounter
	clock   clockwork.Clock

	mu    sync.Mutex
	roots map[string]entry.Entry
}

// NewAlbumRootProvider creates a provider that projects albums from `lib`
// and invalidates listings via `counter`.
func NewAlbumRootProvider(lib library.Library, counter *library.ChangeCounter,
	clock clockwork.Clock) *AlbumRootProvider {

	return &AlbumRootProvider{
		library: lib,
		counter: counter,
		clock:   clock,
		roots:   map[string]entry.Entry{},
	}
}

// Root returns the cached root for `configID`, building it on first use.
// The lock covers the whole check-build-insert sequence so that two engine
// workers asking for the same identifier can't race to build it twice.
func (p *AlbumRootProvider) Root(configID string) (entry.Entry, error) {
	if configID == "" {
		return nil, errors.InvalidConfiguration{Reason: "empty configuration identifier"}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if root, ok := p.roots[configID]; ok {
		return root, nil
	}

	root, err := buildRoot(Decode(configID), p.library, p.counter, p.clock)
	if err != nil {
		return nil, errors.WithContext(err, "build root")
	}
	p.roots[configID] = root
	return root, nil
}
