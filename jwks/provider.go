// Package jwks retrieves and caches OIDC provider metadata together with
// the provider's JSON Web Key Set.
package jwks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwk"

	"github.com/third-party-auth/go-oidc-auth/internal/oidc"
)

var (
	// ErrProviderUnreachable is returned when the authorization server
	// cannot be reached, times out, or serves an unusable discovery
	// document during a fetch or a TTL-triggered refresh.
	ErrProviderUnreachable = errors.New("authorization server unreachable")

	// ErrMalformedJWKS is returned when the document served at the
	// provider's jwks_uri cannot be parsed as a JSON Web Key Set.
	ErrMalformedJWKS = errors.New("malformed JWKS document")
)

// maxJWKSBytes caps the JWKS response body size. A JWKS is typically
// under 10KB; 1MB leaves generous headroom.
const maxJWKSBytes = 1 * 1024 * 1024

// Snapshot pairs a provider's discovery metadata with the key set published
// at its jwks_uri. Both are fetched together and replaced wholesale on
// refresh, so a Snapshot is always internally consistent.
type Snapshot struct {
	Metadata *oidc.ProviderMetadata
	Keys     jwk.Set
}

// Provider fetches the discovery document from the configured DiscoveryURL
// and the JWKS named inside it. Most likely you will want to use the
// CachingProvider as it avoids refetching remote metadata on every call and
// protects against rate limiting from your provider.
type Provider struct {
	DiscoveryURL string // Required.
	Client       *http.Client
}

// NewProvider builds and returns a new *Provider.
//
// Required options:
//   - WithDiscoveryURL: URL of the provider's openid-configuration document
//
// Optional options:
//   - WithCustomClient: custom HTTP client (timeouts, proxies, TLS config)
func NewProvider(opts ...ProviderOption) (*Provider, error) {
	p := &Provider{
		Client: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if p.DiscoveryURL == "" {
		return nil, fmt.Errorf("discovery URL is required (use WithDiscoveryURL)")
	}

	return p, nil
}

// Fetch performs the two synchronous GETs that make up a refresh: the
// discovery document, then the JWKS it names. Network and status failures
// surface as ErrProviderUnreachable; a JWKS body that does not parse
// surfaces as ErrMalformedJWKS.
func (p *Provider) Fetch(ctx context.Context) (*Snapshot, error) {
	metadata, err := oidc.GetProviderMetadata(ctx, p.Client, p.DiscoveryURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnreachable, err)
	}

	keys, err := p.fetchKeys(ctx, metadata.JWKSURI)
	if err != nil {
		return nil, err
	}

	return &Snapshot{Metadata: metadata, Keys: keys}, nil
}

func (p *Provider) fetchKeys(ctx context.Context, jwksURI string) (jwk.Set, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jwksURI, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build request to get JWKS: %w", err)
	}

	response, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnreachable, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: JWKS endpoint returned status %d", ErrProviderUnreachable, response.StatusCode)
	}

	set, err := jwk.ParseReader(io.LimitReader(response.Body, maxJWKSBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJWKS, err)
	}

	return set, nil
}

// CachingProvider caches the Snapshot fetched by an underlying Provider for
// CacheTTL time, one entry per configured discovery URL. A read after the
// TTL elapses triggers a synchronous refetch before the snapshot is used;
// if that refetch fails the read fails with ErrProviderUnreachable rather
// than serving a key set that may predate a key revocation. The last
// successfully fetched snapshot is kept in memory but is never served past
// its TTL.
type CachingProvider struct {
	*Provider
	CacheTTL time.Duration

	cacheMu sync.RWMutex
	cache   map[string]*cacheEntry
}

// cacheEntry pairs a snapshot with its fetch timestamp. fetchMu serializes
// refreshes so concurrent expired readers trigger exactly one fetch.
type cacheEntry struct {
	snapshot  *Snapshot
	fetchedAt time.Time
	fetchMu   sync.Mutex
}

// NewCachingProvider builds and returns a new *CachingProvider.
// If cacheTTL is zero a default of one hour is used.
//
// Accepts the same options as NewProvider.
func NewCachingProvider(cacheTTL time.Duration, opts ...ProviderOption) (*CachingProvider, error) {
	provider, err := NewProvider(opts...)
	if err != nil {
		return nil, err
	}

	if cacheTTL < 0 {
		return nil, fmt.Errorf("cache TTL cannot be negative")
	}
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	return &CachingProvider{
		Provider: provider,
		CacheTTL: cacheTTL,
		cache:    make(map[string]*cacheEntry),
	}, nil
}

// Snapshot returns the cached metadata/key-set pair for the configured
// discovery URL, refetching it first if the entry is missing or older than
// CacheTTL. Safe for concurrent use: readers proceed under a shared lock
// and at most one fetch per discovery URL is in flight at a time. Callers
// arriving during a refresh wait for it and then read the fresh snapshot.
func (c *CachingProvider) Snapshot(ctx context.Context) (*Snapshot, error) {
	now := time.Now()

	c.cacheMu.RLock()
	entry, exists := c.cache[c.DiscoveryURL]
	if exists && entry.snapshot != nil && now.Sub(entry.fetchedAt) <= c.CacheTTL {
		snapshot := entry.snapshot
		c.cacheMu.RUnlock()
		return snapshot, nil
	}
	c.cacheMu.RUnlock()

	if !exists {
		c.cacheMu.Lock()
		entry, exists = c.cache[c.DiscoveryURL]
		if !exists {
			entry = &cacheEntry{}
			c.cache[c.DiscoveryURL] = entry
		}
		c.cacheMu.Unlock()
	}

	// Serialize refreshes without blocking readers of other entries.
	// The network round-trip happens under fetchMu only, never cacheMu.
	entry.fetchMu.Lock()
	defer entry.fetchMu.Unlock()

	// Another caller may have refreshed while we waited for fetchMu.
	c.cacheMu.RLock()
	snapshot := entry.snapshot
	fetchedAt := entry.fetchedAt
	c.cacheMu.RUnlock()
	if snapshot != nil && time.Now().Sub(fetchedAt) <= c.CacheTTL {
		return snapshot, nil
	}

	fresh, err := c.Fetch(ctx)
	if err != nil {
		// Fail closed: the stale snapshot stays in memory but is not
		// served once its TTL has elapsed.
		return nil, err
	}

	c.cacheMu.Lock()
	entry.snapshot = fresh
	entry.fetchedAt = time.Now()
	c.cacheMu.Unlock()

	return fresh, nil
}

// Metadata returns the cached provider discovery document, refreshing the
// cache first when the TTL has elapsed.
func (c *CachingProvider) Metadata(ctx context.Context) (*oidc.ProviderMetadata, error) {
	snapshot, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Metadata, nil
}

// Keys returns the cached JSON Web Key Set, refreshing the cache first when
// the TTL has elapsed.
func (c *CachingProvider) Keys(ctx context.Context) (jwk.Set, error) {
	snapshot, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Keys, nil
}
