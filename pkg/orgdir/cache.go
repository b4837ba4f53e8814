package orgdir

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Directory is the lookup contract shared by every backend in this package.
type Directory interface {
	ResolveOrganizationID(ctx context.Context, tenantDomain string) (string, error)
}

const (
	// DefaultCacheSize is the default maximum number of cached tenant domains.
	DefaultCacheSize = 1000
	// DefaultCacheTTL is how long a resolved organization id stays cached.
	DefaultCacheTTL = 5 * time.Minute

	sweepInterval = time.Minute
)

// CachedDirectory memoizes successful lookups of another Directory with a
// TTL and a size-bounded LRU. Failures are never cached.
type CachedDirectory struct {
	next    Directory
	ttl     time.Duration
	maxSize int
	now     func() time.Time

	mu     sync.Mutex
	items  map[string]*list.Element
	order  *list.List // front is most recently used
	stop   chan struct{}
	done   chan struct{}
	closed bool
}

type cacheEntry struct {
	domain    string
	orgID     string
	expiresAt time.Time
}

// CacheOption configures a CachedDirectory.
type CacheOption func(*CachedDirectory)

// WithTTL sets the entry lifetime. Non-positive values are ignored.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *CachedDirectory) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithMaxSize bounds the number of cached entries. Non-positive values are ignored.
func WithMaxSize(n int) CacheOption {
	return func(c *CachedDirectory) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

func withClock(now func() time.Time) CacheOption {
	return func(c *CachedDirectory) { c.now = now }
}

// NewCachedDirectory wraps next and starts a background sweeper.
// Call Close to stop it.
func NewCachedDirectory(next Directory, opts ...CacheOption) *CachedDirectory {
	c := &CachedDirectory{
		next:    next,
		ttl:     DefaultCacheTTL,
		maxSize: DefaultCacheSize,
		now:     time.Now,
		items:   make(map[string]*list.Element),
		order:   list.New(),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.sweep()

	return c
}

func (c *CachedDirectory) ResolveOrganizationID(ctx context.Context, tenantDomain string) (string, error) {
	key := normalizeDomain(tenantDomain)
	if id, ok := c.get(key); ok {
		return id, nil
	}

	id, err := c.next.ResolveOrganizationID(ctx, tenantDomain)
	if err != nil {
		return "", err
	}

	c.set(key, id)
	return id, nil
}

// Len reports the number of cached entries, expired ones included.
func (c *CachedDirectory) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Close stops the sweeper and waits for it to exit. It is idempotent.
func (c *CachedDirectory) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.stop)
	<-c.done
	return nil
}

func (c *CachedDirectory) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return "", false
	}

	entry := el.Value.(*cacheEntry)
	if c.now().After(entry.expiresAt) {
		c.removeElement(el)
		return "", false
	}

	c.order.MoveToFront(el)
	return entry.orgID, true
}

func (c *CachedDirectory) set(key, orgID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if el, ok := c.items[key]; ok {
		entry := el.Value.(*cacheEntry)
		entry.orgID = orgID
		entry.expiresAt = expiresAt
		c.order.MoveToFront(el)
		return
	}

	for c.order.Len() >= c.maxSize {
		c.removeElement(c.order.Back())
	}

	c.items[key] = c.order.PushFront(&cacheEntry{domain: key, orgID: orgID, expiresAt: expiresAt})
}

func (c *CachedDirectory) removeElement(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*cacheEntry).domain)
}

func (c *CachedDirectory) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *CachedDirectory) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if now.After(el.Value.(*cacheEntry).expiresAt) {
			c.removeElement(el)
		}
		el = prev
	}
}
