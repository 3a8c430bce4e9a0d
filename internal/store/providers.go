package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/migishaone/xenovaPay/internal/domain"
)

// ProviderCatalog is the seeded reference data for mobile-money providers.
// Inactive providers are excluded from every listing operation.
type ProviderCatalog interface {
	Get(ctx context.Context, code string) (*domain.Provider, error)
	ListAll(ctx context.Context) ([]*domain.Provider, error)
	ListByCountry(ctx context.Context, country string) ([]*domain.Provider, error)
	Create(ctx context.Context, p *domain.Provider) (*domain.Provider, error)
}

type MemoryProviderCatalog struct {
	mu        sync.RWMutex
	providers map[string]*domain.Provider
}

// NewMemoryProviderCatalog seeds the catalog with the fixed provider list.
func NewMemoryProviderCatalog() *MemoryProviderCatalog {
	c := &MemoryProviderCatalog{providers: make(map[string]*domain.Provider)}
	for _, p := range seedProviders {
		cp := p
		c.providers[cp.Code] = &cp
	}
	return c
}

func (c *MemoryProviderCatalog) Get(ctx context.Context, code string) (*domain.Provider, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.providers[code]
	if !ok {
		return nil, domain.NewProviderNotFoundError(code)
	}
	cp := *p
	return &cp, nil
}

func (c *MemoryProviderCatalog) ListAll(ctx context.Context) ([]*domain.Provider, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot(func(*domain.Provider) bool { return true }), nil
}

func (c *MemoryProviderCatalog) ListByCountry(ctx context.Context, country string) ([]*domain.Provider, error) {
	country = strings.ToUpper(country)
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot(func(p *domain.Provider) bool { return p.Country == country }), nil
}

func (c *MemoryProviderCatalog) Create(ctx context.Context, p *domain.Provider) (*domain.Provider, error) {
	if p.Code == "" {
		return nil, domain.NewMissingRequiredFieldError("code")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *p
	c.providers[cp.Code] = &cp
	out := cp
	return &out, nil
}

// snapshot copies matching active providers sorted by code. Callers hold
// the lock.
func (c *MemoryProviderCatalog) snapshot(match func(*domain.Provider) bool) []*domain.Provider {
	out := make([]*domain.Provider, 0, len(c.providers))
	for _, p := range c.providers {
		if !p.IsActive {
			continue
		}
		if match(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
