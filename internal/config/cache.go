package config

import (
	"strings"
	"time"
)

// CacheConfig defines settings for the response cache middleware.
// When Enabled is false or no Redis client is configured, caching will be disabled.
// Methods lists the HTTP methods to cache (e.g. GET, HEAD).  Routes lists
// the route patterns that may be cached; pages holding past or upcoming
// shows are left out because they depend on the current time.  KeyStrategy
// determines which parts of the request contribute to the cache key.
type CacheConfig struct {
	Enabled      bool          `env:"CACHE_ENABLED" envDefault:"true"`
	Methods      []string      `env:"CACHE_METHODS" envDefault:"GET"`
	Routes       []string      `env:"CACHE_ROUTES" envDefault:"/artists,/venues/create,/artists/create,/shows/create,/venues/:id/edit,/artists/:id/edit"`
	TTL          time.Duration `env:"CACHE_TTL" envDefault:"30s"`
	KeyStrategy  string        `env:"CACHE_KEY_STRATEGY" envDefault:"route_query"`
	Prefix       string        `env:"CACHE_PREFIX" envDefault:"cache"`
	MaxBodyBytes int           `env:"CACHE_MAX_BODY_BYTES" envDefault:"1048576"`
}

// MethodSet returns Methods as a lookup set.
func (c CacheConfig) MethodSet() map[string]bool {
	m := map[string]bool{}
	for _, p := range c.Methods {
		m[p] = true
	}
	return m
}

// RouteSet returns Routes as a lookup set.
func (c CacheConfig) RouteSet() map[string]bool {
	m := map[string]bool{}
	for _, r := range c.Routes {
		m[r] = true
	}
	return m
}

func (c *CacheConfig) normalize() {
	methods := c.Methods[:0]
	for _, p := range c.Methods {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			methods = append(methods, p)
		}
	}
	c.Methods = methods
	routes := c.Routes[:0]
	for _, r := range c.Routes {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if len(r) > 1 {
			r = strings.TrimSuffix(r, "/")
		}
		routes = append(routes, r)
	}
	c.Routes = routes
	if c.TTL <= 0 {
		c.TTL = time.Second
	}
}
