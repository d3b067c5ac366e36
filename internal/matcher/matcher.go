// Package matcher memoizes first-match rule lookups over a ResolvedConfig.
// It is meant for callers that query the same paths repeatedly, such as a
// watcher re-classifying changed files against one resolved build.
package matcher

import (
	"fmt"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vk/bundlecfg/internal/resolver"
)

// DefaultSize is the cache capacity used when New is given a non-positive size.
const DefaultSize = 1024

// noRule marks a cached miss.
const noRule = -1

// Matcher answers "which rule governs this file" with the same result as
// ResolvedConfig.Match, caching the winning rule index per slash-separated
// path. It is safe for concurrent use.
type Matcher struct {
	cfg   *resolver.ResolvedConfig
	cache *lru.Cache[string, int]
}

// New wraps cfg with a cache holding up to size paths.
func New(cfg *resolver.ResolvedConfig, size int) (*Matcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("matcher: resolved config is nil")
	}
	if size <= 0 {
		size = DefaultSize
	}
	cache, err := lru.New[string, int](size)
	if err != nil {
		return nil, fmt.Errorf("matcher: %w", err)
	}
	return &Matcher{cfg: cfg, cache: cache}, nil
}

// Match returns the first rule governing file.
func (m *Matcher) Match(file string) (resolver.Rule, bool) {
	file = filepath.ToSlash(file)
	if idx, ok := m.cache.Get(file); ok {
		if idx == noRule {
			return resolver.Rule{}, false
		}
		return m.cfg.Rule(idx)
	}

	rule, ok := m.cfg.Match(file)
	if !ok {
		m.cache.Add(file, noRule)
		return resolver.Rule{}, false
	}
	m.cache.Add(file, rule.Index)
	return rule, true
}

// Len reports how many paths are cached.
func (m *Matcher) Len() int {
	return m.cache.Len()
}
