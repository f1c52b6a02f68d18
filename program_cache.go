package params

import (
	"sort"
	"strings"
	"sync"
)

// ProgramCache stores compiled expression programs. Keys combine the engine
// name with the expression so one cache can serve every evaluator.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// WithProgramCache shares compiled verify programs across containers.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *containerConfig) {
		cfg.programCache = cache
	}
}

// cachedProgram returns the program stored under key or compiles and stores
// a new one. Entries of another type are treated as misses.
func cachedProgram[P any](cache ProgramCache, key string, compile func() (P, error)) (P, error) {
	if cache != nil {
		if cached, ok := cache.Get(key); ok {
			if program, ok := cached.(P); ok {
				return program, nil
			}
		}
	}
	program, err := compile()
	if err != nil {
		return program, err
	}
	if cache != nil {
		cache.Set(key, program)
	}
	return program, nil
}

func programKey(engine, expression string, variables ...string) string {
	if len(variables) == 0 {
		return engine + "\x00" + expression
	}
	sorted := append([]string(nil), variables...)
	sort.Strings(sorted)
	return engine + "\x00" + strings.Join(sorted, ",") + "\x00" + expression
}

type memoryProgramCache struct {
	mu       sync.RWMutex
	programs map[string]any
}

// NewProgramCache returns an unbounded in-memory ProgramCache safe for
// concurrent use.
func NewProgramCache() ProgramCache {
	return &memoryProgramCache{programs: make(map[string]any)}
}

func (c *memoryProgramCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	program, ok := c.programs[key]
	return program, ok
}

func (c *memoryProgramCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.programs[key] = value
}
