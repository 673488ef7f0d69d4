package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/san-kum/rampsim/internal/geom"
)

// Factory creates an empty world with the given gravity.
type Factory func(gravity geom.Vec2) (World, error)

// DefaultEngine is used when no engine name is configured.
const DefaultEngine = "box2d"

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register makes an adapter available to Open. It panics on duplicate names,
// mirroring database/sql driver registration.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if f == nil {
		panic("engine: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("engine: Register called twice for " + name)
	}
	factories[name] = f
}

func Open(name string, gravity geom.Vec2) (World, error) {
	if name == "" {
		name = DefaultEngine
	}
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownEngine, name, Names())
	}
	return f(gravity)
}

func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
