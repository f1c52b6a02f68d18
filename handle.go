package params

import (
	"fmt"
	"sync"
)

// Handle is a non-owning reference to an object held by a Registry. A handle
// never keeps its referent alive; resolving a released handle yields nothing.
type Handle struct {
	registry   *Registry
	id         uint64
	generation uint64
}

// Referent is implemented by externally owned objects that parameters must
// store by handle instead of by value.
type Referent interface {
	Handle() Handle
}

// IsZero reports whether h was never issued by a registry.
func (h Handle) IsZero() bool {
	return h.registry == nil && h.id == 0
}

// Resolve returns the referent, or nil when it has been released.
func (h Handle) Resolve() any {
	if h.registry == nil {
		return nil
	}
	obj, _ := h.registry.Resolve(h)
	return obj
}

// Alive reports whether the referent still exists.
func (h Handle) Alive() bool {
	if h.registry == nil {
		return false
	}
	_, ok := h.registry.Resolve(h)
	return ok
}

func (h Handle) String() string {
	return fmt.Sprintf("<handle %d:%d>", h.id, h.generation)
}

type registrySlot struct {
	object     any
	generation uint64
	live       bool
}

// Registry is owned by the subsystem that controls object lifetimes. Slots
// are reused after release with a new generation so stale handles never
// resolve to a different object.
type Registry struct {
	mu    sync.Mutex
	slots []registrySlot
	free  []uint64
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register stores obj and returns its handle.
func (r *Registry) Register(obj any) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		slot := &r.slots[idx]
		slot.object = obj
		slot.generation++
		slot.live = true
		return Handle{registry: r, id: idx + 1, generation: slot.generation}
	}
	r.slots = append(r.slots, registrySlot{object: obj, generation: 1, live: true})
	return Handle{registry: r, id: uint64(len(r.slots)), generation: 1}
}

// Release drops the registry's reference. Outstanding handles stop resolving.
func (r *Registry) Release(h Handle) bool {
	if h.registry != r || h.id == 0 {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := h.id - 1
	if idx >= uint64(len(r.slots)) {
		return false
	}
	slot := &r.slots[idx]
	if !slot.live || slot.generation != h.generation {
		return false
	}
	slot.object = nil
	slot.live = false
	r.free = append(r.free, idx)
	return true
}

// Resolve returns the object behind h when it is still registered.
func (r *Registry) Resolve(h Handle) (any, bool) {
	if r == nil || h.registry != r || h.id == 0 {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := h.id - 1
	if idx >= uint64(len(r.slots)) {
		return nil, false
	}
	slot := r.slots[idx]
	if !slot.live || slot.generation != h.generation {
		return nil, false
	}
	return slot.object, true
}

// Len returns the number of live objects.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots) - len(r.free)
}
