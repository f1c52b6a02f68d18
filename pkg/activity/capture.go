package activity

import (
	"context"
	"sync"
)

// CaptureHook keeps normalized events in memory. Err, when set, is returned
// from every Notify so callers can exercise hook failures.
type CaptureHook struct {
	Events []Event
	Err    error
	mu     sync.Mutex
}

func (h *CaptureHook) Notify(_ context.Context, event Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Events = append(h.Events, NormalizeEvent(event))
	return h.Err
}

// Verbs lists the captured verbs in arrival order.
func (h *CaptureHook) Verbs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	verbs := make([]string, len(h.Events))
	for i, event := range h.Events {
		verbs[i] = event.Verb
	}
	return verbs
}

// Changes returns the last new_value seen for each parameter path.
func (h *CaptureHook) Changes() map[string]any {
	h.mu.Lock()
	defer h.mu.Unlock()
	changes := map[string]any{}
	for _, event := range h.Events {
		if event.Verb == VerbRemoved {
			delete(changes, event.ObjectID)
			continue
		}
		if value, ok := event.Metadata[MetaNewValue]; ok {
			changes[event.ObjectID] = value
		}
	}
	return changes
}

func (h *CaptureHook) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Events = nil
}
