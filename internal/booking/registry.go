package booking

import "sync"

// Registry hands out one draft store per session. Drafts are ephemeral:
// they live in process memory and die with it, unlike the cart.
type Registry struct {
	mu     sync.Mutex
	stores map[string]*Store
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{stores: make(map[string]*Store)}
}

// ForSession returns the session's draft store, creating it on first use.
func (r *Registry) ForSession(sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[sessionID]
	if !ok {
		s = NewStore()
		r.stores[sessionID] = s
	}
	return s
}

// Drop discards a session's draft, e.g. after a completed booking.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, sessionID)
}
