package checkout

import (
	"sync"

	"github.com/maisonbelle/storefront/pkg/logging"
)

// Registry hands out one orchestrator per session, so the single-submission
// guard is scoped to the draft it protects.
type Registry struct {
	api    Submitter
	logger *logging.Logger

	mu            sync.Mutex
	orchestrators map[string]*Orchestrator
}

// NewRegistry creates an orchestrator registry.
func NewRegistry(api Submitter, logger *logging.Logger) *Registry {
	return &Registry{
		api:           api,
		logger:        logger,
		orchestrators: make(map[string]*Orchestrator),
	}
}

// ForSession returns the session's orchestrator, creating it on first use.
func (r *Registry) ForSession(sessionID string) *Orchestrator {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orchestrators[sessionID]
	if !ok {
		o = NewOrchestrator(r.api, r.logger)
		r.orchestrators[sessionID] = o
	}
	return o
}
