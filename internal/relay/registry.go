package relay

import (
	"sync"

	"github.com/lekhandas/chatd/internal/models"
)

// Sink is one connection's outbound side. Implementations must be safe for
// concurrent use; the router fans out to many sinks from many goroutines.
type Sink interface {
	Send(event string, payload any) error
}

type entry struct {
	profile models.Profile
	sink    Sink
}

// Registry tracks live sessions by their server-assigned connection id.
// All operations are total: unknown ids are no-ops or absent lookups.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]entry
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]entry)}
}

// Register inserts or overwrites the session for a connection id.
func (r *Registry) Register(id string, profile models.Profile, sink Sink) {
	r.mu.Lock()
	r.sessions[id] = entry{profile: profile, sink: sink}
	r.mu.Unlock()
}

// Unregister removes the session. Idempotent.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Lookup returns the session's profile and sink, if registered.
func (r *Registry) Lookup(id string) (models.Profile, Sink, bool) {
	r.mu.Lock()
	e, ok := r.sessions[id]
	r.mu.Unlock()
	return e.profile, e.sink, ok
}

// ListAll returns a snapshot of every registered profile.
func (r *Registry) ListAll() []models.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()

	profiles := make([]models.Profile, 0, len(r.sessions))
	for _, e := range r.sessions {
		profiles = append(profiles, e.profile)
	}
	return profiles
}

// Others returns the sinks of every session except the given id.
func (r *Registry) Others(id string) []Sink {
	r.mu.Lock()
	defer r.mu.Unlock()

	sinks := make([]Sink, 0, len(r.sessions))
	for sessionID, e := range r.sessions {
		if sessionID == id {
			continue
		}
		sinks = append(sinks, e.sink)
	}
	return sinks
}
