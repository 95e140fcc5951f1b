package websocket

import "sync"

// Registry maps a player's logical identity to their live connection for
// targeted pushes. It is process-local and rebuilt from nothing after a
// restart: players re-announce themselves by reconnecting.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewRegistry creates an empty registry. It is constructed explicitly and
// injected so tests can run isolated instances.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*Client)}
}

// Bind points a player id at a connection, replacing any earlier binding.
// Reconnecting with a fresh connection simply overwrites the stale one.
func (r *Registry) Bind(playerID string, client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[playerID] = client
}

// Unbind removes whatever entry currently maps to this connection. If the
// player already re-bound to a newer connection, that binding survives.
func (r *Registry) Unbind(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for playerID, bound := range r.clients {
		if bound == client {
			delete(r.clients, playerID)
			return
		}
	}
}

// Resolve returns the live connection for a player, if any.
func (r *Registry) Resolve(playerID string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[playerID]
	return client, ok
}
