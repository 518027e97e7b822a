package engine

import "sync"

// Engine is the in-memory, multi-index record store (spec §1-2). It owns
// one entityState per configured entity and serializes mutations per
// entity via that entity's own RWMutex; the Engine-level mutex only guards
// the entities map itself (entity registration happens once, at Warm).
type Engine struct {
	mu          sync.RWMutex
	entities    map[string]*entityState
	broadcaster Broadcaster
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithBroadcaster injects a pub/sub sink (spec §6). Without one, mutation
// events are silently discarded.
func WithBroadcaster(b Broadcaster) Option {
	return func(e *Engine) { e.broadcaster = b }
}

// New constructs an empty Engine. Entities are added via Warm.
func New(opts ...Option) *Engine {
	e := &Engine{
		entities:    make(map[string]*entityState),
		broadcaster: noopBroadcaster{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) entity(name string) (*entityState, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	st, ok := e.entities[name]
	if !ok {
		return nil, errUnknownEntity(name)
	}
	return st, nil
}

func (e *Engine) registerEntity(st *entityState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.entities[st.cfg.Name] = st
}

// publish forwards a mutation event to the configured Broadcaster. Per
// spec §4.3 "Observability", this is only ever called for fingerprint
// (view) prefilters.
func (e *Engine) publish(fingerprint string, msg Event) {
	msg.Fingerprint = fingerprint
	e.broadcaster.Publish(fingerprint, msg)
}
