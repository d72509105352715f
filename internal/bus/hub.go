/*
Bus implements the typed publish/subscribe hub every pipeline stage is
composed from.

# Module
  - keyed store: latest value per key, replaced on every write
  - listener registry: ordered, append-only
  - fan-out: synchronous, in registration order, completes before Upsert returns

# Discipline

A hub is single-goroutine. There are no locks and no queues: the whole
pipeline runs cooperatively on the caller's goroutine, so a downstream
stage always observes events in exactly the order the upstream stage
produced them.
*/
package bus

// Listener is the capability set a hub drives on every accepted update.
// Only OnAdd is invoked by this system; OnRemove and OnUpdate exist as
// extension points.
type Listener[V any] interface {
	OnAdd(V)
	OnRemove(V)
	OnUpdate(V)
}

// ListenerFuncs adapts plain functions into a Listener. Nil handlers are
// no-ops.
type ListenerFuncs[V any] struct {
	Add    func(V)
	Remove func(V)
	Update func(V)
}

func (l ListenerFuncs[V]) OnAdd(v V) {
	if l.Add != nil {
		l.Add(v)
	}
}

func (l ListenerFuncs[V]) OnRemove(v V) {
	if l.Remove != nil {
		l.Remove(v)
	}
}

func (l ListenerFuncs[V]) OnUpdate(v V) {
	if l.Update != nil {
		l.Update(v)
	}
}

// Hub holds the latest value per key and fans every accepted update out to
// all registered listeners.
type Hub[K comparable, V any] struct {
	store     map[K]V
	listeners []Listener[V]
}

// NewHub creates an empty hub.
func NewHub[K comparable, V any]() *Hub[K, V] {
	return &Hub[K, V]{store: make(map[K]V)}
}

// Upsert stores the value under the key and invokes every listener's add
// handler in registration order. This is the only mutation entrypoint.
func (h *Hub[K, V]) Upsert(key K, value V) {
	h.store[key] = value
	for _, l := range h.listeners {
		l.OnAdd(value)
	}
}

// Get returns the stored value for the key. Absence is reported, not
// papered over with a default value; each caller decides whether a missing
// key is an error or a legitimate first write.
func (h *Hub[K, V]) Get(key K) (V, bool) {
	v, ok := h.store[key]
	return v, ok
}

// AddListener appends a listener to the registry.
func (h *Hub[K, V]) AddListener(l Listener[V]) {
	h.listeners = append(h.listeners, l)
}

// Listeners returns the registered listeners in registration order.
func (h *Hub[K, V]) Listeners() []Listener[V] {
	return h.listeners
}

// Len returns the number of stored keys.
func (h *Hub[K, V]) Len() int {
	return len(h.store)
}
