package hist

import (
	"main/internal/bus"
	"main/pkg/exception"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
)

// Sink records rendered rows for an emitting service. The pipeline core
// never knows the physical destination; routing happens on the service
// tag.
type Sink interface {
	Persist(service, key string, fields []string) error
	Close() error
}

// Service archives every entity an upstream hub emits, keyed by a
// persist key, and hands the rendered row to its sink.
type Service[V any] struct {
	tag    string
	keyOf  func(V) string
	render func(V) []string
	hub    *bus.Hub[string, V]
	sink   Sink
}

// NewService creates a historical data service for one emitting stage.
func NewService[V any](tag string, keyOf func(V) string, render func(V) []string, sink Sink) (*Service[V], error) {
	if keyOf == nil || render == nil {
		return nil, errors.Wrap(exception.ErrInvalidArgument, "hist: nil key or render func")
	}
	if sink == nil {
		return nil, errors.Wrap(exception.ErrNilInstance, "hist: nil sink")
	}
	return &Service[V]{
		tag:    tag,
		keyOf:  keyOf,
		render: render,
		hub:    bus.NewHub[string, V](),
		sink:   sink,
	}, nil
}

// Type returns the service tag rows are routed under.
func (s *Service[V]) Type() string {
	return s.tag
}

// Listener adapts the service into an upstream hub listener.
func (s *Service[V]) Listener() bus.Listener[V] {
	return bus.ListenerFuncs[V]{Add: s.Persist}
}

// Get returns the latest archived value for a persist key.
func (s *Service[V]) Get(key string) (V, bool) {
	return s.hub.Get(key)
}

// Persist stores the value and writes its rendered row to the sink. A
// sink failure is logged and does not propagate upstream into the
// emitting stage.
func (s *Service[V]) Persist(v V) {
	key := s.keyOf(v)
	s.hub.Upsert(key, v)
	if err := s.sink.Persist(s.tag, key, s.render(v)); err != nil {
		logs.Errorf("persist %s row for %s: %+v", s.tag, key, err)
	}
}
