package execution

import (
	"main/internal/bus"
	"main/internal/schema"
)

// ServiceType tags this hub's emissions for external sink routing.
const ServiceType = "Execution"

// Service executes synthesized orders on the exchange boundary, keyed by
// CUSIP. It stores each order and fans it out for booking and persistence.
type Service struct {
	hub *bus.Hub[string, schema.ExecutionOrder]
}

// NewService creates an empty execution service.
func NewService() *Service {
	return &Service{hub: bus.NewHub[string, schema.ExecutionOrder]()}
}

// Type returns the emission routing tag.
func (s *Service) Type() string {
	return ServiceType
}

// ExecuteOrder stores the order and fans it out.
func (s *Service) ExecuteOrder(order schema.ExecutionOrder) {
	s.hub.Upsert(order.ProductID, order)
}

// Order returns the latest executed order for a product.
func (s *Service) Order(productID string) (schema.ExecutionOrder, bool) {
	return s.hub.Get(productID)
}

// AddListener registers a downstream consumer of executed orders.
func (s *Service) AddListener(l bus.Listener[schema.ExecutionOrder]) {
	s.hub.AddListener(l)
}
