package pricing

import (
	"main/internal/bus"
	"main/internal/schema"
)

// Service distributes internal prices (mid and bid/offer spread) keyed by
// CUSIP.
type Service struct {
	hub *bus.Hub[string, schema.Quote]
}

// NewService creates an empty pricing service.
func NewService() *Service {
	return &Service{hub: bus.NewHub[string, schema.Quote]()}
}

// OnQuote accepts a price update and fans it out.
func (s *Service) OnQuote(q schema.Quote) {
	s.hub.Upsert(q.ProductID, q)
}

// Quote returns the latest price for a product.
func (s *Service) Quote(productID string) (schema.Quote, bool) {
	return s.hub.Get(productID)
}

// AddListener registers a downstream consumer of prices.
func (s *Service) AddListener(l bus.Listener[schema.Quote]) {
	s.hub.AddListener(l)
}
