package position

import (
	"main/internal/bus"
	"main/internal/schema"
)

// ServiceType tags this hub's emissions for external sink routing.
const ServiceType = "Position"

// Service nets booked trades into per-book positions keyed by CUSIP.
type Service struct {
	hub *bus.Hub[string, schema.Position]
}

// NewService creates an empty position service.
func NewService() *Service {
	return &Service{hub: bus.NewHub[string, schema.Position]()}
}

// Type returns the emission routing tag.
func (s *Service) Type() string {
	return ServiceType
}

// Position returns the latest merged position for a product.
func (s *Service) Position(productID string) (schema.Position, bool) {
	return s.hub.Get(productID)
}

// AddListener registers a downstream consumer of merged positions.
func (s *Service) AddListener(l bus.Listener[schema.Position]) {
	s.hub.AddListener(l)
}

// AddTrade applies one trade: the signed quantity accretes into the
// trade's book, every book entry already held for the product merges in,
// and the fully merged position is stored and fanned out. The per-product
// aggregate therefore always equals the sum of every signed trade applied.
func (s *Service) AddTrade(trade schema.Trade) {
	next := schema.NewPosition(trade.ProductID)

	delta := trade.Quantity
	if trade.Side == schema.SideSell {
		delta = -delta
	}
	next.Add(trade.Book, delta)

	if prev, ok := s.hub.Get(trade.ProductID); ok {
		for book, qty := range prev.Books {
			next.Add(book, qty)
		}
	}

	s.hub.Upsert(trade.ProductID, next)
}
