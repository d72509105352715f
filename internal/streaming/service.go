package streaming

import (
	"main/internal/bus"
	"main/internal/schema"
)

// ServiceType tags this hub's emissions for external sink routing.
const ServiceType = "Streaming"

// Service publishes two-way price streams to clients, keyed by CUSIP.
type Service struct {
	hub *bus.Hub[string, schema.PriceStream]
}

// NewService creates an empty streaming service.
func NewService() *Service {
	return &Service{hub: bus.NewHub[string, schema.PriceStream]()}
}

// Type returns the emission routing tag.
func (s *Service) Type() string {
	return ServiceType
}

// PublishStream stores the stream and fans it out.
func (s *Service) PublishStream(ps schema.PriceStream) {
	s.hub.Upsert(ps.ProductID, ps)
}

// Stream returns the latest published stream for a product.
func (s *Service) Stream(productID string) (schema.PriceStream, bool) {
	return s.hub.Get(productID)
}

// AddListener registers a downstream consumer of price streams.
func (s *Service) AddListener(l bus.Listener[schema.PriceStream]) {
	s.hub.AddListener(l)
}
