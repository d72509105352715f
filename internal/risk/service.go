package risk

import (
	"main/internal/bus"
	"main/internal/schema"
	"main/pkg/exception"

	"github.com/yanun0323/errors"
)

// ServiceType tags this hub's emissions for external sink routing.
const ServiceType = "Risk"

// Service converts merged positions into PV01 risk keyed by CUSIP. The
// PV01-per-unit table is injected at construction; it is never consulted
// globally.
type Service struct {
	hub     *bus.Hub[string, schema.PV01]
	perUnit map[string]float64
}

// NewService creates a risk service over the given PV01-per-unit table.
func NewService(perUnit map[string]float64) *Service {
	table := make(map[string]float64, len(perUnit))
	for cusip, value := range perUnit {
		table[cusip] = value
	}
	return &Service{
		hub:     bus.NewHub[string, schema.PV01](),
		perUnit: table,
	}
}

// Type returns the emission routing tag.
func (s *Service) Type() string {
	return ServiceType
}

// Risk returns the latest PV01 record for a product.
func (s *Service) Risk(productID string) (schema.PV01, bool) {
	return s.hub.Get(productID)
}

// AddListener registers a downstream consumer of risk records.
func (s *Service) AddListener(l bus.Listener[schema.PV01]) {
	s.hub.AddListener(l)
}

// AddPosition recomputes PV01 against the position's aggregate quantity.
// A product missing from the table fails that product's update only; the
// stored risk state is untouched.
func (s *Service) AddPosition(position schema.Position) error {
	perUnit, ok := s.perUnit[position.ProductID]
	if !ok {
		return errors.Wrapf(exception.ErrConfigMissing, "product: %s", position.ProductID)
	}

	s.hub.Upsert(position.ProductID, schema.PV01{
		ProductID: position.ProductID,
		PerUnit:   perUnit,
		Quantity:  position.Aggregate(),
	})
	return nil
}

// BucketedRisk sums pv01-per-unit times last-known aggregate quantity over
// every product in the sector. The quantity field of the result is a
// structural placeholder: the bucketed value lives entirely in PerUnit.
func (s *Service) BucketedRisk(sector schema.BucketedSector) schema.PV01 {
	var total float64
	for _, productID := range sector.ProductIDs {
		pv, ok := s.hub.Get(productID)
		if !ok {
			continue
		}
		total += pv.PerUnit * float64(pv.Quantity)
	}
	return schema.PV01{
		ProductID: sector.Name,
		PerUnit:   total,
		Quantity:  1,
	}
}
