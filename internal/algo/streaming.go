package algo

import (
	"main/internal/bus"
	"main/internal/schema"
)

const defaultLotSize schema.Quantity = 1_000_000

// StreamingEngine synthesizes a two-way quote from every internal price.
// The visible size alternates between two lot tiers on a publish counter
// shared across all products; the hidden size is always twice the visible.
type StreamingEngine struct {
	hub   *bus.Hub[string, schema.PriceStream]
	tiers [2]schema.Quantity
	count int64
}

// NewStreamingEngine creates a streaming engine. A non-positive lot size
// falls back to the default million-unit lot.
func NewStreamingEngine(lotSize schema.Quantity) *StreamingEngine {
	if lotSize <= 0 {
		lotSize = defaultLotSize
	}
	return &StreamingEngine{
		hub:   bus.NewHub[string, schema.PriceStream](),
		tiers: [2]schema.Quantity{lotSize, 2 * lotSize},
	}
}

// AddListener registers a downstream consumer of price streams.
func (e *StreamingEngine) AddListener(l bus.Listener[schema.PriceStream]) {
	e.hub.AddListener(l)
}

// Stream returns the latest published stream for a product.
func (e *StreamingEngine) Stream(productID string) (schema.PriceStream, bool) {
	return e.hub.Get(productID)
}

// Published returns the number of quotes published so far.
func (e *StreamingEngine) Published() int64 {
	return e.count
}

// OnQuote publishes exactly one two-way price stream for the input price.
func (e *StreamingEngine) OnQuote(q schema.Quote) {
	bid := q.Mid - q.Spread/2
	offer := q.Mid + q.Spread/2

	visible := e.tiers[e.count%2]
	hidden := 2 * visible
	e.count++

	e.hub.Upsert(q.ProductID, schema.PriceStream{
		ProductID: q.ProductID,
		Bid: schema.PriceStreamOrder{
			Price:      bid,
			VisibleQty: visible,
			HiddenQty:  hidden,
			Side:       schema.SideBid,
		},
		Offer: schema.PriceStreamOrder{
			Price:      offer,
			VisibleQty: visible,
			HiddenQty:  hidden,
			Side:       schema.SideOffer,
		},
	})
}
