package marketdata

import (
	"sort"

	"main/internal/bus"
	"main/internal/schema"
	"main/pkg/exception"

	"github.com/yanun0323/errors"
)

const defaultBookDepth = 10

// Service distributes order-book snapshots keyed by CUSIP and answers
// best-price and depth-aggregation queries against the latest snapshot.
type Service struct {
	hub   *bus.Hub[string, schema.OrderBook]
	depth int
}

// NewService creates a market data service with the given book depth.
// Depth values below one fall back to the default of ten levels per side.
func NewService(depth int) *Service {
	if depth < 1 {
		depth = defaultBookDepth
	}
	return &Service{
		hub:   bus.NewHub[string, schema.OrderBook](),
		depth: depth,
	}
}

// Depth returns the configured per-side book depth.
func (s *Service) Depth() int {
	return s.depth
}

// OnBook accepts an order-book snapshot and fans it out.
func (s *Service) OnBook(book schema.OrderBook) {
	s.hub.Upsert(book.ProductID, book)
}

// Book returns the latest snapshot for a product.
func (s *Service) Book(productID string) (schema.OrderBook, bool) {
	return s.hub.Get(productID)
}

// AddListener registers a downstream consumer of snapshots.
func (s *Service) AddListener(l bus.Listener[schema.OrderBook]) {
	s.hub.AddListener(l)
}

// BestBidOffer returns the best bid and offer of the latest stored
// snapshot for a product.
func (s *Service) BestBidOffer(productID string) (schema.BidOffer, error) {
	book, ok := s.hub.Get(productID)
	if !ok {
		return schema.BidOffer{}, errors.Wrapf(exception.ErrUnknownProduct, "product: %s", productID)
	}
	return BestBidOffer(book)
}

// BestBidOffer selects the maximum-price bid and minimum-price offer from
// a snapshot. The first order seen wins price ties.
func BestBidOffer(book schema.OrderBook) (schema.BidOffer, error) {
	if len(book.BidStack) == 0 {
		return schema.BidOffer{}, errors.Wrapf(exception.ErrEmptyBook, "product: %s, side: BID", book.ProductID)
	}
	if len(book.OfferStack) == 0 {
		return schema.BidOffer{}, errors.Wrapf(exception.ErrEmptyBook, "product: %s, side: OFFER", book.ProductID)
	}

	bestBid := book.BidStack[0]
	for _, o := range book.BidStack[1:] {
		if o.Price > bestBid.Price {
			bestBid = o
		}
	}

	bestOffer := book.OfferStack[0]
	for _, o := range book.OfferStack[1:] {
		if o.Price < bestOffer.Price {
			bestOffer = o
		}
	}

	return schema.BidOffer{Bid: bestBid, Offer: bestOffer}, nil
}

// AggregateDepth groups each side of a snapshot by exact price, summing
// quantity per distinct level. It is a pure function of the input: the
// result holds one level per price per side, bids descending and offers
// ascending, and aggregating an already-aggregated book is a no-op.
func AggregateDepth(book schema.OrderBook) schema.OrderBook {
	return schema.OrderBook{
		ProductID:  book.ProductID,
		BidStack:   aggregateSide(book.BidStack, schema.SideBid, false),
		OfferStack: aggregateSide(book.OfferStack, schema.SideOffer, true),
	}
}

func aggregateSide(stack []schema.Order, side schema.PricingSide, ascending bool) []schema.Order {
	if len(stack) == 0 {
		return nil
	}

	byPrice := make(map[schema.Price]schema.Quantity, len(stack))
	for _, o := range stack {
		byPrice[o.Price] += o.Quantity
	}

	out := make([]schema.Order, 0, len(byPrice))
	for price, qty := range byPrice {
		out = append(out, schema.Order{Price: price, Quantity: qty, Side: side})
	}
	sort.Slice(out, func(i, j int) bool {
		if ascending {
			return out[i].Price < out[j].Price
		}
		return out[i].Price > out[j].Price
	})
	return out
}
