package marketdata

import (
	"reflect"
	"testing"

	"main/internal/schema"
	"main/pkg/exception"

	"github.com/yanun0323/errors"
)

func twoSidedBook() schema.OrderBook {
	return schema.OrderBook{
		ProductID: "912828V23",
		BidStack: []schema.Order{
			{Price: 25594, Quantity: 10_000_000, Side: schema.SideBid},
			{Price: 25596, Quantity: 20_000_000, Side: schema.SideBid},
			{Price: 25590, Quantity: 30_000_000, Side: schema.SideBid},
		},
		OfferStack: []schema.Order{
			{Price: 25602, Quantity: 10_000_000, Side: schema.SideOffer},
			{Price: 25598, Quantity: 20_000_000, Side: schema.SideOffer},
			{Price: 25604, Quantity: 30_000_000, Side: schema.SideOffer},
		},
	}
}

func TestBestBidOffer(t *testing.T) {
	bo, err := BestBidOffer(twoSidedBook())
	if err != nil {
		t.Fatalf("BestBidOffer: %v", err)
	}
	if bo.Bid.Price != 25596 || bo.Offer.Price != 25598 {
		t.Fatalf("expected 25596/25598, got %d/%d", bo.Bid.Price, bo.Offer.Price)
	}
	if bo.Spread() != 2 {
		t.Fatalf("expected spread 2, got %d", bo.Spread())
	}
}

func TestBestBidOfferTieFirstWins(t *testing.T) {
	book := schema.OrderBook{
		ProductID: "912828V23",
		BidStack: []schema.Order{
			{Price: 25596, Quantity: 1, Side: schema.SideBid},
			{Price: 25596, Quantity: 2, Side: schema.SideBid},
		},
		OfferStack: []schema.Order{
			{Price: 25598, Quantity: 3, Side: schema.SideOffer},
			{Price: 25598, Quantity: 4, Side: schema.SideOffer},
		},
	}
	bo, err := BestBidOffer(book)
	if err != nil {
		t.Fatalf("BestBidOffer: %v", err)
	}
	if bo.Bid.Quantity != 1 || bo.Offer.Quantity != 3 {
		t.Fatalf("expected first order to win ties, got %d/%d", bo.Bid.Quantity, bo.Offer.Quantity)
	}
}

func TestBestBidOfferEmptySide(t *testing.T) {
	book := twoSidedBook()
	book.OfferStack = nil
	if _, err := BestBidOffer(book); !errors.Is(err, exception.ErrEmptyBook) {
		t.Fatalf("expected ErrEmptyBook, got %v", err)
	}

	book = twoSidedBook()
	book.BidStack = nil
	if _, err := BestBidOffer(book); !errors.Is(err, exception.ErrEmptyBook) {
		t.Fatalf("expected ErrEmptyBook, got %v", err)
	}
}

func TestServiceBestBidOfferUnknownProduct(t *testing.T) {
	s := NewService(10)
	if _, err := s.BestBidOffer("912828V23"); !errors.Is(err, exception.ErrUnknownProduct) {
		t.Fatalf("expected ErrUnknownProduct, got %v", err)
	}
}

func TestAggregateDepth(t *testing.T) {
	book := schema.OrderBook{
		ProductID: "912828V23",
		BidStack: []schema.Order{
			{Price: 25596, Quantity: 10, Side: schema.SideBid},
			{Price: 25594, Quantity: 20, Side: schema.SideBid},
			{Price: 25596, Quantity: 30, Side: schema.SideBid},
		},
		OfferStack: []schema.Order{
			{Price: 25598, Quantity: 5, Side: schema.SideOffer},
			{Price: 25598, Quantity: 5, Side: schema.SideOffer},
			{Price: 25600, Quantity: 7, Side: schema.SideOffer},
		},
	}

	got := AggregateDepth(book)
	wantBids := []schema.Order{
		{Price: 25596, Quantity: 40, Side: schema.SideBid},
		{Price: 25594, Quantity: 20, Side: schema.SideBid},
	}
	wantOffers := []schema.Order{
		{Price: 25598, Quantity: 10, Side: schema.SideOffer},
		{Price: 25600, Quantity: 7, Side: schema.SideOffer},
	}
	if !reflect.DeepEqual(got.BidStack, wantBids) {
		t.Fatalf("bid stack = %v, want %v", got.BidStack, wantBids)
	}
	if !reflect.DeepEqual(got.OfferStack, wantOffers) {
		t.Fatalf("offer stack = %v, want %v", got.OfferStack, wantOffers)
	}

	again := AggregateDepth(got)
	if !reflect.DeepEqual(again, got) {
		t.Fatalf("aggregating an aggregated book changed it: %v vs %v", again, got)
	}
}

func TestAggregateDepthEmptyBook(t *testing.T) {
	got := AggregateDepth(schema.OrderBook{ProductID: "912828V23"})
	if got.BidStack != nil || got.OfferStack != nil {
		t.Fatalf("expected empty stacks, got %v / %v", got.BidStack, got.OfferStack)
	}
}
