package marketdata

import (
	"strings"
	"testing"

	"main/internal/bus"
	"main/internal/schema"
	"main/pkg/exception"

	"github.com/yanun0323/errors"
)

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg := schema.NewRegistry()
	if err := reg.Add(schema.Bond{CUSIP: "912828V23", Ticker: "T"}); err != nil {
		t.Fatalf("add bond: %v", err)
	}
	return reg
}

func TestIngestBatchesSnapshots(t *testing.T) {
	service := NewService(1)
	var books []schema.OrderBook
	service.AddListener(bus.ListenerFuncs[schema.OrderBook]{Add: func(b schema.OrderBook) {
		books = append(books, b)
	}})

	feed := strings.Join([]string{
		"912828V23,99-310,10000000,BID",
		"912828V23,100-001,10000000,OFFER",
		"912828V23,99-300,20000000,BID",
		"912828V23,100-011,20000000,OFFER",
	}, "\n")

	if err := NewIngestor(service, testRegistry(t)).Ingest(strings.NewReader(feed)); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(books))
	}
	if len(books[0].BidStack) != 1 || len(books[0].OfferStack) != 1 {
		t.Fatalf("expected one order per side, got %d/%d",
			len(books[0].BidStack), len(books[0].OfferStack))
	}
	if books[1].BidStack[0].Quantity != 20_000_000 {
		t.Fatalf("second snapshot should hold the later orders, got %d",
			books[1].BidStack[0].Quantity)
	}
}

func TestIngestDiscardsTrailingPartial(t *testing.T) {
	service := NewService(1)
	var emitted int
	service.AddListener(bus.ListenerFuncs[schema.OrderBook]{Add: func(schema.OrderBook) {
		emitted++
	}})

	feed := strings.Join([]string{
		"912828V23,99-310,10000000,BID",
		"912828V23,100-001,10000000,OFFER",
		"912828V23,99-300,20000000,BID",
	}, "\n")

	if err := NewIngestor(service, testRegistry(t)).Ingest(strings.NewReader(feed)); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if emitted != 1 {
		t.Fatalf("trailing partial batch must not emit, got %d snapshots", emitted)
	}
}

func TestIngestUnknownProduct(t *testing.T) {
	service := NewService(1)
	err := NewIngestor(service, testRegistry(t)).
		Ingest(strings.NewReader("912810FZ8,99-310,1,BID\n"))
	if !errors.Is(err, exception.ErrUnknownProduct) {
		t.Fatalf("expected ErrUnknownProduct, got %v", err)
	}
}

func TestIngestMalformedSide(t *testing.T) {
	service := NewService(1)
	err := NewIngestor(service, testRegistry(t)).
		Ingest(strings.NewReader("912828V23,99-310,1,MID\n"))
	if !errors.Is(err, exception.ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}

func TestIngestBadPriceAborts(t *testing.T) {
	service := NewService(1)
	err := NewIngestor(service, testRegistry(t)).
		Ingest(strings.NewReader("912828V23,99-999,1,BID\n"))
	if !errors.Is(err, exception.ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
}
