package pricing

import (
	"errors"
	"strings"
	"testing"

	"main/internal/bus"
	"main/internal/schema"
	"main/pkg/exception"
)

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg := schema.NewRegistry()
	if err := reg.Add(schema.Bond{CUSIP: "912828V23", Ticker: "T"}); err != nil {
		t.Fatalf("add bond: %v", err)
	}
	return reg
}

func TestIngestDerivesMidAndSpread(t *testing.T) {
	service := NewService()
	var quotes []schema.Quote
	service.AddListener(bus.ListenerFuncs[schema.Quote]{Add: func(q schema.Quote) {
		quotes = append(quotes, q)
	}})

	feed := "912828V23,99-316,100-002\n"
	if err := NewIngestor(service, testRegistry(t)).Ingest(strings.NewReader(feed)); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	if len(quotes) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(quotes))
	}
	bid := schema.Price(99*256 + 31*8 + 6)
	offer := schema.Price(100*256 + 2)
	if quotes[0].Mid != (bid+offer)/2 {
		t.Fatalf("mid = %d, want %d", quotes[0].Mid, (bid+offer)/2)
	}
	if quotes[0].Spread != offer-bid {
		t.Fatalf("spread = %d, want %d", quotes[0].Spread, offer-bid)
	}

	stored, ok := service.Quote("912828V23")
	if !ok || stored != quotes[0] {
		t.Fatalf("stored quote mismatch: %+v vs %+v", stored, quotes[0])
	}
}

func TestIngestSkipsShortRecords(t *testing.T) {
	service := NewService()
	feed := "912828V23,99-316\n912828V23,99-316,100-002\n"
	if err := NewIngestor(service, testRegistry(t)).Ingest(strings.NewReader(feed)); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if _, ok := service.Quote("912828V23"); !ok {
		t.Fatal("valid record after a short one should still land")
	}
}

func TestIngestUnknownProduct(t *testing.T) {
	service := NewService()
	err := NewIngestor(service, testRegistry(t)).
		Ingest(strings.NewReader("912810FZ8,99-316,100-002\n"))
	if !errors.Is(err, exception.ErrUnknownProduct) {
		t.Fatalf("expected ErrUnknownProduct, got %v", err)
	}
}
