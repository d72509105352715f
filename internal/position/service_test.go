package position

import (
	"testing"

	"main/internal/bus"
	"main/internal/schema"
)

func TestAddTradeNetsAcrossBooks(t *testing.T) {
	s := NewService()

	s.AddTrade(schema.Trade{
		ProductID: "912828V23", TradeID: "T1", Book: "TRSY1",
		Quantity: 1_000_000, Side: schema.SideBuy,
	})
	s.AddTrade(schema.Trade{
		ProductID: "912828V23", TradeID: "T2", Book: "TRSY1",
		Quantity: 400_000, Side: schema.SideSell,
	})
	s.AddTrade(schema.Trade{
		ProductID: "912828V23", TradeID: "T3", Book: "TRSY2",
		Quantity: 200_000, Side: schema.SideBuy,
	})

	p, ok := s.Position("912828V23")
	if !ok {
		t.Fatal("expected a merged position")
	}
	if p.Books["TRSY1"] != 600_000 {
		t.Fatalf("TRSY1 = %d, want 600000", p.Books["TRSY1"])
	}
	if p.Books["TRSY2"] != 200_000 {
		t.Fatalf("TRSY2 = %d, want 200000", p.Books["TRSY2"])
	}
	if p.Aggregate() != 800_000 {
		t.Fatalf("aggregate = %d, want 800000", p.Aggregate())
	}
}

func TestAddTradeKeepsProductsIndependent(t *testing.T) {
	s := NewService()
	s.AddTrade(schema.Trade{
		ProductID: "912828V23", TradeID: "T1", Book: "TRSY1",
		Quantity: 1_000_000, Side: schema.SideBuy,
	})
	s.AddTrade(schema.Trade{
		ProductID: "912810FZ8", TradeID: "T2", Book: "TRSY1",
		Quantity: 2_000_000, Side: schema.SideSell,
	})

	a, _ := s.Position("912828V23")
	b, _ := s.Position("912810FZ8")
	if a.Aggregate() != 1_000_000 || b.Aggregate() != -2_000_000 {
		t.Fatalf("aggregates = %d/%d, want 1000000/-2000000", a.Aggregate(), b.Aggregate())
	}
}

func TestAddTradeFansOutEveryMerge(t *testing.T) {
	s := NewService()
	var seen []schema.Quantity
	s.AddListener(bus.ListenerFuncs[schema.Position]{Add: func(p schema.Position) {
		seen = append(seen, p.Aggregate())
	}})

	trade := schema.Trade{
		ProductID: "912828V23", TradeID: "T1", Book: "TRSY1",
		Quantity: 1_000_000, Side: schema.SideBuy,
	}
	s.AddTrade(trade)
	trade.TradeID = "T2"
	s.AddTrade(trade)

	if len(seen) != 2 || seen[0] != 1_000_000 || seen[1] != 2_000_000 {
		t.Fatalf("expected running aggregates [1000000 2000000], got %v", seen)
	}
}
