// Package mdg generates the synthetic input files the pipeline ingests:
// prices, order-book updates, trades, and customer inquiries.
package mdg

import (
	"fmt"
	"io"

	"main/internal/codec"
	"main/internal/schema"

	"github.com/google/uuid"
)

const (
	floorPrice   = 99 * schema.TicksPerPoint
	ceilingPrice = 101 * schema.TicksPerPoint

	minSpread = schema.TicksPerPoint / 128
	maxSpread = schema.TicksPerPoint / 32
)

var tradingBooks = [...]string{"TRSY1", "TRSY2", "TRSY3"}

// Generator creates deterministic synthetic feeds for every bond in the
// registry. Mid prices oscillate between 99 and 101 in 1/256 steps and
// the top-of-book spread widens from 1/128 to 1/32 and back.
type Generator struct {
	registry *schema.Registry
	depth    int
}

// NewGenerator creates a generator over all registered bonds.
func NewGenerator(registry *schema.Registry, depth int) (*Generator, error) {
	if registry == nil || registry.Count() == 0 {
		return nil, fmt.Errorf("registry has no bonds")
	}
	if depth <= 0 {
		return nil, fmt.Errorf("book depth must be > 0")
	}
	return &Generator{registry: registry, depth: depth}, nil
}

// oscillator walks a value between lo and hi inclusive, reversing at
// each bound.
type oscillator struct {
	value schema.Price
	lo    schema.Price
	hi    schema.Price
	step  schema.Price
	up    bool
}

func newOscillator(lo, hi, step schema.Price) *oscillator {
	return &oscillator{value: lo, lo: lo, hi: hi, step: step, up: true}
}

func (o *oscillator) next() schema.Price {
	v := o.value
	if o.up {
		o.value += o.step
		if o.value >= o.hi {
			o.value = o.hi
			o.up = false
		}
	} else {
		o.value -= o.step
		if o.value <= o.lo {
			o.value = o.lo
			o.up = true
		}
	}
	return v
}

// WritePrices emits n price rows per bond: cusip, bid, offer.
func (g *Generator) WritePrices(w io.Writer, n int) error {
	for i := 0; i < g.registry.Count(); i++ {
		bond, ok := g.registry.At(i)
		if !ok {
			continue
		}
		mid := newOscillator(floorPrice, ceilingPrice, 1)
		spread := newOscillator(minSpread, 2*minSpread, 1)
		for row := 0; row < n; row++ {
			m, half := mid.next(), spread.next()/2
			_, err := fmt.Fprintf(w, "%s,%s,%s\n",
				bond.CUSIP,
				codec.FormatPrice(m-half),
				codec.FormatPrice(m+half),
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteOrderBooks emits n order-book snapshots per bond as a flat order
// feed: cusip, price, quantity, side. Each snapshot spans depth levels
// per side, level quantity grows by 10M per level, and deeper levels
// step away from the top by one tick.
func (g *Generator) WriteOrderBooks(w io.Writer, n int) error {
	for i := 0; i < g.registry.Count(); i++ {
		bond, ok := g.registry.At(i)
		if !ok {
			continue
		}
		mid := newOscillator(floorPrice, ceilingPrice, 1)
		spread := newOscillator(minSpread, maxSpread, 1)
		for snap := 0; snap < n; snap++ {
			m, half := mid.next(), spread.next()/2
			for level := 0; level < g.depth; level++ {
				qty := schema.Quantity(level+1) * 10_000_000
				step := schema.Price(level)
				_, err := fmt.Fprintf(w, "%s,%s,%d,BID\n",
					bond.CUSIP, codec.FormatPrice(m-half-step), qty)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(w, "%s,%s,%d,OFFER\n",
					bond.CUSIP, codec.FormatPrice(m+half+step), qty)
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// WriteTrades emits n trade rows per bond: cusip, trade id, price,
// book, quantity, side. Trades alternate BUY at 99 and SELL at 100,
// quantities cycle 1M through 5M, and books rotate across the three
// trading books.
func (g *Generator) WriteTrades(w io.Writer, n int) error {
	for i := 0; i < g.registry.Count(); i++ {
		bond, ok := g.registry.At(i)
		if !ok {
			continue
		}
		for row := 0; row < n; row++ {
			price := schema.Price(99 * schema.TicksPerPoint)
			side := "BUY"
			if row%2 == 1 {
				price = 100 * schema.TicksPerPoint
				side = "SELL"
			}
			_, err := fmt.Fprintf(w, "%s,T%s,%s,%s,%d,%s\n",
				bond.CUSIP,
				uuid.NewString(),
				codec.FormatPrice(price),
				tradingBooks[row%len(tradingBooks)],
				schema.Quantity(row%5+1)*1_000_000,
				side,
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteInquiries emits n inquiry rows per bond in the RECEIVED state:
// inquiry id, cusip, side, quantity, price.
func (g *Generator) WriteInquiries(w io.Writer, n int) error {
	for i := 0; i < g.registry.Count(); i++ {
		bond, ok := g.registry.At(i)
		if !ok {
			continue
		}
		for row := 0; row < n; row++ {
			side := "BUY"
			if row%2 == 1 {
				side = "SELL"
			}
			_, err := fmt.Fprintf(w, "INQ%s,%s,%s,%d,%s,RECEIVED\n",
				uuid.NewString(),
				bond.CUSIP,
				side,
				schema.Quantity(row%5+1)*1_000_000,
				codec.FormatPrice(100*schema.TicksPerPoint),
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
