package algo

import (
	"strconv"

	"main/internal/bus"
	"main/internal/marketdata"
	"main/internal/schema"

	"github.com/yanun0323/logs"
)

// maxCrossSpread is the widest top-of-book spread the execution engine
// will cross: 1/128 of a point.
const maxCrossSpread = schema.TicksPerPoint / 128

// parentOrderID is the fixed parent sentinel stamped on every synthesized
// order; the engine never produces child orders.
const parentOrderID = "PARENT_ORDER_ID"

// ExecutionEngine turns order-book snapshots into market orders whenever
// the spread is tight enough to cross cheaply. Successive executions
// alternate between hitting the bid and lifting the offer.
type ExecutionEngine struct {
	hub   *bus.Hub[string, schema.ExecutionOrder]
	count int64
}

// NewExecutionEngine creates an execution engine with no executions yet.
func NewExecutionEngine() *ExecutionEngine {
	return &ExecutionEngine{hub: bus.NewHub[string, schema.ExecutionOrder]()}
}

// AddListener registers a downstream consumer of synthesized orders.
func (e *ExecutionEngine) AddListener(l bus.Listener[schema.ExecutionOrder]) {
	e.hub.AddListener(l)
}

// Order returns the latest synthesized order for a product.
func (e *ExecutionEngine) Order(productID string) (schema.ExecutionOrder, bool) {
	return e.hub.Get(productID)
}

// Executions returns the number of orders synthesized so far.
func (e *ExecutionEngine) Executions() int64 {
	return e.count
}

// OnBook evaluates one snapshot. A spread above the threshold is a defined
// no-op: nothing is emitted and the execution counter does not advance.
func (e *ExecutionEngine) OnBook(book schema.OrderBook) {
	bo, err := marketdata.BestBidOffer(book)
	if err != nil {
		logs.Warnf("skip snapshot without two-sided book: %v", err)
		return
	}

	if bo.Spread() > maxCrossSpread {
		return
	}

	var (
		side  schema.PricingSide
		price schema.Price
		qty   schema.Quantity
	)
	if e.count%2 == 1 {
		side, price, qty = schema.SideBid, bo.Bid.Price, bo.Bid.Quantity
	} else {
		side, price, qty = schema.SideOffer, bo.Offer.Price, bo.Offer.Quantity
	}
	e.count++

	e.hub.Upsert(book.ProductID, schema.ExecutionOrder{
		ProductID:     book.ProductID,
		Side:          side,
		OrderID:       "AlgoExec" + strconv.FormatInt(e.count, 10),
		Type:          schema.OrderTypeMarket,
		Price:         price,
		VisibleQty:    qty,
		HiddenQty:     0,
		ParentOrderID: parentOrderID,
		IsChildOrder:  false,
	})
}
