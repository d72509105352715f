package booking

import (
	"main/internal/bus"
	"main/internal/schema"
)

// tradingBooks are the books executed trades are allocated to, round-robin.
var tradingBooks = []string{"TRSY1", "TRSY2", "TRSY3"}

// Service books trades keyed by trade ID: trades arriving from the trade
// feed and trades generated from executed algo orders.
type Service struct {
	hub    *bus.Hub[string, schema.Trade]
	booked int64
}

// NewService creates an empty trade booking service.
func NewService() *Service {
	return &Service{hub: bus.NewHub[string, schema.Trade]()}
}

// OnTrade stores the trade and fans it out.
func (s *Service) OnTrade(trade schema.Trade) {
	s.hub.Upsert(trade.TradeID, trade)
}

// Trade returns the latest booked trade by ID.
func (s *Service) Trade(tradeID string) (schema.Trade, bool) {
	return s.hub.Get(tradeID)
}

// AddListener registers a downstream consumer of booked trades.
func (s *Service) AddListener(l bus.Listener[schema.Trade]) {
	s.hub.AddListener(l)
}

// BookExecution converts an executed order into a trade and books it. A
// filled bid unwinds as a sell, a lifted offer as a buy; visible and
// hidden quantity fill together; the receiving book rotates round-robin.
func (s *Service) BookExecution(order schema.ExecutionOrder) {
	book := tradingBooks[s.booked%int64(len(tradingBooks))]
	s.booked++

	side := schema.SideBuy
	if order.Side == schema.SideBid {
		side = schema.SideSell
	}

	s.OnTrade(schema.Trade{
		ProductID: order.ProductID,
		TradeID:   order.OrderID,
		Price:     order.Price,
		Book:      book,
		Quantity:  order.VisibleQty + order.HiddenQty,
		Side:      side,
	})
}
