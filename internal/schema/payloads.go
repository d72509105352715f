package schema

// Price is a bond price in integer ticks of 1/256 point. The treasury
// fractional notation bottoms out at 256ths, so every quotable price is
// exact in this representation.
type Price int64

// Quantity is a notional quantity in units.
type Quantity int64

const (
	// TicksPerPoint is the number of price ticks in one full point.
	TicksPerPoint Price = 256

	// TicksPer32nd is the number of price ticks in one 32nd of a point.
	TicksPer32nd Price = 8
)

// PricingSide describes the side of a quoted order.
type PricingSide uint16

const (
	PricingSideUnknown PricingSide = iota
	SideBid
	SideOffer
)

func (s PricingSide) String() string {
	switch s {
	case SideBid:
		return "BID"
	case SideOffer:
		return "OFFER"
	default:
		return "UNKNOWN"
	}
}

// TradeSide describes the direction of a booked trade.
type TradeSide uint16

const (
	TradeSideUnknown TradeSide = iota
	SideBuy
	SideSell
)

func (s TradeSide) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// OrderType describes an execution order type.
type OrderType uint16

const (
	OrderTypeUnknown OrderType = iota
	OrderTypeFOK
	OrderTypeIOC
	OrderTypeMarket
	OrderTypeLimit
	OrderTypeStop
)

func (t OrderType) String() string {
	switch t {
	case OrderTypeFOK:
		return "FOK"
	case OrderTypeIOC:
		return "IOC"
	case OrderTypeMarket:
		return "MARKET"
	case OrderTypeLimit:
		return "LIMIT"
	case OrderTypeStop:
		return "STOP"
	default:
		return "UNKNOWN"
	}
}

// InquiryState is the lifecycle state of a customer inquiry.
type InquiryState uint16

const (
	InquiryStateUnknown InquiryState = iota
	InquiryReceived
	InquiryQuoted
	InquiryDone
	InquiryRejected
	InquiryCustomerRejected
)

func (s InquiryState) String() string {
	switch s {
	case InquiryReceived:
		return "RECEIVED"
	case InquiryQuoted:
		return "QUOTED"
	case InquiryDone:
		return "DONE"
	case InquiryRejected:
		return "REJECTED"
	case InquiryCustomerRejected:
		return "CUSTOMER_REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Order is a single market-data order: price, quantity, side.
type Order struct {
	Price    Price
	Quantity Quantity
	Side     PricingSide
}

// OrderBook is a two-sided stack of orders for one product.
type OrderBook struct {
	ProductID  string
	BidStack   []Order
	OfferStack []Order
}

// BidOffer pairs the best bid with the best offer of a book.
type BidOffer struct {
	Bid   Order
	Offer Order
}

// Spread returns the top-of-book spread in ticks.
func (bo BidOffer) Spread() Price {
	return bo.Offer.Price - bo.Bid.Price
}

// Quote is the internal price of a product: mid and bid/offer spread.
type Quote struct {
	ProductID string
	Mid       Price
	Spread    Price
}

// ExecutionOrder is an order routed for execution on an exchange.
type ExecutionOrder struct {
	ProductID     string
	Side          PricingSide
	OrderID       string
	Type          OrderType
	Price         Price
	VisibleQty    Quantity
	HiddenQty     Quantity
	ParentOrderID string
	IsChildOrder  bool
}

// Trade is a booked transaction against a named trading book.
type Trade struct {
	ProductID string
	TradeID   string
	Price     Price
	Book      string
	Quantity  Quantity
	Side      TradeSide
}

// Position holds the signed quantity per trading book for one product.
// Book entries accrete over the life of the process; they are never reset.
type Position struct {
	ProductID string
	Books     map[string]Quantity
}

// NewPosition creates an empty position for a product.
func NewPosition(productID string) Position {
	return Position{ProductID: productID, Books: make(map[string]Quantity)}
}

// Add accretes a signed quantity into a book.
func (p Position) Add(book string, qty Quantity) {
	p.Books[book] += qty
}

// Aggregate returns the net position across all books.
func (p Position) Aggregate() Quantity {
	var total Quantity
	for _, qty := range p.Books {
		total += qty
	}
	return total
}

// PV01 carries the dollar value of a basis point for a product position.
// PerUnit is the risk per unit notional; Quantity is the position size it
// was computed against.
type PV01 struct {
	ProductID string
	PerUnit   float64
	Quantity  Quantity
}

// BucketedSector names a group of products whose risk is aggregated
// together.
type BucketedSector struct {
	Name       string
	ProductIDs []string
}

// Inquiry is a customer inquiry working through its lifecycle.
type Inquiry struct {
	InquiryID string
	ProductID string
	Side      TradeSide
	Quantity  Quantity
	Price     Price
	State     InquiryState
}

// WithState returns a copy of the inquiry in a new state.
func (i Inquiry) WithState(state InquiryState) Inquiry {
	i.State = state
	return i
}

// WithPrice returns a copy of the inquiry with a new quoted price.
func (i Inquiry) WithPrice(price Price) Inquiry {
	i.Price = price
	return i
}

// PriceStreamOrder is one side of a streamed two-way quote.
type PriceStreamOrder struct {
	Price      Price
	VisibleQty Quantity
	HiddenQty  Quantity
	Side       PricingSide
}

// PriceStream is a streamed two-way quote for a product.
type PriceStream struct {
	ProductID string
	Bid       PriceStreamOrder
	Offer     PriceStreamOrder
}
