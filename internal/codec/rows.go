package codec

import (
	"sort"
	"strconv"

	"main/internal/schema"
)

// Row renderers turn emitted entities into the ordered text fields an
// external sink records. Field order is part of the emission contract.

// ExecutionOrderRow renders an execution order.
func ExecutionOrderRow(o schema.ExecutionOrder) []string {
	child := "NO"
	if o.IsChildOrder {
		child = "YES"
	}
	return []string{
		o.ProductID,
		o.Side.String(),
		o.OrderID,
		o.Type.String(),
		FormatPrice(o.Price),
		strconv.FormatInt(int64(o.VisibleQty), 10),
		strconv.FormatInt(int64(o.HiddenQty), 10),
		o.ParentOrderID,
		child,
	}
}

// PriceStreamRow renders a two-way price stream, bid side first.
func PriceStreamRow(ps schema.PriceStream) []string {
	return []string{
		ps.ProductID,
		FormatPrice(ps.Bid.Price),
		strconv.FormatInt(int64(ps.Bid.VisibleQty), 10),
		strconv.FormatInt(int64(ps.Bid.HiddenQty), 10),
		ps.Bid.Side.String(),
		FormatPrice(ps.Offer.Price),
		strconv.FormatInt(int64(ps.Offer.VisibleQty), 10),
		strconv.FormatInt(int64(ps.Offer.HiddenQty), 10),
		ps.Offer.Side.String(),
	}
}

// PositionRow renders a position as the product followed by book/quantity
// pairs in book order.
func PositionRow(p schema.Position) []string {
	books := make([]string, 0, len(p.Books))
	for book := range p.Books {
		books = append(books, book)
	}
	sort.Strings(books)

	out := make([]string, 0, 1+2*len(books))
	out = append(out, p.ProductID)
	for _, book := range books {
		out = append(out, book, strconv.FormatInt(int64(p.Books[book]), 10))
	}
	return out
}

// PV01Row renders a risk record.
func PV01Row(pv schema.PV01) []string {
	return []string{
		pv.ProductID,
		strconv.FormatFloat(pv.PerUnit, 'f', 6, 64),
		strconv.FormatInt(int64(pv.Quantity), 10),
	}
}

// InquiryRow renders an inquiry after a lifecycle transition.
func InquiryRow(i schema.Inquiry) []string {
	return []string{
		i.InquiryID,
		i.ProductID,
		i.Side.String(),
		strconv.FormatInt(int64(i.Quantity), 10),
		FormatPrice(i.Price),
		i.State.String(),
	}
}

// QuoteRow renders an internal price.
func QuoteRow(q schema.Quote) []string {
	return []string{
		q.ProductID,
		FormatPrice(q.Mid),
		FormatPrice(q.Spread),
	}
}
