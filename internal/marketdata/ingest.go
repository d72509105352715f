package marketdata

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"main/internal/codec"
	"main/internal/schema"
	"main/pkg/exception"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
)

// Ingestor assembles order-book snapshots from a flat feed of order
// records. Records accumulate until both sides together reach 2x the book
// depth, then a snapshot is emitted into the service; a trailing batch
// below the threshold is discarded without emitting.
type Ingestor struct {
	service  *Service
	registry *schema.Registry
}

// NewIngestor creates an ingestor feeding the given service.
func NewIngestor(service *Service, registry *schema.Registry) *Ingestor {
	return &Ingestor{service: service, registry: registry}
}

// Ingest reads comma-separated order records (cusip, price, quantity,
// side) until EOF. Parse failures abort ingestion before any partial
// snapshot can reach the service.
func (in *Ingestor) Ingest(r io.Reader) error {
	threshold := in.service.Depth() * 2

	var (
		productID  string
		bidStack   []schema.Order
		offerStack []schema.Order
		count      int
		emitted    int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < 4 {
			logs.Warnf("skip short market data record: %q", line)
			continue
		}

		if _, ok := in.registry.ByCUSIP(fields[0]); !ok {
			return errors.Wrapf(exception.ErrUnknownProduct, "record: %q", line)
		}
		productID = fields[0]

		price, err := codec.ParsePrice(fields[1])
		if err != nil {
			return errors.Wrap(err, "parse order price")
		}

		qty, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return errors.Wrapf(exception.ErrMalformedRecord, "quantity: %q", fields[2])
		}

		var side schema.PricingSide
		switch fields[3] {
		case "BID":
			side = schema.SideBid
		case "OFFER":
			side = schema.SideOffer
		default:
			return errors.Wrapf(exception.ErrMalformedRecord, "side: %q", fields[3])
		}

		order := schema.Order{Price: price, Quantity: schema.Quantity(qty), Side: side}
		if side == schema.SideBid {
			bidStack = append(bidStack, order)
		} else {
			offerStack = append(offerStack, order)
		}

		count++
		if count%threshold == 0 {
			in.service.OnBook(schema.OrderBook{
				ProductID:  productID,
				BidStack:   bidStack,
				OfferStack: offerStack,
			})
			emitted++
			bidStack = nil
			offerStack = nil
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "scan market data")
	}

	if rest := count % threshold; rest != 0 {
		logs.Infof("discard trailing partial batch: %d of %d records", rest, threshold)
	}
	logs.Infof("market data ingest done: %d snapshots", emitted)
	return nil
}
