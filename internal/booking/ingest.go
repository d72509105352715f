package booking

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

// Ingestor feeds the booking service from a flat feed of trade records.
type Ingestor struct {
	service  *Service
	registry *schema.Registry
}

// NewIngestor creates an ingestor feeding the given service.
func NewIngestor(service *Service, registry *schema.Registry) *Ingestor {
	return &Ingestor{service: service, registry: registry}
}

// Ingest reads comma-separated trade records (cusip, trade id, price,
// book, quantity, side) until EOF.
func (in *Ingestor) Ingest(r io.Reader) error {
	var count int
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < 6 {
			logs.Warnf("skip short trade record: %q", line)
			continue
		}

		if _, ok := in.registry.ByCUSIP(fields[0]); !ok {
			return errors.Wrapf(exception.ErrUnknownProduct, "record: %q", line)
		}

		price, err := codec.ParsePrice(fields[2])
		if err != nil {
			return errors.Wrap(err, "parse trade price")
		}

		qty, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return errors.Wrapf(exception.ErrMalformedRecord, "quantity: %q", fields[4])
		}

		var side schema.TradeSide
		switch fields[5] {
		case "BUY":
			side = schema.SideBuy
		case "SELL":
			side = schema.SideSell
		default:
			return errors.Wrapf(exception.ErrMalformedRecord, "side: %q", fields[5])
		}

		in.service.OnTrade(schema.Trade{
			ProductID: fields[0],
			TradeID:   fields[1],
			Price:     price,
			Book:      fields[3],
			Quantity:  schema.Quantity(qty),
			Side:      side,
		})
		count++
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "scan trades")
	}

	logs.Infof("trade ingest done: %d trades", count)
	return nil
}
