package pricing

import (
	"bufio"
	"io"
	"strings"

	"main/internal/codec"
	"main/internal/schema"
	"main/pkg/exception"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
)

// Ingestor feeds the pricing service from a flat feed of two-sided price
// records.
type Ingestor struct {
	service  *Service
	registry *schema.Registry
}

// NewIngestor creates an ingestor feeding the given service.
func NewIngestor(service *Service, registry *schema.Registry) *Ingestor {
	return &Ingestor{service: service, registry: registry}
}

// Ingest reads comma-separated price records (cusip, bid, offer) until
// EOF, converting each into a mid/spread quote.
func (in *Ingestor) Ingest(r io.Reader) error {
	var count int
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < 3 {
			logs.Warnf("skip short price record: %q", line)
			continue
		}

		if _, ok := in.registry.ByCUSIP(fields[0]); !ok {
			return errors.Wrapf(exception.ErrUnknownProduct, "record: %q", line)
		}

		bid, err := codec.ParsePrice(fields[1])
		if err != nil {
			return errors.Wrap(err, "parse bid")
		}
		offer, err := codec.ParsePrice(fields[2])
		if err != nil {
			return errors.Wrap(err, "parse offer")
		}

		in.service.OnQuote(schema.Quote{
			ProductID: fields[0],
			Mid:       (bid + offer) / 2,
			Spread:    offer - bid,
		})
		count++
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "scan prices")
	}

	logs.Infof("price ingest done: %d quotes", count)
	return nil
}
