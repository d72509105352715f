package inquiry

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

// Ingestor feeds the inquiry service from a flat feed of inquiry records.
type Ingestor struct {
	service  *Service
	registry *schema.Registry
}

// NewIngestor creates an ingestor feeding the given service.
func NewIngestor(service *Service, registry *schema.Registry) *Ingestor {
	return &Ingestor{service: service, registry: registry}
}

// Ingest reads comma-separated inquiry records (inquiry id, cusip, side,
// quantity, price, state) until EOF.
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
			logs.Warnf("skip short inquiry record: %q", line)
			continue
		}

		if _, ok := in.registry.ByCUSIP(fields[1]); !ok {
			return errors.Wrapf(exception.ErrUnknownProduct, "record: %q", line)
		}

		var side schema.TradeSide
		switch fields[2] {
		case "BUY":
			side = schema.SideBuy
		case "SELL":
			side = schema.SideSell
		default:
			return errors.Wrapf(exception.ErrMalformedRecord, "side: %q", fields[2])
		}

		qty, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			return errors.Wrapf(exception.ErrMalformedRecord, "quantity: %q", fields[3])
		}

		price, err := codec.ParsePrice(fields[4])
		if err != nil {
			return errors.Wrap(err, "parse inquiry price")
		}

		state := parseState(fields[5])
		if state == schema.InquiryStateUnknown {
			return errors.Wrapf(exception.ErrMalformedRecord, "state: %q", fields[5])
		}

		in.service.OnInquiry(schema.Inquiry{
			InquiryID: fields[0],
			ProductID: fields[1],
			Side:      side,
			Quantity:  schema.Quantity(qty),
			Price:     price,
			State:     state,
		})
		count++
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "scan inquiries")
	}

	logs.Infof("inquiry ingest done: %d inquiries", count)
	return nil
}

func parseState(s string) schema.InquiryState {
	switch s {
	case "RECEIVED":
		return schema.InquiryReceived
	case "QUOTED":
		return schema.InquiryQuoted
	case "DONE":
		return schema.InquiryDone
	case "REJECTED":
		return schema.InquiryRejected
	case "CUSTOMER_REJECTED":
		return schema.InquiryCustomerRejected
	default:
		return schema.InquiryStateUnknown
	}
}
