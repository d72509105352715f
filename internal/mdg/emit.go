package mdg

import (
	"os"
	"path/filepath"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
)

// Input file names the pipeline ingests from its input directory.
const (
	PricesFile    = "prices.txt"
	OrderBookFile = "marketdata.txt"
	TradesFile    = "trades.txt"
	InquiriesFile = "inquiries.txt"
)

// Counts sets how many rows each feed carries per bond.
type Counts struct {
	Prices    int
	Snapshots int
	Trades    int
	Inquiries int
}

// DefaultCounts matches a small demonstration run.
var DefaultCounts = Counts{
	Prices:    1_000,
	Snapshots: 1_000,
	Trades:    10,
	Inquiries: 10,
}

// EmitAll writes all four input files into dir.
func (g *Generator) EmitAll(dir string, counts Counts) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create input dir %s", dir)
	}
	feeds := []struct {
		name  string
		write func(f *os.File) error
	}{
		{PricesFile, func(f *os.File) error { return g.WritePrices(f, counts.Prices) }},
		{OrderBookFile, func(f *os.File) error { return g.WriteOrderBooks(f, counts.Snapshots) }},
		{TradesFile, func(f *os.File) error { return g.WriteTrades(f, counts.Trades) }},
		{InquiriesFile, func(f *os.File) error { return g.WriteInquiries(f, counts.Inquiries) }},
	}
	for _, feed := range feeds {
		path := filepath.Join(dir, feed.name)
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "create %s", path)
		}
		if err := feed.write(f); err != nil {
			_ = f.Close()
			return errors.Wrapf(err, "write %s", path)
		}
		if err := f.Close(); err != nil {
			return errors.Wrapf(err, "close %s", path)
		}
		logs.Infof("wrote %s", path)
	}
	return nil
}
