package main

import (
	"flag"
	"log"

	"main/internal/mdg"
	"main/internal/ops"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to JSON config")
	outDir := flag.String("out", "", "Output directory (default: config inputDir)")
	prices := flag.Int("prices", mdg.DefaultCounts.Prices, "Price rows per bond")
	snapshots := flag.Int("snapshots", mdg.DefaultCounts.Snapshots, "Order-book snapshots per bond")
	trades := flag.Int("trades", mdg.DefaultCounts.Trades, "Trade rows per bond")
	inquiries := flag.Int("inquiries", mdg.DefaultCounts.Inquiries, "Inquiry rows per bond")
	flag.Parse()

	cfg, err := ops.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	dir := *outDir
	if dir == "" {
		dir = cfg.InputDir
	}

	generator, err := mdg.NewGenerator(cfg.Registry, cfg.BookDepth)
	if err != nil {
		log.Fatalf("generator init failed: %v", err)
	}

	counts := mdg.Counts{
		Prices:    *prices,
		Snapshots: *snapshots,
		Trades:    *trades,
		Inquiries: *inquiries,
	}
	if err := generator.EmitAll(dir, counts); err != nil {
		log.Fatalf("generate failed: %v", err)
	}
}
