package ops

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"main/internal/schema"
	"main/pkg/conn"

	"github.com/shopspring/decimal"
)

const (
	defaultBookDepth     = 10
	defaultStreamLotSize = 1_000_000
	defaultInputDir      = "data"
	defaultOutputDir     = "out"
)

// FileConfig mirrors the JSON config layout.
type FileConfig struct {
	Bonds    []BondConfig      `json:"bonds"`
	PV01     map[string]string `json:"pv01"`
	Sectors  []SectorConfig    `json:"sectors"`
	Pipeline PipelineConfig    `json:"pipeline"`
	Archive  ArchiveConfig     `json:"archive"`
}

// BondConfig describes one tradable treasury security.
type BondConfig struct {
	CUSIP    string `json:"cusip"`
	Ticker   string `json:"ticker"`
	Coupon   string `json:"coupon"`
	Maturity string `json:"maturity"`
}

// SectorConfig groups securities for bucketed risk.
type SectorConfig struct {
	Name   string   `json:"name"`
	CUSIPs []string `json:"cusips"`
}

// PipelineConfig captures tunables of the processing stages.
type PipelineConfig struct {
	BookDepth     int    `json:"bookDepth"`
	StreamLotSize int64  `json:"streamLotSize"`
	InputDir      string `json:"inputDir"`
	OutputDir     string `json:"outputDir"`
}

// ArchiveConfig selects the historical data destination.
type ArchiveConfig struct {
	Postgres *PostgresConfig `json:"postgres"`
}

// PostgresConfig describes the optional archive database.
type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	SSLMode  string `json:"sslMode"`
	DSN      string `json:"dsn"`
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	Registry      *schema.Registry
	PV01          map[string]float64
	Sectors       []schema.BucketedSector
	BookDepth     int
	StreamLotSize schema.Quantity
	InputDir      string
	OutputDir     string
	Postgres      *conn.Option
}

// Load reads a JSON config file and resolves every section.
func Load(path string) (Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, err
	}
	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Loaded{}, err
	}
	return Resolve(cfg)
}

// Resolve validates a parsed config and builds the runtime view.
func Resolve(cfg FileConfig) (Loaded, error) {
	registry, err := buildRegistry(cfg.Bonds)
	if err != nil {
		return Loaded{}, err
	}
	pv01, err := resolvePV01(cfg.PV01, registry)
	if err != nil {
		return Loaded{}, err
	}
	sectors, err := resolveSectors(cfg.Sectors, registry)
	if err != nil {
		return Loaded{}, err
	}
	pipeline, err := resolvePipeline(cfg.Pipeline)
	if err != nil {
		return Loaded{}, err
	}
	return Loaded{
		Registry:      registry,
		PV01:          pv01,
		Sectors:       sectors,
		BookDepth:     pipeline.BookDepth,
		StreamLotSize: schema.Quantity(pipeline.StreamLotSize),
		InputDir:      pipeline.InputDir,
		OutputDir:     pipeline.OutputDir,
		Postgres:      resolvePostgres(cfg.Archive.Postgres),
	}, nil
}

func buildRegistry(bonds []BondConfig) (*schema.Registry, error) {
	if len(bonds) == 0 {
		return nil, fmt.Errorf("no bonds configured")
	}
	reg := schema.NewRegistry()
	for _, b := range bonds {
		coupon, err := decimal.NewFromString(b.Coupon)
		if err != nil {
			return nil, fmt.Errorf("invalid coupon for %s: %w", b.CUSIP, err)
		}
		maturity, err := time.Parse("2006-01-02", b.Maturity)
		if err != nil {
			return nil, fmt.Errorf("invalid maturity for %s: %w", b.CUSIP, err)
		}
		bond := schema.Bond{
			CUSIP:    b.CUSIP,
			Ticker:   b.Ticker,
			Coupon:   coupon.InexactFloat64(),
			Maturity: maturity,
		}
		if err := reg.Add(bond); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func resolvePV01(table map[string]string, reg *schema.Registry) (map[string]float64, error) {
	resolved := make(map[string]float64, len(table))
	for cusip, raw := range table {
		if _, ok := reg.ByCUSIP(cusip); !ok {
			return nil, fmt.Errorf("pv01 entry for unknown bond: %s", cusip)
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid pv01 for %s: %w", cusip, err)
		}
		if value.IsNegative() {
			return nil, fmt.Errorf("pv01 must be >= 0 for %s", cusip)
		}
		resolved[cusip] = value.InexactFloat64()
	}
	for _, cusip := range reg.CUSIPs() {
		if _, ok := resolved[cusip]; !ok {
			return nil, fmt.Errorf("bond missing pv01 entry: %s", cusip)
		}
	}
	return resolved, nil
}

func resolveSectors(sectors []SectorConfig, reg *schema.Registry) ([]schema.BucketedSector, error) {
	resolved := make([]schema.BucketedSector, 0, len(sectors))
	for _, s := range sectors {
		if s.Name == "" {
			return nil, fmt.Errorf("sector name is empty")
		}
		for _, cusip := range s.CUSIPs {
			if _, ok := reg.ByCUSIP(cusip); !ok {
				return nil, fmt.Errorf("sector %s references unknown bond: %s", s.Name, cusip)
			}
		}
		resolved = append(resolved, schema.BucketedSector{
			Name:       s.Name,
			ProductIDs: append([]string(nil), s.CUSIPs...),
		})
	}
	return resolved, nil
}

func resolvePipeline(cfg PipelineConfig) (PipelineConfig, error) {
	if cfg.BookDepth < 0 || cfg.StreamLotSize < 0 {
		return PipelineConfig{}, fmt.Errorf("pipeline values must be >= 0")
	}
	if cfg.BookDepth == 0 {
		cfg.BookDepth = defaultBookDepth
	}
	if cfg.StreamLotSize == 0 {
		cfg.StreamLotSize = defaultStreamLotSize
	}
	if cfg.InputDir == "" {
		cfg.InputDir = defaultInputDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaultOutputDir
	}
	return cfg, nil
}

func resolvePostgres(cfg *PostgresConfig) *conn.Option {
	if cfg == nil {
		return nil
	}
	return &conn.Option{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		Database: cfg.Database,
		SSLMode:  cfg.SSLMode,
		DSN:      cfg.DSN,
	}
}
