package main

import (
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"main/internal/algo"
	"main/internal/booking"
	"main/internal/bus"
	"main/internal/codec"
	"main/internal/execution"
	"main/internal/hist"
	"main/internal/inquiry"
	"main/internal/marketdata"
	"main/internal/mdg"
	"main/internal/obs"
	"main/internal/ops"
	"main/internal/position"
	"main/internal/pricing"
	"main/internal/risk"
	"main/internal/schema"
	"main/internal/streaming"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to JSON config")
	profileAddr := flag.String("profile", "", "Pyroscope server address (empty=disabled)")
	flag.Parse()

	cfg, err := ops.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if *profileAddr != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "bond.pipeline",
			ServerAddress:   *profileAddr,
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			log.Fatalf("pyroscope start failed: %v", err)
		}
		defer func() { _ = profiler.Stop() }()
	}

	sink, err := buildSink(cfg)
	if err != nil {
		log.Fatalf("sink init failed: %v", err)
	}
	defer func() {
		if err := sink.Close(); err != nil {
			logs.Errorf("close sink: %+v", err)
		}
	}()

	if err := run(cfg, sink); err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}
}

func buildSink(cfg ops.Loaded) (hist.Sink, error) {
	if cfg.Postgres != nil {
		return hist.NewPostgresSink(*cfg.Postgres)
	}
	return hist.NewFileSink(cfg.OutputDir)
}

func run(cfg ops.Loaded, sink hist.Sink) error {
	pricingSvc := pricing.NewService()
	streamAlgo := algo.NewStreamingEngine(cfg.StreamLotSize)
	streamingSvc := streaming.NewService()
	mdSvc := marketdata.NewService(cfg.BookDepth)
	execAlgo := algo.NewExecutionEngine()
	execSvc := execution.NewService()
	bookingSvc := booking.NewService()
	positionSvc := position.NewService()
	riskSvc := risk.NewService(cfg.PV01)
	inquirySvc := inquiry.NewService()

	quoteHist, err := hist.NewService("Quotes",
		func(q schema.Quote) string { return q.ProductID }, codec.QuoteRow, sink)
	if err != nil {
		return err
	}
	streamHist, err := hist.NewService(streamingSvc.Type(),
		func(ps schema.PriceStream) string { return ps.ProductID }, codec.PriceStreamRow, sink)
	if err != nil {
		return err
	}
	execHist, err := hist.NewService(execSvc.Type(),
		func(o schema.ExecutionOrder) string { return o.OrderID }, codec.ExecutionOrderRow, sink)
	if err != nil {
		return err
	}
	positionHist, err := hist.NewService(positionSvc.Type(),
		func(p schema.Position) string { return p.ProductID }, codec.PositionRow, sink)
	if err != nil {
		return err
	}
	riskHist, err := hist.NewService(riskSvc.Type(),
		func(pv schema.PV01) string { return pv.ProductID }, codec.PV01Row, sink)
	if err != nil {
		return err
	}
	inquiryHist, err := hist.NewService(inquirySvc.Type(),
		func(i schema.Inquiry) string { return i.InquiryID }, codec.InquiryRow, sink)
	if err != nil {
		return err
	}

	metrics := obs.NewMetrics()

	pricingSvc.AddListener(bus.ListenerFuncs[schema.Quote]{Add: streamAlgo.OnQuote})
	pricingSvc.AddListener(quoteHist.Listener())
	pricingSvc.AddListener(obs.CountListener[schema.Quote](metrics, obs.StageQuote))
	streamAlgo.AddListener(bus.ListenerFuncs[schema.PriceStream]{Add: streamingSvc.PublishStream})
	streamingSvc.AddListener(streamHist.Listener())
	streamingSvc.AddListener(obs.CountListener[schema.PriceStream](metrics, obs.StageStream))

	mdSvc.AddListener(bus.ListenerFuncs[schema.OrderBook]{Add: execAlgo.OnBook})
	mdSvc.AddListener(obs.CountListener[schema.OrderBook](metrics, obs.StageOrderBook))
	execAlgo.AddListener(bus.ListenerFuncs[schema.ExecutionOrder]{Add: execSvc.ExecuteOrder})
	execSvc.AddListener(execHist.Listener())
	execSvc.AddListener(bus.ListenerFuncs[schema.ExecutionOrder]{Add: bookingSvc.BookExecution})
	execSvc.AddListener(obs.CountListener[schema.ExecutionOrder](metrics, obs.StageExecution))

	bookingSvc.AddListener(bus.ListenerFuncs[schema.Trade]{Add: positionSvc.AddTrade})
	bookingSvc.AddListener(obs.CountListener[schema.Trade](metrics, obs.StageTrade))
	positionSvc.AddListener(positionHist.Listener())
	positionSvc.AddListener(obs.CountListener[schema.Position](metrics, obs.StagePosition))
	positionSvc.AddListener(bus.ListenerFuncs[schema.Position]{Add: func(p schema.Position) {
		if err := riskSvc.AddPosition(p); err != nil {
			logs.Warnf("risk update for %s: %+v", p.ProductID, err)
		}
	}})
	riskSvc.AddListener(riskHist.Listener())
	riskSvc.AddListener(obs.CountListener[schema.PV01](metrics, obs.StageRisk))
	inquirySvc.AddListener(inquiryHist.Listener())
	inquirySvc.AddListener(obs.CountListener[schema.Inquiry](metrics, obs.StageInquiry))

	steps := []struct {
		file   string
		ingest func(io.Reader) error
	}{
		{mdg.PricesFile, pricing.NewIngestor(pricingSvc, cfg.Registry).Ingest},
		{mdg.OrderBookFile, marketdata.NewIngestor(mdSvc, cfg.Registry).Ingest},
		{mdg.TradesFile, booking.NewIngestor(bookingSvc, cfg.Registry).Ingest},
		{mdg.InquiriesFile, inquiry.NewIngestor(inquirySvc, cfg.Registry).Ingest},
	}
	for _, step := range steps {
		select {
		case <-sys.Shutdown():
			logs.Warnf("shutdown requested, stopping ingest")
			return nil
		default:
		}

		path := filepath.Join(cfg.InputDir, step.file)
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrapf(err, "open %s", path)
		}
		start := time.Now()
		err = step.ingest(f)
		_ = f.Close()
		if err != nil {
			return errors.Wrapf(err, "ingest %s", step.file)
		}
		metrics.ObserveIngest(time.Since(start))
	}

	for _, sector := range cfg.Sectors {
		pv := riskSvc.BucketedRisk(sector)
		logs.Infof("sector %s pv01 %.6f", pv.ProductID, pv.PerUnit)
	}
	snapshot := metrics.Snapshot()
	logs.Infof("pipeline done: stages=%v ingest=%+v", snapshot.StageCounts, snapshot.IngestLatency)
	return nil
}
