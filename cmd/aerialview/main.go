package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"AerialView/internal/collector"
	"AerialView/internal/config"
	"AerialView/internal/logger"
	"AerialView/internal/model"
	"AerialView/internal/report"
)

const usageExamples = `
Examples:
  aerialview -ticker AAPL
  aerialview -ticker AAPL -period 6mo -interval 1wk
  aerialview -compare AAPL,GOOGL,MSFT
  aerialview -ticker AAPL -start 2023-01-01 -end 2023-12-31 -json
`

func main() {
	os.Exit(run())
}

func run() int {
	var (
		ticker   = flag.String("ticker", "", "Stock ticker symbol (e.g. AAPL)")
		compare  = flag.String("compare", "", "Compare multiple tickers (comma-separated)")
		period   = flag.String("period", "", "Time period (1d, 5d, 1mo, 3mo, 6mo, 1y, 2y, 5y, 10y, ytd, max)")
		start    = flag.String("start", "", "Start date (YYYY-MM-DD)")
		end      = flag.String("end", "", "End date (YYYY-MM-DD)")
		interval = flag.String("interval", "", "Data interval (1m, 5m, 15m, 30m, 1h, 1d, 1wk, 1mo)")
		asJSON   = flag.Bool("json", false, "Print the report as JSON")
		cfgPath  = flag.String("config", "configs/config.yaml", "Config file path")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprint(flag.CommandLine.Output(), usageExamples)
	}
	flag.Parse()

	if *ticker == "" && *compare == "" {
		fmt.Fprintln(os.Stderr, "either -ticker or -compare must be specified")
		flag.Usage()
		return 2
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		return 1
	}
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	fetcher, err := collector.NewFetcher(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init fetcher: %v\n", err)
		return 1
	}
	col := collector.NewCollector(fetcher, collector.OptionsFromConfig(cfg))

	params := collector.RequestParams{
		Period:   firstNonEmpty(*period, cfg.Analysis.Period),
		Start:    *start,
		End:      *end,
		Interval: firstNonEmpty(*interval, cfg.Analysis.Interval),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *compare != "" {
		return runCompare(ctx, col, config.SplitSymbols(*compare), params, *asJSON)
	}
	return runSingle(ctx, col, *ticker, params, *asJSON)
}

func runSingle(ctx context.Context, col *collector.Collector, ticker string, params collector.RequestParams, asJSON bool) int {
	req, err := collector.BuildRequest(ticker, params, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}
	if !asJSON {
		fmt.Printf("Fetching data for %s...\n", req.Symbol)
	}
	rep, err := col.Analyze(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis of %s failed: %v\n", req.Symbol, err)
		return 1
	}
	if asJSON {
		return printJSON(rep)
	}
	report.WriteSingle(os.Stdout, rep)
	return 0
}

func runCompare(ctx context.Context, col *collector.Collector, symbols []string, params collector.RequestParams, asJSON bool) int {
	if len(symbols) == 0 {
		fmt.Fprintln(os.Stderr, "no symbols to compare")
		return 2
	}
	now := time.Now()
	reqs := make([]model.Request, 0, len(symbols))
	for _, sym := range symbols {
		req, err := collector.BuildRequest(sym, params, now)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 2
		}
		reqs = append(reqs, req)
	}

	results := col.AnalyzeBatch(ctx, reqs)
	ok := 0
	for _, r := range results {
		if r.Err == nil {
			ok++
		}
	}

	if asJSON {
		type entry struct {
			Symbol string        `json:"symbol"`
			Report *model.Report `json:"report,omitempty"`
			Error  string        `json:"error,omitempty"`
		}
		out := make([]entry, len(results))
		for i, r := range results {
			out[i] = entry{Symbol: r.Symbol, Report: r.Report}
			if r.Err != nil {
				out[i].Error = r.Err.Error()
			}
		}
		if code := printJSON(out); code != 0 {
			return code
		}
	} else {
		report.WriteCompare(os.Stdout, results)
	}

	if ok == 0 {
		fmt.Fprintln(os.Stderr, "no data available for comparison")
		return 1
	}
	return 0
}

func printJSON(v interface{}) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "encode json: %v\n", err)
		return 1
	}
	return 0
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
