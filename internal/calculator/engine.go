package calculator

import (
	"fmt"
	"sync"

	"github.com/guregu/null/v6"

	"AerialView/internal/model"
)

type partial map[string][]null.Float

// ComputeIndicators derives every configured indicator from the series.
// Each returned series has exactly series.Len() entries.
//
// The rolling-window families are independent of each other and run
// concurrently; OBV runs as one sequential pass. The result does not depend
// on scheduling.
func ComputeIndicators(series *model.Series, cfg Config) (model.IndicatorSet, error) {
	if series.Len() == 0 {
		return nil, fmt.Errorf("compute indicators: %w", model.ErrInsufficientHistory)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("compute indicators: %w", err)
	}

	closes := series.Closes()
	volumes := series.Volumes()
	highs, lows := series.Highs(), series.Lows()

	tasks := []func() partial{
		func() partial {
			p := partial{}
			for _, w := range cfg.SMAWindows {
				p[SMAName(w)] = SMA(closes, w)
			}
			return p
		},
		func() partial {
			return partial{RSIName(cfg.RSIWindow): RSI(closes, cfg.RSIWindow, cfg.RSISmoothing)}
		},
		func() partial {
			m := CalculateMACD(closes, cfg.MACD.Fast, cfg.MACD.Slow, cfg.MACD.Signal)
			return partial{model.MACD: m.MACD, model.MACDSignal: m.Signal, model.MACDHist: m.Histogram}
		},
		func() partial {
			b := CalculateBollinger(closes, cfg.Bollinger.Window, cfg.Bollinger.StdDev)
			return partial{model.BBUpper: b.Upper, model.BBMiddle: b.Middle, model.BBLower: b.Lower}
		},
		func() partial {
			s := CalculateStochastic(highs, lows, closes, cfg.Stochastic.KWindow, cfg.Stochastic.DWindow)
			return partial{model.StochK: s.K, model.StochD: s.D}
		},
		func() partial {
			return partial{
				model.OBV: OBV(closes, volumes),
				VolumeSMAName(cfg.VolumeMAWindow): SMA(volumesAsFloat(volumes), cfg.VolumeMAWindow),
			}
		},
	}

	results := make([]partial, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task func() partial) {
			defer wg.Done()
			results[i] = task()
		}(i, task)
	}
	wg.Wait()

	set := make(model.IndicatorSet)
	for _, p := range results {
		for name, vals := range p {
			set[name] = vals
		}
	}
	return set, nil
}
