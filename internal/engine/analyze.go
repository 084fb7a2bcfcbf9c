package engine

import (
	"context"
	"fmt"

	"github.com/aristath/mentor/internal/domain"
	"github.com/aristath/mentor/internal/modules/advice"
	"github.com/aristath/mentor/internal/modules/indicators"
)

// AnalyzeRequest asks for a corrected verdict on one instrument.
// Tentative may be nil when the engine has a narrator.
type AnalyzeRequest struct {
	ID        string             `json:"id,omitempty"`
	Symbol    string             `json:"symbol"`
	Series    domain.PriceSeries `json:"series"`
	Facts     advice.Facts       `json:"facts"`
	Tentative *domain.Verdict    `json:"tentative,omitempty"`
}

// AnalyzeResponse is the corrected verdict with the indicators behind it.
type AnalyzeResponse struct {
	RequestID  string                  `json:"request_id"`
	Symbol     string                  `json:"symbol"`
	Indicators indicators.IndicatorSet `json:"indicators"`
	Verdict    domain.FinalVerdict     `json:"verdict"`
}

// Analyze computes indicators for the series, obtains a tentative verdict and
// corrects it. Any failure, including a panic in a collaborator, surfaces as
// ErrAnalysisUnavailable rather than an uncorrected verdict.
func (e *Engine) Analyze(ctx context.Context, req AnalyzeRequest) (resp *AnalyzeResponse, err error) {
	id := requestID(req.ID)
	defer e.recoverInto("analyze", id, &err)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := e.calculator.Compute(req.Series)

	facts := req.Facts
	if !(facts.CurrentPrice > 0) && set.LatestClose != nil {
		facts.CurrentPrice = *set.LatestClose
	}

	tentative, err := e.tentative(ctx, req, set)
	if err != nil {
		e.log.Error().
			Err(err).
			Str("request_id", id).
			Str("symbol", req.Symbol).
			Msg("No tentative verdict")
		return nil, fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
	}

	final := e.corrector.Correct(tentative, facts, set)

	e.log.Info().
		Str("request_id", id).
		Str("symbol", req.Symbol).
		Str("action", string(final.Action)).
		Str("status", string(final.Status)).
		Str("sell_timing", string(final.SellTiming)).
		Strs("applied", final.Applied).
		Msg("Analyzed instrument")

	return &AnalyzeResponse{
		RequestID:  id,
		Symbol:     req.Symbol,
		Indicators: set,
		Verdict:    final,
	}, nil
}

func (e *Engine) tentative(ctx context.Context, req AnalyzeRequest, set indicators.IndicatorSet) (domain.Verdict, error) {
	if req.Tentative != nil {
		return *req.Tentative, nil
	}
	if e.narrator == nil {
		return domain.Verdict{}, fmt.Errorf("no tentative verdict and no narrator configured")
	}
	return e.narrator.Narrate(ctx, req.Symbol, readings(set))
}

// readings flattens the available indicator values for the narrator.
func readings(set indicators.IndicatorSet) map[string]float64 {
	out := make(map[string]float64)
	put := func(key string, v *float64) {
		if v != nil {
			out[key] = *v
		}
	}
	put("latest_close", set.LatestClose)
	put("rsi", set.RSI)
	put("sma", set.SMA)
	put("deviation", set.Deviation)
	if set.MACD != nil {
		out["macd_line"] = set.MACD.Line
		out["macd_signal"] = set.MACD.Signal
		out["macd_histogram"] = set.MACD.Histogram
	}
	return out
}
