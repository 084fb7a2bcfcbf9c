package main

import (
	"github.com/aristath/mentor/internal/engine"
	"github.com/aristath/mentor/internal/workers"
	"github.com/spf13/cobra"
)

func newRankCmd(a *app) *cobra.Command {
	var (
		style string
		batch bool
	)

	cmd := &cobra.Command{
		Use:   "rank [request.json]",
		Short: "Rank candidates for an investment style",
		Long: `Reads a rank request (candidates, optional price history keyed by candidate id,
optional sector trends) and prints the ranked, sector-capped list. With --batch the
file holds an array of requests, which are ranked concurrently.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if batch {
				var reqs []engine.RankRequest
				if err := readJSON(cmd, args[0], &reqs); err != nil {
					return err
				}
				for i := range reqs {
					if reqs[i].Style == "" {
						reqs[i].Style = styleOr(style, a.cfg.Style)
					}
				}
				outcomes := a.pool.RankBatch(cmd.Context(), a.engine, reqs, a.progress())
				return writeJSON(cmd, rankResults(outcomes))
			}

			var req engine.RankRequest
			if err := readJSON(cmd, args[0], &req); err != nil {
				return err
			}
			if req.Style == "" {
				req.Style = styleOr(style, a.cfg.Style)
			}
			resp, err := a.engine.Rank(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeJSON(cmd, resp)
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "Investment style when the request has none (e.g. balanced, short_high)")
	cmd.Flags().BoolVar(&batch, "batch", false, "Treat the file as an array of requests")
	return cmd
}

type batchResult struct {
	Response interface{} `json:"response,omitempty"`
	Error    string      `json:"error,omitempty"`
}

func rankResults(outcomes []workers.RankOutcome) []batchResult {
	out := make([]batchResult, len(outcomes))
	for i, o := range outcomes {
		if o.Err != nil {
			out[i].Error = o.Err.Error()
			continue
		}
		out[i].Response = o.Response
	}
	return out
}

func styleOr(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}

// progress logs batch progress at debug level.
func (a *app) progress() workers.ProgressCallback {
	return func(current, total int, message string) {
		a.log.Debug().Int("current", current).Int("total", total).Msg(message)
	}
}
