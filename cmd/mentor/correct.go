package main

import (
	"fmt"

	"github.com/aristath/mentor/internal/engine"
	"github.com/spf13/cobra"
)

func newCorrectCmd(a *app) *cobra.Command {
	var batch bool

	cmd := &cobra.Command{
		Use:   "correct [request.json]",
		Short: "Correct a tentative verdict against indicators and market facts",
		Long: `Reads an analyze request (symbol, price series, facts, tentative verdict) and prints
the corrected verdict with the rules that fired. With --batch the file holds an array
of requests, which are corrected concurrently.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if batch {
				var reqs []engine.AnalyzeRequest
				if err := readJSON(cmd, args[0], &reqs); err != nil {
					return err
				}
				outcomes := a.pool.AnalyzeBatch(cmd.Context(), a.engine, reqs, a.progress())
				results := make([]batchResult, len(outcomes))
				for i, o := range outcomes {
					if o.Err != nil {
						results[i].Error = o.Err.Error()
						continue
					}
					results[i].Response = o.Response
				}
				return writeJSON(cmd, results)
			}

			var req engine.AnalyzeRequest
			if err := readJSON(cmd, args[0], &req); err != nil {
				return err
			}
			if req.Tentative == nil {
				return fmt.Errorf("request for %q has no tentative verdict", req.Symbol)
			}
			resp, err := a.engine.Analyze(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeJSON(cmd, resp)
		},
	}

	cmd.Flags().BoolVar(&batch, "batch", false, "Treat the file as an array of requests")
	return cmd
}
