package main

import (
	"github.com/aristath/mentor/internal/engine"
	"github.com/spf13/cobra"
)

func newPlanCmd(a *app) *cobra.Command {
	var (
		style  string
		budget float64
		target int
	)

	cmd := &cobra.Command{
		Use:   "plan [request.json]",
		Short: "Rank candidates and allocate a budget in whole lots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req engine.PlanRequest
			if err := readJSON(cmd, args[0], &req); err != nil {
				return err
			}
			if req.Style == "" {
				req.Style = styleOr(style, a.cfg.Style)
			}
			if budget > 0 {
				req.Budget = budget
			}
			if target > 0 {
				req.TargetCount = target
			}

			resp, err := a.engine.Plan(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeJSON(cmd, resp)
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "Investment style when the request has none")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Budget (overrides the request)")
	cmd.Flags().IntVar(&target, "target", 0, "Target position count (derived from budget and style when 0)")
	return cmd
}
