package main

import (
	"github.com/aristath/mentor/internal/domain"
	"github.com/aristath/mentor/internal/modules/indicators"
	"github.com/spf13/cobra"
)

func newIndicatorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "indicators [series.json]",
		Short: "Compute RSI, MACD, SMA and deviation for a price series",
		Long:  `Reads a JSON array of {date, close, volume} points in any order and prints the indicator set.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var series domain.PriceSeries
			if err := readJSON(cmd, args[0], &series); err != nil {
				return err
			}
			calc := indicators.NewCalculator(a.engine.Rules().Indicators, a.log)
			return writeJSON(cmd, calc.Compute(series))
		},
	}
}
