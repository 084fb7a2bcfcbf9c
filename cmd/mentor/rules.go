package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRulesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the effective rule set as YAML",
		Long:  `Prints the defaults with any rules file applied. The output is a valid rules file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(a.engine.Rules()); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
