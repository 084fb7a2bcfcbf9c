// Package main is the command-line entry point for the mentor decision engine.
// It reads JSON request files and writes JSON results to stdout; logs go to stderr.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aristath/mentor/internal/config"
	"github.com/aristath/mentor/internal/engine"
	"github.com/aristath/mentor/internal/workers"
	"github.com/aristath/mentor/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once the root command has run.
type app struct {
	envFile   string
	rulesFile string
	logLevel  string
	pretty    bool
	workers   int

	cfg    *config.Config
	log    zerolog.Logger
	engine *engine.Engine
	pool   *workers.WorkerPool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "mentor",
		Short:        "Rank, plan and check investment recommendations",
		Long:         `mentor scores candidates for an investment style, allocates a budget in whole lots, computes technical indicators and corrects tentative verdicts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env", ".env", "Environment file to load before reading variables")
	flags.StringVar(&a.rulesFile, "rules", "", "YAML rules file (overrides MENTOR_RULES_FILE)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	flags.BoolVar(&a.pretty, "pretty", false, "Human-readable log output")
	flags.IntVar(&a.workers, "workers", 0, "Batch concurrency (overrides MENTOR_WORKERS)")

	root.AddCommand(
		newRankCmd(a),
		newPlanCmd(a),
		newIndicatorsCmd(a),
		newCorrectCmd(a),
		newRulesCmd(a),
	)
	return root
}

// init loads configuration, applies flag overrides and builds the engine.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.rulesFile != "" {
		cfg.RulesFile = a.rulesFile
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.pretty {
		cfg.LogPretty = true
	}
	if a.workers > 0 {
		cfg.Workers = a.workers
	}

	a.cfg = cfg
	a.log = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Output: cmd.ErrOrStderr(),
	})
	logger.SetGlobalLogger(a.log)

	rules, err := cfg.Rules()
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	a.engine = engine.New(rules, a.log)
	a.pool = workers.NewWorkerPool(cfg.Workers)

	a.log.Debug().
		Str("rules_file", cfg.RulesFile).
		Int("workers", a.pool.Workers()).
		Msg("Engine ready")
	return nil
}

// readJSON decodes path into v; "-" reads stdin.
func readJSON(cmd *cobra.Command, path string, v interface{}) error {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
