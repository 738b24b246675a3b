// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

// Package cli provides the venuectl command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/staywise/internal/config"
	"github.com/tomtom215/staywise/internal/llm"
	"github.com/tomtom215/staywise/internal/logging"
	"github.com/tomtom215/staywise/internal/recommend"
)

// Version is set at build time.
var Version = "dev"

// app is the state shared by every command of one invocation.
type app struct {
	configFile  string
	catalogPath string
	output      string
	verbose     bool

	out    io.Writer
	errOut io.Writer

	cfg    *config.Config
	engine *recommend.Engine
}

// NewRootCommand builds the venuectl command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "venuectl",
		Short: "Inspect venue similarity and inferred features",
		Long: `venuectl loads a venue catalog and runs the Staywise engine locally.

It explains review themes, scores venue similarity, lists geographic
neighbors, infers missing features and answers travel preference queries.
Without an LLM API key recommendations are composed offline.

Examples:
  venuectl themes h1
  venuectl neighbors h1 -o yaml
  venuectl similarity h1 h2
  venuectl complete --catalog ./hotel_data.json
  venuectl recommend "quiet lake view with a spa" --refine`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip engine setup for version and help commands
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return a.setup()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: search standard paths)")
	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "venue catalog path (overrides catalog.path)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", formatText, "output format: text, json or yaml")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newVenuesCmd(a),
		newThemesCmd(a),
		newNeighborsCmd(a),
		newSimilarityCmd(a),
		newNearbyCmd(a),
		newCompleteCmd(a),
		newRecommendCmd(a),
		newVersionCmd(a),
	)
	return root
}

// Execute runs venuectl against the process arguments. An interrupt
// cancels a running generation or completion.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

// setup loads configuration and the catalog.
func (a *app) setup() error {
	if !validFormat(a.output) {
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", a.output)
	}

	var (
		cfg *config.Config
		err error
	)
	if a.configFile != "" {
		cfg, err = config.LoadFile(a.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if a.catalogPath != "" {
		cfg.Catalog.Path = a.catalogPath
	}
	a.cfg = cfg

	logCfg := cfg.LogConfig()
	logCfg.Format = "console"
	logCfg.Output = a.errOut
	logCfg.Level = "warn"
	if a.verbose {
		logCfg.Level = "debug"
	}
	logging.Init(logCfg)

	engine, err := newEngine(cfg, logging.Logger())
	if err != nil {
		return err
	}
	a.engine = engine
	return nil
}

// newEngine builds an uncached engine over cfg's catalog. Each invocation
// answers one query, so the advice cache is left off.
//
//nolint:gocritic // zerolog.Logger is passed by value
func newEngine(cfg *config.Config, logger zerolog.Logger) (*recommend.Engine, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, fmt.Errorf("inference policy: %w", err)
	}

	var opts []recommend.Option
	client, err := llm.New(cfg.GenerationConfig())
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		logger.Debug().Msg("No LLM API key configured, composing offline")
	case err != nil:
		return nil, fmt.Errorf("text generation client: %w", err)
	default:
		opts = append(opts, recommend.WithGenerator(client))
	}

	engine, err := recommend.NewEngine(policy, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	if err := engine.Reload(cfg.Catalog.Path); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Debug().
		Str("path", cfg.Catalog.Path).
		Int("venues", engine.Catalog().Len()).
		Msg("Catalog loaded")
	return engine, nil
}
