package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/convo-terrain/internal/assignments"
	"github.com/danielpatrickdp/convo-terrain/internal/cluster"
	"github.com/danielpatrickdp/convo-terrain/internal/landscape"
	"github.com/danielpatrickdp/convo-terrain/internal/logging"
	"github.com/danielpatrickdp/convo-terrain/internal/scorer"
	"github.com/danielpatrickdp/convo-terrain/internal/signals"
)

// #region input-flags

// inputFlags are shared by every command that reads conversations.
type inputFlags struct {
	input       string
	assignments string
	useStore    bool
	logRuns     bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.input, "input", "i", "", "Conversation fixture JSON (required)")
	fs.StringVar(&f.assignments, "assignments", "", "Precomputed assignment table (.yaml or .json)")
	fs.BoolVar(&f.useStore, "use-store", false, "Read precomputed assignments from the SQLite store")
	fs.BoolVar(&f.logRuns, "log", false, "Record each classification in the SQLite classification log")
	_ = cmd.MarkFlagRequired("input")
}

// #endregion input-flags

// #region pipeline

// runBatch loads the fixture, wires optional collaborators from config and
// flags, and builds every conversation.
func runBatch(ctx context.Context, in inputFlags, opts landscape.Options) (landscape.Batch, error) {
	convs, err := landscape.LoadConversations(in.input)
	if err != nil {
		return landscape.Batch{}, err
	}

	logger := logging.For(logging.ComponentCLI)
	b := landscape.NewBuilder(opts)

	if cfg.Scorer.Address != "" {
		client, err := scorer.NewClient(cfg.Scorer.Address, cfg.Scorer.Timeout())
		if err != nil {
			return landscape.Batch{}, fmt.Errorf("connect scorer %s: %w", cfg.Scorer.Address, err)
		}
		defer client.Close()
		logging.For(logging.ComponentScorer).Debug("scorer connected",
			slog.String("address", cfg.Scorer.Address),
			slog.Duration("timeout", cfg.Scorer.Timeout()))
		b.Producer = signals.NewProducer(client, signals.DefaultProducerConfig(), logging.For(logging.ComponentSignals))
	}

	var store *assignments.Store
	if in.useStore || in.logRuns {
		store, err = assignments.NewStore(cfg.Storage.Path, logging.For(logging.ComponentAssignments))
		if err != nil {
			return landscape.Batch{}, err
		}
		defer store.Close()
	}

	cache := assignments.NewCache(logging.For(logging.ComponentAssignments))
	switch {
	case in.assignments != "":
		// load failures are logged by the cache; classification falls through to heuristics
		_ = cache.Load(ctx, assignments.FileSource{Path: in.assignments})
	case in.useStore:
		_ = cache.Load(ctx, store)
	}
	b.Classifier = &cluster.Classifier{Assignments: cache, Logger: logging.For(logging.ComponentCluster)}

	if in.logRuns {
		if err := logging.EnsureClassificationLog(store.DB()); err != nil {
			return landscape.Batch{}, err
		}
		b.LogDB = store.DB()
	}

	batch, err := b.BuildBatch(ctx, convs)
	if err != nil {
		return landscape.Batch{}, fmt.Errorf("build landscapes: %w", err)
	}
	logger.Debug("pipeline finished",
		slog.String("run_id", batch.RunID),
		slog.Int("assignments", cache.Len()))
	return batch, nil
}

// baseOptions maps the loaded config onto pipeline options.
func baseOptions() landscape.Options {
	return landscape.OptionsFromConfig(cfg)
}

// #endregion pipeline
