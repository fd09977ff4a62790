package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/arbor"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/tree"
	"github.com/pbanos/arbor/tree/dot"
	"github.com/pbanos/arbor/tree/json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type growCmdConfig struct {
	*rootCmdConfig
	inputConfig
	output   string
	format   string
	strategy string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a decision tree from a set of data to predict a nominal feature.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			strategy, err := arbor.ParseScoringStrategy(config.strategy)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := cmd.Context()
			trainingSet, err := config.dataset(ctx, config.logger)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			config.logger.Info("growing tree",
				zap.Int("instances", trainingSet.Count()),
				zap.Int("features", len(trainingSet.Features())),
				zap.String("class", trainingSet.Class().Name()))
			t, err := arbor.Grow(ctx, &arbor.TrainingContext{
				Dataset:  trainingSet,
				Strategy: strategy,
				Logger:   config.logger,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
				os.Exit(3)
			}
			config.logger.Info("done", zap.Int("nodes", t.Len()), zap.Int("depth", t.Depth()))
			err = outputTree(ctx, config.output, config.format, t, schema(trainingSet))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
		},
	}
	config.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the grown tree will be written (defaults to STDOUT)")
	cmd.PersistentFlags().StringVarP(&(config.format), "format", "f", "json", "format of the written tree: json, text or dot")
	cmd.PersistentFlags().StringVarP(&(config.strategy), "strategy", "s", "information-gain", "strategy to choose the feature to split on: information-gain or degenerate")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	err := gcc.inputConfig.Validate()
	if err != nil {
		return err
	}
	switch gcc.format {
	case "json", "text", "dot":
		return nil
	}
	return fmt.Errorf("unknown tree format %q", gcc.format)
}

func outputTree(ctx context.Context, outputPath, format string, t *tree.Tree, features []feature.Feature) error {
	var f *os.File
	var err error
	if outputPath == "" {
		f = os.Stdout
	} else {
		f, err = os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	switch format {
	case "text":
		_, err = io.WriteString(f, t.String())
		return err
	case "dot":
		return dot.WriteDOT(ctx, t, f)
	}
	return json.WriteJSONTree(ctx, t, json.NewTreeEncodeDecoder(features), features, f)
}
