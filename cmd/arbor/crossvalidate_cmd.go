package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pbanos/arbor"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type crossValidateCmdConfig struct {
	*rootCmdConfig
	inputConfig
	folds    int
	strategy string
	seed     int64
}

func crossValidateCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &crossValidateCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:     "crossvalidate",
		Aliases: []string{"cv"},
		Short:   "Estimate the accuracy of trees grown from a set of data",
		Long:    `Estimate the accuracy of trees grown from a set of data with k-fold cross-validation`,
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
			d, err := config.dataset(ctx, config.logger)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			config.logger.Info("cross-validating",
				zap.Int("instances", d.Count()),
				zap.Int("folds", config.folds),
				zap.Int64("seed", config.seed))
			report, err := arbor.CrossValidate(ctx, d, arbor.CrossValidation{
				Folds:    config.folds,
				Strategy: strategy,
				Seed:     config.seed,
				Logger:   config.logger,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "cross-validating: %v\n", err)
				os.Exit(3)
			}
			if config.verbose {
				writeFoldsTable(os.Stdout, report)
			}
			fmt.Printf("%f mean accuracy over %d folds\n", report.MeanAccuracy, len(report.Folds))
		},
	}
	config.addFlags(cmd)
	cmd.PersistentFlags().IntVarP(&(config.folds), "folds", "k", 10, "number of folds")
	cmd.PersistentFlags().StringVarP(&(config.strategy), "strategy", "s", "information-gain", "strategy to choose the feature to split on: information-gain or degenerate")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", 1, "seed for the shuffle of the data before cutting it into folds")
	return cmd
}

func (cvcc *crossValidateCmdConfig) Validate() error {
	if cvcc.folds < 2 {
		return fmt.Errorf("folds must be at least 2, got %d", cvcc.folds)
	}
	return cvcc.inputConfig.Validate()
}

func writeFoldsTable(w io.Writer, report *arbor.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Fold", Align: text.AlignRight},
		{Name: "Accuracy", Align: text.AlignRight},
	})
	t.AppendHeader(table.Row{"Fold", "Train", "Test", "Correct", "Accuracy", "Nodes", "Depth"})
	for _, f := range report.Folds {
		t.AppendRow(table.Row{f.Index, f.TrainCount, f.TestCount, f.Correct, fmt.Sprintf("%.4f", f.Accuracy), f.Nodes, f.Depth})
	}
	t.AppendSeparator()
	t.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%.4f", report.MeanAccuracy), "", ""})
	t.Render()
}
