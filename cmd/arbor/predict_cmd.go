package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/dataset/csv"
	"github.com/pbanos/arbor/dataset/inputsample"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/feature/yaml"
	"github.com/pbanos/arbor/tree"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type predictCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	dataInput     string
	metadataInput string
	output        string
	interactive   bool
	undefined     string
}

type stdoutFeatureValueRequester string

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the class of the instances on a CSV file",
		Long:  `Use a tree to predict the class of every instance on a CSV file, writing them back as CSV with the class column filled in`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := cmd.Context()
			features, err := yaml.ReadFeaturesFromFile(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			t, err := loadTree(ctx, config.treeInput, features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			if config.interactive {
				sample := inputsample.New(os.Stdin, features, stdoutFeatureValueRequester(config.undefined), config.undefined)
				label, err := t.PredictFunc(sample.ValueFor)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(4)
				}
				fmt.Printf("Predicted %s is %s\n", t.Class.Name(), label)
				return
			}
			count, err := config.predict(ctx, t, features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.logger.Info("done", zap.Int("predictions", count))
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV file with the instances to predict (defaults to STDIN)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features available on the input (required)")
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to use will be read and parsed as JSON (required)")
	cmd.PersistentFlags().BoolVar(&(config.interactive), "interactive", false, "predict the class of a single instance answering questions about its features on STDIN")
	cmd.PersistentFlags().StringVarP(&(config.undefined), "undefined-value", "u", "?", "value to answer with to leave a feature of the instance undefined on interactive mode")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the instances and their predictions will be written as CSV (defaults to STDOUT)")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if pcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}

func (pcc *predictCmdConfig) predict(ctx context.Context, t *tree.Tree, features []feature.Feature) (int, error) {
	var in io.Reader = os.Stdin
	if pcc.dataInput != "" {
		f, err := os.Open(pcc.dataInput)
		if err != nil {
			return 0, fmt.Errorf("opening input %s: %v", pcc.dataInput, err)
		}
		defer f.Close()
		in = f
	}
	var out io.Writer = os.Stdout
	if pcc.output != "" {
		f, err := os.Create(pcc.output)
		if err != nil {
			return 0, fmt.Errorf("creating output %s: %v", pcc.output, err)
		}
		defer f.Close()
		out = f
	}
	w, err := csv.NewWriter(out, features)
	if err != nil {
		return 0, err
	}
	err = csv.ReadInstances(in, features, func(i int, inst dataset.Instance) (bool, error) {
		label, err := t.Predict(inst)
		if err != nil {
			return false, fmt.Errorf("predicting instance %d: %w", i, err)
		}
		code, _ := t.Class.Code(label)
		inst[t.Class.Name()] = feature.NominalValue(code)
		pcc.logger.Debug("predicted", zap.Int("instance", i), zap.String("class", label))
		_, err = w.Write(ctx, []dataset.Instance{inst})
		return err == nil, err
	})
	if err != nil {
		return w.Count(), err
	}
	return w.Count(), w.Flush()
}

func (sfvr stdoutFeatureValueRequester) RequestValueFor(f feature.Feature) error {
	switch f := f.(type) {
	case *feature.NominalFeature:
		fmt.Printf("Please provide the instance's %s:\n(valid values are %v or %s if undefined)\n", f.Name(), f.Categories(), string(sfvr))
	case *feature.NumericFeature:
		fmt.Printf("Please provide the instance's %s:\n(valid values are real numbers or %s if undefined)\n", f.Name(), string(sfvr))
	default:
		return fmt.Errorf("unknown feature type %T", f)
	}
	return nil
}

func (sfvr stdoutFeatureValueRequester) RejectValueFor(f feature.Feature, value string) error {
	switch f := f.(type) {
	case *feature.NominalFeature:
		fmt.Printf("%s is not a valid value for the instance's %s. Please provide one of %v or %s if undefined.\n", value, f.Name(), f.Categories(), string(sfvr))
	case *feature.NumericFeature:
		fmt.Printf("%s is not a valid value for the instance's %s. Please provide a real number or %s if undefined.\n", value, f.Name(), string(sfvr))
	default:
		return fmt.Errorf("unknown feature type %T", f)
	}
	return nil
}
