package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/dataset/arff"
	"github.com/pbanos/arbor/dataset/csv"
	"github.com/pbanos/arbor/dataset/mongodataset"
	"github.com/pbanos/arbor/dataset/sqldataset"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/feature/yaml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	mgo "gopkg.in/mgo.v2"
)

type inputConfig struct {
	dataInput     string
	metadataInput string
	classFeature  string
	table         string
}

func (ic *inputConfig) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&(ic.dataInput), "input", "i", "", "path to an input CSV (.csv), ARFF (.arff) or SQLite3 (.db) file, or a PostgreSQL (postgresql://) or MongoDB (mongodb://) connection URL with the data (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(ic.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features available on the input (required unless the input is ARFF)")
	cmd.PersistentFlags().StringVarP(&(ic.classFeature), "class-feature", "c", "Class", "name of the nominal feature to predict")
	cmd.PersistentFlags().StringVar(&(ic.table), "table", "samples", "name of the table or collection holding the data on database inputs")
}

func (ic *inputConfig) Validate() error {
	if ic.metadataInput == "" && !ic.isARFF() {
		return fmt.Errorf("required metadata flag was not set")
	}
	if ic.classFeature == "" {
		return fmt.Errorf("required class-feature flag was not set")
	}
	if ic.table == "" {
		return fmt.Errorf("table flag cannot be empty")
	}
	return nil
}

func (ic *inputConfig) isARFF() bool {
	return strings.HasSuffix(ic.dataInput, ".arff")
}

func (ic *inputConfig) features() ([]feature.Feature, error) {
	return yaml.ReadFeaturesFromFile(ic.metadataInput)
}

/*
dataset reads the dataset on the input, choosing the reader by the form of
the input. ARFF files declare their own features and ignore the metadata.
*/
func (ic *inputConfig) dataset(ctx context.Context, logger *zap.Logger) (*dataset.Dataset, error) {
	if ic.isARFF() {
		logger.Debug("reading ARFF dataset", zap.String("input", ic.dataInput))
		return arff.ReadDatasetFromFilePath(ctx, ic.dataInput, ic.classFeature)
	}
	features, err := ic.features()
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasPrefix(ic.dataInput, "postgresql://"):
		logger.Debug("reading PostgreSQL dataset", zap.String("table", ic.table))
		adapter, err := sqldataset.OpenPostgreSQL(ic.dataInput)
		if err != nil {
			return nil, fmt.Errorf("connecting to PostgreSQL: %v", err)
		}
		defer adapter.Close()
		return sqldataset.ReadDataset(ctx, adapter, ic.table, features, ic.classFeature)
	case strings.HasPrefix(ic.dataInput, "mongodb://"):
		logger.Debug("reading MongoDB dataset", zap.String("collection", ic.table))
		session, err := mgo.Dial(ic.dataInput)
		if err != nil {
			return nil, fmt.Errorf("connecting to MongoDB: %v", err)
		}
		defer session.Close()
		return mongodataset.ReadDataset(ctx, session, ic.table, features, ic.classFeature)
	case strings.HasSuffix(ic.dataInput, ".db"):
		logger.Debug("reading SQLite3 dataset", zap.String("input", ic.dataInput), zap.String("table", ic.table))
		adapter, err := sqldataset.OpenSQLite3(ic.dataInput)
		if err != nil {
			return nil, fmt.Errorf("opening SQLite3 file %s: %v", ic.dataInput, err)
		}
		defer adapter.Close()
		return sqldataset.ReadDataset(ctx, adapter, ic.table, features, ic.classFeature)
	}
	if ic.dataInput == "" {
		logger.Debug("reading CSV dataset from STDIN")
	} else {
		logger.Debug("reading CSV dataset", zap.String("input", ic.dataInput))
	}
	return csv.ReadDatasetFromFilePath(ctx, ic.dataInput, features, ic.classFeature)
}

// schema returns every feature of the dataset, class included
func schema(d *dataset.Dataset) []feature.Feature {
	features := make([]feature.Feature, 0, len(d.Features())+1)
	features = append(features, d.Features()...)
	return append(features, d.Class())
}
