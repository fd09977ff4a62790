/*
Package csv provides functions to read datasets from CSV streams and write
instances back to them.
*/
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
)

/*
Writer is an interface for a destination to which instances
can be written to.
*/
type Writer interface {
	// Write will attempt to write the given instances
	// and will return the actually written number of
	// instances and an error (if not all instances
	// could be written)
	Write(context.Context, []dataset.Instance) (int, error)
	// Count returns the total number of instances written
	// to the writer
	Count() int
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

type csvWriter struct {
	count    int
	features []feature.Feature
	w        *csv.Writer
}

/*
ReadDataset takes an io.Reader for a CSV stream, a slice of features and the
name of the class feature and returns a dataset.Dataset with the instances
parsed from the reader or an error.

The header or first row of the CSV content is expected to consist of feature
names. Columns for undeclared features are ignored and declared features
without a column are missing on every instance. The rest of the rows should
consist of valid values for the features, with the empty string or '?' to
indicate a missing value.
*/
func ReadDataset(ctx context.Context, reader io.Reader, features []feature.Feature, className string) (*dataset.Dataset, error) {
	instances := []dataset.Instance{}
	err := ReadInstances(reader, features, func(_ int, inst dataset.Instance) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		instances = append(instances, inst)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return dataset.New(features, className, instances)
}

/*
ReadInstances takes an io.Reader for a CSV stream, a slice of features and a
lambda function on an integer and a dataset.Instance that returns a boolean
value. It parses the instances from the reader and for each it calls the
lambda function with the instance and its index as parameters. If the lambda
function returns true, it will continue processing the next instance,
otherwise it will stop. An error is returned if something goes wrong when
reading the stream or parsing an instance.
*/
func ReadInstances(reader io.Reader, features []feature.Feature, lambda func(int, dataset.Instance) (bool, error)) error {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %v", err)
	}
	columns := parseFeaturesFromCSVHeader(header, features)
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %v", err)
		}
		inst, err := parseInstanceFromCSVRow(row, columns)
		if err != nil {
			return fmt.Errorf("parsing line %d: %w", l, err)
		}
		ok, err := lambda(l-2, inst)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadDatasetFromFilePath takes a filepath string, a slice of features and
the name of the class feature, opens the file to which the filepath points
to (os.Stdin if it is empty) and uses ReadDataset to return a dataset or an
error read from it.
*/
func ReadDatasetFromFilePath(ctx context.Context, filepath string, features []feature.Feature, className string) (*dataset.Dataset, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %v", err)
		}
		defer f.Close()
	}
	d, err := ReadDataset(ctx, f, features, className)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %w", filepath, err)
	}
	return d, err
}

/*
NewWriter takes an io.Writer and a slice of feature.Features and
returns a Writer that will write any instances on the io.Writer.
*/
func NewWriter(writer io.Writer, features []feature.Feature) (Writer, error) {
	w := csv.NewWriter(writer)
	record := make([]string, len(features))
	for i, f := range features {
		record[i] = f.Name()
	}
	err := w.Write(record)
	if err != nil {
		return nil, fmt.Errorf("writing CSV header: %v", err)
	}
	return &csvWriter{features: features, w: w}, nil
}

func parseFeaturesFromCSVHeader(header []string, features []feature.Feature) []feature.Feature {
	byName := make(map[string]feature.Feature)
	for _, f := range features {
		byName[f.Name()] = f
	}
	columns := make([]feature.Feature, len(header))
	for i, name := range header {
		columns[i] = byName[name]
	}
	return columns
}

func parseInstanceFromCSVRow(row []string, columns []feature.Feature) (dataset.Instance, error) {
	inst := make(dataset.Instance)
	for i, f := range columns {
		if f == nil || i >= len(row) {
			continue
		}
		v, err := dataset.ParseValue(f, row[i])
		if err != nil {
			return nil, err
		}
		inst[f.Name()] = v
	}
	return inst, nil
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Write(ctx context.Context, instances []dataset.Instance) (int, error) {
	for i, inst := range instances {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		record := make([]string, len(cw.features))
		for j, f := range cw.features {
			s, err := dataset.FormatValue(f, inst.ValueFor(f))
			if err != nil {
				return i, fmt.Errorf("formatting instance %d: %w", cw.count, err)
			}
			record[j] = s
		}
		err := cw.w.Write(record)
		if err != nil {
			return i, err
		}
		cw.count++
	}
	return len(instances), nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
