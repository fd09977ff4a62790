/*
Package inputsample provides an instance whose feature values are read
from an io.Reader as they are needed, to predict interactively.
*/
package inputsample

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
)

/*
ReadSample represents an instance whose feature values
are retrieved from a reader. A feature value will be
requested using a FeatureValueRequester before reading it.
*/
type ReadSample struct {
	obtainedValues        dataset.Instance
	undefinedValue        string
	scanner               *bufio.Scanner
	featureValueRequester FeatureValueRequester
	features              []feature.Feature
}

/*
FeatureValueRequester represents a way to ask
for feature values and reject the given values.
*/
type FeatureValueRequester interface {
	RequestValueFor(feature.Feature) error
	RejectValueFor(feature.Feature, string) error
}

/*
New takes an io.Reader, a slice of features, a FeatureValueRequester and
an undefinedValue coding string and returns a ReadSample.

The returned ReadSample ValueFor method reads feature values first
requesting them with the given FeatureValueRequester and then parsing
the values from the reader, one per line. The undefinedValue string on
its own line is read as a missing value.

Lines that are not valid values for the feature are rejected with the
FeatureValueRequester's RejectValueFor method and the next line is read.
*/
func New(r io.Reader, features []feature.Feature, featureValueRequester FeatureValueRequester, undefinedValue string) *ReadSample {
	return &ReadSample{make(dataset.Instance), undefinedValue, bufio.NewScanner(r), featureValueRequester, features}
}

/*
ValueFor takes a feature and returns the value read for it. Values are
read only once, later calls return the value read the first time.
*/
func (rs *ReadSample) ValueFor(f feature.Feature) (feature.Value, error) {
	if value, ok := rs.obtainedValues[f.Name()]; ok {
		return value, nil
	}
	var featureWithInfo feature.Feature
	for _, feat := range rs.features {
		if f.Name() == feat.Name() {
			featureWithInfo = feat
		}
	}
	if featureWithInfo == nil {
		return feature.Missing(), fmt.Errorf("have no information about feature %s, do not know how to read its value", f.Name())
	}
	err := rs.featureValueRequester.RequestValueFor(featureWithInfo)
	if err != nil {
		return feature.Missing(), err
	}
	for rs.scanner.Scan() {
		line := rs.scanner.Text()
		if line == rs.undefinedValue {
			rs.obtainedValues[f.Name()] = feature.Missing()
			return feature.Missing(), nil
		}
		value, err := dataset.ParseValue(featureWithInfo, line)
		if err == nil && !value.IsMissing() {
			rs.obtainedValues[f.Name()] = value
			return value, nil
		}
		err = rs.featureValueRequester.RejectValueFor(featureWithInfo, line)
		if err != nil {
			return feature.Missing(), err
		}
	}
	err = rs.scanner.Err()
	if err != nil {
		return feature.Missing(), err
	}
	return feature.Missing(), fmt.Errorf("EOF when requesting value for %s", f.Name())
}

// Instance returns the values read so far
func (rs *ReadSample) Instance() dataset.Instance {
	return rs.obtainedValues
}
