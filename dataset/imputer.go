package dataset

import (
	"github.com/pbanos/arbor/feature"
	"golang.org/x/exp/maps"
)

/*
Imputer holds the value to use in place of a missing one for each feature.
Values are computed once over a whole training dataset: the mode for
nominal features and the mean for numeric ones.
*/
type Imputer struct {
	values map[string]feature.Value
}

/*
NewImputer takes a dataset and returns an Imputer with the statistics of
its features.

Nominal features impute their most frequent category, ties going to the
lowest code. Numeric features impute the mean of their observed values.
Features without any observed value impute their first category or 0.
*/
func NewImputer(d *Dataset) *Imputer {
	values := make(map[string]feature.Value)
	for _, f := range d.features {
		switch f := f.(type) {
		case *feature.NominalFeature:
			values[f.Name()] = mode(d, f)
		case *feature.NumericFeature:
			values[f.Name()] = mean(d, f)
		}
	}
	return &Imputer{values}
}

/*
NewImputerFromValues takes a map of feature names to values and returns an
Imputer that imputes them. It is meant to restore imputers from their
encoded form.
*/
func NewImputerFromValues(values map[string]feature.Value) *Imputer {
	return &Imputer{maps.Clone(values)}
}

// Values returns the imputed value for each feature by name
func (im *Imputer) Values() map[string]feature.Value {
	return im.values
}

/*
Impute takes a feature and returns the value to use when an instance misses
it. Features the imputer knows nothing about impute their first category
if nominal, or 0 if numeric.
*/
func (im *Imputer) Impute(f feature.Feature) feature.Value {
	if im != nil {
		if v, ok := im.values[f.Name()]; ok {
			return v
		}
	}
	if f.Kind() == feature.Nominal {
		return feature.NominalValue(0)
	}
	return feature.NumericValue(0)
}

/*
Resolve takes an instance and a feature and returns the value of the
instance for the feature, or the imputed one if it is missing. A nil
Imputer resolves to the raw value.
*/
func (im *Imputer) Resolve(inst Instance, f feature.Feature) feature.Value {
	v := inst.ValueFor(f)
	if v.IsMissing() && im != nil {
		return im.Impute(f)
	}
	return v
}

func mode(d *Dataset, f *feature.NominalFeature) feature.Value {
	counts := make([]int, len(f.Categories()))
	for _, inst := range d.instances {
		if code, ok := inst.ValueFor(f).Code(); ok {
			counts[code]++
		}
	}
	best := 0
	for code, c := range counts {
		if c > counts[best] {
			best = code
		}
	}
	return feature.NominalValue(best)
}

func mean(d *Dataset, f *feature.NumericFeature) feature.Value {
	var sum float64
	var n int
	for _, inst := range d.instances {
		if v, ok := inst.ValueFor(f).Float(); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return feature.NumericValue(0)
	}
	return feature.NumericValue(sum / float64(n))
}
