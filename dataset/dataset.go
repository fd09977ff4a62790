/*
Package dataset provides the in-memory representation of labeled tabular
data: a schema of features, a nominal class feature and an ordered list of
instances.
*/
package dataset

import (
	"fmt"
	"math/rand"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/pbanos/arbor/feature"
	"golang.org/x/exp/slices"
)

/*
Dataset represents an ordered collection of instances described by a set
of features, one of which is the class to predict.

Datasets are never modified once built: subsetting, shuffling and
splitting return new datasets that share the schema of the original.
*/
type Dataset struct {
	features  []feature.Feature
	class     *feature.NominalFeature
	instances []Instance
}

/*
New takes a slice of features, the name of the class feature among them and
a slice of instances and returns a Dataset or an error.

The class feature must be declared, nominal and have no empty category
label, otherwise an error wrapping ErrInvalidClass is returned. Every value of every instance must be valid for
its feature and no instance may miss its class, otherwise an error wrapping
feature.ErrSchemaMismatch is returned.
*/
func New(features []feature.Feature, className string, instances []Instance) (*Dataset, error) {
	var class *feature.NominalFeature
	var rest []feature.Feature
	for _, f := range features {
		if f.Name() != className {
			rest = append(rest, f)
			continue
		}
		nf, ok := f.(*feature.NominalFeature)
		if !ok {
			return nil, fmt.Errorf("class feature %s is %v: %w", className, f.Kind(), ErrInvalidClass)
		}
		class = nf
	}
	if class == nil {
		return nil, fmt.Errorf("class feature %s is not declared: %w", className, ErrInvalidClass)
	}
	for _, c := range class.Categories() {
		if c == "" {
			return nil, fmt.Errorf("class feature %s has an empty category: %w", className, ErrInvalidClass)
		}
	}
	for i, inst := range instances {
		v := inst.ValueFor(class)
		if v.IsMissing() {
			return nil, fmt.Errorf("instance %d has no value for class %s: %w", i, className, feature.ErrSchemaMismatch)
		}
		if err := v.Valid(class); err != nil {
			return nil, fmt.Errorf("instance %d: %w", i, err)
		}
		for _, f := range rest {
			if err := inst.ValueFor(f).Valid(f); err != nil {
				return nil, fmt.Errorf("instance %d: %w", i, err)
			}
		}
	}
	return &Dataset{rest, class, instances}, nil
}

// Features returns the non-class features of the dataset in declaration order
func (d *Dataset) Features() []feature.Feature {
	return d.features
}

// Class returns the class feature of the dataset
func (d *Dataset) Class() *feature.NominalFeature {
	return d.class
}

// Instances returns the instances of the dataset in order
func (d *Dataset) Instances() []Instance {
	return d.instances
}

// Count returns the number of instances in the dataset
func (d *Dataset) Count() int {
	return len(d.instances)
}

/*
Label takes an instance and returns its decoded class label.
*/
func (d *Dataset) Label(inst Instance) (string, error) {
	return d.class.Decode(inst.ValueFor(d.class))
}

/*
Labels returns the decoded class labels of the instances in order.
*/
func (d *Dataset) Labels() []string {
	labels := make([]string, len(d.instances))
	categories := d.class.Categories()
	for i, inst := range d.instances {
		// class codes were validated by New
		code, _ := inst.ValueFor(d.class).Code()
		labels[i] = categories[code]
	}
	return labels
}

/*
Pure returns whether all instances share the same class label, in which
case the label is returned too. Empty datasets are not pure.
*/
func (d *Dataset) Pure() (string, bool) {
	labels := d.Labels()
	if len(labels) == 0 {
		return "", false
	}
	for _, l := range labels[1:] {
		if l != labels[0] {
			return "", false
		}
	}
	return labels[0], true
}

/*
Majority returns the most frequent class label among the instances. Ties
are broken in favour of the label encountered first in instance order. An
empty dataset returns ErrEmptyDataset.
*/
func (d *Dataset) Majority() (string, error) {
	labels := d.Labels()
	if len(labels) == 0 {
		return "", ErrEmptyDataset
	}
	counts := make(map[string]int)
	for _, l := range labels {
		counts[l]++
	}
	majority := labels[0]
	for _, l := range labels {
		if counts[l] > counts[majority] {
			majority = l
		}
	}
	return majority, nil
}

/*
Subset takes a slice of instances, assumed to come from this dataset, and
returns a new dataset with the same schema containing them.
*/
func (d *Dataset) Subset(instances []Instance) *Dataset {
	return &Dataset{d.features, d.class, instances}
}

/*
SubsetWith takes a feature.Criterion and an Imputer and returns a subset
with the instances that satisfy the criterion. Missing values are replaced
with the value of the imputer before evaluating the criterion; with a nil
imputer instances missing the feature belong to no subset.
*/
func (d *Dataset) SubsetWith(fc feature.Criterion, im *Imputer) (*Dataset, error) {
	var instances []Instance
	for _, inst := range d.instances {
		ok, err := fc.SatisfiedBy(im.Resolve(inst, fc.Feature()))
		if err != nil {
			return nil, err
		}
		if ok {
			instances = append(instances, inst)
		}
	}
	return d.Subset(instances), nil
}

/*
NumericValues takes a feature and returns the distinct numbers observed for
it on the instances, in the order they are first encountered. Missing values
are skipped.
*/
func (d *Dataset) NumericValues(f feature.Feature) []float64 {
	seen := linkedhashset.New()
	for _, inst := range d.instances {
		if n, ok := inst.ValueFor(f).Float(); ok {
			seen.Add(n)
		}
	}
	values := make([]float64, 0, seen.Size())
	for _, v := range seen.Values() {
		values = append(values, v.(float64))
	}
	return values
}

/*
Shuffle takes a random source and returns a new dataset with the instances
under a uniform random permutation.
*/
func (d *Dataset) Shuffle(r *rand.Rand) *Dataset {
	instances := slices.Clone(d.instances)
	r.Shuffle(len(instances), func(i, j int) {
		instances[i], instances[j] = instances[j], instances[i]
	})
	return d.Subset(instances)
}

/*
Split takes a range [i, j) of instance positions and returns two datasets:
one with the instances in the range and another with the rest in their
original order.
*/
func (d *Dataset) Split(i, j int) (*Dataset, *Dataset) {
	inside := slices.Clone(d.instances[i:j])
	outside := make([]Instance, 0, len(d.instances)-len(inside))
	outside = append(outside, d.instances[:i]...)
	outside = append(outside, d.instances[j:]...)
	return d.Subset(inside), d.Subset(outside)
}
