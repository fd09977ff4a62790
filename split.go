package arbor

import (
	"fmt"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
	"golang.org/x/exp/slices"
)

/*
Partition represents a partition of a dataset according to a feature
into subsets, one per criterion, with the information gain it achieves
on the class of the dataset.
*/
type Partition struct {
	Feature         feature.Feature
	Criteria        []feature.Criterion
	Subsets         []*dataset.Dataset
	InformationGain float64
	// Threshold is the split point of partitions on numeric features
	Threshold float64
}

/*
NewNominalPartition takes a dataset, a nominal feature and an imputer and
returns the partition of the dataset with a subset for each category of
the feature, in category order. Categories no instance takes produce
empty subsets. Instances missing the feature are placed according to
the imputer.
*/
func NewNominalPartition(d *dataset.Dataset, f *feature.NominalFeature, im *dataset.Imputer) (*Partition, error) {
	categories := f.Categories()
	criteria := make([]feature.Criterion, 0, len(categories))
	subsets := make([]*dataset.Dataset, 0, len(categories))
	labels := make([][]string, 0, len(categories))
	for _, c := range categories {
		fc := feature.NewLabelCriterion(f, c)
		s, err := d.SubsetWith(fc, im)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, fc)
		subsets = append(subsets, s)
		labels = append(labels, s.Labels())
	}
	return &Partition{
		Feature:         f,
		Criteria:        criteria,
		Subsets:         subsets,
		InformationGain: InformationGain(d.Labels(), labels),
	}, nil
}

/*
NewNumericPartition takes a dataset, a numeric feature and an imputer and
returns the partition of the dataset in two subsets, values less or equal
than a threshold and values above it. Every distinct value observed for
the feature is tried as threshold in ascending order, and the smallest
one with the maximal information gain is chosen. Instances missing the feature are placed according to the
imputer.

If no instance has a value for the feature there are no thresholds to
try and nil is returned.
*/
func NewNumericPartition(d *dataset.Dataset, f *feature.NumericFeature, im *dataset.Imputer) (*Partition, error) {
	thresholds := d.NumericValues(f)
	if len(thresholds) == 0 {
		return nil, nil
	}
	slices.Sort(thresholds)
	instances := d.Instances()
	values := make([]float64, len(instances))
	for i, inst := range instances {
		v, ok := im.Resolve(inst, f).Float()
		if !ok {
			return nil, fmt.Errorf("instance %d has no numeric value for %s: %w", i, f.Name(), feature.ErrSchemaMismatch)
		}
		values[i] = v
	}
	labels := d.Labels()
	best := FirstMaximalBy(len(thresholds), func(i int) float64 {
		return InformationGain(labels, splitLabels(labels, values, thresholds[i]))
	})
	threshold := thresholds[best]
	var le, gt []dataset.Instance
	for i, inst := range instances {
		if values[i] <= threshold {
			le = append(le, inst)
		} else {
			gt = append(gt, inst)
		}
	}
	return &Partition{
		Feature:         f,
		Criteria:        []feature.Criterion{feature.NewLECriterion(f, threshold), feature.NewGTCriterion(f, threshold)},
		Subsets:         []*dataset.Dataset{d.Subset(le), d.Subset(gt)},
		InformationGain: InformationGain(labels, splitLabels(labels, values, threshold)),
		Threshold:       threshold,
	}, nil
}

func splitLabels(labels []string, values []float64, threshold float64) [][]string {
	var le, gt []string
	for i, l := range labels {
		if values[i] <= threshold {
			le = append(le, l)
		} else {
			gt = append(gt, l)
		}
	}
	return [][]string{le, gt}
}

// Degenerate returns whether some subset of a numeric partition holds
// every instance
func (p *Partition) Degenerate() bool {
	if p.Feature.Kind() != feature.Numeric {
		return false
	}
	for _, s := range p.Subsets {
		if s.Count() == 0 {
			return true
		}
	}
	return false
}

func partition(d *dataset.Dataset, f feature.Feature, im *dataset.Imputer) (*Partition, error) {
	switch f := f.(type) {
	default:
		return nil, fmt.Errorf("unknown feature type %T for feature %v", f, f.Name())
	case *feature.NominalFeature:
		return NewNominalPartition(d, f, im)
	case *feature.NumericFeature:
		return NewNumericPartition(d, f, im)
	}
}

/*
FirstMaximalBy takes a number of candidates n and a score function on their
indexes and returns the index of the first candidate with the maximal
score, or -1 if there are no candidates. Later candidates only win with a
strictly greater score.
*/
func FirstMaximalBy(n int, score func(int) float64) int {
	best := -1
	var bestScore float64
	for i := 0; i < n; i++ {
		s := score(i)
		if best < 0 || s > bestScore {
			best = i
			bestScore = s
		}
	}
	return best
}
