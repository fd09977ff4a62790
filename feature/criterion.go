package feature

import (
	"fmt"
	"strconv"
)

/*
Criterion represents a constraint on a feature

Its SatisfiedBy method takes a value for the feature and returns a boolean
indicating if the value satisfies the feature criterion.

Its Feature method returns the feature on which the criterion is applied.
*/
type Criterion interface {
	Feature() Feature
	SatisfiedBy(Value) (bool, error)
}

/*
LabelCriterion represents a constraint on a nominal feature, a
category it must take.

Its Label method returns the category label to which the feature is
constrained.
*/
type LabelCriterion interface {
	Criterion
	Label() string
}

/*
ThresholdCriterion represents a constraint on a numeric feature: the value
must be less or equal than the threshold or, for the greater variant, above
it.

Its Threshold method returns the threshold and its Greater method whether
the constraint is the '>' side.
*/
type ThresholdCriterion interface {
	Criterion
	Threshold() float64
	Greater() bool
}

type labelCriterion struct {
	feature *NominalFeature
	label   string
}

type thresholdCriterion struct {
	feature   *NumericFeature
	threshold float64
	greater   bool
}

/*
NewLabelCriterion takes a NominalFeature and one of its category labels and
returns a LabelCriterion satisfied by values decoding to that label.
*/
func NewLabelCriterion(feature *NominalFeature, label string) LabelCriterion {
	return &labelCriterion{feature, label}
}

/*
NewLECriterion takes a NumericFeature and a threshold and returns a
ThresholdCriterion satisfied by values less or equal than the threshold.
*/
func NewLECriterion(feature *NumericFeature, threshold float64) ThresholdCriterion {
	return &thresholdCriterion{feature, threshold, false}
}

/*
NewGTCriterion takes a NumericFeature and a threshold and returns a
ThresholdCriterion satisfied by values greater than the threshold.
*/
func NewGTCriterion(feature *NumericFeature, threshold float64) ThresholdCriterion {
	return &thresholdCriterion{feature, threshold, true}
}

/*
Feature returns the feature to which the constraint applies.
*/
func (lc *labelCriterion) Feature() Feature {
	return lc.feature
}

/*
SatisfiedBy receives a value as parameter and returns a boolean indicating if
the value satisfies the criterion. Missing values satisfy no label criterion.
Codes that cannot be decoded return an error wrapping ErrSchemaMismatch.
*/
func (lc *labelCriterion) SatisfiedBy(v Value) (bool, error) {
	if v.IsMissing() {
		return false, nil
	}
	label, err := lc.feature.Decode(v)
	if err != nil {
		return false, err
	}
	return label == lc.label, nil
}

func (lc *labelCriterion) Label() string {
	return lc.label
}

func (lc *labelCriterion) String() string {
	return fmt.Sprintf("%s = %s", lc.feature.Name(), lc.label)
}

/*
Feature returns the feature to which the constraint applies.
*/
func (tc *thresholdCriterion) Feature() Feature {
	return tc.feature
}

/*
SatisfiedBy receives a value as parameter and returns a boolean indicating if the
value satisfies the criterion. Missing values satisfy no threshold criterion,
non-numeric ones return an error wrapping ErrSchemaMismatch.
*/
func (tc *thresholdCriterion) SatisfiedBy(v Value) (bool, error) {
	if v.IsMissing() {
		return false, nil
	}
	f, ok := v.Float()
	if !ok {
		return false, fmt.Errorf("numeric feature %s cannot compare %v value: %w", tc.feature.Name(), v, ErrSchemaMismatch)
	}
	if tc.greater {
		return f > tc.threshold, nil
	}
	return f <= tc.threshold, nil
}

func (tc *thresholdCriterion) Threshold() float64 {
	return tc.threshold
}

func (tc *thresholdCriterion) Greater() bool {
	return tc.greater
}

// Predicate returns the comparison as a string such as "<= 2" or "> 2"
func (tc *thresholdCriterion) Predicate() string {
	op := "<="
	if tc.greater {
		op = ">"
	}
	return fmt.Sprintf("%s %s", op, strconv.FormatFloat(tc.threshold, 'g', -1, 64))
}

func (tc *thresholdCriterion) String() string {
	return fmt.Sprintf("%s %s", tc.feature.Name(), tc.Predicate())
}
