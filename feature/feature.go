package feature

import "fmt"

// Kind tells how the values of a feature are interpreted
type Kind int

const (
	// Nominal features take one of a finite, ordered list of category labels.
	Nominal Kind = iota
	// Numeric features take ordered scalar values.
	Numeric
)

func (k Kind) String() string {
	switch k {
	case Nominal:
		return "nominal"
	case Numeric:
		return "numeric"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

/*
Feature represents a property that can be observed
*/
type Feature interface {
	Name() string
	Kind() Kind
}

/*
NominalFeature represents a property that can be observed and that can only
take a value among a finite set of categories. Samples store the index of
the category on the feature's list instead of the label itself.
*/
type NominalFeature struct {
	name       string
	categories []string
}

/*
NumericFeature represents a property that can be observed and that can take
a numeric value
*/
type NumericFeature struct {
	name string
}

/*
NewNominalFeature takes a name string and a slice of category label strings
and returns a nominal feature with the given name and categories. The order
of the categories defines the codes used to store values of the feature.
*/
func NewNominalFeature(name string, categories []string) *NominalFeature {
	cs := make([]string, len(categories))
	copy(cs, categories)
	return &NominalFeature{name, cs}
}

/*
NewNumericFeature takes a name string and returns a numeric feature with
the given name.
*/
func NewNumericFeature(name string) *NumericFeature {
	return &NumericFeature{name}
}

/*
Name returns a string with the name of the feature
*/
func (nf *NominalFeature) Name() string {
	return nf.name
}

// Kind returns Nominal
func (nf *NominalFeature) Kind() Kind {
	return Nominal
}

/*
Categories returns a string slice with the category labels of the feature
in code order
*/
func (nf *NominalFeature) Categories() []string {
	return nf.categories
}

/*
Label takes a category code and returns the label it stands for, or an
error wrapping ErrSchemaMismatch when the code is out of range.
*/
func (nf *NominalFeature) Label(code int) (string, error) {
	if code < 0 || code >= len(nf.categories) {
		return "", fmt.Errorf("nominal feature %s has no category with code %d: %w", nf.name, code, ErrSchemaMismatch)
	}
	return nf.categories[code], nil
}

/*
Code takes a category label and returns its code and true, or -1 and
false if the feature has no such category.
*/
func (nf *NominalFeature) Code(label string) (int, bool) {
	for i, c := range nf.categories {
		if c == label {
			return i, true
		}
	}
	return -1, false
}

/*
Decode takes a Value and returns the category label it holds. Missing values
and values of other kinds are reported as schema mismatches.
*/
func (nf *NominalFeature) Decode(v Value) (string, error) {
	code, ok := v.Code()
	if !ok {
		return "", fmt.Errorf("nominal feature %s cannot decode %v value: %w", nf.name, v, ErrSchemaMismatch)
	}
	return nf.Label(code)
}

func (nf *NominalFeature) String() string {
	return nf.name
}

/*
Name returns a string with the name of the feature
*/
func (nf *NumericFeature) Name() string {
	return nf.name
}

// Kind returns Numeric
func (nf *NumericFeature) Kind() Kind {
	return Numeric
}

func (nf *NumericFeature) String() string {
	return nf.name
}
