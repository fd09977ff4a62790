package feature

import (
	"fmt"
	"math"
	"strconv"
)

type valueKind uint8

const (
	missingValue valueKind = iota
	nominalValue
	numericValue
)

/*
Value is the value a sample takes for a feature. It is one of:
  - a nominal category code, built with NominalValue
  - a numeric scalar, built with NumericValue
  - the missing value, the zero Value or Missing()

Values are resolved once when data is loaded, so code consuming them
never has to guess which of the three it is holding.
*/
type Value struct {
	kind valueKind
	code int
	num  float64
}

// NominalValue returns a Value holding the given category code
func NominalValue(code int) Value {
	return Value{kind: nominalValue, code: code}
}

// NumericValue returns a Value holding the given number
func NumericValue(f float64) Value {
	return Value{kind: numericValue, num: f}
}

// Missing returns the missing Value
func Missing() Value {
	return Value{}
}

// IsMissing returns whether the value is missing
func (v Value) IsMissing() bool {
	return v.kind == missingValue
}

// Code returns the category code and true for nominal values
func (v Value) Code() (int, bool) {
	if v.kind != nominalValue {
		return 0, false
	}
	return v.code, true
}

// Float returns the number and true for numeric values
func (v Value) Float() (float64, bool) {
	if v.kind != numericValue {
		return 0, false
	}
	return v.num, true
}

func (v Value) String() string {
	switch v.kind {
	case nominalValue:
		return fmt.Sprintf("#%d", v.code)
	case numericValue:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	}
	return "?"
}

/*
Valid takes a Feature and returns an error wrapping ErrSchemaMismatch if the
value cannot be interpreted under it: a nominal code out of range, a number
for a nominal feature, a code for a numeric feature or a non-finite number.
Missing values are valid for every feature.
*/
func (v Value) Valid(f Feature) error {
	if v.IsMissing() {
		return nil
	}
	switch f := f.(type) {
	case *NominalFeature:
		_, err := f.Decode(v)
		return err
	case *NumericFeature:
		n, ok := v.Float()
		if !ok {
			return fmt.Errorf("numeric feature %s expects a number, got %v: %w", f.Name(), v, ErrSchemaMismatch)
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return fmt.Errorf("numeric feature %s got non-finite value %v: %w", f.Name(), n, ErrSchemaMismatch)
		}
		return nil
	}
	return fmt.Errorf("unknown feature type %T for feature %v: %w", f, f.Name(), ErrSchemaMismatch)
}
