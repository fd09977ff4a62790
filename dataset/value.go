package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pbanos/arbor/feature"
)

/*
ParseValue takes a feature and a raw string as read from a data source and
returns the value it stands for. Empty strings and the '?' marker are
missing values. Nominal features expect one of their category labels,
numeric ones a decimal number; anything else is an error wrapping
feature.ErrSchemaMismatch.
*/
func ParseValue(f feature.Feature, raw string) (feature.Value, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "?" {
		return feature.Missing(), nil
	}
	switch f := f.(type) {
	case *feature.NominalFeature:
		code, ok := f.Code(raw)
		if !ok {
			return feature.Missing(), fmt.Errorf("unknown category %q for feature %s: %w", raw, f.Name(), feature.ErrSchemaMismatch)
		}
		return feature.NominalValue(code), nil
	case *feature.NumericFeature:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return feature.Missing(), fmt.Errorf("converting %s to float64 for feature %s: %v: %w", raw, f.Name(), err, feature.ErrSchemaMismatch)
		}
		v := feature.NumericValue(n)
		return v, v.Valid(f)
	}
	return feature.Missing(), fmt.Errorf("unknown feature type %T for feature %s", f, f.Name())
}

/*
FormatValue takes a feature and a value and returns the string a data source
would hold for it: the category label, the decimal number or '?' for missing
values.
*/
func FormatValue(f feature.Feature, v feature.Value) (string, error) {
	if v.IsMissing() {
		return "?", nil
	}
	if nf, ok := f.(*feature.NominalFeature); ok {
		return nf.Decode(v)
	}
	if err := v.Valid(f); err != nil {
		return "", err
	}
	return v.String(), nil
}
