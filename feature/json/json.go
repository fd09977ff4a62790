/*
Package json provides the JSON representation of feature criteria used
when encoding trees.
*/
package json

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pbanos/arbor/feature"
)

/*
CriteriaEncodeDecoder is an interface for objects
that allow encoding criteria into slices of
bytes and decoding them back to criteria.
*/
type CriteriaEncodeDecoder interface {

	//Encode receives a feature.Criterion
	// and returns a slice of bytes with the criterion
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(feature.Criterion) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a feature.Criterion decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (feature.Criterion, error)
}

type jsonCriteriaEncodeDecoder []feature.Feature

type jsonCriterion struct {
	Type      string `json:"t"`
	Feature   string `json:"f"`
	Label     string `json:"l,omitempty"`
	Threshold string `json:"th,omitempty"`
}

// NewCriteriaEncodeDecoder takes a slice of feature.Feature and returns a
// CriteriaEncodeDecoder that marshals and unmarshals
// criteria into/from slices of bytes as JSON.
// Specifically, criteria are encoded as a JSON object
// with a "f" property set to the name of the feature
// of the criteria and a "t" property that can be one of
// "label", "le" or "gt":
//   - If the criterion is a label one it will have an "l"
//     property with the category label
//   - If the criterion is a threshold one it will have a "th"
//     property with the threshold formatted as a decimal string
func NewCriteriaEncodeDecoder(features []feature.Feature) CriteriaEncodeDecoder {
	return jsonCriteriaEncodeDecoder(features)
}

func (jced jsonCriteriaEncodeDecoder) Encode(fc feature.Criterion) ([]byte, error) {
	switch c := fc.(type) {
	case feature.LabelCriterion:
		return json.Marshal(&jsonCriterion{
			Type:    "label",
			Feature: c.Feature().Name(),
			Label:   c.Label(),
		})
	case feature.ThresholdCriterion:
		t := "le"
		if c.Greater() {
			t = "gt"
		}
		return json.Marshal(&jsonCriterion{
			Type:      t,
			Feature:   c.Feature().Name(),
			Threshold: strconv.FormatFloat(c.Threshold(), 'g', -1, 64),
		})
	default:
		return nil, fmt.Errorf("unknown type of feature.Criterion %T", fc)
	}
}

func (jced jsonCriteriaEncodeDecoder) Decode(data []byte) (feature.Criterion, error) {
	jc := &jsonCriterion{}
	err := json.Unmarshal(data, jc)
	if err != nil {
		return nil, err
	}
	return jc.Criterion(jced)
}

func (jc *jsonCriterion) Criterion(features []feature.Feature) (feature.Criterion, error) {
	var f feature.Feature
	for _, feat := range features {
		if feat.Name() == jc.Feature {
			f = feat
			break
		}
	}
	if f == nil {
		return nil, fmt.Errorf("unknown feature '%s'", jc.Feature)
	}
	switch jc.Type {
	case "label":
		return jc.toLabelCriterion(f)
	case "le", "gt":
		return jc.toThresholdCriterion(f)
	}
	return nil, fmt.Errorf("unknown feature criterion type '%s'", jc.Type)
}

func (jc *jsonCriterion) toLabelCriterion(f feature.Feature) (feature.Criterion, error) {
	nf, ok := f.(*feature.NominalFeature)
	if !ok {
		return nil, fmt.Errorf("expected nominal feature for label criterion but found %T feature %v", f, f.Name())
	}
	if _, ok = nf.Code(jc.Label); !ok {
		return nil, fmt.Errorf("label criterion on %v refers to unknown category %q: %w", f.Name(), jc.Label, feature.ErrSchemaMismatch)
	}
	return feature.NewLabelCriterion(nf, jc.Label), nil
}

func (jc *jsonCriterion) toThresholdCriterion(f feature.Feature) (feature.Criterion, error) {
	nf, ok := f.(*feature.NumericFeature)
	if !ok {
		return nil, fmt.Errorf("expected numeric feature for threshold criterion but found %T feature %v", f, f.Name())
	}
	t, err := strconv.ParseFloat(jc.Threshold, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing threshold of criterion on %v: %v", f.Name(), err)
	}
	if jc.Type == "gt" {
		return feature.NewGTCriterion(nf, t), nil
	}
	return feature.NewLECriterion(nf, t), nil
}
