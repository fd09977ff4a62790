package dataset

import (
	"fmt"

	"github.com/pbanos/arbor/feature"
)

/*
Instance represents a row of a dataset: a mapping of feature names to values.
Features absent from the map read as missing.
*/
type Instance map[string]feature.Value

/*
ValueFor returns the value of the instance corresponding to the feature
passed as parameter.
*/
func (inst Instance) ValueFor(f feature.Feature) feature.Value {
	return inst[f.Name()]
}

func (inst Instance) String() string {
	return fmt.Sprintf("[%v]", map[string]feature.Value(inst))
}
