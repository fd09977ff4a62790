/*
Package arbor grows decision trees over datasets with nominal and numeric
features, choosing splits by information gain, and evaluates them with
k-fold cross-validation.
*/
package arbor

import (
	"fmt"
	"math"
)

/*
Entropy takes a slice of class labels and returns the base-2 Shannon entropy
of their distribution. Empty and single-valued slices have entropy 0.
*/
func Entropy(labels []string) float64 {
	if len(labels) == 0 {
		return 0.0
	}
	counts := make(map[string]int)
	var order []string
	for _, l := range labels {
		if counts[l] == 0 {
			order = append(order, l)
		}
		counts[l]++
	}
	var result float64
	total := float64(len(labels))
	// sum in order of appearance, not map order
	for _, l := range order {
		p := float64(counts[l]) / total
		result -= p * math.Log2(p)
	}
	return result
}

/*
InformationGain takes the class labels of a dataset and those of each
subset of a partition of it and returns the reduction of entropy achieved
by the partition. It panics if the sizes of the subsets do not add up to
the size of the dataset.
*/
func InformationGain(parent []string, partition [][]string) float64 {
	var size int
	for _, part := range partition {
		size += len(part)
	}
	if size != len(parent) {
		panic(fmt.Sprintf("partition of %d labels into subsets adding up to %d", len(parent), size))
	}
	result := Entropy(parent)
	if len(parent) == 0 {
		return result
	}
	total := float64(len(parent))
	for _, part := range partition {
		if len(part) == 0 {
			continue
		}
		result -= float64(len(part)) / total * Entropy(part)
	}
	return result
}
