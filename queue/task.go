package queue

import (
	"fmt"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/tree"
)

// Task represents a tree.Node to be developed
// on a tree.Tree.
type Task struct {
	// The node to be developed
	Node tree.NodeID
	// The dataset of training data with instances
	// satisfying the criteria on the node
	// and its ancestors.
	Dataset *dataset.Dataset
	// The list of features that can be used
	// to split the node into branches.
	// It excludes the nominal features used in
	// ancestor nodes.
	AvailableFeatures []feature.Feature
	// The label for the node if Dataset is empty,
	// the majority label of the parent's dataset.
	Fallback string
}

func (t *Task) String() string {
	return fmt.Sprintf("{Task %d}", t.Node)
}
