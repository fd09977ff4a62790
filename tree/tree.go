/*
Package tree provides the decision tree built by growing it over a
training dataset, and the means to predict and test with it.

Trees are arenas of nodes addressed by their NodeID: nodes reference their
parent and children by position instead of holding them.
*/
package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
)

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrCannotPredictFromSample is the error returned by the Predict method of a tree
when it reaches a node that was never grown into a leaf or a split.
*/
const ErrCannotPredictFromSample = PredictionError("no prediction available for this kind of sample")

func (pe PredictionError) Error() string {
	return string(pe)
}

// Tree represents a decision tree. It is composed of its
// nodes, the class feature it is able to predict and the
// Imputer replacing missing values when predicting.
type Tree struct {
	nodes   []*Node
	Class   *feature.NominalFeature
	Imputer *dataset.Imputer
}

// New takes a class feature and an imputer and returns a tree that
// predicts the class with only a root node, still to be grown.
func New(class *feature.NominalFeature, imputer *dataset.Imputer) *Tree {
	t := &Tree{Class: class, Imputer: imputer}
	t.Create(NoParent)
	return t
}

// Create takes the ID of a parent node and adds a new node under it,
// returning the node with its ID set.
func (t *Tree) Create(parentID NodeID) *Node {
	n := &Node{ID: NodeID(len(t.nodes)), ParentID: parentID}
	t.nodes = append(t.nodes, n)
	return n
}

// Node takes an id and returns the node with that id or an error
// if the tree has no such node.
func (t *Tree) Node(id NodeID) (*Node, error) {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil, fmt.Errorf("node %d not found", id)
	}
	return t.nodes[id], nil
}

// Root returns the root node of the tree
func (t *Tree) Root() *Node {
	return t.nodes[0]
}

// Len returns the number of nodes in the tree
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Depth returns the number of branches between the root and its
// deepest leaf.
func (t *Tree) Depth() int {
	depths := make([]int, len(t.nodes))
	var max int
	for i, n := range t.nodes {
		if n.ParentID == NoParent {
			continue
		}
		depths[i] = depths[n.ParentID] + 1
		if depths[i] > max {
			max = depths[i]
		}
	}
	return max
}

// Predict takes an instance and returns the class label predicted for it
// by the tree or an error if the prediction could not be made.
// Missing values are replaced with those of the tree's Imputer. If no branch
// of a node accepts the value of the instance an error wrapping
// feature.ErrSchemaMismatch is returned.
func (t *Tree) Predict(inst dataset.Instance) (string, error) {
	return t.PredictFunc(func(f feature.Feature) (feature.Value, error) {
		return inst.ValueFor(f), nil
	})
}

// PredictFunc works like Predict but obtains the values of the instance
// from valueFor, only for the features of the nodes on its path.
func (t *Tree) PredictFunc(valueFor func(feature.Feature) (feature.Value, error)) (string, error) {
	if t == nil || len(t.nodes) == 0 {
		return "", fmt.Errorf("nil tree cannot predict instances")
	}
	n := t.nodes[0]
	for n.Feature != nil {
		v, err := valueFor(n.Feature)
		if err != nil {
			return "", fmt.Errorf("obtaining value for %s: %w", n.Feature.Name(), err)
		}
		if v.IsMissing() && t.Imputer != nil {
			v = t.Imputer.Impute(n.Feature)
		}
		var next *Node
		for _, b := range n.Branches {
			ok, err := b.Criterion.SatisfiedBy(v)
			if err != nil {
				return "", fmt.Errorf("predicting on node %d: %w", n.ID, err)
			}
			if ok {
				child, err := t.Node(b.Child)
				if err != nil {
					return "", fmt.Errorf("predicting on node %d: %v", n.ID, err)
				}
				next = child
				break
			}
		}
		if next == nil {
			return "", fmt.Errorf("value %v for feature %s satisfies no branch of node %d: %w", v, n.Feature.Name(), n.ID, feature.ErrSchemaMismatch)
		}
		n = next
	}
	if !n.IsLeaf() {
		return "", ErrCannotPredictFromSample
	}
	return n.Value, nil
}

/*
Test takes a dataset and returns three values:
  - the prediction success rate of the tree over the dataset's class
  - the number of correct predictions
  - an error if a prediction could not be made. If this is not nil,
    the other values will be 0.0 and 0 respectively.

An empty dataset returns dataset.ErrEmptyDataset.
*/
func (t *Tree) Test(d *dataset.Dataset) (float64, int, error) {
	if d.Count() == 0 {
		return 0.0, 0, dataset.ErrEmptyDataset
	}
	var correct int
	labels := d.Labels()
	for i, inst := range d.Instances() {
		p, err := t.Predict(inst)
		if err != nil {
			return 0.0, 0, err
		}
		if p == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(d.Count()), correct, nil
}

// Traverse takes a context, bottomup boolean and an
// error-returning function that takes a context and a node
// as parameters, and goes through the tree running the
// function with the context and every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true.
// If the given context times out or is cancelled, the context
// error is returned. If the call to the function returns an
// error, the traversing is aborted and the error is returned.
// Otherwise, when the traversing is over, nil is returned.
func (t *Tree) Traverse(ctx context.Context, bottomup bool, f func(context.Context, *Node) error) error {
	if len(t.nodes) == 0 {
		return nil
	}
	return t.traverse(ctx, t.nodes[0], bottomup, f)
}

func (t *Tree) traverse(ctx context.Context, n *Node, bottomup bool, f func(context.Context, *Node) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	if !bottomup {
		err = f(ctx, n)
	}
	if err != nil {
		return err
	}
	for _, b := range n.Branches {
		child, err := t.Node(b.Child)
		if err != nil {
			return err
		}
		err = t.traverse(ctx, child, bottomup, f)
		if err != nil {
			return err
		}
	}
	if bottomup {
		err = f(ctx, n)
	}
	return err
}

func (t *Tree) String() string {
	if len(t.nodes) == 0 {
		return ""
	}
	return t.subtreeString(0, nil)
}

func (t *Tree) subtreeString(nodeID NodeID, criterion feature.Criterion) string {
	n, err := t.Node(nodeID)
	if err != nil {
		return fmt.Sprintf("ERROR: %s\n", err.Error())
	}
	result := fmt.Sprintf("[%d]\n", nodeID)
	if criterion != nil {
		result = fmt.Sprintf("%s{ %v }\n", result, criterion)
	}
	if n.IsLeaf() {
		result = fmt.Sprintf("%s{ %s: %s }\n", result, t.Class.Name(), n.Value)
	}
	if len(n.Branches) > 0 {
		result = fmt.Sprintf("%s|\n", result)
	} else {
		result = fmt.Sprintf("%s \n", result)
	}
	for i, b := range n.Branches {
		for j, line := range strings.Split(t.subtreeString(b.Child, b.Criterion), "\n") {
			if len(line) > 0 {
				if j == 0 {
					result = fmt.Sprintf("%s|__%s\n", result, line)
				} else {
					if i == len(n.Branches)-1 {
						result = fmt.Sprintf("%s   %s\n", result, line)
					} else {
						result = fmt.Sprintf("%s|  %s\n", result, line)
					}
				}
			}
		}
	}
	return result
}

/*
FromNodes takes a class feature, an imputer and a slice of nodes ordered by
ID and returns the tree they compose or an error if the nodes do not form
one: IDs must match positions, parents must precede their children and
branches must point to existing nodes.
*/
func FromNodes(class *feature.NominalFeature, imputer *dataset.Imputer, nodes []*Node) (*Tree, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("no root node available")
	}
	for i, n := range nodes {
		if n.ID != NodeID(i) {
			return nil, fmt.Errorf("node at position %d has id %d", i, n.ID)
		}
		if (i == 0) != (n.ParentID == NoParent) || n.ParentID >= n.ID {
			return nil, fmt.Errorf("node %d has invalid parent %d", n.ID, n.ParentID)
		}
		for _, b := range n.Branches {
			if b.Child <= n.ID || int(b.Child) >= len(nodes) || nodes[b.Child].ParentID != n.ID {
				return nil, fmt.Errorf("node %d has invalid child %d", n.ID, b.Child)
			}
		}
	}
	return &Tree{nodes, class, imputer}, nil
}
