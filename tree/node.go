package tree

import (
	"github.com/pbanos/arbor/feature"
)

// NodeID identifies a node by its position on the tree
type NodeID int

// NoParent is the ParentID of the root node
const NoParent NodeID = -1

/*
Branch links a node to one of its children: instances
satisfying the criterion continue down to the child.
*/
type Branch struct {
	Criterion feature.Criterion
	Child     NodeID
}

/*
Node is a node of the tree. It is either a leaf predicting
Value or an internal node splitting on Feature through its
Branches. Nodes that are neither are still to be grown.
*/
type Node struct {
	// The position of the node on the tree
	ID NodeID
	// The position of the parent of the node, NoParent for the root
	ParentID NodeID
	// The feature whose value selects the branch to follow,
	// nil for leaves
	Feature feature.Feature
	// The branches to the children of the node in evaluation
	// order. For nominal features there is one per category,
	// for numeric features the '<=' branch comes before the
	// '>' one.
	Branches []Branch
	// The class label predicted by a leaf
	Value string
	// The number of training instances that reached the node
	Weight int
}

// IsLeaf returns whether the node makes a prediction
func (n *Node) IsLeaf() bool {
	return n.Feature == nil && len(n.Branches) == 0 && n.Value != ""
}

// SetLeaf turns the node into a leaf predicting the given label
func (n *Node) SetLeaf(label string) {
	n.Feature = nil
	n.Branches = nil
	n.Value = label
}
