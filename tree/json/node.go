package json

import (
	"encoding/json"
	"fmt"

	fjson "github.com/pbanos/arbor/feature/json"

	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/tree"
)

/*
NodeEncodeDecoder is an interface for objects
that allow encoding nodes into slices of
bytes and decoding them back to nodes.
*/
type NodeEncodeDecoder interface {

	//Encode receives a *tree.Node
	// and returns a slice of bytes with the node
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(*tree.Node) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *tree.Node decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (*tree.Node, error)
}

type nodeEncodeDecoder struct {
	fjson.CriteriaEncodeDecoder
	features []feature.Feature
}

type node struct {
	ID       tree.NodeID `json:"id"`
	ParentID tree.NodeID `json:"pId"`
	Feature  string      `json:"f,omitempty"`
	Branches []*branch   `json:"b,omitempty"`
	Value    string      `json:"v,omitempty"`
	Weight   int         `json:"w,omitempty"`
}

type branch struct {
	Criterion json.RawMessage `json:"c"`
	Child     tree.NodeID     `json:"n"`
}

/*
NewNodeEncodeDecoder returns a NodeEncodeDecoder that uses the
given CriteriaEncodeDecoder to encode/decode the criteria of the
nodes' branches, and looks up their features on the given slice.
*/
func NewNodeEncodeDecoder(ced fjson.CriteriaEncodeDecoder, features []feature.Feature) NodeEncodeDecoder {
	return &nodeEncodeDecoder{ced, features}
}

func (ned *nodeEncodeDecoder) Encode(n *tree.Node) ([]byte, error) {
	jn := &node{
		ID:       n.ID,
		ParentID: n.ParentID,
		Value:    n.Value,
		Weight:   n.Weight,
	}
	if n.Feature != nil {
		jn.Feature = n.Feature.Name()
	}
	for _, b := range n.Branches {
		c, err := ned.CriteriaEncodeDecoder.Encode(b.Criterion)
		if err != nil {
			return nil, err
		}
		jn.Branches = append(jn.Branches, &branch{c, b.Child})
	}
	return json.Marshal(jn)
}

func (ned *nodeEncodeDecoder) Decode(data []byte) (*tree.Node, error) {
	jn := &node{}
	err := json.Unmarshal(data, jn)
	if err != nil {
		return nil, err
	}
	n := &tree.Node{
		ID:       jn.ID,
		ParentID: jn.ParentID,
		Value:    jn.Value,
		Weight:   jn.Weight,
	}
	if jn.Feature != "" {
		for _, f := range ned.features {
			if f.Name() == jn.Feature {
				n.Feature = f
				break
			}
		}
		if n.Feature == nil {
			return nil, fmt.Errorf("unmarshalling node %v: unknown feature %v", n.ID, jn.Feature)
		}
	}
	for _, jb := range jn.Branches {
		c, err := ned.CriteriaEncodeDecoder.Decode(jb.Criterion)
		if err != nil {
			return nil, fmt.Errorf("unmarshalling node %v: %w", n.ID, err)
		}
		if n.Feature == nil || c.Feature().Name() != n.Feature.Name() {
			return nil, fmt.Errorf("unmarshalling node %v: branch criterion on %v does not match node feature", n.ID, c.Feature().Name())
		}
		n.Branches = append(n.Branches, tree.Branch{Criterion: c, Child: jb.Child})
	}
	return n, nil
}
