/*
Package json provides the JSON representation of trees, so they can be
stored once grown and loaded later on to predict or test.
*/
package json

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
	fjson "github.com/pbanos/arbor/feature/json"
	"github.com/pbanos/arbor/tree"
	"golang.org/x/exp/slices"
)

/*
WriteJSONTree takes a context.Context, a pointer to a tree.Tree
a NodeEncodeDecoder and an io.Writer and serializes the given tree
as JSON onto the io.Writer.
A tree is serialized as a JSON object with the following fields:
  - "class": a string with the name of the feature the tree predicts
  - "imputer": an object with the value imputed for each feature, as a
    category label or a decimal number
  - "nodes": an array containing the nodes that can be traversed on the tree
    serialized by the given NodeEncodeDecoder.

An error is returned if the tree cannot be traversed, serialized or written
onto the io.Writer.
*/
func WriteJSONTree(ctx context.Context, t *tree.Tree, ned NodeEncodeDecoder, features []feature.Feature, w io.Writer) error {
	err := marshalJSONTreeHeader(t, features, w)
	if err != nil {
		return err
	}
	var i int
	err = t.Traverse(ctx, false, func(ctx context.Context, n *tree.Node) error {
		err := writeNode(i, n, ned, w)
		i++
		return err
	})
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(`]}`))
	return err
}

/*
ReadJSONTree takes a context.Context, a NodeEncodeDecoder, a slice of
features and an io.Reader and returns the tree unmarshalled from the
contents of the io.Reader.
The features must include the class of the tree and every feature
referenced by its nodes and imputer.
An error is returned if the JSON cannot be read from the io.Reader or
does not describe a tree over the features.
*/
func ReadJSONTree(ctx context.Context, ned NodeEncodeDecoder, features []feature.Feature, r io.Reader) (*tree.Tree, error) {
	dec := json.NewDecoder(r)
	jt := &struct {
		Class   string             `json:"class"`
		Imputer map[string]string  `json:"imputer"`
		Nodes   []*json.RawMessage `json:"nodes"`
	}{}
	err := dec.Decode(jt)
	if err != nil {
		return nil, err
	}
	var class *feature.NominalFeature
	for _, f := range features {
		if f.Name() == jt.Class {
			nf, ok := f.(*feature.NominalFeature)
			if !ok {
				return nil, fmt.Errorf("class feature %s is %v: %w", f.Name(), f.Kind(), dataset.ErrInvalidClass)
			}
			class = nf
			break
		}
	}
	if class == nil {
		return nil, fmt.Errorf("no class feature defined")
	}
	imputed := make(map[string]feature.Value)
	for _, f := range features {
		raw, ok := jt.Imputer[f.Name()]
		if !ok {
			continue
		}
		v, err := dataset.ParseValue(f, raw)
		if err != nil {
			return nil, fmt.Errorf("unmarshalling imputer: %w", err)
		}
		imputed[f.Name()] = v
	}
	nodes := make([]*tree.Node, 0, len(jt.Nodes))
	for _, jn := range jt.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := ned.Decode(*jn)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, func(a, b *tree.Node) bool {
		return a.ID < b.ID
	})
	return tree.FromNodes(class, dataset.NewImputerFromValues(imputed), nodes)
}

/*
NewTreeEncodeDecoder takes a slice of features and returns the
NodeEncodeDecoder for trees over them, with criteria encoded as
feature/json does.
*/
func NewTreeEncodeDecoder(features []feature.Feature) NodeEncodeDecoder {
	return NewNodeEncodeDecoder(fjson.NewCriteriaEncodeDecoder(features), features)
}

func marshalJSONTreeHeader(t *tree.Tree, features []feature.Feature, w io.Writer) error {
	jClass, err := json.Marshal(t.Class.Name())
	if err != nil {
		return err
	}
	imputed := make(map[string]string)
	if t.Imputer != nil {
		for _, f := range features {
			v, ok := t.Imputer.Values()[f.Name()]
			if !ok {
				continue
			}
			s, err := dataset.FormatValue(f, v)
			if err != nil {
				return fmt.Errorf("marshalling imputer: %w", err)
			}
			imputed[f.Name()] = s
		}
	}
	jImputer, err := json.Marshal(imputed)
	if err != nil {
		return err
	}
	header := fmt.Sprintf(`{"class":%s,"imputer":%s,"nodes":[`, jClass, jImputer)
	_, err = w.Write([]byte(header))
	return err
}

func writeNode(i int, n *tree.Node, ned NodeEncodeDecoder, w io.Writer) error {
	if i != 0 {
		_, err := w.Write([]byte(","))
		if err != nil {
			return err
		}
	}
	jn, err := ned.Encode(n)
	if err != nil {
		return err
	}
	_, err = w.Write(jn)
	return err
}
