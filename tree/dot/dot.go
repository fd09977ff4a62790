/*
Package dot renders trees as Graphviz DOT graphs.
*/
package dot

import (
	"context"
	"fmt"
	"io"

	"github.com/awalterschulze/gographviz"
	"github.com/pbanos/arbor/tree"
)

const graphName = "G"

/*
Graph takes a context and a tree and returns a directed gographviz.Graph
with a node for each node on the tree and an edge for each branch. Internal
nodes are labelled with the feature they split on, leaves with the class
label they predict and edges with the criterion of their branch.
*/
func Graph(ctx context.Context, t *tree.Tree) (*gographviz.Graph, error) {
	graphAst, err := gographviz.Parse([]byte(`digraph G{}`))
	if err != nil {
		return nil, err
	}
	graph := gographviz.NewGraph()
	err = gographviz.Analyse(graphAst, graph)
	if err != nil {
		return nil, err
	}
	err = t.Traverse(ctx, false, func(ctx context.Context, n *tree.Node) error {
		err := graph.AddNode(graphName, nodeName(n.ID), nodeAttrs(t, n))
		if err != nil {
			return err
		}
		if n.ParentID == tree.NoParent {
			return nil
		}
		parent, err := t.Node(n.ParentID)
		if err != nil {
			return err
		}
		for _, b := range parent.Branches {
			if b.Child == n.ID {
				return graph.AddEdge(nodeName(parent.ID), nodeName(n.ID), true, map[string]string{
					"label": fmt.Sprintf("%q", fmt.Sprintf("%v", b.Criterion)),
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return graph, nil
}

/*
WriteDOT takes a context, a tree and an io.Writer and writes the DOT
representation of the tree onto the writer.
*/
func WriteDOT(ctx context.Context, t *tree.Tree, w io.Writer) error {
	graph, err := Graph(ctx, t)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, graph.String())
	return err
}

func nodeName(id tree.NodeID) string {
	return fmt.Sprintf("%d", id)
}

func nodeAttrs(t *tree.Tree, n *tree.Node) map[string]string {
	if n.IsLeaf() {
		return map[string]string{
			"label": fmt.Sprintf("%q", fmt.Sprintf("%s = %s\nsamples = %d", t.Class.Name(), n.Value, n.Weight)),
			"shape": "box",
		}
	}
	if n.Feature == nil {
		return map[string]string{"label": `"?"`}
	}
	return map[string]string{
		"label": fmt.Sprintf("%q", fmt.Sprintf("%s\nsamples = %d", n.Feature.Name(), n.Weight)),
	}
}
