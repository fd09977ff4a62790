package dot

import (
	"bytes"
	"context"
	"testing"

	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/tree"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWriteDOT(t *testing.T) {
	Convey("Given a tree with a split and two leaves", t, func() {
		a := feature.NewNominalFeature("A", []string{"x", "y"})
		c := feature.NewNominalFeature("C", []string{"0", "1"})
		tr := tree.New(c, nil)
		root := tr.Root()
		root.Feature = a
		x := tr.Create(root.ID)
		x.SetLeaf("0")
		y := tr.Create(root.ID)
		y.SetLeaf("1")
		root.Branches = []tree.Branch{
			{Criterion: feature.NewLabelCriterion(a, "x"), Child: x.ID},
			{Criterion: feature.NewLabelCriterion(a, "y"), Child: y.ID},
		}

		Convey("Graph has a node per tree node and an edge per branch", func() {
			g, err := Graph(context.Background(), tr)
			So(err, ShouldBeNil)
			So(len(g.Nodes.Nodes), ShouldEqual, 3)
			So(len(g.Edges.Edges), ShouldEqual, 2)
			So(g.Edges.Edges[0].Attrs["label"], ShouldEqual, `"A = x"`)
		})

		Convey("WriteDOT writes a digraph", func() {
			buf := &bytes.Buffer{}
			So(WriteDOT(context.Background(), tr, buf), ShouldBeNil)
			So(buf.String(), ShouldStartWith, "digraph G {")
			So(buf.String(), ShouldContainSubstring, `label="A = y"`)
		})
	})
}
