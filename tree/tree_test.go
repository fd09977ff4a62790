package tree

import (
	"context"
	"errors"
	"testing"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
	. "github.com/smartystreets/goconvey/convey"
)

var (
	attrA = feature.NewNominalFeature("A", []string{"x", "y"})
	attrN = feature.NewNumericFeature("N")
	class = feature.NewNominalFeature("C", []string{"0", "1"})
)

func trainingSet() *dataset.Dataset {
	d, err := dataset.New([]feature.Feature{attrA, attrN, class}, "C", []dataset.Instance{
		{"A": feature.NominalValue(0), "N": feature.NumericValue(1), "C": feature.NominalValue(0)},
		{"A": feature.NominalValue(0), "N": feature.NumericValue(2), "C": feature.NominalValue(0)},
		{"A": feature.NominalValue(0), "N": feature.NumericValue(6), "C": feature.NominalValue(0)},
		{"A": feature.NominalValue(1), "N": feature.NumericValue(7), "C": feature.NominalValue(1)},
	})
	if err != nil {
		panic(err)
	}
	return d
}

// nominalTree splits on A with one leaf per category
func nominalTree(im *dataset.Imputer) *Tree {
	t := New(class, im)
	root := t.Root()
	root.Feature = attrA
	x := t.Create(root.ID)
	x.SetLeaf("0")
	y := t.Create(root.ID)
	y.SetLeaf("1")
	root.Branches = []Branch{
		{feature.NewLabelCriterion(attrA, "x"), x.ID},
		{feature.NewLabelCriterion(attrA, "y"), y.ID},
	}
	return t
}

// numericTree splits on N at 4 and then again at 1
func numericTree(im *dataset.Imputer) *Tree {
	t := New(class, im)
	root := t.Root()
	root.Feature = attrN
	le := t.Create(root.ID)
	gt := t.Create(root.ID)
	gt.SetLeaf("1")
	root.Branches = []Branch{
		{feature.NewLECriterion(attrN, 4), le.ID},
		{feature.NewGTCriterion(attrN, 4), gt.ID},
	}
	le.Feature = attrN
	lele := t.Create(le.ID)
	lele.SetLeaf("0")
	legt := t.Create(le.ID)
	legt.SetLeaf("1")
	le.Branches = []Branch{
		{feature.NewLECriterion(attrN, 1), lele.ID},
		{feature.NewGTCriterion(attrN, 1), legt.ID},
	}
	return t
}

func TestPredict(t *testing.T) {
	Convey("Given a tree splitting on a nominal feature", t, func() {
		d := trainingSet()
		tr := nominalTree(dataset.NewImputer(d))

		Convey("instances follow the branch of their category", func() {
			p, err := tr.Predict(dataset.Instance{"A": feature.NominalValue(1)})
			So(err, ShouldBeNil)
			So(p, ShouldEqual, "1")
		})

		Convey("missing values are imputed with the training mode", func() {
			p, err := tr.Predict(dataset.Instance{"A": feature.Missing()})
			So(err, ShouldBeNil)
			So(p, ShouldEqual, "0")
			p, err = tr.Predict(dataset.Instance{})
			So(err, ShouldBeNil)
			So(p, ShouldEqual, "0")
		})

		Convey("codes outside the schema are schema mismatches", func() {
			_, err := tr.Predict(dataset.Instance{"A": feature.NominalValue(4)})
			So(errors.Is(err, feature.ErrSchemaMismatch), ShouldBeTrue)
		})

		Convey("categories no branch accounts for are schema mismatches", func() {
			tr.Root().Branches = tr.Root().Branches[:1]
			_, err := tr.Predict(dataset.Instance{"A": feature.NominalValue(1)})
			So(errors.Is(err, feature.ErrSchemaMismatch), ShouldBeTrue)
		})

		Convey("nodes never grown cannot predict", func() {
			tr.Create(NoParent)
			tr.Root().Branches[1].Child = 3
			_, err := tr.Predict(dataset.Instance{"A": feature.NominalValue(1)})
			So(err, ShouldEqual, ErrCannotPredictFromSample)
		})
	})

	Convey("Given a tree splitting twice on a numeric feature", t, func() {
		d := trainingSet()
		tr := numericTree(dataset.NewImputer(d))

		Convey("values on the threshold go to the first branch", func() {
			for _, c := range []struct {
				n     float64
				label string
			}{{1, "0"}, {0.5, "0"}, {1.5, "1"}, {4, "1"}, {4.1, "1"}} {
				p, err := tr.Predict(dataset.Instance{"N": feature.NumericValue(c.n)})
				So(err, ShouldBeNil)
				So(p, ShouldEqual, c.label)
			}
		})

		Convey("missing values are imputed with the training mean", func() {
			p, err := tr.Predict(dataset.Instance{"N": feature.Missing()})
			So(err, ShouldBeNil)
			So(p, ShouldEqual, "1")
		})

		Convey("nominal values are schema mismatches", func() {
			_, err := tr.Predict(dataset.Instance{"N": feature.NominalValue(0)})
			So(errors.Is(err, feature.ErrSchemaMismatch), ShouldBeTrue)
		})

		Convey("values are only asked for along the path", func() {
			var asked []string
			p, err := tr.PredictFunc(func(f feature.Feature) (feature.Value, error) {
				asked = append(asked, f.Name())
				return feature.NumericValue(5), nil
			})
			So(err, ShouldBeNil)
			So(p, ShouldEqual, "1")
			So(asked, ShouldResemble, []string{"N"})

			failure := errors.New("no answer")
			_, err = tr.PredictFunc(func(f feature.Feature) (feature.Value, error) {
				return feature.Missing(), failure
			})
			So(errors.Is(err, failure), ShouldBeTrue)
		})
	})
}

func TestTest(t *testing.T) {
	Convey("Test returns the rate of correct predictions", t, func() {
		d := trainingSet()
		acc, correct, err := nominalTree(dataset.NewImputer(d)).Test(d)
		So(err, ShouldBeNil)
		So(correct, ShouldEqual, 4)
		So(acc, ShouldEqual, 1.0)

		acc, correct, err = numericTree(dataset.NewImputer(d)).Test(d)
		So(err, ShouldBeNil)
		So(correct, ShouldEqual, 2)
		So(acc, ShouldEqual, 0.5)

		_, _, err = numericTree(nil).Test(d.Subset(nil))
		So(err, ShouldEqual, dataset.ErrEmptyDataset)
	})
}

func TestShape(t *testing.T) {
	Convey("Len, Depth and Traverse describe the shape of the tree", t, func() {
		tr := numericTree(nil)
		So(tr.Len(), ShouldEqual, 5)
		So(tr.Depth(), ShouldEqual, 2)
		So(New(class, nil).Depth(), ShouldEqual, 0)

		var topdown, bottomup []NodeID
		err := tr.Traverse(context.Background(), false, func(_ context.Context, n *Node) error {
			topdown = append(topdown, n.ID)
			return nil
		})
		So(err, ShouldBeNil)
		So(topdown, ShouldResemble, []NodeID{0, 1, 3, 4, 2})
		err = tr.Traverse(context.Background(), true, func(_ context.Context, n *Node) error {
			bottomup = append(bottomup, n.ID)
			return nil
		})
		So(err, ShouldBeNil)
		So(bottomup, ShouldResemble, []NodeID{3, 4, 1, 2, 0})
	})
}

func TestString(t *testing.T) {
	Convey("String renders the branches and leaves of the tree", t, func() {
		expected := "[0]\n" +
			"|\n" +
			"|__[1]\n" +
			"|  { A = x }\n" +
			"|  { C: 0 }\n" +
			"|   \n" +
			"|__[2]\n" +
			"   { A = y }\n" +
			"   { C: 1 }\n" +
			"    \n"
		So(nominalTree(nil).String(), ShouldEqual, expected)
	})
}
