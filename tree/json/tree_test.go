package json

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/tree"
	. "github.com/smartystreets/goconvey/convey"
)

var (
	outlook  = feature.NewNominalFeature("outlook", []string{"sunny", "rainy"})
	humidity = feature.NewNumericFeature("humidity")
	play     = feature.NewNominalFeature("play", []string{"no", "yes"})
	features = []feature.Feature{outlook, humidity, play}
)

func weatherTree() *tree.Tree {
	im := dataset.NewImputerFromValues(map[string]feature.Value{
		"outlook":  feature.NominalValue(1),
		"humidity": feature.NumericValue(72.5),
	})
	t := tree.New(play, im)
	root := t.Root()
	root.Feature = outlook
	root.Weight = 4
	sunny := t.Create(root.ID)
	rainy := t.Create(root.ID)
	root.Branches = []tree.Branch{
		{Criterion: feature.NewLabelCriterion(outlook, "sunny"), Child: sunny.ID},
		{Criterion: feature.NewLabelCriterion(outlook, "rainy"), Child: rainy.ID},
	}
	rainy.SetLeaf("no")
	sunny.Feature = humidity
	dry := t.Create(sunny.ID)
	dry.SetLeaf("yes")
	wet := t.Create(sunny.ID)
	wet.SetLeaf("no")
	sunny.Branches = []tree.Branch{
		{Criterion: feature.NewLECriterion(humidity, 70), Child: dry.ID},
		{Criterion: feature.NewGTCriterion(humidity, 70), Child: wet.ID},
	}
	return t
}

func TestJSONTree(t *testing.T) {
	Convey("Given a tree written as JSON", t, func() {
		ctx := context.Background()
		original := weatherTree()
		ned := NewTreeEncodeDecoder(features)
		buf := &bytes.Buffer{}
		err := WriteJSONTree(ctx, original, ned, features, buf)
		So(err, ShouldBeNil)
		So(buf.String(), ShouldStartWith, `{"class":"play","imputer":{"humidity":"72.5","outlook":"rainy"},"nodes":[`)

		Convey("reading it back gives an equivalent tree", func() {
			read, err := ReadJSONTree(ctx, ned, features, bytes.NewReader(buf.Bytes()))
			So(err, ShouldBeNil)
			So(read.Len(), ShouldEqual, original.Len())
			So(read.String(), ShouldEqual, original.String())
			So(read.Root().Weight, ShouldEqual, 4)
			So(read.Imputer.Values(), ShouldResemble, original.Imputer.Values())

			for _, inst := range []dataset.Instance{
				{"outlook": feature.NominalValue(0), "humidity": feature.NumericValue(65)},
				{"outlook": feature.NominalValue(0), "humidity": feature.NumericValue(90)},
				{"outlook": feature.Missing()},
			} {
				expected, err := original.Predict(inst)
				So(err, ShouldBeNil)
				p, err := read.Predict(inst)
				So(err, ShouldBeNil)
				So(p, ShouldEqual, expected)
			}
		})

		Convey("reading it without its features fails", func() {
			_, err := ReadJSONTree(ctx, NewTreeEncodeDecoder(features[:1]), features[:1], bytes.NewReader(buf.Bytes()))
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Criteria on unknown categories are rejected", t, func() {
		doc := `{"class":"play","imputer":{},"nodes":[` +
			`{"id":0,"pId":-1,"f":"outlook","b":[{"c":{"t":"label","f":"outlook","l":"foggy"},"n":1}]},` +
			`{"id":1,"pId":0,"v":"no"}]}`
		_, err := ReadJSONTree(context.Background(), NewTreeEncodeDecoder(features), features, strings.NewReader(doc))
		So(err, ShouldNotBeNil)
	})
}
