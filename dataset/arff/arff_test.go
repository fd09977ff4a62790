package arff

import (
	"context"
	"strings"
	"testing"

	"github.com/pbanos/arbor/feature"
	. "github.com/smartystreets/goconvey/convey"
)

const voting = `% 1984 congressional voting records, trimmed
@relation vote

@attribute 'handicapped-infants' { 'n', 'y'}
@attribute budget {n,y}
@attribute age NUMERIC
@attribute 'Class' { 'democrat', 'republican'}

@data
'n','y',41,'republican'
?,y,?,'democrat'
'y','n',33.5,'democrat'
`

func TestReadDataset(t *testing.T) {
	Convey("Given an ARFF document", t, func() {
		d, err := ReadDataset(context.Background(), strings.NewReader(voting), "Class")

		Convey("the schema is read in declaration order", func() {
			So(err, ShouldBeNil)
			fs := d.Features()
			So(len(fs), ShouldEqual, 3)
			So(fs[0].Name(), ShouldEqual, "handicapped-infants")
			So(fs[0].(*feature.NominalFeature).Categories(), ShouldResemble, []string{"n", "y"})
			So(fs[2].Kind(), ShouldEqual, feature.Numeric)
			So(d.Class().Categories(), ShouldResemble, []string{"democrat", "republican"})
		})

		Convey("the data rows become instances", func() {
			So(err, ShouldBeNil)
			So(d.Count(), ShouldEqual, 3)
			So(d.Labels(), ShouldResemble, []string{"republican", "democrat", "democrat"})
			insts := d.Instances()
			So(insts[1]["handicapped-infants"].IsMissing(), ShouldBeTrue)
			So(insts[1]["age"].IsMissing(), ShouldBeTrue)
			So(insts[2]["age"], ShouldResemble, feature.NumericValue(33.5))
			So(insts[0]["budget"], ShouldResemble, feature.NominalValue(1))
		})
	})

	Convey("Unsupported attribute types are rejected", t, func() {
		_, err := ReadDataset(context.Background(), strings.NewReader("@attribute when date\n@data\n"), "Class")
		So(err, ShouldNotBeNil)
	})

	Convey("Single and double quoted values keep the other kind of quote", t, func() {
		doc := "@attribute phrase {\"don't\", 'say \"hi\"', 'it\\'s', plain}\n" +
			"@attribute Class {0,1}\n" +
			"@data\n" +
			"\"don't\",0\n" +
			"'say \"hi\"', 1\n" +
			"'it\\'s',0\n" +
			"plain,1\n"
		d, err := ReadDataset(context.Background(), strings.NewReader(doc), "Class")
		So(err, ShouldBeNil)
		phrase := d.Features()[0].(*feature.NominalFeature)
		So(phrase.Categories(), ShouldResemble, []string{"don't", "say \"hi\"", "it's", "plain"})
		var codes []feature.Value
		for _, inst := range d.Instances() {
			codes = append(codes, inst["phrase"])
		}
		So(codes, ShouldResemble, []feature.Value{
			feature.NominalValue(0), feature.NominalValue(1), feature.NominalValue(2), feature.NominalValue(3),
		})
	})

	Convey("Unquoted values keep their quotes", t, func() {
		values, err := splitValues("don't, x\"y , 'a b' ")
		So(err, ShouldBeNil)
		So(values, ShouldResemble, []string{"don't", "x\"y", "a b"})
	})

	Convey("Unterminated quotes are rejected", t, func() {
		_, err := splitValues("'open, x")
		So(err, ShouldNotBeNil)
	})

	Convey("Empty categories are rejected", t, func() {
		doc := "@attribute a {x,''}\n@attribute Class {0,1}\n@data\n"
		_, err := ReadDataset(context.Background(), strings.NewReader(doc), "Class")
		So(err, ShouldNotBeNil)
	})

	Convey("Rows with the wrong number of values are rejected", t, func() {
		doc := "@attribute a {x,y}\n@attribute Class {0,1}\n@data\nx\n"
		_, err := ReadDataset(context.Background(), strings.NewReader(doc), "Class")
		So(err, ShouldNotBeNil)
	})
}
