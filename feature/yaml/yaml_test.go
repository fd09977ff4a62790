package yaml

import (
	"testing"

	"github.com/pbanos/arbor/feature"
	. "github.com/smartystreets/goconvey/convey"
)

func TestReadFeatures(t *testing.T) {
	Convey("Given a metadata document", t, func() {
		md := []byte(`features:
  outlook: [sunny, overcast, rainy]
  temperature: numeric
  humidity: continuous
  windy: [false, true]
  play: [0, 1]
`)

		Convey("features are read in declaration order", func() {
			features, err := ReadFeatures(md)
			So(err, ShouldBeNil)
			So(len(features), ShouldEqual, 5)
			names := make([]string, 0, len(features))
			for _, f := range features {
				names = append(names, f.Name())
			}
			So(names, ShouldResemble, []string{"outlook", "temperature", "humidity", "windy", "play"})
			So(features[0].Kind(), ShouldEqual, feature.Nominal)
			So(features[1].Kind(), ShouldEqual, feature.Numeric)
			So(features[2].Kind(), ShouldEqual, feature.Numeric)
			So(features[0].(*feature.NominalFeature).Categories(), ShouldResemble, []string{"sunny", "overcast", "rainy"})
			So(features[3].(*feature.NominalFeature).Categories(), ShouldResemble, []string{"false", "true"})
			So(features[4].(*feature.NominalFeature).Categories(), ShouldResemble, []string{"0", "1"})
		})
	})

	Convey("Invalid metadata documents are rejected", t, func() {
		for _, md := range []string{
			"other: 1\n",
			"features:\n  a: text\n",
			"features:\n  a: []\n",
			"features:\n  a: [x, \"\"]\n",
			"features:\n  a: [x, ~]\n",
			"features:\n  a: numeric\n  a: [x]\n",
			"features:\n  a: 3\n",
			"features: [\n",
		} {
			_, err := ReadFeatures([]byte(md))
			So(err, ShouldNotBeNil)
		}
	})

	Convey("Missing metadata files are reported", t, func() {
		_, err := ReadFeaturesFromFile("testdata/does-not-exist.yml")
		So(err, ShouldNotBeNil)
	})
}
