package mongodataset

import (
	"errors"
	"testing"

	"github.com/pbanos/arbor/feature"
	. "github.com/smartystreets/goconvey/convey"
	"gopkg.in/mgo.v2/bson"
)

var features = []feature.Feature{
	feature.NewNominalFeature("party", []string{"democrat", "republican"}),
	feature.NewNominalFeature("seats", []string{"1", "2"}),
	feature.NewNumericFeature("age"),
}

func TestDocToInstance(t *testing.T) {
	Convey("Documents are converted into instances", t, func() {
		inst, err := docToInstance(bson.M{"party": "republican", "seats": 2, "age": 41.5}, features)
		So(err, ShouldBeNil)
		So(inst["party"], ShouldResemble, feature.NominalValue(1))
		So(inst["seats"], ShouldResemble, feature.NominalValue(1))
		So(inst["age"], ShouldResemble, feature.NumericValue(41.5))

		Convey("absent, null and '?' fields are missing", func() {
			inst, err := docToInstance(bson.M{"party": nil, "seats": "?"}, features)
			So(err, ShouldBeNil)
			So(inst["party"].IsMissing(), ShouldBeTrue)
			So(inst["seats"].IsMissing(), ShouldBeTrue)
			So(inst["age"].IsMissing(), ShouldBeTrue)
		})

		Convey("unknown labels are schema mismatches", func() {
			_, err := docToInstance(bson.M{"party": "green"}, features)
			So(errors.Is(err, feature.ErrSchemaMismatch), ShouldBeTrue)
		})
	})
}

func TestOpen(t *testing.T) {
	Convey("Open rejects feature names MongoDB reserves", t, func() {
		_, err := Open(nil, "samples", []feature.Feature{feature.NewNumericFeature("_id")})
		So(err, ShouldNotBeNil)
		_, err = Open(nil, "samples", []feature.Feature{feature.NewNumericFeature("a.b")})
		So(err, ShouldNotBeNil)
	})
}
