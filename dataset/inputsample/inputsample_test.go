package inputsample

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pbanos/arbor/feature"
	. "github.com/smartystreets/goconvey/convey"
)

type recordingRequester struct {
	requested []string
	rejected  []string
}

func (rr *recordingRequester) RequestValueFor(f feature.Feature) error {
	rr.requested = append(rr.requested, f.Name())
	return nil
}

func (rr *recordingRequester) RejectValueFor(f feature.Feature, value string) error {
	rr.rejected = append(rr.rejected, fmt.Sprintf("%s=%s", f.Name(), value))
	return nil
}

func TestReadSample(t *testing.T) {
	outlook := feature.NewNominalFeature("outlook", []string{"sunny", "rainy"})
	humidity := feature.NewNumericFeature("humidity")
	features := []feature.Feature{outlook, humidity}

	Convey("Given a sample read from lines", t, func() {
		rr := &recordingRequester{}
		rs := New(strings.NewReader("foggy\nrainy\nhigh\n?\n"), features, rr, "?")

		Convey("values are requested, validated and remembered", func() {
			v, err := rs.ValueFor(outlook)
			So(err, ShouldBeNil)
			So(v, ShouldResemble, feature.NominalValue(1))
			v, err = rs.ValueFor(outlook)
			So(err, ShouldBeNil)
			So(v, ShouldResemble, feature.NominalValue(1))
			v, err = rs.ValueFor(humidity)
			So(err, ShouldBeNil)
			So(v.IsMissing(), ShouldBeTrue)
			So(rr.requested, ShouldResemble, []string{"outlook", "humidity"})
			So(rr.rejected, ShouldResemble, []string{"outlook=foggy", "humidity=high"})
			So(len(rs.Instance()), ShouldEqual, 2)
		})

		Convey("unknown features cannot be read", func() {
			_, err := rs.ValueFor(feature.NewNumericFeature("wind"))
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Running out of input is an error", t, func() {
		rs := New(strings.NewReader("foggy\n"), features, &recordingRequester{}, "?")
		_, err := rs.ValueFor(outlook)
		So(err, ShouldNotBeNil)
	})
}
