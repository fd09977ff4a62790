package arbor

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/pbanos/arbor/dataset"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFoldBounds(t *testing.T) {
	Convey("FoldBounds", t, func() {
		Convey("gives the remainder to the first folds", func() {
			So(FoldBounds(10, 3), ShouldResemble, []int{0, 4, 7, 10})
			So(FoldBounds(7, 7), ShouldResemble, []int{0, 1, 2, 3, 4, 5, 6, 7})
			So(FoldBounds(8, 2), ShouldResemble, []int{0, 4, 8})
		})
	})
}

func TestCrossValidate(t *testing.T) {
	ctx := context.Background()

	Convey("Cross-validating with invalid folds fails", t, func() {
		d := correlatedDataset()
		_, err := CrossValidate(ctx, d, CrossValidation{Folds: 1})
		So(errors.Is(err, ErrInvalidConfiguration), ShouldBeTrue)
		_, err = CrossValidate(ctx, d, CrossValidation{Folds: 5})
		So(errors.Is(err, ErrInvalidConfiguration), ShouldBeTrue)
		_, err = CrossValidate(ctx, d.Subset(nil), CrossValidation{Folds: 2})
		So(err, ShouldEqual, dataset.ErrEmptyDataset)
	})

	Convey("Cross-validating the correlated dataset in 2 folds", t, func() {
		d := correlatedDataset()
		// look for a seed leaving both classes on each training half
		seed := int64(-1)
		for s := int64(0); s < 100 && seed < 0; s++ {
			first, second := d.Shuffle(rand.New(rand.NewSource(s))).Split(0, 2)
			_, firstPure := first.Pure()
			_, secondPure := second.Pure()
			if !firstPure && !secondPure {
				seed = s
			}
		}
		So(seed, ShouldBeGreaterThanOrEqualTo, 0)

		report, err := CrossValidate(ctx, d, CrossValidation{Folds: 2, Seed: seed})
		So(err, ShouldBeNil)
		So(len(report.Folds), ShouldEqual, 2)
		So(report.MeanAccuracy, ShouldEqual, 1.0)
		for i, f := range report.Folds {
			So(f.Index, ShouldEqual, i)
			So(f.TrainCount, ShouldEqual, 2)
			So(f.TestCount, ShouldEqual, 2)
			So(f.Correct, ShouldEqual, 2)
			So(f.Nodes, ShouldEqual, 3)
		}
	})

	Convey("Leave-one-out cross-validation", t, func() {
		d := randomDataset(5, 20)
		report, err := CrossValidate(ctx, d, CrossValidation{Folds: d.Count(), Seed: 42})
		So(err, ShouldBeNil)
		So(len(report.Folds), ShouldEqual, 20)

		Convey("tests every instance once", func() {
			var correct int
			for _, f := range report.Folds {
				So(f.TestCount, ShouldEqual, 1)
				So(f.TrainCount, ShouldEqual, 19)
				correct += f.Correct
			}
			So(report.MeanAccuracy, ShouldAlmostEqual, float64(correct)/20, 1e-12)
		})

		Convey("is deterministic for a seed", func() {
			again, err := CrossValidate(ctx, d, CrossValidation{Folds: d.Count(), Seed: 42})
			So(err, ShouldBeNil)
			So(again, ShouldResemble, report)
		})
	})

	Convey("Folds with uneven sizes cover every instance", t, func() {
		d := randomDataset(9, 23)
		report, err := CrossValidate(ctx, d, CrossValidation{Folds: 5, Strategy: DegenerateStrategy()})
		So(err, ShouldBeNil)
		var tested int
		for _, f := range report.Folds {
			So(f.TrainCount+f.TestCount, ShouldEqual, 23)
			tested += f.TestCount
		}
		So(tested, ShouldEqual, 23)
		So(report.Folds[0].TestCount, ShouldEqual, 5)
		So(report.Folds[4].TestCount, ShouldEqual, 4)
		So(report.MeanAccuracy, ShouldBeBetweenOrEqual, 0.0, 1.0)
	})

	Convey("Cross-validation stops when the context is cancelled", t, func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := CrossValidate(cctx, correlatedDataset(), CrossValidation{Folds: 2})
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})
}

func TestParseScoringStrategy(t *testing.T) {
	Convey("ParseScoringStrategy", t, func() {
		for _, name := range []string{"information-gain", "gain", "degenerate", "accuracy"} {
			s, err := ParseScoringStrategy(name)
			So(err, ShouldBeNil)
			So(s, ShouldNotBeNil)
		}
		_, err := ParseScoringStrategy("gini")
		So(errors.Is(err, ErrInvalidConfiguration), ShouldBeTrue)
	})
}
