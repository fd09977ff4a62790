package arbor

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/pbanos/arbor/dataset"
	"go.uber.org/zap"
)

// CrossValidation holds the configuration of a k-fold
// cross-validation run
type CrossValidation struct {
	// Folds is the number of folds, at least 2 and
	// at most the number of instances
	Folds int
	// Strategy is the scoring strategy used to grow the
	// tree of each fold. Defaults to InformationGainStrategy.
	Strategy ScoringStrategy
	// Seed for the shuffle of the dataset
	Seed int64
	// Logger defaults to a no-op logger
	Logger *zap.Logger
}

// FoldResult holds the evaluation of the tree grown for a fold
type FoldResult struct {
	Index      int
	TrainCount int
	TestCount  int
	Correct    int
	Accuracy   float64
	Nodes      int
	Depth      int
}

// Report holds the results of a cross-validation run
type Report struct {
	Folds        []FoldResult
	MeanAccuracy float64
}

/*
CrossValidate takes a context, a dataset and a CrossValidation and returns
the Report of evaluating trees grown on k-1 folds of the dataset against
the remaining one, for each of the k folds.

The dataset is shuffled once with the seed and cut into k contiguous
folds. With N = q*k + r instances, the first r folds hold q+1 instances and
the rest hold q, so every instance is tested exactly once. Every fold grows
its own tree and imputer over its training instances and discards them
once tested.

An error wrapping ErrInvalidConfiguration is returned if the number of folds
is below 2 or above the number of instances, and dataset.ErrEmptyDataset if
the dataset is empty. An error on any fold aborts the run.
*/
func CrossValidate(ctx context.Context, d *dataset.Dataset, cv CrossValidation) (*Report, error) {
	if cv.Folds < 2 {
		return nil, fmt.Errorf("%d folds, at least 2 are required: %w", cv.Folds, ErrInvalidConfiguration)
	}
	if d.Count() == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	if cv.Folds > d.Count() {
		return nil, fmt.Errorf("%d folds for %d instances: %w", cv.Folds, d.Count(), ErrInvalidConfiguration)
	}
	if cv.Strategy == nil {
		cv.Strategy = InformationGainStrategy()
	}
	if cv.Logger == nil {
		cv.Logger = zap.NewNop()
	}
	shuffled := d.Shuffle(rand.New(rand.NewSource(cv.Seed)))
	bounds := FoldBounds(d.Count(), cv.Folds)
	report := &Report{Folds: make([]FoldResult, 0, cv.Folds)}
	var total float64
	for i := 0; i < cv.Folds; i++ {
		err := ctx.Err()
		if err != nil {
			return nil, err
		}
		test, train := shuffled.Split(bounds[i], bounds[i+1])
		t, err := Grow(ctx, &TrainingContext{
			Dataset:  train,
			Strategy: cv.Strategy,
			Logger:   cv.Logger.With(zap.Int("fold", i)),
		})
		if err != nil {
			return nil, fmt.Errorf("growing tree for fold %d: %w", i, err)
		}
		accuracy, correct, err := t.Test(test)
		if err != nil {
			return nil, fmt.Errorf("testing tree for fold %d: %w", i, err)
		}
		result := FoldResult{
			Index:      i,
			TrainCount: train.Count(),
			TestCount:  test.Count(),
			Correct:    correct,
			Accuracy:   accuracy,
			Nodes:      t.Len(),
			Depth:      t.Depth(),
		}
		cv.Logger.Debug("fold evaluated",
			zap.Int("fold", i),
			zap.Int("train", result.TrainCount),
			zap.Int("test", result.TestCount),
			zap.Float64("accuracy", accuracy))
		report.Folds = append(report.Folds, result)
		total += accuracy
	}
	report.MeanAccuracy = total / float64(cv.Folds)
	return report, nil
}

/*
FoldBounds takes a number of instances n and a number of folds k and returns
the k+1 offsets delimiting the folds: fold i spans [bounds[i], bounds[i+1]).
With n = q*k + r, the first r folds hold q+1 instances and the rest q.
*/
func FoldBounds(n, k int) []int {
	q, r := n/k, n%k
	bounds := make([]int, k+1)
	for i := 0; i < k; i++ {
		size := q
		if i < r {
			size++
		}
		bounds[i+1] = bounds[i] + size
	}
	return bounds
}
