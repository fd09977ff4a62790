package arbor

import (
	"context"
	"fmt"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/queue"
	"github.com/pbanos/arbor/tree"
	"go.uber.org/zap"
)

// TrainingContext holds everything needed to grow a tree
type TrainingContext struct {
	// Dataset is the training data. Its class is the
	// feature the tree predicts and its features are the
	// ones nodes may split on, in order of preference
	// for ties.
	Dataset *dataset.Dataset
	// Strategy chooses the feature each node splits on.
	// Defaults to InformationGainStrategy.
	Strategy ScoringStrategy
	// Imputer places instances missing a value when
	// partitioning and predicting. Defaults to an Imputer
	// over Dataset.
	Imputer *dataset.Imputer
	// Logger defaults to a no-op logger
	Logger *zap.Logger
}

func (tc *TrainingContext) defaults() *TrainingContext {
	result := *tc
	if result.Strategy == nil {
		result.Strategy = InformationGainStrategy()
	}
	if result.Imputer == nil && result.Dataset != nil {
		result.Imputer = dataset.NewImputer(result.Dataset)
	}
	if result.Logger == nil {
		result.Logger = zap.NewNop()
	}
	return &result
}

// Grow takes a context and a training context and returns
// the tree grown over the training dataset or an error.
//
// Nodes are developed in breadth-first order with BranchOut
// from a queue seeded with the root. An empty training dataset
// returns dataset.ErrEmptyDataset. Grow will return the context
// error if it times out or is cancelled.
func Grow(ctx context.Context, tc *TrainingContext) (*tree.Tree, error) {
	tc = tc.defaults()
	if tc.Dataset == nil || tc.Dataset.Count() == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	t, q := Seed(tc)
	for task := q.Pull(); task != nil; task = q.Pull() {
		err := ctx.Err()
		if err != nil {
			return nil, err
		}
		tasks, err := BranchOut(task, t, tc)
		if err != nil {
			return nil, err
		}
		for _, st := range tasks {
			q.Push(st)
		}
	}
	tc.Logger.Debug("tree grown",
		zap.Int("instances", tc.Dataset.Count()),
		zap.Int("nodes", t.Len()),
		zap.Int("depth", t.Depth()))
	return t, nil
}

// Seed takes a training context and returns a tree with a
// root node to be grown over the training dataset and a
// queue with the task to develop it.
func Seed(tc *TrainingContext) (*tree.Tree, queue.Queue) {
	tc = tc.defaults()
	t := tree.New(tc.Dataset.Class(), tc.Imputer)
	q := queue.New()
	q.Push(&queue.Task{
		Node:              t.Root().ID,
		Dataset:           tc.Dataset,
		AvailableFeatures: tc.Dataset.Features(),
	})
	return t, q
}

// BranchOut takes a task, a tree and a training context,
// develops the node in the task using the task's dataset and
// available features and returns the tasks to develop the
// resulting children nodes or an error.
//
// The node becomes a leaf when its dataset is empty (predicting
// the task's fallback), pure (predicting its only label), or has
// no features left or no feature to split on, or the chosen
// numeric split leaves every instance on one side (predicting the
// majority label). Otherwise it splits on the feature chosen by
// the strategy. Nominal features are not available to the
// children, numeric ones remain available.
func BranchOut(task *queue.Task, t *tree.Tree, tc *TrainingContext) ([]*queue.Task, error) {
	tc = tc.defaults()
	n, err := t.Node(task.Node)
	if err != nil {
		return nil, err
	}
	d := task.Dataset
	n.Weight = d.Count()
	if d.Count() == 0 {
		n.SetLeaf(task.Fallback)
		return nil, nil
	}
	if label, ok := d.Pure(); ok {
		n.SetLeaf(label)
		return nil, nil
	}
	majority, err := d.Majority()
	if err != nil {
		return nil, err
	}
	var candidates []*Partition
	for _, f := range task.AvailableFeatures {
		p, err := partition(d, f, tc.Imputer)
		if err != nil {
			return nil, fmt.Errorf("partitioning node %d on %s: %w", n.ID, f.Name(), err)
		}
		if p != nil {
			candidates = append(candidates, p)
		}
	}
	chosen := FirstMaximalBy(len(candidates), func(i int) float64 {
		return tc.Strategy.Score(d, candidates[i])
	})
	if chosen < 0 {
		n.SetLeaf(majority)
		return nil, nil
	}
	p := candidates[chosen]
	if p.Degenerate() {
		tc.Logger.Debug("forcing leaf",
			zap.Int("node", int(n.ID)),
			zap.String("feature", p.Feature.Name()),
			zap.Float64("threshold", p.Threshold),
			zap.Error(ErrDegenerateNumericSplit))
		n.SetLeaf(majority)
		return nil, nil
	}
	stAvailableFeatures := task.AvailableFeatures
	if p.Feature.Kind() == feature.Nominal {
		stAvailableFeatures = make([]feature.Feature, 0, len(task.AvailableFeatures)-1)
		for _, f := range task.AvailableFeatures {
			if f.Name() != p.Feature.Name() {
				stAvailableFeatures = append(stAvailableFeatures, f)
			}
		}
	}
	n.Feature = p.Feature
	tasks := make([]*queue.Task, 0, len(p.Subsets))
	for i, s := range p.Subsets {
		child := t.Create(n.ID)
		n.Branches = append(n.Branches, tree.Branch{Criterion: p.Criteria[i], Child: child.ID})
		tasks = append(tasks, &queue.Task{
			Node:              child.ID,
			Dataset:           s,
			AvailableFeatures: stAvailableFeatures,
			Fallback:          majority,
		})
	}
	tc.Logger.Debug("branched out",
		zap.Int("node", int(n.ID)),
		zap.String("feature", p.Feature.Name()),
		zap.Float64("gain", p.InformationGain),
		zap.Int("instances", d.Count()))
	return tasks, nil
}
