package arbor

import (
	"fmt"

	"github.com/pbanos/arbor/dataset"
)

/*
ScoringStrategy is an interface wrapping the Score method, used to choose
among the candidate partitions of a node's dataset, one per available
feature. The first partition with the maximal score is chosen.

The Score method takes the dataset of the node and a partition of it and
returns its score.
*/
type ScoringStrategy interface {
	Score(d *dataset.Dataset, p *Partition) float64
}

/*
ScoringStrategyFunc wraps a function with the Score method signature to
implement the ScoringStrategy interface
*/
type ScoringStrategyFunc func(d *dataset.Dataset, p *Partition) float64

/*
Score takes a dataset and a partition and invokes the ScoringStrategyFunc
with those parameters to return its result.
*/
func (sf ScoringStrategyFunc) Score(d *dataset.Dataset, p *Partition) float64 {
	return sf(d, p)
}

/*
InformationGainStrategy returns a ScoringStrategy whose Score method returns
the information gain of the partition.
*/
func InformationGainStrategy() ScoringStrategy {
	return ScoringStrategyFunc(func(d *dataset.Dataset, p *Partition) float64 {
		return p.InformationGain
	})
}

/*
DegenerateStrategy returns a ScoringStrategy whose Score method gives every
partition the same score, so the first available feature is always chosen.
It has no predictive value and exists only to compare against.
Thresholds of numeric features are still chosen by information gain.
*/
func DegenerateStrategy() ScoringStrategy {
	return ScoringStrategyFunc(func(d *dataset.Dataset, p *Partition) float64 {
		return 0.0
	})
}

/*
ParseScoringStrategy takes the name of a scoring strategy and returns it:
"information-gain" (or "gain") for InformationGainStrategy and "degenerate"
(or "accuracy") for DegenerateStrategy. Other names return an error wrapping
ErrInvalidConfiguration.
*/
func ParseScoringStrategy(name string) (ScoringStrategy, error) {
	switch name {
	case "information-gain", "gain":
		return InformationGainStrategy(), nil
	case "degenerate", "accuracy":
		return DegenerateStrategy(), nil
	}
	return nil, fmt.Errorf("unknown scoring strategy %q: %w", name, ErrInvalidConfiguration)
}
