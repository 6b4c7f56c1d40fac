package habits

import (
	"fmt"
	"time"

	randomforest "github.com/malaschitz/randomForest"
)

// Prediction statuses. The sentinels are part of the API contract and map
// straight onto the JSON "status" field.
const (
	StatusOK                          = "ok"
	StatusInsufficientData            = "insufficient_data"
	StatusInsufficientConsecutiveData = "insufficient_consecutive_data"
)

const (
	forestTrees  = 100
	minEntries   = 7
	assumedHours = 24.0
)

// Prediction is the outcome of a predict request. Probability is only
// meaningful when Status is StatusOK.
type Prediction struct {
	Status      string
	Probability float64
}

// Display formats the probability the way the UI shows it, e.g. "73.0%".
func (p Prediction) Display() string {
	return fmt.Sprintf("%.1f%%", p.Probability*100)
}

// Predict estimates the probability that the habit will be completed
// tomorrow. It trains a fresh 100-tree random forest on the habit's full
// sample set each call (no model is persisted between requests) and scores
// a synthetic "tomorrow" vector: the overall current streak, the weekday
// after the last entry, and an assumed 24-hour gap.
//
// Degenerate inputs short-circuit: fewer than seven entries yields
// StatusInsufficientData, and an empty sample set yields
// StatusInsufficientConsecutiveData. A sample set where every label is the
// same class skips training and reports that class's probability directly,
// since fitting a forest to a single class is undefined behavior in the
// classifier. Timestamps must be in chronological order.
func Predict(times []time.Time) Prediction {
	if len(times) < minEntries {
		return Prediction{Status: StatusInsufficientData}
	}
	samples := ExtractSamples(times)
	if len(samples) == 0 {
		return Prediction{Status: StatusInsufficientConsecutiveData}
	}

	last := times[len(times)-1]
	tomorrow := []float64{
		float64(CurrentStreak(times)),
		float64(mondayWeekday(last.AddDate(0, 0, 1))),
		assumedHours,
	}

	uniform := true
	for _, s := range samples[1:] {
		if s.Label != samples[0].Label {
			uniform = false
			break
		}
	}
	if uniform {
		return Prediction{Status: StatusOK, Probability: float64(samples[0].Label)}
	}

	x := make([][]float64, len(samples))
	y := make([]int, len(samples))
	for i, s := range samples {
		x[i] = s.Features()
		y[i] = s.Label
	}

	forest := randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: x, Class: y}
	forest.Train(forestTrees)

	votes := forest.Vote(tomorrow)
	var p float64
	if len(votes) > 1 {
		p = votes[1]
	}
	return Prediction{Status: StatusOK, Probability: p}
}
