package healthmon

import "sync"

// DriftTracker scores model drift as the mean squared error between a
// baseline prediction series and the current one. Safe for concurrent
// use.
type DriftTracker struct {
	threshold float64

	mu       sync.RWMutex
	baseline []float64
}

// NewDriftTracker creates a tracker that flags drift when the mean
// squared error against the baseline exceeds threshold. A zero or
// negative threshold falls back to DefaultDriftThreshold.
func NewDriftTracker(threshold float64) *DriftTracker {
	if threshold <= 0 {
		threshold = DefaultDriftThreshold
	}
	return &DriftTracker{threshold: threshold}
}

// SetBaseline records the reference predictions that later samples are
// scored against.
func (d *DriftTracker) SetBaseline(predictions []float64) {
	copied := make([]float64, len(predictions))
	copy(copied, predictions)

	d.mu.Lock()
	d.baseline = copied
	d.mu.Unlock()
}

// Score returns the mean squared error between the baseline and the
// current predictions. The two series must have the same length.
func (d *DriftTracker) Score(current []float64) (float64, error) {
	d.mu.RLock()
	baseline := d.baseline
	d.mu.RUnlock()

	if len(baseline) != len(current) {
		return 0, ErrLengthMismatch
	}
	if len(baseline) == 0 {
		return 0, nil
	}

	var sum float64
	for i := range baseline {
		diff := baseline[i] - current[i]
		sum += diff * diff
	}
	return sum / float64(len(baseline)), nil
}

// Drifted reports whether the current predictions have drifted past the
// threshold, along with the computed score.
func (d *DriftTracker) Drifted(current []float64) (bool, float64, error) {
	score, err := d.Score(current)
	if err != nil {
		return false, 0, err
	}
	return score > d.threshold, score, nil
}
