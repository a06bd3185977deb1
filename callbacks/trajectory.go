package callbacks

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Trajectory pairs the model's predicted actions with the log-replay
// targets over one rollout.
type Trajectory struct {
	Predicted   [][2]float64
	GroundTruth [][2]float64
}

func (t *Trajectory) Append(pred, gt [2]float64) {
	t.Predicted = append(t.Predicted, pred)
	t.GroundTruth = append(t.GroundTruth, gt)
}

func (t *Trajectory) Len() int {
	return len(t.Predicted)
}

// RMSE is the root of the mean per-step squared displacement error
// between predicted and ground-truth actions.
func (t *Trajectory) RMSE() float64 {
	if t.Len() == 0 {
		return 0
	}
	sq := make([]float64, t.Len())
	for i := range t.Predicted {
		dx := t.Predicted[i][0] - t.GroundTruth[i][0]
		dy := t.Predicted[i][1] - t.GroundTruth[i][1]
		sq[i] = dx*dx + dy*dy
	}
	return math.Sqrt(stat.Mean(sq, nil))
}
