package classifier

import (
	"github.com/google/uuid"
)

// DefaultThreshold is the score above which a vector is labeled Malware.
const DefaultThreshold float32 = 0.5

// Label is the decision taken on a score.
type Label int

const (
	Benign Label = iota
	Malware
)

func (l Label) String() string {
	if l == Malware {
		return "Malware"
	}
	return "Benign"
}

// Decide labels score as Malware when it is strictly above threshold.
// A NaN score is Benign.
func Decide(score, threshold float32) Label {
	if score > threshold {
		return Malware
	}
	return Benign
}

// Result is the outcome of one successful prediction.
type Result struct {
	ID        uuid.UUID
	Label     Label
	Score     float32
	Threshold float32
}

func (r Result) String() string {
	return "Prediction: " + r.Label.String()
}
