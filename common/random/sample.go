package random

import (
	"fmt"
	"math/rand"
)

// Sample draws one key from a discrete distribution. The probabilities
// must sum to 1 within tolerance.
func Sample(rand *rand.Rand, probs map[int32]float32) (int32, error) {
	type valueProb struct {
		val  int32
		prob float32
	}
	var values []valueProb
	var sum float32
	for val, prob := range probs {
		values = append(values, valueProb{val, prob})
		sum += prob
	}
	if sum < 0.95 || sum > 1.05 {
		return 0, fmt.Errorf("invalid probs sum %f != 1", sum)
	}

	r := rand.Float32()
	var cumulative float32
	for _, vp := range values {
		cumulative += vp.prob
		if r < cumulative {
			return vp.val, nil
		}
	}
	return values[len(values)-1].val, nil
}
