package poker

import (
	"math/rand"

	"pokergym/common/random"
)

// Actor supplies one decision per turn. The engine blocks on Act and
// trusts the returned action and bet size against the masks it handed
// out; a violation is a caller bug, not a recoverable failure.
type Actor interface {
	Act(state *GameState, actionMask []int32, betsizeMask []int32) (*ActorOutput, error)
}

// RandomActor picks uniformly over the legal masks. Reference actor for
// tests and the self-play driver.
type RandomActor struct {
	randGen *rand.Rand
}

func NewRandomActor(randGen *rand.Rand) *RandomActor {
	return &RandomActor{randGen: randGen}
}

func (h *RandomActor) Act(state *GameState, actionMask []int32, betsizeMask []int32) (*ActorOutput, error) {
	actionProbs := uniformOverMask(actionMask)
	action, err := random.Sample(h.randGen, sparse(actionProbs))
	if err != nil {
		return nil, err
	}
	betsizeProbs := uniformOverMask(betsizeMask)
	betsize, err := random.Sample(h.randGen, sparse(betsizeProbs))
	if err != nil {
		return nil, err
	}
	return &ActorOutput{
		Action:       action,
		ActionProb:   actionProbs[action],
		ActionProbs:  actionProbs,
		Betsize:      betsize,
		BetsizeProb:  betsizeProbs[betsize],
		BetsizeProbs: betsizeProbs,
	}, nil
}

func uniformOverMask(mask []int32) []float32 {
	legal := float32(0)
	for _, m := range mask {
		if m == 1 {
			legal++
		}
	}
	probs := make([]float32, len(mask))
	if legal == 0 {
		return probs
	}
	for i, m := range mask {
		if m == 1 {
			probs[i] = 1 / legal
		}
	}
	return probs
}

func sparse(probs []float32) map[int32]float32 {
	r := make(map[int32]float32, len(probs))
	for i, p := range probs {
		if p > 0 {
			r[int32(i)] = p
		}
	}
	return r
}
