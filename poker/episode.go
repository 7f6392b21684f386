package poker

// ActorOutput is what an external actor returns for one decision point.
// Betsize indexes the ruleset's bet-size menu and is only meaningful for
// ACTION_BET and ACTION_RAISE.
type ActorOutput struct {
	Action       Action
	ActionProb   float32
	ActionProbs  []float32
	Betsize      int32
	BetsizeProb  float32
	BetsizeProbs []float32
}

// Episode is one position's trajectory through one hand: parallel
// sequences with exactly one entry per decision that position made.
// Everything appended here is a value-semantics snapshot; the live game
// keeps mutating after the snapshot is taken.
type Episode struct {
	States       []*GameState
	Observations []*Observation
	Actions      []Action
	ActionProbs  []float32
	ActionMasks  [][]int32
	Betsizes     []int32
	BetsizeProbs []float32
	BetsizeMasks [][]int32
	Rewards      []float32
}

func NewEpisode() *Episode {
	return &Episode{}
}

// Len is the number of decision points recorded.
func (h *Episode) Len() int {
	return len(h.Actions)
}

func (h *Episode) Clone() *Episode {
	cp := &Episode{
		States:       make([]*GameState, len(h.States)),
		Observations: make([]*Observation, len(h.Observations)),
		Actions:      make([]Action, len(h.Actions)),
		ActionProbs:  make([]float32, len(h.ActionProbs)),
		ActionMasks:  make([][]int32, len(h.ActionMasks)),
		Betsizes:     make([]int32, len(h.Betsizes)),
		BetsizeProbs: make([]float32, len(h.BetsizeProbs)),
		BetsizeMasks: make([][]int32, len(h.BetsizeMasks)),
		Rewards:      make([]float32, len(h.Rewards)),
	}
	for i, s := range h.States {
		cp.States[i] = s.Clone()
	}
	for i, o := range h.Observations {
		cp.Observations[i] = o.Clone()
	}
	copy(cp.Actions, h.Actions)
	copy(cp.ActionProbs, h.ActionProbs)
	for i, m := range h.ActionMasks {
		cp.ActionMasks[i] = append([]int32(nil), m...)
	}
	copy(cp.Betsizes, h.Betsizes)
	copy(cp.BetsizeProbs, h.BetsizeProbs)
	for i, m := range h.BetsizeMasks {
		cp.BetsizeMasks[i] = append([]int32(nil), m...)
	}
	copy(cp.Rewards, h.Rewards)
	return cp
}
