package poker

// GameState is the acting player's view of the hand: everything public
// plus their own hole cards. Snapshots stored into episode buffers are
// always clones.
type GameState struct {
	Street        int32
	Pot           float32
	CurrentPlayer Position
	Stacks        []float32
	StreetTotals  []float32
	ActiveMask    []int32
	Board         []Card
	Hole          []Card
	LastAction    Action
	LastBetsize   float32
}

func (h *GameState) Clone() *GameState {
	if h == nil {
		return nil
	}
	cp := &GameState{
		Street:        h.Street,
		Pot:           h.Pot,
		CurrentPlayer: h.CurrentPlayer,
		LastAction:    h.LastAction,
		LastBetsize:   h.LastBetsize,
	}
	cp.Stacks = append([]float32(nil), h.Stacks...)
	cp.StreetTotals = append([]float32(nil), h.StreetTotals...)
	cp.ActiveMask = append([]int32(nil), h.ActiveMask...)
	cp.Board = append([]Card(nil), h.Board...)
	cp.Hole = append([]Card(nil), h.Hole...)
	return cp
}

// Observation is the public view: GameState without private cards.
type Observation struct {
	Street        int32
	Pot           float32
	CurrentPlayer Position
	Stacks        []float32
	StreetTotals  []float32
	ActiveMask    []int32
	Board         []Card
	LastAction    Action
	LastBetsize   float32
}

func (h *Observation) Clone() *Observation {
	if h == nil {
		return nil
	}
	cp := &Observation{
		Street:        h.Street,
		Pot:           h.Pot,
		CurrentPlayer: h.CurrentPlayer,
		LastAction:    h.LastAction,
		LastBetsize:   h.LastBetsize,
	}
	cp.Stacks = append([]float32(nil), h.Stacks...)
	cp.StreetTotals = append([]float32(nil), h.StreetTotals...)
	cp.ActiveMask = append([]int32(nil), h.ActiveMask...)
	cp.Board = append([]Card(nil), h.Board...)
	return cp
}
