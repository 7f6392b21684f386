package poker

// Player is the per-seat mutable state for one hand. Owned exclusively
// by Players; callers get read-only projections.
type Player struct {
	Hand        []Card
	Stack       float32
	Position    Position
	Active      bool
	Allin       bool
	StreetTotal float32
}

func (h *Player) DeepCopy() *Player {
	cp := &Player{
		Stack:       h.Stack,
		Position:    h.Position,
		Active:      h.Active,
		Allin:       h.Allin,
		StreetTotal: h.StreetTotal,
	}
	if h.Hand != nil {
		cp.Hand = make([]Card, len(h.Hand))
		copy(cp.Hand, h.Hand)
	}
	return cp
}
