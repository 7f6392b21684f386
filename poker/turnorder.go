package poker

// TurnOrder is a rotating ring over the seated positions. Current and
// Previous are reads; only Increment and SetLeader move the pointer.
type TurnOrder struct {
	positions []Position
	cursor    int
}

func NewTurnOrder(positions []Position) *TurnOrder {
	cp := make([]Position, len(positions))
	copy(cp, positions)
	return &TurnOrder{positions: cp}
}

func (h *TurnOrder) Current() Position {
	return h.positions[h.cursor]
}

// Previous is the position that most recently acted.
func (h *TurnOrder) Previous() Position {
	return h.positions[(h.cursor-1+len(h.positions))%len(h.positions)]
}

func (h *TurnOrder) Increment() {
	h.cursor = (h.cursor + 1) % len(h.positions)
}

// SetLeader points the ring at the given position.
func (h *TurnOrder) SetLeader(position Position) {
	for i, p := range h.positions {
		if p == position {
			h.cursor = i
			return
		}
	}
	panic("position not seated")
}

func (h *TurnOrder) Len() int {
	return len(h.positions)
}
