package poker

// HistoricalPoint is one recorded action: who, what, for how much.
type HistoricalPoint struct {
	Position Position
	Action   Action
	Betsize  float32
}

// History is the append-only betting log the street-termination rules
// read. Entries are never mutated or removed once recorded; it is reset
// at hand start and at every street boundary so the last/penultimate
// accessors see the unopened sentinel when a street begins.
type History struct {
	points []HistoricalPoint
}

func NewHistory() *History {
	return &History{points: make([]HistoricalPoint, 0, 16)}
}

func (h *History) Add(position Position, action Action, betsize float32) {
	h.points = append(h.points, HistoricalPoint{
		Position: position,
		Action:   action,
		Betsize:  betsize,
	})
}

func (h *History) Len() int {
	return len(h.points)
}

func (h *History) Reset() {
	h.points = h.points[:0]
}

// LastAction returns ACTION_UNOPENED on an empty history. The sentinel
// never equals check/call, so termination rules evaluate false until
// enough actions have occurred.
func (h *History) LastAction() Action {
	if len(h.points) > 0 {
		return h.points[len(h.points)-1].Action
	}
	return ACTION_UNOPENED
}

func (h *History) LastBetsize() float32 {
	if len(h.points) > 0 {
		return h.points[len(h.points)-1].Betsize
	}
	return 0
}

// LastLiveAction is the most recent non-fold action this street. A fold
// removes a seat from the hand but does not change what the next seat
// is facing, so mask generation looks through folds.
func (h *History) LastLiveAction() Action {
	for i := len(h.points) - 1; i >= 0; i-- {
		if h.points[i].Action != ACTION_FOLD {
			return h.points[i].Action
		}
	}
	return ACTION_UNOPENED
}

func (h *History) PenultimateAction() Action {
	if len(h.points) > 1 {
		return h.points[len(h.points)-2].Action
	}
	return ACTION_UNOPENED
}

func (h *History) PenultimateBetsize() float32 {
	if len(h.points) > 1 {
		return h.points[len(h.points)-2].Betsize
	}
	return 0
}

// Points returns a copy of the log.
func (h *History) Points() []HistoricalPoint {
	cp := make([]HistoricalPoint, len(h.points))
	copy(cp, h.points)
	return cp
}
