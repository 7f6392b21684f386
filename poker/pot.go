package poker

// Pot is the single shared pot. Side pots are not modeled; an all-in
// short stack contends for the whole pot.
type Pot struct {
	initialValue float32
	value        float32
}

// NewPot fixes the opening value (the forced blinds).
func NewPot(initialValue float32) *Pot {
	return &Pot{
		initialValue: initialValue,
		value:        initialValue,
	}
}

func (h *Pot) Add(amount float32) {
	h.value += amount
}

// Reset restores the pot to its opening value at hand start.
func (h *Pot) Reset() {
	h.value = h.initialValue
}

// Drain empties the pot and returns what was in it.
func (h *Pot) Drain() float32 {
	v := h.value
	h.value = 0
	return v
}

func (h *Pot) Value() float32 {
	return h.value
}

func (h *Pot) Initial() float32 {
	return h.initialValue
}
