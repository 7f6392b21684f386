package poker

import "fmt"

// Players owns all per-seat mutable game state and the per-seat episode
// buffers used to assemble training trajectories. Seats are indexed by
// the compact position enumeration; the table is rebuilt from fresh
// deep copies at every hand start, never aliased across hands.
type Players struct {
	n             int32
	initialStacks []float32

	seats    []*Player
	episodes []*Episode
	turns    []int32
	order    *TurnOrder
}

func NewPlayers(n int32, startingStacks []float32) *Players {
	if int32(len(startingStacks)) != n {
		panic("one starting stack per seat required")
	}
	h := &Players{
		n:             n,
		initialStacks: append([]float32(nil), startingStacks...),
	}
	return h
}

// Reset seats everyone with fresh stacks, hands and empty buffers.
func (h *Players) Reset(hands [][]Card) {
	if int32(len(hands)) != h.n {
		panic("one hand per seat required")
	}
	h.seats = make([]*Player, h.n)
	h.episodes = make([]*Episode, h.n)
	h.turns = make([]int32, h.n)
	for i := int32(0); i < h.n; i++ {
		hand := make([]Card, len(hands[i]))
		copy(hand, hands[i])
		h.seats[i] = &Player{
			Hand:     hand,
			Stack:    h.initialStacks[i],
			Position: Position(i),
			Active:   true,
		}
		h.episodes[i] = NewEpisode()
	}
	h.order = NewTurnOrder(SeatingForPlayers(h.n))
}

func (h *Players) Count() int32 {
	return h.n
}

func (h *Players) Seat(position Position) *Player {
	return h.seats[position]
}

func (h *Players) Current() Position {
	return h.order.Current()
}

func (h *Players) Previous() Position {
	return h.order.Previous()
}

func (h *Players) CurrentHand() []Card {
	return h.seats[h.Current()].Hand
}

func (h *Players) CurrentStack() float32 {
	return h.seats[h.Current()].Stack
}

func (h *Players) CurrentStreetTotal() float32 {
	return h.seats[h.Current()].StreetTotal
}

// UpdateStack debits a seat's stack and credits its street total.
// Reducing a stack to exactly zero flips the seat all-in; the flip is
// irreversible within the hand.
func (h *Players) UpdateStack(position Position, amount float32) {
	if amount < 0 {
		panic(fmt.Sprintf("negative contribution %f by %s", amount, Position2string[position]))
	}
	seat := h.seats[position]
	if amount > seat.Stack {
		panic(fmt.Sprintf("contribution %f exceeds stack %f of %s", amount, seat.Stack, Position2string[position]))
	}
	seat.Stack -= amount
	seat.StreetTotal += amount
	if seat.Stack == 0 && seat.Active {
		seat.Allin = true
	}
}

// ResetStreetTotals zeroes every seat's street contribution when a new
// street begins. The pot is untouched.
func (h *Players) ResetStreetTotals() {
	for _, seat := range h.seats {
		seat.StreetTotal = 0
	}
}

// MaxStreetTotal is the amount the current aggressor has in front.
func (h *Players) MaxStreetTotal() float32 {
	m := float32(0)
	for _, seat := range h.seats {
		if seat.StreetTotal > m {
			m = seat.StreetTotal
		}
	}
	return m
}

// Increment counts a decision for the current seat and rotates to the
// next seat that can still act. Folded and all-in seats are skipped; if
// nobody can act the pointer stays where rotation left it.
func (h *Players) Increment() {
	h.turns[h.Current()]++
	h.Rotate()
}

// Rotate advances the turn pointer without counting a decision.
func (h *Players) Rotate() {
	h.order.Increment()
	for i := int32(0); i < h.n; i++ {
		seat := h.seats[h.Current()]
		if seat.Active && !seat.Allin {
			return
		}
		h.order.Increment()
	}
}

// SetLeader points the rotation at the first seat from the given
// position that can still act.
func (h *Players) SetLeader(position Position) {
	h.order.SetLeader(position)
	seat := h.seats[h.Current()]
	if seat.Active && !seat.Allin {
		return
	}
	h.Rotate()
}

func (h *Players) Turns(position Position) int32 {
	return h.turns[position]
}

func (h *Players) ActiveCount() int32 {
	c := int32(0)
	for _, seat := range h.seats {
		if seat.Active {
			c++
		}
	}
	return c
}

// LastActive is the sole unfolded seat after everyone else folded.
func (h *Players) LastActive() Position {
	for _, seat := range h.seats {
		if seat.Active {
			return seat.Position
		}
	}
	panic("no active seat")
}

// ActivePositions lists unfolded seats in seating order.
func (h *Players) ActivePositions() []Position {
	positions := make([]Position, 0, h.n)
	for _, seat := range h.seats {
		if seat.Active {
			positions = append(positions, seat.Position)
		}
	}
	return positions
}

// ActionablePositions lists seats still able to act, unfolded and not
// all-in, in seating order.
func (h *Players) ActionablePositions() []Position {
	positions := make([]Position, 0, h.n)
	for _, seat := range h.seats {
		if seat.Active && !seat.Allin {
			positions = append(positions, seat.Position)
		}
	}
	return positions
}

// ToShowdown reports whether every unfolded seat is all-in, in which
// case no further betting is possible and the board runs out.
func (h *Players) ToShowdown() bool {
	for _, seat := range h.seats {
		if seat.Active && !seat.Allin {
			return false
		}
	}
	return true
}

// StoreDecision appends one decision point to the acting seat's episode
// buffers. Snapshots are cloned here so buffered history is decoupled
// from the live state.
func (h *Players) StoreDecision(position Position, state *GameState, obs *Observation, actionMask []int32, betsizeMask []int32, out *ActorOutput) {
	ep := h.episodes[position]
	ep.States = append(ep.States, state.Clone())
	ep.Observations = append(ep.Observations, obs.Clone())
	ep.ActionMasks = append(ep.ActionMasks, append([]int32(nil), actionMask...))
	ep.BetsizeMasks = append(ep.BetsizeMasks, append([]int32(nil), betsizeMask...))
	ep.Actions = append(ep.Actions, out.Action)
	ep.ActionProbs = append(ep.ActionProbs, out.ActionProb)
	ep.Betsizes = append(ep.Betsizes, out.Betsize)
	ep.BetsizeProbs = append(ep.BetsizeProbs, out.BetsizeProb)
}

// GenRewards writes each seat's terminal reward, final stack minus the
// stack it started the hand with, broadcast over its decision count so
// len(Rewards) == len(Actions).
func (h *Players) GenRewards() {
	for i := int32(0); i < h.n; i++ {
		reward := h.seats[i].Stack - h.initialStacks[i]
		ep := h.episodes[i]
		ep.Rewards = make([]float32, h.turns[i])
		for j := range ep.Rewards {
			ep.Rewards[j] = reward
		}
	}
}

// Rewards returns the per-seat terminal reward vector.
func (h *Players) Rewards() []float32 {
	rewards := make([]float32, h.n)
	for i := int32(0); i < h.n; i++ {
		rewards[i] = h.seats[i].Stack - h.initialStacks[i]
	}
	return rewards
}

// Inputs snapshots the episode of every seat that made at least one
// decision, keyed by position. Read-only once the hand is closed out.
func (h *Players) Inputs() map[Position]*Episode {
	inputs := make(map[Position]*Episode)
	for i := int32(0); i < h.n; i++ {
		if h.episodes[i].Len() > 0 {
			inputs[Position(i)] = h.episodes[i]
		}
	}
	return inputs
}

func (h *Players) Episode(position Position) *Episode {
	return h.episodes[position]
}

// TotalChips sums the live stacks; with the pot it is the conserved
// quantity for the hand.
func (h *Players) TotalChips() float32 {
	total := float32(0)
	for _, seat := range h.seats {
		total += seat.Stack
	}
	return total
}

func (h *Players) Stacks() []float32 {
	stacks := make([]float32, h.n)
	for i, seat := range h.seats {
		stacks[i] = seat.Stack
	}
	return stacks
}

func (h *Players) StreetTotals() []float32 {
	totals := make([]float32, h.n)
	for i, seat := range h.seats {
		totals[i] = seat.StreetTotal
	}
	return totals
}

func (h *Players) ActiveMask() []int32 {
	mask := make([]int32, h.n)
	for i, seat := range h.seats {
		if seat.Active {
			mask[i] = 1
		}
	}
	return mask
}
