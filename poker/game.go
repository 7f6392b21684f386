package poker

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// StepResult is what the driver gets back after Reset and every Step:
// the next acting player's view plus the masks its actor must honor.
// Masks are nil once Done.
type StepResult struct {
	State       *GameState
	Obs         *Observation
	Done        bool
	ActionMask  []int32
	BetsizeMask []int32
}

// Game drives one complete hand at a time: deal, betting round per
// street, showdown or fold resolution, terminal rewards. It is strictly
// single-threaded; parallel hands each own an exclusive Game.
type Game struct {
	rules     *Rules
	evaluator Evaluator
	randGen   *rand.Rand

	deck    *Deck
	pot     *Pot
	history *History
	players *Players

	board   []Card
	street  int32
	records [][]int32
	handLog []HistoricalPoint

	handID     uuid.UUID
	handNumber int64
	totalChips float32
	done       bool
}

func NewGame(set *Ruleset, evaluator Evaluator, seed int64) (*Game, error) {
	rules, err := NewRules(set)
	if err != nil {
		return nil, err
	}
	randGen := rand.New(rand.NewSource(seed))
	stacks := make([]float32, set.NumPlayers)
	for i := range stacks {
		stacks[i] = set.StartingStack
	}
	h := &Game{
		rules:     rules,
		evaluator: evaluator,
		randGen:   randGen,
		deck:      NewDeck(set.Ranks, set.Suits, randGen),
		pot:       NewPot(set.Blinds.Small + set.Blinds.Big),
		history:   NewHistory(),
		players:   NewPlayers(set.NumPlayers, stacks),
		records:   make([][]int32, set.NumStreets),
	}
	for i := range h.records {
		h.records[i] = make([]int32, NUM_ACTIONS)
	}
	return h, nil
}

// Reset starts a fresh hand: new shuffle, new hole cards, blinds
// posted, pot and histories cleared.
func (h *Game) Reset() *StepResult {
	set := h.rules.Set()

	h.deck.Reset()
	hands := make([][]Card, set.NumPlayers)
	for i := range hands {
		hands[i] = h.deck.Deal(int(set.CardsPerPlayer))
	}
	h.players.Reset(hands)

	h.pot.Reset()
	h.players.UpdateStack(POSITION_SB, set.Blinds.Small)
	h.players.UpdateStack(POSITION_BB, set.Blinds.Big)
	if !set.LiveBlinds {
		h.players.ResetStreetTotals()
	}
	h.totalChips = h.players.TotalChips() + h.pot.Value()

	h.street = set.StartingStreet
	h.board = h.board[:0]
	for s := int32(0); s <= h.street; s++ {
		h.board = append(h.board, h.deck.Deal(int(set.BoardCards[s]))...)
	}

	h.history.Reset()
	h.handLog = h.handLog[:0]
	for i := range h.records {
		for j := range h.records[i] {
			h.records[i][j] = 0
		}
	}
	h.done = false
	h.handID = uuid.New()
	h.handNumber++

	h.players.SetLeader(h.firstToAct(h.street))
	return h.stepResult()
}

// Step applies one actor decision for the current player and advances
// the hand. Acting against the supplied masks, or on a finished hand,
// is a caller error and panics with the offending context.
func (h *Game) Step(out *ActorOutput) *StepResult {
	if h.done {
		panic("step on a finished hand")
	}
	position := h.players.Current()
	seat := h.players.Seat(position)
	actionMask := h.ActionMask()
	betsizeMask := h.BetsizeMask()

	if out.Action < 0 || out.Action >= NUM_ACTIONS || actionMask[out.Action] == 0 {
		panic(fmt.Sprintf("illegal action %s by %s, mask %v",
			Action2string[out.Action], Position2string[position], actionMask))
	}
	aggressive := out.Action == ACTION_BET || out.Action == ACTION_RAISE
	if aggressive {
		if out.Betsize < 0 || int(out.Betsize) >= len(betsizeMask) || betsizeMask[out.Betsize] == 0 {
			panic(fmt.Sprintf("illegal bet size %d by %s, mask %v",
				out.Betsize, Position2string[position], betsizeMask))
		}
	}

	h.players.StoreDecision(position, h.State(position), h.Observe(), actionMask, betsizeMask, out)

	var amount float32
	switch out.Action {
	case ACTION_CHECK:
	case ACTION_FOLD:
		seat.Active = false
	case ACTION_CALL:
		amount = min32(h.callAmount(position), seat.Stack)
	case ACTION_BET, ACTION_RAISE:
		amount = min32(h.rules.BetAmount(out.Betsize, h.pot.Value(), h.callAmount(position)), seat.Stack)
	}
	if amount > 0 {
		h.contribute(position, amount)
	}
	h.history.Add(position, out.Action, amount)
	h.handLog = append(h.handLog, HistoricalPoint{Position: position, Action: out.Action, Betsize: amount})
	h.records[h.street][out.Action]++
	h.players.Increment()

	if out.Action == ACTION_FOLD && h.players.ActiveCount() == 1 {
		h.resolveFold()
		return h.stepResult()
	}
	if h.rules.Over(h.history, h.players.ActionablePositions()) {
		if h.street >= h.rules.Set().NumStreets-1 || h.players.ToShowdown() {
			h.runOutBoard()
			h.showdown()
			return h.stepResult()
		}
		h.advanceStreet()
	}
	return h.stepResult()
}

func (h *Game) advanceStreet() {
	h.street++
	h.board = append(h.board, h.deck.Deal(int(h.rules.Set().BoardCards[h.street]))...)
	h.players.ResetStreetTotals()
	h.history.Reset()
	h.players.SetLeader(h.firstToAct(h.street))
}

// runOutBoard deals the remaining board when betting is finished early
// (everyone all-in) so the oracle sees a complete board.
func (h *Game) runOutBoard() {
	set := h.rules.Set()
	for s := h.street + 1; s < set.NumStreets; s++ {
		h.board = append(h.board, h.deck.Deal(int(set.BoardCards[s]))...)
	}
	h.street = set.NumStreets - 1
}

// showdown asks the ranking oracle to score every unfolded hand.
// Winners split the pot equally; when the division is inexact the first
// winner in seating order takes the residual so every chip is paid out.
func (h *Game) showdown() {
	contenders := h.players.ActivePositions()
	best := int32(math.MinInt32)
	ranks := make(map[Position]int32, len(contenders))
	for _, p := range contenders {
		r := h.evaluator.Rank(h.players.Seat(p).Hand, h.board)
		ranks[p] = r
		if r > best {
			best = r
		}
	}
	winners := make([]Position, 0, len(contenders))
	for _, p := range contenders {
		if ranks[p] == best {
			winners = append(winners, p)
		}
	}

	pot := h.pot.Drain()
	share := pot / float32(len(winners))
	residual := pot - share*float32(len(winners)-1)
	for i, p := range winners {
		if i == 0 {
			h.players.Seat(p).Stack += residual
		} else {
			h.players.Seat(p).Stack += share
		}
	}
	h.endHand()
}

// resolveFold hands the whole pot to the sole remaining seat.
func (h *Game) resolveFold() {
	winner := h.players.LastActive()
	h.players.Seat(winner).Stack += h.pot.Drain()
	h.endHand()
}

func (h *Game) endHand() {
	h.players.GenRewards()
	h.done = true
}

// contribute moves chips from a seat into the pot and checks chip
// conservation on every call.
func (h *Game) contribute(position Position, amount float32) {
	if amount < 0 {
		panic(fmt.Sprintf("negative contribution %f by %s", amount, Position2string[position]))
	}
	h.players.UpdateStack(position, amount)
	h.pot.Add(amount)
	if total := h.players.TotalChips() + h.pot.Value(); math.Abs(float64(total-h.totalChips)) > 1e-3 {
		panic(fmt.Sprintf("chip conservation violated: %f != %f", total, h.totalChips))
	}
}

func (h *Game) callAmount(position Position) float32 {
	diff := h.players.MaxStreetTotal() - h.players.Seat(position).StreetTotal
	if diff < 0 {
		return 0
	}
	return diff
}

func (h *Game) firstToAct(street int32) Position {
	set := h.rules.Set()
	// Live blinds are heads-up only; the big blind leads every street
	// after the first.
	if set.LiveBlinds && street > set.StartingStreet {
		return POSITION_BB
	}
	return POSITION_SB
}

// ActionMask is the legal-action bit-vector for the current player.
// Pure: computing it twice yields identical results.
func (h *Game) ActionMask() []int32 {
	streetBets := h.records[h.street][ACTION_BET] + h.records[h.street][ACTION_RAISE]
	return h.rules.LegalActionMask(h.street, h.history.LastLiveAction(), streetBets)
}

// BetsizeMask restricts the bet-size menu for the current player.
func (h *Game) BetsizeMask() []int32 {
	position := h.players.Current()
	return h.rules.BetsizeMask(h.players.Seat(position).Stack, h.pot.Value(), h.callAmount(position))
}

// State builds the given player's private view of the hand.
func (h *Game) State(position Position) *GameState {
	state := &GameState{
		Street:        h.street,
		Pot:           h.pot.Value(),
		CurrentPlayer: h.players.Current(),
		Stacks:        h.players.Stacks(),
		StreetTotals:  h.players.StreetTotals(),
		ActiveMask:    h.players.ActiveMask(),
		LastAction:    h.history.LastAction(),
		LastBetsize:   h.history.LastBetsize(),
	}
	state.Board = append([]Card(nil), h.board...)
	state.Hole = append([]Card(nil), h.players.Seat(position).Hand...)
	return state
}

// Observe builds the public view of the hand.
func (h *Game) Observe() *Observation {
	obs := &Observation{
		Street:        h.street,
		Pot:           h.pot.Value(),
		CurrentPlayer: h.players.Current(),
		Stacks:        h.players.Stacks(),
		StreetTotals:  h.players.StreetTotals(),
		ActiveMask:    h.players.ActiveMask(),
		LastAction:    h.history.LastAction(),
		LastBetsize:   h.history.LastBetsize(),
	}
	obs.Board = append([]Card(nil), h.board...)
	return obs
}

func (h *Game) stepResult() *StepResult {
	if h.done {
		return &StepResult{
			Obs:  h.Observe(),
			Done: true,
		}
	}
	return &StepResult{
		State:       h.State(h.players.Current()),
		Obs:         h.Observe(),
		ActionMask:  h.ActionMask(),
		BetsizeMask: h.BetsizeMask(),
	}
}

func (h *Game) IsOver() bool {
	return h.done
}

func (h *Game) CurrentPlayer() Position {
	return h.players.Current()
}

func (h *Game) Street() int32 {
	return h.street
}

func (h *Game) Board() []Card {
	return append([]Card(nil), h.board...)
}

func (h *Game) Pot() float32 {
	return h.pot.Value()
}

func (h *Game) HandID() uuid.UUID {
	return h.handID
}

func (h *Game) HandNumber() int64 {
	return h.handNumber
}

// HandLog is the full-hand append-only record of every action taken.
func (h *Game) HandLog() []HistoricalPoint {
	cp := make([]HistoricalPoint, len(h.handLog))
	copy(cp, h.handLog)
	return cp
}

// Rewards are the terminal per-seat payoffs once the hand is done.
func (h *Game) Rewards() []float32 {
	if !h.done {
		panic("rewards requested before hand end")
	}
	return h.players.Rewards()
}

// Inputs exposes the per-position episode snapshot for training and
// persistence collaborators.
func (h *Game) Inputs() map[Position]*Episode {
	return h.players.Inputs()
}

func (h *Game) Players() *Players {
	return h.players
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
