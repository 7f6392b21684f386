package poker

import "fmt"

// Blinds are the forced opening contributions.
type Blinds struct {
	Small float32
	Big   float32
}

// Ruleset parameterizes the engine for one game variant. It is loaded
// once, validated, and never mutated by the engine.
type Ruleset struct {
	Name           string
	BetType        BetType
	Betsizes       []float32
	Blinds         Blinds
	BetsPerStreet  int32
	NumStreets     int32
	StartingStreet int32
	NumPlayers     int32
	CardsPerPlayer int32
	StartingStack  float32
	Ranks          []int16
	Suits          []int16
	BoardCards     []int32
	// LiveBlinds keeps the posted blinds in the blind seats' street
	// totals on the first street, so action opens with fold/call/raise.
	// When false the blinds are dead money and action opens check/bet.
	LiveBlinds bool
}

func (h *Ruleset) Validate() error {
	if h.NumPlayers < 2 {
		return fmt.Errorf("ruleset %q: need at least 2 players, got %d", h.Name, h.NumPlayers)
	}
	if h.StartingStack <= 0 {
		return fmt.Errorf("ruleset %q: starting stack must be positive, got %f", h.Name, h.StartingStack)
	}
	if h.Blinds.Small < 0 || h.Blinds.Big <= 0 {
		return fmt.Errorf("ruleset %q: invalid blinds %f/%f", h.Name, h.Blinds.Small, h.Blinds.Big)
	}
	if h.StartingStack < h.Blinds.Big {
		return fmt.Errorf("ruleset %q: starting stack %f cannot post the big blind %f", h.Name, h.StartingStack, h.Blinds.Big)
	}
	if len(h.Betsizes) == 0 {
		return fmt.Errorf("ruleset %q: empty bet-size menu", h.Name)
	}
	if h.BetType != BETTYPE_LIMIT && h.BetType != BETTYPE_POT {
		return fmt.Errorf("ruleset %q: unknown bet type %d", h.Name, h.BetType)
	}
	if h.BetsPerStreet < 1 {
		return fmt.Errorf("ruleset %q: bets per street must be at least 1, got %d", h.Name, h.BetsPerStreet)
	}
	if h.NumStreets < 1 || h.StartingStreet < 0 || h.StartingStreet >= h.NumStreets {
		return fmt.Errorf("ruleset %q: bad street bounds (%d streets, starting %d)", h.Name, h.NumStreets, h.StartingStreet)
	}
	if int32(len(h.BoardCards)) != h.NumStreets {
		return fmt.Errorf("ruleset %q: board schedule needs one entry per street", h.Name)
	}
	if h.CardsPerPlayer < 1 {
		return fmt.Errorf("ruleset %q: cards per player must be at least 1", h.Name)
	}
	if len(h.Ranks) == 0 {
		return fmt.Errorf("ruleset %q: empty rank set", h.Name)
	}
	deckSize := int32(len(h.Ranks))
	if h.Suits != nil {
		deckSize *= int32(len(h.Suits))
	}
	board := int32(0)
	for _, n := range h.BoardCards {
		board += n
	}
	if h.NumPlayers*h.CardsPerPlayer+board > deckSize {
		return fmt.Errorf("ruleset %q: deck of %d cannot cover %d players and the board", h.Name, deckSize, h.NumPlayers)
	}
	if h.LiveBlinds && h.NumPlayers != 2 {
		return fmt.Errorf("ruleset %q: live blinds are heads-up only", h.Name)
	}
	if h.BetsPerStreet == 1 && h.NumPlayers != 2 {
		return fmt.Errorf("ruleset %q: single-bet streets are heads-up only", h.Name)
	}
	return nil
}

// streetCloser is the termination predicate over the current street's
// betting history. The variant is fixed once at ruleset load.
// actionable lists the seats still able to act (unfolded, not all-in)
// after the latest action was applied.
type streetCloser interface {
	Over(h *History, actionable []Position) bool
}

// twoActionCloser closes the street the instant the last action is a
// fold, call or check: heads-up single-betting-round games with one
// decision point per player.
type twoActionCloser struct{}

func (twoActionCloser) Over(h *History, actionable []Position) bool {
	last := h.LastAction()
	return last == ACTION_FOLD || last == ACTION_CALL || last == ACTION_CHECK
}

// multiActionCloser handles open-ended raising for any seat count. The
// street is over once every seat that can still act has acted since the
// most recent bet or raise (or since the street opened, when nobody has
// bet) and the action on it is closed, i.e. the last action is passive.
// Live blinds need no special case: the blind seats stay in actionable
// until they exercise their option. A fold never closes the street by
// itself; the hand-ending fold (one active seat left) is resolved by
// the engine before the predicate is consulted.
type multiActionCloser struct{}

func (multiActionCloser) Over(h *History, actionable []Position) bool {
	last := h.LastAction()
	if last == ACTION_UNOPENED || last == ACTION_BET || last == ACTION_RAISE {
		return false
	}
	points := h.points
	acted := make(map[Position]bool, len(points))
	for i := len(points) - 1; i >= 0; i-- {
		acted[points[i].Position] = true
		if points[i].Action == ACTION_BET || points[i].Action == ACTION_RAISE {
			break
		}
	}
	for _, position := range actionable {
		if !acted[position] {
			return false
		}
	}
	return true
}

// actionMaskDict maps the most recent action to the legal follow-ups.
// Rows are bit-vectors over {check, fold, call, bet, raise}.
var actionMaskDict = map[Action][]int32{
	ACTION_UNOPENED: {1, 0, 0, 1, 0},
	ACTION_CHECK:    {1, 0, 0, 1, 0},
	ACTION_CALL:     {1, 0, 0, 0, 1},
	ACTION_BET:      {0, 1, 1, 0, 1},
	ACTION_RAISE:    {0, 1, 1, 0, 1},
	ACTION_FOLD:     {0, 0, 0, 0, 0},
}

// Facing live blinds the unopened seat completes, raises or folds.
var liveBlindOpenMask = []int32{0, 1, 1, 0, 1}

// Rules is the termination predicate and mask generator for one
// ruleset, with the closer variant resolved at load time.
type Rules struct {
	set  *Ruleset
	over streetCloser
}

func NewRules(set *Ruleset) (*Rules, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	h := &Rules{set: set}
	if set.BetsPerStreet == 1 {
		h.over = twoActionCloser{}
	} else {
		h.over = multiActionCloser{}
	}
	return h, nil
}

func (h *Rules) Set() *Ruleset {
	return h.set
}

// Over asks the termination predicate whether the street is finished.
// actionable are the seats still able to act after the latest action.
func (h *Rules) Over(hist *History, actionable []Position) bool {
	return h.over.Over(hist, actionable)
}

// LegalActionMask is a pure function of the most recent action and the
// street's aggression count. streetBets counts bets plus raises for the
// per-street cap.
func (h *Rules) LegalActionMask(street int32, lastAction Action, streetBets int32) []int32 {
	src, ok := actionMaskDict[lastAction]
	if !ok {
		panic(fmt.Sprintf("no mask row for action %d", lastAction))
	}
	if lastAction == ACTION_UNOPENED && h.set.LiveBlinds && street == h.set.StartingStreet {
		src = liveBlindOpenMask
	}
	mask := make([]int32, NUM_ACTIONS)
	copy(mask, src)
	if streetBets >= h.set.BetsPerStreet {
		mask[ACTION_BET] = 0
		mask[ACTION_RAISE] = 0
	}
	return mask
}

// BetAmount converts a bet-size menu index into chips on top of the
// caller's current street total. Pot-relative sizes are computed on the
// pot as it stands after the call, fixed-limit sizes are big-blind
// multiples.
func (h *Rules) BetAmount(idx int32, pot float32, callAmount float32) float32 {
	frac := h.set.Betsizes[idx]
	if h.set.BetType == BETTYPE_LIMIT {
		return callAmount + frac*h.set.Blinds.Big
	}
	potAfterCall := pot + callAmount
	return callAmount + frac*potAfterCall
}

// BetsizeMask restricts the menu to sizes the acting stack can cover.
// A size must also put in more than a flat call to count as aggression.
// If nothing fits, every size is permitted: the degenerate mask falls
// back to all-legal rather than deadlocking the decision.
func (h *Rules) BetsizeMask(stack float32, pot float32, callAmount float32) []int32 {
	mask := make([]int32, len(h.set.Betsizes))
	legal := 0
	for i := range h.set.Betsizes {
		total := h.BetAmount(int32(i), pot, callAmount)
		if total <= stack && total > callAmount {
			mask[i] = 1
			legal++
		}
	}
	if legal == 0 {
		for i := range mask {
			mask[i] = 1
		}
	}
	return mask
}
