package poker

type Action = int32

const (
	ACTION_CHECK    = Action(0)
	ACTION_FOLD     = Action(1)
	ACTION_CALL     = Action(2)
	ACTION_BET      = Action(3)
	ACTION_RAISE    = Action(4)
	ACTION_UNOPENED = Action(5)
)

// NUM_ACTIONS is the size of the action space an actor chooses from.
// ACTION_UNOPENED is a history sentinel only and is never chosen.
const NUM_ACTIONS = 5

var Action2string = map[Action]string{
	ACTION_CHECK:    "CHECK",
	ACTION_FOLD:     "FOLD",
	ACTION_CALL:     "CALL",
	ACTION_BET:      "BET",
	ACTION_RAISE:    "RAISE",
	ACTION_UNOPENED: "UNOPENED",
}

type Position = int32

const (
	POSITION_SB  = Position(0)
	POSITION_BB  = Position(1)
	POSITION_BTN = Position(2)
	POSITION_CO  = Position(3)
)

var Position2string = map[Position]string{
	POSITION_SB:  "SB",
	POSITION_BB:  "BB",
	POSITION_BTN: "BTN",
	POSITION_CO:  "CO",
}

// SeatingForPlayers fixes the initial seating order by player count.
// Seats are the compact indices 0..n-1; turn order rotates over them.
func SeatingForPlayers(n int32) []Position {
	seats := make([]Position, n)
	for i := range seats {
		seats[i] = Position(i)
	}
	return seats
}

type BetType = int32

const (
	BETTYPE_LIMIT = BetType(0)
	BETTYPE_POT   = BetType(1)
)

var BetType2string = map[BetType]string{
	BETTYPE_LIMIT: "LIMIT",
	BETTYPE_POT:   "POT",
}

var Street2string = map[int32]string{
	0: "PREFLOP",
	1: "FLOP",
	2: "TURN",
	3: "RIVER",
}
