package poker

import "testing"

func TestHighCardEvaluator(t *testing.T) {
	eval := HighCardEvaluator{}
	high := []Card{{Rank: 2, Suit: SUIT_NONE}}
	low := []Card{{Rank: 0, Suit: SUIT_NONE}}
	if eval.Rank(high, nil) <= eval.Rank(low, nil) {
		t.Fatal("higher card must outrank lower card")
	}
	if eval.Rank(high, nil) != eval.Rank(high, nil) {
		t.Fatal("equal hands must tie exactly")
	}
}

func TestHoldemEvaluatorOrdering(t *testing.T) {
	eval := HoldemEvaluator{}
	board := []Card{
		{Rank: 0, Suit: 2},
		{Rank: 2, Suit: 3},
		{Rank: 4, Suit: 2},
		{Rank: 6, Suit: 3},
		{Rank: 8, Suit: 2},
	}
	aces := []Card{{Rank: 12, Suit: 0}, {Rank: 12, Suit: 1}}
	kings := []Card{{Rank: 11, Suit: 0}, {Rank: 11, Suit: 1}}

	if eval.Rank(aces, board) <= eval.Rank(kings, board) {
		t.Fatal("aces must outrank kings on the same board")
	}
}

func TestHoldemEvaluatorExactTie(t *testing.T) {
	eval := HoldemEvaluator{}
	board := []Card{
		{Rank: 0, Suit: 2},
		{Rank: 2, Suit: 3},
		{Rank: 4, Suit: 2},
		{Rank: 6, Suit: 3},
		{Rank: 8, Suit: 2},
	}
	a := []Card{{Rank: 12, Suit: 0}, {Rank: 11, Suit: 0}}
	b := []Card{{Rank: 12, Suit: 1}, {Rank: 11, Suit: 1}}

	if eval.Rank(a, board) != eval.Rank(b, board) {
		t.Fatal("rank-identical hands must score identically")
	}
}

func TestHoldemEvaluatorPartialBoard(t *testing.T) {
	eval := HoldemEvaluator{}
	hole := []Card{{Rank: 12, Suit: 0}, {Rank: 12, Suit: 1}}
	board := []Card{
		{Rank: 11, Suit: 2},
		{Rank: 9, Suit: 3},
		{Rank: 7, Suit: 2},
		{Rank: 5, Suit: 3},
	}

	// Adding a card can only improve or preserve the best five.
	six := eval.Rank(hole, board)
	five := eval.Rank(hole, board[:3])
	if six < five {
		t.Fatalf("six-card rank %d below its five-card subset %d", six, five)
	}
}

func TestEvaluatorForRuleset(t *testing.T) {
	if _, ok := EvaluatorForRuleset(KuhnRuleset()).(HighCardEvaluator); !ok {
		t.Fatal("suitless decks rank by high card")
	}
	if _, ok := EvaluatorForRuleset(LimitHoldemRuleset()).(HoldemEvaluator); !ok {
		t.Fatal("suited decks rank by poker hand value")
	}
}
