package poker

import (
	ph "github.com/paulhankin/poker"
)

// Evaluator is the ranking oracle consumed at showdown. Higher scores
// win; a tie is exact score equality.
type Evaluator interface {
	Rank(hole []Card, board []Card) int32
}

// HighCardEvaluator ranks a hand by its single highest card rank.
// Sufficient for Kuhn-style games with suitless one-card hands.
type HighCardEvaluator struct{}

func (HighCardEvaluator) Rank(hole []Card, board []Card) int32 {
	best := int32(-1)
	for _, c := range hole {
		if int32(c.Rank) > best {
			best = int32(c.Rank)
		}
	}
	for _, c := range board {
		if int32(c.Rank) > best {
			best = int32(c.Rank)
		}
	}
	return best
}

// HoldemEvaluator scores hole+board with the paulhankin evaluator.
type HoldemEvaluator struct{}

var phSuits = [4]ph.Suit{ph.Club, ph.Diamond, ph.Heart, ph.Spade}

// Engine ranks are 0..12 with 12 = ace; the library uses 1..13 with
// ace = 1.
func toPH(c Card) ph.Card {
	var r ph.Rank
	if c.Rank == 12 {
		r = ph.Rank(1)
	} else {
		r = ph.Rank(c.Rank + 2)
	}
	card, err := ph.MakeCard(phSuits[c.Suit], r)
	if err != nil {
		panic(err)
	}
	return card
}

func (HoldemEvaluator) Rank(hole []Card, board []Card) int32 {
	cards := make([]ph.Card, 0, len(hole)+len(board))
	for _, c := range hole {
		cards = append(cards, toPH(c))
	}
	for _, c := range board {
		cards = append(cards, toPH(c))
	}
	switch len(cards) {
	case 7:
		var a7 [7]ph.Card
		copy(a7[:], cards)
		return int32(ph.Eval7(&a7))
	case 5:
		var a5 [5]ph.Card
		copy(a5[:], cards)
		return int32(ph.Eval5(&a5))
	case 3:
		var a3 [3]ph.Card
		copy(a3[:], cards)
		return int32(ph.Eval3(&a3))
	default:
		return int32(bestFiveOf(cards))
	}
}

// bestFiveOf picks the strongest 5-card subset for the in-between board
// sizes (e.g. an all-in before the river with 6 cards out).
func bestFiveOf(cards []ph.Card) int16 {
	n := len(cards)
	if n < 5 {
		panic("need at least 5 cards to evaluate")
	}
	best := int16(-1)
	var choose [5]int
	var five [5]ph.Card
	var rec func(start, k int)
	rec = func(start, k int) {
		if k == 5 {
			for i := 0; i < 5; i++ {
				five[i] = cards[choose[i]]
			}
			if score := ph.Eval5(&five); score > best {
				best = score
			}
			return
		}
		for i := start; i <= n-(5-k); i++ {
			choose[k] = i
			rec(i+1, k+1)
		}
	}
	rec(0, 0)
	return best
}

// EvaluatorForRuleset picks the oracle matching a game definition:
// suitless decks rank by high card, suited decks by poker hand value.
func EvaluatorForRuleset(set *Ruleset) Evaluator {
	if set.Suits == nil {
		return HighCardEvaluator{}
	}
	return HoldemEvaluator{}
}
