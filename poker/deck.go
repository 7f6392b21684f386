package poker

import "math/rand"

// Deck holds the remaining cards for one hand. It is reconstructed and
// shuffled at every hand start and drained only through Deal, so no two
// cards with the same (rank, suit) can coexist.
type Deck struct {
	ranks   []int16
	suits   []int16
	cards   []Card
	randGen *rand.Rand
}

func NewDeck(ranks []int16, suits []int16, randGen *rand.Rand) *Deck {
	h := &Deck{
		ranks:   ranks,
		suits:   suits,
		randGen: randGen,
	}
	h.Reset()
	return h
}

// Reset rebuilds the full deck and shuffles it.
func (h *Deck) Reset() {
	h.cards = h.cards[:0]
	if h.suits == nil {
		for _, rank := range h.ranks {
			h.cards = append(h.cards, Card{Rank: rank, Suit: SUIT_NONE})
		}
	} else {
		for _, suit := range h.suits {
			for _, rank := range h.ranks {
				h.cards = append(h.cards, Card{Rank: rank, Suit: suit})
			}
		}
	}
	h.randGen.Shuffle(len(h.cards), func(i, j int) {
		h.cards[i], h.cards[j] = h.cards[j], h.cards[i]
	})
}

// Deal pops n cards from the end of the deck.
func (h *Deck) Deal(n int) []Card {
	if n > len(h.cards) {
		panic("deal from an exhausted deck")
	}
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = h.cards[len(h.cards)-1]
		h.cards = h.cards[:len(h.cards)-1]
	}
	return cards
}

func (h *Deck) Remaining() int {
	return len(h.cards)
}
