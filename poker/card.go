package poker

import "fmt"

// SUIT_NONE marks cards from suitless decks (Kuhn-style games).
const SUIT_NONE = int16(-1)

// Card is immutable once dealt. Rank is a 0-based ordinal
// (0 = deuce .. 12 = ace for a standard deck).
type Card struct {
	Rank int16
	Suit int16
}

var rankGlyphs = "23456789TJQKA"
var suitGlyphs = "cdhs"

func (c Card) String() string {
	if c.Suit == SUIT_NONE {
		return fmt.Sprintf("R%d", c.Rank)
	}
	if int(c.Rank) < len(rankGlyphs) && int(c.Suit) < len(suitGlyphs) {
		return fmt.Sprintf("%c%c", rankGlyphs[c.Rank], suitGlyphs[c.Suit])
	}
	return fmt.Sprintf("R%dS%d", c.Rank, c.Suit)
}
