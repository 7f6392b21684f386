package poker

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

type rulesetFile struct {
	Game rulesetBlock `hcl:"game,block"`
}

type rulesetBlock struct {
	Name           string    `hcl:"name,label"`
	BetType        string    `hcl:"bet_type"`
	Betsizes       []float64 `hcl:"betsizes"`
	SmallBlind     float64   `hcl:"small_blind"`
	BigBlind       float64   `hcl:"big_blind"`
	BetsPerStreet  int       `hcl:"bets_per_street"`
	NumStreets     int       `hcl:"streets"`
	StartingStreet int       `hcl:"starting_street,optional"`
	NumPlayers     int       `hcl:"players"`
	CardsPerPlayer int       `hcl:"cards_per_player"`
	StartingStack  float64   `hcl:"starting_stack"`
	Ranks          int       `hcl:"ranks"`
	Suits          int       `hcl:"suits,optional"`
	BoardCards     []int     `hcl:"board_cards"`
	LiveBlinds     bool      `hcl:"live_blinds,optional"`
}

// LoadRuleset reads a game definition from an HCL file. Malformed
// rulesets fail here, before any engine state is built.
func LoadRuleset(path string) (*Ruleset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("ruleset file %s: %w", path, err)
	}
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse ruleset %s: %s", path, diags.Error())
	}
	var raw rulesetFile
	if diags := gohcl.DecodeBody(f.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decode ruleset %s: %s", path, diags.Error())
	}
	set, err := raw.Game.toRuleset()
	if err != nil {
		return nil, err
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

func (b rulesetBlock) toRuleset() (*Ruleset, error) {
	var betType BetType
	switch b.BetType {
	case "limit":
		betType = BETTYPE_LIMIT
	case "pot":
		betType = BETTYPE_POT
	default:
		return nil, fmt.Errorf("ruleset %q: unknown bet type %q", b.Name, b.BetType)
	}
	set := &Ruleset{
		Name:           b.Name,
		BetType:        betType,
		Blinds:         Blinds{Small: float32(b.SmallBlind), Big: float32(b.BigBlind)},
		BetsPerStreet:  int32(b.BetsPerStreet),
		NumStreets:     int32(b.NumStreets),
		StartingStreet: int32(b.StartingStreet),
		NumPlayers:     int32(b.NumPlayers),
		CardsPerPlayer: int32(b.CardsPerPlayer),
		StartingStack:  float32(b.StartingStack),
		LiveBlinds:     b.LiveBlinds,
	}
	for _, s := range b.Betsizes {
		set.Betsizes = append(set.Betsizes, float32(s))
	}
	for r := 0; r < b.Ranks; r++ {
		set.Ranks = append(set.Ranks, int16(r))
	}
	if b.Suits > 0 {
		for s := 0; s < b.Suits; s++ {
			set.Suits = append(set.Suits, int16(s))
		}
	}
	for _, n := range b.BoardCards {
		set.BoardCards = append(set.BoardCards, int32(n))
	}
	return set, nil
}

// KuhnRuleset is the simplified one-shot game: three suitless ranks,
// one card each, one street, one decision point per player.
func KuhnRuleset() *Ruleset {
	return &Ruleset{
		Name:           "kuhn",
		BetType:        BETTYPE_LIMIT,
		Betsizes:       []float32{1.0},
		Blinds:         Blinds{Small: 1, Big: 2},
		BetsPerStreet:  1,
		NumStreets:     1,
		StartingStreet: 0,
		NumPlayers:     2,
		CardsPerPlayer: 1,
		StartingStack:  100,
		Ranks:          []int16{0, 1, 2},
		Suits:          nil,
		BoardCards:     []int32{0},
	}
}

// LimitHoldemRuleset is heads-up fixed-limit Texas hold'em over four
// streets with live blinds.
func LimitHoldemRuleset() *Ruleset {
	ranks := make([]int16, 13)
	for i := range ranks {
		ranks[i] = int16(i)
	}
	return &Ruleset{
		Name:           "limit_holdem",
		BetType:        BETTYPE_LIMIT,
		Betsizes:       []float32{1.0, 2.0},
		Blinds:         Blinds{Small: 1, Big: 2},
		BetsPerStreet:  4,
		NumStreets:     4,
		StartingStreet: 0,
		NumPlayers:     2,
		CardsPerPlayer: 2,
		StartingStack:  100,
		Ranks:          ranks,
		Suits:          []int16{0, 1, 2, 3},
		BoardCards:     []int32{0, 3, 1, 1},
		LiveBlinds:     true,
	}
}

// RulesetByName resolves the builtin game definitions.
func RulesetByName(name string) (*Ruleset, error) {
	switch name {
	case "kuhn":
		return KuhnRuleset(), nil
	case "limit_holdem":
		return LimitHoldemRuleset(), nil
	default:
		return nil, fmt.Errorf("unknown builtin ruleset %q", name)
	}
}
