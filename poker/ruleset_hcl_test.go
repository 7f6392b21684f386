package poker

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRuleset(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.hcl")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRuleset(t *testing.T) {
	path := writeRuleset(t, `
game "test_limit" {
  bet_type        = "limit"
  betsizes        = [1.0, 2.0]
  small_blind     = 1
  big_blind       = 2
  bets_per_street = 4
  streets         = 4
  players         = 2
  cards_per_player = 2
  starting_stack  = 100
  ranks           = 13
  suits           = 4
  board_cards     = [0, 3, 1, 1]
  live_blinds     = true
}
`)
	set, err := LoadRuleset(path)
	if err != nil {
		t.Fatal(err)
	}
	if set.Name != "test_limit" {
		t.Fatalf("name = %q", set.Name)
	}
	if set.BetType != BETTYPE_LIMIT || !set.LiveBlinds {
		t.Fatal("bet type or blind mode lost in decoding")
	}
	if len(set.Ranks) != 13 || len(set.Suits) != 4 {
		t.Fatalf("deck decoded as %d ranks x %d suits", len(set.Ranks), len(set.Suits))
	}
	if len(set.Betsizes) != 2 || set.Betsizes[1] != 2.0 {
		t.Fatalf("betsizes = %v", set.Betsizes)
	}
	if set.BoardCards[1] != 3 {
		t.Fatalf("board schedule = %v", set.BoardCards)
	}
	if set.Blinds.Small != 1 || set.Blinds.Big != 2 {
		t.Fatalf("blinds = %+v", set.Blinds)
	}
}

func TestLoadRulesetSuitless(t *testing.T) {
	path := writeRuleset(t, `
game "mini" {
  bet_type        = "limit"
  betsizes        = [1.0]
  small_blind     = 1
  big_blind       = 2
  bets_per_street = 1
  streets         = 1
  players         = 2
  cards_per_player = 1
  starting_stack  = 50
  ranks           = 3
  board_cards     = [0]
}
`)
	set, err := LoadRuleset(path)
	if err != nil {
		t.Fatal(err)
	}
	if set.Suits != nil {
		t.Fatal("omitted suits must decode as a suitless deck")
	}
	if set.LiveBlinds {
		t.Fatal("omitted live_blinds must default to dead blinds")
	}
}

func TestLoadRulesetBadBetType(t *testing.T) {
	path := writeRuleset(t, `
game "broken" {
  bet_type        = "nolimit"
  betsizes        = [1.0]
  small_blind     = 1
  big_blind       = 2
  bets_per_street = 1
  streets         = 1
  players         = 2
  cards_per_player = 1
  starting_stack  = 50
  ranks           = 3
  board_cards     = [0]
}
`)
	if _, err := LoadRuleset(path); err == nil {
		t.Fatal("expected error for unknown bet type")
	}
}

func TestLoadRulesetInvalidConfig(t *testing.T) {
	// Starting stack cannot post the big blind.
	path := writeRuleset(t, `
game "broke" {
  bet_type        = "limit"
  betsizes        = [1.0]
  small_blind     = 1
  big_blind       = 2
  bets_per_street = 1
  streets         = 1
  players         = 2
  cards_per_player = 1
  starting_stack  = 1
  ranks           = 3
  board_cards     = [0]
}
`)
	if _, err := LoadRuleset(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadRulesetMissingFile(t *testing.T) {
	if _, err := LoadRuleset(filepath.Join(t.TempDir(), "nope.hcl")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRulesetByName(t *testing.T) {
	for _, name := range []string{"kuhn", "limit_holdem"} {
		set, err := RulesetByName(name)
		if err != nil {
			t.Fatal(err)
		}
		if set.Name != name {
			t.Fatalf("resolved %q for %q", set.Name, name)
		}
	}
	if _, err := RulesetByName("omaha"); err == nil {
		t.Fatal("expected error for unknown ruleset")
	}
}
