package poker

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

// tieEvaluator scores every hand equally, forcing showdown splits.
type tieEvaluator struct{}

func (tieEvaluator) Rank(hole []Card, board []Card) int32 { return 0 }

// singleStreetRuleset is a minimal heads-up game with dead blinds and
// one open betting round, handy for scripting exact action sequences.
func singleStreetRuleset() *Ruleset {
	return &Ruleset{
		Name:           "single_street",
		BetType:        BETTYPE_LIMIT,
		Betsizes:       []float32{1.0},
		Blinds:         Blinds{Small: 1, Big: 2},
		BetsPerStreet:  2,
		NumStreets:     1,
		StartingStreet: 0,
		NumPlayers:     2,
		CardsPerPlayer: 1,
		StartingStack:  100,
		Ranks:          []int16{0, 1, 2, 3, 4},
		Suits:          nil,
		BoardCards:     []int32{0},
	}
}

func act(a Action) *ActorOutput {
	return &ActorOutput{Action: a, ActionProb: 1, BetsizeProb: 1}
}

func TestGameCheckCheckSplitsPot(t *testing.T) {
	game, err := NewGame(singleStreetRuleset(), tieEvaluator{}, 7)
	if err != nil {
		t.Fatal(err)
	}

	res := game.Reset()
	if res.Done {
		t.Fatal("fresh hand already done")
	}
	if game.CurrentPlayer() != POSITION_SB {
		t.Fatalf("dead blinds open on SB, got %d", game.CurrentPlayer())
	}
	wantMask := []int32{1, 0, 0, 1, 0}
	for i := range wantMask {
		if res.ActionMask[i] != wantMask[i] {
			t.Fatalf("opening mask = %v, want %v", res.ActionMask, wantMask)
		}
	}

	res = game.Step(act(ACTION_CHECK))
	if res.Done {
		t.Fatal("hand ended after a single check")
	}
	res = game.Step(act(ACTION_CHECK))
	if !res.Done || !game.IsOver() {
		t.Fatal("check-check must close the only street")
	}

	// Pot of 3 split between tied seats: SB nets +0.5, BB nets -0.5.
	rewards := game.Rewards()
	if math.Abs(float64(rewards[POSITION_SB]-0.5)) > 1e-4 {
		t.Fatalf("SB reward = %f, want +0.5", rewards[POSITION_SB])
	}
	if math.Abs(float64(rewards[POSITION_BB]+0.5)) > 1e-4 {
		t.Fatalf("BB reward = %f, want -0.5", rewards[POSITION_BB])
	}
	if math.Abs(float64(rewards[0]+rewards[1])) > 1e-4 {
		t.Fatalf("rewards not zero sum: %v", rewards)
	}
}

func TestGameBetFoldAwardsPot(t *testing.T) {
	game, err := NewGame(singleStreetRuleset(), tieEvaluator{}, 7)
	if err != nil {
		t.Fatal(err)
	}

	game.Reset()
	res := game.Step(&ActorOutput{Action: ACTION_BET, Betsize: 0, ActionProb: 1, BetsizeProb: 1})
	wantMask := []int32{0, 1, 1, 0, 1}
	for i := range wantMask {
		if res.ActionMask[i] != wantMask[i] {
			t.Fatalf("facing-bet mask = %v, want %v", res.ActionMask, wantMask)
		}
	}

	res = game.Step(act(ACTION_FOLD))
	if !res.Done {
		t.Fatal("fold to a bet must end the hand")
	}

	// SB posted 1, bet 2, takes back the 5-chip pot: net +2.
	rewards := game.Rewards()
	if math.Abs(float64(rewards[POSITION_SB]-2)) > 1e-4 {
		t.Fatalf("SB reward = %f, want +2", rewards[POSITION_SB])
	}
	if math.Abs(float64(rewards[POSITION_BB]+2)) > 1e-4 {
		t.Fatalf("BB reward = %f, want -2", rewards[POSITION_BB])
	}
}

func TestGameBetCallShowdown(t *testing.T) {
	game, err := NewGame(singleStreetRuleset(), tieEvaluator{}, 7)
	if err != nil {
		t.Fatal(err)
	}

	game.Reset()
	game.Step(&ActorOutput{Action: ACTION_BET, Betsize: 0, ActionProb: 1, BetsizeProb: 1})
	res := game.Step(act(ACTION_CALL))
	if !res.Done {
		t.Fatal("bet-call must close the only street")
	}

	// Pot of 7 split on the tie: SB put in 3, gets 3.5 back.
	rewards := game.Rewards()
	if math.Abs(float64(rewards[POSITION_SB]-0.5)) > 1e-4 {
		t.Fatalf("SB reward = %f, want +0.5", rewards[POSITION_SB])
	}
	if math.Abs(float64(rewards[POSITION_SB]+rewards[POSITION_BB])) > 1e-4 {
		t.Fatalf("rewards not zero sum: %v", rewards)
	}
}

func TestGameIllegalActionPanics(t *testing.T) {
	game, err := NewGame(singleStreetRuleset(), tieEvaluator{}, 7)
	if err != nil {
		t.Fatal(err)
	}
	game.Reset()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on a masked-out action")
		}
	}()
	// Dead blinds open check-or-bet; a fold is masked out.
	game.Step(act(ACTION_FOLD))
}

func TestGameStepAfterEndPanics(t *testing.T) {
	game, err := NewGame(singleStreetRuleset(), tieEvaluator{}, 7)
	if err != nil {
		t.Fatal(err)
	}
	game.Reset()
	game.Step(act(ACTION_CHECK))
	game.Step(act(ACTION_CHECK))

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on stepping a finished hand")
		}
	}()
	game.Step(act(ACTION_CHECK))
}

func TestGameRewardsBeforeEndPanics(t *testing.T) {
	game, err := NewGame(singleStreetRuleset(), tieEvaluator{}, 7)
	if err != nil {
		t.Fatal(err)
	}
	game.Reset()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on rewards before hand end")
		}
	}()
	game.Rewards()
}

func TestGameResidualGoesToFirstWinner(t *testing.T) {
	set := singleStreetRuleset()
	set.NumPlayers = 3
	set.Blinds = Blinds{Small: 0, Big: 2}
	game, err := NewGame(set, tieEvaluator{}, 7)
	if err != nil {
		t.Fatal(err)
	}

	game.Reset()
	res := game.Step(act(ACTION_CHECK))
	res = game.Step(act(ACTION_CHECK))
	if res.Done {
		t.Fatal("street closed with the button still to act")
	}
	res = game.Step(act(ACTION_CHECK))
	if !res.Done {
		t.Fatal("checking through all three seats must close the only street")
	}

	// A 2-chip pot over three tied winners cannot split evenly; the
	// first winner in seat order absorbs the rounding so every chip is
	// paid out.
	rewards := game.Rewards()
	sum := float64(0)
	for _, r := range rewards {
		sum += float64(r)
	}
	if math.Abs(sum) > 1e-4 {
		t.Fatalf("rewards not zero sum: %v", rewards)
	}
	share := float32(2.0 / 3.0)
	if rewards[POSITION_BTN] <= 0 || math.Abs(float64(rewards[POSITION_BTN]-share)) > 1e-4 {
		t.Fatalf("BTN share = %f, want about %f", rewards[POSITION_BTN], share)
	}
}

func TestGameFoldKeepsStreetOpenThreeHanded(t *testing.T) {
	set := singleStreetRuleset()
	set.NumPlayers = 3
	game, err := NewGame(set, tieEvaluator{}, 7)
	if err != nil {
		t.Fatal(err)
	}

	game.Reset()
	game.Step(&ActorOutput{Action: ACTION_BET, Betsize: 0, ActionProb: 1, BetsizeProb: 1})
	res := game.Step(act(ACTION_FOLD))
	if res.Done {
		t.Fatal("hand ended with the button still owed a decision")
	}
	if game.CurrentPlayer() != POSITION_BTN {
		t.Fatalf("current player = %d, want the button", game.CurrentPlayer())
	}

	// The button faces the bet behind the fold, not the fold itself.
	wantMask := []int32{0, 1, 1, 0, 1}
	for i := range wantMask {
		if res.ActionMask[i] != wantMask[i] {
			t.Fatalf("button mask = %v, want %v", res.ActionMask, wantMask)
		}
	}

	res = game.Step(act(ACTION_CALL))
	if !res.Done {
		t.Fatal("street must close once the button responds to the bet")
	}

	// Dead blinds 1+2, SB bets 2, BTN calls 2: a 7-chip pot split on the
	// tie between SB and BTN. SB nets +0.5, BTN +1.5, BB loses the blind.
	rewards := game.Rewards()
	if math.Abs(float64(rewards[POSITION_SB]-0.5)) > 1e-4 {
		t.Fatalf("SB reward = %f, want +0.5", rewards[POSITION_SB])
	}
	if math.Abs(float64(rewards[POSITION_BB]+2)) > 1e-4 {
		t.Fatalf("BB reward = %f, want -2", rewards[POSITION_BB])
	}
	if math.Abs(float64(rewards[POSITION_BTN]-1.5)) > 1e-4 {
		t.Fatalf("BTN reward = %f, want +1.5", rewards[POSITION_BTN])
	}
}

func TestGameHandIdentityRotates(t *testing.T) {
	game, err := NewGame(singleStreetRuleset(), tieEvaluator{}, 7)
	if err != nil {
		t.Fatal(err)
	}

	game.Reset()
	first := game.HandID()
	if game.HandNumber() != 1 {
		t.Fatalf("hand number = %d, want 1", game.HandNumber())
	}
	game.Step(act(ACTION_CHECK))
	game.Step(act(ACTION_CHECK))
	log := game.HandLog()
	if len(log) != 2 {
		t.Fatalf("hand log has %d entries, want 2", len(log))
	}

	game.Reset()
	if game.HandID() == first {
		t.Fatal("hand id must rotate on reset")
	}
	if game.HandNumber() != 2 {
		t.Fatalf("hand number = %d, want 2", game.HandNumber())
	}
	if len(game.HandLog()) != 0 {
		t.Fatal("hand log must clear on reset")
	}
}

func TestGameEpisodesRecordDecisions(t *testing.T) {
	game, err := NewGame(singleStreetRuleset(), tieEvaluator{}, 7)
	if err != nil {
		t.Fatal(err)
	}
	game.Reset()
	game.Step(&ActorOutput{Action: ACTION_BET, Betsize: 0, ActionProb: 1, BetsizeProb: 1})
	game.Step(act(ACTION_CALL))

	inputs := game.Inputs()
	if len(inputs) != 2 {
		t.Fatalf("inputs has %d seats, want 2", len(inputs))
	}
	for position, ep := range inputs {
		if ep.Len() != 1 {
			t.Fatalf("seat %d has %d decisions, want 1", position, ep.Len())
		}
		if len(ep.Rewards) != ep.Len() {
			t.Fatalf("seat %d rewards len %d != decisions %d", position, len(ep.Rewards), ep.Len())
		}
		if ep.ActionMasks[0][ep.Actions[0]] != 1 {
			t.Fatalf("seat %d recorded an action its own mask forbids", position)
		}
		if len(ep.States[0].Hole) == 0 {
			t.Fatalf("seat %d state snapshot lost its hole cards", position)
		}
		if len(ep.Observations[0].Board) != 0 {
			t.Fatal("one-street game observed a board")
		}
	}
}

func TestGameConservation(t *testing.T) {
	threeHanded := LimitHoldemRuleset()
	threeHanded.Name = "limit_holdem_3max"
	threeHanded.NumPlayers = 3
	threeHanded.LiveBlinds = false
	sets := []*Ruleset{KuhnRuleset(), LimitHoldemRuleset(), threeHanded}
	for _, set := range sets {
		game, err := NewGame(set, EvaluatorForRuleset(set), 42)
		if err != nil {
			t.Fatal(err)
		}
		actor := NewRandomActor(rand.New(rand.NewSource(42)))
		total := float64(set.StartingStack) * float64(set.NumPlayers)

		for hand := 0; hand < 2000; hand++ {
			res := game.Reset()
			for !res.Done {
				out, err := actor.Act(res.State, res.ActionMask, res.BetsizeMask)
				if err != nil {
					t.Fatalf("%s: actor failed: %v", set.Name, err)
				}
				res = game.Step(out)
			}

			stacks := game.Players().Stacks()
			sum := float64(0)
			for _, s := range stacks {
				sum += float64(s)
			}
			if math.Abs(sum-total) > 1e-2 {
				t.Fatalf("%s hand %d: chips not conserved, stacks sum %f want %f",
					set.Name, hand, sum, total)
			}

			rewardSum := float64(0)
			for _, r := range game.Rewards() {
				rewardSum += float64(r)
			}
			if math.Abs(rewardSum) > 1e-2 {
				t.Fatalf("%s hand %d: rewards not zero sum: %f", set.Name, hand, rewardSum)
			}

			for position, ep := range game.Inputs() {
				if len(ep.Rewards) != ep.Len() {
					t.Fatalf("%s hand %d seat %d: rewards len %d != decisions %d",
						set.Name, hand, position, len(ep.Rewards), ep.Len())
				}
			}
		}
	}
}

func TestGameAllinRunsOutBoard(t *testing.T) {
	set := &Ruleset{
		Name:           "shallow_pot",
		BetType:        BETTYPE_POT,
		Betsizes:       []float32{5.0},
		Blinds:         Blinds{Small: 1, Big: 2},
		BetsPerStreet:  2,
		NumStreets:     2,
		StartingStreet: 0,
		NumPlayers:     2,
		CardsPerPlayer: 1,
		StartingStack:  10,
		Ranks:          standardRanks(),
		Suits:          nil,
		BoardCards:     []int32{0, 2},
	}
	game, err := NewGame(set, tieEvaluator{}, 7)
	if err != nil {
		t.Fatal(err)
	}

	game.Reset()
	// The 5x pot size exceeds the stack, so the bet clamps all-in and the
	// degenerate bet-size mask falls back to all-legal.
	res := game.Step(&ActorOutput{Action: ACTION_BET, Betsize: 0, ActionProb: 1, BetsizeProb: 1})
	if game.Players().Seat(POSITION_SB).Stack != 0 {
		t.Fatal("clamped bet should put SB all-in")
	}
	res = game.Step(act(ACTION_CALL))
	if !res.Done {
		t.Fatal("both seats all-in must end the hand")
	}
	if len(game.Board()) != 2 {
		t.Fatalf("board has %d cards, want the full run-out", len(game.Board()))
	}

	sum := float64(0)
	for _, r := range game.Rewards() {
		sum += float64(r)
	}
	if math.Abs(sum) > 1e-4 {
		t.Fatalf("rewards not zero sum: %v", game.Rewards())
	}
}

func TestGameLiveBlindOpening(t *testing.T) {
	set := LimitHoldemRuleset()
	game, err := NewGame(set, EvaluatorForRuleset(set), 11)
	if err != nil {
		t.Fatal(err)
	}

	res := game.Reset()
	if game.CurrentPlayer() != POSITION_SB {
		t.Fatalf("heads-up live blinds open on SB, got %d", game.CurrentPlayer())
	}
	if res.ActionMask[ACTION_CHECK] != 0 {
		t.Fatal("small blind cannot check facing the live big blind")
	}
	if res.ActionMask[ACTION_FOLD] != 1 || res.ActionMask[ACTION_CALL] != 1 || res.ActionMask[ACTION_RAISE] != 1 {
		t.Fatalf("live-blind opening mask = %v", res.ActionMask)
	}

	// SB completes, BB checks the option, flop comes with BB to act.
	game.Step(act(ACTION_CALL))
	res = game.Step(act(ACTION_CHECK))
	if res.Done {
		t.Fatal("hand ended before the flop")
	}
	if game.Street() != 1 {
		t.Fatalf("street = %d, want flop", game.Street())
	}
	if len(game.Board()) != 3 {
		t.Fatalf("flop board has %d cards", len(game.Board()))
	}
	if game.CurrentPlayer() != POSITION_BB {
		t.Fatalf("postflop leads with BB, got %d", game.CurrentPlayer())
	}
}

func BenchmarkPokerGame(b *testing.B) {
	set := LimitHoldemRuleset()
	game, err := NewGame(set, EvaluatorForRuleset(set), 42)
	if err != nil {
		b.Fatal(err)
	}
	actor := NewRandomActor(rand.New(rand.NewSource(42)))

	var totalSteps int
	b.ResetTimer()
	startTime := time.Now()
	for i := 0; i < b.N; i++ {
		res := game.Reset()
		for !res.Done {
			out, err := actor.Act(res.State, res.ActionMask, res.BetsizeMask)
			if err != nil {
				b.Fatal(err)
			}
			res = game.Step(out)
			totalSteps++
		}
	}
	duration := time.Since(startTime)

	b.ReportMetric(float64(totalSteps)/float64(b.N), "steps/hand")
	b.ReportMetric(float64(b.N)/duration.Seconds(), "hands/sec")
}
