package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"go.uber.org/zap"

	"github.com/kc92/Desperado-s-Destiny-sub018/internal/app"
	"github.com/kc92/Desperado-s-Destiny-sub018/internal/bot"
	"github.com/kc92/Desperado-s-Destiny-sub018/internal/domain"
)

// tablesim plays whole games bot-against-bot and checks the engine's
// bookkeeping after every action. Useful for soaking rule changes
// before they reach a live table.
func main() {
	var (
		variantName = flag.String("variant", "euchre", "game variant: euchre, pinochle or spades")
		seed        = flag.Int64("seed", 1, "rng seed for reproducible deals")
		games       = flag.Int("games", 100, "number of games to play")
		sharp       = flag.Bool("sharp", true, "seat the heuristic bot instead of the default-action bot")
	)
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	variant := domain.Variant(*variantName)
	if !variant.Valid() {
		logger.Fatal("unknown variant", zap.String("variant", *variantName))
	}

	rng := rand.New(rand.NewSource(*seed))
	service := app.NewService(rng)

	level := bot.BotLevelBasic
	if *sharp {
		level = bot.BotLevelSharp
	}
	brains := make([]bot.Brain, domain.NumSeats)
	for i := range brains {
		brain, err := bot.NewBrain(level)
		if err != nil {
			logger.Fatal("bot factory", zap.Error(err))
		}
		brains[i] = brain
	}

	wins := [3]int{} // team 0, team 1, draws
	totalRounds := 0

	for g := 0; g < *games; g++ {
		rounds, winner, err := playGame(service, brains, variant)
		if err != nil {
			logger.Fatal("game aborted",
				zap.Int("game", g),
				zap.String("variant", string(variant)),
				zap.Error(err))
		}
		totalRounds += rounds
		switch winner {
		case 0, 1:
			wins[winner]++
		default:
			wins[2]++
		}
	}

	logger.Info("simulation complete",
		zap.String("variant", string(variant)),
		zap.Int("games", *games),
		zap.Int("team0_wins", wins[0]),
		zap.Int("team1_wins", wins[1]),
		zap.Int("draws", wins[2]),
		zap.Float64("avg_rounds", float64(totalRounds)/float64(*games)))
}

func playGame(service *app.Service, brains []bot.Brain, variant domain.Variant) (rounds int, winner int, err error) {
	sess, _, err := service.StartSession(variant, domain.SessionOptions{})
	if err != nil {
		return 0, -1, err
	}

	const maxActions = 100000
	for actions := 0; ; actions++ {
		if actions > maxActions {
			return sess.Round, -1, fmt.Errorf("game did not terminate after %d actions", maxActions)
		}

		if done, w := sess.IsGameComplete(); done {
			return sess.Round, w, nil
		}

		switch sess.Phase {
		case domain.PhaseDeal:
			if _, err := service.InitializeRound(sess); err != nil {
				return sess.Round, -1, fmt.Errorf("deal round %d: %w", sess.Round+1, err)
			}
			if err := checkConservation(sess); err != nil {
				return sess.Round, -1, err
			}
		case domain.PhaseScoring:
			if _, _, err := service.ScoreRound(sess, 0, 0); err != nil {
				return sess.Round, -1, fmt.Errorf("score round %d: %w", sess.Round, err)
			}
		default:
			seat, ok := sess.CurrentActor()
			if !ok {
				return sess.Round, -1, fmt.Errorf("no actor in phase %s", sess.Phase)
			}
			action, err := brains[seat].ChooseAction(sess, seat)
			if err != nil {
				return sess.Round, -1, fmt.Errorf("seat %d in phase %s: %w", seat, sess.Phase, err)
			}
			if err := sess.Apply(seat, action); err != nil {
				return sess.Round, -1, fmt.Errorf("seat %d applied illegal action in phase %s: %w", seat, sess.Phase, err)
			}
			if err := checkConservation(sess); err != nil {
				return sess.Round, -1, err
			}
		}
	}
}

// checkConservation verifies that no card appeared or vanished.
func checkConservation(sess *domain.Session) error {
	if sess.Phase == domain.PhaseDeal || sess.Phase == domain.PhaseGameOver {
		return nil
	}
	if got, want := sess.CardsInPlay(), sess.DeckSize(); got != want {
		return fmt.Errorf("round %d phase %s: %d cards in play, want %d", sess.Round, sess.Phase, got, want)
	}
	return nil
}
