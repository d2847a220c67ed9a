package main

import (
	"context"
	"fmt"
	"time"

	"github.com/lunarlabs/redpocket/internal/config"
	"github.com/lunarlabs/redpocket/internal/game"
	"github.com/lunarlabs/redpocket/internal/generate"
	"github.com/lunarlabs/redpocket/internal/money"
	"github.com/lunarlabs/redpocket/internal/randutil"
)

// SimulateCmd plays headless rounds with a random user and reports payout
// statistics. Useful for eyeballing scramble fairness and for smoke-testing
// the round loop without a terminal.
type SimulateCmd struct {
	Rounds int    `default:"1000" help:"Number of rounds to simulate"`
	Region string `default:"Mainland China" help:"Question region"`
	Seed   int64  `help:"RNG seed (0 for random)"`
}

func (c *SimulateCmd) Run(cli *CLI) error {
	logger := setupLogger(cli.Debug)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	source := generate.NewStatic(seed)
	session := game.NewSession(cfg.SessionConfig(seed), source, source, logger)
	userRNG := randutil.Stream(seed, 100)

	ctx := context.Background()
	start := time.Now()

	var (
		wins        int
		soleWins    int
		totalPot    money.Amount
		winnerHist  [5]int
		sumMismatch int
	)

	for i := 0; i < c.Rounds; i++ {
		if _, err := session.StartRound(ctx, c.Region); err != nil {
			return fmt.Errorf("round %d: %w", i, err)
		}

		letter := game.Alphabet[userRNG.IntN(len(game.Alphabet))]
		result, err := session.SubmitAnswer(ctx, letter)
		if err != nil {
			return fmt.Errorf("round %d: %w", i, err)
		}

		if result.UserCorrect {
			wins++
			if result.WinnerCount == 1 {
				soleWins++
			}
		}
		totalPot += result.Pot
		if result.WinnerCount < len(winnerHist) {
			winnerHist[result.WinnerCount]++
		}

		sum := result.UserGain
		for _, p := range result.Participants {
			sum += p.Gain
		}
		if result.WinnerCount > 0 && sum != result.Pot {
			sumMismatch++
		}
	}

	elapsed := time.Since(start)

	fmt.Printf("Simulated %d rounds in %s (seed %d)\n\n", c.Rounds, elapsed.Round(time.Millisecond), seed)
	fmt.Printf("User wins:       %d (%.1f%%)\n", wins, pct(wins, c.Rounds))
	fmt.Printf("  sole winner:   %d\n", soleWins)
	fmt.Printf("Final balance:   %s\n", session.Balance())
	fmt.Printf("Mean pot:        %s\n", money.FromCents(totalPot.Cents()/int64(c.Rounds)))
	fmt.Printf("Winner counts:   0:%d 1:%d 2:%d 3:%d 4:%d\n",
		winnerHist[0], winnerHist[1], winnerHist[2], winnerHist[3], winnerHist[4])
	if sumMismatch > 0 {
		fmt.Printf("\nWARNING: %d rounds had payouts not summing to the pot\n", sumMismatch)
	}
	return nil
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
