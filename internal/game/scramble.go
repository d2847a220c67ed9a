package game

import (
	rand "math/rand/v2"

	"github.com/lunarlabs/redpocket/internal/money"
)

// DefaultShareFloor is the minimum share any winner receives, provided the
// pot is large enough to give every winner the floor.
const DefaultShareFloor = money.Amount(50)

// Scramble splits pot among winners with randomized shares that sum exactly
// to the pot. The first len(winners)-1 shares are drawn sequentially from a
// bounded range and the last winner takes the remainder; the assignment of
// shares to winners is then shuffled so list position carries no size bias.
//
// An empty winner list yields an empty map, and a single winner takes the
// whole pot. Scramble never fails and runs in O(len(winners)).
func Scramble(rng *rand.Rand, pot money.Amount, winners []string) map[string]money.Amount {
	return ScrambleWithFloor(rng, pot, winners, DefaultShareFloor)
}

// ScrambleWithFloor is Scramble with an explicit per-share floor. The floor
// is clamped down when the pot cannot cover it for every winner.
func ScrambleWithFloor(rng *rand.Rand, pot money.Amount, winners []string, floor money.Amount) map[string]money.Amount {
	payouts := make(map[string]money.Amount, len(winners))
	n := int64(len(winners))
	if n == 0 {
		return payouts
	}
	if n == 1 {
		payouts[winners[0]] = pot
		return payouts
	}

	if floor < 0 {
		floor = 0
	}
	if pot < floor*money.Amount(n) {
		floor = pot / money.Amount(n)
	}

	shares := make([]money.Amount, 0, n)
	remaining := pot
	for i := int64(0); i < n-1; i++ {
		left := money.Amount(n - i)

		// Every draw leaves at least the floor for each later share, so no
		// early draw can starve the tail and the remainder stays >= 0.
		hi := remaining*13/(10*left) + 1
		if max := remaining - floor*(left-1); hi > max {
			hi = max
		}
		if hi < floor {
			hi = floor
		}

		share := floor + money.Amount(rng.Int64N(int64(hi-floor)+1))
		shares = append(shares, share)
		remaining -= share
	}
	shares = append(shares, remaining)

	rng.Shuffle(len(shares), func(i, j int) {
		shares[i], shares[j] = shares[j], shares[i]
	})

	for i, w := range winners {
		payouts[w] = shares[i]
	}
	return payouts
}
