package generate

import (
	"context"
	rand "math/rand/v2"
	"strings"
	"sync"

	"github.com/lunarlabs/redpocket/internal/game"
	"github.com/lunarlabs/redpocket/internal/randutil"
)

// bank holds canned challenges per region, already in the question |||
// letter wire convention the core parses.
var bank = map[string][]string{
	"Mainland China": {
		"Which food is traditionally eaten at Lunar New Year in northern China?\nA) Dumplings B) Pizza C) Sushi D) Tacos ||| A",
		"What color envelopes are used for gifting money at Lunar New Year?\nA) Blue B) Red C) Green D) White ||| B",
		"What should you avoid doing on the first day of the new year?\nA) Visiting family B) Wearing red C) Sweeping the floor D) Eating fish ||| C",
		"Which fruit is a popular Lunar New Year gift because its name sounds like 'luck'?\nA) Banana B) Durian C) Grape D) Mandarin orange ||| D",
	},
	"Vietnam": {
		"What is the Vietnamese Lunar New Year called?\nA) Tet B) Obon C) Songkran D) Diwali ||| A",
		"Which square sticky rice cake is essential for Tet?\nA) Mochi B) Banh chung C) Baozi D) Tteok ||| B",
		"Which tree is traditionally displayed in northern Vietnam for Tet?\nA) Pine B) Oak C) Peach blossom D) Maple ||| C",
	},
	"Korea": {
		"What is the Korean Lunar New Year called?\nA) Seollal B) Chuseok C) Dano D) Hansik ||| A",
		"Which soup is eaten on Seollal to mark growing a year older?\nA) Kimchi stew B) Tteokguk C) Ramyeon D) Samgyetang ||| B",
		"What do children perform to elders on Seollal to receive pocket money?\nA) A song B) A poem C) A deep bow D) A dance ||| C",
	},
	"North America": {
		"Which city hosts one of the largest Lunar New Year parades outside Asia?\nA) San Francisco B) Denver C) Dallas D) Phoenix ||| A",
		"What do lion dancers 'eat' from doorways for luck during parades?\nA) Rice B) Lettuce C) Noodles D) Oranges ||| B",
		"Red envelopes handed out at North American celebrations contain what?\nA) Candy B) Tickets C) Money D) Stickers ||| C",
	},
}

// chatter maps roster personalities to canned reaction lines.
var chatter = map[string][]string{
	"Xiao Ming": {
		"Xiao Ming: ez clap, next question",
		"Xiao Ming: lag!! I pressed it first",
		"Xiao Ming: this is basically ranked mode",
		"Xiao Ming: afk one sec, boss fight",
	},
	"Auntie May": {
		"Auntie May: my lucky year!! 8888",
		"Auntie May: I dreamed this answer last night",
		"Auntie May: red is my color, of course I won",
		"Auntie May: buying lottery tickets after this",
	},
	"Uncle Chen": {
		"Uncle Chen: which button do I press?",
		"Uncle Chen: why is my envelope empty??",
		"Uncle Chen: is this the family photo app?",
		"Uncle Chen: ...did it start yet?",
	},
}

// Static serves challenges and chat from built-in banks. It is the offline
// collaborator: no network, no failure modes, safe for concurrent use.
type Static struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewStatic creates a static source with deterministic selection for a given
// seed.
func NewStatic(seed int64) *Static {
	return &Static{rng: randutil.New(seed)}
}

// GenerateQuestion returns a canned challenge for the region. Unknown
// regions borrow from the full bank rather than failing.
func (s *Static) GenerateQuestion(ctx context.Context, region string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, ok := bank[region]
	if !ok {
		for _, qs := range bank {
			pool = append(pool, qs...)
		}
	}
	return pool[s.rng.IntN(len(pool))], nil
}

// GenerateChat returns a short block of family reactions. Canned lines
// ignore the situation text; only the real generator tailors its output.
func (s *Static) GenerateChat(ctx context.Context, situation string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]string, 0, len(chatter))
	for _, name := range []string{"Xiao Ming", "Auntie May", "Uncle Chen"} {
		pool := chatter[name]
		lines = append(lines, pool[s.rng.IntN(len(pool))])
	}
	return strings.Join(lines, "\n"), nil
}

// Regions lists the regions with dedicated question pools.
func Regions() []string {
	return []string{"Mainland China", "Vietnam", "Korea", "North America"}
}

// Verify the static source satisfies the core's collaborator contracts.
var (
	_ game.QuestionGenerator = (*Static)(nil)
	_ game.ChatGenerator     = (*Static)(nil)
)
