package game

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lunarlabs/redpocket/internal/money"
	"github.com/lunarlabs/redpocket/internal/randutil"
)

// Phase is the session's position in the round lifecycle.
type Phase int

const (
	// PhaseAwaitingQuestion means no question is active; StartRound is the
	// only valid trigger.
	PhaseAwaitingQuestion Phase = iota

	// PhaseAwaitingAnswer means a question has been issued and its secret
	// answer is held; SubmitAnswer is the only valid trigger.
	PhaseAwaitingAnswer
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingQuestion:
		return "awaiting-question"
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var (
	// ErrRoundInProgress is returned by StartRound while a question is
	// unanswered. Re-entrant starts are rejected rather than silently
	// discarding the pending round; callers wanting a fresh question must
	// Abandon first.
	ErrRoundInProgress = errors.New("a question is already awaiting an answer")

	// ErrNoActiveQuestion is returned by SubmitAnswer when no question has
	// been issued.
	ErrNoActiveQuestion = errors.New("no question is awaiting an answer")
)

// QuestionGenerator produces raw challenge text for a region. The text is
// expected to contain a question block and an answer letter separated by
// Delimiter, but the session tolerates any output via ParseChallenge.
type QuestionGenerator interface {
	GenerateQuestion(ctx context.Context, region string) (string, error)
}

// ChatGenerator produces short flavor chat for a described situation. Output
// is purely cosmetic.
type ChatGenerator interface {
	GenerateChat(ctx context.Context, situation string) (string, error)
}

// fallbackChallenge keeps a round playable when the question generator fails
// outright. Content generation concerns own richer fallbacks; this one only
// guarantees the session never aborts a round.
const fallbackChallenge = "Which color is considered lucky for Lunar New Year?\n" +
	"A) Red B) Black C) Grey D) Brown ||| A"

const fallbackChatLine = "Uncle Chen: ...did it start yet?"

// Random stream indices, one per randomness concern.
const (
	streamGuesses = iota
	streamPot
	streamScramble
)

// Config holds session parameters. The zero value is usable; applyDefaults
// fills in the traditional roster and pot range.
type Config struct {
	// UserName is the human participant's identity in payout maps.
	UserName string

	// Roster lists the non-player participants who guess each round.
	Roster []string

	// PotMin and PotMax bound the per-round pot, inclusive.
	PotMin money.Amount
	PotMax money.Amount

	// ShareFloor is the minimum scramble share per winner.
	ShareFloor money.Amount

	// ChatTail is how many chat blocks ChatTail returns for display.
	ChatTail int

	// Seed makes all session randomness reproducible; 0 seeds from the
	// clock.
	Seed int64
}

func (c *Config) applyDefaults() {
	if c.UserName == "" {
		c.UserName = "You"
	}
	if len(c.Roster) == 0 {
		c.Roster = []string{"Xiao Ming", "Auntie May", "Uncle Chen"}
	}
	if c.PotMin == 0 && c.PotMax == 0 {
		c.PotMin = money.FromCents(888)
		c.PotMax = money.FromCents(3888)
	}
	if c.PotMax < c.PotMin {
		c.PotMax = c.PotMin
	}
	if c.ShareFloor == 0 {
		c.ShareFloor = DefaultShareFloor
	}
	if c.ChatTail == 0 {
		c.ChatTail = 2
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
}

// Session owns the state of one active game: the current phase, the secret
// answer while a question is pending, the running balance, and the family
// chat log. A Session is not safe for concurrent use; drivers must complete
// one trigger before issuing the next.
type Session struct {
	cfg       Config
	questions QuestionGenerator
	chat      ChatGenerator
	logger    *log.Logger

	phase    Phase
	secret   string
	question string
	balance  money.Amount
	chatLog  []string

	guessRNG    *rand.Rand
	potRNG      *rand.Rand
	scrambleRNG *rand.Rand
}

// NewSession creates a session in PhaseAwaitingQuestion with a zero balance.
func NewSession(cfg Config, questions QuestionGenerator, chat ChatGenerator, logger *log.Logger) *Session {
	cfg.applyDefaults()
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		cfg:         cfg,
		questions:   questions,
		chat:        chat,
		logger:      logger.WithPrefix("session"),
		phase:       PhaseAwaitingQuestion,
		guessRNG:    randutil.Stream(cfg.Seed, streamGuesses),
		potRNG:      randutil.Stream(cfg.Seed, streamPot),
		scrambleRNG: randutil.Stream(cfg.Seed, streamScramble),
	}
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Balance returns the user's accumulated winnings. It never decreases.
func (s *Session) Balance() money.Amount {
	return s.balance
}

// Question returns the active question text, or "" outside
// PhaseAwaitingAnswer.
func (s *Session) Question() string {
	return s.question
}

// ChatTail returns the most recent chat blocks, up to the configured tail
// length. The underlying log is append-only and never truncated.
func (s *Session) ChatTail() []string {
	n := s.cfg.ChatTail
	if n > len(s.chatLog) {
		n = len(s.chatLog)
	}
	return s.chatLog[len(s.chatLog)-n:]
}

// StartRound requests a new question for the region and transitions to
// PhaseAwaitingAnswer. It returns ErrRoundInProgress if a question is
// already pending. Generator failures degrade to built-in fallback content
// and are never returned as errors.
func (s *Session) StartRound(ctx context.Context, region string) (string, error) {
	if s.phase != PhaseAwaitingQuestion {
		return "", ErrRoundInProgress
	}

	raw, err := s.questions.GenerateQuestion(ctx, region)
	if err != nil {
		s.logger.Warn("question generator failed, using fallback challenge", "region", region, "error", err)
		raw = fallbackChallenge
	}

	challenge, ok := ParseChallenge(raw)
	if !ok {
		s.logger.Warn("challenge missing answer delimiter, using fallback letter",
			"fallback", FallbackLetter)
	}

	s.secret = challenge.Answer
	s.question = challenge.Question
	s.phase = PhaseAwaitingAnswer

	s.appendChat(ctx, fmt.Sprintf("The family is waiting for a new question about %s.", region))

	s.logger.Debug("round started", "region", region, "secret", s.secret)
	return s.question, nil
}

// SubmitAnswer evaluates the user's letter against the secret answer, draws
// the roster's guesses, scrambles a freshly sampled pot among the winners,
// and returns the assembled outcome. The session transitions back to
// PhaseAwaitingQuestion and the secret answer is invalidated. It returns
// ErrNoActiveQuestion outside PhaseAwaitingAnswer.
//
// Comparison is case-insensitive and whitespace-trimmed; anything that is
// not the secret letter is simply wrong, including empty or junk input.
func (s *Session) SubmitAnswer(ctx context.Context, letter string) (*RoundResult, error) {
	if s.phase != PhaseAwaitingAnswer {
		return nil, ErrNoActiveQuestion
	}

	secret := s.secret
	question := s.question
	guess := NormalizeLetter(letter)
	userCorrect := guess == secret

	// Winners keep submission order: user first, then roster order. The
	// scramble shuffles share assignment, so order carries no payout bias.
	winners := make([]string, 0, len(s.cfg.Roster)+1)
	if userCorrect {
		winners = append(winners, s.cfg.UserName)
	}

	type rosterGuess struct {
		name    string
		guess   string
		correct bool
	}
	guesses := make([]rosterGuess, 0, len(s.cfg.Roster))
	for _, name := range s.cfg.Roster {
		g := Alphabet[s.guessRNG.IntN(len(Alphabet))]
		correct := g == secret
		if correct {
			winners = append(winners, name)
		}
		guesses = append(guesses, rosterGuess{name: name, guess: g, correct: correct})
	}

	pot := s.samplePot()
	payouts := ScrambleWithFloor(s.scrambleRNG, pot, winners, s.cfg.ShareFloor)

	userGain := payouts[s.cfg.UserName]
	s.balance += userGain
	s.secret = ""
	s.question = ""
	s.phase = PhaseAwaitingQuestion

	participants := make([]ParticipantResult, 0, len(guesses))
	for _, g := range guesses {
		participants = append(participants, ParticipantResult{
			Name:    g.name,
			Guess:   g.guess,
			Correct: g.correct,
			Gain:    payouts[g.name],
		})
	}

	s.appendChat(ctx, fmt.Sprintf("Correct answer: %s. %d people won.", secret, len(winners)))

	s.logger.Debug("round evaluated",
		"secret", secret,
		"userGuess", guess,
		"userCorrect", userCorrect,
		"pot", pot,
		"winners", len(winners),
		"balance", s.balance)

	return &RoundResult{
		Question:     question,
		SecretAnswer: secret,
		UserGuess:    guess,
		UserCorrect:  userCorrect,
		UserGain:     userGain,
		Pot:          pot,
		WinnerCount:  len(winners),
		Participants: participants,
		Balance:      s.balance,
	}, nil
}

// Abandon discards any pending question and returns the session to
// PhaseAwaitingQuestion. Balance and chat log are untouched.
func (s *Session) Abandon() {
	if s.phase == PhaseAwaitingAnswer {
		s.logger.Info("abandoning unanswered round")
	}
	s.secret = ""
	s.question = ""
	s.phase = PhaseAwaitingQuestion
}

func (s *Session) samplePot() money.Amount {
	span := int64(s.cfg.PotMax - s.cfg.PotMin)
	return s.cfg.PotMin + money.Amount(s.potRNG.Int64N(span+1))
}

func (s *Session) appendChat(ctx context.Context, situation string) {
	text, err := s.chat.GenerateChat(ctx, situation)
	if err != nil {
		s.logger.Warn("chat generator failed, using canned line", "error", err)
		text = fallbackChatLine
	}
	s.chatLog = append(s.chatLog, text)
}
