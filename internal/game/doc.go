// Package game implements the core red pocket scramble game logic.
//
// The main type is Session, which manages a single player's game: the
// two-phase round lifecycle (question issuance, answer evaluation), the
// running balance, and the family chat log.
//
// # Basic Usage
//
// Create a session and play a round:
//
//	s := game.NewSession(game.Config{}, questions, chat, logger)
//	q, err := s.StartRound(ctx, "Mainland China")
//	// Show q to the user, collect their letter...
//	result, err := s.SubmitAnswer(ctx, "C")
//	fmt.Println(result.UserGain, s.Balance())
//
// # Deterministic Testing
//
// For deterministic testing, set Config.Seed. Guess sampling, pot sampling
// and payout scrambling each draw from an independent stream derived from the
// seed, so a change to one concern never shifts the others:
//
//	s := game.NewSession(game.Config{Seed: 42}, questions, chat, logger)
//
// The Scramble allocator can also be exercised directly with an injected
// *rand.Rand.
//
// # Architecture
//
// Session delegates content generation to two collaborator interfaces,
// QuestionGenerator and ChatGenerator. Both are cosmetic from the game's
// point of view: a generator failure degrades to built-in fallback content
// and never aborts a round. Payout maths live in Scramble, and the narrow
// text contract with the question generator is isolated in ParseChallenge.
package game
