// Package generate provides the content-generation collaborators consumed by
// the game core: an OpenAI-backed implementation, an offline static bank, and
// a fallback combinator that degrades from one to the other. All of them
// satisfy game.QuestionGenerator and game.ChatGenerator.
package generate
