package game

import "strings"

// Delimiter separates the question block from the answer letter in raw
// generator output.
const Delimiter = "|||"

// FallbackLetter is used when generator output lacks a parseable answer.
// Fixed so that repeated parses of the same malformed input agree.
const FallbackLetter = "A"

// Alphabet is the set of valid answer letters.
var Alphabet = []string{"A", "B", "C", "D"}

// Challenge is a parsed question with its secret answer letter.
type Challenge struct {
	Question string
	Answer   string
}

// ParseChallenge splits raw generator output on the last delimiter into a
// question block and a single answer letter. The letter is trimmed,
// uppercased and validated against Alphabet. If the delimiter is missing or
// the trailing token is not a valid letter, the whole input becomes the
// question and the answer falls back to FallbackLetter; ok is false so
// callers can log the degraded parse.
func ParseChallenge(raw string) (c Challenge, ok bool) {
	idx := strings.LastIndex(raw, Delimiter)
	if idx < 0 {
		return Challenge{
			Question: strings.TrimSpace(raw),
			Answer:   FallbackLetter,
		}, false
	}

	question := strings.TrimSpace(raw[:idx])
	letter := NormalizeLetter(raw[idx+len(Delimiter):])
	if !ValidLetter(letter) {
		return Challenge{Question: question, Answer: FallbackLetter}, false
	}
	return Challenge{Question: question, Answer: letter}, true
}

// NormalizeLetter trims whitespace and uppercases a submitted letter.
func NormalizeLetter(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidLetter reports whether s is one of the answer alphabet letters.
func ValidLetter(s string) bool {
	for _, l := range Alphabet {
		if s == l {
			return true
		}
	}
	return false
}
