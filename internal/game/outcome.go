package game

import "github.com/lunarlabs/redpocket/internal/money"

// ParticipantResult records one non-player participant's round: what they
// guessed, whether it matched the secret answer, and what they caught from
// the scramble. Fields are fixed at construction; results are assembled in a
// single pass once guesses, winners and payouts are all known.
type ParticipantResult struct {
	Name    string       `json:"name"`
	Guess   string       `json:"guess"`
	Correct bool         `json:"correct"`
	Gain    money.Amount `json:"gain"`
}

// RoundResult is the outcome of a single answer evaluation. It is an
// ephemeral value: produced by SubmitAnswer, handed to the presentation
// layer, never retained by the session.
type RoundResult struct {
	Question     string              `json:"question"`
	SecretAnswer string              `json:"secretAnswer"`
	UserGuess    string              `json:"userGuess"`
	UserCorrect  bool                `json:"userCorrect"`
	UserGain     money.Amount        `json:"userGain"`
	Pot          money.Amount        `json:"pot"`
	WinnerCount  int                 `json:"winnerCount"`
	Participants []ParticipantResult `json:"participants"`
	Balance      money.Amount        `json:"balance"`
}
