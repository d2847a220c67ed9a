package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunarlabs/redpocket/internal/game"
	"github.com/lunarlabs/redpocket/internal/money"
)

func TestMessageEnvelopeRoundTrip(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(MessageTypeStartRound, StartRoundData{Region: "Korea"})
	require.NoError(t, err)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded Message
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, MessageTypeStartRound, decoded.Type)

	var data StartRoundData
	require.NoError(t, json.Unmarshal(decoded.Data, &data))
	assert.Equal(t, "Korea", data.Region)
}

func TestResultDataCarriesOutcomeVerbatim(t *testing.T) {
	t.Parallel()

	result := &game.RoundResult{
		SecretAnswer: "C",
		UserGuess:    "C",
		UserCorrect:  true,
		UserGain:     money.FromCents(1234),
		Pot:          money.FromCents(2000),
		WinnerCount:  2,
		Participants: []game.ParticipantResult{
			{Name: "Xiao Ming", Guess: "C", Correct: true, Gain: money.FromCents(766)},
			{Name: "Uncle Chen", Guess: "A", Correct: false, Gain: 0},
		},
		Balance: money.FromCents(1234),
	}

	msg, err := NewMessage(MessageTypeResult, ResultData{Result: result})
	require.NoError(t, err)

	var data ResultData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, result, data.Result)
}
