package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lunarlabs/redpocket/internal/game"
	"github.com/lunarlabs/redpocket/internal/generate"
	"github.com/lunarlabs/redpocket/internal/money"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()

	source := generate.NewStatic(1)
	session := game.NewSession(game.Config{Seed: 42}, source, source, log.Default())
	return New(session, generate.Regions(), log.Default())
}

func TestViewIdle(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	view := m.View()

	if !strings.Contains(view, "Red Pocket Scramble") {
		t.Error("view missing header")
	}
	if !strings.Contains(view, "Mainland China") {
		t.Error("view missing default region")
	}
	if !strings.Contains(view, "$0.00") {
		t.Error("view missing zero balance")
	}
}

func TestRegionCycling(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = model.(*Model)
	if !strings.Contains(m.View(), "Vietnam") {
		t.Error("right arrow did not advance the region")
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = model.(*Model)
	if !strings.Contains(m.View(), "Mainland China") {
		t.Error("left arrow did not cycle back")
	}
}

func TestQuestionMsgShowsQuestion(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	model, _ := m.Update(questionMsg{
		question: "Which cake is eaten at Tet?",
		chat:     []string{"Xiao Ming: ez"},
	})
	m = model.(*Model)

	view := m.View()
	if !strings.Contains(view, "Which cake is eaten at Tet?") {
		t.Error("view missing the question text")
	}
	if !strings.Contains(view, "Family Chat") {
		t.Error("view missing the chat sidebar")
	}
}

func TestResultMsgShowsVerdict(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	result := &game.RoundResult{
		SecretAnswer: "C",
		UserGuess:    "C",
		UserCorrect:  true,
		UserGain:     money.FromCents(1234),
		Pot:          money.FromCents(2000),
		WinnerCount:  2,
		Participants: []game.ParticipantResult{
			{Name: "Auntie May", Guess: "C", Correct: true, Gain: money.FromCents(766)},
			{Name: "Uncle Chen", Guess: "A", Correct: false},
		},
		Balance: money.FromCents(1234),
	}

	model, _ := m.Update(resultMsg{result: result, chat: []string{"Auntie May: lucky!"}})
	m = model.(*Model)

	view := m.View()
	for _, want := range []string{"Correct!", "$12.34", "Auntie May", "+$7.66", "Uncle Chen"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPendingViewWhileStarting(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(*Model)

	if cmd == nil {
		t.Fatal("enter in idle phase should issue a start command")
	}
	if m.phase != phaseStarting {
		t.Errorf("phase = %d, want phaseStarting", m.phase)
	}
	if !strings.Contains(m.View(), "Grandma is consulting") {
		t.Error("pending note not shown while the question generator runs")
	}

	// A second enter while in flight is ignored.
	model, cmd2 := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(*Model)
	if cmd2 != nil {
		t.Error("second trigger issued while one was in flight")
	}
	_ = model
}
