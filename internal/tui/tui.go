// Package tui renders game sessions in the terminal with Bubble Tea. It is a
// pure consumer of the game core: every view is derived from messages
// produced by session operations, never from reaching into session state
// concurrently.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lunarlabs/redpocket/internal/game"
	"github.com/lunarlabs/redpocket/internal/money"
)

// uiPhase mirrors the session phase plus an in-flight marker. The model
// never reads the session from Update; phase transitions arrive as messages
// so only one trigger can be outstanding at a time.
type uiPhase int

const (
	phaseIdle uiPhase = iota
	phaseStarting
	phaseAnswering
	phaseEvaluating
)

// Model is the Bubble Tea model for a local game session.
type Model struct {
	session *game.Session
	logger  *log.Logger

	regions   []string
	regionIdx int

	answerInput textinput.Model

	phase       uiPhase
	pendingNote string
	question    string
	lastResult  *game.RoundResult
	chatTail    []string
	balance     money.Amount
	errText     string

	width    int
	height   int
	quitting bool
}

type questionMsg struct {
	question string
	chat     []string
}

type resultMsg struct {
	result *game.RoundResult
	chat   []string
}

type errMsg struct {
	err error
}

// New creates a TUI model around a session.
func New(session *game.Session, regions []string, logger *log.Logger) *Model {
	ti := textinput.New()
	ti.Placeholder = "Letter (A, B, C, or D)..."
	ti.CharLimit = 3
	ti.Width = 30
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)

	if len(regions) == 0 {
		regions = []string{"Mainland China"}
	}

	return &Model{
		session:     session,
		logger:      logger.WithPrefix("tui"),
		regions:     regions,
		answerInput: ti,
		phase:       phaseIdle,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// startRound runs the blocking StartRound off the UI goroutine.
func (m *Model) startRound(region string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		question, err := session.StartRound(context.Background(), region)
		if err != nil {
			return errMsg{err: err}
		}
		return questionMsg{question: question, chat: session.ChatTail()}
	}
}

// submitAnswer runs the blocking SubmitAnswer off the UI goroutine.
func (m *Model) submitAnswer(letter string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		result, err := session.SubmitAnswer(context.Background(), letter)
		if err != nil {
			return errMsg{err: err}
		}
		return resultMsg{result: result, chat: session.ChatTail()}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case questionMsg:
		m.phase = phaseAnswering
		m.question = msg.question
		m.chatTail = msg.chat
		m.pendingNote = ""
		m.answerInput.SetValue("")
		m.answerInput.Focus()
		return m, nil

	case resultMsg:
		m.phase = phaseIdle
		m.lastResult = msg.result
		m.balance = msg.result.Balance
		m.chatTail = msg.chat
		m.question = ""
		m.pendingNote = ""
		m.answerInput.Blur()
		return m, nil

	case errMsg:
		m.logger.Debug("session trigger failed", "error", msg.err)
		// Wrong-phase triggers can only race past the UI gating if the user
		// mashes keys mid-flight; surface them without corrupting the view.
		if errors.Is(msg.err, game.ErrRoundInProgress) || errors.Is(msg.err, game.ErrNoActiveQuestion) {
			m.errText = msg.err.Error()
		} else {
			m.errText = fmt.Sprintf("unexpected error: %v", msg.err)
		}
		if m.phase == phaseStarting {
			m.phase = phaseIdle
		}
		if m.phase == phaseEvaluating {
			m.phase = phaseAnswering
		}
		m.pendingNote = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.answerInput, cmd = m.answerInput.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	}

	m.errText = ""

	switch m.phase {
	case phaseIdle:
		switch msg.String() {
		case "q":
			m.quitting = true
			return m, tea.Quit
		case "left", "h":
			m.regionIdx = (m.regionIdx + len(m.regions) - 1) % len(m.regions)
		case "right", "l":
			m.regionIdx = (m.regionIdx + 1) % len(m.regions)
		case "enter", "n":
			m.phase = phaseStarting
			m.pendingNote = "Grandma is consulting the ancestors (and a fact checker)..."
			m.lastResult = nil
			return m, m.startRound(m.regions[m.regionIdx])
		}
		return m, nil

	case phaseAnswering:
		if msg.String() == "enter" {
			letter := strings.TrimSpace(m.answerInput.Value())
			if letter == "" {
				return m, nil
			}
			m.phase = phaseEvaluating
			m.pendingNote = "Checking red pockets..."
			return m, m.submitAnswer(letter)
		}
		var cmd tea.Cmd
		m.answerInput, cmd = m.answerInput.Update(msg)
		return m, cmd

	default:
		// A trigger is in flight; ignore input until its message lands.
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return fmt.Sprintf("Thanks for playing! Final luck: %s\n", m.balance)
	}

	var b strings.Builder

	b.WriteString(HeaderStyle.Render("🏮 Red Pocket Scramble 🏮"))
	b.WriteString("\n")
	b.WriteString(RegionStyle.Render(fmt.Sprintf("Region: ◀ %s ▶", m.regions[m.regionIdx])))
	b.WriteString("\n\n")

	switch m.phase {
	case phaseStarting, phaseEvaluating:
		b.WriteString(PendingStyle.Render(m.pendingNote))
		b.WriteString("\n")

	case phaseAnswering:
		b.WriteString(QuestionStyle.Render(m.question))
		b.WriteString("\n")
		b.WriteString(m.answerInput.View())
		b.WriteString("\n")

	case phaseIdle:
		if m.lastResult != nil {
			b.WriteString(renderResultCard(m.lastResult))
			b.WriteString("\n")
		}
		b.WriteString(HelpStyle.Render("enter/n: new round · ←/→: region · q: quit"))
		b.WriteString("\n")
	}

	if m.errText != "" {
		b.WriteString(ErrorStyle.Render(m.errText))
		b.WriteString("\n")
	}

	if len(m.chatTail) > 0 {
		b.WriteString("\n")
		b.WriteString(ChatStyle.Render("👨‍👩‍👧‍👦 Family Chat\n" + strings.Join(m.chatTail, "\n\n")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(BalanceStyle.Render(fmt.Sprintf("Luck: %s", m.balance)))
	b.WriteString("\n")

	return b.String()
}

// renderResultCard formats a round outcome in the grandma's-verdict layout.
func renderResultCard(r *game.RoundResult) string {
	var b strings.Builder

	b.WriteString("📬 Grandma's Verdict\n")
	if r.UserCorrect {
		b.WriteString(CorrectStyle.Render(fmt.Sprintf("✅ Correct! (The answer was %s)", r.SecretAnswer)))
	} else {
		b.WriteString(WrongStyle.Render(fmt.Sprintf("❌ Wrong! (The answer was %s)", r.SecretAnswer)))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("You caught: %s\n", GainStyle.Render(r.UserGain.String())))

	for _, p := range r.Participants {
		mark := "❌"
		if p.Correct {
			mark = "✅"
		}
		line := fmt.Sprintf("%s %s: %s", mark, p.Name, p.Guess)
		if p.Gain > 0 {
			line += " - " + GainStyle.Render("+"+p.Gain.String())
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("Total Balance: %s", r.Balance))
	return ResultCardStyle.Render(b.String())
}
