package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/lunarlabs/redpocket/internal/config"
	"github.com/lunarlabs/redpocket/internal/game"
	"github.com/lunarlabs/redpocket/internal/tui"
)

// PlayCmd runs a local interactive game.
type PlayCmd struct {
	Seed int64 `help:"Deterministic RNG seed (0 for random)"`
}

func (c *PlayCmd) Run(cli *CLI) error {
	logger := setupLogger(cli.Debug)

	if termenv.ColorProfile() == termenv.Ascii {
		logger.Warn("terminal reports no color support, the table will look plain")
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	source := buildSource(cfg, seed, logger)
	session := game.NewSession(cfg.SessionConfig(seed), source, source, logger)
	model := tui.New(session, cfg.Game.Regions, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
