package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lunarlabs/redpocket/internal/config"
	"github.com/lunarlabs/redpocket/internal/generate"
)

// buildSource wires the content-generation stack: OpenAI behind a timeout
// with the static bank as backup when an API key is present, the bank alone
// otherwise.
func buildSource(cfg *config.Config, seed int64, logger *log.Logger) generate.Source {
	static := generate.NewStatic(seed)

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		logger.Info("no OPENAI_API_KEY set, playing from the offline question bank")
		return static
	}

	primary := generate.NewOpenAI(generate.OpenAIConfig{
		APIKey:      apiKey,
		Model:       cfg.OpenAI.Model,
		Temperature: float32(cfg.OpenAI.Temperature),
		Personas:    cfg.Personas(),
	}, logger)

	timeout := time.Duration(cfg.OpenAI.TimeoutSecond) * time.Second
	return generate.NewFallback(primary, static, timeout, quartz.NewReal(), logger)
}
