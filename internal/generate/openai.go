package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/lunarlabs/redpocket/internal/game"
)

const draftPrompt = `You are the family matriarch and keeper of traditions.
Create a 4-option multiple-choice question about %s Lunar New Year customs,
food, decorations or taboos. Make it easy with no vague answers.
Format: the question, options A-D, then '%s' then the single correct letter.`

const verifyPrompt = `You are a cultural historian and expert in East Asian
studies. Review the question and answer below. Fix any factual errors. If two
or more options are correct, replace the extras with clearly wrong ones. Make
sure the text after '%s' is a SINGLE letter (A, B, C, or D) matching the
correct option. Reply with only the corrected question block, '%s', and the
letter. Do not explain.

%s`

const chatPrompt = `Generate 3 very short family group-chat messages reacting
to a red pocket quiz game. The members are %s.
Situation: %s
Reply with three lines, each formatted 'Name: Message'.`

// OpenAIConfig configures the OpenAI-backed content source.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float32

	// Personas describes the roster for chat generation, e.g.
	// "Xiao Ming (gamer)". Optional.
	Personas []string
}

// OpenAI generates questions and chat via chat completions. Questions go
// through a two-pass flow: a draft in the matriarch voice, then a
// fact-checking pass that must preserve the delimiter convention.
type OpenAI struct {
	client *openai.Client
	cfg    OpenAIConfig
	logger *log.Logger
}

// NewOpenAI creates an OpenAI-backed source. Model defaults to gpt-4o-mini.
func NewOpenAI(cfg OpenAIConfig, logger *log.Logger) *OpenAI {
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.4
	}
	if logger == nil {
		logger = log.Default()
	}
	return &OpenAI{
		client: openai.NewClient(cfg.APIKey),
		cfg:    cfg,
		logger: logger.WithPrefix("openai"),
	}
}

// GenerateQuestion drafts a challenge for the region and runs it through the
// fact-checking pass. The returned text carries the question ||| letter
// convention; parsing and fallback are the caller's concern.
func (o *OpenAI) GenerateQuestion(ctx context.Context, region string) (string, error) {
	draft, err := o.complete(ctx, fmt.Sprintf(draftPrompt, region, game.Delimiter))
	if err != nil {
		return "", fmt.Errorf("drafting question: %w", err)
	}

	verified, err := o.complete(ctx, fmt.Sprintf(verifyPrompt, game.Delimiter, game.Delimiter, draft))
	if err != nil {
		// A draft that fails verification is still a playable challenge.
		o.logger.Warn("fact-check pass failed, using unverified draft", "error", err)
		return draft, nil
	}
	return verified, nil
}

// GenerateChat produces a short block of family reactions for the situation.
func (o *OpenAI) GenerateChat(ctx context.Context, situation string) (string, error) {
	personas := strings.Join(o.cfg.Personas, ", ")
	if personas == "" {
		personas = "Xiao Ming (gamer), Auntie May (lucky), Uncle Chen (confused)"
	}

	text, err := o.complete(ctx, fmt.Sprintf(chatPrompt, personas, situation))
	if err != nil {
		return "", fmt.Errorf("generating chat: %w", err)
	}
	return text, nil
}

func (o *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.cfg.Model,
		Temperature: o.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

var (
	_ game.QuestionGenerator = (*OpenAI)(nil)
	_ game.ChatGenerator     = (*OpenAI)(nil)
)
