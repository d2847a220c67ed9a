// Package config loads game configuration from HCL files, with sensible
// defaults when no file is present.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lunarlabs/redpocket/internal/game"
	"github.com/lunarlabs/redpocket/internal/money"
)

// Config represents the complete game configuration.
type Config struct {
	Game    GameSettings    `hcl:"game,block"`
	Members []MemberConfig  `hcl:"member,block"`
	OpenAI  *OpenAISettings `hcl:"openai,block"`
	Server  *ServerSettings `hcl:"server,block"`
}

// GameSettings contains round and payout parameters. Money values are
// dollars in the file and converted to cents on load.
type GameSettings struct {
	UserName   string   `hcl:"user_name,optional"`
	Regions    []string `hcl:"regions,optional"`
	PotMin     float64  `hcl:"pot_min,optional"`
	PotMax     float64  `hcl:"pot_max,optional"`
	ShareFloor float64  `hcl:"share_floor,optional"`
	ChatTail   int      `hcl:"chat_tail,optional"`
}

// MemberConfig defines one non-player roster member.
type MemberConfig struct {
	Name    string `hcl:"name,label"`
	Persona string `hcl:"persona,optional"`
}

// OpenAISettings configures the LLM-backed content source. The API key is
// never stored in the file; it comes from the environment.
type OpenAISettings struct {
	Model         string  `hcl:"model,optional"`
	Temperature   float64 `hcl:"temperature,optional"`
	TimeoutSecond int     `hcl:"timeout_seconds,optional"`
}

// ServerSettings contains websocket server configuration.
type ServerSettings struct {
	Address string `hcl:"address,optional"`
}

// DefaultConfig returns the traditional game setup.
func DefaultConfig() *Config {
	return &Config{
		Game: GameSettings{
			UserName:   "You",
			Regions:    []string{"Mainland China", "Vietnam", "Korea", "North America"},
			PotMin:     8.88,
			PotMax:     38.88,
			ShareFloor: 0.50,
			ChatTail:   2,
		},
		Members: []MemberConfig{
			{Name: "Xiao Ming", Persona: "gamer"},
			{Name: "Auntie May", Persona: "lucky"},
			{Name: "Uncle Chen", Persona: "confused"},
		},
		OpenAI: &OpenAISettings{
			Model:         "gpt-4o-mini",
			Temperature:   0.4,
			TimeoutSecond: 20,
		},
		Server: &ServerSettings{
			Address: ":8080",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields defaults;
// a present file is merged over them.
func Load(filename string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	parsed := &fileConfig{}
	if diags := gohcl.DecodeBody(file.Body, nil, parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}
	cfg.merge(parsed)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fileConfig mirrors Config with every block optional, so partial files
// merge over the defaults instead of failing to decode.
type fileConfig struct {
	Game    *GameSettings   `hcl:"game,block"`
	Members []MemberConfig  `hcl:"member,block"`
	OpenAI  *OpenAISettings `hcl:"openai,block"`
	Server  *ServerSettings `hcl:"server,block"`
}

func (c *Config) merge(o *fileConfig) {
	if o.Game != nil {
		if o.Game.UserName != "" {
			c.Game.UserName = o.Game.UserName
		}
		if len(o.Game.Regions) > 0 {
			c.Game.Regions = o.Game.Regions
		}
		if o.Game.PotMin != 0 {
			c.Game.PotMin = o.Game.PotMin
		}
		if o.Game.PotMax != 0 {
			c.Game.PotMax = o.Game.PotMax
		}
		if o.Game.ShareFloor != 0 {
			c.Game.ShareFloor = o.Game.ShareFloor
		}
		if o.Game.ChatTail != 0 {
			c.Game.ChatTail = o.Game.ChatTail
		}
	}
	if len(o.Members) > 0 {
		c.Members = o.Members
	}
	if o.OpenAI != nil {
		if o.OpenAI.Model != "" {
			c.OpenAI.Model = o.OpenAI.Model
		}
		if o.OpenAI.Temperature != 0 {
			c.OpenAI.Temperature = o.OpenAI.Temperature
		}
		if o.OpenAI.TimeoutSecond != 0 {
			c.OpenAI.TimeoutSecond = o.OpenAI.TimeoutSecond
		}
	}
	if o.Server != nil && o.Server.Address != "" {
		c.Server.Address = o.Server.Address
	}
}

func (c *Config) validate() error {
	if c.Game.PotMin <= 0 {
		return fmt.Errorf("pot_min must be positive, got %v", c.Game.PotMin)
	}
	if c.Game.PotMax < c.Game.PotMin {
		return fmt.Errorf("pot_max (%v) must be >= pot_min (%v)", c.Game.PotMax, c.Game.PotMin)
	}
	if c.Game.ShareFloor < 0 {
		return fmt.Errorf("share_floor must not be negative, got %v", c.Game.ShareFloor)
	}
	if len(c.Game.Regions) == 0 {
		return fmt.Errorf("at least one region is required")
	}
	if len(c.Members) == 0 {
		return fmt.Errorf("at least one roster member is required")
	}
	return nil
}

// Roster returns the configured member names in order.
func (c *Config) Roster() []string {
	names := make([]string, len(c.Members))
	for i, m := range c.Members {
		names[i] = m.Name
	}
	return names
}

// Personas returns "Name (persona)" descriptions for chat prompts.
func (c *Config) Personas() []string {
	out := make([]string, 0, len(c.Members))
	for _, m := range c.Members {
		if m.Persona == "" {
			out = append(out, m.Name)
			continue
		}
		out = append(out, fmt.Sprintf("%s (%s)", m.Name, m.Persona))
	}
	return out
}

// SessionConfig converts the loaded settings into a game.Config. Seed 0
// leaves session seeding to the clock.
func (c *Config) SessionConfig(seed int64) game.Config {
	return game.Config{
		UserName:   c.Game.UserName,
		Roster:     c.Roster(),
		PotMin:     money.FromDollars(c.Game.PotMin),
		PotMax:     money.FromDollars(c.Game.PotMax),
		ShareFloor: money.FromDollars(c.Game.ShareFloor),
		ChatTail:   c.Game.ChatTail,
		Seed:       seed,
	}
}
