package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	BotToken    string `env:"BOT_TOKEN,required"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Inference backend (text chat, image analysis, voice round-trip)
	BackendURL string `env:"BACKEND_URL" envDefault:"http://localhost:8080"`

	// Speech synthesis (optional; empty disables voice replies)
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	SpeechVoice  string `env:"SPEECH_VOICE" envDefault:"alloy"`

	// Medicine catalog
	JanAushadhiURL string `env:"JANAUSHADHI_URL" envDefault:"https://janaushadhi.gov.in"`

	// Admin
	AdminIDs  []int64 `env:"ADMIN_IDS" envSeparator:","`
	LogChatID int64   `env:"LOG_CHAT_ID"`

	// Bot behavior
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}
