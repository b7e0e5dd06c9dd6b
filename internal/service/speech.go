package service

import (
	"context"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
)

// SpeechService synthesizes spoken audio for bot replies. Callers treat
// it as best-effort: a failure here must never fail the chat flow.
type SpeechService struct {
	client *openai.Client
	voice  openai.SpeechVoice
}

func NewSpeechService(apiKey, voice string) *SpeechService {
	return &SpeechService{
		client: openai.NewClient(apiKey),
		voice:  openai.SpeechVoice(voice),
	}
}

// Synthesize renders text to an Opus audio blob suitable for a Telegram
// voice note. The language code is carried by the text itself; the TTS
// model infers pronunciation from it.
func (s *SpeechService) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          s.voice,
		ResponseFormat: openai.SpeechResponseFormatOpus,
	})
	if err != nil {
		return nil, fmt.Errorf("create speech: %w", err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read speech audio: %w", err)
	}
	return data, nil
}
