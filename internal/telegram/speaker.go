package telegram

import (
	"context"

	"github.com/go-telegram/bot"
)

// TTS renders text to an audio blob.
type TTS interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Speaker delivers synthesized bot replies to one chat as voice notes.
// It implements the session Speaker contract; callers treat failures as
// best-effort.
type Speaker struct {
	bot    *bot.Bot
	chatID int64
	tts    TTS
}

func NewSpeaker(b *bot.Bot, chatID int64, tts TTS) *Speaker {
	return &Speaker{bot: b, chatID: chatID, tts: tts}
}

func (s *Speaker) Speak(ctx context.Context, text, languageCode string) error {
	// languageCode is carried by the text itself; the TTS model infers
	// pronunciation from it.
	audio, err := s.tts.Synthesize(ctx, text)
	if err != nil {
		return err
	}
	return SendVoiceNote(ctx, s.bot, s.chatID, audio)
}
