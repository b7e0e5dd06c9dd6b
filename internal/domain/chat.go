package domain

import "time"

// InputMode selects the active interaction surface of a chat session.
type InputMode int

const (
	ModeChat InputMode = iota
	ModeImage
)

func (m InputMode) String() string {
	if m == ModeImage {
		return "image"
	}
	return "chat"
}

// ChatMessage is one entry of a session transcript. The transcript is
// append-only: messages are never edited or removed, only the whole
// transcript can be reset to the greeting.
type ChatMessage struct {
	Text  string
	IsBot bool
	At    time.Time
}

// ImageRef points at an image selected for analysis. Data holds the
// JPEG bytes, Source is where the image came from (a Telegram file ID,
// a local path in tests).
type ImageRef struct {
	Source string
	Data   []byte
}

// Languages the inference backend can answer in. The codes are passed
// through opaquely, the bot never translates anything itself.
var SupportedLanguages = []Language{
	{Code: "en", Name: "English"},
	{Code: "hi", Name: "Hindi"},
	{Code: "kn", Name: "Kannada"},
	{Code: "ml", Name: "Malayalam"},
	{Code: "mr", Name: "Marathi"},
	{Code: "gu", Name: "Gujarati"},
}

type Language struct {
	Code string
	Name string
}

// IsSupportedLanguage reports whether code is one of SupportedLanguages.
func IsSupportedLanguage(code string) bool {
	for _, l := range SupportedLanguages {
		if l.Code == code {
			return true
		}
	}
	return false
}
