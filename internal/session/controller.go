package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arogya-mitra/arogyabot/internal/config"
	"github.com/arogya-mitra/arogyabot/internal/domain"
)

// Gateway is the inference backend boundary. Every call is fire-once:
// no retry, no backoff, a failure is terminal for that attempt.
type Gateway interface {
	InferText(ctx context.Context, message, languageCode string) (string, error)
	AnalyzeImage(ctx context.Context, imageBytes []byte) (string, error)
	TranscribeVoice(ctx context.Context, audioBytes []byte) (string, error)
}

// Recorder is an audio capture source. Begin fails with
// domain.ErrPermissionDenied when capture is not allowed.
type Recorder interface {
	Begin(ctx context.Context) (Recording, error)
}

// Recording is an in-progress audio capture. Stop finalizes it and
// returns the captured blob.
type Recording interface {
	Stop(ctx context.Context) ([]byte, error)
}

// Speaker synthesizes speech for bot replies. It is strictly
// best-effort: the controller never lets a Speak failure reach the
// caller.
type Speaker interface {
	Speak(ctx context.Context, text, languageCode string) error
}

// Controller owns the conversational state of one chat: the append-only
// transcript, the active input mode, the per-session transient state and
// the request-in-flight guard. All mutations of the transcript go
// through its operations; nothing else may touch it.
type Controller struct {
	gateway Gateway
	speaker Speaker
	now     func() time.Time

	// inFlight enforces at most one outstanding backend request per
	// session. It is a hard guard, not advisory: a second submission is
	// rejected with domain.ErrRequestInFlight while one is pending.
	inFlight atomic.Bool

	mu          sync.Mutex
	transcript  []domain.ChatMessage
	mode        domain.InputMode
	language    string
	image       *domain.ImageRef
	imageResult *string
	recording   Recording
}

// Option configures a Controller.
type Option func(*Controller)

// WithSpeaker enables best-effort speech synthesis of bot replies.
func WithSpeaker(s Speaker) Option {
	return func(c *Controller) { c.speaker = s }
}

// WithClock overrides the message timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController creates a session in chat mode whose transcript holds
// the canonical greeting.
func NewController(gateway Gateway, language string, opts ...Option) *Controller {
	c := &Controller{
		gateway:  gateway,
		language: language,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.transcript = []domain.ChatMessage{c.greeting()}
	return c
}

func (c *Controller) greeting() domain.ChatMessage {
	return domain.ChatMessage{Text: config.Greeting, IsBot: true, At: c.now()}
}

// SendText appends the user's message, submits it to the backend and
// appends the answer. The user message stays in the transcript even
// when the backend call fails; a dangling user message is normal, not
// corruption.
func (c *Controller) SendText(ctx context.Context, draft string) (string, error) {
	draft = strings.TrimSpace(draft)
	if draft == "" {
		return "", domain.ErrEmptyInput
	}

	if !c.inFlight.CompareAndSwap(false, true) {
		return "", domain.ErrRequestInFlight
	}
	defer c.inFlight.Store(false)

	c.append(domain.ChatMessage{Text: draft, IsBot: false, At: c.now()})

	answer, err := c.gateway.InferText(ctx, draft, c.Language())
	if err != nil {
		return "", err
	}

	c.append(domain.ChatMessage{Text: answer, IsBot: true, At: c.now()})
	c.speak(answer)

	return answer, nil
}

// PickImage stores an image selected for analysis and discards any
// previous analysis result. A cancelled selection simply never reaches
// this method, so prior state is untouched.
func (c *Controller) PickImage(ref domain.ImageRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.image = &ref
	c.imageResult = nil
}

// AnalyzeImage submits the selected image to the backend and stores the
// result. The result lives outside the transcript: analysis never
// mutates the chat history.
func (c *Controller) AnalyzeImage(ctx context.Context) (string, error) {
	c.mu.Lock()
	image := c.image
	c.mu.Unlock()

	if image == nil {
		return "", domain.ErrNoImageSelected
	}

	if !c.inFlight.CompareAndSwap(false, true) {
		return "", domain.ErrRequestInFlight
	}
	defer c.inFlight.Store(false)

	result, err := c.gateway.AnalyzeImage(ctx, image.Data)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.imageResult = &result
	c.mu.Unlock()

	return result, nil
}

// StartRecording begins an audio capture on the given source. The
// recording handle is an exclusive resource: starting while one is
// active fails with domain.ErrRecordingActive.
func (c *Controller) StartRecording(ctx context.Context, mic Recorder) error {
	c.mu.Lock()
	if c.recording != nil {
		c.mu.Unlock()
		return domain.ErrRecordingActive
	}
	c.mu.Unlock()

	rec, err := mic.Begin(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recording != nil {
		// Lost the race to another start; keep the first one.
		return domain.ErrRecordingActive
	}
	c.recording = rec
	return nil
}

// StopRecording finalizes the active capture and submits the audio for
// a voice round-trip. Only the backend's reply enters the transcript;
// the spoken input itself is never transcribed. Calling with no active
// recording is a no-op.
func (c *Controller) StopRecording(ctx context.Context) (string, error) {
	c.mu.Lock()
	rec := c.recording
	c.recording = nil
	c.mu.Unlock()

	if rec == nil {
		return "", nil
	}

	audio, err := rec.Stop(ctx)
	if err != nil {
		return "", err
	}

	if !c.inFlight.CompareAndSwap(false, true) {
		return "", domain.ErrRequestInFlight
	}
	defer c.inFlight.Store(false)

	reply, err := c.gateway.TranscribeVoice(ctx, audio)
	if err != nil {
		return "", err
	}

	c.append(domain.ChatMessage{Text: reply, IsBot: true, At: c.now()})
	c.speak(reply)

	return reply, nil
}

// Clear resets the transcript to the single greeting message. Mode,
// language and image/recording state are untouched. Idempotent.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transcript = []domain.ChatMessage{c.greeting()}
}

// ToggleMode flips between chat and image mode without touching the
// transcript or the image-mode transient state.
func (c *Controller) ToggleMode() domain.InputMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == domain.ModeChat {
		c.mode = domain.ModeImage
	} else {
		c.mode = domain.ModeChat
	}
	return c.mode
}

func (c *Controller) Mode() domain.InputMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetLanguage stores the response language code. Codes are forwarded to
// the backend opaquely, never validated or translated here.
func (c *Controller) SetLanguage(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.language = code
}

func (c *Controller) Language() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

// Loading reports whether a backend request is outstanding.
func (c *Controller) Loading() bool {
	return c.inFlight.Load()
}

// Recording reports whether an audio capture is active.
func (c *Controller) Recording() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recording != nil
}

// SelectedImage returns the image picked for analysis, or nil.
func (c *Controller) SelectedImage() *domain.ImageRef {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.image
}

// AnalysisResult returns the last image analysis result, or nil.
func (c *Controller) AnalysisResult() *string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.imageResult
}

// Transcript returns a copy of the message sequence in insertion order.
func (c *Controller) Transcript() []domain.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.ChatMessage, len(c.transcript))
	copy(out, c.transcript)
	return out
}

func (c *Controller) append(msg domain.ChatMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transcript = append(c.transcript, msg)
}

// speak issues best-effort speech synthesis of a bot reply. It never
// blocks the transcript update and swallows failures.
func (c *Controller) speak(text string) {
	if c.speaker == nil {
		return
	}
	lang := c.Language()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.SpeechTimeout)
		defer cancel()
		if err := c.speaker.Speak(ctx, text, lang); err != nil {
			slog.Debug("speech synthesis failed", "error", err)
		}
	}()
}
