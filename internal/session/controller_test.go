package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/arogya-mitra/arogyabot/internal/config"
	"github.com/arogya-mitra/arogyabot/internal/domain"
)

var errBackend = errors.New("backend unavailable")

type gatewayMock struct {
	mu sync.Mutex

	Answer   string
	Result   string
	Reply    string
	Fail     bool
	Block    chan struct{} // when set, calls wait here before returning

	textCalls  int
	imageCalls int
	voiceCalls int
}

func (g *gatewayMock) wait() {
	if g.Block != nil {
		<-g.Block
	}
}

func (g *gatewayMock) InferText(ctx context.Context, message, languageCode string) (string, error) {
	g.mu.Lock()
	g.textCalls++
	g.mu.Unlock()
	g.wait()
	if g.Fail {
		return "", errBackend
	}
	return g.Answer, nil
}

func (g *gatewayMock) AnalyzeImage(ctx context.Context, imageBytes []byte) (string, error) {
	g.mu.Lock()
	g.imageCalls++
	g.mu.Unlock()
	g.wait()
	if g.Fail {
		return "", errBackend
	}
	return g.Result, nil
}

func (g *gatewayMock) TranscribeVoice(ctx context.Context, audioBytes []byte) (string, error) {
	g.mu.Lock()
	g.voiceCalls++
	g.mu.Unlock()
	g.wait()
	if g.Fail {
		return "", errBackend
	}
	return g.Reply, nil
}

func (g *gatewayMock) calls() (int, int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.textCalls, g.imageCalls, g.voiceCalls
}

type micMock struct {
	Audio  []byte
	Denied bool
}

func (m micMock) Begin(ctx context.Context) (Recording, error) {
	if m.Denied {
		return nil, domain.ErrPermissionDenied
	}
	return blobMock{audio: m.Audio}, nil
}

type blobMock struct{ audio []byte }

func (b blobMock) Stop(ctx context.Context) ([]byte, error) {
	return b.audio, nil
}

type speakerMock struct {
	mu    sync.Mutex
	fail  bool
	calls []string
	done  chan struct{}
}

func (s *speakerMock) Speak(ctx context.Context, text, languageCode string) error {
	s.mu.Lock()
	s.calls = append(s.calls, text)
	s.mu.Unlock()
	if s.done != nil {
		close(s.done)
	}
	if s.fail {
		return errors.New("tts down")
	}
	return nil
}

func fixedClock() func() time.Time {
	t := time.Unix(1700000000, 0).UTC()
	return func() time.Time { return t }
}

func TestNewControllerStartsWithGreeting(t *testing.T) {
	c := NewController(&gatewayMock{}, "en", WithClock(fixedClock()))

	tr := c.Transcript()
	if len(tr) != 1 {
		t.Fatalf("want 1 message, got %d", len(tr))
	}
	if tr[0].Text != config.Greeting || !tr[0].IsBot {
		t.Fatalf("unexpected greeting: %+v", tr[0])
	}
	if c.Mode() != domain.ModeChat {
		t.Fatalf("want chat mode, got %v", c.Mode())
	}
}

func TestSendTextAppendsUserAndBotMessages(t *testing.T) {
	gw := &gatewayMock{Answer: "Drink fluids and rest."}
	c := NewController(gw, "en", WithClock(fixedClock()))

	answer, err := c.SendText(context.Background(), "I have a fever")
	if err != nil {
		t.Fatalf("SendText: %v", err)
	}
	if answer != "Drink fluids and rest." {
		t.Fatalf("unexpected answer %q", answer)
	}

	tr := c.Transcript()
	if len(tr) != 3 {
		t.Fatalf("want 3 messages, got %d", len(tr))
	}
	if tr[1].Text != "I have a fever" || tr[1].IsBot {
		t.Fatalf("user message wrong: %+v", tr[1])
	}
	if tr[2].Text != "Drink fluids and rest." || !tr[2].IsBot {
		t.Fatalf("bot message wrong: %+v", tr[2])
	}
	if c.Loading() {
		t.Fatal("loading flag still set after completion")
	}
}

func TestSendTextFailureKeepsUserMessage(t *testing.T) {
	gw := &gatewayMock{Fail: true}
	c := NewController(gw, "en")

	before := len(c.Transcript())
	_, err := c.SendText(context.Background(), "hello")
	if !errors.Is(err, errBackend) {
		t.Fatalf("want backend error, got %v", err)
	}

	tr := c.Transcript()
	if len(tr) != before+1 {
		t.Fatalf("want %d messages (dangling user message), got %d", before+1, len(tr))
	}
	if tr[len(tr)-1].IsBot {
		t.Fatal("last message should be the user's")
	}
	if c.Loading() {
		t.Fatal("loading flag still set after failure")
	}
}

func TestSendTextEmptyInput(t *testing.T) {
	gw := &gatewayMock{Answer: "hi"}
	c := NewController(gw, "en")

	for _, draft := range []string{"", "   ", "\n\t"} {
		_, err := c.SendText(context.Background(), draft)
		if !errors.Is(err, domain.ErrEmptyInput) {
			t.Fatalf("draft %q: want ErrEmptyInput, got %v", draft, err)
		}
	}

	if calls, _, _ := gw.calls(); calls != 0 {
		t.Fatalf("no network call expected, got %d", calls)
	}
	if len(c.Transcript()) != 1 {
		t.Fatalf("transcript mutated on empty input")
	}
}

func TestSendTextRejectsOverlappingRequests(t *testing.T) {
	gw := &gatewayMock{Answer: "ok", Block: make(chan struct{})}
	c := NewController(gw, "en")

	done := make(chan error, 1)
	go func() {
		_, err := c.SendText(context.Background(), "first")
		done <- err
	}()

	// Wait until the first request is outstanding.
	for !c.Loading() {
		time.Sleep(time.Millisecond)
	}

	_, err := c.SendText(context.Background(), "second")
	if !errors.Is(err, domain.ErrRequestInFlight) {
		t.Fatalf("want ErrRequestInFlight, got %v", err)
	}

	close(gw.Block)
	if err := <-done; err != nil {
		t.Fatalf("first request failed: %v", err)
	}

	if calls, _, _ := gw.calls(); calls != 1 {
		t.Fatalf("want exactly 1 backend call, got %d", calls)
	}
	// Rejected submission must not have appended anything.
	tr := c.Transcript()
	if len(tr) != 3 {
		t.Fatalf("want 3 messages, got %d", len(tr))
	}
}

func TestClearResetsToGreetingOnly(t *testing.T) {
	gw := &gatewayMock{Answer: "ok"}
	c := NewController(gw, "hi")

	for i := 0; i < 3; i++ {
		if _, err := c.SendText(context.Background(), "msg"); err != nil {
			t.Fatalf("SendText: %v", err)
		}
	}
	c.ToggleMode()
	c.Clear()

	tr := c.Transcript()
	if len(tr) != 1 || tr[0].Text != config.Greeting || !tr[0].IsBot {
		t.Fatalf("clear did not reset to greeting: %+v", tr)
	}
	// Mode and language survive a clear.
	if c.Mode() != domain.ModeImage {
		t.Fatal("clear changed the mode")
	}
	if c.Language() != "hi" {
		t.Fatal("clear changed the language")
	}

	c.Clear()
	if len(c.Transcript()) != 1 {
		t.Fatal("clear is not idempotent")
	}
}

func TestAnalyzeImageNeverTouchesTranscript(t *testing.T) {
	gw := &gatewayMock{Result: "benign mole"}
	c := NewController(gw, "en")

	before := c.Transcript()

	_, err := c.AnalyzeImage(context.Background())
	if !errors.Is(err, domain.ErrNoImageSelected) {
		t.Fatalf("want ErrNoImageSelected, got %v", err)
	}
	if _, calls, _ := gw.calls(); calls != 0 {
		t.Fatal("no network call expected without a selected image")
	}

	c.PickImage(domain.ImageRef{Source: "file-1", Data: []byte{0xff, 0xd8}})
	result, err := c.AnalyzeImage(context.Background())
	if err != nil {
		t.Fatalf("AnalyzeImage: %v", err)
	}
	if result != "benign mole" {
		t.Fatalf("unexpected result %q", result)
	}
	if got := c.AnalysisResult(); got == nil || *got != "benign mole" {
		t.Fatalf("result not stored: %v", got)
	}

	after := c.Transcript()
	if len(after) != len(before) {
		t.Fatalf("analysis mutated transcript: %d -> %d", len(before), len(after))
	}
}

func TestAnalyzeImageFailureKeepsPriorResult(t *testing.T) {
	gw := &gatewayMock{Fail: true}
	c := NewController(gw, "en")

	c.PickImage(domain.ImageRef{Source: "file-1", Data: []byte{0xff, 0xd8}})
	_, err := c.AnalyzeImage(context.Background())
	if !errors.Is(err, errBackend) {
		t.Fatalf("want backend error, got %v", err)
	}
	if c.AnalysisResult() != nil {
		t.Fatal("failed analysis stored a result")
	}
	if len(c.Transcript()) != 1 {
		t.Fatal("failed analysis mutated transcript")
	}
}

func TestPickImageClearsPreviousResult(t *testing.T) {
	gw := &gatewayMock{Result: "eczema"}
	c := NewController(gw, "en")

	c.PickImage(domain.ImageRef{Source: "a", Data: []byte{1}})
	if _, err := c.AnalyzeImage(context.Background()); err != nil {
		t.Fatalf("AnalyzeImage: %v", err)
	}
	if c.AnalysisResult() == nil {
		t.Fatal("expected stored result")
	}

	c.PickImage(domain.ImageRef{Source: "b", Data: []byte{2}})
	if c.AnalysisResult() != nil {
		t.Fatal("new pick must discard the previous result")
	}
	if c.SelectedImage().Source != "b" {
		t.Fatal("new pick not stored")
	}
}

func TestVoiceRoundTripAppendsOnlyBotMessage(t *testing.T) {
	gw := &gatewayMock{Reply: "Take paracetamol."}
	c := NewController(gw, "en")

	if err := c.StartRecording(context.Background(), micMock{Audio: []byte("ogg")}); err != nil {
		t.Fatalf("StartRecording: %v", err)
	}
	if !c.Recording() {
		t.Fatal("recording flag not set")
	}

	reply, err := c.StopRecording(context.Background())
	if err != nil {
		t.Fatalf("StopRecording: %v", err)
	}
	if reply != "Take paracetamol." {
		t.Fatalf("unexpected reply %q", reply)
	}
	if c.Recording() {
		t.Fatal("recording flag still set")
	}

	tr := c.Transcript()
	if len(tr) != 2 {
		t.Fatalf("want 2 messages (greeting + bot reply), got %d", len(tr))
	}
	if !tr[1].IsBot {
		t.Fatal("voice round-trip must not add a user-side entry")
	}
}

func TestStopRecordingWithoutActiveRecordingIsNoop(t *testing.T) {
	gw := &gatewayMock{Reply: "x"}
	c := NewController(gw, "en")

	reply, err := c.StopRecording(context.Background())
	if err != nil || reply != "" {
		t.Fatalf("want silent no-op, got %q, %v", reply, err)
	}
	if _, _, calls := gw.calls(); calls != 0 {
		t.Fatal("no network call expected")
	}
	if len(c.Transcript()) != 1 {
		t.Fatal("no-op stop mutated transcript")
	}
}

func TestStartRecordingPermissionDenied(t *testing.T) {
	c := NewController(&gatewayMock{}, "en")

	err := c.StartRecording(context.Background(), micMock{Denied: true})
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("want ErrPermissionDenied, got %v", err)
	}
	if c.Recording() {
		t.Fatal("denied start must not change state")
	}
}

func TestStartRecordingWhileActiveIsRejected(t *testing.T) {
	c := NewController(&gatewayMock{Reply: "ok"}, "en")

	if err := c.StartRecording(context.Background(), micMock{Audio: []byte("a")}); err != nil {
		t.Fatalf("StartRecording: %v", err)
	}
	err := c.StartRecording(context.Background(), micMock{Audio: []byte("b")})
	if !errors.Is(err, domain.ErrRecordingActive) {
		t.Fatalf("want ErrRecordingActive, got %v", err)
	}
}

func TestVoiceFailureLeavesTranscriptUntouched(t *testing.T) {
	gw := &gatewayMock{Fail: true}
	c := NewController(gw, "en")

	if err := c.StartRecording(context.Background(), micMock{Audio: []byte("ogg")}); err != nil {
		t.Fatalf("StartRecording: %v", err)
	}
	_, err := c.StopRecording(context.Background())
	if !errors.Is(err, errBackend) {
		t.Fatalf("want backend error, got %v", err)
	}
	if len(c.Transcript()) != 1 {
		t.Fatal("failed voice round-trip mutated transcript")
	}
	if c.Recording() {
		t.Fatal("recording handle not cleared on failure")
	}
}

func TestSpeechFailureNeverFailsSend(t *testing.T) {
	spk := &speakerMock{fail: true, done: make(chan struct{})}
	gw := &gatewayMock{Answer: "rest well"}
	c := NewController(gw, "en", WithSpeaker(spk))

	answer, err := c.SendText(context.Background(), "tired")
	if err != nil {
		t.Fatalf("SendText must not surface speech errors: %v", err)
	}
	if answer != "rest well" {
		t.Fatalf("unexpected answer %q", answer)
	}

	select {
	case <-spk.done:
	case <-time.After(time.Second):
		t.Fatal("speaker never invoked")
	}
	if len(c.Transcript()) != 3 {
		t.Fatalf("transcript length %d", len(c.Transcript()))
	}
}

func TestToggleModePreservesImageState(t *testing.T) {
	c := NewController(&gatewayMock{Result: "ok"}, "en")

	c.PickImage(domain.ImageRef{Source: "a", Data: []byte{1}})
	if _, err := c.AnalyzeImage(context.Background()); err != nil {
		t.Fatalf("AnalyzeImage: %v", err)
	}

	if got := c.ToggleMode(); got != domain.ModeImage {
		t.Fatalf("want image mode, got %v", got)
	}
	if got := c.ToggleMode(); got != domain.ModeChat {
		t.Fatalf("want chat mode, got %v", got)
	}

	if c.SelectedImage() == nil || c.AnalysisResult() == nil {
		t.Fatal("mode toggle must preserve image-mode state")
	}
}
