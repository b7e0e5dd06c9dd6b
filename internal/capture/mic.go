package capture

import (
	"context"

	"github.com/arogya-mitra/arogyabot/internal/domain"
	"github.com/arogya-mitra/arogyabot/internal/session"
)

// Mic adapts an already-captured audio blob (a downloaded Telegram
// voice note) to the session Recorder interface. The capture itself
// happened on the user's device; Begin/Stop model the session-side
// recording lifecycle over it.
type Mic struct {
	data []byte
}

func NewMic(data []byte) *Mic {
	return &Mic{data: data}
}

func (m *Mic) Begin(ctx context.Context) (session.Recording, error) {
	if len(m.data) == 0 {
		return nil, domain.ErrPermissionDenied
	}
	return blob{data: m.data}, nil
}

type blob struct {
	data []byte
}

func (b blob) Stop(ctx context.Context) ([]byte, error) {
	return b.data, nil
}
