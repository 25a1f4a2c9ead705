package mediasession

import (
	"errors"
	"testing"

	"github.com/nowplaying-org/media-session/api/helpers/mediaconv"
	"github.com/nowplaying-org/media-session/api/media"
)

// stubBackend implements media.Session with canned values.
type stubBackend struct {
	info    media.MediaInfo
	infoErr error

	closed bool
}

func (s *stubBackend) Info() (media.MediaInfo, error) {
	return s.info, s.infoErr
}

func (s *stubBackend) Controls() media.Controls {
	return nil
}

func (s *stubBackend) Close() error {
	s.closed = true
	return nil
}

func TestInfoNormalizesCover(t *testing.T) {
	cover := []byte{0x89, 0x50, 0x4e, 0x47}
	session := newMediaSession(&stubBackend{
		info: media.MediaInfo{
			Status:   media.StatusPlaying,
			CoverRaw: cover,
			// A backend-set value must be overwritten, never trusted.
			CoverB64: "bogus",
		},
	})

	info, err := session.Info()
	if err != nil {
		t.Fatalf("Info returned an error: %v", err)
	}

	if info.CoverB64 != mediaconv.EncodeCover(info.CoverRaw) {
		t.Errorf("CoverB64 = %q; want encoding of CoverRaw", info.CoverB64)
	}
}

func TestInfoNormalizesStatus(t *testing.T) {
	session := newMediaSession(&stubBackend{info: media.MediaInfo{}})

	info, err := session.Info()
	if err != nil {
		t.Fatalf("Info returned an error: %v", err)
	}

	if info.Status != media.StatusUnknown {
		t.Errorf("Status = %q; want %q", info.Status, media.StatusUnknown)
	}
	if info.CoverB64 != "" {
		t.Errorf("CoverB64 = %q; want empty for no artwork", info.CoverB64)
	}
}

func TestInfoClampsTimes(t *testing.T) {
	tests := []struct {
		name         string
		duration     int64
		position     int64
		wantDuration int64
		wantPosition int64
	}{
		{"negative duration", -5, 10, 0, 10},
		{"negative position", 100, -1, 100, 0},
		{"position past duration", 100, 150, 100, 100},
		{"within range", 197019000, 5700398, 197019000, 5700398},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := newMediaSession(&stubBackend{
				info: media.MediaInfo{
					Status: media.StatusPlaying,
					TrackData: media.TrackData{
						Duration: tt.duration,
					},
					Position: tt.position,
				},
			})

			info, err := session.Info()
			if err != nil {
				t.Fatalf("Info returned an error: %v", err)
			}

			if info.Duration != tt.wantDuration {
				t.Errorf("Duration = %d; want %d", info.Duration, tt.wantDuration)
			}
			if info.Position != tt.wantPosition {
				t.Errorf("Position = %d; want %d", info.Position, tt.wantPosition)
			}
		})
	}
}

func TestInfoPropagatesBackendError(t *testing.T) {
	backendErr := errors.New("backend failure")
	session := newMediaSession(&stubBackend{infoErr: backendErr})

	if _, err := session.Info(); !errors.Is(err, backendErr) {
		t.Errorf("expected backend error, got %v", err)
	}
}

func TestCloseReleasesBackend(t *testing.T) {
	backend := &stubBackend{}
	session := newMediaSession(backend)

	if err := session.Close(); err != nil {
		t.Fatalf("Close returned an error: %v", err)
	}
	if !backend.closed {
		t.Error("backend was not closed")
	}
}

func TestIDIsStable(t *testing.T) {
	session := newMediaSession(&stubBackend{})

	if session.ID() == "" {
		t.Fatal("ID is empty")
	}
	if session.ID() != session.ID() {
		t.Error("ID is not stable across calls")
	}
}
