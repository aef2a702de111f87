// Package audio plays the looping water ambience.
package audio

import (
	"bytes"
	"fmt"
	gomath "math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the speaker sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// Listener distances, in world units above the water, over which the
// ambience fades from full to its floor.
const (
	nearDistance = 2.0
	farDistance  = 60.0
	farLevel     = 0.15
	// Underwater the ambience is muffled to this level.
	underwaterLevel = 0.35
)

// Manager plays one looping ambience track. It is safe for concurrent use;
// the speaker pulls samples from its own goroutine.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	path     string

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	proximity    float64
	muted        bool
}

// New creates a manager at full volume. Call Init before playing.
func New() *Manager {
	return &Manager{masterVolume: 1.0, proximity: 1.0}
}

// Init opens the audio device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	m.initialized = true
	return nil
}

// Close stops playback and releases the track.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopInternal()
	if m.initialized {
		speaker.Close()
	}
	m.initialized = false
}

// LoadAmbient reads a WAV file and loops it.
func (m *Manager) LoadAmbient(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read ambience: %w", err)
	}
	return m.PlayAmbient(data, path)
}

// PlayAmbient decodes WAV data and loops it, replacing any current track.
func (m *Manager) PlayAmbient(data []byte, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return fmt.Errorf("audio not initialized")
	}
	m.stopInternal()

	streamer, looped, format, err := decodeLoop(data)
	if err != nil {
		return err
	}
	s := looped
	if format.SampleRate != m.sampleRate {
		s = beep.Resample(4, format.SampleRate, m.sampleRate, looped)
	}

	m.ctrl = &beep.Ctrl{Streamer: s}
	m.volume = &effects.Volume{Streamer: m.ctrl, Base: 2}
	m.streamer = streamer
	m.path = path
	m.applyVolume()

	speaker.Play(m.volume)
	return nil
}

// decodeLoop decodes WAV data into a streamer that restarts at the end of
// the track. The decoder seeks on every loop, so it reads from a seekable
// reader over data.
func decodeLoop(data []byte) (beep.StreamSeekCloser, beep.Streamer, beep.Format, error) {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, beep.Format{}, fmt.Errorf("decode wav: %w", err)
	}

	looped, err := beep.Loop2(streamer)
	if err != nil {
		streamer.Close()
		return nil, nil, beep.Format{}, fmt.Errorf("loop ambience: %w", err)
	}
	return streamer, looped, format, nil
}

func (m *Manager) stopInternal() {
	if m.streamer == nil {
		return
	}
	speaker.Clear()
	m.streamer.Close()
	m.streamer = nil
	m.ctrl = nil
	m.volume = nil
	m.path = ""
}

// Playing reports whether a track is loaded and not paused.
func (m *Manager) Playing() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ctrl != nil && !m.ctrl.Paused
}

// Path returns the loaded track path.
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// SetMasterVolume sets the overall volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
	m.applyVolume()
}

// MasterVolume returns the overall volume.
func (m *Manager) MasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// ToggleMute flips the mute switch and returns the new state.
func (m *Manager) ToggleMute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = !m.muted
	m.applyVolume()
	return m.muted
}

// SetListener scales the ambience by the listener's height above the water
// plane at waterLevel.
func (m *Manager) SetListener(eyeY, waterLevel float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.proximity = ProximityLevel(float64(eyeY - waterLevel))
	m.applyVolume()
}

// Volume returns the effective linear volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.effective()
}

func (m *Manager) effective() float64 {
	if m.muted {
		return 0
	}
	return m.masterVolume * m.proximity
}

// applyVolume pushes the effective volume into the playing track. The
// speaker goroutine reads it, so callers hold m.mu and the speaker lock.
func (m *Manager) applyVolume() {
	if m.volume == nil {
		return
	}
	vol := m.effective()
	speaker.Lock()
	m.volume.Silent = vol <= 0
	m.volume.Volume = volumeToExponent(vol)
	speaker.Unlock()
}

// ProximityLevel maps height above the water to a volume factor: full near
// the surface, fading with distance, muffled below it.
func ProximityLevel(height float64) float64 {
	switch {
	case height < 0:
		return underwaterLevel
	case height <= nearDistance:
		return 1
	case height >= farDistance:
		return farLevel
	}
	t := (height - nearDistance) / (farDistance - nearDistance)
	return 1 + (farLevel-1)*t
}

// volumeToExponent converts a linear 0-1 volume to the base-2 exponent
// effects.Volume expects.
func volumeToExponent(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return gomath.Log2(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
