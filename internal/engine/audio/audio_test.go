package audio

import (
	gomath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

func TestVolumeToExponent(t *testing.T) {
	tests := []struct {
		vol  float64
		want float64
	}{
		{1.0, 0},
		{0.5, -1},
		{0.25, -2},
		{0.0, -100},
	}

	for _, tt := range tests {
		if got := volumeToExponent(tt.vol); gomath.Abs(got-tt.want) > 1e-9 {
			t.Errorf("volumeToExponent(%f) = %f, want %f", tt.vol, got, tt.want)
		}
	}
}

func TestProximityLevel(t *testing.T) {
	tests := []struct {
		name   string
		height float64
		want   float64
	}{
		{"underwater", -3, underwaterLevel},
		{"on surface", 0, 1},
		{"near", nearDistance, 1},
		{"far", farDistance, farLevel},
		{"beyond far", 500, farLevel},
		{"halfway", (nearDistance + farDistance) / 2, (1 + farLevel) / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProximityLevel(tt.height); gomath.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ProximityLevel(%v) = %v, want %v", tt.height, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
	}

	for _, tt := range tests {
		if got := clamp(tt.v, tt.min, tt.max); got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestVolumeWithoutDevice(t *testing.T) {
	m := New()
	if m.Volume() != 1 {
		t.Errorf("default volume = %f, want 1", m.Volume())
	}

	m.SetMasterVolume(2.0)
	if m.MasterVolume() != 1.0 {
		t.Errorf("master volume = %f, want 1.0 (clamped)", m.MasterVolume())
	}

	m.SetMasterVolume(0.5)
	m.SetListener(-1, 2.5)
	if got, want := m.Volume(), 0.5*underwaterLevel; gomath.Abs(got-want) > 1e-9 {
		t.Errorf("underwater volume = %f, want %f", got, want)
	}

	if !m.ToggleMute() || m.Volume() != 0 {
		t.Errorf("muted volume = %f, want 0", m.Volume())
	}
	if m.ToggleMute() {
		t.Error("second ToggleMute() still muted")
	}
}

func TestPlayBeforeInit(t *testing.T) {
	m := New()
	if err := m.PlayAmbient(nil, "x.wav"); err == nil {
		t.Error("PlayAmbient() before Init error = nil")
	}
	if m.Playing() {
		t.Error("Playing() = true without a track")
	}
	m.Close()
}

// rampWAV encodes frames stereo frames rising from 0 towards 1.
func rampWAV(t *testing.T, frames int) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ramp.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	i := 0
	ramp := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if i >= frames {
			return 0, false
		}
		n := 0
		for n < len(samples) && i < frames {
			v := float64(i) / float64(frames)
			samples[n] = [2]float64{v, v}
			n++
			i++
		}
		return n, true
	})
	format := beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, ramp, format); err != nil {
		f.Close()
		t.Fatalf("wav.Encode() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestDecodeLoopStreamsPastTheEnd(t *testing.T) {
	const frames = 100
	streamer, looped, format, err := decodeLoop(rampWAV(t, frames))
	if err != nil {
		t.Fatalf("decodeLoop() error = %v", err)
	}
	defer streamer.Close()

	if format.SampleRate != 8000 || format.NumChannels != 2 {
		t.Errorf("format = %+v", format)
	}
	if streamer.Len() != frames {
		t.Fatalf("Len() = %d, want %d", streamer.Len(), frames)
	}

	var out [][2]float64
	buf := make([][2]float64, 64)
	for len(out) < 6*frames+40 {
		n, ok := looped.Stream(buf)
		if !ok {
			t.Fatalf("loop stopped after %d samples: %v", len(out), looped.Err())
		}
		out = append(out, buf[:n]...)
	}
	if err := looped.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	for _, at := range []int{frames, 3 * frames, 6 * frames} {
		if out[at] != out[0] {
			t.Errorf("sample %d = %v, want the first sample %v", at, out[at], out[0])
		}
		if out[at+10] != out[10] {
			t.Errorf("sample %d = %v, want %v", at+10, out[at+10], out[10])
		}
	}
}

func TestDecodeLoopRejectsGarbage(t *testing.T) {
	if _, _, _, err := decodeLoop([]byte("not a wav file")); err == nil {
		t.Error("decodeLoop() error = nil for garbage")
	}
}
