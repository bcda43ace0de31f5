package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/wellring/physics"
)

func drain(s beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

// TestOscillatorLength verifies sample count and amplitude bounds for every wave
func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(48000)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveTriangle} {
		n, peak := drain(NewOscillator(440, 100*time.Millisecond, wave, rate))
		if n != 4800 {
			t.Errorf("wave %d: expected 4800 samples, got %d", wave, n)
		}
		if peak > 1 || peak < 0.9 {
			t.Errorf("wave %d: peak %f out of range", wave, peak)
		}
	}
}

// TestEnvelopeRamps verifies the envelope starts silent and stays bounded
func TestEnvelopeRamps(t *testing.T) {
	rate := beep.SampleRate(48000)
	env := NewEnvelope(NewOscillator(100, 50*time.Millisecond, WaveSquare, rate), 50*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, 2400)
	n, _ := env.Stream(buf)
	if n != 2400 {
		t.Fatalf("expected 2400 samples, got %d", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample should be silent, got %f", buf[0][0])
	}
	if math.Abs(buf[1200][0]) != 1 {
		t.Errorf("sustain sample should be full scale, got %f", buf[1200][0])
	}
	if math.Abs(buf[2399][0]) > 0.01 {
		t.Errorf("last sample should be near silent, got %f", buf[2399][0])
	}
	if env.Err() != nil {
		t.Errorf("unexpected error: %v", env.Err())
	}
}

// TestScaleFreq verifies pentatonic degrees and wrapping
func TestScaleFreq(t *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{0, 440},
		{3, 440 * math.Pow(2, 7.0/12)},
		{5, 880},
		{10, 440},
		{-1, 440 * math.Pow(2, 21.0/12)},
	}
	for _, tt := range tests {
		if got := ScaleFreq(tt.n); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ScaleFreq(%d) = %f, want %f", tt.n, got, tt.want)
		}
	}
}

// TestCaptureChimeShape verifies chime duration and headroom
func TestCaptureChimeShape(t *testing.T) {
	n, peak := drain(CaptureChime(2, 1))
	if n != sampleRate.N(chimeDuration) {
		t.Errorf("expected %d samples, got %d", sampleRate.N(chimeDuration), n)
	}
	if peak <= 0 || peak > 1 {
		t.Errorf("peak %f out of range", peak)
	}

	_, silent := drain(CaptureChime(2, 0))
	if silent != 0 {
		t.Errorf("zero volume chime should be silent, peak %f", silent)
	}

	n, _ = drain(ReleaseTone(1))
	if n != sampleRate.N(releaseDuration) {
		t.Errorf("expected %d release samples, got %d", sampleRate.N(releaseDuration), n)
	}
}

// TestSoundManagerGracefulDegradation verifies nothing plays before Initialize
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(0.5, nil)
	if sm.PlayCapture(1) || sm.PlayRelease() {
		t.Error("uninitialized manager should drop sounds")
	}
	sm.Observe(physics.StepReport{Captured: 1, Released: 1})
	sm.Cleanup()
	if sm.mixer.Len() != 0 {
		t.Errorf("mixer should be empty, has %d", sm.mixer.Len())
	}
}

// TestSoundManagerRateLimit verifies bursts are capped
func TestSoundManagerRateLimit(t *testing.T) {
	sm := NewSoundManager(0.5, nil)
	sm.initialized = true
	now := time.Unix(100, 0)
	sm.now = func() time.Time { return now }

	played := 0
	for i := 0; i < 10; i++ {
		if sm.PlayCapture(i) {
			played++
		}
	}
	if played != eventBurst {
		t.Errorf("expected %d sounds in burst, got %d", eventBurst, played)
	}

	now = now.Add(time.Second)
	sm.Observe(physics.StepReport{Captured: 1, Held: 3, Released: 1})
	if got := sm.mixer.Len(); got != eventBurst+2 {
		t.Errorf("expected %d queued streamers, got %d", eventBurst+2, got)
	}
}

// TestSoundManagerMuted verifies zero volume drops everything
func TestSoundManagerMuted(t *testing.T) {
	sm := NewSoundManager(-3, nil)
	sm.initialized = true
	if sm.PlayCapture(0) {
		t.Error("muted manager should drop sounds")
	}
}
