package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/wellring/physics"
)

// eventBurst and eventRate bound how many chimes start per second
const (
	eventRate  = 8
	eventBurst = 4
)

// SoundManager sonifies capture transitions through a shared beep mixer
// All methods are safe without Initialize; they do nothing until the speaker is up
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	limiter     *rate.Limiter
	volume      float64
	initialized bool
	log         *zap.Logger
	now         func() time.Time
}

// NewSoundManager creates a manager at linear volume in [0, 1]
func NewSoundManager(volume float64, log *zap.Logger) *SoundManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &SoundManager{
		mixer:   &beep.Mixer{},
		limiter: rate.NewLimiter(eventRate, eventBurst),
		volume:  min(1, max(0, volume)),
		log:     log,
		now:     time.Now,
	}
}

// Initialize opens the speaker; failure leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.Debug("speaker initialized", zap.Int("sample_rate", int(sampleRate)))
	return nil
}

// Cleanup silences and drops every queued sound
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// PlayCapture queues a chime for the held-th captured agent, returns false if dropped
func (sm *SoundManager) PlayCapture(held int) bool {
	return sm.play(CaptureChime(held, sm.volume))
}

// PlayRelease queues a release blip, returns false if dropped
func (sm *SoundManager) PlayRelease() bool {
	return sm.play(ReleaseTone(sm.volume))
}

// Observe is a step observer: one chime per step with captures, one blip per step with releases
func (sm *SoundManager) Observe(rep physics.StepReport) {
	if rep.Captured > 0 {
		sm.PlayCapture(rep.Held)
	}
	if rep.Released > 0 {
		sm.PlayRelease()
	}
}

func (sm *SoundManager) play(s beep.Streamer) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.volume <= 0 {
		return false
	}
	if !sm.limiter.AllowN(sm.now(), 1) {
		return false
	}
	sm.add(s)
	return true
}

func (sm *SoundManager) add(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
