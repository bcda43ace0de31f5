package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const (
	sampleRate = beep.SampleRate(48000)

	chimeDuration = 180 * time.Millisecond
	chimeAttack   = 5 * time.Millisecond
	chimeRelease  = 140 * time.Millisecond

	releaseDuration = 120 * time.Millisecond
	releaseAttack   = 10 * time.Millisecond
	releaseRelease  = 90 * time.Millisecond

	// baseFreq is A4; captures climb a pentatonic scale above it
	baseFreq = 440.0
)

// pentatonic semitone offsets within one octave
var pentatonic = [...]int{0, 2, 4, 7, 9}

// ScaleFreq returns the frequency of pentatonic degree n above baseFreq, wrapping after two octaves
func ScaleFreq(n int) float64 {
	n %= 2 * len(pentatonic)
	if n < 0 {
		n += 2 * len(pentatonic)
	}
	semis := 12*(n/len(pentatonic)) + pentatonic[n%len(pentatonic)]
	return baseFreq * math.Pow(2, float64(semis)/12)
}

// CaptureChime is a bell-like sine pair at degree held of the scale
// Higher held counts ring higher so a filling ring is audible
func CaptureChime(held int, vol float64) beep.Streamer {
	freq := ScaleFreq(held)
	fund := NewEnvelope(NewOscillator(freq, chimeDuration, WaveSine, sampleRate), chimeDuration, chimeAttack, chimeRelease, sampleRate)
	over := NewEnvelope(NewOscillator(2*freq, chimeDuration, WaveSine, sampleRate), chimeDuration, chimeAttack, chimeRelease/2, sampleRate)
	mixed := beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3))
	return newVolume(beep.Take(sampleRate.N(chimeDuration), mixed), vol)
}

// ReleaseTone is a short low triangle blip for an agent escaping a well
func ReleaseTone(vol float64) beep.Streamer {
	osc := NewOscillator(baseFreq/2, releaseDuration, WaveTriangle, sampleRate)
	return newVolume(NewEnvelope(osc, releaseDuration, releaseAttack, releaseRelease, sampleRate), 0.6*vol)
}
