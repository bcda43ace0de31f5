package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/wellring/core"
	"github.com/lixenwraith/wellring/parameter"
	"github.com/lixenwraith/wellring/vmath"
)

// Field holds the shaping parameters of the sum-of-Gaussians well field
type Field struct {
	Sigma        float64 // force kernel spread (units)
	Amp          float64 // force amplitude
	CaptureSigma float64 // capture kernel spread (units)
	KEff         float64 // effective coupling (1/sec)
}

// DeriveField computes field parameters from coupling, propulsion speed and ring geometry
// Sigma shrinks mildly and amplitude saturates as effective coupling grows
func DeriveField(coupling, speed float64, ring core.Ring) Field {
	band := ring.Band()
	kEff := coupling * speed / max(1, ring.Outer)

	sigma := vmath.Clamp(
		parameter.FieldSigmaBase*band/math.Sqrt(1+parameter.FieldSigmaShrink*kEff),
		parameter.FieldSigmaMin*band,
		parameter.FieldSigmaMax*band,
	)
	amp := vmath.Clamp(
		parameter.FieldAmpBase+parameter.FieldAmpGain*kEff/(1+kEff),
		parameter.FieldAmpBase,
		parameter.FieldAmpMax,
	)

	return Field{
		Sigma:        sigma,
		Amp:          amp,
		CaptureSigma: parameter.CaptureSigmaRatio * sigma,
		KEff:         kEff,
	}
}

// ForceAndCapture evaluates the field at pos
// Force sums amp/σ²·exp(-d²/2σ²)·(well-pos) over all wells; capture is 1-exp(-Σ exp(-d²/2σc²))
func ForceAndCapture(pos r2.Vec, wells []core.Well, f Field) (force r2.Vec, capture float64) {
	if f.Sigma <= 0 || f.CaptureSigma <= 0 {
		return r2.Vec{}, 0
	}

	invSig2 := 1 / (f.Sigma * f.Sigma)
	invCap2 := 1 / (f.CaptureSigma * f.CaptureSigma)
	gain := f.Amp * invSig2

	var sum float64
	for i := range wells {
		off := r2.Sub(wells[i].Pos, pos)
		d2 := r2.Norm2(off)
		w := gain * math.Exp(-0.5*d2*invSig2)
		force = r2.Add(force, r2.Scale(w, off))
		sum += math.Exp(-0.5 * d2 * invCap2)
	}

	return force, 1 - math.Exp(-sum)
}

// Intensity returns the unnormalized field density Σ amp·exp(-d²/2σ²) at pos, used for shading
func Intensity(pos r2.Vec, wells []core.Well, f Field) float64 {
	if f.Sigma <= 0 {
		return 0
	}
	invSig2 := 1 / (f.Sigma * f.Sigma)
	var sum float64
	for i := range wells {
		d2 := r2.Norm2(r2.Sub(wells[i].Pos, pos))
		sum += f.Amp * math.Exp(-0.5*d2*invSig2)
	}
	return sum
}
