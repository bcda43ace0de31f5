package parameter

// Observation link appearance
const (
	// DefaultLinkWidth is the link stroke width (canvas units), drawn at least one pixel wide
	DefaultLinkWidth = 10.0
	// DefaultLinkAlpha is the link opacity in [0, 1]
	DefaultLinkAlpha = 0.5
	// MaxLinkWidth bounds the stroke so a link never floods the band
	MaxLinkWidth = 60.0
)
