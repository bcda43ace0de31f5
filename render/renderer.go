package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/wellring/core"
	"github.com/lixenwraith/wellring/engine"
	"github.com/lixenwraith/wellring/parameter"
	"github.com/lixenwraith/wellring/physics"
)

const (
	halfBlock = '▀'

	// helpRows and statusRows are reserved above and below the play area
	helpRows   = 1
	statusRows = 1

	fieldAlpha = 0.55
	wellRadius = 2.0 // pixels
)

const helpText = "space play  . step  r reseed  w wells  a align  f field  h heading  l links  tab select  +/- adjust  q quit"

// Options toggles optional layers
type Options struct {
	ColorMode     ColorMode
	ShowField     bool
	HeadingColors bool
	ShowLinks     bool
	// LinkWidth is the observation link stroke in canvas units, at least one pixel on screen
	LinkWidth float64
	// LinkAlpha is the link opacity in [0, 1]
	LinkAlpha float64
}

// TerminalRenderer draws simulation snapshots with half-block pixels
type TerminalRenderer struct {
	screen tcell.Screen
	opts   Options

	width, height int // cells
	view          Viewport
	pixels        []core.RGB
	linkMask      []bool

	selected parameter.ID
	message  string
}

// NewTerminalRenderer creates a renderer sized to the current screen
func NewTerminalRenderer(screen tcell.Screen, opts Options) *TerminalRenderer {
	opts.LinkWidth = clampOr(opts.LinkWidth, 0, parameter.MaxLinkWidth)
	opts.LinkAlpha = clampOr(opts.LinkAlpha, 0, 1)
	r := &TerminalRenderer{screen: screen, opts: opts, selected: parameter.Speed}
	r.Resize()
	return r
}

// Resize re-reads the screen size and returns the pixel grid dimensions
func (r *TerminalRenderer) Resize() (pixW, pixH int) {
	r.width, r.height = r.screen.Size()
	pixW = max(0, r.width)
	pixH = max(0, 2*(r.height-helpRows-statusRows))
	if len(r.pixels) != pixW*pixH {
		r.pixels = make([]core.RGB, pixW*pixH)
		r.linkMask = make([]bool, pixW*pixH)
	}
	r.view = Viewport{PixW: pixW, PixH: pixH}
	return pixW, pixH
}

// PixelSize returns the current pixel grid dimensions
func (r *TerminalRenderer) PixelSize() (int, int) {
	return r.view.PixW, r.view.PixH
}

// Options returns the current layer toggles
func (r *TerminalRenderer) Options() Options { return r.opts }

func (r *TerminalRenderer) ToggleField() bool {
	r.opts.ShowField = !r.opts.ShowField
	return r.opts.ShowField
}

func (r *TerminalRenderer) ToggleHeadingColors() bool {
	r.opts.HeadingColors = !r.opts.HeadingColors
	return r.opts.HeadingColors
}

func (r *TerminalRenderer) ToggleLinks() bool {
	r.opts.ShowLinks = !r.opts.ShowLinks
	return r.opts.ShowLinks
}

// Selected returns the parameter adjusted by +/-
func (r *TerminalRenderer) Selected() parameter.ID { return r.selected }

// SelectNext moves the selection by delta, wrapping
func (r *TerminalRenderer) SelectNext(delta int) parameter.ID {
	n := len(parameter.All())
	r.selected = parameter.ID(((int(r.selected)+delta)%n + n) % n)
	return r.selected
}

// SetMessage shows msg in the status bar until replaced
func (r *TerminalRenderer) SetMessage(msg string) { r.message = msg }

// Draw renders snap and shows the frame
func (r *TerminalRenderer) Draw(snap engine.Snapshot) {
	r.view = NewViewport(r.view.PixW, r.view.PixH, snap.Width, snap.Height)

	r.drawBackground(snap)
	if r.opts.ShowLinks && snap.Params.ObservationRadius > 0 {
		r.drawLinks(snap)
	}
	r.drawWells(snap)
	r.drawAgents(snap)
	r.flush()

	r.drawHelp()
	r.drawStatus(snap)
	r.screen.Show()
}

// drawBackground fills the ring band, rims and optional field shading
func (r *TerminalRenderer) drawBackground(snap engine.Snapshot) {
	ring := snap.Ring
	rimWidth := 1 / math.Max(r.view.Scale, 1e-9)

	wells := make([]core.Well, len(snap.Wells))
	for i, w := range snap.Wells {
		wells[i].Pos = r2.Vec{X: w.X, Y: w.Y}
	}
	shade := r.opts.ShowField && snap.Field.Amp > 0

	for py := 0; py < r.view.PixH; py++ {
		for px := 0; px < r.view.PixW; px++ {
			x, y := r.view.ToCanvas(float64(px)+0.5, float64(py)+0.5)
			p := r2.Vec{X: x, Y: y}
			d := ring.Radius(p)

			c := RgbBackground
			switch {
			case math.Abs(d-ring.Outer) <= 0.5*rimWidth, math.Abs(d-ring.Inner) <= 0.5*rimWidth:
				c = RgbRim
			case d > ring.Inner && d < ring.Outer:
				c = RgbBand
				if shade {
					v := math.Min(1, physics.Intensity(p, wells, snap.Field)/snap.Field.Amp)
					c = c.Blend(RgbField, fieldAlpha*v)
				}
			}
			r.pixels[py*r.view.PixW+px] = c
		}
	}
}

// drawLinks connects agent pairs closer than the observation radius
// Strokes are collected in a mask first so crossing links blend once
func (r *TerminalRenderer) drawLinks(snap engine.Snapshot) {
	if r.opts.LinkAlpha <= 0 {
		return
	}
	limit2 := snap.Params.ObservationRadius * snap.Params.ObservationRadius
	half := 0.5 * math.Max(1, r.opts.LinkWidth*r.view.Scale)

	clear(r.linkMask)
	for i := range snap.Agents {
		a := snap.Agents[i]
		for j := i + 1; j < len(snap.Agents); j++ {
			b := snap.Agents[j]
			dx, dy := b.X-a.X, b.Y-a.Y
			if dx*dx+dy*dy > limit2 {
				continue
			}
			x0, y0 := r.view.ToPixel(a.X, a.Y)
			x1, y1 := r.view.ToPixel(b.X, b.Y)
			r.line(int(x0), int(y0), int(x1), int(y1), func(x, y int) {
				r.stamp(x, y, half)
			})
		}
	}
	for i, on := range r.linkMask {
		if on {
			r.pixels[i] = r.pixels[i].Blend(RgbLink, r.opts.LinkAlpha)
		}
	}
}

// stamp marks link pixels within half of pixel (x, y), always including (x, y) itself
func (r *TerminalRenderer) stamp(x, y int, half float64) {
	r.mark(x, y)
	if half <= 0.5 {
		return
	}
	n := int(math.Ceil(half))
	h2 := half * half
	for dy := -n; dy <= n; dy++ {
		for dx := -n; dx <= n; dx++ {
			if float64(dx*dx+dy*dy) <= h2 {
				r.mark(x+dx, y+dy)
			}
		}
	}
}

func (r *TerminalRenderer) mark(x, y int) {
	if x < 0 || y < 0 || x >= r.view.PixW || y >= r.view.PixH {
		return
	}
	r.linkMask[y*r.view.PixW+x] = true
}

func (r *TerminalRenderer) drawWells(snap engine.Snapshot) {
	for _, w := range snap.Wells {
		px, py := r.view.ToPixel(w.X, w.Y)
		r.disk(px, py, wellRadius, RgbWell)
	}
}

func (r *TerminalRenderer) drawAgents(snap engine.Snapshot) {
	radius := math.Max(0.5, snap.Params.ParticleRadius*r.view.Scale)
	for _, a := range snap.Agents {
		px, py := r.view.ToPixel(a.X, a.Y)
		r.disk(px, py, radius, r.agentColor(a))
	}
}

// agentColor is the heading hue or, without heading colors, a free-to-held ramp
func (r *TerminalRenderer) agentColor(a core.AgentView) core.RGB {
	if r.opts.HeadingColors {
		return core.HeadingColor(a.Theta).Blend(RgbAgentHeld, 0.5*a.Capture)
	}
	return RgbAgentFree.Blend(RgbAgentHeld, a.Capture)
}

// disk fills pixels whose centers lie within radius of (cx, cy)
func (r *TerminalRenderer) disk(cx, cy, radius float64, c core.RGB) {
	rr := radius * radius
	x0, x1 := int(math.Floor(cx-radius)), int(math.Ceil(cx+radius))
	y0, y1 := int(math.Floor(cy-radius)), int(math.Ceil(cy+radius))
	hit := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= rr {
				hit = r.set(x, y, c) || hit
			}
		}
	}
	if !hit {
		r.set(int(cx), int(cy), c)
	}
}

// line walks a Bresenham segment calling plot for every pixel
func (r *TerminalRenderer) line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (r *TerminalRenderer) set(x, y int, c core.RGB) bool {
	if x < 0 || y < 0 || x >= r.view.PixW || y >= r.view.PixH {
		return false
	}
	r.pixels[y*r.view.PixW+x] = c
	return true
}

// flush writes pixel pairs as half-block cells below the help row
func (r *TerminalRenderer) flush() {
	w := r.view.PixW
	for cy := 0; cy < r.view.PixH/2; cy++ {
		for x := 0; x < w; x++ {
			top := r.pixels[(2*cy)*w+x]
			bottom := r.pixels[(2*cy+1)*w+x]
			style := tcell.StyleDefault.
				Foreground(toTcell(top, r.opts.ColorMode)).
				Background(toTcell(bottom, r.opts.ColorMode))
			r.screen.SetContent(x, helpRows+cy, halfBlock, nil, style)
		}
	}
}

func (r *TerminalRenderer) drawHelp() {
	style := tcell.StyleDefault.Foreground(RgbHelpFg).Background(RgbStatusBg)
	r.text(0, 0, padRight(helpText, r.width), style)
}

// drawStatus writes run state, counters and the selected parameter on the last row
func (r *TerminalRenderer) drawStatus(snap engine.Snapshot) {
	if r.height < 1 {
		return
	}
	y := r.height - 1
	base := tcell.StyleDefault.Foreground(RgbStatusFg).Background(RgbStatusBg)

	state := "■ paused"
	if snap.Running {
		state = "▶ running"
	}
	held := snap.Last.Held
	left := fmt.Sprintf(" %s  step %d  t %.1fs  held %d/%d  C %.2f  overlap %.2f ",
		state, snap.Steps, snap.SimTime, held, len(snap.Agents), snap.Last.MeanCapture, snap.Last.Collisions.MaxOverlap)

	sel := r.selected
	p := snap.Params
	param := fmt.Sprintf(" %s=%s ", sel.Label(), formatParam(sel, p.Get(sel)))

	x := r.text(0, y, left, base)
	x = r.text(x, y, param, tcell.StyleDefault.Foreground(RgbSelectedFg).Background(RgbSelectedBg))
	if r.message != "" {
		x = r.text(x, y, " "+r.message, base)
	}
	r.text(x, y, strings.Repeat(" ", max(0, r.width-x)), base)
}

// text writes s at (x, y) clipped to the screen width, returns the next column
func (r *TerminalRenderer) text(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		if x >= r.width {
			return x
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

func formatParam(id parameter.ID, v float64) string {
	if id.Range().Integer {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// clampOr limits v to [lo, hi], NaN maps to lo
func clampOr(v, lo, hi float64) float64 {
	if !(v >= lo) {
		return lo
	}
	return math.Min(v, hi)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
