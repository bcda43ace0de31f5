package render

import (
	"math"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/wellring/core"
	"github.com/lixenwraith/wellring/engine"
	"github.com/lixenwraith/wellring/parameter"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.Screen, y, w int) string {
	var sb strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(ch)
	}
	return sb.String()
}

// pixelColor returns the terminal color shown for pixel (px, py)
func pixelColor(screen tcell.Screen, px, py int) tcell.Color {
	_, _, style, _ := screen.GetContent(px, helpRows+py/2)
	fg, bg, _ := style.Decompose()
	if py%2 == 0 {
		return fg
	}
	return bg
}

func newSnapshot(t *testing.T, pixW, pixH int) engine.Snapshot {
	t.Helper()
	w, h := CanvasFor(pixW, pixH, 1000)
	sim := engine.NewSimulation(engine.DefaultParams(), engine.WithSeed(3), engine.WithCanvas(w, h))
	sim.AlignWellsEquidistant()
	return sim.Snapshot()
}

func TestViewport(t *testing.T) {
	v := NewViewport(100, 50, 1000, 1000)
	assert.InDelta(t, 0.05, v.Scale, 1e-12)
	assert.InDelta(t, 25, v.OffX, 1e-12)
	assert.InDelta(t, 0, v.OffY, 1e-12)

	px, py := v.ToPixel(500, 500)
	assert.InDelta(t, 50, px, 1e-9)
	assert.InDelta(t, 25, py, 1e-9)

	x, y := v.ToCanvas(px, py)
	assert.InDelta(t, 500, x, 1e-9)
	assert.InDelta(t, 500, y, 1e-9)

	empty := NewViewport(0, 10, 1000, 1000)
	assert.Zero(t, empty.Scale)
	x, y = empty.ToCanvas(3, 3)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestCanvasFor(t *testing.T) {
	w, h := CanvasFor(160, 80, 1000)
	assert.Equal(t, 2000.0, w)
	assert.Equal(t, 1000.0, h)

	w, h = CanvasFor(0, 0, 500)
	assert.Equal(t, 500.0, w)
	assert.Equal(t, 500.0, h)
}

func TestColorConversion(t *testing.T) {
	assert.Equal(t, ModeTrueColor, ParseColorMode("truecolor"))
	assert.Equal(t, Mode256, ParseColorMode("256"))
	assert.Equal(t, ModeMono, ParseColorMode("mono"))
	assert.Equal(t, ModeTrueColor, ParseColorMode("weird"))

	assert.Equal(t, 16, cubeIndex(core.RGBBlack))
	assert.Equal(t, 231, cubeIndex(core.RGBWhite))
	assert.Equal(t, tcell.ColorWhite, toTcell(core.RGBWhite, ModeMono))
	assert.Equal(t, tcell.ColorBlack, toTcell(RgbBackground, ModeMono))
	assert.Equal(t, tcell.NewRGBColor(224, 175, 104), toTcell(RgbWell, ModeTrueColor))
}

func TestSelectNextWraps(t *testing.T) {
	r := NewTerminalRenderer(newScreen(t, 40, 10), Options{})
	assert.Equal(t, parameter.Speed, r.Selected())
	assert.Equal(t, parameter.CollisionIterations, r.SelectNext(-5))
	assert.Equal(t, parameter.Wells, r.SelectNext(1))
}

func TestToggles(t *testing.T) {
	r := NewTerminalRenderer(newScreen(t, 40, 10), Options{ShowField: true})
	assert.False(t, r.ToggleField())
	assert.True(t, r.ToggleHeadingColors())
	assert.True(t, r.ToggleLinks())
	assert.Equal(t, Options{HeadingColors: true, ShowLinks: true}, r.Options())
}

func TestDrawStatusAndHelp(t *testing.T) {
	screen := newScreen(t, 120, 30)
	r := NewTerminalRenderer(screen, Options{ShowField: true, HeadingColors: true, ShowLinks: true})
	pw, ph := r.PixelSize()
	require.Equal(t, 120, pw)
	require.Equal(t, 56, ph)

	r.SetMessage("hello")
	r.Draw(newSnapshot(t, pw, ph))

	help := rowText(screen, 0, 120)
	assert.Contains(t, help, "space play")

	status := rowText(screen, 29, 120)
	assert.Contains(t, status, "paused")
	assert.Contains(t, status, "speed=85.00")
	assert.Contains(t, status, "held")
	assert.Contains(t, status, "hello")
}

func TestDrawWells(t *testing.T) {
	screen := newScreen(t, 80, 24)
	r := NewTerminalRenderer(screen, Options{ShowField: true})
	pw, ph := r.PixelSize()

	snap := newSnapshot(t, pw, ph)
	snap.Agents = nil
	r.Draw(snap)

	view := NewViewport(pw, ph, snap.Width, snap.Height)
	want := toTcell(RgbWell, ModeTrueColor)
	for i, w := range snap.Wells {
		px, py := view.ToPixel(w.X, w.Y)
		assert.Equal(t, want, pixelColor(screen, int(px), int(py)), "well %d", i)
	}
}

func TestDrawAgentsByCapture(t *testing.T) {
	screen := newScreen(t, 80, 24)
	r := NewTerminalRenderer(screen, Options{})
	pw, ph := r.PixelSize()

	snap := newSnapshot(t, pw, ph)
	snap.Wells = nil
	snap.Params.ParticleRadius = 60
	ring := snap.Ring
	snap.Agents = []core.AgentView{
		{X: ring.Center.X + ring.Mid(), Y: ring.Center.Y},
		{X: ring.Center.X - ring.Mid(), Y: ring.Center.Y, Capture: 1},
	}
	r.Draw(snap)

	view := NewViewport(pw, ph, snap.Width, snap.Height)
	px, py := view.ToPixel(snap.Agents[0].X, snap.Agents[0].Y)
	assert.Equal(t, toTcell(RgbAgentFree, ModeTrueColor), pixelColor(screen, int(px), int(py)))
	px, py = view.ToPixel(snap.Agents[1].X, snap.Agents[1].Y)
	assert.Equal(t, toTcell(RgbAgentHeld, ModeTrueColor), pixelColor(screen, int(px), int(py)))
}

func TestDrawTinyScreen(t *testing.T) {
	screen := newScreen(t, 3, 2)
	r := NewTerminalRenderer(screen, Options{ShowField: true, ShowLinks: true})
	pw, ph := r.PixelSize()
	assert.Zero(t, ph)
	assert.NotPanics(t, func() { r.Draw(newSnapshot(t, pw, ph)) })
}

func TestDrawLinkWidthAndAlpha(t *testing.T) {
	tests := []struct {
		name       string
		width      float64
		alpha      float64
		wantMid    core.RGB
		wantBeside core.RGB
	}{
		{"hairline", 0, 0.5, RgbBand.Blend(RgbLink, 0.5), RgbBand},
		{"wide", 60, 0.5, RgbBand.Blend(RgbLink, 0.5), RgbBand.Blend(RgbLink, 0.5)},
		{"opaque", 0, 1, RgbLink, RgbBand},
		{"invisible", 60, 0, RgbBand, RgbBand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newScreen(t, 80, 24)
			r := NewTerminalRenderer(screen, Options{ShowLinks: true, LinkWidth: tt.width, LinkAlpha: tt.alpha})
			pw, ph := r.PixelSize()

			snap := newSnapshot(t, pw, ph)
			snap.Wells = nil
			ring := snap.Ring
			x := ring.Center.X + ring.Mid()
			snap.Agents = []core.AgentView{
				{X: x, Y: ring.Center.Y - 45},
				{X: x, Y: ring.Center.Y + 45},
			}
			r.Draw(snap)

			view := NewViewport(pw, ph, snap.Width, snap.Height)
			px, py := view.ToPixel(x, ring.Center.Y)
			assert.Equal(t, toTcell(tt.wantMid, ModeTrueColor), pixelColor(screen, int(px), int(py)))
			assert.Equal(t, toTcell(tt.wantBeside, ModeTrueColor), pixelColor(screen, int(px)+1, int(py)))
		})
	}
}

func TestLinkOptionsClamped(t *testing.T) {
	r := NewTerminalRenderer(newScreen(t, 40, 10), Options{LinkWidth: 1e6, LinkAlpha: math.NaN()})
	assert.Equal(t, parameter.MaxLinkWidth, r.Options().LinkWidth)
	assert.Zero(t, r.Options().LinkAlpha)
}
