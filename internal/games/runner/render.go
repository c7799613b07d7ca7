package runner

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// Top-down view: depth runs down the screen, the player near the bottom.
const (
	viewFar     = -60.0 // Depth shown on the first field row
	viewNear    = 4.0   // Depth shown on the last field row
	colsPerUnit = 2.0
	roadHalf    = 3.75
	hudRows     = 1
)

// Glyphs.
const (
	GlyphLow        = '▄'
	GlyphTall       = '█'
	GlyphFloating   = '▀'
	GlyphCoin       = 'o'
	GlyphMagnet     = 'U'
	GlyphJetpack    = 'J'
	GlyphHoverboard = '='
	GlyphTree       = '♣'
	GlyphHouse      = '⌂'
	GlyphParticle   = '·'
	GlyphPlayer     = '@'
	GlyphRolling    = '_'
	GlyphFlying     = '^'
	GlyphRoadEdge   = '│'
	GlyphLaneMark   = '┆'
)

// Render draws the current frame into dst.
func (g *Game) Render(dst *core.Screen) {
	DrawSnapshot(dst, g.Snapshot())
}

// DrawSnapshot draws a snapshot into dst as a top-down view of the road.
func DrawSnapshot(dst *core.Screen, s Snapshot) {
	dst.Clear()
	v := newViewport(dst)

	v.drawRoad(dst)
	for i := range s.Entities {
		v.drawEntity(dst, &s.Entities[i])
	}
	v.drawPlayer(dst, s.Player)
	drawHUD(dst, s)

	switch {
	case s.Phase == PhaseIdle:
		drawCenteredMessage(dst, "ENDLESS RUNNER", "Press Enter to start")
	case s.Phase == PhaseGameOver:
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Coins: %d  |  R restart  V revive", s.Score, s.Coins))
	case s.Paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

type viewport struct {
	centre int
	top    int
	rows   int
}

func newViewport(dst *core.Screen) viewport {
	return viewport{
		centre: dst.Width() / 2,
		top:    hudRows,
		rows:   dst.Height() - hudRows,
	}
}

// row maps a depth to a screen row; ok is false when it is out of view.
func (v viewport) row(z float64) (int, bool) {
	if v.rows <= 0 || z < viewFar || z > viewNear {
		return 0, false
	}
	t := (z - viewFar) / (viewNear - viewFar)
	return v.top + int(math.Round(t*float64(v.rows-1))), true
}

func (v viewport) col(x float64) int {
	return v.centre + int(math.Round(x*colsPerUnit))
}

func (v viewport) drawRoad(dst *core.Screen) {
	for _, x := range []float64{-roadHalf, roadHalf} {
		dst.DrawVLine(v.col(x), v.top, v.rows, GlyphRoadEdge, core.ColorGray)
	}
	for _, x := range []float64{-roadHalf / 3, roadHalf / 3} {
		c := v.col(x)
		for y := v.top; y < v.top+v.rows; y += 2 {
			dst.SetColored(c, y, GlyphLaneMark, core.ColorGray)
		}
	}
}

func (v viewport) drawEntity(dst *core.Screen, e *EntityView) {
	y, ok := v.row(e.Z)
	if !ok {
		return
	}
	glyph, color := entityGlyph(e)
	if e.Kind == KindParticle && e.Opacity < 0.5 {
		color = core.ColorGray
	}

	left := v.col(e.X - e.W/2)
	right := v.col(e.X + e.W/2)
	if e.Kind == KindCoin || e.Kind.IsPowerUp() || e.Kind == KindParticle {
		left, right = v.col(e.X), v.col(e.X)+1
	}
	for x := left; x < right; x++ {
		dst.SetColored(x, y, glyph, color)
	}
}

func entityGlyph(e *EntityView) (rune, core.Color) {
	switch e.Kind {
	case KindObstacleLow:
		return GlyphLow, core.ColorRed
	case KindObstacleTall:
		return GlyphTall, core.ColorMagenta
	case KindObstacleFloating:
		return GlyphFloating, core.ColorCyan
	case KindCoin:
		return GlyphCoin, core.ColorBrightYellow
	case KindPowerUpMagnet:
		return GlyphMagnet, core.ColorBrightRed
	case KindPowerUpJetpack:
		return GlyphJetpack, core.ColorBrightGreen
	case KindPowerUpHoverboard:
		return GlyphHoverboard, core.ColorBlue
	case KindSceneryTree:
		return GlyphTree, core.ColorGreen
	case KindSceneryHouse:
		return GlyphHouse, core.ColorOrange
	case KindParticle:
		return GlyphParticle, core.ColorYellow
	default:
		return '?', core.ColorDefault
	}
}

func (v viewport) drawPlayer(dst *core.Screen, p PlayerView) {
	y, ok := v.row(p.Z)
	if !ok {
		return
	}
	glyph := rune(GlyphPlayer)
	switch {
	case p.State == Flying:
		glyph = GlyphFlying
	case p.Rolling:
		glyph = GlyphRolling
	}
	color := core.ColorBrightGreen
	switch {
	case p.Timers.InvincibleMS > 0 && p.Pulse < 0.5:
		color = core.ColorGray
	case p.Timers.Hoverboard > 0:
		color = core.ColorBlue
	}
	dst.SetColored(v.col(p.X), y, glyph, color)
	if p.Airborne && y+1 < dst.Height() {
		// Shadow on the ground below a jumping player.
		dst.SetColored(v.col(p.X), y+1, '.', core.ColorGray)
	}
}

func drawHUD(dst *core.Screen, s Snapshot) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d  Coins: %d", s.Score, s.Coins))

	var effects []string
	t := s.Player.Timers
	if t.Magnet > 0 {
		effects = append(effects, fmt.Sprintf("MAG %.0fs", math.Ceil(t.Magnet)))
	}
	if t.Jetpack > 0 {
		effects = append(effects, fmt.Sprintf("JET %.0fs", math.Ceil(t.Jetpack)))
	}
	if t.Hoverboard > 0 {
		effects = append(effects, fmt.Sprintf("BOARD %.0fs", math.Ceil(t.Hoverboard)))
	}
	right := fmt.Sprintf("Spd: %.1f", s.Speed)
	if len(effects) > 0 {
		right = strings.Join(effects, " ") + "  " + right
	}
	dst.DrawText(dst.Width()-len([]rune(right))-1, 0, right)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
