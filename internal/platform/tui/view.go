package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/runner"
)

// World pixels covered by one terminal cell. Cells are roughly twice as
// tall as they are wide.
const (
	CellWidth  = 10.0
	CellHeight = 20.0
)

// Rows reserved around the field.
const (
	hudRows  = 1
	helpRows = 2
)

// Layout places the play field on a terminal of Cols x Rows cells.
type Layout struct {
	Cols  int
	Rows  int
	Field runner.Field // Field in world pixels
	Area  core.Rect    // Cells covered by the field
}

// NewLayout fits a field into the rows left between the HUD and the help bar.
func NewLayout(cols, rows int, groundHeight float64) Layout {
	cols = core.Max(cols, 1)
	rows = core.Max(rows, 1)
	playRows := core.Max(rows-hudRows-helpRows, 1)

	field := runner.FitField(float64(cols)*CellWidth, float64(playRows)*CellHeight, groundHeight)
	w := core.Clamp(int(math.Round(field.Width/CellWidth)), 1, cols)
	h := core.Clamp(int(math.Round(field.Height/CellHeight)), 1, playRows)

	return Layout{
		Cols:  cols,
		Rows:  rows,
		Field: field,
		Area:  core.NewRect((cols-w)/2, hudRows+(playRows-h)/2, w, h),
	}
}

// ScreenRows returns the rows drawn into the cell buffer; the help bar is
// rendered separately below them.
func (l Layout) ScreenRows() int {
	return core.Max(l.Rows-helpRows, 0)
}

// toCells maps a world rectangle to screen cells, clipped to the field.
// Returns false if nothing of the rectangle is visible.
func (l Layout) toCells(r core.RectF) (core.Rect, bool) {
	f := l.Field
	x0 := core.ClampF(r.X, 0, f.Width)
	x1 := core.ClampF(r.Right(), 0, f.Width)
	y0 := core.ClampF(r.Y, 0, f.Height)
	y1 := core.ClampF(r.Bottom(), 0, f.Height)
	if x1 <= x0 || y1 <= y0 {
		return core.Rect{}, false
	}

	cx0 := int(math.Round(x0 / CellWidth))
	cx1 := core.Max(int(math.Round(x1/CellWidth)), cx0+1)
	cy0 := int(math.Round(y0 / CellHeight))
	cy1 := core.Max(int(math.Round(y1/CellHeight)), cy0+1)

	cx0 = core.Clamp(cx0, 0, l.Area.W-1)
	cx1 = core.Clamp(cx1, cx0+1, l.Area.W)
	cy0 = core.Clamp(cy0, 0, l.Area.H-1)
	cy1 = core.Clamp(cy1, cy0+1, l.Area.H)

	return core.NewRect(l.Area.X+cx0, l.Area.Y+cy0, cx1-cx0, cy1-cy0), true
}

// DrawFrame draws one frame of the run into the screen.
func DrawFrame(scr *core.Screen, l Layout, snap runner.Snapshot, recording bool) {
	scr.Clear()

	drawHUD(scr, snap, recording)

	// Field frame
	frame := core.NewRect(l.Area.X-1, l.Area.Y-1, l.Area.W+2, l.Area.H+2)
	scr.DrawBox(frame, core.ColorDim)

	// Ground
	ground := core.NewRectF(0, l.Field.GroundLine(), l.Field.Width, l.Field.GroundHeight)
	if r, ok := l.toCells(ground); ok {
		scr.DrawRect(r, '▀', core.ColorGround)
	}

	for _, o := range snap.Obstacles {
		if r, ok := l.toCells(o.Rect()); ok {
			scr.DrawRect(r, '▓', core.ColorObstacle)
		}
	}

	// Character with a one-cell glow on each side
	if r, ok := l.toCells(snap.Character.Rect()); ok {
		glow := core.NewRect(r.X-1, r.Y, r.W+2, r.H)
		glow.X = core.Max(glow.X, l.Area.X)
		glow.W = core.Min(glow.Right(), l.Area.Right()) - glow.X
		scr.DrawRect(glow, '░', core.ColorGlowRed)
		scr.DrawRect(r, '█', core.ColorNeonRed)
	}

	if snap.Phase == runner.PhaseGameOver {
		drawGameOver(scr, l, snap.Score)
	}
}

// DrawTooSmall replaces the frame with a resize notice.
func DrawTooSmall(scr *core.Screen) {
	scr.Clear()
	y := scr.Height() / 2
	scr.DrawTextCentered(y, "terminal too small", core.ColorNeonRed)
	scr.DrawTextCentered(y+1, "enlarge the window to play", core.ColorDim)
}

// drawHUD draws score and speed on the top row.
func drawHUD(scr *core.Screen, snap runner.Snapshot, recording bool) {
	scr.DrawTextColored(1, 0, fmt.Sprintf("SCORE %d", snap.Score), core.ColorText)
	scr.DrawTextColored(14, 0, fmt.Sprintf("SPEED %.1f", snap.Speed), core.ColorDim)

	title := "NEON RUNNER"
	if recording {
		title = "● REC  " + title
	}
	scr.DrawTextColored(scr.Width()-len([]rune(title))-1, 0, title, core.ColorNeonRed)
}

// drawGameOver draws the centered game over box.
func drawGameOver(scr *core.Screen, l Layout, score int) {
	const boxW, boxH = 30, 6
	x := l.Area.X + (l.Area.W-boxW)/2
	y := l.Area.Y + (l.Area.H-boxH)/2
	box := core.NewRect(x, y, boxW, boxH)

	scr.DrawRect(box, ' ', core.ColorDefault)
	scr.DrawBox(box, core.ColorNeonRed)

	lines := []struct {
		text  string
		color core.Color
	}{
		{"GAME OVER", core.ColorNeonRed},
		{fmt.Sprintf("SCORE %d", score), core.ColorText},
		{"space or click to restart", core.ColorDim},
	}
	// The field is centered on the screen, so screen-centered text is box-centered.
	for i, ln := range lines {
		scr.DrawTextCentered(y+1+i, ln.text, ln.color)
	}
}
