package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/runner"
)

func TestNewLayout(t *testing.T) {
	l := NewLayout(80, 24, 20)

	if l.Field.Width != 720 || l.Field.Height != 270 || l.Field.GroundHeight != 20 {
		t.Errorf("field = %+v, expected 720x270 with ground 20", l.Field)
	}
	if want := core.NewRect(4, 4, 72, 14); l.Area != want {
		t.Errorf("area = %+v, expected %+v", l.Area, want)
	}
	if l.ScreenRows() != 22 {
		t.Errorf("ScreenRows() = %d, expected 22", l.ScreenRows())
	}
}

func TestNewLayoutTinyTerminal(t *testing.T) {
	l := NewLayout(0, 0, 20)

	if err := l.Field.Validate(); err != nil {
		t.Errorf("tiny terminal should still give a valid field: %v", err)
	}
	if l.Area.W < 1 || l.Area.H < 1 {
		t.Errorf("area should be at least one cell, got %+v", l.Area)
	}
	if l.ScreenRows() != 0 {
		t.Errorf("ScreenRows() = %d, expected 0", l.ScreenRows())
	}
}

func TestNewLayoutHoldsCharacter(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	tests := []struct {
		cols, rows int
		ok         bool
	}{
		{80, 24, true},
		{80, 7, true},
		{80, 6, false},
		{20, 24, false},
	}

	for _, tc := range tests {
		l := NewLayout(tc.cols, tc.rows, cfg.Field.GroundHeight)
		err := l.Field.Holds(cfg)
		if (err == nil) != tc.ok {
			t.Errorf("NewLayout(%d, %d).Field.Holds() = %v, expected ok=%v", tc.cols, tc.rows, err, tc.ok)
		}
	}
}

func TestDrawTooSmall(t *testing.T) {
	scr := core.NewScreen(40, 4)
	scr.DrawTextColored(0, 0, "SCORE 3", core.ColorText)

	DrawTooSmall(scr)

	if strings.Contains(scr.String(), "SCORE") {
		t.Error("notice should clear the previous frame")
	}
	if !strings.Contains(scr.Row(2), "terminal too small") {
		t.Errorf("row 2 = %q, expected the notice", scr.Row(2))
	}
}

func TestLayoutToCells(t *testing.T) {
	l := NewLayout(80, 24, 20)

	tests := []struct {
		name    string
		r       core.RectF
		want    core.Rect
		visible bool
	}{
		{"grounded character", core.NewRectF(36, 200, 50, 50), core.NewRect(8, 14, 5, 3), true},
		{"just spawned obstacle", core.NewRectF(720, 200, 50, 50), core.Rect{}, false},
		{"above the field", core.NewRectF(36, -100, 50, 50), core.Rect{}, false},
		{"ground", core.NewRectF(0, 250, 720, 20), core.NewRect(4, 17, 72, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.toCells(tt.r)
			if ok != tt.visible {
				t.Fatalf("visible = %v, expected %v", ok, tt.visible)
			}
			if ok && got != tt.want {
				t.Errorf("toCells() = %+v, expected %+v", got, tt.want)
			}
		})
	}
}

func newViewSim(t *testing.T, l Layout) *runner.Sim {
	t.Helper()
	sim, err := runner.New(config.DefaultRunnerConfig(), l.Field)
	if err != nil {
		t.Fatalf("runner.New() failed: %v", err)
	}
	return sim
}

func TestDrawFrameRunning(t *testing.T) {
	l := NewLayout(80, 24, 20)
	scr := core.NewScreen(l.Cols, l.ScreenRows())
	sim := newViewSim(t, l)

	DrawFrame(scr, l, sim.Snapshot(), false)
	out := scr.String()

	for _, want := range []string{"SCORE 0", "SPEED 5.0", "NEON RUNNER", "█", "▀"} {
		if !strings.Contains(out, want) {
			t.Errorf("frame should contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "GAME OVER") || strings.Contains(out, "REC") {
		t.Errorf("running frame without recording should not show overlays:\n%s", out)
	}
	if got := scr.GetCell(8, 14); got.Rune != '█' || got.Color != core.ColorNeonRed {
		t.Errorf("character cell = %+v, expected neon block", got)
	}
}

func TestDrawFrameGameOver(t *testing.T) {
	l := NewLayout(80, 24, 20)
	scr := core.NewScreen(l.Cols, l.ScreenRows())
	sim := newViewSim(t, l)

	// Standing still, the first obstacle reaches the character within 6s
	for i := 0; i < 6*60 && !sim.GameOver(); i++ {
		sim.Advance(runner.ReferenceFrame)
	}
	if !sim.GameOver() {
		t.Fatal("expected the run to end")
	}

	DrawFrame(scr, l, sim.Snapshot(), true)
	out := scr.String()

	for _, want := range []string{"GAME OVER", "space or click to restart", "● REC", "▓"} {
		if !strings.Contains(out, want) {
			t.Errorf("frame should contain %q:\n%s", want, out)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	scr := core.NewScreen(10, 1)
	scr.DrawTextColored(0, 0, "SCORE", core.ColorText)

	if out := RenderScreen(scr); !strings.Contains(out, "SCORE") {
		t.Errorf("rendered output should contain the text, got %q", out)
	}
}
