package core

import (
	"strings"
	"testing"
)

// wantCell is an expected glyph and color at a screen position.
type wantCell struct {
	x, y  int
	ch    rune
	color Color
}

func checkCells(t *testing.T, s *Screen, cells []wantCell) {
	t.Helper()
	for _, w := range cells {
		if c := s.GetCell(w.x, w.y); c.Rune != w.ch || c.Color != w.color {
			t.Errorf("cell (%d, %d) = %q/%v, expected %q/%v", w.x, w.y, c.Rune, c.Color, w.ch, w.color)
		}
	}
}

func TestNewScreenIsBlank(t *testing.T) {
	tests := []struct {
		name          string
		w, h          int
		wantW, wantH  int
		wantRendering string
	}{
		{"field sized", 6, 2, 6, 2, "      \n      "},
		{"single cell", 1, 1, 1, 1, " "},
		{"negative clamps to empty", -5, -1, 0, 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(tc.w, tc.h)
			if s.Width() != tc.wantW || s.Height() != tc.wantH {
				t.Errorf("size = %dx%d, expected %dx%d", s.Width(), s.Height(), tc.wantW, tc.wantH)
			}
			if got := s.String(); got != tc.wantRendering {
				t.Errorf("String() = %q, expected %q", got, tc.wantRendering)
			}
			if tc.wantW > 0 {
				checkCells(t, s, []wantCell{{0, 0, ' ', ColorDefault}})
			}
		})
	}
}

func TestScreenSetColoredClips(t *testing.T) {
	s := NewScreen(4, 3)

	s.SetColored(2, 1, '█', ColorNeonRed)
	s.Set(0, 0, '.')
	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 3}} {
		s.SetColored(p[0], p[1], 'X', ColorObstacle)
	}

	checkCells(t, s, []wantCell{
		{2, 1, '█', ColorNeonRed},
		{0, 0, '.', ColorDefault},
		{-1, 0, ' ', ColorDefault},
		{4, 0, ' ', ColorDefault},
	})
	if got := s.Get(0, 3); got != ' ' {
		t.Errorf("Get below the screen = %q, expected blank", got)
	}
	if strings.ContainsRune(s.String(), 'X') {
		t.Errorf("out of bounds writes leaked into the screen:\n%s", s.String())
	}
}

func TestScreenClearResetsColor(t *testing.T) {
	s := NewScreen(5, 2)
	s.DrawRect(NewRect(0, 0, 5, 2), '▓', ColorObstacle)

	s.Clear()

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("after Clear, cell (%d, %d) = %+v", x, y, c)
			}
		}
	}
}

func TestScreenText(t *testing.T) {
	tests := []struct {
		name  string
		draw  func(*Screen)
		row   int
		want  string
		cells []wantCell
	}{
		{
			name: "plain",
			draw: func(s *Screen) { s.DrawText(1, 0, "RUN") },
			want: " RUN      ",
			cells: []wantCell{
				{1, 0, 'R', ColorDefault},
			},
		},
		{
			name: "colored score",
			draw: func(s *Screen) { s.DrawTextColored(0, 0, "SCORE 7", ColorText) },
			want: "SCORE 7   ",
			cells: []wantCell{
				{0, 0, 'S', ColorText},
				{6, 0, '7', ColorText},
				{7, 0, ' ', ColorDefault},
			},
		},
		{
			name: "clipped at right edge",
			draw: func(s *Screen) { s.DrawTextColored(7, 1, "NEON", ColorNeonRed) },
			row:  1,
			want: "       NEO",
			cells: []wantCell{
				{9, 1, 'O', ColorNeonRed},
			},
		},
		{
			name: "centered",
			draw: func(s *Screen) { s.DrawTextCentered(1, "GO", ColorDim) },
			row:  1,
			want: "    GO    ",
			cells: []wantCell{
				{4, 1, 'G', ColorDim},
				{5, 1, 'O', ColorDim},
			},
		},
		{
			name: "multibyte runes take one cell",
			draw: func(s *Screen) { s.DrawTextColored(0, 0, "● REC", ColorNeonRed) },
			want: "● REC     ",
			cells: []wantCell{
				{0, 0, '●', ColorNeonRed},
				{2, 0, 'R', ColorNeonRed},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(10, 2)
			tc.draw(s)
			if got := s.Row(tc.row); got != tc.want {
				t.Errorf("Row(%d) = %q, expected %q", tc.row, got, tc.want)
			}
			checkCells(t, s, tc.cells)
		})
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(8, 4)
	s.DrawRect(NewRect(2, 1, 3, 2), '▓', ColorObstacle)
	// Partially off screen
	s.DrawRect(NewRect(6, 3, 5, 5), '▀', ColorGround)

	want := []string{
		"        ",
		"  ▓▓▓   ",
		"  ▓▓▓   ",
		"      ▀▀",
	}
	if got := s.String(); got != strings.Join(want, "\n") {
		t.Errorf("String() =\n%s\nexpected\n%s", got, strings.Join(want, "\n"))
	}
	checkCells(t, s, []wantCell{
		{2, 1, '▓', ColorObstacle},
		{4, 2, '▓', ColorObstacle},
		{7, 3, '▀', ColorGround},
		{1, 1, ' ', ColorDefault},
	})
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(7, 5)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorDim)

	want := []string{
		"       ",
		" ┌───┐ ",
		" │   │ ",
		" │   │ ",
		" └───┘ ",
	}
	for y, line := range want {
		if got := s.Row(y); got != line {
			t.Errorf("Row(%d) = %q, expected %q", y, got, line)
		}
	}
	checkCells(t, s, []wantCell{
		{1, 1, '┌', ColorDim},
		{3, 4, '─', ColorDim},
		{5, 2, '│', ColorDim},
		{3, 2, ' ', ColorDefault},
	})
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 6)
	s.DrawTextColored(0, 0, "Hello", ColorText)
	s.DrawText(0, 5, "World")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("after shrink, size = %dx%d, expected 8x4", s.Width(), s.Height())
	}
	if got := s.Row(0); got != "Hello   " {
		t.Errorf("shrink should keep the top-left content, row 0 = %q", got)
	}
	checkCells(t, s, []wantCell{{0, 0, 'H', ColorText}})

	s.Resize(12, 5)
	if got := s.Row(0); !strings.HasPrefix(got, "Hello") || len(got) != 12 {
		t.Errorf("grow should keep content and pad the row, row 0 = %q", got)
	}
	if got := s.Row(4); strings.TrimSpace(got) != "" {
		t.Errorf("rows added by the grow should be blank, row 4 = %q", got)
	}
	if got := s.Row(-1); got != strings.Repeat(" ", 12) {
		t.Errorf("Row(-1) = %q, expected a blank row", got)
	}
}
