package floor

import (
	"errors"
	"testing"

	"github.com/vinser/hideout/internal/dweller"
	"github.com/vinser/hideout/internal/sight"
)

func pos(x, y float64) dweller.Position {
	return dweller.Position{X: x, Y: y}
}

func withWalls(w, h int, walls ...[2]int) *Floor {
	f := Open(w, h)
	for _, c := range walls {
		f.SetWall(c[0], c[1], true)
	}
	return f
}

func TestIsBlocked(t *testing.T) {
	f := withWalls(5, 5, [2]int{2, 2})
	tests := []struct {
		name string
		p    dweller.Position
		want bool
	}{
		{"inside wall", pos(2, 2), true},
		{"overlapping edge", pos(2.9, 2), true},
		{"touching edge", pos(3, 2), false},
		{"near corner", pos(2.8, 2.8), true},
		{"clear of corner", pos(3, 3), false},
		{"open tile", pos(0, 0), false},
		{"outside floor", pos(-3, 7), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.IsBlocked(tt.p); got != tt.want {
				t.Errorf("IsBlocked(%v) = %v; want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestHasLineOfSight(t *testing.T) {
	f := withWalls(5, 5, [2]int{2, 2})
	tests := []struct {
		name string
		a, b dweller.Position
		want bool
	}{
		{"through wall", pos(0, 2), pos(4, 2), false},
		{"open row", pos(0, 0), pos(4, 0), true},
		{"grazing top edge", pos(0, 2.5), pos(4, 2.5), true},
		{"grazing corner", pos(1.5, 3.5), pos(3.5, 1.5), true},
		{"cutting corner", pos(1.5, 3.4), pos(3.5, 1.4), false},
		{"same point", pos(1, 1), pos(1, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.HasLineOfSight(tt.a, tt.b); got != tt.want {
				t.Errorf("HasLineOfSight(%v, %v) = %v; want %v", tt.a, tt.b, got, tt.want)
			}
			if got := f.HasLineOfSight(tt.b, tt.a); got != tt.want {
				t.Errorf("HasLineOfSight(%v, %v) = %v; want %v (reversed)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestLinecast(t *testing.T) {
	f := withWalls(6, 3, [2]int{2, 0})
	tests := []struct {
		name     string
		from     dweller.Position
		observer dweller.Position
		want     sight.Hit
	}{
		{"wall between", pos(0, 0), pos(4, 0), sight.HitWall},
		{"clear row", pos(0, 2), pos(4, 2), sight.HitObserver},
		{"wall behind observer", pos(0, 0), pos(1, 0), sight.HitObserver},
		{"tie goes to wall", pos(0, 0), pos(2, 0), sight.HitWall},
		{"inside body", pos(4, 2), pos(4.2, 2), sight.HitObserver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Linecast(tt.from, tt.observer); got != tt.want {
				t.Errorf("Linecast(%v, %v) = %s; want %s", tt.from, tt.observer, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	f, err := Parse([]string{
		"#.A",
		"O.#",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if f.Width() != 3 || f.Height() != 2 {
		t.Fatalf("size %dx%d; want 3x2", f.Width(), f.Height())
	}
	if !f.IsWall(0, 1) || !f.IsWall(2, 0) || f.IsWall(1, 0) {
		t.Errorf("walls not where drawn:\n%s", f)
	}
	if f.AgentStart == nil || *f.AgentStart != pos(2, 1) {
		t.Errorf("AgentStart = %v; want (2,1)", f.AgentStart)
	}
	if f.ObserverStart == nil || *f.ObserverStart != pos(0, 0) {
		t.Errorf("ObserverStart = %v; want (0,0)", f.ObserverStart)
	}
	if got, want := f.String(), "#..\n..#"; got != want {
		t.Errorf("String() = %q; want %q", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"empty", nil},
		{"ragged", []string{"###", "##"}},
		{"unknown tile", []string{"#x#"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.rows); !errors.Is(err, ErrBadLayout) {
				t.Errorf("Parse() error = %v; want ErrBadLayout", err)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	f, err := Generate(42, 21, 15)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if f.Seed != 42 {
		t.Errorf("Seed = %d; want 42", f.Seed)
	}
	walls := 0
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			if f.IsWall(x, y) {
				walls++
			}
		}
	}
	if walls == 0 || walls == f.Width()*f.Height() {
		t.Errorf("generated floor has %d walls out of %d tiles", walls, f.Width()*f.Height())
	}
}
