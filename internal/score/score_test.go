package score

import (
	"reflect"
	"testing"
)

func TestReport(t *testing.T) {
	tests := []struct {
		name   string
		events string // s spot, h hide, m move
		want   Report
		lines  []string
	}{
		{
			name:   "nothing counted",
			events: "",
			want:   Report{FirstSpotted: -1, LastSpotted: -1},
			lines:  []string{"Spotted 0 times", "Spotted 0.0% of the time", "Steps until first spotted: never"},
		},
		{
			name:   "never spotted",
			events: "mhmhh",
			want:   Report{Hidden: 3, Moved: 2, Ticks: 3, FirstSpotted: -1, LastSpotted: -1},
			lines:  []string{"Spotted 0 times", "Spotted 0.0% of the time", "Steps until first spotted: never"},
		},
		{
			name:   "spotted after moves",
			events: "mhmmsmhms",
			want:   Report{Spotted: 2, Hidden: 2, Moved: 5, Ticks: 4, SpottedPercent: 50, FirstSpotted: 3, LastSpotted: 5},
			lines:  []string{"Spotted 2 times", "Spotted 50.0% of the time", "Steps until first spotted: 3"},
		},
		{
			name:   "spotted at once",
			events: "shh",
			want:   Report{Spotted: 1, Hidden: 2, Ticks: 3, SpottedPercent: 100.0 / 3, FirstSpotted: 0, LastSpotted: 0},
			lines:  []string{"Spotted 1 times", "Spotted 33.3% of the time", "Steps until first spotted: 0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStats()
			for _, e := range tt.events {
				switch e {
				case 's':
					s.Spot()
				case 'h':
					s.Hide()
				case 'm':
					s.Move()
				}
			}
			got := s.Report()
			if got != tt.want {
				t.Errorf("Report() = %+v; want %+v", got, tt.want)
			}
			if lines := got.Lines(); !reflect.DeepEqual(lines, tt.lines) {
				t.Errorf("Lines() = %q; want %q", lines, tt.lines)
			}
		})
	}
}
