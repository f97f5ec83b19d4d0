package report

import (
	"strings"
	"testing"
	"time"

	"github.com/vinser/hideout/internal/score"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		report  score.Report
		want    []string
		notWant []string
	}{
		{
			name:    "never spotted",
			report:  score.Report{Hidden: 4, FirstSpotted: -1, LastSpotted: -1},
			want:    []string{"Spotted **0** times", "first spotted: never"},
			notWant: []string{"last spotted"},
		},
		{
			name:   "spotted",
			report: score.Report{Spotted: 1, Hidden: 3, Moved: 5, SpottedPercent: 25, FirstSpotted: 2, LastSpotted: 2},
			want:   []string{"**25.0%**", "first spotted: **2**", "last spotted: **2**"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md, err := Markdown(Data{
				Name:      "pillars",
				Algorithm: "lookahead",
				RunID:     "run-1",
				Elapsed:   3 * time.Second,
				Report:    tt.report,
			})
			if err != nil {
				t.Fatalf("Markdown() error = %v", err)
			}
			if !strings.Contains(md, "# Run pillars") || !strings.Contains(md, "`lookahead`") {
				t.Errorf("header missing from:\n%s", md)
			}
			for _, w := range tt.want {
				if !strings.Contains(md, w) {
					t.Errorf("missing %q in:\n%s", w, md)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(md, w) {
					t.Errorf("unexpected %q in:\n%s", w, md)
				}
			}
		})
	}
}
