package main

import (
	"errors"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/vinser/hideout/internal/sound"
)

func TestOpenSound(t *testing.T) {
	tests := []struct {
		name      string
		muted     bool
		fail      bool
		wantNil   bool
		wantMuted bool
	}{
		{"muted session keeps a manager", true, false, false, true},
		{"audible session", false, false, false, false},
		{"no backend", false, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open := func(beep.SampleRate) (*sound.Manager, error) {
				if tt.fail {
					return nil, errors.New("no audio device")
				}
				return &sound.Manager{}, nil
			}
			sm := openSound(tt.muted, open)
			if (sm == nil) != tt.wantNil {
				t.Fatalf("openSound() = %v; want nil %v", sm, tt.wantNil)
			}
			if got := sm.Muted(); got != tt.wantMuted {
				t.Errorf("Muted() = %v; want %v", got, tt.wantMuted)
			}
			if sm != nil && tt.muted {
				sm.Unmute()
				if sm.Muted() {
					t.Error("manager stays muted after Unmute")
				}
			}
		})
	}
}
