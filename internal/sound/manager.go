// Package sound plays short generated alert tones: a chirp when the agent is
// spotted, a blip when it slips out of sight, and a jingle at the end of a run.
package sound

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
)

// Sound names
const (
	SPOTTED = "spotted"
	HIDDEN  = "hidden"
	END     = "end"
)

const CommonSampleRate = beep.SampleRate(44100)

type tone struct {
	freq float64
	dur  time.Duration
}

var tones = map[string][]tone{
	SPOTTED: {{freq: 880, dur: 60 * time.Millisecond}, {freq: 1320, dur: 90 * time.Millisecond}},
	HIDDEN:  {{freq: 330, dur: 70 * time.Millisecond}},
	END:     {{freq: 523, dur: 120 * time.Millisecond}, {freq: 659, dur: 120 * time.Millisecond}, {freq: 784, dur: 240 * time.Millisecond}},
}

// Manager controls generation and playback of alert tones.
type Manager struct {
	mu        sync.Mutex
	samples   map[string]*beep.Buffer
	mix       *beep.Mixer
	format    beep.Format
	muted     bool
	vol       *effects.Volume // master volume
	backend   any
	pulseCtrl *pulseControl
}

// NewManager initializes the audio backend and renders every tone.
func NewManager(sampleRate beep.SampleRate) (*Manager, error) {
	mgr := &Manager{
		samples: make(map[string]*beep.Buffer),
		mix:     &beep.Mixer{},
		format:  beep.Format{SampleRate: sampleRate, NumChannels: 1, Precision: 2},
	}
	mgr.vol = &effects.Volume{
		Streamer: mgr.mix,
		Base:     2,
		Volume:   -2,
		Silent:   false,
	}
	if err := mgr.renderTones(); err != nil {
		return nil, err
	}
	bufferSize := sampleRate.N(time.Second / 10)
	if err := mgr.initBackend(sampleRate, bufferSize); err != nil {
		return nil, err
	}
	return mgr, nil
}

// renderTones synthesizes every named tone sequence into a buffer.
func (mgr *Manager) renderTones() error {
	for name, seq := range tones {
		var parts []beep.Streamer
		for _, t := range seq {
			sine, err := generators.SineTone(mgr.format.SampleRate, t.freq)
			if err != nil {
				return err
			}
			parts = append(parts, beep.Take(mgr.format.SampleRate.N(t.dur), sine))
		}
		buf := beep.NewBuffer(mgr.format)
		buf.Append(beep.Seq(parts...))
		mgr.samples[name] = buf
	}
	return nil
}

// Play plays the named tone from the start.
func (mgr *Manager) Play(name string) error {
	if mgr == nil {
		return errors.New("sound manager is nil")
	}
	mgr.mu.Lock()
	defer mgr.mu.Unlock()

	buf, ok := mgr.samples[name]
	if !ok {
		return errors.New("sample not loaded: " + name)
	}
	if mgr.muted {
		return nil
	}
	mgr.mix.Add(buf.Streamer(0, buf.Len()))
	return nil
}

// Mute disables all audio output.
func (mgr *Manager) Mute() {
	if mgr == nil {
		return
	}
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	mgr.muted = true
}

// Unmute enables audio output.
func (mgr *Manager) Unmute() {
	if mgr == nil {
		return
	}
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	mgr.muted = false
}

// Muted reports whether output is muted.
func (mgr *Manager) Muted() bool {
	if mgr == nil {
		return true
	}
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	return mgr.muted
}

// Close stops the backend and frees resources.
func (mgr *Manager) Close() {
	if mgr == nil {
		return
	}
	mgr.closeBackend()
}
