//go:build !linux
// +build !linux

package sound

import (
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

type pulseControl struct{}

// initBackend opens the beep speaker and plays the tone mixer through the
// master volume; Play adds each alert to that mixer.
func (mgr *Manager) initBackend(sampleRate beep.SampleRate, bufferSize int) error {
	if err := speaker.Init(sampleRate, bufferSize); err != nil {
		return err
	}
	speaker.Play(mgr.vol)
	return nil
}

// closeBackend drops whatever tones are still queued on the speaker.
func (mgr *Manager) closeBackend() {
	speaker.Clear()
}
