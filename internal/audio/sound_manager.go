// Package audio plays the engine's procedural sound effects through the
// system speaker.
package audio

import (
	"sync"
	"time"

	"raycaster/internal/gamestate"
	"raycaster/internal/logger"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"
)

// SoundType identifies an effect
type SoundType int

const (
	SoundStep SoundType = iota
	SoundScream
	SoundWin
)

func (s SoundType) String() string {
	switch s {
	case SoundStep:
		return "step"
	case SoundScream:
		return "scream"
	case SoundWin:
		return "win"
	}
	return "unknown"
}

// SoundManager manages all game audio. Every method is safe to call before
// Initialize or after it failed; playback is then skipped.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	initialized bool
	log         *logrus.Entry
}

// NewSoundManager creates a new sound manager
func NewSoundManager(sampleRate int, volume float64) *SoundManager {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		rate:   beep.SampleRate(sampleRate),
		volume: volume,
		log:    logger.For("audio"),
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.WithField("sample_rate", int(sm.rate)).Debug("speaker initialized")
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Streamer builds the effect for a sound type at the manager's volume.
func (sm *SoundManager) Streamer(st SoundType) beep.Streamer {
	var s beep.Streamer
	switch st {
	case SoundScream:
		s = ScreamSound(sm.rate)
	case SoundWin:
		s = WinSound(sm.rate)
	default:
		s = StepSound(sm.rate)
	}
	return newVolume(s, sm.volume)
}

// Play queues an effect. It returns false when audio is not running.
func (sm *SoundManager) Play(st SoundType) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return false
	}

	s := sm.Streamer(st)
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	return true
}

// PlayStep plays a footstep
func (sm *SoundManager) PlayStep() { sm.Play(SoundStep) }

// PlayScream plays the screamer shriek
func (sm *SoundManager) PlayScream() { sm.Play(SoundScream) }

// PlayWin plays the level complete jingle
func (sm *SoundManager) PlayWin() { sm.Play(SoundWin) }

// Handle plays the sounds for one frame's events.
func (sm *SoundManager) Handle(ev gamestate.Events) {
	if ev.Stepped {
		sm.PlayStep()
	}
	if ev.Screamed {
		sm.PlayScream()
	}
	if ev.Won {
		sm.PlayWin()
	}
}
