package sound

import (
	"fmt"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/go-logr/logr"
)

// Cue is a short sound a host plays when a counter changes.
type Cue int

const (
	CueAdd Cue = iota
	CueRemove
	CueRejected
)

const sampleRate = beep.SampleRate(44100)

// Player plays cues through the speaker. Every method is a no-op until Init
// succeeds, so hosts can keep running without audio.
type Player struct {
	volume float64
	muted  bool
	ready  bool
	log    logr.Logger
}

// NewPlayer returns a player at the given volume (0..1).
func NewPlayer(volume float64, log logr.Logger) *Player {
	return &Player{volume: volume, log: log}
}

// Init opens the speaker.
func (p *Player) Init() error {
	if p.ready {
		return nil
	}
	bufferSize := sampleRate.N(time.Second / 20)
	if err := speaker.Init(sampleRate, bufferSize); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	p.ready = true
	return nil
}

// SetMuted silences or restores cues.
func (p *Player) SetMuted(muted bool) { p.muted = muted }

// Muted reports whether cues are silenced.
func (p *Player) Muted() bool { return p.muted }

// Play queues a cue on the speaker.
func (p *Player) Play(c Cue) {
	if !p.ready || p.muted {
		return
	}
	s, err := Streamer(c)
	if err != nil {
		p.log.Error(err, "failed to build cue", "cue", int(c))
		return
	}
	p.log.V(2).Info("playing cue", "cue", int(c))
	speaker.Play(withVolume(s, p.volume))
}

// note is one tone of a cue.
type note struct {
	freq             int
	d, attack, decay time.Duration
}

var cues = map[Cue][]note{
	// Rising two-note blip.
	CueAdd: {
		{660, 40 * time.Millisecond, 5 * time.Millisecond, 10 * time.Millisecond},
		{880, 60 * time.Millisecond, 5 * time.Millisecond, 30 * time.Millisecond},
	},
	CueRemove: {
		{440, 50 * time.Millisecond, 5 * time.Millisecond, 10 * time.Millisecond},
		{330, 80 * time.Millisecond, 5 * time.Millisecond, 40 * time.Millisecond},
	},
	CueRejected: {
		{110, 80 * time.Millisecond, 5 * time.Millisecond, 30 * time.Millisecond},
	},
}

// Streamer builds the sound of a cue.
func Streamer(c Cue) (beep.Streamer, error) {
	notes, ok := cues[c]
	if !ok {
		notes = cues[CueRejected]
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		s, err := Tone(sampleRate, n.freq, n.d, n.attack, n.decay)
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return beep.Seq(parts...), nil
}

// math.Log2(0) is -Inf, so zero volume is silent instead.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
