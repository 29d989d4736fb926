package sound

import (
	"fmt"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/generators"
)

// Tone returns a streamer that plays freq Hz for d, fading in over attack
// and out over release so the tick doesn't click.
func Tone(rate beep.SampleRate, freq int, d, attack, release time.Duration) (beep.Streamer, error) {
	sine, err := generators.SinTone(rate, freq)
	if err != nil {
		return nil, fmt.Errorf("failed to build %d Hz tone: %w", freq, err)
	}
	return &envelope{
		Streamer: beep.Take(rate.N(d), sine),
		total:    rate.N(d),
		attack:   rate.N(attack),
		release:  rate.N(release),
	}, nil
}

// envelope applies a linear attack/release ramp to a finite streamer of
// total samples.
type envelope struct {
	beep.Streamer
	total    int
	attack   int
	release  int
	position int
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *envelope) gain() float64 {
	vol := 1.0
	if e.attack > 0 && e.position < e.attack {
		vol = float64(e.position) / float64(e.attack)
	}
	if e.release > 0 && e.position >= e.total-e.release {
		vol = math.Min(vol, float64(e.total-e.position)/float64(e.release))
	}
	return vol
}
