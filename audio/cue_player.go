package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Arpeggio for the first solution, C major
var solvedNotes = []float64{523.25, 659.25, 783.99, 1046.50}

// CuePlayer plays short cues for solver milestones.
// Every method is a no-op until Initialize succeeds.
type CuePlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewCuePlayer() *CuePlayer {
	return &CuePlayer{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker; safe to call more than once
func (cp *CuePlayer) Initialize() error {
	cp.mu.Lock()
	defer cp.mu.Unlock()

	if cp.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(cp.mixer)
	cp.initialized = true
	return nil
}

// Cleanup drops queued cues
func (cp *CuePlayer) Cleanup() {
	cp.mu.Lock()
	defer cp.mu.Unlock()

	if !cp.initialized {
		return
	}

	speaker.Lock()
	cp.mixer.Clear()
	speaker.Unlock()

	cp.initialized = false
}

// PlayRecord plays a short rising chirp for an improved step record
func (cp *CuePlayer) PlayRecord() {
	cp.play(RecordCue())
}

// PlaySolved plays the arpeggio for the first agent ever reaching the goal
func (cp *CuePlayer) PlaySolved() {
	cue, err := SolvedCue()
	if err != nil {
		return
	}
	cp.play(cue)
}

func (cp *CuePlayer) play(s beep.Streamer) {
	cp.mu.Lock()
	defer cp.mu.Unlock()

	if !cp.initialized {
		return
	}

	speaker.Lock()
	cp.mixer.Add(s)
	speaker.Unlock()
}

// RecordCue is 120ms of a 600Hz to 1200Hz sweep
func RecordCue() beep.Streamer {
	return beep.Take(sampleRate.N(time.Millisecond*120), NewChirpGenerator(sampleRate, 600, 1200, time.Millisecond*120))
}

// SolvedCue is four 90ms sine notes at reduced gain
func SolvedCue() (beep.Streamer, error) {
	notes := make([]beep.Streamer, 0, len(solvedNotes))
	for _, freq := range solvedNotes {
		tone, err := generators.SineTone(sampleRate, freq)
		if err != nil {
			return nil, err
		}
		notes = append(notes, beep.Take(sampleRate.N(time.Millisecond*90), tone))
	}
	return &effects.Gain{Streamer: beep.Seq(notes...), Gain: -0.8}, nil
}

// ChirpGenerator sweeps linearly from one frequency to another over a span,
// with a quick attack and an exponential tail
type ChirpGenerator struct {
	sr       beep.SampleRate
	from, to float64
	samples  int
	pos      int
	phase    float64
}

func NewChirpGenerator(sr beep.SampleRate, from, to float64, span time.Duration) *ChirpGenerator {
	return &ChirpGenerator{
		sr:      sr,
		from:    from,
		to:      to,
		samples: max(sr.N(span), 1),
	}
}

func (g *ChirpGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.samples), 1.0)
		freq := g.from + (g.to-g.from)*progress

		// Integrate phase so the sweep has no discontinuities
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		attack := math.Min(float64(g.pos)/float64(g.sr)/0.005, 1.0)
		envelope := attack * math.Exp(-progress*3)
		sample := 0.2 * envelope * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChirpGenerator) Err() error {
	return nil
}
