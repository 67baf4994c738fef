// ledsim renders a bank of virtual RGB LEDs in the terminal, each driven
// by its own sequence, with the whole bank serviced from a single
// hint-directed poll loop.
//
// Keys: space pause/resume, r restart, b brightness, q/esc quit.
package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/HybridChild/rgb-sequencer-sub000/clock"
	"github.com/HybridChild/rgb-sequencer-sub000/colors"
	"github.com/HybridChild/rgb-sequencer-sub000/sequence"
	"github.com/HybridChild/rgb-sequencer-sub000/sequencer"
)

const (
	frameInterval = 16 * time.Millisecond
	maxIdleWait   = 250 * time.Millisecond
	blockWidth    = 24
	stepCapacity  = 8
)

var brightnessLevels = []float64{1.0, 0.6, 0.25}

// screenSink is a Sink rendering one channel as a colored terminal block
type screenSink struct {
	color colorful.Color
}

func (s *screenSink) SetColor(c colorful.Color) {
	s.color = c
}

type channelInfo struct {
	id    sequencer.ID
	name  string
	sink  *screenSink
	state sequencer.State
}

type sim struct {
	screen   tcell.Screen
	coll     *sequencer.Collection
	channels []*channelInfo

	brightnessIdx int
	audioInit     bool
}

func newSim() (*sim, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	s := &sim{screen: screen}

	if err := s.initAudio(); err != nil {
		// Non-fatal, the demo runs fine without sound
		log.Printf("audio initialization failed: %v", err)
	}

	clk := clock.NewSystem()
	s.coll = sequencer.NewCollection(clk, 4)

	defs := []struct {
		name  string
		build func() (sequence.Sequence, error)
	}{
		{"rainbow", rainbowSequence},
		{"police", policeSequence},
		{"breathing", func() (sequence.Sequence, error) { return breathingSequence(), nil }},
		{"pulse x3", pulseSequence},
	}

	for i, def := range defs {
		seq, err := def.build()
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", def.name, err)
		}
		ch := &channelInfo{id: sequencer.ID(i), name: def.name, sink: &screenSink{}}
		if err := s.coll.Add(ch.id, ch.sink); err != nil {
			return nil, err
		}
		if _, err := s.coll.Route(ch.id, sequencer.Load(seq)); err != nil {
			return nil, err
		}
		if _, err := s.coll.Route(ch.id, sequencer.Start()); err != nil {
			return nil, err
		}
		ch.state = sequencer.StateRunning
		s.channels = append(s.channels, ch)
	}

	return s, nil
}

// rainbowSequence cycles the full hue wheel in 12 seconds, forever
func rainbowSequence() (sequence.Sequence, error) {
	return sequence.NewBuilder(stepCapacity).
		Step(colors.Hue(0), clock.Millis(4000), sequence.Linear).
		Step(colors.Hue(120), clock.Millis(4000), sequence.Linear).
		Step(colors.Hue(240), clock.Millis(4000), sequence.Linear).
		Loop(sequence.Forever()).
		Build()
}

// policeSequence alternates red and blue with discrete jumps
func policeSequence() (sequence.Sequence, error) {
	return sequence.NewBuilder(stepCapacity).
		Step(colors.Red, clock.Millis(300), sequence.Discrete).
		Step(colors.Blue, clock.Millis(300), sequence.Discrete).
		Loop(sequence.Forever()).
		Build()
}

// breathingSequence modulates green with a sine wave, a function-based
// sequence that never completes
func breathingSequence() sequence.Sequence {
	const periodMs = 4000

	colorFn := func(base colorful.Color, elapsed clock.Duration) colorful.Color {
		phase := float64(elapsed.Millis()%periodMs) / periodMs
		level := 0.1 + 0.45*(1+math.Sin(2*math.Pi*phase))
		return colors.Scale(base, level)
	}
	timingFn := func(elapsed clock.Duration) sequence.Hint {
		return sequence.Continuous()
	}

	return sequence.FromFunc(colors.Green, colorFn, timingFn)
}

// pulseSequence runs three eased white/orange pulses, then lands on a
// dim warm glow. Finishing triggers the completion chime
func pulseSequence() (sequence.Sequence, error) {
	return sequence.NewBuilder(stepCapacity).
		Step(colors.White, clock.Millis(1500), sequence.EaseOutIn).
		Step(colors.Orange, clock.Millis(1500), sequence.EaseInOut).
		Loop(sequence.Times(3)).
		StartColor(colors.Off).
		LandingColor(colorful.Color{R: 0.2, G: 0.05, B: 0}).
		Build()
}

func (s *sim) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		s.audioInit = true
	}
	return err
}

// playChime sounds a short tone when a finite sequence completes
func (s *sim) playChime() {
	if !s.audioInit {
		return
	}
	sampleRate := beep.SampleRate(44100)
	sine, err := generators.SineTone(sampleRate, 523.25)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(150*time.Millisecond), sine))
}

func (s *sim) run() error {
	eventChan := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		hint, err := s.coll.ServiceAll()
		if err != nil {
			return err
		}
		s.noteCompletions()
		s.render()

		var wait time.Duration
		switch {
		case hint.IsContinuous():
			wait = frameInterval
		case hint.IsDone():
			wait = maxIdleWait
		default:
			d, _ := hint.Delay()
			wait = d.Std()
			if wait > maxIdleWait {
				wait = maxIdleWait
			}
		}

		select {
		case ev := <-eventChan:
			if quit := s.handleEvent(ev); quit {
				return nil
			}
		case <-time.After(wait):
		}
	}
}

// noteCompletions chimes once per channel transition into Complete
func (s *sim) noteCompletions() {
	for _, ch := range s.channels {
		state, err := s.coll.StateOf(ch.id)
		if err != nil {
			continue
		}
		if state == sequencer.StateComplete && ch.state != sequencer.StateComplete {
			s.playChime()
		}
		ch.state = state
	}
}

func (s *sim) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.screen.Sync()
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
			return true
		case ev.Rune() == ' ':
			s.togglePause()
		case ev.Rune() == 'r':
			s.restartAll()
		case ev.Rune() == 'b':
			s.cycleBrightness()
		}
	}
	return false
}

// togglePause pauses every running channel, or resumes every paused one
func (s *sim) togglePause() {
	anyRunning := false
	for _, ch := range s.channels {
		if state, _ := s.coll.StateOf(ch.id); state == sequencer.StateRunning {
			anyRunning = true
			break
		}
	}

	action := sequencer.Resume()
	if anyRunning {
		action = sequencer.Pause()
	}
	for _, ch := range s.channels {
		// Channels in other states reject the action; that is fine here
		_, _ = s.coll.Route(ch.id, action)
	}
}

func (s *sim) restartAll() {
	for _, ch := range s.channels {
		_, _ = s.coll.Route(ch.id, sequencer.Restart())
	}
}

func (s *sim) cycleBrightness() {
	s.brightnessIdx = (s.brightnessIdx + 1) % len(brightnessLevels)
	level := brightnessLevels[s.brightnessIdx]
	for _, ch := range s.channels {
		if seqr, err := s.coll.Sequencer(ch.id); err == nil {
			seqr.SetBrightness(level)
		}
	}
}

func (s *sim) render() {
	s.screen.Clear()

	header := "ledsim - space: pause/resume  r: restart  b: brightness  q: quit"
	drawText(s.screen, 1, 1, tcell.StyleDefault, header)

	for i, ch := range s.channels {
		y := 3 + i*2
		state, _ := s.coll.StateOf(ch.id)
		label := fmt.Sprintf("%-10s %-9s", ch.name, state)
		drawText(s.screen, 1, y, tcell.StyleDefault, label)

		c := ch.sink.color
		style := tcell.StyleDefault.Background(tcell.NewRGBColor(
			int32(c.R*255), int32(c.G*255), int32(c.B*255)))
		for x := 0; x < blockWidth; x++ {
			s.screen.SetContent(23+x, y, ' ', nil, style)
		}
	}

	level := brightnessLevels[s.brightnessIdx]
	footer := fmt.Sprintf("brightness: %.0f%%", level*100)
	drawText(s.screen, 1, 4+len(s.channels)*2, tcell.StyleDefault, footer)

	s.screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func (s *sim) close() {
	if s.audioInit {
		speaker.Close()
	}
	s.screen.Fini()
}

func main() {
	s, err := newSim()
	if err != nil {
		log.Printf("setup failed: %v", err)
		os.Exit(1)
	}
	defer s.close()

	if err := s.run(); err != nil {
		s.close()
		log.Printf("run failed: %v", err)
		os.Exit(1)
	}
}
