package term

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"

	"github.com/iburimskiy/animated-dots/internal/anim"
	"github.com/iburimskiy/animated-dots/internal/config"
	"github.com/iburimskiy/animated-dots/internal/dots"
	"github.com/iburimskiy/animated-dots/internal/prefs"
	"github.com/iburimskiy/animated-dots/internal/sound"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	leftMargin    = 2
	helpText      = "+/- count  tab/up/down pick a row  s style  m sound  q quit"
)

var background = color.NRGBA{R: 0x12, G: 0x14, B: 0x1c, A: 0xff}

type command int

const (
	cmdNone command = iota
	cmdIncrement
	cmdDecrement
	cmdSelectPrev
	cmdSelectNext
	cmdCycleRow
	cmdCycleStyle
	cmdToggleSound
	cmdQuit
)

// commandFor maps a key press to a command.
func commandFor(key tcell.Key, r rune) command {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return cmdQuit
	case tcell.KeyRight:
		return cmdIncrement
	case tcell.KeyLeft:
		return cmdDecrement
	case tcell.KeyUp:
		return cmdSelectPrev
	case tcell.KeyDown:
		return cmdSelectNext
	case tcell.KeyTab:
		return cmdCycleRow
	case tcell.KeyRune:
		switch r {
		case '+', '=':
			return cmdIncrement
		case '-', '_':
			return cmdDecrement
		case 'k':
			return cmdSelectPrev
		case 'j':
			return cmdSelectNext
		case 's':
			return cmdCycleStyle
		case 'm':
			return cmdToggleSound
		case 'q':
			return cmdQuit
		}
	}
	return cmdNone
}

// Options wires a Host to its collaborators. Nil Prefs and Player run
// without persistence and without sound.
type Options struct {
	File   config.File
	Prefs  *prefs.Manager
	Player *sound.Player
	Log    logr.Logger
}

// Host runs counters in a terminal. All counter calls happen on the Run
// goroutine; a second goroutine only forwards tcell events.
type Host struct {
	screen   tcell.Screen
	clock    *anim.Clock
	file     config.File
	rows     []*dots.Counter
	selected int

	prefs  *prefs.Manager
	player *sound.Player
	log    logr.Logger
}

// New builds a host on an initialized screen.
func New(screen tcell.Screen, opts Options) *Host {
	h := &Host{
		screen: screen,
		clock:  anim.NewClock(),
		file:   opts.File,
		prefs:  opts.Prefs,
		player: opts.Player,
		log:    opts.Log,
	}
	if h.log.GetSink() == nil {
		h.log = logr.Discard()
	}
	if h.prefs == nil {
		h.prefs = prefs.NewManager(nil, h.log)
	}
	if h.player == nil {
		h.player = sound.NewPlayer(0, h.log)
	}
	h.player.SetMuted(h.prefs.Settings().Muted)

	for i, cfg := range h.file.WithStyle(h.prefs.Settings().Style).Rows {
		h.rows = append(h.rows, dots.New(cfg, dots.WithClock(h.clock), dots.WithLogger(h.log.WithValues("row", i))))
	}
	screen.SetStyle(tcell.StyleDefault.Background(toTcell(background)))
	return h
}

// Run draws and handles input until the user quits or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go forwardEvents(h.screen, eventChan, done)

	last := time.Now()
	h.draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-eventChan:
			if !h.handleEvent(ev) {
				return nil
			}
			h.draw()

		case now := <-ticker.C:
			h.clock.Advance(now.Sub(last))
			last = now
			if h.clock.Busy() || h.dirty() {
				h.draw()
			}
		}
	}
}

type eventPoller interface {
	PollEvent() tcell.Event
}

// forwardEvents feeds polled events into events until the screen is
// finalized or done is closed.
func forwardEvents(p eventPoller, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := p.PollEvent()
		if ev == nil {
			// Screen finalized.
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent reports false when the host should stop.
func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handle(commandFor(ev.Key(), ev.Rune()))
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

func (h *Host) handle(cmd command) bool {
	switch cmd {
	case cmdIncrement:
		h.step(true)
	case cmdDecrement:
		h.step(false)
	case cmdSelectPrev:
		if h.selected > 0 {
			h.selected--
		}
	case cmdSelectNext:
		if h.selected < len(h.rows)-1 {
			h.selected++
		}
	case cmdCycleRow:
		if len(h.rows) > 0 {
			h.selected = (h.selected + 1) % len(h.rows)
		}
	case cmdCycleStyle:
		h.cycleStyle()
	case cmdToggleSound:
		muted := !h.player.Muted()
		h.player.SetMuted(muted)
		h.prefs.SetMuted(muted)
		h.savePrefs()
	case cmdQuit:
		return false
	}
	return true
}

func (h *Host) step(up bool) {
	if h.selected >= len(h.rows) {
		return
	}
	c := h.rows[h.selected]
	before := c.Active()
	cue := sound.CueRemove
	if up {
		c.Increment()
		cue = sound.CueAdd
	} else {
		c.Decrement()
	}
	if c.Active() == before {
		cue = sound.CueRejected
	}
	h.player.Play(cue)
}

func (h *Host) cycleStyle() {
	style := config.NextStyle(h.prefs.Settings().Style)
	h.prefs.SetStyle(style)
	h.savePrefs()
	for i, cfg := range h.file.WithStyle(style).Rows {
		h.rows[i].Configure(cfg)
	}
}

func (h *Host) savePrefs() {
	if err := h.prefs.Save(); err != nil {
		h.log.Error(err, "failed to save preferences")
	}
}

func (h *Host) dirty() bool {
	for _, c := range h.rows {
		if c.Dirty() {
			return true
		}
	}
	return false
}

func (h *Host) draw() {
	h.screen.Clear()

	text := tcell.StyleDefault.Foreground(tcell.ColorGray).Background(toTcell(background))
	h.print(0, 0, helpText, text)

	style := h.prefs.Settings().Style
	if style == "" {
		style = "as configured"
	}
	h.print(0, 1, fmt.Sprintf("style: %s  sound: %s", style, onOff(!h.player.Muted())), text)

	line := 3
	for i, c := range h.rows {
		marker := " "
		labelStyle := text
		if i == h.selected {
			marker = ">"
			labelStyle = labelStyle.Foreground(tcell.ColorWhite)
		}
		cfg := c.Config()
		h.print(0, line, fmt.Sprintf("%s row %d  %d / %d", marker, i+1, c.Active(), cfg.DotCount), labelStyle)

		w, ht := c.PreferredSize()
		cv := newCanvas(h.screen, leftMargin, line+1, cfg, w, ht, background)
		c.Draw(cv, 0, 0)
		c.ClearDirty()
		line += cv.rows + 2
	}

	h.screen.Show()
}

func (h *Host) print(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
