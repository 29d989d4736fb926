package game

import (
	"errors"
	"image/color"
	"math"

	"github.com/go-logr/logr"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/animated-dots/internal/anim"
	"github.com/iburimskiy/animated-dots/internal/config"
	"github.com/iburimskiy/animated-dots/internal/dots"
	"github.com/iburimskiy/animated-dots/internal/prefs"
	"github.com/iburimskiy/animated-dots/internal/sound"
)

// Room kept for the count label right of each row.
const labelWidth = 72

type command int

const (
	cmdNone command = iota
	cmdIncrement
	cmdDecrement
	cmdSelectPrev
	cmdSelectNext
	cmdCycleStyle
	cmdToggleSound
	cmdOpenConfig
	cmdQuit
)

var keyCommands = []struct {
	key ebiten.Key
	cmd command
}{
	{ebiten.KeyRight, cmdIncrement},
	{ebiten.KeyEqual, cmdIncrement},
	{ebiten.KeyNumpadAdd, cmdIncrement},
	{ebiten.KeyLeft, cmdDecrement},
	{ebiten.KeyMinus, cmdDecrement},
	{ebiten.KeyNumpadSubtract, cmdDecrement},
	{ebiten.KeyUp, cmdSelectPrev},
	{ebiten.KeyDown, cmdSelectNext},
	{ebiten.KeyS, cmdCycleStyle},
	{ebiten.KeyM, cmdToggleSound},
	{ebiten.KeyO, cmdOpenConfig},
	{ebiten.KeyEscape, cmdQuit},
	{ebiten.KeyQ, cmdQuit},
}

// row is one counter with its buttons. The counter is drawn into its own
// surface so shifted and shaken dots are clipped to the row box.
type row struct {
	counter *dots.Counter
	minus   button
	plus    button

	x, y, w, h int
	surface    *ebiten.Image
}

// Options wires a Game to its collaborators. Nil Prefs and Player run
// without persistence and without sound.
type Options struct {
	File   config.File
	Prefs  *prefs.Manager
	Player *sound.Player
	Log    logr.Logger
}

// Game is the desktop host: a stack of counters with -/+ buttons and a
// toolbar to open a config file, switch transition style, and mute.
type Game struct {
	file     config.File
	rows     []*row
	selected int
	clock    *anim.Clock

	prefs  *prefs.Manager
	player *sound.Player
	log    logr.Logger

	openButton  button
	styleButton button
	soundButton button

	// selectFile asks the user for a config file.
	selectFile func() (string, error)

	time    float64
	lastErr error
}

func New(opts Options) *Game {
	g := &Game{
		clock:      anim.NewClock(),
		prefs:      opts.Prefs,
		player:     opts.Player,
		log:        opts.Log,
		selectFile: selectConfigFile,
	}
	if g.log.GetSink() == nil {
		g.log = logr.Discard()
	}
	if g.prefs == nil {
		g.prefs = prefs.NewManager(nil, g.log)
	}
	if g.player == nil {
		g.player = sound.NewPlayer(0, g.log)
	}
	g.player.SetMuted(g.prefs.Settings().Muted)

	step := config.ToolbarWidth + config.ButtonGap
	g.openButton = button{x: config.ToolbarX, y: config.ToolbarY, w: config.ToolbarWidth, h: config.ToolbarHeight, label: "Open config"}
	g.styleButton = button{x: config.ToolbarX + step, y: config.ToolbarY, w: config.ToolbarWidth, h: config.ToolbarHeight}
	g.soundButton = button{x: config.ToolbarX + 2*step, y: config.ToolbarY, w: config.ToolbarWidth, h: config.ToolbarHeight}
	g.refreshLabels()

	g.load(opts.File)
	return g
}

// load replaces every row with the rows of file.
func (g *Game) load(file config.File) {
	for _, r := range g.rows {
		r.counter.Detach()
	}
	g.clock.CancelAll()

	g.file = file
	g.rows = nil
	g.selected = 0

	y := config.RowTop
	for i, cfg := range file.WithStyle(g.prefs.Settings().Style).Rows {
		r := g.newRow(i, cfg, y)
		g.rows = append(g.rows, r)
		y += r.h + config.RowGap
	}
}

func (g *Game) newRow(i int, cfg config.Counter, y int) *row {
	c := dots.New(cfg, dots.WithClock(g.clock), dots.WithLogger(g.log.WithValues("row", i)))

	avail := config.WindowWidth - 2*config.RowLeft - 2*(config.ButtonWidth+config.ButtonGap) - labelWidth
	w, h := c.Measure(dots.MeasureSpec{Mode: dots.AtMost, Size: avail}, dots.MeasureSpec{Mode: dots.Unspecified})
	if h < config.ButtonHeight {
		h = config.ButtonHeight
	}

	x := config.RowLeft + config.ButtonWidth + config.ButtonGap
	by := y + (h-config.ButtonHeight)/2
	return &row{
		counter: c,
		minus:   button{x: config.RowLeft, y: by, w: config.ButtonWidth, h: config.ButtonHeight, label: "-"},
		plus:    button{x: x + w + config.ButtonGap, y: by, w: config.ButtonWidth, h: config.ButtonHeight, label: "+"},
		x:       x,
		y:       y,
		w:       w,
		h:       h,
	}
}

func (g *Game) Update() error {
	mouseX, mouseY := ebiten.CursorPosition()
	down := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	up := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	if g.openButton.update(mouseX, mouseY, down, up) {
		g.handle(cmdOpenConfig)
	}
	if g.styleButton.update(mouseX, mouseY, down, up) {
		g.handle(cmdCycleStyle)
	}
	if g.soundButton.update(mouseX, mouseY, down, up) {
		g.handle(cmdToggleSound)
	}
	for i, r := range g.rows {
		if r.minus.update(mouseX, mouseY, down, up) {
			g.selected = i
			g.handle(cmdDecrement)
		}
		if r.plus.update(mouseX, mouseY, down, up) {
			g.selected = i
			g.handle(cmdIncrement)
		}
	}

	for _, kc := range keyCommands {
		if inpututil.IsKeyJustPressed(kc.key) {
			if err := g.handle(kc.cmd); err != nil {
				return err
			}
		}
	}

	g.time += config.FrameDuration.Seconds()
	g.clock.Advance(config.FrameDuration)
	return nil
}

// handle runs a command against the selected row or the toolbar. Only
// cmdQuit returns an error.
func (g *Game) handle(cmd command) error {
	switch cmd {
	case cmdIncrement:
		g.increment()
	case cmdDecrement:
		g.decrement()
	case cmdSelectPrev:
		if g.selected > 0 {
			g.selected--
		}
	case cmdSelectNext:
		if g.selected < len(g.rows)-1 {
			g.selected++
		}
	case cmdCycleStyle:
		g.cycleStyle()
	case cmdToggleSound:
		g.toggleSound()
	case cmdOpenConfig:
		if err := g.openConfig(); err != nil {
			g.lastErr = err
			g.log.Error(err, "failed to open counter config")
		}
	case cmdQuit:
		return ebiten.Termination
	}
	return nil
}

func (g *Game) current() *dots.Counter {
	if g.selected < 0 || g.selected >= len(g.rows) {
		return nil
	}
	return g.rows[g.selected].counter
}

func (g *Game) increment() {
	c := g.current()
	if c == nil {
		return
	}
	before := c.Active()
	c.Increment()
	if c.Active() == before {
		g.player.Play(sound.CueRejected)
		return
	}
	g.player.Play(sound.CueAdd)
}

func (g *Game) decrement() {
	c := g.current()
	if c == nil {
		return
	}
	before := c.Active()
	c.Decrement()
	if c.Active() == before {
		g.player.Play(sound.CueRejected)
		return
	}
	g.player.Play(sound.CueRemove)
}

// cycleStyle moves every row to the next style override. Counter values
// survive; in-flight transitions are cut short.
func (g *Game) cycleStyle() {
	style := config.NextStyle(g.prefs.Settings().Style)
	g.prefs.SetStyle(style)
	g.savePrefs()

	rows := g.file.WithStyle(style).Rows
	for i, r := range g.rows {
		r.counter.Configure(rows[i])
	}
	g.refreshLabels()
	g.log.V(1).Info("style changed", "style", string(style))
}

func (g *Game) toggleSound() {
	muted := !g.player.Muted()
	g.player.SetMuted(muted)
	g.prefs.SetMuted(muted)
	g.savePrefs()
	g.refreshLabels()
}

func (g *Game) savePrefs() {
	if err := g.prefs.Save(); err != nil {
		g.lastErr = err
		g.log.Error(err, "failed to save preferences")
	}
}

func (g *Game) refreshLabels() {
	g.styleButton.label = styleLabel(g.prefs.Settings().Style)
	g.soundButton.label = soundLabel(g.player.Muted())
}

func (g *Game) openConfig() error {
	path, err := g.selectFile()
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	file, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	g.log.Info("loaded counter config", "path", path, "rows", len(file.Rows))
	g.load(file)
	g.prefs.SetConfigPath(path)
	g.savePrefs()
	g.lastErr = nil
	return nil
}

func selectConfigFile() (string, error) {
	return zenity.SelectFile(
		zenity.Title("Open Counter Config"),
		zenity.FileFilters{{
			Name:     "YAML",
			Patterns: []string{"*.yaml", "*.yml"},
		}},
	)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)

	g.openButton.draw(screen)
	g.styleButton.draw(screen)
	g.soundButton.draw(screen)

	for i, r := range g.rows {
		g.drawRow(screen, r, i == g.selected)
	}

	status := "+/- or arrows to count, up/down to pick a row, S style, M sound, O open"
	if g.lastErr != nil {
		status = "Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	const band = 4
	for y := 0; y < config.WindowHeight; y += band {
		ratio := float64(y) / float64(config.WindowHeight)
		hue := 225 + 15*math.Sin(g.time*0.2+ratio*math.Pi)
		r, gv, b := hsvToRgb(hue, 0.35, 0.10+0.08*ratio)
		vector.DrawFilledRect(screen, 0, float32(y), config.WindowWidth, band, color.RGBA{R: r, G: gv, B: b, A: 255}, false)
	}
}

func (g *Game) drawRow(screen *ebiten.Image, r *row, selected bool) {
	if r.w > 0 && r.h > 0 {
		if r.surface == nil {
			r.surface = ebiten.NewImage(r.w, r.h)
			r.counter.Draw(canvas{dst: r.surface}, 0, 0)
			r.counter.ClearDirty()
		} else if r.counter.Dirty() {
			r.surface.Clear()
			r.counter.Draw(canvas{dst: r.surface}, 0, 0)
			r.counter.ClearDirty()
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(r.x), float64(r.y))
		screen.DrawImage(r.surface, op)
	}

	if selected {
		highlight := color.RGBA{R: 150, G: 170, B: 200, A: 120}
		vector.StrokeRect(screen, float32(r.x-4), float32(r.y-4), float32(r.w+8), float32(r.h+8), 1, highlight, false)
	}

	r.minus.draw(screen)
	r.plus.draw(screen)

	cfg := r.counter.Config()
	labelX := r.plus.x + r.plus.w + config.ButtonGap
	ebitenutil.DebugPrintAt(screen, formatCount(r.counter.Active(), cfg.DotCount), labelX, r.y+(r.h-config.LabelSize)/2)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Animated Dots")
	ebiten.SetTPS(config.TicksPerSecond)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
