// Package display provides host adapter implementations: an interactive
// Ebitengine-backed window and a headless adapter for testing/automation.
package display

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/claude/nes2a03/internal/adapter"
	"github.com/claude/nes2a03/internal/config"
)

// EbitenAdapter implements adapter.Adapter by driving an Ebitengine
// window. The emulation step loop runs on its own goroutine (per
// spec.md §5, "the core is single-threaded and cooperative" on its own
// driver thread); Ebitengine insists on owning the calling goroutine for
// its Update/Draw loop, so frame and input state cross between the two
// goroutines behind a mutex, grounded on the teacher's EbitengineGame
// but adapted from a single-threaded emulator-drives-window model to a
// window-drives-emulator-via-goroutine model.
type EbitenAdapter struct {
	mu     sync.Mutex
	frame  adapter.Frame
	active bool

	pad1, pad2 adapter.ButtonSet

	cfg *config.Config
	img *ebiten.Image

	pixels []byte // reusable RGBA scratch buffer
}

// NewEbitenAdapter creates an adapter and its backing image at native
// NES resolution; the window itself is scaled in Layout.
func NewEbitenAdapter(cfg *config.Config) *EbitenAdapter {
	return &EbitenAdapter{
		active: true,
		cfg:    cfg,
		img:    ebiten.NewImage(256, 240),
		pixels: make([]byte, 256*240*4),
	}
}

// Run configures the window and blocks in Ebitengine's game loop until
// the window is closed.
func (a *EbitenAdapter) Run(title string) error {
	w, h := a.cfg.WindowResolution()
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(a.cfg.Window.VSync)
	ebiten.SetFullscreen(a.cfg.Window.Fullscreen)
	return ebiten.RunGame(&ebitenGame{adapter: a})
}

// IsActive reports whether the window is still open.
func (a *EbitenAdapter) IsActive() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

// DrawFramebuffer stores the latest frame for the next Draw call to
// present; the Frame is only guaranteed valid for this call, so it is
// copied.
func (a *EbitenAdapter) DrawFramebuffer(frame *adapter.Frame) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.frame = *frame
}

// PadP1 and PadP2 return the most recently polled button state.
func (a *EbitenAdapter) PadP1() adapter.ButtonSet {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pad1
}

func (a *EbitenAdapter) PadP2() adapter.ButtonSet {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pad2
}

// PlaySound is a no-op in this adapter: software audio synthesis from
// Tone snapshots is out of scope for the reference window (the spec
// leaves Tone synthesis entirely to the adapter, and a bare window
// demo has no mixer to hand them to).
func (a *EbitenAdapter) PlaySound(tones adapter.Tones) {}

func (a *EbitenAdapter) setActive(v bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.active = v
}

func (a *EbitenAdapter) setPads(p1, p2 adapter.ButtonSet) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pad1, a.pad2 = p1, p2
}

func (a *EbitenAdapter) snapshotFrame() adapter.Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frame
}

// ebitenGame implements ebiten.Game, translating its Update/Draw calls
// into EbitenAdapter state, grounded on the teacher's EbitengineGame.
type ebitenGame struct {
	adapter *EbitenAdapter
}

var player1Keys = map[adapter.ButtonBit]ebiten.Key{
	adapter.ButtonUp:     ebiten.KeyW,
	adapter.ButtonDown:   ebiten.KeyS,
	adapter.ButtonLeft:   ebiten.KeyA,
	adapter.ButtonRight:  ebiten.KeyD,
	adapter.ButtonA:      ebiten.KeyJ,
	adapter.ButtonB:      ebiten.KeyK,
	adapter.ButtonStart:  ebiten.KeyEnter,
	adapter.ButtonSelect: ebiten.KeySpace,
}

var player2Keys = map[adapter.ButtonBit]ebiten.Key{
	adapter.ButtonUp:     ebiten.KeyArrowUp,
	adapter.ButtonDown:   ebiten.KeyArrowDown,
	adapter.ButtonLeft:   ebiten.KeyArrowLeft,
	adapter.ButtonRight:  ebiten.KeyArrowRight,
	adapter.ButtonA:      ebiten.KeyN,
	adapter.ButtonB:      ebiten.KeyM,
	adapter.ButtonStart:  ebiten.KeyShiftRight,
	adapter.ButtonSelect: ebiten.KeyControlRight,
}

func pollButtons(keys map[adapter.ButtonBit]ebiten.Key) adapter.ButtonSet {
	var s adapter.ButtonSet
	for bit, key := range keys {
		if ebiten.IsKeyPressed(key) {
			s |= adapter.ButtonSet(bit)
		}
	}
	return s
}

func (g *ebitenGame) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		g.adapter.setActive(false)
	}
	g.adapter.setPads(pollButtons(player1Keys), pollButtons(player2Keys))
	return nil
}

func (g *ebitenGame) Draw(screen *ebiten.Image) {
	frame := g.adapter.snapshotFrame()
	for i, idx := range frame {
		rgb := adapter.Palette[idx&0x3F]
		g.adapter.pixels[i*4+0] = byte(rgb >> 16)
		g.adapter.pixels[i*4+1] = byte(rgb >> 8)
		g.adapter.pixels[i*4+2] = byte(rgb)
		g.adapter.pixels[i*4+3] = 0xFF
	}
	g.adapter.img.WritePixels(g.adapter.pixels)

	op := &ebiten.DrawImageOptions{}
	sx := float64(screen.Bounds().Dx()) / 256
	sy := float64(screen.Bounds().Dy()) / 240
	op.GeoM.Scale(sx, sy)
	screen.DrawImage(g.adapter.img, op)
}

func (g *ebitenGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
