package main

import (
	"fmt"
	"image/color"
	"log"
	"slices"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/animtester/config"
	"github.com/milk9111/animtester/engine"
	"github.com/milk9111/animtester/settings"
	"github.com/milk9111/animtester/tester"
	"golang.design/x/clipboard"
)

// ownSaveWindow is how long watcher events are ignored after our own save.
const ownSaveWindow = 500 * time.Millisecond

// Game runs the tester inside ebiten's loop.
type Game struct {
	settings settings.Settings
	store    *config.Store
	world    *engine.World
	tester   *tester.Tester
	res      *engine.Resources
	watcher  *config.Watcher

	clipboardOK bool

	frame        tester.Frame
	ui           *ebitenui.UI
	panels       *panels
	selectedAnim string
	lastSave     time.Time
}

func NewGame(s settings.Settings, store *config.Store, res *engine.Resources, t *tester.Tester, world *engine.World) *Game {
	g := &Game{
		settings: s,
		store:    store,
		world:    world,
		tester:   t,
		res:      res,
	}
	g.ui, g.panels = buildTesterUI(g)
	g.sync()
	return g
}

func (g *Game) Update() error {
	g.pollWatcher()

	reload := g.frame.Dirty()
	_, saving := g.frame.PendingSave()
	if err := g.tester.BeginFrame(&g.frame); err != nil {
		log.Printf("animtester: %v", err)
	}
	if saving {
		g.lastSave = time.Now()
	}
	if reload {
		g.sync()
	}

	g.ui.Update()
	g.tester.EndFrame(&g.frame)

	g.world.Update(1 / float64(ebiten.TPS()))
	if in, err := g.tester.Instance(); err == nil {
		g.panels.object.refresh(in)
	}

	if !g.typing() && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

// typing reports whether a text field has focus.
func (g *Game) typing() bool {
	if fw := g.ui.GetFocusedWidget(); fw != nil {
		if _, ok := fw.(*widget.TextInput); ok {
			return true
		}
	}
	return false
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		name, ok := g.watcher.Poll()
		if !ok {
			break
		}
		if time.Since(g.lastSave) < ownSaveWindow {
			continue
		}
		log.Printf("animtester: %s changed, reloading config", name)
		if err := g.store.Reload(); err != nil {
			log.Printf("animtester: %v", err)
			continue
		}
		g.res.Invalidate()
		g.frame.MarkDirty()
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("animtester: watch: %v", err)
	default:
	}
}

// sync refreshes every panel from the tester.
func (g *Game) sync() {
	in, err := g.tester.Instance()
	if err != nil {
		log.Printf("animtester: %v", err)
		return
	}
	set, err := g.tester.AnimSet()
	if err != nil {
		log.Printf("animtester: %v", err)
		return
	}

	names := set.AnimNames()
	if !slices.Contains(names, g.selectedAnim) {
		g.selectedAnim = in.AnimSet().Start
	}

	g.panels.object.sync(in)
	g.panels.animSet.sync(set, g.selectedAnim)
	g.syncAnim(set)

	var tex *engine.Texture
	if name := in.AnimSet().Texture; name != "" {
		if tex, err = g.res.Texture(name); err != nil {
			log.Printf("animtester: %v", err)
		}
	}
	g.panels.texture.sync(tex, in.AnimSet().FrameSize)
}

func (g *Game) syncAnim(set config.AnimSet) {
	g.panels.anim.sync(set, g.selectedAnim)
	g.panels.links.sync(set, g.selectedAnim)
}

// selectAnim switches the animation edited by the animation panel.
func (g *Game) selectAnim(name string) {
	g.selectedAnim = name
	set, err := g.tester.AnimSet()
	if err != nil {
		log.Printf("animtester: %v", err)
		return
	}
	g.syncAnim(set)
}

func (g *Game) copySections() {
	if !g.clipboardOK {
		log.Printf("animtester: clipboard unavailable")
		return
	}
	text, err := g.tester.CopyText()
	if err != nil {
		log.Printf("animtester: copy: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	log.Printf("animtester: copied %d bytes to the clipboard", len(text))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{70, 70, 80, 255})

	b := screen.Bounds()
	cx, cy := float64(b.Dx())/2, float64(b.Dy())/2
	if err := g.world.Draw(screen, g.tester.Object(), g.res, cx, cy); err != nil {
		ebitenutil.DebugPrintAt(screen, err.Error(), int(cx)-100, int(cy))
	}

	g.ui.Draw(screen)
	g.panels.texture.drawTooltip(screen, g.settings.TooltipZoom)

	status := fmt.Sprintf("FPS: %.0f  state: %s  reloads: %d", ebiten.ActualFPS(), g.frame.State(), g.tester.Reloads())
	if in, err := g.tester.Instance(); err == nil {
		status += fmt.Sprintf("  %s frame %d  t=%.2f", in.CurrentAnim(), in.Frame(), in.AnimTime())
	}
	ebitenutil.DebugPrintAt(screen, status, 280, 4)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
