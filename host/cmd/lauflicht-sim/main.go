// Command lauflicht-sim runs the chaser against a simulated 74HC595 and
// draws the latched outputs in the terminal.
//
// The simulator uses the real tick loop and bit-banged driver; only the port
// is simulated. The tick rate defaults to 10 Hz so the sweep is visible.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"lauflicht/config"
	"lauflicht/controller"
	"lauflicht/core"
	"lauflicht/shiftreg"
)

var (
	units  = flag.Int("units", config.LightUnits, "Number of light units (2-8)")
	tickHz = flag.Uint("hz", 10, "Tick frequency in Hz")
)

const frameInterval = 16 * time.Millisecond

// simulator owns the controller; the render loop only reads snapshots
type simulator struct {
	ctrl *controller.Controller
	reg  *shiftreg.Register

	mu    sync.Mutex
	stats core.TickStats
}

func newSimulator(cfg *config.Config) (*simulator, error) {
	ctrl, err := controller.New(cfg)
	if err != nil {
		return nil, err
	}

	reg := shiftreg.NewRegister(ctrl.Config().Pins)
	if err := ctrl.Initialize(reg, core.NewSystemClock()); err != nil {
		return nil, err
	}
	return &simulator{ctrl: ctrl, reg: reg}, nil
}

// run ticks until quit is closed
func (s *simulator) run(quit <-chan struct{}) {
	for {
		select {
		case <-quit:
			return
		default:
		}

		s.ctrl.Tick()

		s.mu.Lock()
		s.stats = s.ctrl.Stats()
		s.mu.Unlock()
	}
}

func (s *simulator) snapshot() core.TickStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *simulator) draw(screen tcell.Screen) {
	screen.Clear()

	outputs := s.reg.Outputs()
	n := s.ctrl.Config().LightUnits
	lit := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	dark := tcell.StyleDefault.Foreground(tcell.ColorGray)

	for i := 0; i < n; i++ {
		style, r := dark, '○'
		if outputs&(1<<uint(i)) != 0 {
			style, r = lit, '●'
		}
		screen.SetContent(2+i*3, 1, r, nil, style)
	}

	stats := s.snapshot()
	shift, storage := s.reg.PulseCounts()
	lines := []string{
		fmt.Sprintf("pattern  %s", core.FormatPattern(outputs)),
		fmt.Sprintf("ticks    %d  overruns %d  work %dus (max %dus)", stats.Ticks, stats.Overruns, stats.LastWorkUS, stats.MaxWorkUS),
		fmt.Sprintf("pulses   shift %d  storage %d", shift, storage),
		"q/Esc quit",
	}
	for row, line := range lines {
		drawText(screen, 2, 3+row, line, tcell.StyleDefault)
	}

	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

// parseTickHz checks the -hz flag. Zero would silently mean the firmware
// default and large values would wrap in uint32.
func parseTickHz(hz uint) (uint32, error) {
	if hz == 0 || hz > config.MicroDecimal {
		return 0, fmt.Errorf("tick frequency %d Hz out of range 1-%d", hz, config.MicroDecimal)
	}
	return uint32(hz), nil
}

func main() {
	flag.Parse()

	hz, err := parseTickHz(*tickHz)
	if err != nil {
		log.Fatalf("Invalid -hz: %v", err)
	}

	cfg := config.Default()
	cfg.LightUnits = *units
	cfg.TickFrequencyHz = hz

	sim, err := newSimulator(cfg)
	if err != nil {
		log.Fatalf("Simulator setup failed: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Terminal setup failed: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Terminal setup failed: %v", err)
	}

	quit := make(chan struct{})
	done := make(chan struct{})
	go func() {
		sim.run(quit)
		close(done)
	}()

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			eventChan <- screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

loop:
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					break loop
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			sim.draw(screen)
		}
	}

	close(quit)
	<-done
	screen.Fini()

	stats := sim.snapshot()
	fmt.Fprintf(os.Stdout, "%d ticks, %d overruns\n", stats.Ticks, stats.Overruns)
}
