package render

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// stats is the FPS and heap overlay. Both are off until toggled with cmd fps / cmd memalloc.
type stats struct {
	frameCount  uint32
	lastFpsText string
	lastMemText string
	mem         runtime.MemStats
}

// draw renders the enabled counters at the top-right, below the delete button.
func (s *stats) draw(showFPS, showMem bool, t text, top float32) {
	s.frameCount++
	update := s.frameCount%updateInterval == 0
	if (showFPS && s.lastFpsText == "") || (showMem && s.lastMemText == "") {
		update = true
	}
	screenW := float32(rl.GetScreenWidth())
	y := top + fpsPadding

	if showFPS {
		if update {
			s.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		x := screenW - t.measure(s.lastFpsText, fpsFontSize) - fpsPadding
		t.draw(s.lastFpsText, x, y, fpsFontSize, rl.Green)
		y += fpsLineHeight
	}
	if showMem {
		if update {
			runtime.ReadMemStats(&s.mem)
			s.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(s.mem.Alloc)/(1024*1024))
		}
		x := screenW - t.measure(s.lastMemText, fpsFontSize) - fpsPadding
		t.draw(s.lastMemText, x, y, fpsFontSize, rl.Green)
	}
}
