package render

import (
	"ar-furniture/internal/commands"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	barHeight = 40
	// windowedBarOffset keeps the bar clear of the taskbar when not fullscreen.
	windowedBarOffset = 56
	prompt            = "> "
	consoleFontSize   = 20
	consolePadding    = 8
	maxLinesOnScreen  = 14
	lineHeight        = consoleFontSize + 4
	maxLineLen        = 200
)

var (
	consoleBarColor  = rl.NewColor(40, 40, 40, 255)
	consoleLineColor = rl.NewColor(80, 80, 80, 255)
	consoleLogColor  = rl.NewColor(24, 24, 24, 240)
)

// updateConsole feeds keyboard input into an open console. ESC toggles it. Returns true when
// the console consumed input this frame.
func updateConsole(c *commands.Console) bool {
	if rl.IsKeyPressed(rl.KeyEscape) {
		c.Toggle()
	}
	if !c.IsOpen() {
		return false
	}
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
	if rl.IsKeyPressed(rl.KeyV) && ctrl {
		if pasted := rl.GetClipboardText(); pasted != "" {
			c.Type(pasted)
		}
	} else {
		for ch := rl.GetCharPressed(); ch != 0; ch = rl.GetCharPressed() {
			c.Type(string(rune(ch)))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace) {
		c.Backspace()
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		c.Prev()
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		c.Next()
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		// Errors are already in the log.
		_ = c.Submit()
	}
	return true
}

// drawConsole draws the input bar at the bottom and the recent log lines above it.
func drawConsole(c *commands.Console, t text) {
	if !c.IsOpen() {
		return
	}
	screenW := rl.GetScreenWidth()
	screenH := rl.GetScreenHeight()
	barY := screenH - barHeight
	if !rl.IsWindowFullscreen() {
		barY -= windowedBarOffset
	}

	logHeight := maxLinesOnScreen * lineHeight
	logY := barY - logHeight
	if logY < 0 {
		logHeight = barY
		logY = 0
	}
	if logHeight > 0 {
		rl.DrawRectangle(0, int32(logY), int32(screenW), int32(logHeight), consoleLogColor)
	}
	lines := c.Lines()
	start := max(len(lines)-maxLinesOnScreen, 0)
	for i := start; i < len(lines); i++ {
		y := logY + (i-start)*lineHeight + consolePadding
		line := lines[i]
		if len(line) > maxLineLen {
			line = line[:maxLineLen-3] + "..."
		}
		t.draw(line, consolePadding, float32(y), consoleFontSize, rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(screenW), barHeight, consoleBarColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, consoleLineColor)
	t.draw(prompt+c.Input()+"|", consolePadding, float32(barY+consolePadding), consoleFontSize, rl.White)
}
