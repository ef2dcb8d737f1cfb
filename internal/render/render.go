// Package render is the raylib front end: it opens the window, turns mouse and keyboard input
// into App calls and draws the scene, the overlay UI and the console each frame.
package render

import (
	"ar-furniture/internal/app"
	"ar-furniture/internal/config"
	"ar-furniture/internal/fonts"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	title        = "AR Furniture"
	fontLoadSize = 48
	// statsTop places the FPS overlay under the delete button while in AR.
	statsTop = 60
)

// Run opens the window and runs the frame loop until the window is closed. ESC toggles the
// console; it does not quit.
//
// Controls: left click is a tap on the overlay or the AR view, space is the AR select gesture
// (place at the reticle), holding the right button looks around with mouse and WASD, and
// Delete removes the selected item.
func Run(a *app.App, prefs config.Prefs, r Resolver) {
	if prefs.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode | rl.FlagMsaa4xHint)
		rl.InitWindow(int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0)), title)
	} else {
		rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
		rl.InitWindow(int32(prefs.WindowWidth), int32(prefs.WindowHeight), title)
	}
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	t := text{font: loadFont(a, prefs.FontPath)}
	if t.hasFont() {
		defer rl.UnloadFont(t.font)
	}
	w := NewWorld(r)
	defer w.Close()
	var st stats
	looking := false

	a.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			a.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
		}
		typing := updateConsole(a.Console)

		if rl.IsMouseButtonDown(rl.MouseButtonRight) {
			if !looking {
				rl.DisableCursor()
				looking = true
			}
			rl.UpdateCamera(&w.Camera, rl.CameraFree)
		} else if looking {
			rl.EnableCursor()
			looking = false
		}
		a.SetCamera(sceneCamera(w.Camera))

		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !looking {
			p := rl.GetMousePosition()
			a.Click(p.X, p.Y)
		}
		if !typing {
			if rl.IsKeyPressed(rl.KeySpace) {
				a.ControllerSelect()
			}
			if rl.IsKeyPressed(rl.KeyDelete) {
				_ = a.Placement.DeleteSelected()
			}
		}

		a.Tick()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(18, 20, 26, 255))
		inAR := a.Layout.InAR()
		w.GridVisible = a.ShowGrid
		w.Draw(a.Scene, inAR)
		drawOverlay(a.Layout.Engine(), t)
		drawConsole(a.Console, t)
		top := float32(0)
		if inAR {
			top = statsTop
		}
		st.draw(a.ShowFPS, a.ShowMemAlloc, t, top)
		rl.EndDrawing()
	}
	a.Close()
}

func loadFont(a *app.App, pref string) rl.Font {
	path, err := fonts.Resolve(fonts.BaseDirs(), pref)
	if err != nil {
		if pref != "" {
			a.Log.Logf("render: font %q: %v", pref, err)
		}
		return rl.Font{}
	}
	f := rl.LoadFontEx(path, fontLoadSize, nil)
	if !rl.IsFontValid(f) {
		a.Log.Logf("render: font %s could not be loaded", path)
		return rl.Font{}
	}
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	return f
}
