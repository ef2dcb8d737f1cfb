package render

import (
	"ar-furniture/internal/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// text draws with the loaded font, or raylib's default font when none was found.
type text struct {
	font rl.Font
}

func (t text) hasFont() bool {
	return t.font.Texture.ID != 0
}

func (t text) measure(s string, size int32) float32 {
	if t.hasFont() {
		return rl.MeasureTextEx(t.font, s, float32(size), 1).X
	}
	return float32(rl.MeasureText(s, size))
}

func (t text) draw(s string, x, y float32, size int32, c rl.Color) {
	if t.hasFont() {
		rl.DrawTextEx(t.font, s, rl.NewVector2(x, y), float32(size), 1, c)
		return
	}
	rl.DrawText(s, int32(x), int32(y), size, c)
}

// drawOverlay paints the styled UI nodes in document order: background, border, then text.
func drawOverlay(e *ui.Engine, t text) {
	e.Each(func(n *ui.Node, st ui.ComputedStyle) {
		b := n.Bounds
		rec := rl.NewRectangle(b.X, b.Y, b.W, b.H)
		if st.Background.A > 0 {
			rl.DrawRectangleRec(rec, rgba(ui.Fade(st.Background, st.Opacity)))
		}
		if st.HasBorder {
			rl.DrawRectangleLinesEx(rec, 1, rgba(ui.Fade(st.Border, st.Opacity)))
		}
		if n.Text == "" {
			return
		}
		w := t.measure(n.Text, st.FontSize)
		x := b.X + float32(st.Padding)
		if st.TextAlign == ui.AlignCenter {
			x = b.X + (b.W-w)/2
		}
		y := b.Y + (b.H-float32(st.FontSize))/2
		if b.H == 0 {
			y = b.Y
		}
		t.draw(n.Text, x, y, st.FontSize, rgba(ui.Fade(st.Color, st.Opacity)))
	})
}
