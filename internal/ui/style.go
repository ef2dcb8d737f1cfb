package ui

import (
	"image/color"
	"strconv"
	"strings"
)

// Selector is a compound selector: optional node type, classes (all required) and id.
type Selector struct {
	Type    string
	Classes []string
	ID      string
}

// Matches reports whether n satisfies every part of the selector.
func (s Selector) Matches(n *Node) bool {
	if s.Type != "" && s.Type != n.Type {
		return false
	}
	if s.ID != "" && s.ID != n.ID {
		return false
	}
	for _, c := range s.Classes {
		if !n.HasClass(c) {
			return false
		}
	}
	return true
}

// Rule is a single CSS rule: one selector and a set of property values (raw strings).
type Rule struct {
	Selector Selector
	Props    map[string]string // e.g. "background" -> "#333"
}

// Stylesheet is a list of rules (order matters: later overrides earlier).
type Stylesheet struct {
	Rules []Rule
}

// Align is horizontal text alignment inside a node.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// ComputedStyle holds resolved values used for layout and drawing.
// *Pct fields are 0–100 for percentage sizing/positioning; -1 means use the pixel value.
// Percent positions place the node within its container: 0% at the start edge, 100% flush
// with the end edge. Padding is the text offset from the node's left/top.
type ComputedStyle struct {
	Background color.RGBA
	Color      color.RGBA
	Border     color.RGBA
	HasBorder  bool
	Width      int32
	Height     int32
	WidthPct   int32
	HeightPct  int32
	Left       int32
	Top        int32
	LeftPct    int32
	TopPct     int32
	Padding    int32
	FontSize   int32
	TextAlign  Align
	Opacity    float32
}

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
)

// DefaultComputedStyle returns a minimal style (transparent background, white text, no border, zero size).
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Color:     white,
		Border:    black,
		WidthPct:  -1,
		HeightPct: -1,
		LeftPct:   -1,
		TopPct:    -1,
		Padding:   4,
		FontSize:  20,
		Opacity:   1,
	}
}

// ParseHexColor parses #RGB, #RRGGBB or #RRGGBBAA. Returns black and false on parse error.
func ParseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || s[0] != '#' {
		return black, false
	}
	hex := s[1:]
	for i := 0; i < len(hex); i++ {
		if _, ok := hexByte(hex[i]); !ok {
			return black, false
		}
	}
	pair := func(i int) uint8 {
		hi, _ := hexByte(hex[i])
		lo, _ := hexByte(hex[i+1])
		return hi<<4 + lo
	}
	switch len(hex) {
	case 3:
		r, _ := hexByte(hex[0])
		g, _ := hexByte(hex[1])
		b, _ := hexByte(hex[2])
		return color.RGBA{R: r * 17, G: g * 17, B: b * 17, A: 255}, true
	case 6:
		return color.RGBA{R: pair(0), G: pair(2), B: pair(4), A: 255}, true
	case 8:
		return color.RGBA{R: pair(0), G: pair(2), B: pair(4), A: pair(6)}, true
	}
	return black, false
}

func hexByte(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// ParsePx parses a number, with optional "px" suffix, to int32. Unitless is treated as pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" to int32 (0–100).
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

// ResolveProps builds a ComputedStyle from a merged property map (e.g. from matching rules).
func ResolveProps(props map[string]string) ComputedStyle {
	out := DefaultComputedStyle()
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background":
			if c, ok := ParseHexColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseHexColor(v); ok {
				out.Color = c
			}
		case "border":
			if c, ok := ParseHexColor(v); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "width":
			if pct, ok := ParsePct(v); ok {
				out.WidthPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if pct, ok := ParsePct(v); ok {
				out.HeightPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left", "x":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top", "y":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		case "text-align":
			if v == "center" {
				out.TextAlign = AlignCenter
			}
		case "opacity":
			if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 && f <= 1 {
				out.Opacity = float32(f)
			}
		}
	}
	return out
}

// Fade returns c with its alpha scaled by opacity.
func Fade(c color.RGBA, opacity float32) color.RGBA {
	c.A = uint8(float32(c.A) * opacity)
	return c
}
