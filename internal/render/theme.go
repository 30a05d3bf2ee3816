package render

import (
	"fmt"

	"cube-engine/internal/engineconfig"
	"cube-engine/internal/lattice"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds the resolved colours the renderer draws with.
type Theme struct {
	Background rl.Color
	Border     rl.Color
	Highlight  rl.Color
	// Stickers is indexed by lattice.Color.
	Stickers [7]rl.Color
}

// NewTheme parses every colour in prefs.
func NewTheme(p engineconfig.Prefs) (Theme, error) {
	var t Theme
	fields := []struct {
		name string
		hex  string
		dst  *rl.Color
	}{
		{"background", p.Background, &t.Background},
		{"border", p.Border, &t.Border},
		{"highlight", p.Highlight, &t.Highlight},
		{"palette.inner", p.Palette.Inner, &t.Stickers[lattice.ColorInner]},
		{"palette.right", p.Palette.Right, &t.Stickers[lattice.ColorWhite]},
		{"palette.left", p.Palette.Left, &t.Stickers[lattice.ColorYellow]},
		{"palette.up", p.Palette.Up, &t.Stickers[lattice.ColorBlue]},
		{"palette.down", p.Palette.Down, &t.Stickers[lattice.ColorOrange]},
		{"palette.front", p.Palette.Front, &t.Stickers[lattice.ColorGreen]},
		{"palette.back", p.Palette.Back, &t.Stickers[lattice.ColorRed]},
	}
	for _, f := range fields {
		rgba, err := engineconfig.ParseHex(f.hex)
		if err != nil {
			return Theme{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = Color(rgba)
	}
	return t, nil
}

// Sticker returns the colour for a palette slot, falling back to the inner colour.
func (t Theme) Sticker(c lattice.Color) rl.Color {
	if c < 0 || int(c) >= len(t.Stickers) {
		return t.Stickers[lattice.ColorInner]
	}
	return t.Stickers[c]
}
