package render

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/blockwrap/internal/backend"
	"github.com/dshills/blockwrap/internal/config"
)

// Theme holds the resolved styles.
type Theme struct {
	Text         backend.Style
	Indent       backend.Style
	Continuation backend.Style
	Border       backend.Style
	Title        backend.Style
	ActiveTitle  backend.Style
	Debug        backend.Style
	Status       backend.Style
}

// NewTheme resolves a theme section. The indent guide colour is blended
// from text and background; the status bar is the border colour lightened
// towards the text colour.
func NewTheme(c config.ThemeConfig) (Theme, error) {
	hex := func(name, s string) (colorful.Color, error) {
		col, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("%w: %s = %q", config.ErrInvalidColor, name, s)
		}
		return col, nil
	}
	var err error
	var text, bg, indent, cont, border, active, debug colorful.Color
	for _, f := range []struct {
		dst  *colorful.Color
		name string
		src  string
	}{
		{&text, "text", c.Text},
		{&bg, "background", c.Background},
		{&indent, "indent", c.Indent},
		{&cont, "continuation", c.Continuation},
		{&border, "border", c.Border},
		{&active, "active", c.Active},
		{&debug, "debug", c.Debug},
	} {
		if *f.dst, err = hex(f.name, f.src); err != nil {
			return Theme{}, err
		}
	}

	b := color(bg)
	return Theme{
		Text:         backend.Style{Fg: color(text), Bg: b},
		Indent:       backend.Style{Fg: color(indent.BlendLab(bg, 0.3)), Bg: b},
		Continuation: backend.Style{Fg: color(cont), Bg: b, Attr: backend.AttrDim},
		Border:       backend.Style{Fg: color(border), Bg: b},
		Title:        backend.Style{Fg: color(text), Bg: color(border.BlendLab(bg, 0.5))},
		ActiveTitle:  backend.Style{Fg: color(bg), Bg: color(active), Attr: backend.AttrBold},
		Debug:        backend.Style{Fg: color(debug), Bg: b},
		Status:       backend.Style{Fg: color(text), Bg: color(border.BlendLab(text, 0.15).Clamped())},
	}, nil
}

// DefaultTheme is the theme of the default configuration.
func DefaultTheme() Theme {
	t, err := NewTheme(config.Default().Theme)
	if err != nil {
		panic(err)
	}
	return t
}

func color(c colorful.Color) backend.Color {
	r, g, b := c.Clamped().RGB255()
	return backend.RGB(r, g, b)
}
