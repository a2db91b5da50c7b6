package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tilenav/internal/config"
)

// Theme holds the styles used to draw a level.
type Theme struct {
	Wall   tcell.Style
	Floor  tcell.Style
	Path   tcell.Style
	Agent  tcell.Style
	Target tcell.Style
	Status tcell.Style
}

// NewTheme builds styles from the hex colors in cfg.
func NewTheme(cfg config.Theme) (Theme, error) {
	colors := make([]tcell.Color, 0, 5)
	for _, hex := range []string{cfg.Wall, cfg.Floor, cfg.Path, cfg.Agent, cfg.Target} {
		c, err := ParseHexColor(hex)
		if err != nil {
			return Theme{}, fmt.Errorf("theme: %w", err)
		}
		colors = append(colors, c)
	}

	return Theme{
		Wall:   tcell.StyleDefault.Foreground(colors[0]),
		Floor:  tcell.StyleDefault.Foreground(colors[1]),
		Path:   tcell.StyleDefault.Foreground(colors[2]).Bold(true),
		Agent:  tcell.StyleDefault.Foreground(colors[3]).Bold(true),
		Target: tcell.StyleDefault.Foreground(colors[4]).Bold(true),
		Status: tcell.StyleDefault.Foreground(tcell.ColorWhite),
	}, nil
}

// DefaultTheme returns the theme for the default configuration.
func DefaultTheme() Theme {
	t, err := NewTheme(config.Default().Theme)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %q", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return tcell.NewHexColor(int32(rgb)), nil
}

// MustParseHexColor converts a hex color string to tcell.Color, panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}
