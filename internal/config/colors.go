package config

import (
	"os"

	"github.com/thenoetrevino/dealflow/internal/config/colors"
)

// EnvNoColor turns off colored board output when set to any value
// (https://no-color.org). It overrides the theme from the file.
const EnvNoColor = "NO_COLOR"

// DefaultColorScheme returns the palette boards render with
func DefaultColorScheme() colors.ColorScheme {
	return *colors.Default()
}

// MonochromeColorScheme returns the palette used when color is off
func MonochromeColorScheme() colors.ColorScheme {
	return *colors.Monochrome()
}

func (c *Config) applyNoColor() {
	if os.Getenv(EnvNoColor) == "" {
		return
	}
	c.ColorScheme = MonochromeColorScheme()
}
