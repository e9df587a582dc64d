// go-qrcode
// Copyright 2014 Tom Harwood

package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor parses #rgb, #rgba, #rrggbb and #rrggbbaa hex colors.
func ParseColor(s string) (color.NRGBA, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "#") {
		return color.NRGBA{}, fmt.Errorf("color %q must start with #", s)
	}

	hex := trimmed[1:]

	switch len(hex) {
	case 3, 4:
		var expanded strings.Builder
		for _, c := range hex {
			expanded.WriteRune(c)
			expanded.WriteRune(c)
		}
		hex = expanded.String()
	case 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("color %q must have 3, 4, 6 or 8 hex digits", s)
	}

	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q is not hexadecimal", s)
	}

	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// IsColor reports whether s parses as a color.
func IsColor(s string) bool {
	_, err := ParseColor(s)
	return err == nil
}

// Colors returns the effective dark and light colors, swapped when Invert is
// set.
func (c Config) Colors() (dark color.NRGBA, light color.NRGBA, err error) {
	if dark, err = ParseColor(c.DarkColor); err != nil {
		return dark, light, &ConfigurationError{Field: "darkColor", Reason: err.Error()}
	}

	if light, err = ParseColor(c.LightColor); err != nil {
		return dark, light, &ConfigurationError{Field: "lightColor", Reason: err.Error()}
	}

	if c.Invert {
		dark, light = light, dark
	}

	return dark, light, nil
}
