// go-qrcode
// Copyright 2014 Tom Harwood

package effect

import (
	"fmt"
	"strings"

	qrcode "github.com/weilsonwonder/go-qrstyle"
)

// Kind selects a post-processing effect.
type Kind string

const (
	None       Kind = "none"
	Crystalize Kind = "crystalize"
	Liquify    Kind = "liquify"
)

// UnmarshalText accepts the effect names, plus "liquidify" for Liquify.
func (k *Kind) UnmarshalText(text []byte) error {
	switch s := strings.ToLower(string(text)); s {
	case "", string(None):
		*k = None
	case string(Crystalize):
		*k = Crystalize
	case string(Liquify), "liquidify":
		*k = Liquify
	default:
		return fmt.Errorf("unknown effect %q (expected none, crystalize or liquify)", s)
	}

	return nil
}

// Timing places the effect in the render pipeline.
type Timing string

const (
	// Before applies the effect to the base layer before modules are drawn.
	Before Timing = "before"

	// After applies the effect to the composited image.
	After Timing = "after"
)

// Config holds the effect settings. The JSON keys match the settings
// document.
type Config struct {
	Kind   Kind   `json:"effect"`
	Timing Timing `json:"effectTiming"`

	// CrystalizeRadius is the average cell size in pixels.
	CrystalizeRadius float64 `json:"effectCrystalizeRadius"`

	// LiquifyDistortRadius is the largest displacement in pixels.
	LiquifyDistortRadius float64 `json:"effectLiquidifyDistortRadius"`

	// LiquifyRadius is the blur radius used to sample luminance.
	LiquifyRadius float64 `json:"effectLiquidifyRadius"`

	// LiquifyThreshold is the luminance pivot on a 0-256 scale.
	LiquifyThreshold float64 `json:"effectLiquidifyThreshold"`
}

// DefaultConfig returns no effect, applied after rendering, with radii of 8
// and a threshold of 128.
func DefaultConfig() Config {
	return Config{
		Kind:                 None,
		Timing:               After,
		CrystalizeRadius:     8,
		LiquifyDistortRadius: 8,
		LiquifyRadius:        8,
		LiquifyThreshold:     128,
	}
}

// Validate checks the effect settings.
func (c Config) Validate() error {
	switch c.Kind {
	case None, Crystalize, Liquify:
	default:
		return &qrcode.ConfigurationError{Field: "effect", Reason: fmt.Sprintf("unknown effect %q", c.Kind)}
	}

	switch c.Timing {
	case Before, After:
	default:
		return &qrcode.ConfigurationError{Field: "effectTiming", Reason: fmt.Sprintf("unknown timing %q (expected before or after)", c.Timing)}
	}

	switch {
	case c.CrystalizeRadius <= 0:
		return &qrcode.ConfigurationError{Field: "effectCrystalizeRadius", Reason: "must be positive"}
	case c.LiquifyDistortRadius <= 0:
		return &qrcode.ConfigurationError{Field: "effectLiquidifyDistortRadius", Reason: "must be positive"}
	case c.LiquifyRadius <= 0:
		return &qrcode.ConfigurationError{Field: "effectLiquidifyRadius", Reason: "must be positive"}
	case c.LiquifyThreshold < 0 || c.LiquifyThreshold > 256:
		return &qrcode.ConfigurationError{Field: "effectLiquidifyThreshold", Reason: "must be within 0..256"}
	}

	return nil
}
