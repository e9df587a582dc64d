// go-qrcode
// Copyright 2014 Tom Harwood

package style

import (
	"bytes"
	"encoding/json"
	"fmt"

	qrcode "github.com/weilsonwonder/go-qrstyle"
	"github.com/weilsonwonder/go-qrstyle/effect"
)

// ConfigurationError is shared with the encoder.
type ConfigurationError = qrcode.ConfigurationError

// PixelStyle is the glyph used for ordinary dark modules.
type PixelStyle string

const (
	PixelSquare   PixelStyle = "square"
	PixelRounded  PixelStyle = "rounded"
	PixelDot      PixelStyle = "dot"
	PixelSquircle PixelStyle = "squircle"
	PixelRow      PixelStyle = "row"
	PixelColumn   PixelStyle = "column"
	PixelPlus     PixelStyle = "plus"
	PixelRandom   PixelStyle = "random"
)

// PixelStyles lists every pixel style.
var PixelStyles = []PixelStyle{
	PixelSquare, PixelRounded, PixelDot, PixelSquircle, PixelRow, PixelColumn, PixelPlus, PixelRandom,
}

// MarkerStyleAuto draws marker modules with the global pixel style.
const MarkerStyleAuto PixelStyle = "auto"

// MarkerShape is the outer ring of a position marker.
type MarkerShape string

const (
	MarkerSquare   MarkerShape = "square"
	MarkerBox      MarkerShape = "box"
	MarkerPlus     MarkerShape = "plus"
	MarkerTinyPlus MarkerShape = "tiny-plus"
	MarkerRandom   MarkerShape = "random"
	MarkerCircle   MarkerShape = "circle"
	MarkerOctagon  MarkerShape = "octagon"
)

// MarkerShapes lists every marker shape.
var MarkerShapes = []MarkerShape{
	MarkerSquare, MarkerBox, MarkerPlus, MarkerTinyPlus, MarkerRandom, MarkerCircle, MarkerOctagon,
}

// InnerShape is the center of a position marker.
type InnerShape string

const (
	InnerAuto    InnerShape = "auto"
	InnerSquare  InnerShape = "square"
	InnerPlus    InnerShape = "plus"
	InnerCircle  InnerShape = "circle"
	InnerDiamond InnerShape = "diamond"
	InnerEye     InnerShape = "eye"
)

// InnerShapes lists every inner shape.
var InnerShapes = []InnerShape{InnerAuto, InnerSquare, InnerPlus, InnerCircle, InnerDiamond, InnerEye}

// SubShape is the glyph used for alignment patterns.
type SubShape string

const (
	SubSquare SubShape = "square"
	SubBox    SubShape = "box"
	SubPlus   SubShape = "plus"
	SubRandom SubShape = "random"
	SubCircle SubShape = "circle"
)

// SubShapes lists every alignment pattern shape.
var SubShapes = []SubShape{SubSquare, SubBox, SubPlus, SubRandom, SubCircle}

// SafeSpace controls how close margin noise may get to the symbol.
type SafeSpace string

const (
	// SafeFull keeps the standard four module quiet zone clear.
	SafeFull SafeSpace = "full"

	// SafeMarker keeps three modules around each position marker clear.
	SafeMarker SafeSpace = "marker"

	// SafeMinimal keeps one module around the symbol and the markers clear.
	SafeMinimal SafeSpace = "minimal"

	// SafeExtreme keeps one module around the markers clear.
	SafeExtreme SafeSpace = "extreme"

	// SafeNone places noise anywhere in the margin.
	SafeNone SafeSpace = "none"
)

// RenderPoints restricts which roles are drawn.
type RenderPoints string

const (
	RenderAll      RenderPoints = "all"
	RenderFunction RenderPoints = "function"
	RenderData     RenderPoints = "data"
	RenderGuide    RenderPoints = "guide"
	RenderMarker   RenderPoints = "marker"
)

// includes reports whether cells of role are drawn.
func (r RenderPoints) includes(role qrcode.CellRole) bool {
	switch r {
	case RenderAll:
		return true
	case RenderFunction:
		return role != qrcode.Data
	case RenderData:
		return role == qrcode.Data
	case RenderGuide:
		return role == qrcode.Timing || role == qrcode.Alignment
	case RenderMarker:
		return role == qrcode.FinderMarker || role == qrcode.Separator
	}

	return false
}

// MarkerStyle overrides the marker settings of one position marker. Empty
// fields inherit the global setting.
type MarkerStyle struct {
	MarkerStyle      PixelStyle  `json:"markerStyle,omitempty"`
	MarkerShape      MarkerShape `json:"markerShape,omitempty"`
	MarkerInnerShape InnerShape  `json:"markerInnerShape,omitempty"`
}

// Markers holds one optional override per position marker, indexed by
// qrcode.MarkerIndex. A nil entry uses the global marker settings.
type Markers [3]*MarkerStyle

// UnmarshalJSON accepts an array of up to three entries, each an override
// object or null. Missing entries are null.
func (m *Markers) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = Markers{}
		return nil
	}

	var entries []*MarkerStyle
	if err := json.Unmarshal(data, &entries); err != nil {
		return &ConfigurationError{Field: "markers", Reason: err.Error()}
	}

	if len(entries) > len(m) {
		return &ConfigurationError{Field: "markers", Reason: fmt.Sprintf("%d entries given, at most 3 allowed", len(entries))}
	}

	*m = Markers{}
	copy(m[:], entries)

	return nil
}

// Margin is the quiet zone width in modules on each side.
type Margin struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// UniformMargin returns a margin of n modules on every side.
func UniformMargin(n int) Margin {
	return Margin{Top: n, Left: n, Right: n, Bottom: n}
}

// UnmarshalJSON accepts a number or a {top,left,right,bottom} object.
func (m *Margin) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*m = UniformMargin(n)
		return nil
	}

	type plain Margin
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return &ConfigurationError{Field: "margin", Reason: "expected a number or a {top,left,right,bottom} object"}
	}

	*m = Margin(p)
	return nil
}

// MarshalJSON writes a number when all sides are equal.
func (m Margin) MarshalJSON() ([]byte, error) {
	if m == UniformMargin(m.Top) {
		return json.Marshal(m.Top)
	}

	type plain Margin
	return json.Marshal(plain(m))
}

// Range is a closed interval values are sampled from. A scalar is a range
// with Min == Max.
type Range struct {
	Min float64
	Max float64
}

// Fixed returns the range [v, v].
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// UnmarshalJSON accepts a number or a [min, max] pair.
func (r *Range) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*r = Fixed(v)
		return nil
	}

	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil || len(pair) != 2 {
		return &ConfigurationError{Field: "marginNoiseOpacity", Reason: "expected a number or a [min, max] pair"}
	}

	*r = Range{Min: pair[0], Max: pair[1]}
	return nil
}

// MarshalJSON writes a number for a fixed range.
func (r Range) MarshalJSON() ([]byte, error) {
	if r.Min == r.Max {
		return json.Marshal(r.Min)
	}

	return json.Marshal([2]float64{r.Min, r.Max})
}

// at returns the value at fraction t of the range.
func (r Range) at(t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}

// Config is the complete visual style of a symbol. It is pure data and is
// independent of the symbol it is applied to.
type Config struct {
	PixelStyle       PixelStyle  `json:"pixelStyle"`
	MarkerStyle      PixelStyle  `json:"markerStyle"`
	MarkerShape      MarkerShape `json:"markerShape"`
	MarkerInnerShape InnerShape  `json:"markerInnerShape"`
	MarkerSub        SubShape    `json:"markerSub"`
	Markers          Markers     `json:"markers"`

	LightColor string `json:"lightColor"`
	DarkColor  string `json:"darkColor"`
	Invert     bool   `json:"invert"`

	Margin Margin `json:"margin"`

	MarginNoise        bool      `json:"marginNoise"`
	MarginNoiseRate    float64   `json:"marginNoiseRate"`
	MarginNoiseOpacity Range     `json:"marginNoiseOpacity"`
	MarginNoiseSpace   SafeSpace `json:"marginNoiseSpace"`

	RenderPointsType RenderPoints `json:"renderPointsType"`

	// Rotate is a clockwise rotation of the whole image: 0, 90, 180 or 270.
	Rotate int `json:"rotate"`

	// Scale is the size of a module in pixels.
	Scale int `json:"scale"`

	// BackgroundImage is empty, a color, or a reference resolved by the
	// renderer's image source.
	BackgroundImage string `json:"backgroundImage,omitempty"`

	// Seed drives every pseudo-random choice.
	Seed int64 `json:"seed"`

	effect.Config
}

// DefaultConfig returns the default style: rounded black modules on white,
// square markers and a margin of two modules drawn at 20 pixels per module.
func DefaultConfig() Config {
	return Config{
		PixelStyle:         PixelRounded,
		MarkerStyle:        MarkerStyleAuto,
		MarkerShape:        MarkerSquare,
		MarkerInnerShape:   InnerAuto,
		MarkerSub:          SubSquare,
		LightColor:         "#ffffff",
		DarkColor:          "#000000",
		Margin:             UniformMargin(2),
		MarginNoiseRate:    0.5,
		MarginNoiseOpacity: Fixed(1),
		MarginNoiseSpace:   SafeMarker,
		RenderPointsType:   RenderAll,
		Scale:              20,
		Config:             effect.DefaultConfig(),
	}
}

func oneOf[T comparable](v T, set []T) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}

	return false
}

// Validate checks every field and returns the first problem found as a
// *qrcode.ConfigurationError.
func (c Config) Validate() error {
	if !oneOf(c.PixelStyle, PixelStyles) {
		return &ConfigurationError{Field: "pixelStyle", Reason: fmt.Sprintf("unknown pixel style %q", c.PixelStyle)}
	}

	if err := validateMarker("", MarkerStyle{c.MarkerStyle, c.MarkerShape, c.MarkerInnerShape}, false); err != nil {
		return err
	}

	for i, m := range c.Markers {
		if m == nil {
			continue
		}

		if err := validateMarker(fmt.Sprintf("markers[%d].", i), *m, true); err != nil {
			return err
		}
	}

	if !oneOf(c.MarkerSub, SubShapes) {
		return &ConfigurationError{Field: "markerSub", Reason: fmt.Sprintf("unknown sub marker shape %q", c.MarkerSub)}
	}

	if _, err := ParseColor(c.LightColor); err != nil {
		return &ConfigurationError{Field: "lightColor", Reason: err.Error()}
	}

	if _, err := ParseColor(c.DarkColor); err != nil {
		return &ConfigurationError{Field: "darkColor", Reason: err.Error()}
	}

	for _, side := range []int{c.Margin.Top, c.Margin.Left, c.Margin.Right, c.Margin.Bottom} {
		if side < 0 || side > maxMargin {
			return &ConfigurationError{Field: "margin", Reason: fmt.Sprintf("%d is outside 0..%d", side, maxMargin)}
		}
	}

	if c.MarginNoiseRate < 0 || c.MarginNoiseRate > 1 {
		return &ConfigurationError{Field: "marginNoiseRate", Reason: "must be within 0..1"}
	}

	if o := c.MarginNoiseOpacity; o.Min < 0 || o.Max > 1 || o.Min > o.Max {
		return &ConfigurationError{Field: "marginNoiseOpacity", Reason: "must be within 0..1 with min <= max"}
	}

	if !oneOf(c.MarginNoiseSpace, []SafeSpace{SafeFull, SafeMarker, SafeMinimal, SafeExtreme, SafeNone}) {
		return &ConfigurationError{Field: "marginNoiseSpace", Reason: fmt.Sprintf("unknown safe space %q", c.MarginNoiseSpace)}
	}

	if !oneOf(c.RenderPointsType, []RenderPoints{RenderAll, RenderFunction, RenderData, RenderGuide, RenderMarker}) {
		return &ConfigurationError{Field: "renderPointsType", Reason: fmt.Sprintf("unknown render type %q", c.RenderPointsType)}
	}

	if !oneOf(c.Rotate, []int{0, 90, 180, 270}) {
		return &ConfigurationError{Field: "rotate", Reason: fmt.Sprintf("%d is not one of 0, 90, 180, 270", c.Rotate)}
	}

	if c.Scale < 1 || c.Scale > maxScale {
		return &ConfigurationError{Field: "scale", Reason: fmt.Sprintf("%d is outside 1..%d", c.Scale, maxScale)}
	}

	return c.Config.Validate()
}

const (
	maxMargin = 20
	maxScale  = 50
)

func validateMarker(prefix string, m MarkerStyle, override bool) error {
	if !(override && m.MarkerStyle == "") && m.MarkerStyle != MarkerStyleAuto && !oneOf(m.MarkerStyle, PixelStyles) {
		return &ConfigurationError{Field: prefix + "markerStyle", Reason: fmt.Sprintf("unknown marker style %q", m.MarkerStyle)}
	}

	if !(override && m.MarkerShape == "") && !oneOf(m.MarkerShape, MarkerShapes) {
		return &ConfigurationError{Field: prefix + "markerShape", Reason: fmt.Sprintf("unknown marker shape %q", m.MarkerShape)}
	}

	if !(override && m.MarkerInnerShape == "") && !oneOf(m.MarkerInnerShape, InnerShapes) {
		return &ConfigurationError{Field: prefix + "markerInnerShape", Reason: fmt.Sprintf("unknown inner shape %q", m.MarkerInnerShape)}
	}

	return nil
}
