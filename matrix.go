// go-qrcode
// Copyright 2014 Tom Harwood

package qrcode

import (
	"bytes"
	"fmt"
	"image"
)

// CellRole is the structural role of a module.
type CellRole uint8

const (
	// Margin is the role of every coordinate outside the symbol grid.
	Margin CellRole = iota
	FinderMarker
	Separator
	Timing
	Alignment
	FormatInfo
	VersionInfo
	Data
)

// NumCellRoles is the number of distinct roles.
const NumCellRoles = int(Data) + 1

var cellRoleNames = [NumCellRoles]string{
	"margin", "finder", "separator", "timing", "alignment", "format", "version", "data",
}

func (r CellRole) String() string {
	if int(r) >= NumCellRoles {
		return fmt.Sprintf("CellRole(%d)", int(r))
	}

	return cellRoleNames[r]
}

// MarkerIndex identifies one of the three position markers.
type MarkerIndex int8

const (
	NoMarker   MarkerIndex = -1
	TopLeft    MarkerIndex = 0
	TopRight   MarkerIndex = 1
	BottomLeft MarkerIndex = 2
)

// Cell is one module of a SymbolMatrix.
type Cell struct {
	Dark bool
	Role CellRole

	// Marker is set for FinderMarker and Separator cells, NoMarker otherwise.
	Marker MarkerIndex
}

var marginCell = Cell{Role: Margin, Marker: NoMarker}

// SymbolMatrix is an encoded QR Code symbol with the role of every module.
//
// A SymbolMatrix is immutable. Restyling a symbol never requires encoding it
// again.
type SymbolMatrix struct {
	version int
	level   RecoveryLevel
	mask    int
	penalty int
	size    int

	// Row major, cells[y*size+x].
	cells []Cell

	alignmentCenters []image.Point
}

func newSymbolMatrix(v qrCodeVersion, mask int, s *symbol, penalty int) *SymbolMatrix {
	m := &SymbolMatrix{
		version: v.version,
		level:   v.level,
		mask:    mask,
		penalty: penalty,
		size:    s.size,
		cells:   make([]Cell, len(s.module)),
	}

	for i := range m.cells {
		m.cells[i] = Cell{Dark: s.module[i], Role: s.role[i], Marker: s.marker[i]}
	}

	for _, x := range v.alignmentCenters() {
		for _, y := range v.alignmentCenters() {
			if s.role[y*s.size+x] == Alignment {
				m.alignmentCenters = append(m.alignmentCenters, image.Pt(x, y))
			}
		}
	}

	return m
}

// Size returns the width and height of the symbol in modules, excluding any
// quiet zone.
func (m *SymbolMatrix) Size() int {
	return m.size
}

// Version returns the version number, 1-40.
func (m *SymbolMatrix) Version() int {
	return m.version
}

// Level returns the recovery level actually used, which may be higher than
// requested when error correction was boosted.
func (m *SymbolMatrix) Level() RecoveryLevel {
	return m.level
}

// Mask returns the mask pattern applied, 0-7.
func (m *SymbolMatrix) Mask() int {
	return m.mask
}

// Penalty returns the mask penalty score of the symbol.
func (m *SymbolMatrix) Penalty() int {
	return m.penalty
}

// At returns the module at (x, y). Coordinates outside the symbol are light
// Margin cells.
func (m *SymbolMatrix) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= m.size || y >= m.size {
		return marginCell
	}

	return m.cells[y*m.size+x]
}

// Dark reports whether the module at (x, y) is dark.
func (m *SymbolMatrix) Dark(x, y int) bool {
	return m.At(x, y).Dark
}

// Cells returns a copy of all modules in row major order.
func (m *SymbolMatrix) Cells() []Cell {
	return append([]Cell(nil), m.cells...)
}

// MarkerOrigins returns the top left module of each 7x7 finder pattern,
// indexed by MarkerIndex.
func (m *SymbolMatrix) MarkerOrigins() [3]image.Point {
	far := m.size - finderPatternSize

	return [3]image.Point{
		TopLeft:    image.Pt(0, 0),
		TopRight:   image.Pt(far, 0),
		BottomLeft: image.Pt(0, far),
	}
}

// AlignmentCenters returns the center module of every alignment pattern.
func (m *SymbolMatrix) AlignmentCenters() []image.Point {
	return append([]image.Point(nil), m.alignmentCenters...)
}

// Bitmap returns the symbol as a 2D array of modules surrounded by a quiet
// zone of quietZone modules.
//
// bitmap[y][x] is true if the module at (x, y) is dark.
func (m *SymbolMatrix) Bitmap(quietZone int) [][]bool {
	total := m.size + 2*quietZone
	result := make([][]bool, total)

	for y := range result {
		result[y] = make([]bool, total)
		for x := range result[y] {
			result[y][x] = m.Dark(x-quietZone, y-quietZone)
		}
	}

	return result
}

// ToSmallString produces a multi-line string that forms a QR-code image using
// half height block characters, including the standard quiet zone.
func (m *SymbolMatrix) ToSmallString(inverseColor bool) string {
	bits := m.Bitmap(quietZoneSize)
	var buf bytes.Buffer
	// if there is an odd number of rows, the last one needs special treatment
	for y := 0; y < len(bits)-1; y += 2 {
		for x := range bits[y] {
			top, bottom := bits[y][x] == inverseColor, bits[y+1][x] == inverseColor

			switch {
			case top && bottom:
				buf.WriteString("█")
			case top:
				buf.WriteString("▀")
			case bottom:
				buf.WriteString("▄")
			default:
				buf.WriteString(" ")
			}
		}
		buf.WriteString("\n")
	}
	// special treatment for the last row if odd
	if len(bits)%2 == 1 {
		y := len(bits) - 1
		for x := range bits[y] {
			if bits[y][x] != inverseColor {
				buf.WriteString(" ")
			} else {
				buf.WriteString("▀")
			}
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

// Classification summarises the role coverage of a SymbolMatrix.
type Classification struct {
	// Counts holds the number of in-grid modules per role.
	Counts [NumCellRoles]int

	// Unclassified lists in-grid modules without a role.
	Unclassified []image.Point

	// Misattributed lists modules whose marker index disagrees with their
	// role: marker cells without a marker or other cells with one.
	Misattributed []image.Point
}

// Complete reports whether every module has exactly one role and a consistent
// marker index.
func (c Classification) Complete() bool {
	return len(c.Unclassified) == 0 && len(c.Misattributed) == 0
}

// Classify walks the matrix and checks that every module carries exactly one
// structural role, and that the finder markers and their separators are
// attributed to the correct marker.
func Classify(m *SymbolMatrix) Classification {
	var c Classification
	origins := m.MarkerOrigins()

	for y := 0; y < m.size; y++ {
		for x := 0; x < m.size; x++ {
			cell := m.At(x, y)
			c.Counts[cell.Role]++

			if cell.Role == Margin {
				c.Unclassified = append(c.Unclassified, image.Pt(x, y))
				continue
			}

			isMarker := cell.Role == FinderMarker || cell.Role == Separator
			switch {
			case isMarker && cell.Marker == NoMarker:
				c.Misattributed = append(c.Misattributed, image.Pt(x, y))
			case !isMarker && cell.Marker != NoMarker:
				c.Misattributed = append(c.Misattributed, image.Pt(x, y))
			case isMarker && !nearMarker(origins[cell.Marker], x, y):
				c.Misattributed = append(c.Misattributed, image.Pt(x, y))
			}
		}
	}

	return c
}

// nearMarker reports whether (x, y) lies in the 9x9 box around the finder
// pattern at origin, which covers the pattern and its separator.
func nearMarker(origin image.Point, x, y int) bool {
	return x >= origin.X-1 && x <= origin.X+finderPatternSize &&
		y >= origin.Y-1 && y <= origin.Y+finderPatternSize
}
