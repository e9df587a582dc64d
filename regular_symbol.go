// go-qrcode
// Copyright 2014 Tom Harwood

package qrcode

import (
	"log"

	bitset "github.com/weilsonwonder/go-qrstyle/bitset"
)

type regularSymbol struct {
	version qrCodeVersion
	mask    int

	data *bitset.Bitset

	symbol *symbol
	size   int
}

// Abbreviated true/false.
const (
	b0 = false
	b1 = true
)

var (
	finderPattern = [][]bool{
		{b1, b1, b1, b1, b1, b1, b1},
		{b1, b0, b0, b0, b0, b0, b1},
		{b1, b0, b1, b1, b1, b0, b1},
		{b1, b0, b1, b1, b1, b0, b1},
		{b1, b0, b1, b1, b1, b0, b1},
		{b1, b0, b0, b0, b0, b0, b1},
		{b1, b1, b1, b1, b1, b1, b1},
	}

	finderPatternSize = 7

	finderPatternHorizontalBorder = [][]bool{
		{b0, b0, b0, b0, b0, b0, b0, b0},
	}

	finderPatternVerticalBorder = [][]bool{
		{b0},
		{b0},
		{b0},
		{b0},
		{b0},
		{b0},
		{b0},
		{b0},
	}

	alignmentPattern = [][]bool{
		{b1, b1, b1, b1, b1},
		{b1, b0, b0, b0, b1},
		{b1, b0, b1, b0, b1},
		{b1, b0, b0, b0, b1},
		{b1, b1, b1, b1, b1},
	}

	// reservedFormatInfo occupies the format information modules until the
	// mask is known.
	reservedFormatInfo = bitset.New(make([]bool, formatInfoLengthBits)...)
)

// buildFunctionPatterns returns a symbol holding every function pattern of
// version, with the format information modules reserved. The result is shared
// by all mask candidates and must be cloned before use.
func buildFunctionPatterns(version qrCodeVersion) *symbol {
	m := &regularSymbol{
		version: version,
		symbol:  newSymbol(version.symbolSize()),
		size:    version.symbolSize(),
	}

	m.addFinderPatterns()
	m.addAlignmentPatterns()
	m.addTimingPatterns()
	m.writeFormatInfo(reservedFormatInfo)
	m.addVersionInfo()

	return m.symbol
}

// buildRegularSymbol places data onto a copy of functionPatterns using mask.
func buildRegularSymbol(functionPatterns *symbol, version qrCodeVersion, mask int,
	data *bitset.Bitset) *symbol {

	m := &regularSymbol{
		version: version,
		mask:    mask,
		data:    data,

		symbol: functionPatterns.clone(),
		size:   version.symbolSize(),
	}

	m.writeFormatInfo(m.version.formatInfo(m.mask))
	m.addData()

	return m.symbol
}

func (m *regularSymbol) addFinderPatterns() {
	fpSize := finderPatternSize
	fp := finderPattern
	fpHBorder := finderPatternHorizontalBorder
	fpVBorder := finderPatternVerticalBorder

	// Top left Finder Pattern.
	m.symbol.set2dPattern(0, 0, fp, FinderMarker, TopLeft)
	m.symbol.set2dPattern(0, fpSize, fpHBorder, Separator, TopLeft)
	m.symbol.set2dPattern(fpSize, 0, fpVBorder, Separator, TopLeft)

	// Top right Finder Pattern.
	m.symbol.set2dPattern(m.size-fpSize, 0, fp, FinderMarker, TopRight)
	m.symbol.set2dPattern(m.size-fpSize-1, fpSize, fpHBorder, Separator, TopRight)
	m.symbol.set2dPattern(m.size-fpSize-1, 0, fpVBorder, Separator, TopRight)

	// Bottom left Finder Pattern.
	m.symbol.set2dPattern(0, m.size-fpSize, fp, FinderMarker, BottomLeft)
	m.symbol.set2dPattern(0, m.size-fpSize-1, fpHBorder, Separator, BottomLeft)
	m.symbol.set2dPattern(fpSize, m.size-fpSize-1, fpVBorder, Separator, BottomLeft)
}

// addAlignmentPatterns places an alignment pattern on every center that is
// not already occupied by a finder pattern.
func (m *regularSymbol) addAlignmentPatterns() {
	for _, x := range m.version.alignmentCenters() {
		for _, y := range m.version.alignmentCenters() {
			if !m.symbol.empty(x, y) {
				continue
			}

			m.symbol.set2dPattern(x-2, y-2, alignmentPattern, Alignment, NoMarker)
		}
	}
}

// addTimingPatterns fills row and column 6 between the separators. Modules
// already taken by alignment patterns keep their role.
func (m *regularSymbol) addTimingPatterns() {
	for i := finderPatternSize + 1; i < m.size-finderPatternSize-1; i++ {
		value := i%2 == 0

		if m.symbol.empty(i, finderPatternSize-1) {
			m.symbol.set(i, finderPatternSize-1, value, Timing)
		}

		if m.symbol.empty(finderPatternSize-1, i) {
			m.symbol.set(finderPatternSize-1, i, value, Timing)
		}
	}
}

// writeFormatInfo writes both copies of the 15-bit format information f and
// the dark module.
func (m *regularSymbol) writeFormatInfo(f *bitset.Bitset) {
	fpSize := finderPatternSize
	l := formatInfoLengthBits - 1

	// Bits 0-7, under the top right finder pattern.
	for i := 0; i <= 7; i++ {
		m.symbol.set(m.size-i-1, fpSize+1, f.At(l-i), FormatInfo)
	}

	// Bits 0-5, right of the top left finder pattern.
	for i := 0; i <= 5; i++ {
		m.symbol.set(fpSize+1, i, f.At(l-i), FormatInfo)
	}

	// Bits 6-8 on the corner of the top left finder pattern.
	m.symbol.set(fpSize+1, fpSize, f.At(l-6), FormatInfo)
	m.symbol.set(fpSize+1, fpSize+1, f.At(l-7), FormatInfo)
	m.symbol.set(fpSize, fpSize+1, f.At(l-8), FormatInfo)

	// Bits 9-14 on the underside of the top left finder pattern.
	for i := 9; i <= 14; i++ {
		m.symbol.set(14-i, fpSize+1, f.At(l-i), FormatInfo)
	}

	// Bits 8-14 on the right side of the bottom left finder pattern.
	for i := 8; i <= 14; i++ {
		m.symbol.set(fpSize+1, m.size-fpSize+i-8, f.At(l-i), FormatInfo)
	}

	// Always dark symbol.
	m.symbol.set(fpSize+1, m.size-fpSize-1, true, FormatInfo)
}

func (m *regularSymbol) addVersionInfo() {
	fpSize := finderPatternSize

	v := m.version.versionInfo()
	l := versionInfoLengthBits - 1

	if v == nil {
		return
	}

	for i := 0; i < v.Len(); i++ {
		// Above the bottom left finder pattern.
		m.symbol.set(i/3, m.size-fpSize-4+i%3, v.At(l-i), VersionInfo)

		// Left of the top right finder pattern.
		m.symbol.set(m.size-fpSize-4+i%3, i/3, v.At(l-i), VersionInfo)
	}
}

// maskBit reports whether mask inverts the module at (x, y).
func maskBit(mask int, x int, y int) bool {
	switch mask {
	case 0:
		return (y+x)%2 == 0
	case 1:
		return y%2 == 0
	case 2:
		return x%3 == 0
	case 3:
		return (y+x)%3 == 0
	case 4:
		return (y/2+x/3)%2 == 0
	case 5:
		return (y*x)%2+(y*x)%3 == 0
	case 6:
		return ((y*x)%2+(y*x)%3)%2 == 0
	case 7:
		return ((y+x)%2+(y*x)%3)%2 == 0
	}

	log.Panicf("Invalid mask %d", mask)
	return false
}

// addData places the data bits in two-module wide columns, starting at the
// bottom right and zigzagging upwards and downwards. Function pattern modules
// are skipped, as is the whole vertical timing column. Modules left over once
// the data runs out are treated as zero bits.
func (m *regularSymbol) addData() {
	bitIndex := 0
	up := true

	for x := m.size - 1; x > 0; x -= 2 {
		if x == finderPatternSize-1 {
			x--
		}

		for i := 0; i < m.size; i++ {
			y := i
			if up {
				y = m.size - 1 - i
			}

			for _, px := range [2]int{x, x - 1} {
				if !m.symbol.empty(px, y) {
					continue
				}

				var v bool
				if bitIndex < m.data.Len() {
					v = m.data.At(bitIndex)
					bitIndex++
				}

				// != is equivalent to XOR.
				m.symbol.set(px, y, maskBit(m.mask, px, y) != v, Data)
			}
		}

		up = !up
	}

	if bitIndex != m.data.Len() {
		log.Panicf("bug: placed %d of %d data bits (version=%d)", bitIndex, m.data.Len(), m.version.version)
	}
}
