// go-qrcode
// Copyright 2014 Tom Harwood

package qrcode

import (
	"fmt"
	"log"
	"unicode/utf8"

	bitset "github.com/weilsonwonder/go-qrstyle/bitset"
)

// Data encoding.
//
// The main data portion of a QR Code consists of one or more segments of data.
// A segment consists of:
//
// - The segment Data Mode: numeric, alphanumeric, or byte.
// - The length of segment in bits.
// - Encoded data.
//
// Only a single segment is written, in the smallest data mode able to hold the
// whole content. Byte mode is always a safe fallback for valid UTF-8.
//
// The character count field width depends on the version class: 1-9, 10-26 and
// 27-40.
type dataEncoderType uint8

const (
	dataEncoderType1To9 dataEncoderType = iota
	dataEncoderType10To26
	dataEncoderType27To40
)

// dataEncoderTypeForVersion returns the character count class of version.
func dataEncoderTypeForVersion(version int) dataEncoderType {
	switch {
	case version <= 9:
		return dataEncoderType1To9
	case version <= 26:
		return dataEncoderType10To26
	default:
		return dataEncoderType27To40
	}
}

// dataMode is a segment data mode, ordered from most to least compact.
type dataMode uint8

const (
	dataModeNumeric dataMode = iota
	dataModeAlphanumeric
	dataModeByte
)

func (d dataMode) String() string {
	switch d {
	case dataModeNumeric:
		return "numeric"
	case dataModeAlphanumeric:
		return "alphanumeric"
	case dataModeByte:
		return "byte"
	}

	return "unknown"
}

// modeIndicator is the 4-bit mode indicator written ahead of the segment.
func (d dataMode) modeIndicator() uint32 {
	switch d {
	case dataModeNumeric:
		return 0x1
	case dataModeAlphanumeric:
		return 0x2
	case dataModeByte:
		return 0x4
	}

	log.Panicf("Unknown data mode %d", d)
	return 0
}

// characterCountBits returns the width of the character count field.
func (d dataMode) characterCountBits(t dataEncoderType) int {
	switch d {
	case dataModeNumeric:
		return [...]int{10, 12, 14}[t]
	case dataModeAlphanumeric:
		return [...]int{9, 11, 13}[t]
	case dataModeByte:
		return [...]int{8, 16, 16}[t]
	}

	log.Panicf("Unknown data mode %d", d)
	return 0
}

// alphanumericTable maps ASCII values to alphanumeric codes.
var alphanumericTable = [128]int8{
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	36, -1, -1, -1, 37, 38, -1, -1, -1, -1, 39, 40, -1, 41, 42, 43,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 44, -1, -1, -1, -1, -1,
	-1, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24,
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
}

func alphanumericCode(c byte) int {
	if c < 128 {
		return int(alphanumericTable[c])
	}

	return -1
}

// chooseMode returns the smallest data mode able to encode all of data.
func chooseMode(data []byte) dataMode {
	if len(data) == 0 {
		return dataModeByte
	}

	mode := dataModeNumeric

	for _, c := range data {
		switch {
		case c >= '0' && c <= '9':
		case alphanumericCode(c) != -1:
			mode = dataModeAlphanumeric
		default:
			return dataModeByte
		}
	}

	return mode
}

// dataEncoder encodes content as a single segment for one version class.
type dataEncoder struct {
	encoderType dataEncoderType
	mode        dataMode
}

// newDataEncoder constructs a dataEncoder for version class t.
func newDataEncoder(t dataEncoderType, mode dataMode) *dataEncoder {
	return &dataEncoder{encoderType: t, mode: mode}
}

// encode returns the mode indicator, character count and encoded data.
//
// An error is returned if the character count does not fit in this class's
// count field.
func (d *dataEncoder) encode(data []byte) (*bitset.Bitset, error) {
	countBits := d.mode.characterCountBits(d.encoderType)
	if len(data) >= 1<<uint(countBits) {
		return nil, &EncodingError{
			Reason: TextTooLong,
			Detail: fmt.Sprintf("%d characters exceed the %d-bit %s count field", len(data), countBits, d.mode),
		}
	}

	result := bitset.New()
	result.AppendUint32(d.mode.modeIndicator(), 4)
	result.AppendUint32(uint32(len(data)), countBits)

	switch d.mode {
	case dataModeNumeric:
		appendNumeric(result, data)
	case dataModeAlphanumeric:
		appendAlphanumeric(result, data)
	case dataModeByte:
		result.AppendBytes(data)
	}

	return result, nil
}

func appendNumeric(b *bitset.Bitset, data []byte) {
	for i := 0; i < len(data); i += 3 {
		switch remaining := len(data) - i; {
		case remaining >= 3:
			n := uint32(data[i]-'0')*100 + uint32(data[i+1]-'0')*10 + uint32(data[i+2]-'0')
			b.AppendUint32(n, 10)
		case remaining == 2:
			b.AppendUint32(uint32(data[i]-'0')*10+uint32(data[i+1]-'0'), 7)
		default:
			b.AppendUint32(uint32(data[i]-'0'), 4)
		}
	}
}

func appendAlphanumeric(b *bitset.Bitset, data []byte) {
	for i := 0; i < len(data); i += 2 {
		if i+1 < len(data) {
			b.AppendUint32(uint32(alphanumericCode(data[i])*45+alphanumericCode(data[i+1])), 11)
		} else {
			b.AppendUint32(uint32(alphanumericCode(data[i])), 6)
		}
	}
}

// validateContent rejects content no data mode can represent.
func validateContent(content string) error {
	if !utf8.ValidString(content) {
		return &EncodingError{Reason: UnsupportedCharacterSet, Detail: "text is not valid UTF-8"}
	}

	return nil
}
