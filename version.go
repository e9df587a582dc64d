// go-qrcode
// Copyright 2014 Tom Harwood

package qrcode

import (
	"fmt"
	"log"
	"strings"

	bitset "github.com/weilsonwonder/go-qrstyle/bitset"
)

// Error detection/recovery capacity.
//
// There are several levels of error detection/recovery capacity. Higher levels
// of error recovery are able to correct more errors, with the trade-off of
// increased symbol size.
type RecoveryLevel int

const (
	// Level L: 7% error recovery.
	Low RecoveryLevel = iota

	// Level M: 15% error recovery.
	Medium

	// Level Q: 25% error recovery.
	High

	// Level H: 30% error recovery.
	Highest
)

var recoveryLevelNames = [...]string{"L", "M", "Q", "H"}

// String returns the single letter name of the level.
func (l RecoveryLevel) String() string {
	if l < Low || l > Highest {
		return fmt.Sprintf("RecoveryLevel(%d)", int(l))
	}

	return recoveryLevelNames[l]
}

// MarshalText encodes the level as L, M, Q or H.
func (l RecoveryLevel) MarshalText() ([]byte, error) {
	if l < Low || l > Highest {
		return nil, &ConfigurationError{Field: "ecc", Reason: fmt.Sprintf("unknown recovery level %d", int(l))}
	}

	return []byte(recoveryLevelNames[l]), nil
}

// UnmarshalText accepts L, M, Q or H in either case.
func (l *RecoveryLevel) UnmarshalText(text []byte) error {
	level, err := ParseRecoveryLevel(string(text))
	if err != nil {
		return err
	}

	*l = level
	return nil
}

// ParseRecoveryLevel parses L, M, Q or H.
func ParseRecoveryLevel(s string) (RecoveryLevel, error) {
	for i, name := range recoveryLevelNames {
		if strings.EqualFold(s, name) {
			return RecoveryLevel(i), nil
		}
	}

	return Low, &ConfigurationError{Field: "ecc", Reason: fmt.Sprintf("unknown recovery level %q (expected L, M, Q or H)", s)}
}

// formatBits returns the two bit error correction indicator used by the
// format information.
func (l RecoveryLevel) formatBits() uint32 {
	switch l {
	case Low:
		return 0x1
	case Medium:
		return 0x0
	case High:
		return 0x3
	case Highest:
		return 0x2
	}

	log.Panicf("Unknown recovery level %d", int(l))
	return 0
}

// qrCodeVersion describes the data length and encoding order of a single QR
// Code version. There are 40 versions numbers x 4 recovery levels == 160
// possible qrCodeVersion structures.
type qrCodeVersion struct {
	// Version number (1-40 inclusive).
	version int

	// Recovery level.
	level RecoveryLevel

	// Number of unused bits appended after the interleaved codewords.
	numRemainderBits int

	// Encoded data can be split into multiple blocks. Each block contains data
	// and error recovery bytes.
	//
	// Larger QR Codes contain more blocks.
	block []block
}

type block struct {
	numBlocks int

	// Total codewords (numCodewords == numErrorCodewords+numDataCodewords).
	numCodewords int

	// Number of data codewords.
	numDataCodewords int
}

const (
	minVersion = 1
	maxVersion = 40

	// The quiet zone width recommended by ISO/IEC 18004.
	quietZoneSize = 4

	formatInfoLengthBits  = 15
	versionInfoLengthBits = 18

	formatInfoPoly  = 0x537
	formatInfoMask  = 0x5412
	versionInfoPoly = 0x1f25
)

var (
	versions = []qrCodeVersion{
		{
			1,
			Low,
			0,
			[]block{{1, 26, 19}},
		},
		{
			1,
			Medium,
			0,
			[]block{{1, 26, 16}},
		},
		{
			1,
			High,
			0,
			[]block{{1, 26, 13}},
		},
		{
			1,
			Highest,
			0,
			[]block{{1, 26, 9}},
		},
		{
			2,
			Low,
			7,
			[]block{{1, 44, 34}},
		},
		{
			2,
			Medium,
			7,
			[]block{{1, 44, 28}},
		},
		{
			2,
			High,
			7,
			[]block{{1, 44, 22}},
		},
		{
			2,
			Highest,
			7,
			[]block{{1, 44, 16}},
		},
		{
			3,
			Low,
			7,
			[]block{{1, 70, 55}},
		},
		{
			3,
			Medium,
			7,
			[]block{{1, 70, 44}},
		},
		{
			3,
			High,
			7,
			[]block{{2, 35, 17}},
		},
		{
			3,
			Highest,
			7,
			[]block{{2, 35, 13}},
		},
		{
			4,
			Low,
			7,
			[]block{{1, 100, 80}},
		},
		{
			4,
			Medium,
			7,
			[]block{{2, 50, 32}},
		},
		{
			4,
			High,
			7,
			[]block{{2, 50, 24}},
		},
		{
			4,
			Highest,
			7,
			[]block{{4, 25, 9}},
		},
		{
			5,
			Low,
			7,
			[]block{{1, 134, 108}},
		},
		{
			5,
			Medium,
			7,
			[]block{{2, 67, 43}},
		},
		{
			5,
			High,
			7,
			[]block{{2, 33, 15}, {2, 34, 16}},
		},
		{
			5,
			Highest,
			7,
			[]block{{2, 33, 11}, {2, 34, 12}},
		},
		{
			6,
			Low,
			7,
			[]block{{2, 86, 68}},
		},
		{
			6,
			Medium,
			7,
			[]block{{4, 43, 27}},
		},
		{
			6,
			High,
			7,
			[]block{{4, 43, 19}},
		},
		{
			6,
			Highest,
			7,
			[]block{{4, 43, 15}},
		},
		{
			7,
			Low,
			0,
			[]block{{2, 98, 78}},
		},
		{
			7,
			Medium,
			0,
			[]block{{4, 49, 31}},
		},
		{
			7,
			High,
			0,
			[]block{{2, 32, 14}, {4, 33, 15}},
		},
		{
			7,
			Highest,
			0,
			[]block{{4, 39, 13}, {1, 40, 14}},
		},
		{
			8,
			Low,
			0,
			[]block{{2, 121, 97}},
		},
		{
			8,
			Medium,
			0,
			[]block{{2, 60, 38}, {2, 61, 39}},
		},
		{
			8,
			High,
			0,
			[]block{{4, 40, 18}, {2, 41, 19}},
		},
		{
			8,
			Highest,
			0,
			[]block{{4, 40, 14}, {2, 41, 15}},
		},
		{
			9,
			Low,
			0,
			[]block{{2, 146, 116}},
		},
		{
			9,
			Medium,
			0,
			[]block{{3, 58, 36}, {2, 59, 37}},
		},
		{
			9,
			High,
			0,
			[]block{{4, 36, 16}, {4, 37, 17}},
		},
		{
			9,
			Highest,
			0,
			[]block{{4, 36, 12}, {4, 37, 13}},
		},
		{
			10,
			Low,
			0,
			[]block{{2, 86, 68}, {2, 87, 69}},
		},
		{
			10,
			Medium,
			0,
			[]block{{4, 69, 43}, {1, 70, 44}},
		},
		{
			10,
			High,
			0,
			[]block{{6, 43, 19}, {2, 44, 20}},
		},
		{
			10,
			Highest,
			0,
			[]block{{6, 43, 15}, {2, 44, 16}},
		},
		{
			11,
			Low,
			0,
			[]block{{4, 101, 81}},
		},
		{
			11,
			Medium,
			0,
			[]block{{1, 80, 50}, {4, 81, 51}},
		},
		{
			11,
			High,
			0,
			[]block{{4, 50, 22}, {4, 51, 23}},
		},
		{
			11,
			Highest,
			0,
			[]block{{3, 36, 12}, {8, 37, 13}},
		},
		{
			12,
			Low,
			0,
			[]block{{2, 116, 92}, {2, 117, 93}},
		},
		{
			12,
			Medium,
			0,
			[]block{{6, 58, 36}, {2, 59, 37}},
		},
		{
			12,
			High,
			0,
			[]block{{4, 46, 20}, {6, 47, 21}},
		},
		{
			12,
			Highest,
			0,
			[]block{{7, 42, 14}, {4, 43, 15}},
		},
		{
			13,
			Low,
			0,
			[]block{{4, 133, 107}},
		},
		{
			13,
			Medium,
			0,
			[]block{{8, 59, 37}, {1, 60, 38}},
		},
		{
			13,
			High,
			0,
			[]block{{8, 44, 20}, {4, 45, 21}},
		},
		{
			13,
			Highest,
			0,
			[]block{{12, 33, 11}, {4, 34, 12}},
		},
		{
			14,
			Low,
			3,
			[]block{{3, 145, 115}, {1, 146, 116}},
		},
		{
			14,
			Medium,
			3,
			[]block{{4, 64, 40}, {5, 65, 41}},
		},
		{
			14,
			High,
			3,
			[]block{{11, 36, 16}, {5, 37, 17}},
		},
		{
			14,
			Highest,
			3,
			[]block{{11, 36, 12}, {5, 37, 13}},
		},
		{
			15,
			Low,
			3,
			[]block{{5, 109, 87}, {1, 110, 88}},
		},
		{
			15,
			Medium,
			3,
			[]block{{5, 65, 41}, {5, 66, 42}},
		},
		{
			15,
			High,
			3,
			[]block{{5, 54, 24}, {7, 55, 25}},
		},
		{
			15,
			Highest,
			3,
			[]block{{11, 36, 12}, {7, 37, 13}},
		},
		{
			16,
			Low,
			3,
			[]block{{5, 122, 98}, {1, 123, 99}},
		},
		{
			16,
			Medium,
			3,
			[]block{{7, 73, 45}, {3, 74, 46}},
		},
		{
			16,
			High,
			3,
			[]block{{15, 43, 19}, {2, 44, 20}},
		},
		{
			16,
			Highest,
			3,
			[]block{{3, 45, 15}, {13, 46, 16}},
		},
		{
			17,
			Low,
			3,
			[]block{{1, 135, 107}, {5, 136, 108}},
		},
		{
			17,
			Medium,
			3,
			[]block{{10, 74, 46}, {1, 75, 47}},
		},
		{
			17,
			High,
			3,
			[]block{{1, 50, 22}, {15, 51, 23}},
		},
		{
			17,
			Highest,
			3,
			[]block{{2, 42, 14}, {17, 43, 15}},
		},
		{
			18,
			Low,
			3,
			[]block{{5, 150, 120}, {1, 151, 121}},
		},
		{
			18,
			Medium,
			3,
			[]block{{9, 69, 43}, {4, 70, 44}},
		},
		{
			18,
			High,
			3,
			[]block{{17, 50, 22}, {1, 51, 23}},
		},
		{
			18,
			Highest,
			3,
			[]block{{2, 42, 14}, {19, 43, 15}},
		},
		{
			19,
			Low,
			3,
			[]block{{3, 141, 113}, {4, 142, 114}},
		},
		{
			19,
			Medium,
			3,
			[]block{{3, 70, 44}, {11, 71, 45}},
		},
		{
			19,
			High,
			3,
			[]block{{17, 47, 21}, {4, 48, 22}},
		},
		{
			19,
			Highest,
			3,
			[]block{{9, 39, 13}, {16, 40, 14}},
		},
		{
			20,
			Low,
			3,
			[]block{{3, 135, 107}, {5, 136, 108}},
		},
		{
			20,
			Medium,
			3,
			[]block{{3, 67, 41}, {13, 68, 42}},
		},
		{
			20,
			High,
			3,
			[]block{{15, 54, 24}, {5, 55, 25}},
		},
		{
			20,
			Highest,
			3,
			[]block{{15, 43, 15}, {10, 44, 16}},
		},
		{
			21,
			Low,
			4,
			[]block{{4, 144, 116}, {4, 145, 117}},
		},
		{
			21,
			Medium,
			4,
			[]block{{17, 68, 42}},
		},
		{
			21,
			High,
			4,
			[]block{{17, 50, 22}, {6, 51, 23}},
		},
		{
			21,
			Highest,
			4,
			[]block{{19, 46, 16}, {6, 47, 17}},
		},
		{
			22,
			Low,
			4,
			[]block{{2, 139, 111}, {7, 140, 112}},
		},
		{
			22,
			Medium,
			4,
			[]block{{17, 74, 46}},
		},
		{
			22,
			High,
			4,
			[]block{{7, 54, 24}, {16, 55, 25}},
		},
		{
			22,
			Highest,
			4,
			[]block{{34, 37, 13}},
		},
		{
			23,
			Low,
			4,
			[]block{{4, 151, 121}, {5, 152, 122}},
		},
		{
			23,
			Medium,
			4,
			[]block{{4, 75, 47}, {14, 76, 48}},
		},
		{
			23,
			High,
			4,
			[]block{{11, 54, 24}, {14, 55, 25}},
		},
		{
			23,
			Highest,
			4,
			[]block{{16, 45, 15}, {14, 46, 16}},
		},
		{
			24,
			Low,
			4,
			[]block{{6, 147, 117}, {4, 148, 118}},
		},
		{
			24,
			Medium,
			4,
			[]block{{6, 73, 45}, {14, 74, 46}},
		},
		{
			24,
			High,
			4,
			[]block{{11, 54, 24}, {16, 55, 25}},
		},
		{
			24,
			Highest,
			4,
			[]block{{30, 46, 16}, {2, 47, 17}},
		},
		{
			25,
			Low,
			4,
			[]block{{8, 132, 106}, {4, 133, 107}},
		},
		{
			25,
			Medium,
			4,
			[]block{{8, 75, 47}, {13, 76, 48}},
		},
		{
			25,
			High,
			4,
			[]block{{7, 54, 24}, {22, 55, 25}},
		},
		{
			25,
			Highest,
			4,
			[]block{{22, 45, 15}, {13, 46, 16}},
		},
		{
			26,
			Low,
			4,
			[]block{{10, 142, 114}, {2, 143, 115}},
		},
		{
			26,
			Medium,
			4,
			[]block{{19, 74, 46}, {4, 75, 47}},
		},
		{
			26,
			High,
			4,
			[]block{{28, 50, 22}, {6, 51, 23}},
		},
		{
			26,
			Highest,
			4,
			[]block{{33, 46, 16}, {4, 47, 17}},
		},
		{
			27,
			Low,
			4,
			[]block{{8, 152, 122}, {4, 153, 123}},
		},
		{
			27,
			Medium,
			4,
			[]block{{22, 73, 45}, {3, 74, 46}},
		},
		{
			27,
			High,
			4,
			[]block{{8, 53, 23}, {26, 54, 24}},
		},
		{
			27,
			Highest,
			4,
			[]block{{12, 45, 15}, {28, 46, 16}},
		},
		{
			28,
			Low,
			3,
			[]block{{3, 147, 117}, {10, 148, 118}},
		},
		{
			28,
			Medium,
			3,
			[]block{{3, 73, 45}, {23, 74, 46}},
		},
		{
			28,
			High,
			3,
			[]block{{4, 54, 24}, {31, 55, 25}},
		},
		{
			28,
			Highest,
			3,
			[]block{{11, 45, 15}, {31, 46, 16}},
		},
		{
			29,
			Low,
			3,
			[]block{{7, 146, 116}, {7, 147, 117}},
		},
		{
			29,
			Medium,
			3,
			[]block{{21, 73, 45}, {7, 74, 46}},
		},
		{
			29,
			High,
			3,
			[]block{{1, 53, 23}, {37, 54, 24}},
		},
		{
			29,
			Highest,
			3,
			[]block{{19, 45, 15}, {26, 46, 16}},
		},
		{
			30,
			Low,
			3,
			[]block{{5, 145, 115}, {10, 146, 116}},
		},
		{
			30,
			Medium,
			3,
			[]block{{19, 75, 47}, {10, 76, 48}},
		},
		{
			30,
			High,
			3,
			[]block{{15, 54, 24}, {25, 55, 25}},
		},
		{
			30,
			Highest,
			3,
			[]block{{23, 45, 15}, {25, 46, 16}},
		},
		{
			31,
			Low,
			3,
			[]block{{13, 145, 115}, {3, 146, 116}},
		},
		{
			31,
			Medium,
			3,
			[]block{{2, 74, 46}, {29, 75, 47}},
		},
		{
			31,
			High,
			3,
			[]block{{42, 54, 24}, {1, 55, 25}},
		},
		{
			31,
			Highest,
			3,
			[]block{{23, 45, 15}, {28, 46, 16}},
		},
		{
			32,
			Low,
			3,
			[]block{{17, 145, 115}},
		},
		{
			32,
			Medium,
			3,
			[]block{{10, 74, 46}, {23, 75, 47}},
		},
		{
			32,
			High,
			3,
			[]block{{10, 54, 24}, {35, 55, 25}},
		},
		{
			32,
			Highest,
			3,
			[]block{{19, 45, 15}, {35, 46, 16}},
		},
		{
			33,
			Low,
			3,
			[]block{{17, 145, 115}, {1, 146, 116}},
		},
		{
			33,
			Medium,
			3,
			[]block{{14, 74, 46}, {21, 75, 47}},
		},
		{
			33,
			High,
			3,
			[]block{{29, 54, 24}, {19, 55, 25}},
		},
		{
			33,
			Highest,
			3,
			[]block{{11, 45, 15}, {46, 46, 16}},
		},
		{
			34,
			Low,
			3,
			[]block{{13, 145, 115}, {6, 146, 116}},
		},
		{
			34,
			Medium,
			3,
			[]block{{14, 74, 46}, {23, 75, 47}},
		},
		{
			34,
			High,
			3,
			[]block{{44, 54, 24}, {7, 55, 25}},
		},
		{
			34,
			Highest,
			3,
			[]block{{59, 46, 16}, {1, 47, 17}},
		},
		{
			35,
			Low,
			0,
			[]block{{12, 151, 121}, {7, 152, 122}},
		},
		{
			35,
			Medium,
			0,
			[]block{{12, 75, 47}, {26, 76, 48}},
		},
		{
			35,
			High,
			0,
			[]block{{39, 54, 24}, {14, 55, 25}},
		},
		{
			35,
			Highest,
			0,
			[]block{{22, 45, 15}, {41, 46, 16}},
		},
		{
			36,
			Low,
			0,
			[]block{{6, 151, 121}, {14, 152, 122}},
		},
		{
			36,
			Medium,
			0,
			[]block{{6, 75, 47}, {34, 76, 48}},
		},
		{
			36,
			High,
			0,
			[]block{{46, 54, 24}, {10, 55, 25}},
		},
		{
			36,
			Highest,
			0,
			[]block{{2, 45, 15}, {64, 46, 16}},
		},
		{
			37,
			Low,
			0,
			[]block{{17, 152, 122}, {4, 153, 123}},
		},
		{
			37,
			Medium,
			0,
			[]block{{29, 74, 46}, {14, 75, 47}},
		},
		{
			37,
			High,
			0,
			[]block{{49, 54, 24}, {10, 55, 25}},
		},
		{
			37,
			Highest,
			0,
			[]block{{24, 45, 15}, {46, 46, 16}},
		},
		{
			38,
			Low,
			0,
			[]block{{4, 152, 122}, {18, 153, 123}},
		},
		{
			38,
			Medium,
			0,
			[]block{{13, 74, 46}, {32, 75, 47}},
		},
		{
			38,
			High,
			0,
			[]block{{48, 54, 24}, {14, 55, 25}},
		},
		{
			38,
			Highest,
			0,
			[]block{{42, 45, 15}, {32, 46, 16}},
		},
		{
			39,
			Low,
			0,
			[]block{{20, 147, 117}, {4, 148, 118}},
		},
		{
			39,
			Medium,
			0,
			[]block{{40, 75, 47}, {7, 76, 48}},
		},
		{
			39,
			High,
			0,
			[]block{{43, 54, 24}, {22, 55, 25}},
		},
		{
			39,
			Highest,
			0,
			[]block{{10, 45, 15}, {67, 46, 16}},
		},
		{
			40,
			Low,
			0,
			[]block{{19, 148, 118}, {6, 149, 119}},
		},
		{
			40,
			Medium,
			0,
			[]block{{18, 75, 47}, {31, 76, 48}},
		},
		{
			40,
			High,
			0,
			[]block{{34, 54, 24}, {34, 55, 25}},
		},
		{
			40,
			Highest,
			0,
			[]block{{20, 45, 15}, {61, 46, 16}},
		},
	}

	// alignmentPatternCenter lists the alignment pattern center coordinates of
	// each version, starting at version 2.
	alignmentPatternCenter = [][]int{
		{6, 18},
		{6, 22},
		{6, 26},
		{6, 30},
		{6, 34},
		{6, 22, 38},
		{6, 24, 42},
		{6, 26, 46},
		{6, 28, 50},
		{6, 30, 54},
		{6, 32, 58},
		{6, 34, 62},
		{6, 26, 46, 66},
		{6, 26, 48, 70},
		{6, 26, 50, 74},
		{6, 30, 54, 78},
		{6, 30, 56, 82},
		{6, 30, 58, 86},
		{6, 34, 62, 90},
		{6, 28, 50, 72, 94},
		{6, 26, 50, 74, 98},
		{6, 30, 54, 78, 102},
		{6, 28, 54, 80, 106},
		{6, 32, 58, 84, 110},
		{6, 30, 58, 86, 114},
		{6, 34, 62, 90, 118},
		{6, 26, 50, 74, 98, 122},
		{6, 30, 54, 78, 102, 126},
		{6, 26, 52, 78, 104, 130},
		{6, 30, 56, 82, 108, 134},
		{6, 34, 60, 86, 112, 138},
		{6, 30, 58, 86, 114, 142},
		{6, 34, 62, 90, 118, 146},
		{6, 30, 54, 78, 102, 126, 150},
		{6, 24, 50, 76, 102, 128, 154},
		{6, 28, 54, 80, 106, 132, 158},
		{6, 32, 58, 84, 110, 136, 162},
		{6, 26, 54, 82, 110, 138, 166},
		{6, 30, 58, 86, 114, 142, 170},
	}
)

// getQRCodeVersion returns the QR Code version by version number and recovery
// level. Returns nil if the requested combination is not defined.
func getQRCodeVersion(level RecoveryLevel, version int) *qrCodeVersion {
	for i := range versions {
		if versions[i].level == level && versions[i].version == version {
			return &versions[i]
		}
	}

	return nil
}

// alignmentCenters returns the alignment pattern center coordinates.
func (v qrCodeVersion) alignmentCenters() []int {
	if v.version < 2 {
		return nil
	}

	return alignmentPatternCenter[v.version-2]
}

// numTerminatorBitsRequired returns the number of terminator bits required
// after numDataBits of data. At most four zero bits are appended.
func (v qrCodeVersion) numTerminatorBitsRequired(numDataBits int) int {
	numFreeBits := v.numDataBits() - numDataBits

	var numTerminatorBits int

	switch {
	case numFreeBits >= 4:
		numTerminatorBits = 4
	default:
		numTerminatorBits = numFreeBits
	}

	return numTerminatorBits
}

// numBlocks returns the number of blocks.
func (v qrCodeVersion) numBlocks() int {
	numBlocks := 0

	for _, b := range v.block {
		numBlocks += b.numBlocks
	}

	return numBlocks
}

// numBitsToPadToCodeword returns the number of bits required to pad data of
// length numDataBits upto the nearest codeword size.
func (v qrCodeVersion) numBitsToPadToCodeword(numDataBits int) int {
	if numDataBits == v.numDataBits() {
		return 0
	}

	return (8 - numDataBits%8) % 8
}

// symbolSize returns the size of the QR Code symbol in number of modules (which
// is both the width and height, since QR codes are square). The QR Code has
// size symbolSize() x symbolSize() pixels. This does not include the quiet
// zone.
func (v qrCodeVersion) symbolSize() int {
	return 21 + (v.version-1)*4
}

// numDataBits returns the data capacity in bits.
func (v qrCodeVersion) numDataBits() int {
	numDataBits := 0
	for _, b := range v.block {
		numDataBits += 8 * b.numBlocks * b.numDataCodewords
	}

	return numDataBits
}

// numTotalBits returns the number of data and error correction bits.
func (v qrCodeVersion) numTotalBits() int {
	numTotalBits := 0
	for _, b := range v.block {
		numTotalBits += 8 * b.numBlocks * b.numCodewords
	}

	return numTotalBits
}

// formatInfo returns the 15-bit format information word for the level and
// mask, most significant bit first.
func (v qrCodeVersion) formatInfo(maskPattern int) *bitset.Bitset {
	if maskPattern < 0 || maskPattern > 7 {
		log.Panicf("Invalid maskPattern %d", maskPattern)
	}

	result := bitset.New()
	result.AppendUint32(formatInfoWord(v.level, maskPattern), formatInfoLengthBits)

	return result
}

// versionInfo returns the 18-bit version information word, most significant
// bit first. Versions below 7 carry no version information and return nil.
func (v qrCodeVersion) versionInfo() *bitset.Bitset {
	if v.version < 7 {
		return nil
	}

	result := bitset.New()
	result.AppendUint32(versionInfoWord(v.version), versionInfoLengthBits)

	return result
}

func formatInfoWord(level RecoveryLevel, maskPattern int) uint32 {
	data := level.formatBits()<<3 | uint32(maskPattern)
	return (data<<10 | bchRemainder(data<<10, formatInfoPoly)) ^ formatInfoMask
}

func versionInfoWord(version int) uint32 {
	data := uint32(version)
	return data<<12 | bchRemainder(data<<12, versionInfoPoly)
}

// bchRemainder returns value modulo poly over GF(2).
func bchRemainder(value, poly uint32) uint32 {
	polyMSB := msbSet(poly)

	for msbSet(value) >= polyMSB {
		value ^= poly << uint(msbSet(value)-polyMSB)
	}

	return value
}

// msbSet returns the 1-based position of the most significant set bit.
func msbSet(value uint32) int {
	n := 0
	for ; value != 0; value >>= 1 {
		n++
	}

	return n
}
