// go-qrcode
// Copyright 2014 Tom Harwood

/*
Package qrcode implements a QR Code encoder that keeps the structural role of
every module.

A QR Code is a matrix (two-dimensional) barcode. Arbitrary content may be
encoded.

A QR Code contains error recovery information to aid reading damaged or
obscured codes. There are four levels of error recovery: qrcode.{Low, Medium,
High, Highest}. QR Codes with a higher recovery level are more robust to damage,
at the cost of being physically larger.

Encode turns an EncodingRequest into an immutable SymbolMatrix:

	m, err := qrcode.Encode(qrcode.EncodingRequest{
		Text:        "https://example.org",
		Level:       qrcode.Medium,
		MinVersion:  1,
		MaxVersion:  40,
		MaskPattern: -1,
	})

Each module of the matrix reports whether it is dark, which role it plays
(finder, separator, timing, alignment, format, version or data) and, for the
position markers, which of the three markers it belongs to. Styling packages
use the roles to draw each kind of module differently.

For plain black on white output, New returns a QRCode that renders PNG images
directly:

	q, err := qrcode.New("https://example.org", qrcode.Medium)
	err = q.WriteFile(256, "qr.png")

The maximum capacity of a QR Code varies according to the content encoded and
the error recovery level. The maximum capacity is 2,953 bytes, 4,296
alphanumeric characters, 7,089 numeric digits.

This package implements a subset of QR Code 2005, as defined in ISO/IEC
18004:2006.
*/
package qrcode

import (
	"fmt"
	"log"

	bitset "github.com/weilsonwonder/go-qrstyle/bitset"
	"github.com/weilsonwonder/go-qrstyle/reedsolomon"
)

// AutoMask selects the mask pattern with the lowest penalty score.
const AutoMask = -1

// EncodingRequest describes the symbol to encode.
type EncodingRequest struct {
	Text string `json:"text"`

	// Level is the requested recovery level.
	Level RecoveryLevel `json:"ecc"`

	// BoostErrorCorrection raises the recovery level as far as the chosen
	// version allows.
	BoostErrorCorrection bool `json:"boostECC"`

	// Inclusive version bounds, 1-40.
	MinVersion int `json:"minVersion"`
	MaxVersion int `json:"maxVersion"`

	// MaskPattern is 0-7, or AutoMask.
	MaskPattern int `json:"maskPattern"`
}

// DefaultEncodingRequest returns a request for text at level M over every
// version with automatic mask selection.
func DefaultEncodingRequest(text string) EncodingRequest {
	return EncodingRequest{
		Text:        text,
		Level:       Medium,
		MinVersion:  minVersion,
		MaxVersion:  maxVersion,
		MaskPattern: AutoMask,
	}
}

// Validate checks the request fields without encoding. An invalid version
// range is an EncodingError with reason InvalidVersionRange that also unwraps
// to a ConfigurationError.
func (r EncodingRequest) Validate() error {
	if r.Level < Low || r.Level > Highest {
		return &ConfigurationError{Field: "ecc", Reason: fmt.Sprintf("unknown recovery level %d", int(r.Level))}
	}

	if r.MaskPattern < AutoMask || r.MaskPattern > 7 {
		return &ConfigurationError{Field: "maskPattern", Reason: fmt.Sprintf("%d is outside -1..7", r.MaskPattern)}
	}

	var cause *ConfigurationError
	switch {
	case r.MinVersion < minVersion || r.MinVersion > maxVersion:
		cause = &ConfigurationError{Field: "minVersion", Reason: fmt.Sprintf("%d is outside 1..40", r.MinVersion)}
	case r.MaxVersion < minVersion || r.MaxVersion > maxVersion:
		cause = &ConfigurationError{Field: "maxVersion", Reason: fmt.Sprintf("%d is outside 1..40", r.MaxVersion)}
	case r.MinVersion > r.MaxVersion:
		cause = &ConfigurationError{Field: "minVersion", Reason: fmt.Sprintf("%d is greater than maxVersion %d", r.MinVersion, r.MaxVersion)}
	}

	if cause != nil {
		return &EncodingError{Reason: InvalidVersionRange, Detail: cause.Error(), Err: cause}
	}

	return nil
}

// Encode encodes a request into a SymbolMatrix.
//
// The smallest version in [MinVersion, MaxVersion] able to hold the text at
// the requested level is chosen. An EncodingError is returned if there is
// none, if the range is invalid or if the text is not valid UTF-8.
func Encode(req EncodingRequest) (*SymbolMatrix, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := validateContent(req.Text); err != nil {
		return nil, err
	}

	content := []byte(req.Text)
	mode := chooseMode(content)

	var encodedByType [3]*bitset.Bitset
	var encodeErr [3]error

	var chosenVersion *qrCodeVersion
	var encoded *bitset.Bitset

	for v := req.MinVersion; v <= req.MaxVersion; v++ {
		t := dataEncoderTypeForVersion(v)

		if encodedByType[t] == nil && encodeErr[t] == nil {
			encodedByType[t], encodeErr[t] = newDataEncoder(t, mode).encode(content)
		}

		if encodeErr[t] != nil {
			continue
		}

		version := getQRCodeVersion(req.Level, v)
		if encodedByType[t].Len() <= version.numDataBits() {
			chosenVersion = version
			encoded = encodedByType[t]
			break
		}
	}

	if chosenVersion == nil {
		return nil, &EncodingError{
			Reason: TextTooLong,
			Detail: fmt.Sprintf("%d bytes of %s data do not fit versions %d-%d at level %s",
				len(content), mode, req.MinVersion, req.MaxVersion, req.Level),
		}
	}

	if req.BoostErrorCorrection {
		chosenVersion = boostLevel(chosenVersion, encoded.Len())
	}

	q := &encoding{
		version: *chosenVersion,
		data:    bitset.Clone(encoded),
	}

	return q.encode(req.MaskPattern), nil
}

// boostLevel returns the highest recovery level of the same version that
// still holds numDataBits.
func boostLevel(v *qrCodeVersion, numDataBits int) *qrCodeVersion {
	for level := Highest; level > v.level; level-- {
		boosted := getQRCodeVersion(level, v.version)
		if numDataBits <= boosted.numDataBits() {
			return boosted
		}
	}

	return v
}

// encoding holds a version and its data bits while the symbol is assembled.
type encoding struct {
	version qrCodeVersion
	data    *bitset.Bitset
}

// encode completes the steps required to encode the QR Code. These include
// adding the terminator bits and padding, splitting the data into blocks and
// applying the error correction, and selecting the best data mask.
func (q *encoding) encode(maskPattern int) *SymbolMatrix {
	numTerminatorBits := q.version.numTerminatorBitsRequired(q.data.Len())

	q.addTerminatorBits(numTerminatorBits)
	q.addPadding()

	encoded := q.encodeBlocks()
	functionPatterns := buildFunctionPatterns(q.version)

	if maskPattern != AutoMask {
		s := buildRegularSymbol(functionPatterns, q.version, maskPattern, encoded)
		return newSymbolMatrix(q.version, maskPattern, s, s.penaltyScore())
	}

	const numMasks int = 8

	var best *symbol
	bestMask, bestPenalty := 0, 0

	for mask := 0; mask < numMasks; mask++ {
		s := buildRegularSymbol(functionPatterns, q.version, mask, encoded)

		numEmptyModules := s.numEmptyModules()
		if numEmptyModules != 0 {
			log.Panicf("bug: numEmptyModules is %d (expected 0) (version=%d)",
				numEmptyModules, q.version.version)
		}

		// Strictly lower, so ties keep the lowest mask id.
		if p := s.penaltyScore(); best == nil || p < bestPenalty {
			best = s
			bestMask = mask
			bestPenalty = p
		}
	}

	return newSymbolMatrix(q.version, bestMask, best, bestPenalty)
}

// addTerminatorBits adds final terminator bits to the encoded data.
//
// The number of terminator bits required is determined when the QR Code version
// is chosen (which itself depends on the length of the data encoded). The
// terminator bits are thus added after the QR Code version
// is chosen, rather than at the data encoding stage.
func (q *encoding) addTerminatorBits(numTerminatorBits int) {
	q.data.AppendNumBools(numTerminatorBits, false)
}

// encodeBlocks takes the completed (terminated & padded) encoded data, splits
// the data into blocks (as specified by the QR Code version), applies error
// correction to each block, then interleaves the blocks together.
//
// The QR Code's final data sequence is returned.
func (q *encoding) encodeBlocks() *bitset.Bitset {
	// Split into blocks.
	type dataBlock struct {
		data          *bitset.Bitset
		ecStartOffset int
	}

	block := make([]dataBlock, q.version.numBlocks())

	start := 0
	end := 0
	blockID := 0

	for _, b := range q.version.block {
		for j := 0; j < b.numBlocks; j++ {
			start = end
			end = start + b.numDataCodewords*8

			// Apply error correction to each block.
			numErrorCodewords := b.numCodewords - b.numDataCodewords
			block[blockID].data = reedsolomon.Encode(q.data.Substr(start, end), numErrorCodewords)
			block[blockID].ecStartOffset = end - start

			blockID++
		}
	}

	result := bitset.New()

	// Combine data blocks, one codeword from each block in turn.
	for i, working := 0, true; working; i += 8 {
		working = false

		for _, b := range block {
			if i >= b.ecStartOffset {
				continue
			}

			result.Append(b.data.Substr(i, i+8))
			working = true
		}
	}

	// Combine error correction blocks.
	for i, working := 0, true; working; i += 8 {
		working = false

		for _, b := range block {
			offset := i + b.ecStartOffset
			if offset >= b.data.Len() {
				continue
			}

			result.Append(b.data.Substr(offset, offset+8))
			working = true
		}
	}

	// Append remainder bits.
	result.AppendNumBools(q.version.numRemainderBits, false)

	if result.Len() != q.version.numTotalBits()+q.version.numRemainderBits {
		log.Panicf("bug: interleaved %d bits, expected %d", result.Len(),
			q.version.numTotalBits()+q.version.numRemainderBits)
	}

	return result
}

// padCodewords are the pad codewords 0b11101100 and 0b00010001.
var padCodewords = [2]byte{0xec, 0x11}

// addPadding pads the encoded data upto the full length required.
func (q *encoding) addPadding() {
	numDataBits := q.version.numDataBits()

	if q.data.Len() == numDataBits {
		return
	}

	// Pad to the nearest codeword boundary.
	q.data.AppendNumBools(q.version.numBitsToPadToCodeword(q.data.Len()), false)

	// Insert pad codewords alternately.
	i := 0
	for numDataBits-q.data.Len() >= 8 {
		q.data.AppendByte(padCodewords[i], 8)

		i = 1 - i // Alternate between 0 and 1.
	}

	if q.data.Len() != numDataBits {
		log.Panicf("BUG: got len %d, expected %d", q.data.Len(), numDataBits)
	}
}
