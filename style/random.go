// go-qrcode
// Copyright 2014 Tom Harwood

package style

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Salts separate the independent random streams drawn for one module.
const (
	saltPixel uint64 = iota + 1
	saltMarker
	saltSub
	saltNoise
	saltNoiseOpacity
)

// hash mixes the seed, a module coordinate and a salt. The result depends on
// nothing else, so plans are reproducible in any evaluation order.
func hash(seed int64, x, y int, salt uint64) uint64 {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[0:], uint64(seed))
	binary.LittleEndian.PutUint64(b[8:], uint64(int64(x)))
	binary.LittleEndian.PutUint64(b[16:], uint64(int64(y)))
	binary.LittleEndian.PutUint64(b[24:], salt)

	return xxhash.Sum64(b[:])
}

// unit returns a value in [0, 1) for the coordinate.
func unit(seed int64, x, y int, salt uint64) float64 {
	return float64(hash(seed, x, y, salt)>>11) / (1 << 53)
}

// pick returns an index in [0, n) for the coordinate.
func pick(seed int64, x, y int, salt uint64, n int) int {
	return int(hash(seed, x, y, salt) % uint64(n))
}
