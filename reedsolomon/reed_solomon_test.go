// go-qrcode
// Copyright 2014 Tom Harwood

package reedsolomon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bitset "github.com/weilsonwonder/go-qrstyle/bitset"
)

func TestGFMultiplyAndDivide(t *testing.T) {
	for a := 1; a < 256; a++ {
		for b := 1; b < 256; b++ {
			product := gfMultiply(gfElement(a), gfElement(b))
			require.Equal(t, gfElement(a), gfDivide(product, gfElement(b)), "a=%d b=%d", a, b)
		}
	}

	assert.Equal(t, gfZero, gfMultiply(gfZero, 0x53))
	assert.Equal(t, gfOne, gfMultiply(0x53, gfInverse(0x53)))
}

func TestGeneratorPolyDegree(t *testing.T) {
	for _, degree := range []int{7, 10, 13, 17, 30} {
		g := rsGeneratorPoly(degree)
		assert.Equal(t, degree+1, g.numTerms())
		assert.Equal(t, gfOne, g.term[degree])
	}

	// (x + 1)(x + 2) = x^2 + 3x + 2.
	assert.True(t, rsGeneratorPoly(2).equals(gfPoly{term: []gfElement{2, 3, 1}}))
}

func TestEncodeHelloWorld(t *testing.T) {
	// HELLO WORLD at version 1-M.
	data := []byte{32, 91, 11, 120, 209, 114, 220, 77, 67, 64, 236, 17, 236, 17, 236, 17}
	expectedEC := []byte{196, 35, 39, 119, 235, 215, 231, 226, 93, 23}

	in := bitset.New()
	in.AppendBytes(data)

	out := Encode(in, len(expectedEC))
	require.Equal(t, (len(data)+len(expectedEC))*8, out.Len())

	assert.True(t, in.Equals(out.Substr(0, in.Len())), "data bits must be preserved")

	for i, want := range expectedEC {
		assert.Equal(t, want, out.ByteAt((len(data)+i)*8), "ec byte %d", i)
	}
}

func TestEncodeLeadingZeroBytes(t *testing.T) {
	in := bitset.New()
	in.AppendBytes([]byte{0, 0, 0x40, 0x11})

	out := Encode(in, 7)
	assert.Equal(t, (4+7)*8, out.Len())
	assert.Equal(t, byte(0), out.ByteAt(0))
	assert.Equal(t, byte(0x40), out.ByteAt(16))
}

func TestEncodeZeroData(t *testing.T) {
	in := bitset.New()
	in.AppendBytes(make([]byte, 5))

	out := Encode(in, 4)
	for i := 0; i < 9; i++ {
		assert.Equal(t, byte(0), out.ByteAt(i*8))
	}
}
