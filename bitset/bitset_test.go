// go-qrcode
// Copyright 2014 Tom Harwood

package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndAppend(t *testing.T) {
	b := New()
	b.AppendBools(true, true, false)
	b.AppendBools(true)
	b.AppendUint32(0x02, 4)

	require.Equal(t, 8, b.Len())
	assert.Equal(t, []bool{true, true, false, true, false, false, true, false}, b.Bits())
	assert.Equal(t, byte(0xd2), b.ByteAt(0))
}

func TestSubstr(t *testing.T) {
	b := NewFromBase2String("1010 0101 1100")

	tests := []struct {
		start, end int
		want       string
	}{
		{0, 0, ""},
		{0, 4, "1010"},
		{4, 12, "0101 1100"},
		{3, 6, "001"},
	}

	for _, test := range tests {
		got := b.Substr(test.start, test.end)
		assert.True(t, got.Equals(NewFromBase2String(test.want)),
			"Substr(%d, %d) = %s, want %s", test.start, test.end, got, test.want)
	}
}

func TestAppendByteAndBytes(t *testing.T) {
	b := New()
	b.AppendByte(0x05, 3)
	b.AppendBytes([]byte{0xec, 0x11})

	require.Equal(t, 19, b.Len())
	assert.True(t, b.Substr(0, 3).Equals(NewFromBase2String("101")))
	assert.Equal(t, byte(0xec), b.ByteAt(3))
	assert.Equal(t, byte(0x11), b.ByteAt(11))
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewFromBase2String("11")
	c := Clone(b)
	c.AppendBools(false)

	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 3, c.Len())
	assert.False(t, b.Equals(c))
}

func TestAppendNumBools(t *testing.T) {
	b := New(true)
	b.AppendNumBools(9, false)

	require.Equal(t, 10, b.Len())
	assert.True(t, b.Equals(NewFromBase2String("1000000000")))
}

func TestAtPanicsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { New(true).At(1) })
}
