// go-qrcode
// Copyright 2014 Tom Harwood

package reedsolomon

// Addition, subtraction, multiplication, and division in GF(2^8).
// Operations are performed modulo x^8 + x^4 + x^3 + x^2 + 1.

import "log"

const (
	gfZero = gfElement(0)
	gfOne  = gfElement(1)

	// gfPrimitive is the field's reducing polynomial, 0x11d.
	gfPrimitive = 0x11d
)

var (
	gfExpTable [256]gfElement
	gfLogTable [256]int
)

func init() {
	x := 1
	for i := 0; i < 255; i++ {
		gfExpTable[i] = gfElement(x)
		gfLogTable[x] = i

		x <<= 1
		if x >= 256 {
			x ^= gfPrimitive
		}
	}
	gfExpTable[255] = gfExpTable[0]
}

// gfElement is an element in GF(2^8).
type gfElement uint8

// gfAdd returns a + b.
func gfAdd(a, b gfElement) gfElement {
	return a ^ b
}

// gfSub returns a - b.
//
// Note addition is equivalent to subtraction in GF(2).
func gfSub(a, b gfElement) gfElement {
	return a ^ b
}

// gfMultiply returns a * b.
func gfMultiply(a, b gfElement) gfElement {
	if a == gfZero || b == gfZero {
		return gfZero
	}

	return gfExpTable[(gfLogTable[a]+gfLogTable[b])%255]
}

// gfDivide returns a / b.
//
// Divide by zero results in a panic.
func gfDivide(a, b gfElement) gfElement {
	if a == gfZero {
		return gfZero
	} else if b == gfZero {
		log.Panicln("Divide by zero")
	}

	return gfMultiply(a, gfInverse(b))
}

// gfInverse returns the multiplicative inverse of a, a^-1.
//
// a * a^-1 = 1
func gfInverse(a gfElement) gfElement {
	if a == gfZero {
		log.Panicln("No multiplicative inverse of 0")
	}

	return gfExpTable[255-gfLogTable[a]]
}

// gfExp returns alpha^i.
func gfExp(i int) gfElement {
	return gfExpTable[i%255]
}
