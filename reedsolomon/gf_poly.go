// go-qrcode
// Copyright 2014 Tom Harwood

package reedsolomon

import (
	"log"

	bitset "github.com/weilsonwonder/go-qrstyle/bitset"
)

// gfPoly is a polynomial over GF(2^8).
type gfPoly struct {
	// The ith value is the coefficient of the ith degree of x.
	// term[0]*(x^0) + term[1]*(x^1) + term[2]*(x^2) ...
	term []gfElement
}

// newGFPolyFromData returns |data| as a polynomial over GF(2^8).
//
// Each data byte becomes the coefficient of an x term.
//
// For an n byte input the polynomial is:
// data[n-1]*(x^n-1) + data[n-2]*(x^n-2) ... + data[0]*(x^0).
func newGFPolyFromData(data *bitset.Bitset) gfPoly {
	numTotalBytes := data.Len() / 8
	if data.Len()%8 != 0 {
		numTotalBytes++
	}

	result := gfPoly{term: make([]gfElement, numTotalBytes)}

	i := numTotalBytes - 1
	for j := 0; j < data.Len(); j += 8 {
		result.term[i] = gfElement(data.ByteAt(j))
		i--
	}

	return result
}

// newGFPolyMonomial returns term*(x^degree).
func newGFPolyMonomial(term gfElement, degree int) gfPoly {
	if term == gfZero {
		return gfPoly{}
	}

	result := gfPoly{term: make([]gfElement, degree+1)}
	result.term[degree] = term

	return result
}

// data returns the polynomial as numTerms bytes, highest degree first.
func (e gfPoly) data(numTerms int) []byte {
	result := make([]byte, numTerms)

	i := numTerms - len(e.term)
	for j := len(e.term) - 1; j >= 0; j-- {
		result[i] = byte(e.term[j])
		i++
	}

	return result
}

func (e gfPoly) numTerms() int {
	return len(e.term)
}

// gfPolyMultiply returns a * b.
func gfPolyMultiply(a, b gfPoly) gfPoly {
	if a.numTerms() == 0 || b.numTerms() == 0 {
		return gfPoly{}
	}

	result := gfPoly{term: make([]gfElement, a.numTerms()+b.numTerms()-1)}

	for i, x := range a.term {
		if x == gfZero {
			continue
		}

		for j, y := range b.term {
			result.term[i+j] = gfAdd(result.term[i+j], gfMultiply(x, y))
		}
	}

	return result.normalised()
}

// gfPolyRemainder return the remainder of numerator / denominator.
func gfPolyRemainder(numerator, denominator gfPoly) gfPoly {
	denominator = denominator.normalised()
	if denominator.numTerms() == 0 {
		log.Panicln("Remainder by zero")
	}

	remainder := gfPoly{term: append([]gfElement(nil), numerator.term...)}.normalised()
	lead := denominator.term[denominator.numTerms()-1]

	for remainder.numTerms() >= denominator.numTerms() {
		degree := remainder.numTerms() - denominator.numTerms()
		coefficient := gfDivide(remainder.term[remainder.numTerms()-1], lead)

		for i, d := range denominator.term {
			remainder.term[degree+i] = gfSub(remainder.term[degree+i], gfMultiply(d, coefficient))
		}

		remainder = remainder.normalised()
	}

	return remainder
}

func (e gfPoly) normalised() gfPoly {
	n := e.numTerms()
	for n > 0 && e.term[n-1] == gfZero {
		n--
	}

	if n == 0 {
		return gfPoly{}
	}

	e.term = e.term[:n]
	return e
}

// equals returns true if e == other.
func (e gfPoly) equals(other gfPoly) bool {
	a, b := e.normalised(), other.normalised()
	if a.numTerms() != b.numTerms() {
		return false
	}

	for i := range a.term {
		if a.term[i] != b.term[i] {
			return false
		}
	}

	return true
}
