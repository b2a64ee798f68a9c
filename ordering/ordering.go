/*
Package ordering constructs and serializes tile orderings.

An ordering is a permutation of the tile indices of a grid; position i
holds the index of the source tile placed at destination i. The same
format is used both to scramble an image and, via the inverse
permutation, to put it back together.
*/
package ordering

import (
	"errors"
	"math/rand"

	"github.com/google/hilbert"
)

// Identity returns the ordering that leaves every tile in place.
func Identity(n int) []int {
	o := make([]int, n)
	for i := range o {
		o[i] = i
	}
	return o
}

// Valid reports whether o is a permutation of [0, len(o)).
func Valid(o []int) bool {
	seen := make([]bool, len(o))
	for _, t := range o {
		if t < 0 || t >= len(o) || seen[t] {
			return false
		}
		seen[t] = true
	}
	return true
}

// Inverse returns the permutation that undoes o. Applying o and then
// Inverse(o) restores the original tile arrangement. o must be a
// permutation of [0, len(o)).
func Inverse(o []int) []int {
	inv := make([]int, len(o))
	for i, t := range o {
		inv[t] = i
	}
	return inv
}

// Random returns a pseudorandom permutation of [0, n) derived from
// seed. The same seed always yields the same permutation.
func Random(n int, seed int64) []int {
	return rand.New(rand.NewSource(seed)).Perm(n)
}

// Hilbert returns the ordering that visits the grid cells along a
// Hilbert curve; tile i of the curve is placed at row-major position
// i. The curve is only defined for square grids with a power-of-two
// side, anything else returns an error.
func Hilbert(rows, columns int) ([]int, error) {
	if rows != columns {
		return nil, errors.New("ordering: hilbert curve requires a square grid")
	}

	h, err := hilbert.NewHilbert(columns)
	if err != nil {
		return nil, err
	}

	o := make([]int, rows*columns)
	for i := range o {
		x, y, err := h.Map(i)
		if err != nil {
			return nil, err
		}
		o[i] = y*columns + x
	}

	return o, nil
}
