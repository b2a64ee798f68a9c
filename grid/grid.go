/*
Package grid implements validation and rearrangement of a fixed tile
grid laid over a raster image.

An image is split into equal-size rectangular tiles addressed in
row-major order, top-left tile first. An ordering is a permutation
mapping each destination tile position to the source tile it is filled
from; applying an ordering moves whole tiles and never touches the
pixels within them.
*/
package grid

import "image"

// Layout describes how an image of a given size divides into a grid of
// equal-size tiles. The zero value is not useful; both sizes must be
// set and must describe an exact tiling.
type Layout struct {
	imageSize image.Point
	tileSize  image.Point
}

// NewLayout returns the layout for an imageSize image split into
// tileSize tiles. Point fields are (X, Y) = (width, height).
func NewLayout(imageSize, tileSize image.Point) Layout {
	return Layout{
		imageSize: imageSize,
		tileSize:  tileSize,
	}
}

// Columns returns the number of tiles across the image.
func (l Layout) Columns() int {
	return l.imageSize.X / l.tileSize.X
}

// Rows returns the number of tiles down the image.
func (l Layout) Rows() int {
	return l.imageSize.Y / l.tileSize.Y
}

// Tiles returns the total number of tiles in the grid.
func (l Layout) Tiles() int {
	return l.Columns() * l.Rows()
}

// Cell returns the pixel rectangle covered by tile i, relative to the
// top-left corner of the image.
func (l Layout) Cell(i int) image.Rectangle {
	x := i % l.Columns() * l.tileSize.X
	y := i / l.Columns() * l.tileSize.Y
	return image.Rect(x, y, x+l.tileSize.X, y+l.tileSize.Y)
}

// Valid reports whether ordering describes a well-formed rearrangement
// of an imageSize image split into tileSize tiles. The tile size must
// divide both image dimensions without remainder and ordering must use
// each tile index in [0, tiles) exactly once. A false result is an
// expected outcome, not an error.
func Valid(imageSize, tileSize image.Point, ordering []int) bool {
	if tileSize.X <= 0 || tileSize.Y <= 0 {
		return false
	}

	if imageSize.X%tileSize.X != 0 || imageSize.Y%tileSize.Y != 0 {
		return false
	}

	tiles := (imageSize.X / tileSize.X) * (imageSize.Y / tileSize.Y)
	if len(ordering) != tiles {
		return false
	}

	seen := make([]bool, tiles)
	for _, t := range ordering {
		if t < 0 || t >= tiles || seen[t] {
			return false
		}
		seen[t] = true
	}

	return true
}
