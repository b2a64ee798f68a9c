package grid

import (
	"errors"
	"image"
	"image/draw"
)

// ErrInvalidLayout is returned when the tile size does not exactly
// divide the image or the ordering is not a permutation of the tile
// indices.
var ErrInvalidLayout = errors.New("The tile size or ordering are not valid for the given image")

// newBlank allocates a drawable buffer with the same dimensions and
// channel layout as src, anchored at (0, 0). Source types that cannot
// be drawn into directly, such as the YCbCr images produced by the
// JPEG decoder, fall back to RGBA.
func newBlank(src image.Image) draw.Image {
	b := src.Bounds()
	r := image.Rect(0, 0, b.Dx(), b.Dy())

	switch m := src.(type) {
	case *image.Gray:
		return image.NewGray(r)
	case *image.Gray16:
		return image.NewGray16(r)
	case *image.RGBA:
		return image.NewRGBA(r)
	case *image.RGBA64:
		return image.NewRGBA64(r)
	case *image.NRGBA:
		return image.NewNRGBA(r)
	case *image.NRGBA64:
		return image.NewNRGBA64(r)
	case *image.Paletted:
		return image.NewPaletted(r, m.Palette)
	default:
		return image.NewRGBA(r)
	}
}

// Rearrange copies every tile of src to its new position and returns
// the result as a new image; src is never modified. For each
// destination index i the tile ordering[i] of src is copied into cell
// i of the output. It returns ErrInvalidLayout if Valid is false for
// the image dimensions, tile size and ordering.
func Rearrange(src image.Image, tileSize image.Point, ordering []int) (image.Image, error) {
	b := src.Bounds()

	if !Valid(b.Size(), tileSize, ordering) {
		return nil, ErrInvalidLayout
	}

	l := NewLayout(b.Size(), tileSize)
	dst := newBlank(src)

	for i, t := range ordering {
		draw.Draw(dst, l.Cell(i), src, b.Min.Add(l.Cell(t).Min), draw.Src)
	}

	return dst, nil
}
