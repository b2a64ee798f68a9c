package descramble

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/descramble/grid"
	"github.com/bodgit/descramble/ordering"
	"github.com/ericpauley/go-quantize/quantize"
)

// ErrNotFound is returned when the source image path does not exist.
// It is raised before any decode attempt and before any output file is
// created.
var ErrNotFound = errors.New("The image path does not exist")

// ErrInvalidLayout is returned when the tile size or ordering do not
// describe a well-formed rearrangement of the source image.
var ErrInvalidLayout = grid.ErrInvalidLayout

const gifColors = 256

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	return m, err
}

func encodeImage(path string, m image.Image) error {
	var encode func(io.Writer, image.Image) error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		encode = png.Encode
	case ".jpg", ".jpeg":
		encode = func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, nil)
		}
	case ".gif":
		encode = func(w io.Writer, m image.Image) error {
			pm, _ := m.(*image.Paletted)
			if pm == nil {
				b := m.Bounds()
				q := quantize.MedianCutQuantizer{}
				pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, gifColors), m))
				draw.Draw(pm, b, m, b.Min, draw.Src)
			}
			return gif.Encode(w, pm, nil)
		}
	default:
		return fmt.Errorf("descramble: unsupported output format %q", filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return encode(f, m)
}

// Rearrange reads the image at imagePath, moves its tiles according to
// ordering and writes the result to outPath, with the format inferred
// from the output extension. Position i of the output is filled from
// tile ordering[i] of the input, so the ordering that scrambled an
// image is the one that puts it back together.
//
// It returns ErrNotFound if imagePath does not exist and
// ErrInvalidLayout if the tile size or ordering do not fit the decoded
// image; decode and encode failures are returned as-is. No output file
// is created unless the transform succeeds.
func Rearrange(imagePath string, tileSize image.Point, o []int, outPath string) error {
	if _, err := os.Stat(imagePath); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}

	m, err := decodeImage(imagePath)
	if err != nil {
		return err
	}

	out, err := grid.Rearrange(m, tileSize, o)
	if err != nil {
		return err
	}

	return encodeImage(outPath, out)
}

// Scramble is the converse of Rearrange: it shuffles the image at
// imagePath so that a later Rearrange with the same ordering restores
// it.
func Scramble(imagePath string, tileSize image.Point, o []int, outPath string) error {
	// Inverse would index out of range on a non-permutation.
	if !ordering.Valid(o) {
		return ErrInvalidLayout
	}
	return Rearrange(imagePath, tileSize, ordering.Inverse(o), outPath)
}
