package grid_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/descramble/grid"
	"github.com/bodgit/descramble/ordering"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradient returns an image where every pixel value encodes its
// coordinates, so any misplaced tile shows up as a pixel mismatch.
func gradient(w, h int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetNRGBA(x, y, color.NRGBA{uint8(x), uint8(y), uint8(x ^ y), 0xff})
		}
	}
	return m
}

func pixels(t *testing.T, m image.Image) []uint8 {
	t.Helper()
	n, ok := m.(*image.NRGBA)
	require.True(t, ok, "expected *image.NRGBA, got %T", m)
	return n.Pix
}

func TestRearrangeQuadrantSwap(t *testing.T) {
	src := gradient(4, 4)

	out, err := grid.Rearrange(src, image.Pt(2, 2), []int{1, 0, 3, 2})
	require.NoError(t, err)

	// Quadrants are swapped pairwise; within each 2x2 block the
	// pixels keep their relative positions.
	moves := []struct {
		dst, src image.Point
	}{
		{image.Pt(0, 0), image.Pt(2, 0)},
		{image.Pt(2, 0), image.Pt(0, 0)},
		{image.Pt(0, 2), image.Pt(2, 2)},
		{image.Pt(2, 2), image.Pt(0, 2)},
	}

	for _, m := range moves {
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				assert.Equal(t,
					src.At(m.src.X+x, m.src.Y+y),
					out.At(m.dst.X+x, m.dst.Y+y),
					"destination (%d, %d)", m.dst.X+x, m.dst.Y+y)
			}
		}
	}
}

func TestRearrangeIdentity(t *testing.T) {
	src := gradient(8, 8)

	out, err := grid.Rearrange(src, image.Pt(2, 2), ordering.Identity(16))
	require.NoError(t, err)

	if diff := cmp.Diff(src.Pix, pixels(t, out)); diff != "" {
		t.Errorf("identity ordering changed pixels (-want+got):\n%v", diff)
	}
}

func TestRearrangeRoundTrip(t *testing.T) {
	src := gradient(16, 12)
	o := ordering.Random(48, 1)

	scrambled, err := grid.Rearrange(src, image.Pt(2, 2), o)
	require.NoError(t, err)

	restored, err := grid.Rearrange(scrambled, image.Pt(2, 2), ordering.Inverse(o))
	require.NoError(t, err)

	if diff := cmp.Diff(src.Pix, pixels(t, restored)); diff != "" {
		t.Errorf("round trip changed pixels (-want+got):\n%v", diff)
	}
}

// Rectangular images address the grid as rows = height/tileHeight and
// columns = width/tileWidth; a square-grid shortcut based on the
// larger dimension would misplace every tile past the first row.
func TestRearrangeRectangular(t *testing.T) {
	src := gradient(6, 4) // 3 columns, 2 rows

	out, err := grid.Rearrange(src, image.Pt(2, 2), []int{1, 2, 3, 4, 5, 0})
	require.NoError(t, err)

	// Destination cell 3 is row 1, column 0 and is filled from
	// source cell 4, row 1, column 1.
	assert.Equal(t, src.At(2, 2), out.At(0, 2))
	// Destination cell 5 wraps around to source cell 0.
	assert.Equal(t, src.At(0, 0), out.At(4, 2))
	// First row shifts left by one cell.
	assert.Equal(t, src.At(2, 0), out.At(0, 0))
}

func TestRearrangeInvalid(t *testing.T) {
	src := gradient(4, 4)

	tables := []struct {
		name     string
		tileSize image.Point
		ordering []int
	}{
		{"indivisible tile size", image.Pt(3, 3), []int{0}},
		{"duplicate index", image.Pt(2, 2), []int{0, 0, 2, 3}},
		{"short ordering", image.Pt(2, 2), []int{0, 1, 2}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			out, err := grid.Rearrange(src, table.tileSize, table.ordering)
			assert.Nil(t, out)
			assert.Equal(t, grid.ErrInvalidLayout, err)
		})
	}
}

func TestRearrangePreservesColorModel(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range gray.Pix {
		gray.Pix[i] = uint8(i)
	}

	out, err := grid.Rearrange(gray, image.Pt(2, 2), []int{3, 2, 1, 0})
	require.NoError(t, err)
	assert.IsType(t, &image.Gray{}, out)

	palette := color.Palette{color.Black, color.White}
	pm := image.NewPaletted(image.Rect(0, 0, 4, 4), palette)
	out, err = grid.Rearrange(pm, image.Pt(2, 2), []int{0, 1, 2, 3})
	require.NoError(t, err)
	require.IsType(t, &image.Paletted{}, out)
	assert.Equal(t, palette, out.(*image.Paletted).Palette)
}

// Images decoded with a non-zero origin still rearrange relative to
// their own top-left corner.
func TestRearrangeSubImage(t *testing.T) {
	src := gradient(8, 8)
	sub := src.SubImage(image.Rect(4, 4, 8, 8)).(*image.NRGBA)

	out, err := grid.Rearrange(sub, image.Pt(2, 2), []int{3, 2, 1, 0})
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 4, 4), out.Bounds())
	assert.Equal(t, sub.At(6, 6), out.At(0, 0))
	assert.Equal(t, sub.At(4, 4), out.At(2, 2))
}
