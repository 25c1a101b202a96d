// Package collision stores tile occupancy as a packed bit mask and builds it
// from images, text, polygons or a box2d world.
package collision

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"Nav/pathfinding"
)

const (
	maskSize = 32
	// Pixels with alpha below this are walkable.
	alphaThreshold = 10
)

// Data is a width*height occupancy grid. Cells are addressed row-major
// (pos = x + y*width), packed most significant bit first into 32-bit words.
// A set bit means the cell is walkable.
type Data struct {
	width  int
	height int
	mask   []uint32
}

func alloc(width, height int) *Data {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("collision: negative size %dx%d", width, height))
	}
	return &Data{
		width:  width,
		height: height,
		mask:   make([]uint32, width*height/maskSize+1),
	}
}

// New returns a grid without any collision.
func New(width, height int) *Data {
	d := alloc(width, height)
	for pos := 0; pos < width*height; pos++ {
		d.mask[pos/maskSize] |= bit(pos)
	}
	return d
}

func bit(pos int) uint32 {
	return 1 << uint(maskSize-1-pos%maskSize)
}

// FromImage reads walkability from the alpha channel. Image rows are read
// bottom-up, so y=0 is the bottom row of the picture.
func FromImage(img image.Image) *Data {
	b := img.Bounds()
	d := alloc(b.Dx(), b.Dy())
	for y := 0; y < d.height; y++ {
		row := b.Max.Y - 1 - y
		for x := 0; x < d.width; x++ {
			a := color.NRGBAModel.Convert(img.At(b.Min.X+x, row)).(color.NRGBA).A
			if a < alphaThreshold {
				pos := x + y*d.width
				d.mask[pos/maskSize] |= bit(pos)
			}
		}
	}
	return d
}

// LoadFile decodes a PNG and converts it with FromImage.
func LoadFile(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening collision image: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding collision image %s: %w", path, err)
	}
	return FromImage(img), nil
}

func (d *Data) Width() int  { return d.width }
func (d *Data) Height() int { return d.height }

func (d *Data) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < d.width && y < d.height
}

func (d *Data) haveCollisionAt(pos int) bool {
	return d.mask[pos/maskSize]&bit(pos) == 0
}

// HasCollisionAt reports a blocked cell. Out of range coordinates have no
// collision.
func (d *Data) HasCollisionAt(x, y int) bool {
	if !d.inBounds(x, y) {
		return false
	}
	return d.haveCollisionAt(x + y*d.width)
}

// IsPassable is false outside the grid.
func (d *Data) IsPassable(x, y int) bool {
	if !d.inBounds(x, y) {
		return false
	}
	return !d.haveCollisionAt(x + y*d.width)
}

// SetCollision blocks or frees a cell and reports whether anything changed.
func (d *Data) SetCollision(x, y int, blocked bool) bool {
	if !d.inBounds(x, y) {
		return false
	}
	pos := x + y*d.width
	if d.haveCollisionAt(pos) == blocked {
		return false
	}
	d.mask[pos/maskSize] ^= bit(pos)
	return true
}

// Passable counts the walkable cells.
func (d *Data) Passable() int {
	n := 0
	for pos := 0; pos < d.width*d.height; pos++ {
		if !d.haveCollisionAt(pos) {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (d *Data) Clone() *Data {
	c := &Data{width: d.width, height: d.height, mask: make([]uint32, len(d.mask))}
	copy(c.mask, d.mask)
	return c
}

var _ pathfinding.Grid = (*Data)(nil)
