package collision

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"Nav/pathfinding"

	"github.com/logrusorgru/aurora"
)

// Parse builds a grid from text rows, row i being y=i. '#' and '1' are
// blocked; any other byte is walkable.
func Parse(rows []string) (*Data, error) {
	if len(rows) == 0 {
		return New(0, 0), nil
	}
	width := len(rows[0])
	d := New(width, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has width %d, expected %d", y, len(row), width)
		}
		for x := 0; x < width; x++ {
			if row[x] == '#' || row[x] == '1' {
				d.SetCollision(x, y, true)
			}
		}
	}
	return d, nil
}

// LoadText reads a text grid, one row per line. Blank trailing lines are
// ignored.
func LoadText(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading text grid: %w", err)
	}
	rows := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	d, err := Parse(rows)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return d, nil
}

// Open picks LoadFile for .png files and LoadText for anything else.
func Open(path string) (*Data, error) {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return LoadFile(path)
	}
	return LoadText(path)
}

// FindMarker returns the first cell holding marker, scanning rows top down.
func FindMarker(rows []string, marker byte) (pathfinding.Point, bool) {
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			if row[x] == marker {
				return pathfinding.Point{X: x, Y: y}, true
			}
		}
	}
	return pathfinding.Point{X: -1, Y: -1}, false
}

// Dump writes the grid one row per line, y=0 first: 1 for blocked, 9 for
// cells on path, 0 otherwise.
func (d *Data) Dump(w io.Writer, path []pathfinding.Point, colors bool) error {
	au := aurora.NewAurora(colors)
	onPath := make(map[pathfinding.Point]bool, len(path))
	for _, pt := range path {
		onPath[pt] = true
	}

	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			var err error
			switch {
			case onPath[pathfinding.Point{X: x, Y: y}]:
				_, err = fmt.Fprint(w, au.Green(9))
			case d.HasCollisionAt(x, y):
				_, err = fmt.Fprint(w, au.Red(1))
			default:
				_, err = fmt.Fprint(w, "0")
			}
			if err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
