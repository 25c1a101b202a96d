package server

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"Nav/collision"
	"Nav/metrics"
	"Nav/registry"
)

// box2d polygons hold at most 8 vertices.
const maxBarrierVertices = 8

// createMapReq describes a new grid. The first non-empty source wins:
// File, Rows, Polygons, Barriers, then an empty Width x Height grid.
type createMapReq struct {
	File     string              `json:"file"`
	Rows     []string            `json:"rows"`
	Polygons [][]collision.Vec2  `json:"polygons"`
	Barriers []collision.Barrier `json:"barriers"`
	Width    int                 `json:"width"`
	Height   int                 `json:"height"`
	CellSize float64             `json:"cellSize"`
	Radius   float64             `json:"radius"`
}

type setCellReq struct {
	X       int  `json:"x"`
	Y       int  `json:"y"`
	Blocked bool `json:"blocked"`
}

type mapInfo struct {
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Passable int    `json:"passable"`
}

func (s *Server) listMaps(c *gin.Context) {
	names := s.reg.Names()
	infos := make([]mapInfo, 0, len(names))
	for _, name := range names {
		e, found := s.reg.Get(name)
		if !found {
			continue
		}
		info := mapInfo{Name: name}
		e.View(func(d *collision.Data) {
			info.Width, info.Height, info.Passable = d.Width(), d.Height(), d.Passable()
		})
		infos = append(infos, info)
	}
	ok(c, infos)
}

// mapFile resolves name inside the configured maps directory. Absolute
// paths and ".." elements are refused outright.
func (s *Server) mapFile(name string) (string, error) {
	if s.opts.MapsDir == "" {
		return "", fmt.Errorf("%w: loading maps from files is disabled", errInvalidParams)
	}
	if filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", fmt.Errorf("%w: file %q must be relative to the maps directory", errInvalidParams, name)
	}
	for _, part := range strings.FieldsFunc(name, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return "", fmt.Errorf("%w: file %q leaves the maps directory", errInvalidParams, name)
		}
	}

	root := filepath.Clean(s.opts.MapsDir)
	fp := filepath.Join(root, name)
	rel, err := filepath.Rel(root, fp)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: file %q leaves the maps directory", errInvalidParams, name)
	}
	return fp, nil
}

func (s *Server) buildGrid(req *createMapReq) (*collision.Data, error) {
	if len(req.Rows) > 0 {
		d, err := collision.Parse(req.Rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidParams, err)
		}
		return d, nil
	}

	if req.Width <= 0 || req.Height <= 0 || req.Width*req.Height > maxGridCells {
		return nil, fmt.Errorf("%w: width and height must be positive and at most %d cells", errInvalidParams, maxGridCells)
	}
	cellSize := req.CellSize
	if cellSize <= 0 {
		cellSize = s.opts.CellSize
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("%w: cellSize must be positive", errInvalidParams)
	}

	switch {
	case len(req.Polygons) > 0:
		for i, poly := range req.Polygons {
			if len(poly) < 3 {
				return nil, fmt.Errorf("%w: polygon %d has %d points", errInvalidParams, i, len(poly))
			}
		}
		return collision.FromPolygons(req.Width, req.Height, cellSize, req.Radius, req.Polygons), nil
	case len(req.Barriers) > 0:
		for i, b := range req.Barriers {
			switch {
			case len(b.Points) == 0 && b.Radius <= 0:
				return nil, fmt.Errorf("%w: barrier %d needs a radius or points", errInvalidParams, i)
			case len(b.Points) > 0 && (len(b.Points) < 3 || len(b.Points) > maxBarrierVertices):
				return nil, fmt.Errorf("%w: barrier %d needs 3 to %d points", errInvalidParams, i, maxBarrierVertices)
			}
		}
		world := collision.NewWorld(req.Barriers)
		return collision.FromWorld(world, req.Width, req.Height, cellSize), nil
	}
	return collision.New(req.Width, req.Height), nil
}

func (s *Server) createMap(c *gin.Context) {
	name := c.Param("name")
	var req createMapReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %v", errInvalidParams, err))
		return
	}
	if _, found := s.reg.Get(name); found {
		fail(c, fmt.Errorf("%w: %s", errMapExists, name))
		return
	}

	var e *registry.Entry
	if req.File != "" {
		fp, err := s.mapFile(req.File)
		if err != nil {
			fail(c, err)
			return
		}
		if e, err = s.reg.LoadFile(name, fp); err != nil {
			fail(c, fmt.Errorf("%w: %v", errInvalidParams, err))
			return
		}
	} else {
		d, err := s.buildGrid(&req)
		if err != nil {
			fail(c, err)
			return
		}
		var added bool
		if e, added = s.reg.Put(name, d); !added {
			fail(c, fmt.Errorf("%w: %s", errMapExists, name))
			return
		}
	}
	metrics.GridsLoaded.Set(float64(s.reg.Len()))

	info := mapInfo{Name: name}
	e.View(func(d *collision.Data) {
		info.Width, info.Height, info.Passable = d.Width(), d.Height(), d.Passable()
	})
	ok(c, info)
}

func (s *Server) deleteMap(c *gin.Context) {
	name := c.Param("name")
	if _, err := s.reg.Lookup(name); err != nil {
		fail(c, err)
		return
	}
	s.reg.Remove(name)
	metrics.GridsLoaded.Set(float64(s.reg.Len()))
	ok(c, gin.H{"name": name})
}

func (s *Server) setCell(c *gin.Context) {
	e, err := s.reg.Lookup(c.Param("name"))
	if err != nil {
		fail(c, err)
		return
	}
	var req setCellReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %v", errInvalidParams, err))
		return
	}

	inBounds, changed := false, false
	e.Update(func(d *collision.Data) {
		inBounds = req.X >= 0 && req.Y >= 0 && req.X < d.Width() && req.Y < d.Height()
		changed = d.SetCollision(req.X, req.Y, req.Blocked)
	})
	if !inBounds {
		fail(c, fmt.Errorf("%w: cell (%d,%d) is outside the grid", errInvalidParams, req.X, req.Y))
		return
	}
	s.log.Debug("cell updated",
		zap.String("map", e.Name),
		zap.Int("x", req.X),
		zap.Int("y", req.Y),
		zap.Bool("blocked", req.Blocked),
		zap.Bool("changed", changed))
	ok(c, gin.H{"changed": changed})
}
