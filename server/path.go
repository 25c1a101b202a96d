package server

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/protobuf/proto"
	"go.uber.org/zap"

	"Nav/collision"
	"Nav/finder"
	"Nav/metrics"
	"Nav/models"
	"Nav/pathfinding"
)

// findPath runs one query against a registered grid. visit, when not nil,
// sees the grid and the path while the grid is still read-locked.
func (s *Server) findPath(ctx context.Context, req *models.PathRequest, visit func(d *collision.Data, path []pathfinding.Point)) (*models.PathResponse, error) {
	if req.Start == nil || req.Goal == nil {
		return nil, fmt.Errorf("%w: start and goal are required", errInvalidParams)
	}
	strategy := s.opts.Strategy
	if req.Algo != "" {
		var err error
		if strategy, err = finder.ParseStrategy(req.Algo); err != nil {
			return nil, err
		}
	}
	e, err := s.reg.Lookup(req.Map)
	if err != nil {
		return nil, err
	}

	waitCtx, cancel := context.WithTimeout(ctx, acquireWait)
	defer cancel()
	f, err := s.pool.Acquire(waitCtx, strategy)
	if err != nil {
		return nil, fmt.Errorf("acquire %s engine: %w", strategy, err)
	}
	defer s.pool.Release(strategy, f)

	start, goal := req.Start.Cell(), req.Goal.Cell()
	var (
		path  []pathfinding.Point
		valid bool
		took  time.Duration
	)
	e.View(func(d *collision.Data) {
		valid = pathfinding.ValidEndpoints(d, start, goal)
		t0 := time.Now()
		path = f.FindPath(start, goal, d)
		took = time.Since(t0)
		if visit != nil {
			visit(d, path)
		}
	})

	expanded := finder.Expanded(f)
	result := metrics.ResultFound
	switch {
	case !valid:
		result = metrics.ResultInvalid
	case len(path) == 0:
		result = metrics.ResultUnreachable
	}
	metrics.PathQueries.WithLabelValues(string(strategy), result).Inc()
	metrics.PathQueryDuration.WithLabelValues(string(strategy)).Observe(took.Seconds())
	if expanded >= 0 {
		metrics.PathExpandedNodes.WithLabelValues(string(strategy)).Observe(float64(expanded))
	}

	s.log.Debug("path query",
		zap.String("map", req.Map),
		zap.String("strategy", string(strategy)),
		zap.Stringer("start", start),
		zap.Stringer("goal", goal),
		zap.String("result", result),
		zap.Int("expanded", expanded),
		zap.Duration("took", took))

	return models.NewPathResponse(req.Map, string(strategy), path, finder.Cost(path), expanded), nil
}

func queryInt(c *gin.Context, key string) (int32, error) {
	v, err := strconv.ParseInt(c.Query(key), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errInvalidParams, key)
	}
	return int32(v), nil
}

func pathRequestFromQuery(c *gin.Context) (*models.PathRequest, error) {
	var vals [4]int32
	for i, key := range []string{"sx", "sy", "gx", "gy"} {
		v, err := queryInt(c, key)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return &models.PathRequest{
		Map:   c.Param("name"),
		Start: &models.Point{X: vals[0], Y: vals[1]},
		Goal:  &models.Point{X: vals[2], Y: vals[3]},
		Algo:  c.Query("algo"),
	}, nil
}

func (s *Server) getPath(c *gin.Context) {
	req, err := pathRequestFromQuery(c)
	if err != nil {
		fail(c, err)
		return
	}
	resp, err := s.findPath(c.Request.Context(), req, nil)
	if err != nil {
		fail(c, err)
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "pb":
		buf, err := proto.Marshal(resp)
		if err != nil {
			fail(c, err)
			return
		}
		c.Data(http.StatusOK, "application/x-protobuf", buf)
	case "json":
		ok(c, resp)
	default:
		fail(c, fmt.Errorf("%w: format must be json or pb", errInvalidParams))
	}
}

// dumpMap prints the grid as text. With sx, sy, gx and gy it also overlays
// the path between them.
func (s *Server) dumpMap(c *gin.Context) {
	var buf bytes.Buffer
	var dumpErr error
	dump := func(d *collision.Data, path []pathfinding.Point) {
		dumpErr = d.Dump(&buf, path, false)
	}

	if c.Query("sx") == "" {
		e, err := s.reg.Lookup(c.Param("name"))
		if err != nil {
			fail(c, err)
			return
		}
		e.View(func(d *collision.Data) { dump(d, nil) })
	} else {
		req, err := pathRequestFromQuery(c)
		if err != nil {
			fail(c, err)
			return
		}
		if _, err := s.findPath(c.Request.Context(), req, dump); err != nil {
			fail(c, err)
			return
		}
	}
	if dumpErr != nil {
		fail(c, dumpErr)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}
