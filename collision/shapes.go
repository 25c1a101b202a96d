package collision

import (
	"github.com/ByteArena/box2d"
	"github.com/Tarliton/collision2d"
)

type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Barrier is a static obstacle. Points are relative to (X, Y) and must form
// a convex polygon; without points the barrier is a circle of Radius.
type Barrier struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Points []Vec2  `json:"points,omitempty" yaml:"points,omitempty"`
	Radius float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
}

func cellCenter(x, y int, cellSize float64) (float64, float64) {
	return (float64(x) + 0.5) * cellSize, (float64(y) + 0.5) * cellSize
}

// FromPolygons blocks every cell whose center, grown to a circle of radius,
// touches one of the convex polygons. Polygon points are in world units.
func FromPolygons(width, height int, cellSize, radius float64, polygons [][]Vec2) *Data {
	barrierList := make([]collision2d.Polygon, 0, len(polygons))
	for _, polygon := range polygons {
		pointList := make([]float64, len(polygon)*2)
		for index, val := range polygon {
			pointList[2*index] = val.X
			pointList[2*index+1] = val.Y
		}
		pos := collision2d.NewVector(0.0, 0.0)
		offset := collision2d.NewVector(0.0, 0.0)
		barrierList = append(barrierList, collision2d.NewPolygon(pos, offset, 0.0, pointList))
	}

	d := New(width, height)
	agent := collision2d.Circle{Pos: collision2d.NewVector(0, 0), R: radius}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			agent.Pos = collision2d.NewVector(cellCenter(x, y, cellSize))
			for _, barrier := range barrierList {
				if hit, _ := collision2d.TestPolygonCircle(barrier, agent); hit {
					d.SetCollision(x, y, true)
					break
				}
			}
		}
	}
	return d
}

// NewWorld creates a zero-gravity world holding one static body per barrier.
func NewWorld(barriers []Barrier) *box2d.B2World {
	world := box2d.MakeB2World(box2d.MakeB2Vec2(0.0, 0.0))
	for i := range barriers {
		AddBarrier(&world, barriers[i])
	}
	return &world
}

func AddBarrier(world *box2d.B2World, barrier Barrier) *box2d.B2Body {
	bdDef := box2d.MakeB2BodyDef()
	bdDef.Type = box2d.B2BodyType.B2_staticBody
	bdDef.Position.Set(barrier.X, barrier.Y)
	body := world.CreateBody(&bdDef)

	fd := box2d.MakeB2FixtureDef()
	if len(barrier.Points) > 0 {
		b2Vertices := make([]box2d.B2Vec2, len(barrier.Points))
		for vIndex, v := range barrier.Points {
			b2Vertices[vIndex] = box2d.MakeB2Vec2(v.X, v.Y)
		}
		b2PolygonShape := box2d.MakeB2PolygonShape()
		b2PolygonShape.Set(b2Vertices, len(b2Vertices))
		fd.Shape = &b2PolygonShape
	} else {
		b2CircleShape := box2d.MakeB2CircleShape()
		b2CircleShape.M_radius = barrier.Radius
		fd.Shape = &b2CircleShape
	}
	fd.Density = 0.0
	body.CreateFixtureFromDef(&fd)
	body.SetUserData(barrier)
	return body
}

// FromWorld blocks every cell whose center lies inside a fixture of world.
func FromWorld(world *box2d.B2World, width, height int, cellSize float64) *Data {
	const probe = 1e-6
	d := New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			center := box2d.MakeB2Vec2(cellCenter(x, y, cellSize))
			aabb := box2d.MakeB2AABB()
			aabb.LowerBound = box2d.MakeB2Vec2(center.X-probe, center.Y-probe)
			aabb.UpperBound = box2d.MakeB2Vec2(center.X+probe, center.Y+probe)

			blocked := false
			world.QueryAABB(func(fixture *box2d.B2Fixture) bool {
				if fixture.TestPoint(center) {
					blocked = true
					return false
				}
				return true
			}, aabb)
			if blocked {
				d.SetCollision(x, y, true)
			}
		}
	}
	return d
}
