package models

import (
	"Nav/pathfinding"

	"github.com/golang/protobuf/proto"
)

type Point struct {
	X int32 `protobuf:"varint,1,opt,name=x,proto3" json:"x"`
	Y int32 `protobuf:"varint,2,opt,name=y,proto3" json:"y"`
}

func (m *Point) Reset()         { *m = Point{} }
func (m *Point) String() string { return proto.CompactTextString(m) }
func (*Point) ProtoMessage()    {}

func NewPoint(pt pathfinding.Point) *Point {
	return &Point{X: int32(pt.X), Y: int32(pt.Y)}
}

// Cell converts back to grid coordinates. A nil Point is the origin.
func (m *Point) Cell() pathfinding.Point {
	if m == nil {
		return pathfinding.Point{}
	}
	return pathfinding.Point{X: int(m.X), Y: int(m.Y)}
}

type PathRequest struct {
	Map   string `protobuf:"bytes,1,opt,name=map,proto3" json:"map"`
	Start *Point `protobuf:"bytes,2,opt,name=start,proto3" json:"start"`
	Goal  *Point `protobuf:"bytes,3,opt,name=goal,proto3" json:"goal"`
	Algo  string `protobuf:"bytes,4,opt,name=algo,proto3" json:"algo,omitempty"`
}

func (m *PathRequest) Reset()         { *m = PathRequest{} }
func (m *PathRequest) String() string { return proto.CompactTextString(m) }
func (*PathRequest) ProtoMessage()    {}

type PathResponse struct {
	Map      string   `protobuf:"bytes,1,opt,name=map,proto3" json:"map"`
	Algo     string   `protobuf:"bytes,2,opt,name=algo,proto3" json:"algo"`
	Path     []*Point `protobuf:"bytes,3,rep,name=path,proto3" json:"path"`
	Cost     float64  `protobuf:"fixed64,4,opt,name=cost,proto3" json:"cost"`
	Expanded int32    `protobuf:"varint,5,opt,name=expanded,proto3" json:"expanded"`
	Found    bool     `protobuf:"varint,6,opt,name=found,proto3" json:"found"`
}

func (m *PathResponse) Reset()         { *m = PathResponse{} }
func (m *PathResponse) String() string { return proto.CompactTextString(m) }
func (*PathResponse) ProtoMessage()    {}

// NewPathResponse fills a response from an engine result. An empty path
// means the goal was not reached.
func NewPathResponse(mapName, algo string, path []pathfinding.Point, cost float64, expanded int) *PathResponse {
	resp := &PathResponse{
		Map:      mapName,
		Algo:     algo,
		Path:     make([]*Point, 0, len(path)),
		Cost:     cost,
		Expanded: int32(expanded),
		Found:    len(path) > 0,
	}
	for _, pt := range path {
		resp.Path = append(resp.Path, NewPoint(pt))
	}
	return resp
}

// Cells returns the path in grid coordinates.
func (m *PathResponse) Cells() []pathfinding.Point {
	cells := make([]pathfinding.Point, 0, len(m.Path))
	for _, pt := range m.Path {
		cells = append(cells, pt.Cell())
	}
	return cells
}
