package models

import (
	"math"

	"Nav/pathfinding"
)

type Vec2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// WalkInfo moves a walker along a path in continuous coordinates.
type WalkInfo struct {
	Path            []Vec2D
	CurrentPos      Vec2D
	CurrentTarIndex int
}

func Distance(pt1 Vec2D, pt2 Vec2D) float64 {
	return math.Hypot(pt1.X-pt2.X, pt1.Y-pt2.Y)
}

// GotToGoal advances the walker by step towards its current target and
// reports whether the last waypoint had already been reached. The walker
// snaps onto a waypoint once it is within step of it.
func GotToGoal(step float64, walkInfo *WalkInfo) bool {
	if walkInfo.CurrentTarIndex >= len(walkInfo.Path) {
		return true
	}

	tarPos := walkInfo.Path[walkInfo.CurrentTarIndex]
	curPos := walkInfo.CurrentPos
	if Distance(curPos, tarPos) <= step {
		walkInfo.CurrentPos = tarPos
		walkInfo.CurrentTarIndex++
		return false
	}

	radian := math.Atan2(tarPos.Y-curPos.Y, tarPos.X-curPos.X)
	walkInfo.CurrentPos = Vec2D{
		X: curPos.X + step*math.Cos(radian),
		Y: curPos.Y + step*math.Sin(radian),
	}
	return false
}

// PathToWalkInfo places a walker on the centre of the first cell, aiming at
// the second. Cells are cellSize wide.
func PathToWalkInfo(originPath []pathfinding.Point, cellSize float64) WalkInfo {
	if len(originPath) == 0 {
		return WalkInfo{}
	}
	path := make([]Vec2D, 0, len(originPath))
	for _, pt := range originPath {
		path = append(path, Vec2D{
			X: (float64(pt.X) + 0.5) * cellSize,
			Y: (float64(pt.Y) + 0.5) * cellSize,
		})
	}
	return WalkInfo{
		Path:            path,
		CurrentPos:      path[0],
		CurrentTarIndex: 1,
	}
}

// Walk steps the walker until it reaches the goal or maxSteps runs out, and
// returns every position it stood on.
func Walk(walkInfo *WalkInfo, step float64, maxSteps int) []Vec2D {
	if step <= 0 || len(walkInfo.Path) == 0 {
		return nil
	}
	trace := []Vec2D{walkInfo.CurrentPos}
	for i := 0; i < maxSteps; i++ {
		if GotToGoal(step, walkInfo) {
			break
		}
		trace = append(trace, walkInfo.CurrentPos)
	}
	return trace
}
