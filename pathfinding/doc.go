// Package pathfinding holds the pieces shared by the search engines: grid
// coordinates, the grid capability, the neighbor policy, the per-query node
// arena and its frontier, and path reconstruction.
package pathfinding
