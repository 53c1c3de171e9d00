package engine2D

import (
	"math"
	"time"
)

// ScrollOffset returns how far a repeating tile has travelled after elapsed
// time when it moves one full tile per period, in [0, tile).
func ScrollOffset(elapsed, period time.Duration, tile float64) float64 {
	if period <= 0 || tile <= 0 {
		return 0
	}
	phase := math.Mod(elapsed.Seconds(), period.Seconds()) / period.Seconds()
	return phase * tile
}

// MinTileSize is the smallest tile drawn; smaller tiles are scaled up to it
// so one frame never issues more than a few thousand texture draws.
const MinTileSize = 16

// EachTile calls fn with the top-left corner of every tile needed to cover a
// width x height surface when the pattern is shifted by (dx, dy), and
// returns how many it visited. It allocates nothing.
func EachTile(width, height, tile, dx, dy float64, fn func(Point)) int {
	if tile <= 0 || width <= 0 || height <= 0 {
		return 0
	}
	tile = math.Max(tile, MinTileSize)
	startX := math.Mod(dx, tile)
	if startX > 0 {
		startX -= tile
	}
	startY := math.Mod(dy, tile)
	if startY > 0 {
		startY -= tile
	}
	n := 0
	for y := startY; y < height; y += tile {
		for x := startX; x < width; x += tile {
			fn(Point{x, y})
			n++
		}
	}
	return n
}
