// Package world generates the settlement's tile map. The grid is a small
// fixed-size square; terrain features are stamped onto it from a seeded
// random stream so that the same (biome, features, seed) triple always
// yields the same map.
package world

import (
	"math"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/haven/internal/content"
	"github.com/talgya/haven/internal/rng"
)

// MapSize is the side length of the square tile grid.
const MapSize = 5

// seedSalt decorrelates the map stream from the event stream sharing the
// same save seed.
const seedSalt = 0x9e3779b9

// forestPatches is how many single-tile forest stands a dense forest scatters.
const forestPatches = 5

// Tile is one cell of the settlement map.
type Tile struct {
	X         int      `json:"x"`
	Y         int      `json:"y"`
	Biome     string   `json:"biome"`
	Features  []string `json:"features"`
	Label     string   `json:"label,omitempty"`
	Elevation float64  `json:"elevation"`
}

// NewEmptyMap creates the bare grid for a biome, ordered top row first.
func NewEmptyMap(biome string) []Tile {
	half := MapSize / 2
	tiles := make([]Tile, 0, MapSize*MapSize)
	for y := half; y >= -half; y-- {
		for x := -half; x <= half; x++ {
			tiles = append(tiles, Tile{X: x, Y: y, Biome: biome, Features: []string{}})
		}
	}
	return tiles
}

func tileAt(tiles []Tile, x, y int) *Tile {
	for i := range tiles {
		if tiles[i].X == x && tiles[i].Y == y {
			return &tiles[i]
		}
	}
	return nil
}

func addFeature(tiles []Tile, x, y int, feature, label string) {
	tile := tileAt(tiles, x, y)
	if tile == nil {
		return
	}
	for _, f := range tile.Features {
		if f == feature {
			if label != "" {
				tile.Label = label
			}
			return
		}
	}
	tile.Features = append(tile.Features, feature)
	if label != "" {
		tile.Label = label
	}
}

func hasFeature(features []string, id string) bool {
	for _, f := range features {
		if f == id {
			return true
		}
	}
	return false
}

// Generate builds the tile map for a biome and feature list. Randomness
// comes from one stream derived from the save seed, consumed in a fixed
// feature order; regenerating with the same inputs reproduces the map
// exactly. An elevation layer sampled from simplex noise gives renderers
// relief without affecting simulation behavior.
func Generate(biome string, features []string, seed uint32) []Tile {
	tiles := NewEmptyMap(biome)
	stream := rng.New(seed ^ seedSalt)
	half := MapSize / 2

	if hasFeature(features, content.FeatureRiver) {
		vertical := stream.Next() > 0.5
		offset := int(math.Floor(stream.Next()*MapSize)) - half
		for i := -half; i <= half; i++ {
			if vertical {
				addFeature(tiles, offset, i, content.FeatureRiver, "")
			} else {
				addFeature(tiles, i, offset, content.FeatureRiver, "")
			}
		}
	}

	if hasFeature(features, content.FeatureLake) {
		lakeSize := 1 + int(math.Floor(stream.Next()*2))
		max := half - lakeSize
		originX := int(math.Floor(stream.Next()*float64(2*max+1))) - max
		originY := int(math.Floor(stream.Next()*float64(2*max+1))) - max
		for dx := 0; dx <= lakeSize; dx++ {
			for dy := 0; dy <= lakeSize; dy++ {
				addFeature(tiles, originX+dx, originY+dy, content.FeatureLake, "")
			}
		}
	}

	if hasFeature(features, content.FeatureDenseForest) {
		for i := 0; i < forestPatches; i++ {
			x := int(math.Floor(stream.Next()*MapSize)) - half
			y := int(math.Floor(stream.Next()*MapSize)) - half
			if x == 0 && y == 0 {
				// Keep the settlement center clear.
				continue
			}
			addFeature(tiles, x, y, content.FeatureDenseForest, "")
		}
	}

	if hasFeature(features, content.FeatureMine) {
		edge := -half
		if stream.Next() > 0.5 {
			edge = half
		}
		axis := int(math.Floor(stream.Next()*MapSize)) - half
		if stream.Next() > 0.5 {
			addFeature(tiles, edge, axis, content.FeatureMine, "Mine")
		} else {
			addFeature(tiles, axis, edge, content.FeatureMine, "Mine")
		}
	}

	noise := opensimplex.NewNormalized(int64(seed))
	for i := range tiles {
		sort.Strings(tiles[i].Features)
		tiles[i].Elevation = noise.Eval2(float64(tiles[i].X)*0.35, float64(tiles[i].Y)*0.35)
	}

	return tiles
}

// InBounds reports whether a coordinate lies on the grid.
func InBounds(x, y int) bool {
	half := (MapSize - 1) / 2
	return x >= -half && x <= half && y >= -half && y <= half
}
