package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/talgya/haven/internal/narrative"
	"github.com/talgya/haven/internal/sim"
	"github.com/talgya/haven/internal/world"
)

// legacyBiomes maps biome ids from older saves to their current names.
var legacyBiomes = map[string]string{
	"temperate": "temperate_forest",
	"boreal":    "taiga",
	"coastal":   "coast",
}

// Migrate converts a persisted JSON document into a valid snapshot,
// applying best-effort fixes for known legacy shapes: outdated biome ids,
// missing or invalid feature lists, maps that no longer match the grid,
// and absent awakening/creation sub-state. The result is validated by the
// core before it is returned; migration never leaves the persistence
// layer.
func Migrate(doc []byte, engine *sim.Simulation) (sim.State, error) {
	defaults := engine.DefaultState()

	st := defaults.Clone()
	if err := json.Unmarshal(doc, &st); err != nil {
		return sim.State{}, fmt.Errorf("parse save: %w", err)
	}

	tables := engine.Tables()

	if alias, ok := legacyBiomes[st.Biome]; ok {
		st.Biome = alias
	}
	if _, ok := tables.Biomes[st.Biome]; !ok {
		st.Biome = defaults.Biome
	}

	st.Features = sanitizeFeatures(st.Features, defaults.Features, tables.FeatureBonus)

	if !validMap(st.Map) {
		st.Map = world.Generate(st.Biome, st.Features, st.RNGSeed)
	}

	hasProgress := st.Day > 1

	if st.Awakening.Narrative == "" {
		st.Awakening = sim.AwakeningState{
			Seen:      hasProgress,
			Narrative: narrative.ComposeAwakening(st.Biome, st.Features),
		}
	}

	if st.Creation.Stage == "" {
		if hasProgress {
			biome := st.Biome
			st.Creation = sim.CreationState{Stage: sim.StageComplete, SelectedBiome: &biome}
		} else {
			st.Creation = defaults.Creation
		}
	}

	if st.Notifications == nil {
		st.Notifications = append([]string(nil), defaults.Notifications...)
	}
	if st.Resources == nil {
		st.Resources = sim.DefaultResources()
	}
	if st.Deltas == nil {
		st.Deltas = make(map[string]float64, len(st.Resources))
		for id := range st.Resources {
			st.Deltas[id] = 0
		}
	}

	if err := engine.Validate(st); err != nil {
		return sim.State{}, err
	}
	return st, nil
}

func sanitizeFeatures(features, fallback []string, known map[string]map[string]float64) []string {
	var filtered []string
	for _, f := range features {
		if known[f] != nil {
			filtered = append(filtered, f)
		}
	}
	if len(filtered) == 0 {
		return append([]string(nil), fallback...)
	}
	return filtered
}

// validMap accepts only a full grid of in-bounds tiles.
func validMap(tiles []world.Tile) bool {
	if len(tiles) != world.MapSize*world.MapSize {
		return false
	}
	for _, t := range tiles {
		if !world.InBounds(t.X, t.Y) {
			return false
		}
	}
	return true
}
