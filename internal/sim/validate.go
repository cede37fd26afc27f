package sim

import (
	"fmt"
	"math"

	"github.com/talgya/haven/internal/content"
)

var validKinds = map[content.BuildKind]bool{
	content.BuildNew:            true,
	content.BuildReplacement:    true,
	content.BuildRenovation:     true,
	content.BuildDeconstruction: true,
}

var validStages = map[string]bool{
	StageBiomeSelection: true,
	StageAwaitingFocus:  true,
	StageEvent:          true,
	StageArrival:        true,
	StageTaskAssignment: true,
	StageComplete:       true,
}

// Validate checks a snapshot against the schema the core requires. It
// returns an error wrapping ErrInvalidState on the first violation. The
// core performs no migration; hand legacy documents to the persistence
// layer first.
func (s *Simulation) Validate(st State) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
	}

	if st.Day < 1 {
		return fail("day %d < 1", st.Day)
	}
	if _, ok := s.tables.Biomes[st.Biome]; !ok {
		return fail("unknown biome %q", st.Biome)
	}
	for _, f := range st.Features {
		if s.tables.FeatureBonus[f] == nil {
			return fail("unknown feature %q", f)
		}
	}

	seen := make(map[string]bool, len(st.Villagers))
	for _, v := range st.Villagers {
		if v.ID == "" {
			return fail("villager with empty id")
		}
		if seen[v.ID] {
			return fail("duplicate villager id %q", v.ID)
		}
		seen[v.ID] = true
		if v.Efficiency < 0 || math.IsNaN(v.Efficiency) {
			return fail("villager %q efficiency %v", v.ID, v.Efficiency)
		}
	}

	built := make(map[string]bool, len(st.Buildings))
	for _, b := range st.Buildings {
		if b.ID == "" {
			return fail("building with empty id")
		}
		if built[b.ID] {
			return fail("duplicate building id %q", b.ID)
		}
		built[b.ID] = true
		if b.Status != StatusActive && b.Status != StatusUnderConstruction {
			return fail("building %q status %q", b.ID, b.Status)
		}
		if b.Capacity < 0 {
			return fail("building %q capacity %v", b.ID, b.Capacity)
		}
		if b.Tier < 1 {
			return fail("building %q tier %d", b.ID, b.Tier)
		}
	}

	for _, item := range st.BuildQueue {
		if !validKinds[item.Kind] {
			return fail("queue item %q kind %q", item.ID, item.Kind)
		}
		if item.DaysRemaining < 0 {
			return fail("queue item %q daysRemaining %v", item.ID, item.DaysRemaining)
		}
	}

	recipes := make(map[string]bool, len(st.Crafting))
	for _, target := range st.Crafting {
		if recipes[target.RecipeID] {
			return fail("duplicate craft target %q", target.RecipeID)
		}
		recipes[target.RecipeID] = true
		if target.TargetCount < 0 || target.OnHand < 0 {
			return fail("craft target %q counts %v/%v", target.RecipeID, target.OnHand, target.TargetCount)
		}
	}

	for id, qty := range st.Resources {
		if qty < 0 || math.IsNaN(qty) || math.IsInf(qty, 0) {
			return fail("resource %q stock %v", id, qty)
		}
	}

	if st.Logistics.Carts < 0 || st.Logistics.PackAnimals < 0 || st.Logistics.RoadBonus < 0 {
		return fail("negative logistics investment")
	}
	if !validStages[st.Creation.Stage] {
		return fail("creation stage %q", st.Creation.Stage)
	}
	return nil
}
