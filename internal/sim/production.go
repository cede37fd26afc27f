package sim

import "sort"

// ApplyProduction computes the tick's resource deltas from the resolved
// workforce plan, biome modifiers, and terrain feature bonuses, then
// applies them to the stockpile with a zero floor. The signed net delta
// is recorded per resource even when the floor absorbs part of a loss.
func (s *Simulation) ApplyProduction(st State) State {
	next := st.Clone()
	plan := s.EvaluateJobPlans(st)

	gains := make(map[string]float64)
	uses := make(map[string]float64)

	for _, wp := range plan.Plans {
		job, ok := s.tables.Job(wp.JobID)
		if !ok {
			continue
		}
		switch wp.Mode {
		case ModeFull:
			for resource, qty := range job.Production {
				gains[resource] += qty * wp.Villager.Efficiency
			}
		case ModeToolless:
			for resource, qty := range wp.Requirement.ToollessProduction {
				gains[resource] += qty * wp.Villager.Efficiency
			}
		case ModeBlocked:
			continue
		}
		for resource, qty := range job.Consumption {
			uses[resource] += qty * wp.Villager.Efficiency
		}
	}

	if biome, ok := s.tables.Biomes[st.Biome]; ok {
		for resource, qty := range biome.Modifiers {
			gains[resource] += qty
		}
	}

	for _, feature := range st.Features {
		for resource, qty := range s.tables.FeatureBonus[feature] {
			gains[resource] += qty
		}
	}

	for _, resource := range sortedKeys(st.Resources) {
		net := gains[resource] - uses[resource]
		next.Deltas[resource] = net
		next.Resources[resource] += net
		if next.Resources[resource] < 0 {
			next.Resources[resource] = 0
		}
		clampResource(next.Resources, resource)
	}

	return next
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
