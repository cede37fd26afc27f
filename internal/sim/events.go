package sim

import (
	"fmt"
	"math"

	"github.com/talgya/haven/internal/content"
	"github.com/talgya/haven/internal/rng"
)

// eventChance is the per-tick probability that any event fires.
const eventChance = 0.35

// eventDef is one weighted random occurrence. requirement gates
// eligibility on the current state; resolve mutates the cloned state and
// returns the narrative summary.
type eventDef struct {
	id          string
	weight      float64
	requirement func(State) bool
	resolve     func(*State, *rng.Stream) string
}

func hasStateFeature(st State, id string) bool {
	for _, f := range st.Features {
		if f == id {
			return true
		}
	}
	return false
}

// adjustResource applies a rounded signed change with the zero floor.
func adjustResource(st *State, resource string, delta float64) {
	st.Resources[resource] = math.Max(0, math.Round(st.Resources[resource]+delta))
	clampResource(st.Resources, resource)
}

var eventTable = []eventDef{
	{
		id:     "calm_morning",
		weight: 2,
		resolve: func(st *State, _ *rng.Stream) string {
			st.Morale = math.Min(100, st.Morale+2)
			return "A calm morning settles over Haven. Villagers share quiet stories and morale rises."
		},
	},
	{
		id:     "forest_cache",
		weight: 1.2,
		requirement: func(st State) bool {
			return hasStateFeature(st, content.FeatureDenseForest)
		},
		resolve: func(st *State, stream *rng.Stream) string {
			bonus := 2 + math.Floor(stream.Next()*3)
			adjustResource(st, content.Logs, bonus)
			return fmt.Sprintf("Foragers uncover a hidden grove within the forest, hauling back %.0f bundles of seasoned logs.", bonus)
		},
	},
	{
		id:     "river_bounty",
		weight: 1.1,
		requirement: func(st State) bool {
			return hasStateFeature(st, content.FeatureRiver) || hasStateFeature(st, content.FeatureLake) || st.Biome == "coast"
		},
		resolve: func(st *State, stream *rng.Stream) string {
			fish := 3 + math.Floor(stream.Next()*2)
			adjustResource(st, content.Food, fish)
			if hasStateFeature(*st, content.FeatureRiver) {
				adjustResource(st, content.Clay, 1)
			}
			return fmt.Sprintf("A sudden bounty in the water nets %.0f extra food and fresh clay for the kilns.", fish)
		},
	},
	{
		id:     "mine_shift",
		weight: 0.8,
		requirement: func(st State) bool {
			return hasStateFeature(st, content.FeatureMine)
		},
		resolve: func(st *State, stream *rng.Stream) string {
			if stream.Next() > 0.4 {
				adjustResource(st, content.Ore, 1)
				adjustResource(st, content.Stone, 2)
				st.Readiness = math.Min(100, st.Readiness+1)
				return "A miner strikes a rich vein, bringing up glittering ore and sturdy stone. Readiness improves."
			}
			for i := range st.BuildQueue {
				if st.BuildQueue[i].DaysRemaining > 0 {
					st.BuildQueue[i].DaysRemaining++
					break
				}
			}
			st.Morale = math.Max(0, st.Morale-3)
			return "Loose shale collapses in the mine. Work slows as crews shore the tunnels, dampening morale."
		},
	},
	{
		id:     "wandering_trader",
		weight: 0.9,
		requirement: func(st State) bool {
			return st.Resources[content.Food] >= 10
		},
		resolve: func(st *State, stream *rng.Stream) string {
			adjustResource(st, content.Food, -3)
			if stream.Next() > 0.5 {
				adjustResource(st, content.Tools, 1)
				return "A wandering trader swaps a gleaming tool for surplus provisions."
			}
			adjustResource(st, content.Cloth, 1)
			return "A wanderer trades woven cloth for your shared rations, promising to spread word of Haven."
		},
	},
	{
		id:     "desert_storm",
		weight: 0.7,
		requirement: func(st State) bool {
			return st.Biome == "desert"
		},
		resolve: func(st *State, _ *rng.Stream) string {
			adjustResource(st, content.Food, -2)
			st.Morale = math.Max(0, st.Morale-2)
			return "A scouring sandstorm batters the camp. Supplies dwindle and tempers fray."
		},
	},
	{
		id:     "aurora_night",
		weight: 0.6,
		requirement: func(st State) bool {
			return st.Biome == "taiga" || st.Biome == "tundra"
		},
		resolve: func(st *State, _ *rng.Stream) string {
			st.Morale = math.Min(100, st.Morale+4)
			st.Stability = math.Min(100, st.Stability+1)
			return "Auroras dance above the pines, stirring awe among the villagers. Stability grows from shared wonder."
		},
	},
	{
		id:     "alpine_rockfall",
		weight: 0.6,
		requirement: func(st State) bool {
			return st.Biome == "alpine"
		},
		resolve: func(st *State, _ *rng.Stream) string {
			adjustResource(st, content.Stone, -2)
			st.Readiness = math.Max(0, st.Readiness-2)
			return "A rockfall thunders down from the high slopes, scattering your watch and consuming stored stone."
		},
	},
	{
		id:     "ash_fall",
		weight: 0.6,
		requirement: func(st State) bool {
			return st.Biome == "volcanic"
		},
		resolve: func(st *State, _ *rng.Stream) string {
			adjustResource(st, content.Stone, 2)
			st.Morale = math.Max(0, st.Morale-1)
			return "Fine ash sifts over the rooftops. The quarries gain easy stone, but every throat is raw by dusk."
		},
	},
}

func pickEvent(events []eventDef, stream *rng.Stream) *eventDef {
	if len(events) == 0 {
		return nil
	}
	total := 0.0
	for _, ev := range events {
		total += ev.weight
	}
	threshold := stream.Next() * total
	running := 0.0
	for i := range events {
		running += events[i].weight
		if threshold <= running {
			return &events[i]
		}
	}
	return &events[len(events)-1]
}

// ApplyEvents runs the tick's event phase: summon-pause gating, deficit
// warnings, and at most one weighted random event. The advanced RNG seed
// is written back so subsequent ticks continue the same stream.
func (s *Simulation) ApplyEvents(st State) State {
	next := st.Clone()
	stream := rng.New(st.RNGSeed)

	food := st.Resources[content.Food]
	activeBeds := 0.0
	for _, b := range st.Buildings {
		if b.Status == StatusActive {
			activeBeds += b.Capacity
		}
	}
	assignedBeds := 0
	for _, v := range st.Villagers {
		if v.Bed != nil {
			assignedBeds++
		}
	}

	if st.PauseOnSummon && !st.SummonPaused && food >= content.SummonFoodThreshold && activeBeds-float64(assignedBeds) >= 1 {
		next.SummonPaused = true
		next.Notifications = appendUnique(next.Notifications, "Summoning pause: Choose a new villager role.")
	}

	for _, resource := range sortedKeys(st.Deltas) {
		if st.Deltas[resource] < 0 && st.Resources[resource] <= 0 {
			next.Notifications = appendUnique(next.Notifications,
				fmt.Sprintf("Deficit warning: %s trending negative", resource))
			break
		}
	}

	if stream.Next() < eventChance {
		var eligible []eventDef
		for _, ev := range eventTable {
			if st.LastEventID != nil && ev.id == *st.LastEventID {
				continue
			}
			if ev.requirement != nil && !ev.requirement(next) {
				continue
			}
			eligible = append(eligible, ev)
		}
		if chosen := pickEvent(eligible, stream); chosen != nil {
			if summary := chosen.resolve(&next, stream); summary != "" {
				next.Notifications = append(next.Notifications, summary)
			}
			id := chosen.id
			next.LastEventID = &id
		}
	}

	next.RNGSeed = stream.Seed()
	return next
}
