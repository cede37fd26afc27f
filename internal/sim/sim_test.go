package sim

import (
	"github.com/talgya/haven/internal/content"
)

// testSim returns a simulation bound to the default content tables.
func testSim() *Simulation {
	return New(content.Default())
}

// emptyState is a bare snapshot with no villagers or buildings, suitable
// for exercising one phase in isolation.
func emptyState() State {
	return State{
		Day:           1,
		Biome:         "temperate_forest",
		Features:      []string{},
		Villagers:     []Villager{},
		Jobs:          []string{},
		Resources:     zeroResources(),
		Deltas:        zeroResources(),
		Buildings:     []Building{},
		BuildQueue:    []BuildQueueItem{},
		Crafting:      []CraftTarget{},
		Logistics:     LogisticsState{},
		Morale:        50,
		Stability:     50,
		Readiness:     10,
		Notifications: []string{},
		RNGSeed:       1,
		Creation:      CreationState{Stage: StageComplete},
	}
}

func activeHall() Building {
	return Building{ID: "hall", Slug: "town_hall", Tier: 1, Status: StatusActive, Capacity: content.DefaultBedCapacity}
}

func planByVillager(result PlanResult, villagerID string) (WorkerPlan, bool) {
	for _, wp := range result.Plans {
		if wp.Villager.ID == villagerID {
			return wp, true
		}
	}
	return WorkerPlan{}, false
}
