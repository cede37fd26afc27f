// Package sim implements the day-tick settlement simulation: an ordered
// pipeline of pure state transitions over an immutable snapshot. Every
// entry point clones its input and returns a structurally new state; no
// caller ever observes in-place mutation.
package sim

import (
	"math"

	"github.com/talgya/haven/internal/content"
	"github.com/talgya/haven/internal/narrative"
	"github.com/talgya/haven/internal/world"
)

// Building status values.
const (
	StatusActive            = "active"
	StatusUnderConstruction = "under_construction"
)

// notificationKeep bounds the notification ring buffer. Entries beyond the
// most recent notificationKeep are dropped at the start of each day.
const notificationKeep = 10

// DefaultSeed seeds a brand new settlement.
const DefaultSeed uint32 = 12345

// Villager is one settler. A nil Bed means unhoused; unhoused villagers
// still work and eat but do not count toward housed population.
type Villager struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	JobID      string  `json:"jobId"`
	Efficiency float64 `json:"efficiency"`
	Bed        *string `json:"bed"`
}

// Building is a placed structure. Only active buildings contribute bed
// capacity or count as workstations.
type Building struct {
	ID       string  `json:"id"`
	Slug     string  `json:"slug"`
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Tier     int     `json:"tier"`
	Status   string  `json:"status"`
	Capacity float64 `json:"capacity"`
}

// BuildQueueItem is a construction project in flight. DaysRemaining is
// decremented by logistics throughput each tick and may be fractional.
type BuildQueueItem struct {
	ID            string            `json:"id"`
	Kind          content.BuildKind `json:"type"`
	TargetSlug    string            `json:"targetSlug"`
	Location      [2]int            `json:"location"`
	DaysRemaining float64           `json:"daysRemaining"`
	ReplacementOf *string           `json:"replacementOf"`
	CapacityDelta float64           `json:"capacityDelta"`
}

// CraftTarget is a player-declared desired stock for a recipe, fulfilled
// at most one unit per day. At most one entry exists per recipe.
type CraftTarget struct {
	RecipeID    string  `json:"recipeId"`
	TargetCount float64 `json:"targetCount"`
	OnHand      float64 `json:"onHand"`
}

// LogisticsState is the settlement's transport investment.
type LogisticsState struct {
	Carts       int     `json:"carts"`
	PackAnimals int     `json:"packAnimals"`
	RoadBonus   float64 `json:"roadBonus"`
}

// AwakeningState carries the intro narrative shown once per settlement.
type AwakeningState struct {
	Seen      bool   `json:"seen"`
	Narrative string `json:"narrative"`
}

// Creation flow stages, in order.
const (
	StageBiomeSelection = "biome_selection"
	StageAwaitingFocus  = "awaiting_focus"
	StageEvent          = "event"
	StageArrival        = "arrival"
	StageTaskAssignment = "task_assignment"
	StageComplete       = "complete"
)

// CreationState tracks the character-creation flow. Once Stage is
// StageComplete the day-tick pipeline takes over and this sub-state is
// inert.
type CreationState struct {
	Stage         string  `json:"stage"`
	SelectedBiome *string `json:"selectedBiome"`
	EventID       *string `json:"eventId"`
	ChosenThought *string `json:"chosenThought"`
	HelperID      *string `json:"helperId"`
	StartingTask  *string `json:"startingTask"`
}

// State is the complete settlement snapshot, immutable per tick.
type State struct {
	Day           int                `json:"day"`
	Biome         string             `json:"biome"`
	Features      []string           `json:"features"`
	Villagers     []Villager         `json:"villagers"`
	Jobs          []string           `json:"jobs"`
	Resources     map[string]float64 `json:"resources"`
	Deltas        map[string]float64 `json:"deltas"`
	Buildings     []Building         `json:"buildings"`
	BuildQueue    []BuildQueueItem   `json:"buildQueue"`
	Crafting      []CraftTarget      `json:"crafting"`
	Logistics     LogisticsState     `json:"logistics"`
	Morale        float64            `json:"morale"`
	Stability     float64            `json:"stability"`
	Readiness     float64            `json:"readiness"`
	Notifications []string           `json:"notifications"`
	SummonPaused  bool               `json:"summonPaused"`
	PauseOnSummon bool               `json:"pauseOnSummon"`
	RNGSeed       uint32             `json:"rngSeed"`
	LastEventID   *string            `json:"lastEventId"`
	Map           []world.Tile       `json:"map"`
	Awakening     AwakeningState     `json:"awakening"`
	Creation      CreationState      `json:"creation"`
}

// Simulation runs the day-tick pipeline against injected content tables.
// The tables are read-only; a Simulation is safe to share across
// goroutines as long as callers serialize their own state handoff.
type Simulation struct {
	tables *content.Tables
}

// New creates a Simulation bound to the given content tables.
func New(tables *content.Tables) *Simulation {
	return &Simulation{tables: tables}
}

// Tables exposes the injected content tables for read-only use.
func (s *Simulation) Tables() *content.Tables {
	return s.tables
}

// DefaultState constructs the canonical starting snapshot: day 1 in a
// temperate forest, three settlers, one town hall, and a fixed seed.
func (s *Simulation) DefaultState() State {
	features := []string{content.FeatureRiver, content.FeatureDenseForest, content.FeatureMine}
	biome := "temperate_forest"
	hall := "hall"

	jobs := make([]string, len(s.tables.JobOrder))
	copy(jobs, s.tables.JobOrder)

	return State{
		Day:      1,
		Biome:    biome,
		Features: features,
		Villagers: []Villager{
			{ID: "v-1", Name: "Aela", JobID: "forager", Efficiency: 1, Bed: &hall},
			{ID: "v-2", Name: "Bran", JobID: "woodcutter", Efficiency: 1, Bed: &hall},
			{ID: "v-3", Name: "Caro", JobID: "hunter", Efficiency: 0.8, Bed: &hall},
		},
		Jobs:      jobs,
		Resources: DefaultResources(),
		Deltas:    zeroResources(),
		Buildings: []Building{
			{ID: "hall", Slug: "town_hall", X: 0, Y: 0, Tier: 1, Status: StatusActive, Capacity: content.DefaultBedCapacity},
		},
		BuildQueue:    []BuildQueueItem{},
		Crafting:      []CraftTarget{},
		Logistics:     LogisticsState{Carts: 1, PackAnimals: 0, RoadBonus: 1},
		Morale:        50,
		Stability:     50,
		Readiness:     10,
		Notifications: []string{"Welcome to the Village of Haven."},
		SummonPaused:  true,
		PauseOnSummon: true,
		RNGSeed:       DefaultSeed,
		LastEventID:   nil,
		Map:           world.Generate(biome, features, DefaultSeed),
		Awakening: AwakeningState{
			Seen:      false,
			Narrative: narrative.ComposeAwakening(biome, features),
		},
		Creation: CreationState{Stage: StageBiomeSelection},
	}
}

// DefaultResources returns the starting stockpile.
func DefaultResources() map[string]float64 {
	stock := zeroResources()
	stock[content.Food] = 30
	stock[content.Logs] = 10
	stock[content.Stone] = 8
	stock[content.Ore] = 4
	stock[content.Leather] = 2
	stock[content.Tools] = 2
	stock[content.Firewood] = 12
	stock[content.Cloth] = 1
	stock[content.Armor] = 0
	stock[content.Clay] = 4
	return stock
}

func zeroResources() map[string]float64 {
	m := make(map[string]float64, len(content.Resources))
	for _, id := range content.Resources {
		m[id] = 0
	}
	return m
}

// Clone deep-copies the snapshot. Mutating the result never affects the
// original, including nested collections.
func (st State) Clone() State {
	next := st

	next.Features = append([]string(nil), st.Features...)
	next.Jobs = append([]string(nil), st.Jobs...)
	next.Notifications = append([]string(nil), st.Notifications...)

	next.Resources = cloneResourceMap(st.Resources)
	next.Deltas = cloneResourceMap(st.Deltas)

	next.Villagers = make([]Villager, len(st.Villagers))
	for i, v := range st.Villagers {
		next.Villagers[i] = v
		if v.Bed != nil {
			bed := *v.Bed
			next.Villagers[i].Bed = &bed
		}
	}

	next.Buildings = append([]Building(nil), st.Buildings...)

	next.BuildQueue = make([]BuildQueueItem, len(st.BuildQueue))
	for i, item := range st.BuildQueue {
		next.BuildQueue[i] = item
		if item.ReplacementOf != nil {
			ref := *item.ReplacementOf
			next.BuildQueue[i].ReplacementOf = &ref
		}
	}

	next.Crafting = append([]CraftTarget(nil), st.Crafting...)

	if st.LastEventID != nil {
		id := *st.LastEventID
		next.LastEventID = &id
	}

	next.Map = make([]world.Tile, len(st.Map))
	for i, tile := range st.Map {
		next.Map[i] = tile
		next.Map[i].Features = append([]string(nil), tile.Features...)
	}

	if st.Creation.SelectedBiome != nil {
		v := *st.Creation.SelectedBiome
		next.Creation.SelectedBiome = &v
	}
	if st.Creation.EventID != nil {
		v := *st.Creation.EventID
		next.Creation.EventID = &v
	}
	if st.Creation.ChosenThought != nil {
		v := *st.Creation.ChosenThought
		next.Creation.ChosenThought = &v
	}
	if st.Creation.HelperID != nil {
		v := *st.Creation.HelperID
		next.Creation.HelperID = &v
	}
	if st.Creation.StartingTask != nil {
		v := *st.Creation.StartingTask
		next.Creation.StartingTask = &v
	}

	return next
}

func cloneResourceMap(src map[string]float64) map[string]float64 {
	dst := make(map[string]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// clampResource coerces a stock entry to a finite non-negative number.
func clampResource(stock map[string]float64, id string) {
	v := stock[id]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		stock[id] = 0
		return
	}
	if v < 0 {
		stock[id] = 0
	}
}

// appendUnique appends msg unless an identical entry is already buffered.
// Soft-condition notifications never spam across identical ticks.
func appendUnique(notifications []string, msg string) []string {
	for _, n := range notifications {
		if n == msg {
			return notifications
		}
	}
	return append(notifications, msg)
}

// findBuilding returns a pointer into the slice, or nil.
func findBuilding(buildings []Building, id string) *Building {
	for i := range buildings {
		if buildings[i].ID == id {
			return &buildings[i]
		}
	}
	return nil
}
