package sim

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/haven/internal/content"
	"github.com/talgya/haven/internal/narrative"
	"github.com/talgya/haven/internal/rng"
	"github.com/talgya/haven/internal/world"
)

// Starting tasks offered at the end of the creation flow.
const (
	TaskGatherMaterials = "gather_materials"
	TaskGatherFood      = "gather_food"
)

// ChooseBiome selects (or re-selects) the settlement biome during
// creation. The map is regenerated from the current seed; no attempt is
// made to reconcile with a previously generated map.
func (s *Simulation) ChooseBiome(st State, biomeID string) (State, error) {
	if st.Creation.Stage != StageBiomeSelection && st.Creation.Stage != StageAwaitingFocus {
		return st, fmt.Errorf("%w: choose biome during %q", ErrBadCreationStage, st.Creation.Stage)
	}
	biome, ok := s.tables.Biomes[biomeID]
	if !ok {
		return st, fmt.Errorf("%w: unknown biome %q", ErrInvalidState, biomeID)
	}
	next := st.Clone()
	next.Biome = biomeID
	next.Features = append([]string(nil), biome.DefaultFeatures...)
	next.Map = world.Generate(biomeID, next.Features, next.RNGSeed)
	next.Awakening.Narrative = narrative.ComposeAwakening(biomeID, next.Features)
	selected := biomeID
	next.Creation.SelectedBiome = &selected
	next.Creation.Stage = StageAwaitingFocus
	return next, nil
}

// BeginCreationEvent rolls the opening hardship for the chosen biome from
// the deterministic stream and advances the flow to the event stage.
func (s *Simulation) BeginCreationEvent(st State) (State, error) {
	if st.Creation.Stage != StageAwaitingFocus {
		return st, fmt.Errorf("%w: begin event during %q", ErrBadCreationStage, st.Creation.Stage)
	}
	eligible := narrative.EventsForBiome(st.Biome)
	if len(eligible) == 0 {
		return st, fmt.Errorf("%w: no creation events for biome %q", ErrInvalidState, st.Biome)
	}
	next := st.Clone()
	stream := rng.New(st.RNGSeed)
	chosen := eligible[int(stream.Next()*float64(len(eligible)))%len(eligible)]
	id := chosen.ID
	next.Creation.EventID = &id
	next.Creation.Stage = StageEvent
	next.RNGSeed = stream.Seed()
	return next, nil
}

// ChooseThought resolves the creation event with one of its thought
// options. The option's helper joins the settlement unhoused and the flow
// moves to task assignment.
func (s *Simulation) ChooseThought(st State, thoughtID string) (State, error) {
	if st.Creation.Stage != StageEvent || st.Creation.EventID == nil {
		return st, fmt.Errorf("%w: choose thought during %q", ErrBadCreationStage, st.Creation.Stage)
	}
	event, ok := narrative.FindEvent(*st.Creation.EventID)
	if !ok {
		return st, fmt.Errorf("%w: creation event %q", ErrInvalidState, *st.Creation.EventID)
	}
	var thought *narrative.ThoughtOption
	for i := range event.Thoughts {
		if event.Thoughts[i].ID == thoughtID {
			thought = &event.Thoughts[i]
			break
		}
	}
	if thought == nil {
		return st, fmt.Errorf("%w: thought %q", ErrInvalidState, thoughtID)
	}

	next := st.Clone()
	helper := Villager{
		ID:         "v-" + uuid.NewString(),
		Name:       thought.Villager.Name,
		JobID:      thought.Villager.JobID,
		Efficiency: thought.Villager.Efficiency,
	}
	next.Villagers = append(next.Villagers, helper)
	chosen := thoughtID
	next.Creation.ChosenThought = &chosen
	helperID := helper.ID
	next.Creation.HelperID = &helperID
	next.Creation.Stage = StageTaskAssignment
	next.Notifications = append(next.Notifications, thought.Result)
	return next, nil
}

// ChooseStartingTask closes the creation flow: the chosen task grants its
// starting stock, the awakening is marked seen, and day ticking unpauses.
func (s *Simulation) ChooseStartingTask(st State, task string) (State, error) {
	if st.Creation.Stage != StageTaskAssignment && st.Creation.Stage != StageArrival {
		return st, fmt.Errorf("%w: choose task during %q", ErrBadCreationStage, st.Creation.Stage)
	}
	next := st.Clone()
	switch task {
	case TaskGatherMaterials:
		next.Resources[content.Logs] += 6
		next.Resources[content.Stone] += 4
		next.Notifications = append(next.Notifications, "The camp turns to hauling timber and stone.")
	case TaskGatherFood:
		next.Resources[content.Food] += 8
		next.Notifications = append(next.Notifications, "The camp fans out to fill the larder.")
	default:
		return st, fmt.Errorf("%w: starting task %q", ErrInvalidState, task)
	}
	chosen := task
	next.Creation.StartingTask = &chosen
	next.Creation.Stage = StageComplete
	next.Awakening.Seen = true
	next.SummonPaused = false
	return next, nil
}
