package sim

import (
	"fmt"
	"math"

	"github.com/talgya/haven/internal/content"
)

// EnqueueOptions describes a construction request.
type EnqueueOptions struct {
	Kind          content.BuildKind
	TargetSlug    string
	Location      [2]int
	BaseDays      int
	ReplacementOf *string
	CapacityDelta float64
}

// EnqueueConstruction queues a project. Costs are looked up by target
// slug and deducted immediately; if stock cannot cover them the state is
// returned unchanged except for a deduplicated warning notification. A
// missing replacement/renovation/deconstruction target is a programming
// error and returns ErrBuildingNotFound.
func (s *Simulation) EnqueueConstruction(st State, opts EnqueueOptions) (State, error) {
	next := st.Clone()

	cost := s.tables.CostFor(opts.TargetSlug)
	for _, resource := range sortedKeys(cost) {
		if next.Resources[resource] < cost[resource] {
			next.Notifications = appendUnique(next.Notifications,
				fmt.Sprintf("Not enough resources to build %s", opts.TargetSlug))
			return next, nil
		}
	}
	for resource, qty := range cost {
		next.Resources[resource] -= qty
		clampResource(next.Resources, resource)
	}

	item := BuildQueueItem{
		ID:            fmt.Sprintf("build-%d-%d", st.Day, len(st.BuildQueue)+1),
		Kind:          opts.Kind,
		TargetSlug:    opts.TargetSlug,
		Location:      opts.Location,
		DaysRemaining: math.Max(0, float64(opts.BaseDays)),
		ReplacementOf: opts.ReplacementOf,
		CapacityDelta: opts.CapacityDelta,
	}

	switch opts.Kind {
	case content.BuildNew:
		next.Buildings = append(next.Buildings, Building{
			ID:     item.ID,
			Slug:   opts.TargetSlug,
			X:      opts.Location[0],
			Y:      opts.Location[1],
			Tier:   1,
			Status: StatusUnderConstruction,
		})
	case content.BuildReplacement:
		building, err := targetBuilding(next, opts)
		if err != nil {
			return st, err
		}
		building.Status = StatusUnderConstruction
		building.Capacity = 0
		building.Slug = building.Slug + "-replaced"
	case content.BuildRenovation:
		building, err := targetBuilding(next, opts)
		if err != nil {
			return st, err
		}
		// Capacity stays in use while the renovation is queued.
		building.Status = StatusUnderConstruction
	case content.BuildDeconstruction:
		building, err := targetBuilding(next, opts)
		if err != nil {
			return st, err
		}
		building.Status = StatusUnderConstruction
		building.Capacity = 0
	default:
		return st, fmt.Errorf("%w: build kind %q", ErrInvalidState, opts.Kind)
	}

	next.BuildQueue = append(next.BuildQueue, item)
	return next, nil
}

func targetBuilding(next State, opts EnqueueOptions) (*Building, error) {
	if opts.ReplacementOf == nil {
		return nil, fmt.Errorf("%w: %s requires a target building", ErrBuildingNotFound, opts.Kind)
	}
	building := findBuilding(next.Buildings, *opts.ReplacementOf)
	if building == nil {
		return nil, fmt.Errorf("%w: %s target %q", ErrBuildingNotFound, opts.Kind, *opts.ReplacementOf)
	}
	return building, nil
}

// ApplyConstruction advances every queued project by the logistics
// throughput and resolves completions. Completed items leave the queue in
// the same tick.
func (s *Simulation) ApplyConstruction(st State) State {
	next := st.Clone()
	speed := Throughput(st.Logistics)

	for i := range next.BuildQueue {
		item := &next.BuildQueue[i]
		item.DaysRemaining = math.Max(0, item.DaysRemaining-speed)
		if item.DaysRemaining > 0 {
			continue
		}
		s.completeProject(&next, *item)
		next.Notifications = append(next.Notifications,
			fmt.Sprintf("Construction completed: %s", item.TargetSlug))
	}

	remaining := next.BuildQueue[:0]
	for _, item := range next.BuildQueue {
		if item.DaysRemaining > 0 {
			remaining = append(remaining, item)
		}
	}
	next.BuildQueue = remaining
	return next
}

// completeProject applies one finished queue item's effect, one handler
// per kind.
func (s *Simulation) completeProject(next *State, item BuildQueueItem) {
	switch item.Kind {
	case content.BuildNew:
		if building := findBuilding(next.Buildings, item.ID); building != nil {
			building.Status = StatusActive
			building.Capacity = item.CapacityDelta
			return
		}
		// Record went missing; recreate it rather than lose the build.
		capacity := item.CapacityDelta
		if capacity == 0 {
			capacity = content.DefaultBedCapacity
		}
		next.Buildings = append(next.Buildings, Building{
			ID:       item.ID,
			Slug:     item.TargetSlug,
			X:        item.Location[0],
			Y:        item.Location[1],
			Tier:     1,
			Status:   StatusActive,
			Capacity: capacity,
		})
	case content.BuildReplacement:
		if item.ReplacementOf == nil {
			return
		}
		if building := findBuilding(next.Buildings, *item.ReplacementOf); building != nil {
			// Old capacity was zeroed at enqueue; the delta is the
			// absolute new capacity.
			building.Slug = item.TargetSlug
			building.Status = StatusActive
			building.Capacity = item.CapacityDelta
		}
	case content.BuildRenovation:
		if item.ReplacementOf == nil {
			return
		}
		if building := findBuilding(next.Buildings, *item.ReplacementOf); building != nil {
			building.Status = StatusActive
			building.Capacity = math.Max(0, building.Capacity+item.CapacityDelta)
		}
	case content.BuildDeconstruction:
		if item.ReplacementOf == nil {
			return
		}
		for i, b := range next.Buildings {
			if b.ID == *item.ReplacementOf {
				next.Buildings = append(next.Buildings[:i], next.Buildings[i+1:]...)
				break
			}
		}
	}
}

// ComputeReplacementDelta returns the capacity a replacement leaves
// behind. The old capacity was already zeroed at enqueue time, so the
// delta is the absolute new value, not old+new.
func ComputeReplacementDelta(oldCap, newCap float64) float64 {
	return newCap
}

// ComputeRenovationDelta returns the net capacity gain of a renovation.
func ComputeRenovationDelta(oldCap, newCap float64) float64 {
	return newCap - oldCap
}

// ComputeDeconstructionDelta returns the capacity lost by tearing down.
func ComputeDeconstructionDelta(oldCap float64) float64 {
	return -oldCap
}
