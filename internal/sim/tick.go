package sim

import (
	"math"

	"github.com/talgya/haven/internal/content"
)

// applyMorale derives the three settlement scalars from the tick's own
// food delta and logistics. They are recomputed here every tick and are
// not settable by any other system; events later in the same tick may
// still nudge morale, which only feeds stability on the following tick.
func (s *Simulation) applyMorale(st State) State {
	next := st.Clone()
	foodTrend := next.Deltas[content.Food]
	switch {
	case foodTrend > 0:
		next.Morale = math.Min(100, next.Morale+1)
	case foodTrend < 0 && next.Resources[content.Food] <= 0:
		next.Morale = math.Max(0, next.Morale-2)
	}
	next.Stability = math.Min(100, math.Max(0, next.Stability+(next.Morale-50)/50))
	cartBoost := 0.0
	if next.Logistics.Carts > 0 {
		cartBoost = 1
	}
	next.Readiness = math.Min(100, math.Max(0, next.Readiness+cartBoost))
	return next
}

// TickDay advances the settlement by the given number of days. Each day
// runs the fixed pipeline: production, construction, crafting, logistics,
// morale, events, bed enforcement. The order is load-bearing: crafting
// consumes production-phase stock, construction uses pre-tick logistics,
// events read the deltas computed earlier the same day. Multi-day
// advancement stops early if a day triggers the summon pause.
func (s *Simulation) TickDay(st State, days int) State {
	current := st.Clone()
	for i := 0; i < days; i++ {
		pausedBefore := current.SummonPaused

		if len(current.Notifications) > notificationKeep {
			current.Notifications = append([]string(nil),
				current.Notifications[len(current.Notifications)-notificationKeep:]...)
		}

		current = s.ApplyProduction(current)
		current = s.ApplyConstruction(current)
		current = s.ApplyCraftingTargets(current)
		current = s.ApplyLogistics(current)
		current = s.applyMorale(current)
		current = s.ApplyEvents(current)
		current = s.EnforceBedAssignments(current)
		current.Day++

		if !pausedBefore && current.SummonPaused {
			break
		}
	}
	return current
}
