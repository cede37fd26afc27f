package sim

import "fmt"

// ApplyCraftingTargets advances every tracked craft target by at most one
// completed unit. A target is skipped — with a deduplicated notification —
// when its recipe is locked or any input is short; inputs are never
// partially consumed.
func (s *Simulation) ApplyCraftingTargets(st State) State {
	next := st.Clone()
	summaries := s.EvaluateJobPlans(st).Summaries

	for i := range next.Crafting {
		target := &next.Crafting[i]
		recipe, ok := s.tables.Recipes[target.RecipeID]
		if !ok {
			continue
		}

		if !s.IsRecipeUnlocked(next, recipe.ID, summaries) {
			jobName := "assigned worker"
			if req, ok := s.tables.RequirementForRecipe(recipe.ID); ok {
				if job, ok := s.tables.Job(req.JobID); ok {
					jobName = job.Name
				} else {
					jobName = req.JobID
				}
			}
			next.Notifications = appendUnique(next.Notifications,
				fmt.Sprintf("%s is locked: assign and equip a %s with the right workspace.", recipe.Name, jobName))
			continue
		}

		if target.TargetCount-target.OnHand <= 0 {
			continue
		}

		short := false
		for _, resource := range sortedKeys(recipe.Inputs) {
			if next.Resources[resource] < recipe.Inputs[resource] {
				short = true
				break
			}
		}
		if short {
			next.Notifications = appendUnique(next.Notifications,
				fmt.Sprintf("Crafting paused: lacking inputs for %s", recipe.Name))
			continue
		}

		for resource, qty := range recipe.Inputs {
			next.Resources[resource] -= qty
			clampResource(next.Resources, resource)
		}
		for resource, qty := range recipe.Outputs {
			next.Resources[resource] += qty
			clampResource(next.Resources, resource)
		}
		target.OnHand++
	}

	return next
}

// EnsureCraftTarget upserts the craft target for a recipe. Shrinking the
// target clamps the on-hand count down to match. Unknown recipes are a
// programming error.
func (s *Simulation) EnsureCraftTarget(st State, recipeID string, targetCount float64) (State, error) {
	if _, ok := s.tables.Recipes[recipeID]; !ok {
		return st, fmt.Errorf("%w: %q", ErrUnknownRecipe, recipeID)
	}
	next := st.Clone()
	for i := range next.Crafting {
		if next.Crafting[i].RecipeID == recipeID {
			next.Crafting[i].TargetCount = targetCount
			if next.Crafting[i].OnHand > targetCount {
				next.Crafting[i].OnHand = targetCount
			}
			return next, nil
		}
	}
	next.Crafting = append(next.Crafting, CraftTarget{RecipeID: recipeID, TargetCount: targetCount})
	return next, nil
}
