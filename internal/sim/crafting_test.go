package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/haven/internal/content"
)

// smithState has a working forge: an active hall, a tooled smith, and
// input stock for the iron axe recipe.
func smithState() State {
	st := emptyState()
	st.Buildings = []Building{activeHall()}
	st.Villagers = []Villager{{ID: "s", Name: "S", JobID: "smith", Efficiency: 1}}
	st.Resources[content.Tools] = 1
	st.Resources[content.Ore] = 10
	st.Resources[content.Logs] = 10
	return st
}

func TestCraftingOneUnitPerDay(t *testing.T) {
	s := testSim()
	st := smithState()
	st.Crafting = []CraftTarget{{RecipeID: "iron_axe", TargetCount: 3}}

	next := s.ApplyCraftingTargets(st)

	assert.InDelta(t, 1, next.Crafting[0].OnHand, 1e-9)
	assert.InDelta(t, 8, next.Resources[content.Ore], 1e-9)
	assert.InDelta(t, 9, next.Resources[content.Logs], 1e-9)
	assert.InDelta(t, 2, next.Resources[content.Tools], 1e-9)

	next = s.ApplyCraftingTargets(next)
	assert.InDelta(t, 2, next.Crafting[0].OnHand, 1e-9, "one unit per day, never more")
}

func TestCraftingStopsAtTarget(t *testing.T) {
	s := testSim()
	st := smithState()
	st.Crafting = []CraftTarget{{RecipeID: "iron_axe", TargetCount: 1, OnHand: 1}}

	next := s.ApplyCraftingTargets(st)
	assert.InDelta(t, 1, next.Crafting[0].OnHand, 1e-9)
	assert.InDelta(t, 10, next.Resources[content.Ore], 1e-9, "met targets consume nothing")
}

func TestCraftingLockedRecipeWarnsOnce(t *testing.T) {
	s := testSim()
	st := emptyState()
	st.Crafting = []CraftTarget{{RecipeID: "iron_axe", TargetCount: 1}}
	st.Resources[content.Ore] = 10
	st.Resources[content.Logs] = 10

	next := s.ApplyCraftingTargets(st)
	msg := "Iron Axe is locked: assign and equip a Smith with the right workspace."
	assert.Contains(t, next.Notifications, msg)
	assert.Zero(t, next.Crafting[0].OnHand)
	assert.InDelta(t, 10, next.Resources[content.Ore], 1e-9)

	again := s.ApplyCraftingTargets(next)
	count := 0
	for _, n := range again.Notifications {
		if n == msg {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestCraftingInputsAreAllOrNothing(t *testing.T) {
	s := testSim()
	st := smithState()
	st.Resources[content.Ore] = 1 // recipe wants 2
	st.Crafting = []CraftTarget{{RecipeID: "iron_axe", TargetCount: 1}}

	next := s.ApplyCraftingTargets(st)

	assert.Zero(t, next.Crafting[0].OnHand)
	assert.InDelta(t, 1, next.Resources[content.Ore], 1e-9, "no partial consumption")
	assert.InDelta(t, 10, next.Resources[content.Logs], 1e-9)
	assert.Contains(t, next.Notifications, "Crafting paused: lacking inputs for Iron Axe")
}

func TestEnsureCraftTargetUpsertsAndClamps(t *testing.T) {
	s := testSim()
	st := emptyState()

	next, err := s.EnsureCraftTarget(st, "iron_axe", 3)
	require.NoError(t, err)
	require.Len(t, next.Crafting, 1)
	assert.InDelta(t, 3, next.Crafting[0].TargetCount, 1e-9)

	next.Crafting[0].OnHand = 3
	next, err = s.EnsureCraftTarget(next, "iron_axe", 2)
	require.NoError(t, err)
	require.Len(t, next.Crafting, 1, "one entry per recipe")
	assert.InDelta(t, 2, next.Crafting[0].OnHand, 1e-9, "shrinking clamps on-hand down")
}

func TestEnsureCraftTargetRejectsUnknownRecipe(t *testing.T) {
	s := testSim()
	_, err := s.EnsureCraftTarget(emptyState(), "iron_axxe", 1)
	require.ErrorIs(t, err, ErrUnknownRecipe)
}
