package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/haven/internal/content"
)

func TestEnqueueNewBuildDeductsCostAndStagesSite(t *testing.T) {
	s := testSim()
	st := emptyState()
	st.Resources[content.Logs] = 10
	st.Resources[content.Firewood] = 10

	next, err := s.EnqueueConstruction(st, EnqueueOptions{
		Kind:          content.BuildNew,
		TargetSlug:    "log_cabin",
		Location:      [2]int{1, -1},
		BaseDays:      3,
		CapacityDelta: 3,
	})
	require.NoError(t, err)

	assert.InDelta(t, 2, next.Resources[content.Logs], 1e-9)
	assert.InDelta(t, 4, next.Resources[content.Firewood], 1e-9)

	require.Len(t, next.BuildQueue, 1)
	item := next.BuildQueue[0]
	assert.Equal(t, content.BuildNew, item.Kind)
	assert.InDelta(t, 3, item.DaysRemaining, 1e-9)

	require.Len(t, next.Buildings, 1)
	site := next.Buildings[0]
	assert.Equal(t, item.ID, site.ID)
	assert.Equal(t, "log_cabin", site.Slug)
	assert.Equal(t, StatusUnderConstruction, site.Status)
	assert.Zero(t, site.Capacity, "no beds until completion")
}

func TestEnqueueRejectsUnaffordableBuildOnce(t *testing.T) {
	s := testSim()
	st := emptyState()
	st.Resources[content.Logs] = 2

	next, err := s.EnqueueConstruction(st, EnqueueOptions{
		Kind: content.BuildNew, TargetSlug: "log_cabin", BaseDays: 3,
	})
	require.NoError(t, err, "insufficient stock is a soft condition")
	assert.Empty(t, next.BuildQueue)
	assert.Empty(t, next.Buildings)
	assert.InDelta(t, 2, next.Resources[content.Logs], 1e-9, "nothing deducted")
	assert.Contains(t, next.Notifications, "Not enough resources to build log_cabin")

	// Retrying without new stock must not stack warnings.
	again, err := s.EnqueueConstruction(next, EnqueueOptions{
		Kind: content.BuildNew, TargetSlug: "log_cabin", BaseDays: 3,
	})
	require.NoError(t, err)
	count := 0
	for _, n := range again.Notifications {
		if n == "Not enough resources to build log_cabin" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestReplacementZeroesCapacityUntilComplete(t *testing.T) {
	s := testSim()
	st := emptyState()
	st.Buildings = []Building{activeHall()}
	st.Resources[content.Stone] = 12
	st.Resources[content.Logs] = 6
	hall := "hall"

	next, err := s.EnqueueConstruction(st, EnqueueOptions{
		Kind:          content.BuildReplacement,
		TargetSlug:    "stone_hall",
		BaseDays:      1,
		ReplacementOf: &hall,
		CapacityDelta: ComputeReplacementDelta(4, 6),
	})
	require.NoError(t, err)

	site := next.Buildings[0]
	assert.Equal(t, StatusUnderConstruction, site.Status)
	assert.Zero(t, site.Capacity, "old beds vanish the day demolition starts")
	assert.Equal(t, "town_hall-replaced", site.Slug)

	done := s.ApplyConstruction(next)
	require.Empty(t, done.BuildQueue)
	rebuilt := done.Buildings[0]
	assert.Equal(t, "stone_hall", rebuilt.Slug)
	assert.Equal(t, StatusActive, rebuilt.Status)
	assert.InDelta(t, 6, rebuilt.Capacity, 1e-9)
	assert.Contains(t, done.Notifications, "Construction completed: stone_hall")
}

func TestRenovationKeepsCapacityInUse(t *testing.T) {
	s := testSim()
	st := emptyState()
	st.Buildings = []Building{activeHall()}
	st.Resources[content.Stone] = 6
	st.Resources[content.Logs] = 6
	hall := "hall"

	next, err := s.EnqueueConstruction(st, EnqueueOptions{
		Kind:          content.BuildRenovation,
		TargetSlug:    "town_hall",
		BaseDays:      1,
		ReplacementOf: &hall,
		CapacityDelta: ComputeRenovationDelta(4, 6),
	})
	require.NoError(t, err)
	assert.InDelta(t, 4, next.Buildings[0].Capacity, 1e-9, "residents keep their beds during works")

	done := s.ApplyConstruction(next)
	assert.InDelta(t, 6, done.Buildings[0].Capacity, 1e-9)
	assert.Equal(t, StatusActive, done.Buildings[0].Status)
}

func TestDeconstructionRemovesBuilding(t *testing.T) {
	s := testSim()
	st := emptyState()
	st.Buildings = []Building{activeHall()}
	st.Resources[content.Stone] = 6
	st.Resources[content.Logs] = 6
	hall := "hall"

	next, err := s.EnqueueConstruction(st, EnqueueOptions{
		Kind:          content.BuildDeconstruction,
		TargetSlug:    "town_hall",
		BaseDays:      1,
		ReplacementOf: &hall,
		CapacityDelta: ComputeDeconstructionDelta(4),
	})
	require.NoError(t, err)
	assert.Zero(t, next.Buildings[0].Capacity)

	done := s.ApplyConstruction(next)
	assert.Empty(t, done.Buildings)
	assert.Empty(t, done.BuildQueue)
}

func TestEnqueueMissingTargetIsAnError(t *testing.T) {
	s := testSim()
	st := emptyState()
	st.Resources[content.Stone] = 20
	st.Resources[content.Logs] = 20
	ghost := "no-such-building"

	_, err := s.EnqueueConstruction(st, EnqueueOptions{
		Kind:          content.BuildRenovation,
		TargetSlug:    "town_hall",
		ReplacementOf: &ghost,
	})
	require.ErrorIs(t, err, ErrBuildingNotFound)

	_, err = s.EnqueueConstruction(st, EnqueueOptions{
		Kind:       content.BuildReplacement,
		TargetSlug: "stone_hall",
	})
	require.ErrorIs(t, err, ErrBuildingNotFound, "nil target")
}

func TestConstructionAdvancesByThroughput(t *testing.T) {
	s := testSim()
	st := emptyState()
	st.Logistics = LogisticsState{Carts: 2, RoadBonus: 2} // 1 + 0.5 + 0.3 = 1.8
	st.BuildQueue = []BuildQueueItem{{
		ID: "b1", Kind: content.BuildNew, TargetSlug: "log_cabin", DaysRemaining: 3, CapacityDelta: 3,
	}}

	next := s.ApplyConstruction(st)
	require.Len(t, next.BuildQueue, 1)
	assert.InDelta(t, 1.2, next.BuildQueue[0].DaysRemaining, 1e-9)

	next = s.ApplyConstruction(next)
	assert.Empty(t, next.BuildQueue, "second day finishes the cabin")
}

func TestCompletionRecreatesMissingRecord(t *testing.T) {
	s := testSim()
	st := emptyState()
	st.BuildQueue = []BuildQueueItem{{
		ID: "b1", Kind: content.BuildNew, TargetSlug: "log_cabin",
		Location: [2]int{2, 0}, DaysRemaining: 0.5, CapacityDelta: 3,
	}}

	next := s.ApplyConstruction(st)
	require.Len(t, next.Buildings, 1)
	b := next.Buildings[0]
	assert.Equal(t, "b1", b.ID)
	assert.Equal(t, StatusActive, b.Status)
	assert.InDelta(t, 3, b.Capacity, 1e-9)
	assert.Equal(t, 2, b.X)
}

func TestCapacityDeltaLaws(t *testing.T) {
	assert.InDelta(t, 6, ComputeReplacementDelta(4, 6), 1e-9, "replacement delta is the absolute new capacity")
	assert.InDelta(t, 2, ComputeRenovationDelta(4, 6), 1e-9)
	assert.InDelta(t, -3, ComputeRenovationDelta(6, 3), 1e-9)
	assert.InDelta(t, -4, ComputeDeconstructionDelta(4), 1e-9)
}
