package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThroughput(t *testing.T) {
	assert.InDelta(t, 1, Throughput(LogisticsState{}), 1e-9)
	assert.InDelta(t, 1.4, Throughput(LogisticsState{Carts: 1, RoadBonus: 1}), 1e-9)
	assert.InDelta(t, 1.8, Throughput(LogisticsState{Carts: 2, PackAnimals: 3}), 1e-9)
}

func TestLogisticsStrainNotification(t *testing.T) {
	s := testSim()
	st := emptyState()
	st.Logistics = LogisticsState{RoadBonus: -2} // migrated saves can carry this

	next := s.ApplyLogistics(st)
	assert.Contains(t, next.Notifications, "Logistics strain: transport slowed.")

	again := s.ApplyLogistics(next)
	count := 0
	for _, n := range again.Notifications {
		if n == "Logistics strain: transport slowed." {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
