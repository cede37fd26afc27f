package sim

// Throughput bonus per unit of transport investment.
const (
	cartBonus       = 0.25
	packAnimalBonus = 0.10
	roadBonusWeight = 0.15
)

// Throughput returns the construction speed multiplier derived from
// transport investment. Every queued project advances by this many days
// per tick.
func Throughput(l LogisticsState) float64 {
	return 1 + float64(l.Carts)*cartBonus + float64(l.PackAnimals)*packAnimalBonus + l.RoadBonus*roadBonusWeight
}

// ApplyLogistics surfaces transport strain. Throughput below base is not
// reachable with non-negative investment under the current constants, but
// a migrated save could carry one.
func (s *Simulation) ApplyLogistics(st State) State {
	next := st.Clone()
	if Throughput(st.Logistics) < 1 {
		next.Notifications = appendUnique(next.Notifications, "Logistics strain: transport slowed.")
	}
	return next
}
