package sim

import "fmt"

// CountAssignments returns how many villagers hold a job.
func CountAssignments(st State, jobID string) int {
	n := 0
	for _, v := range st.Villagers {
		if v.JobID == jobID {
			n++
		}
	}
	return n
}

// CanAssign reports whether a job has room for another villager.
func (s *Simulation) CanAssign(st State, jobID string) bool {
	job, ok := s.tables.Job(jobID)
	if !ok {
		return false
	}
	return CountAssignments(st, jobID) < job.Cap
}

// AssignJob moves a villager to a new job. Unknown jobs, full jobs, and
// missing villagers are programming errors.
func (s *Simulation) AssignJob(st State, villagerID, jobID string) (State, error) {
	if _, ok := s.tables.Job(jobID); !ok {
		return st, fmt.Errorf("%w: %q", ErrUnknownJob, jobID)
	}
	if !s.CanAssign(st, jobID) {
		return st, fmt.Errorf("%w: %q", ErrJobAtCapacity, jobID)
	}
	next := st.Clone()
	for i := range next.Villagers {
		if next.Villagers[i].ID == villagerID {
			next.Villagers[i].JobID = jobID
			next.Notifications = append(next.Notifications,
				fmt.Sprintf("%s assigned to %s", next.Villagers[i].Name, jobID))
			return next, nil
		}
	}
	return st, fmt.Errorf("%w: %q", ErrVillagerNotFound, villagerID)
}

// EnforceBedAssignments nulls out any bed reference that points at a
// missing building or one with no capacity. Runs at the end of every
// tick so demolitions and replacements cannot leave dangling beds.
func (s *Simulation) EnforceBedAssignments(st State) State {
	beds := make(map[string]bool, len(st.Buildings))
	for _, b := range st.Buildings {
		if b.Capacity > 0 {
			beds[b.ID] = true
		}
	}
	next := st.Clone()
	for i := range next.Villagers {
		if next.Villagers[i].Bed != nil && !beds[*next.Villagers[i].Bed] {
			next.Villagers[i].Bed = nil
		}
	}
	return next
}
