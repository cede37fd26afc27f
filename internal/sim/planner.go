package sim

import (
	"math"
	"sort"

	"github.com/talgya/haven/internal/content"
)

// WorkerMode is the production mode the planner resolves for one villager.
type WorkerMode string

const (
	ModeFull     WorkerMode = "full"     // job production table
	ModeToolless WorkerMode = "toolless" // reduced fallback table
	ModeBlocked  WorkerMode = "blocked"  // produces and consumes nothing
)

// WorkerPlan is one villager's resolved production mode for the tick.
type WorkerPlan struct {
	Villager    Villager
	JobID       string
	Requirement *content.JobRequirement
	Mode        WorkerMode
}

// JobSummary aggregates the planner's result for one job type.
type JobSummary struct {
	JobID          string   `json:"jobId"`
	Assigned       int      `json:"assigned"`
	Active         int      `json:"active"`
	Toolless       int      `json:"toolless"`
	Blocked        int      `json:"blocked"`
	Workstations   *int     `json:"workstations"` // nil when the job needs none
	ToolSets       *int     `json:"toolSets"`     // nil when the job needs no tools
	UnlocksRecipes []string `json:"unlocksRecipes"`
}

// PlanResult is the full workforce resolution for one tick.
type PlanResult struct {
	Plans     []WorkerPlan
	Summaries map[string]JobSummary
}

// toolRequest is one villager's claim on a shared tool pool.
type toolRequest struct {
	villager    Villager
	jobID       string
	requirement content.JobRequirement
	resource    string
	perWorker   float64
}

// EvaluateJobPlans resolves every villager's production mode. Workstation
// caps apply per job; tool grants are a single allocation pass over all
// tool-requiring jobs, sorted by efficiency against one shared pool per
// resource. Tool stock is a globally contended budget, never reserved
// per job.
func (s *Simulation) EvaluateJobPlans(st State) PlanResult {
	result := PlanResult{Summaries: make(map[string]JobSummary, len(s.tables.JobOrder))}
	toolBudget := cloneResourceMap(st.Resources)
	var requests []toolRequest

	for _, jobID := range s.tables.JobOrder {
		workers := workersForJob(st, jobID)
		req, hasReq := s.tables.Requirement(jobID)

		summary := JobSummary{
			JobID:          jobID,
			Assigned:       len(workers),
			UnlocksRecipes: []string{},
		}
		var reqPtr *content.JobRequirement
		if hasReq {
			r := req
			reqPtr = &r
			summary.UnlocksRecipes = append(summary.UnlocksRecipes, req.UnlocksRecipes...)
			if len(req.RequiredBuildings) > 0 {
				n := countWorkstations(st, req.RequiredBuildings)
				summary.Workstations = &n
			}
			if req.RequiredTools != nil {
				sets := int(math.Floor(st.Resources[req.RequiredTools.Resource] / req.RequiredTools.PerWorker))
				summary.ToolSets = &sets
			}
		}

		allowed := len(workers)
		if summary.Workstations != nil && *summary.Workstations < allowed {
			allowed = *summary.Workstations
		}
		eligible, blocked := workers[:allowed], workers[allowed:]

		summary.Blocked += len(blocked)
		for _, v := range blocked {
			result.Plans = append(result.Plans, WorkerPlan{Villager: v, JobID: jobID, Requirement: reqPtr, Mode: ModeBlocked})
		}

		for _, v := range eligible {
			if hasReq && req.RequiredTools != nil {
				requests = append(requests, toolRequest{
					villager:    v,
					jobID:       jobID,
					requirement: req,
					resource:    req.RequiredTools.Resource,
					perWorker:   req.RequiredTools.PerWorker,
				})
				continue
			}
			result.Plans = append(result.Plans, WorkerPlan{Villager: v, JobID: jobID, Requirement: reqPtr, Mode: ModeFull})
			summary.Active++
		}

		result.Summaries[jobID] = summary
	}

	equipped := allocateTools(requests, toolBudget)

	for _, req := range requests {
		summary := result.Summaries[req.jobID]
		r := req.requirement
		plan := WorkerPlan{Villager: req.villager, JobID: req.jobID, Requirement: &r}
		switch {
		case equipped[req.villager.ID]:
			plan.Mode = ModeFull
			summary.Active++
		case len(r.ToollessProduction) > 0:
			plan.Mode = ModeToolless
			summary.Toolless++
		default:
			plan.Mode = ModeBlocked
			summary.Blocked++
		}
		result.Plans = append(result.Plans, plan)
		result.Summaries[req.jobID] = summary
	}

	return result
}

// allocateTools grants tool sets greedily by villager efficiency from one
// shared pool per resource. The budget map is drained in place.
func allocateTools(requests []toolRequest, budget map[string]float64) map[string]bool {
	equipped := make(map[string]bool)

	grouped := make(map[string][]toolRequest)
	var resources []string
	for _, req := range requests {
		if _, seen := grouped[req.resource]; !seen {
			resources = append(resources, req.resource)
		}
		grouped[req.resource] = append(grouped[req.resource], req)
	}
	sort.Strings(resources)

	for _, resource := range resources {
		list := grouped[resource]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].villager.Efficiency > list[j].villager.Efficiency
		})
		remaining := budget[resource]
		for _, req := range list {
			if remaining < req.perWorker {
				continue
			}
			equipped[req.villager.ID] = true
			remaining -= req.perWorker
		}
		budget[resource] = remaining
	}

	return equipped
}

// workersForJob returns the job's villagers sorted by descending
// efficiency; ties keep their original roster order.
func workersForJob(st State, jobID string) []Villager {
	var workers []Villager
	for _, v := range st.Villagers {
		if v.JobID == jobID {
			workers = append(workers, v)
		}
	}
	sort.SliceStable(workers, func(i, j int) bool {
		return workers[i].Efficiency > workers[j].Efficiency
	})
	return workers
}

func countWorkstations(st State, slugs []string) int {
	n := 0
	for _, b := range st.Buildings {
		if b.Status != StatusActive {
			continue
		}
		for _, slug := range slugs {
			if b.Slug == slug {
				n++
				break
			}
		}
	}
	return n
}

// IsRecipeUnlocked reports whether a recipe's job requirement is met this
// tick: somebody assigned, a workstation available when one is required,
// and at least one worker producing at full or toolless rate. Recipes
// with no requirement entry are always unlocked.
func (s *Simulation) IsRecipeUnlocked(st State, recipeID string, summaries map[string]JobSummary) bool {
	req, ok := s.tables.RequirementForRecipe(recipeID)
	if !ok {
		return true
	}
	if summaries == nil {
		summaries = s.EvaluateJobPlans(st).Summaries
	}
	summary, ok := summaries[req.JobID]
	if !ok {
		return false
	}
	if summary.Assigned <= 0 {
		return false
	}
	if summary.Workstations != nil && *summary.Workstations <= 0 {
		return false
	}
	return summary.Active+summary.Toolless > 0
}
