// Package content holds the static lookup tables the simulation runs
// against: jobs, job requirements, recipes, biomes, feature bonuses, and
// construction plans. Tables are injected into the simulation at
// construction time and never mutated; the core carries no content values
// of its own.
package content

// Resource identifiers tracked by the settlement.
const (
	Food     = "food"
	Firewood = "firewood"
	Logs     = "logs"
	Stone    = "stone"
	Clay     = "clay"
	Ore      = "ore"
	Leather  = "leather"
	Cloth    = "cloth"
	Tools    = "tools"
	Armor    = "armor"
)

// Resources lists every tracked resource id in display order.
var Resources = []string{Food, Firewood, Logs, Stone, Clay, Ore, Leather, Cloth, Tools, Armor}

// Feature identifiers for map terrain features.
const (
	FeatureRiver       = "river"
	FeatureLake        = "lake"
	FeatureMine        = "mine"
	FeatureDenseForest = "dense_forest"
)

// Features lists every terrain feature id.
var Features = []string{FeatureRiver, FeatureLake, FeatureMine, FeatureDenseForest}

// DefaultBedCapacity is the bed count of a freshly built dwelling when the
// plan does not say otherwise.
const DefaultBedCapacity = 4

// SummonFoodThreshold is the food stock required before a new villager can
// be summoned.
const SummonFoodThreshold = 20

// Job describes a villager occupation: what it produces and consumes per
// day at efficiency 1.0, and how many villagers may hold it at once.
type Job struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Cap         int                `json:"cap"`
	Production  map[string]float64 `json:"production,omitempty"`
	Consumption map[string]float64 `json:"consumption,omitempty"`
}

// ToolRequirement is a per-worker tool cost drawn from a shared resource pool.
type ToolRequirement struct {
	Resource    string  `json:"resource"`
	PerWorker   float64 `json:"perWorker"`
	Description string  `json:"description,omitempty"`
}

// JobRequirement gates a job on tools and workstations.
type JobRequirement struct {
	JobID              string             `json:"jobId"`
	RequiredTools      *ToolRequirement   `json:"requiredTools,omitempty"`
	ToollessProduction map[string]float64 `json:"toollessProduction,omitempty"`
	RequiredBuildings  []string           `json:"requiredBuildings,omitempty"`
	UnlocksRecipes     []string           `json:"unlocksRecipes,omitempty"`
	Notes              string             `json:"notes,omitempty"`
}

// Recipe converts input resources into outputs, one completed unit per day
// per tracked craft target.
type Recipe struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Inputs  map[string]float64 `json:"inputs"`
	Outputs map[string]float64 `json:"outputs"`
}

// Biome describes a settlement biome: additive daily resource modifiers
// plus the descriptive catalogue entries shown during character creation.
type Biome struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Modifiers       map[string]float64 `json:"modifiers"`
	Weather         string             `json:"weather"`
	Geography       string             `json:"geography"`
	ResourceNotes   string             `json:"resources"`
	DefaultFeatures []string           `json:"defaultFeatures"`
}

// BuildKind enumerates the four construction project types.
type BuildKind string

const (
	BuildNew            BuildKind = "new"
	BuildReplacement    BuildKind = "replacement"
	BuildRenovation     BuildKind = "renovation"
	BuildDeconstruction BuildKind = "deconstruction"
)

// Plan is a construction option: what it builds, what it costs, and how
// long it takes before logistics throughput is applied.
type Plan struct {
	Label         string             `json:"label"`
	Description   string             `json:"description"`
	Kind          BuildKind          `json:"type"`
	TargetSlug    string             `json:"targetSlug"`
	BaseDays      int                `json:"baseDays"`
	CapacityDelta float64            `json:"capacityDelta"`
	Cost          map[string]float64 `json:"cost"`
}

// Tables bundles every content table the simulation consumes. Treat as
// read-only after construction.
type Tables struct {
	Jobs          map[string]Job
	JobOrder      []string
	Requirements  map[string]JobRequirement
	Recipes       map[string]Recipe
	Biomes        map[string]Biome
	BiomeOrder    []string
	Plans         []Plan
	FeatureBonus  map[string]map[string]float64
	BuildingCosts map[string]map[string]float64
}

// Job returns the job for an id, reporting whether it exists.
func (t *Tables) Job(id string) (Job, bool) {
	j, ok := t.Jobs[id]
	return j, ok
}

// Requirement returns the requirement entry for a job id, if any.
func (t *Tables) Requirement(jobID string) (JobRequirement, bool) {
	r, ok := t.Requirements[jobID]
	return r, ok
}

// RequirementForRecipe finds the job requirement that unlocks a recipe.
func (t *Tables) RequirementForRecipe(recipeID string) (JobRequirement, bool) {
	for _, id := range t.JobOrder {
		req, ok := t.Requirements[id]
		if !ok {
			continue
		}
		for _, r := range req.UnlocksRecipes {
			if r == recipeID {
				return req, true
			}
		}
	}
	return JobRequirement{}, false
}

// CostFor returns the resource cost of constructing the given building
// slug. Unknown slugs cost nothing; the table is advisory.
func (t *Tables) CostFor(slug string) map[string]float64 {
	return t.BuildingCosts[slug]
}
