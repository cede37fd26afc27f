package content

// Default returns the canonical content tables for the Village of Haven.
// External callers may substitute their own tables; the simulation only
// requires that ids resolve consistently.
func Default() *Tables {
	jobs := []Job{
		{
			ID: "forager", Name: "Forager", Cap: 6,
			Production:  map[string]float64{Food: 3},
			Consumption: map[string]float64{Food: 1},
		},
		{
			ID: "hunter", Name: "Hunter", Cap: 4,
			Production:  map[string]float64{Food: 2, Leather: 0.5},
			Consumption: map[string]float64{Food: 1},
		},
		{
			ID: "woodcutter", Name: "Woodcutter", Cap: 4,
			Production:  map[string]float64{Logs: 2},
			Consumption: map[string]float64{Food: 1},
		},
		{
			ID: "mason", Name: "Mason", Cap: 3,
			Production:  map[string]float64{Stone: 1.5},
			Consumption: map[string]float64{Food: 1},
		},
		{
			ID: "smith", Name: "Smith", Cap: 2,
			Consumption: map[string]float64{Food: 1, Firewood: 1},
		},
		{
			ID: "tailor", Name: "Tailor", Cap: 2,
			Production:  map[string]float64{Cloth: 0.5},
			Consumption: map[string]float64{Food: 1},
		},
		{
			ID: "builder", Name: "Builder", Cap: 4,
			Consumption: map[string]float64{Food: 1},
		},
		{
			ID: "quartermaster", Name: "Quartermaster", Cap: 1,
			Consumption: map[string]float64{Food: 1},
		},
	}

	requirements := []JobRequirement{
		{
			JobID: "forager",
			Notes: "Scavenges edible plants without dedicated equipment.",
		},
		{
			JobID:              "hunter",
			RequiredTools:      &ToolRequirement{Resource: Tools, PerWorker: 1, Description: "Hunting bows or spears"},
			ToollessProduction: map[string]float64{Food: 1},
			Notes:              "Improvised hunting yields less without proper gear.",
		},
		{
			JobID:              "woodcutter",
			RequiredTools:      &ToolRequirement{Resource: Tools, PerWorker: 1, Description: "Axes and saws"},
			ToollessProduction: map[string]float64{Logs: 1},
			Notes:              "Manual gathering without axes is slower.",
		},
		{
			JobID:              "mason",
			RequiredTools:      &ToolRequirement{Resource: Tools, PerWorker: 1, Description: "Chisels and hammers"},
			RequiredBuildings:  []string{"stone_hall", "town_hall"},
			ToollessProduction: map[string]float64{Stone: 0.5},
			Notes:              "Needs a stoneworking space; hand tools only allow minimal output.",
		},
		{
			JobID:             "smith",
			RequiredTools:     &ToolRequirement{Resource: Tools, PerWorker: 1, Description: "Forges and anvils"},
			RequiredBuildings: []string{"stone_hall", "town_hall"},
			UnlocksRecipes:    []string{"iron_axe"},
			Notes:             "Requires a dedicated forge to work metal.",
		},
		{
			JobID:              "tailor",
			RequiredTools:      &ToolRequirement{Resource: Tools, PerWorker: 1, Description: "Needles and looms"},
			RequiredBuildings:  []string{"log_cabin", "stone_hall", "town_hall"},
			ToollessProduction: map[string]float64{Cloth: 0.25},
			UnlocksRecipes:     []string{"leather_armor"},
			Notes:              "A sheltered workshop improves output dramatically.",
		},
		{
			JobID:         "builder",
			RequiredTools: &ToolRequirement{Resource: Tools, PerWorker: 1, Description: "Hammers and saws"},
			Notes:         "Building crews stall without shared toolkits.",
		},
		{
			JobID:             "quartermaster",
			RequiredBuildings: []string{"town_hall"},
			Notes:             "Needs a planning table in the hall to organise supplies.",
		},
	}

	recipes := []Recipe{
		{
			ID: "iron_axe", Name: "Iron Axe",
			Inputs:  map[string]float64{Ore: 2, Logs: 1},
			Outputs: map[string]float64{Tools: 1},
		},
		{
			ID: "leather_armor", Name: "Leather Armor",
			Inputs:  map[string]float64{Leather: 2, Cloth: 1},
			Outputs: map[string]float64{Armor: 1},
		},
	}

	biomes := []Biome{
		{
			ID: "temperate_forest", Name: "Temperate Forest",
			Modifiers:       map[string]float64{Food: 1, Logs: 1},
			Weather:         "Gentle rains and crisp breezes keep the air cool and fragrant.",
			Geography:       "Rolling hills cradle streams and pockets of oak and birch.",
			ResourceNotes:   "Balanced access to timber, fresh water, forage, and workable clay.",
			DefaultFeatures: []string{FeatureRiver, FeatureDenseForest, FeatureLake},
		},
		{
			ID: "taiga", Name: "Taiga",
			Modifiers:       map[string]float64{Logs: 2, Food: -1},
			Weather:         "Long winters and misty summers shroud the woods in cold vapor.",
			Geography:       "Thick conifers crowd frozen bogs and hidden ravines rich in ore.",
			ResourceNotes:   "Abundant lumber and pelts, with sparse berries and iron veins.",
			DefaultFeatures: []string{FeatureDenseForest, FeatureRiver, FeatureMine},
		},
		{
			ID: "rainforest", Name: "Rainforest",
			Modifiers:       map[string]float64{Food: 2, Logs: 1},
			Weather:         "Warm rains fall daily, a humid haze steeped in vibrant life.",
			Geography:       "Tiered canopies cloak lagoons and tangled root bridges.",
			ResourceNotes:   "Exotic herbs, plentiful game, and towering hardwoods for timber.",
			DefaultFeatures: []string{FeatureDenseForest, FeatureLake, FeatureRiver},
		},
		{
			ID: "desert", Name: "Desert",
			Modifiers:       map[string]float64{Food: -2, Stone: 0.5},
			Weather:         "Relentless sun and chill nights test every breath and drop of water.",
			Geography:       "Wind-carved dunes hide canyons and rare oases fed by underground streams.",
			ResourceNotes:   "Sparse forage, hardy game, and exposed mineral seams in the badlands.",
			DefaultFeatures: []string{FeatureRiver, FeatureMine},
		},
		{
			ID: "tundra", Name: "Tundra",
			Modifiers:       map[string]float64{Food: -1, Ore: 0.5},
			Weather:         "Ice-laden winds scour the plains beneath wide auroras.",
			Geography:       "Permafrost fields give way to frozen lakes and jagged ice caves.",
			ResourceNotes:   "Limited forage with resilient moss, migratory herds, and pockets of ore.",
			DefaultFeatures: []string{FeatureLake, FeatureMine},
		},
		{
			ID: "alpine", Name: "Alpine",
			Modifiers:       map[string]float64{Stone: 1, Food: -1},
			Weather:         "Thin air and sudden storms sweep down from the peaks.",
			Geography:       "Knife-edged ridges split glacial valleys and hidden hot springs.",
			ResourceNotes:   "Stone and ore aplenty, sparse forage, and hardy mountain goats.",
			DefaultFeatures: []string{FeatureMine, FeatureRiver},
		},
		{
			ID: "coast", Name: "Coast",
			Modifiers:       map[string]float64{Food: 2, Clay: 0.5},
			Weather:         "Salt-laced winds and shifting tides mark temperate days and stormy nights.",
			Geography:       "Pebbled shores meet tidal marshes and sheltered coves.",
			ResourceNotes:   "Rich fisheries, driftwood, salt, and clay washed in by the sea.",
			DefaultFeatures: []string{FeatureRiver, FeatureLake},
		},
		{
			ID: "savanna", Name: "Savanna",
			Modifiers:       map[string]float64{Food: 1, Leather: 0.5},
			Weather:         "Dry heat broken by sudden thundering rains across open grass.",
			Geography:       "Endless grass seas dotted with lone acacias and termite spires.",
			ResourceNotes:   "Great herds for hides and meat, little timber, scattered clay pans.",
			DefaultFeatures: []string{FeatureRiver},
		},
		{
			ID: "wetlands", Name: "Wetlands",
			Modifiers:       map[string]float64{Food: 1, Clay: 1},
			Weather:         "Mists linger over still water; rain arrives soft and often.",
			Geography:       "Reed beds and peat channels weave between low hummocks.",
			ResourceNotes:   "Waterfowl, fish, reeds, and deep beds of potter's clay.",
			DefaultFeatures: []string{FeatureLake, FeatureRiver},
		},
		{
			ID: "steppe", Name: "Steppe",
			Modifiers:       map[string]float64{Food: 0.5, Leather: 0.5},
			Weather:         "Constant wind, scorching summers, and bone-dry winters.",
			Geography:       "Rolling shortgrass plains broken by stony outcrops.",
			ResourceNotes:   "Grazing herds and stone, but wood must be hauled from afar.",
			DefaultFeatures: []string{FeatureMine},
		},
		{
			ID: "volcanic", Name: "Volcanic",
			Modifiers:       map[string]float64{Stone: 1, Ore: 1, Food: -1},
			Weather:         "Ash hazes the sky; warm vents steam against cold nights.",
			Geography:       "Black rock flows and fumaroles ring a slumbering caldera.",
			ResourceNotes:   "Exceptional ore and stone amid soil too harsh for easy crops.",
			DefaultFeatures: []string{FeatureMine, FeatureLake},
		},
	}

	plans := []Plan{
		{
			Label:         "Makeshift Shelter",
			Description:   "Quick shelters to add more bedding for newcomers.",
			Kind:          BuildNew,
			TargetSlug:    "makeshift_shelter",
			BaseDays:      2,
			CapacityDelta: DefaultBedCapacity,
			Cost:          map[string]float64{Logs: 4, Firewood: 2},
		},
		{
			Label:         "Log Cabin",
			Description:   "Sturdier housing with a modest capacity boost.",
			Kind:          BuildNew,
			TargetSlug:    "log_cabin",
			BaseDays:      3,
			CapacityDelta: 3,
			Cost:          map[string]float64{Logs: 8, Firewood: 6},
		},
		{
			Label:         "Stone Hall",
			Description:   "Replace the camp shelter with a proper stone hall.",
			Kind:          BuildReplacement,
			TargetSlug:    "stone_hall",
			BaseDays:      4,
			CapacityDelta: 6,
			Cost:          map[string]float64{Stone: 10, Logs: 4},
		},
		{
			Label:         "Town Hall Renovation",
			Description:   "Expand the hall and refine its interior.",
			Kind:          BuildRenovation,
			TargetSlug:    "town_hall",
			BaseDays:      3,
			CapacityDelta: 2,
			Cost:          map[string]float64{Stone: 6, Logs: 6},
		},
	}

	featureBonus := map[string]map[string]float64{
		FeatureRiver:       {Food: 2, Clay: 1},
		FeatureLake:        {Food: 1},
		FeatureMine:        {Stone: 1, Ore: 1},
		FeatureDenseForest: {Logs: 2},
	}

	t := &Tables{
		Jobs:         make(map[string]Job, len(jobs)),
		JobOrder:     make([]string, 0, len(jobs)),
		Requirements: make(map[string]JobRequirement, len(requirements)),
		Recipes:      make(map[string]Recipe, len(recipes)),
		Biomes:       make(map[string]Biome, len(biomes)),
		BiomeOrder:   make([]string, 0, len(biomes)),
		Plans:        plans,
		FeatureBonus: featureBonus,
		BuildingCosts: map[string]map[string]float64{
			"makeshift_shelter": {Logs: 4, Firewood: 2},
			"log_cabin":         {Logs: 8, Firewood: 6},
			"stone_hall":        {Stone: 10, Logs: 4},
			"town_hall":         {Stone: 6, Logs: 6},
		},
	}
	for _, j := range jobs {
		t.Jobs[j.ID] = j
		t.JobOrder = append(t.JobOrder, j.ID)
	}
	for _, r := range requirements {
		t.Requirements[r.JobID] = r
	}
	for _, r := range recipes {
		t.Recipes[r.ID] = r
	}
	for _, b := range biomes {
		t.Biomes[b.ID] = b
		t.BiomeOrder = append(t.BiomeOrder, b.ID)
	}
	return t
}
