// Package narrative holds the flavor text for the awakening sequence and
// the character-creation events. Text only; the creation state machine
// itself lives in the sim package.
package narrative

import "github.com/talgya/haven/internal/content"

var biomeIntros = map[string]string{
	"temperate_forest": "You wake amidst gentle hills where dew-soaked grasses bend beneath the breeze.",
	"taiga":            "You awaken among shadowed firs, the scent of resin and cold loam heavy in the air.",
	"rainforest":       "You wake beneath dripping canopies, the air thick with blossom and birdsong.",
	"desert":           "You awaken beneath a merciless sun, sand clinging to your skin as heat shimmers on the horizon.",
	"tundra":           "You wake on frost-hard ground beneath a pale sky threaded with aurora light.",
	"alpine":           "You wake to thin, crystalline air as jagged peaks tear through the morning cloud.",
	"coast":            "You wake to the crash of waves and salty spray, gulls wheeling overhead.",
	"savanna":          "You wake in tall golden grass, distant herds drumming across the warming plain.",
	"wetlands":         "You wake among whispering reeds, mist curling off still black water.",
	"steppe":           "You wake to an endless wind combing the shortgrass toward a bare horizon.",
	"volcanic":         "You wake on warm black rock, thin ash drifting against a smoldering sky.",
}

var featureDetails = map[string]string{
	content.FeatureRiver:       "A nearby river murmurs over stone, promising fish and clay alike.",
	content.FeatureLake:        "A sheltered lake mirrors the sky, its calm waters hiding fresh stores of life.",
	content.FeatureMine:        "A scar of exposed rock reveals an old mine mouth, whispering of ore and hidden danger.",
	content.FeatureDenseForest: "An ancient wood crowds close, trunks thick with moss and stories untold.",
}

// ComposeAwakening builds the awakening narrative for a biome and its
// terrain features, in feature order.
func ComposeAwakening(biome string, features []string) string {
	base, ok := biomeIntros[biome]
	if !ok {
		base = biomeIntros["temperate_forest"]
	}
	out := base
	for _, f := range features {
		if detail, ok := featureDetails[f]; ok {
			out += " " + detail
		}
	}
	return out
}

// HelperProfile describes the villager a creation thought brings along.
type HelperProfile struct {
	Name       string   `json:"name"`
	JobID      string   `json:"jobId"`
	Efficiency float64  `json:"efficiency"`
	Skills     []string `json:"skills"`
	Summary    string   `json:"summary"`
}

// ThoughtOption is one survival instinct the player may follow during a
// creation event. Each carries the helper who answers the call.
type ThoughtOption struct {
	ID          string        `json:"id"`
	Label       string        `json:"label"`
	Description string        `json:"description"`
	Arrival     string        `json:"arrival"`
	Result      string        `json:"result"`
	Villager    HelperProfile `json:"villager"`
}

// CreationEvent is a hardship that opens the settlement's story. Biomes
// restricts where it can occur; empty means anywhere.
type CreationEvent struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Hardship    string          `json:"hardship"`
	Biomes      []string        `json:"biomes,omitempty"`
	Thoughts    []ThoughtOption `json:"thoughts"`
}

// CreationEvents is the catalogue of opening hardships.
var CreationEvents = []CreationEvent{
	{
		ID:    "ravine_plunge",
		Title: "The Ravine's Edge",
		Description: "The ground shears open beneath you and you skid toward a ragged ravine. " +
			"Cold spray rises from the torrent below while needles of shale and pine bark rattle down the slope.",
		Hardship: "A narrow ledge and a tangle of roots are all that slow your fall. " +
			"A blink too long and the next rockslide will finish what the drop began.",
		Biomes: []string{"temperate_forest", "taiga", "alpine"},
		Thoughts: []ThoughtOption{
			{
				ID:          "ravine_builder_anchor",
				Label:       "Signal Lysa, the rope-slinging builder, before the ledge splinters.",
				Description: "She braces a piton between slick roots, ready to swing a knotted line past you if she can reach you before the gravel gives way.",
				Arrival:     "Lysa barrels out of the fog with a fistful of iron spikes. The line hisses past your ear, catches, and she hauls you up while shards cascade into the ravine.",
				Result:      "Lysa pulls you clear of the ravine and holds position until you decide the next move.",
				Villager: HelperProfile{
					Name: "Lysa", JobID: "builder", Efficiency: 1.05,
					Skills:  []string{"Ropework", "Improvised scaffolding", "Quick repairs"},
					Summary: "A wiry builder who trusts knots more than luck.",
				},
			},
			{
				ID:          "ravine_hunter_ledges",
				Label:       "Wave to Rusk, the cliff-runner hunter tracking shaggy goats.",
				Description: "He dances along the ledges with a hooked spear, able to snag you or distract whatever claws its way up toward you.",
				Arrival:     "Rusk drops from an overhang, spear hooked through your pack strap, and swings you onto solid stone as the ledge lets go behind you.",
				Result:      "Rusk hauls you onto the high path and scans the slope for the next danger.",
				Villager: HelperProfile{
					Name: "Rusk", JobID: "hunter", Efficiency: 1.1,
					Skills:  []string{"Climbing", "Tracking", "Spearwork"},
					Summary: "A sure-footed hunter who reads cliffs like trail sign.",
				},
			},
		},
	},
	{
		ID:    "dry_wellspring",
		Title: "The Dry Wellspring",
		Description: "The only spring for miles has sunk into cracked earth. Your throat burns and the " +
			"horizon offers nothing but heat shimmer and circling birds.",
		Hardship: "Another day without water ends the story here. Something must find it, or carry it, fast.",
		Biomes:   []string{"desert", "savanna", "steppe", "volcanic"},
		Thoughts: []ThoughtOption{
			{
				ID:          "wellspring_forager_roots",
				Label:       "Call for Sera, the forager who reads the land's green veins.",
				Description: "She knows which roots hold water and which gullies hide seep pools after the rains.",
				Arrival:     "Sera appears with a bundle of water-heavy tubers and a dowser's patience, already marking where to dig.",
				Result:      "Sera shares her water roots and stakes out a seep line for a proper well.",
				Villager: HelperProfile{
					Name: "Sera", JobID: "forager", Efficiency: 1.1,
					Skills:  []string{"Water-finding", "Edible plants", "Dry-country craft"},
					Summary: "A patient forager who never passes a plant without naming it.",
				},
			},
			{
				ID:          "wellspring_mason_cistern",
				Label:       "Shout for Odo, the mason hauling his chisels through the badlands.",
				Description: "He can cut a catch basin into the rock before the next rare rain is wasted on sand.",
				Arrival:     "Odo arrives dusted white, studies the cracked basin, and starts cutting a cistern channel without a word.",
				Result:      "Odo roughs out a stone cistern to trap whatever the sky next offers.",
				Villager: HelperProfile{
					Name: "Odo", JobID: "mason", Efficiency: 1.0,
					Skills:  []string{"Stonecutting", "Cistern work", "Patience"},
					Summary: "A taciturn mason who believes every problem has a stone answer.",
				},
			},
		},
	},
	{
		ID:    "rising_water",
		Title: "The Rising Water",
		Description: "Rain has not stopped for two days. The channel behind your camp swells brown and fast, " +
			"gnawing the bank out from under your stores.",
		Hardship: "The water takes a stride of ground each hour. By nightfall it will take the camp.",
		Thoughts: []ThoughtOption{
			{
				ID:          "water_woodcutter_dike",
				Label:       "Hail Tamsin, the woodcutter felling alders upstream.",
				Description: "Her timber could become a dike faster than the water can climb, if she starts now.",
				Arrival:     "Tamsin rides a felled trunk down the current, axe in hand, and starts driving stakes before her boots are dry.",
				Result:      "Tamsin throws up a timber dike that turns the flood aside.",
				Villager: HelperProfile{
					Name: "Tamsin", JobID: "woodcutter", Efficiency: 1.05,
					Skills:  []string{"Felling", "Timberwork", "Reading water"},
					Summary: "A broad-shouldered woodcutter who argues with rivers and wins.",
				},
			},
			{
				ID:          "water_quartermaster_haul",
				Label:       "Wake Petra, the drover sorting packs beneath the leaning oak.",
				Description: "She can move every sack and tool to high ground in the time you would lose arguing with the flood.",
				Arrival:     "Petra has half the stores lashed and moving uphill before the bank finishes collapsing where they sat.",
				Result:      "Petra saves the stores and drafts the first proper inventory of the camp.",
				Villager: HelperProfile{
					Name: "Petra", JobID: "quartermaster", Efficiency: 1.0,
					Skills:  []string{"Logistics", "Inventory", "Pack handling"},
					Summary: "A brisk quartermaster who counts everything twice and loses nothing.",
				},
			},
		},
	},
}

// EventsForBiome returns creation events eligible for a biome, in
// catalogue order. Events with no biome restriction are always eligible.
func EventsForBiome(biome string) []CreationEvent {
	var out []CreationEvent
	for _, ev := range CreationEvents {
		if len(ev.Biomes) == 0 {
			out = append(out, ev)
			continue
		}
		for _, b := range ev.Biomes {
			if b == biome {
				out = append(out, ev)
				break
			}
		}
	}
	return out
}

// FindEvent looks up a creation event by id.
func FindEvent(id string) (CreationEvent, bool) {
	for _, ev := range CreationEvents {
		if ev.ID == id {
			return ev, true
		}
	}
	return CreationEvent{}, false
}
