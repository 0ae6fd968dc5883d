package asset

import (
	"math/rand"

	"github.com/fablesmith/mythosforge/pkg/models"
)

// Curated pools the randomizer draws from. Kept deliberately opinionated:
// the point is a usable starting draft, not uniform coverage of the field
// space.
var (
	poolNames       = []string{"Eldrin Thorne", "Kaelen Voss", "Serafina Black", "Dr. Aris Thorne", "Unit 734", "Lyra Sunstrider", "Marcus Vane", "Mina Harker", "Gideon Grey", "Krixis the Vile", "Echo-7", "Lady Isabella", "Sgt. Hammer"}
	poolSpecies     = []string{"Human", "Elf", "Dwarf", "Android", "Orc", "Tiefling", "Xenomorphic Alien", "Cyber-enhanced Human", "Ethereal Spirit", "Dragonborn", "Shapeshifter"}
	poolRoles       = []string{"Exiled Prince", "Cybernetic Mercenary", "Rogue Scholar", "Temporal Investigator", "Deep Sea Salvager", "Silent Assassin", "Corporate Spy", "High Priest", "Wasteland Raider"}
	poolArchetypes  = []string{"The Reluctant Hero", "The Fallen Mentor", "The Calculating Strategist", "The Wild Card", "The Stoic Protector", "The Tragic Antagonist", "The Knowledge Seeker", "The Outcast"}
	poolPersonality = []string{"Pragmatic", "Melancholic", "Optimistic yet naive", "Ruthlessly efficient", "Deeply empathetic", "Charismatic but untrustworthy", "Stoic", "Whimsical", "Aggressive"}
	poolMotivations = []string{"To clear a family name", "To find a lost artifact", "To exact revenge", "To survive at all costs", "To uncover a hidden truth", "To attain godhood", "To protect the innocent"}
	poolFlaws       = []string{"Crippling self-doubt", "Hubris", "Addicted to adrenaline", "Unable to let go of the past", "Paranoid", "Blind loyalty", "Greed", "Compulsive liar"}
	poolStyles      = []string{"Cinematic Noir", "Gritty Cyberpunk", "Hyper-realistic Fantasy", "Ethereal Dreamlike", "Gothic Victorian", "Solarpunk Utopian", "Industrial Grimdark"}
	poolHair        = []string{"Silver-white", "Midnight black", "Flame red", "Ash blonde", "Neon blue", "Deep chestnut", "Chrome", "Iridescent"}
	poolEyes        = []string{"Piercing amber", "Electric violet", "Emerald green", "Ice cold blue", "Heterochromatic", "Solid black", "Glowing red"}
	poolHeights     = []string{"6'4\"", "5'2\"", "Average height", "Towering", "Petite", "Gargantuan", "Diminutive"}
	poolBuilds      = []string{"Athletic and lean", "Stocky and muscular", "Frail but elegant", "Wiry and agile", "Brawny", "Gaunt"}
	poolFeatures    = []string{"A jagged scar", "Glowing tattoos", "Mechanical arm", "Freckles", "Intricate gold jewelry", "Missing eye", "Cyber-eye", "Pointed ears"}
	poolSkinTones   = []string{"Pale alabaster", "Sun-kissed olive", "Deep obsidian", "Weathered bronze", "Metallic copper", "Synthetically perfect"}
	poolAlignments  = []string{"Lawful Good", "Neutral Good", "Chaotic Good", "Lawful Neutral", "True Neutral", "Chaotic Neutral", "Lawful Evil", "Neutral Evil", "Chaotic Evil"}
	poolWeapons     = []string{"Plasma Katana", "Engraved Revolver", "Staff of the Eternal Oak", "Hidden Wrist-blade", "Heavy Railgun", "Ancestral Broadsword"}
	poolCombat      = []string{"Aggressive CQC", "Long-range Sniper", "Tactical Defensive", "Chaotic Brawler", "Fluid Martial Arts", "Overwhelming Magic Burst"}
	poolVoices      = []string{"Puck", "Charon", "Kore", "Fenrir", "Zephyr"}
	poolVoiceDesc   = []string{"Raspy and whispery", "Booming and authoritative", "Silky and deceptive", "Robotic and monotonous", "High-pitched and nervous", "Melodic and soothing", "Gravelly and menacing"}

	poolBiomes        = []string{"Neon-lit Megacity", "Overgrown Jungle Ruins", "Floating Sky Islands", "Subterranean Crystal Caves", "Frozen Arctic Outpost", "Desolate Salt Flats", "Stellar Space Station"}
	poolTimes         = []string{"Dawn", "High Noon", "Golden Hour", "Twilight", "Midnight", "Eternal Eclipse"}
	poolWeathers      = []string{"Luminous Rain", "Dense Fog", "Ash Fall", "Solar Storm", "Crystal Snow", "Static Lightning"}
	poolAtmospheres   = []string{"Ominous", "Serene", "Melancholic", "Tense", "Wondrous", "Claustrophobic"}
	poolArchitectures = []string{"Brutalist Concrete", "Elven Organic", "Victorian Steampunk", "High-tech Minimalism", "Ancient Monolithic"}
	poolLandmarks     = []string{"Ancient Monolith", "Crumbling Statue", "Glowing Spire", "Mystic Gateway", "Holographic Billboard", "Overgrown Fountain", "Suspended Bridge"}

	poolPropCategories = []string{"Legendary Weapon", "Ancient Artifact", "High-tech Tool", "Enchanted Relic", "Lost Document"}
	poolMaterials      = []string{"Obsidian", "Damascus Steel", "Bio-luminescent Glass", "Aged Parchment", "Carbon Fiber", "Meteorite Iron"}
	poolConditions     = []string{"Pristine", "Battle-worn", "Corroded by Time", "Glows with Power", "Shattered but Functional"}
	poolProperties     = []string{"Emits a low hum", "Vibrates when near magic", "Cold to the touch", "Absorbs nearby light", "Gravity-defying"}

	poolGenres      = []string{"High Fantasy", "Hard Sci-Fi", "Cyberpunk", "Cosmic Horror", "Steampunk", "Post-Apocalyptic", "Grimdark"}
	poolTimePeriods = []string{"Ancient Mythological", "Medieval Era", "Victorian Steampunk Era", "Modern Day", "Near-Future", "Distant Space-faring Age"}
	poolLighting    = []string{"High Contrast Chiaroscuro", "Vibrant Neon", "Soft Ethereal Glow", "Cold Industrial Fluorescent", "Warm Sunset Radiance"}

	poolSynopses = []string{
		"A disgraced knight must escort a sentient artifact across a war-torn galaxy.",
		"In a world where dreams are currency, a poor orphan discovers a nightmare that can kill.",
		"A time-traveling historian accidentally alters the outcome of a pivotal ancient battle.",
		"A detective in a noir city populated by robots discovers they are the only human left.",
		"A deep-sea diver finds a city that shouldn't exist, and its lights are still on.",
		"A rogue AI falls in love with a musician and tries to write the perfect symphony.",
		"An interstellar courier is tasked with delivering a package that whispers to them.",
	}
)

func pick(r *rand.Rand, pool []string) string {
	return pool[r.Intn(len(pool))]
}

// RandomCharacter fills a fresh character draft from the pools. The id and
// reference image of the previous draft are not carried over; a randomized
// draft is a new record.
func RandomCharacter(r *rand.Rand) Character {
	c := DefaultCharacter()
	c.Name = pick(r, poolNames)
	c.Species = pick(r, poolSpecies)
	c.Role = pick(r, poolRoles)
	c.Archetype = pick(r, poolArchetypes)
	c.Personality = pick(r, poolPersonality)
	c.Motivation = pick(r, poolMotivations)
	c.Flaws = pick(r, poolFlaws)
	c.VisualStyle = pick(r, poolStyles)
	c.HairColor = pick(r, poolHair)
	c.EyeColor = pick(r, poolEyes)
	c.Height = pick(r, poolHeights)
	c.Build = pick(r, poolBuilds)
	c.DistinguishingFeatures = pick(r, poolFeatures)
	c.SkinTone = pick(r, poolSkinTones)
	c.Alignment = pick(r, poolAlignments)
	c.SignatureWeapon = pick(r, poolWeapons)
	c.CombatStyle = pick(r, poolCombat)
	c.VoiceProfile = pick(r, poolVoices)
	c.VoiceDescription = pick(r, poolVoiceDesc)
	return c
}

// RandomEnvironment fills a fresh environment draft from the pools.
func RandomEnvironment(r *rand.Rand) Environment {
	e := DefaultEnvironment()
	e.Name = pick(r, poolBiomes)
	e.Biome = pick(r, poolBiomes)
	e.TimeOfDay = pick(r, poolTimes)
	e.Weather = pick(r, poolWeathers)
	e.Atmosphere = pick(r, poolAtmospheres)
	e.Architecture = pick(r, poolArchitectures)
	e.Landmarks = pick(r, poolLandmarks)
	e.Lighting = pick(r, poolLighting)
	e.VisualStyle = pick(r, poolStyles)
	return e
}

// RandomProp fills a fresh prop draft from the pools.
func RandomProp(r *rand.Rand) Prop {
	p := DefaultProp()
	p.Name = pick(r, poolPropCategories)
	p.Category = pick(r, poolPropCategories)
	p.Material = pick(r, poolMaterials)
	p.Condition = pick(r, poolConditions)
	p.Properties = pick(r, poolProperties)
	p.VisualStyle = pick(r, poolStyles)
	return p
}

// RandomGlobals fills the global settings, preserving the aspect ratio,
// quality and reference images of the current settings.
func RandomGlobals(r *rand.Rand, g models.GlobalData) models.GlobalData {
	g.Style = pick(r, poolStyles)
	g.Genre = pick(r, poolGenres)
	g.TimePeriod = pick(r, poolTimePeriods)
	g.LightingTheme = pick(r, poolLighting)
	return g
}

// RandomSynopsis draws a story seed.
func RandomSynopsis(r *rand.Rand) string {
	return pick(r, poolSynopses)
}
