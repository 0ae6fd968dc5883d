// Package asset defines the three library record kinds (characters,
// environments, props), their default templates, and the insertion-ordered
// library each kind is stored in. Every domain field of a template is a
// present-but-empty string so prompt construction never has to probe for
// missing keys; only the id and the optional reference image are omitted
// while a draft is unsaved.
package asset

// Character is the full character sheet.
type Character struct {
	ID                     string `json:"id,omitempty"`
	Name                   string `json:"name"`
	Species                string `json:"species"`
	Age                    string `json:"age"`
	Role                   string `json:"role"`
	Archetype              string `json:"archetype"`
	PhysicalDescription    string `json:"physicalDescription"`
	Personality            string `json:"personality"`
	Motivation             string `json:"motivation"`
	Flaws                  string `json:"flaws"`
	Backstory              string `json:"backstory"`
	SpeechPatterns         string `json:"speechPatterns"`
	Secrets                string `json:"secrets"`
	VisualStyle            string `json:"visualStyle"`
	KeyActions             string `json:"keyActions"`
	HairColor              string `json:"hairColor"`
	EyeColor               string `json:"eyeColor"`
	Height                 string `json:"height"`
	Build                  string `json:"build"`
	DistinguishingFeatures string `json:"distinguishingFeatures"`
	SkinTone               string `json:"skinTone"`
	TattoosMarkings        string `json:"tattoosMarkings"`
	ClothingStyle          string `json:"clothingStyle"`
	PostureGait            string `json:"postureGait"`
	Scent                  string `json:"scent"`
	Alignment              string `json:"alignment"`
	Phobias                string `json:"phobias"`
	Hobbies                string `json:"hobbies"`
	Intelligence           string `json:"intelligence"`
	PlaceOfBirth           string `json:"placeOfBirth"`
	SocialClass            string `json:"socialClass"`
	Beliefs                string `json:"beliefs"`
	Languages              string `json:"languages"`
	SignatureWeapon        string `json:"signatureWeapon"`
	SpecialAbilities       string `json:"specialAbilities"`
	CombatStyle            string `json:"combatStyle"`
	Reputation             string `json:"reputation"`
	Allies                 string `json:"allies"`
	Enemies                string `json:"enemies"`
	PetCompanion           string `json:"petCompanion"`
	VoiceProfile           string `json:"voiceProfile"`
	VoiceDescription       string `json:"voiceDescription"`
	Image                  string `json:"image,omitempty"`
}

func (c Character) RecordID() string { return c.ID }

func (c Character) WithID(id string) Character {
	c.ID = id
	return c
}

// DefaultCharacter returns the empty character template. The voice profile
// defaults to the first prebuilt TTS voice so speech synthesis works on an
// otherwise blank draft.
func DefaultCharacter() Character {
	return Character{VoiceProfile: "Puck"}
}

// Environment is a location sheet.
type Environment struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Biome        string `json:"biome"`
	TimeOfDay    string `json:"timeOfDay"`
	Weather      string `json:"weather"`
	Atmosphere   string `json:"atmosphere"`
	Architecture string `json:"architecture"`
	Landmarks    string `json:"landmarks"`
	History      string `json:"history"`
	Lighting     string `json:"lighting"`
	VisualStyle  string `json:"visualStyle"`
	Scale        string `json:"scale"`
	Colors       string `json:"colors"`
	Image        string `json:"image,omitempty"`
}

func (e Environment) RecordID() string { return e.ID }

func (e Environment) WithID(id string) Environment {
	e.ID = id
	return e
}

// DefaultEnvironment returns the empty environment template.
func DefaultEnvironment() Environment { return Environment{} }

// Prop is an object sheet.
type Prop struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Material      string `json:"material"`
	Size          string `json:"size"`
	Weight        string `json:"weight"`
	Condition     string `json:"condition"`
	Origin        string `json:"origin"`
	Properties    string `json:"properties"`
	VisualDetails string `json:"visualDetails"`
	History       string `json:"history"`
	VisualStyle   string `json:"visualStyle"`
	Image         string `json:"image,omitempty"`
}

func (p Prop) RecordID() string { return p.ID }

func (p Prop) WithID(id string) Prop {
	p.ID = id
	return p
}

// DefaultProp returns the empty prop template.
func DefaultProp() Prop { return Prop{} }
