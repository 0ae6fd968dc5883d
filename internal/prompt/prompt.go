// Package prompt composes the form data into the text prompts sent to the
// generation endpoints. Pure string building; no I/O.
package prompt

import (
	"fmt"
	"strings"

	"github.com/fablesmith/mythosforge/internal/asset"
	"github.com/fablesmith/mythosforge/pkg/models"
)

// CharacterNarrative builds the long-form profile prompt.
func CharacterNarrative(c asset.Character) string {
	name := c.Name
	if name == "" {
		name = "[NAME]"
	}
	return strings.TrimSpace(fmt.Sprintf(`
Write a detailed narrative profile for %s.
Core: %s %s (%s).
Appearance: %s, %s. Skin: %s. Hair: %s. Eyes: %s. Markings: %s. Clothing: %s. Posture: %s.
Psychology: Alignment: %s. Personality: %s. Motivation: %s. Flaws: %s. Phobias: %s. Intelligence: %s.
Lore: Born in %s. Social Class: %s. Beliefs: %s. Languages: %s. Reputation: %s. Allies: %s. Enemies: %s.
Combat: Uses a %s with a %s style. Special Abilities: %s.
Voice: %s - %s.
Backstory: %s.
Secrets: %s.`,
		name, c.Species, c.Role, c.Archetype,
		c.Height, c.Build, c.SkinTone, c.HairColor, c.EyeColor, c.TattoosMarkings, c.ClothingStyle, c.PostureGait,
		c.Alignment, c.Personality, c.Motivation, c.Flaws, c.Phobias, c.Intelligence,
		c.PlaceOfBirth, c.SocialClass, c.Beliefs, c.Languages, c.Reputation, c.Allies, c.Enemies,
		c.SignatureWeapon, c.CombatStyle, c.SpecialAbilities,
		c.VoiceProfile, c.VoiceDescription,
		c.Backstory, c.Secrets))
}

// CharacterVisual builds the portrait prompt, folding in the global style
// settings.
func CharacterVisual(c asset.Character, g models.GlobalData) string {
	p := strings.TrimSpace(fmt.Sprintf(`
Hyper-detailed portrait: %s, a %s %s.
Visuals: %s, %s, %s skin. %s hair, %s eyes.
Defining Features: %s, %s.
Clothing: %s.
Vibe: %s, %s.
8k resolution, photorealistic, depth of field, sharp focus on eyes.`,
		c.Name, c.Species, c.Role,
		c.Height, c.Build, c.SkinTone, c.HairColor, c.EyeColor,
		c.DistinguishingFeatures, c.TattoosMarkings,
		c.ClothingStyle,
		c.VisualStyle, c.PostureGait))
	return withGlobals(p, g)
}

// EnvironmentCinematic builds the scene prompt.
func EnvironmentCinematic(e asset.Environment, g models.GlobalData) string {
	name := e.Name
	if name == "" {
		name = "Unnamed Location"
	}
	p := fmt.Sprintf("Cinematic Scene: %s. Biome: %s. Architecture: %s. Time: %s. Weather: %s. Atmosphere: %s. Lighting: %s. Visual Style: %s. Describe the mood and the scale (%s).",
		name, e.Biome, e.Architecture, e.TimeOfDay, e.Weather, e.Atmosphere, e.Lighting, e.VisualStyle, e.Scale)
	return withGlobals(p, g)
}

// PropDescription builds the object prompt.
func PropDescription(p asset.Prop, g models.GlobalData) string {
	s := fmt.Sprintf("Object Description: %s. Category: %s. Material: %s. Origin: %s. Condition: %s. Visual Details: %s. Technical/Magical Properties: %s. Describe its weight and tactile feel.",
		p.Name, p.Category, p.Material, p.Origin, p.Condition, p.VisualDetails, p.Properties)
	return withGlobals(s, g)
}

// Story builds the story-generation prompt. registryContext is the joined
// saved-element block; an empty context still produces a valid prompt.
func Story(synopsis, registryContext string) string {
	return strings.TrimSpace(fmt.Sprintf(`
Write a short story based on this synopsis: %q.
Include the following saved elements if relevant: %s.
If the synopsis doesn't specify a setting, use the saved environment from the context.
Style: Engaging, descriptive, and consistent with the visual styles of the characters.`,
		synopsis, registryContext))
}

// Storyboard builds the comic-panel prompt for one scene.
func Storyboard(scene string) string {
	return strings.TrimSpace(fmt.Sprintf(`
Create a comic book page layout with a 2x2 grid (4 panels).
Depicting this scene: %q.
Style: High-contrast graphic novel, consistent with provided character references.
Ensure clear visual storytelling. Panels should have borders.`,
		scene))
}

// VoiceIntro is the default spoken text when no explicit line is given: the
// character introduces themselves.
func VoiceIntro(c asset.Character) string {
	backstory := c.Backstory
	if len(backstory) > 100 {
		backstory = backstory[:100]
	}
	return fmt.Sprintf("%s, %s. %s. %s", c.Name, c.Archetype, c.Personality, backstory)
}

func withGlobals(p string, g models.GlobalData) string {
	var extras []string
	if g.Style != "" {
		extras = append(extras, "Overall style: "+g.Style)
	}
	if g.Genre != "" {
		extras = append(extras, "Genre: "+g.Genre)
	}
	if g.TimePeriod != "" {
		extras = append(extras, "Time period: "+g.TimePeriod)
	}
	if g.LightingTheme != "" {
		extras = append(extras, "Lighting theme: "+g.LightingTheme)
	}
	if g.ColorPalette != "" {
		extras = append(extras, "Color palette: "+g.ColorPalette)
	}
	if len(extras) == 0 {
		return p
	}
	return p + "\n" + strings.Join(extras, ". ") + "."
}
