package repl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fablesmith/mythosforge/internal/asset"
	"github.com/fablesmith/mythosforge/internal/prompt"
	"github.com/fablesmith/mythosforge/pkg/models"
)

type Command interface {
	Name() string
	Aliases() []string
	Description() string
	Usage() string
	Execute(ctx context.Context, r *REPL, args []string) error
}

func allCommands() []Command {
	return []Command{
		&ModeCommand{},
		&ShowCommand{},
		&SetCommand{},
		&RandomCommand{},
		&GenerateCommand{},
		&RenderCommand{},
		&VoiceCommand{},
		&ExportCommand{},
		&LibraryCommand{},
		&ElementCommand{},
		&StoryCommand{},
		&SessionCommand{},
		&TranscriptCommand{},
		&HelpCommand{},
		&QuitCommand{},
	}
}

func (r *REPL) registerCommands() {
	for _, cmd := range allCommands() {
		r.commands[cmd.Name()] = cmd
		for _, alias := range cmd.Aliases() {
			r.commands[alias] = cmd
		}
	}
}

// ModeCommand switches the active authoring surface
type ModeCommand struct{}

func (c *ModeCommand) Name() string        { return "mode" }
func (c *ModeCommand) Aliases() []string   { return []string{"m"} }
func (c *ModeCommand) Description() string { return "Get or set the active authoring mode" }
func (c *ModeCommand) Usage() string       { return "mode [globals|character|environment|prop|story]" }

func (c *ModeCommand) Execute(_ context.Context, r *REPL, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "Current mode: %s\n", r.mgr.Mode())
		fmt.Fprintln(r.out, "Available modes:")
		for _, m := range models.ValidModes() {
			fmt.Fprintf(r.out, "  - %s\n", m)
		}
		return nil
	}

	for _, m := range models.ValidModes() {
		if strings.EqualFold(string(m), args[0]) {
			r.mgr.SetMode(m)
			fmt.Fprintf(r.out, "Mode set to: %s\n", m)
			return nil
		}
	}
	return fmt.Errorf("unknown mode: %s", args[0])
}

// ShowCommand prints the current draft for the active mode
type ShowCommand struct{}

func (c *ShowCommand) Name() string        { return "show" }
func (c *ShowCommand) Aliases() []string   { return []string{"sh", "view"} }
func (c *ShowCommand) Description() string { return "Show the current draft for the active mode" }
func (c *ShowCommand) Usage() string       { return "show" }

func (c *ShowCommand) Execute(_ context.Context, r *REPL, _ []string) error {
	switch r.mgr.Mode() {
	case models.ModeGlobals:
		r.renderer.Sheet("Global Settings", jsonFields(r.mgr.Globals()))
	case models.ModeCharacter:
		r.renderer.Sheet("Character Draft", jsonFields(r.mgr.Characters.Draft()))
	case models.ModeEnvironment:
		r.renderer.Sheet("Environment Draft", jsonFields(r.mgr.Environments.Draft()))
	case models.ModeProp:
		r.renderer.Sheet("Prop Draft", jsonFields(r.mgr.Props.Draft()))
	case models.ModeStory:
		story := r.mgr.Story()
		r.renderer.Sheet("Story", jsonFields(story))
		for i, scene := range story.StoryScenes {
			fmt.Fprintf(r.out, "Scene %d: %s\n", i+1, scene)
		}
	}
	return nil
}

// SetCommand edits one field of the current draft
type SetCommand struct{}

func (c *SetCommand) Name() string        { return "set" }
func (c *SetCommand) Aliases() []string   { return nil }
func (c *SetCommand) Description() string { return "Set a field of the current draft" }
func (c *SetCommand) Usage() string       { return "set <field> <value>" }

func (c *SetCommand) Execute(_ context.Context, r *REPL, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: %s", c.Usage())
	}
	field := args[0]
	value := strings.Join(args[1:], " ")

	switch r.mgr.Mode() {
	case models.ModeGlobals:
		g := r.mgr.Globals()
		if err := setField(&g, field, value); err != nil {
			return err
		}
		r.mgr.SetGlobals(g)
	case models.ModeCharacter:
		d := r.mgr.Characters.Draft()
		if err := setField(&d, field, value); err != nil {
			return err
		}
		r.mgr.Characters.SetDraft(d)
	case models.ModeEnvironment:
		d := r.mgr.Environments.Draft()
		if err := setField(&d, field, value); err != nil {
			return err
		}
		r.mgr.Environments.SetDraft(d)
	case models.ModeProp:
		d := r.mgr.Props.Draft()
		if err := setField(&d, field, value); err != nil {
			return err
		}
		r.mgr.Props.SetDraft(d)
	case models.ModeStory:
		s := r.mgr.Story()
		if err := setField(&s, field, value); err != nil {
			return err
		}
		r.mgr.SetStory(s)
	}

	fmt.Fprintf(r.out, "%s = %s\n", field, value)
	return nil
}

// RandomCommand fills the current draft from the randomizer pools
type RandomCommand struct{}

func (c *RandomCommand) Name() string        { return "random" }
func (c *RandomCommand) Aliases() []string   { return []string{"rand", "r"} }
func (c *RandomCommand) Description() string { return "Randomize the current draft" }
func (c *RandomCommand) Usage() string       { return "random" }

func (c *RandomCommand) Execute(_ context.Context, r *REPL, _ []string) error {
	switch r.mgr.Mode() {
	case models.ModeGlobals:
		r.mgr.SetGlobals(asset.RandomGlobals(r.rng, r.mgr.Globals()))
	case models.ModeCharacter:
		r.mgr.Characters.SetDraft(asset.RandomCharacter(r.rng))
	case models.ModeEnvironment:
		r.mgr.Environments.SetDraft(asset.RandomEnvironment(r.rng))
	case models.ModeProp:
		r.mgr.Props.SetDraft(asset.RandomProp(r.rng))
	case models.ModeStory:
		s := r.mgr.Story()
		s.Synopsis = asset.RandomSynopsis(r.rng)
		r.mgr.SetStory(s)
	}
	fmt.Fprintln(r.out, "Draft randomized")
	return nil
}

// GenerateCommand streams a narrative for the current draft
type GenerateCommand struct{}

func (c *GenerateCommand) Name() string        { return "generate" }
func (c *GenerateCommand) Aliases() []string   { return []string{"gen", "g"} }
func (c *GenerateCommand) Description() string { return "Generate a narrative for the current draft" }
func (c *GenerateCommand) Usage() string       { return "generate" }

func (c *GenerateCommand) Execute(ctx context.Context, r *REPL, _ []string) error {
	if err := r.requireProvider(); err != nil {
		return err
	}

	var p string
	switch r.mgr.Mode() {
	case models.ModeCharacter:
		p = prompt.CharacterNarrative(r.mgr.Characters.Draft())
	case models.ModeEnvironment:
		p = prompt.EnvironmentCinematic(r.mgr.Environments.Draft(), r.mgr.Globals())
	case models.ModeProp:
		p = prompt.PropDescription(r.mgr.Props.Draft(), r.mgr.Globals())
	case models.ModeStory:
		return fmt.Errorf("use 'story generate' in story mode")
	default:
		return fmt.Errorf("nothing to generate in %s mode", r.mgr.Mode())
	}

	text, err := r.provider.StreamText(ctx, p, func(chunk string) {
		fmt.Fprint(r.out, chunk)
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	fmt.Fprintln(r.out)

	r.mgr.AppendMessage(models.Message{Role: models.RoleModel, Text: text})
	return nil
}

// RenderCommand generates an image for the current draft
type RenderCommand struct{}

func (c *RenderCommand) Name() string        { return "render" }
func (c *RenderCommand) Aliases() []string   { return []string{"img"} }
func (c *RenderCommand) Description() string { return "Generate an image for the current draft" }
func (c *RenderCommand) Usage() string       { return "render [scene-number]" }

func (c *RenderCommand) Execute(ctx context.Context, r *REPL, args []string) error {
	if err := r.requireProvider(); err != nil {
		return err
	}

	globals := r.mgr.Globals()
	refs := append([]string{}, globals.StyleReferenceImages...)

	var p string
	storyboard := false
	switch r.mgr.Mode() {
	case models.ModeCharacter:
		p = prompt.CharacterVisual(r.mgr.Characters.Draft(), globals)
	case models.ModeEnvironment:
		p = prompt.EnvironmentCinematic(r.mgr.Environments.Draft(), globals)
	case models.ModeProp:
		p = prompt.PropDescription(r.mgr.Props.Draft(), globals)
	case models.ModeStory:
		if len(args) == 0 {
			return fmt.Errorf("usage: render <scene-number>")
		}
		n, err := strconv.Atoi(args[0])
		scenes := r.mgr.Story().StoryScenes
		if err != nil || n < 1 || n > len(scenes) {
			return fmt.Errorf("no such scene: %s", args[0])
		}
		p = prompt.Storyboard(scenes[n-1])
		storyboard = true
		// Ground panels on the character references already rendered.
		for _, ch := range r.mgr.Characters.Records() {
			if ch.Image != "" {
				refs = append(refs, ch.Image)
			}
		}
	default:
		return fmt.Errorf("nothing to render in %s mode", r.mgr.Mode())
	}

	fmt.Fprintln(r.out, "Rendering...")
	uri, err := r.provider.GenerateImage(ctx, p, refs)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	switch r.mgr.Mode() {
	case models.ModeCharacter:
		d := r.mgr.Characters.Draft()
		d.Image = uri
		r.mgr.Characters.SetDraft(d)
	case models.ModeEnvironment:
		d := r.mgr.Environments.Draft()
		d.Image = uri
		r.mgr.Environments.SetDraft(d)
	case models.ModeProp:
		d := r.mgr.Props.Draft()
		d.Image = uri
		r.mgr.Props.SetDraft(d)
	}

	r.mgr.AppendMessage(models.Message{Role: models.RoleModel, Image: uri, IsStoryboard: storyboard})
	fmt.Fprintln(r.out, "Image attached to draft")
	return nil
}

// VoiceCommand speaks a line in the character's voice
type VoiceCommand struct{}

func (c *VoiceCommand) Name() string        { return "voice" }
func (c *VoiceCommand) Aliases() []string   { return []string{"speak"} }
func (c *VoiceCommand) Description() string { return "Synthesize speech for the current character" }
func (c *VoiceCommand) Usage() string       { return "voice [text]" }

func (c *VoiceCommand) Execute(ctx context.Context, r *REPL, args []string) error {
	if err := r.requireProvider(); err != nil {
		return err
	}
	if r.mgr.Mode() != models.ModeCharacter {
		return fmt.Errorf("voice synthesis needs character mode")
	}

	draft := r.mgr.Characters.Draft()
	text := strings.Join(args, " ")
	if text == "" {
		text = prompt.VoiceIntro(draft)
	}
	voice := draft.VoiceProfile
	if voice == "" {
		voice = "Puck"
	}

	fmt.Fprintf(r.out, "Synthesizing with voice %s...\n", voice)
	res, err := r.provider.Synthesize(ctx, text, voice)
	if err != nil {
		return fmt.Errorf("speech synthesis failed: %w", err)
	}

	if !res.Compressed && r.player != nil {
		r.player.Play(res.Payload)
	}

	r.mgr.AppendMessage(models.Message{Role: models.RoleModel, Text: text, AudioData: res.Payload})
	r.lastSpeech = &speech{
		payload:    res.Payload,
		compressed: res.Compressed,
		extension:  res.Extension,
		name:       draft.Name,
		excerpt:    text,
	}

	fmt.Fprintln(r.out, "Done. Use 'export' to save the audio.")
	return nil
}

// ExportCommand writes the last synthesized audio to a file
type ExportCommand struct{}

func (c *ExportCommand) Name() string        { return "export" }
func (c *ExportCommand) Aliases() []string   { return nil }
func (c *ExportCommand) Description() string { return "Save the last synthesized audio to a file" }
func (c *ExportCommand) Usage() string       { return "export" }

func (c *ExportCommand) Execute(_ context.Context, r *REPL, _ []string) error {
	if r.lastSpeech == nil {
		return fmt.Errorf("no audio to export: use 'voice' first")
	}

	s := r.lastSpeech
	name, err := r.exporter.Export(s.payload, s.name, s.excerpt, s.compressed, s.extension)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintf(r.out, "Exported: %s\n", name)
	return nil
}

// LibraryCommand manages the saved records of the current mode
type LibraryCommand struct{}

func (c *LibraryCommand) Name() string        { return "library" }
func (c *LibraryCommand) Aliases() []string   { return []string{"lib"} }
func (c *LibraryCommand) Description() string { return "Manage the library (list, save, load, remove, new)" }
func (c *LibraryCommand) Usage() string       { return "library <list|save|load|remove|new> [id]" }

func (c *LibraryCommand) Execute(_ context.Context, r *REPL, args []string) error {
	mode := r.mgr.Mode()
	if mode != models.ModeCharacter && mode != models.ModeEnvironment && mode != models.ModeProp {
		return fmt.Errorf("no library in %s mode", mode)
	}
	if len(args) == 0 {
		args = []string{"list"}
	}

	subCmd := strings.ToLower(args[0])
	subArgs := args[1:]

	switch mode {
	case models.ModeCharacter:
		return runLibrary(r, r.mgr.Characters, subCmd, subArgs, func(recs []asset.Character) {
			r.renderer.Characters(recs)
		}, func(rec asset.Character) string { return rec.Name })
	case models.ModeEnvironment:
		return runLibrary(r, r.mgr.Environments, subCmd, subArgs, func(recs []asset.Environment) {
			r.renderer.Environments(recs)
		}, func(rec asset.Environment) string { return rec.Name })
	default:
		return runLibrary(r, r.mgr.Props, subCmd, subArgs, func(recs []asset.Prop) {
			r.renderer.Props(recs)
		}, func(rec asset.Prop) string { return rec.Name })
	}
}

func runLibrary[T asset.Record[T]](r *REPL, lib *asset.Library[T], subCmd string, args []string, list func([]T), name func(T) string) error {
	switch subCmd {
	case "list", "ls":
		list(lib.Records())
		return nil
	case "save":
		rec := lib.Upsert(lib.Draft())
		fmt.Fprintf(r.out, "Saved to library: %s (%s)\n", name(rec), shortID(rec.RecordID()))
		return nil
	case "load":
		if len(args) == 0 {
			return fmt.Errorf("usage: library load <id>")
		}
		id, err := resolveRecordID(lib, args[0])
		if err != nil {
			return err
		}
		rec := lib.Load(id)
		fmt.Fprintf(r.out, "Loaded: %s\n", name(rec))
		return nil
	case "remove", "rm":
		if len(args) == 0 {
			return fmt.Errorf("usage: library remove <id>")
		}
		id, err := resolveRecordID(lib, args[0])
		if err != nil {
			return err
		}
		if !r.confirm("Remove this record from the library?") {
			return nil
		}
		lib.Remove(id)
		fmt.Fprintln(r.out, "Removed")
		return nil
	case "new":
		lib.New()
		fmt.Fprintln(r.out, "Draft reset")
		return nil
	default:
		return fmt.Errorf("unknown library command: %s", subCmd)
	}
}

func resolveRecordID[T asset.Record[T]](lib *asset.Library[T], idPrefix string) (string, error) {
	for _, rec := range lib.Records() {
		if strings.HasPrefix(rec.RecordID(), idPrefix) {
			return rec.RecordID(), nil
		}
	}
	return "", fmt.Errorf("record not found: %s", idPrefix)
}

// ElementCommand manages the saved-element pool
type ElementCommand struct{}

func (c *ElementCommand) Name() string        { return "element" }
func (c *ElementCommand) Aliases() []string   { return []string{"el"} }
func (c *ElementCommand) Description() string { return "Manage saved elements (list, add, remove, context)" }
func (c *ElementCommand) Usage() string       { return "element <list|add|remove|context> [args]" }

func (c *ElementCommand) Execute(_ context.Context, r *REPL, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	subCmd := strings.ToLower(args[0])
	subArgs := args[1:]

	switch subCmd {
	case "list", "ls":
		r.renderer.Elements(r.mgr.Registry.Elements())
		return nil
	case "add":
		return c.add(r, strings.Join(subArgs, " "))
	case "remove", "rm":
		if len(subArgs) == 0 {
			return fmt.Errorf("usage: element remove <id>")
		}
		for _, el := range r.mgr.Registry.Elements() {
			if strings.HasPrefix(el.ID, subArgs[0]) {
				r.mgr.Registry.Remove(el.ID)
				fmt.Fprintln(r.out, "Removed")
				return nil
			}
		}
		return fmt.Errorf("element not found: %s", subArgs[0])
	case "context":
		if r.mgr.Registry.Len() == 0 {
			fmt.Fprintln(r.out, "(empty)")
			return nil
		}
		fmt.Fprintln(r.out, r.mgr.Registry.BuildContext())
		return nil
	default:
		return fmt.Errorf("unknown element command: %s", subCmd)
	}
}

func (c *ElementCommand) add(r *REPL, description string) error {
	var name, image string
	mode := r.mgr.Mode()

	switch mode {
	case models.ModeCharacter:
		d := r.mgr.Characters.Draft()
		name, image = d.Name, d.Image
		if description == "" {
			description = d.PhysicalDescription
		}
	case models.ModeEnvironment:
		d := r.mgr.Environments.Draft()
		name, image = d.Name, d.Image
		if description == "" {
			description = d.Atmosphere
		}
	case models.ModeProp:
		d := r.mgr.Props.Draft()
		name, image = d.Name, d.Image
		if description == "" {
			description = d.VisualDetails
		}
	default:
		return fmt.Errorf("cannot save an element from %s mode", mode)
	}

	if name == "" {
		return fmt.Errorf("current draft has no name")
	}

	el := r.mgr.Registry.Add(mode, name, description, image)
	fmt.Fprintf(r.out, "Saved element: %s (%s)\n", el.Name, shortID(el.ID))
	return nil
}

// StoryCommand drives story authoring
type StoryCommand struct{}

func (c *StoryCommand) Name() string        { return "story" }
func (c *StoryCommand) Aliases() []string   { return nil }
func (c *StoryCommand) Description() string { return "Story authoring (synopsis, generate, breakdown, scene)" }
func (c *StoryCommand) Usage() string       { return "story <synopsis|generate|breakdown|scene> [args]" }

func (c *StoryCommand) Execute(ctx context.Context, r *REPL, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: %s", c.Usage())
	}

	subCmd := strings.ToLower(args[0])
	subArgs := args[1:]

	switch subCmd {
	case "synopsis":
		s := r.mgr.Story()
		s.Synopsis = strings.Join(subArgs, " ")
		r.mgr.SetStory(s)
		fmt.Fprintln(r.out, "Synopsis set")
		return nil
	case "generate", "gen":
		return c.generate(ctx, r)
	case "breakdown":
		s := r.mgr.Story()
		if s.FullStory == "" {
			return fmt.Errorf("no story to break down: run 'story generate' first")
		}
		s = s.BreakDown()
		r.mgr.SetStory(s)
		fmt.Fprintf(r.out, "Broke story into %d scene(s)\n", len(s.StoryScenes))
		return nil
	case "scene":
		if len(subArgs) < 2 {
			return fmt.Errorf("usage: story scene <number> <text>")
		}
		n, err := strconv.Atoi(subArgs[0])
		s := r.mgr.Story()
		if err != nil || n < 1 || n > len(s.StoryScenes) {
			return fmt.Errorf("no such scene: %s", subArgs[0])
		}
		r.mgr.SetStory(s.UpdateScene(n-1, strings.Join(subArgs[1:], " ")))
		fmt.Fprintf(r.out, "Scene %d updated\n", n)
		return nil
	default:
		return fmt.Errorf("unknown story command: %s", subCmd)
	}
}

func (c *StoryCommand) generate(ctx context.Context, r *REPL) error {
	if err := r.requireProvider(); err != nil {
		return err
	}

	s := r.mgr.Story()
	if s.Synopsis == "" {
		return fmt.Errorf("no synopsis: use 'story synopsis <text>' or 'random' in story mode")
	}

	p := prompt.Story(s.Synopsis, r.mgr.Registry.BuildContext())
	text, err := r.provider.StreamText(ctx, p, func(chunk string) {
		fmt.Fprint(r.out, chunk)
	})
	if err != nil {
		return fmt.Errorf("story generation failed: %w", err)
	}
	fmt.Fprintln(r.out)

	s.FullStory = text
	r.mgr.SetStory(s)
	r.mgr.AppendMessage(models.Message{Role: models.RoleModel, Text: text})
	return nil
}

// SessionCommand manages saved sessions
type SessionCommand struct{}

func (c *SessionCommand) Name() string        { return "session" }
func (c *SessionCommand) Aliases() []string   { return []string{"sess"} }
func (c *SessionCommand) Description() string { return "Manage sessions (list, save, load, delete, new)" }
func (c *SessionCommand) Usage() string       { return "session <list|save|load|delete|new> [args]" }

func (c *SessionCommand) Execute(ctx context.Context, r *REPL, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	subCmd := strings.ToLower(args[0])
	subArgs := args[1:]

	switch subCmd {
	case "list", "ls":
		snapshots, err := r.mgr.Sessions(ctx)
		if err != nil {
			return err
		}
		r.renderer.Sessions(snapshots, r.mgr.CurrentName())
		return nil
	case "save":
		snap, err := r.mgr.SaveSession(ctx, strings.Join(subArgs, " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Saved session: %s (%s)\n", snap.Name, shortID(snap.ID))
		return nil
	case "load":
		if len(subArgs) == 0 {
			return fmt.Errorf("usage: session load <id>")
		}
		id, err := c.resolveID(ctx, r, subArgs[0])
		if err != nil {
			return err
		}
		if err := r.mgr.LoadSession(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Session: %s\n", r.mgr.CurrentName())
		return nil
	case "delete", "rm":
		if len(subArgs) == 0 {
			return fmt.Errorf("usage: session delete <id>")
		}
		id, err := c.resolveID(ctx, r, subArgs[0])
		if err != nil {
			return err
		}
		return r.mgr.DeleteSession(ctx, id)
	case "new":
		r.mgr.NewSession()
		fmt.Fprintf(r.out, "Session: %s\n", r.mgr.CurrentName())
		return nil
	default:
		return fmt.Errorf("unknown session command: %s", subCmd)
	}
}

func (c *SessionCommand) resolveID(ctx context.Context, r *REPL, idPrefix string) (string, error) {
	snapshots, err := r.mgr.Sessions(ctx)
	if err != nil {
		return "", err
	}
	for _, snap := range snapshots {
		if strings.HasPrefix(snap.ID, idPrefix) {
			return snap.ID, nil
		}
	}
	return "", fmt.Errorf("session not found: %s", idPrefix)
}

// TranscriptCommand prints the chat log
type TranscriptCommand struct{}

func (c *TranscriptCommand) Name() string        { return "transcript" }
func (c *TranscriptCommand) Aliases() []string   { return []string{"log"} }
func (c *TranscriptCommand) Description() string { return "Show the conversation transcript" }
func (c *TranscriptCommand) Usage() string       { return "transcript" }

func (c *TranscriptCommand) Execute(_ context.Context, r *REPL, _ []string) error {
	r.renderer.Transcript(r.mgr.Transcript())
	return nil
}

// HelpCommand shows available commands
type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Aliases() []string   { return []string{"?"} }
func (c *HelpCommand) Description() string { return "Show available commands" }
func (c *HelpCommand) Usage() string       { return "help" }

func (c *HelpCommand) Execute(_ context.Context, r *REPL, _ []string) error {
	fmt.Fprintln(r.out, "Available commands:")
	fmt.Fprintln(r.out)

	for _, cmd := range allCommands() {
		aliases := ""
		if len(cmd.Aliases()) > 0 {
			aliases = fmt.Sprintf(" (%s)", strings.Join(cmd.Aliases(), ", "))
		}
		fmt.Fprintf(r.out, "  %-12s%s\n", cmd.Name()+aliases, cmd.Description())
		fmt.Fprintf(r.out, "               Usage: %s\n", cmd.Usage())
	}

	return nil
}

// QuitCommand exits the REPL
type QuitCommand struct{}

func (c *QuitCommand) Name() string        { return "quit" }
func (c *QuitCommand) Aliases() []string   { return []string{"exit", "q"} }
func (c *QuitCommand) Description() string { return "Exit interactive mode" }
func (c *QuitCommand) Usage() string       { return "quit" }

func (c *QuitCommand) Execute(_ context.Context, r *REPL, _ []string) error {
	fmt.Fprintln(r.out, "Goodbye!")
	r.Stop()
	return nil
}

func shortID(id string) string {
	if len(id) > 6 {
		return id[:6]
	}
	return id
}

// jsonFields flattens a struct into ordered (key, value) pairs using its
// JSON encoding, keeping only free-text fields.
func jsonFields(v any) [][2]string {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil
	}

	var fields [][2]string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fields
		}
		key, ok := keyTok.(string)
		if !ok {
			return fields
		}
		var val any
		if err := dec.Decode(&val); err != nil {
			return fields
		}
		if s, ok := val.(string); ok {
			fields = append(fields, [2]string{key, s})
		}
	}
	return fields
}

// setField sets one free-text field of v, matching the JSON field name
// case-insensitively. v must be a pointer.
func setField(v any, field, value string) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}

	key := ""
	for k, existing := range m {
		if !strings.EqualFold(k, field) {
			continue
		}
		if _, isString := existing.(string); !isString {
			return fmt.Errorf("field is not free text: %s", k)
		}
		key = k
		break
	}
	if key == "" {
		return fmt.Errorf("unknown field: %s", field)
	}

	m[key] = value
	patched, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(patched, v)
}
