package models

// HookType selects the rhetorical shape of a generated hook.
type HookType string

// ToneType selects the voice of a generated hook.
type ToneType string

// Platform selects the social network a hook is written for.
type Platform string

const (
	HookQuestion   HookType = "question"
	HookStatistic  HookType = "statistic"
	HookStory      HookType = "story"
	HookContrarian HookType = "contrarian"

	ToneProfessional ToneType = "professional"
	ToneCasual       ToneType = "casual"
	ToneProvocative  ToneType = "provocative"

	PlatformLinkedIn  Platform = "linkedin"
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
)

// Display names the generation prompt was written against. The dashboard
// copy is Spanish, so the labels are too.
var (
	hookTypeLabels = map[HookType]string{
		HookQuestion:   "Pregunta",
		HookStatistic:  "Estadística",
		HookStory:      "Historia",
		HookContrarian: "Contrarian",
	}
	toneLabels = map[ToneType]string{
		ToneProfessional: "Profesional",
		ToneCasual:       "Casual",
		ToneProvocative:  "Provocador",
	}
	platformLabels = map[Platform]string{
		PlatformLinkedIn:  "LinkedIn",
		PlatformTwitter:   "Twitter",
		PlatformInstagram: "Instagram",
	}
)

// Label returns the prompt-facing display name for the hook type.
func (h HookType) Label() string { return hookTypeLabels[h] }

// Valid reports whether the hook type is a known value.
func (h HookType) Valid() bool {
	_, ok := hookTypeLabels[h]
	return ok
}

// Label returns the prompt-facing display name for the tone.
func (t ToneType) Label() string { return toneLabels[t] }

// Valid reports whether the tone is a known value.
func (t ToneType) Valid() bool {
	_, ok := toneLabels[t]
	return ok
}

// Label returns the prompt-facing display name for the platform.
func (p Platform) Label() string { return platformLabels[p] }

// Valid reports whether the platform is a known value.
func (p Platform) Valid() bool {
	_, ok := platformLabels[p]
	return ok
}

// HookConfig holds the current generation parameters. Not persisted across
// sessions; mutated only by direct user selection.
type HookConfig struct {
	Type     HookType `json:"type"`
	Tone     ToneType `json:"tone"`
	Platform Platform `json:"platform"`
}

// DefaultHookConfig returns the initial generation parameters.
func DefaultHookConfig() HookConfig {
	return HookConfig{
		Type:     HookStory,
		Tone:     ToneProfessional,
		Platform: PlatformLinkedIn,
	}
}

// Validate checks every field against the closed enum sets.
func (c HookConfig) Validate() error {
	if !c.Type.Valid() {
		return &InvalidFieldError{Field: "type", Value: string(c.Type)}
	}
	if !c.Tone.Valid() {
		return &InvalidFieldError{Field: "tone", Value: string(c.Tone)}
	}
	if !c.Platform.Valid() {
		return &InvalidFieldError{Field: "platform", Value: string(c.Platform)}
	}
	return nil
}

// InvalidFieldError reports a value outside a closed enum set.
type InvalidFieldError struct {
	Field string
	Value string
}

func (e *InvalidFieldError) Error() string {
	return "invalid " + e.Field + ": " + e.Value
}
