package models

// ItemCategory is the logical bucket a trackable item belongs to. It is used
// for grouping and statistics context only, never for scheduling semantics.
type ItemCategory string

const (
	CategoryHabit     ItemCategory = "habit"
	CategoryWellbeing ItemCategory = "wellbeing"
	CategoryPractice  ItemCategory = "practice"
	CategoryPrompt    ItemCategory = "prompt"
)

// InputType identifies how an item's answer is rendered and extracted.
type InputType string

const (
	InputText          InputType = "text"
	InputRichText      InputType = "richText"
	InputBoolean       InputType = "boolean"
	InputNumber        InputType = "number"
	InputMultiCheckbox InputType = "multicheckbox"
)

// ChoiceOption is one selectable option of a multicheckbox input.
type ChoiceOption struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// InputSpec describes the interactive input embedded in the report for an item.
type InputSpec struct {
	Type         InputType      `yaml:"type" json:"type"`
	Label        string         `yaml:"label,omitempty" json:"label,omitempty"`
	Placeholder  string         `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Options      []ChoiceOption `yaml:"options,omitempty" json:"options,omitempty"`
	SingleChoice bool           `yaml:"single_choice,omitempty" json:"singleChoice,omitempty"`
}

// Item is the unit the scheduler reasons about: a habit, wellbeing dimension,
// contemplative practice, or free-form prompt tracked across reports.
type Item struct {
	ID          string       `yaml:"id" json:"id"`
	Label       string       `yaml:"label" json:"label"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Category    ItemCategory `yaml:"category" json:"category"`
	Input       InputSpec    `yaml:"input" json:"input"`
	Schedule    *Schedule    `yaml:"schedule,omitempty" json:"schedule,omitempty"`

	// Cue and Reward annotate habit items (habit-loop framing).
	Cue    string `yaml:"cue,omitempty" json:"cue,omitempty"`
	Reward string `yaml:"reward,omitempty" json:"reward,omitempty"`

	// Guide annotates contemplative practice items.
	Guide string `yaml:"guide,omitempty" json:"guide,omitempty"`
}
