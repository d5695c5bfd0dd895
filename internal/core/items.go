package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/daybook-sh/daybook/pkg/models"
	"gopkg.in/yaml.v3"
)

// Registry holds the trackable item definitions for one run. Definitions are
// static configuration: loaded once, never mutated during a report pass.
type Registry struct {
	items []models.Item
	byID  map[string]models.Item
}

// NewRegistry builds a Registry from the given items.
func NewRegistry(items []models.Item) *Registry {
	byID := make(map[string]models.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	return &Registry{items: items, byID: byID}
}

// Items returns every item in definition order.
func (r *Registry) Items() []models.Item {
	return r.items
}

// Get returns the item with the given ID.
func (r *Registry) Get(id string) (models.Item, bool) {
	it, ok := r.byID[id]
	return it, ok
}

// ByCategory returns every item in the given category, in definition order.
func (r *Registry) ByCategory(cat models.ItemCategory) []models.Item {
	var out []models.Item
	for _, it := range r.items {
		if it.Category == cat {
			out = append(out, it)
		}
	}
	return out
}

// itemsFile is the shape of an items.yaml overlay.
type itemsFile struct {
	Items []models.Item `yaml:"items"`
}

// LoadRegistry builds the item registry from the built-in definitions,
// overlaid with an optional items file: overlay items replace built-ins with
// the same ID and new IDs are appended. The merged set is validated before
// use so malformed schedules surface at load time, not mid-evaluation.
func LoadRegistry(itemsPath string) (*Registry, error) {
	items := BuiltinItems()

	if itemsPath != "" {
		raw, err := os.ReadFile(itemsPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading items file: %w", err)
			}
		} else {
			var overlay itemsFile
			if err := yaml.Unmarshal(raw, &overlay); err != nil {
				return nil, fmt.Errorf("parsing items file %s: %w", itemsPath, err)
			}
			// Duplicates inside the overlay would collapse last-one-wins in
			// the merge, so reject them before merging.
			if err := validateOverlayIDs(overlay.Items); err != nil {
				return nil, err
			}
			items = mergeItems(items, overlay.Items)
		}
	}

	if err := ValidateItems(items); err != nil {
		return nil, err
	}
	return NewRegistry(items), nil
}

// validateOverlayIDs rejects overlay files that define the same item ID more
// than once.
func validateOverlayIDs(overlay []models.Item) error {
	var errs []string
	seen := make(map[string]bool, len(overlay))
	for _, it := range overlay {
		if it.ID != "" && seen[it.ID] {
			errs = append(errs, fmt.Sprintf("duplicate item id %q", it.ID))
		}
		seen[it.ID] = true
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func mergeItems(base, overlay []models.Item) []models.Item {
	index := make(map[string]int, len(base))
	merged := make([]models.Item, len(base))
	copy(merged, base)
	for i, it := range merged {
		index[it.ID] = i
	}

	for _, it := range overlay {
		if i, ok := index[it.ID]; ok {
			merged[i] = it
		} else {
			index[it.ID] = len(merged)
			merged = append(merged, it)
		}
	}
	return merged
}

// ValidateItems checks item definitions for configuration errors and returns
// every problem found in one message.
func ValidateItems(items []models.Item) error {
	var errs []string
	seen := make(map[string]bool, len(items))

	for _, it := range items {
		if it.ID == "" {
			errs = append(errs, "item with empty id")
			continue
		}
		if seen[it.ID] {
			errs = append(errs, fmt.Sprintf("duplicate item id %q", it.ID))
		}
		seen[it.ID] = true

		if it.Label == "" {
			errs = append(errs, fmt.Sprintf("item %s: label must not be empty", it.ID))
		}

		sched := it.Schedule
		if sched == nil {
			continue
		}

		for _, d := range sched.DaysOfWeek {
			if d < 0 || d > 7 {
				errs = append(errs, fmt.Sprintf("item %s: days_of_week value %d outside 0-7", it.ID, d))
			}
		}
		for _, d := range sched.DatesOfMonth {
			if d < 1 || d > 31 {
				errs = append(errs, fmt.Sprintf("item %s: dates_of_month value %d outside 1-31", it.ID, d))
			}
		}
		if sched.ShowEvery != nil && sched.ShowEvery.Count < 1 {
			errs = append(errs, fmt.Sprintf("item %s: show_every.count must be >= 1, got %d", it.ID, sched.ShowEvery.Count))
		}
		if sched.Target != nil && sched.Target.Count < 1 {
			errs = append(errs, fmt.Sprintf("item %s: target.count must be >= 1, got %d", it.ID, sched.Target.Count))
		}
		if sched.Limit != nil && sched.Limit.Max < 1 {
			errs = append(errs, fmt.Sprintf("item %s: limit.max must be >= 1, got %d", it.ID, sched.Limit.Max))
		}
		if sched.StartDate != "" {
			if _, ok := ParseDate(sched.StartDate); !ok {
				errs = append(errs, fmt.Sprintf("item %s: start_date %q is not YYYY-MM-DD", it.ID, sched.StartDate))
			}
		}
		if sched.EndDate != "" {
			if _, ok := ParseDate(sched.EndDate); !ok {
				errs = append(errs, fmt.Sprintf("item %s: end_date %q is not YYYY-MM-DD", it.ID, sched.EndDate))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("item validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func boolInput(label string) models.InputSpec {
	return models.InputSpec{Type: models.InputBoolean, Label: label}
}

func textInput(placeholder string) models.InputSpec {
	return models.InputSpec{Type: models.InputText, Placeholder: placeholder}
}

// ratingOptions is the shared 1-3 scale wellbeing dimensions are rated on.
var ratingOptions = []models.ChoiceOption{
	{Label: "3 - Great", Value: "3"},
	{Label: "2 - Adequate", Value: "2"},
	{Label: "1 - Struggling", Value: "1"},
}

func ratingInput() models.InputSpec {
	return models.InputSpec{
		Type:         models.InputMultiCheckbox,
		Options:      ratingOptions,
		SingleChoice: true,
	}
}

func dailyTarget() *models.Schedule {
	return &models.Schedule{
		Target: &models.Target{Count: 1, Per: models.Period{Count: 1, Unit: models.UnitDay}},
	}
}

func weeklyTarget(count int, keepShowing bool) *models.Schedule {
	return &models.Schedule{
		Target: &models.Target{
			Count:       count,
			Per:         models.Period{Count: 1, Unit: models.UnitWeek},
			KeepShowing: keepShowing,
		},
	}
}

func everyNDays(n int) *models.Schedule {
	return &models.Schedule{
		ShowEvery: &models.Period{Count: n, Unit: models.UnitDay},
	}
}

// BuiltinItems returns the default item definitions: habits, wellbeing
// dimensions, contemplative practices, and free-form prompts.
func BuiltinItems() []models.Item {
	return []models.Item{
		// --- Habits ---
		{
			ID: "dayPlanning", Label: "Planning my day", Category: models.CategoryHabit,
			Input:    boolInput("Planning my day"),
			Cue:      "After breakfast",
			Reward:   "More productive and organized day",
			Schedule: dailyTarget(),
		},
		{
			ID: "exercise", Label: "Exercise", Category: models.CategoryHabit,
			Input:    boolInput("Exercise"),
			Cue:      "Any suitable time during the day",
			Reward:   "Better health, more energy, and improved mood",
			Schedule: weeklyTarget(5, true),
		},
		{
			ID: "morningWarmUp", Label: "Morning physical warm-up", Category: models.CategoryHabit,
			Input:    boolInput("Morning physical warm-up"),
			Cue:      "After waking up",
			Reward:   "Increased energy and readiness for the day",
			Schedule: dailyTarget(),
		},
		{
			ID: "recreation", Label: "Having fun", Category: models.CategoryHabit,
			Input:    boolInput("Having fun"),
			Cue:      "In the evening or during free time",
			Reward:   "Relaxation, joy, and stress relief",
			Schedule: dailyTarget(),
		},
		{
			ID: "deepStudy", Label: "Focused study session", Category: models.CategoryHabit,
			Input:    boolInput("Focused study session"),
			Cue:      "Dedicated learning time",
			Reward:   "Skill development and problem-solving mastery",
			Schedule: weeklyTarget(3, false),
		},
		{
			ID: "poetryReading", Label: "Spend time with poetry", Category: models.CategoryHabit,
			Input:    boolInput("Spend time with poetry"),
			Cue:      "At leisure time",
			Reward:   "Healthy feelings expression from engaging with poetry",
			Schedule: &models.Schedule{
				Target: &models.Target{Count: 3, Per: models.Period{Count: 1, Unit: models.UnitMonth}},
			},
		},
		{
			ID: "phoneDetox", Label: "No phone for 3 hours", Category: models.CategoryHabit,
			Input:    boolInput("No phone for 3 hours"),
			Cue:      "During focused work or leisure time",
			Reward:   "Better focus, mental clarity, reclaimed time",
			Schedule: weeklyTarget(3, true),
		},
		{
			ID: "takeoutMeal", Label: "Ordering takeout", Category: models.CategoryHabit,
			Input:    boolInput("Ordering takeout"),
			Cue:      "When too tired to cook",
			Reward:   "Convenience without letting it become the default",
			Schedule: &models.Schedule{
				Target: &models.Target{Count: 1, Per: models.Period{Count: 1, Unit: models.UnitWeek}},
				Limit:  &models.Limit{Max: 20, Per: models.Period{Count: 6, Unit: models.UnitMonth}},
			},
		},
		{
			ID: "weeklyReview", Label: "Weekly review", Category: models.CategoryHabit,
			Input:    boolInput("Weekly review"),
			Cue:      "Sunday evening",
			Reward:   "Clear picture of the week behind and ahead",
			Schedule: &models.Schedule{DaysOfWeek: []int{7}},
		},
		{
			ID: "monthlyBudget", Label: "Monthly budget check", Category: models.CategoryHabit,
			Input:    boolInput("Monthly budget check"),
			Cue:      "First day of the month",
			Reward:   "Financial clarity and fewer surprises",
			Schedule: &models.Schedule{DatesOfMonth: []int{1}},
		},
		{
			ID: "eveningShutdown", Label: "Evening shutdown ritual", Category: models.CategoryHabit,
			Input:    boolInput("Evening shutdown ritual"),
			Cue:      "After the planned day is done",
			Reward:   "A clean mental break between work and rest",
			Schedule: &models.Schedule{
				RequiresCompleted: []string{"dayPlanning"},
				Target:            &models.Target{Count: 1, Per: models.Period{Count: 1, Unit: models.UnitDay}},
			},
		},
		{
			ID: "quickStretch", Label: "Five-minute stretch", Category: models.CategoryHabit,
			Input:    boolInput("Five-minute stretch"),
			Cue:      "Any break in the day",
			Reward:   "A lighter body on days without a full workout",
			Schedule: &models.Schedule{
				HideIfCompleted: []string{"exercise"},
			},
		},

		// --- Wellbeing dimensions (PERMA+) ---
		{
			ID: "positiveEmotions", Label: "Positive Emotions", Category: models.CategoryWellbeing,
			Description: "Feelings of joy, gratitude, contentment, hope, and pleasure.",
			Input:       ratingInput(),
		},
		{
			ID: "engagement", Label: "Engagement", Category: models.CategoryWellbeing,
			Description: "Deep involvement in activities; being absorbed, losing sense of time.",
			Input:       ratingInput(),
		},
		{
			ID: "relationships", Label: "Relationships", Category: models.CategoryWellbeing,
			Description: "Supportive, meaningful social connections; feeling loved, valued, belonging.",
			Input:       ratingInput(),
			Schedule:    everyNDays(2),
		},
		{
			ID: "meaning", Label: "Meaning", Category: models.CategoryWellbeing,
			Description: "A sense of purpose; belonging to something bigger than yourself.",
			Input:       ratingInput(),
		},
		{
			ID: "accomplishment", Label: "Accomplishment", Category: models.CategoryWellbeing,
			Description: "Mastery, achievement, working toward goals that matter to you.",
			Input:       ratingInput(),
		},
		{
			ID: "sleepQuality", Label: "Sleep Quality", Category: models.CategoryWellbeing,
			Description: "How well-rested you feel: quality, hours, waking refreshed.",
			Input:       ratingInput(),
		},
		{
			ID: "embodiment", Label: "Embodiment", Category: models.CategoryWellbeing,
			Description: "Feeling at home in your body; presence in your physical self.",
			Input:       ratingInput(),
			Schedule:    everyNDays(3),
		},
		{
			ID: "physicalPleasure", Label: "Physical Pleasure", Category: models.CategoryWellbeing,
			Description: "Sensory experience and bodily comfort: food, warmth, movement, rest.",
			Input:       ratingInput(),
			Schedule:    everyNDays(2),
		},
		{
			ID: "environment", Label: "Environment", Category: models.CategoryWellbeing,
			Description: "How supportive and pleasant your physical surroundings feel.",
			Input:       ratingInput(),
			Schedule:    everyNDays(3),
		},
		{
			ID: "economicSecurity", Label: "Economic Security", Category: models.CategoryWellbeing,
			Description: "Confidence that your material needs are covered.",
			Input:       ratingInput(),
			Schedule:    everyNDays(3),
		},

		// --- Contemplative practices ---
		{
			ID: "dichotomyOfControl", Label: "Dichotomy of Control", Category: models.CategoryPractice,
			Input: boolInput("I practiced separating what I can and cannot control"),
			Guide: "When faced with any situation today, ask: is this within my control? " +
				"If yes, take action. If no, accept it and focus on your response instead.",
		},
		{
			ID: "negativeVisualization", Label: "Negative Visualization", Category: models.CategoryPractice,
			Input: boolInput("I practiced negative visualization"),
			Guide: "Briefly imagine losing something you value. Let the image sharpen " +
				"your appreciation of having it now.",
			Schedule: everyNDays(2),
		},
		{
			ID: "mementoMori", Label: "Memento Mori", Category: models.CategoryPractice,
			Input: boolInput("I reflected on the finiteness of life"),
			Guide: "Remember that time is limited. Use the thought to choose what " +
				"deserves today's hours, not to darken them.",
			Schedule: everyNDays(3),
		},
		{
			ID: "mindfulMoment", Label: "Mindful Moment", Category: models.CategoryPractice,
			Input: boolInput("I took one fully present mindful pause"),
			Guide: "Stop once today for sixty seconds. Notice breath, body, and " +
				"surroundings without changing anything.",
		},
		{
			ID: "voluntaryDiscomfort", Label: "Voluntary Discomfort", Category: models.CategoryPractice,
			Input: boolInput("I chose a small voluntary discomfort"),
			Guide: "Pick one mild discomfort on purpose: a cold shower, a skipped " +
				"convenience, a walk in bad weather. Train wanting less.",
			Schedule: &models.Schedule{
				ShowEvery: &models.Period{Count: 3, Unit: models.UnitDay},
				Target:    &models.Target{Count: 2, Per: models.Period{Count: 1, Unit: models.UnitWeek}},
			},
		},

		// --- Free-form prompts ---
		{
			ID: "gratitudeEntry", Label: "Gratitude", Category: models.CategoryPrompt,
			Input: textInput("Three things I am grateful for today..."),
		},
		{
			ID: "savoringMoment", Label: "Savoring", Category: models.CategoryPrompt,
			Input: textInput("One moment worth savoring today..."),
		},
		{
			ID: "accomplishmentsToday", Label: "Accomplishments", Category: models.CategoryPrompt,
			Input: textInput("What I got done today..."),
		},
		{
			ID: "obstaclesToday", Label: "Obstacles", Category: models.CategoryPrompt,
			Input: textInput("What got in my way, and how I responded..."),
		},
		{
			ID: "emotionAwareness", Label: "Emotion Awareness", Category: models.CategoryPrompt,
			Input: textInput("The strongest emotion I felt today, and what triggered it..."),
		},
		{
			ID: "energyLevel", Label: "Energy level", Category: models.CategoryPrompt,
			Input: models.InputSpec{Type: models.InputNumber, Label: "Energy level (1-10)"},
		},
		{
			ID: "tomorrowPriority", Label: "Tomorrow's priority", Category: models.CategoryPrompt,
			Input: textInput("The single most important thing for tomorrow..."),
		},
		{
			ID: "messageForTomorrow", Label: "Message for tomorrow", Category: models.CategoryPrompt,
			Input: textInput("A note to your tomorrow self..."),
		},
	}
}
