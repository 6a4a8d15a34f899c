package engine

// ItemID identifies a store item in the static catalog.
type ItemID string

const (
	ItemBreakExtender ItemID = "break-extender"
	ItemDoublePoints  ItemID = "double-points"
	ItemTimeBank      ItemID = "time-bank"
	ItemTaskTemplates ItemID = "task-templates"
)

// EffectKind tags what an activated consumable does.
type EffectKind string

const (
	EffectExtendBreak  EffectKind = "extendBreak"
	EffectDoublePoints EffectKind = "doublePoints"
)

type Category string

const (
	CategoryPowerups Category = "powerups"
	CategoryUtility  Category = "utility"
)

// StoreItem is a catalog entry. The catalog is static application data,
// not user state.
type StoreItem struct {
	ID          ItemID
	Name        string
	Description string
	Price       int
	Category    Category
	Icon        string
	Consumable  bool
	Effect      EffectKind // empty for items without an activation effect
}

var catalog = []StoreItem{
	{
		ID:          ItemBreakExtender,
		Name:        "Break Extender",
		Description: "Adds +2 minutes to break sessions for the next 5 breaks",
		Price:       25,
		Category:    CategoryPowerups,
		Icon:        "⏰",
		Consumable:  true,
		Effect:      EffectExtendBreak,
	},
	{
		ID:          ItemDoublePoints,
		Name:        "Double Points",
		Description: "Earn 2x tomato points for the next 10 completed Pomodoros",
		Price:       50,
		Category:    CategoryPowerups,
		Icon:        "🔥",
		Consumable:  true,
		Effect:      EffectDoublePoints,
	},
	{
		ID:          ItemTimeBank,
		Name:        "Time Bank",
		Description: "Store unused break time to use later",
		Price:       120,
		Category:    CategoryUtility,
		Icon:        "🏦",
		Consumable:  false,
	},
	{
		ID:          ItemTaskTemplates,
		Name:        "Task Templates",
		Description: "Pre-made task templates (Study Session, Coding Sprint, etc.)",
		Price:       50,
		Category:    CategoryUtility,
		Icon:        "📋",
		Consumable:  false,
	},
}

// Catalog returns the store items in display order.
func Catalog() []StoreItem {
	return catalog
}

// ItemByID looks up a catalog entry.
func ItemByID(id ItemID) (StoreItem, bool) {
	for _, it := range catalog {
		if it.ID == id {
			return it, true
		}
	}
	return StoreItem{}, false
}

// newEffect builds the fixed ActiveEffect for an effect kind. Parameters
// are part of the item contract: extendBreak gives +2 minutes for 5 breaks,
// doublePoints gives a 2x multiplier for 10 pomodoros.
func newEffect(itemID ItemID, kind EffectKind) (ActiveEffect, bool) {
	switch kind {
	case EffectExtendBreak:
		return ActiveEffect{ItemID: itemID, Kind: kind, RemainingUses: 5, Value: 2}, true
	case EffectDoublePoints:
		return ActiveEffect{ItemID: itemID, Kind: kind, RemainingUses: 10, Value: 2}, true
	}
	return ActiveEffect{}, false
}

// TaskTemplate is a purchasable set of pre-made tasks.
type TaskTemplate struct {
	ID             string
	Name           string
	Tasks          []string
	TotalPomodoros int
}

var taskTemplates = []TaskTemplate{
	{
		ID:   "study-session",
		Name: "Study Session",
		Tasks: []string{
			"Review chapter notes",
			"Practice problems",
			"Create summary",
			"Self-quiz",
		},
		TotalPomodoros: 4,
	},
	{
		ID:   "coding-sprint",
		Name: "Coding Sprint",
		Tasks: []string{
			"Plan feature architecture",
			"Implement core functionality",
			"Write tests",
			"Code review and refactor",
		},
		TotalPomodoros: 6,
	},
	{
		ID:   "writing-project",
		Name: "Writing Project",
		Tasks: []string{
			"Research and outline",
			"Write first draft",
			"Edit and revise",
			"Final proofread",
		},
		TotalPomodoros: 5,
	},
	{
		ID:   "learning-new-skill",
		Name: "Learning New Skill",
		Tasks: []string{
			"Watch tutorial/read documentation",
			"Hands-on practice",
			"Build small project",
			"Review and reinforce",
		},
		TotalPomodoros: 4,
	},
}

// TaskTemplates returns the pre-made templates unlocked by the
// task-templates item.
func TaskTemplates() []TaskTemplate {
	return taskTemplates
}
