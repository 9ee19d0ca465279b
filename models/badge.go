package models

// Badge identifiers are fixed string literals; clients attach their own
// decoration (medal emoji etc.) at render time.
const (
	BadgeBronze  = "Bronze"
	BadgeSilver  = "Silver"
	BadgeWarrior = "Warrior"
)

// BadgeTrigger describes when a badge unlocks. Thresholds are one-way latches:
// once a badge is on the user it is never removed automatically.
type BadgeTrigger struct {
	ID            string
	Name          string
	Description   string
	MinStreak     int
	MinTotalTasks int
}

// BadgeTriggers is the static catalogue, evaluated in order on every reward update.
var BadgeTriggers = []BadgeTrigger{
	{
		ID:          BadgeBronze,
		Name:        "Bronze Medal",
		Description: "Kept a 7 day streak",
		MinStreak:   7,
	},
	{
		ID:          BadgeSilver,
		Name:        "Silver Medal",
		Description: "Kept a 30 day streak",
		MinStreak:   30,
	},
	{
		ID:            BadgeWarrior,
		Name:          "Task Warrior",
		Description:   "Completed 50 tasks",
		MinTotalTasks: 50,
	},
}

// HasBadge reports whether id is already unlocked on the user.
func (u *User) HasBadge(id string) bool {
	for _, b := range u.Badges {
		if b == id {
			return true
		}
	}
	return false
}
