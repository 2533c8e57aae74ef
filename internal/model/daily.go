package model

import "time"

// Category groups daily tasks for display.
type Category string

const (
	CategoryDevelopment Category = "development"
	CategoryLearning    Category = "learning"
	CategoryPersonal    Category = "personal"
	CategoryOther       Category = "other"
)

// Categories lists the selectable categories in display order.
var Categories = []Category{
	CategoryDevelopment,
	CategoryLearning,
	CategoryPersonal,
	CategoryOther,
}

// ParseCategory maps a raw string to a known Category, falling back to
// CategoryOther for anything unrecognized.
func ParseCategory(s string) Category {
	switch c := Category(s); c {
	case CategoryDevelopment, CategoryLearning, CategoryPersonal, CategoryOther:
		return c
	default:
		return CategoryOther
	}
}

// DefaultWaterGoal is the daily water target in millilitres.
const DefaultWaterGoal = 2000

// Task is a single to-do item scoped to one day.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"createdAt"`

	// CompletedAt is set when Completed becomes true and cleared when it
	// becomes false.
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// WaterEntry records one drink. Entries are never modified once appended.
type WaterEntry struct {
	ID        string    `json:"id"`
	Amount    int       `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// DailyRecord is the persisted state for a single calendar day.
type DailyRecord struct {
	Date           string       `json:"date"`
	Tasks          []Task       `json:"tasks"`
	Notes          string       `json:"notes"`
	CompletedTasks int          `json:"completedTasks"`
	TotalTasks     int          `json:"totalTasks"`
	WaterIntake    []WaterEntry `json:"waterIntake"`
	TotalWater     int          `json:"totalWater"`
	WaterGoal      int          `json:"waterGoal"`
}

// NewDailyRecord returns an empty record for the given day key.
func NewDailyRecord(date string, waterGoal int) DailyRecord {
	if waterGoal <= 0 {
		waterGoal = DefaultWaterGoal
	}
	return DailyRecord{
		Date:        date,
		Tasks:       []Task{},
		WaterIntake: []WaterEntry{},
		WaterGoal:   waterGoal,
	}
}

// Recompute derives CompletedTasks, TotalTasks and TotalWater from the
// task and water collections.
func (r *DailyRecord) Recompute() {
	completed := 0
	for _, t := range r.Tasks {
		if t.Completed {
			completed++
		}
	}
	total := 0
	for _, w := range r.WaterIntake {
		total += w.Amount
	}

	r.CompletedTasks = completed
	r.TotalTasks = len(r.Tasks)
	r.TotalWater = total
}

// Clone returns a copy that shares no slices with r.
func (r DailyRecord) Clone() DailyRecord {
	out := r
	out.Tasks = make([]Task, len(r.Tasks))
	copy(out.Tasks, r.Tasks)
	out.WaterIntake = make([]WaterEntry, len(r.WaterIntake))
	copy(out.WaterIntake, r.WaterIntake)
	return out
}

// TaskIndex returns the position of the task with the given ID, or -1.
func (r DailyRecord) TaskIndex(id string) int {
	for i, t := range r.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// WaterPercent returns TotalWater as a percentage of WaterGoal, capped at 100.
func (r DailyRecord) WaterPercent() float64 {
	if r.WaterGoal <= 0 {
		return 0
	}
	pct := float64(r.TotalWater) / float64(r.WaterGoal) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
