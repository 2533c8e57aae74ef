package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Devdeep8/let-s-do-it/internal/model"
	"github.com/Devdeep8/let-s-do-it/internal/store"
)

// keyPrefix namespaces day-scoped records in the store.
const keyPrefix = "dailyData_"

// dayLayout is the calendar-day format used in record keys and DailyRecord.Date.
const dayLayout = "2006-01-02"

// DayKey returns the calendar-day key for t in t's location.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// StoreKey returns the store key holding the record for day.
func StoreKey(day string) string {
	return keyPrefix + day
}

// Recorder manages day-scoped task, water and notes records. Every
// mutation recomputes the derived totals and writes the record through to
// the store before returning.
type Recorder struct {
	store     store.Store
	now       func() time.Time
	newID     func() string
	waterGoal int
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// WithIDGenerator overrides the generator for task and water entry IDs.
func WithIDGenerator(newID func() string) Option {
	return func(r *Recorder) { r.newID = newID }
}

// WithWaterGoal sets the goal applied to freshly created records.
func WithWaterGoal(ml int) Option {
	return func(r *Recorder) {
		if ml > 0 {
			r.waterGoal = ml
		}
	}
}

// New creates a Recorder backed by s.
func New(s store.Store, opts ...Option) *Recorder {
	r := &Recorder{
		store:     s,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
		waterGoal: model.DefaultWaterGoal,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Today returns the day key for the recorder's current time.
func (r *Recorder) Today() string {
	return DayKey(r.now())
}

// timestamp returns the current time without a monotonic reading, so values
// compare equal after a JSON round trip.
func (r *Recorder) timestamp() time.Time {
	return r.now().Round(0)
}

// LoadOrInitialize returns the stored record for day. A missing or
// unparsable record is replaced by a fresh, persisted one.
func (r *Recorder) LoadOrInitialize(ctx context.Context, day string) (model.DailyRecord, error) {
	raw, ok, err := r.store.Get(ctx, StoreKey(day))
	if err != nil {
		return model.DailyRecord{}, fmt.Errorf("loading record for %s: %w", day, err)
	}

	if ok {
		var rec model.DailyRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			log.Printf("recorder: discarding unreadable record for %s: %v", day, err)
		} else {
			return r.normalize(rec, day), nil
		}
	}

	rec := model.NewDailyRecord(day, r.waterGoal)
	if err := r.save(ctx, rec); err != nil {
		return model.DailyRecord{}, err
	}
	return rec, nil
}

// normalize fills defaults that older or hand-edited records may lack and
// recomputes the derived totals. The store key decides the date.
func (r *Recorder) normalize(rec model.DailyRecord, day string) model.DailyRecord {
	rec.Date = day
	if rec.Tasks == nil {
		rec.Tasks = []model.Task{}
	}
	if rec.WaterIntake == nil {
		rec.WaterIntake = []model.WaterEntry{}
	}
	if rec.WaterGoal <= 0 {
		rec.WaterGoal = r.waterGoal
	}
	rec.Recompute()
	return rec
}

// AddTask appends a new task. Blank text is ignored.
func (r *Recorder) AddTask(
	ctx context.Context,
	rec model.DailyRecord,
	text string,
	category model.Category,
) (model.DailyRecord, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return rec, nil
	}

	next := rec.Clone()
	next.Tasks = append(next.Tasks, model.Task{
		ID:        r.newID(),
		Text:      text,
		Category:  model.ParseCategory(string(category)),
		CreatedAt: r.timestamp(),
	})
	return r.commit(ctx, rec, next)
}

// ToggleTask flips the completion state of the task with the given ID.
// Unknown IDs are ignored.
func (r *Recorder) ToggleTask(
	ctx context.Context,
	rec model.DailyRecord,
	taskID string,
) (model.DailyRecord, error) {
	i := rec.TaskIndex(taskID)
	if i < 0 {
		return rec, nil
	}

	next := rec.Clone()
	task := &next.Tasks[i]
	task.Completed = !task.Completed
	if task.Completed {
		at := r.timestamp()
		task.CompletedAt = &at
	} else {
		task.CompletedAt = nil
	}
	return r.commit(ctx, rec, next)
}

// DeleteTask removes the task with the given ID. Unknown IDs are ignored.
func (r *Recorder) DeleteTask(
	ctx context.Context,
	rec model.DailyRecord,
	taskID string,
) (model.DailyRecord, error) {
	i := rec.TaskIndex(taskID)
	if i < 0 {
		return rec, nil
	}

	next := rec.Clone()
	next.Tasks = append(next.Tasks[:i], next.Tasks[i+1:]...)
	return r.commit(ctx, rec, next)
}

// AddWater appends a water entry of ml millilitres. Non-positive amounts
// are ignored.
func (r *Recorder) AddWater(
	ctx context.Context,
	rec model.DailyRecord,
	ml int,
) (model.DailyRecord, error) {
	if ml <= 0 {
		return rec, nil
	}

	next := rec.Clone()
	next.WaterIntake = append(next.WaterIntake, model.WaterEntry{
		ID:        r.newID(),
		Amount:    ml,
		Timestamp: r.timestamp(),
	})
	return r.commit(ctx, rec, next)
}

// AddWaterInput parses free-text input as a millilitre amount and adds it.
// Non-numeric or non-positive input is ignored.
func (r *Recorder) AddWaterInput(
	ctx context.Context,
	rec model.DailyRecord,
	raw string,
) (model.DailyRecord, error) {
	ml, ok := ParseAmount(raw)
	if !ok {
		return rec, nil
	}
	return r.AddWater(ctx, rec, ml)
}

// ParseAmount parses a positive integer amount, tolerating surrounding
// whitespace and a trailing "ml" unit.
func ParseAmount(raw string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimSpace(strings.TrimSuffix(s, "ml"))
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// UpdateNotes replaces the notes text.
func (r *Recorder) UpdateNotes(
	ctx context.Context,
	rec model.DailyRecord,
	text string,
) (model.DailyRecord, error) {
	next := rec.Clone()
	next.Notes = text
	return r.commit(ctx, rec, next)
}

// commit recomputes next and persists it. On failure the previous record
// is returned so callers never hold state the store does not.
func (r *Recorder) commit(
	ctx context.Context,
	prev model.DailyRecord,
	next model.DailyRecord,
) (model.DailyRecord, error) {
	next.Recompute()
	if err := r.save(ctx, next); err != nil {
		return prev, err
	}
	return next, nil
}

// save serializes rec under its day key.
func (r *Recorder) save(ctx context.Context, rec model.DailyRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record for %s: %w", rec.Date, err)
	}
	if err := r.store.Set(ctx, StoreKey(rec.Date), string(data)); err != nil {
		return fmt.Errorf("saving record for %s: %w", rec.Date, err)
	}
	return nil
}
